package azure

import (
	"context"

	"github.com/jaycalderwood/KQL/pkg/types"
)

// workspaceDiscoveryQuery finds every Log Analytics workspace the identity
// can see, with the identity fields the console needs for its menu.
const workspaceDiscoveryQuery = `resources
| where type =~ 'microsoft.operationalinsights/workspaces'
| project name, resourceGroup, subscriptionId, tenantId, location, customerId = tostring(properties.customerId)
| order by name asc`

// ListWorkspaces discovers Log Analytics workspaces across the given
// subscriptions (all accessible ones when subs is nil) via Resource Graph.
func ListWorkspaces(ctx context.Context, graph *GraphClient, subs []string) ([]types.WorkspaceScope, error) {
	records, err := graph.allRecords(ctx, workspaceDiscoveryQuery, &GraphQueryOptions{
		Subscriptions: subs,
	})
	if err != nil {
		return nil, err
	}

	var out []types.WorkspaceScope
	for _, rec := range records {
		ws := workspaceFromRecord(rec)
		if ws.WorkspaceID == "" {
			continue
		}
		out = append(out, ws)
	}
	return out, nil
}

func workspaceFromRecord(rec map[string]any) types.WorkspaceScope {
	return types.WorkspaceScope{
		Name:           str(rec["name"]),
		ResourceGroup:  str(rec["resourceGroup"]),
		SubscriptionID: str(rec["subscriptionId"]),
		TenantID:       str(rec["tenantId"]),
		Location:       str(rec["location"]),
		WorkspaceID:    str(rec["customerId"]),
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
