package console

import (
	"context"
	"fmt"

	"github.com/jaycalderwood/KQL/internal/message"
	"github.com/jaycalderwood/KQL/pkg/azure"
	"github.com/jaycalderwood/KQL/pkg/types"
)

// resolveWorkspace presents every workspace visible across all accessible
// tenants and subscriptions and returns the operator's pick.
func (c *Console) resolveWorkspace(ctx context.Context) (*types.WorkspaceScope, error) {
	workspaces, err := c.dir.Workspaces(ctx)
	if err != nil {
		return nil, err
	}
	if len(workspaces) == 0 {
		return nil, fmt.Errorf("no workspaces visible: %w", azure.ErrNothingFound)
	}

	message.Section("Workspaces")
	for i, ws := range workspaces {
		tenant := ws.TenantName
		if tenant == "" {
			tenant = ws.TenantID
		}
		fmt.Fprintf(c.out, " %2d) %s  (%s / %s / %s)\n", i+1, ws.Name, tenant, ws.SubscriptionID, ws.ResourceGroup)
	}

	idx, err := pickOne(c.prompt, "Workspace > ", len(workspaces))
	if err != nil {
		return nil, err
	}
	ws := workspaces[idx-1]
	return &ws, nil
}

// resolveResource walks the operator from subscription to a keyword-filtered
// resource listing and returns the picked resource identity.
func (c *Console) resolveResource(ctx context.Context) (*types.ResourceScope, error) {
	subs, err := c.dir.Subscriptions(ctx)
	if err != nil {
		return nil, err
	}

	message.Section("Subscriptions")
	for i, s := range subs {
		tenant := s.TenantName
		if tenant == "" {
			tenant = s.TenantID
		}
		fmt.Fprintf(c.out, " %2d) %s  (%s, %s)\n", i+1, s.Name, tenant, s.State)
	}
	idx, err := pickOne(c.prompt, "Subscription > ", len(subs))
	if err != nil {
		return nil, err
	}

	keyword, err := c.prompt.Line("Resource keyword (empty for all) > ")
	if err != nil {
		return nil, err
	}

	resources, err := c.dir.Resources(ctx, subs[idx-1].ID, keyword)
	if err != nil {
		return nil, err
	}
	if len(resources) == 0 {
		return nil, fmt.Errorf("no matching resources: %w", azure.ErrNothingFound)
	}

	message.Section("Resources")
	for i, r := range resources {
		fmt.Fprintf(c.out, " %2d) %s  (%s, %s)\n", i+1, r.Name, r.Type, r.ResourceGroup)
	}
	idx, err = pickOne(c.prompt, "Resource > ", len(resources))
	if err != nil {
		return nil, err
	}
	res := resources[idx-1]
	return &res, nil
}
