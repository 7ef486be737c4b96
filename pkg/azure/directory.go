package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/jaycalderwood/KQL/pkg/types"
)

// Directory bundles the listings the console's scope resolution needs. The
// console stays ignorant of which Azure API each listing comes from.
type Directory struct {
	cred  azcore.TokenCredential
	graph *GraphClient
}

// NewDirectory builds a Directory over a credential and a Resource Graph
// client.
func NewDirectory(cred azcore.TokenCredential, graph *GraphClient) *Directory {
	return &Directory{cred: cred, graph: graph}
}

// Subscriptions lists accessible subscriptions with tenant display names
// filled in where the tenants API provides one.
func (d *Directory) Subscriptions(ctx context.Context) ([]Subscription, error) {
	subs, err := ListSubscriptions(ctx, d.cred)
	if err != nil {
		return nil, err
	}

	names, err := TenantNames(ctx, d.cred)
	if err != nil {
		// Display names are cosmetic; the ids alone are enough to proceed.
		names = nil
	}
	for i := range subs {
		if n, ok := names[subs[i].TenantID]; ok {
			subs[i].TenantName = n
		}
	}
	return subs, nil
}

// Workspaces lists every Log Analytics workspace visible across all
// accessible tenants and subscriptions.
func (d *Directory) Workspaces(ctx context.Context) ([]types.WorkspaceScope, error) {
	workspaces, err := ListWorkspaces(ctx, d.graph, nil)
	if err != nil {
		return nil, err
	}

	names, err := TenantNames(ctx, d.cred)
	if err == nil {
		for i := range workspaces {
			if n, ok := names[workspaces[i].TenantID]; ok {
				workspaces[i].TenantName = n
			}
		}
	}
	return workspaces, nil
}

// Resources lists a subscription's resources filtered by keyword.
func (d *Directory) Resources(ctx context.Context, subscriptionID, keyword string) ([]types.ResourceScope, error) {
	return ListResources(ctx, d.cred, subscriptionID, keyword)
}
