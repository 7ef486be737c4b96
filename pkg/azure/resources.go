package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"

	"github.com/jaycalderwood/KQL/pkg/types"
)

// ListResources pages through a subscription's resources, keeping those
// whose name or type contains keyword (case-insensitive; empty keyword keeps
// everything). Feeds the resource-scoped flow's pick list.
func ListResources(ctx context.Context, cred azcore.TokenCredential, subscriptionID, keyword string) ([]types.ResourceScope, error) {
	client, err := armresources.NewClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource client: %w", err)
	}

	kw := strings.ToLower(keyword)

	var out []types.ResourceScope
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list resources: %w", err)
		}
		for _, r := range page.Value {
			if r == nil || r.ID == nil {
				continue
			}
			rs := types.ResourceScope{
				ID:             *r.ID,
				SubscriptionID: subscriptionID,
				ResourceGroup:  resourceGroupFromID(*r.ID),
			}
			if r.Name != nil {
				rs.Name = *r.Name
			}
			if r.Type != nil {
				rs.Type = *r.Type
			}
			if r.Location != nil {
				rs.Location = *r.Location
			}
			if kw != "" &&
				!strings.Contains(strings.ToLower(rs.Name), kw) &&
				!strings.Contains(strings.ToLower(rs.Type), kw) {
				continue
			}
			out = append(out, rs)
		}
	}
	return out, nil
}

// resourceGroupFromID pulls the resource group segment out of a full ARM id.
func resourceGroupFromID(id string) string {
	parts := strings.Split(id, "/")
	for i := 0; i < len(parts)-1; i++ {
		if strings.EqualFold(parts[i], "resourceGroups") {
			return parts[i+1]
		}
	}
	return ""
}
