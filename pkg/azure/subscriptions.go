package azure

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
)

// Subscription is one subscription visible to the signed-in identity.
type Subscription struct {
	ID         string
	Name       string
	TenantID   string
	TenantName string
	State      string
}

// ListSubscriptions returns all subscriptions accessible to the identity,
// across every tenant the credential can reach.
func ListSubscriptions(ctx context.Context, cred azcore.TokenCredential) ([]Subscription, error) {
	subsClient, err := armsubscriptions.NewClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}

	var subs []Subscription
	pager := subsClient.NewListPager(nil)

	pageCount := 0
	for pager.More() {
		pageCount++
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list subscriptions: %w", err)
		}
		slog.Debug("subscriptions page", "page", pageCount, "count", len(page.Value))

		for _, sub := range page.Value {
			if sub == nil || sub.SubscriptionID == nil {
				continue
			}

			s := Subscription{ID: *sub.SubscriptionID, Name: "Unknown", State: "Unknown"}
			if sub.DisplayName != nil {
				s.Name = *sub.DisplayName
			}
			if sub.State != nil {
				s.State = string(*sub.State)
			}
			if sub.TenantID != nil {
				s.TenantID = *sub.TenantID
			}
			subs = append(subs, s)
		}
	}

	if len(subs) == 0 {
		return nil, fmt.Errorf("no accessible subscriptions: %w", ErrNothingFound)
	}
	return subs, nil
}

// TenantNames maps tenant ids to display names for the scope menus. Tenants
// without a display name are simply absent from the map.
func TenantNames(ctx context.Context, cred azcore.TokenCredential) (map[string]string, error) {
	client, err := armsubscriptions.NewTenantsClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tenants client: %w", err)
	}

	names := make(map[string]string)
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list tenants: %w", err)
		}
		for _, t := range page.Value {
			if t == nil || t.TenantID == nil || t.DisplayName == nil {
				continue
			}
			names[*t.TenantID] = *t.DisplayName
		}
	}
	return names, nil
}
