package azure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceGroupFromID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected string
	}{
		{
			name:     "standard id",
			id:       "/subscriptions/0000/resourceGroups/rg-prod/providers/Microsoft.Compute/virtualMachines/vm1",
			expected: "rg-prod",
		},
		{
			name:     "case insensitive segment",
			id:       "/subscriptions/0000/resourcegroups/RG-Test/providers/Microsoft.Storage/storageAccounts/sa1",
			expected: "RG-Test",
		},
		{
			name:     "no resource group",
			id:       "/subscriptions/0000",
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, resourceGroupFromID(tc.id))
		})
	}
}

func TestWorkspaceFromRecord(t *testing.T) {
	rec := map[string]any{
		"name":           "la-prod",
		"resourceGroup":  "rg-logs",
		"subscriptionId": "sub-1",
		"tenantId":       "ten-1",
		"location":       "eastus",
		"customerId":     "guid-1",
	}

	ws := workspaceFromRecord(rec)
	assert.Equal(t, "la-prod", ws.Name)
	assert.Equal(t, "rg-logs", ws.ResourceGroup)
	assert.Equal(t, "sub-1", ws.SubscriptionID)
	assert.Equal(t, "ten-1", ws.TenantID)
	assert.Equal(t, "eastus", ws.Location)
	assert.Equal(t, "guid-1", ws.WorkspaceID)

	// Non-string values degrade to empty rather than panicking.
	ws = workspaceFromRecord(map[string]any{"name": 42})
	assert.Equal(t, "", ws.Name)
}
