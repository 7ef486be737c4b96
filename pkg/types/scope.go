package types

// WorkspaceScope identifies a Log Analytics workspace and the directory
// context it lives in.
type WorkspaceScope struct {
	TenantID       string
	TenantName     string
	SubscriptionID string
	ResourceGroup  string
	Name           string
	WorkspaceID    string
	Location       string
}

// ResourceScope identifies a single Azure resource picked by the operator.
type ResourceScope struct {
	ID             string
	Name           string
	Type           string
	ResourceGroup  string
	SubscriptionID string
	Location       string
}

// AutoContext returns the token values derived from the resource identity.
// Keys match the placeholder names used by resource-scoped query templates.
func (r *ResourceScope) AutoContext() map[string]string {
	if r == nil {
		return nil
	}
	return map[string]string{
		"ResourceId":     r.ID,
		"ResourceName":   r.Name,
		"ResourceType":   r.Type,
		"ResourceGroup":  r.ResourceGroup,
		"SubscriptionId": r.SubscriptionID,
		"Location":       r.Location,
	}
}
