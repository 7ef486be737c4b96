package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"
	graphsecurity "github.com/microsoftgraph/msgraph-sdk-go/security"

	"github.com/jaycalderwood/KQL/pkg/query"
)

// HuntingClient is the advanced-hunting query backend, backed by the Graph
// security API. Hunting queries are scoped by a timespan only; there is no
// workspace to target.
type HuntingClient struct {
	client *msgraphsdk.GraphServiceClient
}

// NewHuntingClient creates a Graph client from a credential.
func NewHuntingClient(cred azcore.TokenCredential) (*HuntingClient, error) {
	client, err := msgraphsdk.NewGraphServiceClientWithCredentials(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create graph client: %w", err)
	}
	return &HuntingClient{client: client}, nil
}

// Run submits query text and an ISO-8601 timespan to the hunting endpoint.
// A response without a results array flattens to an empty set; the caller
// treats empty and absent identically.
func (c *HuntingClient) Run(ctx context.Context, q, span string) (*query.ResultSet, error) {
	body := graphsecurity.NewMicrosoftGraphSecurityRunHuntingQueryRunHuntingQueryPostRequestBody()
	body.SetQuery(to.Ptr(q))
	if span != "" {
		body.SetTimespan(to.Ptr(span))
	}

	res, err := c.client.Security().MicrosoftGraphSecurityRunHuntingQuery().Post(ctx, body, nil)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return &query.ResultSet{}, nil
	}

	rows := res.GetResults()
	if len(rows) == 0 {
		return &query.ResultSet{}, nil
	}

	records := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		if r == nil {
			continue
		}
		records = append(records, r.GetAdditionalData())
	}
	return query.FromRecords(records), nil
}
