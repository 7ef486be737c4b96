package azure

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resourcegraph/armresourcegraph"

	"github.com/jaycalderwood/KQL/pkg/query"
)

// GraphQueryOptions represents options for executing a Resource Graph query.
type GraphQueryOptions struct {
	// Subscriptions to query. If nil, queries all accessible subscriptions.
	Subscriptions []string
	// Maximum number of records to return. If 0, the service default applies.
	Top int32
	// Skip first N records.
	Skip int32
}

// GraphClient wraps the Resource Graph client. It serves both as the
// resource-inventory query backend and as the discovery mechanism for
// workspace listings.
type GraphClient struct {
	client *armresourcegraph.Client
	logger *slog.Logger
}

// NewGraphClient creates a Resource Graph client from a credential.
func NewGraphClient(cred azcore.TokenCredential) (*GraphClient, error) {
	client, err := armresourcegraph.NewClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource graph client: %w", err)
	}

	return &GraphClient{
		client: client,
		logger: slog.Default().With("component", "GraphClient"),
	}, nil
}

// Query implements the inventory backend: run q across all accessible
// subscriptions, bounded by top rows. Rows arrive already flattened to
// scalar columns by the service.
func (c *GraphClient) Query(ctx context.Context, q string, top int32) (*query.ResultSet, error) {
	records, err := c.records(ctx, q, &GraphQueryOptions{Top: top})
	if err != nil {
		return nil, err
	}
	return query.FromRecords(records), nil
}

// records runs one Resource Graph request and returns its rows as
// loosely-typed maps.
func (c *GraphClient) records(ctx context.Context, q string, opts *GraphQueryOptions) ([]map[string]any, error) {
	if opts == nil {
		opts = &GraphQueryOptions{}
	}

	options := &armresourcegraph.QueryRequestOptions{
		ResultFormat: to.Ptr(armresourcegraph.ResultFormatObjectArray),
	}
	if opts.Top > 0 {
		options.Top = to.Ptr(opts.Top)
	}
	if opts.Skip > 0 {
		options.Skip = to.Ptr(opts.Skip)
	}

	var subPtrs []*string
	for _, sub := range opts.Subscriptions {
		subCopy := sub
		subPtrs = append(subPtrs, &subCopy)
	}

	request := armresourcegraph.QueryRequest{
		Query:         &q,
		Options:       options,
		Subscriptions: subPtrs,
	}

	response, err := c.client.Resources(ctx, request, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to execute resource graph query: %w", err)
	}

	data, ok := response.Data.([]interface{})
	if !ok {
		return nil, nil
	}

	records := make([]map[string]any, 0, len(data))
	for _, row := range data {
		if item, ok := row.(map[string]interface{}); ok {
			records = append(records, item)
		}
	}
	c.logger.Debug("resource graph page", "rows", len(records))
	return records, nil
}

// allRecords pages through a Resource Graph query until the service reports
// no more rows. Used for discovery listings, not operator queries.
func (c *GraphClient) allRecords(ctx context.Context, q string, opts *GraphQueryOptions) ([]map[string]any, error) {
	if opts == nil {
		opts = &GraphQueryOptions{}
	}

	var out []map[string]any
	var skip int32
	for {
		currentOpts := *opts
		currentOpts.Skip = skip

		options := &armresourcegraph.QueryRequestOptions{
			ResultFormat: to.Ptr(armresourcegraph.ResultFormatObjectArray),
		}
		if currentOpts.Top > 0 {
			options.Top = to.Ptr(currentOpts.Top)
		}
		if currentOpts.Skip > 0 {
			options.Skip = to.Ptr(currentOpts.Skip)
		}

		var subPtrs []*string
		for _, sub := range currentOpts.Subscriptions {
			subCopy := sub
			subPtrs = append(subPtrs, &subCopy)
		}

		response, err := c.client.Resources(ctx, armresourcegraph.QueryRequest{
			Query:         &q,
			Options:       options,
			Subscriptions: subPtrs,
		}, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to execute resource graph query: %w", err)
		}

		count := int32(0)
		if data, ok := response.Data.([]interface{}); ok {
			for _, row := range data {
				if item, ok := row.(map[string]interface{}); ok {
					out = append(out, item)
				}
			}
			count = int32(len(data))
		}

		if response.TotalRecords == nil || count == 0 ||
			int64(skip)+int64(count) >= *response.TotalRecords {
			break
		}
		skip += count
	}

	return out, nil
}
