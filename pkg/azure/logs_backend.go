package azure

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/monitor/azquery"

	"github.com/jaycalderwood/KQL/pkg/query"
)

// LogsClient is the Log Analytics workspace query backend.
type LogsClient struct {
	client *azquery.LogsClient
}

// NewLogsClient creates a Log Analytics query client from a credential.
func NewLogsClient(cred azcore.TokenCredential) (*LogsClient, error) {
	client, err := azquery.NewLogsClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create log analytics client: %w", err)
	}
	return &LogsClient{client: client}, nil
}

// Query runs q against the workspace identified by workspaceID, restricted
// to tr. Exactly one TimeRange form is forwarded: the absolute pair when
// populated, otherwise the duration span. The service's first table is
// returned shape-unmodified.
func (c *LogsClient) Query(ctx context.Context, workspaceID, q string, tr query.TimeRange) (*query.ResultSet, error) {
	body := azquery.Body{Query: to.Ptr(q)}
	if tr.Absolute() {
		body.Timespan = to.Ptr(azquery.NewTimeInterval(tr.Start, tr.End))
	} else if tr.Span != "" {
		body.Timespan = to.Ptr(azquery.TimeInterval(tr.Span))
	}

	res, err := c.client.QueryWorkspace(ctx, workspaceID, body, nil)
	if err != nil {
		return nil, err
	}
	if res.Error != nil {
		// Partial results still come back with tables; surface the rest.
		slog.Warn("workspace query returned a partial error", "error", res.Error)
	}
	if len(res.Tables) == 0 || res.Tables[0] == nil {
		return &query.ResultSet{}, nil
	}

	table := res.Tables[0]
	columns := make([]string, 0, len(table.Columns))
	for _, col := range table.Columns {
		if col != nil && col.Name != nil {
			columns = append(columns, *col.Name)
		} else {
			columns = append(columns, "")
		}
	}

	rows := make([][]any, 0, len(table.Rows))
	for _, r := range table.Rows {
		rows = append(rows, r)
	}
	return query.FromTable(columns, rows), nil
}
