package query

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jaycalderwood/KQL/internal/message"
	"github.com/jaycalderwood/KQL/pkg/types"
)

// DefaultHuntingSpan is the hunting timespan used when neither the call nor
// the configuration supplies one.
const DefaultHuntingSpan = "P30D"

// DefaultInventoryRows bounds inventory queries when no row limit is given.
const DefaultInventoryRows = 100

// LogsBackend issues a query against a Log Analytics workspace, restricted
// to the given time window.
type LogsBackend interface {
	Query(ctx context.Context, workspaceID, q string, tr TimeRange) (*ResultSet, error)
}

// HuntingBackend submits query text and an ISO-8601 timespan to the
// advanced-hunting endpoint.
type HuntingBackend interface {
	Run(ctx context.Context, q, span string) (*ResultSet, error)
}

// InventoryBackend runs a Resource Graph query bounded by a row count.
type InventoryBackend interface {
	Query(ctx context.Context, q string, top int32) (*ResultSet, error)
}

// RemoteCallError wraps a failure surfaced by one of the backends.
type RemoteCallError struct {
	Backend BackendKind
	Err     error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("%s query failed: %v", e.Backend, e.Err)
}

func (e *RemoteCallError) Unwrap() error { return e.Err }

// Dispatcher routes a final query string to the backend matching the chosen
// kind. It performs no query-text transformation (substitution has already
// happened) and no result transformation beyond flattening "no data" to an
// empty set.
//
// Failure semantics differ per backend: workspace and inventory failures
// propagate to the caller, while hunting failures are caught, reported, and
// returned as an empty result so a batch keeps going.
type Dispatcher struct {
	Logs      LogsBackend
	Hunting   HuntingBackend
	Inventory InventoryBackend

	// DefaultSpan is the hunting timespan used when the call carries none.
	DefaultSpan string
}

// Dispatch executes q against the backend selected by kind.
//
//   - WorkspaceQuery requires scope and forwards exactly one TimeRange form.
//   - ThreatHuntingQuery uses only the duration form, falling back to
//     DefaultSpan; scope is ignored.
//   - ResourceInventoryQuery ignores tr entirely and applies rowLimit.
func (d *Dispatcher) Dispatch(ctx context.Context, kind BackendKind, q string, scope *types.WorkspaceScope, tr TimeRange, rowLimit int32) (*ResultSet, error) {
	switch kind {
	case WorkspaceQuery:
		if scope == nil || scope.WorkspaceID == "" {
			return nil, fmt.Errorf("workspace query requires a workspace scope")
		}
		rs, err := d.Logs.Query(ctx, scope.WorkspaceID, q, tr)
		if err != nil {
			return nil, &RemoteCallError{Backend: kind, Err: err}
		}
		return rs, nil

	case ThreatHuntingQuery:
		span := tr.Span
		if span == "" {
			span = d.DefaultSpan
		}
		if span == "" {
			span = DefaultHuntingSpan
		}
		rs, err := d.Hunting.Run(ctx, q, span)
		if err != nil {
			message.Error("advanced hunting query failed: %v", err)
			slog.Debug("hunting backend error", "error", err)
			return &ResultSet{}, nil
		}
		if rs == nil {
			rs = &ResultSet{}
		}
		return rs, nil

	case ResourceInventoryQuery:
		if rowLimit <= 0 {
			rowLimit = DefaultInventoryRows
		}
		rs, err := d.Inventory.Query(ctx, q, rowLimit)
		if err != nil {
			return nil, &RemoteCallError{Backend: kind, Err: err}
		}
		return rs, nil
	}
	return nil, fmt.Errorf("unknown backend kind %d", kind)
}
