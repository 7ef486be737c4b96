package query

import "time"

// BackendKind selects which remote query API a dispatch targets.
type BackendKind int

const (
	// WorkspaceQuery runs against a Log Analytics workspace.
	WorkspaceQuery BackendKind = iota
	// ThreatHuntingQuery runs against the Graph advanced-hunting endpoint.
	ThreatHuntingQuery
	// ResourceInventoryQuery runs against Azure Resource Graph.
	ResourceInventoryQuery
)

func (k BackendKind) String() string {
	switch k {
	case WorkspaceQuery:
		return "workspace"
	case ThreatHuntingQuery:
		return "hunting"
	case ResourceInventoryQuery:
		return "inventory"
	}
	return "unknown"
}

// TimeRange is the time window for a query. Exactly one form is active per
// call: either Span (an ISO-8601 duration such as "PT24H" or "P30D") or the
// absolute Start/End pair. Span strings are passed through opaque; the
// services validate them.
type TimeRange struct {
	Span  string
	Start time.Time
	End   time.Time
}

// Span returns a duration-form time range.
func Span(s string) TimeRange {
	return TimeRange{Span: s}
}

// Between returns an absolute start/end time range.
func Between(start, end time.Time) TimeRange {
	return TimeRange{Start: start, End: end}
}

// Absolute reports whether the start/end form is the active one.
func (t TimeRange) Absolute() bool {
	return !t.Start.IsZero() || !t.End.IsZero()
}
