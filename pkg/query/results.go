package query

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// ResultSet is the normalized tabular form every backend reduces to: an
// ordered column list and one string row per record. The column set is fixed
// by the first record and permissively unioned across later ones, so
// loosely-typed backends with ragged rows still export cleanly.
type ResultSet struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether there is nothing to render or export. A nil receiver
// counts as empty so "absent" and "no rows" behave identically downstream.
func (rs *ResultSet) Empty() bool {
	return rs == nil || len(rs.Rows) == 0
}

// FromRecords builds a ResultSet from loosely-typed records, as returned by
// Resource Graph and advanced hunting. Map keys carry no order, so the
// column order is the first record's keys sorted lexically; keys that only
// appear in later records are appended in the order they are first seen.
func FromRecords(records []map[string]any) *ResultSet {
	rs := &ResultSet{}
	if len(records) == 0 {
		return rs
	}

	index := make(map[string]int)
	for k := range records[0] {
		rs.Columns = append(rs.Columns, k)
	}
	sort.Strings(rs.Columns)
	for i, c := range rs.Columns {
		index[c] = i
	}

	for _, rec := range records {
		extra := make([]string, 0)
		for k := range rec {
			if _, ok := index[k]; !ok {
				extra = append(extra, k)
			}
		}
		sort.Strings(extra)
		for _, k := range extra {
			index[k] = len(rs.Columns)
			rs.Columns = append(rs.Columns, k)
		}

		row := make([]string, len(rs.Columns))
		for k, v := range rec {
			row[index[k]] = FormatScalar(v)
		}
		rs.Rows = append(rs.Rows, row)
	}

	// Earlier rows may be shorter than the final column set.
	for i, row := range rs.Rows {
		for len(row) < len(rs.Columns) {
			row = append(row, "")
		}
		rs.Rows[i] = row
	}
	return rs
}

// FromTable builds a ResultSet from a backend that already returns ordered
// columns and positional rows, like the Log Analytics query API. The column
// order is preserved exactly as the service returned it.
func FromTable(columns []string, rows [][]any) *ResultSet {
	rs := &ResultSet{Columns: columns}
	for _, in := range rows {
		row := make([]string, len(columns))
		for i := range columns {
			if i < len(in) {
				row[i] = FormatScalar(in[i])
			}
		}
		rs.Rows = append(rs.Rows, row)
	}
	return rs
}

// FormatScalar renders one loosely-typed cell as a string. JSON numbers
// arrive as float64; integral values drop the decimal point. Nested
// maps/slices are re-encoded as compact JSON rather than Go syntax.
func FormatScalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case json.Number:
		return t.String()
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", t)
	}
}
