package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRecords(t *testing.T) {
	records := []map[string]any{
		{"name": "vm1", "count": float64(3)},
		{"name": "vm2", "count": float64(12), "location": "eastus"},
	}

	rs := FromRecords(records)

	// First record's keys sorted, later-only keys appended.
	assert.Equal(t, []string{"count", "name", "location"}, rs.Columns)
	assert.Equal(t, [][]string{
		{"3", "vm1", ""},
		{"12", "vm2", "eastus"},
	}, rs.Rows)
}

func TestFromRecordsEmpty(t *testing.T) {
	assert.True(t, FromRecords(nil).Empty())
	assert.True(t, FromRecords([]map[string]any{}).Empty())
}

func TestFromTableKeepsColumnOrder(t *testing.T) {
	rs := FromTable(
		[]string{"TimeGenerated", "Computer", "Count"},
		[][]any{
			{"2026-01-01T00:00:00Z", "web01", float64(42)},
			{"2026-01-02T00:00:00Z", nil},
		},
	)

	assert.Equal(t, []string{"TimeGenerated", "Computer", "Count"}, rs.Columns)
	assert.Equal(t, [][]string{
		{"2026-01-01T00:00:00Z", "web01", "42"},
		{"2026-01-02T00:00:00Z", "", ""},
	}, rs.Rows)
}

func TestFormatScalar(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, ""},
		{"string", "abc", "abc"},
		{"bool", true, "true"},
		{"integral float", float64(3), "3"},
		{"fractional float", 3.5, "3.5"},
		{"int64", int64(9), "9"},
		{"nested map", map[string]any{"a": float64(1)}, `{"a":1}`},
		{"nested slice", []any{"x", "y"}, `["x","y"]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatScalar(tc.value))
		})
	}
}

func TestResultSetEmpty(t *testing.T) {
	var rs *ResultSet
	assert.True(t, rs.Empty())
	assert.True(t, (&ResultSet{Columns: []string{"a"}}).Empty())
	assert.False(t, (&ResultSet{Rows: [][]string{{"1"}}}).Empty())
}
