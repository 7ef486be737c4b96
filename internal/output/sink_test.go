package output

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaycalderwood/KQL/internal/message"
	"github.com/jaycalderwood/KQL/pkg/query"
)

func TestMain(m *testing.M) {
	message.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type scriptPrompter struct {
	lines []string
	i     int
}

func (p *scriptPrompter) Line(string) (string, error) {
	if p.i >= len(p.lines) {
		return "", io.EOF
	}
	l := p.lines[p.i]
	p.i++
	return l, nil
}

func sampleResults() *query.ResultSet {
	return &query.ResultSet{
		Columns: []string{"Computer", "Count"},
		Rows: [][]string{
			{"web01", "42"},
			{"db01", "7"},
		},
	}
}

func TestEmitEmptyDoesNothing(t *testing.T) {
	prompt := &scriptPrompter{} // any Line call would EOF and error
	s := New(t.TempDir(), prompt, &bytes.Buffer{})

	require.NoError(t, s.Emit(nil, "x"))
	require.NoError(t, s.Emit(&query.ResultSet{Columns: []string{"a"}}, "x"))
	assert.Zero(t, prompt.i)
}

func TestEmitCSV(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, &scriptPrompter{lines: []string{"1"}}, &bytes.Buffer{})

	require.NoError(t, s.Emit(sampleResults(), "signins"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Regexp(t, regexp.MustCompile(`^signins_\d{8}_\d{6}\.csv$`), entries[0].Name())

	f, err := os.Open(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Computer", "Count"},
		{"web01", "42"},
		{"db01", "7"},
	}, records)
}

func TestEmitCSVCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	s := New(dir, &scriptPrompter{lines: []string{"1"}}, &bytes.Buffer{})

	require.NoError(t, s.Emit(sampleResults(), "q"))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestEmitTable(t *testing.T) {
	var buf bytes.Buffer
	s := New(t.TempDir(), &scriptPrompter{lines: []string{"2"}}, &buf)

	require.NoError(t, s.Emit(sampleResults(), "q"))

	out := buf.String()
	assert.Contains(t, out, "| Computer | Count |")
	assert.Contains(t, out, "| -------- | ----- |")
	assert.Contains(t, out, "| web01    | 42    |")
	assert.Contains(t, out, "| db01     | 7     |")
}

func TestEmitReasksOnBadChoice(t *testing.T) {
	var buf bytes.Buffer
	s := New(t.TempDir(), &scriptPrompter{lines: []string{"x", "2"}}, &buf)

	require.NoError(t, s.Emit(sampleResults(), "q"))
	assert.Contains(t, buf.String(), "web01")
}

func TestRenderPadsToWidestCell(t *testing.T) {
	var buf bytes.Buffer
	s := New(t.TempDir(), nil, &buf)

	rs := &query.ResultSet{
		Columns: []string{"c"},
		Rows:    [][]string{{"a-much-longer-value"}},
	}
	require.NoError(t, s.Render(rs))
	assert.Contains(t, buf.String(), "| c                   |")
}
