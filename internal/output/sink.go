// Package output is the result sink: it turns a normalized result set into
// a delimited file or an auto-sized console table.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jaycalderwood/KQL/internal/message"
	"github.com/jaycalderwood/KQL/pkg/query"
)

// Prompter reads one line of operator input. Declared here so the sink can
// be driven by any prompt source, scripted ones included.
type Prompter interface {
	Line(prompt string) (string, error)
}

// Sink writes result sets to the output directory or renders them to Out.
type Sink struct {
	Dir    string
	Out    io.Writer
	Prompt Prompter
}

// New returns a Sink writing files under dir and tables to out.
func New(dir string, prompt Prompter, out io.Writer) *Sink {
	return &Sink{Dir: dir, Out: out, Prompt: prompt}
}

// Emit does nothing for an empty or absent result set. Otherwise it asks
// the operator whether to export a CSV file or print a table, re-asking on
// unrecognized input.
func (s *Sink) Emit(rs *query.ResultSet, prefix string) error {
	if rs.Empty() {
		return nil
	}

	for {
		ans, err := s.Prompt.Line("Output: [1] CSV file  [2] table > ")
		if err != nil {
			return err
		}
		switch strings.TrimSpace(ans) {
		case "1":
			path, err := s.WriteCSV(rs, prefix)
			if err != nil {
				return err
			}
			message.Success("Wrote %d rows to %s", len(rs.Rows), path)
			return nil
		case "2":
			return s.Render(rs)
		}
		message.Warning("enter 1 or 2")
	}
}

// WriteCSV writes rs to <dir>/<prefix>_<YYYYMMDD_HHmmss>.csv with the
// columns as header row, creating the directory on demand. Returns the
// file path.
func (s *Sink) WriteCSV(rs *query.ResultSet, prefix string) (string, error) {
	if err := os.MkdirAll(s.Dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", s.Dir, err)
	}

	name := fmt.Sprintf("%s_%s.csv", prefix, time.Now().Format("20060102_150405"))
	path := filepath.Join(s.Dir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(rs.Columns); err != nil {
		return "", err
	}
	for _, row := range rs.Rows {
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return path, nil
}

// Render prints rs as a table with each column padded to its widest cell.
func (s *Sink) Render(rs *query.ResultSet) error {
	colWidths := make([]int, len(rs.Columns))
	for i, header := range rs.Columns {
		colWidths[i] = len(header)
	}
	for _, row := range rs.Rows {
		for i, cell := range row {
			if i < len(colWidths) && len(cell) > colWidths[i] {
				colWidths[i] = len(cell)
			}
		}
	}

	headerRow := "|"
	dividerRow := "|"
	for i, header := range rs.Columns {
		formatter := fmt.Sprintf(" %%-%ds |", colWidths[i])
		headerRow += fmt.Sprintf(formatter, header)
		dividerRow += fmt.Sprintf(" %s |", strings.Repeat("-", colWidths[i]))
	}
	fmt.Fprintln(s.Out, headerRow)
	fmt.Fprintln(s.Out, dividerRow)

	for _, row := range rs.Rows {
		rowText := "|"
		for i, cell := range row {
			if i >= len(colWidths) {
				break
			}
			formatter := fmt.Sprintf(" %%-%ds |", colWidths[i])
			rowText += fmt.Sprintf(formatter, cell)
		}
		fmt.Fprintln(s.Out, rowText)
	}
	return nil
}
