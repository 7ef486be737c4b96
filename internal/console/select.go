package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSelection is returned when an index-based choice is empty,
// non-numeric, or resolves to nothing.
var ErrInvalidSelection = errors.New("invalid selection")

// ParseSelection parses a comma-separated list of 1-based indices against a
// list of n items. Out-of-range indices are silently dropped and duplicates
// collapse to their first use, preserving the order given. Non-numeric
// input, or a selection that ends up empty, fails with ErrInvalidSelection.
func ParseSelection(input string, n int) ([]int, error) {
	var out []int
	seen := make(map[int]bool)
	for _, f := range strings.Split(input, ",") {
		f = strings.TrimSpace(f)
		idx, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidSelection, f)
		}
		if idx < 1 || idx > n {
			continue
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, idx)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: nothing selected", ErrInvalidSelection)
	}
	return out, nil
}

// pickOne prompts for a single index in [1, n].
func pickOne(p Prompter, label string, n int) (int, error) {
	line, err := p.Line(label)
	if err != nil {
		return 0, err
	}
	sel, err := ParseSelection(line, n)
	if err != nil {
		return 0, err
	}
	if len(sel) != 1 {
		return 0, fmt.Errorf("%w: pick exactly one", ErrInvalidSelection)
	}
	return sel[0], nil
}
