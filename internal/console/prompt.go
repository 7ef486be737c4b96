package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter reads one line of operator input after printing a prompt.
type Prompter interface {
	Line(prompt string) (string, error)
}

// IOPrompter is the interactive Prompter over a reader/writer pair,
// normally stdin/stdout.
type IOPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter wraps in/out as a line prompter.
func NewPrompter(in io.Reader, out io.Writer) *IOPrompter {
	return &IOPrompter{in: bufio.NewReader(in), out: out}
}

// Line prints prompt and reads one line, stripping the trailing newline.
// A final unterminated line is still returned before EOF surfaces.
func (p *IOPrompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptResolver asks the operator for each token value.
type promptResolver struct {
	p Prompter
}

func (r promptResolver) Resolve(name string) (string, error) {
	return r.p.Line(fmt.Sprintf("Value for {{%s}}: ", name))
}
