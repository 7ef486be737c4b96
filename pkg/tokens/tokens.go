// Package tokens resolves {{NAME}} placeholder markers in query templates.
// Query text is otherwise opaque; nothing here parses or validates KQL.
package tokens

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholder = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)

// Resolver supplies a value for a placeholder the auto-context did not
// cover. The console wires an interactive prompt; non-interactive callers
// use SubstituteStrict instead.
type Resolver interface {
	Resolve(name string) (string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(name string) (string, error)

func (f ResolverFunc) Resolve(name string) (string, error) { return f(name) }

// UnresolvedError lists every placeholder that could not be resolved.
type UnresolvedError struct {
	Names []string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("unresolved tokens: %s", strings.Join(e.Names, ", "))
}

// Names returns the distinct placeholder identifiers in template, in order
// of first appearance.
func Names(template string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range placeholder.FindAllStringSubmatch(template, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}

// Substitute fills template's placeholders. Names present in auto with a
// non-empty value are replaced first; every remaining name is resolved
// exactly once through r and all its occurrences replaced with the same
// value. Replacement is literal, and a substituted value that itself looks
// like {{...}} is never re-scanned. An empty resolved value replaces the
// placeholder with an empty string; malformed markers pass through untouched.
func Substitute(template string, auto map[string]string, r Resolver) (string, error) {
	names := Names(template)
	out := template

	replaced := make(map[string]bool)
	for _, name := range names {
		if v, ok := auto[name]; ok && v != "" {
			out = strings.ReplaceAll(out, "{{"+name+"}}", v)
			replaced[name] = true
		}
	}

	var missing []string
	for _, name := range names {
		if replaced[name] {
			continue
		}
		if r == nil {
			missing = append(missing, name)
			continue
		}
		v, err := r.Resolve(name)
		if err != nil {
			return "", fmt.Errorf("resolving token %q: %w", name, err)
		}
		out = strings.ReplaceAll(out, "{{"+name+"}}", v)
	}
	if len(missing) > 0 {
		return "", &UnresolvedError{Names: missing}
	}
	return out, nil
}

// SubstituteStrict is the fail-fast variant for non-interactive use: any
// placeholder not covered by auto fails the call, listing every missing name.
func SubstituteStrict(template string, auto map[string]string) (string, error) {
	return Substitute(template, auto, nil)
}
