package tokens

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	tests := []struct {
		name     string
		template string
		expected []string
	}{
		{
			name:     "none",
			template: "SecurityEvent | take 10",
			expected: nil,
		},
		{
			name:     "distinct in first-appearance order",
			template: "{{B}} and {{A}} and {{B}} again",
			expected: []string{"B", "A"},
		},
		{
			name:     "malformed markers ignored",
			template: "{{Open and {single}} and {{bad name}}",
			expected: nil,
		},
		{
			name:     "identifier charset",
			template: "{{Resource_Id1}}",
			expected: []string{"Resource_Id1"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Names(tc.template))
		})
	}
}

func TestSubstituteAutoContext(t *testing.T) {
	auto := map[string]string{
		"ResourceId":    "/sub/.../vm1",
		"ResourceGroup": "rg-prod",
	}

	// Every prompt would be a test failure: the auto-context covers all tokens.
	failing := ResolverFunc(func(name string) (string, error) {
		t.Fatalf("unexpected prompt for %q", name)
		return "", nil
	})

	out, err := Substitute("Resource: {{ResourceId}} in {{ResourceGroup}}", auto, failing)
	require.NoError(t, err)
	assert.Equal(t, "Resource: /sub/.../vm1 in rg-prod", out)
}

func TestSubstitutePrompted(t *testing.T) {
	var asked []string
	r := ResolverFunc(func(name string) (string, error) {
		asked = append(asked, name)
		return "bar", nil
	})

	out, err := Substitute("{{Foo}} = {{Foo}}", nil, r)
	require.NoError(t, err)
	assert.Equal(t, "bar = bar", out)
	// Resolved exactly once despite two occurrences.
	assert.Equal(t, []string{"Foo"}, asked)
}

func TestSubstituteEmptyAutoValuePrompts(t *testing.T) {
	auto := map[string]string{"Foo": ""}
	r := ResolverFunc(func(name string) (string, error) { return "x", nil })

	out, err := Substitute("{{Foo}}", auto, r)
	require.NoError(t, err)
	assert.Equal(t, "x", out)
}

func TestSubstituteEmptyPromptValue(t *testing.T) {
	r := ResolverFunc(func(name string) (string, error) { return "", nil })

	out, err := Substitute("a{{Foo}}b", nil, r)
	require.NoError(t, err)
	assert.Equal(t, "ab", out)
}

func TestSubstituteNoPlaceholdersUnchanged(t *testing.T) {
	template := "Heartbeat | summarize count() by Computer"
	out, err := Substitute(template, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, template, out)
}

func TestSubstituteValueNotRescanned(t *testing.T) {
	auto := map[string]string{"Outer": "{{Inner}}"}
	r := ResolverFunc(func(name string) (string, error) {
		t.Fatalf("unexpected prompt for %q", name)
		return "", nil
	})

	out, err := Substitute("{{Outer}}", auto, r)
	require.NoError(t, err)
	// The substituted value keeps its marker shape; it is not resolved again.
	assert.Equal(t, "{{Inner}}", out)
}

func TestSubstituteResolverError(t *testing.T) {
	boom := errors.New("boom")
	r := ResolverFunc(func(name string) (string, error) { return "", boom })

	_, err := Substitute("{{Foo}}", nil, r)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestSubstituteStrict(t *testing.T) {
	auto := map[string]string{"A": "1"}

	_, err := SubstituteStrict("{{A}} {{B}} {{C}}", auto)
	require.Error(t, err)

	var unresolved *UnresolvedError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, []string{"B", "C"}, unresolved.Names)

	out, err := SubstituteStrict("{{A}}", auto)
	require.NoError(t, err)
	assert.Equal(t, "1", out)
}
