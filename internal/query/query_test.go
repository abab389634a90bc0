package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/refract/internal/query"
	"github.com/oxhq/refract/lang/pylite"
)

func TestCompileDefaultsToSelectRoot(t *testing.T) {
	q := query.New("x.py")
	fixers, err := q.Compile()
	require.NoError(t, err)
	require.Len(t, fixers, 1)
	assert.Equal(t, "any", fixers[0].Pattern.String())
}

func TestIsFilenameRejectsBadRegex(t *testing.T) {
	q := query.New("x.py").SelectFunction("f").IsFilename("(", "")
	_, err := q.Compile()
	assert.Error(t, err)
}

func TestFilterBeforeSelectorRecordsError(t *testing.T) {
	q := query.New("x.py").IsCall()
	assert.Error(t, q.Err())
}

func TestInClassFilterNarrowsMatches(t *testing.T) {
	lang := pylite.New()
	tree, err := lang.Parse("class Greeter:\n    def hello(self):\n        pass\n\n\ndef hello():\n    pass\n")
	require.NoError(t, err)

	q := query.New("x.py").SelectMethod("hello").InClass("Greeter", false)
	fixers, err := q.Compile()
	require.NoError(t, err)
	require.Len(t, fixers, 1)

	matches := fixers[0].Pattern.FindAll(tree.Root, false)
	require.Len(t, matches, 2)

	var kept []string
	for _, m := range matches {
		if fixers[0].Filters[0](m, "x.py") {
			kept = append(kept, m.Node.String())
		}
	}
	require.Len(t, kept, 1)
}
