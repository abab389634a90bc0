package callback_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/refract/internal/callback"
	"github.com/oxhq/refract/internal/pattern"
	"github.com/oxhq/refract/internal/selector"
	"github.com/oxhq/refract/internal/xerrors"
	"github.com/oxhq/refract/lang/pylite"
)

func parseAndMatch(t *testing.T, src, patternText string) (*pylite.Language, *matchedTree) {
	t.Helper()
	lang := pylite.New()
	tree, err := lang.Parse(src)
	require.NoError(t, err)
	pat, err := pattern.Compile(patternText)
	require.NoError(t, err)
	matches := pat.FindAll(tree.Root, false)
	require.Len(t, matches, 1)
	return lang, &matchedTree{tree: tree, match: matches[0]}
}

type matchedTree struct {
	tree  interface{ String() string }
	match pattern.Match
}

func TestRenameFunctionName(t *testing.T) {
	_, mt := parseAndMatch(t, "def greet(name):\n    pass\n", selector.Function("greet"))
	err := callback.Rename("greet", "farewell", mt.match)
	require.NoError(t, err)
	assert.Equal(t, "def farewell(name):\n    pass\n", mt.tree.String())
}

func TestRenameAttributeAccess(t *testing.T) {
	lang := pylite.New()
	src := "class C:\n    def use(self):\n        return self.value\n"
	tree, err := lang.Parse(src)
	require.NoError(t, err)
	pat, err := pattern.Compile(selector.Attribute("value"))
	require.NoError(t, err)
	matches := pat.FindAll(tree.Root, false)
	require.Len(t, matches, 1)

	err = callback.Rename("value", "amount", matches[0])
	require.NoError(t, err)
	assert.Equal(t, "class C:\n    def use(self):\n        return self.amount\n", tree.String())
}

func TestAddArgumentAppendsToDefinition(t *testing.T) {
	lang, mt := parseAndMatch(t, "def greet(name):\n    pass\n", selector.Function("greet"))
	value, err := lang.ParseExpr("True")
	require.NoError(t, err)

	err = callback.AddArgument(mt.match, "loud", value, false, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "def greet(name, loud=True):\n    pass\n", mt.tree.String())
}

func TestRemoveArgumentDeletesIt(t *testing.T) {
	_, mt := parseAndMatch(t, "def greet(name, loud):\n    pass\n", selector.Function("greet"))
	err := callback.RemoveArgument(mt.match, "loud")
	require.NoError(t, err)
	assert.Equal(t, "def greet(name):\n    pass\n", mt.tree.String())
}

func TestRemoveArgumentRejectsStarArgs(t *testing.T) {
	_, mt := parseAndMatch(t, "def greet(name, *args):\n    pass\n", selector.Function("greet"))
	err := callback.RemoveArgument(mt.match, "args")
	assert.Error(t, err)
}

func TestMoveIsUnimplemented(t *testing.T) {
	_, mt := parseAndMatch(t, "def greet(name):\n    pass\n", selector.Function("greet"))
	err := callback.Move("pkg.other", "x.py")(mt.match, "x.py")
	var unimpl *xerrors.ErrUnimplemented
	assert.ErrorAs(t, err, &unimpl)
}

func TestEncapsulateSynthesizesPropertyOnce(t *testing.T) {
	lang := pylite.New()
	src := "class C:\n    def get(self):\n        return self.value\n\n    def other(self):\n        return self.value\n"
	tree, err := lang.Parse(src)
	require.NoError(t, err)
	pat, err := pattern.Compile(selector.Attribute("value"))
	require.NoError(t, err)
	matches := pat.FindAll(tree.Root, false)
	require.Len(t, matches, 2)

	enc := callback.Encapsulate("")
	for _, m := range matches {
		require.NoError(t, enc(m, "x.py"))
	}

	out := tree.String()
	assert.Contains(t, out, "self._value")
	assert.Contains(t, out, "@property")
	assert.Contains(t, out, "def value(self):")
	assert.Contains(t, out, "@value.setter")
	assert.Equal(t, 1, countOccurrences(out, "@property"))
}

func countOccurrences(s, sub string) int {
	count := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			count++
		}
	}
	return count
}
