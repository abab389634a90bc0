package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/refract/internal/pattern"
	"github.com/oxhq/refract/lang/pylite"
)

func parse(t *testing.T, src string) *pylite.Language {
	t.Helper()
	return pylite.New()
}

func TestCompileRejectsGarbage(t *testing.T) {
	_, err := pattern.Compile("funcdef< unknown_symbol_xyz >")
	assert.Error(t, err)
}

func TestMatchSimpleFuncdefCapturesName(t *testing.T) {
	lang := parse(t, "")
	tree, err := lang.Parse("def greet(name):\n    pass\n")
	require.NoError(t, err)

	pat, err := pattern.Compile(`funcdef< 'def' function_name=NAME function_parameters=parameters< any* > any* >`)
	require.NoError(t, err)

	matches := pat.FindAll(tree.Root, false)
	require.Len(t, matches, 1)
	assert.Equal(t, " greet", matches[0].Captures["function_name"].String())
}

func TestMatchAttributeAccess(t *testing.T) {
	lang := parse(t, "")
	node, err := lang.ParseExpr("self.value")
	require.NoError(t, err)

	pat, err := pattern.Compile(`power< 'self' trailer< '.' attr_name=any > >`)
	require.NoError(t, err)

	matches := pat.FindAll(node, false)
	require.Len(t, matches, 1)
	assert.Equal(t, "value", matches[0].Captures["attr_name"].String())
}

func TestMatchAnyWildcard(t *testing.T) {
	lang := parse(t, "")
	tree, err := lang.Parse("x = 1\n")
	require.NoError(t, err)

	pat, err := pattern.Compile("any")
	require.NoError(t, err)

	matches := pat.FindAll(tree.Root, true)
	assert.NotEmpty(t, matches)
}

func TestAlternationMatchesEither(t *testing.T) {
	lang := parse(t, "")
	tree, err := lang.Parse("class Foo:\n    pass\n")
	require.NoError(t, err)

	pat, err := pattern.Compile("(classdef | funcdef)")
	require.NoError(t, err)

	matches := pat.FindAll(tree.Root, false)
	require.Len(t, matches, 1)
}
