package imr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/refract/internal/imr"
	"github.com/oxhq/refract/internal/pattern"
	"github.com/oxhq/refract/internal/selector"
	"github.com/oxhq/refract/lang/pylite"
)

func matchOne(t *testing.T, src, patternText string) pattern.Match {
	t.Helper()
	lang := pylite.New()
	tree, err := lang.Parse(src)
	require.NoError(t, err)
	pat, err := pattern.Compile(patternText)
	require.NoError(t, err)
	matches := pat.FindAll(tree.Root, false)
	require.Len(t, matches, 1)
	return matches[0]
}

func TestBuildFunctionSpecDefinition(t *testing.T) {
	m := matchOne(t, "def greet(name, greeting='hi'):\n    pass\n", selector.Function("greet"))

	spec, err := imr.Build(m.Captures)
	require.NoError(t, err)
	assert.Equal(t, "greet", spec.Name)
	assert.True(t, spec.IsDef)
	require.Len(t, spec.Arguments, 2)
	assert.Equal(t, "name", spec.Arguments[0].Name)
	assert.Equal(t, "greeting", spec.Arguments[1].Name)
	require.NotNil(t, spec.Arguments[1].Value)
	assert.Equal(t, "'hi'", spec.Arguments[1].Value.String())
}

func TestFunctionSpecExplodeAddsArgument(t *testing.T) {
	lang := pylite.New()
	tree, err := lang.Parse("def greet(name):\n    pass\n")
	require.NoError(t, err)

	pat, err := pattern.Compile(selector.Function("greet"))
	require.NoError(t, err)
	matches := pat.FindAll(tree.Root, false)
	require.Len(t, matches, 1)

	spec, err := imr.Build(matches[0].Captures)
	require.NoError(t, err)

	value, err := lang.ParseExpr("True")
	require.NoError(t, err)

	spec.Arguments = append(spec.Arguments, &imr.Argument{Name: "loud", Value: value, Prefix: " "})
	spec.Explode()

	assert.Equal(t, "def greet(name, loud=True):\n    pass\n", tree.String())
}

func TestBuildListSingleArgumentNotWrapped(t *testing.T) {
	m := matchOne(t, "def greet(name):\n    pass\n", selector.Function("greet"))
	spec, err := imr.Build(m.Captures)
	require.NoError(t, err)
	require.Len(t, spec.Arguments, 1)
	assert.Equal(t, "name", spec.Arguments[0].Name)
}
