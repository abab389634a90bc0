package selector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/refract/internal/pattern"
	"github.com/oxhq/refract/internal/selector"
	"github.com/oxhq/refract/lang/pylite"
)

func TestDottedPartsSingle(t *testing.T) {
	assert.Equal(t, "'os'", selector.DottedParts("os"))
}

func TestDottedPartsMultiple(t *testing.T) {
	assert.Equal(t, "dotted_name< 'os' '.' 'path' >", selector.DottedParts("os.path"))
}

func TestPowerPartsMultiple(t *testing.T) {
	assert.Equal(t, "'os' trailer< '.' 'path' >", selector.PowerParts("os.path"))
}

func TestFunctionTemplateCompilesAndMatches(t *testing.T) {
	text := selector.Function("greet")
	pat, err := pattern.Compile(text)
	require.NoError(t, err)

	lang := pylite.New()
	tree, err := lang.Parse("def greet(name):\n    pass\n")
	require.NoError(t, err)

	matches := pat.FindAll(tree.Root, false)
	require.Len(t, matches, 1)
	assert.Equal(t, " greet", matches[0].Captures["function_name"].String())
}

func TestClassTemplateCompilesAndMatches(t *testing.T) {
	text := selector.Class("Greeter")
	pat, err := pattern.Compile(text)
	require.NoError(t, err)

	lang := pylite.New()
	tree, err := lang.Parse("class Greeter(Base):\n    pass\n")
	require.NoError(t, err)

	matches := pat.FindAll(tree.Root, false)
	require.Len(t, matches, 1)
}

func TestModuleTemplateMatchesImportFrom(t *testing.T) {
	text := selector.Module("os.path")
	pat, err := pattern.Compile(text)
	require.NoError(t, err)

	lang := pylite.New()
	tree, err := lang.Parse("from os.path import join\n")
	require.NoError(t, err)

	matches := pat.FindAll(tree.Root, false)
	require.Len(t, matches, 1)
}
