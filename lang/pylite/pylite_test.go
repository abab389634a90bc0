package pylite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/refract/cst"
	"github.com/oxhq/refract/lang/pylite"
)

func TestRoundTripSimpleModule(t *testing.T) {
	src := "import os\n\n\ndef greet(name, greeting='hi'):\n    return greeting + name\n"
	lang := pylite.New()
	tree, err := lang.Parse(src)
	require.NoError(t, err)
	assert.Equal(t, src, tree.String())
}

func TestRoundTripClassWithDecoratedMethod(t *testing.T) {
	src := "class Greeter(Base):\n    @staticmethod\n    def hello(self, name):\n        print(name)\n        return None\n"
	lang := pylite.New()
	tree, err := lang.Parse(src)
	require.NoError(t, err)
	assert.Equal(t, src, tree.String())
}

func TestRoundTripPreservesComments(t *testing.T) {
	src := "# header comment\nimport sys  # trailing\n\nx = sys.argv[0]\n"
	lang := pylite.New()
	tree, err := lang.Parse(src)
	require.NoError(t, err)
	assert.Equal(t, src, tree.String())
}

func TestValidRejectsUnterminatedString(t *testing.T) {
	lang := pylite.New()
	assert.False(t, lang.Valid("x = 'unterminated\n"))
	assert.True(t, lang.Valid("x = 1\n"))
}

func TestParseExprBuildsPowerNode(t *testing.T) {
	lang := pylite.New()
	node, err := lang.ParseExpr("obj.attr")
	require.NoError(t, err)
	assert.Equal(t, cst.Power, node.Type())
	assert.Equal(t, "obj.attr", node.String())
}

func TestParseExprLiteral(t *testing.T) {
	lang := pylite.New()
	node, err := lang.ParseExpr("42")
	require.NoError(t, err)
	assert.Equal(t, cst.NUMBER, node.Type())
}

func TestDottedImportFrom(t *testing.T) {
	src := "from pkg.sub import a, b as c\n"
	lang := pylite.New()
	tree, err := lang.Parse(src)
	require.NoError(t, err)
	assert.Equal(t, src, tree.String())
}

func TestIfElifElse(t *testing.T) {
	src := "if x:\n    pass\nelif y:\n    pass\nelse:\n    pass\n"
	lang := pylite.New()
	tree, err := lang.Parse(src)
	require.NoError(t, err)
	assert.Equal(t, src, tree.String())
}

func TestForLoopOverAttributeAccess(t *testing.T) {
	src := "for item in container.items:\n    print(item)\n"
	lang := pylite.New()
	tree, err := lang.Parse(src)
	require.NoError(t, err)
	assert.Equal(t, src, tree.String())
}

func TestCallWithKeywordAndStarArgs(t *testing.T) {
	src := "result = fn(a, b=2, *args, **kwargs)\n"
	lang := pylite.New()
	tree, err := lang.Parse(src)
	require.NoError(t, err)
	assert.Equal(t, src, tree.String())
}
