package cst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/refract/cst"
)

func TestLeafString(t *testing.T) {
	leaf := cst.NewLeaf(cst.NAME, "foo", "  ")
	assert.Equal(t, "  foo", leaf.String())
}

func TestBranchRoundTrip(t *testing.T) {
	branch := cst.NewBranch(cst.Power,
		cst.NewLeaf(cst.NAME, "a", ""),
		cst.NewBranch(cst.Trailer, cst.NewLeaf(cst.DOT, ".", ""), cst.NewLeaf(cst.NAME, "b", "")),
	)
	assert.Equal(t, "a.b", branch.String())
}

func TestReplacePreservesSiblings(t *testing.T) {
	a := cst.NewLeaf(cst.NAME, "a", "")
	comma := cst.Comma()
	b := cst.NewLeaf(cst.NAME, "b", " ")
	branch := cst.NewBranch(cst.Arglist, a, comma, b)

	replacement := cst.NewLeaf(cst.NAME, "z", "")
	a.Replace(replacement)

	require.Equal(t, replacement, branch.Children[0])
	assert.Equal(t, "z, b", branch.String())
	assert.Same(t, branch, replacement.Parent())
}

func TestInsertChildNegativeIndex(t *testing.T) {
	branch := cst.NewBranch(cst.Suite,
		cst.NewLeaf(cst.NEWLINE, "\n", ""),
		cst.NewLeaf(cst.DEDENT, "", ""),
	)
	getter := cst.NewLeaf(cst.NAME, "getter", "")
	branch.InsertChild(-1, getter)

	require.Len(t, branch.Children, 3)
	assert.Same(t, getter, branch.Children[1])
	assert.Equal(t, cst.DEDENT, branch.Children[2].Type())
}

func TestWalkUp(t *testing.T) {
	leaf := cst.NewLeaf(cst.NAME, "self", "")
	inner := cst.NewBranch(cst.Power, leaf)
	outer := cst.NewBranch(cst.ExprStmt, inner)

	chain := cst.WalkUp(leaf)
	require.Len(t, chain, 3)
	assert.Same(t, leaf, chain[0])
	assert.Same(t, inner, chain[1])
	assert.Same(t, outer, chain[2])
}

func TestTypeRepr(t *testing.T) {
	assert.Equal(t, "NAME", cst.TypeRepr(cst.NAME))
	assert.Equal(t, "power", cst.TypeRepr(cst.Power))
}
