package imr

import (
	"fmt"
	"strings"

	"github.com/oxhq/refract/cst"
	"github.com/oxhq/refract/internal/xerrors"
)

// FunctionSpec is the reversible argument-list view of one funcdef's
// parameters<> node, or one call's trailer<'(' arglist ')'> node — bowler's
// imr.FunctionSpec. The query builder's add_argument/modify_argument/
// remove_argument callbacks all go through this rather than editing the
// matched subtree's children directly, since editing the Argument list and
// calling Explode is what keeps punctuation and prefixes consistent.
type FunctionSpec struct {
	Name      string
	Arguments []*Argument
	IsDef     bool
	node      *cst.Branch // the captured parameters<> or trailer<(...)> node
}

// Build derives a FunctionSpec from a selector match's captures. It
// requires "function_name" and "function_parameters" (the conventions
// every template in internal/selector's function/method shapes uses);
// IsDef follows from which kind of node function_parameters captured.
func Build(captures map[string]cst.Node) (*FunctionSpec, error) {
	nameNode, ok := captures["function_name"]
	if !ok {
		return nil, missingCapture("function_name")
	}
	paramsNode, ok := captures["function_parameters"]
	if !ok {
		return nil, missingCapture("function_parameters")
	}
	branch, ok := paramsNode.(*cst.Branch)
	if !ok {
		return nil, missingCapture("function_parameters (not a node)")
	}

	isDef := branch.Kind == cst.Parameters
	container := innerArgsContainer(branch)

	var args []*Argument
	if container != nil {
		built, err := BuildList(container, isDef)
		if err != nil {
			return nil, err
		}
		args = built
	}

	return &FunctionSpec{
		Name:      strings.TrimSpace(nameNode.String()),
		Arguments: args,
		IsDef:     isDef,
		node:      branch,
	}, nil
}

// innerArgsContainer returns the middle child of a parameters<>/trailer<>
// node — the typedargslist/arglist/bare-argument sitting between the '('
// and ')' leaves — or nil if the parens are empty.
func innerArgsContainer(branch *cst.Branch) cst.Node {
	if len(branch.Children) != 3 {
		return nil
	}
	return branch.Children[1]
}

// Explode rebuilds fs's captured parameters<>/trailer<(...)> subtree from
// fs.Arguments and replaces it in the tree, preserving the original
// closing paren's prefix — the one piece of the original subtree's
// formatting that doesn't derive from any single Argument.
func (fs *FunctionSpec) Explode() {
	lpar := cst.NewLeaf(cst.LPAR, "(", "")
	rpar := cst.NewLeaf(cst.RPAR, ")", lastRParPrefix(fs.node))

	var children []cst.Node
	if len(fs.Arguments) == 0 {
		children = []cst.Node{lpar, rpar}
	} else {
		children = []cst.Node{lpar, ExplodeList(fs.Arguments, fs.IsDef), rpar}
	}

	replacement := cst.NewBranch(fs.node.Kind, children...)
	fs.node.Replace(replacement)
	fs.node = replacement
}

func lastRParPrefix(branch *cst.Branch) string {
	for i := len(branch.Children) - 1; i >= 0; i-- {
		if leaf, ok := branch.Children[i].(*cst.Leaf); ok && leaf.Kind == cst.RPAR {
			return leaf.Prefix()
		}
	}
	return ""
}

func missingCapture(name string) error {
	return xerrors.NewIMRError(fmt.Sprintf("selector match is missing required capture %q", name))
}
