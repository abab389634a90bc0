// Package imr is the intermediate representation that turns a call-site
// or definition argument list subtree into a typed, reversible Go value
// and back — bowler.imr's Go counterpart. Build/Explode must round-trip:
// exploding a built Argument list reproduces the original subtree's text
// exactly when nothing was edited, which is what lets add_argument,
// modify_argument, and remove_argument rewrite one argument in place
// without disturbing the punctuation and prefixes around the others.
package imr

import (
	"github.com/oxhq/refract/cst"
	"github.com/oxhq/refract/internal/xerrors"
)

// Argument is one call-site or definition parameter, reversibly derived
// from (and rebuildable into) a subtree of a parameters<> or arglist/
// trailer<(...)> node.
type Argument struct {
	// Name is the parameter name (definitions always have one; call-site
	// arguments only have one for keyword arguments).
	Name string
	// Value is the expression node: a definition's default value (nil if
	// none), or a call argument's value (always set, including for bare
	// positional arguments).
	Value cst.Node
	// Annotation is a definition parameter's ": Type" node, or nil.
	Annotation cst.Node
	// Star is "", "*", or "**" — marks *args/**kwargs definitions, or
	// *unpacked/**unpacked call arguments.
	Star string
	// Prefix is the whitespace preceding this argument's first token,
	// preserved so re-exploding doesn't collapse "f(a,  b)" to "f(a, b)".
	Prefix string
}

// BuildArgument classifies one already-comma-split child of a parameters<> or
// arglist/trailer<(...)> node into an Argument. isDef distinguishes
// definition-parameter shapes (Tname, bare NAME, star-prefixed NAME) from
// call-argument shapes (Argument name=value, StarExpr, bare value).
func BuildArgument(node cst.Node, isDef bool) (*Argument, error) {
	switch n := node.(type) {
	case *cst.Branch:
		switch n.Kind {
		case cst.StarExpr:
			if len(n.Children) != 2 {
				return nil, xerrors.NewIMRError("malformed star_expr in argument list")
			}
			star := n.Children[0].(*cst.Leaf)
			value := n.Children[1]
			arg := &Argument{Star: star.Value, Prefix: node.Prefix()}
			if isDef {
				arg.Name = value.String()
			} else {
				arg.Value = value
			}
			return arg, nil

		case cst.Tname:
			if len(n.Children) != 3 {
				return nil, xerrors.NewIMRError("malformed tname in parameter list")
			}
			name, ok := n.Children[0].(*cst.Leaf)
			if !ok {
				return nil, xerrors.NewIMRError("tname's first child is not a NAME leaf")
			}
			return &Argument{
				Name:       name.Value,
				Annotation: n.Children[2],
				Prefix:     node.Prefix(),
			}, nil

		case cst.Argument:
			if len(n.Children) == 2 {
				// A '**' unpacking argument, packaged as an Argument node
				// by the call-site argument parser.
				star := n.Children[0].(*cst.Leaf)
				return &Argument{Star: star.Value, Value: n.Children[1], Prefix: node.Prefix()}, nil
			}
			if len(n.Children) != 3 {
				return nil, xerrors.NewIMRError("malformed argument node")
			}
			lhs := n.Children[0]
			value := n.Children[2]
			if isDef {
				switch nameNode := lhs.(type) {
				case *cst.Leaf:
					return &Argument{Name: nameNode.Value, Value: value, Prefix: node.Prefix()}, nil
				case *cst.Branch:
					if nameNode.Kind == cst.Tname {
						name := nameNode.Children[0].(*cst.Leaf)
						return &Argument{
							Name: name.Value, Annotation: nameNode.Children[2],
							Value: value, Prefix: node.Prefix(),
						}, nil
					}
				}
				return nil, xerrors.NewIMRError("unrecognized default-parameter shape")
			}
			name, ok := lhs.(*cst.Leaf)
			if !ok {
				return nil, xerrors.NewIMRError("keyword argument name is not a NAME leaf")
			}
			return &Argument{Name: name.Value, Value: value, Prefix: node.Prefix()}, nil
		}

	case *cst.Leaf:
		arg := &Argument{Prefix: n.Prefix()}
		if isDef {
			arg.Name = n.Value
		} else {
			arg.Value = n
		}
		return arg, nil
	}
	return nil, xerrors.NewIMRError("unrecognized argument node shape")
}

// BuildList splits a parameters<>/arglist/trailer<(...)> node's children on
// COMMA separators and builds an Argument from each element, or treats the
// whole node as a single element when the parser already collapsed a
// one-argument list to a bare node (lang/pylite builds no list node for a
// single parameter or argument).
func BuildList(container cst.Node, isDef bool) ([]*Argument, error) {
	items := splitByComma(container)
	args := make([]*Argument, 0, len(items))
	for _, item := range items {
		arg, err := BuildArgument(item, isDef)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// splitByComma returns the non-comma children of container in order, or
// []cst.Node{container} if container isn't itself a comma-joined list
// node (Typedargslist/Arglist) — i.e. it's the single already-built item.
func splitByComma(container cst.Node) []cst.Node {
	b, ok := container.(*cst.Branch)
	if !ok || (b.Kind != cst.Typedargslist && b.Kind != cst.Arglist) {
		return []cst.Node{container}
	}
	var out []cst.Node
	for _, c := range b.Children {
		if leaf, ok := c.(*cst.Leaf); ok && leaf.Kind == cst.COMMA {
			continue
		}
		out = append(out, c)
	}
	return out
}
