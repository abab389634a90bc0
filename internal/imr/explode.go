package imr

import "github.com/oxhq/refract/cst"

// Explode rebuilds the single subtree a was Built from. isDef selects
// between definition-parameter shape (name, optional ": Type" annotation,
// optional "= default") and call-argument shape (bare value, "name=value",
// or "*"/"**"-prefixed unpacking).
func (a *Argument) Explode(isDef bool) cst.Node {
	if isDef {
		return a.explodeDef()
	}
	return a.explodeCall()
}

func (a *Argument) explodeDef() cst.Node {
	var nameNode cst.Node = cst.NewLeaf(cst.NAME, a.Name, a.Prefix)
	if a.Annotation != nil {
		nameNode = cst.NewBranch(cst.Tname,
			cst.NewLeaf(cst.NAME, a.Name, a.Prefix),
			cst.NewLeaf(cst.COLON, ":", ""),
			a.Annotation,
		)
	}

	if a.Star != "" {
		star := cst.NewLeaf(cst.STAR, a.Star, a.Prefix)
		if a.Name == "" {
			return star
		}
		nameNode.SetPrefix("")
		return cst.NewBranch(cst.StarExpr, star, nameNode)
	}

	if a.Value == nil {
		return nameNode
	}

	return cst.NewBranch(cst.Argument,
		nameNode,
		cst.NewLeaf(cst.EQUAL, "=", ""),
		a.Value,
	)
}

func (a *Argument) explodeCall() cst.Node {
	if a.Star != "" {
		star := cst.NewLeaf(cst.STAR, a.Star, a.Prefix)
		a.Value.SetPrefix("")
		return cst.NewBranch(cst.StarExpr, star, a.Value)
	}
	if a.Name != "" {
		a.Value.SetPrefix("")
		return cst.NewBranch(cst.Argument,
			cst.NewLeaf(cst.NAME, a.Name, a.Prefix),
			cst.NewLeaf(cst.EQUAL, "=", ""),
			a.Value,
		)
	}
	a.Value.SetPrefix(a.Prefix)
	return a.Value
}

// ExplodeList joins args' exploded nodes with comma separators, wrapping
// the result in a Typedargslist (isDef) or Arglist node when there's more
// than one — matching this grammar's single-child collapsing convention —
// or returning the bare exploded node when there's exactly one.
func ExplodeList(args []*Argument, isDef bool) cst.Node {
	if len(args) == 0 {
		return nil
	}
	nodes := make([]cst.Node, 0, len(args)*2-1)
	for i, a := range args {
		if i > 0 {
			nodes = append(nodes, cst.Comma())
		}
		nodes = append(nodes, a.Explode(isDef))
	}
	if len(args) == 1 {
		return nodes[0]
	}
	kind := cst.Arglist
	if isDef {
		kind = cst.Typedargslist
	}
	return cst.NewBranch(kind, nodes...)
}
