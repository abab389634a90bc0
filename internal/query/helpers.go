package query

import "github.com/oxhq/refract/cst"

// enclosingClassName walks up from n looking for the nearest classdef
// ancestor and returns its name, or "" if n isn't nested in one —
// bowler.helpers.get_class, specialized to just the name InClass needs.
func enclosingClassName(n cst.Node) string {
	for _, ancestor := range cst.WalkUp(n) {
		b, ok := ancestor.(*cst.Branch)
		if !ok || b.Kind != cst.Classdef {
			continue
		}
		if len(b.Children) < 2 {
			return ""
		}
		name, ok := b.Children[1].(*cst.Leaf)
		if !ok {
			return ""
		}
		return name.Value
	}
	return ""
}
