package pattern

import "github.com/oxhq/refract/cst"

// String returns the folded pattern text this Pattern was compiled from.
func (p *Pattern) String() string { return p.text }

// FindAll walks tree in the given order and returns one Match per node
// that the pattern matches. bottomUp true walks children before parents,
// mirroring fissix's post-order fixer traversal (so a rewrite of an inner
// node is visible when a pattern matches an enclosing one); false walks
// parents first. Matches for a given traversal are returned in visit
// order — deterministic given a fixed tree.
func (p *Pattern) FindAll(root cst.Node, bottomUp bool) []Match {
	var out []Match
	var walk func(n cst.Node)
	tryMatch := func(n cst.Node) {
		captures := map[string]cst.Node{}
		if matchNode(p.root, []cst.Node{n}, captures) != nil {
			out = append(out, Match{Node: n, Captures: captures})
		}
	}
	walk = func(n cst.Node) {
		if !bottomUp {
			tryMatch(n)
		}
		if b, ok := n.(*cst.Branch); ok {
			for _, c := range b.Children {
				walk(c)
			}
		}
		if bottomUp {
			tryMatch(n)
		}
	}
	walk(root)
	return out
}

// matchNode attempts to match pat against the node at the front of nodes,
// returning the remaining unconsumed siblings on success or nil on
// failure. captures is mutated in place as Capture nodes succeed.
//
// Most pattern kinds consume exactly one node; Star/Optional are the
// exception, which is why this (and matchSeq below) thread the remaining
// sibling list through rather than returning a single bool.
func matchNode(pat Node, nodes []cst.Node, captures map[string]cst.Node) []cst.Node {
	if len(nodes) == 0 {
		// Only a repetition (or a capture wrapping one) matches an empty run.
		switch t := pat.(type) {
		case Star, Optional:
			return []cst.Node{}
		case Capture:
			return matchNode(t.Inner, nodes, captures)
		}
		return nil
	}
	n := nodes[0]

	switch t := pat.(type) {
	case Wildcard:
		return nodes[1:]

	case Literal:
		leaf, ok := n.(*cst.Leaf)
		if !ok {
			return nil
		}
		if !t.MatchValue && leaf.Kind != t.Kind {
			return nil
		}
		if t.MatchValue && leaf.Value != t.Value {
			return nil
		}
		return nodes[1:]

	case TypeAtom:
		branch, ok := n.(*cst.Branch)
		if !ok || branch.Kind != t.Kind {
			return nil
		}
		if matchSeq(t.Items, branch.Children, captures) == nil && len(t.Items) > 0 {
			return nil
		}
		return nodes[1:]

	case Capture:
		rest := matchNode(t.Inner, nodes, captures)
		if rest == nil {
			return nil
		}
		if len(rest) < len(nodes) {
			captures[t.Name] = n
		}
		return rest

	case Alternation:
		for _, opt := range t.Options {
			if rest := matchNode(opt, nodes, captures); rest != nil {
				return rest
			}
		}
		return nil

	case Star:
		// Greedily try consuming as many leading nodes as match Inner; the
		// caller (matchSeq) retries with fewer via the returned slice only
		// covering what this single call claims, so Star is only correct
		// when used as the last item of its sequence.
		rest := nodes
		for {
			next := matchNode(t.Inner, rest, captures)
			if next == nil || len(next) == len(rest) {
				break
			}
			rest = next
		}
		return rest

	case Optional:
		if rest := matchNode(t.Inner, nodes, captures); rest != nil {
			return rest
		}
		return nodes

	default:
		return nil
	}
}

// matchSeq matches a list of pattern items against a list of sibling
// nodes in order, requiring every item to consume something (Optional/Star
// aside) and the whole sibling list to be consumed exactly.
func matchSeq(items []Node, nodes []cst.Node, captures map[string]cst.Node) []cst.Node {
	rest := nodes
	for _, item := range items {
		next := matchNode(item, rest, captures)
		if next == nil {
			return nil
		}
		rest = next
	}
	if len(rest) != 0 {
		return nil
	}
	return nodes
}
