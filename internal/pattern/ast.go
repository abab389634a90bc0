// Package pattern compiles the small pattern-matching DSL the selector
// templates (internal/selector) and raw selector text (Query.SelectPattern)
// are written in, and matches compiled patterns against a cst.Tree. The
// grammar is a reduced form of lib2to3/fissix's pattern-compiler syntax:
// type names, nested "type< children >" groups, 'quoted' literals, the
// "any" wildcard, name=pattern captures, (a | b) alternation, and trailing
// '*'/'?' for repetition, which together are expressive enough for every
// template in internal/selector.
package pattern

import "github.com/oxhq/refract/cst"

// Node is one compiled pattern term.
type Node interface{ isPatternNode() }

// Wildcard matches exactly one cst.Node of any kind ("any" in the DSL).
type Wildcard struct{}

// Literal matches a single Leaf. A 'quoted' literal in the DSL sets
// MatchValue and leaves Kind unchecked (token kind varies by lexer — '.'
// is DOT, 'def' is NAME — but the text is always what the author meant);
// a bare type name like NAME sets Kind and leaves MatchValue empty.
type Literal struct {
	Kind       cst.Kind
	MatchValue bool
	Value      string
}

// TypeAtom matches a Branch whose Kind equals Kind and whose Children
// satisfy the Items pattern list in order.
type TypeAtom struct {
	Kind  cst.Kind
	Items []Node
}

// Capture binds the first node Inner consumes to Name in the resulting
// Match; nothing is bound when Inner matches zero nodes.
type Capture struct {
	Name  string
	Inner Node
}

// Alternation matches if any one of Options matches.
type Alternation struct{ Options []Node }

// Star matches zero or more consecutive siblings against Inner — the DSL's
// trailing '*'. It is greedy and never gives nodes back, so items after a
// Star in the same sequence only match if the Star stopped before them.
type Star struct{ Inner Node }

// Optional matches zero or one sibling against Inner — the DSL's
// trailing '?'.
type Optional struct{ Inner Node }

func (Wildcard) isPatternNode()    {}
func (Literal) isPatternNode()     {}
func (TypeAtom) isPatternNode()    {}
func (Capture) isPatternNode()     {}
func (Alternation) isPatternNode() {}
func (Star) isPatternNode()        {}
func (Optional) isPatternNode()    {}

// Pattern is a compiled, ready-to-match top-level pattern.
type Pattern struct {
	root Node
	text string
}

// Match is one successful match: the tree node it matched at, and every
// named capture encountered along the way (capture values alias the
// matched tree's own nodes, never copies — callbacks mutate them in place).
type Match struct {
	Node     cst.Node
	Captures map[string]cst.Node
}
