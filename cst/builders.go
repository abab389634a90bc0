package cst

// Builders mirroring fissix.fixer_util's node constructors, used by the
// callback package to synthesize replacement subtrees (renamed leaves,
// synthesized property getters/setters, rebuilt argument lists).

// Name builds a NAME leaf, defaulting its prefix to a single space the way
// fixer_util.Name does.
func Name(value string, prefix ...string) *Leaf {
	p := " "
	if len(prefix) > 0 {
		p = prefix[0]
	}
	return NewLeaf(NAME, value, p)
}

// Comma builds a bare ',' leaf.
func Comma() *Leaf { return NewLeaf(COMMA, ",", "") }

// Dot builds a bare '.' leaf.
func Dot() *Leaf { return NewLeaf(DOT, ".", "") }

// LParen builds a bare '(' leaf.
func LParen() *Leaf { return NewLeaf(LPAR, "(", "") }

// RParen builds a bare ')' leaf.
func RParen() *Leaf { return NewLeaf(RPAR, ")", "") }

// Newline builds a bare newline leaf.
func Newline() *Leaf { return NewLeaf(NEWLINE, "\n", "") }

// Attr builds the two children of a "obj.attr" power node:
// [obj, trailer<'.' attr>].
func Attr(obj, attr Node) []Node {
	return []Node{
		obj,
		NewBranch(Trailer, Dot(), attr),
	}
}
