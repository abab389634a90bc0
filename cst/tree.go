package cst

// Tree wraps a parsed file's root Branch (always a FileInput node). It is
// owned by the per-file pipeline stage that parsed it and is dropped
// wholesale at the end of that file's processing; nothing outside the
// pipeline should retain a Tree or any Node borrowed from it past that
// point, since captures alias the tree's own nodes rather than copying them.
type Tree struct {
	Root *Branch
}

// String re-serializes the tree to source text. Round-tripping an
// unmodified Tree must reproduce the original input byte-for-byte.
func (t *Tree) String() string {
	if t.Root == nil {
		return ""
	}
	return t.Root.String()
}

// Parser is the external collaborator spec.md assumes available: something
// that turns source text into a lossless CST and can be asked whether a
// string parses at all (used by the driver's post-transform AST-validity
// check). lang/pylite is this module's concrete implementation.
type Parser interface {
	Parse(source string) (*Tree, error)
	// Valid reports whether source parses without error, without
	// constructing (or retaining) a full tree — used by the driver to
	// validate generated output cheaply.
	Valid(source string) bool
}

// ExprParser additionally builds a single expression subtree from a literal
// string, which internal/imr uses to materialize Argument.Value when a
// callback adds a brand-new argument (add_argument's value string).
type ExprParser interface {
	Parser
	ParseExpr(source string) (Node, error)
}
