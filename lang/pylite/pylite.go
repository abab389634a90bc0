package pylite

import (
	"fmt"

	"github.com/oxhq/refract/cst"
)

// Language is the concrete cst.ExprParser this module runs its driver
// against. It has no state; the zero value is ready to use.
type Language struct{}

// New returns a ready-to-use Language parser.
func New() *Language { return &Language{} }

// Parse lexes and parses source into a full CST rooted at a file_input
// node. Round-tripping the returned Tree's String() must reproduce source
// byte-for-byte when no node is mutated — that invariant is what lets the
// driver diff before/after text instead of diffing trees.
func (l *Language) Parse(source string) (*cst.Tree, error) {
	toks, err := newLexer(source).tokenize()
	if err != nil {
		return nil, fmt.Errorf("pylite: lex: %w", err)
	}
	root, err := newParser(toks).parseFile()
	if err != nil {
		return nil, fmt.Errorf("pylite: parse: %w", err)
	}
	return &cst.Tree{Root: root}, nil
}

// Valid reports whether source parses without constructing a tree the
// caller intends to keep; used by the driver to revalidate generated
// output before it's written to disk.
func (l *Language) Valid(source string) bool {
	_, err := l.Parse(source)
	return err == nil
}

// ParseExpr parses a single expression (no statement wrapper, no trailing
// NEWLINE/ENDMARKER bookkeeping beyond what the tokenizer always appends),
// used by internal/imr to turn a literal default-value string into an
// Argument.Value node.
func (l *Language) ParseExpr(source string) (cst.Node, error) {
	toks, err := newLexer(source).tokenize()
	if err != nil {
		return nil, fmt.Errorf("pylite: lex expr: %w", err)
	}
	p := newParser(toks)
	node, err := p.parseTestListAsSingle()
	if err != nil {
		return nil, fmt.Errorf("pylite: parse expr: %w", err)
	}
	return node, nil
}
