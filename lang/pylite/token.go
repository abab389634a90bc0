// Package pylite is a small, lossless lexer/parser for a Python-flavored
// subset of the target language. It exists to give the refactoring engine
// something real to parse end-to-end; it is not a complete grammar. It
// implements cst.Parser (and cst.ExprParser) so the driver and the IMR can
// depend on it the same way they would on any other lossless front end.
package pylite

import "github.com/oxhq/refract/cst"

// token is an internal lexer artifact: a single terminal with the prefix
// (whitespace + comments) immediately preceding it.
type token struct {
	kind   cst.Kind
	value  string
	prefix string
}
