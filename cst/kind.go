// Package cst implements the lossless concrete syntax tree shared by every
// stage of the refactoring pipeline: the pattern matcher walks it, the IMR
// rebuilds argument-list subtrees from it, and the driver re-serializes it
// back to source text.
package cst

// Kind identifies the grammar symbol of a Leaf or Node. Token kinds and
// nonterminal kinds share one numbering space (tokens first) the same way
// fissix packs pgen2's token.* and pygram.python_symbols.* into a single
// int namespace, so a pattern atom can compare a node's Kind without caring
// whether it names a terminal or a production.
type Kind int

// Token kinds (terminals). Mirrors the subset of fissix.pgen2.token used by
// the selector templates and the IMR.
const (
	ENDMARKER Kind = iota
	NEWLINE
	INDENT
	DEDENT
	NAME
	NUMBER
	STRING
	OP
	COMMENT

	LPAR
	RPAR
	LSQB
	RSQB
	LBRACE
	RBRACE
	COLON
	COMMA
	SEMI
	PLUS
	MINUS
	STAR
	DOUBLESTAR
	SLASH
	DOUBLESLASH
	VBAR
	AMPER
	LESS
	GREATER
	EQUAL
	DOT
	PERCENT
	BACKQUOTE
	EQEQUAL
	NOTEQUAL
	LESSEQUAL
	GREATEREQUAL
	TILDE
	CIRCUMFLEX
	LEFTSHIFT
	RIGHTSHIFT
	AT
	PLUSEQUAL
	MINEQUAL
	DOUBLESLASHEQUAL
	RARROW

	tokenKindSentinel // marks the end of terminal Kinds; nonterminals start here
)

// Nonterminal kinds (productions). Mirrors the subset of
// fissix.pygram.python_symbols exercised by the selector templates, the IMR,
// and the callbacks.
const (
	fileInput Kind = tokenKindSentinel + iota
	ImportName
	ImportFrom
	DottedAsName
	DottedAsNames
	DottedName
	ImportAsName
	ImportAsNames
	Power
	Trailer
	Classdef
	Funcdef
	Parameters
	Typedargslist
	Tname
	Arglist
	Argument
	StarExpr
	Suite
	SimpleStmt
	ExprStmt
	Decorated
	Decorator
	Decorators
	ReturnStmt
	IfStmt
	ForStmt
	WhileStmt
	PassStmt
	Testlist
	Atom
	Atomtrailers
	Comparison
	ArithExpr
	Term
	Factor
	NotTest
	AndTest
	OrTest
	Test
	Namedexpr
	CompIter
	CompFor
	CompIf
	Listmaker
	Testlistgexp
	Dictsetmaker
	SubscriptList
	Subscript
	Sliceop
	Parameters1
	Varargslist
	Tfpdef
)

// FileInput is the whole-file root production (module).
const FileInput = fileInput

// IsTerminal reports whether k names a token kind rather than a production.
func (k Kind) IsTerminal() bool { return k < tokenKindSentinel }

var tokenNames = map[Kind]string{
	ENDMARKER: "ENDMARKER", NEWLINE: "NEWLINE", INDENT: "INDENT", DEDENT: "DEDENT",
	NAME: "NAME", NUMBER: "NUMBER", STRING: "STRING", OP: "OP", COMMENT: "COMMENT",
	LPAR: "LPAR", RPAR: "RPAR", LSQB: "LSQB", RSQB: "RSQB", LBRACE: "LBRACE", RBRACE: "RBRACE",
	COLON: "COLON", COMMA: "COMMA", SEMI: "SEMI", PLUS: "PLUS", MINUS: "MINUS",
	STAR: "STAR", DOUBLESTAR: "DOUBLESTAR", SLASH: "SLASH", DOUBLESLASH: "DOUBLESLASH",
	VBAR: "VBAR", AMPER: "AMPER", LESS: "LESS", GREATER: "GREATER", EQUAL: "EQUAL",
	DOT: "DOT", PERCENT: "PERCENT", BACKQUOTE: "BACKQUOTE", EQEQUAL: "EQEQUAL",
	NOTEQUAL: "NOTEQUAL", LESSEQUAL: "LESSEQUAL", GREATEREQUAL: "GREATEREQUAL",
	TILDE: "TILDE", CIRCUMFLEX: "CIRCUMFLEX", LEFTSHIFT: "LEFTSHIFT", RIGHTSHIFT: "RIGHTSHIFT",
	AT: "AT", PLUSEQUAL: "PLUSEQUAL", MINEQUAL: "MINEQUAL",
	DOUBLESLASHEQUAL: "DOUBLESLASHEQUAL", RARROW: "RARROW",
}

var symbolNames = map[Kind]string{
	fileInput: "file_input", ImportName: "import_name", ImportFrom: "import_from",
	DottedAsName: "dotted_as_name", DottedAsNames: "dotted_as_names", DottedName: "dotted_name",
	ImportAsName: "import_as_name", ImportAsNames: "import_as_names",
	Power: "power", Trailer: "trailer", Classdef: "classdef", Funcdef: "funcdef",
	Parameters: "parameters", Typedargslist: "typedargslist", Tname: "tname",
	Arglist: "arglist", Argument: "argument", StarExpr: "star_expr", Suite: "suite",
	SimpleStmt: "simple_stmt", ExprStmt: "expr_stmt", Decorated: "decorated",
	Decorator: "decorator", Decorators: "decorators", ReturnStmt: "return_stmt",
	IfStmt: "if_stmt", ForStmt: "for_stmt", WhileStmt: "while_stmt", PassStmt: "pass_stmt",
	Testlist: "testlist", Atom: "atom", Atomtrailers: "atom_trailers",
	Comparison: "comparison", ArithExpr: "arith_expr", Term: "term", Factor: "factor",
	NotTest: "not_test", AndTest: "and_test", OrTest: "or_test", Test: "test",
	Namedexpr: "namedexpr_test", CompIter: "comp_iter", CompFor: "comp_for", CompIf: "comp_if",
	Listmaker: "listmaker", Testlistgexp: "testlist_gexp", Dictsetmaker: "dictsetmaker",
	SubscriptList: "subscriptlist", Subscript: "subscript", Sliceop: "sliceop",
	Parameters1: "parameters1", Varargslist: "varargslist", Tfpdef: "tfpdef",
}

// TypeRepr renders a Kind the way fissix's type_repr does: the token or
// symbol name, falling back to "UNKNOWN" for any Kind with no registered
// name.
func TypeRepr(k Kind) string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	if name, ok := symbolNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

var nameToKind map[string]Kind

func init() {
	nameToKind = make(map[string]Kind, len(tokenNames)+len(symbolNames))
	for k, name := range tokenNames {
		nameToKind[name] = k
	}
	for k, name := range symbolNames {
		nameToKind[name] = k
	}
}

// KindByName is the inverse of TypeRepr: it resolves a token or symbol name
// (as written in pattern-DSL text, e.g. "funcdef" or "NAME") back to its
// Kind. Used by internal/pattern to compile type atoms.
func KindByName(name string) (Kind, bool) {
	k, ok := nameToKind[name]
	return k, ok
}
