package pylite

import (
	"fmt"

	"github.com/oxhq/refract/cst"
)

// parser is a recursive-descent parser over the flat token stream produced
// by lexer.tokenize. It builds cst.Leaf/cst.Branch trees shaped to match
// the selector templates in internal/selector (the "power"/"trailer" shape
// for dotted access and calls, "typedargslist"/"tname" for parameters, and
// so on) rather than attempting a complete grammar.
type parser struct {
	toks []token
	pos  int
}

func newParser(toks []token) *parser {
	return &parser{toks: toks}
}

func (p *parser) peek() token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *parser) peekN(n int) token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *parser) advance() token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) leaf() *cst.Leaf {
	t := p.advance()
	return cst.NewLeaf(t.kind, t.value, t.prefix)
}

func (p *parser) at(kind cst.Kind) bool { return p.peek().kind == kind }

func (p *parser) atKeyword(word string) bool {
	t := p.peek()
	return t.kind == cst.NAME && t.value == word
}

func (p *parser) expect(kind cst.Kind) (*cst.Leaf, error) {
	if !p.at(kind) {
		t := p.peek()
		return nil, fmt.Errorf("expected %s, got %q at offset token %d", cst.TypeRepr(kind), t.value, p.pos)
	}
	return p.leaf(), nil
}

func (p *parser) expectKeyword(word string) (*cst.Leaf, error) {
	if !p.atKeyword(word) {
		t := p.peek()
		return nil, fmt.Errorf("expected keyword %q, got %q", word, t.value)
	}
	return p.leaf(), nil
}

// parseFile parses the entire token stream as a module (file_input).
func (p *parser) parseFile() (*cst.Branch, error) {
	var children []cst.Node
	for !p.at(cst.ENDMARKER) {
		if p.at(cst.NEWLINE) {
			children = append(children, p.leaf())
			continue
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		children = append(children, stmt)
	}
	children = append(children, p.leaf()) // ENDMARKER
	return cst.NewBranch(cst.FileInput, children...), nil
}

func (p *parser) parseStmt() (cst.Node, error) {
	switch {
	case p.at(cst.AT):
		return p.parseDecorated()
	case p.atKeyword("def"):
		return p.parseFuncdef()
	case p.atKeyword("class"):
		return p.parseClassdef()
	case p.atKeyword("if"):
		return p.parseIfStmt()
	case p.atKeyword("for"):
		return p.parseForStmt()
	case p.atKeyword("while"):
		return p.parseWhileStmt()
	default:
		return p.parseSimpleStmt()
	}
}

// parseSimpleStmt parses one logical line of small statements separated by
// ';', terminated by NEWLINE, wrapped in a simple_stmt node.
func (p *parser) parseSimpleStmt() (*cst.Branch, error) {
	var children []cst.Node
	for {
		small, err := p.parseSmallStmt()
		if err != nil {
			return nil, err
		}
		children = append(children, small)
		if p.at(cst.SEMI) {
			children = append(children, p.leaf())
			continue
		}
		break
	}
	if p.at(cst.NEWLINE) {
		children = append(children, p.leaf())
	}
	return cst.NewBranch(cst.SimpleStmt, children...), nil
}

func (p *parser) parseSmallStmt() (cst.Node, error) {
	switch {
	case p.atKeyword("pass"):
		return cst.NewBranch(cst.PassStmt, p.leaf()), nil
	case p.atKeyword("return"):
		kw := p.leaf()
		children := []cst.Node{kw}
		if !p.at(cst.NEWLINE) && !p.at(cst.SEMI) && !p.at(cst.ENDMARKER) {
			expr, err := p.parseTestListAsSingle()
			if err != nil {
				return nil, err
			}
			children = append(children, expr)
		}
		return cst.NewBranch(cst.ReturnStmt, children...), nil
	case p.atKeyword("import"):
		return p.parseImportName()
	case p.atKeyword("from"):
		return p.parseImportFrom()
	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parseExprStmt() (cst.Node, error) {
	lhs, err := p.parseTestListAsSingle()
	if err != nil {
		return nil, err
	}
	if p.at(cst.EQUAL) {
		eq := p.leaf()
		rhs, err := p.parseTestListAsSingle()
		if err != nil {
			return nil, err
		}
		return cst.NewBranch(cst.ExprStmt, lhs, eq, rhs), nil
	}
	return cst.NewBranch(cst.ExprStmt, lhs), nil
}

// parseExprListAsSingle parses a comma-separated list of arith-level
// expressions, collapsing to the single child when there's exactly one.
// Used for for-loop targets: Python's exprlist grammar sits below
// comparison specifically so "for x in y" doesn't parse "x in y" as one
// comparison expression before the loop's own 'in' keyword is reached.
func (p *parser) parseExprListAsSingle() (cst.Node, error) {
	first, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	if !p.at(cst.COMMA) {
		return first, nil
	}
	children := []cst.Node{first}
	for p.at(cst.COMMA) {
		children = append(children, p.leaf())
		if p.atKeyword("in") {
			break
		}
		next, err := p.parseArith()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	return cst.NewBranch(cst.Testlist, children...), nil
}

// parseTestListAsSingle parses a comma-separated test list, collapsing to
// the single child when there's exactly one (matching fissix's habit of
// never wrapping a singleton list in its own node).
func (p *parser) parseTestListAsSingle() (cst.Node, error) {
	first, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	if !p.at(cst.COMMA) {
		return first, nil
	}
	children := []cst.Node{first}
	for p.at(cst.COMMA) {
		children = append(children, p.leaf())
		if p.at(cst.NEWLINE) || p.at(cst.SEMI) || p.at(cst.EQUAL) || p.at(cst.RPAR) || p.at(cst.RSQB) {
			break
		}
		next, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	return cst.NewBranch(cst.Testlist, children...), nil
}

func (p *parser) parseTest() (cst.Node, error) { return p.parseOrTest() }

func (p *parser) parseOrTest() (cst.Node, error) {
	return p.parseBinaryKeyword("or", p.parseAndTest)
}

func (p *parser) parseAndTest() (cst.Node, error) {
	return p.parseBinaryKeyword("and", p.parseNotTest)
}

func (p *parser) parseNotTest() (cst.Node, error) {
	if p.atKeyword("not") {
		kw := p.leaf()
		inner, err := p.parseNotTest()
		if err != nil {
			return nil, err
		}
		return cst.NewBranch(cst.NotTest, kw, inner), nil
	}
	return p.parseComparison()
}

var comparisonOps = map[cst.Kind]bool{
	cst.LESS: true, cst.GREATER: true, cst.EQEQUAL: true, cst.GREATEREQUAL: true,
	cst.LESSEQUAL: true, cst.NOTEQUAL: true,
}

func (p *parser) parseComparison() (cst.Node, error) {
	left, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	var children []cst.Node
	for comparisonOps[p.peek().kind] || p.atKeyword("in") || p.atKeyword("is") {
		children = append(children, p.leaf())
		right, err := p.parseArith()
		if err != nil {
			return nil, err
		}
		children = append(children, right)
	}
	if children == nil {
		return left, nil
	}
	return cst.NewBranch(cst.Comparison, append([]cst.Node{left}, children...)...), nil
}

func (p *parser) parseArith() (cst.Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	var children []cst.Node
	for p.at(cst.PLUS) || p.at(cst.MINUS) {
		children = append(children, p.leaf())
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		children = append(children, right)
	}
	if children == nil {
		return left, nil
	}
	return cst.NewBranch(cst.ArithExpr, append([]cst.Node{left}, children...)...), nil
}

func (p *parser) parseTerm() (cst.Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	var children []cst.Node
	for p.at(cst.STAR) || p.at(cst.SLASH) || p.at(cst.DOUBLESLASH) || p.at(cst.PERCENT) {
		children = append(children, p.leaf())
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		children = append(children, right)
	}
	if children == nil {
		return left, nil
	}
	return cst.NewBranch(cst.Term, append([]cst.Node{left}, children...)...), nil
}

func (p *parser) parseFactor() (cst.Node, error) {
	if p.at(cst.PLUS) || p.at(cst.MINUS) || p.at(cst.TILDE) {
		op := p.leaf()
		inner, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return cst.NewBranch(cst.Factor, op, inner), nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (cst.Node, error) {
	node, err := p.parseAtomTrailers()
	if err != nil {
		return nil, err
	}
	if p.at(cst.DOUBLESTAR) {
		op := p.leaf()
		rhs, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return cst.NewBranch(cst.Power, node, op, rhs), nil
	}
	return node, nil
}

// parseAtomTrailers parses an atom followed by zero or more trailers
// ('(' arglist ')', '[' subscript ']', '.' NAME), wrapping the result in a
// Power node only when at least one trailer is present — matching fissix,
// which never wraps a bare atom in a power node.
func (p *parser) parseAtomTrailers() (cst.Node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	children := []cst.Node{atom}
	for p.at(cst.LPAR) || p.at(cst.LSQB) || p.at(cst.DOT) {
		trailer, err := p.parseTrailer()
		if err != nil {
			return nil, err
		}
		children = append(children, trailer)
	}
	if len(children) == 1 {
		return atom, nil
	}
	return cst.NewBranch(cst.Power, children...), nil
}

func (p *parser) parseTrailer() (*cst.Branch, error) {
	switch {
	case p.at(cst.LPAR):
		lpar := p.leaf()
		children := []cst.Node{lpar}
		if !p.at(cst.RPAR) {
			args, err := p.parseArglist()
			if err != nil {
				return nil, err
			}
			children = append(children, args)
		}
		rpar, err := p.expect(cst.RPAR)
		if err != nil {
			return nil, err
		}
		children = append(children, rpar)
		return cst.NewBranch(cst.Trailer, children...), nil

	case p.at(cst.LSQB):
		lsqb := p.leaf()
		index, err := p.parseTestListAsSingle()
		if err != nil {
			return nil, err
		}
		rsqb, err := p.expect(cst.RSQB)
		if err != nil {
			return nil, err
		}
		return cst.NewBranch(cst.Trailer, lsqb, index, rsqb), nil

	default: // '.'
		dot := p.leaf()
		name, err := p.expect(cst.NAME)
		if err != nil {
			return nil, err
		}
		return cst.NewBranch(cst.Trailer, dot, name), nil
	}
}

// parseArglist parses call-site arguments into an arglist/argument shape
// matching the IMR's expectations (see internal/imr).
func (p *parser) parseArglist() (cst.Node, error) {
	var children []cst.Node
	for {
		arg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		children = append(children, arg)
		if p.at(cst.COMMA) {
			children = append(children, p.leaf())
			if p.at(cst.RPAR) {
				break
			}
			continue
		}
		break
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return cst.NewBranch(cst.Arglist, children...), nil
}

func (p *parser) parseArgument() (cst.Node, error) {
	if p.at(cst.STAR) || p.at(cst.DOUBLESTAR) {
		star := p.leaf()
		value, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		if star.Kind == cst.STAR {
			return cst.NewBranch(cst.StarExpr, star, value), nil
		}
		return cst.NewBranch(cst.Argument, star, value), nil
	}

	if p.at(cst.NAME) && p.peekN(1).kind == cst.EQUAL {
		name := p.leaf()
		eq := p.leaf()
		value, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		return cst.NewBranch(cst.Argument, name, eq, value), nil
	}

	return p.parseTest()
}

func (p *parser) parseAtom() (cst.Node, error) {
	switch {
	case p.at(cst.NAME), p.at(cst.NUMBER):
		return p.leaf(), nil
	case p.at(cst.STRING):
		first := p.leaf()
		if !p.at(cst.STRING) {
			return first, nil
		}
		// Implicit string concatenation: every literal kept under one atom.
		children := []cst.Node{first}
		for p.at(cst.STRING) {
			children = append(children, p.leaf())
		}
		return cst.NewBranch(cst.Atom, children...), nil
	case p.at(cst.LPAR):
		lpar := p.leaf()
		if p.at(cst.RPAR) {
			rpar := p.leaf()
			return cst.NewBranch(cst.Atom, lpar, rpar), nil
		}
		inner, err := p.parseTestListAsSingle()
		if err != nil {
			return nil, err
		}
		rpar, err := p.expect(cst.RPAR)
		if err != nil {
			return nil, err
		}
		return cst.NewBranch(cst.Atom, lpar, inner, rpar), nil
	case p.at(cst.LSQB):
		return p.parseListLiteral()
	case p.at(cst.LBRACE):
		return p.parseDictLiteral()
	default:
		t := p.peek()
		return nil, fmt.Errorf("unexpected token %q", t.value)
	}
}

func (p *parser) parseListLiteral() (cst.Node, error) {
	lsqb := p.leaf()
	children := []cst.Node{lsqb}
	if !p.at(cst.RSQB) {
		items, err := p.parseTestListAsSingle()
		if err != nil {
			return nil, err
		}
		children = append(children, items)
	}
	rsqb, err := p.expect(cst.RSQB)
	if err != nil {
		return nil, err
	}
	children = append(children, rsqb)
	return cst.NewBranch(cst.Atom, children...), nil
}

func (p *parser) parseDictLiteral() (cst.Node, error) {
	lbrace := p.leaf()
	children := []cst.Node{lbrace}
	for !p.at(cst.RBRACE) {
		key, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		colon, err := p.expect(cst.COLON)
		if err != nil {
			return nil, err
		}
		value, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		children = append(children, key, colon, value)
		if p.at(cst.COMMA) {
			children = append(children, p.leaf())
			continue
		}
		break
	}
	rbrace, err := p.expect(cst.RBRACE)
	if err != nil {
		return nil, err
	}
	children = append(children, rbrace)
	return cst.NewBranch(cst.Atom, children...), nil
}

func (p *parser) parseBinaryKeyword(kw string, next func() (cst.Node, error)) (cst.Node, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	var children []cst.Node
	for p.atKeyword(kw) {
		children = append(children, p.leaf())
		right, err := next()
		if err != nil {
			return nil, err
		}
		children = append(children, right)
	}
	if children == nil {
		return left, nil
	}
	kind := cst.OrTest
	if kw == "and" {
		kind = cst.AndTest
	}
	return cst.NewBranch(kind, append([]cst.Node{left}, children...)...), nil
}

// parseDottedName parses a dotted_name node: NAME ('.' NAME)*, matching
// helpers.dotted_parts/power_parts's expectation of alternating NAME/'.'
// children, collapsing to a bare leaf when there's exactly one part.
func (p *parser) parseDottedName() (cst.Node, error) {
	first, err := p.expect(cst.NAME)
	if err != nil {
		return nil, err
	}
	children := []cst.Node{first}
	for p.at(cst.DOT) {
		children = append(children, p.leaf())
		name, err := p.expect(cst.NAME)
		if err != nil {
			return nil, err
		}
		children = append(children, name)
	}
	if len(children) == 1 {
		return first, nil
	}
	return cst.NewBranch(cst.DottedName, children...), nil
}

func (p *parser) parseImportName() (cst.Node, error) {
	kw, err := p.expectKeyword("import")
	if err != nil {
		return nil, err
	}
	module, err := p.parseDottedName()
	if err != nil {
		return nil, err
	}
	children := []cst.Node{kw, module}
	if p.atKeyword("as") {
		asKw := p.leaf()
		nick, err := p.expect(cst.NAME)
		if err != nil {
			return nil, err
		}
		dottedAs := cst.NewBranch(cst.DottedAsName, module, asKw, nick)
		children = []cst.Node{kw, dottedAs}
	}
	return cst.NewBranch(cst.ImportName, children...), nil
}

func (p *parser) parseImportFrom() (cst.Node, error) {
	fromKw, err := p.expectKeyword("from")
	if err != nil {
		return nil, err
	}
	module, err := p.parseDottedName()
	if err != nil {
		return nil, err
	}
	importKw, err := p.expectKeyword("import")
	if err != nil {
		return nil, err
	}
	children := []cst.Node{fromKw, module, importKw}

	hasParen := p.at(cst.LPAR)
	if hasParen {
		children = append(children, p.leaf())
	}

	if p.at(cst.STAR) {
		children = append(children, p.leaf())
	} else {
		var names []cst.Node
		for {
			name, err := p.expect(cst.NAME)
			if err != nil {
				return nil, err
			}
			if p.atKeyword("as") {
				asKw := p.leaf()
				nick, err := p.expect(cst.NAME)
				if err != nil {
					return nil, err
				}
				names = append(names, cst.NewBranch(cst.ImportAsName, name, asKw, nick))
			} else {
				names = append(names, name)
			}
			if p.at(cst.COMMA) {
				names = append(names, p.leaf())
				continue
			}
			break
		}
		if len(names) == 1 {
			children = append(children, names[0])
		} else {
			children = append(children, cst.NewBranch(cst.ImportAsNames, names...))
		}
	}

	if hasParen {
		rpar, err := p.expect(cst.RPAR)
		if err != nil {
			return nil, err
		}
		children = append(children, rpar)
	}
	return cst.NewBranch(cst.ImportFrom, children...), nil
}

func (p *parser) parseDecorated() (cst.Node, error) {
	var decorators []cst.Node
	for p.at(cst.AT) {
		at := p.leaf()
		name, err := p.parseDottedName()
		if err != nil {
			return nil, err
		}
		children := []cst.Node{at, name}
		if p.at(cst.LPAR) {
			lpar := p.leaf()
			if !p.at(cst.RPAR) {
				args, err := p.parseArglist()
				if err != nil {
					return nil, err
				}
				children = append(children, lpar, args)
			} else {
				children = append(children, lpar)
			}
			rpar, err := p.expect(cst.RPAR)
			if err != nil {
				return nil, err
			}
			children = append(children, rpar)
		}
		if p.at(cst.NEWLINE) {
			children = append(children, p.leaf())
		}
		decorators = append(decorators, cst.NewBranch(cst.Decorator, children...))
	}

	var def cst.Node
	var err error
	switch {
	case p.atKeyword("def"):
		def, err = p.parseFuncdef()
	case p.atKeyword("class"):
		def, err = p.parseClassdef()
	default:
		return nil, fmt.Errorf("expected def or class after decorator, got %q", p.peek().value)
	}
	if err != nil {
		return nil, err
	}

	return cst.NewBranch(cst.Decorated,
		cst.NewBranch(cst.Decorators, decorators...),
		def,
	), nil
}

// parseFuncdef parses 'def' NAME parameters [-> test] ':' suite.
func (p *parser) parseFuncdef() (cst.Node, error) {
	defKw, err := p.expectKeyword("def")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(cst.NAME)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	children := []cst.Node{defKw, name, params}

	if p.at(cst.RARROW) {
		arrow := p.leaf()
		ret, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		children = append(children, arrow, ret)
	}

	colon, err := p.expect(cst.COLON)
	if err != nil {
		return nil, err
	}
	children = append(children, colon)

	suite, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	children = append(children, suite)

	return cst.NewBranch(cst.Funcdef, children...), nil
}

// parseParameters parses '(' [typedargslist] ')', producing a Parameters
// branch whose single inner child (when non-empty) is a Typedargslist, or
// the bare parameter node when there is only one parameter.
func (p *parser) parseParameters() (*cst.Branch, error) {
	lpar, err := p.expect(cst.LPAR)
	if err != nil {
		return nil, err
	}
	children := []cst.Node{lpar}
	if !p.at(cst.RPAR) {
		args, err := p.parseTypedArgsList()
		if err != nil {
			return nil, err
		}
		children = append(children, args)
	}
	rpar, err := p.expect(cst.RPAR)
	if err != nil {
		return nil, err
	}
	children = append(children, rpar)
	return cst.NewBranch(cst.Parameters, children...), nil
}

func (p *parser) parseTypedArgsList() (cst.Node, error) {
	var children []cst.Node
	for {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		children = append(children, param)
		if p.at(cst.COMMA) {
			children = append(children, p.leaf())
			if p.at(cst.RPAR) {
				break
			}
			continue
		}
		break
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return cst.NewBranch(cst.Typedargslist, children...), nil
}

func (p *parser) parseParam() (cst.Node, error) {
	if p.at(cst.STAR) || p.at(cst.DOUBLESTAR) {
		star := p.leaf()
		if p.at(cst.NAME) {
			name := p.leaf()
			return cst.NewBranch(cst.StarExpr, star, name), nil
		}
		return star, nil
	}

	name, err := p.expect(cst.NAME)
	if err != nil {
		return nil, err
	}

	var node cst.Node = name
	if p.at(cst.COLON) {
		colon := p.leaf()
		annotation, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		node = cst.NewBranch(cst.Tname, name, colon, annotation)
	}

	if p.at(cst.EQUAL) {
		eq := p.leaf()
		def, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		return cst.NewBranch(cst.Argument, node, eq, def), nil
	}

	return node, nil
}

// parseClassdef parses 'class' NAME ['(' [arglist] ')'] ':' suite.
func (p *parser) parseClassdef() (cst.Node, error) {
	classKw, err := p.expectKeyword("class")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(cst.NAME)
	if err != nil {
		return nil, err
	}
	children := []cst.Node{classKw, name}

	if p.at(cst.LPAR) {
		lpar := p.leaf()
		children = append(children, lpar)
		if !p.at(cst.RPAR) {
			args, err := p.parseArglist()
			if err != nil {
				return nil, err
			}
			children = append(children, args)
		}
		rpar, err := p.expect(cst.RPAR)
		if err != nil {
			return nil, err
		}
		children = append(children, rpar)
	}

	colon, err := p.expect(cst.COLON)
	if err != nil {
		return nil, err
	}
	children = append(children, colon)

	suite, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	children = append(children, suite)

	return cst.NewBranch(cst.Classdef, children...), nil
}

// parseSuite parses either a single simple_stmt on the same line, or an
// indented block: NEWLINE INDENT stmt+ DEDENT. The NEWLINE of a blank or
// comment-only line inside the block is kept as a child of the block.
func (p *parser) parseSuite() (*cst.Branch, error) {
	if !p.at(cst.NEWLINE) {
		stmt, err := p.parseSimpleStmt()
		if err != nil {
			return nil, err
		}
		return cst.NewBranch(cst.Suite, stmt), nil
	}

	children := []cst.Node{p.leaf()} // NEWLINE
	for p.at(cst.NEWLINE) {
		children = append(children, p.leaf())
	}
	indent, err := p.expect(cst.INDENT)
	if err != nil {
		return nil, err
	}
	children = append(children, indent)

	for !p.at(cst.DEDENT) && !p.at(cst.ENDMARKER) {
		if p.at(cst.NEWLINE) {
			children = append(children, p.leaf())
			continue
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		children = append(children, stmt)
	}

	dedent, err := p.expect(cst.DEDENT)
	if err != nil {
		return nil, err
	}
	children = append(children, dedent)

	return cst.NewBranch(cst.Suite, children...), nil
}

func (p *parser) parseIfStmt() (cst.Node, error) {
	ifKw, err := p.expectKeyword("if")
	if err != nil {
		return nil, err
	}
	cond, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	colon, err := p.expect(cst.COLON)
	if err != nil {
		return nil, err
	}
	suite, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	children := []cst.Node{ifKw, cond, colon, suite}

	for p.atKeyword("elif") {
		elifKw := p.leaf()
		econd, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		ecolon, err := p.expect(cst.COLON)
		if err != nil {
			return nil, err
		}
		esuite, err := p.parseSuite()
		if err != nil {
			return nil, err
		}
		children = append(children, elifKw, econd, ecolon, esuite)
	}

	if p.atKeyword("else") {
		elseKw := p.leaf()
		ecolon, err := p.expect(cst.COLON)
		if err != nil {
			return nil, err
		}
		esuite, err := p.parseSuite()
		if err != nil {
			return nil, err
		}
		children = append(children, elseKw, ecolon, esuite)
	}

	return cst.NewBranch(cst.IfStmt, children...), nil
}

func (p *parser) parseForStmt() (cst.Node, error) {
	forKw, err := p.expectKeyword("for")
	if err != nil {
		return nil, err
	}
	target, err := p.parseExprListAsSingle()
	if err != nil {
		return nil, err
	}
	inKw, err := p.expectKeyword("in")
	if err != nil {
		return nil, err
	}
	iter, err := p.parseTestListAsSingle()
	if err != nil {
		return nil, err
	}
	colon, err := p.expect(cst.COLON)
	if err != nil {
		return nil, err
	}
	suite, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	return cst.NewBranch(cst.ForStmt, forKw, target, inKw, iter, colon, suite), nil
}

func (p *parser) parseWhileStmt() (cst.Node, error) {
	whileKw, err := p.expectKeyword("while")
	if err != nil {
		return nil, err
	}
	cond, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	colon, err := p.expect(cst.COLON)
	if err != nil {
		return nil, err
	}
	suite, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	return cst.NewBranch(cst.WhileStmt, whileKw, cond, colon, suite), nil
}
