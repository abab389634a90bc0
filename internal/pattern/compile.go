package pattern

import (
	"fmt"
	"strings"

	"github.com/oxhq/refract/cst"
	"github.com/oxhq/refract/internal/xerrors"
)

type dslTokKind int

const (
	dslName dslTokKind = iota
	dslString
	dslLAngle
	dslRAngle
	dslLParen
	dslRParen
	dslPipe
	dslEquals
	dslStar
	dslQuestion
	dslEOF
)

type dslTok struct {
	kind dslTokKind
	text string
}

func lexDSL(src string) ([]dslTok, error) {
	var out []dslTok
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '<':
			out = append(out, dslTok{dslLAngle, "<"})
			i++
		case c == '>':
			out = append(out, dslTok{dslRAngle, ">"})
			i++
		case c == '(':
			out = append(out, dslTok{dslLParen, "("})
			i++
		case c == ')':
			out = append(out, dslTok{dslRParen, ")"})
			i++
		case c == '|':
			out = append(out, dslTok{dslPipe, "|"})
			i++
		case c == '=':
			out = append(out, dslTok{dslEquals, "="})
			i++
		case c == '*':
			out = append(out, dslTok{dslStar, "*"})
			i++
		case c == '?':
			out = append(out, dslTok{dslQuestion, "?"})
			i++
		case c == '\'' || c == '"':
			quote := c
			j := i + 1
			for j < len(src) && src[j] != quote {
				j++
			}
			if j >= len(src) {
				return nil, fmt.Errorf("unterminated literal in pattern %q", src)
			}
			out = append(out, dslTok{dslString, src[i+1 : j]})
			i = j + 1
		case isDSLIdentStart(c):
			j := i
			for j < len(src) && isDSLIdentCont(src[j]) {
				j++
			}
			out = append(out, dslTok{dslName, src[i:j]})
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q in pattern %q", c, src)
		}
	}
	out = append(out, dslTok{dslEOF, ""})
	return out, nil
}

func isDSLIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDSLIdentCont(c byte) bool {
	return isDSLIdentStart(c) || (c >= '0' && c <= '9') || c == '.'
}

type dslParser struct {
	toks []dslTok
	pos  int
}

func (p *dslParser) peek() dslTok { return p.toks[p.pos] }
func (p *dslParser) advance() dslTok {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// Compile parses pattern DSL text into a ready-to-match Pattern. The text
// form is intentionally the same shape the selector templates in
// internal/selector already emit, so Query.SelectPattern can accept
// hand-written pattern text too.
func Compile(text string) (*Pattern, error) {
	folded := strings.Join(strings.Fields(text), " ")
	toks, err := lexDSL(folded)
	if err != nil {
		return nil, xerrors.NewInvalidPattern(folded)
	}
	p := &dslParser{toks: toks}
	root, err := p.parseAlternation()
	if err != nil {
		return nil, xerrors.NewInvalidPattern(folded)
	}
	if p.peek().kind != dslEOF {
		return nil, xerrors.NewInvalidPattern(folded)
	}
	return &Pattern{root: root, text: folded}, nil
}

// MustCompile is Compile but panics on error — used for the fixed selector
// templates, which are trusted to be valid at init time.
func MustCompile(text string) *Pattern {
	p, err := Compile(text)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *dslParser) parseAlternation() (Node, error) {
	first, err := p.parseSequenceItem()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != dslPipe {
		return first, nil
	}
	options := []Node{first}
	for p.peek().kind == dslPipe {
		p.advance()
		next, err := p.parseSequenceItem()
		if err != nil {
			return nil, err
		}
		options = append(options, next)
	}
	return Alternation{Options: options}, nil
}

// parseSequenceItem parses one atom, optionally capture-bound and/or
// followed by a repetition marker.
func (p *dslParser) parseSequenceItem() (Node, error) {
	var name string
	if p.peek().kind == dslName && p.peekIsCaptureAssignment() {
		name = p.advance().text
		p.advance() // '='
	}

	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	switch p.peek().kind {
	case dslStar:
		p.advance()
		atom = Star{Inner: atom}
	case dslQuestion:
		p.advance()
		atom = Optional{Inner: atom}
	}

	if name != "" {
		atom = Capture{Name: name, Inner: atom}
	}
	return atom, nil
}

func (p *dslParser) peekIsCaptureAssignment() bool {
	return p.pos+1 < len(p.toks) && p.toks[p.pos+1].kind == dslEquals
}

func (p *dslParser) parseAtom() (Node, error) {
	tok := p.peek()
	switch tok.kind {
	case dslString:
		p.advance()
		return Literal{MatchValue: true, Value: tok.text}, nil

	case dslName:
		p.advance()
		if tok.text == "any" {
			return Wildcard{}, nil
		}
		kind, ok := cst.KindByName(tok.text)
		if !ok {
			return nil, fmt.Errorf("unknown type name %q", tok.text)
		}
		if p.peek().kind == dslLAngle {
			p.advance()
			var items []Node
			for p.peek().kind != dslRAngle {
				item, err := p.parseAlternation()
				if err != nil {
					return nil, err
				}
				items = append(items, item)
				if p.peek().kind == dslEOF {
					return nil, fmt.Errorf("unterminated %q< ... >", tok.text)
				}
			}
			p.advance() // '>'
			return TypeAtom{Kind: kind, Items: items}, nil
		}
		if !kind.IsTerminal() {
			return TypeAtom{Kind: kind}, nil
		}
		return Literal{Kind: kind}, nil

	case dslLParen:
		p.advance()
		inner, err := p.parseAlternation()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != dslRParen {
			return nil, fmt.Errorf("expected ')'")
		}
		p.advance()
		return inner, nil

	default:
		return nil, fmt.Errorf("unexpected token %q", tok.text)
	}
}
