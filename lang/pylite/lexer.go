package pylite

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/oxhq/refract/cst"
)

// lexer turns source text into a flat token stream, tracking bracket depth
// (so newlines inside parens/brackets are folded into the next token's
// prefix rather than emitted as NEWLINE) and an indentation stack (so
// INDENT/DEDENT are emitted at the start of each logical line, mirroring
// Python's own tokenizer closely enough for the subset this package parses).
type lexer struct {
	src    string
	pos    int
	indent []int
	depth  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, indent: []int{0}}
}

// tokenize consumes the entire source and returns the flat token stream,
// terminated by a single ENDMARKER.
func (lx *lexer) tokenize() ([]token, error) {
	var out []token
	atLineStart := true

	for {
		prefixStart := lx.pos
		if atLineStart && lx.depth == 0 {
			indentToks, err := lx.consumeIndentation()
			if err != nil {
				return nil, err
			}
			if len(indentToks) > 0 {
				out = append(out, indentToks...)
				prefixStart = lx.pos
			}
			atLineStart = false
		}

		prefix := lx.consumeTrivia()
		if lx.pos >= len(lx.src) {
			out = append(out, token{kind: cst.ENDMARKER, value: "", prefix: lx.src[prefixStart:]})
			break
		}

		r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])

		switch {
		case r == '\n':
			lx.pos += size
			if lx.depth == 0 {
				out = append(out, token{kind: cst.NEWLINE, value: "\n", prefix: prefix})
				atLineStart = true
			}
			continue

		case isIdentStart(r):
			start := lx.pos
			lx.pos += size
			for lx.pos < len(lx.src) {
				r2, sz2 := utf8.DecodeRuneInString(lx.src[lx.pos:])
				if !isIdentCont(r2) {
					break
				}
				lx.pos += sz2
			}
			out = append(out, token{kind: cst.NAME, value: lx.src[start:lx.pos], prefix: prefix})

		case unicode.IsDigit(r):
			start := lx.pos
			for lx.pos < len(lx.src) {
				r2, sz2 := utf8.DecodeRuneInString(lx.src[lx.pos:])
				if !unicode.IsDigit(r2) && r2 != '.' && r2 != '_' {
					break
				}
				lx.pos += sz2
			}
			out = append(out, token{kind: cst.NUMBER, value: lx.src[start:lx.pos], prefix: prefix})

		case r == '\'' || r == '"':
			str, err := lx.consumeString(r)
			if err != nil {
				return nil, err
			}
			out = append(out, token{kind: cst.STRING, value: str, prefix: prefix})

		default:
			tok, err := lx.consumeOperator(prefix)
			if err != nil {
				return nil, err
			}
			out = append(out, tok)
		}
	}

	// Close any remaining open indentation levels at EOF.
	endmarker := out[len(out)-1]
	out = out[:len(out)-1]
	for len(lx.indent) > 1 {
		lx.indent = lx.indent[:len(lx.indent)-1]
		out = append(out, token{kind: cst.DEDENT, value: ""})
	}
	out = append(out, endmarker)

	return out, nil
}

// consumeIndentation measures leading whitespace on a fresh logical line and
// emits INDENT/DEDENT tokens to reconcile it against the indent stack. A
// blank or comment-only line produces no indentation change. Only an INDENT
// token keeps the whitespace as its value; otherwise the whitespace is left
// for the next token's prefix.
func (lx *lexer) consumeIndentation() ([]token, error) {
	start := lx.pos
	col := 0
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case ' ':
			col++
			lx.pos++
			continue
		case '\t':
			col += 8 - (col % 8)
			lx.pos++
			continue
		}
		break
	}

	if lx.pos >= len(lx.src) || lx.src[lx.pos] == '\n' || lx.src[lx.pos] == '#' {
		lx.pos = start
		return nil, nil
	}

	current := lx.indent[len(lx.indent)-1]
	var out []token
	switch {
	case col > current:
		lx.indent = append(lx.indent, col)
		out = append(out, token{kind: cst.INDENT, value: lx.src[start:lx.pos]})
	case col < current:
		for len(lx.indent) > 1 && lx.indent[len(lx.indent)-1] > col {
			lx.indent = lx.indent[:len(lx.indent)-1]
			out = append(out, token{kind: cst.DEDENT, value: ""})
		}
		if lx.indent[len(lx.indent)-1] != col {
			return nil, fmt.Errorf("inconsistent indentation at offset %d", start)
		}
		lx.pos = start
	default:
		lx.pos = start
	}
	return out, nil
}

// consumeTrivia swallows whitespace and comments, returning the combined
// prefix text (this becomes a Leaf's prefix).
func (lx *lexer) consumeTrivia() string {
	start := lx.pos
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case ' ', '\t', '\r':
			lx.pos++
		case '\n':
			if lx.depth > 0 {
				lx.pos++
				continue
			}
			return lx.src[start:lx.pos]
		case '#':
			for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
				lx.pos++
			}
		case '\\':
			if lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '\n' {
				lx.pos += 2
				continue
			}
			return lx.src[start:lx.pos]
		default:
			return lx.src[start:lx.pos]
		}
	}
	return lx.src[start:lx.pos]
}

func (lx *lexer) consumeString(quote rune) (string, error) {
	start := lx.pos
	triple := strings.HasPrefix(lx.src[lx.pos:], strings.Repeat(string(quote), 3))
	delim := string(quote)
	if triple {
		delim = strings.Repeat(string(quote), 3)
	}
	lx.pos += len(delim)
	for lx.pos < len(lx.src) {
		if strings.HasPrefix(lx.src[lx.pos:], delim) {
			lx.pos += len(delim)
			return lx.src[start:lx.pos], nil
		}
		if lx.src[lx.pos] == '\\' && lx.pos+1 < len(lx.src) {
			lx.pos += 2
			continue
		}
		lx.pos++
	}
	return "", fmt.Errorf("unterminated string literal at offset %d", start)
}

var threeCharOps = []string{"**=", "//=", "...", ">>=", "<<="}
var twoCharOps = map[string]cst.Kind{
	"**": cst.DOUBLESTAR, "//": cst.DOUBLESLASH, "==": cst.EQEQUAL, "!=": cst.NOTEQUAL,
	"<=": cst.LESSEQUAL, ">=": cst.GREATEREQUAL, "<<": cst.LEFTSHIFT, ">>": cst.RIGHTSHIFT,
	"+=": cst.PLUSEQUAL, "-=": cst.MINEQUAL, "->": cst.RARROW,
}
var oneCharOps = map[byte]cst.Kind{
	'(': cst.LPAR, ')': cst.RPAR, '[': cst.LSQB, ']': cst.RSQB, '{': cst.LBRACE, '}': cst.RBRACE,
	':': cst.COLON, ',': cst.COMMA, ';': cst.SEMI, '+': cst.PLUS, '-': cst.MINUS,
	'*': cst.STAR, '/': cst.SLASH, '|': cst.VBAR, '&': cst.AMPER, '<': cst.LESS, '>': cst.GREATER,
	'=': cst.EQUAL, '.': cst.DOT, '%': cst.PERCENT, '`': cst.BACKQUOTE, '~': cst.TILDE, '^': cst.CIRCUMFLEX,
	'@': cst.AT,
}

func (lx *lexer) consumeOperator(prefix string) (token, error) {
	rest := lx.src[lx.pos:]
	for _, op := range threeCharOps {
		if strings.HasPrefix(rest, op) {
			lx.pos += len(op)
			lx.adjustDepth(op)
			return token{kind: cst.OP, value: op, prefix: prefix}, nil
		}
	}
	if len(rest) >= 2 {
		if kind, ok := twoCharOps[rest[:2]]; ok {
			lx.pos += 2
			return token{kind: kind, value: rest[:2], prefix: prefix}, nil
		}
	}
	if len(rest) >= 1 {
		if kind, ok := oneCharOps[rest[0]]; ok {
			lx.pos++
			lx.adjustDepth(rest[:1])
			return token{kind: kind, value: rest[:1], prefix: prefix}, nil
		}
	}
	return token{}, fmt.Errorf("unexpected character %q at offset %d", rest[:1], lx.pos)
}

func (lx *lexer) adjustDepth(op string) {
	switch op {
	case "(", "[", "{":
		lx.depth++
	case ")", "]", "}":
		if lx.depth > 0 {
			lx.depth--
		}
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentCont(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
