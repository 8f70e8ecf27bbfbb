package mathcheck

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxDepth bounds parser recursion on deeply nested input.
const maxDepth = 200

// EvalError describes a failure to parse or evaluate an expression.
type EvalError struct {
	Expr string
	Pos  int // byte offset into the normalised expression, -1 if unknown
	Err  error
}

func (e *EvalError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("expression %q at offset %d: %v", e.Expr, e.Pos, e.Err)
	}
	return fmt.Sprintf("expression %q: %v", e.Expr, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }

// Expr is a parsed arithmetic expression over decimal literals with
// + - * /, unary minus, parentheses and Fraction(a, b) literals.
type Expr struct {
	src  string
	root node
}

// ParseExpr parses s. Unicode operators × ÷ − are accepted.
func ParseExpr(s string) (*Expr, error) {
	src := normalizeOperators(s)
	p := &parser{src: src}
	if err := p.lex(); err != nil {
		return nil, err
	}
	if len(p.toks) == 0 {
		return nil, &EvalError{Expr: src, Pos: 0, Err: fmt.Errorf("empty expression")}
	}
	root, err := p.parseSum(0)
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errAt(t, "unexpected %q", t.text)
	}
	return &Expr{src: src, root: root}, nil
}

// Rational evaluates the expression with exact rational arithmetic.
func (e *Expr) Rational() (Rational, error) {
	r, err := e.root.rational()
	if err != nil {
		return Rational{}, &EvalError{Expr: e.src, Pos: -1, Err: err}
	}
	return r, nil
}

// Float evaluates the expression with float64 arithmetic.
func (e *Expr) Float() (float64, error) {
	f, err := e.root.float()
	if err != nil {
		return 0, &EvalError{Expr: e.src, Pos: -1, Err: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &EvalError{Expr: e.src, Pos: -1, Err: fmt.Errorf("result is not finite")}
	}
	return f, nil
}

func (e *Expr) String() string { return e.src }

// normalizeOperators maps typographic operators to their ASCII forms.
func normalizeOperators(s string) string {
	return strings.NewReplacer("×", "*", "÷", "/", "−", "-", "·", "*").Replace(strings.TrimSpace(s))
}

type node interface {
	rational() (Rational, error)
	float() (float64, error)
}

type numberNode struct{ text string }

func (n numberNode) rational() (Rational, error) { return ParseDecimalRational(n.text) }

func (n numberNode) float() (float64, error) { return strconv.ParseFloat(n.text, 64) }

type negNode struct{ x node }

func (n negNode) rational() (Rational, error) {
	r, err := n.x.rational()
	if err != nil {
		return Rational{}, err
	}
	return r.Neg(), nil
}

func (n negNode) float() (float64, error) {
	f, err := n.x.float()
	return -f, err
}

type binaryNode struct {
	op   byte
	l, r node
}

func (n binaryNode) rational() (Rational, error) {
	l, err := n.l.rational()
	if err != nil {
		return Rational{}, err
	}
	r, err := n.r.rational()
	if err != nil {
		return Rational{}, err
	}
	switch n.op {
	case '+':
		return l.Add(r)
	case '-':
		return l.Sub(r)
	case '*':
		return l.Mul(r)
	default:
		return l.Div(r)
	}
}

func (n binaryNode) float() (float64, error) {
	l, err := n.l.float()
	if err != nil {
		return 0, err
	}
	r, err := n.r.float()
	if err != nil {
		return 0, err
	}
	switch n.op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	default:
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l / r, nil
	}
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokNum
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokKind
	text string
	pos  int
}

type parser struct {
	src  string
	toks []token
	i    int
}

func (p *parser) lex() error {
	s := p.src
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c >= '0' && c <= '9' || c == '.':
			start := i
			dots := 0
			for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
				if s[i] == '.' {
					dots++
				}
				i++
			}
			text := s[start:i]
			if dots > 1 || text == "." {
				return &EvalError{Expr: s, Pos: start, Err: fmt.Errorf("malformed number %q", text)}
			}
			p.toks = append(p.toks, token{kind: tokNum, text: text, pos: start})
		case isASCIILetter(c):
			start := i
			for i < len(s) && isASCIILetter(s[i]) {
				i++
			}
			p.toks = append(p.toks, token{kind: tokIdent, text: s[start:i], pos: start})
		case strings.IndexByte("+-*/", c) >= 0:
			p.toks = append(p.toks, token{kind: tokOp, text: string(c), pos: i})
			i++
		case c == '(':
			p.toks = append(p.toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case c == ')':
			p.toks = append(p.toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		case c == ',':
			p.toks = append(p.toks, token{kind: tokComma, text: ",", pos: i})
			i++
		default:
			r, _ := utf8.DecodeRuneInString(s[i:])
			return &EvalError{Expr: s, Pos: i, Err: fmt.Errorf("unexpected character %q", r)}
		}
	}
	return nil
}

func isASCIILetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func (p *parser) peek() token {
	if p.i < len(p.toks) {
		return p.toks[p.i]
	}
	return token{kind: tokEOF, pos: len(p.src)}
}

func (p *parser) next() token {
	t := p.peek()
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) errAt(t token, format string, args ...any) error {
	if t.kind == tokEOF {
		return &EvalError{Expr: p.src, Pos: t.pos, Err: fmt.Errorf("unexpected end of expression")}
	}
	return &EvalError{Expr: p.src, Pos: t.pos, Err: fmt.Errorf(format, args...)}
}

// parseSum: term (('+' | '-') term)*
func (p *parser) parseSum(depth int) (node, error) {
	left, err := p.parseProduct(depth)
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.text != "+" && t.text != "-") {
			return left, nil
		}
		p.next()
		right, err := p.parseProduct(depth)
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: t.text[0], l: left, r: right}
	}
}

// parseProduct: unary (('*' | '/') unary)*
func (p *parser) parseProduct(depth int) (node, error) {
	left, err := p.parseUnary(depth)
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.text != "*" && t.text != "/") {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary(depth)
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: t.text[0], l: left, r: right}
	}
}

// parseUnary: ('-' | '+') unary | primary
func (p *parser) parseUnary(depth int) (node, error) {
	if depth > maxDepth {
		return nil, p.errAt(p.peek(), "expression nested too deeply")
	}
	t := p.peek()
	if t.kind == tokOp && (t.text == "-" || t.text == "+") {
		p.next()
		x, err := p.parseUnary(depth + 1)
		if err != nil {
			return nil, err
		}
		if t.text == "-" {
			return negNode{x: x}, nil
		}
		return x, nil
	}
	return p.parsePrimary(depth)
}

// parsePrimary: number | '(' sum ')' | Fraction '(' sum ',' sum ')'
func (p *parser) parsePrimary(depth int) (node, error) {
	t := p.next()
	switch t.kind {
	case tokNum:
		return numberNode{text: t.text}, nil
	case tokLParen:
		x, err := p.parseSum(depth + 1)
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return x, nil
	case tokIdent:
		if !strings.EqualFold(t.text, "Fraction") {
			return nil, p.errAt(t, "unknown identifier %q", t.text)
		}
		if err := p.expect(tokLParen); err != nil {
			return nil, err
		}
		num, err := p.parseSum(depth + 1)
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokComma); err != nil {
			return nil, err
		}
		den, err := p.parseSum(depth + 1)
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return binaryNode{op: '/', l: num, r: den}, nil
	default:
		return nil, p.errAt(t, "unexpected %q", t.text)
	}
}

func (p *parser) expect(kind tokKind) error {
	t := p.next()
	if t.kind != kind {
		return p.errAt(t, "unexpected %q", t.text)
	}
	return nil
}
