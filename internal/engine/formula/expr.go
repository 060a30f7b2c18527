package formula

import (
	"math"
	"strconv"
	"strings"

	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/zerr"
)

// Expr is a compiled arithmetic expression over named matrices.
//
// The grammar is deliberately small:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = [ "+" | "-" ] unary | primary
//	primary = number | name | quoted | "(" expr ")"
//
// Names resolve only against the variables passed to Eval.
type Expr struct {
	source string
	root   node
	names  []string
}

// Compile parses formula. A leading "<lhs> =" is ignored.
func Compile(formula string) (*Expr, error) {
	rhs := formula
	if _, after, ok := strings.Cut(formula, "="); ok {
		rhs = after
	}
	rhs = strings.TrimSpace(rhs)

	toks, err := lex(rhs)
	if err != nil {
		return nil, zerr.With(err, "formula", formula)
	}
	p := &parser{toks: toks, seen: make(map[string]bool)}
	root, err := p.expr()
	if err != nil {
		return nil, zerr.With(err, "formula", formula)
	}
	if p.peek().kind != tokEOF {
		return nil, zerr.With(zerr.Wrap(domain.ErrFormulaSyntax, "unexpected trailing input"), "formula", formula)
	}
	return &Expr{source: rhs, root: root, names: p.names}, nil
}

// Names returns the variable names referenced by the expression, in first-use order.
func (e *Expr) Names() []string {
	return e.names
}

func (e *Expr) String() string {
	return e.source
}

// Options tune evaluation.
type Options struct {
	// Div0AsZero replaces infinities and NaNs produced by division with 0.
	Div0AsZero bool
}

// Eval evaluates the expression element-wise. Scalars broadcast to the shape of
// rows by cols. Every variable must share that shape.
func (e *Expr) Eval(vars map[string]*domain.Matrix, rows, cols []string, opts Options) (*domain.Matrix, error) {
	v, err := e.root.eval(vars)
	if err != nil {
		return nil, err
	}

	var out *domain.Matrix
	if v.m == nil {
		out = domain.Filled(rows, cols, v.s)
	} else {
		if len(v.m.Rows) != len(rows) || len(v.m.Cols) != len(cols) {
			return nil, zerr.Wrap(domain.ErrShapeMismatch, "formula result does not match the output grid")
		}
		out = v.m.Clone()
	}

	if opts.Div0AsZero {
		for _, row := range out.Values {
			for j, x := range row {
				if math.IsInf(x, 0) || math.IsNaN(x) {
					row[j] = 0
				}
			}
		}
	}
	return out, nil
}

// Evaluate compiles and evaluates formula in one step.
func Evaluate(formula string, vars map[string]*domain.Matrix, rows, cols []string, opts Options) (*domain.Matrix, error) {
	e, err := Compile(formula)
	if err != nil {
		return nil, err
	}
	return e.Eval(vars, rows, cols, opts)
}

// value is either a scalar (m == nil) or a matrix.
type value struct {
	m *domain.Matrix
	s float64
}

type node interface {
	eval(vars map[string]*domain.Matrix) (value, error)
}

type numberNode float64

func (n numberNode) eval(map[string]*domain.Matrix) (value, error) {
	return value{s: float64(n)}, nil
}

type nameNode string

func (n nameNode) eval(vars map[string]*domain.Matrix) (value, error) {
	m, ok := vars[string(n)]
	if !ok || m == nil {
		return value{}, zerr.With(zerr.Wrap(domain.ErrUnknownOperand, "unbound name"), domain.KeyName, string(n))
	}
	return value{m: m}, nil
}

type negNode struct{ x node }

func (n negNode) eval(vars map[string]*domain.Matrix) (value, error) {
	v, err := n.x.eval(vars)
	if err != nil {
		return value{}, err
	}
	return apply(value{s: -1}, v, '*')
}

type binNode struct {
	op   byte
	l, r node
}

func (n binNode) eval(vars map[string]*domain.Matrix) (value, error) {
	l, err := n.l.eval(vars)
	if err != nil {
		return value{}, err
	}
	r, err := n.r.eval(vars)
	if err != nil {
		return value{}, err
	}
	return apply(l, r, n.op)
}

func arith(a, b float64, op byte) float64 {
	switch op {
	case '+':
		return a + b
	case '-':
		return a - b
	case '*':
		return a * b
	default:
		return a / b
	}
}

func apply(l, r value, op byte) (value, error) {
	switch {
	case l.m == nil && r.m == nil:
		return value{s: arith(l.s, r.s, op)}, nil
	case l.m != nil && r.m != nil && !l.m.SameShape(r.m):
		return value{}, zerr.Wrap(domain.ErrShapeMismatch, "operands differ in shape")
	}

	shape := l.m
	if shape == nil {
		shape = r.m
	}
	out := domain.NewMatrix(shape.Rows, shape.Cols)
	for i, row := range out.Values {
		for j := range row {
			a, b := l.s, r.s
			if l.m != nil {
				a = l.m.Values[i][j]
			}
			if r.m != nil {
				b = r.m.Values[i][j]
			}
			row[j] = arith(a, b, op)
		}
	}
	return value{m: out}, nil
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokNumber
	tokName
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	text string
	num  float64
}

func lex(s string) ([]token, error) {
	var toks []token
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case isSpace(c):
			i++
		case c == '+' || c == '-' || c == '*' || c == '/':
			toks = append(toks, token{kind: tokOp, text: string(c)})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen})
			i++
		case c == '"':
			end := strings.IndexByte(s[i+1:], '"')
			if end < 0 {
				return nil, zerr.Wrap(domain.ErrFormulaSyntax, "unterminated quoted name")
			}
			toks = append(toks, token{kind: tokName, text: strings.TrimSpace(s[i+1 : i+1+end])})
			i += end + 2
		case isDigit(c) || c == '.':
			j := scanNumber(s, i)
			n, err := strconv.ParseFloat(s[i:j], 64)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(domain.ErrFormulaSyntax, "malformed number"), "token", s[i:j])
			}
			toks = append(toks, token{kind: tokNumber, num: n})
			i = j
		case isNameStart(c):
			j := i + 1
			for j < len(s) && isNamePart(s[j]) {
				j++
			}
			toks = append(toks, token{kind: tokName, text: s[i:j]})
			i = j
		default:
			return nil, zerr.With(zerr.Wrap(domain.ErrFormulaSyntax, "unexpected character"), "char", string(c))
		}
	}
	return append(toks, token{kind: tokEOF}), nil
}

func scanNumber(s string, i int) int {
	for i < len(s) && (isDigit(s[i]) || s[i] == '.') {
		i++
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			return j
		}
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isNamePart(c byte) bool { return isNameStart(c) || isDigit(c) }

type parser struct {
	toks  []token
	pos   int
	names []string
	seen  map[string]bool
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expr() (node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for t := p.peek(); t.kind == tokOp && (t.text == "+" || t.text == "-"); t = p.peek() {
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = binNode{op: t.text[0], l: left, r: right}
	}
	return left, nil
}

func (p *parser) term() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for t := p.peek(); t.kind == tokOp && (t.text == "*" || t.text == "/"); t = p.peek() {
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = binNode{op: t.text[0], l: left, r: right}
	}
	return left, nil
}

func (p *parser) unary() (node, error) {
	if t := p.peek(); t.kind == tokOp && (t.text == "+" || t.text == "-") {
		p.next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		if t.text == "-" {
			return negNode{x: x}, nil
		}
		return x, nil
	}
	return p.primary()
}

func (p *parser) primary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return numberNode(t.num), nil
	case tokName:
		if t.text == "" {
			return nil, zerr.Wrap(domain.ErrFormulaSyntax, "empty name")
		}
		if !p.seen[t.text] {
			p.seen[t.text] = true
			p.names = append(p.names, t.text)
		}
		return nameNode(t.text), nil
	case tokLParen:
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.next().kind != tokRParen {
			return nil, zerr.Wrap(domain.ErrFormulaSyntax, "missing closing parenthesis")
		}
		return inner, nil
	case tokEOF:
		return nil, zerr.Wrap(domain.ErrFormulaSyntax, "unexpected end of formula")
	default:
		return nil, zerr.Wrap(domain.ErrFormulaSyntax, "unexpected token")
	}
}
