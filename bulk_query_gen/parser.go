package bulk_query_gen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flightbench/flightbench/bulk_data_gen/common"
)

// SyntaxError reports where an expression stopped making sense.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return "at offset " + strconv.Itoa(e.Pos) + ": " + e.Msg
}

type parser struct {
	in  string
	pos int
}

// ParseExpr parses a filter expression with the engine's precedence:
// || binds loosest, then &&, then prefix !. Whitespace may appear between
// any two tokens.
func ParseExpr(s string) (Expr, error) {
	p := &parser{in: s}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.in) {
		return nil, p.errorf("unexpected %q", p.in[p.pos:])
	}
	return e, nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &SyntaxError{Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.in) {
		switch p.in[p.pos] {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) match(tok string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.in[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.match(string(Or)) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: Or, L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.match(string(And)) {
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: And, L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseNot() (Expr, error) {
	if p.match("!") {
		x, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &Not{X: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	if p.match("(") {
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.match(")") {
			return nil, p.errorf("expected ')'")
		}
		return e, nil
	}
	return p.parsePredicate()
}

func (p *parser) scan(ok func(c byte) bool) string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.in) && ok(p.in[p.pos]) {
		p.pos++
	}
	return p.in[start:p.pos]
}

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isNumber(c byte) bool { return (c >= '0' && c <= '9') || c == '.' }
func isTimeChar(c byte) bool {
	return c != ')' && c != ' ' && c != '\t' && c != '\n' && c != '\r' && c != '\v' && c != '\f'
}

func (p *parser) parsePredicate() (Expr, error) {
	start := p.pos
	name := p.scan(isLetter)
	if name == "" {
		return nil, p.errorf("expected field name")
	}
	field := Field(name)
	if field.Kind() == KindInvalid {
		p.pos = start
		p.skipSpace()
		return nil, p.errorf("unknown field %q", name)
	}
	var op Op
	for _, o := range ops {
		if p.match(string(o)) {
			op = o
			break
		}
	}
	if op == "" {
		return nil, p.errorf("expected comparison operator")
	}
	valuePos := p.pos
	var value string
	switch field.Kind() {
	case KindString:
		value = p.scan(isLetter)
	case KindTime:
		value = p.scan(isTimeChar)
		if value != "" {
			if _, err := common.ParseTime(value); err != nil {
				p.pos = valuePos
				p.skipSpace()
				return nil, p.errorf("bad timestamp %q", value)
			}
		}
	case KindNumber:
		value = p.scan(isNumber)
		if value != "" {
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				p.pos = valuePos
				p.skipSpace()
				return nil, p.errorf("bad number %q", value)
			}
		}
	}
	if value == "" {
		return nil, p.errorf("expected value for %s", name)
	}
	return &Predicate{Field: field, Op: op, Value: value}, nil
}
