package spli

import (
	"strconv"
	"strings"
)

const eof = -1

// parser is a byte-offset-tracking recursive-descent scanner over the
// source. Rules either consume input and return a result or leave a
// structured trace pointing at the failure.
type parser struct {
	input  []byte
	cursor int
}

func newParser(src string) *parser {
	return &parser{input: []byte(src)}
}

// peek returns the byte under the cursor, or eof when the input has
// been consumed.
func (p *parser) peek() int {
	if p.cursor >= len(p.input) {
		return eof
	}
	return int(p.input[p.cursor])
}

func (p *parser) rest() string {
	return string(p.input[p.cursor:])
}

func (p *parser) fail(expect Expectation) *ParseError {
	return &ParseError{Trace: []TraceEntry{{Offset: p.cursor, Expect: expect}}}
}

func (p *parser) failAt(offset int, expect Expectation) *ParseError {
	return &ParseError{Trace: []TraceEntry{{Offset: offset, Expect: expect}}}
}

func (p *parser) failChar(c byte) *ParseError {
	return &ParseError{Trace: []TraceEntry{{Offset: p.cursor, Expect: ExpectChar, Char: c}}}
}

func (p *parser) expectByte(c byte) *ParseError {
	if p.peek() != int(c) {
		return p.failChar(c)
	}
	p.cursor++
	return nil
}

func isSpace(c int) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// space0 skips optional whitespace.
func (p *parser) space0() {
	for isSpace(p.peek()) {
		p.cursor++
	}
}

// space1 requires at least one whitespace byte, then skips the run.
func (p *parser) space1() *ParseError {
	if !isSpace(p.peek()) {
		return p.fail(ExpectWhitespace)
	}
	p.space0()
	return nil
}

//  ---- Tokens ----

// modifier consumes an optional reader prefix: ' marks the token raw,
// ! marks it sequential.
func (p *parser) modifier() (raw, sequential bool) {
	switch p.peek() {
	case '\'':
		p.cursor++
		return true, false
	case '!':
		p.cursor++
		return false, true
	}
	return false, false
}

// token parses one value: an optional modifier followed by a token
// kind, dispatched on a single byte of lookahead.
func (p *parser) token() (*Value, *ParseError) {
	raw, sequential := p.modifier()
	kind, err := p.tokenKind()
	if err != nil {
		return nil, err
	}
	return &Value{Raw: raw, Sequential: sequential, Kind: kind}, nil
}

func (p *parser) tokenKind() (Kind, *ParseError) {
	start := p.cursor
	switch c := p.peek(); {
	case c == '"':
		s, err := p.stringLit()
		if err != nil {
			return nil, err.push("string", start)
		}
		return String(s), nil
	case c == '(':
		items, err := p.listBody()
		if err != nil {
			return nil, err.push("list", start)
		}
		return ListValue{Items: items}, nil
	case c >= '0' && c <= '9':
		kind, err := p.number()
		if err != nil {
			return nil, err.push("number", start)
		}
		return kind, nil
	default:
		sym, err := p.ident()
		if err != nil {
			return nil, err.push("ident", start)
		}
		return sym, nil
	}
}

//  ---- Strings ----

// stringLit parses a double-quoted string with \n, \t, \" and \\
// escapes. Any other escape byte fails inside the escape context.
func (p *parser) stringLit() (string, *ParseError) {
	if err := p.expectByte('"'); err != nil {
		return "", err
	}
	var b strings.Builder
	for {
		switch c := p.peek(); {
		case c == eof:
			return "", p.failChar('"')
		case c == '"':
			p.cursor++
			return b.String(), nil
		case c == '\\':
			p.cursor++
			escAt := p.cursor
			var decoded byte
			switch p.peek() {
			case 'n':
				decoded = '\n'
			case 't':
				decoded = '\t'
			case '"':
				decoded = '"'
			case '\\':
				decoded = '\\'
			default:
				return "", p.failAt(escAt, ExpectEscape).push("escape", escAt)
			}
			p.cursor++
			b.WriteByte(decoded)
		default:
			b.WriteByte(byte(c))
			p.cursor++
		}
	}
}

//  ---- Numbers ----

// number tries each numeric form in grammar order and keeps the error
// that reached deepest when all of them fail.
func (p *parser) number() (Kind, *ParseError) {
	start := p.cursor
	var best *ParseError
	for _, rule := range []func() (Kind, *ParseError){
		p.float,
		p.hexInt,
		p.binInt,
		p.octInt,
		p.decimalInt,
	} {
		p.cursor = start
		kind, err := rule()
		if err == nil {
			return kind, nil
		}
		best = deeper(best, err)
	}
	p.cursor = start
	return nil, best
}

func isDigit(c int) bool { return c >= '0' && c <= '9' }

func (p *parser) digits1(valid func(int) bool) (string, *ParseError) {
	start := p.cursor
	if !valid(p.peek()) {
		return "", p.fail(ExpectDigit)
	}
	for valid(p.peek()) {
		p.cursor++
	}
	return string(p.input[start:p.cursor]), nil
}

// float is digit+ '.' digit*. A leading dot does not start a float; a
// trailing dot is allowed.
func (p *parser) float() (Kind, *ParseError) {
	start := p.cursor
	if _, err := p.digits1(isDigit); err != nil {
		return nil, err
	}
	if err := p.expectByte('.'); err != nil {
		return nil, err
	}
	for isDigit(p.peek()) {
		p.cursor++
	}
	f, err := strconv.ParseFloat(string(p.input[start:p.cursor]), 64)
	if err != nil {
		return nil, p.failAt(start, ExpectNumber)
	}
	return Float(f), nil
}

func (p *parser) prefixedInt(prefix string, base int, valid func(int) bool) (Kind, *ParseError) {
	start := p.cursor
	for i := 0; i < len(prefix); i++ {
		if err := p.expectByte(prefix[i]); err != nil {
			return nil, err
		}
	}
	digits, err := p.digits1(valid)
	if err != nil {
		return nil, err
	}
	n, perr := strconv.ParseInt(digits, base, 64)
	if perr != nil {
		return nil, p.failAt(start, ExpectNumber)
	}
	return Integer(n), nil
}

func (p *parser) hexInt() (Kind, *ParseError) {
	return p.prefixedInt("0x", 16, func(c int) bool {
		return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	})
}

func (p *parser) binInt() (Kind, *ParseError) {
	return p.prefixedInt("0b", 2, func(c int) bool { return c == '0' || c == '1' })
}

func (p *parser) octInt() (Kind, *ParseError) {
	return p.prefixedInt("0o", 8, func(c int) bool { return c >= '0' && c <= '7' })
}

// decimalInt is `0` alone or a nonzero digit followed by any digits.
// There is no C-style octal: `0123` is zero with `123` left over.
func (p *parser) decimalInt() (Kind, *ParseError) {
	start := p.cursor
	if p.peek() == '0' {
		p.cursor++
		return Integer(0), nil
	}
	if _, err := p.digits1(isDigit); err != nil {
		return nil, err
	}
	n, perr := strconv.ParseInt(string(p.input[start:p.cursor]), 10, 64)
	if perr != nil {
		return nil, p.failAt(start, ExpectNumber)
	}
	return Integer(n), nil
}

//  ---- Identifiers ----

const identPunct = "+-*/.:^%&$#@<>=_"

func isIdentStart(c int) bool {
	if c == eof {
		return false
	}
	if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
		return true
	}
	return strings.ContainsRune(identPunct, rune(c))
}

func isIdentChar(c int) bool {
	return isIdentStart(c) || isDigit(c)
}

func (p *parser) ident() (Kind, *ParseError) {
	start := p.cursor
	if !isIdentStart(p.peek()) {
		return nil, p.fail(ExpectIdent)
	}
	for isIdentChar(p.peek()) {
		p.cursor++
	}
	return Symbol(p.input[start:p.cursor]), nil
}

//  ---- Lists ----

// listBody parses a parenthesized list, cursor positioned at the
// opening paren. Whitespace is optional right after `(` and before `)`;
// between tokens at least one whitespace byte is required.
func (p *parser) listBody() (List[*Value], *ParseError) {
	if err := p.expectByte('('); err != nil {
		return List[*Value]{}, err
	}
	var items []*Value
	first := true
	for {
		save := p.cursor
		p.space0()
		if p.peek() == ')' {
			p.cursor++
			return ListFrom(items...), nil
		}
		if first {
			first = false
		} else {
			p.cursor = save
			if err := p.space1(); err != nil {
				return List[*Value]{}, err
			}
		}
		tok, err := p.token()
		if err != nil {
			return List[*Value]{}, err
		}
		items = append(items, tok)
	}
}

//  ---- Programs ----

// program parses a whole source file: whitespace-separated forms
// wrapped into one top-level sequential list, so a file executes
// top-to-bottom by default. When a form boundary is reached but the
// next bytes cannot start any token, parsing stops there and the
// caller sees the remainder; a failure inside a token is an error.
func (p *parser) program() (*Value, *ParseError) {
	var forms []*Value
	p.space0()
	for p.peek() != eof {
		start := p.cursor
		tok, err := p.token()
		if err != nil {
			if len(forms) > 0 && err.Offset() == start {
				p.cursor = start
				break
			}
			return nil, err
		}
		forms = append(forms, tok)
		if p.peek() == eof {
			break
		}
		if err := p.space1(); err != nil {
			return nil, err
		}
	}
	return NewSequentialValue(ListValue{Items: ListFrom(forms...)}), nil
}

//  ---- Public entry points ----

// ParseToken parses a single value off the front of src and returns
// the unconsumed remainder alongside it.
func ParseToken(src string) (rest string, val *Value, err *ParseError) {
	p := newParser(src)
	val, err = p.token()
	if err != nil {
		return src, nil, err
	}
	return p.rest(), val, nil
}

// ParseList parses a parenthesized list, src positioned at the opening
// paren, and returns the remainder and the element list.
func ParseList(src string) (rest string, items List[*Value], err *ParseError) {
	p := newParser(src)
	items, err = p.listBody()
	if err != nil {
		return src, List[*Value]{}, err
	}
	return p.rest(), items, nil
}

// ParseProgram parses src as a full program: a single top-level
// sequential list of forms. rest is empty when the source was fully
// consumed.
func ParseProgram(src string) (rest string, val *Value, err *ParseError) {
	p := newParser(src)
	val, err = p.program()
	if err != nil {
		return src, nil, err
	}
	return p.rest(), val, nil
}
