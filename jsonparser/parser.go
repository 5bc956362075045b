// Package jsonparser implements the allocation-light, pool-backed,
// restartable JSON streaming parser (component D of the spec): it consumes
// a byte slice and produces a jsonvalue.Value tree, reporting the exact
// number of bytes one complete root value consumed so callers can feed it
// again as more data arrives.
//
// The parser keeps no state between calls except its Value pool — every
// Parse call rescans buf[off:off+length] from the start, so a prefix of a
// valid value simply reports LengthParsed == 0 and the caller re-calls with
// more bytes appended. This matches spec.md §4.D's incremental-completeness
// property without needing to persist lexer state across calls.
package jsonparser

import (
	"prime-fix-engine-go/buffer"
	"prime-fix-engine-go/jsonvalue"
)

// ParseResult is mutated in place by each Parse call.
type ParseResult struct {
	ErrorReason  string
	ErrorIndex   int
	LengthParsed int
	Root         *jsonvalue.Value
}

// Parser owns a Value pool and a single reusable ParseResult.
type Parser struct {
	pool   *jsonvalue.Pool
	result ParseResult
}

// New creates a Parser backed by pool.
func New(pool *jsonvalue.Pool) *Parser {
	return &Parser{pool: pool}
}

// incomplete is a sentinel error signaling "valid prefix, need more bytes".
type incompleteErr struct{}

func (incompleteErr) Error() string { return "incomplete" }

var errIncomplete error = incompleteErr{}

// parseErr carries a stable, spec-enumerated reason string plus the source
// offset at which the error was detected.
type parseErr struct {
	reason string
	index  int
}

func (e *parseErr) Error() string { return e.reason }

// Parse consumes buf[off:off+length], clearing any previous root (returning
// its Values to the pool) and producing a new ParseResult.
//
//   - LengthParsed > 0: exactly one top-level value was consumed, spanning
//     buf[off:off+LengthParsed]; any trailing bytes belong to the next call.
//   - LengthParsed == 0: valid prefix, incomplete; retain the bytes and
//     call again with more appended.
//   - LengthParsed == -1: malformed input; ErrorReason/ErrorIndex describe it.
func (p *Parser) Parse(buf []byte, off, length int) *ParseResult {
	if p.result.Root != nil {
		p.pool.Release(p.result.Root)
		p.result.Root = nil
	}
	p.result.ErrorReason = ""
	p.result.ErrorIndex = -1
	p.result.LengthParsed = 0

	s := &scanner{buf: buf, pos: off, end: off + length, pool: p.pool}
	v, err := s.parseValue()
	if err != nil {
		if err == errIncomplete {
			p.result.LengthParsed = 0
			return &p.result
		}
		pe := err.(*parseErr)
		p.result.LengthParsed = -1
		p.result.ErrorReason = pe.reason
		p.result.ErrorIndex = pe.index
		return &p.result
	}

	p.result.Root = v
	p.result.LengthParsed = s.pos - off
	return &p.result
}

type scanner struct {
	buf  []byte
	pos  int
	end  int
	pool *jsonvalue.Pool
}

func (s *scanner) atEnd() bool { return s.pos >= s.end }

func (s *scanner) skipWhitespace() {
	for s.pos < s.end {
		switch s.buf[s.pos] {
		case ' ', '\t', '\n', '\r':
			s.pos++
		default:
			return
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (s *scanner) parseValue() (*jsonvalue.Value, error) {
	s.skipWhitespace()
	if s.atEnd() {
		return nil, errIncomplete
	}
	c := s.buf[s.pos]
	switch {
	case c == '"':
		return s.parseString()
	case c == '{':
		return s.parseMap()
	case c == '[':
		return s.parseList()
	case c == '-' || c == '.' || isDigit(c):
		return s.parseNumber()
	case c == 't' || c == 'f' || c == 'n':
		return s.parseKeyword()
	default:
		return nil, &parseErr{"illegal character", s.pos}
	}
}

func (s *scanner) parseString() (*jsonvalue.Value, error) {
	start := s.pos
	s.pos++ // opening quote
	for {
		if s.atEnd() {
			return nil, errIncomplete
		}
		c := s.buf[s.pos]
		if c == '\\' {
			s.pos++
			if s.atEnd() {
				return nil, errIncomplete
			}
			switch s.buf[s.pos] {
			case '"', '\\', '/', 'b', 'n', 'r', 't', 'u':
				s.pos++
			default:
				return nil, &parseErr{"invalid escaped character", s.pos}
			}
			continue
		}
		if c == '"' {
			s.pos++
			break
		}
		s.pos++
	}
	v := s.pool.Borrow()
	v.Kind = jsonvalue.KindString
	v.Str = s.buf[start+1 : s.pos-1]
	return v, nil
}

// parseNumber scans a number's characters (digits, at most one '.', an
// optional e/E exponent with sign) without yet interpreting them, then
// evaluates the span with the component-A buffer helpers.
func (s *scanner) parseNumber() (*jsonvalue.Value, error) {
	start := s.pos
	if s.buf[s.pos] == '-' {
		s.pos++
	}
	if s.atEnd() {
		return nil, errIncomplete
	}

	dotCount := 0
	hasExp := false
	for !s.atEnd() {
		c := s.buf[s.pos]
		switch {
		case isDigit(c):
			s.pos++
		case c == '.':
			dotCount++
			if dotCount > 1 {
				return nil, &parseErr{"two decimal points in number", s.pos}
			}
			s.pos++
		case (c == 'e' || c == 'E') && !hasExp:
			hasExp = true
			s.pos++
			if !s.atEnd() && (s.buf[s.pos] == '+' || s.buf[s.pos] == '-') {
				s.pos++
			}
		default:
			goto delimiter
		}
	}
	// Ran off the end of the buffer while still scanning a number: the
	// caller may append more digits on the next call.
	return nil, errIncomplete

delimiter:
	span := s.buf[start:s.pos]
	spanOff := start
	spanLen := s.pos - start

	v := s.pool.Borrow()
	if dotCount == 0 && !hasExp {
		lv := buffer.ParseAsLong(s.buf, spanOff, spanLen, longParseSentinel)
		if lv == longParseSentinel && !isSentinelLong(span) {
			return nil, &parseErr{"illegal character in number", start}
		}
		v.Kind = jsonvalue.KindLong
		v.Long = lv
		return v, nil
	}

	dv, ok := buffer.TryParseAsDouble(s.buf, spanOff, spanLen)
	if !ok {
		return nil, &parseErr{"cannot parse number", start}
	}
	v.Kind = jsonvalue.KindDouble
	v.Double = dv
	return v, nil
}

// longParseSentinel is returned by buffer.ParseAsLong on malformed input;
// isSentinelLong disambiguates a genuine -1 reading from that failure.
const longParseSentinel = int64(-1)

func isSentinelLong(span []byte) bool {
	return string(span) == "-1"
}

func (s *scanner) parseKeyword() (*jsonvalue.Value, error) {
	rem := s.end - s.pos
	switch s.buf[s.pos] {
	case 't':
		if rem < 4 {
			return nil, errIncomplete
		}
		if string(s.buf[s.pos:s.pos+4]) != "true" {
			return nil, &parseErr{"invalid value", s.pos}
		}
		s.pos += 4
		v := s.pool.Borrow()
		v.Kind = jsonvalue.KindBool
		v.Bool = true
		return v, nil
	case 'f':
		if rem < 5 {
			return nil, errIncomplete
		}
		if string(s.buf[s.pos:s.pos+5]) != "false" {
			return nil, &parseErr{"invalid value", s.pos}
		}
		s.pos += 5
		v := s.pool.Borrow()
		v.Kind = jsonvalue.KindBool
		v.Bool = false
		return v, nil
	case 'n':
		if rem < 4 {
			return nil, errIncomplete
		}
		if string(s.buf[s.pos:s.pos+4]) != "null" {
			return nil, &parseErr{"invalid value", s.pos}
		}
		s.pos += 4
		v := s.pool.Borrow()
		v.Kind = jsonvalue.KindNull
		return v, nil
	}
	return nil, &parseErr{"invalid value", s.pos}
}

func (s *scanner) parseList() (*jsonvalue.Value, error) {
	s.pos++ // '['
	list := s.pool.NewList()

	expectComma := false
	for {
		s.skipWhitespace()
		if s.atEnd() {
			s.pool.Release(list)
			return nil, errIncomplete
		}
		c := s.buf[s.pos]
		if c == ']' {
			s.pos++
			return list, nil
		}
		if c == ',' {
			if !expectComma {
				s.pool.Release(list)
				return nil, &parseErr{"illegal comma in list", s.pos}
			}
			s.pos++
			expectComma = false
			continue
		}
		if c == ':' {
			s.pool.Release(list)
			return nil, &parseErr{"colon character not in map", s.pos}
		}
		if expectComma {
			s.pool.Release(list)
			return nil, &parseErr{"illegal character in list", s.pos}
		}
		child, err := s.parseValue()
		if err != nil {
			s.pool.Release(list)
			return nil, err
		}
		s.pool.AppendListElement(list, child)
		expectComma = true
	}
}

func (s *scanner) parseMap() (*jsonvalue.Value, error) {
	s.pos++ // '{'
	m := s.pool.NewMap()

	expectComma := false
	haveKey := false
	var pendingKey []byte
	expectColon := false
	haveColon := false

	for {
		s.skipWhitespace()
		if s.atEnd() {
			s.pool.Release(m)
			return nil, errIncomplete
		}
		c := s.buf[s.pos]
		if c == '}' {
			if expectColon || haveKey {
				s.pool.Release(m)
				return nil, &parseErr{"illegal closing of list/map", s.pos}
			}
			s.pos++
			return m, nil
		}
		if c == ',' {
			if !expectComma {
				s.pool.Release(m)
				return nil, &parseErr{"illegal comma in map", s.pos}
			}
			s.pos++
			expectComma = false
			continue
		}
		if c == ':' {
			if haveColon {
				s.pool.Release(m)
				return nil, &parseErr{"illegal colon in map", s.pos}
			}
			if !expectColon {
				s.pool.Release(m)
				return nil, &parseErr{"colon character not in map", s.pos}
			}
			s.pos++
			haveColon = true
			continue
		}
		if expectComma {
			s.pool.Release(m)
			return nil, &parseErr{"illegal character in map", s.pos}
		}

		if !haveKey {
			if c != '"' {
				s.pool.Release(m)
				return nil, &parseErr{"non-string key", s.pos}
			}
			keyVal, err := s.parseString()
			if err != nil {
				s.pool.Release(m)
				return nil, err
			}
			pendingKey = keyVal.Str
			haveKey = true
			expectColon = true
			continue
		}

		if !haveColon {
			s.pool.Release(m)
			return nil, &parseErr{"colon character not in map", s.pos}
		}

		child, err := s.parseValue()
		if err != nil {
			s.pool.Release(m)
			return nil, err
		}
		if !s.pool.PutMapEntry(m, pendingKey, child) {
			s.pool.Release(child)
			s.pool.Release(m)
			return nil, &parseErr{"duplicate key", s.pos}
		}
		haveKey = false
		expectColon = false
		haveColon = false
		expectComma = true
	}
}
