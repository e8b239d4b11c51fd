// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfsm

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/creachadair/jfsm/ast"
	"github.com/tailscale/hujson"
)

// DefaultMaxDepth is the maximum nesting depth of objects and arrays accepted
// by a Parser unless SetMaxDepth is called.
const DefaultMaxDepth = 512

// defaultGrammar is shared by parsers that do not trace transitions.
var defaultGrammar = newGrammar(nil)

// A Parser parses a single JSON object from an input stream into an
// *ast.Object. The zero value is not ready for use; call NewParser.
type Parser struct {
	cur       *Cursor
	trailing  bool
	exponents bool
	maxDepth  int
	log       *slog.Logger
}

// NewParser constructs a Parser that consumes input from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{cur: NewCursor(r), maxDepth: DefaultMaxDepth}
}

// AllowTrailingCommas configures the parser to allow (true) or reject (false)
// a comma after the last member of an object or element of an array.
func (p *Parser) AllowTrailingCommas(ok bool) { p.trailing = ok }

// AllowExponents configures the parser to allow (true) or reject (false)
// exponents in numbers, as in 1.5e-3.
func (p *Parser) AllowExponents(ok bool) { p.exponents = ok }

// SetMaxDepth sets the maximum nesting depth of objects and arrays. The
// top-level object has depth 1. If n <= 0, DefaultMaxDepth is used.
func (p *Parser) SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	p.maxDepth = n
}

// SetLookback sets the number of recently-consumed runes reported as context
// in a syntax error. If n <= 0, no context is reported.
func (p *Parser) SetLookback(n int) { p.cur.SetLookback(n) }

// SetLogger sets a logger to receive a debug record for each transition of
// the automata. If lg == nil, tracing is disabled.
func (p *Parser) SetLogger(lg *slog.Logger) { p.log = lg }

// Parse parses a single object from the input. No other input may precede
// or follow the object, including whitespace. In case of error, the returned
// error has type [*SyntaxError].
func (p *Parser) Parse() (*ast.Object, error) {
	g := defaultGrammar
	if p.log != nil {
		g = newGrammar(p.log)
	}
	ps := &parser{
		g:         g,
		cur:       p.cur,
		maxDepth:  p.maxDepth,
		trailing:  p.trailing,
		exponents: p.exponents,
	}

	first, ok := p.cur.Next()
	if !ok {
		return nil, p.syntaxError(nil, "empty input")
	} else if first != '{' {
		return nil, p.syntaxError(nil, "top-level value must be an object, got %q", first)
	}
	v, err := ps.parseObject(first)
	if err != nil {
		return nil, p.syntaxError(err, "%v", err)
	}
	if ch, ok := p.cur.Next(); ok {
		return nil, p.syntaxError(nil, "unexpected %q after top-level object", ch)
	} else if p.cur.Err() != nil {
		return nil, p.syntaxError(nil, "")
	}
	return v.(*ast.Object), nil
}

// syntaxError constructs a *SyntaxError at the current location. A read
// error from the input takes precedence over err, since the grammar reports
// a failed read as the end of input.
func (p *Parser) syntaxError(err error, msg string, args ...any) *SyntaxError {
	if rerr := p.cur.Err(); rerr != nil {
		err, msg, args = rerr, "read error: %v", []any{rerr}
	}
	return &SyntaxError{
		Location: p.cur.Location(),
		Offset:   p.cur.Offset(),
		Message:  fmt.Sprintf(msg, args...),
		Context:  p.cur.Recent(),
		err:      err,
	}
}

// Parse parses a JSON object from r with the default settings.
func Parse(r io.Reader) (*ast.Object, error) { return NewParser(r).Parse() }

// ParseString parses a JSON object from s with the default settings.
func ParseString(s string) (*ast.Object, error) { return Parse(strings.NewReader(s)) }

// MustParseString parses s as with ParseString, but panics if parsing fails.
// It is intended for use in tests and initializers.
func MustParseString(s string) *ast.Object {
	obj, err := ParseString(s)
	if err != nil {
		panic(fmt.Sprintf("jfsm: parse failed: %v", err))
	}
	return obj
}

// ParseHuJSON parses a JSON object from data, which may contain comments and
// trailing commas in the HuJSON (JWCC) style. Whitespace surrounding the
// object is ignored.
func ParseHuJSON(data []byte) (*ast.Object, error) {
	std, err := hujson.Standardize(bytes.Clone(data))
	if err != nil {
		return nil, fmt.Errorf("standardize input: %w", err)
	}
	return Parse(bytes.NewReader(bytes.TrimSpace(std)))
}

// SyntaxError is the concrete type of errors reported by the parser.
type SyntaxError struct {
	Location LineCol // where the error was detected
	Offset   int     // rune offset of Location
	Message  string

	// Context holds the runes consumed immediately before the error, if any.
	Context string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	if s.Context == "" {
		return fmt.Sprintf("at %s: %s", s.Location, s.Message)
	}
	return fmt.Sprintf("at %s: %s (stream read: %s)", s.Location, s.Message, s.Context)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
