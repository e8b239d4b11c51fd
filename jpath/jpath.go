// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package jpath implements a tokenizer for path expressions that address
// values nested inside a JSON document.
//
// A path is a sequence of segments, each of which is a member name or an
// array index:
//
//	.name        member with a bare name (ASCII letters and digits)
//	."any text"  member with a quoted name, using JSON string escapes
//	[digits]     array index
//
// For example, .a.b[2]."quoted key"[0] selects element 0 of the member
// "quoted key" of element 2 of member b of member a. The empty path
// addresses the root.
//
// Tokens are produced lazily, one segment at a time:
//
//	for tok := range jpath.Tokens(path) {
//	   if tok.Kind == jpath.Error {
//	      return tok.Err
//	   }
//	   ...
//	}
package jpath

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
	"strconv"
	"strings"

	"github.com/creachadair/jfsm"
	"github.com/creachadair/jfsm/automaton"
)

// ErrEndOfPath is reported when a path ends in the middle of a segment.
var ErrEndOfPath = errors.New("invalid end of path")

// A Kind identifies the kind of a Token.
type Kind byte

const (
	Invalid Kind = iota
	Key          // member name
	Index        // array index
	Error        // malformed path
)

var kindStr = [...]string{
	Invalid: "invalid",
	Key:     "key",
	Index:   "index",
	Error:   "error",
}

func (k Kind) String() string {
	if int(k) < len(kindStr) {
		return kindStr[k]
	}
	return kindStr[Invalid]
}

// A Token is a single segment of a path.
type Token struct {
	Kind  Kind
	Key   string // for Key
	Index int    // for Index
	Err   error  // for Error
}

func (t Token) String() string {
	switch t.Kind {
	case Key:
		return fmt.Sprintf("Key(%q)", t.Key)
	case Index:
		return fmt.Sprintf("Index(%d)", t.Index)
	case Error:
		return fmt.Sprintf("Error(%v)", t.Err)
	}
	return "Invalid"
}

// States of the segment automaton.
const (
	segStart automaton.State = iota
	segAfterDot
	segBareKey
	segAfterBracket
	segIndex
)

type segmentCtx struct {
	src   *jfsm.Cursor
	buf   []rune
	kind  Kind
	key   string
	quote bool
}

func (c *segmentCtx) keep(ch rune) error { c.buf = append(c.buf, ch); return nil }

func (c *segmentCtx) isKey(rune) error { c.kind = Key; return nil }

func (c *segmentCtx) isIndex(rune) error { c.kind = Index; return nil }

func (c *segmentCtx) readQuoted(ch rune) error {
	s, err := jfsm.ReadString(ch, c.src)
	if err != nil {
		return err
	}
	c.key, c.quote = s, true
	return nil
}

var isKeyRune = automaton.Or(automaton.IsLetter, automaton.IsDigit)

// segmentMachine recognizes one segment of a path.
var segmentMachine = &automaton.Machine[segmentCtx, Token]{
	Name:  "path",
	Start: segStart,
	States: []automaton.Spec[segmentCtx]{
		segStart: {
			Name: "Start",
			Rules: []automaton.Rule[segmentCtx]{
				{When: automaton.Equals('.'), Do: (*segmentCtx).isKey, Next: segAfterDot},
				{When: automaton.Equals('['), Do: (*segmentCtx).isIndex, Next: segAfterBracket},
			},
		},
		segAfterDot: {
			Name: "AfterDot",
			Rules: []automaton.Rule[segmentCtx]{
				{When: isKeyRune, Do: (*segmentCtx).keep, Next: segBareKey},
				{When: automaton.Equals('"'), Do: (*segmentCtx).readQuoted, Then: automaton.Accept},
			},
		},
		segBareKey: {
			Name:  "InBareKey",
			Final: true,
			Rules: []automaton.Rule[segmentCtx]{
				{When: isKeyRune, Do: (*segmentCtx).keep, Next: segBareKey},
				{When: automaton.OneOf(".["), Then: automaton.AcceptUnread},
			},
		},
		segAfterBracket: {
			Name:  "AfterBracket",
			Rules: []automaton.Rule[segmentCtx]{{When: automaton.IsDigit, Do: (*segmentCtx).keep, Next: segIndex}},
		},
		segIndex: {
			Name: "InIndexDigits",
			Rules: []automaton.Rule[segmentCtx]{
				{When: automaton.IsDigit, Do: (*segmentCtx).keep, Next: segIndex},
				{When: automaton.Equals(']'), Then: automaton.Accept},
			},
		},
	},
	Result: func(c *segmentCtx) (Token, error) {
		if c.kind == Index {
			n, err := strconv.Atoi(string(c.buf))
			if err != nil {
				return Token{}, fmt.Errorf("invalid index: %w", err)
			}
			return Token{Kind: Index, Index: n}, nil
		}
		if !c.quote {
			c.key = string(c.buf)
		}
		return Token{Kind: Key, Key: c.key}, nil
	},
}

// A Tokenizer produces the tokens of a path one segment at a time.
type Tokenizer struct {
	cur  *jfsm.Cursor
	done bool
}

// NewTokenizer constructs a Tokenizer for the given path.
func NewTokenizer(path string) *Tokenizer {
	cur := jfsm.NewCursorString(path)
	cur.SetLookback(0)
	return &Tokenizer{cur: cur}
}

// Next returns the next token of the path, and reports whether a token was
// available. After Next returns a token of kind Error, no further tokens are
// produced.
func (t *Tokenizer) Next() (Token, bool) {
	if t.done {
		return Token{}, false
	}
	if _, ok := t.cur.Next(); !ok {
		t.done = true
		return Token{}, false
	}
	t.cur.Unread()

	tok, err := segmentMachine.Run(&segmentCtx{src: t.cur}, t.cur)
	if err != nil {
		t.done = true
		if errors.Is(err, automaton.ErrEndOfInput) {
			err = fmt.Errorf("%w: %w", ErrEndOfPath, err)
		}
		return Token{Kind: Error, Err: fmt.Errorf("at offset %d: %w", t.cur.Offset(), err)}, true
	}
	return tok, true
}

// Tokens returns a sequence of the tokens of path. If path is malformed, the
// final token of the sequence has kind Error.
func Tokens(path string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		t := NewTokenizer(path)
		for tok, ok := t.Next(); ok; tok, ok = t.Next() {
			if !yield(tok) {
				return
			}
		}
	}
}

// An Expr is a parsed path expression. No token of an Expr has kind Error.
type Expr []Token

// Parse parses path into an expression.
func Parse(path string) (Expr, error) {
	var out Expr
	for tok := range Tokens(path) {
		if tok.Kind == Error {
			return nil, tok.Err
		}
		out = append(out, tok)
	}
	return out, nil
}

var bareKey = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// String renders e in canonical path syntax. Keys are written bare when
// possible, otherwise quoted.
func (e Expr) String() string {
	var sb strings.Builder
	for _, tok := range e {
		switch tok.Kind {
		case Key:
			sb.WriteByte('.')
			if bareKey.MatchString(tok.Key) {
				sb.WriteString(tok.Key)
			} else {
				sb.WriteString(jfsm.Quote(tok.Key))
			}
		case Index:
			fmt.Fprintf(&sb, "[%d]", tok.Index)
		}
	}
	return sb.String()
}

// JSONPath renders e as an equivalent RFC 9535 JSONPath query, using
// bracketed name and index selectors, for example $["a"][2].
func (e Expr) JSONPath() string {
	var sb strings.Builder
	sb.WriteByte('$')
	for _, tok := range e {
		switch tok.Kind {
		case Key:
			fmt.Fprintf(&sb, "[%s]", jfsm.Quote(tok.Key))
		case Index:
			fmt.Fprintf(&sb, "[%d]", tok.Index)
		}
	}
	return sb.String()
}
