// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfsm

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/creachadair/jfsm/automaton"
)

// States of the string automaton.
const (
	strOpened automaton.State = iota
	strBody
	strEscape
)

type stringCtx struct {
	buf strings.Builder
}

// unescape returns an action that records ch in place of the escape.
func unescape(ch rune) func(*stringCtx, rune) error {
	return func(c *stringCtx, _ rune) error { c.buf.WriteRune(ch); return nil }
}

var escapes = [...]struct{ in, out rune }{
	{'\\', '\\'}, {'"', '"'}, {'n', '\n'}, {'r', '\r'}, {'t', '\t'},
}

func newStringMachine(log *slog.Logger) *automaton.Machine[stringCtx, string] {
	esc := make([]automaton.Rule[stringCtx], len(escapes))
	for i, e := range escapes {
		esc[i] = automaton.Rule[stringCtx]{When: automaton.Equals(e.in), Do: unescape(e.out), Next: strBody}
	}
	return &automaton.Machine[stringCtx, string]{
		Name:  "string",
		Start: strOpened,
		States: []automaton.Spec[stringCtx]{
			strOpened: {
				Name: "Opened",
				Rules: []automaton.Rule[stringCtx]{
					{When: automaton.Equals('"'), Next: strBody},
				},
			},
			strBody: {
				Name: "Body",
				Rules: []automaton.Rule[stringCtx]{
					{When: automaton.Equals('"'), Then: automaton.Accept},
					{When: automaton.Equals('\\'), Next: strEscape},
					{When: automaton.Any, Do: func(c *stringCtx, ch rune) error {
						c.buf.WriteRune(ch)
						return nil
					}, Next: strBody},
				},
			},
			strEscape: {
				Name:  "Escape",
				Rules: esc,
				Fail: func(_ *stringCtx, ch rune) error {
					return fmt.Errorf("invalid escape %q", ch)
				},
			},
		},
		Result: func(c *stringCtx) (string, error) { return c.buf.String(), nil },
		Log:    log,
	}
}

// stringMachine is shared by callers that do not trace transitions.
// Machines are immutable once constructed.
var stringMachine = newStringMachine(nil)

// ReadString reads a quoted string literal whose opening quotation mark is
// first, consuming the rest of the literal from src. It returns the decoded
// contents of the string. The escapes \\, \", \n, \r, and \t are recognized;
// any other escape is an error.
func ReadString(first rune, src automaton.Source) (string, error) {
	return stringMachine.RunFrom(new(stringCtx), first, src)
}
