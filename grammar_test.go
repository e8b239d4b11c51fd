// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfsm

import (
	"errors"
	"testing"

	"github.com/creachadair/jfsm/ast"
	"github.com/creachadair/jfsm/automaton"
	"github.com/google/go-cmp/cmp"
)

// rest returns the unconsumed input of c.
func rest(c *Cursor) string {
	var out []rune
	for {
		ch, ok := c.Next()
		if !ok {
			return string(out)
		}
		out = append(out, ch)
	}
}

func TestStringMachine(t *testing.T) {
	tests := []struct {
		input, want, rest string
	}{
		{`""`, "", ""},
		{`"abc"`, "abc", ""},
		{`"a b"xyz`, "a b", "xyz"},
		{`"\n\""`, "\n\"", ""},
		{`"\\\r\t"`, "\\\r\t", ""},
		{"\"tab\there\"", "tab\there", ""},
		{`"£ and 日本"`, "£ and 日本", ""},
		{`"{\"nested\": 1}"`, `{"nested": 1}`, ""},
	}
	for _, test := range tests {
		c := NewCursorString(test.input)
		got, err := stringMachine.Run(new(stringCtx), c)
		if err != nil {
			t.Errorf("Run %#q: unexpected error: %v", test.input, err)
			continue
		}
		if got != test.want {
			t.Errorf("Run %#q: got %q, want %q", test.input, got, test.want)
		}
		if r := rest(c); r != test.rest {
			t.Errorf("Run %#q: rest is %q, want %q", test.input, r, test.rest)
		}
	}
}

func TestStringErrors(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`abc"`, `string: unexpected character 'a' in state Opened`},
		{`"abc`, `string: unexpected end of input in state Body`},
		{`"abc\`, `string: unexpected end of input in state Escape`},
		{`"a\qb"`, `string: state Escape: invalid escape 'q'`},
		{`"\/"`, `string: state Escape: invalid escape '/'`},
		{`"\u0020"`, `string: state Escape: invalid escape 'u'`},
	}
	for _, test := range tests {
		_, err := stringMachine.Run(new(stringCtx), NewCursorString(test.input))
		if err == nil {
			t.Errorf("Run %#q: got nil, want error", test.input)
		} else if got := err.Error(); got != test.want {
			t.Errorf("Run %#q: got error %q, want %q", test.input, got, test.want)
		}
	}
}

func TestNumberMachine(t *testing.T) {
	m := newNumberMachine(nil)
	tests := []struct {
		input string
		exp   bool
		want  float64
		rest  string
	}{
		{"0", false, 0, ""},
		{"0.2123", false, 0.2123, ""},
		{"-1234", false, -1234, ""},
		{"-0", false, 0, ""},
		{"-0.5", false, -0.5, ""},
		{"15,", false, 15, ","},
		{"2.5}", false, 2.5, "}"},
		{"7 ", false, 7, " "},
		{"0]", false, 0, "]"},

		// Exponents are only consumed when enabled.
		{"1e5", false, 1, "e5"},
		{"1e5", true, 1e5, ""},
		{"2.5E-2,", true, 0.025, ","},
		{"-3e+2", true, -300, ""},
		{"0e1", true, 0, ""},
	}
	for _, test := range tests {
		c := NewCursorString(test.input)
		got, err := m.Run(&numberCtx{exp: test.exp}, c)
		if err != nil {
			t.Errorf("Run %q: unexpected error: %v", test.input, err)
			continue
		}
		if got != test.want {
			t.Errorf("Run %q: got %v, want %v", test.input, got, test.want)
		}
		if r := rest(c); r != test.rest {
			t.Errorf("Run %q: rest is %q, want %q", test.input, r, test.rest)
		}
	}
}

func TestNumberErrors(t *testing.T) {
	m := newNumberMachine(nil)
	tests := []struct {
		input string
		exp   bool
		want  string
	}{
		{"-", false, `number: unexpected end of input in state Sign`},
		{"-x", false, `number: state Sign: got 'x', want digit after sign`},
		{"1234..", false, `number: state Dot: no digits after decimal point (got '.')`},
		{"1.", false, `number: unexpected end of input in state Dot`},
		{"01", false, `number: state Zero: extra leading zeroes`},
		{"-007", false, `number: state Zero: extra leading zeroes`},
		{"1e", true, `number: unexpected end of input in state Exponent`},
		{"1ex", true, `number: unexpected character 'x' in state Exponent`},
		{"1e+x", true, `number: state ExponentSign: missing exponent digits (got 'x')`},
	}
	for _, test := range tests {
		_, err := m.Run(&numberCtx{exp: test.exp}, NewCursorString(test.input))
		if err == nil {
			t.Errorf("Run %q: got nil, want error", test.input)
		} else if got := err.Error(); got != test.want {
			t.Errorf("Run %q: got error %q, want %q", test.input, got, test.want)
		}
	}
}

func TestKeywordMachine(t *testing.T) {
	m := newKeywordMachine("true", ast.Bool(true), nil)

	t.Run("States", func(t *testing.T) {
		var names []string
		for i := range m.States {
			names = append(names, m.StateName(automaton.State(i)))
		}
		if diff := cmp.Diff([]string{"[t]rue", "t[r]ue", "tr[u]e", "tru[e]"}, names); diff != "" {
			t.Errorf("State names (-want, +got):\n%s", diff)
		}
	})

	t.Run("Match", func(t *testing.T) {
		c := NewCursorString("true,")
		v, err := m.Run(new(keywordCtx), c)
		if err != nil {
			t.Fatalf("Run: unexpected error: %v", err)
		}
		if v != ast.Bool(true) {
			t.Errorf("Run: got %v, want true", v)
		}
		if r := rest(c); r != "," {
			t.Errorf("Run: rest is %q, want %q", r, ",")
		}
	})

	for _, test := range []struct {
		input, want string
	}{
		{"tru", `keyword "true": unexpected end of input in state tru[e]`},
		{"trUe", `keyword "true": unexpected character 'U' in state tr[u]e`},
		{"false", `keyword "true": unexpected character 'f' in state [t]rue`},
	} {
		_, err := m.Run(new(keywordCtx), NewCursorString(test.input))
		if err == nil {
			t.Errorf("Run %q: got nil, want error", test.input)
		} else if got := err.Error(); got != test.want {
			t.Errorf("Run %q: got error %q, want %q", test.input, got, test.want)
		}
	}
}

func TestNestedMachineErrors(t *testing.T) {
	// An error inside a nested value is attributed to the innermost machine.
	_, err := ParseString(`{"a": {"b": [1, "x\q"]}}`)
	var aerr *automaton.Error
	if !errors.As(err, &aerr) {
		t.Fatalf("Parse: got %v, want *automaton.Error", err)
	}
	if aerr.Machine != "string" || aerr.State != "Escape" {
		t.Errorf("Error at %s/%s, want string/Escape", aerr.Machine, aerr.State)
	}
}

func TestDepth(t *testing.T) {
	p := &parser{g: defaultGrammar, cur: NewCursorString(`{"a":{"b":[{}]}}`), maxDepth: 10}
	first, _ := p.cur.Next()
	if _, err := p.parseObject(first); err != nil {
		t.Fatalf("parseObject: unexpected error: %v", err)
	}
	if p.depth != 0 {
		t.Errorf("After parse: depth is %d, want 0", p.depth)
	}
}
