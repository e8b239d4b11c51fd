// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfsm_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/creachadair/jfsm"
	"github.com/creachadair/jfsm/ast"
	"github.com/creachadair/jfsm/automaton"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`{}`, `{}`},
		{`{"a":1}`, `{"a":1}`},
		{`{ "a" : 1 , "b" : [ ] }`, `{"a":1,"b":[]}`},
		{`{"x":null,"y":[true,false],"z":"q"}`, `{"x":null,"y":[true,false],"z":"q"}`},
		{`{"n":-0.25,"m":0,"k":1234567}`, `{"n":-0.25,"m":0,"k":1234567}`},
		{`{"a":{"b":{"c":"v"}}}`, `{"a":{"b":{"c":"v"}}}`},
		{`{"a":{},"b":{"c":{}},"d":1}`, `{"a":{},"b":{"c":{}},"d":1}`},
		{`{"a":[{"b":[{"c":[]}]}]}`, `{"a":[{"b":[{"c":[]}]}]}`},
		{`{"a":[[1,2],[3,[4]]]}`, `{"a":[[1,2],[3,[4]]]}`},

		// Later keys overwrite earlier ones in place.
		{`{"a":1,"b":2,"a":3}`, `{"a":3,"b":2}`},
		{`{"a":{"x":1},"a":{"y":2}}`, `{"a":{"y":2}}`},

		// Escapes decode and re-encode canonically.
		{`{"s":"a\nb\tc\rd\"e\\f"}`, `{"s":"a\nb\tc\rd\"e\\f"}`},
		{`{"k\"ey":"£ 日本"}`, `{"k\"ey":"£ 日本"}`},

		// Whitespace of every kind between tokens.
		{"{\n\t\"a\"\r\n:\t[ 1 ,\n2 ]\n}", `{"a":[1,2]}`},
	}
	for _, test := range tests {
		obj, err := jfsm.ParseString(test.input)
		if err != nil {
			t.Errorf("Parse %#q: unexpected error: %v", test.input, err)
			continue
		}
		if got := obj.JSON(); got != test.want {
			t.Errorf("Parse %#q: got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string // substring of the error message
	}{
		{``, "empty input"},
		{` {}`, "top-level value must be an object"},
		{`[]`, "top-level value must be an object"},
		{`"x"`, "top-level value must be an object"},
		{`{} `, `unexpected ' ' after top-level object`},
		{`{}{}`, `unexpected '{' after top-level object`},
		{`{`, "object: unexpected end of input in state ExpectKeyOrClose"},
		{`{"a"}`, "object: unexpected character '}' in state ExpectColon"},
		{`{"a":}`, "object: unexpected character '}' in state ExpectValue"},
		{`{"a":1 "b":2}`, `object: unexpected character '"' in state ExpectCommaOrClose`},
		{`{a:1}`, "object: unexpected character 'a' in state ExpectKeyOrClose"},
		{`{"a":1,}`, "object: unexpected character '}' in state ExpectKey"},
		{`{"a":[1,]}`, "array: unexpected character ']' in state ExpectValue"},
		{`{"a":[1 2]}`, "array: unexpected character '2' in state ExpectCommaOrClose"},
		{`{"a":[}`, "array: unexpected character '}' in state ExpectValueOrClose"},
		{`{"a":"b`, "string: unexpected end of input in state Body"},
		{`{"a":"\x"}`, "string: state Escape: invalid escape 'x'"},
		{`{"a":1234..}`, "number: state Dot: no digits after decimal point"},
		{`{"a":012}`, "number: state Zero: extra leading zeroes"},
		{`{"a":-}`, "number: state Sign: got '}', want digit after sign"},
		{`{"a":1e5}`, "object: unexpected character 'e' in state ExpectCommaOrClose"},
		{`{"a":nul}`, `keyword "null": unexpected character '}' in state nul[l]`},
		{`{"a":True}`, "object: unexpected character 'T' in state ExpectValue"},

		// Unterminated input reports the consumed context.
		{`{"key": e`, `at 1:9: object: unexpected character 'e' in state ExpectValue (stream read: {"key": e)`},
		{`{"abcdefghijklmnop": x}`, `(stream read: klmnop": x)`},
	}
	for _, test := range tests {
		obj, err := jfsm.ParseString(test.input)
		if err == nil {
			t.Errorf("Parse %#q: got %v, want error", test.input, obj)
			continue
		}
		var serr *jfsm.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Parse %#q: got error %T, want *SyntaxError", test.input, err)
		}
		if got := err.Error(); !strings.Contains(got, test.want) {
			t.Errorf("Parse %#q: got error %q, want %q", test.input, got, test.want)
		}
	}
}

func TestSyntaxError(t *testing.T) {
	_, err := jfsm.ParseString("{\n  \"a\": [1,\n  2, x]}")
	var serr *jfsm.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("Parse: got %v, want *SyntaxError", err)
	}
	if want := (jfsm.LineCol{Line: 3, Column: 6}); serr.Location != want {
		t.Errorf("Location: got %v, want %v", serr.Location, want)
	}
	if serr.Offset != 19 {
		t.Errorf("Offset: got %d, want 19", serr.Offset)
	}
	if !errors.Is(err, automaton.ErrUnexpected) {
		t.Errorf("Error %v does not wrap ErrUnexpected", err)
	}
	var aerr *automaton.Error
	if !errors.As(err, &aerr) {
		t.Fatalf("Error %v does not wrap *automaton.Error", err)
	}
	if aerr.Machine != "array" || aerr.State != "ExpectValue" || aerr.Rune != 'x' {
		t.Errorf("Engine error: got %+v", aerr)
	}

	t.Run("NoLookback", func(t *testing.T) {
		p := jfsm.NewParser(strings.NewReader(`{"key": e`))
		p.SetLookback(0)
		_, err := p.Parse()
		if got, want := err.Error(), "at 1:9: object: unexpected character 'e' in state ExpectValue"; got != want {
			t.Errorf("Parse: got error %q, want %q", got, want)
		}
	})

	t.Run("EndOfInput", func(t *testing.T) {
		_, err := jfsm.ParseString(`{"a":[1,`)
		if !errors.Is(err, automaton.ErrEndOfInput) {
			t.Errorf("Parse: got %v, want ErrEndOfInput", err)
		}
	})
}

func TestRoundTrip(t *testing.T) {
	values := []any{
		nil, true, false, 0, -1234, 0.2123, 1e-7, 12345678.5,
		"", "plain", "tab\tnew\nline\rquote\"slash\\", "£ and 日本",
		[]any{},
		[]any{"x", nil, 1.5, map[string]any{"k": "v"}},
		map[string]any{},
		map[string]any{"a": map[string]any{"b": map[string]any{"c": "v"}}},
		map[string]any{"list": []any{[]any{1, 2}, map[string]any{"z": []any{}}}},
	}
	for i, v := range values {
		want := ast.NewObject(ast.Field("value", v), ast.Field(fmt.Sprintf("k%d", i), i))
		text := want.JSON()
		got, err := jfsm.ParseString(text)
		if err != nil {
			t.Errorf("Parse %#q: unexpected error: %v", text, err)
			continue
		}
		if !ast.Equal(got, want) {
			t.Errorf("Round trip of %#q: got %#q", text, got.JSON())
		}
	}
}

func TestWhitespace(t *testing.T) {
	const compact = `{"a":[1,{"b":null},"x y"],"c":{"d":true}}`
	want := jfsm.MustParseString(compact)

	// Insert a different whitespace run after every structural rune.
	spaces := []string{" ", "\t", "\n", "\r\n", "  \t "}
	var sb strings.Builder
	var inString bool
	for i, ch := range compact {
		sb.WriteRune(ch)
		if ch == '"' {
			inString = !inString
		}
		if !inString && strings.ContainsRune(`[]{},:"`, ch) && i < len(compact)-1 {
			sb.WriteString(spaces[i%len(spaces)])
		}
	}
	spaced := sb.String()
	if ch := spaced[len(spaced)-1]; ch != '}' {
		t.Fatalf("Spaced input ends with %q", ch)
	}
	got, err := jfsm.ParseString(spaced)
	if err != nil {
		t.Fatalf("Parse %#q: unexpected error: %v", spaced, err)
	}
	if !ast.Equal(got, want) {
		t.Errorf("Parse %#q: got %s, want %s", spaced, got, want)
	}
}

func TestEscapes(t *testing.T) {
	obj := jfsm.MustParseString(`{"s":"\n\""}`)
	if got, want := obj.Get("s"), ast.Text("\n\""); got != want {
		t.Errorf("Get s: got %q, want %q", got, want)
	}
}

func TestHeterogeneousList(t *testing.T) {
	obj := jfsm.MustParseString(`{"v":["x", null, 1.5, {"k":"v"}]}`)
	lst := obj.Get("v").(*ast.List)
	if lst.Len() != 4 {
		t.Fatalf("Len: got %d, want 4", lst.Len())
	}
	var kinds []ast.Kind
	for _, v := range lst.All() {
		kinds = append(kinds, v.Kind())
	}
	if diff := cmp.Diff([]ast.Kind{ast.TextKind, ast.NullKind, ast.NumberKind, ast.ObjectKind}, kinds); diff != "" {
		t.Errorf("Kinds (-want, +got):\n%s", diff)
	}
	if got := lst.Get(0).(ast.Text); got != "x" {
		t.Errorf("Element 0: got %q, want x", got)
	}
	if !ast.IsNull(lst.Get(1)) {
		t.Errorf("Element 1: got %v, want null", lst.Get(1))
	}
	if got := lst.Get(2).(ast.Number); got != 1.5 {
		t.Errorf("Element 2: got %v, want 1.5", got)
	}
	if got := lst.Get(3).(*ast.Object).Get("k"); got != ast.Text("v") {
		t.Errorf("Element 3: got %v, want {k: v}", got)
	}
}

func TestParserOptions(t *testing.T) {
	parse := func(input string, opts ...func(*jfsm.Parser)) (*ast.Object, error) {
		p := jfsm.NewParser(strings.NewReader(input))
		for _, opt := range opts {
			opt(p)
		}
		return p.Parse()
	}
	trailing := func(p *jfsm.Parser) { p.AllowTrailingCommas(true) }
	exponents := func(p *jfsm.Parser) { p.AllowExponents(true) }
	depth := func(n int) func(*jfsm.Parser) { return func(p *jfsm.Parser) { p.SetMaxDepth(n) } }

	t.Run("TrailingCommas", func(t *testing.T) {
		const input = `{"a":[1,2,],"b":{"c":3,},}`
		if _, err := parse(input); err == nil {
			t.Error("Parse: got nil, want error by default")
		}
		obj, err := parse(input, trailing)
		if err != nil {
			t.Fatalf("Parse: unexpected error: %v", err)
		}
		if got, want := obj.JSON(), `{"a":[1,2],"b":{"c":3}}`; got != want {
			t.Errorf("Parse: got %#q, want %#q", got, want)
		}
		for _, bad := range []string{`{,}`, `{"a":[,]}`, `{"a":1,,}`} {
			if _, err := parse(bad, trailing); err == nil {
				t.Errorf("Parse %#q: got nil, want error", bad)
			}
		}
	})

	t.Run("Exponents", func(t *testing.T) {
		obj, err := parse(`{"a":1e3,"b":-2.5E-1,"c":[0e0]}`, exponents)
		if err != nil {
			t.Fatalf("Parse: unexpected error: %v", err)
		}
		if got, want := obj.JSON(), `{"a":1000,"b":-0.25,"c":[0]}`; got != want {
			t.Errorf("Parse: got %#q, want %#q", got, want)
		}
	})

	t.Run("MaxDepth", func(t *testing.T) {
		nest := func(n int) string {
			return `{"a":` + strings.Repeat(`[`, n-2) + `{}` + strings.Repeat(`]`, n-2) + `}`
		}
		if _, err := parse(nest(jfsm.DefaultMaxDepth)); err != nil {
			t.Errorf("Parse depth %d: unexpected error: %v", jfsm.DefaultMaxDepth, err)
		}
		if _, err := parse(nest(jfsm.DefaultMaxDepth + 1)); err == nil {
			t.Errorf("Parse depth %d: got nil, want error", jfsm.DefaultMaxDepth+1)
		}

		tests := []struct {
			input string
			max   int
			ok    bool
		}{
			{`{}`, 1, true},
			{`{"a":{}}`, 1, false},
			{`{"a":[]}`, 1, false},
			{`{"a":{"b":{}}}`, 3, true},
			{`{"a":{"b":{"c":{}}}}`, 3, false},
			{`{"a":{},"b":{},"c":[[]]}`, 3, true},
			{`{"a":[{"b":[]}]}`, 3, false},
		}
		for _, test := range tests {
			_, err := parse(test.input, depth(test.max))
			if test.ok && err != nil {
				t.Errorf("Parse %#q max %d: unexpected error: %v", test.input, test.max, err)
			} else if !test.ok {
				if err == nil {
					t.Errorf("Parse %#q max %d: got nil, want error", test.input, test.max)
				} else if !strings.Contains(err.Error(), "nesting depth exceeds") {
					t.Errorf("Parse %#q max %d: wrong error: %v", test.input, test.max, err)
				}
			}
		}
	})

	t.Run("Logger", func(t *testing.T) {
		var buf bytes.Buffer
		lg := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.Attr{}
				}
				return a
			},
		}))
		if _, err := parse(`{"a":1}`, func(p *jfsm.Parser) { p.SetLogger(lg) }); err != nil {
			t.Fatalf("Parse: unexpected error: %v", err)
		}
		for _, want := range []string{
			`machine=object state=Opened rune={ next=ExpectKeyOrClose`,
			`machine=string state=Body rune=a next=Body`,
			`machine=number state=Integer rune=} outcome=accept-unread`,
			`machine=object state=ExpectCommaOrClose rune=} outcome=accept`,
		} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("Log output is missing %q:\n%s", want, buf.String())
			}
		}
	})
}

func TestParseHuJSON(t *testing.T) {
	const input = `
// A leading comment.
{
  "name": "x", // trailing comment
  /* block */ "list": [1, 2,],
  "sub": {"a": true,},
}
`
	obj, err := jfsm.ParseHuJSON([]byte(input))
	if err != nil {
		t.Fatalf("ParseHuJSON: unexpected error: %v", err)
	}
	if got, want := obj.JSON(), `{"name":"x","list":[1,2],"sub":{"a":true}}`; got != want {
		t.Errorf("ParseHuJSON: got %#q, want %#q", got, want)
	}

	if _, err := jfsm.ParseHuJSON([]byte(`{"a": /* open`)); err == nil {
		t.Error("ParseHuJSON: got nil, want error for malformed input")
	}
}

func TestMustParseString(t *testing.T) {
	mtest.MustPanic(t, func() { jfsm.MustParseString(`{"a":`) })
	if got := jfsm.MustParseString(`{"a":[]}`).JSON(); got != `{"a":[]}` {
		t.Errorf("MustParseString: got %#q", got)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", `""`},
		{"abc", `"abc"`},
		{"a\nb\"c\\", `"a\nb\"c\\"`},
		{"\x01 / £", "\"\x01 / £\""},
	}
	for _, test := range tests {
		got := jfsm.Quote(test.input)
		if got != test.want {
			t.Errorf("Quote %q: got %#q, want %#q", test.input, got, test.want)
		}
		dec, err := jfsm.Unquote(got)
		if err != nil {
			t.Errorf("Unquote %#q: unexpected error: %v", got, err)
		} else if dec != test.input {
			t.Errorf("Unquote %#q: got %q, want %q", got, dec, test.input)
		}
	}

	for _, bad := range []string{``, `abc`, `"abc`, `"a\qb"`, `"a"b`} {
		if got, err := jfsm.Unquote(bad); err == nil {
			t.Errorf("Unquote %#q: got %q, want error", bad, got)
		}
	}
}
