// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jfsm implements a JSON parser built from cooperating finite-state
// automata.
//
// # Parsing
//
// The Parse and ParseString functions read a single JSON object and return it
// as an *ast.Object:
//
//	obj, err := jfsm.ParseString(`{"name": "value", "list": [1, 2.5, null]}`)
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// The top-level value must be an object, and it must span the entire input:
// whitespace before the opening brace or after the closing brace is an
// error. To change the default settings, construct a Parser:
//
//	p := jfsm.NewParser(input)
//	p.AllowTrailingCommas(true)
//	p.AllowExponents(true)
//	obj, err := p.Parse()
//
// In case of error, the parser returns an error of concrete type
// *jfsm.SyntaxError. Its message names the automaton and state that rejected
// the input, and its Context field holds the last few runes consumed before
// the error was detected:
//
//	at 1:9: object: unexpected character 'e' in state ExpectValue (stream read: {"key": e)
//
// # Grammar
//
// Each production of the grammar (string, number, keyword, object, array) is
// an automaton.Machine, a table of states with guarded transitions. The
// object and array machines dispatch each value by its first rune, in the
// order object, array, string, number, true, false, null. All the machines
// of a parse share one Cursor, which supports one rune of pushback so that
// a number can return the rune that ended it.
//
// An object nested directly inside an object is parsed by the same run of the
// object machine, using an explicit stack of pending parents. Every other
// nesting starts a new run. Either way the depth of nesting is bounded by the
// parser's maximum depth (see SetMaxDepth).
//
// # Paths
//
// The jpath package tokenizes path expressions such as .a.b[2]."quoted key",
// and the reader package uses them to navigate and edit *ast.Object values.
package jfsm
