// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a mutable tree of JSON values.
//
// A Value is one of *Object, *List, Text, Number, Bool, or the Null
// sentinel. Containers own their children: a value stored into an Object or a
// List must not also be stored elsewhere, and a value removed from a
// container is no longer referenced by it.
//
// The JSON method of every value renders canonical compact JSON text, with no
// insignificant whitespace.
package ast

import (
	"strconv"

	"github.com/creachadair/jfsm/internal/escape"
	"go4.org/mem"
)

// A Value is an arbitrary JSON value.
type Value interface {
	// JSON returns the canonical compact JSON encoding of the value.
	JSON() string

	// Kind reports which kind of value this is.
	Kind() Kind
}

// Kind identifies the concrete type of a Value.
type Kind byte

// Constants defining the valid Kind values.
const (
	InvalidKind Kind = iota
	ObjectKind       // *Object
	ListKind         // *List
	TextKind         // Text
	NumberKind       // Number
	BoolKind         // Bool
	NullKind         // Null
)

var kindStr = [...]string{
	InvalidKind: "invalid",
	ObjectKind:  "object",
	ListKind:    "list",
	TextKind:    "text",
	NumberKind:  "number",
	BoolKind:    "bool",
	NullKind:    "null",
}

func (k Kind) String() string {
	if int(k) < len(kindStr) {
		return kindStr[k]
	}
	return kindStr[InvalidKind]
}

// Text is a string value.
type Text string

// Kind satisfies the Value interface.
func (Text) Kind() Kind { return TextKind }

// JSON satisfies the Value interface.
func (t Text) JSON() string { return string(escape.AppendQuoted(nil, mem.S(string(t)))) }

// Number is a floating-point value.
type Number float64

// Kind satisfies the Value interface.
func (Number) Kind() Kind { return NumberKind }

// JSON satisfies the Value interface. The number is rendered in decimal
// notation, without an exponent.
func (n Number) JSON() string { return strconv.FormatFloat(float64(n), 'f', -1, 64) }

// Bool is a Boolean value, true or false.
type Bool bool

// Kind satisfies the Value interface.
func (Bool) Kind() Kind { return BoolKind }

// JSON satisfies the Value interface.
func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

// Null is the null value.
var Null Value = nullValue{}

type nullValue struct{}

func (nullValue) Kind() Kind     { return NullKind }
func (nullValue) JSON() string   { return "null" }
func (nullValue) String() string { return "null" }

// IsNull reports whether v is nil or the Null value.
func IsNull(v Value) bool { return v == nil || v.Kind() == NullKind }
