// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"iter"
	"slices"
)

// A List is an ordered sequence of values, indexed from 0.
// The zero value is an empty list ready for use.
type List struct {
	values []Value
}

// NewList constructs a list of the given values, converted as by ToValue.
func NewList(vs ...any) *List {
	l := &List{values: make([]Value, len(vs))}
	for i, v := range vs {
		l.values[i] = ToValue(v)
	}
	return l
}

// Kind satisfies the Value interface.
func (*List) Kind() Kind { return ListKind }

// Len reports the number of elements in l.
func (l *List) Len() int { return len(l.values) }

// Add appends vs to the end of l. A nil value is stored as Null.
func (l *List) Add(vs ...Value) {
	for _, v := range vs {
		if v == nil {
			v = Null
		}
		l.values = append(l.values, v)
	}
}

// Get returns the element of l at index i, or nil if i is out of range.
func (l *List) Get(i int) Value {
	if i < 0 || i >= len(l.values) {
		return nil
	}
	return l.values[i]
}

// Set replaces the element of l at index i with v.
// It panics if i is out of range.
func (l *List) Set(i int, v Value) {
	l.checkIndex(i)
	if v == nil {
		v = Null
	}
	l.values[i] = v
}

// Remove removes and returns the element of l at index i. Subsequent
// elements are shifted down by one. It panics if i is out of range.
func (l *List) Remove(i int) Value {
	l.checkIndex(i)
	v := l.values[i]
	l.values = slices.Delete(l.values, i, i+1)
	return v
}

// Object appends a new empty object to l and returns it.
func (l *List) Object() *Object {
	c := new(Object)
	l.values = append(l.values, c)
	return c
}

// List appends a new empty list to l and returns it.
func (l *List) List() *List {
	c := new(List)
	l.values = append(l.values, c)
	return c
}

// All is a range function over the indexes and elements of l.
func (l *List) All() iter.Seq2[int, Value] { return slices.All(l.values) }

// JSON satisfies the Value interface.
func (l *List) JSON() string { return string(l.appendJSON(nil)) }

func (l *List) String() string { return l.JSON() }

func (l *List) checkIndex(i int) {
	if i < 0 || i >= len(l.values) {
		panic(fmt.Sprintf("ast: index %d out of range (n=%d)", i, len(l.values)))
	}
}
