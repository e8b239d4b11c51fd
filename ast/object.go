// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"iter"
	"slices"
)

// An Object is a collection of key-value members with unique keys.
// The zero value is an empty object ready for use.
//
// Members are kept in the order their keys were first set, and rendered in
// that order by JSON. The order has no other significance.
type Object struct {
	members []*Member
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// NewObject constructs an object with the given members. If a key occurs more
// than once, the last value wins.
func NewObject(ms ...*Member) *Object {
	o := new(Object)
	for _, m := range ms {
		o.Set(m.Key, m.Value)
	}
	return o
}

// Field constructs an object member with the given key and value.
// The value is converted as by ToValue.
func Field(key string, value any) *Member { return &Member{Key: key, Value: ToValue(value)} }

// Kind satisfies the Value interface.
func (*Object) Kind() Kind { return ObjectKind }

// Len reports the number of members in o.
func (o *Object) Len() int { return len(o.members) }

// Find returns the member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	if i := o.index(key); i >= 0 {
		return o.members[i]
	}
	return nil
}

// Get returns the value of o for the given key, or nil if key is not present.
func (o *Object) Get(key string) Value {
	if m := o.Find(key); m != nil {
		return m.Value
	}
	return nil
}

// Has reports whether o has a member with the given key.
func (o *Object) Has(key string) bool { return o.index(key) >= 0 }

// Set sets the value of key in o to v, replacing any previous value.
// A nil v is stored as Null.
func (o *Object) Set(key string, v Value) {
	if v == nil {
		v = Null
	}
	if m := o.Find(key); m != nil {
		m.Value = v
		return
	}
	o.members = append(o.members, &Member{Key: key, Value: v})
}

// Remove removes the member of o with the given key, and returns its value.
// It returns nil if key is not present.
func (o *Object) Remove(key string) Value {
	i := o.index(key)
	if i < 0 {
		return nil
	}
	v := o.members[i].Value
	o.members = slices.Delete(o.members, i, i+1)
	return v
}

// Object sets key in o to a new empty object and returns it.
func (o *Object) Object(key string) *Object {
	c := new(Object)
	o.Set(key, c)
	return c
}

// List sets key in o to a new empty list and returns it.
func (o *Object) List(key string) *List {
	c := new(List)
	o.Set(key, c)
	return c
}

// Keys returns the keys of o in member order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// All is a range function over the members of o, in member order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, m := range o.members {
			if !yield(m.Key, m.Value) {
				return
			}
		}
	}
}

// JSON satisfies the Value interface.
func (o *Object) JSON() string { return string(o.appendJSON(nil)) }

func (o *Object) String() string { return o.JSON() }

func (o *Object) index(key string) int {
	return slices.IndexFunc(o.members, func(m *Member) bool { return m.Key == key })
}
