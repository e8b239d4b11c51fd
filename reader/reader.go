// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package reader implements navigation over the structure of a parsed JSON
// document.
//
// A Reader is a read-only pointer into a value. Its navigation methods never
// fail: stepping to a missing member, into a value of the wrong type, or past
// the end of a list yields an empty Reader, and every further step from an
// empty Reader is also empty. This makes long chains safe to evaluate:
//
//	name, ok := reader.New(doc).Field("owner").Index(0).Field("name").Text()
//
// The Lookup, Remove, and Path functions take a path expression (see package
// jpath) and report an error if the path is malformed or does not match the
// structure of the document.
package reader

import (
	"github.com/creachadair/jfsm/ast"
	"github.com/creachadair/jfsm/jpath"
)

// A Reader navigates into the structure of an ast.Value. The zero Reader is
// empty. A Reader does not own the value it refers to, and does not modify
// it.
type Reader struct {
	v ast.Value // nil if empty
}

// New constructs a Reader that refers to v. If v == nil, the Reader is empty.
func New(v ast.Value) Reader { return Reader{v: v} }

// Field returns a Reader for the value of the member of r with the given key.
// The result is empty if r is not an object or has no such member.
func (r Reader) Field(key string) Reader {
	obj, ok := r.v.(*ast.Object)
	if !ok {
		return Reader{}
	}
	return Reader{v: obj.Get(key)}
}

// Index returns a Reader for element i of r. Negative indices count backward
// from the end of the list (-1 is last). The result is empty if r is not a
// list or i is out of range.
func (r Reader) Index(i int) Reader {
	lst, ok := r.v.(*ast.List)
	if !ok {
		return Reader{}
	}
	if i < 0 {
		i += lst.Len()
	}
	return Reader{v: lst.Get(i)}
}

// Path returns a Reader for the value addressed by path, relative to r. The
// result is empty if path is malformed or cannot be followed.
func (r Reader) Path(path string) Reader {
	for tok := range jpath.Tokens(path) {
		switch tok.Kind {
		case jpath.Key:
			r = r.Field(tok.Key)
		case jpath.Index:
			r = r.Index(tok.Index)
		default:
			return Reader{}
		}
		if !r.Exists() {
			break
		}
	}
	return r
}

// Exists reports whether r refers to a value. An explicit null value exists.
func (r Reader) Exists() bool { return r.v != nil }

// Value returns the value r refers to, or ast.Null if r is empty.
func (r Reader) Value() ast.Value {
	if r.v == nil {
		return ast.Null
	}
	return r.v
}

// Text returns the string value of r, and reports whether r is a string.
func (r Reader) Text() (string, bool) {
	t, ok := r.v.(ast.Text)
	return string(t), ok
}

// Number returns the numeric value of r, and reports whether r is a number.
func (r Reader) Number() (float64, bool) {
	n, ok := r.v.(ast.Number)
	return float64(n), ok
}

// Bool returns the Boolean value of r, and reports whether r is a Boolean.
func (r Reader) Bool() (bool, bool) {
	b, ok := r.v.(ast.Bool)
	return bool(b), ok
}

// Object returns the object r refers to, and reports whether r is an object.
func (r Reader) Object() (*ast.Object, bool) {
	obj, ok := r.v.(*ast.Object)
	return obj, ok
}

// List returns the list r refers to, and reports whether r is a list.
func (r Reader) List() (*ast.List, bool) {
	lst, ok := r.v.(*ast.List)
	return lst, ok
}

// IsNull reports whether r is empty or refers to a null value.
func (r Reader) IsNull() bool { return ast.IsNull(r.v) }
