// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package reader

import (
	"errors"
	"fmt"

	"github.com/creachadair/jfsm/ast"
	"github.com/creachadair/jfsm/jpath"
)

var (
	// ErrNotFound is reported when a path names an object member that does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrWrongType is reported when a path applies a key to a value that is
	// not an object, or an index to a value that is not a list.
	ErrWrongType = errors.New("wrong value type")

	// ErrOutOfRange is reported when a path indexes past the end of a list.
	ErrOutOfRange = errors.New("index out of range")
)

// Lookup returns the value addressed by path in root. The empty path
// addresses root itself. If path is malformed or does not match the
// structure of root, Lookup reports an error.
func Lookup(root ast.Value, path string) (ast.Value, error) {
	w := walker{cur: root}
	for tok := range jpath.Tokens(path) {
		if err := w.step(tok); err != nil {
			return nil, w.errorf(path, err)
		}
	}
	return w.cur, nil
}

// Remove removes the value addressed by path from its enclosing object or
// list in root, and returns it. The caller owns the removed value. Removing
// an element of a list shifts the elements after it down by one. The empty
// path is an error, since root has no enclosing value.
func Remove(root ast.Value, path string) (ast.Value, error) {
	tz := jpath.NewTokenizer(path)
	last, ok := tz.Next()
	if !ok {
		return nil, errors.New("cannot remove the root of a document")
	}
	w := walker{cur: root}
	for next, ok := tz.Next(); ok; next, ok = tz.Next() {
		if err := w.step(last); err != nil {
			return nil, w.errorf(path, err)
		}
		last = next
	}
	v, err := w.remove(last)
	if err != nil {
		return nil, w.errorf(path, err)
	}
	return v, nil
}

// Path returns the value addressed by path in root, which must have type T.
// It is a typed wrapper for Lookup.
func Path[T ast.Value](root ast.Value, path string) (T, error) {
	var zero T
	v, err := Lookup(root, path)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("path %q: %w: got %v, want %T", path, ErrWrongType, kindOf(v), zero)
	}
	return t, nil
}

// A walker follows the tokens of a path through a document, keeping track
// of the segments it has consumed for diagnostics.
type walker struct {
	cur  ast.Value
	seen jpath.Expr
}

func (w *walker) step(tok jpath.Token) error {
	var next ast.Value
	switch tok.Kind {
	case jpath.Key:
		obj, err := asObject(w.cur, tok)
		if err != nil {
			return err
		}
		m := obj.Find(tok.Key)
		if m == nil {
			return fmt.Errorf("key %q %w", tok.Key, ErrNotFound)
		}
		next = m.Value
	case jpath.Index:
		lst, err := asList(w.cur, tok)
		if err != nil {
			return err
		}
		next = lst.Get(tok.Index)
	default:
		return fmt.Errorf("invalid path: %w", tok.Err)
	}
	w.cur = next
	w.seen = append(w.seen, tok)
	return nil
}

func (w *walker) remove(tok jpath.Token) (ast.Value, error) {
	switch tok.Kind {
	case jpath.Key:
		obj, err := asObject(w.cur, tok)
		if err != nil {
			return nil, err
		}
		if !obj.Has(tok.Key) {
			return nil, fmt.Errorf("key %q %w", tok.Key, ErrNotFound)
		}
		return obj.Remove(tok.Key), nil
	case jpath.Index:
		lst, err := asList(w.cur, tok)
		if err != nil {
			return nil, err
		}
		return lst.Remove(tok.Index), nil
	default:
		return nil, fmt.Errorf("invalid path: %w", tok.Err)
	}
}

func (w *walker) errorf(path string, err error) error {
	at := w.seen.String()
	if at == "" {
		at = "root"
	}
	return fmt.Errorf("path %q: at %s: %w", path, at, err)
}

func asObject(v ast.Value, tok jpath.Token) (*ast.Object, error) {
	obj, ok := v.(*ast.Object)
	if !ok {
		return nil, fmt.Errorf("cannot select key %q from %v: %w", tok.Key, kindOf(v), ErrWrongType)
	}
	return obj, nil
}

// asList returns v as a list that has an element at the index of tok.
func asList(v ast.Value, tok jpath.Token) (*ast.List, error) {
	lst, ok := v.(*ast.List)
	if !ok {
		return nil, fmt.Errorf("cannot select index %d from %v: %w", tok.Index, kindOf(v), ErrWrongType)
	} else if tok.Index >= lst.Len() {
		return nil, fmt.Errorf("index %d (n=%d): %w", tok.Index, lst.Len(), ErrOutOfRange)
	}
	return lst, nil
}

func kindOf(v ast.Value) ast.Kind {
	if v == nil {
		return ast.InvalidKind
	}
	return v.Kind()
}
