// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"slices"
)

// ToValue converts a Go value to a Value. It accepts Value, string, bool, nil,
// the built-in integer and floating-point types, []any, and map[string]any,
// whose keys are added in sorted order. ToValue panics for any other type.
func ToValue(v any) Value {
	switch t := v.(type) {
	case Value:
		return t
	case nil:
		return Null
	case string:
		return Text(t)
	case bool:
		return Bool(t)
	case int:
		return Number(t)
	case int8:
		return Number(t)
	case int16:
		return Number(t)
	case int32:
		return Number(t)
	case int64:
		return Number(t)
	case uint:
		return Number(t)
	case uint8:
		return Number(t)
	case uint16:
		return Number(t)
	case uint32:
		return Number(t)
	case uint64:
		return Number(t)
	case float32:
		return Number(t)
	case float64:
		return Number(t)
	case []any:
		return NewList(t...)
	case map[string]any:
		o := new(Object)
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		for _, key := range keys {
			o.Set(key, ToValue(t[key]))
		}
		return o
	default:
		panic(fmt.Sprintf("ast: unsupported value type %T", v))
	}
}

// Equal reports whether a and b are structurally equal: they have the same
// kind, scalars have equal content, lists have equal elements in order, and
// objects have the same keys with equal values regardless of member order.
// A nil Value is equal to Null.
func Equal(a, b Value) bool {
	if a == nil {
		a = Null
	}
	if b == nil {
		b = Null
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch t := a.(type) {
	case *Object:
		u := b.(*Object)
		if t.Len() != u.Len() {
			return false
		}
		for _, m := range t.members {
			w := u.Find(m.Key)
			if w == nil || !Equal(m.Value, w.Value) {
				return false
			}
		}
		return true
	case *List:
		u := b.(*List)
		return slices.EqualFunc(t.values, u.values, Equal)
	case nullValue:
		return true
	default:
		return a == b
	}
}
