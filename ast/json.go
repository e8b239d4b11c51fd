// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"github.com/creachadair/jfsm/internal/escape"
	"go4.org/mem"
)

// appendJSON appends the encoding of v to buf. Containers are encoded
// without building intermediate strings for their elements.
func appendJSON(buf []byte, v Value) []byte {
	switch t := v.(type) {
	case *Object:
		return t.appendJSON(buf)
	case *List:
		return t.appendJSON(buf)
	case Text:
		return escape.AppendQuoted(buf, mem.S(string(t)))
	case nil:
		return append(buf, "null"...)
	default:
		return append(buf, v.JSON()...)
	}
}

func (o *Object) appendJSON(buf []byte) []byte {
	buf = append(buf, '{')
	for i, m := range o.members {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = escape.AppendQuoted(buf, mem.S(m.Key))
		buf = append(buf, ':')
		buf = appendJSON(buf, m.Value)
	}
	return append(buf, '}')
}

func (l *List) appendJSON(buf []byte) []byte {
	buf = append(buf, '[')
	for i, v := range l.values {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendJSON(buf, v)
	}
	return append(buf, ']')
}
