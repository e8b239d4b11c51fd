// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles canonical quoting of JSON strings.
package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var shortEsc = [...]byte{
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	'"':  '"',
	'\\': '\\',
}

// Quote encodes src for inclusion in a JSON string, without the enclosing
// quotation marks. Only double quotes, backslashes, and the newline, return,
// and tab controls are escaped; all other runes are copied unchanged.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len())
	for src.Len() != 0 {
		b := src.At(0)
		if b >= utf8.RuneSelf {
			_, n := mem.DecodeRune(src)
			buf = mem.Append(buf, src.SliceTo(n))
			src = src.SliceFrom(n)
			continue
		}
		if int(b) < len(shortEsc) && shortEsc[b] != 0 {
			buf = append(buf, '\\', shortEsc[b])
		} else {
			buf = append(buf, b)
		}
		src = src.SliceFrom(1)
	}
	return buf
}

// AppendQuoted appends the quoted JSON string encoding of src to buf,
// including the enclosing quotation marks.
func AppendQuoted(buf []byte, src mem.RO) []byte {
	buf = append(buf, '"')
	buf = append(buf, Quote(src)...)
	return append(buf, '"')
}
