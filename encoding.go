// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfsm

import (
	"errors"
	"fmt"

	"github.com/creachadair/jfsm/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(escape.AppendQuoted(nil, mem.S(src))) }

// Unquote decodes a JSON string value. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
// Unquote reports an error for an invalid or incomplete escape sequence, or
// if src contains anything after the closing quotation mark.
func Unquote(src string) (string, error) {
	cur := NewCursorString(src)
	first, ok := cur.Next()
	if !ok || first != '"' {
		return "", errors.New("missing quotations")
	}
	s, err := ReadString(first, cur)
	if err != nil {
		return "", err
	}
	if _, ok := cur.Next(); ok {
		return "", fmt.Errorf("extra input after string at offset %d", cur.Offset()-1)
	}
	return s, nil
}
