// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package automaton

import "strings"

// A Predicate reports whether a rune is acceptable to a transition.
type Predicate func(rune) bool

// IsDigit reports whether ch is an ASCII decimal digit.
func IsDigit(ch rune) bool { return '0' <= ch && ch <= '9' }

// IsSpace reports whether ch is JSON whitespace: space, tab, CR, or LF.
func IsSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

// IsLetter reports whether ch is an ASCII letter.
func IsLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// Any accepts every rune.
func Any(rune) bool { return true }

// Equals returns a predicate that accepts only c.
func Equals(c rune) Predicate { return func(ch rune) bool { return ch == c } }

// OneOf returns a predicate that accepts any rune in chars.
func OneOf(chars string) Predicate {
	return func(ch rune) bool { return strings.ContainsRune(chars, ch) }
}

// Or returns a predicate that accepts a rune if any of ps does.
func Or(ps ...Predicate) Predicate {
	return func(ch rune) bool {
		for _, p := range ps {
			if p(ch) {
				return true
			}
		}
		return false
	}
}

// Not returns a predicate that accepts exactly the runes p rejects.
func Not(p Predicate) Predicate { return func(ch rune) bool { return !p(ch) } }
