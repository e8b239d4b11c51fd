// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfsm

import (
	"bufio"
	"io"
	"strings"

	"github.com/creachadair/mds/queue"
)

// DefaultLookback is the number of recently-consumed runes a Cursor retains
// for error diagnostics unless SetLookback is called.
const DefaultLookback = 10

// A Cursor is a rune source shared by the automata of a parse. It supports
// one rune of pushback, tracks the location of the input, and retains the
// most recently consumed runes for diagnostics.
//
// A Cursor satisfies the automaton.Source interface.
type Cursor struct {
	r   io.RuneReader
	err error

	last    rune // most recently read rune
	back    bool // last has been pushed back
	canBack bool // Unread is permitted

	// Offsets of the next rune, and of the rune before the last read, so that
	// Unread can restore them.
	pos, line, col    int
	ppos, pline, pcol int

	keep int
	seen *queue.Queue[rune]
}

// NewCursor constructs a Cursor that consumes input from r.
func NewCursor(r io.Reader) *Cursor {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	return &Cursor{r: rr, keep: DefaultLookback, seen: queue.New[rune]()}
}

// NewCursorString constructs a Cursor that consumes the runes of s.
func NewCursorString(s string) *Cursor { return NewCursor(strings.NewReader(s)) }

// SetLookback sets the number of consumed runes retained for Recent. A value
// of zero or less disables retention.
func (c *Cursor) SetLookback(n int) {
	c.keep = max(n, 0)
	for c.seen.Len() > c.keep {
		c.seen.Pop()
	}
}

// Next reads the next rune of input. It reports false at the end of input or
// if a read error occurs; use Err to distinguish.
func (c *Cursor) Next() (rune, bool) {
	if c.back {
		c.back = false
	} else {
		if c.err != nil {
			return 0, false
		}
		ch, _, err := c.r.ReadRune()
		if err != nil {
			if err != io.EOF {
				c.err = err
			}
			c.canBack = false
			return 0, false
		}
		c.last = ch
		c.remember(ch)
	}
	c.ppos, c.pline, c.pcol = c.pos, c.line, c.col
	c.pos++
	if c.last == '\n' {
		c.line++
		c.col = 0
	} else {
		c.col++
	}
	c.canBack = true
	return c.last, true
}

// Unread pushes back the most recently read rune, so that the next call to
// Next reports it again. Only one rune of pushback is supported: Unread
// panics if it is called again before the next successful call to Next.
func (c *Cursor) Unread() {
	if !c.canBack {
		panic("jfsm: invalid Unread")
	}
	c.back, c.canBack = true, false
	c.pos, c.line, c.col = c.ppos, c.pline, c.pcol
}

// Err reports the read error that ended the input, if any. It returns nil if
// the input ended normally.
func (c *Cursor) Err() error { return c.err }

// Offset reports the offset in runes of the next rune to be read.
func (c *Cursor) Offset() int { return c.pos }

// Location reports the position of the next rune to be read.
func (c *Cursor) Location() LineCol { return LineCol{Line: c.line + 1, Column: c.col} }

// Recent returns the most recently consumed runes, up to the lookback
// limit, in input order.
func (c *Cursor) Recent() string { return string(c.seen.Slice()) }

func (c *Cursor) remember(ch rune) {
	if c.keep == 0 {
		return
	}
	c.seen.Add(ch)
	if c.seen.Len() > c.keep {
		c.seen.Pop()
	}
}
