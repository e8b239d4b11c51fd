// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfsm

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/creachadair/jfsm/automaton"
)

// States of the number automaton.
const (
	numStart     automaton.State = iota
	numSign                      // after a leading "-"
	numZero                      // after a leading "0"
	numInt                       // in the integer part
	numDot                       // after the decimal point
	numFrac                      // in the fractional part
	numExp                       // after "e" or "E"
	numExpSign                   // after the sign of an exponent
	numExpDigits                 // in the digits of an exponent
)

type numberCtx struct {
	buf []byte
	exp bool // exponents are permitted
}

func keepDigit(c *numberCtx, ch rune) error { c.buf = append(c.buf, byte(ch)); return nil }

func allowExp(c *numberCtx) bool { return c.exp }

var isExpMark = automaton.OneOf("eE")

func newNumberMachine(log *slog.Logger) *automaton.Machine[numberCtx, float64] {
	// The end of a number is signalled by the first rune that cannot continue
	// it. That rune belongs to the next token, so it is pushed back.
	end := automaton.Rule[numberCtx]{When: automaton.Any, Then: automaton.AcceptUnread}
	exp := automaton.Rule[numberCtx]{When: isExpMark, If: allowExp, Do: keepDigit, Next: numExp}
	digit := func(next automaton.State) automaton.Rule[numberCtx] {
		return automaton.Rule[numberCtx]{When: automaton.IsDigit, Do: keepDigit, Next: next}
	}
	dot := automaton.Rule[numberCtx]{When: automaton.Equals('.'), Do: keepDigit, Next: numDot}

	return &automaton.Machine[numberCtx, float64]{
		Name:  "number",
		Start: numStart,
		States: []automaton.Spec[numberCtx]{
			numStart: {
				Name: "Start",
				Rules: []automaton.Rule[numberCtx]{
					{When: automaton.Equals('-'), Do: keepDigit, Next: numSign},
					{When: automaton.Equals('0'), Do: keepDigit, Next: numZero},
					digit(numInt),
				},
			},
			numSign: {
				Name: "Sign",
				Rules: []automaton.Rule[numberCtx]{
					{When: automaton.Equals('0'), Do: keepDigit, Next: numZero},
					digit(numInt),
				},
				Fail: func(_ *numberCtx, ch rune) error {
					return fmt.Errorf("got %q, want digit after sign", ch)
				},
			},
			numZero: {
				Name:  "Zero",
				Final: true,
				Rules: []automaton.Rule[numberCtx]{
					{When: automaton.IsDigit, Do: func(*numberCtx, rune) error {
						return errors.New("extra leading zeroes")
					}},
					dot, exp, end,
				},
			},
			numInt: {
				Name:  "Integer",
				Final: true,
				Rules: []automaton.Rule[numberCtx]{digit(numInt), dot, exp, end},
			},
			numDot: {
				Name:  "Dot",
				Rules: []automaton.Rule[numberCtx]{digit(numFrac)},
				Fail: func(_ *numberCtx, ch rune) error {
					return fmt.Errorf("no digits after decimal point (got %q)", ch)
				},
			},
			numFrac: {
				Name:  "Fraction",
				Final: true,
				Rules: []automaton.Rule[numberCtx]{digit(numFrac), exp, end},
			},
			numExp: {
				Name: "Exponent",
				Rules: []automaton.Rule[numberCtx]{
					{When: automaton.OneOf("+-"), Do: keepDigit, Next: numExpSign},
					digit(numExpDigits),
				},
			},
			numExpSign: {
				Name:  "ExponentSign",
				Rules: []automaton.Rule[numberCtx]{digit(numExpDigits)},
				Fail: func(_ *numberCtx, ch rune) error {
					return fmt.Errorf("missing exponent digits (got %q)", ch)
				},
			},
			numExpDigits: {
				Name:  "ExponentDigits",
				Final: true,
				Rules: []automaton.Rule[numberCtx]{digit(numExpDigits), end},
			},
		},
		Result: func(c *numberCtx) (float64, error) {
			v, err := strconv.ParseFloat(string(c.buf), 64)
			if err != nil {
				return 0, fmt.Errorf("invalid number %q: %w", c.buf, err)
			}
			return v, nil
		},
		Log: log,
	}
}
