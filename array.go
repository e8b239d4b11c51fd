// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfsm

import (
	"log/slog"

	"github.com/creachadair/jfsm/ast"
	"github.com/creachadair/jfsm/automaton"
)

// States of the array automaton.
const (
	arrOpened automaton.State = iota
	arrValueOrClose
	arrValue // after a comma, when trailing commas are not allowed
	arrCommaOrClose
)

type arrayCtx struct {
	p    *parser
	list *ast.List
}

func (c *arrayCtx) open(rune) error { return c.p.enter() }

func (c *arrayCtx) parser() *parser { return c.p }

func (c *arrayCtx) add(v ast.Value) { c.list.Add(v) }

func (c *arrayCtx) trailing() bool { return c.p.trailing }

func newArrayMachine(values []production, log *slog.Logger) *automaton.Machine[arrayCtx, *ast.List] {
	type rule = automaton.Rule[arrayCtx]
	isClose := automaton.Equals(']')
	isComma := automaton.Equals(',')
	elements := valueRules(values, (*arrayCtx).parser, (*arrayCtx).add, arrCommaOrClose)

	return &automaton.Machine[arrayCtx, *ast.List]{
		Name:  "array",
		Start: arrOpened,
		States: []automaton.Spec[arrayCtx]{
			arrOpened: {
				Name:  "Opened",
				Rules: []rule{{When: automaton.Equals('['), Do: (*arrayCtx).open, Next: arrValueOrClose}},
			},
			arrValueOrClose: {
				Name: "ExpectValueOrClose",
				Rules: append([]rule{
					skipSpace[arrayCtx](arrValueOrClose),
					{When: isClose, Then: automaton.Accept},
				}, elements...),
			},
			arrValue: {
				Name:  "ExpectValue",
				Rules: append([]rule{skipSpace[arrayCtx](arrValue)}, elements...),
			},
			arrCommaOrClose: {
				Name: "ExpectCommaOrClose",
				Rules: []rule{
					skipSpace[arrayCtx](arrCommaOrClose),
					{When: isComma, If: (*arrayCtx).trailing, Next: arrValueOrClose},
					{When: isComma, Next: arrValue},
					{When: isClose, Then: automaton.Accept},
				},
			},
		},
		Result: func(c *arrayCtx) (*ast.List, error) {
			c.p.leave()
			return c.list, nil
		},
		Log: log,
	}
}
