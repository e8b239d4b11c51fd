// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfsm

import (
	"log/slog"

	"github.com/creachadair/jfsm/ast"
	"github.com/creachadair/jfsm/automaton"
	"github.com/creachadair/mds/stack"
)

// States of the object automaton.
const (
	objOpened automaton.State = iota
	objKeyOrClose
	objKey // after a comma, when trailing commas are not allowed
	objColon
	objValue
	objCommaOrClose
)

// objectCtx is the context of the object automaton.
//
// An object nested directly inside another object does not start a new run
// of the automaton. Instead the enclosing object and the pending key are
// pushed on stk, and obj is replaced by the new object. When the nested
// object closes it is stored into its parent, which becomes current again.
// Objects inside arrays, and arrays anywhere, are parsed by a separate run.
type objectCtx struct {
	p   *parser
	obj *ast.Object
	key string
	stk *stack.Stack[objectFrame]
}

type objectFrame struct {
	parent *ast.Object
	key    string
}

func (c *objectCtx) nested() bool { return !c.stk.IsEmpty() }

func (c *objectCtx) trailing() bool { return c.p.trailing }

func (c *objectCtx) open(rune) error { return c.p.enter() }

func (c *objectCtx) push(rune) error {
	if err := c.p.enter(); err != nil {
		return err
	}
	c.stk.Push(objectFrame{parent: c.obj, key: c.key})
	c.obj = new(ast.Object)
	return nil
}

func (c *objectCtx) pop(rune) error {
	f, _ := c.stk.Pop()
	f.parent.Set(f.key, c.obj)
	c.obj = f.parent
	c.p.leave()
	return nil
}

func (c *objectCtx) readKey(ch rune) error {
	key, err := c.p.g.str.RunFrom(new(stringCtx), ch, c.p.cur)
	if err != nil {
		return err
	}
	c.key = key
	return nil
}

func newObjectMachine(values []production, log *slog.Logger) *automaton.Machine[objectCtx, *ast.Object] {
	type rule = automaton.Rule[objectCtx]
	var (
		open     = (*objectCtx).open
		push     = (*objectCtx).push
		pop      = (*objectCtx).pop
		readKey  = (*objectCtx).readKey
		nested   = (*objectCtx).nested
		trailing = (*objectCtx).trailing

		isQuote = automaton.Equals('"')
		isClose = automaton.Equals('}')
		isComma = automaton.Equals(',')

		key        = rule{When: isQuote, Do: readKey, Next: objColon}
		closeInner = rule{When: isClose, If: nested, Do: pop, Next: objCommaOrClose}
		closeOuter = rule{When: isClose, Then: automaton.Accept}
	)

	// Nested objects are flattened onto the stack; every other value is
	// dispatched to its own production.
	valueState := []rule{
		skipSpace[objectCtx](objValue),
		{When: automaton.Equals('{'), Do: push, Next: objKeyOrClose},
	}
	valueState = append(valueState, valueRules(values,
		func(c *objectCtx) *parser { return c.p },
		func(c *objectCtx, v ast.Value) { c.obj.Set(c.key, v) },
		objCommaOrClose,
	)...)

	return &automaton.Machine[objectCtx, *ast.Object]{
		Name:  "object",
		Start: objOpened,
		States: []automaton.Spec[objectCtx]{
			objOpened: {
				Name:  "Opened",
				Rules: []rule{{When: automaton.Equals('{'), Do: open, Next: objKeyOrClose}},
			},
			objKeyOrClose: {
				Name:  "ExpectKeyOrClose",
				Rules: []rule{skipSpace[objectCtx](objKeyOrClose), key, closeInner, closeOuter},
			},
			objKey: {
				Name:  "ExpectKey",
				Rules: []rule{skipSpace[objectCtx](objKey), key},
			},
			objColon: {
				Name: "ExpectColon",
				Rules: []rule{
					skipSpace[objectCtx](objColon),
					{When: automaton.Equals(':'), Next: objValue},
				},
			},
			objValue: {
				Name:  "ExpectValue",
				Rules: valueState,
			},
			objCommaOrClose: {
				Name: "ExpectCommaOrClose",
				Rules: []rule{
					skipSpace[objectCtx](objCommaOrClose),
					{When: isComma, If: trailing, Next: objKeyOrClose},
					{When: isComma, Next: objKey},
					closeInner, closeOuter,
				},
			},
		},
		Result: func(c *objectCtx) (*ast.Object, error) {
			c.p.leave()
			return c.obj, nil
		},
		Log: log,
	}
}
