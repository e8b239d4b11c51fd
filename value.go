// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfsm

import (
	"fmt"
	"log/slog"

	"github.com/creachadair/jfsm/ast"
	"github.com/creachadair/jfsm/automaton"
	"github.com/creachadair/mds/stack"
)

// A production is one alternative of the JSON value grammar. Parse is called
// with the rune that start accepted, and consumes the rest of the value from
// the parser's cursor.
type production struct {
	name  string
	start automaton.Predicate
	parse func(p *parser, first rune) (ast.Value, error)
}

// A grammar is the set of automata used by a parse. The automata are
// immutable and may be shared by concurrent parses; all mutable state lives
// in the per-run contexts and the parser.
type grammar struct {
	str *automaton.Machine[stringCtx, string]
	num *automaton.Machine[numberCtx, float64]
	obj *automaton.Machine[objectCtx, *ast.Object]
	arr *automaton.Machine[arrayCtx, *ast.List]

	// values is the dispatch list for JSON values, tried in order.
	values []production
}

func newGrammar(log *slog.Logger) *grammar {
	g := &grammar{
		str: newStringMachine(log),
		num: newNumberMachine(log),
	}
	g.values = []production{
		{name: "object", start: automaton.Equals('{'), parse: (*parser).parseObject},
		{name: "array", start: automaton.Equals('['), parse: (*parser).parseArray},
		{name: "string", start: automaton.Equals('"'), parse: (*parser).parseString},
		{name: "number", start: isNumStart, parse: (*parser).parseNumber},
		keyword("true", ast.Bool(true), log),
		keyword("false", ast.Bool(false), log),
		keyword("null", ast.Null, log),
	}
	g.obj = newObjectMachine(g.values, log)
	g.arr = newArrayMachine(g.values, log)
	return g
}

func keyword(word string, v ast.Value, log *slog.Logger) production {
	m := newKeywordMachine(word, v, log)
	return production{
		name:  word,
		start: automaton.Equals(rune(word[0])),
		parse: func(p *parser, first rune) (ast.Value, error) {
			return m.RunFrom(new(keywordCtx), first, p.cur)
		},
	}
}

var isNumStart = automaton.Or(automaton.Equals('-'), automaton.IsDigit)

// parser holds the state of a single parse.
type parser struct {
	g   *grammar
	cur *Cursor

	depth, maxDepth int
	trailing        bool // allow trailing commas
	exponents       bool // allow exponents in numbers
}

// enter records the start of a nested container, and reports an error if
// doing so exceeds the depth limit.
func (p *parser) enter() error {
	if p.depth >= p.maxDepth {
		return fmt.Errorf("nesting depth exceeds %d", p.maxDepth)
	}
	p.depth++
	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) parseObject(first rune) (ast.Value, error) {
	return p.g.obj.RunFrom(&objectCtx{
		p:   p,
		obj: new(ast.Object),
		stk: stack.New[objectFrame](),
	}, first, p.cur)
}

func (p *parser) parseArray(first rune) (ast.Value, error) {
	return p.g.arr.RunFrom(&arrayCtx{p: p, list: new(ast.List)}, first, p.cur)
}

func (p *parser) parseString(first rune) (ast.Value, error) {
	s, err := p.g.str.RunFrom(new(stringCtx), first, p.cur)
	if err != nil {
		return nil, err
	}
	return ast.Text(s), nil
}

func (p *parser) parseNumber(first rune) (ast.Value, error) {
	v, err := p.g.num.RunFrom(&numberCtx{exp: p.exponents}, first, p.cur)
	if err != nil {
		return nil, err
	}
	return ast.Number(v), nil
}

// valueRules returns rules that dispatch each production of values and store
// the result with set, then move to next.
func valueRules[C any](values []production, ctxParser func(*C) *parser, set func(*C, ast.Value), next automaton.State) []automaton.Rule[C] {
	rules := make([]automaton.Rule[C], len(values))
	for i, prod := range values {
		rules[i] = automaton.Rule[C]{
			When: prod.start,
			Do: func(c *C, ch rune) error {
				v, err := prod.parse(ctxParser(c), ch)
				if err != nil {
					return err
				}
				set(c, v)
				return nil
			},
			Next: next,
		}
	}
	return rules
}

func skipSpace[C any](st automaton.State) automaton.Rule[C] {
	return automaton.Rule[C]{When: automaton.IsSpace, Next: st}
}
