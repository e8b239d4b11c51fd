// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package automaton implements a table-driven finite-state machine that
// consumes runes one at a time from a pushback-capable source.
//
// A Machine is described entirely by data: for each state, an ordered list of
// guarded rules. A rule pairs a rune predicate (and optionally a guard over
// the per-run context) with an action and either a next state or a terminal
// outcome. Run feeds runes to the machine until a rule finishes it, no rule
// matches, or the input ends:
//
//	v, err := m.Run(&ctx, src)
//
// A terminal rule may mark the rune that ended the token as not consumed,
// in which case the machine returns it to the source with Unread so that the
// next consumer sees it. This is how tokens without a closing delimiter, such
// as numbers, report where they end.
package automaton

import (
	"context"
	"log/slog"
)

// A State identifies a state of a Machine. States are indexes into the
// machine's state table.
type State int

// An Outcome says what happens after a rule fires.
type Outcome byte

const (
	Continue     Outcome = iota // move to the rule's next state
	Accept                      // finish; the rune is consumed
	AcceptUnread                // finish; the rune is returned to the source
)

var outcomeStr = [...]string{
	Continue:     "continue",
	Accept:       "accept",
	AcceptUnread: "accept-unread",
}

func (o Outcome) String() string {
	if int(o) < len(outcomeStr) {
		return outcomeStr[o]
	}
	return "invalid outcome"
}

// A Source delivers runes to a machine. Unread returns the most recently read
// rune to the source, so that the next call to Next reports it again.
type Source interface {
	Next() (rune, bool)
	Unread()
}

// A Rule is a guarded transition. It fires when When accepts the input rune
// and, if If is set, If reports true for the current context. When it fires,
// Do (if set) is applied to the context and the rune, and then the machine
// either moves to Next or stops according to Then.
type Rule[C any] struct {
	When Predicate
	If   func(*C) bool
	Do   func(*C, rune) error
	Next State
	Then Outcome
}

// A Spec describes one state of a Machine.
type Spec[C any] struct {
	Name  string
	Rules []Rule[C]

	// If set, Fail is called when no rule matches. If it returns nil, the
	// rune is consumed and the machine remains in the same state.
	Fail func(*C, rune) error

	// Final reports whether the input may end in this state.
	Final bool
}

// A Machine is a finite-state automaton over runes, with per-run context of
// type C and result type T.
type Machine[C, T any] struct {
	Name   string
	Start  State
	States []Spec[C]

	// Result constructs the outcome of a successful run from its context.
	Result func(*C) (T, error)

	// If non-nil, Log receives a debug record for each transition.
	Log *slog.Logger
}

// Run runs m from its start state with the given context, consuming input
// from src until the machine stops.
func (m *Machine[C, T]) Run(ctx *C, src Source) (T, error) {
	return m.run(ctx, src, 0, false)
}

// RunFrom is as Run, but treats first as the first rune of the input. This
// supports a caller that has already read one rune to decide which machine
// should handle it.
func (m *Machine[C, T]) RunFrom(ctx *C, first rune, src Source) (T, error) {
	return m.run(ctx, src, first, true)
}

func (m *Machine[C, T]) run(ctx *C, src Source, first rune, hasFirst bool) (T, error) {
	var zero T
	st := m.Start
	for {
		var ch rune
		if hasFirst {
			ch, hasFirst = first, false
		} else if next, ok := src.Next(); ok {
			ch = next
		} else if m.States[st].Final {
			return m.finish(ctx, st)
		} else {
			return zero, m.errorf(st, 0, true, ErrEndOfInput)
		}

		spec := &m.States[st]
		r := findRule(spec.Rules, ctx, ch)
		if r == nil {
			if spec.Fail == nil {
				return zero, m.errorf(st, ch, false, ErrUnexpected)
			} else if err := spec.Fail(ctx, ch); err != nil {
				return zero, m.wrap(st, ch, err)
			}
			continue
		}
		if r.Do != nil {
			if err := r.Do(ctx, ch); err != nil {
				return zero, m.wrap(st, ch, err)
			}
		}
		m.trace(st, ch, r)
		switch r.Then {
		case Accept:
			return m.finish(ctx, st)
		case AcceptUnread:
			src.Unread()
			return m.finish(ctx, st)
		}
		st = r.Next
	}
}

func (m *Machine[C, T]) finish(ctx *C, st State) (T, error) {
	v, err := m.Result(ctx)
	if err != nil {
		var zero T
		return zero, m.wrap(st, 0, err)
	}
	return v, nil
}

func findRule[C any](rules []Rule[C], ctx *C, ch rune) *Rule[C] {
	for i := range rules {
		r := &rules[i]
		if r.When(ch) && (r.If == nil || r.If(ctx)) {
			return r
		}
	}
	return nil
}

// StateName reports the diagnostic name of st.
func (m *Machine[C, T]) StateName(st State) string {
	if int(st) >= 0 && int(st) < len(m.States) && m.States[st].Name != "" {
		return m.States[st].Name
	}
	return "invalid state"
}

func (m *Machine[C, T]) trace(st State, ch rune, r *Rule[C]) {
	if m.Log == nil || !m.Log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	attrs := []slog.Attr{
		slog.String("machine", m.Name),
		slog.String("state", m.StateName(st)),
		slog.String("rune", string(ch)),
	}
	if r.Then == Continue {
		attrs = append(attrs, slog.String("next", m.StateName(r.Next)))
	} else {
		attrs = append(attrs, slog.String("outcome", r.Then.String()))
	}
	m.Log.LogAttrs(context.Background(), slog.LevelDebug, "transition", attrs...)
}
