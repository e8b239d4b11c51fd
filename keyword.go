// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfsm

import (
	"fmt"
	"log/slog"

	"github.com/creachadair/jfsm/ast"
	"github.com/creachadair/jfsm/automaton"
	"go4.org/mem"
)

type keywordCtx struct{}

// newKeywordMachine constructs an automaton that matches the literal word and
// produces v. The machine has one state per letter of word; the state name
// brackets the letter it is waiting for, for example "t[r]ue".
func newKeywordMachine(word string, v ast.Value, log *slog.Logger) *automaton.Machine[keywordCtx, ast.Value] {
	w := mem.S(word)
	states := make([]automaton.Spec[keywordCtx], w.Len())
	for i := range w.Len() {
		r := automaton.Rule[keywordCtx]{
			When: automaton.Equals(rune(w.At(i))),
			Next: automaton.State(i + 1),
		}
		if i == w.Len()-1 {
			r.Then = automaton.Accept
		}
		states[i] = automaton.Spec[keywordCtx]{
			Name: fmt.Sprintf("%s[%c]%s",
				w.SliceTo(i).StringCopy(), w.At(i), w.SliceFrom(i+1).StringCopy()),
			Rules: []automaton.Rule[keywordCtx]{r},
		}
	}
	return &automaton.Machine[keywordCtx, ast.Value]{
		Name:   fmt.Sprintf("keyword %q", word),
		States: states,
		Result: func(*keywordCtx) (ast.Value, error) { return v, nil },
		Log:    log,
	}
}
