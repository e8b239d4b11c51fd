// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package automaton

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpected is reported when no rule of the current state accepts
	// the input rune.
	ErrUnexpected = errors.New("unexpected character")

	// ErrEndOfInput is reported when the input ends in a state that is not
	// final.
	ErrEndOfInput = errors.New("unexpected end of input")
)

// Error is the concrete type of errors reported by Machine.Run. It records
// the machine and state in which the failure occurred.
type Error struct {
	Machine string
	State   string
	Rune    rune // the offending rune, if EOF is false
	EOF     bool // the failure occurred at end of input

	Err error
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	if e.EOF {
		return fmt.Sprintf("%s: %v in state %s", e.Machine, e.Err, e.State)
	} else if errors.Is(e.Err, ErrUnexpected) {
		return fmt.Sprintf("%s: %v %q in state %s", e.Machine, e.Err, e.Rune, e.State)
	}
	return fmt.Sprintf("%s: state %s: %v", e.Machine, e.State, e.Err)
}

// Unwrap supports error wrapping.
func (e *Error) Unwrap() error { return e.Err }

func (m *Machine[C, T]) errorf(st State, ch rune, eof bool, err error) *Error {
	return &Error{
		Machine: m.Name,
		State:   m.StateName(st),
		Rune:    ch,
		EOF:     eof,
		Err:     err,
	}
}

// wrap attributes err to state st of m, unless err already originates from
// a machine. Errors from nested runs are reported where they happened.
func (m *Machine[C, T]) wrap(st State, ch rune, err error) error {
	var aerr *Error
	if errors.As(err, &aerr) {
		return err
	}
	return m.errorf(st, ch, false, err)
}
