/*
Copyright (C) 2026  yukinoshita0219

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package scm

import "fmt"

// ErrorKind classifies evaluation failures. All of them are raised by
// panicking with a *SchemeError and are only recovered at orchestration
// boundaries (the REPL loop, file loading).
type ErrorKind int

const (
	ErrUnboundName ErrorKind = iota
	ErrNotCallable
	ErrMalformedForm
	ErrInvalidFormals
	ErrArity
	ErrHostCall
	ErrResourceExhausted
	ErrUser
	// reader-side kinds
	ErrSyntax
	ErrIncompleteInput
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnboundName:
		return "unbound name"
	case ErrNotCallable:
		return "not callable"
	case ErrMalformedForm:
		return "malformed form"
	case ErrInvalidFormals:
		return "invalid formals"
	case ErrArity:
		return "arity mismatch"
	case ErrHostCall:
		return "host call failed"
	case ErrResourceExhausted:
		return "resource exhausted"
	case ErrUser:
		return "error"
	case ErrSyntax:
		return "syntax error"
	case ErrIncompleteInput:
		return "incomplete input"
	}
	return "scheme error"
}

// SchemeError is the single failure type of the evaluator.
type SchemeError struct {
	Kind    ErrorKind
	Message string
}

func (e *SchemeError) Error() string {
	return e.Kind.String() + ": " + e.Message
}

func raise(kind ErrorKind, format string, args ...any) {
	panic(&SchemeError{kind, fmt.Sprintf(format, args...)})
}

// AsSchemeError converts a recovered panic value into a *SchemeError,
// wrapping foreign panics as host call failures.
func AsSchemeError(r any) *SchemeError {
	switch e := r.(type) {
	case *SchemeError:
		return e
	case error:
		return &SchemeError{ErrHostCall, e.Error()}
	default:
		return &SchemeError{ErrHostCall, fmt.Sprint(r)}
	}
}
