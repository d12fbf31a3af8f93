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

import "testing"

func TestIfForm(t *testing.T) {
	en := testEnv()
	wantNumber(t, mustEval(t, en, "(if true 1 2)"), 1)
	wantNumber(t, mustEval(t, en, "(if false 1 2)"), 2)
	// anything but false is truthy
	wantNumber(t, mustEval(t, en, "(if 0 1 2)"), 1)
	wantNumber(t, mustEval(t, en, `(if "" 1 2)`), 1)
	wantNumber(t, mustEval(t, en, "(if '() 1 2)"), 1)
	// missing alternative yields the unspecified value
	if v := mustEval(t, en, "(if false 1)"); v != nil {
		t.Fatalf("got %s, want unspecified", SerializeToString(v))
	}
	// only the taken branch evaluates
	wantNumber(t, mustEval(t, en, `(if true 1 (error "untaken"))`), 1)
}

func TestCondForm(t *testing.T) {
	en := testEnv()
	wantNumber(t, mustEval(t, en, "(cond (false 1) (true 2) (true 3))"), 2)
	// else heads the final clause; multi-expression bodies run in order
	wantNumber(t, mustEval(t, en, "(cond (false 1) (else 2 3))"), 3)
	// a bodyless clause yields its test value
	wantNumber(t, mustEval(t, en, "(cond (false) (7))"), 7)
	// no matching clause yields the unspecified value
	if v := mustEval(t, en, "(cond (false 1))"); v != nil {
		t.Fatalf("got %s, want unspecified", SerializeToString(v))
	}
	wantErrorKind(t, en, "(cond (else 1) (true 2))", ErrMalformedForm)
	wantErrorKind(t, en, "(cond ())", ErrMalformedForm)
}

func TestAndOrForms(t *testing.T) {
	en := testEnv()
	wantValue(t, mustEval(t, en, "(and)"), true)
	wantValue(t, mustEval(t, en, "(and 1 false 2)"), false)
	wantNumber(t, mustEval(t, en, "(and 1 2 3)"), 3)
	wantValue(t, mustEval(t, en, "(or)"), false)
	wantNumber(t, mustEval(t, en, "(or false false 3)"), 3)
	wantNumber(t, mustEval(t, en, "(or 1 2)"), 1)
	// short circuit: the rest never evaluates
	wantValue(t, mustEval(t, en, `(and false (error "untaken"))`), false)
	wantNumber(t, mustEval(t, en, `(or 7 (error "untaken"))`), 7)
}

func TestLetForm(t *testing.T) {
	en := testEnv()
	wantNumber(t, mustEval(t, en, "(let ((x 1) (y 2)) (+ x y))"), 3)
	// binding expressions see the outer frame, not their siblings
	mustEval(t, en, "(define x 10)")
	wantNumber(t, mustEval(t, en, "(let ((x 1) (y x)) y)"), 10)
	wantErrorKind(t, testEnv(), "(let ((x 1) (y x)) y)", ErrUnboundName)
	wantErrorKind(t, en, "(let ((x 1) (x 2)) x)", ErrInvalidFormals)
	wantErrorKind(t, en, "(let ((1 2)) 3)", ErrInvalidFormals)
	wantErrorKind(t, en, "(let ((x)) x)", ErrMalformedForm)
	wantErrorKind(t, en, "(let x 1)", ErrMalformedForm)
}

func TestBeginForm(t *testing.T) {
	en := testEnv()
	wantNumber(t, mustEval(t, en, "(begin 1 2 3)"), 3)
	wantErrorKind(t, en, "(begin)", ErrMalformedForm)
}

func TestQuoteForm(t *testing.T) {
	en := testEnv()
	wantValue(t, mustEval(t, en, "'x"), Symbol("x"))
	wantValue(t, mustEval(t, en, "'(1 2)"), List(1.0, 2.0))
	wantValue(t, mustEval(t, en, "''x"), List(Symbol("quote"), Symbol("x")))
	wantErrorKind(t, en, "(quote)", ErrMalformedForm)
	wantErrorKind(t, en, "(quote a b)", ErrMalformedForm)
}

func TestDefineForm(t *testing.T) {
	en := testEnv()
	wantValue(t, mustEval(t, en, "(define x 1)"), Symbol("x"))
	wantValue(t, mustEval(t, en, "(define (f a) a)"), Symbol("f"))
	wantErrorKind(t, en, "(define)", ErrMalformedForm)
	wantErrorKind(t, en, "(define x)", ErrMalformedForm)
	wantErrorKind(t, en, "(define x 1 2)", ErrMalformedForm)
	wantErrorKind(t, en, "(define 3 4)", ErrMalformedForm)
	wantErrorKind(t, en, `(define ("f" a) a)`, ErrMalformedForm)
}

func TestFormalsValidation(t *testing.T) {
	en := testEnv()
	wantErrorKind(t, en, "(lambda (x x) x)", ErrInvalidFormals)
	wantErrorKind(t, en, "(lambda (x 1) x)", ErrInvalidFormals)
	wantErrorKind(t, en, "(lambda x x)", ErrInvalidFormals)
	wantErrorKind(t, en, "(mu (x x) x)", ErrInvalidFormals)
	wantErrorKind(t, en, "(define-macro (m y y) y)", ErrInvalidFormals)
	wantErrorKind(t, en, "(lambda (x))", ErrMalformedForm)
	wantErrorKind(t, en, "(if)", ErrMalformedForm)
	wantErrorKind(t, en, "(if 1 2 3 4)", ErrMalformedForm)
}

func TestFormNamesAreNotBindings(t *testing.T) {
	en := testEnv()
	// a binding named like a form never shadows the syntax
	mustEval(t, en, "(define if 99)")
	wantNumber(t, mustEval(t, en, "(if true 1 2)"), 1)
}

func TestDefineNamesProcedure(t *testing.T) {
	en := testEnv()
	mustEval(t, en, "(define (f a b) a)")
	e := evalError(t, en, "(f 1)")
	if e.Kind != ErrArity {
		t.Fatalf("got %v, want arity error", e)
	}
	if want := "f takes 2 arguments, 1 given"; e.Message != want {
		t.Fatalf("got %q, want %q", e.Message, want)
	}
}
