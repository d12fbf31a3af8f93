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

func testEnv() *Env {
	return NewScope(&Globalenv)
}

func mustEval(t *testing.T, en *Env, source string) Scmer {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("eval %q: %v", source, AsSchemeError(r))
		}
	}()
	return EvalAll("test", source, en)
}

func evalError(t *testing.T, en *Env, source string) *SchemeError {
	t.Helper()
	var caught *SchemeError
	func() {
		defer func() {
			if r := recover(); r != nil {
				caught = AsSchemeError(r)
			}
		}()
		EvalAll("test", source, en)
	}()
	if caught == nil {
		t.Fatalf("eval %q: expected an error", source)
	}
	return caught
}

func wantErrorKind(t *testing.T, en *Env, source string, kind ErrorKind) {
	t.Helper()
	if e := evalError(t, en, source); e.Kind != kind {
		t.Fatalf("eval %q: got %v, want %v", source, e, kind)
	}
}

func wantNumber(t *testing.T, v Scmer, want float64) {
	t.Helper()
	f, ok := v.(float64)
	if !ok || f != want {
		t.Fatalf("got %s, want %g", SerializeToString(v), want)
	}
}

func wantValue(t *testing.T, v, want Scmer) {
	t.Helper()
	if !Equal(v, want) {
		t.Fatalf("got %s, want %s", SerializeToString(v), SerializeToString(want))
	}
}

func TestSelfEvaluating(t *testing.T) {
	en := testEnv()
	wantNumber(t, mustEval(t, en, "42"), 42)
	wantValue(t, mustEval(t, en, `"hello"`), "hello")
	wantValue(t, mustEval(t, en, "true"), true)
	wantValue(t, mustEval(t, en, "false"), false)
}

func TestDefineAndLookup(t *testing.T) {
	en := testEnv()
	wantValue(t, mustEval(t, en, "(define x 3)"), Symbol("x"))
	wantNumber(t, mustEval(t, en, "x"), 3)
	wantNumber(t, mustEval(t, en, "(+ x x)"), 6)
	wantErrorKind(t, en, "y", ErrUnboundName)
}

func TestShadowing(t *testing.T) {
	en := testEnv()
	mustEval(t, en, "(define x 1)")
	wantNumber(t, mustEval(t, en, "(let ((x 2)) x)"), 2)
	wantNumber(t, mustEval(t, en, "x"), 1)
	// an inner define must not leak outward
	mustEval(t, en, "(define (f) (define x 9) x)")
	wantNumber(t, mustEval(t, en, "(f)"), 9)
	wantNumber(t, mustEval(t, en, "x"), 1)
}

func TestClosures(t *testing.T) {
	en := testEnv()
	mustEval(t, en, "(define (adder n) (lambda (x) (+ x n)))")
	mustEval(t, en, "(define add3 (adder 3))")
	wantNumber(t, mustEval(t, en, "(add3 4)"), 7)
	// the captured frame is shared, not copied
	mustEval(t, en, `
		(define (counter)
		  (let ((cell (cons 0 nil)))
		    (lambda ()
		      (set-car! cell (+ (car cell) 1))
		      (car cell))))
		(define tick (counter))`)
	wantNumber(t, mustEval(t, en, "(tick)"), 1)
	wantNumber(t, mustEval(t, en, "(tick)"), 2)
}

func TestClosureArity(t *testing.T) {
	en := testEnv()
	mustEval(t, en, "(define (f a b) (+ a b))")
	wantNumber(t, mustEval(t, en, "(f 1 2)"), 3)
	wantErrorKind(t, en, "(f 1)", ErrArity)
	wantErrorKind(t, en, "(f 1 2 3)", ErrArity)
}

func TestMuDynamicScope(t *testing.T) {
	en := testEnv()
	// a mu procedure sees the caller's bindings
	mustEval(t, en, "(define probe (mu () x))")
	mustEval(t, en, "(define (caller) (let ((x 42)) (probe)))")
	wantNumber(t, mustEval(t, en, "(caller)"), 42)
	// outside any frame that binds x the same call fails
	wantErrorKind(t, en, "(probe)", ErrUnboundName)
	// a lambda in the same position keeps lexical scope
	mustEval(t, en, "(define lexical (lambda () x))")
	wantErrorKind(t, en, "(let ((x 42)) (lexical))", ErrUnboundName)
}

func TestMacroExpandsThenEvaluates(t *testing.T) {
	en := testEnv()
	mustEval(t, en, `
		(define-macro (twice e) (list 'begin e e))
		(define n 0)
		(twice (define n (+ n 1)))`)
	wantNumber(t, mustEval(t, en, "n"), 2)
}

func TestMacroReceivesRawOperands(t *testing.T) {
	en := testEnv()
	// the operand never evaluates; the macro only quotes it
	mustEval(t, en, "(define-macro (freeze e) (list 'quote e))")
	wantValue(t, mustEval(t, en, "(freeze (undefined-proc 1 2))"),
		List(Symbol("undefined-proc"), 1.0, 2.0))
}

func TestNotCallable(t *testing.T) {
	en := testEnv()
	wantErrorKind(t, en, "(1 2)", ErrNotCallable)
	wantErrorKind(t, en, `("text" 2)`, ErrNotCallable)
	wantErrorKind(t, en, "(apply 5 '(1 2))", ErrNotCallable)
}

func TestTailRecursionDoesNotOverflow(t *testing.T) {
	en := testEnv()
	mustEval(t, en, `
		(define (loop n)
		  (if (= n 0) 'done (loop (- n 1))))`)
	wantValue(t, mustEval(t, en, "(loop 100000)"), Symbol("done"))
}

func TestTailPositionsOfForms(t *testing.T) {
	en := testEnv()
	// tail calls through cond, and, or and begin all stay flat
	mustEval(t, en, `
		(define (c n) (cond ((= n 0) 'done) (else (c (- n 1)))))
		(define (a n) (and true (if (= n 0) 'done (a (- n 1)))))
		(define (o n) (or false (if (= n 0) 'done (o (- n 1)))))
		(define (b n) (begin nil (if (= n 0) 'done (b (- n 1)))))`)
	wantValue(t, mustEval(t, en, "(c 50000)"), Symbol("done"))
	wantValue(t, mustEval(t, en, "(a 50000)"), Symbol("done"))
	wantValue(t, mustEval(t, en, "(o 50000)"), Symbol("done"))
	wantValue(t, mustEval(t, en, "(b 50000)"), Symbol("done"))
}

func TestMutualTailRecursion(t *testing.T) {
	en := testEnv()
	mustEval(t, en, `
		(define (even2? n) (if (= n 0) true (odd2? (- n 1))))
		(define (odd2? n) (if (= n 0) false (even2? (- n 1))))`)
	wantValue(t, mustEval(t, en, "(even2? 100000)"), true)
}

func TestNonTailRecursionExhausts(t *testing.T) {
	en := testEnv()
	// the pending addition keeps every frame alive
	mustEval(t, en, `
		(define (sum n)
		  (if (= n 0) 0 (+ 1 (sum (- n 1)))))`)
	wantNumber(t, mustEval(t, en, "(sum 100)"), 100)
	wantErrorKind(t, en, "(sum 100000)", ErrResourceExhausted)
}

func TestArgumentsEvaluateLeftToRight(t *testing.T) {
	en := testEnv()
	mustEval(t, en, `
		(define order (cons 'head '()))
		(define (note x) (set-cdr! order (cons x (cdr order))) x)
		(list (note 1) (note 2) (note 3))`)
	wantValue(t, mustEval(t, en, "(cdr order)"), List(3.0, 2.0, 1.0))
}

func TestErrorAndTry(t *testing.T) {
	en := testEnv()
	wantErrorKind(t, en, `(error "boom")`, ErrUser)
	wantValue(t, mustEval(t, en, `(try (lambda () (error "boom")) (lambda (msg) msg))`), "boom")
	wantNumber(t, mustEval(t, en, "(try (lambda () 5) (lambda (msg) 0))"), 5)
	// host-side failures hit the same handler
	wantValue(t, mustEval(t, en, `(try (lambda () (car 5)) (lambda (msg) "handled"))`), "handled")
}

func TestBuiltinArityIsHostError(t *testing.T) {
	en := testEnv()
	wantErrorKind(t, en, "(cons 1)", ErrHostCall)
	wantErrorKind(t, en, "(cons 1 2 3)", ErrHostCall)
}

func TestEvalBuiltin(t *testing.T) {
	en := testEnv()
	wantNumber(t, mustEval(t, en, "(eval '(+ 1 2))"), 3)
	mustEval(t, en, "(define e '(* width 2)) (define width 21)")
	wantNumber(t, mustEval(t, en, "(eval e)"), 42)
}

func TestApplyBuiltin(t *testing.T) {
	en := testEnv()
	wantNumber(t, mustEval(t, en, "(apply + '(1 2 3))"), 6)
	mustEval(t, en, "(define (sub a b) (- a b))")
	wantNumber(t, mustEval(t, en, "(apply sub '(10 4))"), 6)
}

func TestHigherOrderBuiltins(t *testing.T) {
	en := testEnv()
	wantValue(t, mustEval(t, en, "(map (lambda (x) (* x x)) '(1 2 3))"), List(1.0, 4.0, 9.0))
	wantValue(t, mustEval(t, en, "(filter odd? '(1 2 3 4 5))"), List(1.0, 3.0, 5.0))
	wantNumber(t, mustEval(t, en, "(reduce + 0 '(1 2 3 4))"), 10)
	// a dict is directly usable as the mapped procedure
	wantValue(t, mustEval(t, en, `(map (dict 1 "a" 2 "b") '(1 2))`), List("a", "b"))
}

func TestProcedurePredicate(t *testing.T) {
	en := testEnv()
	wantValue(t, mustEval(t, en, "(procedure? car)"), true)
	wantValue(t, mustEval(t, en, "(procedure? (lambda (x) x))"), true)
	wantValue(t, mustEval(t, en, "(procedure? (mu (x) x))"), true)
	wantValue(t, mustEval(t, en, "(procedure? 5)"), false)
}

func TestCreateGlobalEnvIsIsolated(t *testing.T) {
	en := CreateGlobalEnv()
	Eval(Read("test", "(define isolated 1)"), en)
	if _, ok := Globalenv.Vars[Symbol("isolated")]; ok {
		t.Fatal("binding leaked into the shared global environment")
	}
	wantNumber(t, Eval(Read("test", "(+ isolated 1)"), en), 2)
}
