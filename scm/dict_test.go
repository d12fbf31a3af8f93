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

func TestDictBasics(t *testing.T) {
	en := testEnv()
	mustEval(t, en, `(define d (dict "b" 2 "a" 1))`)
	wantNumber(t, mustEval(t, en, `(dict_get d "a")`), 1)
	wantNumber(t, mustEval(t, en, `(dict_get d "missing" 0)`), 0)
	wantValue(t, mustEval(t, en, `(dict_has? d "b")`), true)
	wantValue(t, mustEval(t, en, `(dict_has? d "c")`), false)
	wantNumber(t, mustEval(t, en, "(dict_size d)"), 2)
	wantErrorKind(t, en, "(dict 1)", ErrHostCall)
}

func TestDictKeysAreOrdered(t *testing.T) {
	en := testEnv()
	mustEval(t, en, `(define d (dict "c" 3 "a" 1 "b" 2))`)
	wantValue(t, mustEval(t, en, "(dict_keys d)"), List("a", "b", "c"))
	// mixed key types order by type first: numbers before strings before symbols
	mustEval(t, en, `(define m (dict 'sym 1 "str" 2 3 4))`)
	wantValue(t, mustEval(t, en, "(dict_keys m)"), List(3.0, "str", Symbol("sym")))
}

func TestDictMutation(t *testing.T) {
	en := testEnv()
	mustEval(t, en, `(define d (dict))`)
	mustEval(t, en, `(dict_set d "k" 1)`)
	mustEval(t, en, `(dict_set d "k" 2)`)
	wantNumber(t, mustEval(t, en, `(dict_get d "k")`), 2)
	wantNumber(t, mustEval(t, en, "(dict_size d)"), 1)
	wantValue(t, mustEval(t, en, `(dict_delete d "k")`), true)
	wantValue(t, mustEval(t, en, `(dict_delete d "k")`), false)
	wantNumber(t, mustEval(t, en, "(dict_size d)"), 0)
}

func TestDictIsCallable(t *testing.T) {
	en := testEnv()
	mustEval(t, en, `(define d (dict "a" 1))`)
	wantNumber(t, mustEval(t, en, `(d "a")`), 1)
	wantNumber(t, mustEval(t, en, `(d "missing" 7)`), 7)
	if v := mustEval(t, en, `(d "missing")`); v != nil {
		t.Fatalf("got %s, want unspecified", SerializeToString(v))
	}
	wantErrorKind(t, en, `(d "a" 1 2)`, ErrArity)
}

func TestDictSerialization(t *testing.T) {
	en := testEnv()
	mustEval(t, en, `(define d (dict "b" 2 "a" 1))`)
	if got := mustEval(t, en, "(serialize d)"); got != `(dict "a" 1 "b" 2)` {
		t.Fatalf("got %v", got)
	}
}
