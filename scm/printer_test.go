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

func TestSerializeToString(t *testing.T) {
	tests := []struct {
		value Scmer
		want  string
	}{
		{nil, "nil"},
		{Nil, "()"},
		{true, "true"},
		{false, "false"},
		{42.0, "42"},
		{-3.5, "-3.5"},
		{"hi", `"hi"`},
		{"a\nb", `"a\nb"`},
		{Symbol("foo"), "foo"},
		{List(1.0, 2.0, 3.0), "(1 2 3)"},
		{Cons(1.0, 2.0), "(1 . 2)"},
		{Cons(1.0, Cons(2.0, 3.0)), "(1 2 . 3)"},
		{List(Symbol("a"), List(Symbol("b"))), "(a (b))"},
	}
	for _, test := range tests {
		if got := SerializeToString(test.value); got != test.want {
			t.Errorf("got %q, want %q", got, test.want)
		}
	}
}

func TestStringDisplaysRawStrings(t *testing.T) {
	if got := String("hi"); got != "hi" {
		t.Errorf("got %q, want %q", got, "hi")
	}
	// nested strings keep their quotes
	if got := String(List("a", "b")); got != `("a" "b")` {
		t.Errorf("got %q, want %q", got, `("a" "b")`)
	}
}

func TestSerializeProcedures(t *testing.T) {
	en := testEnv()
	lambda := mustEval(t, en, "(lambda (x y) (+ x y))")
	if got := SerializeToString(lambda); got != "(lambda (x y) (+ x y))" {
		t.Errorf("got %q", got)
	}
	mu := mustEval(t, en, "(mu (x) x)")
	if got := SerializeToString(mu); got != "(mu (x) x)" {
		t.Errorf("got %q", got)
	}
	if got := SerializeToString(Globalenv.Vars[Symbol("car")]); got != "[native car]" {
		t.Errorf("got %q", got)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	for _, source := range []string{
		"(1 2 3)",
		"(a (b . 7) ())",
		`("x" true false 0.5)`,
	} {
		value := Read("test", source)
		again := Read("test", SerializeToString(value))
		if !Equal(value, again) {
			t.Errorf("%q did not round-trip, got %s", source, SerializeToString(again))
		}
	}
}
