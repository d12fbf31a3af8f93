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

// Scmer is any Scheme value: float64, string, bool, Symbol, *Pair, Nil,
// nil (the unspecified value), a procedure (*Declaration, *Proc, *MuProc,
// *MacroProc, *Thunk) or a special form marker (*FormSpec).
type Scmer = any

// Symbol is an identifier, compared by value.
type Symbol string

// Pair is a mutable two-slot cons cell. Lists are chains of pairs
// terminated by Nil. Pair subgraphs are shared by aliasing, never copied;
// macro bodies and quoted structure may be referenced from many places.
type Pair struct {
	First Scmer
	Rest  Scmer
}

// NilType is the type of the empty list sentinel Nil.
type NilType struct{}

// Nil terminates every proper list. It is distinct from Go nil, which is
// the unspecified value (e.g. the result of an if without alternative).
var Nil NilType

func Cons(first, rest Scmer) *Pair {
	return &Pair{first, rest}
}

// List builds a proper list from its arguments.
func List(items ...Scmer) Scmer {
	var result Scmer = Nil
	for i := len(items) - 1; i >= 0; i-- {
		result = &Pair{items[i], result}
	}
	return result
}

// listSlice flattens a proper list into a slice of element references.
// ok is false for improper lists and non-list values.
func listSlice(l Scmer) (elements []Scmer, ok bool) {
	for {
		switch v := l.(type) {
		case NilType:
			return elements, true
		case *Pair:
			elements = append(elements, v.First)
			l = v.Rest
		default:
			return nil, false
		}
	}
}

// asList is listSlice for host builtins: it panics on improper input.
func asList(v Scmer, what string) []Scmer {
	l, ok := listSlice(v)
	if !ok {
		panic(what + ": expected a proper list, got " + String(v))
	}
	return l
}

func isList(v Scmer) bool {
	_, ok := listSlice(v)
	return ok
}

// ToBool implements Scheme truthiness: everything except the literal
// false value is true.
func ToBool(v Scmer) bool {
	b, ok := v.(bool)
	return !ok || b
}

func ToFloat(v Scmer) float64 {
	f, ok := v.(float64)
	if !ok {
		panic("expected a number, got " + String(v))
	}
	return f
}

func ToInt(v Scmer) int {
	return int(ToFloat(v))
}

// Equal compares two values structurally: pairs element-wise, everything
// else by value (procedures by identity).
func Equal(a, b Scmer) bool {
	pa, aok := a.(*Pair)
	pb, bok := b.(*Pair)
	if aok && bok {
		return Equal(pa.First, pb.First) && Equal(pa.Rest, pb.Rest)
	}
	if aok != bok {
		return false
	}
	return a == b
}

// Less gives a total order over atoms for sorted containers: values are
// ranked by type (numbers < strings < symbols < booleans), then compared
// within the type.
func Less(a, b Scmer) bool {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		return ra < rb
	}
	switch av := a.(type) {
	case float64:
		return av < b.(float64)
	case string:
		return av < b.(string)
	case Symbol:
		return av < b.(Symbol)
	case bool:
		return !av && b.(bool)
	}
	return false
}

func typeRank(v Scmer) int {
	switch v.(type) {
	case float64:
		return 0
	case string:
		return 1
	case Symbol:
		return 2
	case bool:
		return 3
	}
	return 4
}
