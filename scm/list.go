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

func init_list() {
	DeclareTitle("Lists")
	Declare(&Globalenv, &Declaration{
		"cons", "builds a pair from two values",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"first", "any", "first slot"},
			DeclarationParameter{"rest", "any", "rest slot"},
		}, "list",
		func(a ...Scmer) Scmer {
			return Cons(a[0], a[1])
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"car", "first slot of a pair",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"pair", "list", "pair"},
		}, "any",
		func(a ...Scmer) Scmer {
			p, ok := a[0].(*Pair)
			if !ok {
				panic("car: expected a pair, got " + String(a[0]))
			}
			return p.First
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"cdr", "rest slot of a pair",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"pair", "list", "pair"},
		}, "any",
		func(a ...Scmer) Scmer {
			p, ok := a[0].(*Pair)
			if !ok {
				panic("cdr: expected a pair, got " + String(a[0]))
			}
			return p.Rest
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"set-car!", "overwrites the first slot of a pair in place",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"pair", "list", "pair to mutate"},
			DeclarationParameter{"value", "any", "new first slot"},
		}, "nil",
		func(a ...Scmer) Scmer {
			p, ok := a[0].(*Pair)
			if !ok {
				panic("set-car!: expected a pair, got " + String(a[0]))
			}
			p.First = a[1]
			return nil
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"set-cdr!", "overwrites the rest slot of a pair in place",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"pair", "list", "pair to mutate"},
			DeclarationParameter{"value", "any", "new rest slot"},
		}, "nil",
		func(a ...Scmer) Scmer {
			p, ok := a[0].(*Pair)
			if !ok {
				panic("set-cdr!: expected a pair, got " + String(a[0]))
			}
			p.Rest = a[1]
			return nil
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"list", "builds a list from its arguments",
		0, -1,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "any", "elements"},
		}, "list",
		func(a ...Scmer) Scmer {
			return List(a...)
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"length", "number of elements in a list",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"list", "list", "list"},
		}, "number",
		func(a ...Scmer) Scmer {
			return float64(len(asList(a[0], "length")))
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"append", "concatenates lists; the elements of all but the last are copied",
		0, -1,
		[]DeclarationParameter{
			DeclarationParameter{"list...", "list", "lists"},
		}, "list",
		func(a ...Scmer) Scmer {
			var result Scmer = Nil
			if len(a) > 0 {
				result = a[len(a)-1]
				for i := len(a) - 2; i >= 0; i-- {
					items := asList(a[i], "append")
					for j := len(items) - 1; j >= 0; j-- {
						result = &Pair{items[j], result}
					}
				}
			}
			return result
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"reverse", "returns a reversed copy of a list",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"list", "list", "list"},
		}, "list",
		func(a ...Scmer) Scmer {
			var result Scmer = Nil
			for _, v := range asList(a[0], "reverse") {
				result = &Pair{v, result}
			}
			return result
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"nth", "element at the given zero-based index",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"list", "list", "list"},
			DeclarationParameter{"index", "number", "zero-based position"},
		}, "any",
		func(a ...Scmer) Scmer {
			items := asList(a[0], "nth")
			i := ToInt(a[1])
			if i < 0 || i >= len(items) {
				panic("nth: index out of range")
			}
			return items[i]
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"member", "suffix of the list starting at the first structural match, or false",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value to find"},
			DeclarationParameter{"list", "list", "list to search"},
		}, "any",
		func(a ...Scmer) Scmer {
			rest := a[1]
			for {
				p, ok := rest.(*Pair)
				if !ok {
					return false
				}
				if Equal(a[0], p.First) {
					return p
				}
				rest = p.Rest
			}
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"map", "applies a procedure to each element and collects the results",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"procedure", "func", "one-argument procedure"},
			DeclarationParameter{"list", "list", "input list"},
		}, "list",
		nil,
		func(en *Env, a ...Scmer) Scmer {
			items := asList(a[1], "map")
			mapped := make([]Scmer, len(items))
			for i, v := range items {
				mapped[i] = ApplyEx(a[0], []Scmer{v}, en)
			}
			return List(mapped...)
		},
	})
	Declare(&Globalenv, &Declaration{
		"filter", "keeps the elements for which the predicate is truthy",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"predicate", "func", "one-argument procedure"},
			DeclarationParameter{"list", "list", "input list"},
		}, "list",
		nil,
		func(en *Env, a ...Scmer) Scmer {
			var kept []Scmer
			for _, v := range asList(a[1], "filter") {
				if ToBool(ApplyEx(a[0], []Scmer{v}, en)) {
					kept = append(kept, v)
				}
			}
			return List(kept...)
		},
	})
	Declare(&Globalenv, &Declaration{
		"reduce", "folds the list left to right starting from the initial value",
		3, 3,
		[]DeclarationParameter{
			DeclarationParameter{"procedure", "func", "two-argument procedure (accumulator, element)"},
			DeclarationParameter{"initial", "any", "initial accumulator"},
			DeclarationParameter{"list", "list", "input list"},
		}, "any",
		nil,
		func(en *Env, a ...Scmer) Scmer {
			acc := a[1]
			for _, v := range asList(a[2], "reduce") {
				acc = ApplyEx(a[0], []Scmer{acc, v}, en)
			}
			return acc
		},
	})
	Declare(&Globalenv, &Declaration{
		"for-each", "applies a procedure to each element for its side effects",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"procedure", "func", "one-argument procedure"},
			DeclarationParameter{"list", "list", "input list"},
		}, "nil",
		nil,
		func(en *Env, a ...Scmer) Scmer {
			for _, v := range asList(a[1], "for-each") {
				ApplyEx(a[0], []Scmer{v}, en)
			}
			return nil
		},
	})
}
