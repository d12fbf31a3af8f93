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

import "math"

// numFold reduces arguments pairwise; used for the variadic arithmetic
// operators.
func numFold(a []Scmer, f func(x, y float64) float64) Scmer {
	acc := ToFloat(a[0])
	for _, v := range a[1:] {
		acc = f(acc, ToFloat(v))
	}
	return acc
}

// numChain tests a comparison over each adjacent argument pair.
func numChain(a []Scmer, f func(x, y float64) bool) Scmer {
	for i := 0; i+1 < len(a); i++ {
		if !f(ToFloat(a[i]), ToFloat(a[i+1])) {
			return false
		}
	}
	return true
}

func init_alu() {
	DeclareTitle("Arithmetic")
	Declare(&Globalenv, &Declaration{
		"+", "adds the given numbers",
		0, -1,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "number", "numbers to add"},
		}, "number",
		func(a ...Scmer) Scmer {
			sum := 0.0
			for _, v := range a {
				sum += ToFloat(v)
			}
			return sum
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"-", "subtracts the rest from the first number; negates a single argument",
		1, -1,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "number", "numbers"},
		}, "number",
		func(a ...Scmer) Scmer {
			if len(a) == 1 {
				return -ToFloat(a[0])
			}
			return numFold(a, func(x, y float64) float64 { return x - y })
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"*", "multiplies the given numbers",
		0, -1,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "number", "numbers to multiply"},
		}, "number",
		func(a ...Scmer) Scmer {
			product := 1.0
			for _, v := range a {
				product *= ToFloat(v)
			}
			return product
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"/", "divides the first number by the rest; inverts a single argument",
		1, -1,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "number", "numbers"},
		}, "number",
		func(a ...Scmer) Scmer {
			if len(a) == 1 {
				return 1.0 / ToFloat(a[0])
			}
			return numFold(a, func(x, y float64) float64 {
				if y == 0 {
					panic("division by zero")
				}
				return x / y
			})
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"quotient", "integer division of x by y",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"x", "number", "dividend"},
			DeclarationParameter{"y", "number", "divisor"},
		}, "number",
		func(a ...Scmer) Scmer {
			y := ToFloat(a[1])
			if y == 0 {
				panic("division by zero")
			}
			return math.Trunc(ToFloat(a[0]) / y)
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"modulo", "remainder of x divided by y, carrying the sign of y",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"x", "number", "dividend"},
			DeclarationParameter{"y", "number", "divisor"},
		}, "number",
		func(a ...Scmer) Scmer {
			y := ToFloat(a[1])
			if y == 0 {
				panic("division by zero")
			}
			m := math.Mod(ToFloat(a[0]), y)
			if m != 0 && (m < 0) != (y < 0) {
				m += y
			}
			return m
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"abs", "absolute value",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "number", "number"},
		}, "number",
		func(a ...Scmer) Scmer {
			return math.Abs(ToFloat(a[0]))
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"min", "smallest of the given numbers",
		1, -1,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "number", "numbers"},
		}, "number",
		func(a ...Scmer) Scmer {
			return numFold(a, math.Min)
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"max", "largest of the given numbers",
		1, -1,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "number", "numbers"},
		}, "number",
		func(a ...Scmer) Scmer {
			return numFold(a, math.Max)
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"=", "numeric equality over all arguments",
		2, -1,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "number", "numbers"},
		}, "bool",
		func(a ...Scmer) Scmer {
			return numChain(a, func(x, y float64) bool { return x == y })
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"<", "tells if the arguments are strictly increasing",
		2, -1,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "number", "numbers"},
		}, "bool",
		func(a ...Scmer) Scmer {
			return numChain(a, func(x, y float64) bool { return x < y })
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		">", "tells if the arguments are strictly decreasing",
		2, -1,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "number", "numbers"},
		}, "bool",
		func(a ...Scmer) Scmer {
			return numChain(a, func(x, y float64) bool { return x > y })
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"<=", "tells if the arguments are non-decreasing",
		2, -1,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "number", "numbers"},
		}, "bool",
		func(a ...Scmer) Scmer {
			return numChain(a, func(x, y float64) bool { return x <= y })
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		">=", "tells if the arguments are non-increasing",
		2, -1,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "number", "numbers"},
		}, "bool",
		func(a ...Scmer) Scmer {
			return numChain(a, func(x, y float64) bool { return x >= y })
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"zero?", "tells if the number is zero",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "number", "number"},
		}, "bool",
		func(a ...Scmer) Scmer {
			return ToFloat(a[0]) == 0
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"even?", "tells if the integer is even",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "number", "integer"},
		}, "bool",
		func(a ...Scmer) Scmer {
			return ToInt(a[0])%2 == 0
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"odd?", "tells if the integer is odd",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "number", "integer"},
		}, "bool",
		func(a ...Scmer) Scmer {
			return ToInt(a[0])%2 != 0
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"floor", "rounds down to the nearest integer",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "number", "number"},
		}, "number",
		func(a ...Scmer) Scmer {
			return math.Floor(ToFloat(a[0]))
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"round", "rounds to the nearest integer",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "number", "number"},
		}, "number",
		func(a ...Scmer) Scmer {
			return math.Round(ToFloat(a[0]))
		},
		nil,
	})

	DeclareTitle("Predicates")
	Declare(&Globalenv, &Declaration{
		"eq?", "identity comparison; pairs compare by reference",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"a", "any", "left value"},
			DeclarationParameter{"b", "any", "right value"},
		}, "bool",
		func(a ...Scmer) Scmer {
			return a[0] == a[1]
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"equal?", "structural comparison; pairs compare element-wise",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"a", "any", "left value"},
			DeclarationParameter{"b", "any", "right value"},
		}, "bool",
		func(a ...Scmer) Scmer {
			return Equal(a[0], a[1])
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"not", "logical negation under truthiness rules",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value"},
		}, "bool",
		func(a ...Scmer) Scmer {
			return !ToBool(a[0])
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"number?", "tells if the value is a number",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value"},
		}, "bool",
		func(a ...Scmer) Scmer {
			_, ok := a[0].(float64)
			return ok
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"symbol?", "tells if the value is a symbol",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value"},
		}, "bool",
		func(a ...Scmer) Scmer {
			_, ok := a[0].(Symbol)
			return ok
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"string?", "tells if the value is a string",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value"},
		}, "bool",
		func(a ...Scmer) Scmer {
			_, ok := a[0].(string)
			return ok
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"boolean?", "tells if the value is a boolean",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value"},
		}, "bool",
		func(a ...Scmer) Scmer {
			_, ok := a[0].(bool)
			return ok
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"null?", "tells if the value is the empty list",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value"},
		}, "bool",
		func(a ...Scmer) Scmer {
			_, ok := a[0].(NilType)
			return ok
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"pair?", "tells if the value is a pair",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value"},
		}, "bool",
		func(a ...Scmer) Scmer {
			_, ok := a[0].(*Pair)
			return ok
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"list?", "tells if the value is a proper list",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value"},
		}, "bool",
		func(a ...Scmer) Scmer {
			return isList(a[0])
		},
		nil,
	})
}
