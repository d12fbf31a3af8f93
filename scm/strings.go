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

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func toString(v Scmer, what string) string {
	s, ok := v.(string)
	if !ok {
		panic(what + ": expected a string, got " + String(v))
	}
	return s
}

func init_strings() {
	DeclareTitle("Strings")
	Declare(&Globalenv, &Declaration{
		"string-append", "concatenates the given strings",
		0, -1,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "string", "strings"},
		}, "string",
		func(a ...Scmer) Scmer {
			var b strings.Builder
			for _, v := range a {
				b.WriteString(toString(v, "string-append"))
			}
			return b.String()
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"strlen", "length of a string in bytes",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "string"},
		}, "number",
		func(a ...Scmer) Scmer {
			return float64(len(toString(a[0], "strlen")))
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"substr", "substring from start with the given length; length defaults to the rest",
		2, 3,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "string"},
			DeclarationParameter{"start", "number", "start index"},
			DeclarationParameter{"length", "number", "number of bytes (optional)"},
		}, "string",
		func(a ...Scmer) Scmer {
			s := toString(a[0], "substr")
			start := ToInt(a[1])
			if start < 0 || start > len(s) {
				panic("substr: start out of range")
			}
			end := len(s)
			if len(a) == 3 {
				end = start + ToInt(a[2])
				if end < start || end > len(s) {
					panic("substr: length out of range")
				}
			}
			return s[start:end]
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"split", "splits a string on a separator into a list",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "string"},
			DeclarationParameter{"separator", "string", "separator"},
		}, "list",
		func(a ...Scmer) Scmer {
			parts := strings.Split(toString(a[0], "split"), toString(a[1], "split"))
			items := make([]Scmer, len(parts))
			for i, part := range parts {
				items[i] = part
			}
			return List(items...)
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"string->symbol", "converts a string to a symbol",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "string"},
		}, "symbol",
		func(a ...Scmer) Scmer {
			return Symbol(toString(a[0], "string->symbol"))
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"symbol->string", "converts a symbol to a string",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "symbol", "symbol"},
		}, "string",
		func(a ...Scmer) Scmer {
			s, ok := a[0].(Symbol)
			if !ok {
				panic("symbol->string: expected a symbol, got " + String(a[0]))
			}
			return string(s)
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"number->string", "renders a number as a string",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "number", "number"},
		}, "string",
		func(a ...Scmer) Scmer {
			return strconv.FormatFloat(ToFloat(a[0]), 'g', -1, 64)
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"string->number", "parses a string as a number; false when it does not parse",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "string"},
		}, "any",
		func(a ...Scmer) Scmer {
			f, err := strconv.ParseFloat(toString(a[0], "string->number"), 64)
			if err != nil {
				return false
			}
			return f
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"serialize", "renders a value as reader syntax",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value"},
		}, "string",
		func(a ...Scmer) Scmer {
			return SerializeToString(a[0])
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"collate", "returns a three-way string comparator for a BCP 47 language tag, numeric and case-insensitive",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"language", "string", "language tag such as \"en\" or \"de-DE\""},
		}, "func",
		func(a ...Scmer) Scmer {
			collator := collate.New(language.Make(toString(a[0], "collate")), collate.Numeric, collate.IgnoreCase)
			return &Declaration{
				"collate-" + toString(a[0], "collate"), "compares two strings under a collation order",
				2, 2,
				[]DeclarationParameter{
					DeclarationParameter{"a", "string", "left string"},
					DeclarationParameter{"b", "string", "right string"},
				}, "number",
				func(b ...Scmer) Scmer {
					return float64(collator.CompareString(toString(b[0], "collate"), toString(b[1], "collate")))
				},
				nil,
			}
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"uuid", "returns a fresh random UUID string",
		0, 0,
		[]DeclarationParameter{}, "string",
		func(a ...Scmer) Scmer {
			return uuid.New().String()
		},
		nil,
	})
}
