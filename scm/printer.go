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
	"fmt"
	"strconv"
	"strings"
)

// String renders a value for display: strings appear raw, without quotes.
func String(v Scmer) string {
	var b strings.Builder
	display(&b, v)
	return b.String()
}

// SerializeToString renders a value as reader syntax: the output parses
// back to an equal value (procedures excepted).
func SerializeToString(v Scmer) string {
	var b strings.Builder
	serialize(&b, v)
	return b.String()
}

func display(b *strings.Builder, v Scmer) {
	if s, ok := v.(string); ok {
		b.WriteString(s)
		return
	}
	serialize(b, v)
}

func serialize(b *strings.Builder, v Scmer) {
	switch value := v.(type) {
	case nil:
		b.WriteString("nil")
	case NilType:
		b.WriteString("()")
	case bool:
		if value {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case float64:
		b.WriteString(strconv.FormatFloat(value, 'g', -1, 64))
	case string:
		b.WriteString(strconv.Quote(value))
	case Symbol:
		b.WriteString(string(value))
	case *Pair:
		b.WriteByte('(')
		serialize(b, value.First)
		rest := value.Rest
		for {
			switch tail := rest.(type) {
			case NilType:
				b.WriteByte(')')
				return
			case *Pair:
				b.WriteByte(' ')
				serialize(b, tail.First)
				rest = tail.Rest
			default:
				b.WriteString(" . ")
				serialize(b, tail)
				b.WriteByte(')')
				return
			}
		}
	case *Proc:
		b.WriteString("(lambda (")
		for i, param := range value.Params {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(string(param))
		}
		b.WriteByte(')')
		for _, expr := range value.Body {
			b.WriteByte(' ')
			serialize(b, expr)
		}
		b.WriteByte(')')
	case *MuProc:
		b.WriteString("(mu (")
		for i, param := range value.Params {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(string(param))
		}
		b.WriteByte(')')
		for _, expr := range value.Body {
			b.WriteByte(' ')
			serialize(b, expr)
		}
		b.WriteByte(')')
	case *MacroProc:
		b.WriteString("[macro ")
		b.WriteString(string(value.Name))
		b.WriteByte(']')
	case *Declaration:
		b.WriteString("[native ")
		b.WriteString(value.Name)
		b.WriteByte(']')
	case *FormSpec:
		b.WriteString("[form ")
		b.WriteString(string(value.Name))
		b.WriteByte(']')
	case *Thunk:
		b.WriteString("[thunk]")
	case *Dict:
		b.WriteString("(dict")
		value.Each(func(key, val Scmer) bool {
			b.WriteByte(' ')
			serialize(b, key)
			b.WriteByte(' ')
			serialize(b, val)
			return true
		})
		b.WriteByte(')')
	default:
		fmt.Fprintf(b, "%v", value)
	}
}
