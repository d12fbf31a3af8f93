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

import "github.com/google/btree"

type dictEntry struct {
	key   Scmer
	value Scmer
}

// Dict is an ordered dictionary over atom keys (numbers, strings,
// symbols, booleans). A *Dict is callable: applying it to a key performs
// a lookup, so dictionaries drop into map/filter pipelines directly.
type Dict struct {
	tree *btree.BTreeG[dictEntry]
}

func NewDict() *Dict {
	return &Dict{btree.NewG[dictEntry](8, func(a, b dictEntry) bool {
		return Less(a.key, b.key)
	})}
}

func (d *Dict) Set(key, value Scmer) {
	d.tree.ReplaceOrInsert(dictEntry{key, value})
}

func (d *Dict) Get(key Scmer) (Scmer, bool) {
	e, ok := d.tree.Get(dictEntry{key: key})
	if !ok {
		return nil, false
	}
	return e.value, true
}

func (d *Dict) Delete(key Scmer) bool {
	_, ok := d.tree.Delete(dictEntry{key: key})
	return ok
}

func (d *Dict) Len() int {
	return d.tree.Len()
}

// Each walks the entries in key order until f returns false.
func (d *Dict) Each(f func(key, value Scmer) bool) {
	d.tree.Ascend(func(e dictEntry) bool {
		return f(e.key, e.value)
	})
}

func (d *Dict) procName() string { return "dict" }

func (d *Dict) applyTo(args []Scmer, en *Env, st *evalState) Scmer {
	if len(args) < 1 || len(args) > 2 {
		raise(ErrArity, "dict lookup takes a key and an optional default, %d given", len(args))
	}
	if v, ok := d.Get(args[0]); ok {
		return v
	}
	if len(args) == 2 {
		return args[1]
	}
	return nil
}

func init_dict() {
	DeclareTitle("Dictionaries")
	Declare(&Globalenv, &Declaration{
		"dict", "builds an ordered dictionary from alternating keys and values",
		0, -1,
		[]DeclarationParameter{
			DeclarationParameter{"kv...", "any", "alternating keys and values"},
		}, "dict",
		func(a ...Scmer) Scmer {
			if len(a)%2 != 0 {
				panic("dict: odd number of arguments")
			}
			d := NewDict()
			for i := 0; i < len(a); i += 2 {
				d.Set(a[i], a[i+1])
			}
			return d
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"dict?", "tells if the value is a dictionary",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value"},
		}, "bool",
		func(a ...Scmer) Scmer {
			_, ok := a[0].(*Dict)
			return ok
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"dict_set", "stores a value under a key, mutating the dictionary",
		3, 3,
		[]DeclarationParameter{
			DeclarationParameter{"dict", "dict", "dictionary"},
			DeclarationParameter{"key", "any", "atom key"},
			DeclarationParameter{"value", "any", "value to store"},
		}, "dict",
		func(a ...Scmer) Scmer {
			d := toDict(a[0], "dict_set")
			d.Set(a[1], a[2])
			return d
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"dict_get", "value under a key, or a default when absent",
		2, 3,
		[]DeclarationParameter{
			DeclarationParameter{"dict", "dict", "dictionary"},
			DeclarationParameter{"key", "any", "atom key"},
			DeclarationParameter{"default", "any", "fallback value (optional)"},
		}, "any",
		func(a ...Scmer) Scmer {
			if v, ok := toDict(a[0], "dict_get").Get(a[1]); ok {
				return v
			}
			if len(a) == 3 {
				return a[2]
			}
			return nil
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"dict_has?", "tells if a key is present",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"dict", "dict", "dictionary"},
			DeclarationParameter{"key", "any", "atom key"},
		}, "bool",
		func(a ...Scmer) Scmer {
			_, ok := toDict(a[0], "dict_has?").Get(a[1])
			return ok
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"dict_delete", "removes a key; tells if it was present",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"dict", "dict", "dictionary"},
			DeclarationParameter{"key", "any", "atom key"},
		}, "bool",
		func(a ...Scmer) Scmer {
			return toDict(a[0], "dict_delete").Delete(a[1])
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"dict_keys", "keys in ascending order",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"dict", "dict", "dictionary"},
		}, "list",
		func(a ...Scmer) Scmer {
			var keys []Scmer
			toDict(a[0], "dict_keys").Each(func(key, _ Scmer) bool {
				keys = append(keys, key)
				return true
			})
			return List(keys...)
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"dict_size", "number of entries",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"dict", "dict", "dictionary"},
		}, "number",
		func(a ...Scmer) Scmer {
			return float64(toDict(a[0], "dict_size").Len())
		},
		nil,
	})
}

func toDict(v Scmer, what string) *Dict {
	d, ok := v.(*Dict)
	if !ok {
		panic(what + ": expected a dict, got " + String(v))
	}
	return d
}
