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
	"io"
	"sort"
	"strings"
	"unsafe"

	"github.com/launix-de/NonLockingReadMap"
)

type DeclarationParameter struct {
	Name string
	Type string // any|func|list|string|symbol|number|bool|dict|nil
	Desc string
}

// Declaration describes a host builtin: metadata for the help system and
// the Go function behind it. A *Declaration is itself the procedure value
// bound into the environment.
type Declaration struct {
	Name         string
	Desc         string
	MinParameter int
	MaxParameter int
	Params       []DeclarationParameter
	Returns      string
	Fn           func(...Scmer) Scmer
	EnvFn        func(*Env, ...Scmer) Scmer
}

func (d Declaration) GetKey() string {
	return d.Name
}

func (d Declaration) ComputeSize() uint {
	return uint(unsafe.Sizeof(d))
}

var declarations = NonLockingReadMap.New[Declaration, string]()

// declaration titles in insertion order, mapping chapter -> builtin names
var declarationTitles []string
var declarationChapters = make(map[string][]string)
var currentTitle string

// DeclareTitle opens a new documentation chapter for subsequent Declare
// calls. Not thread safe; call during init only.
func DeclareTitle(title string) {
	currentTitle = title
	declarationTitles = append(declarationTitles, title)
	declarationChapters[title] = nil
}

// Declare registers a builtin and, when it carries an implementation,
// binds it into the given environment. Doc-only declarations (special
// forms) register for help output but bind nothing.
func Declare(env *Env, def *Declaration) {
	declarations.Set(def)
	declarationChapters[currentTitle] = append(declarationChapters[currentTitle], def.Name)
	if def.Fn != nil || def.EnvFn != nil {
		env.Vars[Symbol(def.Name)] = def
	}
}

func (d *Declaration) procName() string { return d.Name }

func (d *Declaration) applyTo(args []Scmer, en *Env, st *evalState) (result Scmer) {
	if len(args) < d.MinParameter {
		raise(ErrHostCall, "%s: too few arguments (%d given, %d required)", d.Name, len(args), d.MinParameter)
	}
	if d.MaxParameter >= 0 && len(args) > d.MaxParameter {
		raise(ErrHostCall, "%s: too many arguments (%d given, %d allowed)", d.Name, len(args), d.MaxParameter)
	}
	defer func() {
		// anything the Go side panics with becomes a host call error;
		// evaluator errors crossing a builtin pass through untouched
		if r := recover(); r != nil {
			if e, ok := r.(*SchemeError); ok {
				panic(e)
			}
			panic(&SchemeError{ErrHostCall, d.Name + ": " + AsSchemeError(r).Message})
		}
	}()
	if d.EnvFn != nil {
		return d.EnvFn(en, args...)
	}
	return d.Fn(args...)
}

// NativeFunc wraps a Go function as an anonymous procedure value without
// registering it for documentation. Used for per-namespace bindings like
// a scoped import.
func NativeFunc(name string, fn func(...Scmer) Scmer) *Declaration {
	return &Declaration{Name: name, MinParameter: 0, MaxParameter: -1, Fn: fn}
}

// DeclarationForName looks up a builtin's metadata; nil when unknown.
func DeclarationForName(name string) *Declaration {
	return declarations.Get(name)
}

// Help prints documentation. Without arguments it lists every builtin
// grouped by chapter; with a symbol or string it details that builtin.
func Help(w io.Writer, topic Scmer) {
	switch t := topic.(type) {
	case Symbol:
		helpDetail(w, string(t))
	case string:
		helpDetail(w, t)
	default:
		for _, title := range declarationTitles {
			names := declarationChapters[title]
			if len(names) == 0 {
				continue
			}
			sort.Strings(names)
			fmt.Fprintf(w, "%s\n%s\n", title, strings.Repeat("-", len(title)))
			for _, name := range names {
				if d := declarations.Get(name); d != nil {
					fmt.Fprintf(w, "  %-16s %s\n", d.Name, d.Desc)
				}
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, "use (help \"name\") for details on a single procedure")
	}
}

func helpDetail(w io.Writer, name string) {
	d := declarations.Get(name)
	if d == nil {
		fmt.Fprintf(w, "no such procedure: %s\n", name)
		return
	}
	fmt.Fprintf(w, "%s: %s\n\n", d.Name, d.Desc)
	for _, p := range d.Params {
		fmt.Fprintf(w, "  %s (%s): %s\n", p.Name, p.Type, p.Desc)
	}
	fmt.Fprintf(w, "\nreturns: %s\n", d.Returns)
}

// WriteDocumentation emits the whole builtin reference as markdown.
func WriteDocumentation(w io.Writer) {
	fmt.Fprintln(w, "# Builtin Reference")
	for _, title := range declarationTitles {
		names := declarationChapters[title]
		if len(names) == 0 {
			continue
		}
		sort.Strings(names)
		fmt.Fprintf(w, "\n## %s\n", title)
		for _, name := range names {
			d := declarations.Get(name)
			if d == nil {
				continue
			}
			fmt.Fprintf(w, "\n### %s\n\n%s\n", d.Name, d.Desc)
			if len(d.Params) > 0 {
				fmt.Fprintln(w)
				for _, p := range d.Params {
					fmt.Fprintf(w, " - `%s` (%s): %s\n", p.Name, p.Type, p.Desc)
				}
			}
			fmt.Fprintf(w, "\nreturns: %s\n", d.Returns)
		}
	}
}
