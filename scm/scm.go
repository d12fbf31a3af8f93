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

// Package scm is a tree-walking evaluator for a Scheme dialect with
// lexical closures, dynamic-scope procedures (mu), unhygienic macros and
// proper tail calls via a thunk trampoline.
package scm

/*
 Environments
*/

type Vars map[Symbol]Scmer

// Env is a scope frame: a symbol table plus a reference to the enclosing
// frame. Frames are shared by reference; every closure created while a
// frame is live captures the same frame.
type Env struct {
	Vars     Vars
	Outer    *Env
	Nodefine bool // define falls through to Outer (sandbox frames)
}

func NewScope(outer *Env) *Env {
	return &Env{make(Vars), outer, false}
}

// Define binds value to s in this frame (or the first writable outer
// frame when this one is a sandbox) and returns the name.
func (e *Env) Define(s Symbol, value Scmer) Symbol {
	target := e
	for target.Nodefine && target.Outer != nil {
		target = target.Outer
	}
	target.Vars[s] = value
	return s
}

// Lookup resolves s against this frame chain, innermost binding first.
func (e *Env) Lookup(s Symbol) Scmer {
	for en := e; en != nil; en = en.Outer {
		if v, ok := en.Vars[s]; ok {
			return v
		}
	}
	raise(ErrUnboundName, "unknown symbol: %s", s)
	return nil
}

/*
 Procedures
*/

// callable is implemented by every procedure variant. The argument
// evaluation policy is the caller's business; applyTo receives evaluated
// values for everything except macros, which get raw expressions.
type callable interface {
	applyTo(args []Scmer, en *Env, st *evalState) Scmer
	procName() string
}

// Proc is a lexical closure: formals, body and the captured defining frame.
type Proc struct {
	Params []Symbol
	Body   []Scmer
	En     *Env
	Name   Symbol // last define target, for error messages only
}

func (p *Proc) procName() string {
	if p.Name != "" {
		return string(p.Name)
	}
	return "lambda"
}

func (p *Proc) applyTo(args []Scmer, en *Env, st *evalState) Scmer {
	if len(args) != len(p.Params) {
		raise(ErrArity, "%s takes %d arguments, %d given", p.procName(), len(p.Params), len(args))
	}
	frame := NewScope(p.En)
	for i, param := range p.Params {
		frame.Vars[param] = args[i]
	}
	st.push(p)
	defer st.pop() // must unwind on every exit path, including panics
	for _, expr := range p.Body[:len(p.Body)-1] {
		eval(expr, frame, false, st)
	}
	return eval(p.Body[len(p.Body)-1], frame, true, st)
}

// MuProc is a dynamic-scope procedure: no captured frame; the call frame
// is parented at the caller's current frame.
type MuProc struct {
	Params []Symbol
	Body   []Scmer
}

func (p *MuProc) procName() string { return "mu" }

func (p *MuProc) applyTo(args []Scmer, en *Env, st *evalState) Scmer {
	transient := &Proc{Params: p.Params, Body: p.Body, En: en}
	return transient.applyTo(args, en, st)
}

// MacroProc rewrites syntax: its formals bind the unevaluated operand
// expressions, the body produces a replacement expression, and that
// replacement is evaluated again in the caller's environment.
type MacroProc struct {
	Params []Symbol
	Body   []Scmer
	Name   Symbol
}

func (m *MacroProc) procName() string { return string(m.Name) }

func (m *MacroProc) applyTo(args []Scmer, en *Env, st *evalState) Scmer {
	transient := &Proc{Params: m.Params, Body: m.Body, En: en, Name: m.Name}
	expansion := transient.applyTo(args, en, st)
	return eval(expansion, en, false, st)
}

// Thunk is a deferred call: target plus already-evaluated arguments. It is
// produced instead of performing a self tail call and resolved by the
// trampoline loop, never by user code.
type Thunk struct {
	Target Scmer
	Args   []Scmer
}

func (t *Thunk) procName() string { return "thunk" }

func (t *Thunk) applyTo(_ []Scmer, en *Env, st *evalState) Scmer {
	return applyProcedure(t.Target, t.Args, en, st)
}

// IsProcedure reports whether v is a user-callable procedure value.
func IsProcedure(v Scmer) bool {
	switch v.(type) {
	case *Declaration, *Proc, *MuProc, *MacroProc, *Thunk:
		return true
	}
	return false
}

/*
 Eval / Apply
*/

// Eval evaluates expression in en. This is the public non-tail entry
// point; any thunk produced by a tail call inside is fully resolved.
func Eval(expression Scmer, en *Env) (result Scmer) {
	withState(func(st *evalState) {
		result = eval(expression, en, false, st)
	})
	return
}

func eval(expression Scmer, en *Env, tail bool, st *evalState) Scmer {
	st.enter()
	defer st.leave()
	countEval()
	switch expr := expression.(type) {
	case Symbol:
		if fs, ok := specialForms[expr]; ok {
			return fs // only meaningful in operator position
		}
		return en.Lookup(expr)
	case *Pair:
		operator := eval(expr.First, en, false, st)
		if fs, ok := operator.(*FormSpec); ok {
			return fs.construct(expr.Rest).eval(en, tail, st)
		}
		if m, ok := operator.(*MacroProc); ok {
			// macros receive the raw operand expressions and are never
			// subject to tail-call thunking
			operands, ok := listSlice(expr.Rest)
			if !ok {
				raise(ErrMalformedForm, "improper operand list: %s", String(expr))
			}
			return m.applyTo(operands, en, st)
		}
		p, ok := operator.(callable)
		if !ok {
			raise(ErrNotCallable, "invalid operator: %s", String(operator))
		}
		operands, proper := listSlice(expr.Rest)
		if !proper {
			raise(ErrMalformedForm, "improper operand list: %s", String(expr))
		}
		args := make([]Scmer, len(operands))
		for i, x := range operands {
			args[i] = eval(x, en, false, st)
		}
		if tail {
			if proc, isProc := operator.(*Proc); isProc && st.onPath(proc) {
				// self tail call: hand a deferred call to the trampoline
				// instead of growing the host stack
				countThunk()
				return &Thunk{proc, args}
			}
			return p.applyTo(args, en, st)
		}
		return completeApply(operator, args, en, st)
	case *Thunk:
		if !tail {
			return completeApply(expr, nil, en, st)
		}
		return expr
	default:
		// numbers, strings, booleans, Nil, procedures: self-evaluating
		return expression
	}
}

// Apply calls a procedure on already-evaluated arguments in the global
// environment, resolving any resulting thunk chain.
func Apply(procedure Scmer, args ...Scmer) Scmer {
	return ApplyEx(procedure, args, &Globalenv)
}

// ApplyEx is Apply with an explicit caller environment (relevant for
// builtins that receive the environment and for mu procedures).
func ApplyEx(procedure Scmer, args []Scmer, en *Env) (result Scmer) {
	withState(func(st *evalState) {
		result = completeApply(procedure, args, en, st)
	})
	return
}

// completeApply performs one call and then iteratively resolves thunks
// until a concrete value emerges. This loop, not the host call stack,
// carries tail-recursive iteration.
func completeApply(procedure Scmer, args []Scmer, en *Env, st *evalState) Scmer {
	value := applyProcedure(procedure, args, en, st)
	for {
		t, ok := value.(*Thunk)
		if !ok {
			return value
		}
		value = applyProcedure(t.Target, t.Args, en, st)
	}
}

// applyProcedure performs exactly one call; the result may be a Thunk.
func applyProcedure(procedure Scmer, args []Scmer, en *Env, st *evalState) Scmer {
	p, ok := procedure.(callable)
	if !ok {
		raise(ErrNotCallable, "cannot apply: %s", String(procedure))
	}
	countApply()
	if traceEnabled.Load() {
		defer traceCall(p.procName())()
	}
	return p.applyTo(args, en, st)
}

/*
 Global environment
*/

var Globalenv Env

// CreateGlobalEnv returns a fresh top-level frame populated with every
// declared builtin, for embedders that want isolation from Globalenv.
func CreateGlobalEnv() *Env {
	en := &Env{make(Vars), nil, false}
	en.Vars[Symbol("true")] = true
	en.Vars[Symbol("false")] = false
	en.Vars[Symbol("nil")] = Nil
	for _, d := range declarations.GetAll() {
		if d.Fn != nil || d.EnvFn != nil {
			en.Vars[Symbol(d.Name)] = d
		}
	}
	return en
}

func init() {
	Globalenv = Env{
		Vars{
			Symbol("true"):  true,
			Symbol("false"): false,
			Symbol("nil"):   Nil,
		},
		nil,
		false,
	}

	DeclareTitle("Core")
	Declare(&Globalenv, &Declaration{
		"eval", "evaluates the given expression in the current environment",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"expr", "any", "expression to evaluate"},
		}, "any",
		nil,
		func(en *Env, a ...Scmer) Scmer {
			return Eval(a[0], en)
		},
	})
	Declare(&Globalenv, &Declaration{
		"apply", "calls a procedure with a list of arguments",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"procedure", "func", "procedure to call"},
			DeclarationParameter{"arguments", "list", "argument list"},
		}, "any",
		nil,
		func(en *Env, a ...Scmer) Scmer {
			return ApplyEx(a[0], asList(a[1], "apply"), en)
		},
	})
	Declare(&Globalenv, &Declaration{
		"error", "halts evaluation and throws an error message",
		1, 1000,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "any", "values making up the message"},
		}, "nil",
		func(a ...Scmer) Scmer {
			msg := ""
			for _, v := range a {
				msg += String(v)
			}
			raise(ErrUser, "%s", msg)
			return nil
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"try", "calls a parameterless procedure; on failure the error message is fed to the handler and its result returned instead",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"func", "func", "procedure to attempt"},
			DeclarationParameter{"errorhandler", "func", "procedure receiving the error message"},
		}, "any",
		nil,
		func(en *Env, a ...Scmer) (result Scmer) {
			defer func() {
				if r := recover(); r != nil {
					result = ApplyEx(a[1], []Scmer{AsSchemeError(r).Message}, en)
				}
			}()
			result = ApplyEx(a[0], nil, en)
			return
		},
	})
	Declare(&Globalenv, &Declaration{
		"procedure?", "tells if the value is a callable procedure",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value to examine"},
		}, "bool",
		func(a ...Scmer) Scmer {
			return IsProcedure(a[0])
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"symbol", "returns a symbol built from a string",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "string to convert"},
		}, "symbol",
		func(a ...Scmer) Scmer {
			return Symbol(a[0].(string))
		},
		nil,
	})

	declareForms()
	init_alu()
	init_list()
	init_strings()
	init_dict()
	init_metrics()
	init_trace()
}
