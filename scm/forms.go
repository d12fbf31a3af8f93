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

// FormSpec marks a special form. Special forms shadow variable bindings:
// a symbol naming one resolves to its FormSpec before the environment is
// consulted, so (define if 2) has no effect on (if ...) syntax.
type FormSpec struct {
	Name      Symbol
	construct func(operands Scmer) form
}

// form is a checked, decomposed special form instance ready to evaluate.
type form interface {
	eval(en *Env, tail bool, st *evalState) Scmer
}

var specialForms map[Symbol]*FormSpec

func init() {
	specialForms = make(map[Symbol]*FormSpec)
	for _, fs := range []*FormSpec{
		&FormSpec{"define", constructDefine},
		&FormSpec{"define-macro", constructDefineMacro},
		&FormSpec{"if", constructIf},
		&FormSpec{"cond", constructCond},
		&FormSpec{"and", constructAnd},
		&FormSpec{"or", constructOr},
		&FormSpec{"let", constructLet},
		&FormSpec{"begin", constructBegin},
		&FormSpec{"lambda", constructLambda},
		&FormSpec{"mu", constructMu},
		&FormSpec{"quote", constructQuote},
	} {
		specialForms[fs.Name] = fs
	}
}

// declareForms registers documentation entries for the special forms so
// they show up in (help). They carry no Fn; syntax is handled in eval.
func declareForms() {
	DeclareTitle("Special Forms")
	for _, d := range []*Declaration{
		&Declaration{"define", "binds a value or procedure in the current frame and returns its name", 2, -1, []DeclarationParameter{
			DeclarationParameter{"name", "symbol", "name to bind, or a (name params...) signature"},
			DeclarationParameter{"value...", "any", "value expression or procedure body"},
		}, "symbol", nil, nil},
		&Declaration{"define-macro", "binds an unhygienic macro that rewrites its call sites", 2, -1, []DeclarationParameter{
			DeclarationParameter{"signature", "list", "(name params...) signature"},
			DeclarationParameter{"body...", "any", "expressions producing the expansion"},
		}, "symbol", nil, nil},
		&Declaration{"if", "evaluates the consequent or the alternative depending on the condition", 2, 3, []DeclarationParameter{
			DeclarationParameter{"condition", "any", "test expression"},
			DeclarationParameter{"consequent", "any", "evaluated when the condition is truthy"},
			DeclarationParameter{"alternative", "any", "evaluated otherwise (optional)"},
		}, "any", nil, nil},
		&Declaration{"cond", "evaluates the body of the first clause whose test is truthy", 0, -1, []DeclarationParameter{
			DeclarationParameter{"clause...", "list", "(test body...) clauses; else may head the last one"},
		}, "any", nil, nil},
		&Declaration{"and", "evaluates left to right until a falsy value appears", 0, -1, []DeclarationParameter{
			DeclarationParameter{"test...", "any", "test expressions"},
		}, "any", nil, nil},
		&Declaration{"or", "evaluates left to right until a truthy value appears", 0, -1, []DeclarationParameter{
			DeclarationParameter{"test...", "any", "test expressions"},
		}, "any", nil, nil},
		&Declaration{"let", "evaluates the body in a frame with the given bindings", 2, -1, []DeclarationParameter{
			DeclarationParameter{"bindings", "list", "((name expr)...) bindings, evaluated in the outer frame"},
			DeclarationParameter{"body...", "any", "body expressions"},
		}, "any", nil, nil},
		&Declaration{"begin", "evaluates the expressions in order and returns the last result", 1, -1, []DeclarationParameter{
			DeclarationParameter{"body...", "any", "expressions"},
		}, "any", nil, nil},
		&Declaration{"lambda", "creates a lexically scoped procedure", 2, -1, []DeclarationParameter{
			DeclarationParameter{"params", "list", "formal parameter symbols"},
			DeclarationParameter{"body...", "any", "body expressions"},
		}, "func", nil, nil},
		&Declaration{"mu", "creates a dynamically scoped procedure", 2, -1, []DeclarationParameter{
			DeclarationParameter{"params", "list", "formal parameter symbols"},
			DeclarationParameter{"body...", "any", "body expressions"},
		}, "func", nil, nil},
		&Declaration{"quote", "returns its operand unevaluated", 1, 1, []DeclarationParameter{
			DeclarationParameter{"datum", "any", "expression to quote"},
		}, "any", nil, nil},
	} {
		Declare(&Globalenv, d)
	}
}

// formOperands flattens and length-checks the operand list of a special
// form. max < 0 means unbounded.
func formOperands(name Symbol, operands Scmer, min, max int) []Scmer {
	ops, ok := listSlice(operands)
	if !ok {
		raise(ErrMalformedForm, "badly formed %s expression", name)
	}
	if len(ops) < min {
		raise(ErrMalformedForm, "too few operands in %s form", name)
	}
	if max >= 0 && len(ops) > max {
		raise(ErrMalformedForm, "too many operands in %s form", name)
	}
	return ops
}

// validateFormals checks a formal parameter list: a proper list of
// distinct symbols.
func validateFormals(name Symbol, formals Scmer) []Symbol {
	items, ok := listSlice(formals)
	if !ok {
		raise(ErrInvalidFormals, "%s formals must be a list: %s", name, String(formals))
	}
	params := make([]Symbol, len(items))
	seen := make(map[Symbol]bool, len(items))
	for i, item := range items {
		s, ok := item.(Symbol)
		if !ok {
			raise(ErrInvalidFormals, "non-symbol in %s formals: %s", name, String(item))
		}
		if seen[s] {
			raise(ErrInvalidFormals, "duplicate symbol in %s formals: %s", name, s)
		}
		seen[s] = true
		params[i] = s
	}
	return params
}

/*
 define / define-macro
*/

type defineForm struct {
	name  Symbol
	value Scmer
}

func constructDefine(operands Scmer) form {
	ops := formOperands("define", operands, 2, -1)
	switch target := ops[0].(type) {
	case Symbol:
		if len(ops) > 2 {
			raise(ErrMalformedForm, "too many operands in define form")
		}
		return &defineForm{target, ops[1]}
	case *Pair:
		// (define (f a b) body...) rewrites to (define f (lambda (a b) body...)).
		// The lambda shares the signature's tail and the body pairs.
		name, ok := target.First.(Symbol)
		if !ok {
			raise(ErrMalformedForm, "procedure name must be a symbol: %s", String(target.First))
		}
		tail := operands.(*Pair)
		return &defineForm{name, Cons(Symbol("lambda"), Cons(target.Rest, tail.Rest))}
	}
	raise(ErrMalformedForm, "cannot define %s", String(ops[0]))
	return nil
}

func (f *defineForm) eval(en *Env, tail bool, st *evalState) Scmer {
	value := eval(f.value, en, false, st)
	if p, ok := value.(*Proc); ok && p.Name == "" {
		p.Name = f.name
	}
	return en.Define(f.name, value)
}

type defineMacroForm struct {
	name  Symbol
	macro *MacroProc
}

func constructDefineMacro(operands Scmer) form {
	ops := formOperands("define-macro", operands, 2, -1)
	sig, ok := ops[0].(*Pair)
	if !ok {
		raise(ErrMalformedForm, "define-macro expects a signature list: %s", String(ops[0]))
	}
	name, ok := sig.First.(Symbol)
	if !ok {
		raise(ErrMalformedForm, "macro name must be a symbol: %s", String(sig.First))
	}
	params := validateFormals("define-macro", sig.Rest)
	return &defineMacroForm{name, &MacroProc{params, ops[1:], name}}
}

func (f *defineMacroForm) eval(en *Env, tail bool, st *evalState) Scmer {
	return en.Define(f.name, f.macro)
}

/*
 if / cond
*/

type ifForm struct {
	pred, conseq, alt Scmer
	hasAlt            bool
}

func constructIf(operands Scmer) form {
	ops := formOperands("if", operands, 2, 3)
	f := &ifForm{pred: ops[0], conseq: ops[1]}
	if len(ops) == 3 {
		f.alt = ops[2]
		f.hasAlt = true
	}
	return f
}

func (f *ifForm) eval(en *Env, tail bool, st *evalState) Scmer {
	if ToBool(eval(f.pred, en, false, st)) {
		return eval(f.conseq, en, tail, st)
	}
	if f.hasAlt {
		return eval(f.alt, en, tail, st)
	}
	return nil
}

type condClause struct {
	test Scmer
	body []Scmer
}

type condForm struct {
	clauses []condClause
}

func constructCond(operands Scmer) form {
	ops := formOperands("cond", operands, 0, -1)
	f := &condForm{make([]condClause, len(ops))}
	for i, clause := range ops {
		items, ok := listSlice(clause)
		if !ok || len(items) == 0 {
			raise(ErrMalformedForm, "badly formed cond clause: %s", String(clause))
		}
		test := items[0]
		if s, isSym := test.(Symbol); isSym && s == "else" {
			if i != len(ops)-1 {
				raise(ErrMalformedForm, "else must be the last cond clause")
			}
			test = true
		}
		f.clauses[i] = condClause{test, items[1:]}
	}
	return f
}

func (f *condForm) eval(en *Env, tail bool, st *evalState) Scmer {
	for _, clause := range f.clauses {
		value := eval(clause.test, en, false, st)
		if !ToBool(value) {
			continue
		}
		if len(clause.body) == 0 {
			return value // bodyless clause yields its test value
		}
		for _, expr := range clause.body[:len(clause.body)-1] {
			eval(expr, en, false, st)
		}
		return eval(clause.body[len(clause.body)-1], en, tail, st)
	}
	return nil
}

/*
 and / or
*/

type andForm struct {
	tests []Scmer
}

func constructAnd(operands Scmer) form {
	return &andForm{formOperands("and", operands, 0, -1)}
}

func (f *andForm) eval(en *Env, tail bool, st *evalState) Scmer {
	if len(f.tests) == 0 {
		return true
	}
	for _, test := range f.tests[:len(f.tests)-1] {
		if value := eval(test, en, false, st); !ToBool(value) {
			return value
		}
	}
	return eval(f.tests[len(f.tests)-1], en, tail, st)
}

type orForm struct {
	tests []Scmer
}

func constructOr(operands Scmer) form {
	return &orForm{formOperands("or", operands, 0, -1)}
}

func (f *orForm) eval(en *Env, tail bool, st *evalState) Scmer {
	if len(f.tests) == 0 {
		return false
	}
	for _, test := range f.tests[:len(f.tests)-1] {
		if value := eval(test, en, false, st); ToBool(value) {
			return value
		}
	}
	return eval(f.tests[len(f.tests)-1], en, tail, st)
}

/*
 let / begin
*/

type letForm struct {
	names []Symbol
	exprs []Scmer
	body  []Scmer
}

func constructLet(operands Scmer) form {
	ops := formOperands("let", operands, 2, -1)
	bindings, ok := listSlice(ops[0])
	if !ok {
		raise(ErrMalformedForm, "let expects a binding list: %s", String(ops[0]))
	}
	f := &letForm{
		names: make([]Symbol, len(bindings)),
		exprs: make([]Scmer, len(bindings)),
		body:  ops[1:],
	}
	seen := make(map[Symbol]bool, len(bindings))
	for i, binding := range bindings {
		items, ok := listSlice(binding)
		if !ok || len(items) != 2 {
			raise(ErrMalformedForm, "badly formed let binding: %s", String(binding))
		}
		s, ok := items[0].(Symbol)
		if !ok {
			raise(ErrInvalidFormals, "non-symbol in let bindings: %s", String(items[0]))
		}
		if seen[s] {
			raise(ErrInvalidFormals, "duplicate symbol in let bindings: %s", s)
		}
		seen[s] = true
		f.names[i] = s
		f.exprs[i] = items[1]
	}
	return f
}

func (f *letForm) eval(en *Env, tail bool, st *evalState) Scmer {
	// all binding expressions evaluate in the outer frame; no binding
	// sees its siblings
	frame := NewScope(en)
	for i, expr := range f.exprs {
		frame.Vars[f.names[i]] = eval(expr, en, false, st)
	}
	for _, expr := range f.body[:len(f.body)-1] {
		eval(expr, frame, false, st)
	}
	return eval(f.body[len(f.body)-1], frame, tail, st)
}

type beginForm struct {
	body []Scmer
}

func constructBegin(operands Scmer) form {
	return &beginForm{formOperands("begin", operands, 1, -1)}
}

func (f *beginForm) eval(en *Env, tail bool, st *evalState) Scmer {
	for _, expr := range f.body[:len(f.body)-1] {
		eval(expr, en, false, st)
	}
	return eval(f.body[len(f.body)-1], en, tail, st)
}

/*
 lambda / mu / quote
*/

type lambdaForm struct {
	params []Symbol
	body   []Scmer
}

func constructLambda(operands Scmer) form {
	ops := formOperands("lambda", operands, 2, -1)
	return &lambdaForm{validateFormals("lambda", ops[0]), ops[1:]}
}

func (f *lambdaForm) eval(en *Env, tail bool, st *evalState) Scmer {
	return &Proc{Params: f.params, Body: f.body, En: en}
}

type muForm struct {
	params []Symbol
	body   []Scmer
}

func constructMu(operands Scmer) form {
	ops := formOperands("mu", operands, 2, -1)
	return &muForm{validateFormals("mu", ops[0]), ops[1:]}
}

func (f *muForm) eval(en *Env, tail bool, st *evalState) Scmer {
	return &MuProc{Params: f.params, Body: f.body}
}

type quoteForm struct {
	datum Scmer
}

func constructQuote(operands Scmer) form {
	return &quoteForm{formOperands("quote", operands, 1, 1)[0]}
}

func (f *quoteForm) eval(en *Env, tail bool, st *evalState) Scmer {
	return f.datum
}
