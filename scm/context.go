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

import "github.com/jtolds/gls"

// MaxDepth bounds non-tail host recursion inside eval. Tail calls do not
// count against it; they iterate in the trampoline.
var MaxDepth = 10000

// evalState is the per-goroutine evaluation context: the remaining
// non-tail recursion depth and the stack of procedures on the current
// call path. A tail call whose target is already on the path becomes a
// thunk for the trampoline.
type evalState struct {
	depth  int
	active []*Proc
}

var evalCtx = gls.NewContextManager()

const evalStateKey = "pyscheme-eval-state"

func (st *evalState) enter() {
	st.depth++
	if st.depth > MaxDepth {
		raise(ErrResourceExhausted, "maximum recursion depth exceeded")
	}
}

func (st *evalState) leave() {
	st.depth--
}

func (st *evalState) push(p *Proc) {
	st.active = append(st.active, p)
}

func (st *evalState) pop() {
	st.active = st.active[:len(st.active)-1]
}

func (st *evalState) onPath(p *Proc) bool {
	for _, q := range st.active {
		if q == p {
			return true
		}
	}
	return false
}

func currentState() *evalState {
	if v, ok := evalCtx.GetValue(evalStateKey); ok {
		return v.(*evalState)
	}
	return nil
}

// withState runs f inside the goroutine-local evaluation context,
// creating one when f is the outermost evaluation on this goroutine.
// Host builtins that re-enter Eval therefore share one depth budget and
// one call path with the evaluation that invoked them.
func withState(f func(st *evalState)) {
	if st := currentState(); st != nil {
		f(st)
		return
	}
	st := new(evalState)
	evalCtx.SetValues(gls.Values{evalStateKey: st}, func() {
		f(st)
	})
}
