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
	"runtime"
	"sync/atomic"

	"github.com/docker/go-units"
)

var statEvals atomic.Uint64
var statApplies atomic.Uint64
var statThunks atomic.Uint64

func countEval()  { statEvals.Add(1) }
func countApply() { statApplies.Add(1) }
func countThunk() { statThunks.Add(1) }

func init_metrics() {
	DeclareTitle("Introspection")
	Declare(&Globalenv, &Declaration{
		"stats", "returns a dict of evaluator counters and memory usage",
		0, 0,
		[]DeclarationParameter{}, "dict",
		func(a ...Scmer) Scmer {
			var mem runtime.MemStats
			runtime.ReadMemStats(&mem)
			d := NewDict()
			d.Set("evals", float64(statEvals.Load()))
			d.Set("applies", float64(statApplies.Load()))
			d.Set("thunks", float64(statThunks.Load()))
			d.Set("goroutines", float64(runtime.NumGoroutine()))
			d.Set("heap", units.BytesSize(float64(mem.HeapAlloc)))
			d.Set("sys", units.BytesSize(float64(mem.Sys)))
			d.Set("gc-runs", float64(mem.NumGC))
			return d
		},
		nil,
	})
	Declare(&Globalenv, &Declaration{
		"env", "renders the reachable bindings of the current environment",
		0, 0,
		[]DeclarationParameter{}, "string",
		nil,
		func(en *Env, a ...Scmer) Scmer {
			result := ""
			for e := en; e != nil; e = e.Outer {
				for s, v := range e.Vars {
					result = result + string(s) + " = " + SerializeToString(v) + "\n"
				}
				result = result + "---\n"
			}
			return result
		},
	})
}
