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
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// call tracing in the chrome://tracing JSON format; open the output with
// the browser's trace viewer or with perfetto

var traceMu sync.Mutex
var traceFile *os.File
var traceFirst bool
var traceEnabled atomic.Bool

// StartTrace begins writing one trace event per procedure call to the
// given file.
func StartTrace(filename string) error {
	traceMu.Lock()
	defer traceMu.Unlock()
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if _, err := f.WriteString("[\n"); err != nil {
		f.Close()
		return err
	}
	traceFile = f
	traceFirst = true
	traceEnabled.Store(true)
	return nil
}

// SetTrace pauses or resumes tracing; false additionally finalizes and
// closes an open trace file.
func SetTrace(enable bool) {
	traceEnabled.Store(enable)
	if enable {
		return
	}
	traceMu.Lock()
	defer traceMu.Unlock()
	if traceFile != nil {
		traceFile.WriteString("\n]\n")
		traceFile.Close()
		traceFile = nil
	}
}

func traceEvent(phase string, name string) {
	traceMu.Lock()
	defer traceMu.Unlock()
	if traceFile == nil {
		return
	}
	if !traceFirst {
		traceFile.WriteString(",\n")
	}
	traceFirst = false
	fmt.Fprintf(traceFile, `{"name": %q, "ph": %q, "ts": %d, "pid": 1, "tid": 1}`,
		name, phase, time.Now().UnixMicro())
}

// traceCall emits a begin event and returns the matching end emitter.
func traceCall(name string) func() {
	traceEvent("B", name)
	return func() {
		traceEvent("E", name)
	}
}

func init_trace() {
	DeclareTitle("Profiling")
	Declare(&Globalenv, &Declaration{
		"time", "calls a parameterless procedure and returns a (result seconds) list",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"procedure", "func", "parameterless procedure to measure"},
		}, "list",
		nil,
		func(en *Env, a ...Scmer) Scmer {
			start := time.Now()
			result := ApplyEx(a[0], nil, en)
			return List(result, time.Since(start).Seconds())
		},
	})
	Declare(&Globalenv, &Declaration{
		"trace", "starts (with a filename) or stops (with false) call tracing",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"target", "any", "trace file path, or false to stop"},
		}, "bool",
		func(a ...Scmer) Scmer {
			if s, ok := a[0].(string); ok {
				if err := StartTrace(s); err != nil {
					panic(err)
				}
				return true
			}
			SetTrace(ToBool(a[0]))
			return false
		},
		nil,
	})
}
