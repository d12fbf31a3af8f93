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
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
)

// ReplInstance is the active line editor, exported so signal handlers can
// close it and restore the terminal.
var ReplInstance *readline.Instance

// Repl runs the interactive prompt against en until EOF. Incomplete
// expressions continue on the next line; errors print and the prompt
// resumes.
func Repl(en *Env) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            "> ",
		HistoryFile:       filepath.Join(homeDir(), ".pyscheme_history"),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		panic(err)
	}
	defer l.Close()
	ReplInstance = l
	l.CaptureExitSignal()

	buffered := ""
	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			buffered = ""
			l.SetPrompt("> ")
			continue
		} else if err == io.EOF {
			break
		}
		buffered += line + "\n"
		if replLine(buffered, en) {
			// expression continues on the next line
			l.SetPrompt("  ")
			continue
		}
		buffered = ""
		l.SetPrompt("> ")
	}
	ReplInstance = nil
}

// replLine evaluates one buffered chunk; true means the reader wants more
// input before anything can run.
func replLine(s string, en *Env) (incomplete bool) {
	defer func() {
		if r := recover(); r != nil {
			e := AsSchemeError(r)
			if e.Kind == ErrIncompleteInput {
				incomplete = true
				return
			}
			fmt.Fprintln(os.Stderr, e.Error())
		}
	}()
	for _, expr := range ReadAll("repl", s) {
		result := Eval(expr, en)
		if result != nil {
			fmt.Println(SerializeToString(result))
		}
	}
	return
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
