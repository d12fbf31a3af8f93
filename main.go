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
/*
	pyscheme, a small Scheme interpreter with proper tail calls,
	unhygienic macros and dynamic-scope procedures
*/
package main

import "os"
import "io"
import "fmt"
import "flag"
import "time"
import "strings"
import "syscall"
import "os/signal"
import "crypto/rand"
import "compress/gzip"
import "path/filepath"
import "github.com/dc0d/onexit"
import "github.com/google/uuid"
import "github.com/ulikunitz/xz"
import "github.com/pierrec/lz4/v4"
import "github.com/fsnotify/fsnotify"
import "github.com/yukinoshita0219/PyScheme/scm"

var IOEnv scm.Env

// readSource reads a script, transparently decompressing .gz, .xz and
// .lz4 files. A missing path is retried with a .scm suffix.
func readSource(filename string) (string, error) {
	file, err := os.Open(filename)
	if err != nil && !strings.HasSuffix(filename, ".scm") {
		file, err = os.Open(filename + ".scm")
	}
	if err != nil {
		return "", err
	}
	defer file.Close()
	var r io.Reader = file
	switch filepath.Ext(filename) {
	case ".gz":
		gz, err := gzip.NewReader(file)
		if err != nil {
			return "", err
		}
		defer gz.Close()
		r = gz
	case ".xz":
		xzr, err := xz.NewReader(file)
		if err != nil {
			return "", err
		}
		r = xzr
	case ".lz4":
		r = lz4.NewReader(file)
	}
	bytes, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// scriptName strips compression suffixes so (import "lib.scm.xz") and
// (import "lib.scm") dedupe to the same unit.
func scriptName(filename string) string {
	for _, ext := range []string{".gz", ".xz", ".lz4"} {
		filename = strings.TrimSuffix(filename, ext)
	}
	return filename
}

var imported = make(map[string]bool)

func getImport(path string) func(a ...scm.Scmer) scm.Scmer {
	return func(a ...scm.Scmer) scm.Scmer {
		filename := filepath.Join(path, scm.String(a[0]))
		if imported[scriptName(filename)] {
			return nil
		}
		imported[scriptName(filename)] = true
		wd := filepath.Dir(filename)
		otherPath := scm.Env{
			Vars: scm.Vars{
				"__DIR__":  path,
				"__FILE__": filename,
				"import":   scm.NativeFunc("import", getImport(wd)),
				"load":     scm.NativeFunc("load", getLoad(wd)),
				"watch":    scm.NativeFunc("watch", getWatch(wd)),
			},
			Outer:    &IOEnv,
			Nodefine: true,
		}
		source, err := readSource(filename)
		if err != nil {
			panic(err)
		}
		return scm.EvalAll(filename, source, &otherPath)
	}
}

func getLoad(path string) func(a ...scm.Scmer) scm.Scmer {
	return func(a ...scm.Scmer) scm.Scmer {
		filename := filepath.Join(path, scm.String(a[0]))
		source, err := readSource(filename)
		if err != nil {
			panic(err)
		}
		if len(a) > 1 {
			return scm.Apply(a[1], source)
		}
		return source
	}
}

func getWatch(path string) func(a ...scm.Scmer) scm.Scmer {
	return func(a ...scm.Scmer) scm.Scmer {
		filename := filepath.Join(path, scm.String(a[0]))
		reread := func() {
			source, err := readSource(filename)
			if err != nil {
				panic(err)
			}
			scm.Apply(a[1], source)
		}
		reread() // read once at the beginning in sync
		// watch for changes
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			panic(err)
		}
		go func() {
			for range watcher.Events {
				// flush all other events
				for {
					time.Sleep(10 * time.Millisecond) // delay a bit, so we don't read empty files
					select {
					case <-watcher.Events:
						// ignore
					default:
						goto to_reread
					}
				}
			to_reread:
				func() {
					defer func() {
						if err := recover(); err != nil {
							// error happens during reload: log to console
							fmt.Println(scm.AsSchemeError(err).Error())
						}
					}()
					reread()
				}()
				watcher.Add(filename) // text editors rename, so we have to rewatch
			}
		}()
		err = watcher.Add(filename)
		if err != nil {
			panic(err)
		}
		return true
	}
}

// workaround for flags package to allow multiple values
type arrayFlags []string

func (i *arrayFlags) String() string {
	return "dummy"
}

func (i *arrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

func setupIO(wd string) {
	// define some IO functions (scm will not provide them since it is sandboxable)
	IOEnv = scm.Env{
		Vars:     scm.Vars{},
		Outer:    &scm.Globalenv,
		Nodefine: true, // other defines go into Globalenv
	}
	scm.DeclareTitle("IO")
	scm.Declare(&IOEnv, &scm.Declaration{
		Name: "print", Desc: "prints values to stdout (only in IO environment)",
		MinParameter: 1, MaxParameter: 1000,
		Params: []scm.DeclarationParameter{
			scm.DeclarationParameter{Name: "value...", Type: "any", Desc: "values to print"},
		}, Returns: "bool",
		Fn: func(a ...scm.Scmer) scm.Scmer {
			for _, s := range a {
				fmt.Print(scm.String(s))
			}
			fmt.Println()
			return true
		},
	})
	scm.Declare(&IOEnv, &scm.Declaration{
		Name: "getenv", Desc: "returns the content of an environment variable",
		MinParameter: 1, MaxParameter: 2,
		Params: []scm.DeclarationParameter{
			scm.DeclarationParameter{Name: "var", Type: "string", Desc: "envvar"},
			scm.DeclarationParameter{Name: "default", Type: "string", Desc: "default if the env is not found"},
		}, Returns: "string",
		Fn: func(a ...scm.Scmer) scm.Scmer {
			if len(a) > 1 {
				if val, ok := os.LookupEnv(scm.String(a[0])); ok {
					return val
				}
				return a[1]
			}
			return os.Getenv(scm.String(a[0]))
		},
	})
	scm.Declare(&IOEnv, &scm.Declaration{
		Name: "help", Desc: "lists all functions or prints help for a specific function",
		MinParameter: 0, MaxParameter: 1,
		Params: []scm.DeclarationParameter{
			scm.DeclarationParameter{Name: "topic", Type: "string", Desc: "function to print help about"},
		}, Returns: "nil",
		Fn: func(a ...scm.Scmer) scm.Scmer {
			if len(a) == 0 {
				scm.Help(os.Stdout, nil)
			} else {
				scm.Help(os.Stdout, a[0])
			}
			return nil
		},
	})
	scm.Declare(&IOEnv, &scm.Declaration{
		Name: "import", Desc: "evaluates a .scm file once in its own namespace",
		MinParameter: 1, MaxParameter: 1,
		Params: []scm.DeclarationParameter{
			scm.DeclarationParameter{Name: "filename", Type: "string", Desc: "filename relative to folder of source file"},
		}, Returns: "any",
		Fn: getImport(wd),
	})
	scm.Declare(&IOEnv, &scm.Declaration{
		Name: "load", Desc: "loads a file and returns the content, or feeds it to a handler",
		MinParameter: 1, MaxParameter: 2,
		Params: []scm.DeclarationParameter{
			scm.DeclarationParameter{Name: "filename", Type: "string", Desc: "filename relative to folder of source file"},
			scm.DeclarationParameter{Name: "handler", Type: "func", Desc: "handler that receives the content (optional)"},
		}, Returns: "any",
		Fn: getLoad(wd),
	})
	scm.Declare(&IOEnv, &scm.Declaration{
		Name: "watch", Desc: "loads a file into a callback and reloads it whenever it changes on disk",
		MinParameter: 2, MaxParameter: 2,
		Params: []scm.DeclarationParameter{
			scm.DeclarationParameter{Name: "filename", Type: "string", Desc: "filename relative to folder of source file"},
			scm.DeclarationParameter{Name: "updatehandler", Type: "func", Desc: "handler that receives the file content func(content)"},
		}, Returns: "bool",
		Fn: getWatch(wd),
	})
	scm.Declare(&IOEnv, &scm.Declaration{
		Name: "exit", Desc: "leaves the interpreter with an exit code",
		MinParameter: 0, MaxParameter: 1,
		Params: []scm.DeclarationParameter{
			scm.DeclarationParameter{Name: "code", Type: "number", Desc: "exit code (default 0)"},
		}, Returns: "nil",
		Fn: func(a ...scm.Scmer) scm.Scmer {
			code := 0
			if len(a) > 0 {
				code = scm.ToInt(a[0])
			}
			exitroutine()
			os.Exit(code)
			return nil
		},
	})
}

func main() {
	// init random generator for UUIDs
	uuid.SetRand(rand.Reader)

	// parse command line options
	var commands arrayFlags
	flag.Var(&commands, "c", "Execute scm command")

	profile := ""
	flag.StringVar(&profile, "profile", "", "Write a chrome://tracing profile of all calls to this file")

	interactive := false
	flag.BoolVar(&interactive, "i", false, "Start a REPL even when scripts are given")

	wd, _ := os.Getwd() // libraries are relative to working directory... or change with -wd PATH
	flag.StringVar(&wd, "wd", wd, "Working Directory for (import) and (load) (Default: .)")

	flag.Parse()
	scripts := flag.Args()

	if profile != "" {
		if err := scm.StartTrace(profile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	onexit.Register(func() { scm.SetTrace(false) }) // close trace file on exit

	setupIO(wd)

	// install exit handler
	cancelChan := make(chan os.Signal, 1)
	signal.Notify(cancelChan, syscall.SIGTERM, syscall.SIGINT)
	go (func() {
		<-cancelChan
		exitroutine()
		os.Exit(1)
	})()

	importFn := IOEnv.Vars["import"].(*scm.Declaration)
	for _, scmfile := range scripts {
		runProtected(func() {
			scm.ApplyEx(importFn, []scm.Scmer{scmfile}, &IOEnv)
		})
	}
	for _, command := range commands {
		runProtected(func() {
			result := scm.EvalAll("command line", command, &IOEnv)
			if result != nil {
				fmt.Println(scm.SerializeToString(result))
			}
		})
	}

	if len(scripts) == 0 && len(commands) == 0 || interactive {
		fmt.Print(`pyscheme interpreter

    Type (help) to show help

`)
		scm.Repl(&IOEnv)
	}

	// normal shutdown
	exitroutine()
}

// runProtected keeps a script error from killing the process before the
// remaining scripts and the shutdown path have run.
func runProtected(f func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, scm.AsSchemeError(r).Error())
		}
	}()
	f()
}

func exitroutine() {
	if scm.ReplInstance != nil {
		// in case it doesn't exit properly
		scm.ReplInstance.Close()
	}
	scm.SetTrace(false)
}
