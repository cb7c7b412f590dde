/*
Tsrepl starts an interactive tsexpr session: a read-eval-print loop over
the call-notation expression language implemented by the tsexpr package.

Usage:

	tsrepl [flags]

The flags are:

	-v, --version
		Give the current version of tsrepl and then exit.

	-c, --config FILE
		Load syntax and REPL options from the given TOML config file.
		Defaults to "tsrepl.toml" in the current working directory if
		present; a missing file is not an error.

	-d, --direct
		Force reading directly from stdin instead of going through GNU
		readline, even if launched in a tty.

	-e, --eval COMMANDS
		Immediately run the given call(s) at start. Can be multiple calls
		separated by the ";" character.

Once a session has started, each line is either interpolated (the default
":mode" is "interpolate": the line is treated as free text with embedded
calls) or evaluated as a single top-level call (":mode eval" mode: the
line is wrapped in the configured delimiters and evaluated directly). Type
":mode" with no argument to see the current mode, ":mode interpolate" or
":mode eval" to switch it, and "exit" to leave the session.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dekarrin/transcribble/internal/config"
	"github.com/dekarrin/transcribble/internal/input"
	"github.com/dekarrin/transcribble/internal/version"
	"github.com/dekarrin/transcribble/tsexpr"
	"github.com/dekarrin/transcribble/tsexpr/stdlib"
	"github.com/dekarrin/transcribble/tsexpr/value"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue initializing the interpreter.
	ExitInitError

	// ExitSessionError indicates an unsuccessful program execution due to
	// a problem reading input during the session.
	ExitSessionError
)

var (
	returnCode  = ExitSuccess
	flagVersion = pflag.BoolP("version", "v", false, "Gives the version info")
	configFile  = pflag.StringP("config", "c", "tsrepl.toml", "TOML file with syntax/REPL options")
	forceDirect = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of GNU readline where possible")
	evalAtStart = pflag.StringP("eval", "e", "", "Immediately run the given call(s), separated by ';', before entering the session")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	scope := newScope(cfg)

	var startCalls []string
	if *evalAtStart != "" {
		startCalls = strings.Split(*evalAtStart, ";")
	}

	sess, err := newSession(scope, cfg, *forceDirect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	defer sess.Close()

	for _, c := range startCalls {
		sess.runLine(strings.TrimSpace(c))
	}

	if err := sess.loop(); err != nil && err != io.EOF {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitSessionError
	}
}

func newScope(cfg config.File) *tsexpr.Scope {
	s := tsexpr.NewScope(nil)
	s.SetOptions(cfg.Options())

	s.OnUnknownVariable(func(s *tsexpr.Scope, name string) value.Value {
		return value.OfString("<no var " + name + " found>")
	})
	s.OnError(func(s *tsexpr.Scope, msg string) string {
		return "<error: " + msg + ">"
	})

	if err := stdlib.Register(s); err != nil {
		panic(err)
	}
	if err := stdlib.RegisterDefine(s); err != nil {
		panic(err)
	}
	return s
}

// session drives the read-eval-print loop, grounded in
// original_source/translator/src/main.cpp's repl(): a mode flag picks
// between interpolating the raw line and evaluating it as a single
// wrapped call, toggled here via a ":mode" meta-command rather than a
// TunaScript-level "$mode" variable, since this toggle belongs to the Go
// session driver rather than to user-level template code.
type session struct {
	scope     *tsexpr.Scope
	reader    lineReader
	evalMode  bool
	outWriter io.Writer
}

type lineReader interface {
	ReadLine() (string, error)
	Close() error
}

func newSession(scope *tsexpr.Scope, cfg config.File, forceDirect bool) (*session, error) {
	var reader lineReader
	if forceDirect {
		reader = input.NewDirectReader(os.Stdin)
	} else {
		ilr, err := input.NewInteractiveReader()
		if err != nil {
			reader = input.NewDirectReader(os.Stdin)
		} else {
			reader = ilr
		}
	}

	return &session{
		scope:     scope,
		reader:    reader,
		evalMode:  strings.EqualFold(cfg.Repl.StartMode, "eval"),
		outWriter: os.Stdout,
	}, nil
}

func (s *session) Close() error {
	return s.reader.Close()
}

func (s *session) loop() error {
	for {
		s.setPrompt()
		line, err := s.reader.ReadLine()
		if err != nil {
			return err
		}
		if line == "exit" {
			return nil
		}
		if s.handleMeta(line) {
			continue
		}
		s.runLine(line)
	}
}

func (s *session) setPrompt() {
	ilr, ok := s.reader.(*input.InteractiveLineReader)
	if !ok {
		return
	}
	if s.evalMode {
		ilr.SetPrompt("E> ")
	} else {
		ilr.SetPrompt("I> ")
	}
}

func (s *session) handleMeta(line string) bool {
	if !strings.HasPrefix(line, ":mode") {
		return false
	}
	arg := strings.TrimSpace(strings.TrimPrefix(line, ":mode"))
	switch strings.ToLower(arg) {
	case "":
		if s.evalMode {
			fmt.Fprintln(s.outWriter, "eval")
		} else {
			fmt.Fprintln(s.outWriter, "interpolate")
		}
	case "eval", "e", "emode":
		s.evalMode = true
	case "interpolate", "i", "imode":
		s.evalMode = false
	default:
		fmt.Fprintf(s.outWriter, "<error: unknown mode %q>\n", arg)
	}
	return true
}

func (s *session) runLine(line string) {
	if line == "" {
		return
	}
	if s.evalMode {
		call, err := s.scope.ParseCall(line)
		if err != nil {
			fmt.Fprintf(s.outWriter, "<error: %s>\n", err.Error())
			return
		}
		fmt.Fprintln(s.outWriter, s.scope.SafeEval(call).String())
		return
	}
	fmt.Fprintln(s.outWriter, s.scope.Interpolate(line))
}
