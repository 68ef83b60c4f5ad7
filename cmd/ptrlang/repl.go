package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/moontaeh/PL-Project/interpreter"
)

const (
	historyFile = ".ptrlang_history"
	prompt      = "ptr> "
	banner      = "ptrlang: int and int* with a 100-cell heap. :heap shows state, :quit exits."
)

// session keeps one interpreter and one checker alive across REPL lines,
// so definitions persist.
type session struct {
	runtime *interpreter.Interpreter
	checker *interpreter.TypeChecker
	opts    options
}

func newSession(stdOut io.Writer, opts options) *session {
	return &session{
		runtime: interpreter.NewInterpreter(interpreter.WithStdout(stdOut)),
		checker: interpreter.NewTypeChecker(),
		opts:    opts,
	}
}

// eval handles one line of input. It returns false once the user asks to quit.
func (s *session) eval(line string, stdOut, stdErr io.Writer) bool {
	code := strings.TrimSpace(line)
	if strings.HasPrefix(code, ":") {
		switch strings.ToLower(code) {
		case ":quit", ":q":
			return false
		case ":heap":
			if err := interpreter.EncodeSnapshot(stdOut, s.runtime.Snapshot()); err != nil {
				fmt.Fprintln(stdErr, err)
			}
		default:
			fmt.Fprintln(stdOut, "unknown command. Type :heap or :quit.")
		}
		return true
	}
	if code == "" {
		return true
	}

	if _, err := interpreter.RunWith(s.runtime, s.checker, code, s.opts.typeCheck); err != nil {
		fmt.Fprintln(stdErr, err)
	}
	return true
}

func repl(opts options) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	s := newSession(os.Stdout, opts)
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return 0
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if !s.eval(line, os.Stdout, os.Stderr) {
			return 0
		}
	}
}
