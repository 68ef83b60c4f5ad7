package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/moontaeh/PL-Project/interpreter"
)

type options struct {
	typeCheck bool
	dump      bool
}

func main() {
	filePathPtr := flag.String("file", "", "program to run; starts a REPL when empty")
	checkPtr := flag.Bool("check", true, "type-check the program before running it")
	dumpPtr := flag.Bool("dump", false, "print the final bindings and heap as YAML")
	tracePtr := flag.String("trace", "Error", "trace level: Error, Info or Debug")

	flag.Parse()

	setupTracing(*tracePtr, os.Stderr)
	opts := options{typeCheck: *checkPtr, dump: *dumpPtr}

	if *filePathPtr == "" {
		os.Exit(repl(opts))
	}

	file, err := os.ReadFile(*filePathPtr)
	if err != nil {
		log.Fatalf("input file not found")
	}

	os.Exit(Run(string(file), os.Stderr, os.Stdout, opts))
}

func setupTracing(level string, out io.Writer) {
	tracer := gologadapter.New()
	tracer.SetOutput(out)
	tracer.SetTraceLevel(tracing.TraceLevelFromString(level))
	gtrace.InterpreterTracer = tracer
}

// Run executes source, writing printed lines to stdOut and any error to
// stdErr. It returns the process exit status.
func Run(source string, stdErr io.Writer, stdOut io.Writer, opts options) int {
	runtime := interpreter.NewInterpreter(interpreter.WithStdout(stdOut))
	_, err := interpreter.RunWith(runtime, interpreter.NewTypeChecker(), source, opts.typeCheck)
	if opts.dump {
		if dumpErr := interpreter.EncodeSnapshot(stdOut, runtime.Snapshot()); dumpErr != nil {
			_, _ = stdErr.Write([]byte(dumpErr.Error() + "\n"))
		}
	}
	if err != nil {
		_, _ = stdErr.Write([]byte(fmt.Sprintf("%s\n", err.Error())))
		return 1
	}
	return 0
}
