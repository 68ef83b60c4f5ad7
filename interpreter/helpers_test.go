package interpreter

import (
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// traceTo routes interpreter tracing to t's log for the rest of the test.
func traceTo(t *testing.T) {
	t.Helper()
	previous := gtrace.InterpreterTracer
	tracer := gotestingadapter.New(t)
	tracer.SetTraceLevel(tracing.LevelDebug)
	gtrace.InterpreterTracer = tracer
	t.Cleanup(func() { gtrace.InterpreterTracer = previous })
}

func mustParse(t *testing.T, source string) Program {
	t.Helper()
	program, err := Parse(source)
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	return program
}

func sameOutput(a, b Output) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
