package interpreter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

const aliasingProgram = `int x = 5
int* y = 4
int z = x
int* ab = 3
print(ab)
print(*ab)
print(y)
print(*y)
print(x)
print(z)
ab = y
print(ab)
print(*ab)
y = 6
print(*ab)`

func TestExecuteAliasingProgram(t *testing.T) {
	traceTo(t)
	want := Output{"1", "3", "0", "4", "5", "5", "0", "4", "6"}

	for _, typeCheck := range []bool{false, true} {
		got, err := Run(aliasingProgram, RunOptions{TypeCheck: typeCheck})
		if err != nil {
			t.Fatalf("typeCheck=%t: %v", typeCheck, err)
		}
		if !sameOutput(got, want) {
			t.Errorf("typeCheck=%t: expected %v, got %v", typeCheck, want, got)
		}
	}
}

func pointerOf(t *testing.T, i *Interpreter, name string) PointerValue {
	t.Helper()
	value, err := i.Environment().Get(name)
	if err != nil {
		t.Fatal(err)
	}
	p, ok := value.(PointerValue)
	if !ok {
		t.Fatalf("expected %s to hold a pointer, got %s", name, value)
	}
	return p
}

func evaluate(t *testing.T, i *Interpreter, expr Expr) Value {
	t.Helper()
	value, err := i.Evaluate(expr)
	if err != nil {
		t.Fatal(err)
	}
	return value
}

func TestWriteThroughKeepsSlot(t *testing.T) {
	i := NewInterpreter()
	if _, err := i.Execute(mustParse(t, "int* p = 1 + 2")); err != nil {
		t.Fatal(err)
	}
	before := pointerOf(t, i, "p")
	if got := evaluate(t, i, NewDerefExpr("p")); !got.Equals(IntegerValue(3)) {
		t.Fatalf("expected *p = 3, got %s", got)
	}

	if _, err := i.Execute(mustParse(t, "p = 40 + 2")); err != nil {
		t.Fatal(err)
	}
	after := pointerOf(t, i, "p")
	if after.Index != before.Index {
		t.Errorf("write-through moved p from slot %d to %d", before.Index, after.Index)
	}
	if got := evaluate(t, i, NewDerefExpr("p")); !got.Equals(IntegerValue(42)) {
		t.Errorf("expected *p = 42, got %s", got)
	}
}

func TestRebindChangesSlotWithoutMutation(t *testing.T) {
	i := NewInterpreter()
	if _, err := i.Execute(mustParse(t, "int* p = 1\nint* q = 2\nint* keep = p")); err != nil {
		t.Fatal(err)
	}
	q := pointerOf(t, i, "q")

	if _, err := i.Execute(mustParse(t, "p = q")); err != nil {
		t.Fatal(err)
	}
	if got := pointerOf(t, i, "p"); got.Index != q.Index || got.Owner != "p" {
		t.Errorf("expected p to name slot %d owned by p, got %+v", q.Index, got)
	}
	if got := evaluate(t, i, NewDerefExpr("keep")); !got.Equals(IntegerValue(1)) {
		t.Errorf("rebind must not mutate the old cell, *keep = %s", got)
	}
	if got := evaluate(t, i, NewDerefExpr("q")); !got.Equals(IntegerValue(2)) {
		t.Errorf("rebind must not mutate the new cell, *q = %s", got)
	}
}

func TestAliasesObserveWriteThrough(t *testing.T) {
	got, err := Run("int* p = 1\nint* q = p\nq = 9\nprint(*p)\nprint(q)\nprint(p)", RunOptions{TypeCheck: true})
	if err != nil {
		t.Fatal(err)
	}
	want := Output{"9", "0", "0"}
	if !sameOutput(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCollectorRunsAfterEveryStatement(t *testing.T) {
	traceTo(t)
	i := NewInterpreter()
	program := mustParse(t, "int* p = 1\nint* q = 2\np = q")

	for n, stmt := range program {
		if _, err := i.Execute(Program{stmt}); err != nil {
			t.Fatal(err)
		}
		live := map[int]bool{}
		i.Environment().Each(func(_ string, v Value) {
			if p, ok := v.(PointerValue); ok {
				live[p.Index] = true
			}
		})
		for index := 0; index < Capacity; index++ {
			value, _ := i.Heap().Read(index)
			if !live[index] && !IsPoison(value) {
				t.Errorf("after statement %d slot %d is unreferenced but holds %s", n, index, value)
			}
		}
	}

	// The slot p used to name is gone once p is rebound.
	if v, _ := i.Heap().Read(0); v.String() != "undefined" {
		t.Errorf("expected slot 0 to print undefined, got %s", v)
	}
}

func TestHeapFullAtRuntime(t *testing.T) {
	var src bytes.Buffer
	for n := 0; n <= Capacity; n++ {
		fmt.Fprintf(&src, "int* p%d = 1\n", n)
	}
	_, err := Run(src.String(), RunOptions{})
	if !errors.Is(err, ErrHeapFull) {
		t.Fatalf("expected heap full on allocation %d, got %v", Capacity+1, err)
	}
}

func TestReuseAfterCollection(t *testing.T) {
	i := NewInterpreter()
	program := mustParse(t, "int* p = 1\nint* q = 2\np = q\nint* r = 3\nprint(r)")
	got, err := i.Execute(program)
	if err != nil {
		t.Fatal(err)
	}
	if !sameOutput(got, Output{"0"}) {
		t.Errorf("expected r to reuse reclaimed slot 0, got %v", got)
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   error
		output Output
	}{
		{"unbound", "print(1)\nprint(x)\nprint(2)", ErrUnboundVariable, Output{"1"}},
		{"redefinition", "int x = 1\nint* x = 2", ErrRedefinition, Output{}},
		{"pointer arithmetic at runtime", "int* p = 1\nprint(p + 1)", ErrTypeMismatch, Output{}},
		{"pointer initialised from arithmetic", "int* p = 1\nint* q = p + 1", ErrTypeMismatch, Output{}},
		{"deref of int", "int x = 1\nprint(*x)", ErrUnboundVariable, Output{}},
		{"assign to deref", "int* p = 1\n*p = 2", ErrInvalidAssignmentTarget, Output{}},
		{"assign to unbound", "x = 1", ErrUnboundVariable, Output{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Run(tt.source, RunOptions{})
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !sameOutput(got, tt.output) {
				t.Errorf("expected output before failure %v, got %v", tt.output, got)
			}
		})
	}
}

func TestRuntimeErrorMessage(t *testing.T) {
	_, err := Run("print(x)", RunOptions{})
	want := "error: unbound variable 'x'"
	if err == nil || err.Error() != want {
		t.Errorf("expected %q, got %v", want, err)
	}
}

func TestWithStdoutStreamsPrints(t *testing.T) {
	var out bytes.Buffer
	_, err := Run("int* p = 7\nprint(p)\nprint(*p)", RunOptions{Stdout: &out})
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != "0\n7\n" {
		t.Errorf("expected streamed output %q, got %q", "0\n7\n", out.String())
	}
}

func TestCallerSuppliedState(t *testing.T) {
	env := NewEnvironment[Value](nil)
	heap := NewHeap()
	first := NewInterpreter(WithEnvironment(env), WithHeap(heap))
	if _, err := first.Execute(mustParse(t, "int* p = 5")); err != nil {
		t.Fatal(err)
	}

	// Bindings persist across interpreters sharing the same state.
	second := NewInterpreter(WithEnvironment(env), WithHeap(heap))
	got, err := second.Execute(mustParse(t, "print(*p)"))
	if err != nil {
		t.Fatal(err)
	}
	if !sameOutput(got, Output{"5"}) {
		t.Errorf("expected [5], got %v", got)
	}
	if _, err := second.Execute(mustParse(t, "int* p = 6")); !errors.Is(err, ErrRedefinition) {
		t.Errorf("expected redefinition when reusing state, got %v", err)
	}
}

func TestNestedScopeEvaluation(t *testing.T) {
	root := NewEnvironment[Value](nil)
	heap := NewHeap()
	outer := NewInterpreter(WithEnvironment(root), WithHeap(heap))
	if _, err := outer.Execute(mustParse(t, "int x = 1\nint* p = 10")); err != nil {
		t.Fatal(err)
	}

	inner := NewInterpreter(WithEnvironment(root.Extend("x", IntegerValue(2))), WithHeap(heap))
	got, err := inner.Execute(mustParse(t, "print(x)\nx = 3\nprint(x + *p)"))
	if err != nil {
		t.Fatal(err)
	}
	if !sameOutput(got, Output{"2", "13"}) {
		t.Errorf("expected [2 13], got %v", got)
	}
	if v, _ := root.Get("x"); !v.Equals(IntegerValue(1)) {
		t.Errorf("inner update must not reach the shadowed outer x, got %s", v)
	}
}

func TestPlusOverflow(t *testing.T) {
	tests := []string{
		"int x = 9223372036854775807 + 1\nprint(x)",
		"int m = 9223372036854775807\nint x = (m + m) + 1",
	}
	for _, source := range tests {
		t.Run(source, func(t *testing.T) {
			output, err := NewInterpreter().Execute(mustParse(t, source))
			if !errors.Is(err, ErrTypeMismatch) {
				t.Fatalf("expected a type mismatch, got %v", err)
			}
			if !strings.Contains(err.Error(), "integer overflow") {
				t.Errorf("expected an overflow message, got %q", err)
			}
			if len(output) != 0 {
				t.Errorf("expected nothing printed, got %q", output)
			}
		})
	}

	value, err := NewInterpreter().Evaluate(NewPlusExpr(NewIntegerExpr(9223372036854775806), NewIntegerExpr(1)))
	if err != nil || value != IntegerValue(9223372036854775807) {
		t.Errorf("expected the largest int, got %v (%v)", value, err)
	}
}
