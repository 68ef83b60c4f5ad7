package interpreter

import (
	"fmt"
	"io"
)

// Output holds what a program printed, one entry per print statement.
type Output []string

type Option func(*Interpreter)

// WithStdout streams every printed line to w as well as into the Output.
func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) {
		i.stdOut = w
	}
}

// WithEnvironment runs programs against env instead of a fresh root frame.
func WithEnvironment(env *Environment[Value]) Option {
	return func(i *Interpreter) {
		i.env = env
	}
}

// WithHeap runs programs against heap instead of a fresh one.
func WithHeap(heap *Heap) Option {
	return func(i *Interpreter) {
		i.heap = heap
	}
}

// NewInterpreter returns a new interpreter
func NewInterpreter(opts ...Option) *Interpreter {
	interpreter := &Interpreter{}
	for _, opt := range opts {
		opt(interpreter)
	}
	if interpreter.env == nil {
		interpreter.env = NewEnvironment[Value](nil)
	}
	if interpreter.heap == nil {
		interpreter.heap = NewHeap()
	}
	return interpreter
}

// Interpreter owns the variable environment and heap of one run. Reusing
// it for further programs keeps earlier bindings alive.
type Interpreter struct {
	env    *Environment[Value]
	heap   *Heap
	stdOut io.Writer
	output Output
}

func (i *Interpreter) Environment() *Environment[Value] {
	return i.env
}

func (i *Interpreter) Heap() *Heap {
	return i.heap
}

// Execute runs program top to bottom, collecting the heap after every
// statement. On failure it returns what was printed before the error.
func (i *Interpreter) Execute(program Program) (output Output, err error) {
	i.output = Output{}
	defer func() {
		if r := recover(); r != nil {
			if recovered, ok := r.(runtimeError); ok {
				T().Infof("run failed: %s", recovered)
				output, err = i.output, recovered
			} else {
				panic(r)
			}
		}
	}()
	for _, statement := range program {
		T().Infof("exec: %s", statement)
		i.interpret(statement)
		Collect(i.env, i.heap)
	}
	return i.output, nil
}

// Evaluate computes the value of expr against the current state.
func (i *Interpreter) Evaluate(expr Expr) (value Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if recovered, ok := r.(runtimeError); ok {
				err = recovered
			} else {
				panic(r)
			}
		}
	}()
	return i.evaluate(expr), nil
}

func (i *Interpreter) interpret(stmt Stmt) {
	switch stmt := stmt.(type) {
	case DefineStmt:
		i.define(stmt)
	case AssignStmt:
		i.assign(stmt)
	case PrintStmt:
		value := i.evaluate(stmt.Expr)
		i.output = append(i.output, value.String())
		if i.stdOut != nil {
			_, _ = fmt.Fprintln(i.stdOut, value)
		}
	default:
		panic(i.error(nil, "unexpected statement type: %s", stmt))
	}
}

func (i *Interpreter) define(stmt DefineStmt) {
	name := stmt.Name.Lexeme
	value := i.evaluate(stmt.Initializer)
	switch {
	case stmt.Type.Equals(IntType):
		i.must(i.env.Bind(name, value))
	case stmt.Type.Equals(PointerType):
		switch value := value.(type) {
		case IntegerValue:
			index, err := i.heap.Allocate(value)
			i.must(err)
			T().Debugf("alloc: %s -> slot %d = %s", name, index, value)
			i.must(i.env.Bind(name, PointerValue{Index: index, Owner: name}))
		case PointerValue:
			// Alias the slot the source variable names now, not a copy of it.
			aliasee := i.pointerNamed(value.Owner)
			T().Debugf("alias: %s -> slot %d (via %s)", name, aliasee.Index, value.Owner)
			i.must(i.env.Bind(name, PointerValue{Index: aliasee.Index, Owner: name}))
		default:
			panic(i.error(ErrTypeMismatch, "cannot initialize %s '%s' with %s", stmt.Type, name, value))
		}
	default:
		panic(i.error(ErrTypeMismatch, "unexpected declared type: %s", stmt.Type))
	}
}

// assign dispatches on the runtime tags of the target's current binding
// and of the assigned value. A pointer target given an int writes through
// to its slot; given a pointer it is rebound to the other slot.
func (i *Interpreter) assign(stmt AssignStmt) {
	rhs := i.evaluate(stmt.Value)
	target, ok := stmt.Target.(VariableExpr)
	if !ok {
		panic(i.error(ErrInvalidAssignmentTarget, "cannot assign to non-location '%s'", stmt.Target))
	}
	name := target.Name.Lexeme
	current, err := i.env.Get(name)
	i.must(err)

	switch current := current.(type) {
	case IntegerValue:
		i.must(i.env.Update(name, rhs))
	case PointerValue:
		switch rhs := rhs.(type) {
		case IntegerValue:
			T().Debugf("write-through: %s -> slot %d = %s", name, current.Index, rhs)
			i.must(i.heap.WriteAt(current.Index, rhs))
		case PointerValue:
			T().Debugf("rebind: %s slot %d -> slot %d", name, current.Index, rhs.Index)
			i.must(i.env.Update(name, PointerValue{Index: rhs.Index, Owner: name}))
		default:
			panic(i.error(ErrInvalidAssignmentTarget, "cannot assign %s to pointer '%s'", rhs, name))
		}
	default:
		panic(i.error(ErrInvalidAssignmentTarget, "cannot assign to '%s' holding %s", name, current))
	}
}

func (i *Interpreter) evaluate(expr Expr) Value {
	switch expr := expr.(type) {
	case IntegerExpr:
		return expr.Value
	case VariableExpr:
		value, err := i.env.Get(expr.Name.Lexeme)
		i.must(err)
		return value
	case DerefExpr:
		pointer := i.pointerNamed(expr.Name.Lexeme)
		value, err := i.heap.Read(pointer.Index)
		i.must(err)
		return value
	case PlusExpr:
		// Pointer arithmetic only exists in the checker; at runtime both
		// operands must already be integers.
		left := i.evaluate(expr.Left)
		right := i.evaluate(expr.Right)
		l, lok := left.(IntegerValue)
		r, rok := right.(IntegerValue)
		if !lok || !rok {
			panic(i.error(ErrTypeMismatch, "plus expects two numbers but got %s and %s",
				describe(left), describe(right)))
		}
		sum := l + r
		if (r > 0 && sum < l) || (r < 0 && sum > l) {
			panic(i.error(ErrTypeMismatch, "integer overflow in '%s'", expr))
		}
		return sum
	}
	panic(i.error(nil, "unexpected expression type: %s", expr))
}

// pointerNamed returns the pointer bound to name, failing if name is
// unbound or bound to something else.
func (i *Interpreter) pointerNamed(name string) PointerValue {
	value, err := i.env.Get(name)
	i.must(err)
	pointer, ok := value.(PointerValue)
	if !ok {
		panic(i.error(ErrUnboundVariable, "'%s' is not bound to a pointer", name))
	}
	return pointer
}

// must turns an error from the environment or heap into a runtime error.
func (i *Interpreter) must(err error) {
	if err != nil {
		panic(i.error(kindOf(err), "%s", err))
	}
}

func (i *Interpreter) error(kind error, format string, any ...any) error {
	return runtimeError{kind: kind, message: fmt.Sprintf(format, any...)}
}

func describe(v Value) string {
	switch v.(type) {
	case IntegerValue:
		return "int"
	case PointerValue:
		return "pointer"
	case PoisonValue:
		return "poison"
	}
	return fmt.Sprintf("%T", v)
}
