package interpreter

import (
	"fmt"
)

// NewTypeChecker returns a checker with an empty context. The context is
// its own Environment[Type]; checking never touches runtime state.
func NewTypeChecker() *TypeChecker {
	return &TypeChecker{env: NewEnvironment[Type](nil)}
}

type TypeChecker struct {
	env *Environment[Type]
}

// Check validates every statement of program in order, stopping at the
// first error. Definitions extend the context for later statements, but
// only once the whole program has checked: a failing program leaves the
// context as it was.
func (c *TypeChecker) Check(program Program) error {
	committed := c.env
	staged := NewEnvironment[Type](committed)
	c.env = staged
	defer func() { c.env = committed }()

	for _, stmt := range program {
		err := c.CheckStmt(stmt)
		if err != nil {
			return err
		}
	}

	for _, name := range staged.sortedNames() {
		if err := committed.Bind(name, staged.values[name]); err != nil {
			return c.error(ErrRedefinition, "%s", err)
		}
	}
	return nil
}

// Reset replaces the context with the types of the variables bound in env,
// so that later checks see exactly what a run left behind.
func (c *TypeChecker) Reset(env *Environment[Value]) {
	c.env = NewEnvironment[Type](nil)
	for _, name := range env.Names() {
		value, err := env.Get(name)
		if err != nil {
			continue
		}
		if t, ok := typeOfValue(value); ok {
			_ = c.env.Bind(name, t)
		}
	}
}

// CheckStmt validates a single statement against the current context.
func (c *TypeChecker) CheckStmt(stmt Stmt) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if recovered, ok := r.(typeError); ok {
				err = recovered
			} else {
				panic(r)
			}
		}
	}()

	c.checkStmt(stmt)
	return nil
}

// TypeOf returns the type of expr in the current context.
func (c *TypeChecker) TypeOf(expr Expr) (t Type, err error) {
	defer func() {
		if r := recover(); r != nil {
			if recovered, ok := r.(typeError); ok {
				err = recovered
			} else {
				panic(r)
			}
		}
	}()

	return c.resolveExpr(expr), nil
}

func (c *TypeChecker) checkStmt(stmt Stmt) {
	switch stmt := stmt.(type) {
	case DefineStmt:
		resolvedType := c.resolveExpr(stmt.Initializer)
		switch {
		case stmt.Type.Equals(IntType):
			if !resolvedType.Equals(IntType) {
				panic(c.error(ErrTypeMismatch, "expected value with type %s for '%s', but got %s",
					stmt.Type, stmt.Name.Lexeme, resolvedType))
			}
		case stmt.Type.Equals(PointerType):
			// An int initializer allocates a new cell, a pointer one aliases.
		default:
			panic(c.error(ErrTypeMismatch, "unexpected declared type: %s", stmt.Type))
		}
		// The context is a single scope; a staged program sees the
		// committed names as already defined.
		if c.env.Has(stmt.Name.Lexeme) {
			panic(c.error(ErrRedefinition, "%s '%s'", ErrRedefinition, stmt.Name.Lexeme))
		}
		_ = c.env.Bind(stmt.Name.Lexeme, stmt.Type)
	case AssignStmt:
		target, ok := stmt.Target.(VariableExpr)
		if !ok {
			panic(c.error(ErrInvalidAssignmentTarget, "assignment to non-location '%s'", stmt.Target))
		}
		nameType := c.lookup(target.Name.Lexeme)
		valueType := c.resolveExpr(stmt.Value)
		// An int* target takes either type; the evaluator picks write-through
		// or rebind from the runtime value.
		if nameType.Equals(IntType) && !valueType.Equals(IntType) {
			panic(c.error(ErrTypeMismatch, "expected %s but found %s", nameType, valueType))
		}
	case PrintStmt:
		c.resolveExpr(stmt.Expr)
	default:
		panic(c.error(nil, "unexpected statement type: %s", stmt))
	}
}

func (c *TypeChecker) resolveExpr(expr Expr) Type {
	switch expr := expr.(type) {
	case IntegerExpr:
		return IntType
	case VariableExpr:
		return c.lookup(expr.Name.Lexeme)
	case DerefExpr:
		name := expr.Name.Lexeme
		if !c.lookup(name).Equals(PointerType) {
			panic(c.error(ErrUnboundVariable, "cannot dereference '%s': not a pointer", name))
		}
		return IntType
	case PlusExpr:
		left := c.resolveExpr(expr.Left)
		right := c.resolveExpr(expr.Right)
		if result, ok := plusType(left, right); ok {
			return result
		}
		panic(c.error(ErrTypeMismatch, "cannot add two pointers in '%s'", expr))
	}
	panic(c.error(nil, "unexpected expression type: %s", expr))
}

func (c *TypeChecker) lookup(name string) Type {
	t, err := c.env.Get(name)
	if err != nil {
		panic(c.error(ErrUnboundVariable, "%s", err))
	}
	return t
}

func (c *TypeChecker) error(kind error, format string, any ...any) error {
	return typeError{kind: kind, message: fmt.Sprintf(format, any...)}
}
