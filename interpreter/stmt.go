package interpreter

import (
	"fmt"
	"strings"
)

type Stmt interface {
	fmt.Stringer
}

type PrintStmt struct {
	Expr Expr
}

func (p PrintStmt) String() string {
	return fmt.Sprintf("print(%s)", p.Expr)
}

type DefineStmt struct {
	Type        Type
	Name        Token
	Initializer Expr
}

func (d DefineStmt) String() string {
	return fmt.Sprintf("%s %s = %s", d.Type, d.Name.Lexeme, d.Initializer)
}

// AssignStmt keeps its target as an arbitrary expression so that "*p = 1"
// survives parsing and is rejected by the checker and evaluator instead.
type AssignStmt struct {
	Target Expr
	Value  Expr
}

func (a AssignStmt) String() string {
	return fmt.Sprintf("%s = %s", a.Target, a.Value)
}

type Program []Stmt

func (p Program) String() string {
	lines := make([]string, len(p))
	for i, stmt := range p {
		lines[i] = stmt.String()
	}
	return strings.Join(lines, "\n")
}
