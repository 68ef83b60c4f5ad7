package interpreter

import "fmt"

type Expr interface {
	fmt.Stringer
}

type IntegerExpr struct {
	Value IntegerValue
}

func (i IntegerExpr) String() string {
	return i.Value.String()
}

type VariableExpr struct {
	Name Token
}

func (v VariableExpr) String() string {
	return v.Name.Lexeme
}

// DerefExpr loads the heap cell named by a pointer variable ("*p").
type DerefExpr struct {
	Name Token
}

func (d DerefExpr) String() string {
	return "*" + d.Name.Lexeme
}

// PlusExpr is left-associative: "a + b + c" is Plus(Plus(a, b), c).
type PlusExpr struct {
	Left  Expr
	Right Expr
}

func (p PlusExpr) String() string {
	right := p.Right.String()
	if _, ok := p.Right.(PlusExpr); ok {
		right = "(" + right + ")"
	}
	return fmt.Sprintf("%s + %s", p.Left, right)
}

// NewVariableExpr builds a variable reference without going through the scanner.
func NewVariableExpr(name string) VariableExpr {
	return VariableExpr{Name: Token{TokenType: TokenIdentifier, Lexeme: name}}
}

// NewDerefExpr builds a dereference of the named pointer variable.
func NewDerefExpr(name string) DerefExpr {
	return DerefExpr{Name: Token{TokenType: TokenIdentifier, Lexeme: name}}
}

func NewIntegerExpr(value int) IntegerExpr {
	return IntegerExpr{Value: IntegerValue(value)}
}

func NewPlusExpr(left, right Expr) PlusExpr {
	return PlusExpr{Left: left, Right: right}
}
