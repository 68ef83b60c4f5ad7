package interpreter

import "fmt"

type Type interface {
	// Equals returns true if both types are equal
	Equals(other Type) bool
	fmt.Stringer
}

// newAtomicType returns a new atomic type based on the Go type of its values.
func newAtomicType[UnderlyingGoType Value](name string) Type {
	return atomicType[UnderlyingGoType]{name: name}
}

// atomicType represents one of the two types of the language:
// "int" and "int*". Pointers always point at an int, so neither
// type carries parameters.
type atomicType[UnderlyingGoType Value] struct {
	name string
}

func (t atomicType[UnderlyingGoType]) String() string {
	return t.name
}

func (t atomicType[UnderlyingGoType]) Equals(other Type) bool {
	_, ok := other.(atomicType[UnderlyingGoType])
	return ok
}

var (
	IntType     = newAtomicType[IntegerValue]("int")
	PointerType = newAtomicType[PointerValue]("int*")
)

// plusType combines the operand types of an addition.
//
//	int  + int  = int
//	int  + int* = int*
//	int* + int  = int*
//	int* + int* = error
func plusType(left, right Type) (Type, bool) {
	switch {
	case left.Equals(IntType) && right.Equals(IntType):
		return IntType, true
	case left.Equals(IntType) && right.Equals(PointerType),
		left.Equals(PointerType) && right.Equals(IntType):
		return PointerType, true
	}
	return nil, false
}
