package interpreter

import (
	"fmt"
	"strconv"
)

// Value is a runtime value: an integer, a pointer into the heap,
// or the poison sentinel stored in free heap cells.
type Value interface {
	fmt.Stringer
	// Equals reports whether two values are the same for the program.
	Equals(other Value) bool
}

type IntegerValue int

func (i IntegerValue) String() string {
	return strconv.Itoa(int(i))
}

func (i IntegerValue) Equals(other Value) bool {
	o, ok := other.(IntegerValue)
	return ok && o == i
}

// PoisonValue marks a heap cell that is free or was reclaimed.
type PoisonValue struct{}

// Poison is the single poison value.
var Poison Value = PoisonValue{}

func (PoisonValue) String() string {
	return "undefined"
}

func (PoisonValue) Equals(other Value) bool {
	_, ok := other.(PoisonValue)
	return ok
}

// PointerValue names a heap slot. Owner records the variable the pointer
// was bound to; it is provenance only and ignored by Equals.
type PointerValue struct {
	Index int
	Owner string
}

// String renders a pointer as its slot index.
func (p PointerValue) String() string {
	return strconv.Itoa(p.Index)
}

func (p PointerValue) Equals(other Value) bool {
	o, ok := other.(PointerValue)
	return ok && o.Index == p.Index
}

// IsPoison reports whether v is the poison sentinel.
func IsPoison(v Value) bool {
	_, ok := v.(PoisonValue)
	return ok
}

// typeOfValue returns the static type that a runtime value inhabits.
func typeOfValue(v Value) (Type, bool) {
	switch v.(type) {
	case IntegerValue:
		return IntType, true
	case PointerValue:
		return PointerType, true
	}
	return nil, false
}
