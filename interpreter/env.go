package interpreter

import (
	"fmt"
	"sort"
)

// Environment is one frame in a chain of name→value scopes. The runtime
// uses Environment[Value]; the type checker uses Environment[Type].
type Environment[Value any] struct {
	enclosing *Environment[Value]
	values    map[string]Value
}

func NewEnvironment[Value any](enclosing *Environment[Value]) *Environment[Value] {
	return &Environment[Value]{enclosing: enclosing, values: make(map[string]Value)}
}

// Enclosing returns the outer frame, or nil for the root frame.
func (e *Environment[Value]) Enclosing() *Environment[Value] {
	return e.enclosing
}

func (e *Environment[Value]) Has(name string) bool {
	if _, ok := e.values[name]; ok {
		return true
	}
	return e.enclosing != nil && e.enclosing.Has(name)
}

func (e *Environment[Value]) Get(name string) (Value, error) {
	if v, ok := e.values[name]; ok {
		return v, nil
	}

	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}

	var zero Value
	return zero, fmt.Errorf("%w '%s'", ErrUnboundVariable, name)
}

// Bind adds name to this frame. A binding of the same name in an
// enclosing frame is shadowed, not an error.
func (e *Environment[Value]) Bind(name string, value Value) error {
	if _, ok := e.values[name]; ok {
		return fmt.Errorf("%w '%s'", ErrRedefinition, name)
	}
	e.values[name] = value
	return nil
}

// Update overwrites the innermost binding of name.
func (e *Environment[Value]) Update(name string, value Value) error {
	if _, ok := e.values[name]; ok {
		e.values[name] = value
		return nil
	}

	if e.enclosing != nil {
		return e.enclosing.Update(name, value)
	}

	return fmt.Errorf("%w '%s'", ErrUnboundVariable, name)
}

// Extend returns a child frame holding a single binding.
func (e *Environment[Value]) Extend(name string, value Value) *Environment[Value] {
	child := NewEnvironment(e)
	child.values[name] = value
	return child
}

// ExtendAll returns a child frame binding names[i] to values[i].
func (e *Environment[Value]) ExtendAll(names []string, values []Value) (*Environment[Value], error) {
	if len(names) != len(values) {
		return nil, fmt.Errorf("cannot bind %d names to %d values", len(names), len(values))
	}
	child := NewEnvironment(e)
	for i, name := range names {
		if err := child.Bind(name, values[i]); err != nil {
			return nil, err
		}
	}
	return child, nil
}

// Each calls fn for every binding reachable from this frame, innermost
// frame first. Shadowed bindings of outer frames are visited too.
func (e *Environment[Value]) Each(fn func(name string, value Value)) {
	for env := e; env != nil; env = env.enclosing {
		for _, name := range env.sortedNames() {
			fn(name, env.values[name])
		}
	}
}

// Names returns every distinct name reachable from this frame, sorted.
func (e *Environment[Value]) Names() []string {
	seen := make(map[string]bool)
	var names []string
	e.Each(func(name string, _ Value) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	})
	sort.Strings(names)
	return names
}

func (e *Environment[Value]) sortedNames() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
