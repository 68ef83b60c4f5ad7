package interpreter

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Snapshot is a point-in-time view of an interpreter's bindings and of the
// occupied heap cells.
type Snapshot struct {
	Bindings []BindingSnapshot `yaml:"bindings"`
	Heap     HeapSnapshot      `yaml:"heap"`
}

type BindingSnapshot struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
	// Depth is 0 for the innermost frame.
	Depth int `yaml:"depth"`
}

type HeapSnapshot struct {
	Capacity int            `yaml:"capacity"`
	Live     int            `yaml:"live"`
	Cells    []CellSnapshot `yaml:"cells"`
}

type CellSnapshot struct {
	Index int    `yaml:"index"`
	Value string `yaml:"value"`
}

// Snapshot captures the interpreter's current state.
func (i *Interpreter) Snapshot() Snapshot {
	snap := Snapshot{
		Bindings: []BindingSnapshot{},
		Heap: HeapSnapshot{
			Capacity: i.heap.Cap(),
			Live:     i.heap.Len(),
			Cells:    []CellSnapshot{},
		},
	}

	depth := 0
	for env := i.env; env != nil; env = env.Enclosing() {
		for _, name := range env.sortedNames() {
			value := env.values[name]
			typeName := "undefined"
			if t, ok := typeOfValue(value); ok {
				typeName = t.String()
			}
			snap.Bindings = append(snap.Bindings, BindingSnapshot{
				Name:  name,
				Type:  typeName,
				Value: value.String(),
				Depth: depth,
			})
		}
		depth++
	}

	for index := 0; index < i.heap.Cap(); index++ {
		value, _ := i.heap.Read(index)
		if IsPoison(value) {
			continue
		}
		snap.Heap.Cells = append(snap.Heap.Cells, CellSnapshot{Index: index, Value: value.String()})
	}
	return snap
}

// EncodeSnapshot writes snap to w as YAML.
func EncodeSnapshot(w io.Writer, snap Snapshot) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("snapshot: marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("snapshot: encoder close: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// DecodeSnapshot reads a snapshot written by EncodeSnapshot.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: parse: %w", err)
	}
	return snap, nil
}
