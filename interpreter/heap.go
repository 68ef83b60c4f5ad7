package interpreter

import "fmt"

// Capacity is the fixed number of slots in a heap.
const Capacity = 100

// Heap is a fixed array of slots. A slot holding Poison is free.
type Heap struct {
	slots [Capacity]Value
	live  int
}

func NewHeap() *Heap {
	h := &Heap{}
	for i := range h.slots {
		h.slots[i] = Poison
	}
	return h
}

// Cap returns the number of slots.
func (h *Heap) Cap() int {
	return len(h.slots)
}

// Len returns the number of occupied slots.
func (h *Heap) Len() int {
	return h.live
}

// IsLive reports whether slot index holds a value. A free slot is not
// an error; only an index outside the heap is.
func (h *Heap) IsLive(index int) (bool, error) {
	if err := h.checkBounds(index); err != nil {
		return false, err
	}
	return !IsPoison(h.slots[index]), nil
}

// Read returns the contents of slot index, which may be Poison.
func (h *Heap) Read(index int) (Value, error) {
	if err := h.checkBounds(index); err != nil {
		return nil, err
	}
	return h.slots[index], nil
}

// Allocate stores value in the lowest free slot and returns its index.
func (h *Heap) Allocate(value Value) (int, error) {
	if h.live == len(h.slots) {
		return 0, fmt.Errorf("%w: all %d slots in use", ErrHeapFull, len(h.slots))
	}
	for i, slot := range h.slots {
		if IsPoison(slot) {
			h.set(i, value)
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: all %d slots in use", ErrHeapFull, len(h.slots))
}

// WriteAt overwrites slot index, live or not.
func (h *Heap) WriteAt(index int, value Value) error {
	if err := h.checkBounds(index); err != nil {
		return err
	}
	h.set(index, value)
	return nil
}

// Free resets slot index to Poison.
func (h *Heap) Free(index int) error {
	return h.WriteAt(index, Poison)
}

func (h *Heap) set(index int, value Value) {
	wasLive := !IsPoison(h.slots[index])
	isLive := !IsPoison(value)
	switch {
	case isLive && !wasLive:
		h.live++
	case !isLive && wasLive:
		h.live--
	}
	h.slots[index] = value
}

func (h *Heap) checkBounds(index int) error {
	if index < 0 || index >= len(h.slots) {
		return fmt.Errorf("%w: %d (capacity %d)", ErrOutOfBounds, index, len(h.slots))
	}
	return nil
}
