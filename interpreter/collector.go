package interpreter

// Collect frees every heap slot that no pointer variable reachable from
// env names, and returns how many slots it freed.
//
// Only variables are roots. A pointer stored inside a heap cell would not
// keep its target alive, but no program can build one: cells are only
// ever written with integers (Allocate from "int* p = <int>", WriteAt from
// "p = <int>").
func Collect(env *Environment[Value], heap *Heap) int {
	var marked [Capacity]bool
	env.Each(func(_ string, value Value) {
		if p, ok := value.(PointerValue); ok && p.Index >= 0 && p.Index < Capacity {
			marked[p.Index] = true
		}
	})

	freed := 0
	for index := 0; index < heap.Cap(); index++ {
		if marked[index] {
			continue
		}
		if live, _ := heap.IsLive(index); live {
			heap.set(index, Poison)
			freed++
		}
	}
	if freed > 0 {
		T().Debugf("collector freed %d slot(s), %d live", freed, heap.Len())
	}
	return freed
}
