package core

import "fmt"

// ApplyPermutation reorders items in place so that afterwards
// items[i] holds what was previously at items[indices[i]].
//
// indices must be a permutation of 0..len(items)-1. Each cycle is walked
// once, swapping elements into place; visited slots are marked by storing
// -1-v so no extra memory is needed. The markers are undone before
// returning, leaving indices as the caller passed it.
func ApplyPermutation[T any](items []T, indices []int) {
	if len(items) != len(indices) {
		panic(fmt.Sprintf("core: permutation of %d items with %d indices", len(items), len(indices)))
	}

	for i := range items {
		if indices[i] < 0 {
			continue
		}

		pos := i
		for indices[pos] != i {
			target := indices[pos]
			items[pos], items[target] = items[target], items[pos]
			indices[pos] = -1 - indices[pos]
			pos = target
		}
		indices[pos] = -1 - indices[pos]
	}

	for i := range indices {
		indices[i] = -1 - indices[i]
	}
}
