package accel

import "fmt"

type flattener struct {
	build []buildNode
	out   []LinearNode
}

// flattenTree lays the build tree rooted at root out in depth-first
// pre-order: every interior node is immediately followed by its first
// child's subtree, then its second child's subtree.
func flattenTree(build []buildNode, root int32) []LinearNode {
	f := &flattener{
		build: build,
		out:   make([]LinearNode, 0, len(build)),
	}
	if n := f.flatten(root); n != len(f.out) {
		panic(fmt.Sprintf("accel: flattened %d nodes but subtree reports %d", len(f.out), n))
	}
	return f.out
}

// flatten appends the subtree rooted at idx and returns its node count
func (f *flattener) flatten(idx int32) int {
	node := &f.build[idx]
	if node.nPrims > 0 {
		f.out = append(f.out, LinearNode{
			Bounds: node.bounds,
			offset: node.firstPrimOffset,
			nPrims: node.nPrims,
		})
		return 1
	}

	self := len(f.out)
	f.out = append(f.out, LinearNode{
		Bounds: node.bounds,
		axis:   node.splitAxis,
	})

	firstLen := f.flatten(node.children[0])
	// The second child's slot is only known once the first subtree is written
	f.out[self].offset = uint32(self + 1 + firstLen)
	secondLen := f.flatten(node.children[1])

	return 1 + firstLen + secondLen
}
