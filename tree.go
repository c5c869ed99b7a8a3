package prefixsum

import "fmt"

// implicitTree is a complete binary tree stored in two slices. Node
// indices 0..n-2 address the interior slice and n-1..2n-2 address
// the leaves, which are the padded input itself:
//
//	            0
//	      1           2
//	   3     4     5     6
//	  7 8   9 10 11 12 13 14     <- leaves[0..7]
//
// Relationships between nodes are computed from the indices alone.
type implicitTree struct {
	n        int
	interior []int64
	leaves   []int64
}

func newImplicitTree(leaves paddedArray) *implicitTree {
	n := leaves.Len()
	if !isPow2(n) {
		panic(fmt.Sprintf("implicit tree needs a power of two leaf count, got %d", n))
	}
	return &implicitTree{
		n:        n,
		interior: make([]int64, n-1),
		leaves:   leaves.data,
	}
}

// size returns the total number of nodes, 2n-1.
func (t *implicitTree) size() int {
	return 2*t.n - 1
}

func (t *implicitTree) value(i int) int64 {
	if i < t.n-1 {
		return t.interior[i]
	}
	return t.leaves[i-(t.n-1)]
}

func (t *implicitTree) setInterior(i int, v int64) {
	t.interior[i] = v
}

// leafOffset maps a leaf node index to its position in the leaf slice.
func (t *implicitTree) leafOffset(i int) int {
	return i - (t.n - 1)
}

func (t *implicitTree) isLeaf(i int) bool {
	return i >= t.n-1
}

func parent(i int) int {
	return (i - 1) / 2
}

func left(i int) int {
	return 2*i + 1
}

func right(i int) int {
	return 2*i + 2
}
