package prefixsum

// sweeper runs the two Ladner-Fischer passes over a borrowed tree.
type sweeper struct {
	tree *implicitTree
	forker
}

// aggregate fills every interior node below i with the sum of its
// children. A node is written only after both of its subtrees are
// complete, and concurrent subtrees never share an interior index.
func (s *sweeper) aggregate(i, depth int) {
	if s.tree.isLeaf(i) {
		return
	}
	l, r := left(i), right(i)
	s.fork(depth,
		func() { s.aggregate(l, depth+1) },
		func() { s.aggregate(r, depth+1) },
	)
	s.tree.setInterior(i, s.tree.value(l)+s.tree.value(r))
}

// distribute writes into out the inclusive prefix sum of every leaf
// below i. prior is the sum of all leaves to the left of the subtree
// rooted at i. out must have exactly one slot per leaf.
func (s *sweeper) distribute(out []int64, i int, prior int64, depth int) {
	if s.tree.isLeaf(i) {
		out[s.tree.leafOffset(i)] = prior + s.tree.value(i)
		return
	}
	l, r := left(i), right(i)
	rightPrior := prior + s.tree.value(l)
	s.fork(depth,
		func() { s.distribute(out, l, prior, depth+1) },
		func() { s.distribute(out, r, rightPrior, depth+1) },
	)
}
