// Package prefixsum computes inclusive prefix sums of int64 slices
// with the two-pass Ladner-Fischer scheme.
//
// The input is padded with zeros to a power-of-two length and viewed
// as the leaves of an implicit complete binary tree. An up-sweep
// stores the sum of every subtree in its interior node, then a
// down-sweep hands each subtree the sum of everything to its left
// and writes the running totals out. Both sweeps fork the right
// subtree onto a separate goroutine near the root of the tree, up to
// a configurable depth (see ForkDepth).
//
// Sums wrap around silently on int64 overflow.
package prefixsum

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidForkDepth is returned by New for out of range fork
	// depths.
	ErrInvalidForkDepth = errors.New("invalid fork depth")

	// ErrOutputTooLong is returned when an output slice has more
	// elements than the tree has leaves.
	ErrOutputTooLong = errors.New("output longer than tree leaf count")
)

// Scanner builds prefix sum trees with a fixed fork depth. It holds
// no per-computation state and is safe for concurrent use.
type Scanner struct {
	maxForkDepth int
	onFork       func()
}

// New creates a Scanner configured by the given options. Without
// options forking stops at DefaultForkDepth.
func New(options ...scanOption) (*Scanner, error) {
	s := &Scanner{maxForkDepth: DefaultForkDepth}
	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ForkDepth returns the depth below which subtrees are forked.
func (s *Scanner) ForkDepth() int {
	return s.maxForkDepth
}

// Build pads input with zeros up to the next power of two and runs
// the up-sweep over it. The tree keeps using input's backing array as
// its leaves, so the caller must not modify it until it is done with
// the tree. Use Tree.Leaves to get at the padded slice.
//
// An empty input is padded to a single zero leaf.
func (s *Scanner) Build(input []int64) *Tree {
	leaves := pad(input)
	t := &Tree{
		tree:     newImplicitTree(leaves),
		original: leaves.original,
		forker:   forker{maxDepth: s.maxForkDepth, onFork: s.onFork},
	}

	log.Debugf("Aggregating %d leaves (%d original, %d padding), fork depth %d",
		leaves.Len(), leaves.original, leaves.Padding(), s.maxForkDepth)

	sw := sweeper{tree: t.tree, forker: t.forker}
	sw.aggregate(0, 1)

	log.Tracef("Up-sweep done, root holds %d", t.Total())
	return t
}

// Scan returns the inclusive prefix sums of input in a new slice.
// Both input and the result are padded to the tree's leaf count; the
// padded positions of the result all hold the grand total.
func (s *Scanner) Scan(input []int64) []int64 {
	output := make([]int64, len(input))
	t := s.Build(input)
	out, err := t.PrefixSums(output)
	if err != nil {
		// output has the original length, which never exceeds the
		// leaf count.
		panic(err)
	}
	return out
}

// PrefixSum is Scan with the default options.
func PrefixSum(input []int64) []int64 {
	s, _ := New()
	return s.Scan(input)
}

// Tree is the aggregated tree over a padded input. Every interior
// node already holds the sum of the leaves below it.
type Tree struct {
	tree     *implicitTree
	original int
	forker   forker
}

// Len returns the number of leaves, always a power of two.
func (t *Tree) Len() int {
	return t.tree.n
}

// Size returns the length of the input before padding.
func (t *Tree) Size() int {
	return t.original
}

// Padding returns the number of zero leaves appended to the input.
func (t *Tree) Padding() int {
	return t.tree.n - t.original
}

// Total returns the sum of all leaves.
func (t *Tree) Total() int64 {
	return t.tree.value(0)
}

// Leaves returns the padded input.
func (t *Tree) Leaves() []int64 {
	return t.tree.leaves
}

// PrefixSums pads output with zeros to Len() elements and overwrites
// it with the inclusive prefix sums of the leaves. Like Build, it may
// reallocate, so the returned slice must be used from then on.
//
// output must not be longer than Len(); its previous contents are
// irrelevant. PrefixSums may be called more than once, for example to
// fill several output slices from the same tree.
func (t *Tree) PrefixSums(output []int64) ([]int64, error) {
	if len(output) > t.tree.n {
		return output, fmt.Errorf("%w: %d > %d", ErrOutputTooLong, len(output), t.tree.n)
	}
	out := padTo(output, t.tree.n).data

	log.Debugf("Distributing prefix sums over %d leaves", t.tree.n)

	sw := sweeper{tree: t.tree, forker: t.forker}
	sw.distribute(out, 0, 0, 1)
	return out, nil
}

func (t Tree) String() string {
	return fmt.Sprintf("Tree<leaves=%d, size=%d, total=%d>", t.tree.n, t.original, t.Total())
}
