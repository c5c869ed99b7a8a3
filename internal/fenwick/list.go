// Package fenwick provides a list of int64 supporting prefix sums.
//
// A Fenwick tree, or binary indexed tree, keeps range sums of an
// underlying array in an implicit tree of the same size, so both
// element updates and prefix sums run in O(log n). It is used as an
// independent, sequential reference for the parallel sweeps.
package fenwick

// List represents a list of numbers with support for efficient
// prefix sum computation. The zero value is an empty list.
type List struct {
	// tree[i] holds t[j] + ... + t[i] for j = i & (i+1), i.e. the
	// range whose length is given by the trailing 1 bits of i.
	// Sum(k) adds one element per 1 bit in the binary expansion of k:
	// for k = 13 = 1101₂ those are tree[12], tree[11] and tree[7].
	tree []int64
}

// New creates a new list with the given elements.
func New(n ...int64) *List {
	size := len(n)
	t := make([]int64, size)
	copy(t, n)
	for i := range t {
		if j := i | (i + 1); j < size {
			t[j] += t[i]
		}
	}
	return &List{tree: t}
}

// Len returns the number of elements in the list.
func (l *List) Len() int {
	return len(l.tree)
}

// Get returns the element at index i.
func (l *List) Get(i int) int64 {
	sum := l.tree[i]
	j := i + 1
	j -= j & -j
	for i > j {
		sum -= l.tree[i-1]
		i -= i & -i
	}
	return sum
}

// Add adds n to the element at index i.
func (l *List) Add(i int, n int64) {
	for size := len(l.tree); i < size; i |= i + 1 {
		l.tree[i] += n
	}
}

// Set sets the element at index i to n.
func (l *List) Set(i int, n int64) {
	l.Add(i, n-l.Get(i))
}

// Sum returns the sum of the elements from index 0 to index i-1.
func (l *List) Sum(i int) int64 {
	var sum int64
	for i > 0 {
		sum += l.tree[i-1]
		i -= i & -i
	}
	return sum
}

// SumRange returns the sum of the elements from index i to index j-1.
func (l *List) SumRange(i, j int) int64 {
	var sum int64
	for j > i {
		sum += l.tree[j-1]
		j -= j & -j
	}
	for i > j {
		sum -= l.tree[i-1]
		i -= i & -i
	}
	return sum
}

// Mismatch compares sums against the inclusive prefix sums of the
// list and returns the first index where they differ, or -1. sums
// may be longer than the list; its extra positions must all hold the
// grand total.
func (l *List) Mismatch(sums []int64) int {
	if len(sums) < len(l.tree) {
		return len(sums)
	}
	for i := range l.tree {
		if sums[i] != l.Sum(i+1) {
			return i
		}
	}
	total := l.Sum(len(l.tree))
	for i := len(l.tree); i < len(sums); i++ {
		if sums[i] != total {
			return i
		}
	}
	return -1
}
