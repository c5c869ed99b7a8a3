package prefixsum

import "math/bits"

// nextPow2 returns the smallest power of two that is >= n. Powers of
// two are returned unchanged and 0 maps to 1.
func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	if isPow2(n) {
		return n
	}
	return 1 << bits.Len(uint(n))
}

// PaddedLen returns the length a slice of n elements has once it is
// padded for the tree. Allocating inputs and outputs with this
// capacity lets Build and Tree.PrefixSums pad them in place.
func PaddedLen(n int) int {
	return nextPow2(n)
}

func isPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// paddedArray is a sequence whose length is always a power of two.
// The positions past the caller's original length hold the additive
// identity, so they never change any prefix of the original data.
type paddedArray struct {
	data     []int64
	original int
}

// pad appends zeros to data until its length is a power of two. The
// backing array may be reallocated, callers must use the returned
// slice from then on.
func pad(data []int64) paddedArray {
	return padTo(data, nextPow2(len(data)))
}

// padTo appends zeros to data until it has exactly size elements.
func padTo(data []int64, size int) paddedArray {
	original := len(data)
	if missing := size - original; missing > 0 {
		data = append(data, make([]int64, missing)...)
	}
	return paddedArray{data: data, original: original}
}

// Len returns the logical (padded) length.
func (p paddedArray) Len() int {
	return len(p.data)
}

// Padding returns how many identity elements were appended.
func (p paddedArray) Padding() int {
	return len(p.data) - p.original
}
