package prefixsum

import "github.com/exascience/pargo/parallel"

// forker runs the two halves of a recursive step, either in parallel
// or one after the other depending on how deep the step is.
type forker struct {
	maxDepth int

	// onFork, when set, is called each time a subtree is handed to
	// a new goroutine.
	onFork func()
}

// fork runs l and r and returns once both are done. Below maxDepth r
// runs on its own goroutine while l runs on the caller's, and a
// panic in either one is re-raised here after both have finished.
// At or beyond maxDepth l runs before r on the calling goroutine.
func (f forker) fork(depth int, l, r func()) {
	if depth >= f.maxDepth {
		l()
		r()
		return
	}
	if f.onFork != nil {
		f.onFork()
	}
	parallel.Do(l, r)
}

// maxForks is the upper bound on forked tasks for a single sweep.
func (f forker) maxForks() int {
	if f.maxDepth <= 1 {
		return 0
	}
	return 1<<(f.maxDepth-1) - 1
}
