package prefixsum

import (
	"sync/atomic"
	"testing"
)

func TestForkRunsBothSides(t *testing.T) {
	for _, depth := range []int{1, 3, 4, 5} {
		f := forker{maxDepth: 4}
		var l, r atomic.Bool
		f.fork(depth, func() { l.Store(true) }, func() { r.Store(true) })
		if !l.Load() || !r.Load() {
			t.Errorf("depth %d: fork returned before running both sides", depth)
		}
	}
}

func TestSequentialForkOrder(t *testing.T) {
	f := forker{maxDepth: 4}
	var order []string
	f.fork(4, func() { order = append(order, "l") }, func() { order = append(order, "r") })
	if len(order) != 2 || order[0] != "l" || order[1] != "r" {
		t.Errorf("At the fork depth the left side should run first. Got %v", order)
	}
}

func TestForkedPanicReachesCaller(t *testing.T) {
	f := forker{maxDepth: 4}
	var leftDone atomic.Bool

	defer func() {
		if p := recover(); p == nil {
			t.Errorf("Expected the forked panic to be re-raised in the caller")
		}
		if !leftDone.Load() {
			t.Errorf("The left side should complete before the panic is re-raised")
		}
	}()

	f.fork(1, func() { leftDone.Store(true) }, func() { panic("boom") })
}

func TestMaxForks(t *testing.T) {
	for depth, want := range []int{0, 0, 1, 3, 7, 15} {
		if got := (forker{maxDepth: depth}).maxForks(); got != want {
			t.Errorf("maxForks() at depth %d = %d, expected %d", depth, got, want)
		}
	}
}
