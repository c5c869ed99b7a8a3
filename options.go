package prefixsum

import "fmt"

type scanOption func(*Scanner) error

// DefaultForkDepth is the fork depth used when no ForkDepth option
// is given.
const DefaultForkDepth = 4

// maxForkDepthLimit bounds the number of forked tasks per sweep to
// 2^23 - 1.
const maxForkDepthLimit = 24

// ForkDepth sets the recursion depth below which the sweeps fork
// the right subtree into a separate goroutine.
//
// The root of the tree sits at depth 1, so a fork depth of d allows
// at most 2^(d-1) - 1 forked tasks per sweep, regardless of how many
// elements are being summed. Values of 0 and 1 disable forking
// entirely and run both sweeps on the calling goroutine.
//
// A higher fork depth spreads the work across more goroutines but
// pays the goroutine creation cost more often. The default (4) is
// a good fit for machines with a handful of cores.
//
// The depth must be between 0 and 24 (inclusive), New will return
// an error otherwise.
func ForkDepth(depth int) scanOption {
	return func(s *Scanner) error {
		if depth < 0 || depth > maxForkDepthLimit {
			return fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidForkDepth, depth, maxForkDepthLimit)
		}
		s.maxForkDepth = depth
		return nil
	}
}

// Sequential disables forking. It is equivalent to ForkDepth(0).
func Sequential() scanOption {
	return ForkDepth(0)
}
