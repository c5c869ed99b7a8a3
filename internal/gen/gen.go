// Package gen produces input sequences for the prefix sum harness.
package gen

import (
	"fmt"
	"math"

	rng "github.com/leesper/go_rng"
)

// Producer fills a slice with input values.
type Producer interface {
	Fill(xs []int64)
}

// Constant fills every position with the same value.
type Constant int64

func (c Constant) Fill(xs []int64) {
	for i := range xs {
		xs[i] = int64(c)
	}
}

// Uniform draws values uniformly from [lo, hi).
type Uniform struct {
	lo, hi int64
	rnd    *rng.UniformGenerator
}

// NewUniform returns a seeded Uniform producer. hi must be greater
// than lo.
func NewUniform(seed, lo, hi int64) (*Uniform, error) {
	if hi <= lo {
		return nil, fmt.Errorf("empty range [%d, %d)", lo, hi)
	}
	return &Uniform{lo: lo, hi: hi, rnd: rng.NewUniformGenerator(seed)}, nil
}

func (u *Uniform) Fill(xs []int64) {
	span := u.hi - u.lo
	for i := range xs {
		xs[i] = u.lo + u.rnd.Int64n(span)
	}
}

// Gaussian draws normally distributed values, rounded to the nearest
// integer and clamped to the int64 range.
type Gaussian struct {
	mean, stddev float64
	rnd          *rng.GaussianGenerator
}

// NewGaussian returns a seeded Gaussian producer.
func NewGaussian(seed int64, mean, stddev float64) (*Gaussian, error) {
	if stddev < 0 || math.IsNaN(stddev) || math.IsNaN(mean) {
		return nil, fmt.Errorf("invalid normal distribution N(%v, %v)", mean, stddev)
	}
	return &Gaussian{mean: mean, stddev: stddev, rnd: rng.NewGaussianGenerator(seed)}, nil
}

func (g *Gaussian) Fill(xs []int64) {
	for i := range xs {
		xs[i] = clamp(math.Round(g.rnd.Gaussian(g.mean, g.stddev)))
	}
}

func clamp(f float64) int64 {
	switch {
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// New returns the producer registered under name. Recognized names
// are "ones", "zeros", "uniform" (values in [lo, hi)) and "gaussian"
// (mean (lo+hi)/2, standard deviation (hi-lo)/4).
func New(name string, seed, lo, hi int64) (Producer, error) {
	switch name {
	case "ones":
		return Constant(1), nil
	case "zeros":
		return Constant(0), nil
	case "uniform":
		u, err := NewUniform(seed, lo, hi)
		if err != nil {
			return nil, err
		}
		return u, nil
	case "gaussian":
		if hi < lo {
			return nil, fmt.Errorf("empty range [%d, %d)", lo, hi)
		}
		mean := float64(lo)/2 + float64(hi)/2
		g, err := NewGaussian(seed, mean, (float64(hi)-float64(lo))/4)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
	return nil, fmt.Errorf("unknown fill mode %q", name)
}
