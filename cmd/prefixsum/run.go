package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	prefixsum "github.com/caio/go-prefixsum"
	"github.com/caio/go-prefixsum/internal/fenwick"
	"github.com/caio/go-prefixsum/internal/gen"
	"github.com/caio/go-prefixsum/internal/ledger"
)

// source returns a fresh copy of the same input for every run. The
// copies are allocated with room for the padding.
type source func() []int64

func newSource(cfg *config) (source, error) {
	var stored []int64
	if cfg.InFile != "" {
		data, err := os.ReadFile(cfg.InFile)
		if err != nil {
			return nil, err
		}
		stored, err = prefixsum.FromBytes(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", cfg.InFile, err)
		}
	} else {
		producer, err := gen.New(cfg.Fill, cfg.Seed, cfg.Low, cfg.High)
		if err != nil {
			return nil, err
		}
		stored = make([]int64, cfg.Size)
		producer.Fill(stored)
		log.Debugf("Generated %d %s values", cfg.Size, cfg.Fill)
	}

	return func() []int64 {
		xs := make([]int64, len(stored), prefixsum.PaddedLen(len(stored)))
		copy(xs, stored)
		return xs
	}, nil
}

func writeSequence(path string, xs []int64) error {
	data, err := prefixsum.AsBytes(xs)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func bench(cfg *config, l *ledger.Ledger) error {
	scanner, err := prefixsum.New(prefixsum.ForkDepth(cfg.ForkDepth))
	if err != nil {
		return err
	}
	next, err := newSource(cfg)
	if err != nil {
		return err
	}

	var (
		elapsed = make([]float64, 0, cfg.Runs)
		tree    *prefixsum.Tree
		prefix  []int64
	)
	for i := 0; i < cfg.Runs; i++ {
		input := next()
		if i == 0 && cfg.SaveInput != "" {
			if err := writeSequence(cfg.SaveInput, input); err != nil {
				return fmt.Errorf("saving input: %w", err)
			}
		}
		output := make([]int64, len(input), cap(input))

		start := time.Now()
		tree = scanner.Build(input)
		prefix, err = tree.PrefixSums(output)
		took := time.Since(start)
		if err != nil {
			return err
		}

		elapsed = append(elapsed, float64(took)/float64(time.Millisecond))
		log.Debugf("Run %d took %v", i, took)

		original := tree.Leaves()[:tree.Size()]
		if cfg.Verify {
			if at := fenwick.New(original...).Mismatch(prefix); at >= 0 {
				return fmt.Errorf("run %d: wrong prefix sum at position %d", i, at)
			}
			log.Debugf("Run %d verified", i)
		}
		if l != nil {
			err := l.Record(ledger.Run{
				Time:         start,
				Size:         tree.Size(),
				Leaves:       tree.Len(),
				ForkDepth:    scanner.ForkDepth(),
				Elapsed:      took,
				InputDigest:  ledger.Digest(original),
				OutputDigest: ledger.Digest(prefix),
			})
			if errors.Is(err, ledger.ErrNondeterministic) {
				log.Errorf("Run %d: %v", i, err)
			} else if err != nil {
				return fmt.Errorf("recording run: %w", err)
			}
		}
	}

	report(tree, prefix, elapsed)

	if cfg.OutFile != "" {
		if err := writeSequence(cfg.OutFile, prefix); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}

func report(tree *prefixsum.Tree, prefix []int64, elapsed []float64) {
	if len(elapsed) == 1 {
		log.Infof("Elapsed time is: %.3fms", elapsed[0])
	} else {
		mean, stddev, median := summarize(elapsed)
		log.Infof("Elapsed time over %d runs: mean %.3fms, stddev %.3fms, median %.3fms",
			len(elapsed), mean, stddev, median)
	}

	n := tree.Size()
	log.Infof("N is %d but size is padded to %d", n, len(prefix))
	log.Infof("prefix[0] is %d", prefix[0])
	if n > 0 {
		log.Infof("prefix[%d] is %d", n-1, prefix[n-1])
	}
	log.Infof("prefix[%d] is %d", len(prefix)-1, prefix[len(prefix)-1])
}

func summarize(ms []float64) (mean, stddev, median float64) {
	mean = stat.Mean(ms, nil)
	if len(ms) > 1 {
		stddev = stat.StdDev(ms, nil)
	}
	sorted := append([]float64(nil), ms...)
	sort.Float64s(sorted)
	median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return mean, stddev, median
}
