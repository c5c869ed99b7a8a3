package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	prefixsum "github.com/caio/go-prefixsum"
	"github.com/caio/go-prefixsum/internal/ledger"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Size != 10000000 || cfg.ForkDepth != 4 || cfg.Runs != 1 || cfg.Fill != "ones" {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfigRejects(t *testing.T) {
	for _, args := range [][]string{
		{"--runs=0"},
		{"--size=-1"},
		{"--history"},
		{"--in=a", "--saveinput=b"},
	} {
		if _, err := loadConfig(args); err == nil {
			t.Errorf("Expected %v to be rejected", args)
		}
	}
}

func TestBenchRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.bin")
	out := filepath.Join(dir, "out.bin")

	l, err := ledger.Open(filepath.Join(dir, "ledger"))
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	cfg, err := loadConfig([]string{
		"--size=1000", "--fill=uniform", "--runs=3", "--verify",
		"--saveinput=" + in, "--out=" + out, "--debuglevel=off",
	})
	if err != nil {
		t.Fatal(err)
	}
	setLogLevels(cfg.DebugLevel)
	if err := bench(cfg, l); err != nil {
		t.Fatalf("bench() failed: %s", err)
	}

	// same input from the file, sequentially this time
	cfg, _ = loadConfig([]string{"--in=" + in, "--forkdepth=0", "--verify", "--debuglevel=off"})
	if err := bench(cfg, l); err != nil {
		t.Fatalf("bench() over the saved input failed: %s", err)
	}

	runs, err := l.Runs()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 4 {
		t.Fatalf("Expected 4 recorded runs, got %d", len(runs))
	}
	for _, r := range runs {
		if r.InputDigest != runs[0].InputDigest || r.OutputDigest != runs[0].OutputDigest {
			t.Errorf("Runs over the same input disagree: %v", r)
		}
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	sums, err := prefixsum.FromBytes(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(sums) != 1024 {
		t.Errorf("Expected 1024 padded sums in the output file, got %d", len(sums))
	}
}

func TestSummarize(t *testing.T) {
	mean, stddev, median := summarize([]float64{3, 1, 2})
	if mean != 2 || stddev != 1 || median != 2 {
		t.Errorf("summarize() = %v, %v, %v", mean, stddev, median)
	}
}
