// Command prefixsum times the parallel prefix sum over a generated
// or stored input and reports a few positions of the result.
package main

import (
	"errors"
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"

	"github.com/caio/go-prefixsum/internal/ledger"
)

type config struct {
	Size      int    `short:"n" long:"size" description:"Number of input elements" default:"10000000"`
	Fill      string `short:"f" long:"fill" description:"Input values (ones, zeros, uniform, gaussian)" default:"ones"`
	Seed      int64  `long:"seed" description:"Seed for the uniform and gaussian fills" default:"1"`
	Low       int64  `long:"low" description:"Lower bound of random values (inclusive)" default:"-1000"`
	High      int64  `long:"high" description:"Upper bound of random values (exclusive)" default:"1000"`
	ForkDepth int    `short:"d" long:"forkdepth" description:"Recursion depth below which subtrees are forked (0 = sequential)" default:"4"`
	Runs      int    `short:"r" long:"runs" description:"Number of timed runs" default:"1"`
	Verify    bool   `long:"verify" description:"Check every result against a sequential Fenwick list"`

	InFile    string `long:"in" description:"Read the input from a file instead of generating it"`
	OutFile   string `long:"out" description:"Write the prefix sums of the last run to a file"`
	SaveInput string `long:"saveinput" description:"Write the generated input to a file"`

	LedgerDir string `long:"ledger" description:"Directory of the run history database"`
	History   bool   `long:"history" description:"List the recorded runs and exit (requires --ledger)"`

	DebugLevel string `long:"debuglevel" description:"Logging level (trace, debug, info, warn, error, critical, off)" default:"info"`
	LogFile    string `long:"logfile" description:"Also write the log to this file, rotating it as it grows"`
}

func loadConfig(args []string) (*config, error) {
	cfg := config{}
	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	if cfg.Size < 0 {
		return nil, fmt.Errorf("size must be >= 0, got %d", cfg.Size)
	}
	if cfg.Runs < 1 {
		return nil, fmt.Errorf("runs must be >= 1, got %d", cfg.Runs)
	}
	if cfg.History && cfg.LedgerDir == "" {
		return nil, errors.New("--history needs --ledger")
	}
	if cfg.InFile != "" && cfg.SaveInput != "" {
		return nil, errors.New("--saveinput makes no sense with --in")
	}
	return &cfg, nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) {
			// go-flags has already printed it
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	if cfg.LogFile != "" {
		if err := initLogRotator(cfg.LogFile); err != nil {
			return err
		}
		defer logRotator.Close()
	}
	if err := setLogLevels(cfg.DebugLevel); err != nil {
		return err
	}

	var l *ledger.Ledger
	if cfg.LedgerDir != "" {
		l, err = ledger.Open(cfg.LedgerDir)
		if err != nil {
			return fmt.Errorf("opening ledger: %w", err)
		}
		defer l.Close()
	}

	if cfg.History {
		return printHistory(l)
	}
	return bench(cfg, l)
}

func printHistory(l *ledger.Ledger) error {
	runs, err := l.Runs()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		log.Info("No runs recorded")
		return nil
	}
	for i, r := range runs {
		log.Infof("%4d %v", i, r)
	}
	return nil
}
