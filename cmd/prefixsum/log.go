package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"

	prefixsum "github.com/caio/go-prefixsum"
)

// logWriter implements an io.Writer that outputs to both standard
// output and the write-end pipe of an initialized log rotator.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

var (
	backendLog = btclog.NewBackend(logWriter{})

	// logRotator is nil unless a log file was requested.
	logRotator *rotator.Rotator

	log     = backendLog.Logger("MAIN")
	scanLog = backendLog.Logger("SCAN")
)

func init() {
	prefixsum.UseLogger(scanLog)
}

var subsystemLoggers = map[string]btclog.Logger{
	"MAIN": log,
	"SCAN": scanLog,
}

// initLogRotator initializes the logging rotater to write logs to
// logFile and create roll files in the same directory.
func initLogRotator(logFile string) error {
	if logDir, _ := filepath.Split(logFile); logDir != "" {
		if err := os.MkdirAll(logDir, 0700); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return fmt.Errorf("failed to create file rotator: %w", err)
	}
	logRotator = r
	return nil
}

// setLogLevels sets the level of every subsystem logger.
func setLogLevels(level string) error {
	lvl, ok := btclog.LevelFromString(level)
	if !ok {
		return fmt.Errorf("invalid debug level %q", level)
	}
	for _, logger := range subsystemLoggers {
		logger.SetLevel(lvl)
	}
	return nil
}
