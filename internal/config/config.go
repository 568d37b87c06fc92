// Package config handles application configuration and setup
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings. A nil output
// logs to stdout.
func CreateLogger(debug, quiet bool, output io.Writer) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Output = output
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// LogOutput returns the writer used for logging while the emulator runs and
// a function closing it. The terminal frontend draws on the same screen as
// the console logger, so without a log file its output is discarded. A nil
// writer keeps the console.
func LogOutput(terminal bool, path string) (io.Writer, func() error, error) {
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("creating log file: %w", err)
		}
		return f, f.Close, nil
	}

	noop := func() error { return nil }
	if terminal {
		return io.Discard, noop, nil
	}
	return nil, noop, nil
}
