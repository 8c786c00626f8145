// Package config provides configuration types for the divpipe orchestrator
// and worker.
package config

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// DefaultPacing is the pause between two issued commands.
const DefaultPacing = 1 * time.Second

// Options configures the orchestrator and the worker it supervises.
type Options struct {
	// Logger is the slog logger for diagnostic output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// Stdout receives progress lines from the orchestrator and, for an
	// in-process worker, from the worker as well.
	Stdout io.Writer

	// Stderr receives fatal error messages and the worker's error stream.
	Stderr io.Writer

	// Pacing is the fixed pause after each issued command.
	// Zero disables the pause.
	Pacing time.Duration

	// WorkerPath is the explicit path to the divpipe-worker binary.
	// If empty, the binary is searched next to the executable and in PATH.
	WorkerPath string

	// InProcess runs the worker as a goroutine instead of a child process.
	InProcess bool

	// Env provides additional environment variables for the worker process.
	Env map[string]string

	// RunID correlates orchestrator and worker log records.
	// If empty, a new one is generated by FromEnv.
	RunID string
}

// Default returns Options with the standard streams and pacing.
func Default() *Options {
	return &Options{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Pacing: DefaultPacing,
	}
}

// Log returns the configured logger, or a discarding logger if none is set.
func (o *Options) Log() *slog.Logger {
	if o.Logger == nil {
		return NopLogger()
	}

	return o.Logger
}
