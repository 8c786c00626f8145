package config

import (
	"os"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
)

// Environment variables read by FromEnv and by the worker process.
const (
	EnvPacing     = "DIVPIPE_PACING"
	EnvWorkerPath = "DIVPIPE_WORKER_PATH"
	EnvInProcess  = "DIVPIPE_INPROCESS"
	EnvLogLevel   = "DIVPIPE_LOG_LEVEL"
	EnvRunID      = "DIVPIPE_RUN_ID"
)

// NewRunID returns a fresh, lexically sortable run identifier.
func NewRunID() string {
	return ulid.Make().String()
}

// FromEnv returns Default options with environment overrides applied.
// Invalid values are ignored and the default is kept.
func FromEnv() *Options {
	opts := Default()

	if v := os.Getenv(EnvPacing); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			opts.Pacing = d
		}
	}

	opts.WorkerPath = os.Getenv(EnvWorkerPath)

	if v := os.Getenv(EnvInProcess); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.InProcess = b
		}
	}

	opts.RunID = os.Getenv(EnvRunID)
	if opts.RunID == "" {
		opts.RunID = NewRunID()
	}

	opts.Logger = NewLogger(opts.Stderr, os.Getenv(EnvLogLevel)).With("run_id", opts.RunID)

	return opts
}
