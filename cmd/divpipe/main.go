// Command divpipe streams a command file to a divpipe-worker process and
// reports how the worker finished.
//
// Usage:
//
//	divpipe <command-file>
//
// Each non-blank line of the command file holds a dividend followed by
// divisors. The worker divides left to right. A zero divisor makes the
// worker raise an alert and exit with a failure status; divpipe then stops
// issuing commands, waits for the worker, and exits nonzero.
//
// Environment:
//
//	DIVPIPE_PACING       pause between commands (default 1s)
//	DIVPIPE_WORKER_PATH  path to the divpipe-worker binary
//	DIVPIPE_INPROCESS    run the worker as a goroutine
//	DIVPIPE_LOG_LEVEL    debug, info, warn or error (default: no logging)
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/wagiedev/divpipe/internal/config"
	"github.com/wagiedev/divpipe/internal/errors"
	"github.com/wagiedev/divpipe/internal/orchestrator"
	"github.com/wagiedev/divpipe/internal/supervisor"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, errors.ErrUsage)

		return 1
	}

	opts := config.FromEnv()
	opts.Stdout = stdout
	opts.Stderr = stderr

	o := orchestrator.New(opts, supervisor.NewSpawner(opts))

	result, err := o.Run(context.Background(), args[0])
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)

		return 1
	}

	if !result.Worker.Success() {
		return 1
	}

	return 0
}
