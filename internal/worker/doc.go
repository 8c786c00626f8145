// Package worker evaluates division commands read from the command stream.
//
// The worker reads newline-separated commands until end-of-input. Parse
// errors and commands with too few operands are reported and skipped. The
// first zero divisor stops the worker: it raises the alert toward the
// orchestrator and returns a failure exit status without reading further.
package worker
