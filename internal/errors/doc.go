// Package errors defines error types for the divpipe orchestrator and worker.
//
// This package provides structured error types for setup failures, per-line
// command failures, and worker termination. All error types support error
// unwrapping and can be checked using errors.Is, errors.As, and errors.AsType.
package errors
