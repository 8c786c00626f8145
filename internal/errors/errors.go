package errors

import (
	"errors"
	"fmt"
)

// PipelineError is the base interface for all divpipe errors.
type PipelineError interface {
	error
	IsPipelineError() bool
}

// Compile-time verification that all error types implement PipelineError.
var (
	_ PipelineError = (*SetupError)(nil)
	_ PipelineError = (*WorkerNotFoundError)(nil)
	_ PipelineError = (*ParseError)(nil)
	_ PipelineError = (*InsufficientOperandsError)(nil)
	_ PipelineError = (*WorkerExitError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrDivisionByZero indicates a command hit a zero divisor.
	// It is the only command failure that terminates the worker.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrUsage indicates the program was invoked with the wrong arguments.
	ErrUsage = errors.New("usage: divpipe <command-file>")

	// ErrAlreadyArmed indicates an alert receiver was armed twice on one link.
	ErrAlreadyArmed = errors.New("alert receiver already armed")

	// ErrStreamClosed indicates the command stream was closed before a write.
	ErrStreamClosed = errors.New("command stream closed")
)

// Stage names the setup step that failed.
type Stage string

const (
	// StageOpen is opening the command file.
	StageOpen Stage = "open command file"
	// StageTransport is creating the stream and alert channels.
	StageTransport Stage = "create transport"
	// StageAlert is arming the alert receiver.
	StageAlert Stage = "arm alert"
	// StageSpawn is starting the worker.
	StageSpawn Stage = "spawn worker"
)

// SetupError indicates a fatal failure before commands could be issued.
type SetupError struct {
	Stage Stage
	Err   error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// IsPipelineError implements PipelineError.
func (e *SetupError) IsPipelineError() bool { return true }

// WorkerNotFoundError indicates the worker binary was not found.
type WorkerNotFoundError struct {
	SearchedPaths []string
}

func (e *WorkerNotFoundError) Error() string {
	return fmt.Sprintf("divpipe-worker not found in: %v", e.SearchedPaths)
}

// IsPipelineError implements PipelineError.
func (e *WorkerNotFoundError) IsPipelineError() bool { return true }

// ParseError indicates a command token is not a base-10 integer in range.
type ParseError struct {
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %v", e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsPipelineError implements PipelineError.
func (e *ParseError) IsPipelineError() bool { return true }

// InsufficientOperandsError indicates a command has fewer than two integers.
type InsufficientOperandsError struct {
	Count int
}

func (e *InsufficientOperandsError) Error() string {
	return fmt.Sprintf("need at least 2 integers, got %d", e.Count)
}

// IsPipelineError implements PipelineError.
func (e *InsufficientOperandsError) IsPipelineError() bool { return true }

// WorkerExitError indicates the worker did not finish with a success status.
// ExitCode is -1 when the worker was terminated by a signal.
type WorkerExitError struct {
	Pid      int
	ExitCode int
	Err      error
}

func (e *WorkerExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("worker %d failed (exit %d): %v", e.Pid, e.ExitCode, e.Err)
	}

	return fmt.Sprintf("worker %d failed (exit %d)", e.Pid, e.ExitCode)
}

func (e *WorkerExitError) Unwrap() error {
	return e.Err
}

// IsPipelineError implements PipelineError.
func (e *WorkerExitError) IsPipelineError() bool { return true }
