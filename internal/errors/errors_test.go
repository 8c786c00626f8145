package errors

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupError(t *testing.T) {
	root := errors.New("no such file")
	err := &SetupError{Stage: StageOpen, Err: root}

	require.Equal(t, "open command file: no such file", err.Error())
	require.ErrorIs(t, err, root)
	require.True(t, err.IsPipelineError())
}

func TestWorkerNotFoundError(t *testing.T) {
	err := &WorkerNotFoundError{
		SearchedPaths: []string{"/opt/divpipe-worker", "$PATH"},
	}

	require.Equal(
		t,
		"divpipe-worker not found in: [/opt/divpipe-worker $PATH]",
		err.Error(),
	)
	require.True(t, err.IsPipelineError())
}

func TestParseError(t *testing.T) {
	err := &ParseError{Token: "abc", Err: strconv.ErrSyntax}

	require.Equal(t, `cannot parse "abc": invalid syntax`, err.Error())
	require.ErrorIs(t, err, strconv.ErrSyntax)
	require.True(t, err.IsPipelineError())
}

func TestInsufficientOperandsError(t *testing.T) {
	err := &InsufficientOperandsError{Count: 1}

	require.Equal(t, "need at least 2 integers, got 1", err.Error())
	require.True(t, err.IsPipelineError())
}

func TestWorkerExitError_WithUnderlyingError(t *testing.T) {
	root := errors.New("exit status 1")
	err := &WorkerExitError{Pid: 42, ExitCode: 1, Err: root}

	require.Equal(t, "worker 42 failed (exit 1): exit status 1", err.Error())
	require.ErrorIs(t, err, root)
	require.True(t, err.IsPipelineError())
}

func TestWorkerExitError_WithoutUnderlyingError(t *testing.T) {
	err := &WorkerExitError{Pid: 7, ExitCode: -1}

	require.Equal(t, "worker 7 failed (exit -1)", err.Error())
	require.NoError(t, err.Unwrap())
}

func TestErrorsAsType_FindsWrappedSetupError(t *testing.T) {
	wrapped := fmt.Errorf("run: %w", &SetupError{Stage: StageSpawn, Err: ErrUsage})

	setupErr, ok := errors.AsType[*SetupError](wrapped)
	require.True(t, ok)
	require.Equal(t, StageSpawn, setupErr.Stage)
	require.ErrorIs(t, wrapped, ErrUsage)
}
