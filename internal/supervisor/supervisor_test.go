package supervisor

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wagiedev/divpipe/internal/config"
	"github.com/wagiedev/divpipe/internal/errors"
	"github.com/wagiedev/divpipe/internal/transport"
)

// TestDiscoverer_ExplicitPathNotFound tests that a missing explicit path
// returns WorkerNotFoundError without searching elsewhere.
func TestDiscoverer_ExplicitPathNotFound(t *testing.T) {
	d := &Discoverer{WorkerPath: "/nonexistent/path/to/divpipe-worker"}

	_, err := d.Discover()

	notFound, ok := stderrors.AsType[*errors.WorkerNotFoundError](err)
	require.True(t, ok)
	require.Equal(t, []string{"/nonexistent/path/to/divpipe-worker"}, notFound.SearchedPaths)
}

// TestDiscoverer_ExplicitPath tests discovery with an explicit path.
func TestDiscoverer_ExplicitPath(t *testing.T) {
	fake := filepath.Join(t.TempDir(), WorkerBinary)
	require.NoError(t, os.WriteFile(fake, []byte("#!/bin/sh\nexit 0\n"), 0o755))

	d := &Discoverer{WorkerPath: fake}

	path, err := d.Discover()
	require.NoError(t, err)
	require.Equal(t, fake, path)
}

// TestDiscoverer_NonExecutableRejected tests that a plain file is not used.
func TestDiscoverer_NonExecutableRejected(t *testing.T) {
	fake := filepath.Join(t.TempDir(), WorkerBinary)
	require.NoError(t, os.WriteFile(fake, []byte("data"), 0o644))

	_, err := (&Discoverer{WorkerPath: fake}).Discover()
	require.Error(t, err)
}

// TestDiscoverer_EnvironmentPath tests the DIVPIPE_WORKER_PATH fallback.
func TestDiscoverer_EnvironmentPath(t *testing.T) {
	fake := filepath.Join(t.TempDir(), WorkerBinary)
	require.NoError(t, os.WriteFile(fake, []byte("#!/bin/sh\nexit 0\n"), 0o755))

	t.Setenv(config.EnvWorkerPath, fake)

	path, err := (&Discoverer{}).Discover()
	require.NoError(t, err)
	require.Equal(t, fake, path)
}

func TestProcessState(t *testing.T) {
	tests := []struct {
		name        string
		state       ProcessState
		wantSuccess bool
		wantString  string
	}{
		{
			name:        "exit zero",
			state:       ProcessState{Pid: 10, Status: StatusExited},
			wantSuccess: true,
			wantString:  "pid 10 exited with code 0",
		},
		{
			name:       "exit one",
			state:      ProcessState{Pid: 10, Status: StatusExited, ExitCode: 1},
			wantString: "pid 10 exited with code 1",
		},
		{
			name:       "signalled",
			state:      ProcessState{Pid: 10, Status: StatusFailed, ExitCode: -1, Err: stderrors.New("signal: killed")},
			wantString: "pid 10 terminated abnormally: signal: killed",
		},
		{
			name:       "running",
			state:      ProcessState{Pid: 10, Status: StatusRunning},
			wantString: "pid 10 running",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.wantSuccess, tc.state.Success())
			require.Equal(t, tc.wantString, tc.state.String())
		})
	}
}

func TestNewSpawner_SelectsByOptions(t *testing.T) {
	require.IsType(t, &GoroutineSpawner{}, NewSpawner(&config.Options{InProcess: true}))
	require.IsType(t, &ProcessSpawner{}, NewSpawner(&config.Options{}))
}

// runSpawner drives one worker through spawner with the given commands.
func runSpawner(t *testing.T, spawner Spawner, commands ...string) (ProcessState, *transport.Alert) {
	t.Helper()

	link, err := spawner.Open()
	require.NoError(t, err)

	alert := transport.NewAlert()
	require.NoError(t, link.Arm(alert))

	proc, err := spawner.Spawn(context.Background(), link)
	require.NoError(t, err)
	require.Positive(t, proc.Pid())

	for _, cmd := range commands {
		if err := link.Send(cmd); err != nil {
			break
		}
	}

	require.NoError(t, link.EndInput())

	state := proc.Wait()
	link.Settle()

	return state, alert
}

func TestGoroutineSpawner_Success(t *testing.T) {
	var stdout strings.Builder

	spawner := NewGoroutineSpawner(&config.Options{Stdout: &stdout, Stderr: &stdout})

	state, alert := runSpawner(t, spawner, "20 2 2")

	require.True(t, state.Success())
	require.NoError(t, state.Err)
	require.False(t, alert.Fired())
	require.Contains(t, stdout.String(), "worker: result: 5")
}

func TestGoroutineSpawner_DivisionByZero(t *testing.T) {
	var stdout strings.Builder

	spawner := NewGoroutineSpawner(&config.Options{Stdout: &stdout, Stderr: &stdout})

	state, alert := runSpawner(t, spawner, "10 2 0", "20 2 2")

	require.Equal(t, StatusExited, state.Status)
	require.Equal(t, 1, state.ExitCode)

	exitErr, ok := stderrors.AsType[*errors.WorkerExitError](state.Err)
	require.True(t, ok)
	require.Equal(t, 1, exitErr.ExitCode)

	require.True(t, alert.Fired())
	require.NotContains(t, stdout.String(), "received command 2")
}

func testProcessSpawner(t *testing.T, stdout *strings.Builder) *ProcessSpawner {
	t.Helper()

	exe, err := os.Executable()
	require.NoError(t, err)

	return NewProcessSpawner(&config.Options{
		Stdout:     stdout,
		Stderr:     os.Stderr,
		WorkerPath: exe,
		RunID:      config.NewRunID(),
		Env:        map[string]string{envActAsWorker: "1"},
	})
}

func TestProcessSpawner_Success(t *testing.T) {
	var stdout strings.Builder

	state, alert := runSpawner(t, testProcessSpawner(t, &stdout), "20 2 2", "abc 1", "7")

	require.True(t, state.Success(), state.String())
	require.False(t, alert.Fired())

	out := stdout.String()
	require.Contains(t, out, "worker: result: 5")
	require.Contains(t, out, `worker: error: cannot parse "abc"`)
	require.Contains(t, out, "worker: error: need at least 2 integers, got 1")
	require.Contains(t, out, "worker: end of input, shutting down")
}

func TestProcessSpawner_DivisionByZeroRaisesAlert(t *testing.T) {
	var stdout strings.Builder

	state, alert := runSpawner(t, testProcessSpawner(t, &stdout), "10 2 0")

	require.Equal(t, StatusExited, state.Status)
	require.Equal(t, 1, state.ExitCode)
	require.False(t, state.Success())

	select {
	case <-alert.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("alert not observed")
	}

	require.Contains(t, stdout.String(), "worker: intermediate result: 5")
	require.Contains(t, stdout.String(), "worker: error: division by zero")
}

func TestProcessSpawner_EmptyInput(t *testing.T) {
	var stdout strings.Builder

	state, alert := runSpawner(t, testProcessSpawner(t, &stdout))

	require.True(t, state.Success(), state.String())
	require.False(t, alert.Fired())
}

func TestProcessSpawner_WorkerNotFound(t *testing.T) {
	spawner := NewProcessSpawner(&config.Options{WorkerPath: "/nonexistent/divpipe-worker"})

	link, err := spawner.Open()
	require.NoError(t, err)

	_, err = spawner.Spawn(context.Background(), link)

	_, ok := stderrors.AsType[*errors.WorkerNotFoundError](err)
	require.True(t, ok)
	require.NoError(t, link.Close())
}
