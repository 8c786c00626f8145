package supervisor

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/wagiedev/divpipe/internal/config"
	"github.com/wagiedev/divpipe/internal/transport"
)

// ProcessSpawner runs the worker binary as a child process.
type ProcessSpawner struct {
	log     *slog.Logger
	options *config.Options
}

// Compile-time verification that ProcessSpawner implements Spawner.
var _ Spawner = (*ProcessSpawner)(nil)

// NewProcessSpawner creates a spawner for the divpipe-worker binary.
func NewProcessSpawner(options *config.Options) *ProcessSpawner {
	return &ProcessSpawner{
		log:     options.Log().With("component", "process_spawner"),
		options: options,
	}
}

// Open creates a link backed by OS pipes.
func (s *ProcessSpawner) Open() (*transport.Link, error) {
	return transport.NewPipeLink(s.options.Log())
}

// Spawn discovers the worker binary and starts it.
//
// The stream's read end becomes the worker's standard input and the alert
// write end becomes file descriptor 3. After a successful start the
// spawner closes its own copies of both, so end-of-file on either channel
// depends only on the worker.
//
// The worker is not bound to ctx: once started it runs until end-of-input
// or its own failure.
func (s *ProcessSpawner) Spawn(_ context.Context, link *transport.Link) (Process, error) {
	discoverer := &Discoverer{
		WorkerPath: s.options.WorkerPath,
		Logger:     s.log,
	}

	path, err := discoverer.Discover()
	if err != nil {
		return nil, fmt.Errorf("discover worker: %w", err)
	}

	stdin, ok := link.WorkerInput().(*os.File)
	if !ok {
		return nil, fmt.Errorf("worker input is %T, need *os.File", link.WorkerInput())
	}

	alertW, ok := link.WorkerAlert().(*os.File)
	if !ok {
		return nil, fmt.Errorf("worker alert is %T, need *os.File", link.WorkerAlert())
	}

	//nolint:gosec // G204: the worker path comes from discovery, not from command input
	cmd := exec.Command(path)
	cmd.Stdin = stdin
	cmd.Stdout = writerOr(s.options.Stdout, os.Stdout)
	cmd.Stderr = writerOr(s.options.Stderr, os.Stderr)
	cmd.ExtraFiles = []*os.File{alertW}
	cmd.Env = s.buildEnvironment()

	if err := cmd.Start(); err != nil {
		s.log.Error("Failed to start worker process", "path", path, "error", err)

		return nil, fmt.Errorf("start process: %w", err)
	}

	s.log.Info("Worker process started", "path", path, "pid", cmd.Process.Pid)

	if err := stderrors.Join(stdin.Close(), alertW.Close()); err != nil {
		s.log.Warn("Failed to release worker-side endpoints", "error", err)
	}

	return &childProcess{log: s.log, cmd: cmd}, nil
}

// buildEnvironment returns the parent environment plus run correlation and
// user-provided variables.
func (s *ProcessSpawner) buildEnvironment() []string {
	env := os.Environ()

	if s.options.RunID != "" {
		env = append(env, fmt.Sprintf("%s=%s", config.EnvRunID, s.options.RunID))
	}

	for key, value := range s.options.Env {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}

	return env
}

func writerOr(w io.Writer, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}

	return w
}

// childProcess is a worker running as an OS process.
type childProcess struct {
	log *slog.Logger
	cmd *exec.Cmd
}

func (p *childProcess) Pid() int {
	return p.cmd.Process.Pid
}

// Wait waits for the child and maps its exit to a ProcessState.
func (p *childProcess) Wait() ProcessState {
	state := ProcessState{Pid: p.Pid(), Status: StatusExited}

	err := p.cmd.Wait()
	if err == nil {
		p.log.Info("Worker process exited", "pid", state.Pid, "exit_code", 0)

		return state
	}

	if exitErr, ok := stderrors.AsType[*exec.ExitError](err); ok && exitErr.Exited() {
		state.ExitCode = exitErr.ExitCode()
		state.Err = err
		p.log.Info("Worker process exited", "pid", state.Pid, "exit_code", state.ExitCode)

		return state
	}

	state.Status = StatusFailed
	state.ExitCode = -1
	state.Err = err
	p.log.Error("Worker process terminated abnormally", "pid", state.Pid, "error", err)

	return state
}
