package supervisor

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/divpipe/internal/config"
	"github.com/wagiedev/divpipe/internal/errors"
	"github.com/wagiedev/divpipe/internal/transport"
	"github.com/wagiedev/divpipe/internal/worker"
)

// GoroutineSpawner runs the worker as a goroutine in the current process.
// The worker shares no memory with the orchestrator beyond the link.
type GoroutineSpawner struct {
	log     *slog.Logger
	options *config.Options
}

// Compile-time verification that GoroutineSpawner implements Spawner.
var _ Spawner = (*GoroutineSpawner)(nil)

// NewGoroutineSpawner creates an in-process spawner.
func NewGoroutineSpawner(options *config.Options) *GoroutineSpawner {
	return &GoroutineSpawner{
		log:     options.Log().With("component", "goroutine_spawner"),
		options: options,
	}
}

// Open creates a link backed by in-memory pipes.
func (s *GoroutineSpawner) Open() (*transport.Link, error) {
	return transport.NewMemoryLink(s.options.Log()), nil
}

// Spawn starts the worker goroutine. The goroutine owns the worker-side
// ends of link and closes them when the worker returns.
func (s *GoroutineSpawner) Spawn(_ context.Context, link *transport.Link) (Process, error) {
	input := link.WorkerInput()
	raiser := transport.NewRaiser(link.WorkerAlert())

	pid := os.Getpid()
	w := worker.New(
		s.options.Log(),
		writerOr(s.options.Stdout, os.Stdout),
		writerOr(s.options.Stderr, os.Stderr),
		raiser,
		worker.Identity{Pid: pid, Parent: pid},
	)

	p := &goroutineProcess{pid: pid}

	p.group.Go(func() error {
		code := w.Run(input)
		p.code = code

		// Closing the input unblocks a writer that raced the failure.
		if err := stderrors.Join(input.Close(), raiser.Close()); err != nil {
			s.log.Debug("Failed to release worker-side endpoints", "error", err)
		}

		if code != worker.ExitSuccess {
			return &errors.WorkerExitError{Pid: pid, ExitCode: code}
		}

		return nil
	})

	s.log.Info("Worker goroutine started")

	return p, nil
}

// goroutineProcess is a worker running as a goroutine.
type goroutineProcess struct {
	pid   int
	group errgroup.Group
	code  int
}

func (p *goroutineProcess) Pid() int {
	return p.pid
}

// Wait blocks until the worker goroutine returns.
func (p *goroutineProcess) Wait() ProcessState {
	err := p.group.Wait()

	return ProcessState{
		Pid:      p.pid,
		Status:   StatusExited,
		ExitCode: p.code,
		Err:      err,
	}
}
