package supervisor

import (
	"context"

	"github.com/wagiedev/divpipe/internal/config"
	"github.com/wagiedev/divpipe/internal/transport"
)

// Spawner creates the transport and starts a worker on it.
type Spawner interface {
	// Open creates the stream and alert channels.
	Open() (*transport.Link, error)

	// Spawn starts a worker connected to the worker-side ends of link.
	// On error the caller still owns link and must close it.
	Spawn(ctx context.Context, link *transport.Link) (Process, error)
}

// Process is a started worker.
type Process interface {
	// Pid returns the worker's process identifier.
	Pid() int

	// Wait blocks until the worker terminates and returns its final state.
	Wait() ProcessState
}

// NewSpawner returns the spawner selected by options.
func NewSpawner(options *config.Options) Spawner {
	if options.InProcess {
		return NewGoroutineSpawner(options)
	}

	return NewProcessSpawner(options)
}
