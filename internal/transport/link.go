package transport

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/wagiedev/divpipe/internal/errors"
)

// Link holds both channels between one orchestrator and one worker.
//
// The orchestrator keeps the stream write end and the alert read end. The
// worker side ends are handed to the worker at spawn time through
// WorkerInput and WorkerAlert.
type Link struct {
	log *slog.Logger

	streamR io.ReadCloser
	streamW io.WriteCloser
	alertR  io.ReadCloser
	alertW  io.WriteCloser

	mu          sync.Mutex // Protects stream writes and inputClosed
	inputClosed bool

	armed     bool
	watchDone chan struct{}
}

// NewPipeLink creates a link backed by OS pipes, suitable for a worker
// running as a child process. The worker-side ends are *os.File values.
func NewPipeLink(log *slog.Logger) (*Link, error) {
	streamR, streamW, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("stream pipe: %w", err)
	}

	alertR, alertW, err := os.Pipe()
	if err != nil {
		_ = streamR.Close()
		_ = streamW.Close()

		return nil, fmt.Errorf("alert pipe: %w", err)
	}

	return newLink(log, streamR, streamW, alertR, alertW), nil
}

// NewMemoryLink creates a link backed by in-memory pipes, suitable for a
// worker running as a goroutine in the same process.
func NewMemoryLink(log *slog.Logger) *Link {
	streamR, streamW := io.Pipe()
	alertR, alertW := io.Pipe()

	return newLink(log, streamR, streamW, alertR, alertW)
}

func newLink(
	log *slog.Logger,
	streamR io.ReadCloser,
	streamW io.WriteCloser,
	alertR io.ReadCloser,
	alertW io.WriteCloser,
) *Link {
	return &Link{
		log:       log.With("component", "transport"),
		streamR:   streamR,
		streamW:   streamW,
		alertR:    alertR,
		alertW:    alertW,
		watchDone: make(chan struct{}),
	}
}

// WorkerInput returns the read end of the command stream.
func (l *Link) WorkerInput() io.ReadCloser {
	return l.streamR
}

// WorkerAlert returns the write end of the alert channel.
func (l *Link) WorkerAlert() io.WriteCloser {
	return l.alertW
}

// Arm starts watching the alert channel and raises a on the first byte.
//
// Arm must be called before the worker is started so that an early failure
// cannot be missed. The watcher exits when the alert channel reaches EOF,
// which happens once every worker-side copy of the write end is closed.
func (l *Link) Arm(a *Alert) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.armed {
		return errors.ErrAlreadyArmed
	}

	l.armed = true

	go func() {
		defer close(l.watchDone)
		defer func() { _ = l.alertR.Close() }()

		buf := make([]byte, 1)

		for {
			n, err := l.alertR.Read(buf)
			if n > 0 {
				a.Raise()
			}

			if err != nil {
				if !stderrors.Is(err, io.EOF) {
					l.log.Debug("Alert channel read failed", "error", err)
				}

				return
			}
		}
	}()

	l.log.Debug("Alert receiver armed")

	return nil
}

// Send writes one command line to the stream.
func (l *Link) Send(line string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.inputClosed {
		return errors.ErrStreamClosed
	}

	return WriteLine(l.streamW, line)
}

// EndInput closes the stream write end, signalling end-of-input to the
// worker. It is safe to call more than once.
func (l *Link) EndInput() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.inputClosed {
		return nil
	}

	l.inputClosed = true
	l.log.Debug("Closing command stream")

	return l.streamW.Close()
}

// Settle blocks until the alert watcher has exited. It returns immediately
// if the link was never armed.
func (l *Link) Settle() {
	l.mu.Lock()
	armed := l.armed
	l.mu.Unlock()

	if !armed {
		return
	}

	<-l.watchDone
}

// Close releases every endpoint the orchestrator still holds, including the
// worker-side ends. It is used when the worker could not be started.
func (l *Link) Close() error {
	endErr := l.EndInput()

	return stderrors.Join(endErr, l.streamR.Close(), l.alertW.Close())
}
