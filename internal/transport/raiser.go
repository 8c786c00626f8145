package transport

import (
	"fmt"
	"io"
	"sync"
)

// alertByte is the single byte written on the alert channel.
const alertByte = 0x01

// Raiser is the worker-side half of the alert channel.
type Raiser interface {
	// Raise delivers the alert. Calls after the first return nil.
	Raise() error
	// Close releases the alert channel without raising.
	Close() error
}

type writerRaiser struct {
	w    io.WriteCloser
	once sync.Once
}

// Compile-time verification that writerRaiser implements Raiser.
var _ Raiser = (*writerRaiser)(nil)

// NewRaiser returns a Raiser that writes a single byte to w.
func NewRaiser(w io.WriteCloser) Raiser {
	return &writerRaiser{w: w}
}

func (r *writerRaiser) Raise() error {
	var err error

	r.once.Do(func() {
		if _, werr := r.w.Write([]byte{alertByte}); werr != nil {
			err = fmt.Errorf("write alert: %w", werr)
		}
	})

	return err
}

func (r *writerRaiser) Close() error {
	return r.w.Close()
}
