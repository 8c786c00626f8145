package transport

import (
	"sync"
	"sync/atomic"
)

// Alert is a one-bit, payload-less failure flag.
//
// Raise may be called from any goroutine any number of times; only the first
// call changes state. Raise never blocks.
type Alert struct {
	fired atomic.Bool
	once  sync.Once
	done  chan struct{}
}

// NewAlert returns an unfired alert.
func NewAlert() *Alert {
	return &Alert{done: make(chan struct{})}
}

// Raise records that the worker has fatally failed.
func (a *Alert) Raise() {
	a.fired.Store(true)
	a.once.Do(func() {
		close(a.done)
	})
}

// Fired reports whether Raise has been called.
func (a *Alert) Fired() bool {
	return a.fired.Load()
}

// Done returns a channel that is closed when the alert fires.
func (a *Alert) Done() <-chan struct{} {
	return a.done
}
