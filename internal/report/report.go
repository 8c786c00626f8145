// Package report writes human-readable progress lines.
package report

import (
	"fmt"
	"io"
	"sync"
)

// Printer writes prefixed progress lines to an io.Writer.
// It is safe for concurrent use.
type Printer struct {
	mu     sync.Mutex
	w      io.Writer
	prefix string
}

// NewPrinter returns a Printer that starts every line with "prefix: ".
func NewPrinter(w io.Writer, prefix string) *Printer {
	return &Printer{w: w, prefix: prefix}
}

// Linef formats and writes one line. Write errors are ignored; progress
// output is best effort.
func (p *Printer) Linef(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, _ = fmt.Fprintf(p.w, "%s: %s\n", p.prefix, fmt.Sprintf(format, args...))
}

// Blank writes an empty separator line.
func (p *Printer) Blank() {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, _ = io.WriteString(p.w, "\n")
}
