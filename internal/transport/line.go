package transport

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineSize is the maximum length of one command line.
const maxLineSize = 1024 * 1024 // 1MB

// WriteLine writes line followed by a newline to w in a single write.
func WriteLine(w io.Writer, line string) error {
	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write line: %w", err)
	}

	return nil
}

// NewLineScanner returns a scanner over newline-separated lines of r.
// A final line without a newline is still returned, and a trailing
// carriage return is removed.
func NewLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return scanner
}

// IsBlank reports whether line holds no tokens.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
