// Command divpipe-worker evaluates division commands from standard input.
//
// It is started by divpipe with the command stream on standard input and
// the alert channel on file descriptor 3.
package main

import (
	"os"

	"github.com/wagiedev/divpipe/internal/worker"
)

func main() {
	os.Exit(worker.RunProcess())
}
