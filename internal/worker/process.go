package worker

import (
	"os"

	"github.com/wagiedev/divpipe/internal/config"
	"github.com/wagiedev/divpipe/internal/transport"
)

// AlertFD is the file descriptor of the alert channel in a worker process.
// It is the first entry of exec.Cmd.ExtraFiles.
const AlertFD = 3

// RunProcess runs a worker over the process's own standard input and the
// inherited alert descriptor, and returns the exit status.
func RunProcess() int {
	runID := os.Getenv(config.EnvRunID)
	log := config.NewLogger(os.Stderr, os.Getenv(config.EnvLogLevel)).With("run_id", runID)

	alertFile := os.NewFile(uintptr(AlertFD), "alert")
	if alertFile == nil {
		log.Error("Alert descriptor unavailable", "fd", AlertFD)

		return ExitFailure
	}

	raiser := transport.NewRaiser(alertFile)
	defer func() { _ = raiser.Close() }()

	w := New(log, os.Stdout, os.Stderr, raiser, Identity{
		Pid:    os.Getpid(),
		Parent: os.Getppid(),
	})

	return w.Run(os.Stdin)
}
