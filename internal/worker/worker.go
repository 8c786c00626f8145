package worker

import (
	"io"
	"log/slog"

	"github.com/wagiedev/divpipe/internal/command"
	"github.com/wagiedev/divpipe/internal/report"
	"github.com/wagiedev/divpipe/internal/transport"
)

// Exit statuses returned by Run.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Identity is the process identity a worker reports on start.
type Identity struct {
	Pid    int
	Parent int
}

// Worker consumes commands from one stream.
type Worker struct {
	log    *slog.Logger
	out    *report.Printer
	errOut *report.Printer
	alert  transport.Raiser
	id     Identity
}

// New creates a worker that prints progress to stdout, failures to stderr,
// and raises alert on a division by zero.
func New(
	log *slog.Logger,
	stdout io.Writer,
	stderr io.Writer,
	alert transport.Raiser,
	id Identity,
) *Worker {
	return &Worker{
		log:    log.With("component", "worker"),
		out:    report.NewPrinter(stdout, "worker"),
		errOut: report.NewPrinter(stderr, "worker"),
		alert:  alert,
		id:     id,
	}
}

// Run processes commands from in until end-of-input or the first division
// by zero, and returns the exit status.
func (w *Worker) Run(in io.Reader) int {
	w.out.Linef("started pid=%d parent=%d", w.id.Pid, w.id.Parent)
	w.log.Info("Worker started", "pid", w.id.Pid, "parent", w.id.Parent)

	scanner := transport.NewLineScanner(in)
	commandCount := 0

	for scanner.Scan() {
		line := scanner.Text()
		if transport.IsBlank(line) {
			continue
		}

		commandCount++
		w.out.Linef("received command %d: %s", commandCount, line)

		outcome := command.Execute(line, &progressTracer{out: w.out})
		w.log.Debug("Command evaluated", "command", commandCount, "outcome", outcome.Kind.String())

		switch outcome.Kind {
		case command.Success:
			w.out.Linef("result: %d", outcome.Result)
			w.out.Blank()

		case command.ParseFailure, command.InsufficientOperands:
			w.out.Linef("error: %v", outcome.Err)

		case command.DivisionByZero:
			return w.fail(commandCount)
		}
	}

	if err := scanner.Err(); err != nil {
		w.log.Error("Command stream read failed", "error", err)
		w.errOut.Linef("read command stream: %v", err)

		return ExitFailure
	}

	w.out.Linef("end of input, shutting down")
	w.log.Info("Worker finished", "commands", commandCount)

	return ExitSuccess
}

// fail reports a division by zero and raises the alert.
func (w *Worker) fail(commandCount int) int {
	w.out.Linef("error: division by zero")
	w.out.Linef("raising alert to orchestrator")
	w.log.Warn("Division by zero, raising alert", "command", commandCount)

	if err := w.alert.Raise(); err != nil {
		w.log.Error("Failed to raise alert", "error", err)
		w.errOut.Linef("raise alert: %v", err)
	}

	return ExitFailure
}

// progressTracer prints evaluation steps.
type progressTracer struct {
	out *report.Printer
}

func (t *progressTracer) Dividend(value int) {
	t.out.Linef("dividend: %d", value)
}

func (t *progressTracer) Divisor(index, divisor int) {
	t.out.Linef("divisor %d: %d", index, divisor)
}

func (t *progressTracer) Intermediate(result int) {
	t.out.Linef("intermediate result: %d", result)
}
