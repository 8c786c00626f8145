package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/wagiedev/divpipe/internal/config"
	"github.com/wagiedev/divpipe/internal/errors"
	"github.com/wagiedev/divpipe/internal/report"
	"github.com/wagiedev/divpipe/internal/supervisor"
	"github.com/wagiedev/divpipe/internal/transport"
)

// Result summarizes one orchestrator run.
type Result struct {
	Worker        supervisor.ProcessState
	LinesRead     int
	CommandsSent  int
	AlertObserved bool
	StoppedEarly  bool
}

// Orchestrator drives one worker through a command file.
type Orchestrator struct {
	log     *slog.Logger
	out     *report.Printer
	options *config.Options
	spawner supervisor.Spawner
}

// New creates an orchestrator that starts its worker with spawner.
func New(options *config.Options, spawner supervisor.Spawner) *Orchestrator {
	stdout := options.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	return &Orchestrator{
		log:     options.Log().With("component", "orchestrator"),
		out:     report.NewPrinter(stdout, "orchestrator"),
		options: options,
		spawner: spawner,
	}
}

// Run executes the command file at path.
//
// Setup failures are returned as *errors.SetupError before any command is
// issued. Once the worker is running, Run always closes the stream and waits
// for the worker, and the worker's fate is reported in Result.Worker.
func (o *Orchestrator) Run(ctx context.Context, path string) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &errors.SetupError{Stage: errors.StageOpen, Err: err}
	}
	defer file.Close()

	link, err := o.spawner.Open()
	if err != nil {
		return nil, &errors.SetupError{Stage: errors.StageTransport, Err: err}
	}

	alert := transport.NewAlert()

	if err := link.Arm(alert); err != nil {
		_ = link.Close()

		return nil, &errors.SetupError{Stage: errors.StageAlert, Err: err}
	}

	proc, err := o.spawner.Spawn(ctx, link)
	if err != nil {
		_ = link.Close()
		link.Settle()

		return nil, &errors.SetupError{Stage: errors.StageSpawn, Err: err}
	}

	o.out.Linef("pid=%d", os.Getpid())
	o.out.Linef("worker pid=%d", proc.Pid())
	o.out.Linef("command file: %s", path)
	o.out.Blank()
	o.log.Info("Worker spawned", "worker_pid", proc.Pid(), "file", path)

	result := &Result{}
	o.feed(ctx, file, link, alert, result)

	if err := link.EndInput(); err != nil {
		o.log.Warn("Failed to close command stream", "error", err)
	}

	o.log.Debug("Waiting for worker to exit")

	result.Worker = proc.Wait()
	link.Settle()

	if alert.Fired() && !result.AlertObserved {
		o.out.Linef("alert received from worker")
	}

	result.AlertObserved = alert.Fired()

	switch result.Worker.Status {
	case supervisor.StatusExited:
		o.out.Linef("worker exited with code %d", result.Worker.ExitCode)
	default:
		o.out.Linef("worker terminated abnormally: %v", result.Worker.Err)
	}

	o.out.Linef("shutting down")
	o.log.Info("Run finished",
		"lines_read", result.LinesRead,
		"commands_sent", result.CommandsSent,
		"alert", result.AlertObserved,
		"worker", result.Worker.String(),
	)

	return result, nil
}

// feed streams non-blank lines until input ends, the alert fires, or the
// stream rejects a write.
func (o *Orchestrator) feed(
	ctx context.Context,
	file *os.File,
	link *transport.Link,
	alert *transport.Alert,
	result *Result,
) {
	scanner := transport.NewLineScanner(file)

	for scanner.Scan() {
		result.LinesRead++

		line := scanner.Text()
		if transport.IsBlank(line) {
			continue
		}

		// Checked once per line, not atomically with the write: a command
		// sent just before the alert fires may still reach the worker.
		if alert.Fired() {
			o.out.Linef("alert received, no further commands will be issued")
			o.log.Warn("Alert observed, stopping command issuance", "line", result.LinesRead)

			result.AlertObserved = true
			result.StoppedEarly = true

			return
		}

		o.out.Linef("sending command %d: %s", result.LinesRead, line)

		if err := link.Send(line); err != nil {
			o.out.Linef("command stream closed by worker, no further commands will be issued")
			o.log.Warn("Stream write failed", "line", result.LinesRead, "error", err)

			result.StoppedEarly = true

			return
		}

		result.CommandsSent++

		if err := o.pause(ctx); err != nil {
			o.log.Warn("Pacing interrupted, stopping command issuance", "error", err)

			result.StoppedEarly = true

			return
		}
	}

	if err := scanner.Err(); err != nil {
		o.log.Error("Command file read failed", "error", err)
		o.out.Linef("read command file: %v", err)
	}
}

// pause waits for the pacing interval.
func (o *Orchestrator) pause(ctx context.Context) error {
	if o.options.Pacing <= 0 {
		return nil
	}

	timer := time.NewTimer(o.options.Pacing)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("pacing: %w", ctx.Err())
	}
}
