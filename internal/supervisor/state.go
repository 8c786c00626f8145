package supervisor

import "fmt"

// Status is the lifecycle state of a supervised worker.
type Status string

const (
	// StatusRunning indicates the worker has been started and not yet waited on.
	StatusRunning Status = "running"
	// StatusExited indicates the worker exited on its own with an exit code.
	StatusExited Status = "exited"
	// StatusFailed indicates the worker was terminated abnormally or could
	// not be waited on.
	StatusFailed Status = "failed"
)

// ProcessState is the orchestrator's view of the worker.
type ProcessState struct {
	Pid      int
	Status   Status
	ExitCode int
	Err      error
}

// Success reports whether the worker exited with status zero.
func (s ProcessState) Success() bool {
	return s.Status == StatusExited && s.ExitCode == 0
}

func (s ProcessState) String() string {
	switch s.Status {
	case StatusExited:
		return fmt.Sprintf("pid %d exited with code %d", s.Pid, s.ExitCode)
	case StatusFailed:
		return fmt.Sprintf("pid %d terminated abnormally: %v", s.Pid, s.Err)
	default:
		return fmt.Sprintf("pid %d %s", s.Pid, s.Status)
	}
}
