package supervisor

import (
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/wagiedev/divpipe/internal/config"
	"github.com/wagiedev/divpipe/internal/errors"
)

// WorkerBinary is the file name of the worker executable.
const WorkerBinary = "divpipe-worker"

// Discoverer locates the worker binary.
//
// Discovery searches in the following order:
//  1. The explicit path in WorkerPath (if provided, it is the only candidate)
//  2. The DIVPIPE_WORKER_PATH environment variable
//  3. divpipe-worker next to the running executable
//  4. The system PATH
type Discoverer struct {
	WorkerPath string
	Logger     *slog.Logger
}

// Discover returns the path to the worker binary or
// *errors.WorkerNotFoundError.
func (d *Discoverer) Discover() (string, error) {
	log := d.Logger
	if log == nil {
		log = config.NopLogger()
	}

	if d.WorkerPath != "" {
		log.Debug("Using explicit worker path", "worker_path", d.WorkerPath)

		if isExecutable(d.WorkerPath) {
			return d.WorkerPath, nil
		}

		return "", &errors.WorkerNotFoundError{SearchedPaths: []string{d.WorkerPath}}
	}

	searchedPaths := make([]string, 0, 3)

	if envPath := os.Getenv(config.EnvWorkerPath); envPath != "" {
		searchedPaths = append(searchedPaths, envPath)

		if isExecutable(envPath) {
			log.Debug("Found worker via environment", "path", envPath)

			return envPath, nil
		}
	}

	if exe, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(exe), WorkerBinary)
		searchedPaths = append(searchedPaths, sibling)

		if isExecutable(sibling) {
			log.Debug("Found worker next to executable", "path", sibling)

			return sibling, nil
		}
	}

	if path, err := exec.LookPath(WorkerBinary); err == nil {
		log.Debug("Found worker in PATH", "path", path)

		return path, nil
	}

	searchedPaths = append(searchedPaths, "$PATH")

	log.Warn("Worker binary not found", "searched_paths", searchedPaths)

	return "", &errors.WorkerNotFoundError{SearchedPaths: searchedPaths}
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	return info.Mode().Perm()&0o111 != 0
}
