// Package lockfile keeps a second mindful process from starting an operation
// that is already outstanding, such as a summary request.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/mindful/internal/logger"
)

var ErrLocked = errors.New("operation already in progress")

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// Lock is a held lock file. The file holds "<pid>|<executable>".
type Lock struct {
	path string
}

// Acquire creates dir/name exclusively. An existing lock whose process is no
// longer running (or is a different program) is treated as stale and replaced.
func Acquire(dir, name string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := filepath.Join(dir, name)

	content := fmt.Sprintf("%d|%s", getpidFunc(), selfExecutable())
	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if err == nil {
			_, werr := f.WriteString(content)
			cerr := f.Close()
			if werr != nil || cerr != nil {
				os.Remove(path)
				return nil, fmt.Errorf("failed to write lock file: %w", errors.Join(werr, cerr))
			}
			return &Lock{path: path}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create lock file: %w", err)
		}

		holder, alive := readHolder(path)
		if alive {
			return nil, fmt.Errorf("%w (pid %d)", ErrLocked, holder)
		}
		logger.Debug("Removing stale lock file", "path", path, "pid", holder)
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to remove stale lock file: %w", err)
		}
	}
	return nil, ErrLocked
}

// Release removes the lock file. Releasing twice is harmless.
func (l *Lock) Release() error {
	if l == nil || l.path == "" {
		return nil
	}
	err := os.Remove(l.path)
	l.path = ""
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// readHolder parses the lock file and reports whether its process still runs.
// Malformed files are reported as not alive.
func readHolder(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	parts := strings.SplitN(strings.TrimSpace(string(data)), "|", 2)
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return 0, false
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return pid, false
	}
	if len(parts) == 2 && parts[1] != "" && process.Executable() != parts[1] {
		return pid, false
	}
	return pid, true
}

func selfExecutable() string {
	if p, err := findProcessFunc(getpidFunc()); err == nil && p != nil {
		return p.Executable()
	}
	return filepath.Base(os.Args[0])
}
