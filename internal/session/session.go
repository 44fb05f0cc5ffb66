// Package session marks a running postboard with a lockfile so a second
// instance can warn that edits are not shared between windows.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/postboard/internal/constants"
	"github.com/julianstephens/postboard/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	currentPIDFunc  = os.Getpid
)

// ErrMalformedLock is returned when a lockfile cannot be parsed
var ErrMalformedLock = errors.New("lockfile is malformed")

// Lock is a held session lockfile
type Lock struct {
	path string
	pid  int
	// OtherPID is the pid of a live postboard found holding the lock before
	// this one replaced it, or 0.
	OtherPID int
}

// Acquire writes the lockfile in dir. A lock owned by another live postboard
// process is taken over but reported through OtherPID.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	l := &Lock{
		path: filepath.Join(dir, constants.LockfileName),
		pid:  currentPIDFunc(),
	}

	if pid, err := readLock(l.path); err == nil {
		if pid != l.pid && isPostboardProcess(pid) {
			l.OtherPID = pid
			logger.Warn("Another postboard session is running", "pid", pid)
		} else {
			logger.Debug("Replacing stale session lock", "pid", pid)
		}
	} else if !os.IsNotExist(err) {
		logger.Debug("Ignoring unreadable session lock", "error", err)
	}

	content := fmt.Sprintf("%d|%s\n", l.pid, time.Now().UTC().Format(time.RFC3339))
	if err := os.WriteFile(l.path, []byte(content), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return l, nil
}

// Release removes the lockfile if this process still owns it
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	pid, err := readLock(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if pid != l.pid {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// Path returns the lockfile location
func (l *Lock) Path() string {
	return l.path
}

// readLock parses "pid|started". A file caught mid-write reads empty, so
// empty reads are retried a few times.
func readLock(path string) (int, error) {
	var content string
	for attempt := 0; attempt < constants.LockReadAttempts; attempt++ {
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, err
		}
		content = strings.TrimSpace(string(data))
		if content != "" {
			break
		}
		time.Sleep(constants.LockRetryDelay)
	}
	if content == "" {
		return 0, ErrMalformedLock
	}

	parts := strings.SplitN(content, "|", 2)
	pid, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || pid <= 0 {
		return 0, ErrMalformedLock
	}
	return pid, nil
}

func isPostboardProcess(pid int) bool {
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}
