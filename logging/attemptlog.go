package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// AttemptLog appends one line per notification attempt to a plain text file.
// Once the file grows past maxSize bytes it is renamed aside with a timestamp
// suffix and a fresh file is started. Disabled instances swallow writes.
type AttemptLog struct {
	mu      sync.Mutex
	path    string
	maxSize int64
	enabled bool
}

// NewAttemptLog returns an attempt log writing to path. When enabled is false
// every Append is a no-op.
func NewAttemptLog(path string, maxSize int64, enabled bool) *AttemptLog {
	return &AttemptLog{path: path, maxSize: maxSize, enabled: enabled}
}

// Append records one attempt. Failures to write are logged and otherwise
// ignored; the attempt log must never break the caller.
func (a *AttemptLog) Append(complaintCode string, success bool, message string) {
	if a == nil || !a.enabled {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(a.path), 0o755); err != nil {
		zap.S().Warnf("attempt log dir create failed: %v", err)
		return
	}

	a.rotateIfNeeded()

	status := "FAILED"
	if success {
		status = "SUCCESS"
	}
	line := fmt.Sprintf("[%s] %s - Complaint: %s - %s\n",
		time.Now().Format("2006-01-02 15:04:05"), status, complaintCode, message)

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		zap.S().Warnf("attempt log open failed: %v", err)
		return
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		zap.S().Warnf("attempt log write failed: %v", err)
	}
}

func (a *AttemptLog) rotateIfNeeded() {
	info, err := os.Stat(a.path)
	if err != nil || info.Size() <= a.maxSize {
		return
	}
	backup := a.path + "." + time.Now().Format("2006-01-02-150405") + ".bak"
	if err := os.Rename(a.path, backup); err != nil {
		zap.S().Warnf("attempt log rotation failed: %v", err)
	}
}
