package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttemptLogAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "email-log.txt")
	l := NewAttemptLog(path, 1024*1024, true)

	l.Append("IN/2026/00042", true, "Email sent successfully")
	l.Append("ANON-2026-A1B2C3", false, "sendgrid error: status 500")

	b, err := os.ReadFile(path)
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "SUCCESS - Complaint: IN/2026/00042")
	assert.Contains(t, lines[1], "FAILED - Complaint: ANON-2026-A1B2C3")
}

func TestAttemptLogDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "email-log.txt")
	l := NewAttemptLog(path, 1024, false)

	l.Append("IN/2026/00001", true, "ok")

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestAttemptLogRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "email-log.txt")
	l := NewAttemptLog(path, 64, true)

	for i := 0; i < 10; i++ {
		l.Append("IN/2026/00007", true, "Email sent successfully to admin@example.org")
	}

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	var backups int
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".bak") {
			backups++
		}
	}
	assert.Greater(t, backups, 0, "expected at least one rotated backup file")

	// live file restarted below the threshold plus one line
	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Less(t, info.Size(), int64(200))
}

func TestAttemptLogNilReceiver(t *testing.T) {
	var l *AttemptLog
	assert.NotPanics(t, func() { l.Append("IN/2026/00001", true, "ok") })
}
