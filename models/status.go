package models

import (
	"strings"

	"go.uber.org/zap"
)

// Canonical complaint status buckets. The lifecycle is
// submitted -> in_progress -> resolved/closed.
const (
	StatusSubmitted  = "submitted"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusClosed     = "closed"
)

// statusSynonyms maps legacy/loose status strings onto the canonical buckets.
// Folding unknown values into submitted is deliberate policy: a row must never
// vanish from the breakdown because someone typed "Pendng" into the database.
var statusSynonyms = map[string]string{
	"submitted":   StatusSubmitted,
	"pending":     StatusSubmitted,
	"new":         StatusSubmitted,
	"in_progress": StatusInProgress,
	"inprogress":  StatusInProgress,
	"in progress": StatusInProgress,
	"processing":  StatusInProgress,
	"resolved":    StatusResolved,
	"completed":   StatusResolved,
	"done":        StatusResolved,
	"closed":      StatusClosed,
	"rejected":    StatusClosed,
	"dismissed":   StatusClosed,
}

// CanonicalStatus folds a raw status string into one of the four canonical
// buckets, warning on values it has never seen.
func CanonicalStatus(raw string) string {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", "_"))
	// entries with literal spaces are matched before the underscore rewrite
	if canonical, ok := statusSynonyms[key]; ok {
		return canonical
	}
	if canonical, ok := statusSynonyms[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return canonical
	}
	zap.S().Warnf("unknown complaint status %q, folding into %v", raw, StatusSubmitted)
	return StatusSubmitted
}

// IsCanonicalStatus reports whether s is one of the four canonical buckets.
// Admin transitions accept only these values.
func IsCanonicalStatus(s string) bool {
	switch s {
	case StatusSubmitted, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// TerminalStatus reports whether s ends the lifecycle and should stamp a
// resolution timestamp.
func TerminalStatus(s string) bool {
	return s == StatusResolved || s == StatusClosed
}
