package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"
)

// Tracking code shapes accepted by the public lookup
var (
	complaintCodePattern = regexp.MustCompile(`^IN/[0-9]{4}/[0-9]{5}$`)
	anonymousCodePattern = regexp.MustCompile(`^ANON-[0-9]{4}-[0-9A-F]{6}$`)
)

// newComplaintCode generates a tracking code for named filings, e.g.
// IN/2026/00042. Codes are random, not sequential, so numbers leak nothing
// about filing volume.
func newComplaintCode(now time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(99999))
	var seq int64 = 1
	if err == nil {
		seq = n.Int64() + 1
	}
	return fmt.Sprintf("IN/%d/%05d", now.Year(), seq)
}

// newAnonymousTrackingID generates a tracking code for anonymous filings,
// e.g. ANON-2026-0A3F9C. The citizen gets exactly one chance to save it.
func newAnonymousTrackingID(now time.Time) string {
	buf := make([]byte, 3)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("ANON-%d-%s", now.Year(), strings.ToUpper(hex.EncodeToString(buf)))
}

// validTrackingCode reports whether code matches either tracking code shape
func validTrackingCode(code string) bool {
	return complaintCodePattern.MatchString(code) || anonymousCodePattern.MatchString(code)
}
