package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// allowedEvidenceTypes is the strict allow-list for evidence uploads. The
// extension decides which sniffed MIME types are acceptable.
var allowedEvidenceTypes = map[string][]string{
	"jpg":  {"image/jpeg"},
	"jpeg": {"image/jpeg"},
	"png":  {"image/png"},
	"pdf":  {"application/pdf"},
	"mp4":  {"video/mp4", "video/x-m4v"},
}

const allowedTypesSuffix = " Allowed types: JPG, JPEG, PNG, PDF, MP4."

// evidenceRejectedError marks a user-correctable upload rejection. Anything
// Save returns that is not this type is a storage failure and must stay
// internal.
type evidenceRejectedError struct {
	reason string
}

func (e *evidenceRejectedError) Error() string { return e.reason }

func rejectEvidence(format string, args ...interface{}) error {
	return &evidenceRejectedError{reason: fmt.Sprintf(format, args...)}
}

// EvidenceStore writes uploaded evidence files under a single directory with
// generated names, so original filenames never touch the filesystem.
type EvidenceStore struct {
	Dir     string
	MaxSize int64
}

// Save validates and stores one uploaded evidence file and returns the stored
// filename. The file content is sniffed, never trusted from the request.
func (s EvidenceStore) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > s.MaxSize {
		return "", rejectEvidence("Evidence file is too large (max %dMB).%s", s.MaxSize/(1024*1024), allowedTypesSuffix)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	allowedMimes, ok := allowedEvidenceTypes[ext]
	if !ok {
		return "", rejectEvidence("Evidence file type is not allowed.%s", allowedTypesSuffix)
	}

	detected, err := mimetype.DetectReader(file)
	if err != nil {
		return "", rejectEvidence("Could not read the evidence file.%s", allowedTypesSuffix)
	}
	mimeOK := false
	for _, m := range allowedMimes {
		if detected.Is(m) {
			mimeOK = true
			break
		}
	}
	if !mimeOK {
		return "", rejectEvidence("Evidence file content does not match its type.%s", allowedTypesSuffix)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", rejectEvidence("Could not read the evidence file.%s", allowedTypesSuffix)
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}

	storedName := fmt.Sprintf("evidence_%s.%s", uuid.New().String(), ext)
	dst, err := os.OpenFile(filepath.Join(s.Dir, storedName), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, s.MaxSize+1)); err != nil {
		return "", err
	}
	return storedName, nil
}
