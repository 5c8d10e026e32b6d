package handlers

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jansuraksha/jan-suraksha-api/config"
	"github.com/jansuraksha/jan-suraksha-api/databases/mocks"
	"github.com/jansuraksha/jan-suraksha-api/logging"
	"github.com/jansuraksha/jan-suraksha-api/models"
)

type recordingSender struct {
	to      string
	subject string
	html    string
	text    string
	calls   int
	err     error
}

func (s *recordingSender) Send(toEmail, subject, htmlBody, textBody string) error {
	s.calls++
	s.to = toEmail
	s.subject = subject
	s.html = htmlBody
	s.text = textBody
	return s.err
}

func urgentSnapshot() models.ComplaintSnapshot {
	return models.ComplaintSnapshot{
		ComplaintID:          "64f000000000000000000001",
		ComplaintCode:        "IN/2026/00042",
		CrimeType:            "Assault",
		Location:             "Pune",
		DateFiled:            "February 7, 2026 at 3:04 PM",
		UrgencyJustification: "Immediate danger to the complainant",
	}
}

func TestUrgentNotifierSendsEmail(t *testing.T) {
	sender := &recordingSender{}
	n := &UrgentNotifier{
		Config: &config.Config{
			UrgentEmailEnabled: true,
			AdminEmail:         "ops@example.com",
			AdminPanelBaseURL:  "http://localhost/admin",
		},
		Sender:   sender,
		Attempts: logging.NewAttemptLog("", 0, false),
	}

	n.Notify(urgentSnapshot())

	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "ops@example.com", sender.to)
	assert.Equal(t, "🚨 URGENT Complaint Received - IN/2026/00042", sender.subject)
	assert.Contains(t, sender.html, "IN/2026/00042")
	assert.Contains(t, sender.html, "http://localhost/admin/complaints/64f000000000000000000001")
	assert.Contains(t, sender.text, "Immediate danger to the complainant")
}

func TestUrgentNotifierDisabledSkipsSilently(t *testing.T) {
	sender := &recordingSender{}
	n := &UrgentNotifier{
		Config:   &config.Config{UrgentEmailEnabled: false, AdminEmail: "ops@example.com"},
		Sender:   sender,
		Attempts: logging.NewAttemptLog("", 0, false),
	}

	n.Notify(urgentSnapshot())

	assert.Zero(t, sender.calls)
}

func TestUrgentNotifierPlaceholderAdminSkips(t *testing.T) {
	sender := &recordingSender{}
	n := &UrgentNotifier{
		Config:   &config.Config{UrgentEmailEnabled: true, AdminEmail: config.AdminEmailPlaceholder},
		Sender:   sender,
		Attempts: logging.NewAttemptLog("", 0, false),
	}

	n.Notify(urgentSnapshot())

	assert.Zero(t, sender.calls)
}

func TestUrgentNotifierSwallowsSendFailure(t *testing.T) {
	sender := &recordingSender{err: errors.New("mocked-error")}
	n := &UrgentNotifier{
		Config:   &config.Config{UrgentEmailEnabled: true, AdminEmail: "ops@example.com"},
		Sender:   sender,
		Attempts: logging.NewAttemptLog("", 0, false),
	}

	// must not panic or propagate the sender error
	n.Notify(urgentSnapshot())
	assert.Equal(t, 1, sender.calls)
}

func TestSubmitUrgentComplaintNotifiesBeforeResponding(t *testing.T) {
	insertResult := &mocks.InsertOneResultHelper{}
	insertResult.On("Decode").Return(primitive.NewObjectID())

	db := mocks.NewComplaintDatabase(t)
	db.On("InsertOne", mock.Anything, mock.AnythingOfType("models.Complaint")).Return(insertResult, nil)

	sender := &recordingSender{}
	logPath := filepath.Join(t.TempDir(), "email_attempts.log")
	c := Complaint{
		DB:     db,
		Config: &config.Config{PublicWebBaseURL: "http://localhost"},
		Notifier: &UrgentNotifier{
			Config: &config.Config{
				UrgentEmailEnabled: true,
				AdminEmail:         "ops@example.com",
				AdminPanelBaseURL:  "http://localhost/admin",
			},
			Sender:   sender,
			Attempts: logging.NewAttemptLog(logPath, 1<<20, true),
		},
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := map[string]string{
		"is_anonymous":          "1",
		"crime_type":            "Assault",
		"location":              "Pune",
		"description":           "Details withheld",
		"is_urgent":             "1",
		"urgency_justification": "Immediate danger to the complainant",
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/v1/complaint/anonymous", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	c.SubmitComplaintHandler(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)

	// the email attempt completes inside the request, not on a goroutine that
	// may still be running after the redirect goes out
	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "ops@example.com", sender.to)

	logged, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(logged), "SUCCESS")
	assert.Contains(t, string(logged), "Complaint: ANON-")
}

func TestEmailDateFiled(t *testing.T) {
	filed := time.Date(2026, time.February, 7, 15, 4, 0, 0, time.UTC)
	assert.Equal(t, "February 7, 2026 at 3:04 PM", emailDateFiled(filed))
}
