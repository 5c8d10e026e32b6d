package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/jansuraksha/jan-suraksha-api/config"
	"github.com/jansuraksha/jan-suraksha-api/databases/mocks"
	"github.com/jansuraksha/jan-suraksha-api/models"
)

type recordingSender struct {
	to      string
	subject string
	text    string
	calls   int
}

func (s *recordingSender) Send(toEmail, subject, htmlBody, textBody string) error {
	s.calls++
	s.to = toEmail
	s.subject = subject
	s.text = textBody
	return nil
}

func TestSendUrgentDigest(t *testing.T) {
	cursor := &mocks.CursorHelper{}
	cursor.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		list := args.Get(0).(*[]models.Complaint)
		*list = []models.Complaint{
			{ComplaintCode: "IN/2026/00042", CrimeType: "Assault", Status: models.StatusSubmitted},
			{ComplaintCode: "ANON-2026-0A3F9C", CrimeType: "Harassment", Status: models.StatusInProgress},
			// legacy terminal synonyms never appear in the digest
			{ComplaintCode: "IN/2025/00007", CrimeType: "Theft", Status: "Completed"},
			{ComplaintCode: "IN/2025/00008", CrimeType: "Fraud", Status: "Done"},
			{ComplaintCode: "IN/2025/00009", CrimeType: "Theft", Status: models.StatusClosed},
		}
	})

	db := mocks.NewComplaintDatabase(t)
	db.On("Find", mock.Anything, bson.M{"isUrgent": true}).Return(cursor, nil)

	sender := &recordingSender{}
	s := NewScheduler(db, &config.Config{
		UrgentEmailEnabled: true,
		AdminEmail:         "ops@example.com",
		AdminPanelBaseURL:  "http://localhost/admin",
	}, sender)

	s.sendUrgentDigest()

	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "ops@example.com", sender.to)
	assert.Equal(t, "Daily Digest: 2 urgent complaints still open", sender.subject)
	assert.Contains(t, sender.text, "IN/2026/00042")
	assert.Contains(t, sender.text, "ANON-2026-0A3F9C")
	assert.NotContains(t, sender.text, "IN/2025/00007")
	assert.NotContains(t, sender.text, "IN/2025/00008")
	assert.NotContains(t, sender.text, "IN/2025/00009")
	assert.Contains(t, sender.text, "http://localhost/admin")
}

func TestSendUrgentDigestAllTerminal(t *testing.T) {
	cursor := &mocks.CursorHelper{}
	cursor.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		list := args.Get(0).(*[]models.Complaint)
		*list = []models.Complaint{
			{ComplaintCode: "IN/2025/00007", CrimeType: "Theft", Status: "Completed"},
		}
	})

	db := mocks.NewComplaintDatabase(t)
	db.On("Find", mock.Anything, bson.M{"isUrgent": true}).Return(cursor, nil)

	sender := &recordingSender{}
	s := NewScheduler(db, &config.Config{
		UrgentEmailEnabled: true,
		AdminEmail:         "ops@example.com",
	}, sender)

	s.sendUrgentDigest()

	assert.Zero(t, sender.calls)
}

func TestSendUrgentDigestNothingOpen(t *testing.T) {
	cursor := &mocks.CursorHelper{}
	cursor.On("Decode", mock.Anything).Return(nil)

	db := mocks.NewComplaintDatabase(t)
	db.On("Find", mock.Anything, mock.Anything).Return(cursor, nil)

	sender := &recordingSender{}
	s := NewScheduler(db, &config.Config{
		UrgentEmailEnabled: true,
		AdminEmail:         "ops@example.com",
	}, sender)

	s.sendUrgentDigest()

	assert.Zero(t, sender.calls)
}

func TestSendUrgentDigestSkippedWhenUnconfigured(t *testing.T) {
	sender := &recordingSender{}

	disabled := NewScheduler(mocks.NewComplaintDatabase(t), &config.Config{
		UrgentEmailEnabled: false,
		AdminEmail:         "ops@example.com",
	}, sender)
	disabled.sendUrgentDigest()
	assert.Zero(t, sender.calls)

	placeholder := NewScheduler(mocks.NewComplaintDatabase(t), &config.Config{
		UrgentEmailEnabled: true,
		AdminEmail:         config.AdminEmailPlaceholder,
	}, sender)
	placeholder.sendUrgentDigest()
	assert.Zero(t, sender.calls)
}
