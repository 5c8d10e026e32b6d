package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/jansuraksha/jan-suraksha-api/api/handlers"
	"github.com/jansuraksha/jan-suraksha-api/config"
	"github.com/jansuraksha/jan-suraksha-api/databases"
	"github.com/jansuraksha/jan-suraksha-api/models"
	templates "github.com/jansuraksha/jan-suraksha-api/templates/html"
)

// Scheduler handles periodic background jobs for the complaint system
type Scheduler struct {
	cron   *cron.Cron
	CDB    databases.ComplaintDatabase
	Config *config.Config
	Sender handlers.MailSender
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cDB databases.ComplaintDatabase, conf *config.Config, sender handlers.MailSender) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		CDB:    cDB,
		Config: conf,
		Sender: sender,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Digest of unresolved urgent complaints daily at 3 AM UTC
	_, err := s.cron.AddFunc("0 3 * * *", s.sendUrgentDigest)
	if err != nil {
		zap.S().Errorw("failed to register urgent digest job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Complaint scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Complaint scheduler stopped")
}

// sendUrgentDigest mails the admin a summary of urgent complaints that are
// still open. Skipped entirely when notifications are off or the admin
// address was never configured.
func (s *Scheduler) sendUrgentDigest() {
	if !s.Config.UrgentEmailEnabled {
		zap.S().Debug("Urgent digest skipped, email notifications disabled")
		return
	}
	if s.Config.AdminEmail == "" || s.Config.AdminEmail == config.AdminEmailPlaceholder {
		zap.S().Warn("Urgent digest skipped, admin email not configured")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	zap.S().Info("Running urgent digest job")

	// status is filtered in memory, not in the query: legacy rows carry
	// synonym strings ("Completed", "Done") that only the canonical folding
	// understands
	cursor, err := s.CDB.Find(ctx, bson.M{"isUrgent": true})
	if err != nil {
		zap.S().Errorw("failed to find urgent complaints", "error", err)
		return
	}

	var urgent []models.Complaint
	if err := cursor.Decode(&urgent); err != nil {
		zap.S().Errorw("failed to decode urgent complaints", "error", err)
		return
	}

	var open []models.Complaint
	for _, c := range urgent {
		if !models.TerminalStatus(models.CanonicalStatus(c.Status)) {
			open = append(open, c)
		}
	}
	if len(open) == 0 {
		zap.S().Info("Urgent digest job found nothing open, no email sent")
		return
	}

	body := fmt.Sprintf("There are %d urgent complaints still open:\n\n", len(open))
	for _, c := range open {
		body += fmt.Sprintf("%s - %s - %s (filed %s)\n",
			c.ComplaintCode,
			c.CrimeType,
			models.CanonicalStatus(c.Status),
			c.CreatedAt.Time().UTC().Format("2006-01-02"))
	}
	body += fmt.Sprintf("\nReview them in the admin panel: %s", s.Config.AdminPanelBaseURL)

	subject := fmt.Sprintf("Daily Digest: %d urgent complaints still open", len(open))
	htmlBody := templates.RenderGenericEmail(subject, body)

	if err := s.Sender.Send(s.Config.AdminEmail, subject, htmlBody, body); err != nil {
		zap.S().Errorw("failed to send urgent digest", "error", err)
		return
	}
	zap.S().Infow("urgent digest sent", "openUrgent", len(open))
}
