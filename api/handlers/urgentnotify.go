package handlers

import (
	"fmt"
	"os"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/jansuraksha/jan-suraksha-api/config"
	"github.com/jansuraksha/jan-suraksha-api/logging"
	"github.com/jansuraksha/jan-suraksha-api/models"
	templates "github.com/jansuraksha/jan-suraksha-api/templates/html"
)

// MailSender sends one email to one recipient. Implementations must not
// retain the bodies after Send returns.
type MailSender interface {
	Send(toEmail, subject, htmlBody, textBody string) error
}

// SendGridSender delivers mail through the sendgrid API
type SendGridSender struct {
	FromName    string
	FromAddress string
}

// Send delivers a single email via sendgrid
func (s SendGridSender) Send(toEmail, subject, htmlBody, textBody string) error {
	from := mail.NewEmail(s.FromName, s.FromAddress)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, textBody, htmlBody)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	resp, err := client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid responded with status %d", resp.StatusCode)
	}
	return nil
}

// UrgentNotifier emails administrators about urgent complaints after the row
// has been committed. Notification failure must never surface to the citizen:
// every path logs the attempt and swallows the error.
type UrgentNotifier struct {
	Config   *config.Config
	Sender   MailSender
	Attempts *logging.AttemptLog
}

// Notify sends the urgent complaint notification for a committed complaint.
// Safe to call from a goroutine; it never panics and never returns.
func (n *UrgentNotifier) Notify(snapshot models.ComplaintSnapshot) {
	defer func() {
		if r := recover(); r != nil {
			zap.S().Errorw("urgent notification panicked", "complaintCode", snapshot.ComplaintCode, "panic", r)
		}
	}()

	if !n.Config.UrgentEmailEnabled {
		zap.S().Infow("urgent email notifications disabled, skipping", "complaintCode", snapshot.ComplaintCode)
		return
	}

	if n.Config.AdminEmail == "" || n.Config.AdminEmail == config.AdminEmailPlaceholder {
		n.Attempts.Append(snapshot.ComplaintCode, false, "Admin email not configured, set ADMIN_EMAIL")
		zap.S().Warnw("admin email not configured, urgent notification skipped", "complaintCode", snapshot.ComplaintCode)
		return
	}

	data := templates.UrgentComplaintEmailData{
		ComplaintCode:        snapshot.ComplaintCode,
		CrimeType:            snapshot.CrimeType,
		Location:             snapshot.Location,
		DateFiled:            snapshot.DateFiled,
		UrgencyJustification: snapshot.UrgencyJustification,
		AdminPanelLink:       fmt.Sprintf("%s/complaints/%s", n.Config.AdminPanelBaseURL, snapshot.ComplaintID),
		IsAnonymous:          snapshot.IsAnonymous,
	}

	subject := "🚨 URGENT Complaint Received - " + snapshot.ComplaintCode
	htmlBody := templates.RenderUrgentComplaintEmail(data)
	textBody := templates.RenderUrgentComplaintEmailText(data)

	if err := n.Sender.Send(n.Config.AdminEmail, subject, htmlBody, textBody); err != nil {
		n.Attempts.Append(snapshot.ComplaintCode, false, err.Error())
		zap.S().Errorw("urgent notification failed", "complaintCode", snapshot.ComplaintCode, "error", err)
		return
	}

	n.Attempts.Append(snapshot.ComplaintCode, true, "Email sent to "+n.Config.AdminEmail)
	zap.S().Infow("urgent notification sent", "complaintCode", snapshot.ComplaintCode)
}

// emailDateFiled formats a filing time the way the notification templates
// display it, e.g. "February 7, 2026 at 3:04 PM".
func emailDateFiled(t time.Time) string {
	return t.Format("January 2, 2006 at 3:04 PM")
}
