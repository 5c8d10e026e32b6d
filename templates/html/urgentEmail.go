package templates

import (
	"fmt"
	"html"
)

// UrgentComplaintEmailData holds data for the urgent complaint notification templates
type UrgentComplaintEmailData struct {
	ComplaintCode        string
	CrimeType            string
	Location             string
	DateFiled            string
	UrgencyJustification string
	AdminPanelLink       string
	IsAnonymous          bool
}

// RenderUrgentComplaintEmail generates the HTML body for the urgent complaint
// notification sent to administrators. All complaint fields are escaped before
// they hit the markup.
func RenderUrgentComplaintEmail(data UrgentComplaintEmailData) string {
	complaintCode := html.EscapeString(orDefault(data.ComplaintCode, "N/A"))
	crimeType := html.EscapeString(orDefault(data.CrimeType, "Not specified"))
	location := html.EscapeString(orDefault(data.Location, "Not specified"))
	dateFiled := html.EscapeString(data.DateFiled)
	justification := html.EscapeString(orDefault(data.UrgencyJustification, "No justification provided."))
	adminPanelLink := html.EscapeString(orDefault(data.AdminPanelLink, "#"))

	anonymousBadge := ""
	if data.IsAnonymous {
		anonymousBadge = `<div class="anonymous-indicator">🔒 ANONYMOUS COMPLAINT</div>`
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Urgent Complaint Notification</title>
  <style type="text/css">
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; line-height: 1.6; color: #111827; margin: 0; padding: 0; background-color: #f3f4f6; }
    .email-container { max-width: 600px; margin: 20px auto; background: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 10px 25px rgba(0, 0, 0, 0.1); }
    .email-header { background: linear-gradient(135deg, #dc2626 0%%, #991b1b 100%%); color: white; padding: 40px 30px; text-align: center; }
    .email-header h1 { margin: 0; font-size: 26px; font-weight: 700; text-transform: uppercase; letter-spacing: 0.5px; }
    .urgent-badge { background: #ffffff; color: #dc2626; padding: 12px 24px; border-radius: 8px; font-weight: 700; font-size: 16px; display: inline-block; margin-top: 15px; text-transform: uppercase; letter-spacing: 1px; }
    .anonymous-indicator { background: #fbbf24; color: #78350f; padding: 8px 16px; border-radius: 6px; font-weight: 600; font-size: 13px; display: inline-block; margin-top: 10px; }
    .email-body { padding: 40px 30px; }
    .email-body p { margin: 0 0 20px 0; color: #374151; }
    .detail-table { width: 100%%; border-collapse: collapse; margin: 20px 0; }
    .detail-table td { padding: 12px 0; border-bottom: 1px solid #e5e7eb; vertical-align: top; }
    .detail-label { color: #6b7280; font-size: 13px; text-transform: uppercase; letter-spacing: 0.5px; width: 160px; }
    .detail-value { color: #111827; font-weight: 600; }
    .justification-box { background: #fef2f2; border-left: 4px solid #dc2626; border-radius: 6px; padding: 16px 20px; margin: 20px 0; color: #7f1d1d; }
    .cta-button { display: inline-block; background: #dc2626; color: #ffffff; padding: 14px 28px; border-radius: 8px; text-decoration: none; font-weight: 700; margin-top: 10px; }
    .email-footer { padding: 30px; text-align: center; color: #6b7280; font-size: 12px; border-top: 1px solid #e5e7eb; }
  </style>
</head>
<body>
  <div class="email-container">
    <div class="email-header">
      <h1>Jan Suraksha</h1>
      <div class="urgent-badge">🚨 Urgent Complaint</div>
      %s
    </div>
    <div class="email-body">
      <p>A complaint flagged as <strong>urgent</strong> has just been filed and needs immediate review.</p>
      <table class="detail-table">
        <tr><td class="detail-label">Tracking ID</td><td class="detail-value">%s</td></tr>
        <tr><td class="detail-label">Crime Type</td><td class="detail-value">%s</td></tr>
        <tr><td class="detail-label">Location</td><td class="detail-value">%s</td></tr>
        <tr><td class="detail-label">Filed At</td><td class="detail-value">%s</td></tr>
      </table>
      <div class="justification-box">
        <strong>Why it is urgent:</strong><br>%s
      </div>
      <a href="%s" class="cta-button">Review in Admin Panel</a>
    </div>
    <div class="email-footer">
      Jan Suraksha &mdash; AAPKI SURAKSHA, HAMARI ZIMMEDARI<br>
      This is an automated notification. Do not reply to this email.
    </div>
  </div>
</body>
</html>`, anonymousBadge, complaintCode, crimeType, location, dateFiled, justification, adminPanelLink)
}

// RenderUrgentComplaintEmailText generates the plain text alternative body
func RenderUrgentComplaintEmailText(data UrgentComplaintEmailData) string {
	anonymousLine := ""
	if data.IsAnonymous {
		anonymousLine = "NOTE: This complaint was filed anonymously.\n\n"
	}

	return fmt.Sprintf(`URGENT COMPLAINT RECEIVED - Jan Suraksha

%sA complaint flagged as urgent has just been filed and needs immediate review.

Tracking ID:   %s
Crime Type:    %s
Location:      %s
Filed At:      %s

Why it is urgent:
%s

Review the complaint in the admin panel:
%s

--
Jan Suraksha - AAPKI SURAKSHA, HAMARI ZIMMEDARI
This is an automated notification. Do not reply to this email.
`, anonymousLine,
		orDefault(data.ComplaintCode, "N/A"),
		orDefault(data.CrimeType, "Not specified"),
		orDefault(data.Location, "Not specified"),
		data.DateFiled,
		orDefault(data.UrgencyJustification, "No justification provided."),
		orDefault(data.AdminPanelLink, "#"))
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
