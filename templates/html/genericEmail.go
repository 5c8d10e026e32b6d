package templates

import (
	"fmt"
	"html"
	"strings"
)

// RenderGenericEmail generates branded HTML for a generic email.
// The subject is displayed in the header banner, and bodyContent is plain text
// that gets HTML-escaped and has newlines converted to <br> tags.
func RenderGenericEmail(subject, bodyContent string) string {
	escaped := html.EscapeString(bodyContent)
	htmlBody := strings.ReplaceAll(escaped, "\n", "<br>")

	escapedSubject := html.EscapeString(subject)

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%s</title>
  <style type="text/css">
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; margin: 0; padding: 0; background-color: #f3f4f6; color: #111827; }
    .email-container { max-width: 600px; margin: 20px auto; background: #ffffff; border-radius: 12px; overflow: hidden; }
    .email-header { background: #1d4ed8; color: white; padding: 30px; text-align: center; }
    .email-header h1 { margin: 0; font-size: 22px; }
    .email-body { padding: 30px; line-height: 1.6; color: #374151; }
    .email-footer { padding: 20px 30px; text-align: center; color: #6b7280; font-size: 12px; border-top: 1px solid #e5e7eb; }
  </style>
</head>
<body>
  <div class="email-container">
    <div class="email-header">
      <h1>%s</h1>
    </div>
    <div class="email-body">%s</div>
    <div class="email-footer">
      Jan Suraksha &mdash; AAPKI SURAKSHA, HAMARI ZIMMEDARI
    </div>
  </div>
</body>
</html>`, escapedSubject, escapedSubject, htmlBody)
}
