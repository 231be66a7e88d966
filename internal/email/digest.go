// Package email renders notification mails shared by the delivery backends.
package email

import (
	"fmt"
	"html"
	"strings"

	"haccp/internal/port"
)

// Message is a rendered mail.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

// RenderMissedChecksDigest renders the reminder mail listing missed checks.
func RenderMissedChecksDigest(frontendURL string, to port.Recipient, d port.MissedChecksDigest) Message {
	subject := fmt.Sprintf("HACCP: %d offene Prüfung(en) in %s", len(d.Checks), d.MarketName)
	link := strings.TrimRight(frontendURL, "/") + "/dokumentation"

	var text strings.Builder
	fmt.Fprintf(&text, "Hallo %s,\n\nfolgende Prüfungen in %s (%s) wurden nicht vollständig dokumentiert:\n\n",
		to.Name, d.MarketName, d.TenantName)
	for _, c := range d.Checks {
		fmt.Fprintf(&text, "- %s: %s\n", c.FormLabel, c.Label)
	}
	fmt.Fprintf(&text, "\nZur Dokumentation: %s\n", link)

	var items strings.Builder
	for _, c := range d.Checks {
		fmt.Fprintf(&items, "    <li><strong>%s</strong>: %s</li>\n",
			html.EscapeString(c.FormLabel), html.EscapeString(c.Label))
	}

	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Offene HACCP-Prüfungen</h2>
  <p>Hallo %s,</p>
  <p>folgende Prüfungen in <strong>%s</strong> (%s) wurden nicht vollständig dokumentiert:</p>
  <ul>
%s  </ul>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #15803D; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Zur Dokumentation</a>
  </p>
</body>
</html>`,
		html.EscapeString(to.Name), html.EscapeString(d.MarketName), html.EscapeString(d.TenantName),
		items.String(), html.EscapeString(link))

	return Message{Subject: subject, Text: text.String(), HTML: body}
}
