package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/wolfman30/lead-manager/internal/leads"
	"github.com/wolfman30/lead-manager/pkg/logging"
)

// LeadAlerter emails a fixed recipient whenever a lead is created.
type LeadAlerter struct {
	email     EmailSender
	recipient string
	logger    *logging.Logger
}

var _ leads.Notifier = (*LeadAlerter)(nil)

// NewLeadAlerter returns nil when there is no sender or no recipient, which
// the workspace treats as alerts disabled.
func NewLeadAlerter(email EmailSender, recipient string, logger *logging.Logger) *LeadAlerter {
	recipient = strings.TrimSpace(recipient)
	if email == nil || recipient == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadAlerter{email: email, recipient: recipient, logger: logger}
}

// LeadCreated sends the new-lead alert.
func (a *LeadAlerter) LeadCreated(ctx context.Context, lead leads.Lead) error {
	if a == nil {
		return nil
	}
	msg := EmailMessage{
		To:      a.recipient,
		Subject: fmt.Sprintf("New lead: %s", lead.Name),
		Body:    alertText(lead),
		HTML:    alertHTML(lead),
	}
	if err := a.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: lead alert: %w", err)
	}
	a.logger.Debug("lead alert sent", "id", lead.ID)
	return nil
}

func alertText(lead leads.Lead) string {
	return fmt.Sprintf(`A new lead has come in!

Name: %s
Email: %s
Phone: %s
Source: %s
Created: %s`,
		lead.Name,
		lead.Email,
		leads.FormatPhoneNumber(lead.Phone),
		lead.LeadSource,
		lead.CreatedAt.Format("Jan 2, 2006 3:04 PM MST"),
	)
}

func alertHTML(lead leads.Lead) string {
	row := func(label, value string) string {
		return fmt.Sprintf("<tr><td><strong>%s</strong></td><td>%s</td></tr>", label, html.EscapeString(value))
	}
	var b strings.Builder
	b.WriteString("<p>A new lead has come in!</p><table>")
	b.WriteString(row("Name", lead.Name))
	b.WriteString(row("Email", lead.Email))
	b.WriteString(row("Phone", leads.FormatPhoneNumber(lead.Phone)))
	b.WriteString(row("Source", lead.LeadSource))
	b.WriteString("</table>")
	return b.String()
}
