package notify

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// SLANotice describes an SLA warning or breach for one ticket.
type SLANotice struct {
	TicketID    string
	TicketCode  string
	TicketTitle string
	Milestone   string
	DueAt       time.Time
	Breached    bool
	FrontendURL string
}

func (n SLANotice) action() string {
	if n.Milestone == "response" {
		return "acknowledged"
	}
	return "resolved"
}

func (n SLANotice) link() string {
	return fmt.Sprintf("%s/tickets/%s", strings.TrimRight(n.FrontendURL, "/"), n.TicketID)
}

// SLAMessage renders the admin notification for n.
func SLAMessage(n SLANotice, to []string) Message {
	due := n.DueAt.UTC().Format("January 2, 2006 15:04 MST")
	title := html.EscapeString(n.TicketTitle)
	code := html.EscapeString(n.TicketCode)

	if n.Breached {
		return Message{
			To:      to,
			Subject: fmt.Sprintf("URGENT: SLA BREACH - Ticket %s - %s", n.TicketCode, n.TicketTitle),
			PlainBody: fmt.Sprintf(`SLA BREACH

Ticket %s (%s) missed its %s SLA at %s.
It must be %s immediately.

%s
`, n.TicketCode, n.TicketTitle, n.Milestone, due, n.action(), n.link()),
			HTMLBody: fmt.Sprintf(`
		<html>
		<body>
			<h2 style="color:#b91c1c">SLA Breach</h2>
			<p>Ticket <strong>%s</strong> (%s) missed its %s SLA at %s.</p>
			<p>It must be %s immediately.</p>
			<p><a href="%s">Open ticket</a></p>
		</body>
		</html>
	`, code, title, n.Milestone, due, n.action(), n.link()),
		}
	}

	return Message{
		To:      to,
		Subject: fmt.Sprintf("SLA Warning - Ticket %s - %s", n.TicketCode, n.TicketTitle),
		PlainBody: fmt.Sprintf(`SLA WARNING

Ticket %s (%s) is approaching its %s SLA, due %s.
Please make sure it is %s in time.

%s
`, n.TicketCode, n.TicketTitle, n.Milestone, due, n.action(), n.link()),
		HTMLBody: fmt.Sprintf(`
		<html>
		<body>
			<h2 style="color:#b45309">SLA Warning</h2>
			<p>Ticket <strong>%s</strong> (%s) is approaching its %s SLA, due %s.</p>
			<p>Please make sure it is %s in time.</p>
			<p><a href="%s">Open ticket</a></p>
		</body>
		</html>
	`, code, title, n.Milestone, due, n.action(), n.link()),
	}
}
