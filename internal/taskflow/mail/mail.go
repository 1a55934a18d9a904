// Package mail delivers transactional email. Delivery is optional: without
// SMTP settings a LogMailer records what would have been sent.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/taskflow/pkg/slogx"
)

type Message struct {
	To      string
	Subject string
	Body    string // plain text
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer is used when SMTP is not configured. It never fails.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, msg Message) error {
	slogx.FromContext(ctx).Info("email delivery disabled, message dropped",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	return nil
}

// InvitationMessage is the email sent to an invitee.
func InvitationMessage(to, inviterName, businessName, link string, expiresAt time.Time) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi,\n\n%s has invited you to join %s on TaskFlow.\n\n", inviterName, businessName)
	fmt.Fprintf(&b, "Accept the invitation here:\n%s\n\n", link)
	fmt.Fprintf(&b, "This link expires on %s.\n", expiresAt.UTC().Format("2 January 2006 15:04 MST"))
	return Message{
		To:      to,
		Subject: fmt.Sprintf("You're invited to %s on TaskFlow", businessName),
		Body:    b.String(),
	}
}
