package services

import (
	"context"

	"github.com/dmitrijs2005/gamekeeper/internal/logging"
)

// Mailer delivers account emails.
type Mailer interface {
	SendConfirmation(ctx context.Context, email, link string) error
}

// LogMailer writes the confirmation link to the log instead of sending mail.
// It is the only mailer shipped; operators read the link from the server log.
type LogMailer struct {
	logger logging.Logger
}

func NewLogMailer(l logging.Logger) *LogMailer {
	return &LogMailer{logger: l.With("module", "mailer")}
}

func (m *LogMailer) SendConfirmation(ctx context.Context, email, link string) error {
	m.logger.Info(ctx, "confirmation email", "to", email, "link", link)
	return nil
}
