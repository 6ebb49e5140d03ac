package service

import (
	"context"

	"github.com/rs/zerolog"
)

// Mailer delivers account notifications. The queue producer is the
// production implementation; LogMailer only records what would be sent.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, resetToken string) error
	SendPasswordChanged(ctx context.Context, email string) error
}

type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendPasswordReset(_ context.Context, email, _ string) error {
	m.log.Info().Str("email", email).Msg("password reset mail (not delivered)")
	return nil
}

func (m *LogMailer) SendPasswordChanged(_ context.Context, email string) error {
	m.log.Info().Str("email", email).Msg("password changed mail (not delivered)")
	return nil
}
