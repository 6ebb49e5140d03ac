package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"docconnect/internal/queue"
)

var ErrMissingEmail = errors.New("payload has no email")

type TaskPayload struct {
	Type        string `json:"type"`
	Email       string `json:"email"`
	Token       string `json:"token"`
	RequestedAt string `json:"requestedAt"`
}

type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type Processor struct {
	sender   Sender
	resetURL string
	logger   zerolog.Logger
}

// NewProcessor renders account mails. resetURL is the page a reset link
// points at; the token is appended as a query parameter.
func NewProcessor(sender Sender, resetURL string, logger zerolog.Logger) *Processor {
	return &Processor{
		sender:   sender,
		resetURL: resetURL,
		logger:   logger,
	}
}

func (p *Processor) Handle(ctx context.Context, msg redis.XMessage) error {
	var payload TaskPayload
	if err := decodePayload(msg.Values, &payload); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	switch payload.Type {
	case queue.TypePasswordReset:
		return p.handlePasswordReset(ctx, payload)
	case queue.TypePasswordChanged:
		return p.handlePasswordChanged(ctx, payload)
	default:
		p.logger.Warn().Str("type", payload.Type).Str("message_id", msg.ID).Msg("unknown task type")
		return nil
	}
}

func decodePayload(values map[string]interface{}, out *TaskPayload) error {
	bytes, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, out)
}

func (p *Processor) handlePasswordReset(ctx context.Context, payload TaskPayload) error {
	if payload.Email == "" {
		return ErrMissingEmail
	}
	return p.sender.Send(ctx, Message{
		To:      payload.Email,
		Subject: "Reset your DocConnect password",
		Body: fmt.Sprintf(
			"We received a request to reset your password.\n\nOpen %s?token=%s to choose a new one.\n"+
				"If you did not ask for this, you can ignore this email.\n",
			p.resetURL, payload.Token,
		),
	})
}

func (p *Processor) handlePasswordChanged(ctx context.Context, payload TaskPayload) error {
	if payload.Email == "" {
		return ErrMissingEmail
	}
	return p.sender.Send(ctx, Message{
		To:      payload.Email,
		Subject: "Your DocConnect password was changed",
		Body:    fmt.Sprintf("Your password was changed at %s.\nIf this was not you, contact support.\n", payload.RequestedAt),
	})
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	logger zerolog.Logger
}

func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logger.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("mail sent")
	return nil
}
