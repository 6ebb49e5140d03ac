package tasks

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outbox struct{ sent []Message }

func (o *outbox) Send(_ context.Context, msg Message) error {
	o.sent = append(o.sent, msg)
	return nil
}

func TestProcessor_PasswordReset(t *testing.T) {
	box := &outbox{}
	p := NewProcessor(box, "http://localhost:8080/auth/reset-password", zerolog.Nop())

	err := p.Handle(context.Background(), redis.XMessage{
		ID: "1-0",
		Values: map[string]interface{}{
			"type":        "password_reset",
			"email":       "patient@example.com",
			"token":       "abc",
			"requestedAt": "2024-05-01T08:00:00Z",
		},
	})
	require.NoError(t, err)
	require.Len(t, box.sent, 1)
	assert.Equal(t, "patient@example.com", box.sent[0].To)
	assert.Contains(t, box.sent[0].Body, "http://localhost:8080/auth/reset-password?token=abc")
}

func TestProcessor_PasswordChanged(t *testing.T) {
	box := &outbox{}
	p := NewProcessor(box, "", zerolog.Nop())

	err := p.Handle(context.Background(), redis.XMessage{
		Values: map[string]interface{}{"type": "password_changed", "email": "doctor@example.com", "requestedAt": "2024-05-01T08:00:00Z"},
	})
	require.NoError(t, err)
	require.Len(t, box.sent, 1)
	assert.Contains(t, box.sent[0].Body, "2024-05-01T08:00:00Z")
}

func TestProcessor_BadPayloads(t *testing.T) {
	box := &outbox{}
	p := NewProcessor(box, "", zerolog.Nop())
	ctx := context.Background()

	assert.ErrorIs(t, p.Handle(ctx, redis.XMessage{Values: map[string]interface{}{"type": "password_reset"}}), ErrMissingEmail)
	assert.NoError(t, p.Handle(ctx, redis.XMessage{Values: map[string]interface{}{"type": "thumbnail"}}))
	assert.Error(t, p.Handle(ctx, redis.XMessage{Values: map[string]interface{}{"type": 12}}))
	assert.Empty(t, box.sent)
}
