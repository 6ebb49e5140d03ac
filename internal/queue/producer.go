package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	TypePasswordReset   = "password_reset"
	TypePasswordChanged = "password_changed"
)

type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// Producer appends account mail jobs to a redis stream. It satisfies
// service.Mailer.
type Producer struct {
	client streamAdder
	stream string
	now    func() time.Time
	log    zerolog.Logger
}

func NewProducer(client *redis.Client, stream string, log zerolog.Logger) *Producer {
	return newProducer(client, stream, log)
}

func newProducer(client streamAdder, stream string, log zerolog.Logger) *Producer {
	return &Producer{
		client: client,
		stream: stream,
		now:    func() time.Time { return time.Now().UTC() },
		log:    log,
	}
}

func (p *Producer) SendPasswordReset(ctx context.Context, email, resetToken string) error {
	return p.enqueue(ctx, map[string]any{
		"type":  TypePasswordReset,
		"email": email,
		"token": resetToken,
	})
}

func (p *Producer) SendPasswordChanged(ctx context.Context, email string) error {
	return p.enqueue(ctx, map[string]any{
		"type":  TypePasswordChanged,
		"email": email,
	})
}

func (p *Producer) enqueue(ctx context.Context, values map[string]any) error {
	values["requestedAt"] = p.now().Format(time.RFC3339)
	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: 10000,
		Approx: true,
		Values: values,
	}).Result()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", p.stream, err)
	}
	p.log.Debug().Str("message_id", id).Str("type", fmt.Sprint(values["type"])).Msg("mail job enqueued")
	return nil
}
