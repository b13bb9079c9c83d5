package audit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultStream is the Redis stream authentication events are appended to.
const DefaultStream = "auth:audit"

// Event is one successful authentication, as recorded for audit purposes.
// The raw token is deliberately absent from the type.
type Event struct {
	UserID    string
	Email     string
	Role      string
	Method    string
	TokenType string
	SessionID string
	At        time.Time
}

// Trail records authentication events. Recording is best-effort from the
// caller's perspective: a failed Record must never fail the authentication
// that produced it.
type Trail interface {
	Record(ctx context.Context, event Event) error
}

// RedisTrail appends events to a Redis stream.
type RedisTrail struct {
	client *redis.Client
	stream string
}

// NewRedisTrail builds a trail writing to the given stream, or
// DefaultStream when empty.
func NewRedisTrail(client *redis.Client, stream string) *RedisTrail {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisTrail{client: client, stream: stream}
}

// Record implements Trail.
func (t *RedisTrail) Record(ctx context.Context, event Event) error {
	return t.client.XAdd(ctx, &redis.XAddArgs{
		Stream: t.stream,
		Values: map[string]any{
			"user_id":    event.UserID,
			"email":      event.Email,
			"role":       event.Role,
			"method":     event.Method,
			"token_type": event.TokenType,
			"session_id": event.SessionID,
			"at":         event.At.UTC().Format(time.RFC3339Nano),
		},
	}).Err()
}

type nopTrail struct{}

// NewNopTrail returns a trail that discards events; used when Redis is not
// configured.
func NewNopTrail() Trail {
	return nopTrail{}
}

func (nopTrail) Record(context.Context, Event) error { return nil }
