package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// Broadcaster fans events out on a Redis pub/sub channel. The socket
// gateway that pushes to browsers subscribes to the same channel; zero
// subscribers is normal, not an error.
type Broadcaster struct {
	rdb     *redis.Client
	channel string
}

func NewBroadcaster(redisURL, channel string) (*Broadcaster, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Broadcaster{rdb: rdb, channel: channel}, nil
}

type envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Emit publishes fire-and-forget. A failed publish is logged and
// dropped: the persisted state change is the source of truth, the event
// is only a UI-refresh hint.
func (b *Broadcaster) Emit(event string, payload any) {
	go func() {
		body, err := json.Marshal(envelope{Event: event, Payload: payload})
		if err != nil {
			slog.Error("failed to marshal event", "event", event, "error", err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := b.rdb.Publish(ctx, b.channel, body).Err(); err != nil {
			slog.Error("failed to publish event", "event", event, "channel", b.channel, "error", err.Error())
		}
	}()
}

func (b *Broadcaster) Close() error {
	return b.rdb.Close()
}
