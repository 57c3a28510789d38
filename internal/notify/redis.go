package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"realty/pkg/requestcontext"
)

// Message is the JSON payload published on the notification channel.
type Message struct {
	Toast
	RequestID string    `json:"requestId,omitempty"`
	RaisedAt  time.Time `json:"raisedAt"`
}

// RedisNotifier publishes notifications on a Redis pub/sub channel so a UI
// gateway can forward them to connected browsers.
type RedisNotifier struct {
	client  redis.UniversalClient
	channel string
	timeout time.Duration
	logger  *slog.Logger
}

func NewRedisNotifier(client redis.UniversalClient, channel string, logger *slog.Logger) *RedisNotifier {
	return &RedisNotifier{
		client:  client,
		channel: channel,
		timeout: 2 * time.Second,
		logger:  logger,
	}
}

// Notify publishes t. A cancelled request context does not stop delivery;
// publishing has its own short timeout.
func (n *RedisNotifier) Notify(ctx context.Context, t Toast) {
	msg := Message{
		Toast:     t,
		RequestID: requestcontext.RequestID(ctx),
		RaisedAt:  requestcontext.Now(ctx).UTC(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		n.logger.ErrorContext(ctx, "failed to encode notification", "error", err)
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()
	if err := n.client.Publish(pubCtx, n.channel, payload).Err(); err != nil {
		n.logger.WarnContext(ctx, "failed to publish notification",
			"channel", n.channel,
			"title", t.Title,
			"error", err,
		)
	}
}
