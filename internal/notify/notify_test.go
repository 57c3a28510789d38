package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realty/pkg/requestcontext"
)

type countingMetrics struct{ byVariant map[string]int }

func (c *countingMetrics) IncNotification(variant string) {
	if c.byVariant == nil {
		c.byVariant = map[string]int{}
	}
	c.byVariant[variant]++
}

func TestConstructors(t *testing.T) {
	ok := Success("Database Connection", "Successfully connected to database")
	assert.Equal(t, VariantDefault, ok.Variant)
	assert.False(t, ok.IsDestructive())

	bad := Failure("Database Error", "Failed to connect to database")
	assert.True(t, bad.IsDestructive())
}

func TestFanoutAndRecorder(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	fan := Fanout{a, nil, b}

	fan.Notify(context.Background(), Success("one", ""))
	fan.Notify(context.Background(), Failure("two", ""))

	assert.Len(t, a.Toasts(), 2)
	last, ok := b.Last()
	require.True(t, ok)
	assert.Equal(t, "two", last.Title)

	a.Reset()
	_, ok = a.Last()
	assert.False(t, ok)
}

func TestCounted(t *testing.T) {
	rec := NewRecorder()
	m := &countingMetrics{}
	n := Counted(rec, m)

	n.Notify(context.Background(), Success("a", ""))
	n.Notify(context.Background(), Failure("b", ""))
	n.Notify(context.Background(), Failure("c", ""))

	assert.Equal(t, 1, m.byVariant["default"])
	assert.Equal(t, 2, m.byVariant["destructive"])
	assert.Len(t, rec.Toasts(), 3)
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewJSONHandler(&buf, nil)))
	ctx := requestcontext.WithRequestID(context.Background(), "req-9")

	n.Notify(ctx, Failure("Erro no processamento", "Não foi possível processar o documento."))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "Erro no processamento", entry["title"])
	assert.Equal(t, "destructive", entry["variant"])
	assert.Equal(t, "req-9", entry["request_id"])
}

func TestRedisNotifier_PublishFailureIsLoggedNotReturned(t *testing.T) {
	var buf bytes.Buffer
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	n := NewRedisNotifier(client, "realty:notifications", slog.New(slog.NewJSONHandler(&buf, nil)))

	assert.NotPanics(t, func() {
		n.Notify(context.Background(), Success("Database Connection", "Successfully connected to database"))
	})
	assert.Contains(t, buf.String(), "failed to publish notification")
}

func TestMessageEncoding(t *testing.T) {
	raised := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	raw, err := json.Marshal(Message{Toast: Success("t", "d"), RequestID: "r", RaisedAt: raised})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"t","description":"d","variant":"default","requestId":"r","raisedAt":"2024-05-01T12:00:00Z"}`, string(raw))
}

func TestScoped(t *testing.T) {
	app := NewRecorder()
	request := NewRecorder()
	n := Scoped(app)

	n.Notify(context.Background(), Success("sem ouvinte", ""))
	n.Notify(WithListener(context.Background(), request), Failure("com ouvinte", ""))

	assert.Len(t, app.Toasts(), 2)
	require.Len(t, request.Toasts(), 1)
	assert.Equal(t, "com ouvinte", request.Toasts()[0].Title)
}
