package submitter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realty/internal/participant/models"
	"realty/internal/platform/kafka/producer"
	"realty/pkg/testutil"
)

type capturePublisher struct {
	msgs []*producer.Message
	err  error
}

func (c *capturePublisher) Produce(_ context.Context, msg *producer.Message) error {
	c.msgs = append(c.msgs, msg)
	return c.err
}

func lawyer(t *testing.T) *models.Participant {
	t.Helper()
	p, err := models.NewParticipant(uuid.New(), testutil.SampleLawyer(), time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return p
}

func TestLogSubmitter(t *testing.T) {
	var buf bytes.Buffer
	p := lawyer(t)

	err := NewLog(slog.New(slog.NewJSONHandler(&buf, nil))).Submit(context.Background(), p)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"participant registered"`)
	assert.Contains(t, buf.String(), p.ID.String())
	assert.Contains(t, buf.String(), `"user_type":"lawyer"`)
	assert.Contains(t, buf.String(), `"cpf":"***.***.***-09"`)
	assert.Contains(t, buf.String(), `"email":"a***@example.com"`)
	assert.NotContains(t, buf.String(), "123.456.789-09")
}

func TestEventSubmitter(t *testing.T) {
	pub := &capturePublisher{}
	p := lawyer(t)

	err := NewEvent(pub, "realty.participants", slog.New(slog.NewTextHandler(io.Discard, nil))).Submit(context.Background(), p)

	require.NoError(t, err)
	require.Len(t, pub.msgs, 1)
	msg := pub.msgs[0]
	assert.Equal(t, "realty.participants", msg.Topic)
	assert.Equal(t, p.ID.String(), string(msg.Key))
	assert.Equal(t, EventParticipantRegistered, msg.Headers["event_type"])

	var event map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, EventParticipantRegistered, event["type"])
	assert.Equal(t, msg.Headers["event_id"], event["eventId"])
	participant := event["participant"].(map[string]any)
	assert.Equal(t, "lawyer", participant["userType"])
	assert.Equal(t, "SP", participant["role"].(map[string]any)["oabState"])
}

func TestEventSubmitter_PublishFailure(t *testing.T) {
	pub := &capturePublisher{err: errors.New("broker down")}

	err := NewEvent(pub, "t", slog.New(slog.NewTextHandler(io.Discard, nil))).Submit(context.Background(), lawyer(t))

	assert.ErrorContains(t, err, "broker down")
}
