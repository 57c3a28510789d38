// Package submitter hands validated participants to their destination.
package submitter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"realty/internal/participant/models"
	"realty/internal/platform/kafka/producer"
	"realty/internal/platform/privacy"
)

// EventParticipantRegistered is the event type header value.
const EventParticipantRegistered = "participant.registered"

// LogSubmitter only logs the participant.
type LogSubmitter struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *LogSubmitter {
	return &LogSubmitter{logger: logger}
}

func (s *LogSubmitter) Submit(ctx context.Context, p *models.Participant) error {
	s.logger.InfoContext(ctx, "participant registered",
		"participant_id", p.ID,
		"user_type", p.UserType(),
		"document_type", p.DocumentType,
		"email", privacy.MaskEmail(p.Profile.Email),
		"cpf", privacy.Mask(p.Profile.CPF),
	)
	return nil
}

// Event is the payload published for each registration.
type Event struct {
	EventID     uuid.UUID           `json:"eventId"`
	Type        string              `json:"type"`
	OccurredAt  time.Time           `json:"occurredAt"`
	Participant *models.Participant `json:"participant"`
}

// EventSubmitter publishes a participant.registered event keyed by participant id.
type EventSubmitter struct {
	publisher producer.Publisher
	topic     string
	logger    *slog.Logger
}

func NewEvent(publisher producer.Publisher, topic string, logger *slog.Logger) *EventSubmitter {
	return &EventSubmitter{publisher: publisher, topic: topic, logger: logger}
}

func (s *EventSubmitter) Submit(ctx context.Context, p *models.Participant) error {
	event := Event{
		EventID:     uuid.New(),
		Type:        EventParticipantRegistered,
		OccurredAt:  p.SubmittedAt,
		Participant: p,
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal participant event: %w", err)
	}

	err = s.publisher.Produce(ctx, &producer.Message{
		Topic: s.topic,
		Key:   []byte(p.ID.String()),
		Value: value,
		Headers: map[string]string{
			"event_type": EventParticipantRegistered,
			"event_id":   event.EventID.String(),
		},
	})
	if err != nil {
		return fmt.Errorf("publish participant event: %w", err)
	}
	s.logger.InfoContext(ctx, "participant event published",
		"participant_id", p.ID,
		"topic", s.topic,
		"event_id", event.EventID,
	)
	return nil
}
