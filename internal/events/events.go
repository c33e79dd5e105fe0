// Package events publishes store changes for consumers outside this process, such as a
// notifier that tells requesters their reservation was decided.
package events

import (
	"context"
	"time"

	"kampus/config"
	"kampus/infras/kafka"
	"kampus/infras/otel"
	"kampus/shared/constant"
	"kampus/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	FacilityCreated = "facility.created"
	FacilityUpdated = "facility.updated"
	FacilityDeleted = "facility.deleted"

	ReservationSubmitted = "reservation.submitted"
	ReservationApproved  = "reservation.approved"
	ReservationRejected  = "reservation.rejected"
)

type Event struct {
	Type       string    `json:"type"`
	EntityID   string    `json:"entityId"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"occurredAt"`
}

func New(eventType, entityID string, payload any) Event {
	return Event{
		Type:       eventType,
		EntityID:   entityID,
		Payload:    payload,
		OccurredAt: timezone.Now(),
	}
}

// Publisher is best effort: the change is already persisted when an event is published,
// so a failure is logged and never undoes it.
type Publisher interface {
	Publish(ctx context.Context, event Event)
	Close() error
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

// NewPublisher returns a Kafka publisher when events are enabled and a no-op otherwise.
func NewPublisher(cfg *config.Config, client kafka.Client, otel otel.Otel) Publisher {
	if !cfg.Events.Enabled {
		return NewNoop()
	}

	return &kafkaPublisher{
		client: client,
		topic:  cfg.Events.Topic,
		otel:   otel,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event Event) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".events.Publish")
	defer scope.End()

	scope.SetAttributes(map[string]any{
		"event.type":                     event.Type,
		constant.OtelEntityIDAttribute: event.EntityID,
	})

	err := p.client.SendMessages(ctx, p.topic, kafka.Message{Key: event.EntityID, Value: event})
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("type", event.Type).Str("entity_id", event.EntityID).Msg("Failed to publish event")
	}
}

func (p *kafkaPublisher) Close() error {
	return p.client.Close()
}

type noopPublisher struct{}

func NewNoop() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, Event) {}

func (noopPublisher) Close() error {
	return nil
}
