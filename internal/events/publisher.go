package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const (
	eventSource  = "hostel-portal-auth"
	eventVersion = "1.0"
)

// Domain event types published by this service.
const (
	EventOTPRequested    = "auth.otp_requested"
	EventUserRegistered  = "auth.user_registered"
	EventProfileUpdated  = "user.profile_updated"
	EventUserAdminUpdate = "user.admin_updated"
)

// Event is the envelope written to the message bus. Data carries the
// type-specific payload.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// EventPublisher emits domain events. Publishing is best-effort from the
// caller's perspective; request handling never fails because an event could
// not be written.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
	Close() error
}

// watermillPublisher adapts any watermill message.Publisher to the
// EventPublisher interface, one topic per event type.
type watermillPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// NewWatermillPublisher wraps an existing watermill publisher.
func NewWatermillPublisher(publisher message.Publisher, logger *slog.Logger) EventPublisher {
	return &watermillPublisher{publisher: publisher, logger: logger}
}

// NewGoChannelPublisher creates an in-process pub/sub publisher. It is the
// default when no broker is configured.
func NewGoChannelPublisher(logger *slog.Logger) EventPublisher {
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger))
	return &watermillPublisher{publisher: pubsub, logger: logger}
}

func (p *watermillPublisher) Publish(ctx context.Context, eventType string, data interface{}) error {
	event := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", eventType, err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", eventType)

	if err := p.publisher.Publish(eventType, msg); err != nil {
		return fmt.Errorf("publish event %s: %w", eventType, err)
	}

	p.logger.Debug("event published", "event_type", eventType, "event_id", event.ID)
	return nil
}

func (p *watermillPublisher) Close() error {
	return p.publisher.Close()
}
