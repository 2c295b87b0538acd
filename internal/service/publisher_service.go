package service

import (
	"context"
	"fmt"

	"alkulous-relay/internal/pkg/logger"
	"alkulous-relay/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const eventTypeMetadataKey = "event_type"

type IPublisherService interface {
	Publish(ctx context.Context, event events.Event) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (s *publisherService) Publish(ctx context.Context, event events.Event) error {
	payload, err := events.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(eventTypeMetadataKey, event.EventType())
	msg.SetContext(ctx)

	if err := s.publisher.Publish(s.topicName, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.EventType(), err)
	}
	return nil
}

// publishQuietly never fails the caller; the event bus is best effort.
func publishQuietly(ctx context.Context, p IPublisherService, log logger.ILogger, module string, event events.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		log.Warn(module, "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}
