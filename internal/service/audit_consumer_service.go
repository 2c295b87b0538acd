package service

import (
	"context"

	"alkulous-relay/internal/pkg/logger"
	"alkulous-relay/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventForwarder ships events off-process. Implemented by *nats.Publisher.
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

// LiveBroadcaster pushes frames to connected operators. Implemented by the
// websocket hub.
type LiveBroadcaster interface {
	Broadcast(frameType string, data interface{})
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type auditConsumerService struct {
	subscriber  message.Subscriber
	topicName   string
	auditLogger logger.ILogger
	forwarder   EventForwarder
	live        LiveBroadcaster
	logger      logger.ILogger
}

// NewAuditConsumerService wires the sinks for relay events. forwarder and
// live may be nil.
func NewAuditConsumerService(
	subscriber message.Subscriber,
	topicName string,
	auditLogger logger.ILogger,
	forwarder EventForwarder,
	live LiveBroadcaster,
	log logger.ILogger,
) IConsumerService {
	return &auditConsumerService{
		subscriber:  subscriber,
		topicName:   topicName,
		auditLogger: auditLogger,
		forwarder:   forwarder,
		live:        live,
		logger:      log,
	}
}

func (cs *auditConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage always acks: a sink failure is logged, never retried.
func (cs *auditConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		cs.logger.Error("AuditConsumer", "Failed to decode event", map[string]interface{}{"error": err, "uuid": msg.UUID})
		return
	}

	cs.auditLogger.Info("Audit", event.EventType(), map[string]interface{}{
		"uuid":        msg.UUID,
		"occurred_at": event.Timestamp(),
		"payload":     event.Payload(),
	})

	if cs.forwarder != nil {
		if err := cs.forwarder.Publish(ctx, event); err != nil {
			cs.logger.Warn("AuditConsumer", "Failed to forward event to NATS", map[string]interface{}{
				"type":  event.EventType(),
				"error": err.Error(),
			})
		}
	}

	if cs.live != nil {
		cs.live.Broadcast(event.EventType(), event.Payload())
	}
}
