package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/events"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/messaging/kafka"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/querycache"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/contextutil"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

const cacheAggregateType = "query_cache"

func publishEvent(ctx context.Context, writer MessageWriter, event kafka.OutboxEvent) error {
	msg := kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
			{Key: "request_id", Value: []byte(event.RequestID)},
		},
	}

	return writer.WriteMessages(ctx, msg)
}

// MessageWriter is the part of *kafkago.Writer the relay uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// OutboxPublisher records invalidations in the outbox table. The relay
// worker sends them to Kafka, so a broker outage never fails a mutation.
type OutboxPublisher struct {
	repo   kafka.OutboxRepository
	origin string
	now    func() time.Time
}

func NewOutboxPublisher(repo kafka.OutboxRepository, origin string) *OutboxPublisher {
	return &OutboxPublisher{repo: repo, origin: origin, now: time.Now}
}

func (p *OutboxPublisher) PublishInvalidation(ctx context.Context, source string, prefixes []querycache.Prefix) error {
	event := events.CacheInvalidatedEvent{
		EventType:  events.CacheInvalidatedEventType,
		Prefixes:   make([][]string, 0, len(prefixes)),
		Source:     source,
		Origin:     p.origin,
		RequestID:  contextutil.GetRequestID(ctx),
		OccurredAt: p.now().UTC(),
	}
	for _, prefix := range prefixes {
		event.Prefixes = append(event.Prefixes, []string(prefix))
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	outbox := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: cacheAggregateType,
		AggregateID:   source,
		EventType:     events.CacheInvalidatedEventType,
		Topic:         events.CacheInvalidatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(outbox); err != nil {
		return err
	}
	return p.repo.Create(ctx, outbox)
}
