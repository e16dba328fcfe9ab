package consumer

import (
	"context"
	"encoding/json"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/events"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/querycache"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type Invalidator interface {
	Invalidate(ctx context.Context, prefixes ...querycache.Prefix) (int, error)
}

// ConsumeCacheInvalidations marks cached entries stale for every event
// published by another replica. Events from this replica were already
// applied locally and are only committed. Malformed events are committed
// and skipped; a failed invalidation is left uncommitted for redelivery.
func ConsumeCacheInvalidations(
	ctx context.Context,
	reader MessageReader,
	cache Invalidator,
	origin string,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.cache_invalidated")
	log.Info("cache invalidation consumer started", zap.String("origin", origin))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("cache invalidation consumer stopped")
				return
			}
			log.Error("fetch cache invalidation message failed", zap.Error(err))
			continue
		}

		var event events.CacheInvalidatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil || event.EventType != events.CacheInvalidatedEventType {
			log.Error("decode cache_invalidated event failed", zap.Error(err), zap.Int64("offset", msg.Offset))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if origin == "" || event.Origin != origin {
			prefixes := make([]querycache.Prefix, 0, len(event.Prefixes))
			for _, p := range event.Prefixes {
				prefixes = append(prefixes, querycache.Prefix(p))
			}
			n, err := cache.Invalidate(ctx, prefixes...)
			if err != nil {
				log.Error("apply cache invalidation failed",
					zap.String("source", event.Source),
					zap.String("origin", event.Origin),
					zap.Error(err),
				)
				continue
			}
			log.Debug("cache invalidation applied",
				zap.String("source", event.Source),
				zap.String("origin", event.Origin),
				zap.Int("entries", n),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit cache invalidation message failed", zap.Error(err))
		}
	}
}
