package querycache

import (
	"context"

	"go.uber.org/zap"
)

// Publisher forwards a successful invalidation to other replicas.
type Publisher interface {
	PublishInvalidation(ctx context.Context, source string, prefixes []Prefix) error
}

type NoopPublisher struct{}

func (NoopPublisher) PublishInvalidation(context.Context, string, []Prefix) error { return nil }

// Invalidator applies a mutation's declared fan-out locally and announces it.
// Publishing is best effort: a lost event only means other replicas serve
// their copy until its window expires.
type Invalidator struct {
	cache     *Cache
	publisher Publisher
	logger    *zap.Logger
}

func NewInvalidator(cache *Cache, publisher Publisher, logger ...*zap.Logger) *Invalidator {
	l := zap.L().Named("querycache.invalidator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("querycache.invalidator")
	}
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &Invalidator{cache: cache, publisher: publisher, logger: l}
}

func (i *Invalidator) Apply(ctx context.Context, source string, prefixes ...Prefix) int {
	n, err := i.cache.Invalidate(ctx, prefixes...)
	if err != nil {
		i.logger.Error("local invalidation failed", zap.String("source", source), zap.Error(err))
	}
	if err := i.publisher.PublishInvalidation(ctx, source, prefixes); err != nil {
		i.logger.Warn("publish invalidation failed", zap.String("source", source), zap.Error(err))
	}
	i.logger.Debug("mutation fan-out applied",
		zap.String("source", source),
		zap.Int("prefixes", len(prefixes)),
		zap.Int("entries", n),
	)
	return n
}

func (i *Invalidator) Cache() *Cache {
	return i.cache
}
