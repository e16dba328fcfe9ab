package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/events"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/messaging/kafka/consumer"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/querycache"

	kafkago "github.com/segmentio/kafka-go"
)

// RunConsumer applies every published invalidation to the shared redis cache
// store. Gateways on the memory store run their own in-process consumer.
func RunConsumer(rt *Runtime) error {
	logger := rt.Logger.Named("app.consumer")
	cfg := rt.Config

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	if rt.Redis == nil {
		return fmt.Errorf("REDIS_ADDR is required")
	}

	cache := querycache.New(querycache.NewRedisStore(rt.Redis), querycache.WithLogger(rt.Logger))

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.CacheInvalidatedTopic,
		GroupID:        cfg.Kafka.GroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeCacheInvalidations(ctx, reader, cache, "", logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
