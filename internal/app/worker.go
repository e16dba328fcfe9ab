package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/messaging/kafka"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/messaging/kafka/producer"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/connection"
)

// RunWorker relays outbox rows to Kafka until SIGINT or SIGTERM.
func RunWorker(rt *Runtime) error {
	logger := rt.Logger.Named("app.worker")
	cfg := rt.Config

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := kafka.EnsureOutboxTable(ctx, rt.SQLDB); err != nil {
		return err
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.Database.MaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(rt.SQLDB)

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		time.Second,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}
