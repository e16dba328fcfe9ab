package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/config"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/events"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/messaging/kafka"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/messaging/kafka/consumer"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/messaging/kafka/producer"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/querycache"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/session"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Runtime holds the connections shared by the api, worker and consumer
// processes.
type Runtime struct {
	Config *config.Config
	Logger *zap.Logger
	GormDB *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
}

func Connect(cfg *config.Config, logger *zap.Logger) (*Runtime, error) {
	db := cfg.Database
	gormDB, err := connection.ConnectGORMWithRetry(
		connection.PostgresDSN(db.Host, db.User, db.Password, db.DBName, db.Port, db.SSLMode),
		db.MaxRetries,
	)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	rt := &Runtime{Config: cfg, Logger: logger, GormDB: gormDB, SQLDB: sqlDB}
	if cfg.Redis.Addr != "" {
		rt.Redis, err = connection.ConnectRedisWithRetry(cfg.Redis.Addr, db.MaxRetries)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		logger.Info("redis connection established")
	}
	return rt, nil
}

func (rt *Runtime) Close() {
	if rt.Redis != nil {
		_ = rt.Redis.Close()
	}
	if rt.SQLDB != nil {
		_ = rt.SQLDB.Close()
	}
}

// instanceID names this replica in published invalidations so the consumer
// can skip its own events.
func instanceID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "gateway"
	}
	return host + "-" + uuid.NewString()[:8]
}

func (rt *Runtime) migrate(ctx context.Context) error {
	if err := rt.GormDB.WithContext(ctx).AutoMigrate(&session.Session{}, &session.UIFilter{}); err != nil {
		return fmt.Errorf("migrate sessions: %w", err)
	}
	return kafka.EnsureOutboxTable(ctx, rt.SQLDB)
}

func (rt *Runtime) newCache() (*querycache.Cache, querycache.Policy, error) {
	policy := querycache.DefaultPolicy().WithOverrides(rt.Config.Cache.MaxAge)

	var store querycache.Store
	switch rt.Config.Cache.Store {
	case "redis":
		if rt.Redis == nil {
			return nil, nil, fmt.Errorf("redis cache store needs REDIS_ADDR")
		}
		store = querycache.NewRedisStore(rt.Redis)
	default:
		store = querycache.NewMemoryStore()
	}

	cache := querycache.New(store,
		querycache.WithLogger(rt.Logger),
		querycache.WithRetention(4*policy.Longest()),
	)
	return cache, policy, nil
}

// BuildApp wires every module onto router. Background consumers stop when
// ctx ends.
func BuildApp(ctx context.Context, router *gin.Engine, rt *Runtime) error {
	cfg := rt.Config
	logger := rt.Logger

	if err := rt.migrate(ctx); err != nil {
		return err
	}

	cache, policy, err := rt.newCache()
	if err != nil {
		return err
	}

	origin := instanceID()
	var publisher querycache.Publisher = querycache.NoopPublisher{}
	if cfg.Kafka.Broker != "" {
		publisher = producer.NewOutboxPublisher(kafka.NewOutboxRepository(rt.SQLDB), origin)
		// A shared redis store already sees every replica's invalidations.
		if cfg.Cache.Store != "redis" {
			startInvalidationConsumer(ctx, cfg, cache, origin, logger)
		}
	}
	inv := querycache.NewInvalidator(cache, publisher, logger)

	return registerModules(router, moduleDeps{
		cfg:    cfg,
		logger: logger,
		gormDB: rt.GormDB,
		rdb:    rt.Redis,
		inv:    inv,
		policy: policy,
	})
}

func startInvalidationConsumer(ctx context.Context, cfg *config.Config, cache *querycache.Cache, origin string, logger *zap.Logger) {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.CacheInvalidatedTopic,
		GroupID:        cfg.Kafka.GroupID + "-" + origin,
		CommitInterval: 0,
		StartOffset:    kafkago.LastOffset,
	})
	go func() {
		defer reader.Close()
		consumer.ConsumeCacheInvalidations(ctx, reader, cache, origin, logger)
	}()
}
