package main

import (
	"context"
	"log"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/app"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/bootstrap"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/config"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/leave"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/middleware"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/apperror"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := app.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init(leave.RegisterValidation)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{"/api/v1/notifications/stream"}),
		gzip.WithExcludedPathsRegexs([]string{`/export$`}),
	))
	r.Use(middleware.ContextLogger(logger))

	rt, err := app.Connect(cfg, logger)
	if err != nil {
		logger.Fatal("connect infrastructure failed", zap.Error(err))
	}
	defer rt.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// build dependency + routes
	if err := app.BuildApp(ctx, r, rt); err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:            cfg.Server.Port,
			ReadTimeout:     cfg.Server.ReadTimeout,
			WriteTimeout:    cfg.Server.WriteTimeout,
			IdleTimeout:     cfg.Server.IdleTimeout,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
		},
		bootstrap.NewStdoutAuditLogger(),
		cancel,
	)
}
