package main

import (
	"log"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/app"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/config"

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

	rt, err := app.Connect(cfg, logger)
	if err != nil {
		logger.Fatal("connect infrastructure failed", zap.Error(err))
	}
	defer rt.Close()

	if err := app.RunWorker(rt); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
