package main

import (
	"hrms/internal/app"
	"hrms/internal/config"
	"hrms/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	cfg, err := config.Load("")
	if err != nil {
		logger.Fatal("load config failed", zap.Error(err))
	}

	if err := app.RunSweep(cfg); err != nil {
		logger.Fatal("run sweep failed", zap.Error(err))
	}
}
