package main

import (
	"context"
	"os"
	"time"

	"github.com/eliezerb2/presence/internal/app"
	"github.com/eliezerb2/presence/internal/cli"
	"github.com/eliezerb2/presence/internal/shared/apperror"

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

	cfg, err := app.LoadConfig()
	if err != nil {
		logger.Fatal("load config failed", zap.Error(err))
	}
	// migrate is an explicit command here.
	cfg.AutoMigrate = false

	open := func(ctx context.Context) (*cli.Env, error) {
		infra, modules, err := app.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &cli.Env{
			Sweeper:   modules.Sweeper,
			Evaluator: modules.Claims,
			Migrate: func(ctx context.Context) error {
				return app.Migrate(ctx, infra.GormDB)
			},
			Schedule: cfg.Schedule(),
			Now:      time.Now,
			Close:    infra.Close,
		}, nil
	}

	if err := cli.NewRootCommand(open).Execute(); err != nil {
		logger.Error("presencectl failed", zap.Error(err))
		os.Exit(1)
	}
}
