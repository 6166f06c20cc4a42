package app

import (
	"context"
	"database/sql"

	"github.com/eliezerb2/presence/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infra is the set of connections every process opens.
type Infra struct {
	DB     *sql.DB
	GormDB *gorm.DB
	Redis  *redis.Client
}

func (i *Infra) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.DB != nil {
		_ = i.DB.Close()
	}
}

func Connect(ctx context.Context, cfg Config) (*Infra, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, 5)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := Migrate(ctx, gormDB); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return &Infra{DB: sqlDB, GormDB: gormDB, Redis: rdb}, nil
}

// Open connects and builds the services without any HTTP surface.
func Open(ctx context.Context, cfg Config) (*Infra, *Modules, error) {
	infra, err := Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return infra, buildModules(cfg, infra.DB, infra.GormDB, infra.Redis), nil
}

func BuildApp(router *gin.Engine, cfg Config) (*Infra, error) {
	infra, modules, err := Open(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	zap.L().Info("infrastructure ready",
		zap.String("timezone", cfg.Location.String()),
		zap.Bool("notify_enabled", cfg.NotifyEnabled),
	)

	registerModules(router, cfg, modules, infra.Redis)
	return infra, nil
}
