package app

import (
	"context"

	"github.com/allnightmarel0Ng/cinema-auth-service/internal/config"
	"github.com/allnightmarel0Ng/cinema-auth-service/internal/db"
	"github.com/allnightmarel0Ng/cinema-auth-service/internal/logger"
	"github.com/allnightmarel0Ng/cinema-auth-service/internal/redis"
)

type Infra struct {
	DB    *db.DB
	Redis *redis.Client
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	database, err := db.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if err := db.RunMigration(ctx, database); err != nil {
		return nil, err
	}

	logger.Info("database ready", nil)

	redisClient, err := redis.New(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}

	logger.Info("redis ready", nil)

	return &Infra{
		DB:    database,
		Redis: redisClient,
	}, nil
}
