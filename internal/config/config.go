package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	RedisAddr     string
	RedisPassword string

	DatabaseDSN string

	JWTSecret    string
	JWTAlgorithm string
	TokenTTL     time.Duration
}

// Load reads configuration from the environment, consulting a local
// .env file first if one exists. The signing secret, algorithm and
// token TTL are mandatory: a missing value is a startup error, never
// a per-request one.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppPort: os.Getenv("APP_PORT"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTAlgorithm: os.Getenv("JWT_ALGORITHM"),
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "8000"
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("config: JWT_SECRET is required")
	}
	if cfg.JWTAlgorithm == "" {
		return Config{}, fmt.Errorf("config: JWT_ALGORITHM is required")
	}

	minutes := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES")
	if minutes == "" {
		return Config{}, fmt.Errorf("config: ACCESS_TOKEN_EXPIRE_MINUTES is required")
	}
	n, err := strconv.Atoi(minutes)
	if err != nil || n <= 0 {
		return Config{}, fmt.Errorf("config: invalid ACCESS_TOKEN_EXPIRE_MINUTES %q", minutes)
	}
	cfg.TokenTTL = time.Duration(n) * time.Minute

	return cfg, nil
}
