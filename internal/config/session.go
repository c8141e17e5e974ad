package config

import (
	"context"
	"time"

	"github.com/I-am-Milind/backend-ai/pkg/log"
	"github.com/caarlos0/env/v11"
)

type SessionConfig struct {
	// memory or redis
	Backend     string        `env:"COMPANION_SESSION_BACKEND" envDefault:"memory"`
	ShortMemory int           `env:"COMPANION_SHORT_MEMORY" envDefault:"6"`
	TTL         time.Duration `env:"COMPANION_SESSION_TTL" envDefault:"24h"`

	RedisAddr     string `env:"COMPANION_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"COMPANION_REDIS_PASSWORD"`
	RedisDB       int    `env:"COMPANION_REDIS_DB" envDefault:"0"`
}

func NewSessionConfig(ctx context.Context) *SessionConfig {
	c := &SessionConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Session config")
	}
	return c
}
