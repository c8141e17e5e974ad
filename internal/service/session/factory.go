package session

import (
	"context"
	"fmt"

	"github.com/I-am-Milind/backend-ai/internal/config"
	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/I-am-Milind/backend-ai/pkg/log"
	"github.com/go-redis/redis/v8"
)

type Store interface {
	core.SessionStore
	Close() error
}

func NewStore(ctx context.Context, cfg *config.SessionConfig) (Store, error) {
	log.FromCtx(ctx).Info().
		Str("backend", cfg.Backend).
		Int("window", cfg.ShortMemory).
		Msg("starting session store")

	switch cfg.Backend {
	case "memory", "":
		return NewMemory(cfg.ShortMemory).WithTTL(cfg.TTL), nil
	case "redis":
		store, err := NewRedis(ctx, &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.ShortMemory, cfg.TTL)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown session backend: %s", cfg.Backend)
	}
}
