package config

import (
	"context"
	"time"

	"github.com/I-am-Milind/backend-ai/pkg/log"
	"github.com/caarlos0/env/v11"
)

type HTTPConfig struct {
	Addr           string        `env:"COMPANION_HTTP_ADDR" envDefault:":8000"`
	AllowOrigins   []string      `env:"COMPANION_CORS_ORIGINS" envDefault:"*" envSeparator:","`
	MaxUploadBytes int64         `env:"COMPANION_MAX_UPLOAD_BYTES" envDefault:"10485760"`
	ReadTimeout    time.Duration `env:"COMPANION_HTTP_READ_TIMEOUT" envDefault:"30s"`
}

func NewHTTPConfig(ctx context.Context) *HTTPConfig {
	c := &HTTPConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse HTTP config")
	}
	return c
}
