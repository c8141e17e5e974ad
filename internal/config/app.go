package config

import (
	"context"
	"path/filepath"

	"github.com/I-am-Milind/backend-ai/pkg/log"
	"github.com/caarlos0/env/v11"
)

type AppConfig struct {
	RuntimePath string `env:"COMPANION_RUNTIME_PATH"`

	// Transport flags
	EnableHTTP     bool `env:"COMPANION_ENABLE_HTTP" envDefault:"true"`
	EnableTelegram bool `env:"COMPANION_ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"COMPANION_ENABLE_CLI" envDefault:"false"`

	// OCR binary used for persona extraction from screenshots.
	TesseractPath string `env:"COMPANION_TESSERACT_PATH" envDefault:"tesseract"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	c.RuntimePath = GetRuntimePath()
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "companion.db")
}

func (c AppConfig) GetPersonaPath() string {
	return filepath.Join(c.RuntimePath, "personas.yaml")
}

func (c AppConfig) GetUploadsPath() string {
	return filepath.Join(c.RuntimePath, "uploads")
}

func (c AppConfig) GetHistoryFilePath() string {
	return filepath.Join(c.RuntimePath, "input_history")
}
