package config

import (
	"os"
	"path/filepath"
)

func GetRuntimePath() string {
	path := os.Getenv("COMPANION_RUNTIME_PATH")
	if path == "" {
		path = ".companion"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}

func GetEnvPath() string {
	return filepath.Join(GetRuntimePath(), ".env")
}

func IsDebug() bool {
	return os.Getenv("COMPANION_DEBUG") == "1"
}
