package installer

import "strings"

const (
	keyProvider      = "COMPANION_LLM_PROVIDER"
	keyModel         = "COMPANION_MODEL"
	keyOllamaURL     = "COMPANION_OLLAMA_BASE_URL"
	keyCustomURL     = "COMPANION_CUSTOM_BASE_URL"
	keyBingAPIKey    = "BING_API_KEY"
	keyChannel       = "COMPANION_CHANNEL"
	keyEnableHTTP    = "COMPANION_ENABLE_HTTP"
	keyEnableTG      = "COMPANION_ENABLE_TELEGRAM"
	keyEnableCLI     = "COMPANION_ENABLE_CLI"
	keyTelegramToken = "COMPANION_TELEGRAM_TOKEN"
	keyTelegramOwner = "COMPANION_TELEGRAM_OWNER_ID"
	keyDebug         = "COMPANION_DEBUG"
)

type InstallState struct {
	EnvVars map[string]string
}

func NewInstallState() *InstallState {
	return &InstallState{
		EnvVars: make(map[string]string),
	}
}

func (s *InstallState) Provider() string {
	return strings.ToLower(s.EnvVars[keyProvider])
}

func (s *InstallState) Channel() string {
	return strings.ToLower(s.EnvVars[keyChannel])
}
