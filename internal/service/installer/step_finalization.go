package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep computes derived values and final env var formatting
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	channel := state.Channel()

	// The HTTP API stays on unless the user picked another channel exclusively.
	state.EnvVars[keyEnableHTTP] = boolEnv(channel == "" || channel == "http")
	state.EnvVars[keyEnableTG] = boolEnv(channel == "telegram" && state.EnvVars[keyTelegramToken] != "")
	state.EnvVars[keyEnableCLI] = boolEnv(channel == "cli")

	if state.EnvVars[keyDebug] == "" {
		state.EnvVars[keyDebug] = "0"
	}

	// Only used as intermediate state
	delete(state.EnvVars, keyChannel)

	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}

func boolEnv(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
