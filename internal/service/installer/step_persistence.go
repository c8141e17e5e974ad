package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/I-am-Milind/backend-ai/internal/config"
	"github.com/I-am-Milind/backend-ai/internal/service/persona"
	"github.com/I-am-Milind/backend-ai/pkg/env"
	tea "github.com/charmbracelet/bubbletea"
)

// SaveEnvStep writes the collected configuration to the runtime .env file
type SaveEnvStep struct {
	runtimePath string
	err         error
	saved       bool
}

func NewSaveEnvStep(runtimePath string) Step {
	return &SaveEnvStep{runtimePath: runtimePath}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}
	if s.err != nil {
		return s, nil
	}

	if err := SaveEnv(s.runtimePath, state); err != nil {
		s.err = err
		return s, nil
	}

	s.saved = true
	return nil, nil
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return "Configuration saved successfully!\n"
	}
	return "Saving configuration...\n"
}

// SaveEnv writes state to <runtimePath>/.env, refusing to overwrite an existing file.
func SaveEnv(runtimePath string, state *InstallState) error {
	if err := os.MkdirAll(runtimePath, 0755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	envPath := filepath.Join(runtimePath, ".env")
	if _, err := os.Stat(envPath); err == nil {
		return fmt.Errorf(".env file already exists at %s", envPath)
	}

	return os.WriteFile(envPath, []byte(env.MarshalMap(state.EnvVars)), 0600)
}

// SeedPersonasStep writes the default persona file and the uploads directory
type SeedPersonasStep struct {
	runtimePath string
	err         error
	done        bool
}

func NewSeedPersonasStep(runtimePath string) Step {
	return &SeedPersonasStep{runtimePath: runtimePath}
}

func (s *SeedPersonasStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SeedPersonasStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.done {
		return nil, nil
	}
	if s.err != nil {
		return s, nil
	}

	if err := SeedPersonas(s.runtimePath); err != nil {
		s.err = err
		return s, nil
	}

	s.done = true
	return nil, nil
}

func (s *SeedPersonasStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.done {
		return "Personas initialized successfully!\n"
	}
	return "Initializing personas...\n"
}

// SeedPersonas creates the persona file from the built-in defaults if it is missing.
func SeedPersonas(runtimePath string) error {
	app := config.AppConfig{RuntimePath: runtimePath}

	if err := os.MkdirAll(app.GetUploadsPath(), 0700); err != nil {
		return fmt.Errorf("failed to create uploads directory: %w", err)
	}

	store, err := persona.NewFileStore(app.GetPersonaPath())
	if err != nil {
		return err
	}

	if _, err := store.Active(context.Background()); err != nil {
		return fmt.Errorf("seed personas: %w", err)
	}
	return nil
}
