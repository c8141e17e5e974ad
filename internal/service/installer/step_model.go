package installer

import (
	"context"
	"fmt"
	"time"

	"github.com/I-am-Milind/backend-ai/internal/config"
	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/I-am-Milind/backend-ai/internal/providers/llm"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// ModelLoader fetches the models offered by the provider described in state.
type ModelLoader func(ctx context.Context, state *InstallState) ([]core.Model, error)

// ModelStep allows selection of the chat model from the chosen provider
type ModelStep struct {
	list     list.Model
	load     ModelLoader
	loading  bool
	fetching bool
	err      error
}

func NewModelStep(load ModelLoader) Step {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select a model"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return &ModelStep{
		list:    l,
		load:    load,
		loading: true,
	}
}

// ProviderModels lists models through the same provider factory used at runtime.
func ProviderModels(ctx context.Context, state *InstallState) ([]core.Model, error) {
	cfg := &config.LLMConfig{
		Provider:         state.Provider(),
		GroqAPIKey:       state.EnvVars["GROQ_API_KEY"],
		OpenAIAPIKey:     state.EnvVars["OPENAI_API_KEY"],
		OpenRouterAPIKey: state.EnvVars["OPENROUTER_API_KEY"],
		OllamaBaseURL:    state.EnvVars[keyOllamaURL],
		CustomBaseURL:    state.EnvVars[keyCustomURL],
		CustomAPIKey:     state.EnvVars["COMPANION_CUSTOM_API_KEY"],
	}
	p, err := llm.NewProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return p.Models(ctx)
}

func (s *ModelStep) Init() tea.Cmd {
	return nil
}

func (s *ModelStep) fetch(state *InstallState) tea.Cmd {
	s.fetching = true
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		models, err := s.load(ctx, state)
		if err != nil {
			return errMsg(err)
		}
		if len(models) == 0 {
			return errMsg(fmt.Errorf("provider returned no models"))
		}

		items := make([]list.Item, 0, len(models))
		for _, m := range models {
			title := m.Name
			if title == "" {
				title = m.ID
			}
			items = append(items, item{id: m.ID, title: title, desc: "ID: " + m.ID})
		}
		return modelsMsg(items)
	}
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.loading && !s.fetching {
		return s, s.fetch(state)
	}

	s.list.SetSize(width, height-4)

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case modelsMsg:
		s.list.SetItems(msg)
		s.loading = false
		s.fetching = false
		return s, nil

	case errMsg:
		s.loading = false
		s.fetching = false
		s.err = msg
		return s, nil

	case tea.KeyMsg:
		if s.err != nil {
			if msg.String() == "enter" {
				s.err = nil
				s.loading = true
			}
			return s, nil
		}

		if msg.String() == "enter" {
			wasFiltering := s.list.FilterState() == list.Filtering
			s.list, cmd = s.list.Update(msg)

			if wasFiltering || s.list.FilterState() == list.Filtering {
				return s, cmd
			}

			if i, ok := s.list.SelectedItem().(item); ok {
				state.EnvVars[keyModel] = i.id
				return nil, nil
			}
			return s, cmd
		}
	}

	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error fetching models: %v", s.err)) +
			"\n\nCheck your API key and connection.\n\n(press enter to retry, ctrl+c to quit)\n"
	}
	if s.loading {
		return fmt.Sprintf("Fetching models from %s...\n", state.Provider())
	}
	return s.list.View()
}
