package installer

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// BingKeyStep collects the optional web search key used by live lookups.
type BingKeyStep struct {
	input textinput.Model
}

func NewBingKeyStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 128
	ti.Width = 40
	ti.Placeholder = "Optional - press Enter to skip"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	return &BingKeyStep{input: ti}
}

func (s *BingKeyStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *BingKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		state.EnvVars[keyBingAPIKey] = s.input.Value()
		return nil, nil
	}
	return s, cmd
}

func (s *BingKeyStep) View(state *InstallState) string {
	return "Enter your Bing Web Search key (live facts fall back to Wikipedia without it):\n\n" +
		s.input.View() + "\n\n(press enter to confirm)\n"
}
