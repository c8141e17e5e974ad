package ui

import (
	"fmt"
	"strings"

	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/charmbracelet/lipgloss"
)

var (
	// TitleStyle ANSI 6 (Cyan) reads well on both dark and light terminals
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	// UsageStyle ANSI 2 (Green) for arguments and usage lines
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle ANSI 8 (Bright Black) keeps descriptions dim
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// FlagStyle ANSI 3 (Yellow) for flags
	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// RenderEnvelope formats a resolved fact for a terminal.
func RenderEnvelope(env core.Envelope) string {
	var b strings.Builder
	b.WriteString(env.Answer)
	b.WriteString("\n")

	for _, src := range env.Sources {
		b.WriteString(UsageStyle.Render("  ↳ "+src) + "\n")
	}
	b.WriteString(DescStyle.Render(fmt.Sprintf("  [%s · confidence %.2f]", env.Mode, env.Confidence)))
	b.WriteString("\n")
	return b.String()
}
