package responder

import (
	"strings"
	"time"

	"github.com/I-am-Milind/backend-ai/internal/core"
)

// SystemPrompt renders the persona contract followed by trusted date and time facts.
func SystemPrompt(p *core.Persona, now time.Time) string {
	var b strings.Builder

	if p != nil {
		b.WriteString("You are roleplaying as a REAL PERSON.\n\n")
		b.WriteString("IDENTITY (LOCKED):\n")
		b.WriteString("- Your name is " + p.Name + "\n")
		b.WriteString("- You are NOT the user\n")
		b.WriteString("- You are NOT an AI\n")
		b.WriteString("- Never break character\n")

		if p.Description != "" {
			b.WriteString("\nDESCRIPTION:\n" + p.Description + "\n")
		}
		writeList(&b, "RULES", p.Rules)
		writeList(&b, "REFINEMENTS", p.Refinements)
		writeList(&b, "IDENTITY RULES", p.IdentityRules)
		b.WriteString("\n")
	} else {
		b.WriteString("You are a warm, friendly conversational companion.\n\n")
	}

	b.WriteString("TRUSTED SYSTEM FACTS:\n")
	b.WriteString("- Current date: " + now.Format("2006-01-02") + "\n")
	b.WriteString("- Day of week: " + now.Weekday().String() + "\n")
	b.WriteString("- Current time: " + now.Format("15:04 MST") + "\n")
	b.WriteString("These facts are authoritative. Never contradict them.\n")

	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n" + title + ":\n")
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
}
