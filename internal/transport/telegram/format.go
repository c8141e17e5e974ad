package telegram

import (
	"fmt"
	"strings"

	"github.com/I-am-Milind/backend-ai/internal/core"
)

// FormatEnvelope renders a resolved fact as Markdown for chat delivery.
func FormatEnvelope(env core.Envelope) string {
	var b strings.Builder
	b.WriteString(env.Answer)
	b.WriteString("\n")

	if len(env.Sources) > 0 {
		b.WriteString("\n**Sources**:\n")
		for _, src := range env.Sources {
			fmt.Fprintf(&b, "- %s\n", src)
		}
	}

	fmt.Fprintf(&b, "\n_confidence %.2f · %s_\n", env.Confidence, env.Mode)
	return b.String()
}
