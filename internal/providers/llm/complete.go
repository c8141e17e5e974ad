package llm

import (
	"context"
	"strings"

	"github.com/I-am-Milind/backend-ai/internal/core"
)

// Complete drains a streamed reply into a single string.
func Complete(ctx context.Context, s core.ChatStreamer, messages []core.Message) (string, error) {
	var sb strings.Builder
	err := s.ChatStream(ctx, messages, func(token string) error {
		sb.WriteString(token)
		return nil
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(sb.String()), nil
}
