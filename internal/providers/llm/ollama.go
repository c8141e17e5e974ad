package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/I-am-Milind/backend-ai/internal/core"
	ollama "github.com/ollama/ollama/api"
)

// Ollama streams replies from a local Ollama daemon through its native API.
type Ollama struct {
	client *ollama.Client
	model  string
}

func NewOllama(baseURL, model string) (*Ollama, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	return &Ollama{
		client: ollama.NewClient(parsed, &http.Client{}),
		model:  model,
	}, nil
}

func (o *Ollama) ChatStream(ctx context.Context, history []core.Message, onToken func(string) error) error {
	messages := make([]ollama.Message, 0, len(history))
	for _, m := range history {
		messages = append(messages, ollama.Message{Role: m.Role, Content: m.Content})
	}

	stream := true
	req := &ollama.ChatRequest{
		Model:    o.model,
		Messages: messages,
		Stream:   &stream,
	}

	err := o.client.Chat(ctx, req, func(resp ollama.ChatResponse) error {
		if resp.Message.Content == "" {
			return nil
		}
		return onToken(resp.Message.Content)
	})
	if err != nil {
		return fmt.Errorf("ollama chat: %w", err)
	}
	return nil
}

func (o *Ollama) Models(ctx context.Context) ([]core.Model, error) {
	resp, err := o.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ollama not available: %w", err)
	}

	models := make([]core.Model, 0, len(resp.Models))
	for _, m := range resp.Models {
		models = append(models, core.Model{ID: m.Name, Name: m.Name})
	}
	return models, nil
}
