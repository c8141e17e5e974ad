package command

import (
	"context"
	"fmt"

	"github.com/I-am-Milind/backend-ai/internal/core"
)

type providerInfo interface {
	GetProvider() string
}

type ModelCommand struct {
	cfg       providerInfo
	state     core.GlobalState
	formatter *ResponseFormatter
}

func NewModelCommand(
	cfg providerInfo,
	state core.GlobalState,
) *ModelCommand {
	return &ModelCommand{
		cfg:       cfg,
		state:     state,
		formatter: NewResponseFormatter(),
	}
}

func (c *ModelCommand) Name() string {
	return "model"
}

func (c *ModelCommand) Description() string {
	return "Show or change current model"
}

func (c *ModelCommand) Execute(ctx context.Context, _ string, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Current Model"),
			c.formatter.Label("Provider", c.cfg.GetProvider()),
			c.formatter.Label("Model", c.state.CurrentModel()),
			c.formatter.Usage("/model [model-id]"),
			c.formatter.Examples([]string{
				"/model llama3-70b-8192",
				"/model llama-3.1-8b-instant",
				"/model gpt-4o-mini",
			}),
		), nil
	}

	if err := c.state.ChangeModel(ctx, args[0]); err != nil {
		return "", fmt.Errorf("failed to set model: %w", err)
	}

	return c.formatter.Success(fmt.Sprintf("Model changed to: `%s/%s`", c.cfg.GetProvider(), c.state.CurrentModel())), nil
}
