package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/I-am-Milind/backend-ai/internal/core"
)

type PersonaCommand struct {
	personas  core.PersonaStore
	sessions  core.SessionStore
	state     core.GlobalState
	formatter *ResponseFormatter
}

func NewPersonaCommand(
	personas core.PersonaStore,
	sessions core.SessionStore,
	state core.GlobalState,
) *PersonaCommand {
	return &PersonaCommand{
		personas:  personas,
		sessions:  sessions,
		state:     state,
		formatter: NewResponseFormatter(),
	}
}

func (c *PersonaCommand) Name() string {
	return "persona"
}

func (c *PersonaCommand) Description() string {
	return "List personas or switch to one"
}

func (c *PersonaCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) > 0 {
		name := args[0]
		if err := c.state.SwitchPersona(ctx, sessionID, name); err != nil {
			if errors.Is(err, core.ErrPersonaNotFound) {
				return "", fmt.Errorf("persona %q not found", name)
			}
			return "", err
		}
		return c.formatter.Combine(
			c.formatter.Success(fmt.Sprintf("Persona switched to: `%s`", name)),
			c.formatter.Tip("Conversation history was cleared"),
		), nil
	}

	names, err := c.personas.List(ctx)
	if err != nil {
		return "", err
	}

	current := c.current(ctx, sessionID)
	items := make([]string, 0, len(names))
	for _, name := range names {
		if name == current {
			items = append(items, fmt.Sprintf("**%s** (active)", name))
			continue
		}
		items = append(items, name)
	}

	return c.formatter.Combine(
		c.formatter.Info("Personas"),
		c.formatter.List(items),
		c.formatter.Usage("/persona [name]"),
	), nil
}

func (c *PersonaCommand) current(ctx context.Context, sessionID string) string {
	if name, err := c.sessions.Persona(ctx, sessionID); err == nil && name != "" {
		return name
	}
	if p, err := c.personas.Active(ctx); err == nil {
		return p.Name
	}
	return ""
}
