package core

import "context"

type CmdRouter interface {
	Execute(ctx context.Context, sessionID, input string) (string, bool)
	ListCommands() []Command
}

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, sessionID string, args []string) (string, error)
}

type GlobalState interface {
	ChangeModel(ctx context.Context, model string) error
	CurrentModel() string
	SwitchPersona(ctx context.Context, sessionID, name string) error
}
