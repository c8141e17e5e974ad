package command

import (
	"github.com/I-am-Milind/backend-ai/internal/core"
)

func NewCommands(
	cfg providerInfo,
	state core.GlobalState,
	personas core.PersonaStore,
	sessions core.SessionStore,
	facts factLister,
) []core.Command {
	return []core.Command{
		NewModelCommand(cfg, state),
		NewPersonaCommand(personas, sessions, state),
		NewFactsCommand(facts),
	}
}
