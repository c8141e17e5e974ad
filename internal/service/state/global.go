package state

import (
	"context"
	"fmt"

	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/I-am-Milind/backend-ai/pkg/log"
)

type provider interface {
	SetModel(ctx context.Context, model string) error
	GetModel() string
}

// GlobalState applies runtime switches requested by chat commands and the HTTP API.
type GlobalState struct {
	provider provider
	personas core.PersonaStore
	sessions core.SessionStore
}

func NewGlobalState(
	provider provider,
	personas core.PersonaStore,
	sessions core.SessionStore,
) *GlobalState {
	return &GlobalState{
		provider: provider,
		personas: personas,
		sessions: sessions,
	}
}

func (s *GlobalState) ChangeModel(ctx context.Context, model string) error {
	return s.provider.SetModel(ctx, model)
}

func (s *GlobalState) CurrentModel() string {
	return s.provider.GetModel()
}

// SwitchPersona pins name to the session, makes it the default for new
// sessions and clears the session's short-term history.
func (s *GlobalState) SwitchPersona(ctx context.Context, sessionID, name string) error {
	if _, err := s.personas.Get(ctx, name); err != nil {
		return err
	}
	if err := s.sessions.SetPersona(ctx, sessionID, name); err != nil {
		return fmt.Errorf("set session persona: %w", err)
	}
	if err := s.personas.SetActive(ctx, name); err != nil {
		return err
	}
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear session history: %w", err)
	}

	log.FromCtx(ctx).Info().Str("session", sessionID).Str("persona", name).Msg("persona switched")
	return nil
}
