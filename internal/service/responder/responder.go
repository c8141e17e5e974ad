package responder

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/I-am-Milind/backend-ai/pkg/log"
)

// Apology is streamed in place of a reply when the generative backend fails.
const Apology = "⚠️ Cloud AI is unavailable. Try again later."

// Responder streams persona-constrained replies and records completed
// exchanges in the caller's session.
type Responder struct {
	llm      core.ChatStreamer
	sessions core.SessionStore
	personas core.PersonaStore
	now      func() time.Time
}

func NewResponder(llm core.ChatStreamer, sessions core.SessionStore, personas core.PersonaStore) *Responder {
	return &Responder{
		llm:      llm,
		sessions: sessions,
		personas: personas,
		now:      time.Now,
	}
}

// WithClock overrides the time source used for the trusted facts block.
func (r *Responder) WithClock(now func() time.Time) *Responder {
	r.now = now
	return r
}

// Stream generates a reply for input, passing each fragment to onToken.
// A failing onToken or a cancelled ctx stops the stream and nothing is recorded.
func (r *Responder) Stream(ctx context.Context, sessionID, input string, onToken func(string) error) error {
	logger := log.FromCtx(ctx).With().Str("session", sessionID).Logger()

	history, err := r.sessions.History(ctx, sessionID)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load session history")
		history = nil
	}

	userMsg := core.Message{Role: core.RoleUser, Content: input}
	messages := make([]core.Message, 0, len(history)+2)
	messages = append(messages, core.Message{Role: core.RoleSystem, Content: SystemPrompt(r.persona(ctx, sessionID), r.now())})
	messages = append(messages, history...)
	messages = append(messages, userMsg)

	var (
		full     strings.Builder
		writeErr error
	)
	err = r.llm.ChatStream(ctx, messages, func(token string) error {
		if werr := onToken(token); werr != nil {
			writeErr = werr
			return werr
		}
		full.WriteString(token)
		return nil
	})

	if writeErr != nil {
		return writeErr
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		logger.Debug().Err(ctxErr).Msg("stream cancelled")
		return ctxErr
	}
	if err != nil {
		logger.Error().Err(err).Msg("generative backend failed")
		apology := Apology
		if full.Len() > 0 {
			apology = "\n\n" + Apology
		}
		return onToken(apology)
	}

	reply := core.Message{Role: core.RoleAssistant, Content: full.String()}
	if err := r.sessions.Append(ctx, sessionID, userMsg, reply); err != nil {
		logger.Error().Err(err).Msg("failed to record exchange")
	}
	return nil
}

// persona resolves the session override first, then the store's active persona.
func (r *Responder) persona(ctx context.Context, sessionID string) *core.Persona {
	logger := log.FromCtx(ctx)

	if name, err := r.sessions.Persona(ctx, sessionID); err != nil {
		logger.Warn().Err(err).Msg("failed to load session persona")
	} else if name != "" {
		p, err := r.personas.Get(ctx, name)
		if err == nil {
			return p
		}
		logger.Warn().Err(err).Str("persona", name).Msg("session persona unavailable")
	}

	p, err := r.personas.Active(ctx)
	if err != nil {
		if !errors.Is(err, core.ErrPersonaNotFound) {
			logger.Warn().Err(err).Msg("failed to load active persona")
		}
		return nil
	}
	return p
}
