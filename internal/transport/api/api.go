package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/I-am-Milind/backend-ai/internal/service/agent"
	"github.com/I-am-Milind/backend-ai/internal/service/persona"
)

type Chatter interface {
	Handle(ctx context.Context, sessionID, input string, w agent.ReplyWriter) error
}

type PersonaSnapshotter interface {
	Snapshot(ctx context.Context) persona.State
}

type PersonaBuilder interface {
	FromText(ctx context.Context, text string) (*core.Persona, error)
	FromImage(ctx context.Context, r io.Reader) (*core.Persona, string, error)
	Refine(ctx context.Context, sessionID, feedback string) (string, error)
}

// Health is reported verbatim by GET /health.
type Health struct {
	Mode     string
	Provider string
}

// API holds the collaborators behind the HTTP handlers.
type API struct {
	agent    Chatter
	personas PersonaSnapshotter
	builder  PersonaBuilder
	state    core.GlobalState
	health   Health
}

func NewAPI(
	agent Chatter,
	personas PersonaSnapshotter,
	builder PersonaBuilder,
	state core.GlobalState,
	health Health,
) *API {
	return &API{
		agent:    agent,
		personas: personas,
		builder:  builder,
		state:    state,
		health:   health,
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrPersonaNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrUnsupportedUpload):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, core.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(err error) string {
	switch statusFor(err) {
	case http.StatusNotFound:
		return "Persona not found"
	case http.StatusUnsupportedMediaType:
		return "Unsupported upload, expected an image"
	case http.StatusServiceUnavailable:
		return "Cloud AI is unavailable. Try again later."
	default:
		return "Internal error"
	}
}
