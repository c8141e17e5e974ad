package agent

import (
	"context"
	"strings"

	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/I-am-Milind/backend-ai/pkg/log"
)

// ReplyWriter receives exactly one of the two reply shapes: a single
// envelope, or a sequence of generated fragments.
type ReplyWriter interface {
	WriteEnvelope(env core.Envelope) error
	WriteToken(token string) error
}

type Resolver interface {
	Resolve(ctx context.Context, query string) (core.Envelope, bool)
}

type Generator interface {
	Stream(ctx context.Context, sessionID, input string, onToken func(string) error) error
}

type Agent struct {
	resolver  Resolver
	generator Generator
}

func NewAgent(resolver Resolver, generator Generator) *Agent {
	return &Agent{
		resolver:  resolver,
		generator: generator,
	}
}

// Handle answers input for a session. Factual answers go to WriteEnvelope,
// everything else is streamed through WriteToken.
func (a *Agent) Handle(ctx context.Context, sessionID, input string, w ReplyWriter) error {
	ctx = log.WithComponent(ctx, "agent")

	if env, ok := a.resolver.Resolve(ctx, input); ok {
		return w.WriteEnvelope(env)
	}

	log.FromCtx(ctx).Debug().Str("session", sessionID).Msg("falling back to generative reply")
	return a.generator.Stream(ctx, sessionID, input, w.WriteToken)
}

// Resolve runs the fact pipeline alone, without generation.
func (a *Agent) Resolve(ctx context.Context, query string) (core.Envelope, bool) {
	return a.resolver.Resolve(log.WithComponent(ctx, "agent"), query)
}

// Reply is a fully buffered answer for transports that cannot stream.
type Reply struct {
	Envelope *core.Envelope
	Text     string
}

// Collect runs Handle and buffers the result.
func (a *Agent) Collect(ctx context.Context, sessionID, input string) (Reply, error) {
	var buf bufferWriter
	if err := a.Handle(ctx, sessionID, input, &buf); err != nil {
		return Reply{}, err
	}
	return Reply{Envelope: buf.env, Text: buf.text.String()}, nil
}

type bufferWriter struct {
	env  *core.Envelope
	text strings.Builder
}

func (b *bufferWriter) WriteEnvelope(env core.Envelope) error {
	b.env = &env
	return nil
}

func (b *bufferWriter) WriteToken(token string) error {
	b.text.WriteString(token)
	return nil
}
