package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	env core.Envelope
	ok  bool
}

func (s stubResolver) Resolve(context.Context, string) (core.Envelope, bool) {
	return s.env, s.ok
}

type stubGenerator struct {
	tokens  []string
	err     error
	calls   int
	session string
}

func (g *stubGenerator) Stream(_ context.Context, sessionID, _ string, onToken func(string) error) error {
	g.calls++
	g.session = sessionID
	for _, tok := range g.tokens {
		if err := onToken(tok); err != nil {
			return err
		}
	}
	return g.err
}

type recorder struct {
	envs   []core.Envelope
	tokens []string
}

func (r *recorder) WriteEnvelope(env core.Envelope) error {
	r.envs = append(r.envs, env)
	return nil
}

func (r *recorder) WriteToken(token string) error {
	r.tokens = append(r.tokens, token)
	return nil
}

func TestAgent_Handle(t *testing.T) {
	live := core.Envelope{Answer: "42", Sources: []string{"https://a"}, Confidence: 0.8, Mode: core.ModeLive}

	tests := []struct {
		name        string
		resolver    stubResolver
		wantEnvs    []core.Envelope
		wantTokens  []string
		wantGenCall int
	}{
		{
			name:     "resolved query writes one envelope",
			resolver: stubResolver{env: live, ok: true},
			wantEnvs: []core.Envelope{live},
		},
		{
			name:        "unresolved query streams",
			resolver:    stubResolver{},
			wantTokens:  []string{"hi", " there"},
			wantGenCall: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{tokens: []string{"hi", " there"}}
			a := NewAgent(tt.resolver, gen)
			rec := &recorder{}

			require.NoError(t, a.Handle(context.Background(), "s1", "query", rec))
			assert.Equal(t, tt.wantEnvs, rec.envs)
			assert.Equal(t, tt.wantTokens, rec.tokens)
			assert.Equal(t, tt.wantGenCall, gen.calls)
		})
	}
}

func TestAgent_HandlePassesSession(t *testing.T) {
	gen := &stubGenerator{}
	a := NewAgent(stubResolver{}, gen)

	require.NoError(t, a.Handle(context.Background(), "alice", "hello", &recorder{}))
	assert.Equal(t, "alice", gen.session)
}

func TestAgent_HandlePropagatesError(t *testing.T) {
	boom := errors.New("boom")
	a := NewAgent(stubResolver{}, &stubGenerator{err: boom})

	err := a.Handle(context.Background(), "s", "hello", &recorder{})
	assert.ErrorIs(t, err, boom)
}

func TestAgent_Collect(t *testing.T) {
	env := core.Envelope{Answer: "cached", Confidence: 0.6, Mode: core.ModeCached}

	reply, err := NewAgent(stubResolver{env: env, ok: true}, &stubGenerator{}).Collect(context.Background(), "s", "q")
	require.NoError(t, err)
	require.NotNil(t, reply.Envelope)
	assert.Equal(t, env, *reply.Envelope)
	assert.Empty(t, reply.Text)

	reply, err = NewAgent(stubResolver{}, &stubGenerator{tokens: []string{"a", "b"}}).Collect(context.Background(), "s", "q")
	require.NoError(t, err)
	assert.Nil(t, reply.Envelope)
	assert.Equal(t, "ab", reply.Text)
}

func TestAgent_Resolve(t *testing.T) {
	env := core.Envelope{Answer: "x", Mode: core.ModeOffline, Confidence: 0.4}
	got, ok := NewAgent(stubResolver{env: env, ok: true}, &stubGenerator{}).Resolve(context.Background(), "q")
	assert.True(t, ok)
	assert.Equal(t, env, got)
}
