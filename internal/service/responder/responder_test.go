package responder

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/I-am-Milind/backend-ai/internal/service/persona"
	"github.com/I-am-Milind/backend-ai/internal/service/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedLLM struct {
	tokens   []string
	failAt   int // fail before emitting tokens[failAt]; -1 never fails
	err      error
	received []core.Message
}

func (s *scriptedLLM) ChatStream(ctx context.Context, msgs []core.Message, onToken func(string) error) error {
	s.received = msgs
	for i, tok := range s.tokens {
		if i == s.failAt {
			return s.err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := onToken(tok); err != nil {
			return err
		}
	}
	if s.failAt == len(s.tokens) {
		return s.err
	}
	return nil
}

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newFixture(t *testing.T, llm core.ChatStreamer) (*Responder, *session.Memory, *persona.FileStore) {
	t.Helper()
	personas, err := persona.NewFileStore(filepath.Join(t.TempDir(), "personas.yaml"))
	require.NoError(t, err)
	sessions := session.NewMemory(6)
	r := NewResponder(llm, sessions, personas).WithClock(func() time.Time { return fixedNow })
	return r, sessions, personas
}

func collect(t *testing.T, r *Responder, ctx context.Context, sessionID, input string) (string, error) {
	t.Helper()
	var sb strings.Builder
	err := r.Stream(ctx, sessionID, input, func(tok string) error {
		sb.WriteString(tok)
		return nil
	})
	return sb.String(), err
}

func TestResponder_StreamsAndRecords(t *testing.T) {
	llm := &scriptedLLM{tokens: []string{"I'm ", "great ", "😊"}, failAt: -1}
	r, sessions, _ := newFixture(t, llm)

	out, err := collect(t, r, context.Background(), "s1", "hello, how are you")
	require.NoError(t, err)
	assert.Equal(t, "I'm great 😊", out)

	require.Len(t, llm.received, 2)
	system := llm.received[0]
	assert.Equal(t, core.RoleSystem, system.Role)
	assert.Contains(t, system.Content, "Your name is Aria")
	assert.Contains(t, system.Content, "- Speak gently")
	assert.Contains(t, system.Content, "Current date: 2026-03-14")
	assert.Contains(t, system.Content, "Day of week: Saturday")
	assert.Equal(t, core.Message{Role: core.RoleUser, Content: "hello, how are you"}, llm.received[1])

	history, err := sessions.History(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []core.Message{
		{Role: core.RoleUser, Content: "hello, how are you"},
		{Role: core.RoleAssistant, Content: "I'm great 😊"},
	}, history)
}

func TestResponder_HistoryIsSentAndBounded(t *testing.T) {
	llm := &scriptedLLM{tokens: []string{"ok"}, failAt: -1}
	r, sessions, _ := newFixture(t, llm)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := collect(t, r, ctx, "s1", "msg")
		require.NoError(t, err)
	}

	history, _ := sessions.History(ctx, "s1")
	assert.Len(t, history, 6)
	// system + 6 history + user
	assert.Len(t, llm.received, 8)
}

func TestResponder_UpstreamFailureApologizes(t *testing.T) {
	tests := []struct {
		name   string
		failAt int
		want   string
	}{
		{name: "before first token", failAt: 0, want: Apology},
		{name: "mid stream", failAt: 1, want: "Hel\n\n" + Apology},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &scriptedLLM{tokens: []string{"Hel", "lo"}, failAt: tt.failAt, err: errors.New("502")}
			r, sessions, _ := newFixture(t, llm)

			out, err := collect(t, r, context.Background(), "s1", "hi")
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)

			history, _ := sessions.History(context.Background(), "s1")
			assert.Empty(t, history)
		})
	}
}

func TestResponder_CancelledStreamIsNotRecorded(t *testing.T) {
	llm := &scriptedLLM{tokens: []string{"a", "b", "c"}, failAt: -1}
	r, sessions, _ := newFixture(t, llm)

	ctx, cancel := context.WithCancel(context.Background())
	var got []string
	err := r.Stream(ctx, "s1", "hi", func(tok string) error {
		got = append(got, tok)
		cancel()
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"a"}, got)

	history, _ := sessions.History(context.Background(), "s1")
	assert.Empty(t, history)
}

func TestResponder_WriterFailureStops(t *testing.T) {
	llm := &scriptedLLM{tokens: []string{"a", "b"}, failAt: -1}
	r, sessions, _ := newFixture(t, llm)

	gone := errors.New("client gone")
	err := r.Stream(context.Background(), "s1", "hi", func(string) error { return gone })
	assert.ErrorIs(t, err, gone)

	history, _ := sessions.History(context.Background(), "s1")
	assert.Empty(t, history)
}

func TestResponder_SessionPersonaOverride(t *testing.T) {
	llm := &scriptedLLM{tokens: []string{"hey"}, failAt: -1}
	r, sessions, personas := newFixture(t, llm)
	ctx := context.Background()

	require.NoError(t, personas.Put(ctx, core.Persona{Name: "Luna", Rules: []string{"Whisper"}}))
	require.NoError(t, sessions.SetPersona(ctx, "s2", "Luna"))

	_, err := collect(t, r, ctx, "s2", "hi")
	require.NoError(t, err)
	assert.Contains(t, llm.received[0].Content, "Your name is Luna")
	assert.Contains(t, llm.received[0].Content, "- Whisper")

	_, err = collect(t, r, ctx, "s1", "hi")
	require.NoError(t, err)
	assert.Contains(t, llm.received[0].Content, "Your name is Aria")
}

func TestSystemPrompt_NoPersona(t *testing.T) {
	got := SystemPrompt(nil, fixedNow)
	assert.NotContains(t, got, "IDENTITY")
	assert.Contains(t, got, "Current time: 09:30 UTC")
}

func TestSystemPrompt_Sections(t *testing.T) {
	p := &core.Persona{
		Name:          "Aria",
		Description:   "Warm",
		Rules:         []string{"r1"},
		Refinements:   []string{"f1"},
		IdentityRules: []string{"i1"},
	}
	got := SystemPrompt(p, fixedNow)

	order := []string{"IDENTITY (LOCKED):", "DESCRIPTION:\nWarm", "RULES:\n- r1", "REFINEMENTS:\n- f1", "IDENTITY RULES:\n- i1", "TRUSTED SYSTEM FACTS:"}
	last := -1
	for _, section := range order {
		idx := strings.Index(got, section)
		require.GreaterOrEqual(t, idx, 0, section)
		assert.Greater(t, idx, last, section)
		last = idx
	}
}
