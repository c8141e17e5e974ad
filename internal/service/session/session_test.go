package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/I-am-Milind/backend-ai/internal/config"
	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, window int) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedis(context.Background(), &redis.Options{Addr: mr.Addr()}, window, time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func stores(t *testing.T, window int) map[string]Store {
	r, _ := newRedisStore(t, window)
	return map[string]Store{
		"memory": NewMemory(window),
		"redis":  r,
	}
}

func turn(i int) []core.Message {
	return []core.Message{
		{Role: core.RoleUser, Content: fmt.Sprintf("q%d", i)},
		{Role: core.RoleAssistant, Content: fmt.Sprintf("a%d", i)},
	}
}

func TestStore_WindowKeepsMostRecent(t *testing.T) {
	for name, s := range stores(t, 6) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for i := 1; i <= 4; i++ {
				require.NoError(t, s.Append(ctx, "s1", turn(i)...))
			}

			got, err := s.History(ctx, "s1")
			require.NoError(t, err)
			require.Len(t, got, 6)
			assert.Equal(t, "q2", got[0].Content)
			assert.Equal(t, "a4", got[5].Content)
		})
	}
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	for name, s := range stores(t, 6) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Append(ctx, "alice", turn(1)...))

			got, err := s.History(ctx, "bob")
			require.NoError(t, err)
			assert.Empty(t, got)

			require.NoError(t, s.SetPersona(ctx, "alice", "luna"))
			p, err := s.Persona(ctx, "bob")
			require.NoError(t, err)
			assert.Empty(t, p)

			p, err = s.Persona(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, "luna", p)
		})
	}
}

func TestStore_ClearKeepsPersona(t *testing.T) {
	for name, s := range stores(t, 6) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Append(ctx, "s", turn(1)...))
			require.NoError(t, s.SetPersona(ctx, "s", "luna"))
			require.NoError(t, s.Clear(ctx, "s"))

			got, err := s.History(ctx, "s")
			require.NoError(t, err)
			assert.Empty(t, got)

			p, err := s.Persona(ctx, "s")
			require.NoError(t, err)
			assert.Equal(t, "luna", p)
		})
	}
}

func TestMemory_HistoryIsACopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(6)
	require.NoError(t, m.Append(ctx, "s", turn(1)...))

	got, _ := m.History(ctx, "s")
	got[0].Content = "mutated"

	again, _ := m.History(ctx, "s")
	assert.Equal(t, "q1", again[0].Content)
}

func TestMemory_EvictsIdleSessions(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(6).WithTTL(time.Hour).WithClock(func() time.Time { return now })

	for i := 0; i < 100; i++ {
		require.NoError(t, m.Append(ctx, fmt.Sprintf("client-%d", i), turn(1)...))
	}
	require.NoError(t, m.SetPersona(ctx, "client-0", "luna"))
	assert.Equal(t, 100, m.Len())

	now = now.Add(30 * time.Minute)
	require.NoError(t, m.Append(ctx, "active", turn(1)...))

	now = now.Add(45 * time.Minute)
	require.NoError(t, m.Append(ctx, "new", turn(1)...))
	assert.Equal(t, 2, m.Len())

	got, err := m.History(ctx, "client-0")
	require.NoError(t, err)
	assert.Empty(t, got)
	p, err := m.Persona(ctx, "client-0")
	require.NoError(t, err)
	assert.Empty(t, p)

	got, err = m.History(ctx, "active")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestMemory_NoTTLKeepsSessions(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(6).WithClock(func() time.Time { return now })
	require.NoError(t, m.Append(ctx, "s", turn(1)...))

	now = now.Add(1000 * time.Hour)
	got, err := m.History(ctx, "s")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRedis_AppendSetsTTL(t *testing.T) {
	s, mr := newRedisStore(t, 6)
	require.NoError(t, s.Append(context.Background(), "s", turn(1)...))
	assert.Equal(t, time.Hour, mr.TTL(historyKey("s")))

	mr.FastForward(2 * time.Hour)
	got, err := s.History(context.Background(), "s")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewStore(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := NewStore(context.Background(), &config.SessionConfig{Backend: "memory", ShortMemory: 6})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = NewStore(context.Background(), &config.SessionConfig{Backend: "redis", ShortMemory: 6, RedisAddr: mr.Addr()})
	require.NoError(t, err)
	assert.IsType(t, &Redis{}, s)
	require.NoError(t, s.Close())

	_, err = NewStore(context.Background(), &config.SessionConfig{Backend: "etcd"})
	assert.Error(t, err)
}

func TestNewStore_RedisDownReturnsNilStore(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	s, err := NewStore(context.Background(), &config.SessionConfig{Backend: "redis", RedisAddr: addr})
	require.Error(t, err)
	assert.Nil(t, s)
}
