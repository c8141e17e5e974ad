package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/go-redis/redis/v8"
)

const keyPrefix = "companion:session:"

// Redis shares session state across processes. Each session key expires
// after ttl of inactivity.
type Redis struct {
	client *redis.Client
	window int
	ttl    time.Duration
}

func NewRedis(ctx context.Context, opts *redis.Options, window int, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &Redis{
		client: client,
		window: window,
		ttl:    ttl,
	}, nil
}

func historyKey(sessionID string) string { return keyPrefix + sessionID + ":history" }
func personaKey(sessionID string) string { return keyPrefix + sessionID + ":persona" }

func (r *Redis) History(ctx context.Context, sessionID string) ([]core.Message, error) {
	raw, err := r.client.LRange(ctx, historyKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	msgs := make([]core.Message, 0, len(raw))
	for _, item := range raw {
		var m core.Message
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			return nil, fmt.Errorf("decode history entry: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

func (r *Redis) Append(ctx context.Context, sessionID string, msgs ...core.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	values := make([]any, 0, len(msgs))
	for _, m := range msgs {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("encode message: %w", err)
		}
		values = append(values, data)
	}

	key := historyKey(sessionID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, values...)
		if r.window > 0 {
			pipe.LTrim(ctx, key, int64(-r.window), -1)
		}
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

func (r *Redis) Clear(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, historyKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func (r *Redis) Persona(ctx context.Context, sessionID string) (string, error) {
	name, err := r.client.Get(ctx, personaKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load persona: %w", err)
	}
	return name, nil
}

func (r *Redis) SetPersona(ctx context.Context, sessionID, name string) error {
	if err := r.client.Set(ctx, personaKey(sessionID), name, r.ttl).Err(); err != nil {
		return fmt.Errorf("save persona: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
