package core

import "context"

// SessionStore owns per-session conversational state.
type SessionStore interface {
	History(ctx context.Context, sessionID string) ([]Message, error)
	// Append adds messages atomically and keeps only the most recent window.
	Append(ctx context.Context, sessionID string, msgs ...Message) error
	Clear(ctx context.Context, sessionID string) error
	Persona(ctx context.Context, sessionID string) (string, error)
	SetPersona(ctx context.Context, sessionID, name string) error
}
