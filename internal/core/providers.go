package core

import "context"

// ChatStreamer produces a reply for role-tagged messages, one fragment at a time.
// Returning an error from onToken aborts the stream with that error.
type ChatStreamer interface {
	ChatStream(ctx context.Context, messages []Message, onToken func(string) error) error
}

type ModelLister interface {
	Models(ctx context.Context) ([]Model, error)
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// SearchBackend returns zero or more snippets for a query.
// A backend without credentials returns no snippets and no error.
type SearchBackend interface {
	Name() string
	Search(ctx context.Context, query string) ([]Snippet, error)
}

type Searcher interface {
	Search(ctx context.Context, query string) SearchResult
}

type ConnectivityProbe interface {
	Online(ctx context.Context) bool
}
