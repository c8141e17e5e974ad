package core

import "time"

const (
	AppName       = "Companion"
	AppUserAgent  = "Companion-Backend/0.1"
	RepositoryURL = "https://github.com/I-am-Milind/backend-ai"
	AppVersion    = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Mode tags where an answer came from.
type Mode string

const (
	ModeSemanticMemory Mode = "semantic-memory"
	ModeCached         Mode = "cached"
	ModeLive           Mode = "live"
	ModeOfflineStale   Mode = "offline-stale"
	ModeOffline        Mode = "offline"
	ModeGenerative     Mode = "generative"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Envelope is the terminal answer of the resolution pipeline.
type Envelope struct {
	Answer     string   `json:"answer"`
	Sources    []string `json:"sources,omitempty"`
	Confidence float64  `json:"confidence"`
	Mode       Mode     `json:"mode"`
}

// FactEntry is one verified answer cached under a normalized query key.
// Updated carries a calendar date (midnight UTC).
type FactEntry struct {
	Key     string    `json:"key"`
	Answer  string    `json:"answer"`
	Sources []string  `json:"sources"`
	Updated time.Time `json:"updated"`
}

type SemanticRecord struct {
	ID        string    `json:"id"`
	Embedding []float32 `json:"-"`
	Document  string    `json:"document"`
	CreatedAt time.Time `json:"created_at"`
}

// Snippet is a single (text, url) pair returned by a search backend.
type Snippet struct {
	Text string
	URL  string
}

type SearchResult struct {
	Answer  string
	Sources []string
}

type Model struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
