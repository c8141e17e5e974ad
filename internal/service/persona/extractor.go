package persona

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/I-am-Milind/backend-ai/internal/providers/llm"
	"github.com/I-am-Milind/backend-ai/pkg/log"
	"github.com/google/uuid"
)

const previewLimit = 500

const extractPrompt = `Analyze the following conversation or writing.

Infer personality, tone, and emotional behavior.
Assume emoji usage if emotional cues exist.

Return ONLY valid JSON:
{
  "name": "Optional name",
  "description": "Short personality summary",
  "rules": [
    "Behavior rule",
    "Emoji rule"
  ]
}

TEXT:
%s`

const refinePrompt = `Turn this feedback into ONE short behavior refinement rule.
Do not change identity.

Feedback:
%s`

type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Extractor builds personas from free text or screenshots and refines the
// persona a session is talking to from user feedback.
type Extractor struct {
	llm      core.ChatStreamer
	store    core.PersonaStore
	sessions core.SessionStore
	memory   core.SemanticStore
	ocr      TextExtractor
	uploads  *Uploads
}

func NewExtractor(
	chat core.ChatStreamer,
	store core.PersonaStore,
	sessions core.SessionStore,
	memory core.SemanticStore,
	ocr TextExtractor,
	uploads *Uploads,
) *Extractor {
	return &Extractor{
		llm:      chat,
		store:    store,
		sessions: sessions,
		memory:   memory,
		ocr:      ocr,
		uploads:  uploads,
	}
}

// FromText infers a persona from text, stores it and makes it active.
func (e *Extractor) FromText(ctx context.Context, text string) (*core.Persona, error) {
	reply, err := llm.Complete(ctx, e.llm, []core.Message{
		{Role: core.RoleUser, Content: fmt.Sprintf(extractPrompt, text)},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUpstreamUnavailable, err)
	}

	p := parsePersona(reply)
	if p.Name == "" {
		p.Name = generatedName()
	}
	p.IdentityRules = IdentityRules(p.Name)
	p.Refinements = []string{}

	if err := e.store.Put(ctx, p); err != nil {
		return nil, err
	}
	if err := e.store.SetActive(ctx, p.Name); err != nil {
		return nil, err
	}

	if e.memory != nil && p.Description != "" {
		if err := e.memory.Store(ctx, p.Description); err != nil {
			log.FromCtx(ctx).Warn().Err(err).Str("persona", p.Name).Msg("failed to store persona description")
		}
	}

	log.FromCtx(ctx).Info().Str("persona", p.Name).Msg("persona created")
	return &p, nil
}

// FromImage saves an uploaded screenshot, reads its text and builds a persona
// from it. The returned preview is the first part of the recognized text.
func (e *Extractor) FromImage(ctx context.Context, r io.Reader) (*core.Persona, string, error) {
	path, err := e.uploads.Save(r)
	if err != nil {
		return nil, "", err
	}

	text, err := e.ocr.Extract(ctx, path)
	if err != nil {
		return nil, "", err
	}

	p, err := e.FromText(ctx, text)
	if err != nil {
		return nil, "", err
	}
	return p, preview(text), nil
}

// Refine turns feedback into one behaviour rule on the persona of sessionID.
// Sessions without an override refine the store's active persona.
func (e *Extractor) Refine(ctx context.Context, sessionID, feedback string) (string, error) {
	name, err := e.personaOf(ctx, sessionID)
	if err != nil {
		return "", err
	}

	reply, err := llm.Complete(ctx, e.llm, []core.Message{
		{Role: core.RoleUser, Content: fmt.Sprintf(refinePrompt, feedback)},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrUpstreamUnavailable, err)
	}

	rule := strings.TrimSpace(reply)
	if rule == "" {
		return "", fmt.Errorf("%w: empty refinement", core.ErrUpstreamUnavailable)
	}

	if err := e.store.AddRefinement(ctx, name, rule); err != nil {
		return "", err
	}
	return rule, nil
}

func (e *Extractor) personaOf(ctx context.Context, sessionID string) (string, error) {
	if e.sessions != nil {
		name, err := e.sessions.Persona(ctx, sessionID)
		if err != nil {
			return "", fmt.Errorf("session persona: %w", err)
		}
		if name != "" {
			return name, nil
		}
	}

	p, err := e.store.Active(ctx)
	if err != nil {
		return "", err
	}
	return p.Name, nil
}

// parsePersona reads the first JSON object in reply, falling back to the
// built-in description when nothing usable is found.
func parsePersona(reply string) core.Persona {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return Fallback()
	}

	var raw struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Rules       []string `json:"rules"`
	}
	if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
		return Fallback()
	}

	name := strings.TrimSpace(raw.Name)
	if strings.EqualFold(name, "Optional name") {
		name = ""
	}
	rules := raw.Rules
	if rules == nil {
		rules = []string{}
	}

	return core.Persona{
		Name:        name,
		Description: strings.TrimSpace(raw.Description),
		Rules:       rules,
	}
}

func generatedName() string {
	return "persona_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}

func preview(text string) string {
	if utf8.RuneCountInString(text) <= previewLimit {
		return text
	}
	return string([]rune(text)[:previewLimit])
}
