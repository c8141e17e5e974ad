package persona

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/I-am-Milind/backend-ai/internal/core"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultPersonas []byte

// State is the on-disk layout of the persona file.
type State struct {
	Active   string                  `json:"active_persona" yaml:"active_persona"`
	Personas map[string]core.Persona `json:"personas" yaml:"personas"`
}

// FileStore keeps personas in a single YAML file. Every mutation rewrites
// the file through a temp file and rename.
type FileStore struct {
	mu    sync.RWMutex
	path  string
	state State
}

// NewFileStore loads path, seeding it with the built-in persona when missing.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := yaml.Unmarshal(defaultPersonas, &s.state); err != nil {
			return nil, fmt.Errorf("decode default personas: %w", err)
		}
		if err := s.save(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("read personas: %w", err)
	default:
		if err := yaml.Unmarshal(data, &s.state); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	if s.state.Personas == nil {
		s.state.Personas = make(map[string]core.Persona)
	}
	return s, nil
}

func (s *FileStore) save() error {
	data, err := yaml.Marshal(&s.state)
	if err != nil {
		return fmt.Errorf("encode personas: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create persona directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".personas-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write personas: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace personas: %w", err)
	}
	return nil
}

func clonePersona(p core.Persona) *core.Persona {
	p.Rules = slices.Clone(p.Rules)
	p.Refinements = slices.Clone(p.Refinements)
	p.IdentityRules = slices.Clone(p.IdentityRules)
	return &p
}

func (s *FileStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.state.Personas))
	for name := range s.state.Personas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *FileStore) Get(_ context.Context, name string) (*core.Persona, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.state.Personas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrPersonaNotFound, name)
	}
	return clonePersona(p), nil
}

func (s *FileStore) Active(ctx context.Context) (*core.Persona, error) {
	s.mu.RLock()
	active := s.state.Active
	s.mu.RUnlock()

	if active == "" {
		return nil, core.ErrPersonaNotFound
	}
	return s.Get(ctx, active)
}

func (s *FileStore) SetActive(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Personas[name]; !ok {
		return fmt.Errorf("%w: %s", core.ErrPersonaNotFound, name)
	}
	s.state.Active = name
	return s.save()
}

// Put creates or replaces the persona stored under p.Name.
func (s *FileStore) Put(_ context.Context, p core.Persona) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errors.New("persona name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Personas[p.Name] = *clonePersona(p)
	return s.save()
}

// AddRefinement appends rule to the named persona, or to the active one when name is empty.
func (s *FileStore) AddRefinement(_ context.Context, name, rule string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		name = s.state.Active
	}
	p, ok := s.state.Personas[name]
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrPersonaNotFound, name)
	}
	p.Refinements = append(slices.Clone(p.Refinements), rule)
	s.state.Personas[name] = p
	return s.save()
}

// Snapshot returns a copy of the whole persona file.
func (s *FileStore) Snapshot(_ context.Context) State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := State{
		Active:   s.state.Active,
		Personas: make(map[string]core.Persona, len(s.state.Personas)),
	}
	for name, p := range s.state.Personas {
		out.Personas[name] = *clonePersona(p)
	}
	return out
}
