package core

import "context"

type Persona struct {
	Name          string   `json:"name" yaml:"name"`
	Description   string   `json:"description" yaml:"description"`
	Rules         []string `json:"rules" yaml:"rules"`
	Refinements   []string `json:"refinements,omitempty" yaml:"refinements,omitempty"`
	IdentityRules []string `json:"identity_rules,omitempty" yaml:"identity_rules,omitempty"`
}

type PersonaStore interface {
	List(ctx context.Context) ([]string, error)
	Get(ctx context.Context, name string) (*Persona, error)
	Active(ctx context.Context) (*Persona, error)
	SetActive(ctx context.Context, name string) error
	Put(ctx context.Context, p Persona) error
	AddRefinement(ctx context.Context, name, rule string) error
}
