package llm

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/I-am-Milind/backend-ai/internal/config"
	"github.com/I-am-Milind/backend-ai/internal/core"
)

// providerBox keeps the stored concrete type stable across swaps.
type providerBox struct {
	Provider
}

// DynamicProvider forwards to the current provider and rebuilds it when the
// model changes at runtime.
type DynamicProvider struct {
	config  *config.LLMConfig
	current atomic.Value
	mu      sync.Mutex
}

func NewDynamicProvider(ctx context.Context, cfg *config.LLMConfig) (*DynamicProvider, error) {
	d := &DynamicProvider{
		config: cfg,
	}

	provider, err := NewProvider(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial provider: %w", err)
	}

	d.current.Store(providerBox{provider})
	return d, nil
}

func (d *DynamicProvider) load() Provider {
	return d.current.Load().(providerBox).Provider
}

func (d *DynamicProvider) ChatStream(ctx context.Context, history []core.Message, onToken func(string) error) error {
	return d.load().ChatStream(ctx, history, onToken)
}

func (d *DynamicProvider) Models(ctx context.Context) ([]core.Model, error) {
	return d.load().Models(ctx)
}

func (d *DynamicProvider) GetModel() string {
	return d.config.GetModel()
}

func (d *DynamicProvider) SetModel(ctx context.Context, model string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.config.SetModel(model); err != nil {
		return err
	}

	next, err := NewProvider(ctx, d.config)
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}

	d.current.Store(providerBox{next})
	return nil
}
