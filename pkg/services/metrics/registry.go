package metrics

import (
	"fmt"
	"sync"

	"github.com/de-tools/feature-tracker/pkg/services/config"
)

// SourceFactory is a function type that creates a Source from a config
type SourceFactory func(cfg *config.Config) (Source, error)

// Registry manages metrics provider factories
type Registry interface {
	// Register adds a new provider factory
	Register(provider string, factory SourceFactory) error
	// Create instantiates a source for the specified provider using the provided config
	Create(provider string, cfg *config.Config) (Source, error)
	// ListProviders returns a list of registered providers
	ListProviders() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]SourceFactory
}

// NewRegistry creates a new provider registry
func NewRegistry() Registry {
	return &registry{
		factories: make(map[string]SourceFactory),
	}
}

func (r *registry) Register(provider string, factory SourceFactory) error {
	if provider == "" {
		return fmt.Errorf("provider name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[provider]; exists {
		return fmt.Errorf("provider %q is already registered", provider)
	}

	r.factories[provider] = factory
	return nil
}

func (r *registry) Create(provider string, cfg *config.Config) (Source, error) {
	r.mu.RLock()
	factory, exists := r.factories[provider]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("provider %q is not registered", provider)
	}

	return factory(cfg)
}

func (r *registry) ListProviders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]string, 0, len(r.factories))
	for provider := range r.factories {
		providers = append(providers, provider)
	}
	return providers
}
