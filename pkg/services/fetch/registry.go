package fetch

import (
	"fmt"
	"sync"
)

// Factory creates a Fetcher from a remote configuration. Synthetic sources
// ignore the config.
type Factory func(cfg RemoteConfig) (Fetcher, error)

// Registry manages data source factories, so runtimes can select a source by
// name without knowing its construction details.
type Registry struct {
	mu        sync.RWMutex
	factories map[DataSource]Factory
}

// NewRegistry creates a registry pre-populated with the built-in sources.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[DataSource]Factory)}
	_ = r.Register(SourceRemoteAPI, NewRemote)
	_ = r.Register(SourceSynthetic, func(RemoteConfig) (Fetcher, error) {
		return NewSyntheticFixture(), nil
	})
	return r
}

// Register adds a data source factory.
func (r *Registry) Register(name DataSource, factory Factory) error {
	if name == "" {
		return fmt.Errorf("data source name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("data source %q is already registered", name)
	}

	r.factories[name] = factory
	return nil
}

// Create instantiates a fetcher for the named data source.
func (r *Registry) Create(name DataSource, cfg RemoteConfig) (Fetcher, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("data source %q is not registered", name)
	}

	return factory(cfg)
}

// Sources lists the registered data source names.
func (r *Registry) Sources() []DataSource {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sources := make([]DataSource, 0, len(r.factories))
	for name := range r.factories {
		sources = append(sources, name)
	}
	return sources
}
