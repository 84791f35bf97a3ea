package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/voxify/voxify/pkg/player"
)

// ErrBackendNotRegistered is returned by [Registry.CreateBackend] when no
// factory has been registered under the requested backend name.
var ErrBackendNotRegistered = errors.New("config: backend not registered")

// Registry maps backend names to their constructor functions. It is safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	backends map[BackendName]func(BackendConfig) (player.Backend, error)
}

// NewRegistry returns an empty, ready-to-use [Registry].
func NewRegistry() *Registry {
	return &Registry{
		backends: make(map[BackendName]func(BackendConfig) (player.Backend, error)),
	}
}

// RegisterBackend registers a backend factory under name. Subsequent calls
// with the same name overwrite the previous registration.
func (r *Registry) RegisterBackend(name BackendName, factory func(BackendConfig) (player.Backend, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[name] = factory
}

// CreateBackend instantiates the backend selected by cfg.Name.
func (r *Registry) CreateBackend(cfg BackendConfig) (player.Backend, error) {
	r.mu.RLock()
	factory, ok := r.backends[cfg.Name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotRegistered, cfg.Name)
	}
	return factory(cfg)
}
