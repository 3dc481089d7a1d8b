// Package services provides the registry-managed service layer of CMC
// Shell: configuration, alias and macro stores, the confirmation gate,
// the undo service, the trash holding area, and background workers.
package services

import (
	"fmt"
	"sync"

	"cmcshell/pkg/cmctypes"
)

// Registry manages service registration and lifecycle.
type Registry struct {
	mu       sync.RWMutex
	services map[string]cmctypes.Service
}

// NewRegistry creates a new service registry with an empty service map.
func NewRegistry() *Registry {
	return &Registry{services: make(map[string]cmctypes.Service)}
}

// RegisterService adds a service, returning an error if already registered.
func (r *Registry) RegisterService(service cmctypes.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := service.Name()
	if _, exists := r.services[name]; exists {
		return fmt.Errorf("service %s already registered", name)
	}
	r.services[name] = service
	return nil
}

// GetService retrieves a service by name.
func (r *Registry) GetService(name string) (cmctypes.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	service, exists := r.services[name]
	if !exists {
		return nil, fmt.Errorf("service %s not found", name)
	}
	return service, nil
}

// HasService reports whether a service is registered.
func (r *Registry) HasService(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.services[name]
	return exists
}

// InitializeAll initializes every registered service. The config service
// goes first: other services read persisted state through it.
func (r *Registry) InitializeAll() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if cfg, ok := r.services["config"]; ok {
		if err := cfg.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize service config: %w", err)
		}
	}
	for name, service := range r.services {
		if name == "config" {
			continue
		}
		if err := service.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize service %s: %w", name, err)
		}
	}
	return nil
}

// GlobalRegistry is the global service registry instance.
var GlobalRegistry = NewRegistry()

var globalRegistryMu sync.RWMutex

// GetGlobalRegistry returns the global service registry instance.
func GetGlobalRegistry() *Registry {
	globalRegistryMu.RLock()
	defer globalRegistryMu.RUnlock()
	return GlobalRegistry
}

// SetGlobalRegistry replaces the global service registry instance.
func SetGlobalRegistry(registry *Registry) {
	globalRegistryMu.Lock()
	defer globalRegistryMu.Unlock()
	GlobalRegistry = registry
}
