// internal/platform/registry/source_registry.go
package registry

import (
	"fmt"
	"sort"
	"sync"

	"passivemap/internal/core/ports"
	"passivemap/internal/platform/errors"
	"passivemap/internal/platform/logx"
)

// SourceRegistry gestiona el registro y construcción de sources.
// Implementa el patrón Registry + Factory para desacoplar la creación
// de sources del código de aplicación.
type SourceRegistry struct {
	mu        sync.RWMutex
	factories map[string]SourceFactory
	metadata  map[string]ports.SourceMetadata
	logger    logx.Logger
}

// SourceFactory es una función que crea una instancia de Source.
type SourceFactory func(cfg ports.SourceConfig, logger logx.Logger) (ports.Source, error)

var (
	globalRegistry *SourceRegistry
	once           sync.Once
)

// Global retorna la instancia global del registry.
func Global() *SourceRegistry {
	once.Do(func() {
		globalRegistry = NewSourceRegistry(logx.New())
	})
	return globalRegistry
}

// NewSourceRegistry crea un nuevo registry de sources.
func NewSourceRegistry(logger logx.Logger) *SourceRegistry {
	return &SourceRegistry{
		factories: make(map[string]SourceFactory),
		metadata:  make(map[string]ports.SourceMetadata),
		logger:    logger.With("component", "source-registry"),
	}
}

// Register registra una source factory con su metadata.
// Típicamente llamado desde init() de cada source package.
func (r *SourceRegistry) Register(name string, factory SourceFactory, meta ports.SourceMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		return fmt.Errorf("source name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil for source %s", name)
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("source %s is already registered", name)
	}

	if meta.Name == "" {
		meta.Name = name
	}
	r.factories[name] = factory
	r.metadata[name] = meta
	r.logger.Debug("source registered", "name", name, "type", meta.Type, "priority", meta.Priority)

	return nil
}

// Build construye las sources habilitadas en configs, ordenadas por
// prioridad descendente y luego por nombre. Las entradas sin factory se
// ignoran con un warning; un fallo de factory es un fallo interno.
func (r *SourceRegistry) Build(configs map[string]ports.SourceConfig, logger logx.Logger) ([]ports.Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if configs == nil {
		return nil, errors.Mark(errors.ErrInternalFault, fmt.Errorf("configs cannot be nil"))
	}
	if logger == nil {
		return nil, errors.Mark(errors.ErrInternalFault, fmt.Errorf("logger cannot be nil"))
	}

	type prioritizedSource struct {
		name     string
		config   ports.SourceConfig
		priority int
	}

	prioritized := make([]prioritizedSource, 0, len(configs))
	for name, cfg := range configs {
		if !cfg.Enabled {
			continue
		}
		if _, exists := r.factories[name]; !exists {
			r.logger.Warn("source not registered, skipping", "source", name)
			continue
		}

		priority := cfg.Priority
		if priority <= 0 {
			priority = r.metadata[name].Priority
		}
		prioritized = append(prioritized, prioritizedSource{name: name, config: cfg, priority: priority})
	}

	sort.Slice(prioritized, func(i, j int) bool {
		if prioritized[i].priority != prioritized[j].priority {
			return prioritized[i].priority > prioritized[j].priority
		}
		return prioritized[i].name < prioritized[j].name
	})

	sources := make([]ports.Source, 0, len(prioritized))
	for _, ps := range prioritized {
		source, err := r.factories[ps.name](ps.config, logger)
		if err != nil {
			return nil, errors.Mark(errors.ErrInternalFault, errors.Wrapf(err, "failed to build source %s", ps.name))
		}
		sources = append(sources, source)
		r.logger.Debug("source built", "name", ps.name, "priority", ps.priority)
	}

	logger.Debug("sources built", "count", len(sources), "requested", len(configs))
	return sources, nil
}

// List retorna los nombres de todas las sources registradas.
func (r *SourceRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetMetadata retorna el metadata de una source.
func (r *SourceRegistry) GetMetadata(name string) (ports.SourceMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, exists := r.metadata[name]
	return meta, exists
}

// GetAllMetadata retorna una copia del metadata de todas las sources.
func (r *SourceRegistry) GetAllMetadata() map[string]ports.SourceMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]ports.SourceMetadata, len(r.metadata))
	for name, meta := range r.metadata {
		result[name] = meta
	}
	return result
}

// IsRegistered verifica si una source está registrada.
func (r *SourceRegistry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[name]
	return exists
}
