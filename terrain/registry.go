package terrain

import (
	"fmt"
	"sort"
	"sync"

	"github.com/RealRui/osgearth"
	"github.com/RealRui/osgearth/mapmodel"
)

// Factory creates a new engine implementation instance.
type Factory func() Impl

// registry holds registered engine implementations.
var (
	registryMu sync.RWMutex
	engines    = make(map[string]Factory)
	// Priority order for default engine selection (first registered wins).
	enginePriority = []string{"grid"}
)

// RegisterEngine registers an engine factory under a name. This is
// typically called from init() functions in implementation packages. A
// factory registered under an existing name replaces it.
func RegisterEngine(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	engines[name] = factory
}

// UnregisterEngine removes an engine from the registry. This is useful
// for testing.
func UnregisterEngine(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(engines, name)
}

// AvailableEngines returns the registered engine names, sorted.
func AvailableEngines() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks whether an engine with the given name exists.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := engines[name]
	return ok
}

// CreateEngine constructs the named engine implementation, applies the
// options and attaches it to the map. It returns the live engine, or an
// error if the name is unknown or attach fails.
func CreateEngine(name string, m *mapmodel.Map, opts ...Option) (*Engine, error) {
	registryMu.RLock()
	factory, ok := engines[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}

	e := New(factory(), opts...)
	if err := e.Attach(m); err != nil {
		return nil, err
	}
	osgearth.Logger().Info("terrain: engine created", "engine", name, "map", m.Name())
	return e, nil
}

// CreateDefault constructs the best available engine by priority,
// falling back to any registered implementation. It returns
// ErrNoEngineAvailable when the registry is empty.
func CreateDefault(m *mapmodel.Map, opts ...Option) (*Engine, error) {
	registryMu.RLock()
	var name string
	for _, candidate := range enginePriority {
		if _, ok := engines[candidate]; ok {
			name = candidate
			break
		}
	}
	if name == "" {
		for candidate := range engines {
			name = candidate
			break
		}
	}
	registryMu.RUnlock()

	if name == "" {
		return nil, ErrNoEngineAvailable
	}
	return CreateEngine(name, m, opts...)
}
