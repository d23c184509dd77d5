package registry

import (
	"fmt"
	"slices"
	"sync"
)

// catalog holds the delay models linked into the process, keyed by model
// name.
var catalog = struct {
	sync.RWMutex
	models map[string]*Registry
}{models: make(map[string]*Registry)}

// Register makes reg retrievable under name.
func Register(name string, reg *Registry) error {
	if name == "" {
		return fmt.Errorf("registry: empty delay model name")
	}
	if reg == nil {
		return fmt.Errorf("registry: delay model %q is nil", name)
	}

	catalog.Lock()
	defer catalog.Unlock()

	if _, ok := catalog.models[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateModel, name)
	}
	catalog.models[name] = reg
	return nil
}

// MustRegister is like Register but panics on error. Generated delay models
// call it from init.
func MustRegister(name string, reg *Registry) {
	if err := Register(name, reg); err != nil {
		panic(err)
	}
}

// Named returns the delay model registered under name.
func Named(name string) (*Registry, bool) {
	catalog.RLock()
	defer catalog.RUnlock()

	reg, ok := catalog.models[name]
	return reg, ok
}

// Names returns the registered model names, sorted.
func Names() []string {
	catalog.RLock()
	defer catalog.RUnlock()

	names := make([]string, 0, len(catalog.models))
	for name := range catalog.models {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
