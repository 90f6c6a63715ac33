package scorer

import (
	"fmt"
	"os"
	"path/filepath"
	"plugin"
	"sort"
	"strings"
	"sync"
)

// #region registry
var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register adds a scorer factory to the process-wide registry under its
// name. Re-registering a name overwrites the previous entry, so plugins can
// replace built-ins.
func Register(f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[f.Name] = f
}

// Lookup returns the factory registered under name. A miss yields
// ErrUnknownScorer naming the value and the registered choices.
func Lookup(name string) (Factory, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()
	if !ok {
		return Factory{}, fmt.Errorf("%w %q (choose from: %s)",
			ErrUnknownScorer, name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names returns the registered scorer names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// #endregion registry

// #region plugins
// LoadCustomSources opens each user-supplied scorer plugin (.so built with
// -buildmode=plugin) and lets its init-time Register calls run. The loaded
// code executes with full trust; load-time errors propagate untouched.
// plugin.Open is idempotent for a given path within one process, so loading
// the same source twice is harmless.
func LoadCustomSources(paths []string) error {
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve custom scorer source %q: %w", p, err)
		}
		if _, err := os.Stat(abs); err != nil {
			return fmt.Errorf("custom scorer source %q: %w", p, err)
		}
		if _, err := plugin.Open(abs); err != nil {
			return fmt.Errorf("load custom scorer source %q: %w", p, err)
		}
	}
	return nil
}

// #endregion plugins
