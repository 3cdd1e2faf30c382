package dashboard

import (
	"fmt"
	"sort"
	"sync"

	"github.com/davetashner/dashkit/internal/dataset"
)

// Spec is the per-dashboard configuration handed to a Kind.
type Spec struct {
	// Name is the dashboard slug; it defaults to the kind name.
	Name string

	// Heading overrides the kind's default page heading.
	Heading string

	// Theme overrides the kind's default theme.
	Theme string

	// Dataset is the path the table was loaded from.
	Dataset string
}

// Kind builds dashboards of one type from a loaded table.
type Kind interface {
	// Name returns the unique kind name (e.g., "gapminder").
	Name() string

	// Description returns a one-line human-readable summary.
	Description() string

	// Columns lists the dataset columns the kind reads.
	Columns() []string

	// Build validates the table and returns a dashboard with its binding
	// registered.
	Build(spec Spec, table *dataset.Table) (*Dashboard, error)
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Kind)
)

// Register adds a kind to the global registry.
// It panics if a kind with the same name is already registered.
func Register(k Kind) {
	mu.Lock()
	defer mu.Unlock()
	name := k.Name()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("dashboard kind already registered: %s", name))
	}
	registry[name] = k
}

// Get returns the kind with the given name, or nil if not found.
func Get(name string) Kind {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// List returns the names of all registered kinds, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resetForTesting clears the registry. Only for use in tests.
func resetForTesting() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]Kind)
}
