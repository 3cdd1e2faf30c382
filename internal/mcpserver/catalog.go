package mcpserver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/davetashner/dashkit/internal/dashboard"
)

// catalog is the fixed set of dashboards the tools operate on.
type catalog struct {
	byName map[string]*dashboard.Dashboard
	names  []string
}

func newCatalog(ds []*dashboard.Dashboard) (*catalog, error) {
	c := &catalog{byName: make(map[string]*dashboard.Dashboard, len(ds))}
	for _, d := range ds {
		if _, dup := c.byName[d.Name]; dup {
			return nil, fmt.Errorf("duplicate dashboard %q", d.Name)
		}
		c.byName[d.Name] = d
		c.names = append(c.names, d.Name)
	}
	sort.Strings(c.names)
	return c, nil
}

// lookup returns the named dashboard. An empty name is accepted when exactly
// one dashboard is loaded.
func (c *catalog) lookup(name string) (*dashboard.Dashboard, error) {
	if name == "" && len(c.names) == 1 {
		name = c.names[0]
	}
	if d, ok := c.byName[name]; ok {
		return d, nil
	}
	if name == "" {
		return nil, fmt.Errorf("dashboard is required (available: %s)", strings.Join(c.names, ", "))
	}
	return nil, fmt.Errorf("unknown dashboard %q (available: %s)", name, strings.Join(c.names, ", "))
}
