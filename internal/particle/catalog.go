package particle

import (
	"fmt"
	"strings"
)

// Catalog is an ordered, named set of emitter configurations, as loaded from
// a preset file or the built-in table. The mode selector indexes into it.
type Catalog struct {
	presets []EmitterConfig
}

// NewCatalog wraps presets. At least one preset is required.
func NewCatalog(presets []EmitterConfig) (*Catalog, error) {
	if len(presets) == 0 {
		return nil, fmt.Errorf("catalog requires at least one preset")
	}
	cp := make([]EmitterConfig, len(presets))
	copy(cp, presets)
	return &Catalog{presets: cp}, nil
}

// BuiltinCatalog returns the seven built-in presets in selector order.
func BuiltinCatalog() *Catalog {
	return &Catalog{presets: BuiltinPresets()}
}

// Len returns the number of presets.
func (c *Catalog) Len() int {
	return len(c.presets)
}

// At returns the preset at i, wrapping around in both directions.
func (c *Catalog) At(i int) EmitterConfig {
	n := len(c.presets)
	return c.presets[((i%n)+n)%n]
}

// Index finds a preset by name (case-insensitive).
func (c *Catalog) Index(name string) (int, bool) {
	for i, p := range c.presets {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return i, true
		}
	}
	return 0, false
}

// Names lists preset names in order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.presets))
	for i, p := range c.presets {
		names[i] = p.Name
	}
	return names
}
