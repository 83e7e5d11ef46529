// Package catalog holds the static list of plugins zshkit can enable.
package catalog

import (
	_ "embed"
	"fmt"

	"github.com/arthur-debert/zshkit/pkg/errors"
	"github.com/arthur-debert/zshkit/pkg/platform"
	"gopkg.in/yaml.v3"
)

//go:embed embedded/catalog.yaml
var embeddedCatalog []byte

// Kind tells whether a plugin ships with the framework or is fetched separately.
type Kind int

const (
	// Bundled plugins ship inside the framework distribution.
	Bundled Kind = iota
	// External plugins are cloned from their own repository.
	External
)

func (k Kind) String() string {
	switch k {
	case Bundled:
		return "bundled"
	case External:
		return "external"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Descriptor is one installable plugin.
type Descriptor struct {
	// Name is both the catalog key and the token written to plugins=(...).
	Name        string
	Kind        Kind
	Description string
	// Requires restricts a bundled plugin to one platform. Empty means any.
	Requires platform.ID
	// Source is the git URL of an external plugin.
	Source string
}

// AvailableOn reports whether the plugin may be offered on p.
func (d Descriptor) AvailableOn(p platform.ID) bool {
	return d.Kind == External || d.Requires == "" || d.Requires == p
}

// Catalog is the ordered, immutable plugin list.
type Catalog struct {
	entries []Descriptor
	byName  map[string]int
}

type rawEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Requires    string `yaml:"requires"`
	Source      string `yaml:"source"`
}

type rawCatalog struct {
	Bundled  []rawEntry `yaml:"bundled"`
	External []rawEntry `yaml:"external"`
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(embeddedCatalog)
}

// Parse builds a catalog from YAML, bundled entries first, and validates it.
func Parse(data []byte) (*Catalog, error) {
	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid plugin catalog")
	}

	c := &Catalog{byName: make(map[string]int)}
	for _, e := range raw.Bundled {
		if e.Source != "" {
			return nil, errors.Newf(errors.ErrConfigParse, "bundled plugin %q must not declare a source", e.Name)
		}
		requires := platform.ID(e.Requires)
		if requires != "" && !requires.Valid() {
			return nil, errors.Newf(errors.ErrConfigParse, "plugin %q requires unknown platform %q", e.Name, e.Requires)
		}
		if err := c.add(Descriptor{Name: e.Name, Kind: Bundled, Description: e.Description, Requires: requires}); err != nil {
			return nil, err
		}
	}
	for _, e := range raw.External {
		if e.Source == "" {
			return nil, errors.Newf(errors.ErrConfigParse, "external plugin %q has no source", e.Name)
		}
		if e.Requires != "" {
			return nil, errors.Newf(errors.ErrConfigParse, "external plugin %q cannot be platform restricted", e.Name)
		}
		if err := c.add(Descriptor{Name: e.Name, Kind: External, Description: e.Description, Source: e.Source}); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(d Descriptor) error {
	if d.Name == "" {
		return errors.New(errors.ErrConfigParse, "plugin with empty name in catalog")
	}
	if _, dup := c.byName[d.Name]; dup {
		return errors.Newf(errors.ErrConfigParse, "duplicate plugin %q in catalog", d.Name)
	}
	c.byName[d.Name] = len(c.entries)
	c.entries = append(c.entries, d)
	return nil
}

// Entries returns every descriptor in catalog order.
func (c *Catalog) Entries() []Descriptor {
	out := make([]Descriptor, len(c.entries))
	copy(out, c.entries)
	return out
}

// Lookup finds a descriptor by name.
func (c *Catalog) Lookup(name string) (Descriptor, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Descriptor{}, false
	}
	return c.entries[i], true
}

// ListSelectable returns the plugins offered on p, numbered from 1.
func (c *Catalog) ListSelectable(p platform.ID) Listing {
	listing := make(Listing, 0, len(c.entries))
	for _, d := range c.entries {
		if !d.AvailableOn(p) {
			continue
		}
		listing = append(listing, Entry{Index: len(listing) + 1, Descriptor: d})
	}
	return listing
}
