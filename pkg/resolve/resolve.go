// Package resolve turns a style configuration into the set of asset parts
// that should be visible.
package resolve

import (
	"errors"
	"fmt"
	"slices"

	"fortio.org/log"

	"github.com/taigrr/bespoke/pkg/garment"
	"github.com/taigrr/bespoke/pkg/profile"
)

// ErrUnknownStrategy is returned for a profile resolver name with no
// implementation.
var ErrUnknownStrategy = errors.New("unknown resolver strategy")

// Resolver maps a configuration to visible parts. Implementations are
// deterministic and never return an empty set for a catalog they were
// built with.
type Resolver interface {
	Resolve(cfg garment.StyleConfiguration) garment.PartSet
}

// New returns the resolver a profile asks for. Parts the resolver can
// produce but the manifest lacks are logged, not rejected.
func New(p *profile.Profile, cat *garment.Catalog, manifest []string) (Resolver, error) {
	switch p.Resolver {
	case profile.ResolveTable:
		t := ShirtTable(cat)
		if missing := t.Missing(manifest); len(missing) > 0 {
			log.Warnf("%s asset lacks %d table parts: %v", p.Kind, len(missing), missing)
		}
		return t, nil
	case profile.ResolveDirect:
		return NewDirect(cat, manifest), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, p.Resolver)
}

// optionKey returns the key of the selected option, or the category
// default when the selection is missing or not in the catalog.
func optionKey(cat *garment.Catalog, cfg garment.StyleConfiguration, c garment.Category) string {
	if o, ok := cfg[c]; ok {
		if slices.ContainsFunc(cat.Options(c), func(known garment.StyleOption) bool {
			return known.Key == o.Key
		}) {
			return o.Key
		}
	}
	d, _ := cat.Default(c)
	return d.Key
}
