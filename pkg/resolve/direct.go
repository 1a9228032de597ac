package resolve

import "github.com/taigrr/bespoke/pkg/garment"

// pipingSuffix names the optional trim companion of a neckline part.
const pipingSuffix = "_piping"

// Direct resolves option keys as part names, one part per category plus a
// piping companion for necklines when the asset has one.
type Direct struct {
	catalog  *garment.Catalog
	manifest garment.PartSet
	piping   []garment.Category
}

// NewDirect builds a direct resolver over a catalog and asset manifest.
func NewDirect(cat *garment.Catalog, manifest []string) *Direct {
	return &Direct{
		catalog:  cat,
		manifest: garment.NewPartSet(manifest...),
		piping:   []garment.Category{garment.CategoryNeckFront, garment.CategoryNeckBack},
	}
}

// Resolve returns the visible parts of cfg.
func (d *Direct) Resolve(cfg garment.StyleConfiguration) garment.PartSet {
	out := make(garment.PartSet)
	for _, c := range d.catalog.Categories {
		key := optionKey(d.catalog, cfg, c)
		if key == "" {
			continue
		}
		out.Add(key)
		if d.hasPiping(c) && d.manifest.Has(key+pipingSuffix) {
			out.Add(key + pipingSuffix)
		}
	}
	return out
}

func (d *Direct) hasPiping(c garment.Category) bool {
	for _, p := range d.piping {
		if p == c {
			return true
		}
	}
	return false
}
