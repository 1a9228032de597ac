package resolve

import (
	"slices"

	"github.com/taigrr/bespoke/pkg/garment"
)

// family lists the parts of one option for each hem. A nil curved list
// means the option looks the same on both hems.
type family struct {
	straight []string
	curved   []string
}

func (f family) parts(curved bool) []string {
	if curved && f.curved != nil {
		return f.curved
	}
	return f.straight
}

func same(parts ...string) family {
	return family{straight: parts}
}

// Table resolves symbolic option codes through fixed part tables. The
// bottom option selects the hem family of the front and back panels and
// has no parts of its own.
type Table struct {
	catalog    *garment.Catalog
	hem        garment.Category
	curvedHems []string
	order      []garment.Category
	rules      map[garment.Category]map[string]family
}

// ShirtTable returns the shirt part tables. Cuff codes resolve through the
// sleeve, since the asset carries a single cuff family.
func ShirtTable(cat *garment.Catalog) *Table {
	fullSleeve := same("sleeve_full", "Cuff_square", "Cuff_square_button", "Cuff_square_sleeve")
	spread := same("collar_spread", "collar_spread_button")
	point := same("collar_classic_point", "collar_classic_point_button")
	cutaway := same("collars_cutaway", "collars_cutaway_button")
	rounded := same("pocket_rounded_patch", "pocket_rounded_patch_flap", "pocket_rounded_patch_flap_button")
	return &Table{
		catalog:    cat,
		hem:        garment.CategoryBottom,
		curvedHems: []string{"bt1"},
		order: []garment.Category{
			garment.CategorySleeve, garment.CategoryCollar, garment.CategoryFront,
			garment.CategoryBack, garment.CategoryPockets,
		},
		rules: map[garment.Category]map[string]family{
			garment.CategorySleeve: {
				"sl1": fullSleeve,
				"sl2": fullSleeve,
				"sl3": same("Sleeve_short"),
			},
			garment.CategoryCollar: {
				"co1": spread, "co2": spread,
				"co3": point, "co4": point,
				"co5": cutaway, "co6": cutaway,
			},
			garment.CategoryFront: {
				"fr1": {
					straight: []string{"shirt_front_single_placket", "shirt_front_single_placket_button"},
					curved:   []string{"shirt_curved_bot_front_single_placket", "shirt_curved_bot_front_single_placket_button"},
				},
				"fr2": {
					straight: []string{"shirt_front_box_placket", "shirt_front_box_placket_button"},
					curved:   []string{"shirt_curved_bot_front_box_placket", "shirt_curved_bot_front_box_placket_button"},
				},
				"fr3": {
					straight: []string{"shirt_front_hidden_placket"},
					curved:   []string{"shirt_curved_bot_front_hidden_placket"},
				},
			},
			garment.CategoryBack: {
				"bk1": {straight: []string{"Shirt_Back_normal"}, curved: []string{"Shirt_curved_bot_back_normal"}},
				"bk2": {straight: []string{"Shirt_back_boxpleated"}, curved: []string{"Shirt_curved_bot_back_boxpleated"}},
				"bk3": {straight: []string{"Shirt_back_sidepleated"}, curved: []string{"Shirt_curved_bot_back_sidepleated"}},
				"bk4": {straight: []string{"Shirt_back_centrepleated"}, curved: []string{"Shirt_curved_bot_back_centrepleated"}},
			},
			garment.CategoryPockets: {
				"pk1": {},
				"pk2": same("pocket_rounded_patch"),
				"pk3": same("pocket_angled_patch"),
				"pk4": same("pocket_square"),
				"pk5": same("pocket_square"),
				"pk6": rounded,
				"pk7": same("pocket_angled_patch", "pocket_angled_patch_flap", "pocket_angled_patch_flap_button"),
				"pk8": same("pocket_square", "pocket_square_flap", "pocket_square_flap_button"),
				"pk9": rounded,
			},
		},
	}
}

// Curved reports whether a configuration selects the curved hem.
func (t *Table) Curved(cfg garment.StyleConfiguration) bool {
	return slices.Contains(t.curvedHems, optionKey(t.catalog, cfg, t.hem))
}

// Resolve returns the visible parts of cfg.
func (t *Table) Resolve(cfg garment.StyleConfiguration) garment.PartSet {
	curved := t.Curved(cfg)
	out := make(garment.PartSet)
	for _, c := range t.order {
		fam, ok := t.rules[c][optionKey(t.catalog, cfg, c)]
		if !ok {
			d, _ := t.catalog.Default(c)
			fam = t.rules[c][d.Key]
		}
		out.Add(fam.parts(curved)...)
	}
	return out
}

// Parts lists every part the table can produce.
func (t *Table) Parts() []string {
	set := make(garment.PartSet)
	for _, codes := range t.rules {
		for _, fam := range codes {
			set.Add(fam.straight...)
			set.Add(fam.curved...)
		}
	}
	return set.Sorted()
}

// Missing lists table parts absent from a manifest.
func (t *Table) Missing(manifest []string) []string {
	have := garment.NewPartSet(manifest...)
	var out []string
	for _, p := range t.Parts() {
		if !have.Has(p) {
			out = append(out, p)
		}
	}
	return out
}
