package garment

import "slices"

// Category is a construction choice axis of a garment.
type Category string

// Shirt categories.
const (
	CategorySleeve  Category = "sleeve"
	CategoryFront   Category = "front"
	CategoryBack    Category = "back"
	CategoryBottom  Category = "bottom"
	CategoryCollar  Category = "collar"
	CategoryCuffs   Category = "cuffs"
	CategoryPockets Category = "pockets"
)

// Kurta categories. Sleeve and bottom are shared with the shirt.
const (
	CategoryNeckFront Category = "neckFront"
	CategoryNeckBack  Category = "neckBack"
)

// StyleOption is one selectable construction option. Key is what the
// resolver consumes: a symbolic code for table-driven garments, a part
// name for direct lookup.
type StyleOption struct {
	ID    string  `yaml:"id"`
	Name  string  `yaml:"name"`
	Price float64 `yaml:"price"`
	Key   string  `yaml:"key"`
}

// StyleConfiguration maps each category to its selected option.
type StyleConfiguration map[Category]StyleOption

// Catalog is the read-only option list of one garment family.
type Catalog struct {
	Kind       string
	Categories []Category
	options    map[Category][]StyleOption
}

// Options lists the options of a category in display order.
func (c *Catalog) Options(cat Category) []StyleOption {
	return slices.Clone(c.options[cat])
}

// Default returns the first option of a category.
func (c *Catalog) Default(cat Category) (StyleOption, bool) {
	opts := c.options[cat]
	if len(opts) == 0 {
		return StyleOption{}, false
	}
	return opts[0], true
}

// Lookup finds an option by id.
func (c *Catalog) Lookup(cat Category, id string) (StyleOption, bool) {
	for _, o := range c.options[cat] {
		if o.ID == id {
			return o, true
		}
	}
	return StyleOption{}, false
}

// Defaults returns a configuration with every category at its default.
func (c *Catalog) Defaults() StyleConfiguration {
	cfg := make(StyleConfiguration, len(c.Categories))
	for _, cat := range c.Categories {
		if o, ok := c.Default(cat); ok {
			cfg[cat] = o
		}
	}
	return cfg
}

func coded(pairs ...any) []StyleOption {
	var out []StyleOption
	for i := 0; i+2 < len(pairs); i += 3 {
		id := pairs[i].(string)
		out = append(out, StyleOption{ID: id, Name: pairs[i+1].(string), Price: pairs[i+2].(float64), Key: id})
	}
	return out
}

func direct(opts ...StyleOption) []StyleOption {
	return opts
}

// ShirtCatalog returns the shirt option lists. Keys are option codes.
func ShirtCatalog() *Catalog {
	return &Catalog{
		Kind: "shirt",
		Categories: []Category{
			CategorySleeve, CategoryFront, CategoryBack, CategoryBottom,
			CategoryCollar, CategoryCuffs, CategoryPockets,
		},
		options: map[Category][]StyleOption{
			CategorySleeve: coded(
				"sl1", "Long Sleeve", 0.0,
				"sl2", "Long Sleeve Roll Up", 0.0,
				"sl3", "Short Sleeve", 0.0,
			),
			CategoryFront: coded(
				"fr1", "Single Placket", 0.0,
				"fr2", "Box Placket", 0.0,
				"fr3", "Hidden Buttons", 5.0,
			),
			CategoryBack: coded(
				"bk1", "Plain", 0.0,
				"bk2", "Box Pleat", 0.0,
				"bk3", "Side Pleats", 0.0,
				"bk4", "Center Pleats", 0.0,
			),
			CategoryBottom: coded(
				"bt1", "Curved Hem", 0.0,
				"bt2", "Straight", 0.0,
				"bt3", "Straight Vents", 0.0,
			),
			CategoryCollar: coded(
				"co1", "Italian Collar 1 Button", 0.0,
				"co2", "Italian Collar 2 Button", 0.0,
				"co3", "French Collar 1 Button", 0.0,
				"co4", "French Collar 2 Button", 0.0,
				"co5", "Cut Away 1 Button", 0.0,
				"co6", "Cut Away 2 Button", 0.0,
			),
			CategoryCuffs: coded(
				"cf1", "1 Button Round", 0.0,
				"cf2", "1 Button Angle", 0.0,
				"cf3", "1 Button Square", 0.0,
				"cf4", "2 Button Round", 0.0,
				"cf5", "2 Button Angle", 0.0,
				"cf6", "2 Button Square", 0.0,
				"cf7", "French Round", 5.0,
				"cf8", "French Angle", 5.0,
				"cf9", "French Square", 5.0,
			),
			CategoryPockets: coded(
				"pk1", "No Pocket", 0.0,
				"pk2", "Classic Round", 0.0,
				"pk3", "Classic Angle", 0.0,
				"pk4", "Diamond Straight", 0.0,
				"pk5", "Classic Square", 0.0,
				"pk6", "Round Flap", 5.0,
				"pk7", "Angle Flap", 5.0,
				"pk8", "Diamond Flap", 5.0,
				"pk9", "Round with Glass", 10.0,
			),
		},
	}
}

// KurtaCatalog returns the kurta option lists. Keys are part names.
func KurtaCatalog() *Catalog {
	return &Catalog{
		Kind:       "kurta",
		Categories: []Category{CategoryNeckFront, CategoryNeckBack, CategorySleeve, CategoryBottom},
		options: map[Category][]StyleOption{
			CategoryNeckFront: direct(
				StyleOption{"nf1", "Round Neck", 0, "Neck_Front_Round"},
				StyleOption{"nf2", "V-Neck", 0, "Neck_front_V"},
				StyleOption{"nf3", "U-Neck", 0, "Neck_front_U"},
				StyleOption{"nf4", "Square Neck", 0, "Neck_front_square"},
				StyleOption{"nf5", "Scoop Neck", 0, "neck_front_scoop"},
				StyleOption{"nf6", "Boat Neck", 0, "Neck_front_boat"},
				StyleOption{"nf7", "Sweetheart", 5, "Neck_front_sweetheart"},
				StyleOption{"nf8", "V-Notch", 0, "Neck_front_V_notch"},
				StyleOption{"nf9", "Crew Neck", 0, "Neck_crew"},
				StyleOption{"nf10", "Halter Style 1", 5, "Neck_halter_1"},
				StyleOption{"nf11", "Halter Style 2", 5, "Neck_halter_2"},
				StyleOption{"nf12", "High Neck", 5, "Neck_high"},
			),
			CategoryNeckBack: direct(
				StyleOption{"nb1", "Basic Back", 0, "Neck_back_basic"},
				StyleOption{"nb2", "Round Back", 0, "Neck_back_round"},
				StyleOption{"nb3", "V-Back", 0, "neck_back_v"},
				StyleOption{"nb4", "U-Back", 0, "neck_back_u"},
				StyleOption{"nb5", "Square Back", 0, "neck_back_square"},
				StyleOption{"nb6", "Rectangle Back", 0, "Neck_back_Rectangle"},
				StyleOption{"nb7", "Boat Back", 0, "Neck_back_boat"},
				StyleOption{"nb8", "Deep Round", 5, "neck_back_deep_round"},
				StyleOption{"nb9", "Keyhole", 5, "neck_back_keyhole"},
			),
			CategorySleeve: direct(
				StyleOption{"sl1", "Short Basic", 0, "sleeve_basic_short"},
				StyleOption{"sl2", "Above Elbow", 0, "sleeve_basic_above_elbow"},
				StyleOption{"sl3", "Mid Length", 0, "sleeve_basic_midlength"},
				StyleOption{"sl4", "3/4 Length", 0, "sleeve_basic_3quater"},
				StyleOption{"sl5", "Full Length", 0, "sleeve_basic_full"},
				StyleOption{"sl6", "Puff Short", 5, "sleeve_puff_Short"},
				StyleOption{"sl7", "Puff Above Elbow", 5, "sleeve_puff_above_elbow"},
				StyleOption{"sl8", "Bell 3/4", 5, "sleeve_bell_3-4"},
				StyleOption{"sl9", "Bell Full", 5, "sleeve_bell_full"},
				StyleOption{"sl10", "Butterfly", 10, "sleeve_butterfly"},
				StyleOption{"sl11", "Cape Long", 10, "sleeve_cape_long"},
				StyleOption{"sl12", "Flounce", 5, "sleeve_flounce"},
				StyleOption{"sl13", "Lantern", 5, "sleeve_lantern"},
				StyleOption{"sl14", "Bishop 3/4", 5, "sleeve_bishop_3_4th"},
				StyleOption{"sl15", "Bishop Long", 5, "sleeve_bishop_long"},
				StyleOption{"sl16", "Cap Short", 0, "sleeve_cap_short"},
				StyleOption{"sl17", "Flutter Short", 5, "sleeve_flutter_short"},
				StyleOption{"sl18", "Flutter Above Elbow", 5, "sleeve_flutter_above_elbow"},
				StyleOption{"sl19", "Balloon 3/4", 5, "sleeve_ballon_3_4th"},
				StyleOption{"sl20", "Balloon Long", 5, "sleeve_ballon_long"},
			),
			CategoryBottom: direct(
				StyleOption{"bt1", "Short", 0, "Bottom_short"},
				StyleOption{"bt2", "Knee Length", 0, "Bottom_knee"},
				StyleOption{"bt3", "3/4 Length", 0, "bottom_3_4"},
				StyleOption{"bt4", "Ankle Length", 5, "bottom_ankle"},
				StyleOption{"bt5", "Floor Length", 10, "bottom_floor"},
				StyleOption{"bt6", "3/4 High-Low", 5, "bottom_3_4_high_low"},
				StyleOption{"bt7", "Ankle High-Low", 10, "bottom_ankle_high_low"},
				StyleOption{"bt8", "Floor High-Low", 15, "bottom_floor_high_low"},
			),
		},
	}
}
