package garment

import (
	"fmt"
	"slices"
	"strings"
)

// Swatch is a named color choice: a button finish or a thread.
type Swatch struct {
	ID    string  `yaml:"id"`
	Name  string  `yaml:"name"`
	Color string  `yaml:"color"`
	Price float64 `yaml:"price,omitempty"`
}

// DefaultButtonColor is used when no button finish is selected.
const DefaultButtonColor = "#F5F5DC"

// DefaultThreadColor is the monogram color when none is given.
const DefaultThreadColor = "#DC143C"

var fabrics = []Fabric{
	{ID: "f1", Name: "Premium White", Color: "#FFFFFF", Category: "white", Weave: "Poplin", Weight: "125g", Yarn: "100% Cotton", Price: 64.99},
	{ID: "f2", Name: "Signature White", Color: "#FAFAFA", Category: "white", Weave: "Twill", Weight: "130g", Yarn: "100% Cotton", Price: 64.99},
	{ID: "f3", Name: "White Herringbone", Color: "#F8F8F8", Category: "white", Weave: "Herringbone", Weight: "135g", Yarn: "100% Cotton", Price: 49.99, Promo: true},

	{ID: "f4", Name: "Sky Blue", Color: "#87CEEB", Category: "solid", Weave: "Poplin", Weight: "130g", Yarn: "100% Cotton", Price: 64.99},
	{ID: "f5", Name: "Navy Blue Pinpoint", Color: "#1E3A5F", Category: "solid", Weave: "Pinpoint", Weight: "140g", Yarn: "100% Cotton", Price: 49.99, Promo: true},
	{ID: "f6", Name: "Light Pink", Color: "#FFB6C1", Category: "solid", Weave: "Oxford", Weight: "125g", Yarn: "100% Cotton", Price: 64.99},
	{ID: "f7", Name: "Black Shirt", Color: "#1A1A1A", Category: "solid", Weave: "Satin", Weight: "140g", Yarn: "100% Cotton", Price: 64.99},
	{ID: "f8", Name: "Burgundy", Color: "#722F37", Category: "solid", Weave: "Twill", Weight: "140g", Yarn: "100% Cotton", Price: 64.99},
	{ID: "f9", Name: "Royal Blue", Color: "#4169E1", Category: "solid", Weave: "Oxford", Weight: "135g", Yarn: "100% Cotton", Price: 64.99},

	{ID: "f10", Name: "Dusty Rose", Color: "#DCAE96", Category: "premium", Weave: "Twill", Weight: "140g", Yarn: "100% Egyptian Cotton", Price: 74.99},
	{ID: "f11", Name: "Mauve Shirt", Color: "#E0B0FF", Category: "premium", Weave: "Poplin", Weight: "130g", Yarn: "100% Egyptian Cotton", Price: 74.99},
	{ID: "f12", Name: "Lavender", Color: "#E6E6FA", Category: "premium", Weave: "Poplin", Weight: "125g", Yarn: "100% Egyptian Cotton", Price: 74.99},
	{ID: "f13", Name: "Purple Shirt", Color: "#9370DB", Category: "premium", Weave: "Twill", Weight: "135g", Yarn: "100% Egyptian Cotton", Price: 74.99},

	{ID: "f14", Name: "Lime Green", Color: "#98FB98", Category: "tone", Weave: "Jacquard", Weight: "140g", Yarn: "100% Cotton", Price: 79.99},
	{ID: "f15", Name: "Yellow Shirt", Color: "#FFFF00", Category: "tone", Weave: "Dobby", Weight: "130g", Yarn: "100% Cotton", Price: 79.99},
	{ID: "f16", Name: "Mustard", Color: "#C4A000", Category: "tone", Weave: "Jacquard", Weight: "140g", Yarn: "100% Cotton", Price: 79.99},
	{ID: "f17", Name: "Sage Green", Color: "#8FBC8F", Category: "tone", Weave: "Dobby", Weight: "135g", Yarn: "100% Cotton", Price: 79.99},

	{ID: "f18", Name: "Charcoal Grey", Color: "#36454F", Category: "pattern", Weave: "Herringbone", Weight: "150g", Yarn: "100% Cotton", Price: 79.99},
	{ID: "f19", Name: "Light Grey", Color: "#D3D3D3", Category: "pattern", Weave: "Glen Check", Weight: "135g", Yarn: "100% Cotton", Price: 79.99},
	{ID: "f20", Name: "Cream", Color: "#FFFDD0", Category: "pattern", Weave: "Oxford", Weight: "130g", Yarn: "100% Cotton", Price: 79.99},

	{ID: "c1", Name: "Classic Blue Check", Pattern: PatternCheck, Colors: []string{"#FFFFFF", "#4A90D9"}, Category: "check", Weave: "Twill", Weight: "135g", Yarn: "100% Cotton", Price: 84.99},
	{ID: "c2", Name: "Tartan Red Check", Pattern: PatternCheck, Colors: []string{"#FFFFFF", "#C41E3A", "#1E3A5F"}, Category: "check", Weave: "Twill", Weight: "140g", Yarn: "100% Cotton", Price: 89.99},
	{ID: "c3", Name: "Gingham Black Check", Pattern: PatternCheck, Colors: []string{"#FFFFFF", "#1A1A1A"}, Category: "check", Weave: "Poplin", Weight: "130g", Yarn: "100% Cotton", Price: 84.99},
	{ID: "c4", Name: "Hunter Green Check", Pattern: PatternCheck, Colors: []string{"#FFFFFF", "#228B22"}, Category: "check", Weave: "Twill", Weight: "140g", Yarn: "100% Cotton", Price: 84.99},
	{ID: "c5", Name: "Navy Windowpane Check", Pattern: PatternCheck, Colors: []string{"#F5F5F5", "#1E3A5F"}, Category: "check", Weave: "Oxford", Weight: "140g", Yarn: "100% Cotton", Price: 89.99},

	{ID: "sp4", Name: "Cotton Linen Purple", Color: "#4A235A", Image: "fabrics/cotton-linen-purple.jpg", Category: "solid", Weave: "Plain", Weight: "121g", Yarn: "Cotton Linen", Price: 59.99},
	{ID: "sp6", Name: "Uppada Midnight Meadow", Color: "#F8F8F0", Image: "fabrics/midnight-meadow.jpg", Category: "pattern", Weave: "Jacquard", Weight: "96g", Yarn: "Viscose", Price: 99.99, Promo: true},
}

var buttons = []Swatch{
	{"btn-w", "White", "#FFFFFF", 0},
	{"btn-cr", "Cream", "#FFFDD0", 0},
	{"btn-be", "Beige", "#F5F5DC", 0},
	{"btn-y", "Yellow", "#FFD700", 0},
	{"btn-o", "Orange", "#FFA500", 0},
	{"btn-pk", "Pink", "#FFB6C1", 0},
	{"btn-lb", "Light Blue", "#87CEEB", 0},
	{"btn-db", "Dark Blue", "#00008B", 0},
	{"btn-g", "Green", "#228B22", 0},
	{"btn-r", "Red", "#DC143C", 0},
	{"btn-br", "Brown", "#8B4513", 0},
	{"btn-bl", "Black", "#1A1A1A", 0},
	{"mop-w", "White MOP", "#FAFAFA", 1.99},
	{"mop-gr", "Grey MOP", "#808080", 1.99},
	{"mop-be", "Beige MOP", "#D4C4A8", 1.99},
	{"mop-y", "Yellow MOP", "#F0E68C", 1.99},
	{"mop-pk", "Pink MOP", "#FFE4E1", 1.99},
	{"mop-bl", "Black MOP", "#2F2F2F", 1.99},
	{"tr-bw", "Black/White", "#1A1A1A", 1.99},
	{"tr-gb", "Gold/Black", "#DAA520", 1.99},
	{"tr-og", "Olive/Gold", "#808000", 1.99},
	{"tr-rb", "Red/Black", "#DC143C", 1.99},
	{"tr-pb", "Pink/Black", "#FFB6C1", 1.99},
}

var threads = []Swatch{
	{"th1", "White", "#FFFFFF", 0},
	{"th2", "Cream", "#F5F5DC", 0},
	{"th3", "Yellow", "#FFD700", 0},
	{"th4", "Orange", "#FFA500", 0},
	{"th5", "Light Blue", "#87CEEB", 0},
	{"th6", "Sky Blue", "#6BB3D9", 0},
	{"th7", "Royal Blue", "#0066CC", 0},
	{"th8", "Magenta", "#CC00CC", 0},
	{"th9", "Purple", "#800080", 0},
	{"th10", "Pink", "#FFB6C1", 0},
	{"th11", "Red", "#DC143C", 0},
	{"th12", "Bright Orange", "#FF6600", 0},
	{"th13", "Taupe", "#A89080", 0},
	{"th14", "Brown", "#5C4033", 0},
	{"th15", "Navy", "#000080", 0},
	{"th16", "Charcoal", "#36454F", 0},
	{"th17", "Black", "#000000", 0},
	{"th18", "Olive", "#808000", 0},
	{"th19", "Green", "#228B22", 0},
}

// Fabrics returns the built-in fabric list. Entries are shared and must
// not be modified.
func Fabrics() []*Fabric {
	out := make([]*Fabric, len(fabrics))
	for i := range fabrics {
		out[i] = &fabrics[i]
	}
	return out
}

// FabricByID finds a built-in fabric.
func FabricByID(id string) (*Fabric, error) {
	for i := range fabrics {
		if fabrics[i].ID == id {
			return &fabrics[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFabric, id)
}

// Buttons returns the button finishes.
func Buttons() []Swatch { return slices.Clone(buttons) }

// Threads returns the monogram thread colors.
func Threads() []Swatch { return slices.Clone(threads) }

// swatchColor resolves a swatch id or a literal hex color.
func swatchColor(list []Swatch, ref string) (string, bool) {
	if strings.HasPrefix(ref, "#") {
		return ref, true
	}
	for _, s := range list {
		if s.ID == ref {
			return s.Color, true
		}
	}
	return "", false
}
