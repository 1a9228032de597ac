package garment

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// FabricSlot is a key of a PartFabricAssignment.
type FabricSlot string

// Fabric slots.
const (
	SlotBody   FabricSlot = "body"
	SlotSleeve FabricSlot = "sleeve"
	SlotCollar FabricSlot = "collar"
	SlotSkirt  FabricSlot = "skirt"
)

// PartFabricAssignment maps fabric slots to fabrics.
type PartFabricAssignment map[FabricSlot]*Fabric

// For returns the fabric of a region, following its slot chain. Nil means
// no fabric, which renders white.
func (a PartFabricAssignment) For(r Region) *Fabric {
	for _, s := range r.Slots() {
		if f := a[s]; f != nil {
			return f
		}
	}
	return nil
}

// ContrastID names a contrastable region.
type ContrastID string

// Contrast options.
const (
	ContrastCollar  ContrastID = "collar-out"
	ContrastCuff    ContrastID = "cuff-out"
	ContrastPlacket ContrastID = "outside-placket"
	ContrastSleeve  ContrastID = "sleeve-fabric"
	ContrastPocket  ContrastID = "pocket"
)

// ContrastIDs lists the contrast options.
func ContrastIDs() []ContrastID {
	return []ContrastID{ContrastCollar, ContrastCuff, ContrastPlacket, ContrastSleeve, ContrastPocket}
}

// ContrastOverride replaces a region's fabric with a flat color when
// enabled.
type ContrastOverride struct {
	Enabled bool
	Fabric  *Fabric
}

// ContrastOverrides holds one override per contrast option.
type ContrastOverrides map[ContrastID]ContrastOverride

// Color returns the override color for a region, if one applies. An
// override applies only when enabled with a fabric; a check fabric
// contributes its first color.
func (c ContrastOverrides) Color(r Region) (string, bool) {
	id, ok := r.Contrast()
	if !ok {
		return "", false
	}
	o, ok := c[id]
	if !ok || !o.Enabled || o.Fabric == nil {
		return "", false
	}
	if o.Fabric.Color == "" && len(o.Fabric.Colors) == 0 {
		return "", false
	}
	return o.Fabric.FlatColor(), true
}

// Anchor is a monogram placement slot.
type Anchor string

// Anchors.
const (
	AnchorNone      Anchor = "none"
	AnchorCollar    Anchor = "collar"
	AnchorChest     Anchor = "chest"
	AnchorSleeve    Anchor = "sleeve"
	AnchorCuffLeft  Anchor = "cuff-left"
	AnchorCuffRight Anchor = "cuff-right"
	AnchorWaist     Anchor = "waist"
	AnchorPlacket   Anchor = "placket"
)

// Anchors lists every anchor, none first.
func Anchors() []Anchor {
	return []Anchor{
		AnchorNone, AnchorCollar, AnchorChest, AnchorSleeve,
		AnchorCuffLeft, AnchorCuffRight, AnchorWaist, AnchorPlacket,
	}
}

// Placed reports whether the anchor selects a position.
func (a Anchor) Placed() bool {
	return a != "" && a != AnchorNone
}

// Font is a monogram face id.
type Font string

// Monogram fonts.
const (
	FontBlock      Font = "block"
	FontScript     Font = "script"
	FontOldEnglish Font = "old-english"
)

// MaxMonogramRunes caps monogram text length.
const MaxMonogramRunes = 4

// MonogramSpec describes the requested monogram.
type MonogramSpec struct {
	Anchor Anchor
	Text   string
	Font   Font
	Color  string
}

// Active reports whether a monogram should be shown.
func (m MonogramSpec) Active() bool {
	return m.Anchor.Placed() && strings.TrimSpace(m.Text) != ""
}

// Normalized truncates the text and fills in the default color.
func (m MonogramSpec) Normalized() MonogramSpec {
	if utf8.RuneCountInString(m.Text) > MaxMonogramRunes {
		m.Text = string([]rune(m.Text)[:MaxMonogramRunes])
	}
	if m.Color == "" {
		m.Color = DefaultThreadColor
	}
	return m
}

// PartSet is a set of part names.
type PartSet map[string]struct{}

// NewPartSet builds a set from names.
func NewPartSet(names ...string) PartSet {
	s := make(PartSet, len(names))
	s.Add(names...)
	return s
}

// Add inserts names.
func (s PartSet) Add(names ...string) {
	for _, n := range names {
		s[n] = struct{}{}
	}
}

// Has reports membership.
func (s PartSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the names in lexical order.
func (s PartSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Equal reports whether both sets hold the same names.
func (s PartSet) Equal(o PartSet) bool {
	if len(s) != len(o) {
		return false
	}
	for n := range s {
		if !o.Has(n) {
			return false
		}
	}
	return true
}

// Selection is everything the caller supplies, replaced wholesale on each
// change.
type Selection struct {
	Style       StyleConfiguration
	Fabrics     PartFabricAssignment
	Contrast    ContrastOverrides
	ButtonColor string
	Monogram    MonogramSpec
}

// ButtonColorOr returns the button color or the default finish.
func (s Selection) ButtonColorOr() string {
	if s.ButtonColor == "" {
		return DefaultButtonColor
	}
	return s.ButtonColor
}
