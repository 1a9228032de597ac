package garment

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrMissingRegion is returned when an asset has no parts for a region the
// garment requires.
var ErrMissingRegion = errors.New("missing region")

// Region is a semantic grouping of parts used for appearance binding.
type Region string

// Regions. RegionButton is a class of its own and never takes a fabric.
const (
	RegionBody    Region = "body"
	RegionSleeve  Region = "sleeve"
	RegionCollar  Region = "collar"
	RegionCuff    Region = "cuff"
	RegionPocket  Region = "pocket"
	RegionPlacket Region = "placket"
	RegionBottom  Region = "bottom"
	RegionButton  Region = "button"
)

var regionOrder = []Region{
	RegionBody, RegionSleeve, RegionCollar, RegionCuff,
	RegionPocket, RegionPlacket, RegionBottom, RegionButton,
}

// IsButton reports whether a part name denotes a button.
func IsButton(name string) bool {
	n := strings.ToLower(name)
	return strings.HasSuffix(n, "button") || strings.HasSuffix(n, "buttons")
}

// Classify maps a part name to its region. The first matching rule wins
// and every name maps somewhere.
func Classify(name string) Region {
	n := strings.ToLower(name)
	switch {
	case IsButton(n):
		return RegionButton
	case strings.Contains(n, "collar"):
		return RegionCollar
	case strings.Contains(n, "cuff") && !strings.Contains(n, "sleeve"):
		return RegionCuff
	case strings.Contains(n, "sleeve"), strings.Contains(n, "arm"):
		return RegionSleeve
	case strings.Contains(n, "pocket"):
		return RegionPocket
	case strings.Contains(n, "placket"):
		return RegionPlacket
	case strings.Contains(n, "bottom"), strings.Contains(n, "skirt"):
		return RegionBottom
	default:
		return RegionBody
	}
}

// Slots is the assignment lookup chain of a region, most specific first.
func (r Region) Slots() []FabricSlot {
	switch r {
	case RegionSleeve, RegionCuff:
		return []FabricSlot{SlotSleeve, SlotBody}
	case RegionCollar:
		return []FabricSlot{SlotCollar, SlotBody}
	case RegionBottom:
		return []FabricSlot{SlotSkirt, SlotBody}
	case RegionButton:
		return nil
	default:
		return []FabricSlot{SlotBody}
	}
}

// Contrast returns the contrast option that can override a region.
func (r Region) Contrast() (ContrastID, bool) {
	switch r {
	case RegionCollar:
		return ContrastCollar, true
	case RegionCuff:
		return ContrastCuff, true
	case RegionPlacket:
		return ContrastPlacket, true
	case RegionSleeve:
		return ContrastSleeve, true
	case RegionPocket:
		return ContrastPocket, true
	}
	return "", false
}

// RegionTable is the part to region mapping of one loaded asset.
type RegionTable struct {
	regions map[string]Region
	parts   map[Region][]string
}

// NewRegionTable classifies every part of a manifest.
func NewRegionTable(manifest []string) *RegionTable {
	t := &RegionTable{
		regions: make(map[string]Region, len(manifest)),
		parts:   make(map[Region][]string),
	}
	for _, name := range manifest {
		if _, ok := t.regions[name]; ok {
			continue
		}
		r := Classify(name)
		t.regions[name] = r
		t.parts[r] = append(t.parts[r], name)
	}
	return t
}

// Region returns the region of a part. Names outside the manifest are
// classified on the fly.
func (t *RegionTable) Region(part string) Region {
	if r, ok := t.regions[part]; ok {
		return r
	}
	return Classify(part)
}

// Has reports whether part is in the manifest.
func (t *RegionTable) Has(part string) bool {
	_, ok := t.regions[part]
	return ok
}

// Parts lists the manifest parts of a region.
func (t *RegionTable) Parts(r Region) []string {
	return slices.Clone(t.parts[r])
}

// Validate fails if any required region has no parts.
func (t *RegionTable) Validate(required ...Region) error {
	var missing []string
	for _, r := range required {
		if len(t.parts[r]) == 0 {
			missing = append(missing, string(r))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingRegion, strings.Join(missing, ", "))
	}
	return nil
}

// Present lists the fabric regions covered by a visible set, in canonical
// order. Buttons are not reported.
func (t *RegionTable) Present(visible PartSet) []Region {
	seen := make(map[Region]bool)
	for name := range visible {
		seen[t.Region(name)] = true
	}
	var out []Region
	for _, r := range regionOrder {
		if r != RegionButton && seen[r] {
			out = append(out, r)
		}
	}
	return out
}
