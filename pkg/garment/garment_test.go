package garment

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := map[string]Region{
		"collar_spread_button":          RegionButton,
		"Shirt_buttons":                 RegionButton,
		"collar_spread":                 RegionCollar,
		"collars_cutaway":               RegionCollar,
		"Cuff_square":                   RegionCuff,
		"Cuff_square_sleeve":            RegionSleeve,
		"sleeve_full":                   RegionSleeve,
		"left_arm":                      RegionSleeve,
		"pocket_rounded_patch_flap":     RegionPocket,
		"shirt_front_single_placket":    RegionPlacket,
		"Bottom_knee":                   RegionBottom,
		"long_skirt":                    RegionBottom,
		"Shirt_Back_normal":             RegionBody,
		"Neck_Front_Round":              RegionBody,
		"shirt_curved_bot_front_hidden": RegionBody,
	}
	for name, want := range cases {
		assert.Equal(t, want, Classify(name), name)
	}
}

func TestRegionSlotsAndContrast(t *testing.T) {
	white := &Fabric{ID: "w", Color: "#FFFFFF"}
	blue := &Fabric{ID: "b", Color: "#0000FF"}
	a := PartFabricAssignment{SlotBody: white, SlotSleeve: blue}

	assert.Same(t, blue, a.For(RegionCuff))
	assert.Same(t, blue, a.For(RegionSleeve))
	assert.Same(t, white, a.For(RegionCollar))
	assert.Same(t, white, a.For(RegionBottom))
	assert.Same(t, white, a.For(RegionPlacket))
	assert.Nil(t, a.For(RegionButton))
	assert.Nil(t, PartFabricAssignment{}.For(RegionBody))

	id, ok := RegionCuff.Contrast()
	assert.True(t, ok)
	assert.Equal(t, ContrastCuff, id)
	_, ok = RegionBody.Contrast()
	assert.False(t, ok)
}

func TestContrastColor(t *testing.T) {
	black := &Fabric{ID: "k", Color: "#000000"}
	check := &Fabric{ID: "c", Pattern: PatternCheck, Colors: []string{"#112233", "#445566"}}
	c := ContrastOverrides{
		ContrastCollar:  {Enabled: true, Fabric: black},
		ContrastCuff:    {Enabled: false, Fabric: black},
		ContrastPocket:  {Enabled: true},
		ContrastPlacket: {Enabled: true, Fabric: check},
	}

	got, ok := c.Color(RegionCollar)
	assert.True(t, ok)
	assert.Equal(t, "#000000", got)

	_, ok = c.Color(RegionCuff)
	assert.False(t, ok, "disabled override")
	_, ok = c.Color(RegionPocket)
	assert.False(t, ok, "override without fabric")
	_, ok = c.Color(RegionBody)
	assert.False(t, ok, "body is not contrastable")

	got, ok = c.Color(RegionPlacket)
	assert.True(t, ok)
	assert.Equal(t, "#112233", got)
}

func TestRegionTableValidate(t *testing.T) {
	table := NewRegionTable([]string{"Shirt_Back_normal", "sleeve_full", "collar_spread", "collar_spread"})
	assert.Equal(t, RegionCollar, table.Region("collar_spread"))
	assert.Equal(t, []string{"collar_spread"}, table.Parts(RegionCollar))
	assert.True(t, table.Has("sleeve_full"))
	assert.False(t, table.Has("pocket_square"))

	require.NoError(t, table.Validate(RegionBody, RegionSleeve))
	err := table.Validate(RegionBody, RegionPocket, RegionBottom)
	require.ErrorIs(t, err, ErrMissingRegion)
	assert.Contains(t, err.Error(), "pocket, bottom")
}

func TestRegionTablePresent(t *testing.T) {
	table := NewRegionTable([]string{"Shirt_Back_normal", "collar_spread", "collar_spread_button"})
	got := table.Present(NewPartSet("collar_spread_button", "collar_spread", "Shirt_Back_normal"))
	assert.Equal(t, []Region{RegionBody, RegionCollar}, got)
}

func TestFabricHelpers(t *testing.T) {
	var nilFabric *Fabric
	assert.Equal(t, White, nilFabric.FlatColor())
	assert.False(t, nilFabric.HasImage())

	c2, err := FabricByID("c2")
	require.NoError(t, err)
	assert.True(t, c2.IsCheck())
	assert.Equal(t, "#FFFFFF", c2.FlatColor())
	a, b := c2.CheckColors()
	assert.Equal(t, "#FFFFFF", a)
	assert.Equal(t, "#C41E3A", b)

	a, b = (&Fabric{Pattern: PatternCheck}).CheckColors()
	assert.Equal(t, DefaultCheckA, a)
	assert.Equal(t, DefaultCheckB, b)

	sp4, err := FabricByID("sp4")
	require.NoError(t, err)
	assert.True(t, sp4.HasImage())

	_, err = FabricByID("nope")
	assert.ErrorIs(t, err, ErrUnknownFabric)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#4A90D9")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0x4A, 0x90, 0xD9, 255}, c)

	_, err = ParseColor("blue")
	assert.Error(t, err)

	fallback := color.RGBA{1, 2, 3, 255}
	assert.Equal(t, fallback, ColorOr("", fallback))
	assert.Equal(t, fallback, ColorOr("#zz", fallback))
}

func TestCatalogDefaults(t *testing.T) {
	shirt := ShirtCatalog()
	cfg := shirt.Defaults()
	assert.Len(t, cfg, 7)
	assert.Equal(t, "co1", cfg[CategoryCollar].ID)
	assert.Equal(t, "pk1", cfg[CategoryPockets].Key)

	o, ok := shirt.Lookup(CategoryCollar, "co5")
	require.True(t, ok)
	assert.Equal(t, "Cut Away 1 Button", o.Name)
	_, ok = shirt.Lookup(CategoryCollar, "co9")
	assert.False(t, ok)

	kurta := KurtaCatalog()
	o, ok = kurta.Default(CategoryNeckFront)
	require.True(t, ok)
	assert.Equal(t, "Neck_Front_Round", o.Key)
	assert.Len(t, kurta.Options(CategorySleeve), 20)
	_, ok = kurta.Default(CategoryCuffs)
	assert.False(t, ok)
}

func TestMonogramSpec(t *testing.T) {
	assert.False(t, MonogramSpec{Anchor: AnchorNone, Text: "AB"}.Active())
	assert.False(t, MonogramSpec{Anchor: AnchorChest, Text: "  "}.Active())
	assert.True(t, MonogramSpec{Anchor: AnchorChest, Text: "AB"}.Active())

	m := MonogramSpec{Anchor: AnchorChest, Text: "ÅBCDE"}.Normalized()
	assert.Equal(t, "ÅBCD", m.Text)
	assert.Equal(t, DefaultThreadColor, m.Color)
}

func TestPartSet(t *testing.T) {
	s := NewPartSet("b", "a", "b")
	assert.Len(t, s, 2)
	assert.Equal(t, []string{"a", "b"}, s.Sorted())
	assert.True(t, s.Equal(NewPartSet("a", "b")))
	assert.False(t, s.Equal(NewPartSet("a", "c")))
}

func TestDesignSelection(t *testing.T) {
	d, err := ParseDesign([]byte(`
garment: shirt
style:
  collar: co5
  bottom: bt2
  pockets: pk42
fabrics:
  body: c1
  collar: f1
contrast:
  cuff-out: f7
button: btn-bl
monogram:
  anchor: cuff-left
  text: ABCDE
  font: script
  thread: th15
`))
	require.NoError(t, err)
	sel, err := d.Selection(ShirtCatalog())
	require.NoError(t, err)

	assert.Equal(t, "co5", sel.Style[CategoryCollar].ID)
	assert.Equal(t, "sl1", sel.Style[CategorySleeve].ID, "omitted category takes the default")
	assert.Equal(t, "pk42", sel.Style[CategoryPockets].Key, "unknown ids pass through")
	assert.Equal(t, "c1", sel.Fabrics[SlotBody].ID)
	assert.True(t, sel.Contrast[ContrastCuff].Enabled)
	assert.Equal(t, "#1A1A1A", sel.ButtonColor)
	assert.Equal(t, AnchorCuffLeft, sel.Monogram.Anchor)
	assert.Equal(t, "ABCD", sel.Monogram.Text)
	assert.Equal(t, FontScript, sel.Monogram.Font)
	assert.Equal(t, "#000080", sel.Monogram.Color)
}

func TestDesignErrors(t *testing.T) {
	_, err := ParseDesign([]byte("style: [oops"))
	assert.Error(t, err)

	d := &Design{Fabrics: map[string]string{"body": "zz"}}
	_, err = d.Selection(ShirtCatalog())
	assert.ErrorIs(t, err, ErrUnknownFabric)

	d = &Design{Button: "gold"}
	_, err = d.Selection(ShirtCatalog())
	assert.ErrorIs(t, err, ErrUnknownSwatch)

	d = &Design{Button: "#123456"}
	sel, err := d.Selection(ShirtCatalog())
	require.NoError(t, err)
	assert.Equal(t, "#123456", sel.ButtonColor)
	assert.Equal(t, AnchorNone, sel.Monogram.Anchor)
	assert.Equal(t, DefaultButtonColor, (Selection{}).ButtonColorOr())
}
