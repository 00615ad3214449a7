package gamedata

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/gdamore/tcell/v2"
)

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog(context.Background())
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	expected := map[int]string{
		VoidID:              "void",
		FloorGrass:          "floor-grass",
		FloorRuin:           "floor-ruin",
		FloorAbyss:          "floor-abyss",
		BlockSmallBush:      "block-small-bush",
		BlockMagentaCrystal: "block-magenta-crystal",
		OverlaySeaweed:      "overlay-seaweed",
		PlayerID:            "player",
	}
	for id, name := range expected {
		if got := c.Get(id).Name; got != name {
			t.Errorf("Get(%d).Name = %q, want %q", id, got, name)
		}
	}

	if c.Player().ID != PlayerID {
		t.Errorf("Player().ID = %d, want %d", c.Player().ID, PlayerID)
	}
}

func TestCatalogFallback(t *testing.T) {
	c := MustLoadCatalog()

	for _, id := range []int{-1, 9999, 6, 17} {
		if got := c.Get(id); got != c.Void() {
			t.Errorf("Get(%d) = %q, want void", id, got.Name)
		}
	}
	if got := c.Resolve(nil); got != c.Void() {
		t.Errorf("Resolve(nil) = %q, want void", got.Name)
	}
}

func TestCatalogBlockAndFloor(t *testing.T) {
	c := MustLoadCatalog()
	ptr := func(v int) *int { return &v }

	tests := []struct {
		name string
		id   *int
		want *Entity
	}{
		{"null", nil, nil},
		{"zero", ptr(0), nil},
		{"negative", ptr(-1), nil},
		{"unknown", ptr(9999), nil},
		{"floor is not a block", ptr(FloorGrass), nil},
		{"bush", ptr(BlockSmallBush), c.Get(BlockSmallBush)},
	}
	for _, tt := range tests {
		if got := c.Block(tt.id); got != tt.want {
			t.Errorf("Block(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}

	if got := c.Floor(BlockSmallBush); got != c.Void() {
		t.Errorf("Floor(bush) = %q, want void", got.Name)
	}
	if got := c.Floor(FloorSand); got.ID != FloorSand {
		t.Errorf("Floor(sand).ID = %d, want %d", got.ID, FloorSand)
	}
}

func TestEntityAnimation(t *testing.T) {
	c := MustLoadCatalog()

	bush := c.Get(BlockSmallBush)
	if !bush.Animated() {
		t.Error("bush should be animated")
	}
	if bush.Symbol(0) != "♣" || bush.Symbol(1) != "♠" || bush.Symbol(2) != "♣" {
		t.Errorf("bush symbols = %q %q %q", bush.Symbol(0), bush.Symbol(1), bush.Symbol(2))
	}
	if c.Get(FloorStone).Animated() {
		t.Error("stone should not be animated")
	}
	if !c.Get(FloorShallowWater).Animated() {
		t.Error("shallow water should be animated")
	}
}

func TestEntityPassable(t *testing.T) {
	c := MustLoadCatalog()

	tests := []struct {
		id   int
		want bool
	}{
		{FloorGrass, true},
		{BlockSmallBush, false},
		{BlockMagentaCrystal, false},
		{OverlaySunflower, true},
		{OverlaySeaweed, true},
	}
	for _, tt := range tests {
		if got := c.Get(tt.id).Passable(); got != tt.want {
			t.Errorf("Get(%d).Passable() = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestNewCatalogValidation(t *testing.T) {
	void := Entity{ID: 0, Name: "void", Role: RoleFloor, Symbols: []string{" "}, Colors: ColorSet{Hex: "#000000"}}

	tests := []struct {
		name string
		defs []Entity
	}{
		{"missing void", []Entity{{ID: 1, Name: "a", Symbols: []string{" "}, Colors: ColorSet{Hex: "#000000"}}}},
		{"duplicate id", []Entity{void, void}},
		{"wide symbol", []Entity{void, {ID: 2, Name: "wide", Role: RoleBlock, Symbols: []string{"木"}, Colors: ColorSet{Hex: "#000000"}}}},
		{"two symbols in one", []Entity{void, {ID: 2, Name: "ab", Role: RoleBlock, Symbols: []string{"ab"}, Colors: ColorSet{Hex: "#000000"}}}},
		{"walkable floor", []Entity{void, {ID: 2, Name: "wf", Role: RoleFloor, Walkable: true, Symbols: []string{" "}, Colors: ColorSet{Hex: "#000000"}}}},
		{"bad hex", []Entity{void, {ID: 2, Name: "hex", Role: RoleBlock, Symbols: []string{"x"}, Colors: ColorSet{Hex: "#GG0000"}}}},
	}
	for _, tt := range tests {
		if _, err := NewCatalog(tt.defs); !errors.Is(err, ErrInvalidCatalog) {
			t.Errorf("NewCatalog(%s) error = %v, want ErrInvalidCatalog", tt.name, err)
		}
	}
}

func TestLoadCatalogFS(t *testing.T) {
	fsys := fstest.MapFS{
		"ok.json":    {Data: []byte(`{"entities":[{"id":0,"name":"void","role":"floor","symbols":[" "],"colors":{"name":"black","palette":0,"hex":"#000000"}}]}`)},
		"bad.json":   {Data: []byte(`{"entities":[{"id":0,"name":"void","role":"wall"}]}`)},
		"extra.json": {Data: []byte(`{"entities":[],"bogus":1}`)},
	}

	c, err := LoadCatalogFS(context.Background(), fsys, "ok.json")
	if err != nil {
		t.Fatalf("LoadCatalogFS(ok.json) error: %v", err)
	}
	if c.Count() != 1 || c.Player() != c.Void() {
		t.Errorf("LoadCatalogFS(ok.json) = %d entities, player %q", c.Count(), c.Player().Name)
	}

	for _, name := range []string{"bad.json", "extra.json", "missing.json"} {
		if _, err := LoadCatalogFS(context.Background(), fsys, name); err == nil {
			t.Errorf("LoadCatalogFS(%s) should fail", name)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00ff00", true},
		{"#0000FF", true},
		{"#FFFFFF", true},
		{"#000000", true},
		{"invalid", false},
		{"#FFF", false}, // Too short
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}

	c, _ := ParseHexColor("#FF8000")
	if r, g, b := c.RGB(); r != 0xFF || g != 0x80 || b != 0 {
		t.Errorf("ParseHexColor(#FF8000).RGB() = %d,%d,%d", r, g, b)
	}
}

func TestColorSetModes(t *testing.T) {
	set := ColorSet{Name: "green", Palette: 28, Hex: "#008700"}

	if got := set.Color(ModeBasic); got != tcell.ColorGreen {
		t.Errorf("Color(ModeBasic) = %v, want green", got)
	}
	if got := set.Color(ModePalette); got != tcell.PaletteColor(28) {
		t.Errorf("Color(ModePalette) = %v, want palette 28", got)
	}
	if got := set.Color(ModeTrueColor); got != tcell.NewRGBColor(0, 0x87, 0) {
		t.Errorf("Color(ModeTrueColor) = %v, want #008700", got)
	}

	r, g, b := set.Highlight(1).RGB()
	if r != 255 || g != 255 || b != 255 {
		t.Errorf("Highlight(1) = %d,%d,%d, want white", r, g, b)
	}
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		input string
		want  ColorMode
		ok    bool
	}{
		{"basic", ModeBasic, true},
		{"256", ModePalette, true},
		{"TrueColor", ModeTrueColor, true},
		{"sepia", ModeBasic, false},
	}
	for _, tt := range tests {
		got, err := ParseColorMode(tt.input)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseColorMode(%q) = %v, %v", tt.input, got, err)
		}
	}
}

func TestRoleString(t *testing.T) {
	tests := []struct {
		role     Role
		expected string
	}{
		{RoleFloor, "floor"},
		{RoleBlock, "block"},
		{RolePlayer, "player"},
		{Role(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.role.String(); got != tt.expected {
			t.Errorf("Role(%d).String() = %q, want %q", tt.role, got, tt.expected)
		}
	}
}
