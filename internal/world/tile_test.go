package world

import (
	"testing"

	"github.com/samdwyer/tileworld/internal/gamedata"
)

func TestNewTileFallback(t *testing.T) {
	cat := testCatalog(t)
	grass := cat.Get(gamedata.FloorGrass)
	bush := cat.Get(gamedata.BlockSmallBush)

	tests := []struct {
		name      string
		floor     *gamedata.Entity
		block     *gamedata.Entity
		wantFloor int
		wantBlock bool
	}{
		{"valid", grass, bush, gamedata.FloorGrass, true},
		{"nil floor", nil, bush, gamedata.VoidID, true},
		{"block as floor", bush, nil, gamedata.VoidID, false},
		{"floor as block", grass, grass, gamedata.FloorGrass, false},
		{"player as block", grass, cat.Player(), gamedata.FloorGrass, false},
	}

	for _, tt := range tests {
		tile := NewTile(cat, tt.floor, tt.block)
		if tile.Floor == nil || tile.Floor.ID != tt.wantFloor {
			t.Errorf("%s: Floor = %v, want id %d", tt.name, tile.Floor, tt.wantFloor)
		}
		if (tile.Block != nil) != tt.wantBlock {
			t.Errorf("%s: Block = %v, want present=%v", tt.name, tile.Block, tt.wantBlock)
		}
	}
}

func TestTileFromIDs(t *testing.T) {
	cat := testCatalog(t)

	tile := TileFromIDs(cat, gamedata.FloorSand, intPtr(gamedata.OverlaySeaweed))
	if tile.Floor.ID != gamedata.FloorSand || tile.Block.ID != gamedata.OverlaySeaweed {
		t.Errorf("TileFromIDs(sand, seaweed) = %d/%v", tile.Floor.ID, tile.Block)
	}

	for _, block := range []*int{nil, intPtr(0), intPtr(-4), intPtr(9999)} {
		if got := TileFromIDs(cat, gamedata.FloorSand, block); got.Block != nil {
			t.Errorf("TileFromIDs(sand, %v).Block = %q, want nil", block, got.Block.Name)
		}
	}

	if got := TileFromIDs(cat, 9999, nil); got.Floor != cat.Void() {
		t.Errorf("TileFromIDs(9999).Floor = %q, want void", got.Floor.Name)
	}
}

func TestTileCell(t *testing.T) {
	cat := testCatalog(t)

	c := TileFromIDs(cat, gamedata.FloorGrass, intPtr(gamedata.BlockSmallBush)).Cell()
	if c.Floor != gamedata.FloorGrass || c.Block == nil || *c.Block != gamedata.BlockSmallBush {
		t.Errorf("Cell() = %d/%v", c.Floor, c.Block)
	}

	c = VoidTile(cat).Cell()
	if c.Floor != gamedata.VoidID || c.Block != nil {
		t.Errorf("VoidTile().Cell() = %d/%v, want 0/nil", c.Floor, c.Block)
	}
}

func TestTilePassableAnimated(t *testing.T) {
	cat := testCatalog(t)

	tests := []struct {
		name     string
		tile     Tile
		passable bool
		animated bool
	}{
		{"grass", TileFromIDs(cat, gamedata.FloorGrass, nil), true, false},
		{"bush", TileFromIDs(cat, gamedata.FloorGrass, intPtr(gamedata.BlockSmallBush)), false, true},
		{"sunflower", TileFromIDs(cat, gamedata.FloorGrass, intPtr(gamedata.OverlaySunflower)), true, false},
		{"water", TileFromIDs(cat, gamedata.FloorShallowWater, nil), true, true},
	}
	for _, tt := range tests {
		if got := tt.tile.Passable(); got != tt.passable {
			t.Errorf("%s: Passable() = %v, want %v", tt.name, got, tt.passable)
		}
		if got := tt.tile.Animated(); got != tt.animated {
			t.Errorf("%s: Animated() = %v, want %v", tt.name, got, tt.animated)
		}
	}
}

func TestChunkOf(t *testing.T) {
	tests := []struct {
		c, size, want int
	}{
		{0, 45, 0},
		{44, 45, 0},
		{45, 45, 1},
		{-1, 45, -1},
		{-45, 45, -1},
		{-46, 45, -2},
		{100, 0, 0},
	}
	for _, tt := range tests {
		if got := ChunkOf(tt.c, tt.size); got != tt.want {
			t.Errorf("ChunkOf(%d, %d) = %d, want %d", tt.c, tt.size, got, tt.want)
		}
	}
}
