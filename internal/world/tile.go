// Package world provides tile generation and the windowed map over an
// unbounded world.
package world

import "github.com/samdwyer/tileworld/internal/gamedata"

// Tile is one world cell: a floor entity plus an optional block entity.
type Tile struct {
	Floor *gamedata.Entity // Always a floor-role entity
	Block *gamedata.Entity // Block-role entity, or nil when empty
}

// NewTile builds a tile, replacing an invalid floor with void and dropping an
// invalid block.
func NewTile(cat *gamedata.Catalog, floor, block *gamedata.Entity) Tile {
	if !floor.IsFloor() {
		floor = cat.Void()
	}
	if !block.IsBlock() {
		block = nil
	}
	return Tile{Floor: floor, Block: block}
}

// TileFromIDs resolves a floor id and a nullable block id through the catalog.
func TileFromIDs(cat *gamedata.Catalog, floorID int, blockID *int) Tile {
	return Tile{Floor: cat.Floor(floorID), Block: cat.Block(blockID)}
}

// VoidTile returns the tile used outside of any known content.
func VoidTile(cat *gamedata.Catalog) Tile {
	return Tile{Floor: cat.Void()}
}

// Cell returns the tile's persisted id pair.
func (t Tile) Cell() Cell {
	c := Cell{Floor: gamedata.VoidID}
	if t.Floor != nil {
		c.Floor = t.Floor.ID
	}
	if t.Block != nil {
		id := t.Block.ID
		c.Block = &id
	}
	return c
}

// Passable reports whether the player may enter this tile.
func (t Tile) Passable() bool {
	return t.Block.Passable()
}

// Animated reports whether either layer cycles symbols.
func (t Tile) Animated() bool {
	return (t.Floor != nil && t.Floor.Animated()) || (t.Block != nil && t.Block.Animated())
}

// Coord is a value-comparable 2-D integer coordinate, usable as a map or set key.
type Coord struct {
	X, Y int
}

// ChunkOf returns the chunk index containing absolute coordinate c for chunks
// of the given size, rounding toward negative infinity.
func ChunkOf(c, size int) int {
	if size <= 0 {
		return 0
	}
	q := c / size
	if c < 0 && c%size != 0 {
		q--
	}
	return q
}
