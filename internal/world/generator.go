package world

// Generator produces the tile at an absolute world coordinate. Implementations
// are pure: the same arguments always yield the same tile.
type Generator interface {
	Generate(absX, absY, chunkX, chunkY int) Tile
	Kind() string
}

const (
	KindProcedural   = "procedural"
	KindFromSnapshot = "snapshot"
)
