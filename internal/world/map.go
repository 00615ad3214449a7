package world

import (
	"context"
	"errors"
	"iter"
	"slices"

	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tileworld/internal/gamedata"
	"github.com/samdwyer/tileworld/internal/telemetry"
)

// ErrNotSized is returned when a location is generated before Size.
var ErrNotSized = errors.New("map has no size")

// State tracks a Map's lifecycle.
type State int

const (
	// StateUninitialized is a map that has never been sized.
	StateUninitialized State = iota
	// StateSized has a void-filled grid but no generated content.
	StateSized
	// StatePopulated holds a generated location.
	StatePopulated
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateSized:
		return "sized"
	case StatePopulated:
		return "populated"
	default:
		return "unknown"
	}
}

// Map holds one chunk-sized window of the world, the player's permanent
// overrides (keyed by absolute coordinate) and the set of viewport cells
// waiting to be redrawn.
//
// A Map is not safe for concurrent use; the game mutates it from one goroutine.
type Map struct {
	Width  int
	Height int

	catalog   *gamedata.Catalog
	generator Generator
	tiles     [][]Tile
	changed   map[Coord]Tile
	updated   mapset.Set[Coord]
	chunkX    int
	chunkY    int
	state     State
}

// NewMap creates an unsized map backed by the given generator.
func NewMap(gen Generator, cat *gamedata.Catalog) *Map {
	return &Map{
		catalog:   cat,
		generator: gen,
		changed:   make(map[Coord]Tile),
		updated:   mapset.New[Coord](),
	}
}

// Size (re)allocates the grid to width x height void tiles. Content is not
// generated and pending redraws are discarded.
func (m *Map) Size(width, height int) {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	void := VoidTile(m.catalog)
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = void
		}
	}

	m.Width, m.Height = width, height
	m.tiles = tiles
	m.updated = mapset.New[Coord]()
	if m.state == StateUninitialized {
		m.state = StateSized
	}
}

// GenerateLocation fills the grid with chunk (chunkX, chunkY), re-applies
// every stored override that falls inside it and marks every cell dirty.
func (m *Map) GenerateLocation(ctx context.Context, chunkX, chunkY int) error {
	if m.state == StateUninitialized {
		return ErrNotSized
	}

	_, span := telemetry.Tracer("world").Start(ctx, "map.generate_location")
	defer span.End()

	m.updated = mapset.New[Coord]()
	m.chunkX, m.chunkY = chunkX, chunkY

	originX, originY := chunkX*m.Width, chunkY*m.Height
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			m.tiles[y][x] = m.generator.Generate(originX+x, originY+y, chunkX, chunkY)
			m.updated.Put(Coord{X: x, Y: y})
		}
	}

	applied := 0
	for c, t := range m.changed {
		x, y := c.X-originX, c.Y-originY
		if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
			continue
		}
		m.tiles[y][x] = t
		applied++
	}

	m.state = StatePopulated

	span.SetAttributes(
		attribute.String("generator.kind", m.generator.Kind()),
		attribute.Int("chunk.x", chunkX),
		attribute.Int("chunk.y", chunkY),
		attribute.Int("map.width", m.Width),
		attribute.Int("map.height", m.Height),
		attribute.Int("overrides.applied", applied),
		attribute.Int("overrides.total", len(m.changed)),
	)
	return nil
}

// RecordOverride permanently replaces the tile at an absolute coordinate. A
// later override at the same coordinate wins. If the coordinate is inside the
// current window the grid is updated and the cell marked dirty.
func (m *Map) RecordOverride(absX, absY int, t Tile) {
	t = NewTile(m.catalog, t.Floor, t.Block)
	m.changed[Coord{X: absX, Y: absY}] = t

	if m.state != StatePopulated {
		return
	}
	if x, y, ok := m.Relative(absX, absY); ok {
		m.tiles[y][x] = t
		m.updated.Put(Coord{X: x, Y: y})
	}
}

// Peek returns the tile at an absolute coordinate whether or not it is on
// screen: the live grid first, then a stored override, then the generator.
func (m *Map) Peek(absX, absY int) Tile {
	if m.state == StatePopulated {
		if x, y, ok := m.Relative(absX, absY); ok {
			return m.tiles[y][x]
		}
	}
	if t, ok := m.changed[Coord{X: absX, Y: absY}]; ok {
		return t
	}
	cx, cy := m.ChunkFor(absX, absY)
	return m.generator.Generate(absX, absY, cx, cy)
}

// Override returns the stored override at an absolute coordinate.
func (m *Map) Override(absX, absY int) (Tile, bool) {
	t, ok := m.changed[Coord{X: absX, Y: absY}]
	return t, ok
}

// OverrideCount returns the number of stored overrides.
func (m *Map) OverrideCount() int { return len(m.changed) }

// Tile returns the tile at viewport coordinate (x, y).
func (m *Map) Tile(x, y int) (Tile, bool) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height || m.tiles == nil {
		return Tile{}, false
	}
	return m.tiles[y][x], true
}

// TileAt returns the tile at an absolute coordinate if it is in the window.
func (m *Map) TileAt(absX, absY int) (Tile, bool) {
	x, y, ok := m.Relative(absX, absY)
	if !ok {
		return Tile{}, false
	}
	return m.tiles[y][x], true
}

// Chunk returns the coordinates of the materialized chunk.
func (m *Map) Chunk() (int, int) { return m.chunkX, m.chunkY }

// ChunkFor returns the chunk containing an absolute coordinate.
func (m *Map) ChunkFor(absX, absY int) (int, int) {
	return ChunkOf(absX, m.Width), ChunkOf(absY, m.Height)
}

// Relative converts an absolute coordinate to viewport coordinates.
func (m *Map) Relative(absX, absY int) (x, y int, ok bool) {
	x, y = absX-m.chunkX*m.Width, absY-m.chunkY*m.Height
	ok = x >= 0 && x < m.Width && y >= 0 && y < m.Height
	return x, y, ok
}

// Absolute converts a viewport coordinate to an absolute coordinate.
func (m *Map) Absolute(x, y int) (int, int) {
	return m.chunkX*m.Width + x, m.chunkY*m.Height + y
}

// State returns the lifecycle state.
func (m *Map) State() State { return m.state }

// Generator returns the generator backing the map.
func (m *Map) Generator() Generator { return m.generator }

// SetGenerator switches the world the map draws from. Overrides are kept;
// call GenerateLocation to see the new content.
func (m *Map) SetGenerator(gen Generator) { m.generator = gen }

// MarkDirty queues viewport cell (x, y) for redraw. Out-of-bounds cells are ignored.
func (m *Map) MarkDirty(x, y int) bool {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return false
	}
	m.updated.Put(Coord{X: x, Y: y})
	return true
}

// MarkAnimated queues every animated cell for redraw, skipping the top and
// bottom rows reserved for chrome. Returns the number of cells marked.
func (m *Map) MarkAnimated(top, bottom int) int {
	if m.state != StatePopulated {
		return 0
	}
	marked := 0
	for y := max(top, 0); y < m.Height-bottom; y++ {
		for x := 0; x < m.Width; x++ {
			if m.tiles[y][x].Animated() {
				m.updated.Put(Coord{X: x, Y: y})
				marked++
			}
		}
	}
	return marked
}

// DirtyCount returns the number of cells waiting to be redrawn.
func (m *Map) DirtyCount() int { return m.updated.Size() }

// IsDirty reports whether viewport cell (x, y) is waiting to be redrawn.
func (m *Map) IsDirty(x, y int) bool { return m.updated.Has(Coord{X: x, Y: y}) }

// DrainDirty yields pending cells in row-major order, removing each one as it
// is consumed. Cells not reached when iteration stops stay pending.
func (m *Map) DrainDirty() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		pending := make([]Coord, 0, m.updated.Size())
		m.updated.Each(func(c Coord) {
			pending = append(pending, c)
		})
		slices.SortFunc(pending, func(a, b Coord) int {
			if a.Y != b.Y {
				return a.Y - b.Y
			}
			return a.X - b.X
		})

		for _, c := range pending {
			m.updated.Remove(c)
			if !yield(c) {
				return
			}
		}
	}
}

// Snapshot serializes the current grid into the persisted shape.
func (m *Map) Snapshot(name string) *Snapshot {
	cells := make([][]Cell, m.Height)
	for y := range cells {
		cells[y] = make([]Cell, m.Width)
		for x := range cells[y] {
			cells[y][x] = m.tiles[y][x].Cell()
		}
	}
	return &Snapshot{Header: Header{Name: name}, Cells: cells}
}
