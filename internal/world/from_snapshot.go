package world

import "github.com/samdwyer/tileworld/internal/gamedata"

// FromSnapshot replays a saved rectangular map. Coordinates outside the
// snapshot produce void tiles; no noise is ever consulted.
type FromSnapshot struct {
	snapshot *Snapshot
	catalog  *gamedata.Catalog
}

// NewFromSnapshot creates a replay generator. The snapshot is validated first
// so a bad snapshot never reaches a Map.
func NewFromSnapshot(s *Snapshot, cat *gamedata.Catalog) (*FromSnapshot, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &FromSnapshot{snapshot: s, catalog: cat}, nil
}

// Kind implements Generator.
func (g *FromSnapshot) Kind() string { return KindFromSnapshot }

// Name returns the snapshot's header name.
func (g *FromSnapshot) Name() string { return g.snapshot.Header.Name }

// Generate implements Generator.
func (g *FromSnapshot) Generate(absX, absY, _, _ int) Tile {
	cell, ok := g.snapshot.At(absX, absY)
	if !ok {
		return VoidTile(g.catalog)
	}
	return TileFromIDs(g.catalog, cell.Floor, cell.Block)
}
