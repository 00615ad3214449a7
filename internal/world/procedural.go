package world

import (
	"github.com/samdwyer/tileworld/internal/gamedata"
	"github.com/samdwyer/tileworld/internal/noise"
	"github.com/samdwyer/tileworld/internal/rng"
)

const (
	elevationScale = 10
	detailScale    = 0.37

	// Decoration chances, in percent.
	seaweedChance = 4
	bushChance    = 8
	flowerChance  = 3

	// The ruin centre is drawn from [ruinMin, ruinMax] on both axes.
	ruinMin    = 8
	ruinMax    = 28
	ruinRadius = 5
	ruinHalf   = 3 // corner offset from the centre
)

// Salts keep independent draws from the same world seed apart.
const (
	saltDetail = iota + 1
	saltRuinX
	saltRuinY
	saltSeaweed
	saltBush
	saltFlower
)

var octaveWeights = []float64{1, 3, 4}

type band struct {
	max   float64
	floor int
}

// Elevation bands, first match wins; anything above the last is snow.
var bands = []band{
	{-0.46, gamedata.FloorAbyss},
	{-0.4, gamedata.FloorDeepWater},
	{-0.2, gamedata.FloorShallowWater},
	{0, gamedata.FloorSand},
	{0.4, gamedata.FloorGrass},
	{0.6, gamedata.FloorStone},
}

// Procedural generates terrain from coherent noise keyed by a world seed and
// places a single ruin landmark somewhere near the origin.
type Procedural struct {
	seed      float64
	catalog   *gamedata.Catalog
	elevation *noise.Field
	detail    *noise.Field
	ruin      Coord
}

// NewProcedural creates a procedural generator for the given world seed.
func NewProcedural(seed float64, cat *gamedata.Catalog) *Procedural {
	return &Procedural{
		seed:      seed,
		catalog:   cat,
		elevation: noise.NewField(seed),
		detail:    noise.NewField(seed, saltDetail),
		ruin: Coord{
			X: int(rng.Seeded(rng.SeedOf(seed, saltRuinX), ruinMin, ruinMax, true)),
			Y: int(rng.Seeded(rng.SeedOf(seed, saltRuinY), ruinMin, ruinMax, true)),
		},
	}
}

// Kind implements Generator.
func (p *Procedural) Kind() string { return KindProcedural }

// Seed returns the world seed.
func (p *Procedural) Seed() float64 { return p.seed }

// Landmark returns the absolute coordinate of the ruin centre.
func (p *Procedural) Landmark() Coord { return p.ruin }

// Elevation returns the terrain height at an absolute coordinate, in [-1, 1].
func (p *Procedural) Elevation(absX, absY int) float64 {
	return p.elevation.Evaluate(absX, absY, elevationScale, octaveWeights)
}

// Generate implements Generator. The landmark is world-wide, so the chunk
// coordinates do not affect the result.
func (p *Procedural) Generate(absX, absY, _, _ int) Tile {
	if t, ok := p.landmark(absX, absY); ok {
		return t
	}
	return p.biome(absX, absY)
}

func (p *Procedural) biome(absX, absY int) Tile {
	floor := floorFor(p.Elevation(absX, absY))

	var block *gamedata.Entity
	switch floor {
	case gamedata.FloorSand:
		if rng.ChanceSeeded(p.cellSeed(absX, absY, saltSeaweed), seaweedChance) {
			block = p.catalog.Get(gamedata.OverlaySeaweed)
		}
	case gamedata.FloorGrass:
		if rng.ChanceSeeded(p.cellSeed(absX, absY, saltBush), bushChance) {
			block = p.catalog.Get(gamedata.BlockSmallBush)
		} else if rng.ChanceSeeded(p.cellSeed(absX, absY, saltFlower), flowerChance) {
			block = p.catalog.Get(gamedata.OverlaySunflower)
		}
	}

	return NewTile(p.catalog, p.catalog.Get(floor), block)
}

// floorFor maps an elevation to its band's floor id. A value exactly on a
// threshold belongs to the lower band.
func floorFor(elevation float64) int {
	for _, b := range bands {
		if elevation <= b.max {
			return b.floor
		}
	}
	return gamedata.FloorSnow
}

// cellSeed derives a per-cell seed from the world seed and a secondary noise
// sample, so decoration is identical every time a chunk is regenerated.
func (p *Procedural) cellSeed(absX, absY int, salt float64) rng.Seed {
	sample := p.detail.Sample(float64(absX)*detailScale+0.5, float64(absY)*detailScale+0.5)
	return rng.SeedOf(p.seed, float64(absX), float64(absY), sample, salt)
}

func (p *Procedural) landmark(absX, absY int) (Tile, bool) {
	dx, dy := absX-p.ruin.X, absY-p.ruin.Y
	if dx*dx+dy*dy > ruinRadius*ruinRadius {
		return Tile{}, false
	}

	block := 0
	switch {
	case dx == 0 && dy == 0:
		block = gamedata.BlockMagentaCrystal
	case dx == -ruinHalf && dy == -ruinHalf:
		block = gamedata.BlockRuinTopLeft
	case dx == ruinHalf && dy == -ruinHalf:
		block = gamedata.BlockRuinTopRight
	case dx == -ruinHalf && dy == ruinHalf:
		block = gamedata.BlockRuinBottomLeft
	case dx == ruinHalf && dy == ruinHalf:
		block = gamedata.BlockRuinBottomRight
	case abs(dx) == ruinHalf && abs(dy) < ruinHalf && dy != 0:
		block = gamedata.BlockRuinVertical
	case abs(dy) == ruinHalf && abs(dx) < ruinHalf && dx != 0:
		block = gamedata.BlockRuinHorizontal
	}

	return TileFromIDs(p.catalog, gamedata.FloorRuin, &block), true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
