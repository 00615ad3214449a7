package gamedata

// Catalog ids. Families are spaced with reserved gaps so new entities can be
// inserted without renumbering saved maps.
const (
	VoidID = 0

	// Floors: 1-5, 6-9 reserved.
	FloorStone = 1
	FloorGrass = 2
	FloorSand  = 3
	FloorSnow  = 4
	FloorRuin  = 5

	// Water: 10-12, 13-15 reserved.
	FloorShallowWater = 10
	FloorDeepWater    = 11
	FloorAbyss        = 12

	// Blocks: 16, 17-20 reserved, 21-27, 28-31 reserved.
	BlockSmallBush       = 16
	BlockRuinHorizontal  = 21
	BlockRuinVertical    = 22
	BlockRuinTopLeft     = 23
	BlockRuinTopRight    = 24
	BlockRuinBottomLeft  = 25
	BlockRuinBottomRight = 26
	BlockMagentaCrystal  = 27

	// Overlays: walkable blocks.
	OverlaySunflower = 32
	OverlaySeaweed   = 33

	// Actors.
	PlayerID = 48
)
