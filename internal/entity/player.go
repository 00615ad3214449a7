// Package entity provides the player character.
package entity

// ItemSlots is the fixed size of the player's item array.
const ItemSlots = 9

// Direction is a unit step on the grid.
type Direction struct {
	DX, DY int
}

// Unit steps.
var (
	Up    = Direction{0, -1}
	Down  = Direction{0, 1}
	Left  = Direction{-1, 0}
	Right = Direction{1, 0}
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Player is the single controllable character. Its position is absolute in
// world coordinates, independent of the chunk on screen.
type Player struct {
	X, Y   int            // Absolute world position
	Facing Direction      // Last direction moved or turned
	Items  [ItemSlots]int // Opaque item slots, zero when empty
	Name   string         // Display name
}

// NewPlayer creates a player at the given absolute position, facing down.
func NewPlayer(name string, x, y int) *Player {
	return &Player{
		X:      x,
		Y:      y,
		Facing: Down,
		Name:   name,
	}
}

// Target returns the absolute position one step in direction d.
func (p *Player) Target(d Direction) (int, int) {
	return p.X + d.DX, p.Y + d.DY
}

// FacingCell returns the absolute position the player is facing.
func (p *Player) FacingCell() (int, int) {
	return p.Target(p.Facing)
}

// Move updates the position by one step in direction d and faces that way.
func (p *Player) Move(d Direction) {
	p.X += d.DX
	p.Y += d.DY
	p.Facing = d
}

// Turn faces direction d without moving.
func (p *Player) Turn(d Direction) {
	p.Facing = d
}

// Position returns the current absolute coordinates.
func (p *Player) Position() (int, int) {
	return p.X, p.Y
}

// AddItem stores id in the first empty slot. It reports false when every
// slot is taken or id is zero.
func (p *Player) AddItem(id int) bool {
	if id == 0 {
		return false
	}
	for i, v := range p.Items {
		if v == 0 {
			p.Items[i] = id
			return true
		}
	}
	return false
}
