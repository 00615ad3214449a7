package gamedata

import (
	"fmt"
	"strings"
)

// Role tags what part an entity can play in a tile.
type Role int

const (
	// RoleFloor entities fill the bottom layer of every tile.
	RoleFloor Role = iota
	// RoleBlock entities optionally sit on top of a floor.
	RoleBlock
	// RolePlayer is drawn over the player's cell.
	RolePlayer
)

// String returns a human-readable role name.
func (r Role) String() string {
	switch r {
	case RoleFloor:
		return "floor"
	case RoleBlock:
		return "block"
	case RolePlayer:
		return "player"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "floor":
		*r = RoleFloor
	case "block":
		*r = RoleBlock
	case "player":
		*r = RolePlayer
	default:
		return fmt.Errorf("unknown entity role %q", text)
	}
	return nil
}

// Entity is an immutable catalog record. Entities are created once when the
// catalog loads and shared read-only for the life of the process.
type Entity struct {
	ID       int      `json:"id"`                 // Catalog id, stable across saves
	Name     string   `json:"name"`               // Unique name (e.g., "floor-grass")
	Role     Role     `json:"role"`               // floor, block or player
	Symbols  []string `json:"symbols"`            // Display frames; more than one means animated
	Colors   ColorSet `json:"colors"`             // One colour per rendering mode
	Walkable bool     `json:"walkable,omitempty"` // Blocks only: can the player stand on it
}

// Animated reports whether the entity cycles through more than one symbol.
func (e *Entity) Animated() bool {
	return e != nil && len(e.Symbols) > 1
}

// Symbol returns the display symbol for the given frame, wrapping out-of-range frames.
func (e *Entity) Symbol(frame int) string {
	if len(e.Symbols) == 0 {
		return " "
	}
	if frame < 0 {
		frame = -frame
	}
	return e.Symbols[frame%len(e.Symbols)]
}

// IsFloor reports whether the entity can be a tile's floor.
func (e *Entity) IsFloor() bool { return e != nil && e.Role == RoleFloor }

// IsBlock reports whether the entity can be a tile's block.
func (e *Entity) IsBlock() bool { return e != nil && e.Role == RoleBlock }

// Passable reports whether the player may enter a cell occupied by this entity.
// Floors are always passable; blocks only when walkable.
func (e *Entity) Passable() bool {
	switch {
	case e == nil:
		return true
	case e.Role == RoleBlock:
		return e.Walkable
	default:
		return true
	}
}
