package world

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedSnapshot is returned when persisted map data cannot be used.
var ErrMalformedSnapshot = errors.New("malformed map snapshot")

// Header describes a saved map.
type Header struct {
	Name string `json:"name"`
	ID   string `json:"id,omitempty"`
}

// Cell is one persisted tile: a floor id and an optional block id.
// On the wire it is the pair [floor_id, block_id_or_null].
type Cell struct {
	Floor int
	Block *int
}

// MarshalJSON implements json.Marshaler.
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{c.Floor, c.Block})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("%w: cell %s: %v", ErrMalformedSnapshot, data, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: cell %s must have 2 elements", ErrMalformedSnapshot, data)
	}

	var floor int
	if err := json.Unmarshal(pair[0], &floor); err != nil || isNull(pair[0]) {
		return fmt.Errorf("%w: cell %s: floor must be an integer", ErrMalformedSnapshot, data)
	}

	var block *int
	if err := json.Unmarshal(pair[1], &block); err != nil {
		return fmt.Errorf("%w: cell %s: block must be an integer or null", ErrMalformedSnapshot, data)
	}

	c.Floor, c.Block = floor, block
	return nil
}

// Snapshot is a rectangular, row-major grid of cells plus a header. On the
// wire it is the array [header, rows].
type Snapshot struct {
	Header Header
	Cells  [][]Cell
}

// ParseSnapshot decodes and validates a persisted snapshot. Either the whole
// snapshot is returned or an error; nothing is partially applied.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		if errors.Is(err, ErrMalformedSnapshot) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// MarshalJSON implements json.Marshaler.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	cells := s.Cells
	if cells == nil {
		cells = [][]Cell{}
	}
	return json.Marshal([2]any{s.Header, cells})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if len(parts) != 2 {
		return fmt.Errorf("%w: want [header, rows], got %d elements", ErrMalformedSnapshot, len(parts))
	}

	var header struct {
		Name *string `json:"name"`
		ID   string  `json:"id"`
	}
	if err := json.Unmarshal(parts[0], &header); err != nil || header.Name == nil {
		return fmt.Errorf("%w: header must be an object with a name", ErrMalformedSnapshot)
	}

	var cells [][]Cell
	if err := json.Unmarshal(parts[1], &cells); err != nil {
		if errors.Is(err, ErrMalformedSnapshot) {
			return err
		}
		return fmt.Errorf("%w: rows: %v", ErrMalformedSnapshot, err)
	}

	s.Header = Header{Name: *header.Name, ID: header.ID}
	s.Cells = cells
	return nil
}

// Validate checks that the grid is non-empty and rectangular.
func (s *Snapshot) Validate() error {
	if len(s.Cells) == 0 {
		return fmt.Errorf("%w: no rows", ErrMalformedSnapshot)
	}
	width := len(s.Cells[0])
	if width == 0 {
		return fmt.Errorf("%w: empty first row", ErrMalformedSnapshot)
	}
	for y, row := range s.Cells {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedSnapshot, y, len(row), width)
		}
	}
	return nil
}

// Width returns the number of cells per row.
func (s *Snapshot) Width() int {
	if len(s.Cells) == 0 {
		return 0
	}
	return len(s.Cells[0])
}

// Height returns the number of rows.
func (s *Snapshot) Height() int { return len(s.Cells) }

// At returns the cell at (x, y) and whether it lies inside the snapshot.
func (s *Snapshot) At(x, y int) (Cell, bool) {
	if y < 0 || y >= len(s.Cells) || x < 0 || x >= len(s.Cells[y]) {
		return Cell{}, false
	}
	return s.Cells[y][x], true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
