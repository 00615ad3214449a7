package gamedata

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/rivo/uniseg"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tileworld/internal/telemetry"
)

const entitiesFile = "entities.json"

// ErrInvalidCatalog is returned when entity definitions fail validation.
var ErrInvalidCatalog = errors.New("invalid entity catalog")

// EntitiesFile represents the structure of entities.json.
type EntitiesFile struct {
	Entities []Entity `json:"entities"`
}

// Catalog maps entity ids to immutable entity records. Lookups never fail:
// unknown ids resolve to the void entity.
type Catalog struct {
	entities map[int]*Entity
	all      []*Entity
	void     *Entity
	player   *Entity
}

// NewCatalog validates the definitions and builds a catalog from them.
func NewCatalog(defs []Entity) (*Catalog, error) {
	c := &Catalog{entities: make(map[int]*Entity, len(defs))}
	names := make(map[string]int, len(defs))

	for i := range defs {
		e := defs[i]
		if err := validateEntity(&e); err != nil {
			return nil, err
		}
		if _, dup := c.entities[e.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidCatalog, e.ID)
		}
		if other, dup := names[e.Name]; dup {
			return nil, fmt.Errorf("%w: name %q used by ids %d and %d", ErrInvalidCatalog, e.Name, other, e.ID)
		}
		names[e.Name] = e.ID

		ent := &e
		ent.Symbols = append([]string(nil), e.Symbols...)
		c.entities[e.ID] = ent
		c.all = append(c.all, ent)
		if ent.Role == RolePlayer && c.player == nil {
			c.player = ent
		}
	}

	void, ok := c.entities[VoidID]
	if !ok || void.Role != RoleFloor {
		return nil, fmt.Errorf("%w: id %d must be a floor entity", ErrInvalidCatalog, VoidID)
	}
	c.void = void
	if c.player == nil {
		c.player = void
	}

	sort.Slice(c.all, func(i, j int) bool { return c.all[i].ID < c.all[j].ID })
	return c, nil
}

// LoadCatalog loads and validates the embedded entities.json.
func LoadCatalog(ctx context.Context) (*Catalog, error) {
	return LoadCatalogFS(ctx, dataFS, entitiesFile)
}

// LoadCatalogFS loads a catalog from an arbitrary filesystem.
func LoadCatalogFS(ctx context.Context, fsys fs.FS, filename string) (*Catalog, error) {
	_, span := telemetry.Tracer("gamedata").Start(ctx, "catalog.load")
	defer span.End()

	file, err := LoadFS[EntitiesFile](fsys, filename)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if len(file.Entities) == 0 {
		return nil, fmt.Errorf("%w: no entities loaded from %s", ErrInvalidCatalog, filename)
	}

	c, err := NewCatalog(file.Entities)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("catalog.entities", c.Count()))
	return c, nil
}

// MustLoadCatalog loads the embedded catalog, panicking on error.
func MustLoadCatalog() *Catalog {
	c, err := LoadCatalog(context.Background())
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns the entity with the given id, or the void entity if the id is
// negative or unknown.
func (c *Catalog) Get(id int) *Entity {
	if e, ok := c.entities[id]; ok {
		return e
	}
	return c.void
}

// Resolve is Get for nullable ids; nil resolves to the void entity.
func (c *Catalog) Resolve(id *int) *Entity {
	if id == nil {
		return c.void
	}
	return c.Get(*id)
}

// Floor returns the floor entity for id, or void when id is not a floor.
func (c *Catalog) Floor(id int) *Entity {
	if e := c.Get(id); e.Role == RoleFloor {
		return e
	}
	return c.void
}

// Block returns the block entity for a nullable id, or nil when the id is
// null, zero, unknown or not a block.
func (c *Catalog) Block(id *int) *Entity {
	if id == nil || *id == VoidID {
		return nil
	}
	if e, ok := c.entities[*id]; ok && e.Role == RoleBlock {
		return e
	}
	return nil
}

// Void returns the reserved void entity (id 0).
func (c *Catalog) Void() *Entity { return c.void }

// Player returns the entity drawn at the player's position.
func (c *Catalog) Player() *Entity { return c.player }

// All returns every entity ordered by id.
func (c *Catalog) All() []*Entity { return c.all }

// Count returns the number of entities in the catalog.
func (c *Catalog) Count() int { return len(c.all) }

func validateEntity(e *Entity) error {
	if e.ID < 0 {
		return fmt.Errorf("%w: negative id %d", ErrInvalidCatalog, e.ID)
	}
	if e.Name == "" {
		return fmt.Errorf("%w: id %d has no name", ErrInvalidCatalog, e.ID)
	}
	if len(e.Symbols) == 0 {
		return fmt.Errorf("%w: %s has no symbols", ErrInvalidCatalog, e.Name)
	}
	for _, s := range e.Symbols {
		if uniseg.GraphemeClusterCount(s) != 1 || uniseg.StringWidth(s) != 1 {
			return fmt.Errorf("%w: %s symbol %q must be a single narrow character", ErrInvalidCatalog, e.Name, s)
		}
	}
	if e.Walkable && e.Role != RoleBlock {
		return fmt.Errorf("%w: %s is walkable but not a block", ErrInvalidCatalog, e.Name)
	}
	if _, err := ParseHexColor(e.Colors.Hex); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidCatalog, e.Name, err)
	}
	if e.Colors.Palette < 0 || e.Colors.Palette > 255 {
		return fmt.Errorf("%w: %s palette index %d out of range", ErrInvalidCatalog, e.Name, e.Colors.Palette)
	}
	return nil
}
