package game

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tileworld/internal/entity"
	"github.com/samdwyer/tileworld/internal/gamedata"
	"github.com/samdwyer/tileworld/internal/persistence"
	"github.com/samdwyer/tileworld/internal/telemetry"
	"github.com/samdwyer/tileworld/internal/world"
)

// ErrNoStore is returned when saving without a configured store.
var ErrNoStore = errors.New("no snapshot store configured")

// Session is the game without a terminal: the map, the player and the tick
// counter. All methods run on the game loop's goroutine.
type Session struct {
	cfg     Config
	catalog *gamedata.Catalog
	world   *world.Map
	player  *entity.Player
	store   persistence.Storage
	tick    uint64
	state   State
	message string
}

// NewSession creates a session over gen. store may be nil, in which case
// saving reports ErrNoStore.
func NewSession(cfg Config, cat *gamedata.Catalog, gen world.Generator, store persistence.Storage) *Session {
	return &Session{
		cfg:     cfg,
		catalog: cat,
		world:   world.NewMap(gen, cat),
		player:  entity.NewPlayer("player", 0, 0),
		store:   store,
		state:   StateLoading,
	}
}

// Start sizes the viewport, puts the player in the middle of chunk (0, 0)
// and generates that chunk.
func (s *Session) Start(ctx context.Context, width, height int) error {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.init")
	defer span.End()

	s.world.Size(width, height)
	s.player.X, s.player.Y = s.world.Width/2, s.world.Height/2

	if err := s.world.GenerateLocation(ctx, 0, 0); err != nil {
		return fmt.Errorf("failed to generate start location: %w", err)
	}
	s.state = StateExplore

	span.SetAttributes(
		attribute.String("generator.kind", s.world.Generator().Kind()),
		attribute.Int("viewport.width", s.world.Width),
		attribute.Int("viewport.height", s.world.Height),
		attribute.Int("player.start_x", s.player.X),
		attribute.Int("player.start_y", s.player.Y),
	)
	return nil
}

// Resize changes the viewport and regenerates the chunk holding the player.
func (s *Session) Resize(ctx context.Context, width, height int) error {
	s.world.Size(width, height)
	cx, cy := s.world.ChunkFor(s.player.X, s.player.Y)
	return s.world.GenerateLocation(ctx, cx, cy)
}

// MovePlayer steps the player one cell. The player always turns to face d;
// the step is refused when the target holds a block that cannot be walked
// on. Leaving the viewport loads the neighbouring chunk.
func (s *Session) MovePlayer(ctx context.Context, d entity.Direction) (bool, error) {
	s.player.Turn(d)
	tx, ty := s.player.Target(d)
	if !s.world.Peek(tx, ty).Passable() {
		return false, nil
	}

	oldX, oldY := s.player.Position()
	s.player.Move(d)

	cx, cy := s.world.ChunkFor(tx, ty)
	if ox, oy := s.world.Chunk(); cx != ox || cy != oy {
		return true, s.world.GenerateLocation(ctx, cx, cy)
	}

	s.markAbsolute(oldX, oldY)
	s.markAbsolute(tx, ty)
	return true, nil
}

// Dig clears the block in front of the player, keeping it as an item when
// a slot is free. The change is permanent.
func (s *Session) Dig() bool {
	fx, fy := s.player.FacingCell()
	t := s.world.Peek(fx, fy)
	if t.Block == nil {
		return false
	}

	kept := s.player.AddItem(t.Block.ID)
	s.world.RecordOverride(fx, fy, world.Tile{Floor: t.Floor})
	if kept {
		s.message = "dug " + t.Block.Name
	} else {
		s.message = "dug " + t.Block.Name + ", bag full"
	}
	return true
}

// Plant places a sunflower in front of the player on empty dry ground.
func (s *Session) Plant() bool {
	fx, fy := s.player.FacingCell()
	t := s.world.Peek(fx, fy)
	if t.Block != nil || !plantable(t.Floor) {
		return false
	}

	s.world.RecordOverride(fx, fy, world.Tile{Floor: t.Floor, Block: s.catalog.Get(gamedata.OverlaySunflower)})
	s.message = "planted a sunflower"
	return true
}

func plantable(floor *gamedata.Entity) bool {
	if floor == nil {
		return false
	}
	switch floor.ID {
	case gamedata.VoidID, gamedata.FloorShallowWater, gamedata.FloorDeepWater, gamedata.FloorAbyss:
		return false
	}
	return true
}

// Tick advances the animation counter and queues animated cells outside
// the chrome rows. It returns the number of cells queued.
func (s *Session) Tick() int {
	s.tick++
	return s.world.MarkAnimated(s.cfg.HUDTop, s.cfg.HUDBottom)
}

// Save stores the current viewport under name.
func (s *Session) Save(ctx context.Context, name string) error {
	if s.store == nil {
		return ErrNoStore
	}
	if err := s.store.SaveSnapshot(ctx, s.world.Snapshot(name)); err != nil {
		s.message = "save failed"
		return err
	}
	s.message = "saved " + name
	return nil
}

// SnapshotName returns the default name for saving the current chunk.
func (s *Session) SnapshotName() string {
	cx, cy := s.world.Chunk()
	return fmt.Sprintf("chunk_%d_%d", cx, cy)
}

// Quit ends the session.
func (s *Session) Quit() { s.state = StateQuit }

// ScreenPos returns the player's viewport position.
func (s *Session) ScreenPos() (world.Coord, bool) {
	x, y, ok := s.world.Relative(s.player.X, s.player.Y)
	return world.Coord{X: x, Y: y}, ok
}

// StatusLines returns the text for the top and bottom chrome rows.
func (s *Session) StatusLines() (top, bottom []string) {
	top = make([]string, s.cfg.HUDTop)
	bottom = make([]string, s.cfg.HUDBottom)
	if len(top) > 0 {
		top[0] = fmt.Sprintf("x: %d; y: %d", s.player.X, s.player.Y)
	}
	if len(bottom) > 0 {
		status := fmt.Sprintf("%s | %s", s.state, s.world.Generator().Kind())
		if p, ok := s.world.Generator().(*world.Procedural); ok {
			status += fmt.Sprintf(" | seed %g", p.Seed())
		}
		status += fmt.Sprintf(" | overrides %d", s.world.OverrideCount())
		if s.message != "" {
			status += " | " + s.message
		}
		bottom[0] = status
	}
	return top, bottom
}

// Map returns the live map.
func (s *Session) Map() *world.Map { return s.world }

// Player returns the player.
func (s *Session) Player() *entity.Player { return s.player }

// TickCount returns the number of ticks so far.
func (s *Session) TickCount() uint64 { return s.tick }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Message returns the last action message.
func (s *Session) Message() string { return s.message }

func (s *Session) markAbsolute(absX, absY int) {
	if x, y, ok := s.world.Relative(absX, absY); ok {
		s.world.MarkDirty(x, y)
	}
}
