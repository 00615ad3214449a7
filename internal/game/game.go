package game

import (
	"context"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tileworld/internal/entity"
	"github.com/samdwyer/tileworld/internal/gamedata"
	"github.com/samdwyer/tileworld/internal/persistence"
	"github.com/samdwyer/tileworld/internal/ui"
	"github.com/samdwyer/tileworld/internal/world"
)

// action is a decoded key press.
type action int

const (
	actionNone action = iota
	actionMove
	actionDig
	actionPlant
	actionSave
	actionQuit
)

// Game ties a Session to a terminal screen.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *Session
}

// New creates a game on a fresh terminal screen.
func New(cfg Config, cat *gamedata.Catalog, gen world.Generator, store persistence.Storage) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return newGame(cfg, screen, cat, gen, store), nil
}

func newGame(cfg Config, screen *ui.Screen, cat *gamedata.Catalog, gen world.Generator, store persistence.Storage) *Game {
	return &Game{
		cfg:      cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen, cat, cfg.ColorMode, cfg.Seed),
		session:  NewSession(cfg, cat, gen, store),
	}
}

// Run executes the main loop until the player quits or ctx is cancelled.
// Input arrives on its own goroutine; ticks, input and drawing are all
// handled here so the session is only touched from this goroutine.
func (g *Game) Run(ctx context.Context) error {
	defer g.Close()

	w, h := g.viewport()
	if err := g.session.Start(ctx, w, h); err != nil {
		return err
	}

	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(g.cfg.TickInterval())
	defer ticker.Stop()

	g.draw()
	for g.session.State() != StateQuit {
		select {
		case <-ctx.Done():
			g.session.Quit()
		case ev := <-events:
			g.handleEvent(ctx, ev)
		case <-ticker.C:
			g.session.Tick()
		}
		g.draw()
	}
	return nil
}

// Session returns the game's session.
func (g *Game) Session() *Session { return g.session }

func (g *Game) viewport() (int, int) {
	w, h := g.screen.Size()
	if g.cfg.Width > 0 {
		w = g.cfg.Width
	}
	if g.cfg.Height > 0 {
		h = g.cfg.Height
	}
	return w, h
}

func (g *Game) draw() {
	pos, visible := g.session.ScreenPos()
	top, bottom := g.session.StatusLines()
	g.renderer.Render(ui.Frame{
		Map:        g.session.Map(),
		Player:     pos,
		ShowPlayer: visible,
		Tick:       g.session.TickCount(),
		Top:        top,
		Bottom:     bottom,
	})
}

// handleEvent processes a single input event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKey(ctx, ev.Key(), ev.Rune())
	case *tcell.EventResize:
		g.screen.Sync()
		if g.cfg.Width == 0 || g.cfg.Height == 0 {
			w, h := g.viewport()
			if err := g.session.Resize(ctx, w, h); err != nil {
				log.Printf("resize to %dx%d failed: %v", w, h, err)
			}
		}
	}
}

func (g *Game) handleKey(ctx context.Context, key tcell.Key, r rune) {
	act, dir := keyAction(key, r)
	switch act {
	case actionMove:
		if _, err := g.session.MovePlayer(ctx, dir); err != nil {
			log.Printf("move %s failed: %v", dir, err)
		}
	case actionDig:
		g.session.Dig()
	case actionPlant:
		g.session.Plant()
	case actionSave:
		name := g.session.SnapshotName()
		if err := g.session.Save(ctx, name); err != nil {
			log.Printf("save %s failed: %v", name, err)
		}
	case actionQuit:
		g.session.Quit()
	}
}

// keyAction maps a key press to an action.
func keyAction(key tcell.Key, r rune) (action, entity.Direction) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit, entity.Direction{}
	case tcell.KeyUp:
		return actionMove, entity.Up
	case tcell.KeyDown:
		return actionMove, entity.Down
	case tcell.KeyLeft:
		return actionMove, entity.Left
	case tcell.KeyRight:
		return actionMove, entity.Right
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return actionQuit, entity.Direction{}
		case 'x', 'X':
			return actionDig, entity.Direction{}
		case 'f', 'F':
			return actionPlant, entity.Direction{}
		case 's', 'S':
			return actionSave, entity.Direction{}
		}
	}
	return actionNone, entity.Direction{}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
