package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/samdwyer/tileworld/internal/gamedata"
	"github.com/samdwyer/tileworld/internal/noise"
	"github.com/samdwyer/tileworld/internal/world"
)

// Salt separating the animation phase surface from terrain noise.
const frameSalt = 7

// How far floor symbols are lifted above their own background colour.
const floorSymbolHighlight = 0.35

// Frame is everything the renderer reads for one redraw.
type Frame struct {
	Map        *world.Map
	Player     world.Coord // Viewport position of the player
	ShowPlayer bool
	Tick       uint64
	Top        []string // Chrome rows at the top of the screen
	Bottom     []string // Chrome rows at the bottom of the screen
}

// Renderer draws dirty map cells and the chrome rows.
type Renderer struct {
	screen  *Screen
	catalog *gamedata.Catalog
	mode    gamedata.ColorMode
	frames  *noise.Field
	hud     tcell.Style
}

// NewRenderer creates a renderer for the given screen. The seed keys the
// animation phase so runs with the same seed animate identically.
func NewRenderer(screen *Screen, cat *gamedata.Catalog, mode gamedata.ColorMode, seed float64) *Renderer {
	return &Renderer{
		screen:  screen,
		catalog: cat,
		mode:    mode,
		frames:  noise.NewField(seed, frameSalt),
		hud:     tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite),
	}
}

// Render drains the map's dirty set, redraws those cells, rewrites the chrome
// rows and flushes. It returns the number of map cells drawn.
func (r *Renderer) Render(f Frame) int {
	m := f.Map
	top, bottom := len(f.Top), len(f.Bottom)

	drawn := 0
	for c := range m.DrainDirty() {
		if c.Y < top || c.Y >= m.Height-bottom {
			continue
		}
		t, ok := m.Tile(c.X, c.Y)
		if !ok {
			continue
		}
		absX, absY := m.Absolute(c.X, c.Y)
		player := f.ShowPlayer && c == f.Player
		sym, style := r.cell(t, absX, absY, f.Tick, player)
		r.screen.SetContent(c.X, c.Y, sym, style)
		drawn++
	}

	for i, line := range f.Top {
		r.drawText(i, m.Width, line)
	}
	for i, line := range f.Bottom {
		r.drawText(m.Height-bottom+i, m.Width, line)
	}

	r.screen.Show()
	return drawn
}

// cell picks the symbol and style for one tile: the floor sets the
// background, and the player, block or floor symbol is drawn on top.
func (r *Renderer) cell(t world.Tile, absX, absY int, tick uint64, player bool) (string, tcell.Style) {
	floor := t.Floor
	if floor == nil {
		floor = r.catalog.Void()
	}
	style := tcell.StyleDefault.Background(floor.Colors.Color(r.mode))

	switch {
	case player:
		p := r.catalog.Player()
		return r.symbol(p, absX, absY, tick), style.Foreground(p.Colors.Color(r.mode)).Bold(true)
	case t.Block != nil:
		return r.symbol(t.Block, absX, absY, tick), style.Foreground(t.Block.Colors.Color(r.mode))
	default:
		fg := tcell.ColorWhite
		if r.mode == gamedata.ModeTrueColor {
			fg = floor.Colors.Highlight(floorSymbolHighlight)
		}
		return r.symbol(floor, absX, absY, tick), style.Foreground(fg)
	}
}

func (r *Renderer) symbol(e *gamedata.Entity, absX, absY int, tick uint64) string {
	if !e.Animated() {
		return e.Symbol(0)
	}
	return e.Symbol(r.frames.Frame(absX, absY, tick, len(e.Symbols)))
}

// drawText writes one chrome row, padding it with blanks to width.
func (r *Renderer) drawText(y, width int, text string) {
	x := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := g.Width()
		if w == 0 {
			continue
		}
		if x+w > width {
			break
		}
		r.screen.SetContent(x, y, g.Str(), r.hud)
		x += w
	}
	for ; x < width; x++ {
		r.screen.SetContent(x, y, " ", r.hud)
	}
}
