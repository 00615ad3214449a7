package game

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/samdwyer/tileworld/internal/gamedata"
	"github.com/samdwyer/tileworld/internal/rng"
)

// LogFile receives log output while the screen owns the terminal.
const LogFile = "tileworld.log"

// Config holds every setting the game reads. It is built once at startup and
// passed down; nothing reads the environment after that.
type Config struct {
	// Seed for world generation. A seed of 0 means a random seed is drawn.
	Seed float64

	// Viewport size in cells. Zero follows the terminal size.
	Width  int
	Height int

	// Animation ticks per second.
	FPS int

	ColorMode gamedata.ColorMode

	// ReplayMap names a stored snapshot to explore instead of the
	// procedural world.
	ReplayMap string

	Store       string // "file" or "postgres"
	SaveDir     string
	DatabaseURL string

	// Chrome rows reserved for the status lines.
	HUDTop    int
	HUDBottom int

	Debug bool
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		FPS:       30,
		ColorMode: gamedata.ModeTrueColor,
		Store:     "file",
		SaveDir:   "maps",
		HUDTop:    1,
		HUDBottom: 1,
	}
}

// ConfigFromEnv overlays TILEWORLD_* variables read through getenv on base.
func ConfigFromEnv(base Config, getenv func(string) string) (Config, error) {
	cfg := base
	var errs []error

	parseInt := func(key string, dst *int) {
		if v := getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}

	if v := getenv("TILEWORLD_SEED"); v != "" {
		seed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("TILEWORLD_SEED: %w", err))
		} else {
			cfg.Seed = seed
		}
	}
	parseInt("TILEWORLD_WIDTH", &cfg.Width)
	parseInt("TILEWORLD_HEIGHT", &cfg.Height)
	parseInt("TILEWORLD_FPS", &cfg.FPS)
	parseInt("TILEWORLD_HUD_TOP", &cfg.HUDTop)
	parseInt("TILEWORLD_HUD_BOTTOM", &cfg.HUDBottom)

	if v := getenv("TILEWORLD_COLOR"); v != "" {
		mode, err := gamedata.ParseColorMode(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("TILEWORLD_COLOR: %w", err))
		} else {
			cfg.ColorMode = mode
		}
	}
	if v := getenv("TILEWORLD_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("TILEWORLD_DEBUG: %w", err))
		} else {
			cfg.Debug = debug
		}
	}

	if v := getenv("TILEWORLD_MAP"); v != "" {
		cfg.ReplayMap = v
	}
	if v := getenv("TILEWORLD_STORE"); v != "" {
		cfg.Store = v
	}
	if v := getenv("TILEWORLD_SAVE_DIR"); v != "" {
		cfg.SaveDir = v
	}
	if v := getenv("TILEWORLD_DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}

	if err := errors.Join(errs...); err != nil {
		return base, err
	}
	return cfg, nil
}

// Bind attaches the configuration to the provided FlagSet. Flag defaults
// are the values already in c, so flags override the environment.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.Float64Var(&c.Seed, "seed", c.Seed, "world seed (0 picks one at random)")
	fs.IntVar(&c.Width, "width", c.Width, "viewport width in cells (0 follows the terminal)")
	fs.IntVar(&c.Height, "height", c.Height, "viewport height in cells (0 follows the terminal)")
	fs.IntVar(&c.FPS, "fps", c.FPS, "animation ticks per second")
	fs.StringVar(&c.ReplayMap, "map", c.ReplayMap, "replay a stored snapshot instead of generating")
	fs.StringVar(&c.Store, "store", c.Store, "snapshot store: file or postgres")
	fs.StringVar(&c.SaveDir, "dir", c.SaveDir, "snapshot directory for the file store")
	fs.StringVar(&c.DatabaseURL, "db", c.DatabaseURL, "PostgreSQL connection string")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "write a debug log to "+LogFile)
	fs.Func("color", "color mode: basic, palette or truecolor (default "+c.ColorMode.String()+")", func(v string) error {
		mode, err := gamedata.ParseColorMode(v)
		if err != nil {
			return err
		}
		c.ColorMode = mode
		return nil
	})
}

// ResolveSeed draws a random seed when none is configured.
func (c *Config) ResolveSeed() {
	if c.Seed == 0 {
		c.Seed = float64(rng.Basic(1, 1<<30)) / (1 << 30)
	}
}

// Validate reports settings the game cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Width < 0 || c.Height < 0:
		return fmt.Errorf("viewport size %dx%d must not be negative", c.Width, c.Height)
	case c.FPS <= 0:
		return fmt.Errorf("fps %d must be positive", c.FPS)
	case c.HUDTop < 0 || c.HUDBottom < 0:
		return fmt.Errorf("chrome rows %d/%d must not be negative", c.HUDTop, c.HUDBottom)
	case c.Store != "file" && c.Store != "postgres":
		return fmt.Errorf("unknown store %q", c.Store)
	}
	return nil
}

// TickInterval returns the time between animation ticks.
func (c Config) TickInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(c.FPS)
}

// MinSize returns the smallest terminal that fits the configured viewport
// plus at least one map row between the chrome rows.
func (c Config) MinSize() (width, height int) {
	width, height = c.Width, c.Height
	if width == 0 {
		width = 1
	}
	if need := c.HUDTop + c.HUDBottom + 1; height < need {
		height = need
	}
	return width, height
}
