package game

import (
	"flag"
	"io"
	"testing"
	"time"

	"github.com/samdwyer/tileworld/internal/gamedata"
)

func envMap(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestConfigFromEnv(t *testing.T) {
	cfg, err := ConfigFromEnv(DefaultConfig(), envMap(map[string]string{
		"TILEWORLD_SEED":         "0.25",
		"TILEWORLD_WIDTH":        "80",
		"TILEWORLD_HEIGHT":       "24",
		"TILEWORLD_FPS":          "10",
		"TILEWORLD_COLOR":        "256",
		"TILEWORLD_MAP":          "meadow",
		"TILEWORLD_STORE":        "postgres",
		"TILEWORLD_DATABASE_URL": "postgres://localhost/tiles",
		"TILEWORLD_DEBUG":        "true",
	}))
	if err != nil {
		t.Fatalf("ConfigFromEnv() error: %v", err)
	}

	if cfg.Seed != 0.25 || cfg.Width != 80 || cfg.Height != 24 || cfg.FPS != 10 {
		t.Errorf("numeric fields = %v/%d/%d/%d", cfg.Seed, cfg.Width, cfg.Height, cfg.FPS)
	}
	if cfg.ColorMode != gamedata.ModePalette {
		t.Errorf("ColorMode = %v, want palette", cfg.ColorMode)
	}
	if cfg.ReplayMap != "meadow" || cfg.Store != "postgres" || cfg.DatabaseURL != "postgres://localhost/tiles" {
		t.Errorf("string fields = %q/%q/%q", cfg.ReplayMap, cfg.Store, cfg.DatabaseURL)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
	if cfg.SaveDir != "maps" || cfg.HUDTop != 1 || cfg.HUDBottom != 1 {
		t.Errorf("unset fields changed: %+v", cfg)
	}
}

func TestConfigFromEnvErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad seed", "TILEWORLD_SEED", "lots"},
		{"bad width", "TILEWORLD_WIDTH", "wide"},
		{"bad color", "TILEWORLD_COLOR", "sepia"},
		{"bad debug", "TILEWORLD_DEBUG", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := DefaultConfig()
			cfg, err := ConfigFromEnv(base, envMap(map[string]string{tt.key: tt.val}))
			if err == nil {
				t.Fatalf("ConfigFromEnv(%s=%s) should fail", tt.key, tt.val)
			}
			if cfg != base {
				t.Errorf("ConfigFromEnv() on error = %+v, want base unchanged", cfg)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"negative width", func(c *Config) { c.Width = -1 }, true},
		{"zero fps", func(c *Config) { c.FPS = 0 }, true},
		{"negative chrome", func(c *Config) { c.HUDBottom = -1 }, true},
		{"unknown store", func(c *Config) { c.Store = "s3" }, true},
		{"postgres", func(c *Config) { c.Store = "postgres" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigTiming(t *testing.T) {
	cfg := DefaultConfig()
	if got, want := cfg.TickInterval(), time.Second/30; got != want {
		t.Errorf("TickInterval() = %v, want %v", got, want)
	}

	w, h := cfg.MinSize()
	if w != 1 || h != 3 {
		t.Errorf("MinSize() = %dx%d, want 1x3", w, h)
	}
	cfg.Width, cfg.Height = 45, 40
	if w, h := cfg.MinSize(); w != 45 || h != 40 {
		t.Errorf("MinSize() = %dx%d, want 45x40", w, h)
	}
}

func TestConfigBind(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReplayMap = "from-env"

	fs := flag.NewFlagSet("tileworld", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-seed", "3.5", "-width", "45", "-color", "basic", "-debug"}); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if cfg.Seed != 3.5 || cfg.Width != 45 || cfg.ColorMode != gamedata.ModeBasic || !cfg.Debug {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.ReplayMap != "from-env" {
		t.Errorf("ReplayMap = %q, want value kept from before Bind", cfg.ReplayMap)
	}

	bad := DefaultConfig()
	fs = flag.NewFlagSet("tileworld", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	bad.Bind(fs)
	if err := fs.Parse([]string{"-color", "sepia"}); err == nil {
		t.Error("Parse(-color sepia) should fail")
	}
}

func TestConfigResolveSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ResolveSeed()
	if cfg.Seed <= 0 || cfg.Seed > 1 {
		t.Errorf("ResolveSeed() = %v, want (0, 1]", cfg.Seed)
	}

	cfg.Seed = 0.42
	cfg.ResolveSeed()
	if cfg.Seed != 0.42 {
		t.Errorf("ResolveSeed() changed a set seed to %v", cfg.Seed)
	}
}
