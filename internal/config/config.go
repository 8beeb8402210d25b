package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/contrastviz/internal/schedule"
)

const (
	DefaultSteps    = 100
	DefaultOutput   = "contrastive_viz"
	DefaultEasing   = "linear"
	DefaultEasing3D = "cubic"
	DefaultSeed     = 42
	DefaultFPS      = 20
	DefaultGIFFPS   = 10
	DefaultWidth    = 1600
	DefaultHeight   = 900
	DefaultGIFScale = 0.5
	DefaultFFmpeg   = "ffmpeg"
)

// Modes selects which artifacts a run produces.
var Modes = []string{"static", "3d", "html", "all"}

type Config struct {
	Mode   string    `yaml:"mode" env:"MODE"`
	Steps  int       `yaml:"steps" env:"STEPS"`
	Output string    `yaml:"output" env:"OUTPUT"`
	Easing string    `yaml:"easing" env:"EASING"`
	Ease3D string    `yaml:"easing_3d" env:"EASING_3D"`
	Seed   int64     `yaml:"seed" env:"SEED"`
	Render RenderCfg `yaml:"render" envPrefix:"RENDER_"`
	Anim   AnimCfg   `yaml:"animation" envPrefix:"ANIM_"`
}

type RenderCfg struct {
	Width  int  `yaml:"width" env:"WIDTH"`
	Height int  `yaml:"height" env:"HEIGHT"`
	SVG    bool `yaml:"svg" env:"SVG"`
}

type AnimCfg struct {
	GIFFPS   int     `yaml:"gif_fps" env:"GIF_FPS"`
	GIFScale float64 `yaml:"gif_scale" env:"GIF_SCALE"`
	MP4      bool    `yaml:"mp4" env:"MP4"`
	MP4FPS   int     `yaml:"mp4_fps" env:"MP4_FPS"`
	FFmpeg   string  `yaml:"ffmpeg" env:"FFMPEG"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode:   "all",
		Steps:  DefaultSteps,
		Output: DefaultOutput,
		Easing: DefaultEasing,
		Ease3D: DefaultEasing3D,
		Seed:   DefaultSeed,
		Render: RenderCfg{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Anim: AnimCfg{
			GIFFPS:   DefaultGIFFPS,
			GIFScale: DefaultGIFScale,
			MP4:      true,
			MP4FPS:   DefaultFPS,
			FFmpeg:   DefaultFFmpeg,
		},
	}
}

// Load reads a YAML file on top of cfg. A nil cfg starts from the defaults.
func Load(path string, cfg *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "CONTRASTVIZ_"

// ApplyEnv overrides fields from CONTRASTVIZ_* variables that are set.
func (c *Config) ApplyEnv() error {
	return env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix})
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate rejects values no run could use.
func (c *Config) Validate() error {
	if !slices.Contains(Modes, c.Mode) {
		return fmt.Errorf("unknown mode: %s (available: %v)", c.Mode, Modes)
	}
	if c.Steps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", c.Steps)
	}
	if c.Output == "" {
		return fmt.Errorf("output prefix is required")
	}
	for _, name := range []string{c.Easing, c.Ease3D} {
		if _, err := schedule.Lookup(name); err != nil {
			return err
		}
	}
	if c.Render.Width < 320 || c.Render.Height < 240 {
		return fmt.Errorf("image size %dx%d is below 320x240", c.Render.Width, c.Render.Height)
	}
	if c.Anim.GIFFPS < 1 || c.Anim.MP4FPS < 1 {
		return fmt.Errorf("frame rates must be positive")
	}
	if c.Anim.GIFScale <= 0 || c.Anim.GIFScale > 1 {
		return fmt.Errorf("gif scale must be in (0, 1], got %g", c.Anim.GIFScale)
	}
	return nil
}

// Wants reports whether the configured mode includes part, one of
// "static", "3d" or "html".
func (c *Config) Wants(part string) bool {
	return c.Mode == "all" || c.Mode == part
}

// Dir returns the output directory for part: <output>_static, <output>_3d
// or <output>_html.
func (c *Config) Dir(part string) string {
	return c.Output + "_" + part
}
