// Package config loads raycamview settings and replay files from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/raycam"
	"github.com/gogpu/raycam/internal/protocol"
	"github.com/gogpu/raycam/render"
	"github.com/gogpu/raycam/scene"
	"github.com/gogpu/raycam/silhouette"
)

// Config holds raycamview settings. Fields missing from a file keep the
// values from Default.
type Config struct {
	// URL is the websocket endpoint of the camera server.
	URL         string `yaml:"url"`
	Camera      string `yaml:"camera"`
	Compression string `yaml:"compression"`
	// ValidateSchema checks every server message against the JSON schemas.
	ValidateSchema bool `yaml:"validate_schema"`

	// Out is a PNG path template; "%d" is replaced by the frame number.
	Out     string `yaml:"out"`
	Every   int    `yaml:"every"`
	Preview int    `yaml:"preview"`

	LogLevel string `yaml:"log_level"`

	Render Render `yaml:"render"`
}

// Render configures the renderer built for every subscription.
type Render struct {
	Scale          int     `yaml:"scale"`
	MaxEntities    int     `yaml:"max_entities"`
	RenderDistance float32 `yaml:"render_distance"`
	Seed           uint64  `yaml:"seed"`
	BatchSize      int     `yaml:"batch_size"`
	Colors         Colors  `yaml:"colors"`
}

// Colors are hex strings; empty keeps the renderer default.
type Colors struct {
	Human     string `yaml:"human"`
	Scientist string `yaml:"scientist"`
	Tree      string `yaml:"tree"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		URL:      "ws://127.0.0.1:8080/camera",
		Out:      "frame-%d.png",
		Every:    1,
		LogLevel: "info",
		Render: Render{
			Scale:          raycam.DefaultScale,
			MaxEntities:    scene.DefaultMaxEntities,
			RenderDistance: scene.DefaultRenderDistance,
			Seed:           1,
		},
	}
}

// Load reads path over Default. A missing path returns the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate reports every out-of-range setting, joined into one error.
func (c Config) Validate() error {
	var errs []error
	if c.Every < 1 {
		errs = append(errs, fmt.Errorf("every must be >= 1, got %d", c.Every))
	}
	if c.Preview < 0 {
		errs = append(errs, fmt.Errorf("preview must be >= 0, got %d", c.Preview))
	}
	if c.Render.Scale < 0 {
		errs = append(errs, fmt.Errorf("render.scale must be >= 0, got %d", c.Render.Scale))
	}
	switch c.Compression {
	case "", protocol.CompressionZstd:
	default:
		errs = append(errs, fmt.Errorf("unknown compression %q", c.Compression))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// RenderOptions converts the render section to renderer options.
func (c Config) RenderOptions() []render.Option {
	r := c.Render
	opts := []render.Option{
		render.WithScale(r.Scale),
		render.WithMaxEntities(r.MaxEntities),
		render.WithRenderDistance(r.RenderDistance),
		render.WithSeed(r.Seed),
	}
	if r.BatchSize > 0 {
		opts = append(opts, render.WithBatchSize(r.BatchSize))
	}
	if r.Colors != (Colors{}) {
		human, scientist, tree := silhouette.DefaultHumanColor, silhouette.DefaultScientistColor, silhouette.DefaultTreeBase
		if r.Colors.Human != "" {
			human = raycam.Hex(r.Colors.Human)
		}
		if r.Colors.Scientist != "" {
			scientist = raycam.Hex(r.Colors.Scientist)
		}
		if r.Colors.Tree != "" {
			tree = raycam.Hex(r.Colors.Tree)
		}
		opts = append(opts, render.WithSilhouetteColors(human, scientist, tree))
	}
	return opts
}
