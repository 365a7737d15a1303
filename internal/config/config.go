// Package config handles renderer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	gomath "math"
	"time"
	"unicode/utf8"

	"github.com/Faultbox/wirespin/internal/render"
)

// Config holds all settings.
type Config struct {
	Render    RenderConfig    `yaml:"render"`
	Animation AnimationConfig `yaml:"animation"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// RenderConfig holds projection and glyph settings.
type RenderConfig struct {
	FOV         float64 `yaml:"fov"`
	ModelScale  float64 `yaml:"model_scale"`  // applied to every vertex at load
	DepthPolicy string  `yaml:"depth_policy"` // cull, clamp or fail
	GlyphLow    string  `yaml:"glyph_low"`
	GlyphHigh   string  `yaml:"glyph_high"`
	GlyphVertex string  `yaml:"glyph_vertex"`
	GlyphCenter string  `yaml:"glyph_center"`
}

// AnimationConfig holds loop pacing settings.
type AnimationConfig struct {
	Step         float64       `yaml:"step"`  // radians per frame
	Turns        float64       `yaml:"turns"` // full revolutions before stopping
	FaceBudget   time.Duration `yaml:"face_budget"`
	VertexBudget time.Duration `yaml:"vertex_budget"`
	Mode         string        `yaml:"mode"` // faces or vertices
	ShowStatus   bool          `yaml:"show_status"`
	Hold         bool          `yaml:"hold"` // wait for a key after the last frame
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Mode names.
const (
	ModeFaces    = "faces"
	ModeVertices = "vertices"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			FOV:         500,
			ModelScale:  20,
			DepthPolicy: "cull",
			GlyphLow:    "-",
			GlyphHigh:   "*",
			GlyphVertex: "@",
			GlyphCenter: "X",
		},
		Animation: AnimationConfig{
			Step:         0.0015,
			Turns:        5,
			FaceBudget:   500 * time.Microsecond,
			VertexBudget: 1000 * time.Microsecond,
			Mode:         ModeFaces,
			ShowStatus:   true,
			Hold:         true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Limit returns the rotation angle at which the animation stops.
func (a AnimationConfig) Limit() float64 {
	return a.Turns * 2 * gomath.Pi
}

// Budget returns the frame budget for the configured mode.
func (a AnimationConfig) Budget() time.Duration {
	if a.Mode == ModeVertices {
		return a.VertexBudget
	}
	return a.FaceBudget
}

// Glyphs converts the glyph strings into a render.Glyphs set.
func (r RenderConfig) Glyphs() render.Glyphs {
	return render.Glyphs{
		Low:    firstRune(r.GlyphLow),
		High:   firstRune(r.GlyphHigh),
		Vertex: firstRune(r.GlyphVertex),
		Center: firstRune(r.GlyphCenter),
	}
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// Validate reports every setting the renderer cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if !(c.Render.FOV > 0) {
		errs = append(errs, fmt.Errorf("render.fov must be positive, got %v", c.Render.FOV))
	}
	if !(c.Render.ModelScale > 0) {
		errs = append(errs, fmt.Errorf("render.model_scale must be positive, got %v", c.Render.ModelScale))
	}
	if _, err := render.ParseDepthPolicy(c.Render.DepthPolicy); err != nil {
		errs = append(errs, fmt.Errorf("render.depth_policy: %w", err))
	}
	glyphs := []struct{ name, value string }{
		{"glyph_low", c.Render.GlyphLow},
		{"glyph_high", c.Render.GlyphHigh},
		{"glyph_vertex", c.Render.GlyphVertex},
		{"glyph_center", c.Render.GlyphCenter},
	}
	for _, g := range glyphs {
		if utf8.RuneCountInString(g.value) != 1 {
			errs = append(errs, fmt.Errorf("render.%s must be a single character, got %q", g.name, g.value))
		}
	}

	if !(c.Animation.Step > 0) {
		errs = append(errs, fmt.Errorf("animation.step must be positive, got %v", c.Animation.Step))
	}
	if !(c.Animation.Turns > 0) {
		errs = append(errs, fmt.Errorf("animation.turns must be positive, got %v", c.Animation.Turns))
	}
	if c.Animation.FaceBudget < 0 || c.Animation.VertexBudget < 0 {
		errs = append(errs, errors.New("animation budgets must not be negative"))
	}
	if c.Animation.Mode != ModeFaces && c.Animation.Mode != ModeVertices {
		errs = append(errs, fmt.Errorf("animation.mode must be %q or %q, got %q", ModeFaces, ModeVertices, c.Animation.Mode))
	}

	return errors.Join(errs...)
}
