// Package config provides configuration loading and access for the field animator.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all animator configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Viewport  ViewportConfig  `yaml:"viewport"`
	Meteor    MeteorConfig    `yaml:"meteor"`
	Stars     StarsConfig     `yaml:"stars"`
	Streak    StreakConfig    `yaml:"streak"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window settings for graphical hosts.
type ScreenConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	RefreshFPS int    `yaml:"refresh_fps"` // Display refresh cap; the scheduler throttles below this
	Title      string `yaml:"title"`
}

// ViewportConfig holds viewport tracking parameters.
type ViewportConfig struct {
	SettleMs int `yaml:"settle_ms"` // Delay before a resize/rotation is applied
}

// TierConfig is the particle and speed budget of one device tier.
type TierConfig struct {
	Particles        int     `yaml:"particles"`
	WidthPerParticle float64 `yaml:"width_per_particle,omitempty"` // Full tier only: count >= width / this
	Stars            int     `yaml:"stars,omitempty"`
	SpeedFloor       float64 `yaml:"speed_floor"`
	SpeedCeiling     float64 `yaml:"speed_ceiling"`
	SpeedRamp        float64 `yaml:"speed_ramp"` // Global speed increase per step
	TargetFPS        int     `yaml:"target_fps"`
}

// TierTable maps each device tier to its budget.
type TierTable struct {
	CompactPortrait  TierConfig `yaml:"compact_portrait"`
	CompactLandscape TierConfig `yaml:"compact_landscape"`
	Full             TierConfig `yaml:"full"`
}

// MeteorConfig holds the meteor variant parameters.
type MeteorConfig struct {
	Margin          float64   `yaml:"margin"`  // Distance past the right/bottom edge before reset
	SpawnY          float64   `yaml:"spawn_y"` // Respawn height, just above the top edge
	SizeMin         float64   `yaml:"size_min"`
	SizeMax         float64   `yaml:"size_max"`
	SpeedMin        float64   `yaml:"speed_min"`
	SpeedMax        float64   `yaml:"speed_max"`
	TrailMin        int       `yaml:"trail_min"`
	TrailMax        int       `yaml:"trail_max"`
	AngleDivisorMin float64   `yaml:"angle_divisor_min"` // Heading = pi / divisor
	AngleDivisorMax float64   `yaml:"angle_divisor_max"`
	Tiers           TierTable `yaml:"tiers"`
}

// StarsConfig holds the twinkling background star parameters.
type StarsConfig struct {
	SizeMin     int     `yaml:"size_min"`
	SizeMax     int     `yaml:"size_max"`
	TwinkleRate float64 `yaml:"twinkle_rate"` // Noise time scale per second
	NoiseScale  float64 `yaml:"noise_scale"`  // Noise spatial scale per pixel
}

// StreakShape holds per-particle streak parameters for one device class.
type StreakShape struct {
	Size         float64 `yaml:"size"`
	SizeGrowth   float64 `yaml:"size_growth"`
	Length       float64 `yaml:"length"`
	MaxLength    float64 `yaml:"max_length"`
	LengthRamp   float64 `yaml:"length_ramp"`
	BaseSpeedMin float64 `yaml:"base_speed_min"`
	BaseSpeedMax float64 `yaml:"base_speed_max"`
}

// StreakConfig holds the warp streak variant parameters.
type StreakConfig struct {
	BoundsMultiplier float64     `yaml:"bounds_multiplier"` // Reset radius = max(cx, cy) * this
	FadeMultiplier   float64     `yaml:"fade_multiplier"`
	FadeRatio        float64     `yaml:"fade_ratio"` // Full opacity at max(cx, cy) * multiplier * ratio
	CompactShape     StreakShape `yaml:"compact_shape"`
	FullShape        StreakShape `yaml:"full_shape"`
	Tiers            TierTable   `yaml:"tiers"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowFrames int `yaml:"window_frames"` // Executed steps per stats window
	PerfWindow   int `yaml:"perf_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Settle time.Duration // Viewport.SettleMs as a duration
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived clamps malformed values and calculates derived ones.
// A decorative background must keep running, so nothing here fails.
func (c *Config) computeDerived() {
	if c.Screen.RefreshFPS <= 0 {
		c.Screen.RefreshFPS = 60
	}
	if c.Viewport.SettleMs < 0 {
		c.Viewport.SettleMs = 0
	}
	c.Derived.Settle = time.Duration(c.Viewport.SettleMs) * time.Millisecond

	m := &c.Meteor
	if m.SizeMax < m.SizeMin {
		m.SizeMax = m.SizeMin
	}
	if m.SpeedMax < m.SpeedMin {
		m.SpeedMax = m.SpeedMin
	}
	if m.TrailMin < 1 {
		m.TrailMin = 1
	}
	if m.TrailMax < m.TrailMin {
		m.TrailMax = m.TrailMin
	}
	if m.AngleDivisorMin <= 0 {
		m.AngleDivisorMin = 3
	}
	if m.AngleDivisorMax < m.AngleDivisorMin {
		m.AngleDivisorMax = m.AngleDivisorMin
	}
	if m.Margin < 0 {
		m.Margin = 0
	}

	s := &c.Stars
	if s.SizeMin < 1 {
		s.SizeMin = 1
	}
	if s.SizeMax < s.SizeMin {
		s.SizeMax = s.SizeMin
	}

	st := &c.Streak
	if st.BoundsMultiplier < 1 {
		st.BoundsMultiplier = 1
	} else if st.BoundsMultiplier > 4 {
		st.BoundsMultiplier = 4
	}
	if st.FadeMultiplier <= 0 {
		st.FadeMultiplier = 1
	}
	if st.FadeRatio <= 0 {
		st.FadeRatio = 1
	}
	clampShape(&st.CompactShape)
	clampShape(&st.FullShape)

	clampTable(&m.Tiers)
	clampTable(&st.Tiers)

	if c.Telemetry.WindowFrames < 1 {
		c.Telemetry.WindowFrames = 120
	}
	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 60
	}
}

func clampShape(s *StreakShape) {
	if s.MaxLength < s.Length {
		s.MaxLength = s.Length
	}
	if s.BaseSpeedMax < s.BaseSpeedMin {
		s.BaseSpeedMax = s.BaseSpeedMin
	}
}

// clampTable enforces non-negative budgets and keeps compact tiers within the
// full tier's particle and star counts.
func clampTable(t *TierTable) {
	for _, tier := range []*TierConfig{&t.CompactPortrait, &t.CompactLandscape, &t.Full} {
		if tier.Particles < 0 {
			tier.Particles = 0
		}
		if tier.Stars < 0 {
			tier.Stars = 0
		}
		if tier.WidthPerParticle < 0 {
			tier.WidthPerParticle = 0
		}
		if tier.TargetFPS <= 0 {
			tier.TargetFPS = 60
		}
		if tier.SpeedCeiling < tier.SpeedFloor {
			tier.SpeedCeiling = tier.SpeedFloor
		}
		if tier.SpeedRamp < 0 {
			tier.SpeedRamp = 0
		}
	}
	for _, tier := range []*TierConfig{&t.CompactPortrait, &t.CompactLandscape} {
		if tier.Particles > t.Full.Particles {
			tier.Particles = t.Full.Particles
		}
		if tier.Stars > t.Full.Stars {
			tier.Stars = t.Full.Stars
		}
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
