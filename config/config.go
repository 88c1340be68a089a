// Package config provides configuration loading and access for the animator.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all animator configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Animation AnimationConfig `yaml:"animation"`
	Noise     NoiseConfig     `yaml:"noise"`
	Parallel  ParallelConfig  `yaml:"parallel"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Export    ExportConfig    `yaml:"export"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds the parameters handed to the grid builder.
type GridConfig struct {
	Spacing      float64 `yaml:"spacing"`        // Pixel distance between cell anchors
	Shape        string  `yaml:"shape"`          // Default glyph shape for every cell
	NumFlocks    int     `yaml:"num_flocks"`     // Flock ids are drawn from [0, NumFlocks)
	LayerDelayMS float64 `yaml:"layer_delay_ms"` // Expanding-wave activation delay per ring
	InitialAngle string  `yaml:"initial_angle"`  // "zero" or "random"
	Seed         int64   `yaml:"seed"`           // Builder RNG seed (flock ids, random angles)
}

// AnimationConfig is the live parameter bundle read by the field functions.
// Parameters of inactive types are kept so switching back restores them.
type AnimationConfig struct {
	Type            string  `yaml:"type"`
	Speed           float64 `yaml:"speed"`            // Global time multiplier
	Easing          float64 `yaml:"easing"`           // Fraction of the angular gap closed per frame, (0,1]
	EasingMode      string  `yaml:"easing_mode"`      // "linear" or "spring"
	SpringFrequency float64 `yaml:"spring_frequency"` // Angular frequency for spring easing
	SpringDamping   float64 `yaml:"spring_damping"`   // Damping ratio for spring easing

	SeaWaves      SeaWavesConfig      `yaml:"sea_waves"`
	Pinwheels     PinwheelsConfig     `yaml:"pinwheels"`
	Pulse         PulseConfig         `yaml:"pulse"`
	Ripple        RippleConfig        `yaml:"ripple"`
	ExpandingWave ExpandingWaveConfig `yaml:"expanding_wave"`
	Vortex        VortexConfig        `yaml:"vortex"`
	Jitter        JitterConfig        `yaml:"jitter"`
	FollowPath    FollowPathConfig    `yaml:"follow_path"`
	Ocean         OceanConfig         `yaml:"ocean"`
	Cellular      CellularConfig      `yaml:"cellular"`
	Flocking      FlockingConfig      `yaml:"flocking"`
	Lissajous     LissajousConfig     `yaml:"lissajous"`
	Perlin        PerlinConfig        `yaml:"perlin"`
	Geometric     GeometricConfig     `yaml:"geometric"`
	Waterfall     WaterfallConfig     `yaml:"waterfall"`
	Mouse         MouseConfig         `yaml:"mouse"`
	DynamicWidth  DynamicWidthConfig  `yaml:"dynamic_width"`
}

// SeaWavesConfig holds the two-sinusoid sea wave parameters.
type SeaWavesConfig struct {
	Amplitude float64 `yaml:"amplitude"` // Degrees
	Frequency float64 `yaml:"frequency"` // Cycles across the canvas
}

// PinwheelsConfig holds the drifting pinwheel vortex parameters.
type PinwheelsConfig struct {
	Count         int     `yaml:"count"`
	DriftSpeed    float64 `yaml:"drift_speed"`    // Center speed in px/s
	RotationSpeed float64 `yaml:"rotation_speed"` // Degrees per second
	Radius        float64 `yaml:"radius"`         // Influence radius as a fraction of canvas width
}

// PulseConfig holds center pulse timing.
type PulseConfig struct {
	IntervalMS      float64 `yaml:"interval_ms"`
	DurationMS      float64 `yaml:"duration_ms"`
	Propagation     float64 `yaml:"propagation"`      // Fraction of the duration spent crossing the canvas
	SwirlSpeed      float64 `yaml:"swirl_speed"`      // Idle swirl drift in degrees per second
	WobbleAmplitude float64 `yaml:"wobble_amplitude"` // Degrees
	WobbleFrequency float64 `yaml:"wobble_frequency"` // Hz
	WobbleDecay     float64 `yaml:"wobble_decay"`     // 1/s
	GraceMS         float64 `yaml:"grace_ms"`         // Wobble window after the pulse
}

// RippleConfig holds ripple parameters.
type RippleConfig struct {
	Speed         float64 `yaml:"speed"`
	Scale         float64 `yaml:"scale"`     // Radians per pixel of distance
	MaxAngle      float64 `yaml:"max_angle"` // Degrees
	FollowPointer bool    `yaml:"follow_pointer"`
}

// ExpandingWaveConfig holds the layered wipe parameters.
type ExpandingWaveConfig struct {
	DegreesPerSecond float64 `yaml:"degrees_per_second"`
	HoldAngle        float64 `yaml:"hold_angle"` // Angle held before a cell activates
}

// VortexConfig holds the vortex blend parameters.
type VortexConfig struct {
	InwardFactor float64 `yaml:"inward_factor"` // 0 = pure tangent, 1 = pure inward pull
	Drift        float64 `yaml:"drift"`         // Degrees per second
}

// JitterConfig holds the jitter noise amplitude.
type JitterConfig struct {
	Intensity float64 `yaml:"intensity"` // Degrees
}

// FollowPathConfig holds the sinusoidal path parameters.
type FollowPathConfig struct {
	Amplitude float64 `yaml:"amplitude"` // Fraction of canvas height
	Frequency float64 `yaml:"frequency"` // Cycles across the canvas
	Threshold float64 `yaml:"threshold"` // Max vertical distance in px
}

// OceanConfig holds the ocean current eddies.
type OceanConfig struct {
	BaselineScale float64      `yaml:"baseline_scale"` // Time scale of the wave baseline
	Eddies        []EddyConfig `yaml:"eddies"`
}

// EddyConfig describes one eddy in canvas-relative units.
type EddyConfig struct {
	X         float64 `yaml:"x"`      // Fraction of width
	Y         float64 `yaml:"y"`      // Fraction of height
	Radius    float64 `yaml:"radius"` // Fraction of width
	Strength  float64 `yaml:"strength"`
	Clockwise bool    `yaml:"clockwise"`
	DriftX    float64 `yaml:"drift_x"` // px/s
	DriftY    float64 `yaml:"drift_y"` // px/s
}

// CellularConfig holds the cellular automaton blend.
type CellularConfig struct {
	Blend float64 `yaml:"blend"` // Weight of the neighbor consensus
}

// FlockingConfig holds boids weights.
type FlockingConfig struct {
	NeighborhoodRadius float64 `yaml:"neighborhood_radius"` // px
	SeparationRadius   float64 `yaml:"separation_radius"`   // px
	Alignment          float64 `yaml:"alignment"`
	Cohesion           float64 `yaml:"cohesion"`
	Separation         float64 `yaml:"separation"`
	MouseAttraction    bool    `yaml:"mouse_attraction"`
	MouseStrength      float64 `yaml:"mouse_strength"`
}

// LissajousConfig holds the moving target curve.
type LissajousConfig struct {
	A     float64 `yaml:"a"`
	B     float64 `yaml:"b"`
	Delta float64 `yaml:"delta"` // Radians
	Size  float64 `yaml:"size"`  // Fraction of min(width, height)
	Speed float64 `yaml:"speed"`
}

// PerlinConfig holds noise flow sampling parameters.
type PerlinConfig struct {
	Scale float64 `yaml:"scale"`
	Speed float64 `yaml:"speed"`
}

// GeometricConfig is shared by the two tangential rotation variants.
type GeometricConfig struct {
	RotationSpeed float64 `yaml:"rotation_speed"` // Degrees per second
}

// WaterfallConfig holds waterfall turbulence and gravity.
type WaterfallConfig struct {
	Turbulence    float64 `yaml:"turbulence"`     // Degrees
	OffsetScale   float64 `yaml:"offset_scale"`   // Vertical phase offset
	GravityPeriod float64 `yaml:"gravity_period"` // Seconds
	Stretch       float64 `yaml:"stretch"`        // Max extra length near vertical
}

// MouseConfig holds the pointer interaction radius.
type MouseConfig struct {
	RadiusPct float64 `yaml:"radius_pct"` // Fraction of canvas width
}

// DynamicWidthConfig holds angular-velocity width modulation.
type DynamicWidthConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Intensity float64 `yaml:"intensity"`
	MinEffect float64 `yaml:"min_effect"`
}

// NoiseConfig selects the gradient noise implementation.
type NoiseConfig struct {
	Kind string `yaml:"kind"` // "perlin" or "simplex"
	Seed int64  `yaml:"seed"`
}

// ParallelConfig controls the target pass fan-out.
type ParallelConfig struct {
	Threshold int `yaml:"threshold"` // Minimum cell count before splitting into chunks
	Workers   int `yaml:"workers"`   // 0 = GOMAXPROCS
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// ExportConfig holds SVG export styling.
type ExportConfig struct {
	GlyphLength float64 `yaml:"glyph_length"` // Fraction of grid spacing
	StrokeWidth float64 `yaml:"stroke_width"`
	Colorize    bool    `yaml:"colorize"`
	Background  string  `yaml:"background"`
	Foreground  string  `yaml:"foreground"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FrameDT float64 // Seconds per frame at the target FPS
	CanvasW float64 // Screen.Width as float64
	CanvasH float64 // Screen.Height as float64
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

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	if path == "" {
		return LoadBytes(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes overlays YAML data onto the embedded defaults.
func LoadBytes(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if len(data) > 0 {
		// Unmarshal into same struct - only overwrites fields present in data
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects values the animator cannot run with.
func (c *Config) Validate() error {
	if err := c.Animation.Validate(); err != nil {
		return fmt.Errorf("animation.%w", err)
	}
	switch c.Noise.Kind {
	case "", "perlin", "simplex":
	default:
		return fmt.Errorf("noise.kind: unknown kind %q", c.Noise.Kind)
	}
	if c.Grid.Spacing <= 0 || math.IsNaN(c.Grid.Spacing) {
		return fmt.Errorf("grid.spacing must be positive, got %v", c.Grid.Spacing)
	}
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	return nil
}

// Validate rejects animation parameters the integrator cannot ease with.
// Imported settings go through the same check as loaded config files.
func (a *AnimationConfig) Validate() error {
	if !(a.Easing > 0 && a.Easing <= 1) {
		return fmt.Errorf("easing must be in (0,1], got %v", a.Easing)
	}
	switch a.EasingMode {
	case "", "linear", "spring":
	default:
		return fmt.Errorf("easing_mode: unknown mode %q", a.EasingMode)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"speed", a.Speed},
		{"spring_frequency", a.SpringFrequency},
		{"spring_damping", a.SpringDamping},
		{"dynamic_width.intensity", a.DynamicWidth.Intensity},
		{"dynamic_width.min_effect", a.DynamicWidth.MinEffect},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s must be finite, got %v", f.name, f.v)
		}
	}
	if a.SpringFrequency < 0 || a.SpringDamping < 0 {
		return fmt.Errorf("spring parameters must be non-negative, got frequency %v damping %v",
			a.SpringFrequency, a.SpringDamping)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.FrameDT = 1.0 / float64(fps)
	c.Derived.CanvasW = float64(c.Screen.Width)
	c.Derived.CanvasH = float64(c.Screen.Height)

	if c.Grid.NumFlocks < 1 {
		c.Grid.NumFlocks = 1
	}
}

// Clone returns a deep copy of the animation parameters.
func (a AnimationConfig) Clone() AnimationConfig {
	out := a
	if a.Ocean.Eddies != nil {
		out.Ocean.Eddies = make([]EddyConfig, len(a.Ocean.Eddies))
		copy(out.Ocean.Eddies, a.Ocean.Eddies)
	}
	return out
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
