// Package config holds the SMAA tuning parameters as a plain value object:
// named, bounded fields with a validator, plus the five bundled presets.
package config

import "fmt"

// Preset selects one of the five bundled configurations.
type Preset int

const (
	PresetLow Preset = iota
	PresetMedium
	PresetHigh
	PresetUltra
	PresetExtreme
)

func (p Preset) String() string {
	switch p {
	case PresetLow:
		return "low"
	case PresetMedium:
		return "medium"
	case PresetHigh:
		return "high"
	case PresetUltra:
		return "ultra"
	case PresetExtreme:
		return "extreme"
	default:
		return "unknown"
	}
}

// ParsePreset maps a CLI-style preset name to a Preset, mirroring smaa_png's
// config_presets lookup table.
func ParsePreset(name string) (Preset, error) {
	switch name {
	case "low":
		return PresetLow, nil
	case "medium":
		return PresetMedium, nil
	case "high":
		return PresetHigh, nil
	case "ultra":
		return PresetUltra, nil
	case "extreme":
		return PresetExtreme, nil
	default:
		return 0, fmt.Errorf("unknown preset name: %s", name)
	}
}

// Config is the full set of tuning parameters recognized by the runtime
// filter.
type Config struct {
	Threshold                     float32
	DepthThreshold                float32
	MaxSearchSteps                int
	MaxSearchStepsDiag            int
	CornerRounding                int
	LocalContrastAdaptationFactor float32
	EnableDiagDetection           bool
	EnableCornerDetection         bool
	EnablePredication             bool
	PredicationThreshold          float32
	PredicationScale              float32
	PredicationStrength           float32
	EnableReprojection            bool
	ReprojectionWeightScale       float32
}

// New returns the configuration for preset, with predication and
// reprojection at their defaults.
func New(preset Preset) *Config {
	c := &Config{
		EnableDiagDetection:           true,
		EnableCornerDetection:         true,
		EnablePredication:             false,
		Threshold:                     0.1,
		DepthThreshold:                0.1,
		MaxSearchSteps:                16,
		MaxSearchStepsDiag:            8,
		CornerRounding:                25,
		LocalContrastAdaptationFactor: 2.0,
		PredicationThreshold:          0.01,
		PredicationScale:              2.0,
		PredicationStrength:           0.4,
		EnableReprojection:            false,
		ReprojectionWeightScale:       30.0,
	}
	c.SetPreset(preset)
	return c
}

// SetPreset resets the base parameters (threshold, search steps, corner
// rounding, diagonal/corner enablement) to preset's defaults, leaving
// predication and reprojection settings untouched.
func (c *Config) SetPreset(preset Preset) {
	switch preset {
	case PresetLow:
		c.Threshold = 0.15
		c.MaxSearchSteps = 4
		c.EnableDiagDetection = false
		c.EnableCornerDetection = false
	case PresetMedium:
		c.Threshold = 0.1
		c.MaxSearchSteps = 8
		c.EnableDiagDetection = false
		c.EnableCornerDetection = false
	case PresetHigh:
		c.Threshold = 0.1
		c.MaxSearchSteps = 16
		c.MaxSearchStepsDiag = 8
		c.CornerRounding = 25
		c.EnableDiagDetection = true
		c.EnableCornerDetection = true
	case PresetUltra:
		c.Threshold = 0.05
		c.MaxSearchSteps = 32
		c.MaxSearchStepsDiag = 16
		c.CornerRounding = 25
		c.EnableDiagDetection = true
		c.EnableCornerDetection = true
	case PresetExtreme:
		c.Threshold = 0.05
		c.MaxSearchSteps = 104
		c.MaxSearchStepsDiag = 18
		c.CornerRounding = 25
		c.EnableDiagDetection = true
		c.EnableCornerDetection = true
	}
}

// Validate checks every field against its documented range.
func (c *Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 0.5 {
		return fmt.Errorf("threshold must be within [0, 0.5]: got %v", c.Threshold)
	}
	if c.MaxSearchSteps < 1 || c.MaxSearchSteps > 362 {
		return fmt.Errorf("max_search_steps must be within [1, 362]: got %d", c.MaxSearchSteps)
	}
	if c.MaxSearchStepsDiag < 0 || c.MaxSearchStepsDiag > 19 {
		return fmt.Errorf("max_search_steps_diag must be within [0, 19]: got %d", c.MaxSearchStepsDiag)
	}
	if c.CornerRounding < 0 || c.CornerRounding > 100 {
		return fmt.Errorf("corner_rounding must be within [0, 100]: got %d", c.CornerRounding)
	}
	if c.LocalContrastAdaptationFactor < 1 {
		return fmt.Errorf("local_contrast_adaptation_factor must be >= 1: got %v", c.LocalContrastAdaptationFactor)
	}
	return nil
}

// DependencyHalo is the per-axis padding a pass reads around each output
// pixel; tile-parallel callers need it to size their input overlap.
type DependencyHalo struct {
	XMin, XMax, YMin, YMax int
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// BlendingWeightHalo returns the dependency halo for the blending weight
// calculation pass under this configuration.
func (c *Config) BlendingWeightHalo() DependencyHalo {
	diagX, diagY := 0, 0
	if c.EnableDiagDetection {
		diagX = c.MaxSearchStepsDiag + 1
		diagY = c.MaxSearchStepsDiag
	}
	return DependencyHalo{
		XMin: maxInt(maxInt(c.MaxSearchSteps-1, 1), diagX),
		XMax: maxInt(c.MaxSearchSteps, diagX),
		YMin: maxInt(maxInt(c.MaxSearchSteps-1, 1), diagY),
		YMax: maxInt(c.MaxSearchSteps, diagY),
	}
}

// EdgeDetectionHalo is the halo read by luma/color edge detection.
func EdgeDetectionHalo() DependencyHalo {
	return DependencyHalo{XMin: 2, XMax: 1, YMin: 2, YMax: 1}
}

// DepthEdgeDetectionHalo is the halo read by depth edge detection.
func DepthEdgeDetectionHalo() DependencyHalo {
	return DependencyHalo{XMin: 1, XMax: 0, YMin: 1, YMax: 0}
}

// NeighborhoodBlendingHalo is the halo read by the neighborhood blending pass.
func NeighborhoodBlendingHalo() DependencyHalo {
	return DependencyHalo{XMin: 1, XMax: 1, YMin: 1, YMax: 1}
}
