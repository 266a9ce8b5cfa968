package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePresetRoundTrips(t *testing.T) {
	for _, p := range []Preset{PresetLow, PresetMedium, PresetHigh, PresetUltra, PresetExtreme} {
		parsed, err := ParsePreset(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
}

func TestParsePresetRejectsUnknownName(t *testing.T) {
	_, err := ParsePreset("turbo")
	assert.Error(t, err)
}

func TestNewAppliesPresetDefaults(t *testing.T) {
	low := New(PresetLow)
	assert.False(t, low.EnableDiagDetection)
	assert.False(t, low.EnableCornerDetection)
	assert.Equal(t, float32(0.15), low.Threshold)

	high := New(PresetHigh)
	assert.True(t, high.EnableDiagDetection)
	assert.True(t, high.EnableCornerDetection)
	assert.Equal(t, 25, high.CornerRounding)
}

func TestValidateRejectsOutOfRangeFields(t *testing.T) {
	c := New(PresetHigh)
	c.Threshold = 0.9
	assert.Error(t, c.Validate())

	c = New(PresetHigh)
	c.MaxSearchSteps = 0
	assert.Error(t, c.Validate())

	c = New(PresetHigh)
	c.MaxSearchStepsDiag = 20
	assert.Error(t, c.Validate())

	c = New(PresetHigh)
	c.CornerRounding = 101
	assert.Error(t, c.Validate())

	c = New(PresetHigh)
	c.LocalContrastAdaptationFactor = 0.5
	assert.Error(t, c.Validate())
}

func TestValidateAcceptsPresetDefaults(t *testing.T) {
	for _, p := range []Preset{PresetLow, PresetMedium, PresetHigh, PresetUltra, PresetExtreme} {
		assert.NoError(t, New(p).Validate())
	}
}

func TestBlendingWeightHaloGrowsWithDiagonalSearch(t *testing.T) {
	withoutDiag := New(PresetMedium).BlendingWeightHalo()
	withDiag := New(PresetHigh).BlendingWeightHalo()

	assert.GreaterOrEqual(t, withDiag.XMin, withoutDiag.XMin)
	assert.GreaterOrEqual(t, withDiag.YMax, withoutDiag.YMax)
}

func TestFixedHalosMatchDocumentedSizes(t *testing.T) {
	assert.Equal(t, DependencyHalo{XMin: 2, XMax: 1, YMin: 2, YMax: 1}, EdgeDetectionHalo())
	assert.Equal(t, DependencyHalo{XMin: 1, XMax: 0, YMin: 1, YMax: 0}, DepthEdgeDetectionHalo())
	assert.Equal(t, DependencyHalo{XMin: 1, XMax: 1, YMin: 1, YMax: 1}, NeighborhoodBlendingHalo())
}
