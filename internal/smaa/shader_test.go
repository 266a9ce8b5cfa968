package smaa

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strauhmanis/smaa/internal/areatex"
	"github.com/strauhmanis/smaa/internal/config"
	"github.com/strauhmanis/smaa/internal/smaaimg"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testShader(t *testing.T, preset config.Preset) *Shader {
	t.Helper()
	tables, err := areatex.Generate(context.Background(), false, discardLogger())
	require.NoError(t, err)
	cfg := config.New(preset)
	return New(cfg, tables.FlattenOrtho(), tables.FlattenDiag())
}

func uniformImage(t *testing.T, w, h int, color [4]float32) *smaaimg.Image {
	t.Helper()
	img, err := smaaimg.NewImage(w, h)
	require.NoError(t, err)
	img.Fill(color)
	return img
}

func TestLumaEdgeDetectionFindsNoEdgesOnUniformImage(t *testing.T) {
	s := testShader(t, config.PresetHigh)
	img := uniformImage(t, 16, 16, [4]float32{0.5, 0.5, 0.5, 1.0})

	for y := 2; y < 14; y++ {
		for x := 2; x < 14; x++ {
			e := s.LumaEdgeDetection(x, y, img, nil)
			assert.Equal(t, float32(0), e[0])
			assert.Equal(t, float32(0), e[1])
		}
	}
}

func TestLumaEdgeDetectionFindsVerticalStepEdge(t *testing.T) {
	s := testShader(t, config.PresetHigh)
	img, err := smaaimg.NewImage(16, 16)
	require.NoError(t, err)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if x < 8 {
				img.PutPixel(x, y, [4]float32{0, 0, 0, 1})
			} else {
				img.PutPixel(x, y, [4]float32{1, 1, 1, 1})
			}
		}
	}

	e := s.LumaEdgeDetection(8, 8, img, nil)
	assert.Equal(t, float32(1), e[0], "left edge should be detected at the step boundary")
}

func TestColorEdgeDetectionChannelsAreBoolean(t *testing.T) {
	s := testShader(t, config.PresetHigh)
	img, err := smaaimg.NewImage(16, 16)
	require.NoError(t, err)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if (x+y)%3 == 0 {
				img.PutPixel(x, y, [4]float32{1, 0, 0, 1})
			} else {
				img.PutPixel(x, y, [4]float32{0, 0, 1, 1})
			}
		}
	}

	for y := 2; y < 14; y++ {
		for x := 2; x < 14; x++ {
			e := s.ColorEdgeDetection(x, y, img, nil)
			assert.Contains(t, []float32{0, 1}, e[0])
			assert.Contains(t, []float32{0, 1}, e[1])
		}
	}
}

func TestDepthEdgeDetectionMatchesThreshold(t *testing.T) {
	s := testShader(t, config.PresetHigh)
	img, err := smaaimg.NewImage(4, 4)
	require.NoError(t, err)
	img.Fill([4]float32{0, 0, 0, 0})
	require.NoError(t, img.PutPixel(2, 2, [4]float32{1, 1, 1, 1}))

	e := s.DepthEdgeDetection(2, 2, img)
	assert.Equal(t, float32(1), e[0])
	assert.Equal(t, float32(1), e[1])

	e = s.DepthEdgeDetection(0, 0, img)
	assert.Equal(t, float32(0), e[0])
	assert.Equal(t, float32(0), e[1])
}

func TestBlendingWeightCalculationProducesNoWeightsWithoutEdges(t *testing.T) {
	s := testShader(t, config.PresetHigh)
	edges := uniformImage(t, 16, 16, [4]float32{0, 0, 0, 1})

	w := s.BlendingWeightCalculation(8, 8, edges, nil)
	assert.Equal(t, [4]float32{0, 0, 0, 0}, w)
}

func TestBlendingWeightCalculationWeightsStayInUnitRange(t *testing.T) {
	s := testShader(t, config.PresetHigh)
	edges, err := smaaimg.NewImage(16, 16)
	require.NoError(t, err)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if x == 8 {
				edges.PutPixel(x, y, [4]float32{1, 0, 0, 1})
			}
		}
	}

	for y := 2; y < 14; y++ {
		for x := 2; x < 14; x++ {
			w := s.BlendingWeightCalculation(x, y, edges, nil)
			for _, v := range w {
				assert.GreaterOrEqual(t, v, float32(0))
				assert.LessOrEqual(t, v, float32(1))
			}
		}
	}
}

func TestNeighborhoodBlendingIsNoOpWithoutWeights(t *testing.T) {
	s := testShader(t, config.PresetHigh)
	color := uniformImage(t, 8, 8, [4]float32{0.25, 0.5, 0.75, 1.0})
	blend := uniformImage(t, 8, 8, [4]float32{0, 0, 0, 0})

	out := s.NeighborhoodBlending(4, 4, color, blend, nil)
	assert.Equal(t, color.GetPixel(4, 4), out)
}

func TestResolveAveragesFramesWhenReprojectionDisabled(t *testing.T) {
	s := testShader(t, config.PresetHigh)
	current := uniformImage(t, 4, 4, [4]float32{0.1, 0.2, 0.3, 1.0})
	previous := uniformImage(t, 4, 4, [4]float32{0.9, 0.9, 0.9, 1.0})

	out := s.Resolve(1, 1, current, previous, nil)
	assert.Equal(t, [4]float32{0.5, 0.55, 0.6, 1.0}, out)
}

func TestResolveBlendsTowardReprojectedPreviousFrame(t *testing.T) {
	s := testShader(t, config.PresetHigh)
	s.enableReproj = true
	s.reprojWeight = 30.0
	current := uniformImage(t, 4, 4, [4]float32{0.0, 0.0, 0.0, 0.0})
	previous := uniformImage(t, 4, 4, [4]float32{1.0, 1.0, 1.0, 0.0})
	velocity := uniformImage(t, 4, 4, [4]float32{0, 0, 0, 0})

	// Identical packed velocities: the previous frame gets full half weight.
	out := s.Resolve(2, 2, current, previous, velocity)
	assert.InDelta(t, 0.5, float64(out[0]), 1e-6)
}

func TestMaxSearchStepsZeroOnZeroEdgeImageDoesNotPanic(t *testing.T) {
	s := testShader(t, config.PresetMedium)
	s.cfg.MaxSearchSteps = 1
	edges := uniformImage(t, 8, 8, [4]float32{0, 0, 0, 1})

	assert.NotPanics(t, func() {
		s.BlendingWeightCalculation(4, 4, edges, nil)
	})
}

func TestBlendingWeightCalculationDisabledDiagSearchDoesNotPanic(t *testing.T) {
	s := testShader(t, config.PresetHigh)
	s.cfg.MaxSearchStepsDiag = 0
	edges, err := smaaimg.NewImage(8, 8)
	require.NoError(t, err)
	for x := 0; x < 8; x++ {
		edges.PutPixel(x, 4, [4]float32{0, 1, 0, 1})
	}

	assert.NotPanics(t, func() {
		for x := 0; x < 8; x++ {
			s.BlendingWeightCalculation(x, 4, edges, nil)
		}
	})
}

func TestIsolatedPixelColorEdges(t *testing.T) {
	s := testShader(t, config.PresetHigh)
	img, err := smaaimg.NewImage(8, 8)
	require.NoError(t, err)
	img.Fill([4]float32{0, 0, 0, 1})
	require.NoError(t, img.PutPixel(4, 4, [4]float32{1, 1, 1, 1}))

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			e := s.ColorEdgeDetection(x, y, img, nil)
			wantWest := (x == 4 && y == 4) || (x == 5 && y == 4)
			wantNorth := (x == 4 && y == 4) || (x == 4 && y == 5)
			if wantWest {
				assert.Equal(t, float32(1), e[0], "west edge at (%d, %d)", x, y)
			} else {
				assert.Equal(t, float32(0), e[0], "no west edge at (%d, %d)", x, y)
			}
			if wantNorth {
				assert.Equal(t, float32(1), e[1], "north edge at (%d, %d)", x, y)
			} else {
				assert.Equal(t, float32(0), e[1], "no north edge at (%d, %d)", x, y)
			}
		}
	}
}

func TestHorizontalStepEdges(t *testing.T) {
	s := testShader(t, config.PresetHigh)
	img, err := smaaimg.NewImage(8, 8)
	require.NoError(t, err)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if y < 4 {
				img.PutPixel(x, y, [4]float32{0, 0, 0, 1})
			} else {
				img.PutPixel(x, y, [4]float32{1, 1, 1, 1})
			}
		}
	}

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			e := s.LumaEdgeDetection(x, y, img, nil)
			assert.Equal(t, float32(0), e[0], "no west edge at (%d, %d)", x, y)
			if y == 4 {
				assert.Equal(t, float32(1), e[1], "north edge at (%d, %d)", x, y)
			} else {
				assert.Equal(t, float32(0), e[1], "no north edge at (%d, %d)", x, y)
			}
		}
	}
}

func TestPredicationLowersThresholdWhereDepthChanges(t *testing.T) {
	s := testShader(t, config.PresetHigh)
	s.cfg.EnablePredication = true
	s.cfg.Threshold = 0.2
	s.cfg.PredicationScale = 1.0
	s.cfg.PredicationStrength = 0.9

	// A luma step too weak for the raw threshold...
	img, err := smaaimg.NewImage(8, 8)
	require.NoError(t, err)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			v := float32(0.0)
			if x >= 4 {
				v = 0.18
			}
			img.PutPixel(x, y, [4]float32{v, v, v, 1})
		}
	}

	// ...but backed by a hard depth discontinuity at the same column.
	pred, err := smaaimg.NewImage(8, 8)
	require.NoError(t, err)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			d := float32(0.0)
			if x >= 4 {
				d = 1.0
			}
			pred.PutPixel(x, y, [4]float32{d, d, d, 1})
		}
	}

	unpredicated := s.LumaEdgeDetection(4, 4, img, nil)
	assert.Equal(t, float32(0), unpredicated[0])

	predicated := s.LumaEdgeDetection(4, 4, img, pred)
	assert.Equal(t, float32(1), predicated[0])
}

func TestCornerDetectionChangesWeightsOnLShape(t *testing.T) {
	// The edge image of a filled axis-aligned rectangle spanning columns
	// 4..11 and rows 4..11: every horizontal boundary line ends in a
	// crossing vertical edge, forming a right-angle corner at each end.
	edges, err := smaaimg.NewImage(16, 16)
	require.NoError(t, err)
	for x := 4; x < 12; x++ {
		top := edges.GetPixel(x, 4)
		edges.PutPixel(x, 4, [4]float32{top[0], 1, 0, 1})
		edges.PutPixel(x, 12, [4]float32{0, 1, 0, 1})
	}
	for y := 4; y < 12; y++ {
		left := edges.GetPixel(4, y)
		edges.PutPixel(4, y, [4]float32{1, left[1], 0, 1})
		edges.PutPixel(12, y, [4]float32{1, 0, 0, 1})
	}

	tables, err := areatex.Generate(context.Background(), false, discardLogger())
	require.NoError(t, err)

	on := config.New(config.PresetHigh)
	on.EnableDiagDetection = false
	on.EnableCornerDetection = true
	off := config.New(config.PresetHigh)
	off.EnableDiagDetection = false
	off.EnableCornerDetection = false

	shaderOn := New(on, tables.FlattenOrtho(), tables.FlattenDiag())
	shaderOff := New(off, tables.FlattenOrtho(), tables.FlattenDiag())

	var maxDiff float32
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			wOn := shaderOn.BlendingWeightCalculation(x, y, edges, nil)
			wOff := shaderOff.BlendingWeightCalculation(x, y, edges, nil)
			for i := 0; i < 4; i++ {
				maxDiff = maxf(maxDiff, absf(wOn[i]-wOff[i]))
			}
		}
	}
	assert.GreaterOrEqual(t, maxDiff, float32(0.01),
		"corner rounding should attenuate at least one weight near the inner corner")
}
