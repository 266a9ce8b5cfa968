package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strauhmanis/smaa/internal/areatex"
	"github.com/strauhmanis/smaa/internal/config"
	"github.com/strauhmanis/smaa/internal/smaa"
	"github.com/strauhmanis/smaa/internal/smaaimg"
)

func testPipeline(t *testing.T, cfg *config.Config) *Pipeline {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tables, err := areatex.Generate(context.Background(), false, logger)
	require.NoError(t, err)
	shader := smaa.New(cfg, tables.FlattenOrtho(), tables.FlattenDiag())
	return New(shader, logger)
}

func maxAbsDiff(a, b smaaimg.Reader) float32 {
	var m float32
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			pa, pb := a.GetPixel(x, y), b.GetPixel(x, y)
			for i := 0; i < 4; i++ {
				d := pa[i] - pb[i]
				if d < 0 {
					d = -d
				}
				if d > m {
					m = d
				}
			}
		}
	}
	return m
}

func TestUniformImagePassesThroughUnchanged(t *testing.T) {
	p := testPipeline(t, config.New(config.PresetHigh))

	img, err := smaaimg.NewImage(8, 8)
	require.NoError(t, err)
	img.Fill([4]float32{0.5, 0.5, 0.5, 1.0})

	result, err := p.Run(EdgeDetectionLuma, img, nil, nil)
	require.NoError(t, err)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.Equal(t, [4]float32{0, 0, 0, 1}, result.Edges.GetPixel(x, y))
			assert.Equal(t, [4]float32{0, 0, 0, 0}, result.Blend.GetPixel(x, y))
			assert.Equal(t, img.GetPixel(x, y), result.Output.GetPixel(x, y))
		}
	}
}

func TestStraightHorizontalStepIsAFixedPoint(t *testing.T) {
	// An uninterrupted straight edge has no line ends to revectorize:
	// both crossing-edge codes are zero, which addresses the all-zero
	// NONE_NONE block, so the image passes through bit for bit and a
	// second run is trivially identical.
	p := testPipeline(t, config.New(config.PresetHigh))

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

	first, err := p.Run(EdgeDetectionLuma, img, nil, nil)
	require.NoError(t, err)

	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			e := first.Edges.GetPixel(x, y)
			assert.Equal(t, float32(0), e[0], "edges R at (%d, %d)", x, y)
			if y == 4 {
				assert.Equal(t, float32(1), e[1], "edges G at (%d, 4)", x)
			} else {
				assert.Equal(t, float32(0), e[1], "edges G at (%d, %d)", x, y)
			}
		}
	}

	assert.Zero(t, maxAbsDiff(img, first.Output))

	second, err := p.Run(EdgeDetectionLuma, first.Output, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, maxAbsDiff(first.Output, second.Output))
}

func TestDiagonalLineIsSoftenedWithinCorridor(t *testing.T) {
	p := testPipeline(t, config.New(config.PresetHigh))

	img, err := smaaimg.NewImage(16, 16)
	require.NoError(t, err)
	img.Fill([4]float32{0, 0, 0, 1})
	for i := 0; i < 16; i++ {
		require.NoError(t, img.PutPixel(i, i, [4]float32{1, 1, 1, 1}))
	}

	result, err := p.Run(EdgeDetectionLuma, img, nil, nil)
	require.NoError(t, err)

	changedNearLine := false
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			in := img.GetPixel(x, y)
			out := result.Output.GetPixel(x, y)
			var diff float32
			for i := 0; i < 4; i++ {
				d := in[i] - out[i]
				if d < 0 {
					d = -d
				}
				if d > diff {
					diff = d
				}
			}

			dist := x - y
			if dist < 0 {
				dist = -dist
			}
			if diff > 0 && dist <= 1 {
				changedNearLine = true
			}
			if dist > 2 {
				assert.Zero(t, diff, "pixel (%d, %d) outside the corridor must not change", x, y)
			}

			for i := 0; i < 3; i++ {
				assert.GreaterOrEqual(t, out[i], float32(0))
				assert.LessOrEqual(t, out[i], float32(1))
			}
		}
	}
	assert.True(t, changedNearLine, "the stair-steps along the diagonal should be softened")
}

func TestDepthEdgeDetectionRunsThroughPipeline(t *testing.T) {
	p := testPipeline(t, config.New(config.PresetHigh))

	color, err := smaaimg.NewImage(8, 8)
	require.NoError(t, err)
	color.Fill([4]float32{0.5, 0.5, 0.5, 1.0})

	depth, err := smaaimg.NewImage(8, 8)
	require.NoError(t, err)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			d := float32(0.0)
			if x >= 4 {
				d = 1.0
			}
			depth.PutPixel(x, y, [4]float32{d, d, d, 1})
		}
	}

	result, err := p.Run(EdgeDetectionDepth, color, depth, nil)
	require.NoError(t, err)

	for y := 0; y < 8; y++ {
		e := result.Edges.GetPixel(4, y)
		assert.Equal(t, float32(1), e[0], "depth discontinuity should produce a west edge at (4, %d)", y)
	}
}

func TestSinglePixelImageRunsCleanly(t *testing.T) {
	p := testPipeline(t, config.New(config.PresetLow))

	img, err := smaaimg.NewImage(1, 1)
	require.NoError(t, err)
	img.Fill([4]float32{0.3, 0.3, 0.3, 1})

	result, err := p.Run(EdgeDetectionColor, img, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, img.GetPixel(0, 0), result.Output.GetPixel(0, 0))
}
