package areatex

import (
	"context"
	"log/slog"
)

// Tables holds the generated lookup data: one [][]Vec2 grid per subpixel
// offset, each grid (5*SizeOrtho) square for Ortho and (4*SizeDiag) square
// for Diag. Index 0 is always the no-subsampling sample; indices 1..6
// (ortho) / 1..4 (diag) are populated only when subsampling was requested.
type Tables struct {
	OrthoSamples int
	DiagSamples  int
	Ortho        [][][]Vec2 // [sample][y][x]
	Diag         [][][]Vec2
}

// OrthoGridSize is the side length, in texels, of one orthogonal pattern
// grid.
const OrthoGridSize = 5 * SizeOrtho

// DiagGridSize is the side length, in texels, of one diagonal pattern grid.
const DiagGridSize = 4 * SizeDiag

func newGrid(size int) [][]Vec2 {
	g := make([][]Vec2, size)
	for i := range g {
		g[i] = make([]Vec2, size)
	}
	return g
}

// generateOrthoGrid fills one OrthoGridSize x OrthoGridSize grid for the
// given subpixel offset index, evaluating areaOrtho at every (pattern,
// left, right) combination. left and right are squared before being passed
// to areaOrtho, per the quadratic-distance compression fixed for this
// table: samples are stored at quadratically spaced distances so that the
// runtime lookup can recover them with an integer-distance index and a
// single sqrt.
func generateOrthoGrid(offsetIndex int) [][]Vec2 {
	offset := SubsampleOffsetsOrtho[offsetIndex]
	grid := newGrid(OrthoGridSize)

	for pattern := orthoPattern(0); pattern < 16; pattern++ {
		base := EdgesOrtho[pattern]
		for left := 0; left < SizeOrtho; left++ {
			for right := 0; right < SizeOrtho; right++ {
				p := areaOrtho(pattern, left*left, right*right, offset)
				y := base.Y*SizeOrtho + right
				x := base.X*SizeOrtho + left
				grid[y][x] = p
			}
		}
	}
	return grid
}

// generateDiagGrid fills one DiagGridSize x DiagGridSize grid for the given
// subpixel offset index, evaluating areaDiag at every (pattern, left,
// right) combination via brute-force sampling.
func generateDiagGrid(offsetIndex int) [][]Vec2 {
	offset := SubsampleOffsetsDiag[offsetIndex]
	grid := newGrid(DiagGridSize)

	for pattern := diagPattern(0); pattern < 16; pattern++ {
		base := EdgesDiag[pattern]
		for left := 0; left < SizeDiag; left++ {
			for right := 0; right < SizeDiag; right++ {
				p := areaDiag(pattern, left, right, offset)
				y := base.Y*SizeDiag + right
				x := base.X*SizeDiag + left
				grid[y][x] = p
			}
		}
	}
	return grid
}

// Generate computes the full set of lookup tables. When subsampling is
// true, all 7 orthogonal and 5 diagonal subpixel offsets are evaluated
// (needed for subpixel/morphological supersampling of the source image);
// otherwise only the zero-offset sample is produced. logger receives one
// Info line per completed grid, since the diagonal brute-force pass over
// 16 patterns x 20 x 20 distances x 900 samples is the slow part of
// generation and worth surfacing progress for.
func Generate(ctx context.Context, subsampling bool, logger *slog.Logger) (*Tables, error) {
	orthoSamples := 1
	diagSamples := 1
	if subsampling {
		orthoSamples = 7
		diagSamples = 5
	}

	t := &Tables{
		OrthoSamples: orthoSamples,
		DiagSamples:  diagSamples,
		Ortho:        make([][][]Vec2, orthoSamples),
		Diag:         make([][][]Vec2, diagSamples),
	}

	for i := 0; i < orthoSamples; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t.Ortho[i] = generateOrthoGrid(i)
		logger.Info("generated orthogonal area table", "offset_index", i, "offset", SubsampleOffsetsOrtho[i])
	}

	for i := 0; i < diagSamples; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t.Diag[i] = generateDiagGrid(i)
		logger.Info("generated diagonal area table", "offset_index", i, "offset", SubsampleOffsetsDiag[i])
	}

	return t, nil
}

// FlattenOrtho packs the orthogonal tables into a single []float32, in
// [sample][y][x][channel] row-major order — the layout the serialized
// tables and the runtime sampler share.
func (t *Tables) FlattenOrtho() []float32 {
	return flatten(t.Ortho, t.OrthoSamples, OrthoGridSize)
}

// FlattenDiag packs the diagonal tables the same way, for the "areatex_diag"
// array.
func (t *Tables) FlattenDiag() []float32 {
	return flatten(t.Diag, t.DiagSamples, DiagGridSize)
}

func flatten(samples [][][]Vec2, sampleCount, gridSize int) []float32 {
	out := make([]float32, 0, sampleCount*gridSize*gridSize*2)
	for s := 0; s < sampleCount; s++ {
		for y := 0; y < gridSize; y++ {
			for x := 0; x < gridSize; x++ {
				v := samples[s][y][x]
				out = append(out, float32(v.X), float32(v.Y))
			}
		}
	}
	return out
}
