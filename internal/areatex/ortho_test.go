package areatex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAreaOrthoNoneNoneIsAlwaysZero(t *testing.T) {
	for left := 0; left < SizeOrtho; left++ {
		for right := 0; right < SizeOrtho; right++ {
			p := areaOrtho(EdgesOrthoNoneNone, left*left, right*right, 0.0)
			assert.Equal(t, Vec2{0, 0}, p)
		}
	}
}

func TestAreaOrthoBothBothIsAlwaysZero(t *testing.T) {
	p := areaOrtho(EdgesOrthoBothBoth, 4, 9, -0.25)
	assert.Equal(t, Vec2{0, 0}, p)
}

func TestAreaOrthoPosiPosiReferenceValueAtOrigin(t *testing.T) {
	// The shortest U pattern: a one-pixel run kinked down at both ends.
	// Each half-trapezoid integrates to 0.125 below the line, and
	// smoothArea(1, ...) lifts each half to
	// lerp(sqrt(0.25)*0.5, 0.125, 1.0/32) = 0.24609375.
	p := areaOrtho(EdgesOrthoPosiPosi, 0, 0, 0.0)
	assert.InDelta(t, 0.4921875, p.X, 1e-12)
	assert.InDelta(t, 0.0, p.Y, 1e-12)
}

func TestAreaOrthoNegaNegaMirrorsPosiPosi(t *testing.T) {
	// The upward U is the downward U reflected across the line, so the
	// area lands in the opposite channel.
	posi := areaOrtho(EdgesOrthoPosiPosi, 0, 0, 0.0)
	nega := areaOrtho(EdgesOrthoNegaNega, 0, 0, 0.0)
	assert.InDelta(t, posi.X, nega.Y, 1e-12)
	assert.InDelta(t, posi.Y, nega.X, 1e-12)
}

func TestAreaOrthoPosiNoneRespectsLeftRightOrdering(t *testing.T) {
	// The reference generator only fills in the L pattern on the side
	// with the shorter distance, to converge toward the unfiltered
	// (pattern 0) result on the far side.
	far := areaOrtho(EdgesOrthoPosiNone, 10, 2, 0.0)
	assert.Equal(t, Vec2{0, 0}, far)

	near := areaOrtho(EdgesOrthoPosiNone, 2, 10, 0.0)
	assert.NotEqual(t, Vec2{0, 0}, near)
}

func TestGenerateOrthoGridFillsExpectedSize(t *testing.T) {
	grid := generateOrthoGrid(0)
	assert.Len(t, grid, OrthoGridSize)
	assert.Len(t, grid[0], OrthoGridSize)
}
