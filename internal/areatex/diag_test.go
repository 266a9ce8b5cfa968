package areatex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsideHalfPlane(t *testing.T) {
	p1 := Vec2{0, 0}
	p2 := Vec2{1, 1}
	assert.True(t, inside(p1, p2, Vec2{1, 0}))
	assert.False(t, inside(p1, p2, Vec2{0, 1}))
}

func TestArea1IsWithinUnitRange(t *testing.T) {
	p1 := Vec2{1.0, 1.0}
	p2 := Vec2{1.0, 1.0 + 4.0}
	a := area1(p1, p2, gridPos{X: 2, Y: 2})
	assert.GreaterOrEqual(t, a, 0.0)
	assert.LessOrEqual(t, a, 1.0)
}

func TestGenerateDiagGridFillsExpectedSize(t *testing.T) {
	grid := generateDiagGrid(0)
	assert.Len(t, grid, DiagGridSize)
	assert.Len(t, grid[0], DiagGridSize)
}

func TestAreaDiagVertHorzIsDeterministic(t *testing.T) {
	a := areaDiag(EdgesDiagVertHorz, 3, 3, Vec2{0, 0})
	b := areaDiag(EdgesDiagVertHorz, 3, 3, Vec2{0, 0})
	assert.Equal(t, a, b)
}
