// Package areatex computes the SMAA area lookup tables: the orthogonal
// table from closed-form trapezoid/triangle integrals, and the diagonal
// table from brute-force grid sampling, following the analytic approach of
// the reference AreaTex generator. Both tables are produced per discrete
// subpixel offset and packed into flat []float32 slices for embedding or
// serialization.
package areatex

import "math"

// Vec2 is a 2-D double-precision point/vector, used throughout area
// computation for sub-pixel precision.
type Vec2 struct {
	X, Y float64
}

func (a Vec2) add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) sqrt() Vec2      { return Vec2{math.Sqrt(a.X), math.Sqrt(a.Y)} }
func lerp(a, b Vec2, p float64) Vec2 {
	return a.add(b.sub(a).scale(p))
}
func saturate(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Sizes and sampling parameters, fixed by the reference generator: 16
// distance steps per orthogonal pattern half, 20 per diagonal pattern half,
// a 30x30 brute-force sampling grid for diagonal areas, and a 32-pixel
// horizon beyond which u-shaped patterns stop being smoothed.
const (
	SizeOrtho         = 16
	SizeDiag          = 20
	SamplesDiag       = 30
	SmoothMaxDistance = 32.0
)

// SubsampleOffsetsOrtho are the discrete horizontal sub-pixel offsets the
// orthogonal table is evaluated at; index 0 is the no-subsampling case.
var SubsampleOffsetsOrtho = [7]float64{0.0, -0.25, 0.25, -0.125, 0.125, -0.375, 0.375}

// SubsampleOffsetsDiag are the discrete diagonal sub-pixel offsets the
// diagonal table is evaluated at; index 0 is the no-subsampling case.
var SubsampleOffsetsDiag = [5]Vec2{
	{0.00, 0.00},
	{0.25, -0.25},
	{-0.25, 0.25},
	{0.125, -0.125},
	{-0.125, 0.125},
}

// orthoPattern indexes the 16 combinations of left/right crossing-edge
// state ({none, negative, positive, both}) for the orthogonal table.
type orthoPattern int

const (
	EdgesOrthoNoneNone orthoPattern = iota
	EdgesOrthoNoneNega
	EdgesOrthoNonePosi
	EdgesOrthoNoneBoth
	EdgesOrthoNegaNone
	EdgesOrthoNegaNega
	EdgesOrthoNegaPosi
	EdgesOrthoNegaBoth
	EdgesOrthoPosiNone
	EdgesOrthoPosiNega
	EdgesOrthoPosiPosi
	EdgesOrthoPosiBoth
	EdgesOrthoBothNone
	EdgesOrthoBothNega
	EdgesOrthoBothPosi
	EdgesOrthoBothBoth
)

// gridPos is an integer (x, y) slot within the packed table.
type gridPos struct{ X, Y int }

// EdgesOrtho places each of the 16 orthogonal patterns into its grid slot:
// end-style codes {none, negative, positive, both} map to grid positions
// {0, 1, 3, 4}.
var EdgesOrtho = [16]gridPos{
	{0, 0}, {0, 1}, {0, 3}, {0, 4},
	{1, 0}, {1, 1}, {1, 3}, {1, 4},
	{3, 0}, {3, 1}, {3, 3}, {3, 4},
	{4, 0}, {4, 1}, {4, 3}, {4, 4},
}

// diagPattern indexes the 16 combinations of left/right crossing-edge state
// ({none, vertical, horizontal, both}) for the diagonal table.
type diagPattern int

const (
	EdgesDiagNoneNone diagPattern = iota
	EdgesDiagNoneVert
	EdgesDiagNoneHorz
	EdgesDiagNoneBoth
	EdgesDiagVertNone
	EdgesDiagVertVert
	EdgesDiagVertHorz
	EdgesDiagVertBoth
	EdgesDiagHorzNone
	EdgesDiagHorzVert
	EdgesDiagHorzHorz
	EdgesDiagHorzBoth
	EdgesDiagBothNone
	EdgesDiagBothVert
	EdgesDiagBothHorz
	EdgesDiagBothBoth
)

// EdgesDiag places each of the 16 diagonal patterns into its grid slot:
// end-style codes {none, vertical, horizontal, both} map to grid positions
// {0, 1, 2, 3}.
var EdgesDiag = [16]gridPos{
	{0, 0}, {0, 1}, {0, 2}, {0, 3},
	{1, 0}, {1, 1}, {1, 2}, {1, 3},
	{2, 0}, {2, 1}, {2, 2}, {2, 3},
	{3, 0}, {3, 1}, {3, 2}, {3, 3},
}
