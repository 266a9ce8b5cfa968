package areatex

import "math"

// smoothArea softens u-shaped patterns (both edges crossing the same way)
// for small distances d, where the analytic trapezoid solution produces an
// unrealistically sharp corner; it blends towards a sqrt-scaled area as d
// shrinks below SmoothMaxDistance.
func smoothArea(d float64, a1, a2 Vec2) Vec2 {
	b1 := a1.scale(2.0).sqrt().scale(0.5)
	b2 := a2.scale(2.0).sqrt().scale(0.5)
	p := saturate(d / SmoothMaxDistance)
	return lerp(b1, a1, p).add(lerp(b2, a2, p))
}

// area computes the area under the line p1->p2 within the pixel column
// [x, x+1), split into the portion below the line (a1, returned in X) and
// above it (a2, returned in Y) — a direct analytic trapezoid/triangle
// integral, avoiding any sampling.
func area(p1, p2 Vec2, x int) Vec2 {
	d := Vec2{p2.X - p1.X, p2.Y - p1.Y}
	x1 := float64(x)
	x2 := float64(x) + 1.0
	y1 := p1.Y + d.Y*(x1-p1.X)/d.X
	y2 := p1.Y + d.Y*(x2-p1.X)/d.X

	inside := (x1 >= p1.X && x1 < p2.X) || (x2 > p1.X && x2 <= p2.X)
	if !inside {
		return Vec2{0.0, 0.0}
	}

	if math.Signbit(y1) == math.Signbit(y2) || math.Abs(y1) < 1e-4 || math.Abs(y2) < 1e-4 {
		// Trapezoid.
		a := (y1 + y2) / 2.0
		if a < 0.0 {
			return Vec2{math.Abs(a), 0.0}
		}
		return Vec2{0.0, math.Abs(a)}
	}

	// Two triangles, split at the line's x-intercept.
	xi := -p1.Y*d.X/d.Y + p1.X
	_, fracXi := math.Modf(xi)

	var a1, a2 float64
	if xi > p1.X {
		a1 = y1 * fracXi / 2.0
	}
	if xi < p2.X {
		a2 = y2 * (1.0 - fracXi) / 2.0
	}

	if math.Abs(a1) > math.Abs(a2) {
		if a1 < 0.0 {
			return Vec2{math.Abs(a1), math.Abs(a2)}
		}
		return Vec2{math.Abs(a2), math.Abs(a1)}
	}
	if -a2 < 0.0 {
		return Vec2{math.Abs(a1), math.Abs(a2)}
	}
	return Vec2{math.Abs(a2), math.Abs(a1)}
}

// areaOrtho computes the area for an orthogonal pattern given squared
// distances to the left and right crossing edges, biased by a sub-pixel
// offset. left/right are passed already squared by the caller, following
// the quadratic-distance compression fixed for this table (raw integer
// distances at the runtime lookup boundary, squared samples at generation
// time).
func areaOrtho(pattern orthoPattern, left, right int, offset float64) Vec2 {
	d := float64(left + right + 1)
	o1 := 0.5 + offset
	o2 := 0.5 + offset - 1.0

	switch pattern {
	case EdgesOrthoNoneNone, EdgesOrthoBothNone, EdgesOrthoNoneBoth, EdgesOrthoBothBoth:
		return Vec2{0.0, 0.0}

	case EdgesOrthoPosiNone:
		if left <= right {
			return area(Vec2{0.0, o2}, Vec2{d / 2.0, 0.0}, left)
		}
		return Vec2{0.0, 0.0}

	case EdgesOrthoNonePosi:
		if left >= right {
			return area(Vec2{d / 2.0, 0.0}, Vec2{d, o2}, left)
		}
		return Vec2{0.0, 0.0}

	case EdgesOrthoPosiPosi:
		a1 := area(Vec2{0.0, o2}, Vec2{d / 2.0, 0.0}, left)
		a2 := area(Vec2{d / 2.0, 0.0}, Vec2{d, o2}, left)
		return smoothArea(d, a1, a2)

	case EdgesOrthoNegaNone:
		if left <= right {
			return area(Vec2{0.0, o1}, Vec2{d / 2.0, 0.0}, left)
		}
		return Vec2{0.0, 0.0}

	case EdgesOrthoNegaPosi:
		if math.Abs(offset) > 0.0 {
			a1 := area(Vec2{0.0, o1}, Vec2{d, o2}, left)
			a2 := area(Vec2{0.0, o1}, Vec2{d / 2.0, 0.0}, left)
			a2 = a2.add(area(Vec2{d / 2.0, 0.0}, Vec2{d, o2}, left))
			return a1.add(a2).scale(0.5)
		}
		return area(Vec2{0.0, o1}, Vec2{d, o2}, left)

	case EdgesOrthoBothPosi:
		return area(Vec2{0.0, o1}, Vec2{d, o2}, left)

	case EdgesOrthoNoneNega:
		if left >= right {
			return area(Vec2{d / 2.0, 0.0}, Vec2{d, o1}, left)
		}
		return Vec2{0.0, 0.0}

	case EdgesOrthoPosiNega:
		if math.Abs(offset) > 0.0 {
			a1 := area(Vec2{0.0, o2}, Vec2{d, o1}, left)
			a2 := area(Vec2{0.0, o2}, Vec2{d / 2.0, 0.0}, left)
			a2 = a2.add(area(Vec2{d / 2.0, 0.0}, Vec2{d, o1}, left))
			return a1.add(a2).scale(0.5)
		}
		return area(Vec2{0.0, o2}, Vec2{d, o1}, left)

	case EdgesOrthoPosiBoth:
		return area(Vec2{0.0, o2}, Vec2{d, o1}, left)

	case EdgesOrthoNegaNega:
		a1 := area(Vec2{0.0, o1}, Vec2{d / 2.0, 0.0}, left)
		a2 := area(Vec2{d / 2.0, 0.0}, Vec2{d, o1}, left)
		return smoothArea(d, a1, a2)

	case EdgesOrthoBothNega:
		return area(Vec2{0.0, o2}, Vec2{d, o1}, left)

	case EdgesOrthoNegaBoth:
		return area(Vec2{0.0, o1}, Vec2{d, o2}, left)
	}

	return Vec2{0.0, 0.0}
}
