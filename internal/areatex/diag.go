package areatex

// inside reports whether point p lies on the positive side of the line
// through p1 and p2 (or always true for a degenerate, zero-length line),
// the half-plane test the brute-force diagonal sampler uses per grid point.
func inside(p1, p2, p Vec2) bool {
	if p1.X == p2.X && p1.Y == p2.Y {
		return true
	}
	xm := (p1.X + p2.X) / 2.0
	ym := (p1.Y + p2.Y) / 2.0
	a := p2.Y - p1.Y
	b := p1.X - p2.X
	return a*(p.X-xm)+b*(p.Y-ym) > 0
}

// area1 brute-force samples the area under the line p1->p2 that falls
// within pixel p, using a SamplesDiag x SamplesDiag grid. Diagonal SMAA
// patterns don't admit the closed-form trapezoid integral orthogonal
// patterns do, since the dividing line can pass through a pixel at any
// angle, not just axis-aligned slopes.
func area1(p1, p2 Vec2, p gridPos) float64 {
	count := 0
	for x := 0; x < SamplesDiag; x++ {
		for y := 0; y < SamplesDiag; y++ {
			sample := Vec2{
				X: float64(p.X) + float64(x)/float64(SamplesDiag-1),
				Y: float64(p.Y) + float64(y)/float64(SamplesDiag-1),
			}
			if inside(p1, p2, sample) {
				count++
			}
		}
	}
	return float64(count) / float64(SamplesDiag*SamplesDiag)
}

// diagArea computes the area under the line p1->p2 (including the pixel and
// its diagonal opposite), offsetting each endpoint that corresponds to a
// crossing edge in pattern by the sub-pixel offset.
func diagArea(pattern diagPattern, p1, p2 Vec2, left int, offset Vec2) Vec2 {
	e := EdgesDiag[pattern]
	if e.X > 0 {
		p1 = p1.add(offset)
	}
	if e.Y > 0 {
		p2 = p2.add(offset)
	}
	a1 := area1(p1, p2, gridPos{X: 1 + left, Y: left})
	a2 := area1(p1, p2, gridPos{X: 1 + left, Y: 1 + left})
	return Vec2{1.0 - a1, a2}
}

// areaDiag computes the area for a diagonal pattern given distances to the
// left and right crossing edges, biased by a sub-pixel offset. Unlike
// orthogonal patterns, the "no crossing edge" pattern must still be
// filtered here, and line endings are ambiguous between adjacent patterns,
// so each case blends two candidate endpoint placements.
func areaDiag(pattern diagPattern, left, right int, offset Vec2) Vec2 {
	dist := float64(left + right + 1)
	d := Vec2{X: dist, Y: dist}

	blend := func(p1a, p2a, p1b, p2b Vec2) Vec2 {
		a1 := diagArea(pattern, p1a, p2a, left, offset)
		a2 := diagArea(pattern, p1b, p2b, left, offset)
		return a1.add(a2).scale(0.5)
	}

	switch pattern {
	case EdgesDiagNoneNone:
		return blend(Vec2{1.0, 1.0}, Vec2{1.0, 1.0}.add(d), Vec2{1.0, 0.0}, Vec2{1.0, 0.0}.add(d))
	case EdgesDiagVertNone:
		return blend(Vec2{1.0, 0.0}, Vec2{0.0, 0.0}.add(d), Vec2{1.0, 0.0}, Vec2{1.0, 0.0}.add(d))
	case EdgesDiagNoneHorz:
		return blend(Vec2{0.0, 0.0}, Vec2{1.0, 0.0}.add(d), Vec2{1.0, 0.0}, Vec2{1.0, 0.0}.add(d))
	case EdgesDiagVertHorz:
		return diagArea(pattern, Vec2{1.0, 0.0}, Vec2{1.0, 0.0}.add(d), left, offset)
	case EdgesDiagHorzNone:
		return blend(Vec2{1.0, 1.0}, Vec2{0.0, 0.0}.add(d), Vec2{1.0, 1.0}, Vec2{1.0, 0.0}.add(d))
	case EdgesDiagBothNone:
		return blend(Vec2{1.0, 1.0}, Vec2{0.0, 0.0}.add(d), Vec2{1.0, 0.0}, Vec2{1.0, 0.0}.add(d))
	case EdgesDiagHorzHorz:
		return diagArea(pattern, Vec2{1.0, 1.0}, Vec2{1.0, 0.0}.add(d), left, offset)
	case EdgesDiagBothHorz:
		return blend(Vec2{1.0, 1.0}, Vec2{1.0, 0.0}.add(d), Vec2{1.0, 0.0}, Vec2{1.0, 0.0}.add(d))
	case EdgesDiagNoneVert:
		return blend(Vec2{0.0, 0.0}, Vec2{1.0, 1.0}.add(d), Vec2{1.0, 0.0}, Vec2{1.0, 1.0}.add(d))
	case EdgesDiagVertVert:
		return diagArea(pattern, Vec2{1.0, 0.0}, Vec2{1.0, 1.0}.add(d), left, offset)
	case EdgesDiagNoneBoth:
		return blend(Vec2{0.0, 0.0}, Vec2{1.0, 1.0}.add(d), Vec2{1.0, 0.0}, Vec2{1.0, 0.0}.add(d))
	case EdgesDiagVertBoth:
		return blend(Vec2{1.0, 0.0}, Vec2{1.0, 1.0}.add(d), Vec2{1.0, 0.0}, Vec2{1.0, 0.0}.add(d))
	case EdgesDiagHorzVert:
		return diagArea(pattern, Vec2{1.0, 1.0}, Vec2{1.0, 1.0}.add(d), left, offset)
	case EdgesDiagBothVert:
		return blend(Vec2{1.0, 1.0}, Vec2{1.0, 1.0}.add(d), Vec2{1.0, 0.0}, Vec2{1.0, 1.0}.add(d))
	case EdgesDiagHorzBoth:
		return blend(Vec2{1.0, 1.0}, Vec2{1.0, 1.0}.add(d), Vec2{1.0, 1.0}, Vec2{1.0, 0.0}.add(d))
	case EdgesDiagBothBoth:
		return blend(Vec2{1.0, 1.0}, Vec2{1.0, 1.0}.add(d), Vec2{1.0, 0.0}, Vec2{1.0, 0.0}.add(d))
	}

	return Vec2{0.0, 0.0}
}
