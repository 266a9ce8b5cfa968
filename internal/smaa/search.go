package smaa

import "github.com/strauhmanis/smaa/internal/smaaimg"

// Edges around a pixel (x, y):
//
//   - west  (left)  : R in (x, y)
//   - north (top)   : G in (x, y)
//   - east  (right) : R in (x + 1, y)
//   - south (bottom): G in (x, y + 1)

// searchDiag1 follows a candidate diagonal line from (x, y) toward the
// bottom-left (dir = -1) or top-right (dir = +1), stepping (+dir, -dir) per
// iteration. It stops where the north edge clears or a west edge clears
// (the line end), returning the x coordinate where the search stopped.
// found reports whether an actual line end terminated the search, as
// opposed to running out of search budget.
func (s *Shader) searchDiag1(edgesImage smaaimg.Reader, x, y, dir int) (end int, found bool) {
	stop := x + s.cfg.MaxSearchStepsDiag*dir

	for x != stop {
		x += dir
		y -= dir
		e := edgesImage.GetPixel(x, y)
		if e[1] == 0.0 { // north
			return x - dir, true
		}
		if e[0] == 0.0 { // west
			// Ended with north edge if dy > 0 (i.e. dir < 0).
			if dir < 0 {
				return x, true
			}
			return x - dir, true
		}
	}

	return x - dir, false
}

// searchDiag2 is searchDiag1's mirror along the other diagonal, stepping
// (+dir, +dir) and checking the east edge (west of x+1) instead of the
// west edge.
func (s *Shader) searchDiag2(edgesImage smaaimg.Reader, x, y, dir int) (end int, found bool) {
	stop := x + s.cfg.MaxSearchStepsDiag*dir

	for x != stop {
		x += dir
		y += dir
		e := edgesImage.GetPixel(x, y)
		if e[1] == 0.0 { // north
			return x - dir, true
		}
		e = edgesImage.GetPixel(x+1, y)
		if e[0] == 0.0 { // east
			// Ended with north edge if dy > 0 (i.e. dir > 0).
			if dir > 0 {
				return x, true
			}
			return x - dir, true
		}
	}

	return x - dir, false
}

// calculateDiagWeights searches for diagonal patterns crossing (x, y)'s
// north edge, in both diagonal orientations, and returns the corresponding
// blending weights. Up to two distinct diagonal lines can cross a pixel,
// so both orientations can contribute.
func (s *Shader) calculateDiagWeights(edgesImage smaaimg.Reader, x, y int, edges [4]float32, subsampleIndices []int) [2]float32 {
	var weights [2]float32

	if s.cfg.MaxSearchStepsDiag <= 0 {
		return weights
	}

	// Search for the line ends:
	//
	//                        |
	//                     2--3
	//                     |
	//                  1--2
	//                  |    d2
	//               0--1
	//               |
	//            0==0   Start from both ends of (x, y)'s north edge
	//            |xy
	//         1--0
	//   d1    |
	//      2--1
	//      |
	//   3--2
	//   |
	var d1, d2 int
	var found1, found2 bool
	if edges[0] > 0.0 { // west of (x, y)
		var end int
		end, found1 = s.searchDiag1(edgesImage, x, y, -1)
		d1 = x - end
	} else {
		d1 = 0
		found1 = true
	}
	end, found2 := s.searchDiag1(edgesImage, x, y, 1)
	d2 = end - x

	if d1+d2 > 2 { // d1 + d2 + 1 > 3
		// Fetch the crossing edges. e1/e2 code:
		//  0: none
		//  1: vertical   (e1: down, e2: up)
		//  2: horizontal (e1: left, e2: right)
		//  3: both
		e1, e2 := 0, 0
		if found1 {
			coX, coY := x-d1, y+d1
			if c := edgesImage.GetPixel(coX-1, coY); c[1] > 0.0 {
				e1 += 2 // ...->left->left
			}
			if c := edgesImage.GetPixel(coX, coY); c[0] > 0.0 {
				e1 += 1 // ...->left->down->down
			}
		}
		if found2 {
			coX, coY := x+d2, y-d2
			if c := edgesImage.GetPixel(coX+1, coY); c[1] > 0.0 {
				e2 += 2 // ...->right->right
			}
			if c := edgesImage.GetPixel(coX+1, coY-1); c[0] > 0.0 {
				e2 += 1 // ...->right->up->up
			}
		}

		a := s.areaDiag(d1, d2, e1, e2, subsampleIndex(subsampleIndices, 2))
		weights[0] += a[0]
		weights[1] += a[1]
	}

	// Search for the line ends in the other orientation:
	//
	//   |
	//   3--2
	//      |
	//      2--1
	//   d1    |
	//         1--0
	//            |
	//            0==0   Start from both ends of (x, y)'s north edge
	//             xy|
	//               0--1
	//                  |    d2
	//                  1--2
	//                     |
	//                     2--3
	//                        |
	end, found1 = s.searchDiag2(edgesImage, x, y, -1)
	d1 = x - end
	if e := edgesImage.GetPixel(x+1, y); e[0] > 0.0 { // east of (x, y)
		end, found2 = s.searchDiag2(edgesImage, x, y, 1)
		d2 = end - x
	} else {
		d2 = 0
		found2 = true
	}

	if d1+d2 > 2 { // d1 + d2 + 1 > 3
		// e1/e2 code:
		//  0: none
		//  1: vertical   (e1: up, e2: down)
		//  2: horizontal (e1: left, e2: right)
		//  3: both
		e1, e2 := 0, 0
		if found1 {
			coX, coY := x-d1, y-d1
			if c := edgesImage.GetPixel(coX-1, coY); c[1] > 0.0 {
				e1 += 2 // ...->left->left
			}
			if c := edgesImage.GetPixel(coX, coY-1); c[0] > 0.0 {
				e1 += 1 // ...->left->up->up
			}
		}
		if found2 {
			coX, coY := x+d2, y+d2
			c := edgesImage.GetPixel(coX+1, coY)
			if c[1] > 0.0 {
				e2 += 2 // ...->right->right
			}
			if c[0] > 0.0 {
				e2 += 1 // ...->right->down->down
			}
		}

		a := s.areaDiag(d1, d2, e1, e2, subsampleIndex(subsampleIndices, 3))
		weights[0] += a[1]
		weights[1] += a[0]
	}

	return weights
}

// isVerticalSearchUnneeded reports whether the left neighbor's own diagonal
// search already resolved the diagonal this pixel's west edge belongs to,
// in which case the vertical orthogonal search would double-count it.
func (s *Shader) isVerticalSearchUnneeded(edgesImage smaaimg.Reader, x, y int) bool {
	if s.cfg.MaxSearchStepsDiag <= 0 {
		return false
	}

	// Only the second diagonal orientation matters here: it is the one a
	// west edge at (x, y) shares with the north edge of (x-1, y).
	var d1, d2 int
	if e := edgesImage.GetPixel(x-1, y); e[1] > 0.0 { // north of (x-1, y)
		end, _ := s.searchDiag2(edgesImage, x-1, y, -1)
		d1 = x - end
	}
	end, _ := s.searchDiag2(edgesImage, x-1, y, 1)
	d2 = end - x

	return d1+d2 > 2 // d1 + d2 + 1 > 3
}

// searchXLeft walks left from (x, y) along the run of north-edge texels,
// stopping where the north edge ends or a crossing west edge breaks the
// line, and returns the x coordinate of the line's left end.
func (s *Shader) searchXLeft(edgesImage smaaimg.Reader, x, y int) int {
	end := x - s.cfg.MaxSearchSteps

	for x > end {
		e := edgesImage.GetPixel(x, y)
		if e[1] == 0.0 { // north edge not activated
			break
		}
		if e[0] != 0.0 { // bottom crossing edge breaks the line
			return x
		}
		e = edgesImage.GetPixel(x, y-1)
		if e[0] != 0.0 { // top crossing edge breaks the line
			return x
		}
		x--
	}

	return x + 1
}

// searchXRight is searchXLeft's rightward mirror.
func (s *Shader) searchXRight(edgesImage smaaimg.Reader, x, y int) int {
	end := x + s.cfg.MaxSearchSteps

	for x < end {
		x++
		e := edgesImage.GetPixel(x, y)
		if e[1] == 0.0 || e[0] != 0.0 {
			break
		}
		e = edgesImage.GetPixel(x, y-1)
		if e[0] != 0.0 {
			break
		}
	}

	return x - 1
}

// searchYUp is searchXLeft's vertical analogue, walking up the column of
// west-edge texels.
func (s *Shader) searchYUp(edgesImage smaaimg.Reader, x, y int) int {
	end := y - s.cfg.MaxSearchSteps

	for y > end {
		e := edgesImage.GetPixel(x, y)
		if e[0] == 0.0 { // west edge not activated
			break
		}
		if e[1] != 0.0 { // right crossing edge breaks the line
			return y
		}
		e = edgesImage.GetPixel(x-1, y)
		if e[1] != 0.0 { // left crossing edge breaks the line
			return y
		}
		y--
	}

	return y + 1
}

// searchYDown is searchYUp's downward mirror.
func (s *Shader) searchYDown(edgesImage smaaimg.Reader, x, y int) int {
	end := y + s.cfg.MaxSearchSteps

	for y < end {
		y++
		e := edgesImage.GetPixel(x, y)
		if e[0] == 0.0 || e[1] != 0.0 {
			break
		}
		e = edgesImage.GetPixel(x-1, y)
		if e[1] != 0.0 {
			break
		}
	}

	return y - 1
}

// detectHorizontalCornerPattern attenuates the horizontal blending weights
// near L-shaped corners, where full-strength blending would eat into the
// corner. left/right are the line ends found by searchXLeft/searchXRight.
func (s *Shader) detectHorizontalCornerPattern(edgesImage smaaimg.Reader, weights *[4]float32, left, right, y, d1, d2 int) {
	factor := [2]float32{1.0, 1.0}
	rounding := 1.0 - float32(s.cfg.CornerRounding)/100.0

	// Reduce blending for pixels in the center of a line.
	if d1 == d2 {
		rounding *= 0.5
	}

	// Near the left corner
	if d1 <= d2 {
		e := edgesImage.GetPixel(left, y+1)
		factor[0] -= rounding * e[0]
		e = edgesImage.GetPixel(left, y-2)
		factor[1] -= rounding * e[0]
	}
	// Near the right corner
	if d1 >= d2 {
		e := edgesImage.GetPixel(right+1, y+1)
		factor[0] -= rounding * e[0]
		e = edgesImage.GetPixel(right+1, y-2)
		factor[1] -= rounding * e[0]
	}

	weights[0] *= saturate(factor[0])
	weights[1] *= saturate(factor[1])
}

// detectVerticalCornerPattern is detectHorizontalCornerPattern's 90-degree
// rotated counterpart, applied to the vertical weight pair.
func (s *Shader) detectVerticalCornerPattern(edgesImage smaaimg.Reader, weights *[4]float32, top, bottom, x, d1, d2 int) {
	factor := [2]float32{1.0, 1.0}
	rounding := 1.0 - float32(s.cfg.CornerRounding)/100.0

	if d1 == d2 {
		rounding *= 0.5
	}

	// Near the top corner
	if d1 <= d2 {
		e := edgesImage.GetPixel(x+1, top)
		factor[0] -= rounding * e[1]
		e = edgesImage.GetPixel(x-2, top)
		factor[1] -= rounding * e[1]
	}
	// Near the bottom corner
	if d1 >= d2 {
		e := edgesImage.GetPixel(x+1, bottom+1)
		factor[0] -= rounding * e[1]
		e = edgesImage.GetPixel(x-2, bottom+1)
		factor[1] -= rounding * e[1]
	}

	weights[2] *= saturate(factor[0])
	weights[3] *= saturate(factor[1])
}
