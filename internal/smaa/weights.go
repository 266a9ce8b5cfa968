package smaa

import "github.com/strauhmanis/smaa/internal/smaaimg"

// subsampleIndex reads slot i of the optional subsample index vector,
// returning 0 (the non-subsampled slice) when the caller passed nil.
func subsampleIndex(indices []int, i int) int {
	if indices == nil {
		return 0
	}
	return indices[i]
}

// BlendingWeightCalculation is the second SMAA pass: it reads the edges
// image produced by pass 1 and, for each edge pixel, searches outward along
// its line to classify the local pattern and look up how much of the pixel
// the real (pre-rasterization) edge covered. The result channels are
// [0]=top, [1]=bottom, [2]=left, [3]=right weights, each in [0,1].
//
// subsampleIndices selects per-direction area-table slices for subpixel
// rendering; pass nil for plain single-frame SMAA 1x.
func (s *Shader) BlendingWeightCalculation(x, y int, edgesImage smaaimg.Reader, subsampleIndices []int) [4]float32 {
	var weights [4]float32

	edges := edgesImage.GetPixel(x, y)

	if edges[1] > 0.0 { // Edge at north
		if s.cfg.EnableDiagDetection {
			// Diagonals have both north and west edges, so calculating
			// weights for them in one of the boundaries is enough.
			diag := s.calculateDiagWeights(edgesImage, x, y, edges, subsampleIndices)
			weights[0] = diag[0]
			weights[1] = diag[1]

			// We give priority to diagonals: if a diagonal was found, skip
			// horizontal/vertical processing.
			if weights[0]+weights[1] != 0.0 {
				return weights
			}
		}

		// Find the distance to the left and the right:
		//
		//   <- left  right ->
		//   2  1  0  0  1  2
		//   |  |  |  |  |  |
		// --2--1--0==0--1--2--
		//   |  |  |xy|  |  |
		//   2  1  0  0  1  2
		left := s.searchXLeft(edgesImage, x, y)
		right := s.searchXRight(edgesImage, x, y)
		d1, d2 := x-left, right-x

		// Fetch the left and right crossing edges. e1/e2 code:
		//  0: none, 1: top, 2: bottom, 3: both
		e1, e2 := 0, 0
		if c := edgesImage.GetPixel(left, y-1); c[0] > 0.0 {
			e1 += 1
		}
		if c := edgesImage.GetPixel(left, y); c[0] > 0.0 {
			e1 += 2
		}
		if c := edgesImage.GetPixel(right+1, y-1); c[0] > 0.0 {
			e2 += 1
		}
		if c := edgesImage.GetPixel(right+1, y); c[0] > 0.0 {
			e2 += 2
		}

		a := s.area(d1, d2, e1, e2, subsampleIndex(subsampleIndices, 1))
		weights[0] = a[0]
		weights[1] = a[1]

		if s.cfg.EnableCornerDetection {
			s.detectHorizontalCornerPattern(edgesImage, &weights, left, right, y, d1, d2)
		}
	}

	if edges[0] > 0.0 { // Edge at west
		// The left neighbor's diagonal search may have already covered
		// this west edge.
		if s.cfg.EnableDiagDetection && s.isVerticalSearchUnneeded(edgesImage, x, y) {
			return weights
		}

		// Find the distance to the top and the bottom:
		//      |
		//   2--2--2
		//      |
		//   1--1--1   ^
		//      |      |
		//   0--0--0  top
		//     ||xy
		//   0--0--0 bottom
		//      |      |
		//   1--1--1   v
		//      |
		//   2--2--2
		//      |
		top := s.searchYUp(edgesImage, x, y)
		bottom := s.searchYDown(edgesImage, x, y)
		d1, d2 := y-top, bottom-y

		// Fetch the top and bottom crossing edges. e1/e2 code:
		//  0: none, 1: left, 2: right, 3: both
		e1, e2 := 0, 0
		if c := edgesImage.GetPixel(x-1, top); c[1] > 0.0 {
			e1 += 1
		}
		if c := edgesImage.GetPixel(x, top); c[1] > 0.0 {
			e1 += 2
		}
		if c := edgesImage.GetPixel(x-1, bottom+1); c[1] > 0.0 {
			e2 += 1
		}
		if c := edgesImage.GetPixel(x, bottom+1); c[1] > 0.0 {
			e2 += 2
		}

		a := s.area(d1, d2, e1, e2, subsampleIndex(subsampleIndices, 0))
		weights[2] = a[0]
		weights[3] = a[1]

		if s.cfg.EnableCornerDetection {
			s.detectVerticalCornerPattern(edgesImage, &weights, top, bottom, x, d1, d2)
		}
	}

	return weights
}
