// Package smaa implements the three SMAA passes — edge detection, blending
// weight calculation, and neighborhood blending — as a Shader bound to a
// configuration and a pair of area lookup tables, one exported method per
// pass variant.
package smaa

import (
	"math"

	"github.com/strauhmanis/smaa/internal/config"
	"github.com/strauhmanis/smaa/internal/smaaimg"
)

// Non-configurable constants fixed by the area lookup table layout.
const (
	areaTexSize            = 80 // 4 * SizeDiag == 5 * SizeOrtho
	areaTexMaxDistance     = 16
	areaTexMaxDistanceDiag = 20
)

// areaTexOrthoBlock maps a 2-bit crossing-edge code to the orthogonal
// pattern block it selects. The generator lays the 16 orthogonal patterns
// out on a 4x4 grid at slots {0, 1, 3, 4}, so the lookup has to route the
// dense code through the same table before scaling by the block size; the
// diagonal table packs its blocks densely at {0, 1, 2, 3} and needs no
// indirection.
var areaTexOrthoBlock = [4]int{0, 1, 3, 4}

var rgbWeights = [3]float32{0.2126, 0.7152, 0.0722}

// Shader evaluates the SMAA passes against a fixed configuration and area
// lookup tables. It holds no per-image state, so a single Shader can be
// reused concurrently across goroutines processing disjoint pixel ranges of
// the same pass.
type Shader struct {
	cfg          *config.Config
	areaTexOrtho []float32 // flattened (areaTexSize x slices*areaTexSize x 2) grid
	areaTexDiag  []float32
	orthoHeight  int // table height in texels: areaTexSize per subsample slice
	diagHeight   int
	enableReproj bool
	reprojWeight float32
}

// New builds a Shader from cfg and the flattened orthogonal/diagonal area
// tables produced by internal/areatex (FlattenOrtho/FlattenDiag). Tables
// generated without subsampling hold a single slice each and every
// subsample index resolves to it; tables generated with subsampling stack
// 7 orthogonal and 5 diagonal slices along y, selected by the subsample
// indices passed to BlendingWeightCalculation. Reprojection is read from
// cfg.EnableReprojection/ReprojectionWeightScale.
func New(cfg *config.Config, areaTexOrtho, areaTexDiag []float32) *Shader {
	return &Shader{
		cfg:          cfg,
		areaTexOrtho: areaTexOrtho,
		areaTexDiag:  areaTexDiag,
		orthoHeight:  len(areaTexOrtho) / (2 * areaTexSize),
		diagHeight:   len(areaTexDiag) / (2 * areaTexSize),
		enableReproj: cfg.EnableReprojection,
		reprojWeight: cfg.ReprojectionWeightScale,
	}
}

func step(edge, x float32) float32 {
	if x < edge {
		return 0.0
	}
	return 1.0
}

func saturate(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func lerp(a, b, p float32) float32 {
	return a + (b-a)*p
}

func bilinear(c00, c10, c01, c11, x, y float32) float32 {
	return (c00*(1-x)+c10*x)*(1-y) + (c01*(1-x)+c11*x)*y
}

func rgb2bw(color [4]float32) float32 {
	return rgbWeights[0]*color[0] + rgbWeights[1]*color[1] + rgbWeights[2]*color[2]
}

func colorDelta(a, b [4]float32) float32 {
	return maxf(maxf(absf(a[0]-b[0]), absf(a[1]-b[1])), absf(a[2]-b[2]))
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// sampleBilinear samples image at the fractional coordinate (x, y) with
// full 2-D bilinear filtering, used by Resolve's reprojection path.
func sampleBilinear(image smaaimg.Reader, x, y float32) [4]float32 {
	ix := float32(math.Floor(float64(x)))
	iy := float32(math.Floor(float64(y)))
	fx, fy := x-ix, y-iy
	X, Y := int(ix), int(iy)

	c00 := image.GetPixel(X, Y)
	c10 := image.GetPixel(X+1, Y)
	c01 := image.GetPixel(X, Y+1)
	c11 := image.GetPixel(X+1, Y+1)

	var out [4]float32
	for i := 0; i < 4; i++ {
		out[i] = bilinear(c00[i], c10[i], c01[i], c11[i], fx, fy)
	}
	return out
}

// sampleBilinearVertical samples image one axis at a time along y, offset
// by yoffset pixels from (x, y) — the 1-D analogue neighborhood blending
// uses to mix a pixel with its chosen vertical neighbor.
func sampleBilinearVertical(image smaaimg.Reader, x, y int, yoffset float32) [4]float32 {
	iy := float32(math.Floor(float64(yoffset)))
	fy := yoffset - iy
	y += int(iy)

	c00 := image.GetPixel(x, y)
	c01 := image.GetPixel(x, y+1)

	var out [4]float32
	for i := 0; i < 4; i++ {
		out[i] = lerp(c00[i], c01[i], fy)
	}
	return out
}

// sampleBilinearHorizontal is sampleBilinearVertical's horizontal twin.
func sampleBilinearHorizontal(image smaaimg.Reader, x, y int, xoffset float32) [4]float32 {
	ix := float32(math.Floor(float64(xoffset)))
	fx := xoffset - ix
	x += int(ix)

	c00 := image.GetPixel(x, y)
	c10 := image.GetPixel(x+1, y)

	var out [4]float32
	for i := 0; i < 4; i++ {
		out[i] = lerp(c00[i], c10[i], fx)
	}
	return out
}

func clampAreaTexCoord(x, limit int) int {
	if x < 0 {
		return 0
	}
	if x >= limit {
		return limit - 1
	}
	return x
}

func sampleAreaTexTexel(table []float32, x, y, height int) [2]float32 {
	cx := clampAreaTexCoord(x, areaTexSize)
	cy := clampAreaTexCoord(y, height)
	i := (cx + cy*areaTexSize) * 2
	return [2]float32{table[i], table[i+1]}
}

func bilinearAreaSample(table []float32, x, y float32, height int) [2]float32 {
	ix := float32(math.Floor(float64(x)))
	iy := float32(math.Floor(float64(y)))
	fx, fy := x-ix, y-iy
	X, Y := int(ix), int(iy)

	w00 := sampleAreaTexTexel(table, X, Y, height)
	w10 := sampleAreaTexTexel(table, X+1, Y, height)
	w01 := sampleAreaTexTexel(table, X, Y+1, height)
	w11 := sampleAreaTexTexel(table, X+1, Y+1, height)

	return [2]float32{
		bilinear(w00[0], w10[0], w01[0], w11[0], fx, fy),
		bilinear(w00[1], w10[1], w01[1], w11[1], fx, fy),
	}
}

// area looks up the orthogonal area for a distance/crossing-edge
// combination. Distances are compressed quadratically in the table, so the
// lookup applies sqrt to recover the texel coordinate — the decision fixed
// for the two-encoding ambiguity between runtime and generator. offset
// selects a subsample slice stacked along y.
func (s *Shader) area(d1, d2, e1, e2, offset int) [2]float32 {
	x := float32(areaTexMaxDistance*areaTexOrthoBlock[e1]) + float32(math.Sqrt(float64(d1)))
	y := float32(areaTexMaxDistance*areaTexOrthoBlock[e2]) + float32(math.Sqrt(float64(d2)))

	// Move to the proper slice, according to the subpixel offset:
	y += float32(areaTexSize * offset)

	return bilinearAreaSample(s.areaTexOrtho, x, y, s.orthoHeight)
}

// areaDiag looks up the diagonal area for a distance/crossing-edge
// combination. Diagonal distances are not compressed: the brute-force
// sampled table is indexed directly by integer distance.
func (s *Shader) areaDiag(d1, d2, e1, e2, offset int) [2]float32 {
	x := float32(areaTexMaxDistanceDiag*e1 + d1)
	y := float32(areaTexMaxDistanceDiag*e2 + d2)

	y += float32(areaTexSize * offset)

	return bilinearAreaSample(s.areaTexDiag, x, y, s.diagHeight)
}

// calculatePredicatedThreshold adjusts the luma/color edge detection
// threshold locally, lowering it wherever an edge is found in a secondary
// predication image so the global threshold can otherwise be raised.
func (s *Shader) calculatePredicatedThreshold(x, y int, predication smaaimg.Reader) (thresholdLeft, thresholdTop float32) {
	here := predication.GetPixel(x, y)
	left := predication.GetPixel(x-1, y)
	top := predication.GetPixel(x, y-1)

	edgeLeft := step(s.cfg.PredicationThreshold, absf(here[0]-left[0]))
	edgeTop := step(s.cfg.PredicationThreshold, absf(here[0]-top[0]))

	scaled := s.cfg.PredicationScale * s.cfg.Threshold
	thresholdLeft = scaled * (1.0 - s.cfg.PredicationStrength*edgeLeft)
	thresholdTop = scaled * (1.0 - s.cfg.PredicationStrength*edgeTop)
	return
}

// LumaEdgeDetection computes the edges channel for one pixel from luma
// deltas against the left and top neighbors, with local contrast
// adaptation to discard edges overwhelmed by a stronger neighboring edge.
// colorImage must hold gamma-corrected (non-sRGB) color.
func (s *Shader) LumaEdgeDetection(x, y int, colorImage, predicationImage smaaimg.Reader) [4]float32 {
	thresholdLeft, thresholdTop := s.cfg.Threshold, s.cfg.Threshold
	if s.cfg.EnablePredication && predicationImage != nil {
		thresholdLeft, thresholdTop = s.calculatePredicatedThreshold(x, y, predicationImage)
	}

	L := rgb2bw(colorImage.GetPixel(x, y))
	Lleft := rgb2bw(colorImage.GetPixel(x-1, y))
	Ltop := rgb2bw(colorImage.GetPixel(x, y-1))
	Dleft := absf(L - Lleft)
	Dtop := absf(L - Ltop)

	edges := [4]float32{step(thresholdLeft, Dleft), step(thresholdTop, Dtop), 0.0, 1.0}
	if edges[0] == 0.0 && edges[1] == 0.0 {
		return edges
	}

	Lright := rgb2bw(colorImage.GetPixel(x+1, y))
	Lbottom := rgb2bw(colorImage.GetPixel(x, y+1))
	Dright := absf(L - Lright)
	Dbottom := absf(L - Lbottom)

	maxDelta := maxf(maxf(Dleft, Dright), maxf(Dtop, Dbottom))

	if edges[0] != 0.0 {
		Lleftleft := rgb2bw(colorImage.GetPixel(x-2, y))
		Dleftleft := absf(Lleft - Lleftleft)
		maxDelta = maxf(maxDelta, Dleftleft)
		if maxDelta > s.cfg.LocalContrastAdaptationFactor*Dleft {
			edges[0] = 0.0
		}
	}

	if edges[1] != 0.0 {
		Ltoptop := rgb2bw(colorImage.GetPixel(x, y-2))
		Dtoptop := absf(Ltop - Ltoptop)
		maxDelta = maxf(maxDelta, Dtoptop)
		if maxDelta > s.cfg.LocalContrastAdaptationFactor*Dtop {
			edges[1] = 0.0
		}
	}

	return edges
}

// ColorEdgeDetection is LumaEdgeDetection's full-color counterpart: edges
// are found from the maximum per-channel delta instead of luma delta,
// catching some edges luma alone would miss at a higher cost.
func (s *Shader) ColorEdgeDetection(x, y int, colorImage, predicationImage smaaimg.Reader) [4]float32 {
	thresholdLeft, thresholdTop := s.cfg.Threshold, s.cfg.Threshold
	if s.cfg.EnablePredication && predicationImage != nil {
		thresholdLeft, thresholdTop = s.calculatePredicatedThreshold(x, y, predicationImage)
	}

	C := colorImage.GetPixel(x, y)
	Cleft := colorImage.GetPixel(x-1, y)
	Ctop := colorImage.GetPixel(x, y-1)
	Dleft := colorDelta(C, Cleft)
	Dtop := colorDelta(C, Ctop)

	edges := [4]float32{step(thresholdLeft, Dleft), step(thresholdTop, Dtop), 0.0, 1.0}
	if edges[0] == 0.0 && edges[1] == 0.0 {
		return edges
	}

	Cright := colorImage.GetPixel(x+1, y)
	Cbottom := colorImage.GetPixel(x, y+1)
	Dright := colorDelta(C, Cright)
	Dbottom := colorDelta(C, Cbottom)

	maxDelta := maxf(maxf(Dleft, Dright), maxf(Dtop, Dbottom))

	if edges[0] != 0.0 {
		Cleftleft := colorImage.GetPixel(x-2, y)
		Dleftleft := colorDelta(Cleft, Cleftleft)
		maxDelta = maxf(maxDelta, Dleftleft)
		if maxDelta > s.cfg.LocalContrastAdaptationFactor*Dleft {
			edges[0] = 0.0
		}
	}

	if edges[1] != 0.0 {
		Ctoptop := colorImage.GetPixel(x, y-2)
		Dtoptop := colorDelta(Ctop, Ctoptop)
		maxDelta = maxf(maxDelta, Dtoptop)
		if maxDelta > s.cfg.LocalContrastAdaptationFactor*Dtop {
			edges[1] = 0.0
		}
	}

	return edges
}

// DepthEdgeDetection finds edges from depth discontinuities against the
// left and top neighbors; unlike the luma/color variants it has no local
// contrast adaptation pass, since depth discontinuities are unambiguous.
func (s *Shader) DepthEdgeDetection(x, y int, depthImage smaaimg.Reader) [4]float32 {
	here := depthImage.GetPixel(x, y)
	left := depthImage.GetPixel(x-1, y)
	top := depthImage.GetPixel(x, y-1)

	return [4]float32{
		step(s.cfg.DepthThreshold, absf(here[0]-left[0])),
		step(s.cfg.DepthThreshold, absf(here[0]-top[0])),
		0.0,
		1.0,
	}
}
