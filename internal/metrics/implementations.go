package metrics

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"
)

// toGray returns a single-channel view of m, converting only if necessary.
// Callers must call release() on the returned handle even when no
// conversion happened, since it is always safe to call Close on a Mat that
// shares memory with its source — gocv treats the no-op case the same way.
func toGray(m gocv.Mat) (gray gocv.Mat, release func()) {
	if m.Channels() == 1 {
		return m, func() {}
	}
	g := gocv.NewMat()
	gocv.CvtColor(m, &g, gocv.ColorBGRToGray)
	return g, g.Close
}

func checkComparable(original, processed gocv.Mat) error {
	if original.Empty() || processed.Empty() {
		return fmt.Errorf("metrics: empty image")
	}
	if original.Rows() != processed.Rows() || original.Cols() != processed.Cols() {
		return fmt.Errorf("metrics: dimension mismatch: %dx%d vs %dx%d",
			original.Cols(), original.Rows(), processed.Cols(), processed.Rows())
	}
	return nil
}

func meanSquaredError(a, b gocv.Mat) float64 {
	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(a, b, &diff)

	sq := gocv.NewMat()
	defer sq.Close()
	diff.ConvertTo(&sq, gocv.MatTypeCV64F)
	gocv.Multiply(sq, sq, &sq)

	return meanOf(sq)
}

func meanOf(m gocv.Mat) float64 {
	mean := m.Mean()
	return mean.Val1
}

// PSNR is Peak Signal-to-Noise Ratio in dB, computed from luma MSE.
type PSNR struct{}

func newPSNR() *PSNR { return &PSNR{} }

func (p *PSNR) Calculate(original, processed gocv.Mat) (float64, error) {
	if err := checkComparable(original, processed); err != nil {
		return 0, err
	}
	g1, rel1 := toGray(original)
	defer rel1()
	g2, rel2 := toGray(processed)
	defer rel2()

	mse := meanSquaredError(g1, g2)
	if mse == 0 {
		return math.Inf(1), nil
	}
	return 20 * math.Log10(255.0/math.Sqrt(mse)), nil
}

func (p *PSNR) Name() string            { return "psnr" }
func (p *PSNR) Description() string     { return "peak signal-to-noise ratio against the source image" }
func (p *PSNR) Range() (float64, float64) { return 0, 60 }
func (p *PSNR) HigherIsBetter() bool    { return true }

// MSE is the mean squared pixel error against the source image, on the
// luma channel.
type MSE struct{}

func newMSE() *MSE { return &MSE{} }

func (m *MSE) Calculate(original, processed gocv.Mat) (float64, error) {
	if err := checkComparable(original, processed); err != nil {
		return 0, err
	}
	g1, rel1 := toGray(original)
	defer rel1()
	g2, rel2 := toGray(processed)
	defer rel2()
	return meanSquaredError(g1, g2), nil
}

func (m *MSE) Name() string             { return "mse" }
func (m *MSE) Description() string      { return "mean squared luma error against the source image" }
func (m *MSE) Range() (float64, float64) { return 0, 65025 }
func (m *MSE) HigherIsBetter() bool     { return false }

// SSIM is a windowed structural similarity index, following the Wang et al.
// formulation via Gaussian-blurred local statistics.
type SSIM struct{}

func newSSIM() *SSIM { return &SSIM{} }

const (
	ssimC1 = 6.5025  // (0.01 * 255)^2
	ssimC2 = 58.5225 // (0.03 * 255)^2
)

func (s *SSIM) Calculate(original, processed gocv.Mat) (float64, error) {
	if err := checkComparable(original, processed); err != nil {
		return 0, err
	}
	g1, rel1 := toGray(original)
	defer rel1()
	g2, rel2 := toGray(processed)
	defer rel2()

	return ssimMap(g1, g2), nil
}

func blur(m gocv.Mat) gocv.Mat {
	out := gocv.NewMat()
	gocv.GaussianBlur(m, &out, image.Pt(11, 11), 1.5, 1.5, gocv.BorderDefault)
	return out
}

func ssimMap(img1, img2 gocv.Mat) float64 {
	f1 := gocv.NewMat()
	defer f1.Close()
	img1.ConvertTo(&f1, gocv.MatTypeCV32F)
	f2 := gocv.NewMat()
	defer f2.Close()
	img2.ConvertTo(&f2, gocv.MatTypeCV32F)

	mu1 := blur(f1)
	defer mu1.Close()
	mu2 := blur(f2)
	defer mu2.Close()

	mu1Sq, mu2Sq, mu1Mu2 := gocv.NewMat(), gocv.NewMat(), gocv.NewMat()
	defer mu1Sq.Close()
	defer mu2Sq.Close()
	defer mu1Mu2.Close()
	gocv.Multiply(mu1, mu1, &mu1Sq)
	gocv.Multiply(mu2, mu2, &mu2Sq)
	gocv.Multiply(mu1, mu2, &mu1Mu2)

	f1Sq, f2Sq, f1f2 := gocv.NewMat(), gocv.NewMat(), gocv.NewMat()
	defer f1Sq.Close()
	defer f2Sq.Close()
	defer f1f2.Close()
	gocv.Multiply(f1, f1, &f1Sq)
	gocv.Multiply(f2, f2, &f2Sq)
	gocv.Multiply(f1, f2, &f1f2)

	sigma1Sq := blur(f1Sq)
	defer sigma1Sq.Close()
	gocv.Subtract(sigma1Sq, mu1Sq, &sigma1Sq)

	sigma2Sq := blur(f2Sq)
	defer sigma2Sq.Close()
	gocv.Subtract(sigma2Sq, mu2Sq, &sigma2Sq)

	sigma12 := blur(f1f2)
	defer sigma12.Close()
	gocv.Subtract(sigma12, mu1Mu2, &sigma12)

	numerator1 := gocv.NewMat()
	defer numerator1.Close()
	gocv.AddWeighted(mu1Mu2, 2.0, mu1Mu2, 0.0, ssimC1, &numerator1)

	numerator2 := gocv.NewMat()
	defer numerator2.Close()
	gocv.AddWeighted(sigma12, 2.0, sigma12, 0.0, ssimC2, &numerator2)

	numerator := gocv.NewMat()
	defer numerator.Close()
	gocv.Multiply(numerator1, numerator2, &numerator)

	denominator1 := gocv.NewMat()
	defer denominator1.Close()
	gocv.Add(mu1Sq, mu2Sq, &denominator1)
	gocv.AddWeighted(denominator1, 1.0, denominator1, 0.0, ssimC1, &denominator1)

	denominator2 := gocv.NewMat()
	defer denominator2.Close()
	gocv.Add(sigma1Sq, sigma2Sq, &denominator2)
	gocv.AddWeighted(denominator2, 1.0, denominator2, 0.0, ssimC2, &denominator2)

	denominator := gocv.NewMat()
	defer denominator.Close()
	gocv.Multiply(denominator1, denominator2, &denominator)

	ssim := gocv.NewMat()
	defer ssim.Close()
	gocv.Divide(numerator, denominator, &ssim)

	return meanOf(ssim)
}

func (s *SSIM) Name() string             { return "ssim" }
func (s *SSIM) Description() string      { return "structural similarity index against the source image" }
func (s *SSIM) Range() (float64, float64) { return 0, 1 }
func (s *SSIM) HigherIsBetter() bool     { return true }

// EdgeDensity compares the fraction of Canny-detected edge pixels in the
// filtered image against the source, since SMAA's whole purpose is to
// remove jagged high-frequency edge structure without erasing real edges —
// a ratio well below 1 is expected and healthy; a ratio near or above 1
// means the filter found nothing to smooth.
type EdgeDensity struct{}

func newEdgeDensity() *EdgeDensity { return &EdgeDensity{} }

func (e *EdgeDensity) Calculate(original, processed gocv.Mat) (float64, error) {
	if err := checkComparable(original, processed); err != nil {
		return 0, err
	}
	before := cannyEdgeFraction(original)
	after := cannyEdgeFraction(processed)
	if before == 0 {
		return 1.0, nil
	}
	return after / before, nil
}

func cannyEdgeFraction(m gocv.Mat) float64 {
	gray, release := toGray(m)
	defer release()

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, 50, 150)

	nonZero := gocv.CountNonZero(edges)
	total := edges.Rows() * edges.Cols()
	if total == 0 {
		return 0
	}
	return float64(nonZero) / float64(total)
}

func (e *EdgeDensity) Name() string        { return "edge_density" }
func (e *EdgeDensity) Description() string { return "ratio of Canny edge pixels after filtering to before" }
func (e *EdgeDensity) Range() (float64, float64) { return 0, 2 }
func (e *EdgeDensity) HigherIsBetter() bool      { return false }

// ChangeRatio is the fraction of pixels whose luma moved by more than a
// small tolerance, flagging a filter run that touched far more of the image
// than the edge-adjacent neighborhoods SMAA is supposed to limit itself to.
type ChangeRatio struct{}

func newChangeRatio() *ChangeRatio { return &ChangeRatio{} }

const changeRatioTolerance = 2.0 // luma levels, out of 255

func (c *ChangeRatio) Calculate(original, processed gocv.Mat) (float64, error) {
	if err := checkComparable(original, processed); err != nil {
		return 0, err
	}
	g1, rel1 := toGray(original)
	defer rel1()
	g2, rel2 := toGray(processed)
	defer rel2()

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(g1, g2, &diff)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(diff, &mask, changeRatioTolerance, 255, gocv.ThresholdBinary)

	changed := gocv.CountNonZero(mask)
	total := mask.Rows() * mask.Cols()
	if total == 0 {
		return 0, nil
	}
	return float64(changed) / float64(total), nil
}

func (c *ChangeRatio) Name() string        { return "change_ratio" }
func (c *ChangeRatio) Description() string { return "fraction of pixels whose luma moved beyond tolerance" }
func (c *ChangeRatio) Range() (float64, float64) { return 0, 1 }
func (c *ChangeRatio) HigherIsBetter() bool      { return false }
