package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func solidMat(t *testing.T, size int, value uint8) gocv.Mat {
	t.Helper()
	m := gocv.NewMatWithSize(size, size, gocv.MatTypeCV8UC1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			m.SetUCharAt(y, x, value)
		}
	}
	return m
}

func TestPSNRIsInfiniteForIdenticalImages(t *testing.T) {
	m := solidMat(t, 8, 128)
	defer m.Close()

	v, err := newPSNR().Calculate(m, m)
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1), "identical images should report infinite PSNR")

	mse, err := newMSE().Calculate(m, m)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, mse, 1e-9)
}

func TestSSIMIsOneForIdenticalImages(t *testing.T) {
	m := solidMat(t, 16, 100)
	defer m.Close()

	v, err := newSSIM().Calculate(m, m)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-6)
}

func TestEdgeDensityIsOneOnTwoFlatImages(t *testing.T) {
	a := solidMat(t, 16, 50)
	defer a.Close()
	b := solidMat(t, 16, 50)
	defer b.Close()

	v, err := newEdgeDensity().Calculate(a, b)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v, "no edges anywhere should report a 1:1 ratio, not a zero-division artifact")
}

func TestChangeRatioIsZeroForIdenticalImages(t *testing.T) {
	m := solidMat(t, 16, 200)
	defer m.Close()

	v, err := newChangeRatio().Calculate(m, m)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestCalculateRejectsDimensionMismatch(t *testing.T) {
	a := solidMat(t, 8, 10)
	defer a.Close()
	b := solidMat(t, 4, 10)
	defer b.Close()

	_, err := newMSE().Calculate(a, b)
	assert.Error(t, err)
}

func TestEvaluatorEvaluateRollsUpAReport(t *testing.T) {
	e := NewEvaluator()
	a := solidMat(t, 16, 120)
	defer a.Close()
	b := solidMat(t, 16, 122)
	defer b.Close()

	report := e.Evaluate(a, b)
	assert.Contains(t, report.Scores, "psnr")
	assert.Contains(t, report.Scores, "ssim")
	assert.GreaterOrEqual(t, report.Score, 0.0)
	assert.NotEmpty(t, report.Level)
}
