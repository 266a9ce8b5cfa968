package smaaimg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImageRejectsNonPositiveDimensions(t *testing.T) {
	_, err := NewImage(0, 4)
	require.Error(t, err)
	var typed *Error
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, ErrImageSizeInvalid, typed.Kind)

	_, err = NewImage(4, -1)
	require.Error(t, err)
}

func TestPutPixelAndGetPixelRoundTrip(t *testing.T) {
	img, err := NewImage(4, 4)
	require.NoError(t, err)

	want := [4]float32{0.1, 0.2, 0.3, 1.0}
	require.NoError(t, img.PutPixel(2, 1, want))
	assert.Equal(t, want, img.GetPixel(2, 1))
}

func TestPutPixelOutOfRange(t *testing.T) {
	img, err := NewImage(4, 4)
	require.NoError(t, err)

	err = img.PutPixel(4, 0, [4]float32{})
	require.Error(t, err)
	var typed *Error
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, ErrPutPixelOutOfRange, typed.Kind)
}

func TestGetPixelClampsToBorder(t *testing.T) {
	img, err := NewImage(3, 3)
	require.NoError(t, err)

	corner := [4]float32{1, 1, 1, 1}
	require.NoError(t, img.PutPixel(0, 0, corner))

	assert.Equal(t, corner, img.GetPixel(-5, -5))
	assert.Equal(t, corner, img.GetPixel(0, 0))
}

func TestFillSetsEveryPixel(t *testing.T) {
	img, err := NewImage(3, 2)
	require.NoError(t, err)

	color := [4]float32{0.5, 0.5, 0.5, 1.0}
	img.Fill(color)

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, color, img.GetPixel(x, y))
		}
	}
}

func TestWidthHeight(t *testing.T) {
	img, err := NewImage(7, 5)
	require.NoError(t, err)
	assert.Equal(t, 7, img.Width())
	assert.Equal(t, 5, img.Height())
}
