// Package smaaimg provides the pixel-addressable image abstraction the SMAA
// passes read from and write to: a border-clamped ImageReader capability and
// a concrete float32 RGBA buffer implementing it.
package smaaimg

import "fmt"

// ErrKind identifies one of the error conditions the image buffer can raise.
type ErrKind int

const (
	// ErrNone is the zero value and never returned.
	ErrNone ErrKind = iota
	// ErrImageSizeInvalid means width or height was <= 0 at construction time.
	ErrImageSizeInvalid
	// ErrImageAllocationFailed means the backing buffer could not be allocated.
	ErrImageAllocationFailed
	// ErrImageCorrupt means an internal invariant was violated (nil buffer on
	// an already-constructed Image).
	ErrImageCorrupt
	// ErrPutPixelOutOfRange means PutPixel was called with coordinates
	// outside [0,W)x[0,H).
	ErrPutPixelOutOfRange
)

func (k ErrKind) String() string {
	switch k {
	case ErrImageSizeInvalid:
		return "image size invalid"
	case ErrImageAllocationFailed:
		return "image allocation failed"
	case ErrImageCorrupt:
		return "image corrupt"
	case ErrPutPixelOutOfRange:
		return "put pixel coordinates out of range"
	default:
		return "no error"
	}
}

// Error is a typed error carrying one of the ErrKind values, so callers can
// distinguish kinds with errors.As without string matching.
type Error struct {
	Kind   ErrKind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func newError(kind ErrKind, detail string) error {
	return &Error{Kind: kind, Detail: detail}
}

// Reader is the capability every SMAA pass reads through: a pixel-addressable
// image with border-clamp semantics on out-of-range coordinates. Reads never
// fail — coordinates are clamped to the nearest in-bounds pixel.
type Reader interface {
	Width() int
	Height() int
	GetPixel(x, y int) [4]float32
}

// clampCoord mirrors ImageReader::clamp: negative values clamp to 0, values
// at or past range clamp to range-1.
func clampCoord(x, rng int) int {
	if x < 0 {
		return 0
	}
	if x >= rng {
		return rng - 1
	}
	return x
}

// Image is the default buffer-backed Reader: a dense width*height*4 float32
// array, mutated only through PutPixel. It is the concrete collaborator the
// three SMAA passes are run against; callers that want some other storage
// (e.g. a gocv.Mat-backed adapter, see internal/imageio) only need to satisfy
// Reader.
type Image struct {
	width, height int
	data          []float32
}

// NewImage allocates a width*height image, zero-initialized. It returns
// ErrImageSizeInvalid if either dimension is <= 0.
func NewImage(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, newError(ErrImageSizeInvalid, fmt.Sprintf("%dx%d", width, height))
	}

	data := make([]float32, width*height*4)
	if data == nil {
		return nil, newError(ErrImageAllocationFailed, "")
	}

	return &Image{width: width, height: height, data: data}, nil
}

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.width }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.height }

// PutPixel writes color at (x, y). It returns ErrPutPixelOutOfRange if the
// coordinates fall outside [0,Width)x[0,Height), and ErrImageCorrupt if the
// backing buffer was never allocated (should not happen outside of the zero
// value of Image).
func (img *Image) PutPixel(x, y int, color [4]float32) error {
	if img.data == nil {
		return newError(ErrImageCorrupt, "")
	}
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		return newError(ErrPutPixelOutOfRange, fmt.Sprintf("(%d, %d)", x, y))
	}

	i := (x + y*img.width) * 4
	copy(img.data[i:i+4], color[:])
	return nil
}

// GetPixel reads the pixel at (x, y), clamping out-of-range coordinates to
// the nearest border pixel. It never fails.
func (img *Image) GetPixel(x, y int) [4]float32 {
	cx := clampCoord(x, img.width)
	cy := clampCoord(y, img.height)
	i := (cx + cy*img.width) * 4
	return [4]float32{img.data[i], img.data[i+1], img.data[i+2], img.data[i+3]}
}

// Fill sets every pixel in the image to color.
func (img *Image) Fill(color [4]float32) {
	for i := 0; i < len(img.data); i += 4 {
		copy(img.data[i:i+4], color[:])
	}
}
