// Package imageio handles reading and writing image files and adapting
// between gocv.Mat (the concrete decoded raster) and smaaimg.Image (the
// buffer the SMAA passes read from and write to).
package imageio

import (
	"fmt"
	"log/slog"
	"strings"

	"gocv.io/x/gocv"

	"github.com/strauhmanis/smaa/internal/smaaimg"
)

// Loader handles image file operations.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new image loader.
func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{logger: logger}
}

// LoadImage loads a color image from filepath.
func (l *Loader) LoadImage(filepath string) (gocv.Mat, error) {
	l.logger.Debug("loading image", "filepath", filepath)

	if !l.isSupportedImageFormat(filepath) {
		return gocv.NewMat(), fmt.Errorf("unsupported image format: %s", filepath)
	}

	mat := gocv.IMRead(filepath, gocv.IMReadColor)
	if mat.Empty() {
		return gocv.NewMat(), fmt.Errorf("failed to load image: %s", filepath)
	}

	l.logger.Info("image loaded",
		"filepath", filepath,
		"width", mat.Cols(),
		"height", mat.Rows(),
		"channels", mat.Channels())

	return mat, nil
}

// LoadImageWithAlpha loads an image preserving its alpha channel, used for
// the depth-buffer-in-alpha convention the runtime filter's depth edge
// detection path consumes.
func (l *Loader) LoadImageWithAlpha(filepath string) (gocv.Mat, error) {
	l.logger.Debug("loading image with alpha", "filepath", filepath)

	if !l.isSupportedImageFormat(filepath) {
		return gocv.NewMat(), fmt.Errorf("unsupported image format: %s", filepath)
	}

	mat := gocv.IMRead(filepath, gocv.IMReadUnchanged)
	if mat.Empty() {
		return gocv.NewMat(), fmt.Errorf("failed to load image: %s", filepath)
	}

	l.logger.Info("image loaded",
		"filepath", filepath,
		"width", mat.Cols(),
		"height", mat.Rows(),
		"channels", mat.Channels())

	return mat, nil
}

// LoadImageGrayscale loads a single-channel image, used for predication and
// depth companion buffers.
func (l *Loader) LoadImageGrayscale(filepath string) (gocv.Mat, error) {
	l.logger.Debug("loading image as grayscale", "filepath", filepath)

	if !l.isSupportedImageFormat(filepath) {
		return gocv.NewMat(), fmt.Errorf("unsupported image format: %s", filepath)
	}

	mat := gocv.IMRead(filepath, gocv.IMReadGrayScale)
	if mat.Empty() {
		return gocv.NewMat(), fmt.Errorf("failed to load image: %s", filepath)
	}

	l.logger.Info("grayscale image loaded",
		"filepath", filepath,
		"width", mat.Cols(),
		"height", mat.Rows())

	return mat, nil
}

// SaveImage writes mat to filepath.
func (l *Loader) SaveImage(mat gocv.Mat, filepath string) error {
	l.logger.Debug("saving image", "filepath", filepath)

	if mat.Empty() {
		return fmt.Errorf("cannot save empty image")
	}

	if !l.isSupportedImageFormat(filepath) {
		return fmt.Errorf("unsupported image format: %s", filepath)
	}

	if !gocv.IMWrite(filepath, mat) {
		return fmt.Errorf("failed to save image: %s", filepath)
	}

	l.logger.Info("image saved",
		"filepath", filepath,
		"width", mat.Cols(),
		"height", mat.Rows())

	return nil
}

func (l *Loader) isSupportedImageFormat(filepath string) bool {
	ext := strings.ToLower(fileExtension(filepath))
	for _, format := range []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".bmp"} {
		if ext == format {
			return true
		}
	}
	return false
}

func fileExtension(filepath string) string {
	for i := len(filepath) - 1; i >= 0; i-- {
		if filepath[i] == '.' {
			return filepath[i:]
		}
		if filepath[i] == '/' || filepath[i] == '\\' {
			break
		}
	}
	return ""
}

// ValidateImageFile checks that filepath names a readable, non-empty image.
func (l *Loader) ValidateImageFile(filepath string) error {
	if !l.isSupportedImageFormat(filepath) {
		return fmt.Errorf("unsupported image format")
	}

	mat := gocv.IMRead(filepath, gocv.IMReadGrayScale)
	defer mat.Close()

	if mat.Empty() {
		return fmt.Errorf("invalid or corrupted image file")
	}
	if mat.Cols() <= 0 || mat.Rows() <= 0 {
		return fmt.Errorf("invalid image dimensions")
	}

	return nil
}

// MatToImage copies a BGR(A) gocv.Mat into a new smaaimg.Image, normalizing
// 8-bit channel values to the [0,1] float32 range the SMAA passes operate
// in. Missing alpha is filled with 1.0.
func MatToImage(mat gocv.Mat) (*smaaimg.Image, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("cannot convert empty mat to image")
	}

	width, height := mat.Cols(), mat.Rows()
	img, err := smaaimg.NewImage(width, height)
	if err != nil {
		return nil, fmt.Errorf("allocating image: %w", err)
	}

	channels := mat.Channels()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var px [4]float32
			switch channels {
			case 1:
				v := float32(mat.GetUCharAt(y, x)) / 255.0
				px = [4]float32{v, v, v, 1.0}
			case 3:
				b := float32(mat.GetVecbAt(y, x)[0]) / 255.0
				g := float32(mat.GetVecbAt(y, x)[1]) / 255.0
				r := float32(mat.GetVecbAt(y, x)[2]) / 255.0
				px = [4]float32{r, g, b, 1.0}
			case 4:
				v := mat.GetVecbAt(y, x)
				px = [4]float32{
					float32(v[2]) / 255.0,
					float32(v[1]) / 255.0,
					float32(v[0]) / 255.0,
					float32(v[3]) / 255.0,
				}
			default:
				return nil, fmt.Errorf("unsupported channel count: %d", channels)
			}
			if err := img.PutPixel(x, y, px); err != nil {
				return nil, fmt.Errorf("writing pixel (%d, %d): %w", x, y, err)
			}
		}
	}

	return img, nil
}

// ImageToMat converts a smaaimg.Reader back into an 8-bit BGR gocv.Mat
// suitable for encoding with gocv.IMWrite.
func ImageToMat(img smaaimg.Reader) gocv.Mat {
	width, height := img.Width(), img.Height()
	mat := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := img.GetPixel(x, y)
			mat.SetUCharAt3(y, x, 0, clampByte(px[2]*255.0))
			mat.SetUCharAt3(y, x, 1, clampByte(px[1]*255.0))
			mat.SetUCharAt3(y, x, 2, clampByte(px[0]*255.0))
		}
	}

	return mat
}

func clampByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// DepthFromAlpha extracts the alpha channel of a BGRA mat as a standalone
// single-channel depth Reader, and returns the color-only smaaimg.Image with
// alpha forced to 1.0 — matching process_file's `depth = color.a; color.a =
// 1.0` convention for depth edge detection.
func DepthFromAlpha(mat gocv.Mat) (*smaaimg.Image, *smaaimg.Image, error) {
	if mat.Channels() != 4 {
		return nil, nil, fmt.Errorf("depth-from-alpha requires a 4-channel image, got %d channels", mat.Channels())
	}

	width, height := mat.Cols(), mat.Rows()
	color, err := smaaimg.NewImage(width, height)
	if err != nil {
		return nil, nil, fmt.Errorf("allocating color image: %w", err)
	}
	depth, err := smaaimg.NewImage(width, height)
	if err != nil {
		return nil, nil, fmt.Errorf("allocating depth image: %w", err)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := mat.GetVecbAt(y, x)
			a := float32(v[3]) / 255.0
			if err := color.PutPixel(x, y, [4]float32{
				float32(v[2]) / 255.0,
				float32(v[1]) / 255.0,
				float32(v[0]) / 255.0,
				1.0,
			}); err != nil {
				return nil, nil, err
			}
			if err := depth.PutPixel(x, y, [4]float32{a, a, a, a}); err != nil {
				return nil, nil, err
			}
		}
	}

	return color, depth, nil
}
