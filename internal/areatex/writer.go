package areatex

import (
	"bufio"
	"fmt"
	"io"
	"math"
)

// quantizeValue rounds v (in [0,1]) to the nearest of 256 levels, matching
// write_double_array's quantize path (`(int)(v * 255.0)`, displayed as an
// "n / 255.0" literal rather than collapsed to a float here).
func quantizeValue(v float32) int {
	return int(float64(v) * 255.0)
}

// WriteGoSource writes a Go source file declaring two []float32 package
// vars — one for the orthogonal table, one for the diagonal table — the
// Go-native analogue of the reference generator's write_csource. quantize
// requests that values be expressed as "n / 255.0" integer-over-255
// literals instead of full double precision, matching the reference tool's
// -q flag.
func WriteGoSource(w io.Writer, pkg string, ortho, diag []float32, quantize bool) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "// Code generated by smaa-areatex. DO NOT EDIT.\n\n")
	fmt.Fprintf(bw, "package %s\n\n", pkg)

	if err := writeFloatSlice(bw, "AreaTexOrtho", ortho, quantize); err != nil {
		return err
	}
	fmt.Fprintln(bw)
	if err := writeFloatSlice(bw, "AreaTexDiag", diag, quantize); err != nil {
		return err
	}

	return bw.Flush()
}

func writeFloatSlice(bw *bufio.Writer, name string, values []float32, quantize bool) error {
	fmt.Fprintf(bw, "var %s = []float32{", name)
	for i, v := range values {
		if i%8 == 0 {
			fmt.Fprintf(bw, "\n\t")
		}
		if quantize {
			fmt.Fprintf(bw, "%d / 255.0, ", quantizeValue(v))
		} else {
			fmt.Fprintf(bw, "%.8f, ", v)
		}
	}
	fmt.Fprintf(bw, "\n}\n")
	return nil
}

// WriteTGA writes the tables as an uncompressed 32-bit RGBA .tga file, byte
// for byte in the same layout as the reference write_tga: the ortho grid
// tiled beside the diag grid (zero-padded when the diag grid is narrower),
// subpixel samples stacked bottom-to-top with the last sample written
// first, and each row written bottom-to-top, left-to-right, with channels
// in B, G, R, A order (area.X in G, area.Y in R, alpha always 0). This
// layout is preserved unchanged because it is the one consumer (the
// reference SMAA project's texture loader) expects; a differently ordered
// file would simply not load there.
func WriteTGA(w io.Writer, t *Tables) error {
	bw := bufio.NewWriter(w)

	width := OrthoGridSize + DiagGridSize
	height := t.OrthoSamples * OrthoGridSize

	header := make([]byte, 18)
	header[2] = 2 // uncompressed true-color
	header[12] = byte(width & 0xff)
	header[13] = byte((width >> 8) & 0xff)
	header[14] = byte(height & 0xff)
	header[15] = byte((height >> 8) & 0xff)
	header[16] = 32 // bits per pixel
	header[17] = 8  // 8 bits of alpha, bottom-to-top origin

	if _, err := bw.Write(header); err != nil {
		return err
	}

	for i := t.OrthoSamples - 1; i >= 0; i-- {
		for y := OrthoGridSize - 1; y >= 0; y-- {
			for x := 0; x < OrthoGridSize; x++ {
				p := t.Ortho[i][y][x]
				bw.WriteByte(0)
				bw.WriteByte(byteFromUnit(p.Y))
				bw.WriteByte(byteFromUnit(p.X))
				bw.WriteByte(0)
			}
			for x := 0; x < DiagGridSize; x++ {
				if i < t.DiagSamples {
					p := t.Diag[i][y][x]
					bw.WriteByte(0)
					bw.WriteByte(byteFromUnit(p.Y))
					bw.WriteByte(byteFromUnit(p.X))
					bw.WriteByte(0)
				} else {
					bw.WriteByte(0)
					bw.WriteByte(0)
					bw.WriteByte(0)
					bw.WriteByte(0)
				}
			}
		}
	}

	return bw.Flush()
}

func byteFromUnit(v float64) byte {
	return byte(math.Trunc(v * 255.0))
}
