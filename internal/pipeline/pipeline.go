// Package pipeline orchestrates the three SMAA passes over a whole image,
// fanning each pass out across goroutines with a barrier between passes,
// since blending weight calculation depends on every pixel of the completed
// edges image.
package pipeline

import (
	"runtime"
	"sync"
	"time"

	"log/slog"

	"github.com/strauhmanis/smaa/internal/smaa"
	"github.com/strauhmanis/smaa/internal/smaaimg"
)

// EdgeDetectionType selects which of the three edge detection passes a Run
// performs.
type EdgeDetectionType int

const (
	EdgeDetectionLuma EdgeDetectionType = iota
	EdgeDetectionColor
	EdgeDetectionDepth
)

// Pipeline runs a bound Shader's three passes over an image, splitting the
// work into row bands across GOMAXPROCS goroutines.
type Pipeline struct {
	shader *smaa.Shader
	logger *slog.Logger
}

// New builds a Pipeline bound to shader, logging pass timings through
// logger.
func New(shader *smaa.Shader, logger *slog.Logger) *Pipeline {
	return &Pipeline{shader: shader, logger: logger}
}

// Result holds the intermediate and final buffers of one Run, so callers
// that want to inspect the edges or weights images (debugging, metrics)
// don't have to re-run the pipeline.
type Result struct {
	Edges  *smaaimg.Image
	Blend  *smaaimg.Image
	Output *smaaimg.Image
}

// Run performs edge detection, blending weight calculation, and
// neighborhood blending over color (width x height), returning the
// antialiased image. detectionType selects the edge detection pass; depth
// and predication may be nil unless detectionType is EdgeDetectionDepth or
// predication is enabled on the shader's configuration, respectively.
func (p *Pipeline) Run(detectionType EdgeDetectionType, color, depth, predication smaaimg.Reader) (*Result, error) {
	width, height := color.Width(), color.Height()

	edges, err := smaaimg.NewImage(width, height)
	if err != nil {
		return nil, err
	}
	blend, err := smaaimg.NewImage(width, height)
	if err != nil {
		return nil, err
	}
	output, err := smaaimg.NewImage(width, height)
	if err != nil {
		return nil, err
	}

	p.runPass("edge detection", height, func(y int) {
		for x := 0; x < width; x++ {
			var e [4]float32
			switch detectionType {
			case EdgeDetectionLuma:
				e = p.shader.LumaEdgeDetection(x, y, color, predication)
			case EdgeDetectionColor:
				e = p.shader.ColorEdgeDetection(x, y, color, predication)
			case EdgeDetectionDepth:
				e = p.shader.DepthEdgeDetection(x, y, depth)
			}
			edges.PutPixel(x, y, e)
		}
	})

	p.runPass("blending weight calculation", height, func(y int) {
		for x := 0; x < width; x++ {
			w := p.shader.BlendingWeightCalculation(x, y, edges, nil)
			blend.PutPixel(x, y, w)
		}
	})

	p.runPass("neighborhood blending", height, func(y int) {
		for x := 0; x < width; x++ {
			c := p.shader.NeighborhoodBlending(x, y, color, blend, nil)
			output.PutPixel(x, y, c)
		}
	})

	return &Result{Edges: edges, Blend: blend, Output: output}, nil
}

// runPass splits rows [0, height) into contiguous bands across
// GOMAXPROCS goroutines and waits for all of them before returning,
// logging the pass name and elapsed time.
func (p *Pipeline) runPass(name string, height int, rowFunc func(y int)) {
	start := time.Now()

	workers := runtime.GOMAXPROCS(0)
	if workers > height {
		workers = height
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	band := (height + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * band
		hi := lo + band
		if hi > height {
			hi = height
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for y := lo; y < hi; y++ {
				rowFunc(y)
			}
		}(lo, hi)
	}
	wg.Wait()

	if p.logger != nil {
		p.logger.Info("pipeline pass complete", "pass", name, "rows", height, "elapsed", time.Since(start))
	}
}
