// Package metrics scores one antialiasing run by comparing the source image
// against the filtered output: a Metric interface, concrete implementations
// registered by name, and an Evaluator that runs all of them and rolls the
// result into one report.
package metrics

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Metric scores one aspect of how the filtered image relates to its source.
type Metric interface {
	Calculate(original, processed gocv.Mat) (float64, error)
	Name() string
	Description() string
	Range() (min, max float64)
	HigherIsBetter() bool
}

// Evaluator holds the registered metrics and produces reports from them.
type Evaluator struct {
	byName map[string]scoredMetric
	order  []string
}

type scoredMetric struct {
	metric Metric
	weight float64
}

// NewEvaluator builds an Evaluator with the antialiasing-relevant metric set:
// PSNR/SSIM/MSE for pixel fidelity, plus two metrics aimed at what SMAA
// actually changes rather than generic image quality — how much jagged-edge
// structure Canny still finds, and how large a fraction of pixels moved at
// all. A filter run that leaks outside edge-adjacent neighborhoods fails
// loudly, not subtly, so a coarse ratio is enough to flag it.
func NewEvaluator() *Evaluator {
	e := &Evaluator{byName: make(map[string]scoredMetric)}
	e.register(newPSNR(), 0.30)
	e.register(newSSIM(), 0.35)
	e.register(newMSE(), 0.0) // reported but left out of the overall score
	e.register(newEdgeDensity(), 0.20)
	e.register(newChangeRatio(), 0.15)
	return e
}

func (e *Evaluator) register(m Metric, weight float64) {
	e.byName[m.Name()] = scoredMetric{metric: m, weight: weight}
	e.order = append(e.order, m.Name())
}

// Names lists the registered metric names in registration order.
func (e *Evaluator) Names() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Calculate runs a single named metric.
func (e *Evaluator) Calculate(name string, original, processed gocv.Mat) (float64, error) {
	sm, ok := e.byName[name]
	if !ok {
		return 0, errMetricNotFound(name)
	}
	return sm.metric.Calculate(original, processed)
}

// Report is the outcome of scoring one before/after pair.
type Report struct {
	Scores map[string]float64 `json:"scores"`
	Score  float64            `json:"overall_score"`
	Level  string             `json:"level"`
	Notes  []string           `json:"notes,omitempty"`
}

// Evaluate runs every registered metric and rolls the weighted subset into
// an overall score.
func (e *Evaluator) Evaluate(original, processed gocv.Mat) Report {
	scores := make(map[string]float64, len(e.order))
	weightedSum, totalWeight := 0.0, 0.0

	for _, name := range e.order {
		sm := e.byName[name]
		v, err := sm.metric.Calculate(original, processed)
		if err != nil {
			continue
		}
		scores[name] = v
		if sm.weight > 0 {
			weightedSum += normalize(sm.metric, v) * sm.weight
			totalWeight += sm.weight
		}
	}

	score := 0.0
	if totalWeight > 0 {
		score = (weightedSum / totalWeight) * 100
	}

	return Report{
		Scores: scores,
		Score:  score,
		Level:  levelFor(score),
		Notes:  annotate(scores),
	}
}

// annotate flags runs that drifted beyond what edge smoothing should do:
// heavy pixel-level departure (low PSNR), structural change (low SSIM), or
// filtering that touched far more than edge-adjacent neighborhoods (high
// change ratio).
func annotate(scores map[string]float64) []string {
	var notes []string
	if v, ok := scores["psnr"]; ok && v < 20 {
		notes = append(notes, "low PSNR: large pixel-level departure from the source, consider a gentler preset")
	}
	if v, ok := scores["ssim"]; ok && v < 0.85 {
		notes = append(notes, "low SSIM: structural content moved beyond edge smoothing, check corner_rounding/max_search_steps")
	}
	if v, ok := scores["change_ratio"]; ok && v > 0.5 {
		notes = append(notes, "high change ratio: more than half the pixels moved, filtering touched more than edge neighborhoods")
	}
	return notes
}

// normalize maps a raw metric value onto [0,1], inverted when lower is
// better, clamped at the metric's documented range.
func normalize(m Metric, v float64) float64 {
	lo, hi := m.Range()
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	if hi == lo {
		return 1.0
	}
	n := (v - lo) / (hi - lo)
	if !m.HigherIsBetter() {
		n = 1.0 - n
	}
	return n
}

func levelFor(score float64) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 75:
		return "good"
	case score >= 60:
		return "fair"
	default:
		return "poor"
	}
}

func errMetricNotFound(name string) error {
	return fmt.Errorf("metrics: no such metric %q", name)
}
