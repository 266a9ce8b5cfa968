// Command smaa-png removes jaggies from an image and writes an
// antialiased copy, the Go port of the reference smaa_png tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"github.com/strauhmanis/smaa/internal/areatex"
	"github.com/strauhmanis/smaa/internal/config"
	"github.com/strauhmanis/smaa/internal/imageio"
	"github.com/strauhmanis/smaa/internal/metrics"
	"github.com/strauhmanis/smaa/internal/pipeline"
	"github.com/strauhmanis/smaa/internal/smaa"
	"github.com/strauhmanis/smaa/internal/smaaimg"
)

const notSpecified = -2.0

func main() {
	presetName := flag.String("p", "high", "base configuration preset [low|medium|high|ultra|extreme]")
	detectionName := flag.String("e", "color", "edge detection type [luma|color|depth]")
	threshold := flag.Float64("t", notSpecified, "threshold of edge detection [0.0, 0.5]")
	adaptation := flag.Float64("a", notSpecified, "local contrast adaptation factor [1.0, inf]")
	orthoSteps := flag.Int("s", int(notSpecified), "maximum search steps [1, 362]")
	diagSteps := flag.Int("d", int(notSpecified), "maximum diagonal search steps, -1 disables diagonal processing")
	rounding := flag.Int("c", int(notSpecified), "corner rounding, -1 disables corner processing")
	predicationFile := flag.String("pred", "", "optional predication image, thresholds edge detection locally")
	report := flag.Bool("report", false, "print a before/after quality report (PSNR/SSIM/edge density) to stderr")
	verbose := flag.Bool("v", false, "print details of what is being done")
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: smaa-png [OPTION]... INFILE OUTFILE")
		fmt.Fprintln(os.Stderr, "Remove jaggies from an image and write an antialiased copy.")
		flag.PrintDefaults()
		os.Exit(1)
	}
	infile, outfile := args[0], args[1]

	logger := initLogger(*verbose)

	preset, err := config.ParsePreset(*presetName)
	if err != nil {
		logger.Fatalf("invalid preset: %v", err)
	}

	detectionType, err := parseDetectionType(*detectionName)
	if err != nil {
		logger.Fatalf("invalid detection type: %v", err)
	}

	cfg := config.New(preset)
	if *threshold != notSpecified {
		cfg.Threshold = float32(*threshold)
	}
	if *adaptation != notSpecified {
		cfg.LocalContrastAdaptationFactor = float32(*adaptation)
	}
	if *orthoSteps != int(notSpecified) {
		cfg.MaxSearchSteps = *orthoSteps
	}
	if *diagSteps != int(notSpecified) {
		if *diagSteps == -1 {
			cfg.EnableDiagDetection = false
		} else {
			cfg.EnableDiagDetection = true
			cfg.MaxSearchStepsDiag = *diagSteps
		}
	}
	if *rounding != int(notSpecified) {
		if *rounding == -1 {
			cfg.EnableCornerDetection = false
		} else {
			cfg.EnableCornerDetection = true
			cfg.CornerRounding = *rounding
		}
	}
	if *predicationFile != "" {
		cfg.EnablePredication = true
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}

	if *verbose {
		logger.WithFields(logrus.Fields{
			"preset":            preset,
			"detection_type":    *detectionName,
			"threshold":         cfg.Threshold,
			"adaptation_factor": cfg.LocalContrastAdaptationFactor,
			"max_search_steps":  cfg.MaxSearchSteps,
			"diagonal_search":   cfg.EnableDiagDetection,
			"corner_processing": cfg.EnableCornerDetection,
		}).Info("configuration")
	}

	loader := imageio.NewLoader(slogFromLogrus(logger))

	var colorImage smaaimg.Reader
	var depthImage smaaimg.Reader
	var predicationImage smaaimg.Reader

	if detectionType == pipeline.EdgeDetectionDepth {
		mat, err := loader.LoadImageWithAlpha(infile)
		if err != nil {
			logger.Fatalf("loading input: %v", err)
		}
		defer mat.Close()

		color, depth, err := imageio.DepthFromAlpha(mat)
		if err != nil {
			logger.Fatalf("reading depth from alpha: %v", err)
		}
		colorImage = color
		depthImage = depth
	} else {
		mat, err := loader.LoadImage(infile)
		if err != nil {
			logger.Fatalf("loading input: %v", err)
		}
		defer mat.Close()

		color, err := imageio.MatToImage(mat)
		if err != nil {
			logger.Fatalf("converting input: %v", err)
		}
		colorImage = color
	}

	if *predicationFile != "" {
		predMat, err := loader.LoadImageGrayscale(*predicationFile)
		if err != nil {
			logger.Fatalf("loading predication image: %v", err)
		}
		defer predMat.Close()

		predImg, err := imageio.MatToImage(predMat)
		if err != nil {
			logger.Fatalf("converting predication image: %v", err)
		}
		predicationImage = predImg
	}

	tables, err := areatex.Generate(context.Background(), false, slogFromLogrus(logger))
	if err != nil {
		logger.Fatalf("generating area tables: %v", err)
	}

	shader := smaa.New(cfg, tables.FlattenOrtho(), tables.FlattenDiag())
	p := pipeline.New(shader, slogFromLogrus(logger))

	result, err := p.Run(detectionType, colorImage, depthImage, predicationImage)
	if err != nil {
		logger.Fatalf("processing image: %v", err)
	}

	outMat := imageio.ImageToMat(result.Output)
	defer outMat.Close()

	if *report {
		printQualityReport(logger, colorImage, outMat)
	}

	if err := loader.SaveImage(outMat, outfile); err != nil {
		logger.Fatalf("saving output: %v", err)
	}

	if *verbose {
		logger.Info("done")
	}
}

// printQualityReport compares the pipeline's own normalized input (rather
// than re-reading infile) against its output, so depth-mode's color channel
// with alpha forced to 1.0 is what gets scored, not the source file's
// untouched alpha-as-depth bytes.
func printQualityReport(logger *logrus.Logger, colorImage smaaimg.Reader, outMat gocv.Mat) {
	origMat := imageio.ImageToMat(colorImage)
	defer origMat.Close()

	rep := metrics.NewEvaluator().Evaluate(origMat, outMat)
	logger.WithFields(logrus.Fields{
		"overall_score": rep.Score,
		"level":         rep.Level,
		"scores":        rep.Scores,
	}).Info("quality report")
	for _, note := range rep.Notes {
		logger.Warn(note)
	}
}

func parseDetectionType(name string) (pipeline.EdgeDetectionType, error) {
	switch name {
	case "luma":
		return pipeline.EdgeDetectionLuma, nil
	case "color":
		return pipeline.EdgeDetectionColor, nil
	case "depth":
		return pipeline.EdgeDetectionDepth, nil
	default:
		return 0, fmt.Errorf("unknown detection type: %s", name)
	}
}

func initLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	} else {
		logger.SetLevel(logrus.WarnLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}

// slogFromLogrus adapts the CLI's logrus.Logger to the *slog.Logger that
// the library packages (internal/imageio, internal/pipeline) log through,
// so both layers still end up writing through the same logrus output.
func slogFromLogrus(logger *logrus.Logger) *slog.Logger {
	return slog.New(slog.NewTextHandler(logger.Out, &slog.HandlerOptions{
		Level: slogLevel(logger.GetLevel()),
	}))
}

func slogLevel(level logrus.Level) slog.Level {
	switch level {
	case logrus.DebugLevel, logrus.TraceLevel:
		return slog.LevelDebug
	case logrus.WarnLevel:
		return slog.LevelWarn
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
