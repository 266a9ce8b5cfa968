// Command smaa-areatex generates the orthogonal and diagonal area lookup
// tables the runtime filter samples from, the Go port of the reference
// smaa_areatex tool. By default it writes a Go source file declaring the
// tables as package vars; -t writes an uncompressed .tga image instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/strauhmanis/smaa/internal/areatex"
)

func main() {
	subsampling := flag.Bool("s", false, "calculate data for subpixel rendering")
	quantize := flag.Bool("q", false, "quantize data to 256 levels")
	tga := flag.Bool("t", false, "write a .tga file instead of a Go source file")
	pkg := flag.String("pkg", "areatables", "package name for the generated Go source")
	verbose := flag.Bool("v", false, "print progress while generating")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTION]... OUTFILE\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Options: -s  Calculate data for subpixel rendering")
		fmt.Fprintln(os.Stderr, "         -q  Quantize data to 256 levels")
		fmt.Fprintln(os.Stderr, "         -t  Write .tga file instead of Go source")
		os.Exit(1)
	}
	outfile := args[0]

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if *verbose {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	slogger := slog.New(slog.NewTextHandler(logger.Out, &slog.HandlerOptions{
		Level: map[bool]slog.Level{true: slog.LevelInfo, false: slog.LevelWarn}[*verbose],
	}))

	logger.Infof("Generating %s", outfile)

	tables, err := areatex.Generate(context.Background(), *subsampling, slogger)
	if err != nil {
		logger.Fatalf("generating tables: %v", err)
	}

	f, err := os.Create(outfile)
	if err != nil {
		logger.Errorf("unable to open file: %v", err)
		os.Exit(1)
	}
	defer f.Close()

	if *tga {
		err = areatex.WriteTGA(f, tables)
	} else {
		err = areatex.WriteGoSource(f, *pkg, tables.FlattenOrtho(), tables.FlattenDiag(), *quantize)
	}
	if err != nil {
		logger.Errorf("writing output: %v", err)
		os.Exit(1)
	}
}
