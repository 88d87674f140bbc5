// Command divquant reduces a PNG image to a small palette using
// divisive hierarchical color quantization.
//
// Usage:
//
//	divquant quantize [options] <in.png> <out.png>
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/mdejong/divquant"
	"github.com/mdejong/divquant/internal/diagnostics"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "quantize":
		err = runQuantize(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "divquant: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "divquant: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  divquant quantize [options] <in.png> <out.png>

Run "divquant quantize -h" for option details.
`)
}

func runQuantize(args []string) error {
	fs := flag.NewFlagSet("quantize", flag.ContinueOnError)
	k := fs.Int("k", 256, "target palette size")
	bits := fs.Int("bits", 8, "per-channel bit depth for clustering, 1-8")
	decimation := fs.Int("d", 1, "decimation factor for the initial color scan")
	maxIters := fs.Int("m", 0, "local 2-means refinement iterations per split")
	allUnique := fs.Bool("unique", false, "hint that input pixels are already unique")
	report := fs.Bool("report", false, "print an error-metric report to stderr")
	walkDir := fs.String("walk", "", "write one cluster-walk PNG per split to this directory (requires -unique, -bits 8 and -d 1)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("quantize: expected <in.png> <out.png>\nUsage: divquant quantize [options] <in.png> <out.png>")
	}
	inPath, outPath := fs.Arg(0), fs.Arg(1)

	inFile, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer inFile.Close()

	img, err := png.Decode(inFile)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", inPath, err)
	}

	if *walkDir != "" && !(*allUnique && *bits == 8 && *decimation == 1) {
		return fmt.Errorf("quantize: -walk requires -unique, -bits 8 and -d 1, since a cluster walk tracks original pixel positions and any other setting deduplicates")
	}

	pixels, w, h := divquant.PixelsFromImage(img)
	var frames []diagnostics.ClusterSnapshot
	cfg := divquant.Config{
		K:             *k,
		Width:         w,
		Height:        h,
		Bits:          *bits,
		Decimation:    *decimation,
		MaxIterations: *maxIters,
		AllUnique:     *allUnique,
	}
	if *walkDir != "" {
		cfg.Snapshot = diagnostics.NewSnapshotSink(&frames)
	}

	palette, mapped, err := divquant.QuantizeAndMap(cfg, pixels)
	if err != nil {
		return fmt.Errorf("quantizing %s: %w", inPath, err)
	}

	if *walkDir != "" {
		if err := os.MkdirAll(*walkDir, 0o755); err != nil {
			return err
		}
		identity := make([]int, w*h)
		for i := range identity {
			identity[i] = i
		}
		walkImgs := diagnostics.WalkFrames(frames, identity, image.Pt(w, h))
		for i, wi := range walkImgs {
			fp := filepath.Join(*walkDir, fmt.Sprintf("split_%04d.png", i))
			f, err := os.Create(fp)
			if err != nil {
				return err
			}
			err = png.Encode(f, wi)
			f.Close()
			if err != nil {
				return fmt.Errorf("writing %s: %w", fp, err)
			}
		}
	}

	if *report {
		m, err := diagnostics.Report(pixels, mapped)
		if err != nil {
			return err
		}
		if err := diagnostics.WriteReport(os.Stderr, m); err != nil {
			return err
		}
	}

	out := divquant.ImageFromPalette(palette, mapped, w, h)

	outFile, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer outFile.Close()

	if err := png.Encode(outFile, out); err != nil {
		return fmt.Errorf("encoding %s: %w", outPath, err)
	}
	return nil
}
