package divquant_test

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mdejong/divquant"
)

// TestQuantizePNGFiles runs the full pipeline on png files found in the
// source directory.  Output files are prefixed with _quant_16_.  Files
// beginning with _ are skipped when scanning for input files.  Thus
// nothing is tested with a fresh source tree--drop a png or two in the
// source directory before testing to give the test something to work on.
func TestQuantizePNGFiles(t *testing.T) {
	_, file, _, _ := runtime.Caller(0)
	srcDir, _ := filepath.Split(file)
	// ignore file names starting with _, those are result files.
	imgs, err := filepath.Glob(srcDir + "[^_]*.png")
	if err != nil {
		t.Fatal(err)
	}
	const n = 16
	q := divquant.ImageQuantizer{MaxIterations: 4}
	for _, p := range imgs {
		f, err := os.Open(p)
		if err != nil {
			t.Error(err) // skip files that can't be opened
			continue
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Error(err) // skip files that can't be decoded
			continue
		}
		pi, err := q.Quantize(img, n)
		if err != nil {
			t.Fatalf("%s: %v", p, err)
		}
		if len(pi.Palette) > n {
			t.Errorf("%s: palette has %d colors, want at most %d", p, len(pi.Palette), n)
		}
		pDir, pFile := filepath.Split(p)
		// prefix _ on file name marks this as a result
		fq, err := os.Create(fmt.Sprintf("%s_quant_%d_%s", pDir, n, pFile))
		if err != nil {
			t.Fatal(err) // probably can't create any others
		}
		err = png.Encode(fq, pi)
		fq.Close()
		if err != nil {
			t.Fatal(err) // any problem is probably a problem for all
		}
	}
}
