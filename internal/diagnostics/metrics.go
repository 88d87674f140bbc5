// Package diagnostics reports quantization quality and renders
// cluster-walk frames. Nothing in here is imported by the core
// quantization packages; it only consumes their public output.
package diagnostics

import (
	"fmt"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/mdejong/divquant"
)

// Metrics summarizes how much a quantized image diverged from its
// original, both in linear RGB and in perceptual (CIELAB) terms.
type Metrics struct {
	MSE    [3]float64 // per-channel mean squared error, R/G/B
	PSNR   float64    // decibels, computed from the mean of the channel MSEs
	MeanDE float64    // mean CIEDE2000 distance over all pixels
	NumPix int
}

// Report compares original against mapped pixel-for-pixel. Both slices
// must have the same length.
func Report(original, mapped []divquant.Point) (Metrics, error) {
	if len(original) != len(mapped) {
		return Metrics{}, fmt.Errorf("diagnostics: length mismatch: %d original vs %d mapped", len(original), len(mapped))
	}
	var m Metrics
	m.NumPix = len(original)
	if m.NumPix == 0 {
		return m, nil
	}

	var sqErr [3]float64
	var deSum float64
	for i, o := range original {
		p := mapped[i]
		dr := float64(o.R()) - float64(p.R())
		dg := float64(o.G()) - float64(p.G())
		db := float64(o.B()) - float64(p.B())
		sqErr[0] += dr * dr
		sqErr[1] += dg * dg
		sqErr[2] += db * db

		deSum += labDistance(o, p)
	}

	n := float64(m.NumPix)
	for c := 0; c < 3; c++ {
		m.MSE[c] = sqErr[c] / n
	}
	meanMSE := (m.MSE[0] + m.MSE[1] + m.MSE[2]) / 3
	if meanMSE == 0 {
		m.PSNR = infinitePSNR
	} else {
		m.PSNR = 10 * math.Log10(255*255/meanMSE)
	}
	m.MeanDE = deSum / n
	return m, nil
}

// infinitePSNR stands in for a perfect, lossless round-trip.
const infinitePSNR = 99.0

func labDistance(a, b divquant.Point) float64 {
	ca := colorful.Color{R: float64(a.R()) / 255, G: float64(a.G()) / 255, B: float64(a.B()) / 255}
	cb := colorful.Color{R: float64(b.R()) / 255, G: float64(b.G()) / 255, B: float64(b.B()) / 255}
	return ca.DistanceCIEDE2000(cb)
}

// WriteReport prints a human-readable summary of m to w.
func WriteReport(w io.Writer, m Metrics) error {
	_, err := fmt.Fprintf(w, "pixels: %d\nMSE (R,G,B): %.4f %.4f %.4f\nPSNR: %.2f dB\nmean CIEDE2000: %.4f\n",
		m.NumPix, m.MSE[0], m.MSE[1], m.MSE[2], m.PSNR, m.MeanDE)
	return err
}
