package divquant

import "image"

// Config holds every parameter of the quantize-and-map pipeline.
type Config struct {
	// K is the target palette size.
	K int
	// Width and Height are the pixel buffer's dimensions.
	Width, Height int
	// Bits is the per-channel bit depth the clustering itself runs at,
	// 1..8. Lower values trade fidelity for speed.
	Bits int
	// Decimation samples every Decimation'th row and column when
	// building the initial color set. 1 means every pixel.
	Decimation int
	// MaxIterations bounds the local 2-means refinement run after
	// each split. 0 disables refinement.
	MaxIterations int
	// AllUnique hints that the caller already knows every pixel in
	// the input is a distinct color, letting the Orchestrator skip
	// Deduplicate's hashing pass and use a uniform per-point weight.
	// It takes effect only when Bits is 8 and Decimation is 1.
	AllUnique bool
	// Snapshot, if non-nil, is forwarded to SplitCluster and receives
	// one notification per completed split (see SnapshotSink).
	Snapshot SnapshotSink
}

// validate checks cfg before any allocation.
func (cfg Config) validate() error {
	if cfg.K <= 0 {
		return invalidConfigf("K must be positive, got %d", cfg.K)
	}
	if cfg.Bits < 1 || cfg.Bits > 8 {
		return invalidConfigf("Bits must be in [1,8], got %d", cfg.Bits)
	}
	if cfg.Decimation <= 0 {
		return invalidConfigf("Decimation must be positive, got %d", cfg.Decimation)
	}
	if cfg.MaxIterations < 0 {
		return invalidConfigf("MaxIterations must be non-negative, got %d", cfg.MaxIterations)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return invalidConfigf("Width and Height must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	return nil
}

// QuantizeAndMap runs the full pipeline over pixels (length must equal
// Width*Height, row-major): bit reduction, deduplication, divisive
// clustering, palette construction, and nearest-color mapping. It
// returns the built palette (at most cfg.K entries, fewer if some
// clusters ended up empty) and a mapped buffer the same length as
// pixels, each entry replaced by its nearest palette color.
func QuantizeAndMap(cfg Config, pixels []Point) (palette []Point, mapped []Point, err error) {
	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}
	if len(pixels) != cfg.Width*cfg.Height {
		return nil, nil, invalidConfigf("pixels length %d does not match %dx%d", len(pixels), cfg.Width, cfg.Height)
	}

	reduced := make([]Point, len(pixels))
	if err := ReduceBits(pixels, reduced, cfg.Bits); err != nil {
		return nil, nil, err
	}

	// The fast uniform-weight path only applies when the caller's
	// "already unique" hint holds at full fidelity: bit reduction is a
	// no-op (Bits == 8) and no decimation drops pixels. Any other
	// combination can introduce post-reduction duplicates, so it falls
	// through to Deduplicate like the general case.
	fastUniform := cfg.AllUnique && cfg.Bits == 8 && cfg.Decimation == 1

	var colors []Point
	var weights []float64
	if fastUniform {
		colors = reduced
	} else {
		colors, weights, err = Deduplicate(reduced, cfg.Height, cfg.Width, cfg.Decimation)
		if err != nil {
			return nil, nil, err
		}
	}

	numClusters := cfg.K
	if numClusters > len(colors) {
		numClusters = len(colors)
	}

	weightUniform := 1.0
	if fastUniform {
		weightUniform = 1.0 / float64(len(pixels))
	}

	splitCfg := SplitConfig{
		NumClusters:   numClusters,
		NumBits:       cfg.Bits,
		MaxIterations: cfg.MaxIterations,
		Weights:       weights,
		WeightUniform: weightUniform,
		Snapshot:      cfg.Snapshot,
	}
	result, err := SplitCluster(colors, splitCfg)
	if err != nil {
		return nil, nil, err
	}

	palette, _ = BuildPalette(result, cfg.Bits)

	// Mapping runs over the original pixels, not the bit-reduced ones:
	// palette entries are full 8-bit colors, so reduced values would be
	// compared at the wrong scale.
	nearest := NewNearestPalette(palette)
	mapped = make([]Point, len(pixels))
	for i, p := range pixels {
		mapped[i] = nearest.ColorNear(p)
	}
	return palette, mapped, nil
}

// ImageQuantizer adapts QuantizeAndMap to a conventional quantizer
// shape: a single image.Image in, a paletted image out, palette size
// as the only tuning knob exposed at the call site.
type ImageQuantizer struct {
	Bits          int
	Decimation    int
	MaxIterations int
}

// Quantize reduces img to at most numColors colors.
func (q ImageQuantizer) Quantize(img image.Image, numColors int) (*image.Paletted, error) {
	pixels, w, h := PixelsFromImage(img)
	bits := q.Bits
	if bits == 0 {
		bits = 8
	}
	dec := q.Decimation
	if dec == 0 {
		dec = 1
	}
	cfg := Config{
		K:             numColors,
		Width:         w,
		Height:        h,
		Bits:          bits,
		Decimation:    dec,
		MaxIterations: q.MaxIterations,
	}
	palette, mapped, err := QuantizeAndMap(cfg, pixels)
	if err != nil {
		return nil, err
	}
	return ImageFromPalette(palette, mapped, w, h), nil
}
