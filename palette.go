// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

package divquant

// Palette is a finite set of colors that supports nearest-color
// lookup. NearestMapper satisfies it, and so does linearPalette, kept
// as a brute-force oracle for tests; BuildPalette's plain []Point
// output is wrapped by NewNearestPalette or NewLinearPalette to get one.
type Palette interface {
	// Len returns the number of colors in the palette.
	Len() int
	// Color returns the i'th palette color, 0 <= i < Len().
	Color(i int) Point
	// IndexNear returns the index of the palette entry nearest p.
	IndexNear(p Point) int
	// ColorNear returns the palette entry nearest p.
	ColorNear(p Point) Point
}

// roundMeanToPoint rounds a weighted channel mean, computed on
// numBits-deep data, to the nearest integer, then left-shifts it back
// into the 8-bit range bit reduction took it out of:
// uint8(mean+0.5) << (8-numBits).
func roundMeanToPoint(mean triple, numBits int) Point {
	shift := uint(8 - numBits)
	r := uint8(mean[0]+0.5) << shift
	g := uint8(mean[1]+0.5) << shift
	b := uint8(mean[2]+0.5) << shift
	return NewPoint(r, g, b)
}

// BuildPalette converts a ClusterResult into a dense color list, with
// empty clusters dropped, plus a remap table from cluster id to
// palette index (-1 for a dropped empty cluster) so a caller can
// translate ClusterResult.Membership values into indices into colors.
func BuildPalette(result *ClusterResult, numBits int) (colors []Point, remap []int) {
	remap = make([]int, len(result.Sizes))
	colors = make([]Point, 0, len(result.Sizes))
	for ic, size := range result.Sizes {
		if size <= 0 {
			remap[ic] = -1
			continue
		}
		remap[ic] = len(colors)
		colors = append(colors, roundMeanToPoint(result.Means[ic], numBits))
	}
	return colors, remap
}

// linearPalette is a brute-force Palette: IndexNear does an exhaustive
// nearest-neighbor scan. It exists as a correctness oracle for
// NearestMapper's sum-indexed search, not for production use.
type linearPalette []Point

func (p linearPalette) Len() int          { return len(p) }
func (p linearPalette) Color(i int) Point { return p[i] }

func (p linearPalette) IndexNear(c Point) int {
	best, bestDist := 0, -1
	cr, cg, cb := int(c.R()), int(c.G()), int(c.B())
	for i, e := range p {
		dr := cr - int(e.R())
		dg := cg - int(e.G())
		db := cb - int(e.B())
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func (p linearPalette) ColorNear(c Point) Point { return p[p.IndexNear(c)] }

// NewLinearPalette returns a brute-force Palette over colors, by copy.
func NewLinearPalette(colors []Point) Palette {
	p := make(linearPalette, len(colors))
	copy(p, colors)
	return p
}
