package divquant

import "sort"

// maxRGBSum is the largest possible value of R+G+B for an 8-bit pixel.
const maxRGBSum = 3 * 255

// mapEntry is one palette color as tracked by NearestMapper: its
// value, its channel sum (the sort/search key), and its index in the
// caller's original, unsorted palette.
type mapEntry struct {
	color Point
	sum   int
	orig  int
}

// NearestMapper is a Palette backed by the sum-indexed nearest-color
// search: palette entries are sorted by R+G+B, a lookup table seeds
// the search near a query color's own sum, and the search expands
// outward in sum order until the Cauchy-Schwarz bound lutSSD proves no
// closer entry remains on that side. Construction is O(n log n) in
// the palette size; each IndexNear call is typically O(1)-ish rather
// than the O(n) of a linear scan.
type NearestMapper struct {
	colors  []Point
	cmap    []mapEntry
	lutInit []int
	lutSSD  []int
}

// NewNearestPalette builds a NearestMapper over colors. colors must be
// non-empty.
func NewNearestPalette(colors []Point) *NearestMapper {
	n := len(colors)
	cmap := make([]mapEntry, n)
	for i, c := range colors {
		cmap[i] = mapEntry{color: c, sum: c.sum(), orig: i}
	}
	sort.Slice(cmap, func(i, j int) bool { return cmap[i].sum < cmap[j].sum })

	lutSSD := make([]int, 2*maxRGBSum+1)
	for k := 1; k <= maxRGBSum; k++ {
		v := (k * k) / 3
		lutSSD[maxRGBSum+k] = v
		lutSSD[maxRGBSum-k] = v
	}

	lutInit := make([]int, maxRGBSum+1)
	if n >= 2 {
		low := roundAvg(cmap[0].sum, cmap[1].sum)
		for k := 0; k < low && k <= maxRGBSum; k++ {
			lutInit[k] = 0
		}
		high := roundAvg(cmap[n-2].sum, cmap[n-1].sum)
		for k := high; k <= maxRGBSum; k++ {
			lutInit[k] = n - 1
		}
		for ic := 1; ic < n-1; ic++ {
			lo := roundAvg(cmap[ic-1].sum, cmap[ic].sum)
			hi := roundAvg(cmap[ic].sum, cmap[ic+1].sum)
			for k := lo; k < hi && k <= maxRGBSum; k++ {
				lutInit[k] = ic
			}
		}
	}

	return &NearestMapper{
		colors:  append([]Point(nil), colors...),
		cmap:    cmap,
		lutInit: lutInit,
		lutSSD:  lutSSD,
	}
}

// roundAvg returns round((a+b)/2) with .5 rounding up, the midpoint
// rule that decides which palette entry seeds the search for sums
// falling between two neighbors.
func roundAvg(a, b int) int {
	return int(0.5*float64(a+b) + 0.5)
}

func (m *NearestMapper) Len() int          { return len(m.colors) }
func (m *NearestMapper) Color(i int) Point { return m.colors[i] }

// ColorNear returns the palette color nearest c.
func (m *NearestMapper) ColorNear(c Point) Point { return m.colors[m.IndexNear(c)] }

// IndexNear returns the index, into the original palette passed to
// NewNearestPalette, of the entry closest to c in squared Euclidean
// distance. Ties keep whichever entry the search reaches first, which
// is always the lookup table's seed entry or a closer one found
// before it -- later equal-distance candidates never overwrite it.
func (m *NearestMapper) IndexNear(c Point) int {
	r, g, b := int(c.R()), int(c.G()), int(c.B())
	sum := r + g + b

	index := m.lutInit[sum]
	minDist := m.sqDist(r, g, b, index)

	down, up := true, true
	mi, ni := index, index
	last := len(m.cmap) - 1
	for down || up {
		if down {
			mi++
			if mi > last || m.lutSSD[maxRGBSum+sum-m.cmap[mi].sum] > minDist {
				down = false
			} else if d := m.sqDist(r, g, b, mi); d < minDist {
				minDist = d
				index = mi
			}
		}
		if up {
			ni--
			if ni < 0 || m.lutSSD[maxRGBSum+sum-m.cmap[ni].sum] > minDist {
				up = false
			} else if d := m.sqDist(r, g, b, ni); d < minDist {
				minDist = d
				index = ni
			}
		}
	}
	return m.cmap[index].orig
}

func (m *NearestMapper) sqDist(r, g, b, cmapIndex int) int {
	e := m.cmap[cmapIndex].color
	dr := r - int(e.R())
	dg := g - int(e.G())
	db := b - int(e.B())
	return dr*dr + dg*dg + db*db
}
