package diagnostics

import (
	"image"
	"image/color"

	"github.com/mdejong/divquant"
)

// ClusterSnapshot is one recorded step of a divisive split: the
// palette as it stood right after that split, and each point's
// current cluster membership. SplitCluster produces these through a
// divquant.SnapshotSink when the caller wants a "cluster walk".
type ClusterSnapshot struct {
	SplitIndex int
	Means      []divquant.Point
	Member     []int
	NumPoints  int
}

// snapshotSink adapts a *[]ClusterSnapshot to divquant.SnapshotSink.
type snapshotSink struct {
	frames *[]ClusterSnapshot
}

// NewSnapshotSink returns a divquant.SnapshotSink that appends one
// ClusterSnapshot per completed split to frames.
func NewSnapshotSink(frames *[]ClusterSnapshot) divquant.SnapshotSink {
	return &snapshotSink{frames: frames}
}

func (s *snapshotSink) OnSplit(splitIndex int, means []divquant.Point, member func(i int) int, numPoints int) {
	memberCopy := make([]int, numPoints)
	for i := 0; i < numPoints; i++ {
		memberCopy[i] = member(i)
	}
	meansCopy := make([]divquant.Point, len(means))
	copy(meansCopy, means)
	*s.frames = append(*s.frames, ClusterSnapshot{
		SplitIndex: splitIndex,
		Means:      meansCopy,
		Member:     memberCopy,
		NumPoints:  numPoints,
	})
}

// WalkFrames renders one paletted frame per recorded snapshot: every
// deduplicated point's pixel, wherever it appears in the original
// w x h image, colored by its membership's cluster mean at that step.
// pointIndex maps an original pixel's row-major position to the
// deduplicated point index whose membership decides its color; pass
// identity (0..w*h-1) when the pipeline ran with AllUnique.
func WalkFrames(steps []ClusterSnapshot, pointIndex []int, size image.Point) []*image.Paletted {
	frames := make([]*image.Paletted, len(steps))
	for i, step := range steps {
		cp := make(color.Palette, len(step.Means))
		for j, m := range step.Means {
			cp[j] = color.RGBA{m.R(), m.G(), m.B(), 0xff}
		}
		img := image.NewPaletted(image.Rectangle{Max: size}, cp)
		for pos, pi := range pointIndex {
			x, y := pos%size.X, pos/size.X
			id := step.Member[pi]
			if id >= len(cp) {
				id = len(cp) - 1
			}
			img.SetColorIndex(x, y, uint8(id))
		}
		frames[i] = img
	}
	return frames
}
