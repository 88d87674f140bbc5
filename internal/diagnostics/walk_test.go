package diagnostics

import (
	"image"
	"testing"

	"github.com/mdejong/divquant"
)

func TestWalkFramesOneFramePerSplit(t *testing.T) {
	points := []divquant.Point{
		divquant.NewPoint(0, 0, 0), divquant.NewPoint(255, 0, 0),
		divquant.NewPoint(0, 255, 0), divquant.NewPoint(0, 0, 255),
	}
	var frames []ClusterSnapshot
	cfg := divquant.SplitConfig{
		NumClusters:   4,
		NumBits:       8,
		WeightUniform: 1.0,
		Snapshot:      NewSnapshotSink(&frames),
	}
	if _, err := divquant.SplitCluster(points, cfg); err != nil {
		t.Fatalf("SplitCluster: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("got %d recorded splits, want 3 (K-1 for K=4)", len(frames))
	}

	identity := []int{0, 1, 2, 3}
	imgs := WalkFrames(frames, identity, image.Pt(2, 2))
	if len(imgs) != len(frames) {
		t.Fatalf("got %d rendered frames, want %d", len(imgs), len(frames))
	}

	last := frames[len(frames)-1]
	lastImg := imgs[len(imgs)-1]
	for pos := 0; pos < 4; pos++ {
		x, y := pos%2, pos/2
		id := last.Member[pos]
		wantColor := last.Means[id]
		r, g, b, _ := lastImg.At(x, y).RGBA()
		if uint8(r>>8) != wantColor.R() || uint8(g>>8) != wantColor.G() || uint8(b>>8) != wantColor.B() {
			t.Errorf("pixel %d color mismatch: rendered (%d,%d,%d), want %v", pos, r>>8, g>>8, b>>8, wantColor)
		}
	}
}
