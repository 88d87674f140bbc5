package divquant

import "testing"

func TestRoundMeanToPointFourBit(t *testing.T) {
	// Pixel 0x123456 reduced to 4 bits per channel, then rounded back
	// out, must read 0x103050.
	reduced := NewPoint(0x12, 0x34, 0x56)
	dst := make([]Point, 1)
	if err := ReduceBits([]Point{reduced}, dst, 4); err != nil {
		t.Fatalf("ReduceBits: %v", err)
	}
	mean := pointTriple(dst[0])
	got := roundMeanToPoint(mean, 4)
	want := NewPoint(0x10, 0x30, 0x50)
	if got != want {
		t.Errorf("roundMeanToPoint = %#08x, want %#08x", uint32(got), uint32(want))
	}
}

func TestBuildPaletteDropsEmptyClusters(t *testing.T) {
	result := &ClusterResult{
		Means: []triple{{10, 20, 30}, {0, 0, 0}, {100, 110, 120}},
		Sizes: []int{5, 0, 3},
	}
	colors, remap := BuildPalette(result, 8)
	if len(colors) != 2 {
		t.Fatalf("got %d colors, want 2", len(colors))
	}
	if remap[0] != 0 || remap[1] != -1 || remap[2] != 1 {
		t.Errorf("remap = %v, want [0 -1 1]", remap)
	}
	if colors[0] != NewPoint(10, 20, 30) || colors[1] != NewPoint(100, 110, 120) {
		t.Errorf("unexpected colors %v", colors)
	}
}

func TestLinearPaletteIndexNear(t *testing.T) {
	p := NewLinearPalette([]Point{NewPoint(0, 0, 0), NewPoint(255, 255, 255), NewPoint(10, 10, 10)})
	if p.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", p.Len())
	}
	idx := p.IndexNear(NewPoint(12, 8, 11))
	if p.Color(idx) != NewPoint(10, 10, 10) {
		t.Errorf("IndexNear picked %v, want (10,10,10)", p.Color(idx))
	}
	if p.ColorNear(NewPoint(250, 250, 250)) != NewPoint(255, 255, 255) {
		t.Errorf("ColorNear picked wrong entry for near-white query")
	}
}
