package divquant

import (
	"image"
	"image/color"
	"testing"
)

func TestPixelsFromImageRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	want := []color.RGBA{
		{R: 10, G: 20, B: 30, A: 255},
		{R: 40, G: 50, B: 60, A: 255},
		{R: 70, G: 80, B: 90, A: 255},
		{R: 100, G: 110, B: 120, A: 255},
	}
	img.Set(0, 0, want[0])
	img.Set(1, 0, want[1])
	img.Set(0, 1, want[2])
	img.Set(1, 1, want[3])

	pixels, w, h := PixelsFromImage(img)
	if w != 2 || h != 2 {
		t.Fatalf("dims = %dx%d, want 2x2", w, h)
	}
	for i, c := range want {
		got := pixels[i]
		if got.R() != c.R || got.G() != c.G || got.B() != c.B {
			t.Errorf("pixel %d = %v, want (%d,%d,%d)", i, got, c.R, c.G, c.B)
		}
	}
}

func TestImageFromPaletteMatchesMapped(t *testing.T) {
	palette := []Point{NewPoint(0, 0, 0), NewPoint(255, 255, 255)}
	mapped := []Point{palette[0], palette[1], palette[1], palette[0]}
	img := ImageFromPalette(palette, mapped, 2, 2)

	positions := [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	for i, pos := range positions {
		r, g, b, _ := img.At(pos[0], pos[1]).RGBA()
		want := mapped[i]
		if uint8(r>>8) != want.R() || uint8(g>>8) != want.G() || uint8(b>>8) != want.B() {
			t.Errorf("pixel (%d,%d) = (%d,%d,%d), want %v", pos[0], pos[1], r>>8, g>>8, b>>8, want)
		}
	}
}
