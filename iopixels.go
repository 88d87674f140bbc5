package divquant

import (
	"image"
	"image/color"
)

// PixelsFromImage converts img into a row-major packed-pixel buffer
// plus its width and height. Each 16-bit-per-channel color.Color.RGBA()
// result is down-converted to 8 bits by truncating the low byte, the
// inverse of the 0x101 upscale color.RGBAModel applies.
func PixelsFromImage(img image.Image) (pixels []Point, w, h int) {
	b := img.Bounds()
	w, h = b.Dx(), b.Dy()
	pixels = make([]Point, w*h)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			pixels[i] = NewPoint(uint8(r>>8), uint8(g>>8), uint8(bl>>8))
			i++
		}
	}
	return pixels, w, h
}

// ImageFromPalette builds an *image.Paletted of the given dimensions
// from a built palette and a mapped pixel buffer (mapped[i] must equal
// one of palette's colors, as QuantizeAndMap guarantees). Pixels are
// matched back to a palette index by value since the pipeline deals
// in colors, not indices.
func ImageFromPalette(palette, mapped []Point, w, h int) *image.Paletted {
	cp := make(color.Palette, len(palette))
	index := make(map[Point]uint8, len(palette))
	for i, c := range palette {
		cp[i] = color.RGBA{c.R(), c.G(), c.B(), 0xff}
		index[c] = uint8(i)
	}
	img := image.NewPaletted(image.Rect(0, 0, w, h), cp)
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetColorIndex(x, y, index[mapped[i]])
			i++
		}
	}
	return img
}
