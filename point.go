// Package divquant implements a divisive hierarchical color quantizer:
// it reduces an RGB image to a palette of at most K representative
// colors and maps every input pixel to its nearest palette entry.
package divquant

// Point is a 24-bit RGB color packed into a machine word: blue in bits
// 0-7, green in bits 8-15, red in bits 16-23. Bits 24-31 are ignored on
// read and always zero on write.
type Point uint32

// NewPoint packs three 8-bit channels into a Point.
func NewPoint(r, g, b uint8) Point {
	return Point(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// R returns the red channel.
func (p Point) R() uint8 { return uint8(p >> 16) }

// G returns the green channel.
func (p Point) G() uint8 { return uint8(p >> 8) }

// B returns the blue channel.
func (p Point) B() uint8 { return uint8(p) }

// channel returns the value of the given axis (0=R, 1=G, 2=B).
func (p Point) channel(axis int) uint8 {
	switch axis {
	case 0:
		return p.R()
	case 1:
		return p.G()
	default:
		return p.B()
	}
}

// sum returns the sum of the three channels, used as the sort/LUT key
// by NearestMapper.
func (p Point) sum() int {
	return int(p.R()) + int(p.G()) + int(p.B())
}
