package divquant

import "testing"

func TestPointPacking(t *testing.T) {
	p := NewPoint(0x12, 0x34, 0x56)
	if p.R() != 0x12 || p.G() != 0x34 || p.B() != 0x56 {
		t.Fatalf("got (%02x %02x %02x), want (12 34 56)", p.R(), p.G(), p.B())
	}
	if uint32(p) != 0x00123456 {
		t.Fatalf("packed value = %#08x, want 0x00123456", uint32(p))
	}
}

func TestPointChannel(t *testing.T) {
	p := NewPoint(1, 2, 3)
	if p.channel(0) != 1 || p.channel(1) != 2 || p.channel(2) != 3 {
		t.Fatalf("channel accessors mismatched for %v", p)
	}
}
