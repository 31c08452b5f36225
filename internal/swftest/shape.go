package swftest

// ShapeWriter writes a shape record stream. It tracks the fill and line index
// widths, which change with style-change records declaring new styles.
type ShapeWriter struct {
	w        *BitWriter
	fillBits int
	lineBits int
}

// NewShape starts a SHAPE: index bit widths, then records.
func NewShape(fillBits, lineBits int) *ShapeWriter {
	sw := &ShapeWriter{w: NewBitWriter(), fillBits: fillBits, lineBits: lineBits}
	sw.w.UB(uint32(fillBits), 4).UB(uint32(lineBits), 4)
	return sw
}

// NewShapeWithStyle starts a SHAPEWITHSTYLE from an encoded style array block
// (see StyleArrays).
func NewShapeWithStyle(styles []byte, fillBits, lineBits int) *ShapeWriter {
	sw := &ShapeWriter{w: NewBitWriter(), fillBits: fillBits, lineBits: lineBits}
	sw.w.Raw(styles...).UB(uint32(fillBits), 4).UB(uint32(lineBits), 4)
	return sw
}

// StyleChange describes a style-change record. Nil fields are not written.
type StyleChange struct {
	MoveTo      *[2]int32
	Fill0       *uint32
	Fill1       *uint32
	Line        *uint32
	NewStyles   []byte // encoded style array block
	NewFillBits int
	NewLineBits int
}

// Index returns a pointer to a style index, for use in StyleChange.
func Index(inx uint32) *uint32 {
	return &inx
}

// At returns a pointer to a move-to target, for use in StyleChange.
func At(x, y int32) *[2]int32 {
	return &[2]int32{x, y}
}

// Change writes a style-change record.
func (sw *ShapeWriter) Change(c StyleChange) *ShapeWriter {
	var state uint32
	if c.NewStyles != nil {
		state |= 0x10
	}
	if c.Line != nil {
		state |= 0x08
	}
	if c.Fill1 != nil {
		state |= 0x04
	}
	if c.Fill0 != nil {
		state |= 0x02
	}
	if c.MoveTo != nil {
		state |= 0x01
	}
	sw.w.UB(0, 1).UB(state, 5)
	if c.MoveTo != nil {
		n := SBits(c.MoveTo[0], c.MoveTo[1])
		sw.w.UB(uint32(n), 5).SB(c.MoveTo[0], n).SB(c.MoveTo[1], n)
	}
	if c.Fill0 != nil {
		sw.w.UB(*c.Fill0, sw.fillBits)
	}
	if c.Fill1 != nil {
		sw.w.UB(*c.Fill1, sw.fillBits)
	}
	if c.Line != nil {
		sw.w.UB(*c.Line, sw.lineBits)
	}
	if c.NewStyles != nil {
		sw.w.Raw(c.NewStyles...)
		sw.w.UB(uint32(c.NewFillBits), 4).UB(uint32(c.NewLineBits), 4)
		sw.fillBits, sw.lineBits = c.NewFillBits, c.NewLineBits
	}
	return sw
}

// MoveTo writes a style-change record with a move-to only.
func (sw *ShapeWriter) MoveTo(x, y int32) *ShapeWriter {
	return sw.Change(StyleChange{MoveTo: At(x, y)})
}

// Line writes a straight edge record. Axis-parallel lines are written in
// their short form.
func (sw *ShapeWriter) Line(dx, dy int32) *ShapeWriter {
	n := max(SBits(dx, dy), 2)
	sw.w.UB(1, 1).UB(1, 1).UB(uint32(n-2), 4)
	switch {
	case dx != 0 && dy != 0:
		sw.w.UB(1, 1).SB(dx, n).SB(dy, n)
	case dx == 0:
		sw.w.UB(0, 1).UB(1, 1).SB(dy, n) // vertical
	default:
		sw.w.UB(0, 1).UB(0, 1).SB(dx, n)
	}
	return sw
}

// Curve writes a curved edge record.
func (sw *ShapeWriter) Curve(cdx, cdy, adx, ady int32) *ShapeWriter {
	n := max(SBits(cdx, cdy, adx, ady), 2)
	sw.w.UB(1, 1).UB(0, 1).UB(uint32(n-2), 4)
	sw.w.SB(cdx, n).SB(cdy, n).SB(adx, n).SB(ady, n)
	return sw
}

// Square writes the four edges of a clockwise square, starting at the
// current pen position.
func (sw *ShapeWriter) Square(size int32) *ShapeWriter {
	return sw.Line(size, 0).Line(0, size).Line(-size, 0).Line(0, -size)
}

// End writes the end record and pads to a full byte.
func (sw *ShapeWriter) End() *ShapeWriter {
	sw.w.UB(0, 6).Align()
	return sw
}

// Bytes returns the encoded shape.
func (sw *ShapeWriter) Bytes() []byte {
	return sw.w.Bytes()
}

// --- Styles ----------------------------------------------------------------

// SolidFillRGB encodes a solid fill style for shape levels 1 and 2.
func SolidFillRGB(r, g, b uint8) []byte {
	return []byte{0x00, r, g, b}
}

// SolidFillRGBA encodes a solid fill style for shape levels 3 and 4.
func SolidFillRGBA(r, g, b, a uint8) []byte {
	return []byte{0x00, r, g, b, a}
}

// LinearGradientRGB encodes a linear gradient fill with an identity matrix.
// Every stop is ratio, r, g, b.
func LinearGradientRGB(stops ...[4]uint8) []byte {
	w := NewBitWriter().UI8(0x10).IdentityMatrix()
	w.UB(0, 2).UB(0, 2).UB(uint32(len(stops)), 4)
	for _, s := range stops {
		w.Raw(s[:]...)
	}
	return w.Bytes()
}

// BitmapFill encodes a bitmap fill of the given kind (0x40..0x43) with an
// identity matrix.
func BitmapFill(kind uint8, id uint16) []byte {
	return NewBitWriter().UI8(kind).UI16(id).IdentityMatrix().Bytes()
}

// LineStyleRGB encodes a LINESTYLE for shape levels 1 and 2.
func LineStyleRGB(width uint16, r, g, b uint8) []byte {
	return NewBitWriter().UI16(width).Raw(r, g, b).Bytes()
}

// StyleArrays encodes a fill style array followed by a line style array.
func StyleArrays(fills [][]byte, lines [][]byte) []byte {
	w := NewBitWriter()
	count := func(n int) {
		if n < 0xff {
			w.UI8(uint8(n))
		} else {
			w.UI8(0xff).UI16(uint16(n))
		}
	}
	count(len(fills))
	for _, f := range fills {
		w.Raw(f...)
	}
	count(len(lines))
	for _, l := range lines {
		w.Raw(l...)
	}
	return w.Bytes()
}
