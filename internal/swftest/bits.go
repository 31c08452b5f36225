/*
Package swftest builds synthetic SWF data for tests.

BitWriter produces bit-packed and byte-aligned values in exactly the layout
swfio.Reader consumes. The builders on top of it assemble tags, shapes and
complete uncompressed movies.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package swftest

import (
	"encoding/binary"
	"math/bits"
)

// BitWriter writes bit fields most significant bit first, and little-endian
// integers on byte boundaries.
type BitWriter struct {
	buf     []byte
	acc     byte
	pending uint // bits written into acc
}

// NewBitWriter creates an empty writer.
func NewBitWriter() *BitWriter {
	return &BitWriter{buf: make([]byte, 0, 64)}
}

// UB writes the lowest n bits of v.
func (w *BitWriter) UB(v uint32, n int) *BitWriter {
	for i := n - 1; i >= 0; i-- {
		w.acc = w.acc<<1 | byte(v>>uint(i)&1)
		w.pending++
		if w.pending == 8 {
			w.buf = append(w.buf, w.acc)
			w.acc, w.pending = 0, 0
		}
	}
	return w
}

// SB writes a signed value as an n-bit two's complement field.
func (w *BitWriter) SB(v int32, n int) *BitWriter {
	return w.UB(uint32(v), n)
}

// Flag writes a single bit.
func (w *BitWriter) Flag(b bool) *BitWriter {
	if b {
		return w.UB(1, 1)
	}
	return w.UB(0, 1)
}

// Align pads a partially written byte with zero bits.
func (w *BitWriter) Align() *BitWriter {
	if w.pending > 0 {
		w.acc <<= 8 - w.pending
		w.buf = append(w.buf, w.acc)
		w.acc, w.pending = 0, 0
	}
	return w
}

// UI8 writes a byte.
func (w *BitWriter) UI8(v uint8) *BitWriter {
	w.Align()
	w.buf = append(w.buf, v)
	return w
}

// UI16 writes a little-endian 16-bit integer.
func (w *BitWriter) UI16(v uint16) *BitWriter {
	w.Align()
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
	return w
}

// UI32 writes a little-endian 32-bit integer.
func (w *BitWriter) UI32(v uint32) *BitWriter {
	w.Align()
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
	return w
}

// Raw appends bytes.
func (w *BitWriter) Raw(b ...byte) *BitWriter {
	w.Align()
	w.buf = append(w.buf, b...)
	return w
}

// String writes a NUL-terminated string.
func (w *BitWriter) String(s string) *BitWriter {
	w.Align()
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, 0)
	return w
}

// EncodedU32 writes a variable length unsigned integer.
func (w *BitWriter) EncodedU32(v uint32) *BitWriter {
	w.Align()
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			w.buf = append(w.buf, b)
			return w
		}
		w.buf = append(w.buf, b|0x80)
	}
}

// Rect writes a RECT with the minimal field width.
func (w *BitWriter) Rect(xmin, xmax, ymin, ymax int32) *BitWriter {
	w.Align()
	n := SBits(xmin, xmax, ymin, ymax)
	w.UB(uint32(n), 5)
	for _, v := range []int32{xmin, xmax, ymin, ymax} {
		w.SB(v, n)
	}
	return w.Align()
}

// IdentityMatrix writes a MATRIX without scale, rotation and translation.
func (w *BitWriter) IdentityMatrix() *BitWriter {
	return w.Align().UB(0, 1).UB(0, 1).UB(0, 5).Align()
}

// TranslateMatrix writes a MATRIX carrying a translation only.
func (w *BitWriter) TranslateMatrix(tx, ty int32) *BitWriter {
	w.Align().UB(0, 1).UB(0, 1)
	n := SBits(tx, ty)
	w.UB(uint32(n), 5).SB(tx, n).SB(ty, n)
	return w.Align()
}

// Bytes returns the written data, padding a partial byte.
func (w *BitWriter) Bytes() []byte {
	w.Align()
	return w.buf
}

// Len returns the number of complete bytes written.
func (w *BitWriter) Len() int {
	return len(w.buf)
}

// SBits returns the minimal width of a signed bit field holding all values.
func SBits(values ...int32) int {
	n := 0
	for _, v := range values {
		if v < 0 {
			v = ^v
		}
		if b := bits.Len32(uint32(v)) + 1; b > n {
			n = b
		}
	}
	return n
}
