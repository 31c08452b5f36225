package swfio

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

// Reader is a bit-level reader on a window of a random-access byte source.
// Positions are absolute offsets into the source.
//
// A Reader is not safe for concurrent use; all reads must happen in program order.
type Reader struct {
	src     io.ReaderAt
	base    int64 // first byte of the window
	end     int64 // first byte after the window
	pos     int64 // next unread byte
	pending uint  // bits of partial not yet consumed, 0..7
	partial byte  // byte currently being consumed bit-wise
	version uint8 // SWF version, selects string decoding
	buf     [8]byte
}

// NewReader creates a Reader for the first size bytes of src.
func NewReader(src io.ReaderAt, size int64) *Reader {
	if size < 0 {
		size = 0
	}
	return &Reader{src: src, end: size, version: 6}
}

// NewBytesReader creates a Reader on an in-memory byte slice.
func NewBytesReader(b []byte) *Reader {
	return NewReader(bytes.NewReader(b), int64(len(b)))
}

// Section returns a new Reader for the n bytes starting at the current
// position. The window is clipped to the end of r's window. Pending bits are
// not inherited.
func (r *Reader) Section(n int64) *Reader {
	start := r.pos
	end := r.end
	if n >= 0 && start+n < end {
		end = start + n
	}
	if start > end {
		start = end
	}
	return &Reader{src: r.src, base: start, end: end, pos: start, version: r.version}
}

// SetVersion sets the SWF version used for decoding strings.
func (r *Reader) SetVersion(v uint8) {
	r.version = v
}

// Version returns the SWF version used for decoding strings.
func (r *Reader) Version() uint8 {
	return r.version
}

// Pos returns the absolute position of the next unread byte.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Base returns the absolute start of the Reader's window.
func (r *Reader) Base() int64 {
	return r.base
}

// End returns the absolute end of the Reader's window (exclusive).
func (r *Reader) End() int64 {
	return r.end
}

// Len returns the size of the window in bytes.
func (r *Reader) Len() int64 {
	return r.end - r.base
}

// Remaining returns the number of unread bytes in the window. It is 0 if the
// position has been moved beyond the end of the window.
func (r *Reader) Remaining() int64 {
	if r.pos >= r.end {
		return 0
	}
	return r.end - r.pos
}

// Seek moves to an absolute position and discards pending bits. Positions
// beyond the end of the window are legal; subsequent reads will fail.
func (r *Reader) Seek(pos int64) error {
	if pos < r.base {
		return NewFormatError(pos, "seek before start of window at %d", r.base)
	}
	r.pos = pos
	r.pending = 0
	return nil
}

// Skip advances the position by n bytes and discards pending bits.
func (r *Reader) Skip(n int64) error {
	p, err := CheckedAddInt64(r.pos, n)
	if err != nil {
		return errFormat(err.Error())
	}
	return r.Seek(p)
}

// Align discards any pending bits of a partially consumed byte.
func (r *Reader) Align() {
	r.pending = 0
}

// Pending returns the number of bits of the current byte not yet consumed.
func (r *Reader) Pending() int {
	return int(r.pending)
}

// --- Bit fields ------------------------------------------------------------

// ReadUB reads an unsigned bit field of width n (0..32), most significant bit first.
// A width of 0 yields 0 and does not touch the input.
func (r *Reader) ReadUB(n int) (uint32, error) {
	if n == 0 {
		return 0, nil
	}
	if n < 0 || n > 32 {
		return 0, NewFormatError(r.pos, "invalid bit field width %d", n)
	}
	var v uint32
	for n > 0 {
		if r.pending == 0 {
			b, err := r.nextByte()
			if err != nil {
				return 0, err
			}
			r.partial, r.pending = b, 8
		}
		take := uint(n)
		if take > r.pending {
			take = r.pending
		}
		chunk := uint32(r.partial>>(r.pending-take)) & (1<<take - 1)
		v = v<<take | chunk
		r.pending -= take
		n -= int(take)
	}
	return v, nil
}

// ReadSB reads a signed two's complement bit field of width n (0..32).
func (r *Reader) ReadSB(n int) (int32, error) {
	u, err := r.ReadUB(n)
	if err != nil || n == 0 {
		return 0, err
	}
	shift := uint(32 - n)
	return int32(u<<shift) >> shift, nil
}

// ReadFB reads a signed 16.16 fixed-point bit field of width n.
func (r *Reader) ReadFB(n int) (float64, error) {
	v, err := r.ReadSB(n)
	return float64(v) / 65536.0, err
}

// ReadFlag reads a single bit as a boolean.
func (r *Reader) ReadFlag() (bool, error) {
	v, err := r.ReadUB(1)
	return v == 1, err
}

// --- Byte-aligned integers -------------------------------------------------

// ReadUI8 reads an unsigned byte.
func (r *Reader) ReadUI8() (uint8, error) {
	b, err := r.aligned(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadSI8 reads a signed byte.
func (r *Reader) ReadSI8() (int8, error) {
	v, err := r.ReadUI8()
	return int8(v), err
}

// ReadUI16 reads an unsigned little-endian 16-bit integer.
func (r *Reader) ReadUI16() (uint16, error) {
	b, err := r.aligned(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadSI16 reads a signed little-endian 16-bit integer.
func (r *Reader) ReadSI16() (int16, error) {
	v, err := r.ReadUI16()
	return int16(v), err
}

// ReadUI32 reads an unsigned little-endian 32-bit integer.
func (r *Reader) ReadUI32() (uint32, error) {
	b, err := r.aligned(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadSI32 reads a signed little-endian 32-bit integer.
func (r *Reader) ReadSI32() (int32, error) {
	v, err := r.ReadUI32()
	return int32(v), err
}

// ReadUI64 reads an unsigned little-endian 64-bit integer.
func (r *Reader) ReadUI64() (uint64, error) {
	b, err := r.aligned(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadFloat32 reads an IEEE 754 single precision float.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUI32()
	return math.Float32frombits(v), err
}

// ReadBytes reads n bytes into a fresh slice.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	r.Align()
	if n < 0 {
		return nil, NewFormatError(r.pos, "negative byte count %d", n)
	}
	if int64(n) > r.Remaining() {
		return nil, errTruncated(r.pos, n)
	}
	out := make([]byte, n)
	if err := r.readAt(out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadRest reads all bytes up to the end of the window.
func (r *Reader) ReadRest() ([]byte, error) {
	return r.ReadBytes(int(r.Remaining()))
}

// --- Internals -------------------------------------------------------------

func (r *Reader) aligned(n int) ([]byte, error) {
	r.Align()
	if int64(n) > r.Remaining() {
		return nil, errTruncated(r.pos, n)
	}
	b := r.buf[:n]
	if err := r.readAt(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *Reader) nextByte() (byte, error) {
	if r.pos >= r.end {
		return 0, errTruncated(r.pos, 1)
	}
	b := r.buf[:1]
	if err := r.readAt(b); err != nil {
		return 0, err
	}
	return b[0], nil
}

// readAt fills p from the current position and advances the position.
func (r *Reader) readAt(p []byte) error {
	n, err := r.src.ReadAt(p, r.pos)
	if n < len(p) {
		if err != nil && err != io.EOF {
			tracer().Errorf("source read failed at %d: %v", r.pos, err)
			return err
		}
		return errTruncated(r.pos, len(p))
	}
	r.pos += int64(n)
	return nil
}
