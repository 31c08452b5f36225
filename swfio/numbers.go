package swfio

import (
	"github.com/x448/float16"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// ReadFixed reads a signed 16.16 fixed-point number.
func (r *Reader) ReadFixed() (float64, error) {
	v, err := r.ReadSI32()
	return float64(v) / 65536.0, err
}

// ReadFixed8 reads a signed 8.8 fixed-point number.
func (r *Reader) ReadFixed8() (float64, error) {
	v, err := r.ReadSI16()
	return float64(v) / 256.0, err
}

// ReadFloat16 reads a half-precision float (1 sign bit, 5 exponent bits with
// base 15, 10 significand bits). Subnormals, infinities and NaN follow
// IEEE 754 binary16.
func (r *Reader) ReadFloat16() (float64, error) {
	v, err := r.ReadUI16()
	if err != nil {
		return 0, err
	}
	return float64(float16.Frombits(v).Float32()), nil
}

// ReadEncodedU32 reads a variable length unsigned integer of 1 to 5 bytes.
// Each byte contributes 7 bits, least significant group first; the top bit
// of a byte signals that another byte follows. Bits beyond 32 of the fifth
// byte are dropped.
func (r *Reader) ReadEncodedU32() (uint32, error) {
	var v uint32
	for i := 0; i < 5; i++ {
		b, err := r.ReadUI8()
		if err != nil {
			return 0, err
		}
		v |= uint32(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			break
		}
	}
	return v, nil
}

// ReadString reads a NUL-terminated string. Movies before SWF 6 encode text in
// the Windows code page, later versions use UTF-8.
func (r *Reader) ReadString() (string, error) {
	raw, err := r.ReadCString()
	if err != nil {
		return "", err
	}
	return r.DecodeText(raw), nil
}

// ReadCString reads the raw bytes of a NUL-terminated string, without the
// terminating NUL.
func (r *Reader) ReadCString() ([]byte, error) {
	r.Align()
	var raw []byte
	for {
		b, err := r.nextByte()
		if err != nil {
			return nil, err
		}
		if b == 0 {
			return raw, nil
		}
		if len(raw) >= MaxStringLength {
			return nil, NewFormatError(r.pos, "string exceeds %d bytes", MaxStringLength)
		}
		raw = append(raw, b)
	}
}

// DecodeText converts raw string bytes to UTF-8, depending on the SWF version
// of the Reader.
func (r *Reader) DecodeText(raw []byte) string {
	var dec *encoding.Decoder
	if r.version < 6 {
		dec = charmap.Windows1252.NewDecoder()
	} else {
		dec = unicode.UTF8.NewDecoder()
	}
	s, err := dec.Bytes(raw)
	if err != nil {
		tracer().Debugf("cannot decode string %q: %v", raw, err)
		return string(raw)
	}
	return string(s)
}
