package swfio

// Fields reads a sequence of values from a Reader and latches the first error.
// After an error every further read is a no-op returning a zero value, so a
// structure can be decoded field by field with a single error check at the end:
//
//	f := r.Fields()
//	id := f.UI16()
//	bounds := f.Rect()
//	if err := f.Err(); err != nil { … }
type Fields struct {
	r   *Reader
	err error
}

// Fields returns a latching field reader on r.
func (r *Reader) Fields() *Fields {
	return &Fields{r: r}
}

// Err returns the first error encountered, if any.
func (f *Fields) Err() error {
	return f.err
}

// Fail latches err unless an error has already been recorded.
func (f *Fields) Fail(err error) {
	if f.err == nil {
		f.err = err
	}
}

// OK reports whether no error has been recorded yet.
func (f *Fields) OK() bool {
	return f.err == nil
}

// Reader returns the underlying Reader.
func (f *Fields) Reader() *Reader {
	return f.r
}

func latch[T any](f *Fields, read func() (T, error)) T {
	var zero T
	if f.err != nil {
		return zero
	}
	v, err := read()
	if err != nil {
		f.err = err
		return zero
	}
	return v
}

// UB reads an unsigned bit field.
func (f *Fields) UB(n int) uint32 {
	return latch(f, func() (uint32, error) { return f.r.ReadUB(n) })
}

// SB reads a signed bit field.
func (f *Fields) SB(n int) int32 {
	return latch(f, func() (int32, error) { return f.r.ReadSB(n) })
}

// FB reads a fixed-point bit field.
func (f *Fields) FB(n int) float64 {
	return latch(f, func() (float64, error) { return f.r.ReadFB(n) })
}

// Flag reads a single bit.
func (f *Fields) Flag() bool {
	return latch(f, f.r.ReadFlag)
}

// UI8 reads an unsigned byte.
func (f *Fields) UI8() uint8 {
	return latch(f, f.r.ReadUI8)
}

// UI16 reads an unsigned 16-bit integer.
func (f *Fields) UI16() uint16 {
	return latch(f, f.r.ReadUI16)
}

// SI16 reads a signed 16-bit integer.
func (f *Fields) SI16() int16 {
	return latch(f, f.r.ReadSI16)
}

// UI32 reads an unsigned 32-bit integer.
func (f *Fields) UI32() uint32 {
	return latch(f, f.r.ReadUI32)
}

// Float32 reads a single precision float.
func (f *Fields) Float32() float32 {
	return latch(f, f.r.ReadFloat32)
}

// Float16 reads a half precision float.
func (f *Fields) Float16() float64 {
	return latch(f, f.r.ReadFloat16)
}

// Fixed reads a 16.16 fixed-point number.
func (f *Fields) Fixed() float64 {
	return latch(f, f.r.ReadFixed)
}

// Fixed8 reads an 8.8 fixed-point number.
func (f *Fields) Fixed8() float64 {
	return latch(f, f.r.ReadFixed8)
}

// EncodedU32 reads a variable length unsigned integer.
func (f *Fields) EncodedU32() uint32 {
	return latch(f, f.r.ReadEncodedU32)
}

// Text reads a NUL-terminated string.
func (f *Fields) Text() string {
	return latch(f, f.r.ReadString)
}

// Bytes reads n raw bytes.
func (f *Fields) Bytes(n int) []byte {
	return latch(f, func() ([]byte, error) { return f.r.ReadBytes(n) })
}

// Rest reads the remaining bytes of the window.
func (f *Fields) Rest() []byte {
	return latch(f, f.r.ReadRest)
}

// RGB reads a 3-byte color.
func (f *Fields) RGB() RGBA {
	return latch(f, f.r.ReadRGB)
}

// RGBA reads a 4-byte color.
func (f *Fields) RGBA() RGBA {
	return latch(f, f.r.ReadRGBA)
}

// Color reads an RGB or RGBA color, depending on the shape level.
func (f *Fields) Color(level int) RGBA {
	return latch(f, func() (RGBA, error) { return f.r.ReadColor(level) })
}

// Rect reads a RECT.
func (f *Fields) Rect() Rect {
	return latch(f, f.r.ReadRect)
}

// Matrix reads a MATRIX.
func (f *Fields) Matrix() Matrix {
	if f.err != nil {
		return IdentityMatrix
	}
	return latch(f, f.r.ReadMatrix)
}

// CXForm reads a color transform without alpha.
func (f *Fields) CXForm() ColorTransform {
	return latch(f, f.r.ReadCXForm)
}

// CXFormWithAlpha reads a color transform with alpha.
func (f *Fields) CXFormWithAlpha() ColorTransform {
	return latch(f, f.r.ReadCXFormWithAlpha)
}
