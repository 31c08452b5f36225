package swfio

import (
	"fmt"

	"golang.org/x/image/math/f64"
)

// RGBA is a color with straight (non-premultiplied) alpha.
type RGBA struct {
	R, G, B, A uint8
}

// Black is opaque black.
var Black = RGBA{A: 0xff}

// Alpha returns the alpha channel scaled to [0,1].
func (c RGBA) Alpha() float64 {
	return float64(c.A) / 255.0
}

// Hex returns the color part as a CSS-style hex string, e.g. "#ff0000".
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGBA) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ReadRGB reads a 3-byte color; alpha is implicitly opaque.
func (r *Reader) ReadRGB() (RGBA, error) {
	b, err := r.aligned(3)
	if err != nil {
		return RGBA{}, err
	}
	return RGBA{R: b[0], G: b[1], B: b[2], A: 0xff}, nil
}

// ReadRGBA reads a 4-byte color.
func (r *Reader) ReadRGBA() (RGBA, error) {
	b, err := r.aligned(4)
	if err != nil {
		return RGBA{}, err
	}
	return RGBA{R: b[0], G: b[1], B: b[2], A: b[3]}, nil
}

// ReadColor reads an RGB color for shape levels 1 and 2, RGBA otherwise.
func (r *Reader) ReadColor(level int) (RGBA, error) {
	if level <= 2 {
		return r.ReadRGB()
	}
	return r.ReadRGBA()
}

// --- Rectangles -------------------------------------------------------------

// Rect is a bit-packed rectangle in twips.
type Rect struct {
	XMin, XMax, YMin, YMax int32
}

// Width returns the horizontal extent in twips.
func (rc Rect) Width() int32 { return rc.XMax - rc.XMin }

// Height returns the vertical extent in twips.
func (rc Rect) Height() int32 { return rc.YMax - rc.YMin }

func (rc Rect) String() string {
	return fmt.Sprintf("[%g,%g .. %g,%g]", float64(rc.XMin)/20, float64(rc.YMin)/20,
		float64(rc.XMax)/20, float64(rc.YMax)/20)
}

// ReadRect reads a RECT: a 5-bit field width, then xmin, xmax, ymin, ymax.
func (r *Reader) ReadRect() (Rect, error) {
	r.Align()
	f := r.Fields()
	n := int(f.UB(5))
	rc := Rect{XMin: f.SB(n), XMax: f.SB(n), YMin: f.SB(n), YMax: f.SB(n)}
	return rc, f.Err()
}

// --- Matrices ---------------------------------------------------------------

// Matrix is a 2D affine transform. Translation is in twips.
//
//	x' = x*ScaleX + y*RotateSkew1 + TranslateX
//	y' = x*RotateSkew0 + y*ScaleY + TranslateY
type Matrix struct {
	ScaleX, ScaleY           float64
	RotateSkew0, RotateSkew1 float64
	TranslateX, TranslateY   int32
}

// IdentityMatrix is the neutral transform.
var IdentityMatrix = Matrix{ScaleX: 1, ScaleY: 1}

// Aff3 converts m to an affine matrix in row-major order.
func (m Matrix) Aff3() f64.Aff3 {
	return f64.Aff3{
		m.ScaleX, m.RotateSkew1, float64(m.TranslateX),
		m.RotateSkew0, m.ScaleY, float64(m.TranslateY),
	}
}

func (m Matrix) String() string {
	return fmt.Sprintf("[%.2f,%.2f,%.2f,%.2f,%d,%d]", m.ScaleX, m.RotateSkew0,
		m.RotateSkew1, m.ScaleY, m.TranslateX, m.TranslateY)
}

// ReadMatrix reads a MATRIX record.
func (r *Reader) ReadMatrix() (Matrix, error) {
	r.Align()
	f := r.Fields()
	m := IdentityMatrix
	if f.Flag() {
		n := int(f.UB(5))
		m.ScaleX, m.ScaleY = f.FB(n), f.FB(n)
	}
	if f.Flag() {
		n := int(f.UB(5))
		m.RotateSkew0, m.RotateSkew1 = f.FB(n), f.FB(n)
	}
	n := int(f.UB(5))
	m.TranslateX, m.TranslateY = f.SB(n), f.SB(n)
	if err := f.Err(); err != nil {
		return IdentityMatrix, err
	}
	return m, nil
}

// --- Color transforms -------------------------------------------------------

// ColorTransform is a CXFORM or CXFORMWITHALPHA record. Multiplication terms
// are 8.8 fixed-point values, 256 being neutral.
type ColorTransform struct {
	RedMult, GreenMult, BlueMult, AlphaMult int32
	RedAdd, GreenAdd, BlueAdd, AlphaAdd     int32
	HasAlpha                                bool
}

// IdentityColorTransform leaves colors unchanged.
var IdentityColorTransform = ColorTransform{RedMult: 256, GreenMult: 256, BlueMult: 256, AlphaMult: 256}

// Apply transforms a color, clamping each channel to [0,255].
func (cx ColorTransform) Apply(c RGBA) RGBA {
	ch := func(v uint8, mult, add int32) uint8 {
		x := int32(v)*mult/256 + add
		return uint8(max(0, min(255, x)))
	}
	out := RGBA{
		R: ch(c.R, cx.RedMult, cx.RedAdd),
		G: ch(c.G, cx.GreenMult, cx.GreenAdd),
		B: ch(c.B, cx.BlueMult, cx.BlueAdd),
		A: c.A,
	}
	if cx.HasAlpha {
		out.A = ch(c.A, cx.AlphaMult, cx.AlphaAdd)
	}
	return out
}

// ReadCXForm reads a color transform without alpha terms.
func (r *Reader) ReadCXForm() (ColorTransform, error) {
	return r.readCXForm(false)
}

// ReadCXFormWithAlpha reads a color transform with alpha terms.
func (r *Reader) ReadCXFormWithAlpha() (ColorTransform, error) {
	return r.readCXForm(true)
}

func (r *Reader) readCXForm(alpha bool) (ColorTransform, error) {
	r.Align()
	f := r.Fields()
	cx := IdentityColorTransform
	cx.HasAlpha = alpha
	hasAdd, hasMult := f.Flag(), f.Flag()
	n := int(f.UB(4))
	if hasMult {
		cx.RedMult, cx.GreenMult, cx.BlueMult = f.SB(n), f.SB(n), f.SB(n)
		if alpha {
			cx.AlphaMult = f.SB(n)
		}
	}
	if hasAdd {
		cx.RedAdd, cx.GreenAdd, cx.BlueAdd = f.SB(n), f.SB(n), f.SB(n)
		if alpha {
			cx.AlphaAdd = f.SB(n)
		}
	}
	if err := f.Err(); err != nil {
		return IdentityColorTransform, err
	}
	return cx, nil
}
