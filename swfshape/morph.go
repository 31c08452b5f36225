package swfshape

import (
	"fmt"

	"github.com/npillmayer/swf/swfio"
)

// MorphGradientRecord is a color stop of a morph gradient, at the start and
// at the end of the morph.
type MorphGradientRecord struct {
	StartRatio uint8
	StartColor swfio.RGBA
	EndRatio   uint8
	EndColor   swfio.RGBA
}

// MorphFillStyle is a fill style interpolated between a start and an end
// state. Type is one of the fill type bytes; only the fields of the
// respective kind are set.
type MorphFillStyle struct {
	Type                   uint8
	StartColor, EndColor   swfio.RGBA
	StartMatrix, EndMatrix swfio.Matrix // gradient or bitmap matrix
	Gradient               []MorphGradientRecord
	BitmapID               uint16
}

// Start returns the fill style at the start of the morph.
func (mf MorphFillStyle) Start() FillStyle {
	return mf.project(true)
}

// End returns the fill style at the end of the morph.
func (mf MorphFillStyle) End() FillStyle {
	return mf.project(false)
}

func (mf MorphFillStyle) project(start bool) FillStyle {
	pick := func(a, b swfio.RGBA) swfio.RGBA {
		if start {
			return a
		}
		return b
	}
	m := mf.EndMatrix
	if start {
		m = mf.StartMatrix
	}
	switch mf.Type {
	case fillSolid:
		return SolidFill{Color: pick(mf.StartColor, mf.EndColor)}
	case fillLinearGradient, fillRadialGradient:
		g := GradientFill{Kind: LinearGradient, Matrix: m}
		if mf.Type == fillRadialGradient {
			g.Kind = RadialGradient
		}
		for _, rec := range mf.Gradient {
			if start {
				g.Records = append(g.Records, GradientRecord{Ratio: rec.StartRatio, Color: rec.StartColor})
			} else {
				g.Records = append(g.Records, GradientRecord{Ratio: rec.EndRatio, Color: rec.EndColor})
			}
		}
		return g
	}
	return newBitmapFill(mf.Type, mf.BitmapID, m)
}

// ReadMorphFillStyle reads a MORPHFILLSTYLE. Colors are always RGBA.
func ReadMorphFillStyle(r *swfio.Reader) (MorphFillStyle, error) {
	start := r.Pos()
	f := r.Fields()
	mf := MorphFillStyle{Type: f.UI8()}
	if !f.OK() {
		return mf, f.Err()
	}
	switch mf.Type {
	case fillSolid:
		mf.StartColor, mf.EndColor = f.RGBA(), f.RGBA()
	case fillLinearGradient, fillRadialGradient:
		mf.StartMatrix, mf.EndMatrix = f.Matrix(), f.Matrix()
		n := int(f.UI8())
		if n > swfio.MaxGradientCount {
			return mf, swfio.NewFormatError(start, "morph gradient with %d records", n)
		}
		for range n {
			rec := MorphGradientRecord{
				StartRatio: f.UI8(),
				StartColor: f.RGBA(),
				EndRatio:   f.UI8(),
				EndColor:   f.RGBA(),
			}
			mf.Gradient = append(mf.Gradient, rec)
		}
	case fillRepeatingBitmap, fillClippedBitmap, fillRepeatingHard, fillClippedHard:
		mf.BitmapID = f.UI16()
		mf.StartMatrix, mf.EndMatrix = f.Matrix(), f.Matrix()
	default:
		return mf, swfio.NewFormatError(start, "unknown morph fill style type 0x%02x", mf.Type)
	}
	return mf, f.Err()
}

// MorphLineStyle is a MORPHLINESTYLE or MORPHLINESTYLE2.
type MorphLineStyle struct {
	StartWidth, EndWidth uint16
	StartColor, EndColor swfio.RGBA
	Fill                 Option[MorphFillStyle]
	Style                LineStyle // caps, join and flags; width and color unused
}

// Start returns the line style at the start of the morph.
func (ml MorphLineStyle) Start() LineStyle {
	ls := ml.Style
	ls.Width, ls.Color = ml.StartWidth, ml.StartColor
	if fill, ok := ml.Fill.Unwrap(); ok {
		ls.Fill = fill.Start()
		ls.Color = strokeColor(ls.Fill, ls.Color)
	}
	return ls
}

// End returns the line style at the end of the morph.
func (ml MorphLineStyle) End() LineStyle {
	ls := ml.Style
	ls.Width, ls.Color = ml.EndWidth, ml.EndColor
	if fill, ok := ml.Fill.Unwrap(); ok {
		ls.Fill = fill.End()
		ls.Color = strokeColor(ls.Fill, ls.Color)
	}
	return ls
}

// strokeColor is the color of a solid stroke fill, or c for other fills.
func strokeColor(fill FillStyle, c swfio.RGBA) swfio.RGBA {
	if solid, ok := fill.(SolidFill); ok {
		return solid.Color
	}
	return c
}

func (ml MorphLineStyle) String() string {
	return fmt.Sprintf("width %d..%d, color %s..%s", ml.StartWidth, ml.EndWidth,
		ml.StartColor, ml.EndColor)
}

// ReadMorphLineStyle reads a MORPHLINESTYLE (version 1) or a MORPHLINESTYLE2
// (version 2, DefineMorphShape2).
func ReadMorphLineStyle(r *swfio.Reader, version int) (MorphLineStyle, error) {
	f := r.Fields()
	ml := MorphLineStyle{StartWidth: f.UI16(), EndWidth: f.UI16()}
	ml.Style = NewLineStyle(0, swfio.Black)
	if version < 2 {
		ml.StartColor, ml.EndColor = f.RGBA(), f.RGBA()
		return ml, f.Err()
	}
	ls := &ml.Style
	ls.StartCap = CapStyle(f.UB(2))
	ls.Join = JoinStyle(f.UB(2))
	ls.HasFill = f.Flag()
	ls.NoHScale = f.Flag()
	ls.NoVScale = f.Flag()
	ls.PixelHinting = f.Flag()
	f.UB(5)
	ls.NoClose = f.Flag()
	ls.EndCap = CapStyle(f.UB(2))
	if ls.Join == MiterJoin {
		ls.MiterLimit = f.Fixed8()
	}
	if !f.OK() {
		return ml, f.Err()
	}
	if ls.HasFill {
		fill, err := ReadMorphFillStyle(r)
		if err != nil {
			return ml, err
		}
		ml.Fill = Some(fill)
		return ml, nil
	}
	ml.StartColor, ml.EndColor = f.RGBA(), f.RGBA()
	return ml, f.Err()
}

// ReadMorphStyleArrays reads a MORPHFILLSTYLEARRAY followed by a
// MORPHLINESTYLEARRAY.
func ReadMorphStyleArrays(r *swfio.Reader, version int) ([]MorphFillStyle, []MorphLineStyle, error) {
	r.Align()
	n, err := readStyleCount(r, 2)
	if err != nil {
		return nil, nil, err
	}
	fills := make([]MorphFillStyle, 0, n)
	for i := range n {
		mf, err := ReadMorphFillStyle(r)
		if err != nil {
			return nil, nil, fmt.Errorf("morph fill style %d: %w", i+1, err)
		}
		fills = append(fills, mf)
	}
	if n, err = readStyleCount(r, 2); err != nil {
		return nil, nil, err
	}
	lines := make([]MorphLineStyle, 0, n)
	for i := range n {
		ml, err := ReadMorphLineStyle(r, version)
		if err != nil {
			return nil, nil, fmt.Errorf("morph line style %d: %w", i+1, err)
		}
		lines = append(lines, ml)
	}
	return fills, lines, nil
}

// MorphStartStyles projects morph styles onto the styles at the start of the morph.
func MorphStartStyles(fills []MorphFillStyle, lines []MorphLineStyle) ([]FillStyle, []LineStyle) {
	fs := make([]FillStyle, len(fills))
	for i, mf := range fills {
		fs[i] = mf.Start()
	}
	ls := make([]LineStyle, len(lines))
	for i, ml := range lines {
		ls[i] = ml.Start()
	}
	return fs, ls
}

// MorphEndStyles projects morph styles onto the styles at the end of the morph.
func MorphEndStyles(fills []MorphFillStyle, lines []MorphLineStyle) ([]FillStyle, []LineStyle) {
	fs := make([]FillStyle, len(fills))
	for i, mf := range fills {
		fs[i] = mf.End()
	}
	ls := make([]LineStyle, len(lines))
	for i, ml := range lines {
		ls[i] = ml.End()
	}
	return fs, ls
}

// WithStyles returns a copy of s using the given initial style tables. Morph
// shapes store their styles apart from the edges.
func (s *Shape) WithStyles(fills []FillStyle, lines []LineStyle) *Shape {
	return NewShape(s.Level, s.Divisor, fills, lines, s.Records)
}
