package swfshape

import (
	"fmt"

	"github.com/npillmayer/swf/swfio"
)

// Fill style type bytes.
const (
	fillSolid           = 0x00
	fillLinearGradient  = 0x10
	fillRadialGradient  = 0x12
	fillFocalGradient   = 0x13
	fillRepeatingBitmap = 0x40
	fillClippedBitmap   = 0x41
	fillRepeatingHard   = 0x42
	fillClippedHard     = 0x43
)

// FillStyle is a fill style entry. Concrete types are SolidFill, GradientFill
// and BitmapFill.
type FillStyle interface {
	Type() uint8 // type byte as found in the data
	isFillStyle()
}

// SolidFill paints with a single color.
type SolidFill struct {
	Color swfio.RGBA
}

// Type returns 0x00.
func (SolidFill) Type() uint8 { return fillSolid }
func (SolidFill) isFillStyle() {}

func (f SolidFill) String() string {
	return "solid " + f.Color.String()
}

// GradientKind distinguishes linear, radial and focal radial gradients.
type GradientKind uint8

const (
	LinearGradient GradientKind = iota
	RadialGradient
	FocalGradient
)

func (k GradientKind) String() string {
	switch k {
	case LinearGradient:
		return "linear"
	case RadialGradient:
		return "radial"
	case FocalGradient:
		return "focal"
	}
	return "<unknown>"
}

// SpreadMode tells how a gradient is continued outside its range.
type SpreadMode uint8

const (
	SpreadPad SpreadMode = iota
	SpreadReflect
	SpreadRepeat
)

func (m SpreadMode) String() string {
	switch m {
	case SpreadPad:
		return "pad"
	case SpreadReflect:
		return "reflect"
	case SpreadRepeat:
		return "repeat"
	}
	return fmt.Sprintf("spread(%d)", uint8(m))
}

// InterpolationMode selects the color space of gradient interpolation.
type InterpolationMode uint8

const (
	InterpolateRGB InterpolationMode = iota
	InterpolateLinearRGB
)

func (m InterpolationMode) String() string {
	if m == InterpolateLinearRGB {
		return "linearRGB"
	}
	return "RGB"
}

// GradientRecord is a color stop. Ratio 0 maps to the start of the gradient
// square, 255 to its end.
type GradientRecord struct {
	Ratio uint8
	Color swfio.RGBA
}

// GradientFill paints with a linear or radial color gradient.
type GradientFill struct {
	Kind          GradientKind
	Matrix        swfio.Matrix // maps the gradient square to shape coordinates
	Spread        SpreadMode
	Interpolation InterpolationMode
	Records       []GradientRecord
	Focal         Option[float64] // focal point of focal gradients, -1..1
}

// Type returns the gradient's type byte.
func (f GradientFill) Type() uint8 {
	switch f.Kind {
	case RadialGradient:
		return fillRadialGradient
	case FocalGradient:
		return fillFocalGradient
	}
	return fillLinearGradient
}

func (GradientFill) isFillStyle() {}

func (f GradientFill) String() string {
	return fmt.Sprintf("%s gradient, %d stops", f.Kind, len(f.Records))
}

// BitmapFill paints with a bitmap character.
type BitmapFill struct {
	Kind     uint8 // 0x40..0x43
	BitmapID uint16
	Matrix   swfio.Matrix
	Repeat   bool // tile the bitmap, otherwise clip it
	Smooth   bool // smooth the bitmap when scaling
}

// Type returns the fill's type byte.
func (f BitmapFill) Type() uint8 { return f.Kind }

func (BitmapFill) isFillStyle() {}

func (f BitmapFill) String() string {
	return fmt.Sprintf("bitmap #%d", f.BitmapID)
}

func newBitmapFill(kind uint8, id uint16, m swfio.Matrix) BitmapFill {
	return BitmapFill{
		Kind:     kind,
		BitmapID: id,
		Matrix:   m,
		Repeat:   kind == fillRepeatingBitmap || kind == fillRepeatingHard,
		Smooth:   kind == fillRepeatingBitmap || kind == fillClippedBitmap,
	}
}

// ReadFillStyle reads a FILLSTYLE. Shape levels 1 and 2 store colors as RGB,
// levels 3 and 4 as RGBA. An unknown fill type is a format error, as the
// extent of the style's data cannot be determined.
func ReadFillStyle(r *swfio.Reader, level int) (FillStyle, error) {
	start := r.Pos()
	typ, err := r.ReadUI8()
	if err != nil {
		return nil, err
	}
	f := r.Fields()
	switch typ {
	case fillSolid:
		fill := SolidFill{Color: f.Color(level)}
		return fill, f.Err()
	case fillLinearGradient, fillRadialGradient, fillFocalGradient:
		fill := GradientFill{Kind: LinearGradient, Matrix: f.Matrix()}
		if typ == fillRadialGradient {
			fill.Kind = RadialGradient
		} else if typ == fillFocalGradient {
			fill.Kind = FocalGradient
		}
		if f.OK() {
			readGradient(f, &fill, level, typ == fillFocalGradient)
		}
		return fill, f.Err()
	case fillRepeatingBitmap, fillClippedBitmap, fillRepeatingHard, fillClippedHard:
		id := f.UI16()
		fill := newBitmapFill(typ, id, f.Matrix())
		return fill, f.Err()
	}
	return nil, swfio.NewFormatError(start, "unknown fill style type 0x%02x", typ)
}

// readGradient reads a GRADIENT or FOCALGRADIENT into fill.
func readGradient(f *swfio.Fields, fill *GradientFill, level int, focal bool) {
	f.Reader().Align()
	fill.Spread = SpreadMode(f.UB(2))
	fill.Interpolation = InterpolationMode(f.UB(2))
	n := int(f.UB(4))
	fill.Records = make([]GradientRecord, 0, n)
	for range n {
		rec := GradientRecord{Ratio: f.UI8(), Color: f.Color(level)}
		if !f.OK() {
			return
		}
		fill.Records = append(fill.Records, rec)
	}
	if focal {
		fill.Focal = Some(f.Fixed8())
	}
}

// --- Line styles -----------------------------------------------------------

// CapStyle is the shape of a line's end points.
type CapStyle uint8

const (
	RoundCap CapStyle = iota
	NoCap
	SquareCap
)

func (c CapStyle) String() string {
	switch c {
	case RoundCap:
		return "round"
	case NoCap:
		return "none"
	case SquareCap:
		return "square"
	}
	return fmt.Sprintf("cap(%d)", uint8(c))
}

// JoinStyle is the shape of the join between two line segments.
type JoinStyle uint8

const (
	RoundJoin JoinStyle = iota
	BevelJoin
	MiterJoin
)

func (j JoinStyle) String() string {
	switch j {
	case RoundJoin:
		return "round"
	case BevelJoin:
		return "bevel"
	case MiterJoin:
		return "miter"
	}
	return fmt.Sprintf("join(%d)", uint8(j))
}

// DefaultMiterLimit is the miter limit factor of lines without an explicit one.
const DefaultMiterLimit = 3.0

// LineStyle is a LINESTYLE (shape levels 1 to 3) or LINESTYLE2 (level 4) entry.
// Width is in twips. For HasFill lines Fill holds the style the stroke is
// painted with, otherwise Color.
type LineStyle struct {
	Width        uint16
	Color        swfio.RGBA
	Fill         FillStyle
	StartCap     CapStyle
	EndCap       CapStyle
	Join         JoinStyle
	MiterLimit   float64
	HasFill      bool
	NoHScale     bool
	NoVScale     bool
	PixelHinting bool
	NoClose      bool
}

// NewLineStyle returns a line style with default caps, join and miter limit.
func NewLineStyle(width uint16, color swfio.RGBA) LineStyle {
	return LineStyle{
		Width:      width,
		Color:      color,
		StartCap:   RoundCap,
		EndCap:     RoundCap,
		Join:       RoundJoin,
		MiterLimit: DefaultMiterLimit,
	}
}

func (ls LineStyle) String() string {
	if ls.HasFill && ls.Fill != nil {
		return fmt.Sprintf("width %d, fill %v", ls.Width, ls.Fill)
	}
	return fmt.Sprintf("width %d, color %s", ls.Width, ls.Color)
}

// ScaleMode derives the stroke scale mode from the no-scale flags.
func (ls LineStyle) ScaleMode() ScaleMode {
	switch {
	case ls.NoHScale && ls.NoVScale:
		return ScaleNone
	case ls.NoHScale:
		return ScaleHorizontal
	case ls.NoVScale:
		return ScaleVertical
	}
	return ScaleNormal
}

// ReadLineStyle reads a LINESTYLE for shape levels 1 to 3 and a LINESTYLE2 for level 4.
func ReadLineStyle(r *swfio.Reader, level int) (LineStyle, error) {
	f := r.Fields()
	ls := NewLineStyle(f.UI16(), swfio.Black)
	if level <= 3 {
		ls.Color = f.Color(level)
		return ls, f.Err()
	}
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
		return ls, f.Err()
	}
	if ls.HasFill {
		fill, err := ReadFillStyle(r, level)
		if err != nil {
			return ls, err
		}
		ls.Fill = fill
		ls.Color = strokeColor(fill, ls.Color)
		return ls, nil
	}
	ls.Color = f.RGBA()
	return ls, f.Err()
}

// --- Style arrays ----------------------------------------------------------

// readStyleCount reads the length prefix of a style array. From shape level 2
// on, 0xFF escapes to a 16-bit count.
func readStyleCount(r *swfio.Reader, level int) (int, error) {
	start := r.Pos()
	n8, err := r.ReadUI8()
	if err != nil {
		return 0, err
	}
	n := int(n8)
	if level >= 2 && n8 == 0xff {
		n16, err := r.ReadUI16()
		if err != nil {
			return 0, err
		}
		n = int(n16)
	}
	if n > swfio.MaxStyleCount || int64(n) > r.Remaining() {
		return 0, swfio.NewFormatError(start, "style count %d exceeds available data", n)
	}
	return n, nil
}

// ReadStyleArrays reads a FILLSTYLEARRAY followed by a LINESTYLEARRAY.
func ReadStyleArrays(r *swfio.Reader, level int) ([]FillStyle, []LineStyle, error) {
	r.Align()
	n, err := readStyleCount(r, level)
	if err != nil {
		return nil, nil, err
	}
	fills := make([]FillStyle, 0, n)
	for i := range n {
		fill, err := ReadFillStyle(r, level)
		if err != nil {
			return nil, nil, fmt.Errorf("fill style %d: %w", i+1, err)
		}
		fills = append(fills, fill)
	}
	if n, err = readStyleCount(r, level); err != nil {
		return nil, nil, err
	}
	lines := make([]LineStyle, 0, n)
	for i := range n {
		ls, err := ReadLineStyle(r, level)
		if err != nil {
			return nil, nil, fmt.Errorf("line style %d: %w", i+1, err)
		}
		lines = append(lines, ls)
	}
	return fills, lines, nil
}
