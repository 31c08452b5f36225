package swfshape

import (
	"fmt"
	"strings"

	"github.com/npillmayer/swf/swfio"
	"golang.org/x/image/math/f64"
)

// Visitor receives the reconstructed geometry of a shape. Coordinates are
// given in output units, i.e. twips divided by the shape's unit divisor.
//
// For every group, fills are reported between BeginFills and EndFills, each
// fill style between a Begin…Fill call and EndFill. Strokes follow between
// BeginLines and EndLines, every stroke style starting with a call to one of
// the …Style methods. Curves are quadratic.
type Visitor interface {
	BeginShape()
	EndShape()
	BeginFills()
	EndFills()
	BeginFill(color swfio.RGBA, alpha float64)
	BeginGradientFill(g Gradient)
	BeginBitmapFill(b Bitmap)
	EndFill()
	BeginLines()
	EndLines()
	LineStyle(s Stroke)
	LineGradientStyle(s Stroke, g Gradient)
	LineBitmapStyle(s Stroke, b Bitmap)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CurveTo(cx, cy, x, y float64)
}

// GradientType is the gradient geometry reported to visitors. Focal
// gradients are radial gradients with a focal point.
type GradientType uint8

const (
	GradientLinear GradientType = 1
	GradientRadial GradientType = 2
)

func (t GradientType) String() string {
	if t == GradientLinear {
		return "LINEAR"
	}
	return "RADIAL"
}

// Gradient describes a gradient paint. Matrix maps the gradient square
// (-16384..16384 twips) to output units.
type Gradient struct {
	Type          GradientType
	Colors        []swfio.RGBA
	Alphas        []float64
	Ratios        []uint8
	Matrix        f64.Aff3
	Spread        SpreadMode
	Interpolation InterpolationMode
	Focal         Option[float64]
}

// Bitmap describes a bitmap paint. Matrix maps bitmap pixels to output
// units.
type Bitmap struct {
	ID     uint16
	Matrix f64.Aff3
	Repeat bool
	Smooth bool
}

// ScaleMode tells how the width of a stroke reacts to scaling.
type ScaleMode uint8

const (
	ScaleNone ScaleMode = iota
	ScaleHorizontal
	ScaleNormal
	ScaleVertical
)

func (m ScaleMode) String() string {
	switch m {
	case ScaleNone:
		return "NONE"
	case ScaleHorizontal:
		return "HORIZONTAL"
	case ScaleNormal:
		return "NORMAL"
	case ScaleVertical:
		return "VERTICAL"
	}
	return fmt.Sprintf("SCALE(%d)", uint8(m))
}

// Stroke describes a line style in output terms. Width is in pixels.
// The zero Stroke means "no stroke".
type Stroke struct {
	Width        float64
	Color        swfio.RGBA
	Alpha        float64
	PixelHinting bool
	ScaleMode    ScaleMode
	StartCap     CapStyle
	EndCap       CapStyle
	Join         JoinStyle
	MiterLimit   float64
}

// NopVisitor ignores every call. Embed it to implement only part of Visitor.
type NopVisitor struct{}

func (NopVisitor) BeginShape() {}
func (NopVisitor) EndShape() {}
func (NopVisitor) BeginFills() {}
func (NopVisitor) EndFills() {}
func (NopVisitor) BeginFill(swfio.RGBA, float64) {}
func (NopVisitor) BeginGradientFill(Gradient) {}
func (NopVisitor) BeginBitmapFill(Bitmap) {}
func (NopVisitor) EndFill() {}
func (NopVisitor) BeginLines() {}
func (NopVisitor) EndLines() {}
func (NopVisitor) LineStyle(Stroke) {}
func (NopVisitor) LineGradientStyle(Stroke, Gradient) {}
func (NopVisitor) LineBitmapStyle(Stroke, Bitmap) {}
func (NopVisitor) MoveTo(float64, float64) {}
func (NopVisitor) LineTo(float64, float64) {}
func (NopVisitor) CurveTo(float64, float64, float64, float64) {}

var _ Visitor = NopVisitor{}

// --- Path recording --------------------------------------------------------

// Op is a drawing command.
type Op uint8

const (
	OpMoveTo Op = iota + 1
	OpLineTo
	OpCurveTo
)

func (op Op) String() string {
	switch op {
	case OpMoveTo:
		return "M"
	case OpLineTo:
		return "L"
	case OpCurveTo:
		return "Q"
	}
	return "?"
}

// PathCommand is a single drawing command with its coordinates:
// x, y for moves and lines, cx, cy, x, y for curves.
type PathCommand struct {
	Op   Op
	Args []float64
}

// PaintKind tells what a recorded path is painted with.
type PaintKind uint8

const (
	PaintSolid PaintKind = iota
	PaintGradient
	PaintBitmap
	PaintNone
)

// Paint summarizes the style of a recorded path.
type Paint struct {
	Kind     PaintKind
	Color    swfio.RGBA // solid color, or first gradient stop
	Alpha    float64
	Width    float64 // stroke width, 0 for fills
	BitmapID uint16
}

// RecordedPath is the geometry drawn with one fill or stroke style.
type RecordedPath struct {
	Stroke   bool
	Paint    Paint
	Commands []PathCommand
}

// PathRecorder is a Visitor which records paths and their drawing commands.
type PathRecorder struct {
	NopVisitor
	Paths  []RecordedPath
	inLine bool
}

var _ Visitor = (*PathRecorder)(nil)

// BeginShape resets the recorder.
func (pr *PathRecorder) BeginShape() {
	pr.Paths = pr.Paths[:0]
}

func (pr *PathRecorder) BeginFill(color swfio.RGBA, alpha float64) {
	pr.start(false, Paint{Kind: PaintSolid, Color: color, Alpha: alpha})
}

func (pr *PathRecorder) BeginGradientFill(g Gradient) {
	pr.start(false, gradientPaint(g))
}

func (pr *PathRecorder) BeginBitmapFill(b Bitmap) {
	pr.start(false, Paint{Kind: PaintBitmap, BitmapID: b.ID, Alpha: 1})
}

func (pr *PathRecorder) BeginLines() {
	pr.inLine = true
}

func (pr *PathRecorder) EndLines() {
	pr.inLine = false
}

func (pr *PathRecorder) LineStyle(s Stroke) {
	kind := PaintSolid
	if s == (Stroke{}) {
		kind = PaintNone
	}
	pr.start(true, Paint{Kind: kind, Color: s.Color, Alpha: s.Alpha, Width: s.Width})
}

func (pr *PathRecorder) LineGradientStyle(s Stroke, g Gradient) {
	p := gradientPaint(g)
	p.Width = s.Width
	pr.start(true, p)
}

func (pr *PathRecorder) LineBitmapStyle(s Stroke, b Bitmap) {
	pr.start(true, Paint{Kind: PaintBitmap, BitmapID: b.ID, Alpha: 1, Width: s.Width})
}

func (pr *PathRecorder) MoveTo(x, y float64) {
	pr.add(OpMoveTo, x, y)
}

func (pr *PathRecorder) LineTo(x, y float64) {
	pr.add(OpLineTo, x, y)
}

func (pr *PathRecorder) CurveTo(cx, cy, x, y float64) {
	pr.add(OpCurveTo, cx, cy, x, y)
}

func (pr *PathRecorder) start(stroke bool, paint Paint) {
	pr.Paths = append(pr.Paths, RecordedPath{Stroke: stroke, Paint: paint})
}

func (pr *PathRecorder) add(op Op, args ...float64) {
	if len(pr.Paths) == 0 {
		tracer().Errorf("path recorder: drawing command without style")
		pr.start(pr.inLine, Paint{Kind: PaintNone})
	}
	p := &pr.Paths[len(pr.Paths)-1]
	p.Commands = append(p.Commands, PathCommand{Op: op, Args: args})
}

// SVGPath returns the commands of a recorded path in SVG path syntax.
func (p RecordedPath) SVGPath() string {
	var b strings.Builder
	for i, cmd := range p.Commands {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(cmd.Op.String())
		for _, a := range cmd.Args {
			fmt.Fprintf(&b, " %g", a)
		}
	}
	return b.String()
}

func gradientPaint(g Gradient) Paint {
	p := Paint{Kind: PaintGradient, Alpha: 1}
	if len(g.Colors) > 0 {
		p.Color = g.Colors[0]
		p.Alpha = g.Alphas[0]
	}
	return p
}
