package swfshape

import (
	"github.com/npillmayer/swf/swfio"
	"golang.org/x/image/math/f64"
)

// Export reconstructs the shape, if not already done, and reports its
// geometry to v, group by group: fills first, then strokes.
func (s *Shape) Export(v Visitor) {
	g := s.geometry()
	x := exporter{v: v, u: 1.0 / s.Divisor, fills: g.fills, lines: g.lines}
	v.BeginShape()
	for _, group := range g.groups {
		x.exportFills(group.Fills)
		x.exportLines(group.Lines)
	}
	v.EndShape()
}

type exporter struct {
	v     Visitor
	u     float64 // 1/divisor
	fills []FillStyle
	lines []LineStyle
	pen   Option[Point]
}

func (x *exporter) exportFills(m EdgeMap) {
	path := m.Path()
	if len(path) == 0 {
		return
	}
	x.v.BeginFills()
	style := -1
	for _, e := range path {
		if e.FillStyle != style {
			if style >= 0 {
				x.v.EndFill()
			}
			style = e.FillStyle
			x.pen = None[Point]()
			x.beginFill(style)
		}
		x.draw(e)
	}
	x.v.EndFill()
	x.v.EndFills()
}

func (x *exporter) exportLines(m EdgeMap) {
	path := m.Path()
	if len(path) == 0 {
		return
	}
	x.v.BeginLines()
	style := -1
	for _, e := range path {
		if e.LineStyle != style {
			style = e.LineStyle
			x.pen = None[Point]()
			x.lineStyle(style)
		}
		x.draw(e)
	}
	x.v.EndLines()
}

func (x *exporter) draw(e Edge) {
	if p, ok := x.pen.Unwrap(); !ok || !p.Equal(e.From) {
		x.v.MoveTo(e.From.X*x.u, e.From.Y*x.u)
	}
	if e.Curved {
		x.v.CurveTo(e.Control.X*x.u, e.Control.Y*x.u, e.To.X*x.u, e.To.Y*x.u)
	} else {
		x.v.LineTo(e.To.X*x.u, e.To.Y*x.u)
	}
	x.pen = Some(e.To)
}

// beginFill starts a fill with style index inx. Glyph shapes reference fill
// style 1 without defining it, the text color being supplied elsewhere; a
// missing style is painted solid black.
func (x *exporter) beginFill(inx int) {
	if inx < 1 || inx > len(x.fills) {
		tracer().Debugf("fill style %d not defined, using black", inx)
		x.v.BeginFill(swfio.Black, 1.0)
		return
	}
	switch fill := x.fills[inx-1].(type) {
	case SolidFill:
		x.v.BeginFill(fill.Color, fill.Color.Alpha())
	case GradientFill:
		x.v.BeginGradientFill(x.gradient(fill))
	case BitmapFill:
		x.v.BeginBitmapFill(x.bitmap(fill))
	default:
		x.v.BeginFill(swfio.Black, 1.0)
	}
}

// lineStyle starts a stroke with style index inx. A missing style is
// reported as the zero Stroke.
func (x *exporter) lineStyle(inx int) {
	if inx < 1 || inx > len(x.lines) {
		tracer().Debugf("line style %d not defined", inx)
		x.v.LineStyle(Stroke{})
		return
	}
	ls := x.lines[inx-1]
	stroke := Stroke{
		Width:        float64(ls.Width) / 20.0,
		Color:        ls.Color,
		Alpha:        ls.Color.Alpha(),
		PixelHinting: ls.PixelHinting,
		ScaleMode:    ls.ScaleMode(),
		StartCap:     ls.StartCap,
		EndCap:       ls.EndCap,
		Join:         ls.Join,
		MiterLimit:   ls.MiterLimit,
	}
	if !ls.HasFill {
		x.v.LineStyle(stroke)
		return
	}
	switch fill := ls.Fill.(type) {
	case GradientFill:
		x.v.LineGradientStyle(stroke, x.gradient(fill))
	case BitmapFill:
		x.v.LineBitmapStyle(stroke, x.bitmap(fill))
	default:
		x.v.LineStyle(stroke)
	}
}

func (x *exporter) gradient(fill GradientFill) Gradient {
	g := Gradient{
		Type:          GradientRadial,
		Matrix:        x.matrix(fill.Matrix),
		Spread:        fill.Spread,
		Interpolation: fill.Interpolation,
		Focal:         fill.Focal,
		Colors:        make([]swfio.RGBA, len(fill.Records)),
		Alphas:        make([]float64, len(fill.Records)),
		Ratios:        make([]uint8, len(fill.Records)),
	}
	if fill.Kind == LinearGradient {
		g.Type = GradientLinear
	}
	for i, rec := range fill.Records {
		g.Colors[i] = rec.Color
		g.Alphas[i] = rec.Color.Alpha()
		g.Ratios[i] = rec.Ratio
	}
	return g
}

func (x *exporter) bitmap(fill BitmapFill) Bitmap {
	return Bitmap{ID: fill.BitmapID, Matrix: x.matrix(fill.Matrix), Repeat: fill.Repeat, Smooth: fill.Smooth}
}

// matrix converts a style matrix, which maps to twips, to one mapping to
// output units.
func (x *exporter) matrix(m swfio.Matrix) f64.Aff3 {
	a := m.Aff3()
	for i := range a {
		a[i] *= x.u
	}
	return a
}
