package swfshape

import (
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/swf/internal/swftest"
	"github.com/npillmayer/swf/swfio"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/math/f64"
)

// --- Test Suite Preparation ------------------------------------------------

type ExportTestEnviron struct {
	suite.Suite
	square *Shape
}

// listen for 'go test' command --> run test methods
func TestExport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.shapes")
	defer teardown()
	suite.Run(t, new(ExportTestEnviron))
}

// run once, before test suite methods
func (env *ExportTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("swf.shapes").SetTraceLevel(tracing.LevelError)
	env.square = redSquareShape(env.T(), false)
	tracing.Select("swf.shapes").SetTraceLevel(tracing.LevelInfo)
}

// run once, after test suite methods
func (env *ExportTestEnviron) TearDownSuite() {
	env.T().Log("Tearing down test suite")
}

func (env *ExportTestEnviron) decode(data []byte, level int, divisor float64) *Shape {
	shape, err := DecodeShapeWithStyle(swfio.NewBytesReader(data), level, divisor)
	env.Require().NoError(err, "cannot decode test shape")
	return shape
}

// countingVisitor counts fill brackets and collects gradients.
type countingVisitor struct {
	NopVisitor
	beginFills, endFills int
	fills, endFill       int
	gradients            []Gradient
}

func (cv *countingVisitor) BeginFills() { cv.beginFills++ }
func (cv *countingVisitor) EndFills() { cv.endFills++ }
func (cv *countingVisitor) BeginFill(swfio.RGBA, float64) { cv.fills++ }
func (cv *countingVisitor) EndFill() { cv.endFill++ }

func (cv *countingVisitor) BeginGradientFill(g Gradient) {
	cv.fills++
	cv.gradients = append(cv.gradients, g)
}

// --- Tests -----------------------------------------------------------------

func (env *ExportTestEnviron) TestSolidSquare() {
	rec := &PathRecorder{}
	env.square.Export(rec)
	env.Require().Len(rec.Paths, 1, "expected a single path")
	p := rec.Paths[0]
	env.False(p.Stroke, "expected a fill path")
	env.Equal(PaintSolid, p.Paint.Kind)
	env.Equal(swfio.RGBA{R: 0xff, A: 0xff}, p.Paint.Color)
	env.Equal(1.0, p.Paint.Alpha)
	env.Equal("M 0 0 L 1 0 L 1 1 L 0 1 L 0 0", p.SVGPath())
}

func (env *ExportTestEnviron) TestRecorderResetsPerShape() {
	rec := &PathRecorder{}
	env.square.Export(rec)
	env.square.Export(rec)
	env.Len(rec.Paths, 1, "expected recorder to start over for every shape")
}

func (env *ExportTestEnviron) TestGlyphWithoutStyles() {
	data := swftest.NewShape(1, 0).
		Change(swftest.StyleChange{MoveTo: swftest.At(0, 0), Fill1: swftest.Index(1)}).
		Square(1024).
		End().Bytes()
	glyph, err := DecodeShape(swfio.NewBytesReader(data), 1)
	env.Require().NoError(err)
	rec := &PathRecorder{}
	glyph.Export(rec)
	env.Require().Len(rec.Paths, 1)
	env.Equal(PaintSolid, rec.Paths[0].Paint.Kind)
	env.Equal(swfio.Black, rec.Paths[0].Paint.Color, "expected missing fill style to paint black")
	env.Equal(1.0, rec.Paths[0].Paint.Alpha)
	env.Equal([]float64{1024, 0}, rec.Paths[0].Commands[1].Args, "expected unit divisor 1")
}

func (env *ExportTestEnviron) TestMissingLineStyle() {
	data := swftest.NewShape(0, 1).
		Change(swftest.StyleChange{MoveTo: swftest.At(0, 0), Line: swftest.Index(1)}).
		Line(20, 0).
		End().Bytes()
	shape, err := DecodeShape(swfio.NewBytesReader(data), TwipsDivisor)
	env.Require().NoError(err)
	rec := &PathRecorder{}
	shape.Export(rec)
	env.Require().Len(rec.Paths, 1)
	env.True(rec.Paths[0].Stroke)
	env.Equal(PaintNone, rec.Paths[0].Paint.Kind)
}

func (env *ExportTestEnviron) TestStrokeWithCurve() {
	styles := swftest.StyleArrays(nil, [][]byte{swftest.LineStyleRGB(40, 0, 0, 0xff)})
	data := swftest.NewShapeWithStyle(styles, 0, 1).
		Change(swftest.StyleChange{MoveTo: swftest.At(0, 0), Line: swftest.Index(1)}).
		Line(20, 0).
		Curve(10, 10, 10, -10).
		End().Bytes()
	rec := &PathRecorder{}
	env.decode(data, 1, TwipsDivisor).Export(rec)
	env.Require().Len(rec.Paths, 1)
	p := rec.Paths[0]
	env.True(p.Stroke)
	env.Equal(2.0, p.Paint.Width, "expected line width in pixels")
	env.Equal(swfio.RGBA{B: 0xff, A: 0xff}, p.Paint.Color)
	env.Equal("M 0 0 L 1 0 Q 1.5 0.5 2 0", p.SVGPath())
}

func (env *ExportTestEnviron) TestFillBracketsPerStyle() {
	styles := swftest.StyleArrays([][]byte{
		swftest.SolidFillRGB(0xff, 0, 0),
		swftest.SolidFillRGB(0, 0, 0xff),
	}, nil)
	data := swftest.NewShapeWithStyle(styles, 2, 0).
		Change(swftest.StyleChange{MoveTo: swftest.At(100, 0), Fill1: swftest.Index(2)}).
		Square(20).
		Change(swftest.StyleChange{MoveTo: swftest.At(0, 0), Fill1: swftest.Index(1)}).
		Square(20).
		End().Bytes()
	shape := env.decode(data, 1, TwipsDivisor)
	cv := &countingVisitor{}
	shape.Export(cv)
	env.Equal(1, cv.beginFills)
	env.Equal(1, cv.endFills)
	env.Equal(2, cv.fills, "expected one fill per style")
	env.Equal(2, cv.endFill, "expected every fill to be closed")
	rec := &PathRecorder{}
	shape.Export(rec)
	env.Require().Len(rec.Paths, 2)
	env.Equal(swfio.RGBA{R: 0xff, A: 0xff}, rec.Paths[0].Paint.Color, "expected fills in style order")
	env.Equal(swfio.RGBA{B: 0xff, A: 0xff}, rec.Paths[1].Paint.Color)
}

func (env *ExportTestEnviron) TestGradientFill() {
	grad := swftest.LinearGradientRGB([4]uint8{0, 0xff, 0, 0}, [4]uint8{0xff, 0, 0, 0xff})
	styles := swftest.StyleArrays([][]byte{grad}, nil)
	data := swftest.NewShapeWithStyle(styles, 1, 0).
		Change(swftest.StyleChange{MoveTo: swftest.At(0, 0), Fill1: swftest.Index(1)}).
		Square(20).
		End().Bytes()
	cv := &countingVisitor{}
	env.decode(data, 1, TwipsDivisor).Export(cv)
	env.Require().Len(cv.gradients, 1)
	g := cv.gradients[0]
	env.Equal(GradientLinear, g.Type)
	env.Equal("LINEAR", g.Type.String())
	env.Equal([]uint8{0, 0xff}, g.Ratios)
	env.Equal([]float64{1, 1}, g.Alphas)
	env.Equal(swfio.RGBA{R: 0xff, A: 0xff}, g.Colors[0])
	env.Equal(f64.Aff3{0.05, 0, 0, 0, 0.05, 0}, g.Matrix, "expected gradient matrix in pixels")
}

func (env *ExportTestEnviron) TestScaleModes() {
	ls := NewLineStyle(20, swfio.Black)
	env.Equal(ScaleNormal, ls.ScaleMode())
	ls.NoVScale = true
	env.Equal(ScaleVertical, ls.ScaleMode())
	ls.NoHScale = true
	env.Equal(ScaleNone, ls.ScaleMode())
	ls.NoVScale = false
	env.Equal(ScaleHorizontal, ls.ScaleMode())
}

func (env *ExportTestEnviron) TestMorphStrokeWithSolidFill() {
	data := []byte{40, 0, 80, 0, 0x08, 0x00, 0x00, 0xff, 0, 0, 0xff, 0, 0, 0xff, 0xff}
	ml, err := ReadMorphLineStyle(swfio.NewBytesReader(data), 2)
	env.Require().NoError(err)
	edges := swftest.NewShape(0, 1).
		Change(swftest.StyleChange{MoveTo: swftest.At(0, 0), Line: swftest.Index(1)}).
		Line(20, 0).
		End().Bytes()
	shape, err := DecodeShape(swfio.NewBytesReader(edges), TwipsDivisor)
	env.Require().NoError(err)
	for _, c := range []struct {
		style LineStyle
		color swfio.RGBA
		width float64
	}{
		{ml.Start(), swfio.RGBA{R: 0xff, A: 0xff}, 2},
		{ml.End(), swfio.RGBA{B: 0xff, A: 0xff}, 4},
	} {
		rec := &PathRecorder{}
		shape.WithStyles(nil, []LineStyle{c.style}).Export(rec)
		env.Require().Len(rec.Paths, 1)
		p := rec.Paths[0]
		env.True(p.Stroke)
		env.Equal(PaintSolid, p.Paint.Kind)
		env.Equal(c.color, p.Paint.Color, "expected stroke painted with the morph fill color")
		env.Equal(1.0, p.Paint.Alpha)
		env.Equal(c.width, p.Paint.Width)
	}
}
