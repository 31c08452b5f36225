package swfshape

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/swf/internal/swftest"
	"github.com/npillmayer/swf/swfio"
)

func redSquareShape(t *testing.T, fill0 bool) *Shape {
	styles := swftest.StyleArrays([][]byte{swftest.SolidFillRGB(0xff, 0, 0)}, nil)
	change := swftest.StyleChange{MoveTo: swftest.At(0, 0)}
	if fill0 {
		change.Fill0 = swftest.Index(1)
	} else {
		change.Fill1 = swftest.Index(1)
	}
	data := swftest.NewShapeWithStyle(styles, 1, 0).Change(change).Square(20).End().Bytes()
	shape, err := DecodeShapeWithStyle(swfio.NewBytesReader(data), 1, TwipsDivisor)
	if err != nil {
		t.Fatalf("cannot decode square shape: %v", err)
	}
	return shape
}

func TestDecodeRecords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.shapes")
	defer teardown()
	//
	shape := redSquareShape(t, false)
	if len(shape.Records) != 6 {
		t.Fatalf("expected 6 records, have %d", len(shape.Records))
	}
	if _, ok := shape.Records[0].(StyleChangeRecord); !ok {
		t.Errorf("expected first record to be a style change, is %T", shape.Records[0])
	}
	if _, ok := shape.Records[5].(EndRecord); !ok {
		t.Errorf("expected last record to be the end record, is %T", shape.Records[5])
	}
	for i := 1; i < len(shape.Records); i++ {
		if shape.Records[i].ID() <= shape.Records[i-1].ID() {
			t.Errorf("record IDs not strictly increasing at %d", i)
		}
	}
	e, ok := shape.Records[2].(StraightEdgeRecord)
	if !ok || e.General || !e.Vertical || e.DeltaY != 20 {
		t.Errorf("expected second edge to be vertical +20, is %v", shape.Records[2])
	}
	if len(shape.FillStyles) != 1 || shape.EdgeCount() != 4 {
		t.Errorf("expected 1 fill style and 4 edges, have %d and %d", len(shape.FillStyles), shape.EdgeCount())
	}
	if fill, ok := shape.FillStyles[0].(SolidFill); !ok || fill.Color != (swfio.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("expected opaque red solid fill, have %v", shape.FillStyles[0])
	}
}

func TestDecodeCurvesAndMoves(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.shapes")
	defer teardown()
	//
	data := swftest.NewShape(1, 1).MoveTo(-300, 4000).Curve(100, -5, 7, 2000).Line(-3, 9).End().Bytes()
	shape, err := DecodeShape(swfio.NewBytesReader(data), 1)
	if err != nil {
		t.Fatal(err)
	}
	sc := shape.Records[0].(StyleChangeRecord)
	if p, ok := sc.MoveTo.Unwrap(); !ok || p != (Point{X: -300, Y: 4000}) {
		t.Errorf("expected move to (-300,4000), have %v", sc.MoveTo)
	}
	c := shape.Records[1].(CurvedEdgeRecord)
	if c.ControlDX != 100 || c.ControlDY != -5 || c.AnchorDX != 7 || c.AnchorDY != 2000 {
		t.Errorf("unexpected curve %v", c)
	}
	l := shape.Records[2].(StraightEdgeRecord)
	if !l.General || l.DeltaX != -3 || l.DeltaY != 9 {
		t.Errorf("unexpected general line %v", l)
	}
	if shape.Divisor != 1 {
		t.Errorf("expected divisor 1, have %g", shape.Divisor)
	}
}

func TestStyleChangeUsesCurrentBitWidths(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.shapes")
	defer teardown()
	//
	newStyles := swftest.StyleArrays([][]byte{
		swftest.SolidFillRGB(1, 1, 1), swftest.SolidFillRGB(2, 2, 2),
		swftest.SolidFillRGB(3, 3, 3), swftest.SolidFillRGB(4, 4, 4),
	}, nil)
	data := swftest.NewShape(1, 0).
		Change(swftest.StyleChange{Fill1: swftest.Index(1), NewStyles: newStyles, NewFillBits: 3}).
		Change(swftest.StyleChange{Fill1: swftest.Index(4)}).
		End().Bytes()
	shape, err := DecodeShape(swfio.NewBytesReader(data), TwipsDivisor)
	if err != nil {
		t.Fatal(err)
	}
	first := shape.Records[0].(StyleChangeRecord)
	if first.Fill1 != 1 || len(first.FillStyles) != 4 || first.FillBits != 3 {
		t.Errorf("unexpected style change %v, fill bits %d", first, first.FillBits)
	}
	second := shape.Records[1].(StyleChangeRecord)
	if second.Fill1 != 4 {
		t.Errorf("expected fill1 index 4 read with new width, have %d", second.Fill1)
	}
}

func TestUnknownFillStyleType(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.shapes")
	defer teardown()
	//
	styles := swftest.StyleArrays([][]byte{{0x05, 1, 2, 3}}, nil)
	data := swftest.NewShapeWithStyle(styles, 1, 0).Square(20).End().Bytes()
	_, err := DecodeShapeWithStyle(swfio.NewBytesReader(data), 1, TwipsDivisor)
	if !swfio.IsFormatError(err) {
		t.Errorf("expected format error for fill style type 0x05, have %v", err)
	}
}

func TestTruncatedShape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.shapes")
	defer teardown()
	//
	data := swftest.NewShape(1, 0).MoveTo(0, 0).Square(20).Bytes() // no end record
	_, err := DecodeShape(swfio.NewBytesReader(data), TwipsDivisor)
	if !swfio.IsEOF(err) {
		t.Errorf("expected unexpected EOF for shape without end record, have %v", err)
	}
}

func TestBitmapFillFlags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.shapes")
	defer teardown()
	//
	for _, c := range []struct {
		kind           uint8
		repeat, smooth bool
	}{
		{0x40, true, true},
		{0x41, false, true},
		{0x42, true, false},
		{0x43, false, false},
	} {
		fill, err := ReadFillStyle(swfio.NewBytesReader(swftest.BitmapFill(c.kind, 7)), 1)
		if err != nil {
			t.Fatal(err)
		}
		bm := fill.(BitmapFill)
		if bm.BitmapID != 7 || bm.Repeat != c.repeat || bm.Smooth != c.smooth || bm.Type() != c.kind {
			t.Errorf("0x%02x: unexpected bitmap fill %+v", c.kind, bm)
		}
	}
}

func TestGradientFill(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.shapes")
	defer teardown()
	//
	data := swftest.LinearGradientRGB([4]uint8{0, 0xff, 0, 0}, [4]uint8{255, 0, 0, 0xff})
	fill, err := ReadFillStyle(swfio.NewBytesReader(data), 1)
	if err != nil {
		t.Fatal(err)
	}
	g := fill.(GradientFill)
	if g.Kind != LinearGradient || len(g.Records) != 2 || g.Focal.IsSome() {
		t.Fatalf("unexpected gradient %+v", g)
	}
	if g.Records[1].Ratio != 255 || g.Records[1].Color != (swfio.RGBA{B: 0xff, A: 0xff}) {
		t.Errorf("unexpected second stop %+v", g.Records[1])
	}
	//
	w := swftest.NewBitWriter().UI8(0x13).IdentityMatrix().UB(1, 2).UB(1, 2).UB(1, 4)
	w.Raw(128, 1, 2, 3, 4).Raw(0x80, 0xff) // RGBA stop, focal -0.5
	fill, err = ReadFillStyle(swfio.NewBytesReader(w.Bytes()), 3)
	if err != nil {
		t.Fatal(err)
	}
	g = fill.(GradientFill)
	if g.Kind != FocalGradient || g.Spread != SpreadReflect || g.Interpolation != InterpolateLinearRGB {
		t.Errorf("unexpected focal gradient %+v", g)
	}
	if f, ok := g.Focal.Unwrap(); !ok || f != -0.5 {
		t.Errorf("expected focal point -0.5, have %v", g.Focal)
	}
}

func TestLineStyle2(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.shapes")
	defer teardown()
	//
	// width 60, square start cap, miter join, noHScale, pixel hinting,
	// no end cap, miter limit 2.5, RGBA color
	w := swftest.NewBitWriter().UI16(60)
	w.UB(2, 2).UB(2, 2)
	w.Flag(false).Flag(true).Flag(false).Flag(true)
	w.UB(0, 5).Flag(false).UB(1, 2)
	w.Raw(0x80, 0x02).Raw(10, 20, 30, 40)
	ls, err := ReadLineStyle(swfio.NewBytesReader(w.Bytes()), 4)
	if err != nil {
		t.Fatal(err)
	}
	if ls.Width != 60 || ls.StartCap != SquareCap || ls.EndCap != NoCap || ls.Join != MiterJoin {
		t.Errorf("unexpected line style %+v", ls)
	}
	if ls.MiterLimit != 2.5 || ls.Color != (swfio.RGBA{R: 10, G: 20, B: 30, A: 40}) {
		t.Errorf("unexpected miter limit or color %+v", ls)
	}
	if ls.ScaleMode() != ScaleHorizontal || !ls.PixelHinting {
		t.Errorf("expected horizontal scale mode and pixel hinting")
	}
	ls, err = ReadLineStyle(swfio.NewBytesReader(swftest.LineStyleRGB(20, 1, 2, 3)), 1)
	if err != nil {
		t.Fatal(err)
	}
	if ls.Join != RoundJoin || ls.MiterLimit != DefaultMiterLimit || ls.ScaleMode() != ScaleNormal {
		t.Errorf("expected defaults for LINESTYLE, have %+v", ls)
	}
}

func TestMorphStyles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.shapes")
	defer teardown()
	//
	// one solid morph fill, one morph line
	w := swftest.NewBitWriter().UI8(1).Raw(0x00, 1, 2, 3, 4, 5, 6, 7, 8)
	w.UI8(1).UI16(20).UI16(40).Raw(9, 9, 9, 255, 0, 0, 0, 255)
	fills, lines, err := ReadMorphStyleArrays(swfio.NewBytesReader(w.Bytes()), 1)
	if err != nil {
		t.Fatal(err)
	}
	sf, sl := MorphStartStyles(fills, lines)
	ef, el := MorphEndStyles(fills, lines)
	if sf[0].(SolidFill).Color != (swfio.RGBA{R: 1, G: 2, B: 3, A: 4}) {
		t.Errorf("unexpected start fill %v", sf[0])
	}
	if ef[0].(SolidFill).Color != (swfio.RGBA{R: 5, G: 6, B: 7, A: 8}) {
		t.Errorf("unexpected end fill %v", ef[0])
	}
	if sl[0].Width != 20 || el[0].Width != 40 || el[0].Color != (swfio.RGBA{A: 255}) {
		t.Errorf("unexpected morph line styles %v, %v", sl[0], el[0])
	}
}
