package swf

import (
	"bytes"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/swf/internal/swftest"
	"github.com/npillmayer/swf/swftag"
)

func squareMovie() []byte {
	styles := swftest.StyleArrays([][]byte{swftest.SolidFillRGB(0, 0x80, 0)}, nil)
	change := swftest.StyleChange{MoveTo: swftest.At(0, 0), Fill1: swftest.Index(1)}
	shape := swftest.NewShapeWithStyle(styles, 1, 0).Change(change).Square(40).End().Bytes()
	body := swftest.MovieBody(200, 100, 25.0, 1,
		swftest.DefineShape(7, shape),
		swftest.Tag(swftest.KindShowFrame, nil),
		swftest.EndTag())
	return swftest.Movie(10, body)
}

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.load")
	defer teardown()
	//
	movie, err := Parse(squareMovie())
	if err != nil {
		t.Fatal(err)
	}
	if movie.Version() != 10 || movie.FrameRate != 25.0 {
		t.Errorf("unexpected movie header: version %d, %g fps", movie.Version(), movie.FrameRate)
	}
	if len(movie.Tags) != 2 {
		t.Fatalf("expected 2 tags, have %d", len(movie.Tags))
	}
	if _, err := Parse([]byte("no movie")); err == nil {
		t.Errorf("expected error for invalid signature")
	}
}

func TestDecodeAndOutline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.load")
	defer teardown()
	//
	movie, err := Decode(bytes.NewReader(squareMovie()), swftag.StrictDecoding)
	if err != nil {
		t.Fatal(err)
	}
	shape, ok := movie.Tags[0].(*swftag.DefineShape)
	if !ok {
		t.Fatalf("expected DefineShape, have %T", movie.Tags[0])
	}
	paths := Outline(shape.Shape)
	if len(paths) != 1 {
		t.Fatalf("expected 1 path, have %d", len(paths))
	}
	if svg := paths[0].SVGPath(); svg != "M 0 0 L 2 0 L 2 2 L 0 2 L 0 0" {
		t.Errorf("unexpected outline %q", svg)
	}
	if Outline(nil) != nil {
		t.Errorf("expected nil outline for nil shape")
	}
}
