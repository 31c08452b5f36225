package main

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/swf/swfio"
	"github.com/npillmayer/swf/swfshape"
)

func squarePath() []swfshape.RecordedPath {
	return []swfshape.RecordedPath{{
		Paint: swfshape.Paint{Kind: swfshape.PaintSolid, Color: swfio.RGBA{R: 0xff, A: 0xff}, Alpha: 1},
		Commands: []swfshape.PathCommand{
			{Op: swfshape.OpMoveTo, Args: []float64{0, 0}},
			{Op: swfshape.OpLineTo, Args: []float64{10, 0}},
			{Op: swfshape.OpCurveTo, Args: []float64{12, 5, 10, 10}},
			{Op: swfshape.OpLineTo, Args: []float64{0, 10}},
			{Op: swfshape.OpLineTo, Args: []float64{0, 0}},
		},
	}}
}

func TestPathBounds(t *testing.T) {
	minX, minY, maxX, maxY := pathBounds(squarePath())
	if minX != 0 || minY != 0 || maxX != 12 || maxY != 10 {
		t.Errorf("unexpected bounds %g,%g .. %g,%g", minX, minY, maxX, maxY)
	}
	if a, b, c, d := pathBounds(nil); a != 0 || b != 0 || c != 0 || d != 0 {
		t.Errorf("expected zero bounds for no paths")
	}
}

func TestFormatSVG(t *testing.T) {
	svg := formatSVG(squarePath())
	if !strings.Contains(svg, `viewBox="0 0 12 10"`) {
		t.Errorf("unexpected view box in %s", svg)
	}
	if !strings.Contains(svg, `fill="#ff0000"`) {
		t.Errorf("expected red fill in %s", svg)
	}
	if !strings.Contains(svg, `d="M 0 0 L 10 0 Q 12 5 10 10 L 0 10 L 0 0"`) {
		t.Errorf("unexpected path data in %s", svg)
	}
}

func TestRenderShapePNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "img", "square.png")
	if err := renderShapePNG(squarePath(), out, 64, 48, true); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("unexpected image size %v", b)
	}
	r, g, _, _ := img.At(20, 24).RGBA()
	if r < 0xf000 || g > 0x1000 {
		t.Errorf("expected red pixel inside the shape, have r=%x g=%x", r, g)
	}
	if err := renderShapePNG(nil, out, 64, 48, false); err == nil {
		t.Errorf("expected error for empty shape")
	}
}
