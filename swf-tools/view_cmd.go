package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/npillmayer/swf"
	"github.com/npillmayer/swf/swfshape"
	"github.com/thatisuday/commando"
	"golang.org/x/image/vector"
)

func runViewCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	m := mustLoadMovie(args["movie"].Value, false)
	refs := mustShapes(m, args)
	outPath := mustFlagString(flags["output"], "output")
	if outPath == "" {
		fatalf("output path is empty")
	}
	width := mustFlagInt(flags["width"], "width")
	height := mustFlagInt(flags["height"], "height")
	index := mustFlagInt(flags["index"], "index")
	showBBoxes := mustFlagBool(flags["show-bboxes"], "show-bboxes")
	if width <= 0 || height <= 0 {
		fatalf("--width and --height must be > 0")
	}
	if index < 0 || index >= len(refs) {
		fatalf("--index must be in [0,%d)", len(refs))
	}
	paths := swf.Outline(refs[index].Shape)
	if err := renderShapePNG(paths, outPath, width, height, showBBoxes); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("rendered %s to %s\n", refs[index], outPath)
}

// renderShapePNG rasterizes the fills of a shape, scaled to fit into an
// image of width × height pixels. Strokes are not rendered.
func renderShapePNG(paths []swfshape.RecordedPath, outPath string, width int, height int, showBBoxes bool) error {
	minX, minY, maxX, maxY := pathBounds(paths)
	if maxX <= minX || maxY <= minY {
		return errors.New("shape has no extent")
	}
	const margin = 8
	scale := min((float64(width)-2*margin)/(maxX-minX), (float64(height)-2*margin)/(maxY-minY))
	if scale <= 0 {
		return errors.New("image too small")
	}
	tx := float32(margin - minX*scale)
	ty := float32(margin - minY*scale)
	s := float32(scale)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{255, 255, 255, 255}), image.Point{}, draw.Src)

	for _, p := range paths {
		if p.Stroke || len(p.Commands) == 0 {
			continue
		}
		rast := vector.NewRasterizer(width, height)
		rast.DrawOp = draw.Over
		for _, cmd := range p.Commands {
			a := cmd.Args
			switch cmd.Op {
			case swfshape.OpMoveTo:
				rast.MoveTo(tx+s*float32(a[0]), ty+s*float32(a[1]))
			case swfshape.OpLineTo:
				rast.LineTo(tx+s*float32(a[0]), ty+s*float32(a[1]))
			case swfshape.OpCurveTo:
				rast.QuadTo(tx+s*float32(a[0]), ty+s*float32(a[1]), tx+s*float32(a[2]), ty+s*float32(a[3]))
			}
		}
		rast.ClosePath()
		rast.Draw(img, img.Bounds(), image.NewUniform(paintColor(p.Paint)), image.Point{})
	}
	if showBBoxes {
		drawRectOutline(img, int(tx+s*float32(minX)), int(ty+s*float32(minY)),
			int(tx+s*float32(maxX))+1, int(ty+s*float32(maxY))+1, color.RGBA{255, 0, 0, 255})
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("cannot encode png: %w", err)
	}
	return nil
}

// paintColor converts a paint to a premultiplied color.
func paintColor(paint swfshape.Paint) color.RGBA {
	a := paint.Alpha
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	c := paint.Color
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(255 * a),
	}
}

func drawRectOutline(img *image.RGBA, minX int, minY int, maxX int, maxY int, c color.RGBA) {
	r := image.Rect(minX, minY, maxX, maxY).Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetRGBA(x, r.Min.Y, c)
		img.SetRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetRGBA(r.Min.X, y, c)
		img.SetRGBA(r.Max.X-1, y, c)
	}
}
