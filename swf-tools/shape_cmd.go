package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/swf"
	"github.com/npillmayer/swf/swfquery"
	"github.com/npillmayer/swf/swfshape"
	"github.com/thatisuday/commando"
)

func runShapesCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	m := mustLoadMovie(args["movie"].Value, false)
	shapes := swfquery.Shapes(m)
	fmt.Printf("Shapes (%d):\n", len(shapes))
	for _, ref := range shapes {
		fmt.Printf("  %-20s level %d, %d edges, %d group(s)\n", ref.String(),
			ref.Shape.Level, ref.Shape.EdgeCount(), len(ref.Shape.Groups()))
	}
}

func runPathsCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	m := mustLoadMovie(args["movie"].Value, false)
	refs := mustShapes(m, args)
	asSVG := mustFlagBool(flags["svg"], "svg")
	for _, ref := range refs {
		paths := swf.Outline(ref.Shape)
		if asSVG {
			fmt.Println(formatSVG(paths))
			continue
		}
		fmt.Printf("%s: %d path(s)\n", ref, len(paths))
		for _, p := range paths {
			fmt.Printf("  %-6s %-30s %s\n", pathKind(p), formatPaint(p.Paint), p.SVGPath())
		}
	}
}

func pathKind(p swfshape.RecordedPath) string {
	if p.Stroke {
		return "stroke"
	}
	return "fill"
}

func formatPaint(paint swfshape.Paint) string {
	switch paint.Kind {
	case swfshape.PaintSolid:
		return fmt.Sprintf("solid %s", paint.Color)
	case swfshape.PaintGradient:
		return fmt.Sprintf("gradient from %s", paint.Color)
	case swfshape.PaintBitmap:
		return fmt.Sprintf("bitmap #%d", paint.BitmapID)
	}
	return "none"
}

// formatSVG renders recorded paths as a standalone SVG document. Gradients
// and bitmaps are approximated by their first color.
func formatSVG(paths []swfshape.RecordedPath) string {
	minX, minY, maxX, maxY := pathBounds(paths)
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g">`,
		minX, minY, maxX-minX, maxY-minY)
	b.WriteByte('\n')
	for _, p := range paths {
		color := fmt.Sprintf("#%02x%02x%02x", p.Paint.Color.R, p.Paint.Color.G, p.Paint.Color.B)
		if p.Stroke {
			fmt.Fprintf(&b, `  <path d="%s" fill="none" stroke="%s" stroke-opacity="%g" stroke-width="%g"/>`,
				p.SVGPath(), color, p.Paint.Alpha, math.Max(p.Paint.Width, 0.05))
		} else {
			fmt.Fprintf(&b, `  <path d="%s" fill="%s" fill-opacity="%g" fill-rule="evenodd"/>`,
				p.SVGPath(), color, p.Paint.Alpha)
		}
		b.WriteByte('\n')
	}
	b.WriteString("</svg>")
	return b.String()
}

// pathBounds returns the bounding box of all points of paths, including
// control points.
func pathBounds(paths []swfshape.RecordedPath) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range paths {
		for _, cmd := range p.Commands {
			for i := 0; i+1 < len(cmd.Args); i += 2 {
				minX, maxX = math.Min(minX, cmd.Args[i]), math.Max(maxX, cmd.Args[i])
				minY, maxY = math.Min(minY, cmd.Args[i+1]), math.Max(maxY, cmd.Args[i+1])
			}
		}
	}
	if minX > maxX {
		return 0, 0, 0, 0
	}
	return
}
