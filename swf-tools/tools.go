package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/swf"
	"github.com/npillmayer/swf/swfquery"
	"github.com/npillmayer/swf/swftag"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("swf-tools").
		SetVersion("v0.0.1").
		SetDescription("CLI for SWF movie diagnostics and shape geometry.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("info").
		SetDescription("Print header information, a tag histogram and decoding problems of a movie.").
		SetShortDescription("movie diagnostics").
		AddArgument("movie", "SWF file path", "").
		AddFlag("errors,e", "print decoding errors and warnings", commando.Bool, nil).
		AddFlag("strict,s", "stop at the first tag failing to decode", commando.Bool, nil).
		SetAction(runInfoCommand)

	commando.
		Register("shapes").
		SetDescription("List all shapes of a movie, including glyphs and morph shapes.").
		SetShortDescription("list shapes").
		AddArgument("movie", "SWF file path", "").
		SetAction(runShapesCommand)

	commando.
		Register("paths").
		SetDescription("Print the reconstructed paths of a character's shapes.").
		SetShortDescription("shape paths").
		AddArgument("movie", "SWF file path", "").
		AddArgument("id", "character ID", "").
		AddFlag("svg", "print paths as an SVG document", commando.Bool, nil).
		SetAction(runPathsCommand)

	commando.
		Register("view").
		SetDescription("Render the fills of a character's shape to a PNG image.").
		SetShortDescription("shape to image").
		AddArgument("movie", "SWF file path", "").
		AddArgument("id", "character ID", "").
		AddFlag("output,o", "output PNG file", commando.String, "swf-tools-view.png").
		AddFlag("index,i", "shape index for characters with more than one shape", commando.Int, 0).
		AddFlag("width,W", "image width in pixels", commando.Int, 320).
		AddFlag("height,H", "image height in pixels", commando.Int, 240).
		AddFlag("show-bboxes,B", "draw a red bounding-box outline", commando.Bool, nil).
		SetAction(runViewCommand)

	commando.
		Register("dump").
		SetDescription("Reconstruct all shapes of a movie and write their outlines as CBOR.").
		SetShortDescription("dump outlines").
		AddArgument("movie", "SWF file path", "").
		AddFlag("output,o", "output file, '-' for stdout", commando.String, "-").
		AddFlag("workers,w", "number of concurrent workers (0 uses number of CPUs)", commando.Int, 0).
		SetAction(runDumpCommand)

	commando.Parse(nil)
}

// setupTracing routes the module's tracers to the Go logger. Decoding
// problems are reported by the commands themselves, so tag tracing is
// restricted to errors unless verbose output is requested.
func setupTracing(flags map[string]commando.FlagValue) {
	level := "Error"
	if verbose, err := flags["verbose"].GetBool(); err == nil && verbose {
		level = "Info"
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
		"trace.swf.load":  level,
		"trace.swf.tags":  level,
		"trace.swf.query": level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("cannot configure tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

func mustLoadMovie(path string, strict bool) *swftag.Movie {
	path = strings.TrimSpace(path)
	if path == "" {
		fatalf("movie path is required")
	}
	var opts []swftag.ParseOption
	if strict {
		opts = append(opts, swftag.StrictDecoding)
	}
	m, err := swf.LoadMovie(path, opts...)
	if err != nil {
		fatalf("cannot load movie %s: %v", path, err)
	}
	return m
}

// mustShapes returns the shapes of the character given by argument "id".
func mustShapes(m *swftag.Movie, args map[string]commando.ArgValue) []swfquery.ShapeRef {
	id, err := strconv.ParseUint(strings.TrimSpace(args["id"].Value), 10, 16)
	if err != nil {
		fatalf("invalid character ID %q", args["id"].Value)
	}
	refs := swfquery.ShapesOf(m, uint16(id))
	if len(refs) == 0 {
		fatalf("character #%d not found or without shapes", id)
	}
	return refs
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return strings.TrimSpace(s)
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "swf-tools: "+format+"\n", args...)
	os.Exit(1)
}
