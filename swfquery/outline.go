package swfquery

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/fxamacker/cbor/v2"
	"github.com/npillmayer/swf/swfshape"
	"golang.org/x/sync/errgroup"
)

// --- Outlines --------------------------------------------------------------

// Outline is the exported geometry of a shape.
type Outline struct {
	ID     uint16
	Source ShapeSource
	Glyph  int
	Paths  []swfshape.RecordedPath
}

// ReconstructAll reconstructs and exports shapes concurrently, using at most
// workers goroutines (workers ≤ 0 selects the number of CPUs). Outlines are
// returned in the order of shapes. Cancelling ctx stops the remaining work
// and returns the context's error.
func ReconstructAll(ctx context.Context, shapes []ShapeRef, workers int) ([]Outline, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	outlines := make([]Outline, len(shapes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, ref := range shapes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec := &swfshape.PathRecorder{}
			ref.Shape.Export(rec)
			outlines[i] = Outline{ID: ref.ID, Source: ref.Source, Glyph: ref.Glyph, Paths: rec.Paths}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tracer().Debugf("reconstructed %d shapes with %d workers", len(shapes), workers)
	return outlines, nil
}

// wire form of outlines, with integer keys for compactness
type outlineRecord struct {
	ID     uint16       `cbor:"1,keyasint"`
	Source uint8        `cbor:"2,keyasint"`
	Glyph  int          `cbor:"3,keyasint,omitempty"`
	Paths  []pathRecord `cbor:"4,keyasint"`
}

type pathRecord struct {
	_        struct{} `cbor:",toarray"`
	Stroke   bool
	Kind     uint8
	Color    [4]uint8
	Alpha    float64
	Width    float64
	BitmapID uint16
	Commands []commandRecord
}

type commandRecord struct {
	_    struct{} `cbor:",toarray"`
	Op   uint8
	Args []float64
}

// EncodeOutline writes outlines to w in deterministic CBOR encoding: equal
// outlines always produce identical bytes.
func EncodeOutline(w io.Writer, outlines []Outline) error {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return err
	}
	records := make([]outlineRecord, len(outlines))
	for i, o := range outlines {
		records[i] = outlineRecord{ID: o.ID, Source: uint8(o.Source), Glyph: o.Glyph}
		records[i].Paths = make([]pathRecord, len(o.Paths))
		for j, p := range o.Paths {
			c := p.Paint.Color
			pr := pathRecord{
				Stroke:   p.Stroke,
				Kind:     uint8(p.Paint.Kind),
				Color:    [4]uint8{c.R, c.G, c.B, c.A},
				Alpha:    p.Paint.Alpha,
				Width:    p.Paint.Width,
				BitmapID: p.Paint.BitmapID,
				Commands: make([]commandRecord, len(p.Commands)),
			}
			for k, cmd := range p.Commands {
				pr.Commands[k] = commandRecord{Op: uint8(cmd.Op), Args: cmd.Args}
			}
			records[i].Paths[j] = pr
		}
	}
	return enc.NewEncoder(w).Encode(records)
}

// DecodeOutline reads outlines written by EncodeOutline.
func DecodeOutline(r io.Reader) ([]Outline, error) {
	mode, err := cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		return nil, fmt.Errorf("outline: failed to initialize decoder: %w", err)
	}
	var records []outlineRecord
	if err := mode.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("outline: failed to decode: %w", err)
	}
	outlines := make([]Outline, len(records))
	for i, rec := range records {
		outlines[i] = Outline{ID: rec.ID, Source: ShapeSource(rec.Source), Glyph: rec.Glyph}
		outlines[i].Paths = make([]swfshape.RecordedPath, len(rec.Paths))
		for j, pr := range rec.Paths {
			p := swfshape.RecordedPath{
				Stroke: pr.Stroke,
				Paint: swfshape.Paint{
					Kind:     swfshape.PaintKind(pr.Kind),
					Alpha:    pr.Alpha,
					Width:    pr.Width,
					BitmapID: pr.BitmapID,
				},
			}
			p.Paint.Color.R, p.Paint.Color.G = pr.Color[0], pr.Color[1]
			p.Paint.Color.B, p.Paint.Color.A = pr.Color[2], pr.Color[3]
			for _, cr := range pr.Commands {
				op := swfshape.Op(cr.Op)
				if op < swfshape.OpMoveTo || op > swfshape.OpCurveTo || len(cr.Args) != argCount(op) {
					return nil, fmt.Errorf("outline: invalid drawing command %d with %d arguments", cr.Op, len(cr.Args))
				}
				p.Commands = append(p.Commands, swfshape.PathCommand{Op: op, Args: cr.Args})
			}
			outlines[i].Paths[j] = p
		}
	}
	return outlines, nil
}

func argCount(op swfshape.Op) int {
	if op == swfshape.OpCurveTo {
		return 4
	}
	return 2
}
