package swftag

import (
	"github.com/npillmayer/swf/swfio"
	"github.com/npillmayer/swf/swfshape"
)

// DefineShape is a DefineShape, DefineShape2, DefineShape3 or DefineShape4
// tag. Level is 1 to 4, respectively.
type DefineShape struct {
	tagBase
	Character
	Level                 int
	Bounds                swfio.Rect
	EdgeBounds            swfio.Rect // DefineShape4 only
	UsesFillWindingRule   bool       // DefineShape4 only
	UsesNonScalingStrokes bool       // DefineShape4 only
	UsesScalingStrokes    bool       // DefineShape4 only
	Shape                 *swfshape.Shape
}

func decodeDefineShape(level int) decodeFunc {
	return func(r *swfio.Reader, base tagBase) (Tag, error) {
		f := r.Fields()
		t := &DefineShape{tagBase: base, Level: level}
		t.ID = f.UI16()
		t.Bounds = f.Rect()
		if level == 4 {
			t.EdgeBounds = f.Rect()
			flags := f.UI8()
			t.UsesFillWindingRule = flags&0x04 != 0
			t.UsesNonScalingStrokes = flags&0x02 != 0
			t.UsesScalingStrokes = flags&0x01 != 0
		}
		if err := f.Err(); err != nil {
			return nil, inSection("Header", err)
		}
		shape, err := swfshape.DecodeShapeWithStyle(r, level, swfshape.TwipsDivisor)
		if err != nil {
			return nil, inSection("Shape", err)
		}
		t.Shape = shape
		return t, nil
	}
}

// DefineMorphShape is a DefineMorphShape or DefineMorphShape2 tag. A morph
// shape interpolates between a start and an end shape, both sharing the
// same structure of edges and styles.
type DefineMorphShape struct {
	tagBase
	Character
	Version                int // 1 or 2
	StartBounds, EndBounds swfio.Rect
	StartEdgeBounds        swfio.Rect // version 2 only
	EndEdgeBounds          swfio.Rect // version 2 only
	UsesNonScalingStrokes  bool       // version 2 only
	UsesScalingStrokes     bool       // version 2 only
	FillStyles             []swfshape.MorphFillStyle
	LineStyles             []swfshape.MorphLineStyle
	Start, End             *swfshape.Shape // start and end edges, with projected styles
}

func decodeDefineMorphShape(version int) decodeFunc {
	return func(r *swfio.Reader, base tagBase) (Tag, error) {
		f := r.Fields()
		t := &DefineMorphShape{tagBase: base, Version: version}
		t.ID = f.UI16()
		t.StartBounds = f.Rect()
		t.EndBounds = f.Rect()
		if version >= 2 {
			t.StartEdgeBounds = f.Rect()
			t.EndEdgeBounds = f.Rect()
			flags := f.UI8()
			t.UsesNonScalingStrokes = flags&0x02 != 0
			t.UsesScalingStrokes = flags&0x01 != 0
		}
		offset := f.UI32() // from here to the end edges
		if err := f.Err(); err != nil {
			return nil, inSection("Header", err)
		}
		endEdgesPos := r.Pos() + int64(offset)
		fills, lines, err := swfshape.ReadMorphStyleArrays(r, version)
		if err != nil {
			return nil, inSection("MorphStyles", err)
		}
		t.FillStyles, t.LineStyles = fills, lines
		startEdges, err := swfshape.DecodeShape(r, swfshape.TwipsDivisor)
		if err != nil {
			return nil, inSection("StartEdges", err)
		}
		if offset > 0 && endEdgesPos != r.Pos() {
			tracer().Debugf("morph shape #%d: end edges at %d, start edges ended at %d",
				t.ID, endEdgesPos, r.Pos())
			if err := r.Seek(endEdgesPos); err != nil {
				return nil, inSection("EndEdges", err)
			}
		}
		endEdges, err := swfshape.DecodeShape(r, swfshape.TwipsDivisor)
		if err != nil {
			return nil, inSection("EndEdges", err)
		}
		sf, sl := swfshape.MorphStartStyles(fills, lines)
		ef, el := swfshape.MorphEndStyles(fills, lines)
		t.Start = startEdges.WithStyles(sf, sl)
		t.End = endEdges.WithStyles(ef, el)
		return t, nil
	}
}

// DefineSprite is a DefineSprite tag, a movie clip with a timeline of its own.
type DefineSprite struct {
	tagBase
	Character
	FrameCount uint16
	Tags       []Tag // nested tags, End excluded
}
