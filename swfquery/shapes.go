package swfquery

import (
	"fmt"
	"slices"

	"github.com/npillmayer/swf/swfshape"
	"github.com/npillmayer/swf/swftag"
)

// --- Characters ------------------------------------------------------------

// Dictionary maps character IDs to the tags defining them, including
// definitions nested in sprites. If an ID is defined more than once, the
// first definition wins.
func Dictionary(m *swftag.Movie) map[uint16]swftag.Definition {
	dict := make(map[uint16]swftag.Definition)
	if m == nil {
		return dict
	}
	m.Walk(func(tag swftag.Tag, _ int) bool {
		def, ok := tag.(swftag.Definition)
		if !ok {
			return true
		}
		id := def.CharacterID()
		if prev, dup := dict[id]; dup {
			tracer().Infof("character #%d redefined by %s, keeping %s", id, tag.Kind(), prev.Kind())
			return true
		}
		dict[id] = def
		return true
	})
	return dict
}

// ShapeSource tells which kind of tag a shape stems from.
type ShapeSource uint8

const (
	FromDefineShape ShapeSource = iota
	FromGlyph
	FromMorphStart
	FromMorphEnd
)

func (s ShapeSource) String() string {
	switch s {
	case FromDefineShape:
		return "shape"
	case FromGlyph:
		return "glyph"
	case FromMorphStart:
		return "morph-start"
	case FromMorphEnd:
		return "morph-end"
	}
	return "?"
}

// ShapeRef references a shape of a movie.
type ShapeRef struct {
	ID     uint16 // character ID of the defining tag
	Source ShapeSource
	Glyph  int // glyph index for glyph shapes, 0 otherwise
	Shape  *swfshape.Shape
}

func (ref ShapeRef) String() string {
	if ref.Source == FromGlyph {
		return fmt.Sprintf("#%d glyph %d", ref.ID, ref.Glyph)
	}
	return fmt.Sprintf("#%d %s", ref.ID, ref.Source)
}

// Shapes collects all shapes of a movie in document order: shapes of
// DefineShape tags, glyphs of fonts, and the start and end shapes of
// morph shapes.
func Shapes(m *swftag.Movie) []ShapeRef {
	if m == nil {
		return nil
	}
	var refs []ShapeRef
	m.Walk(func(tag swftag.Tag, _ int) bool {
		refs = appendShapes(refs, tag)
		return true
	})
	return refs
}

// ShapesOf collects the shapes of the character with a given ID.
func ShapesOf(m *swftag.Movie, id uint16) []ShapeRef {
	def, ok := Dictionary(m)[id]
	if !ok {
		return nil
	}
	return appendShapes(nil, def)
}

func appendShapes(refs []ShapeRef, tag swftag.Tag) []ShapeRef {
	switch t := tag.(type) {
	case *swftag.DefineShape:
		refs = append(refs, ShapeRef{ID: t.ID, Source: FromDefineShape, Shape: t.Shape})
	case *swftag.DefineMorphShape:
		refs = append(refs,
			ShapeRef{ID: t.ID, Source: FromMorphStart, Shape: t.Start},
			ShapeRef{ID: t.ID, Source: FromMorphEnd, Shape: t.End})
	case *swftag.DefineFont:
		for i, g := range t.Glyphs {
			refs = append(refs, ShapeRef{ID: t.ID, Source: FromGlyph, Glyph: i, Shape: g.Shape})
		}
	}
	return slices.DeleteFunc(refs, func(ref ShapeRef) bool { return ref.Shape == nil })
}
