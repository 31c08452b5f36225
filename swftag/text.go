package swftag

import (
	"github.com/npillmayer/swf/swfio"
)

// GlyphEntry places a single glyph of a text record. Index refers to the
// glyph table of the record's font, Advance is in twips.
type GlyphEntry struct {
	Index   uint32
	Advance int32
}

// TextRecord is a run of glyphs sharing font, color, offset and height.
// Fields not set by the record are inherited from the preceding record.
type TextRecord struct {
	HasFont, HasColor bool
	HasXOffset        bool
	HasYOffset        bool
	FontID            uint16
	Color             swfio.RGBA
	XOffset, YOffset  int16
	Height            uint16 // in twips
	Glyphs            []GlyphEntry
}

// DefineText is a DefineText or DefineText2 tag, a block of static text.
// DefineText2 (version 2) carries record colors with alpha.
type DefineText struct {
	tagBase
	Character
	Version     int
	Bounds      swfio.Rect
	Matrix      swfio.Matrix
	GlyphBits   uint8
	AdvanceBits uint8
	Records     []TextRecord
}

// defaultTextHeight is the height of text records preceding any font
// selection.
const defaultTextHeight = 12

func decodeDefineText(version int) decodeFunc {
	return func(r *swfio.Reader, base tagBase) (Tag, error) {
		f := r.Fields()
		t := &DefineText{tagBase: base, Version: version}
		t.ID = f.UI16()
		t.Bounds = f.Rect()
		t.Matrix = f.Matrix()
		t.GlyphBits = f.UI8()
		t.AdvanceBits = f.UI8()
		if err := f.Err(); err != nil {
			return nil, inSection("Header", err)
		}
		if t.GlyphBits > 32 || t.AdvanceBits > 32 {
			return nil, inSection("Header", swfio.NewFormatError(r.Pos(),
				"glyph entry bit widths %d/%d out of range", t.GlyphBits, t.AdvanceBits))
		}
		prev := TextRecord{Height: defaultTextHeight}
		for {
			rec, more, err := readTextRecord(r, t, prev)
			if err != nil {
				return nil, inSection("TextRecords", err)
			}
			if !more {
				break
			}
			t.Records = append(t.Records, rec)
			prev = rec
		}
		return t, nil
	}
}

// readTextRecord reads a TEXTRECORD. A zero flag byte ends the record list
// and more is false.
func readTextRecord(r *swfio.Reader, t *DefineText, prev TextRecord) (rec TextRecord, more bool, err error) {
	f := r.Fields()
	flags := f.UI8()
	if !f.OK() {
		return rec, false, f.Err()
	}
	if flags == 0 {
		return rec, false, nil
	}
	rec = TextRecord{
		HasFont:    flags&0x08 != 0,
		HasColor:   flags&0x04 != 0,
		HasYOffset: flags&0x02 != 0,
		HasXOffset: flags&0x01 != 0,
		FontID:     prev.FontID,
		Color:      prev.Color,
		XOffset:    prev.XOffset,
		YOffset:    prev.YOffset,
		Height:     prev.Height,
	}
	if rec.HasFont {
		rec.FontID = f.UI16()
	}
	if rec.HasColor {
		if t.Version < 2 {
			rec.Color = f.RGB()
		} else {
			rec.Color = f.RGBA()
		}
	}
	if rec.HasXOffset {
		rec.XOffset = f.SI16()
	}
	if rec.HasYOffset {
		rec.YOffset = f.SI16()
	}
	if rec.HasFont {
		rec.Height = f.UI16()
	}
	n := int(f.UI8())
	for range n {
		g := GlyphEntry{
			Index:   f.UB(int(t.GlyphBits)),
			Advance: f.SB(int(t.AdvanceBits)),
		}
		rec.Glyphs = append(rec.Glyphs, g)
	}
	return rec, f.OK(), f.Err()
}

// Advance returns the sum of the glyph advances of a record, in twips.
func (rec TextRecord) Advance() int32 {
	var w int32
	for _, g := range rec.Glyphs {
		w += g.Advance
	}
	return w
}
