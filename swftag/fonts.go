package swftag

import (
	"bytes"

	"github.com/npillmayer/swf/swfio"
	"github.com/npillmayer/swf/swfshape"
)

// Glyph outlines are defined on an EM square of 1024 units. DefineFont3 uses
// a resolution 20 times as high.
const (
	glyphDivisor  = 1.0
	glyph3Divisor = 20.0
)

// Glyph is a glyph of a font definition. Code and layout values are only
// present if the font tag carries them.
type Glyph struct {
	Shape   *swfshape.Shape
	Code    uint16 // character code, UCS-2 for SWF 6 and later
	Advance int16
	Bounds  swfio.Rect
}

// KerningRecord adjusts the advance between two character codes.
type KerningRecord struct {
	Left, Right uint16
	Adjustment  int16
}

// DefineFont is a DefineFont, DefineFont2 or DefineFont3 tag.
//
// DefineFont (version 1) holds glyph outlines only. Character codes and font
// attributes for it are defined by a separate DefineFontInfo tag.
type DefineFont struct {
	tagBase
	Character
	Version      int
	Name         string
	LanguageCode uint8
	HasLayout    bool
	ShiftJIS     bool
	SmallText    bool
	ANSI         bool
	WideOffsets  bool
	WideCodes    bool
	Italic       bool
	Bold         bool
	Glyphs       []Glyph
	Ascent       int16 // with layout only
	Descent      int16 // with layout only
	Leading      int16 // with layout only
	Kerning      []KerningRecord
}

// GlyphDivisor returns the number of glyph units per EM-square unit.
func (t *DefineFont) GlyphDivisor() float64 {
	if t.Version == 3 {
		return glyph3Divisor
	}
	return glyphDivisor
}

func decodeDefineFont(r *swfio.Reader, base tagBase) (Tag, error) {
	f := r.Fields()
	t := &DefineFont{tagBase: base, Version: 1}
	t.ID = f.UI16()
	tableStart := r.Pos()
	first := f.UI16()
	if err := f.Err(); err != nil {
		return nil, err
	}
	n := int(first) / 2
	offsets := make([]uint32, n)
	if n > 0 {
		offsets[0] = uint32(first)
		for i := 1; i < n; i++ {
			offsets[i] = uint32(f.UI16())
		}
	}
	if err := f.Err(); err != nil {
		return nil, inSection("OffsetTable", err)
	}
	glyphs, err := readGlyphs(r, tableStart, offsets, glyphDivisor)
	if err != nil {
		return nil, inSection("GlyphShapeTable", err)
	}
	t.Glyphs = glyphs
	return t, nil
}

func decodeDefineFont2(version int) decodeFunc {
	return func(r *swfio.Reader, base tagBase) (Tag, error) {
		f := r.Fields()
		t := &DefineFont{tagBase: base, Version: version}
		t.ID = f.UI16()
		flags := f.UI8()
		t.HasLayout = flags&0x80 != 0
		t.ShiftJIS = flags&0x40 != 0
		t.SmallText = flags&0x20 != 0
		t.ANSI = flags&0x10 != 0
		t.WideOffsets = flags&0x08 != 0
		t.WideCodes = flags&0x04 != 0 || version == 3
		t.Italic = flags&0x02 != 0
		t.Bold = flags&0x01 != 0
		t.LanguageCode = f.UI8()
		t.Name = readFontName(r, f.Bytes(int(f.UI8())))
		n := int(f.UI16())
		if err := f.Err(); err != nil {
			return nil, inSection("Header", err)
		}
		tableStart := r.Pos()
		width := int64(2)
		if t.WideOffsets {
			width = 4
		}
		if int64(n)*width > r.Remaining() {
			return nil, inSection("OffsetTable", swfio.NewFormatError(tableStart,
				"%d glyph offsets exceed tag content", n))
		}
		offsets := make([]uint32, n)
		for i := range offsets {
			offsets[i] = readOffset(f, t.WideOffsets)
		}
		var codeTableOffset uint32
		if n > 0 || r.Remaining() >= width { // empty fonts may omit it
			codeTableOffset = readOffset(f, t.WideOffsets)
		}
		if err := f.Err(); err != nil {
			return nil, inSection("OffsetTable", err)
		}
		glyphs, err := readGlyphs(r, tableStart, offsets, t.GlyphDivisor())
		if err != nil {
			return nil, inSection("GlyphShapeTable", err)
		}
		t.Glyphs = glyphs
		if n > 0 && codeTableOffset > 0 {
			if err := r.Seek(tableStart + int64(codeTableOffset)); err != nil {
				return nil, inSection("CodeTable", err)
			}
		}
		for i := range t.Glyphs {
			t.Glyphs[i].Code = readCode(f, t.WideCodes)
		}
		if err := f.Err(); err != nil {
			return nil, inSection("CodeTable", err)
		}
		if t.HasLayout {
			if err := t.readLayout(r); err != nil {
				return nil, inSection("Layout", err)
			}
		}
		tracer().Debugf("font #%d %q: %d glyph(s)", t.ID, t.Name, len(t.Glyphs))
		return t, nil
	}
}

func (t *DefineFont) readLayout(r *swfio.Reader) error {
	f := r.Fields()
	t.Ascent = f.SI16()
	t.Descent = f.SI16()
	t.Leading = f.SI16()
	for i := range t.Glyphs {
		t.Glyphs[i].Advance = f.SI16()
	}
	for i := range t.Glyphs {
		t.Glyphs[i].Bounds = f.Rect()
	}
	count := int(f.UI16())
	if err := f.Err(); err != nil {
		return err
	}
	t.Kerning = make([]KerningRecord, 0, min(count, 1024))
	for range count {
		k := KerningRecord{Left: readCode(f, t.WideCodes), Right: readCode(f, t.WideCodes)}
		k.Adjustment = f.SI16()
		if !f.OK() {
			break
		}
		t.Kerning = append(t.Kerning, k)
	}
	return f.Err()
}

// readGlyphs decodes glyph shapes located by offsets relative to tableStart.
func readGlyphs(r *swfio.Reader, tableStart int64, offsets []uint32, divisor float64) ([]Glyph, error) {
	glyphs := make([]Glyph, len(offsets))
	for i, offset := range offsets {
		if err := r.Seek(tableStart + int64(offset)); err != nil {
			return nil, err
		}
		shape, err := swfshape.DecodeShape(r, divisor)
		if err != nil {
			tracer().Debugf("glyph #%d at offset %d: %v", i, offset, err)
			return nil, err
		}
		glyphs[i].Shape = shape
	}
	return glyphs, nil
}

func readOffset(f *swfio.Fields, wide bool) uint32 {
	if wide {
		return f.UI32()
	}
	return uint32(f.UI16())
}

func readCode(f *swfio.Fields, wide bool) uint16 {
	if wide {
		return f.UI16()
	}
	return uint16(f.UI8())
}

// readFontName decodes a length-prefixed font name, which may or may not
// include a terminating NUL.
func readFontName(r *swfio.Reader, raw []byte) string {
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return r.DecodeText(raw)
}

// DefineFontInfo is a DefineFontInfo or DefineFontInfo2 tag, mapping the
// glyphs of a DefineFont (version 1) tag to character codes.
type DefineFontInfo struct {
	tagBase
	Version      int
	FontID       uint16
	Name         string
	SmallText    bool
	ShiftJIS     bool
	ANSI         bool
	Italic       bool
	Bold         bool
	WideCodes    bool
	LanguageCode uint8 // version 2 only
	Codes        []uint16
}

func decodeDefineFontInfo(version int) decodeFunc {
	return func(r *swfio.Reader, base tagBase) (Tag, error) {
		f := r.Fields()
		t := &DefineFontInfo{tagBase: base, Version: version}
		t.FontID = f.UI16()
		t.Name = readFontName(r, f.Bytes(int(f.UI8())))
		flags := f.UI8()
		t.SmallText = flags&0x20 != 0
		t.ShiftJIS = flags&0x10 != 0
		t.ANSI = flags&0x08 != 0
		t.Italic = flags&0x04 != 0
		t.Bold = flags&0x02 != 0
		t.WideCodes = flags&0x01 != 0 || version == 2
		if version == 2 {
			t.LanguageCode = f.UI8()
		}
		if err := f.Err(); err != nil {
			return nil, err
		}
		width := int64(1)
		if t.WideCodes {
			width = 2
		}
		t.Codes = make([]uint16, r.Remaining()/width)
		for i := range t.Codes {
			t.Codes[i] = readCode(f, t.WideCodes)
		}
		return t, f.Err()
	}
}

// AlignZone is a zone record of DefineFontAlignZones, one per glyph.
type AlignZone struct {
	Data  [][2]float64 // pairs of alignment coordinate and range
	MaskX bool
	MaskY bool
}

// DefineFontAlignZones holds hints for advanced anti-aliasing of a
// DefineFont3 font.
type DefineFontAlignZones struct {
	tagBase
	FontID       uint16
	CSMTableHint uint8 // 0 = thin, 1 = medium, 2 = thick
	Zones        []AlignZone
}

func decodeDefineFontAlignZones(r *swfio.Reader, base tagBase) (Tag, error) {
	f := r.Fields()
	t := &DefineFontAlignZones{tagBase: base}
	t.FontID = f.UI16()
	t.CSMTableHint = uint8(f.UB(2))
	f.UB(6)
	for f.OK() && r.Remaining() > 0 {
		var zone AlignZone
		n := int(f.UI8())
		for range n {
			zone.Data = append(zone.Data, [2]float64{f.Float16(), f.Float16()})
		}
		f.UB(6)
		zone.MaskY = f.Flag()
		zone.MaskX = f.Flag()
		if f.OK() {
			t.Zones = append(t.Zones, zone)
		}
	}
	return t, f.Err()
}

// CSMTextSettings configures anti-aliasing for a text field or static text.
type CSMTextSettings struct {
	tagBase
	TextID       uint16
	UseFlashType uint8 // 0 = normal renderer, 1 = advanced anti-aliasing
	GridFit      uint8 // 0 = none, 1 = pixel, 2 = subpixel
	Thickness    float32
	Sharpness    float32
}

func decodeCSMTextSettings(r *swfio.Reader, base tagBase) (Tag, error) {
	f := r.Fields()
	t := &CSMTextSettings{tagBase: base}
	t.TextID = f.UI16()
	t.UseFlashType = uint8(f.UB(2))
	t.GridFit = uint8(f.UB(3))
	f.UB(3)
	t.Thickness = f.Float32()
	t.Sharpness = f.Float32()
	return t, f.Err()
}

// DefineFontName holds the full name and copyright of a font.
type DefineFontName struct {
	tagBase
	FontID    uint16
	Name      string
	Copyright string
}

func decodeDefineFontName(r *swfio.Reader, base tagBase) (Tag, error) {
	f := r.Fields()
	t := &DefineFontName{tagBase: base}
	t.FontID = f.UI16()
	t.Name = f.Text()
	t.Copyright = f.Text()
	return t, f.Err()
}
