package swfquery

import (
	"strings"
	"unicode"

	"github.com/npillmayer/swf/swftag"
)

// TextLine is a text record of a static text, with its glyphs resolved to
// characters of the record's font.
type TextLine struct {
	FontID  uint16
	Height  uint16 // in twips
	X, Y    int16  // offsets of the record in twips
	Text    string
	Missing int // glyphs which could not be resolved
}

// StaticText resolves the text records of a DefineText or DefineText2
// character. Glyph indices are mapped to character codes using the code
// table of the font, or the DefineFontInfo tag for DefineFont fonts.
// Unresolvable glyphs are rendered as U+FFFD.
func StaticText(m *swftag.Movie, id uint16) ([]TextLine, bool) {
	dict := Dictionary(m)
	text, ok := dict[id].(*swftag.DefineText)
	if !ok {
		return nil, false
	}
	codes := fontCodes(m, dict)
	lines := make([]TextLine, 0, len(text.Records))
	for _, rec := range text.Records {
		line := TextLine{FontID: rec.FontID, Height: rec.Height, X: rec.XOffset, Y: rec.YOffset}
		table := codes[rec.FontID]
		var b strings.Builder
		for _, g := range rec.Glyphs {
			if int(g.Index) < len(table) && table[g.Index] != 0 {
				b.WriteRune(rune(table[g.Index]))
				continue
			}
			b.WriteRune(unicode.ReplacementChar)
			line.Missing++
		}
		line.Text = b.String()
		lines = append(lines, line)
	}
	return lines, true
}

// fontCodes collects the code tables of all fonts, by font ID.
func fontCodes(m *swftag.Movie, dict map[uint16]swftag.Definition) map[uint16][]uint16 {
	codes := make(map[uint16][]uint16)
	for id, def := range dict {
		font, ok := def.(*swftag.DefineFont)
		if !ok || font.Version < 2 {
			continue
		}
		table := make([]uint16, len(font.Glyphs))
		for i, g := range font.Glyphs {
			table[i] = g.Code
		}
		codes[id] = table
	}
	m.Walk(func(tag swftag.Tag, _ int) bool {
		if info, ok := tag.(*swftag.DefineFontInfo); ok {
			if _, done := codes[info.FontID]; !done {
				codes[info.FontID] = info.Codes
			}
		}
		return true
	})
	return codes
}
