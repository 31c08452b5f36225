package main

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/swf/swfquery"
	"github.com/npillmayer/swf/swfshape"
	"github.com/npillmayer/swf/swftag"
	"github.com/pterm/pterm"
)

func printTagList(tags []swftag.Tag) {
	pterm.Printf("Timeline has %d tags\n", len(tags))
	if len(tags) == 0 {
		return
	}
	data := [][]string{
		{"Index", "Offset", "Kind", "Length", "Summary"},
	}
	for i, tag := range tags {
		data = append(data, []string{
			strconv.Itoa(i),
			strconv.FormatInt(tag.Offset(), 10),
			fmt.Sprintf("%s(%d)", tag.Kind(), uint16(tag.Kind())),
			strconv.Itoa(int(tag.Header().ContentLength)),
			summary(tag),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printHistogram(hist []swfquery.TagCount) {
	data := [][]string{
		{"Kind", "Count", "Decoded"},
	}
	for _, entry := range hist {
		data = append(data, []string{
			fmt.Sprintf("%s(%d)", entry.Kind, uint16(entry.Kind)),
			strconv.Itoa(entry.Count),
			strconv.FormatBool(swftag.IsDecoded(entry.Kind)),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// summary describes the content of a tag in a single line.
func summary(tag swftag.Tag) string {
	switch t := tag.(type) {
	case *swftag.DefineShape:
		return fmt.Sprintf("#%d, level %d, %d edges", t.ID, t.Level, t.Shape.EdgeCount())
	case *swftag.DefineMorphShape:
		return fmt.Sprintf("#%d, %d start edges, %d end edges", t.ID, t.Start.EdgeCount(), t.End.EdgeCount())
	case *swftag.DefineSprite:
		return fmt.Sprintf("#%d, %d frames, %d tags", t.ID, t.FrameCount, len(t.Tags))
	case *swftag.DefineFont:
		return fmt.Sprintf("#%d %q, %d glyphs", t.ID, t.Name, len(t.Glyphs))
	case *swftag.DefineText:
		return fmt.Sprintf("#%d, %d records", t.ID, len(t.Records))
	case *swftag.DefineBits:
		return fmt.Sprintf("#%d, %s, %d bytes", t.ID, t.ImageType, len(t.Data))
	case *swftag.DefineBitsLossless:
		return fmt.Sprintf("#%d, %d × %d, format %d", t.ID, t.Width, t.Height, t.Format)
	case *swftag.PlaceObject:
		return fmt.Sprintf("depth %d, character #%d", t.Depth, t.CharacterID)
	case *swftag.RemoveObject:
		return fmt.Sprintf("depth %d", t.Depth)
	case *swftag.FrameLabel:
		return strconv.Quote(t.Name)
	case *swftag.SetBackgroundColor:
		return t.Color.String()
	case *swftag.SymbolClass:
		return fmt.Sprintf("%d symbols", len(t.Symbols))
	case *swftag.DoABC:
		return fmt.Sprintf("%q, %d bytes", t.Name, len(t.ABCData))
	}
	if d, ok := tag.(swftag.Definition); ok {
		return fmt.Sprintf("#%d", d.CharacterID())
	}
	return ""
}

func printShape(ref swfquery.ShapeRef, svg bool) {
	groups := ref.Shape.Groups()
	pterm.Info.Printf("%s: %s, %d group(s)\n", ref, ref.Shape, len(groups))
	if !svg {
		data := [][]string{
			{"Group", "Fill styles", "Fill edges", "Line styles", "Line edges"},
		}
		for i, g := range groups {
			data = append(data, []string{
				strconv.Itoa(i),
				fmt.Sprintf("%v", g.Fills.StyleIndices()),
				strconv.Itoa(len(g.Fills.Path())),
				fmt.Sprintf("%v", g.Lines.StyleIndices()),
				strconv.Itoa(len(g.Lines.Path())),
			})
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		return
	}
	rec := &swfshape.PathRecorder{}
	ref.Shape.Export(rec)
	for _, p := range rec.Paths {
		kind := "fill"
		if p.Stroke {
			kind = "stroke"
		}
		pterm.Printf("<path class=%q d=%q/>\n", kind, p.SVGPath())
	}
}

func printStyles(ref swfquery.ShapeRef) {
	pterm.Info.Printf("%s\n", ref)
	data := [][]string{
		{"Index", "Kind", "Style"},
	}
	for i, fill := range ref.Shape.FillStyleTable() {
		data = append(data, []string{strconv.Itoa(i + 1), "fill", fmt.Sprintf("%v", fill)})
	}
	for i, line := range ref.Shape.LineStyleTable() {
		data = append(data, []string{strconv.Itoa(i + 1), "line", line.String()})
	}
	if len(data) == 1 {
		pterm.Println("shape has no styles")
		return
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printText(id uint16, lines []swfquery.TextLine) {
	pterm.Info.Printf("text #%d, %d record(s)\n", id, len(lines))
	data := [][]string{
		{"Font", "Height", "Offset", "Text"},
	}
	for _, l := range lines {
		data = append(data, []string{
			fmt.Sprintf("#%d", l.FontID),
			strconv.Itoa(int(l.Height)),
			fmt.Sprintf("%d,%d", l.X, l.Y),
			strconv.Quote(l.Text),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printProblems(m *swftag.Movie) {
	for _, e := range m.Errors() {
		pterm.Error.Println(e.Error())
	}
	for _, w := range m.Warnings() {
		pterm.Warning.Println(w.String())
	}
}
