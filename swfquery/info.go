package swfquery

import (
	"fmt"
	"slices"

	"github.com/npillmayer/swf/swfio"
	"github.com/npillmayer/swf/swftag"
)

// --- Movie Information -----------------------------------------------------

// MovieType returns a short description of the kind of movie, e.g.
// "SWF 10 (zlib), ActionScript 3".
func MovieType(m *swftag.Movie) string {
	if m == nil {
		return ""
	}
	as := "ActionScript 1/2"
	if attr, ok := fileAttributes(m); ok && attr.ActionScript3 {
		as = "ActionScript 3"
	}
	return fmt.Sprintf("SWF %d (%s), %s", m.Version(), m.Header.Compression, as)
}

// MovieHeaderInfo is a summary of the file header and the movie header.
type MovieHeaderInfo struct {
	Signature   string
	Version     uint8
	FileLength  uint32
	Width       float64 // in pixels
	Height      float64 // in pixels
	FrameRate   float64
	FrameCount  uint16
	TagCount    int // decoded tags, including nested ones
	Skipped     int // tags not decoded
	AS3         bool
	HasMetadata bool
}

// HeaderInfo summarizes the headers of a movie.
// Returns (info, true) on success, or (zero, false) for a nil movie.
func HeaderInfo(m *swftag.Movie) (MovieHeaderInfo, bool) {
	var info MovieHeaderInfo
	if m == nil {
		return info, false
	}
	info.Signature = m.Header.Compression.Signature()
	info.Version = m.Header.Version
	info.FileLength = m.Header.FileLength
	info.Width = float64(m.FrameSize.Width()) / 20
	info.Height = float64(m.FrameSize.Height()) / 20
	info.FrameRate = m.FrameRate
	info.FrameCount = m.FrameCount
	m.Walk(func(swftag.Tag, int) bool {
		info.TagCount++
		return true
	})
	info.Skipped = len(m.Skipped)
	if attr, ok := fileAttributes(m); ok {
		info.AS3 = attr.ActionScript3
		info.HasMetadata = attr.HasMetadata
	}
	return info, true
}

func fileAttributes(m *swftag.Movie) (*swftag.FileAttributes, bool) {
	for _, tag := range m.Tags {
		if attr, ok := tag.(*swftag.FileAttributes); ok {
			return attr, true
		}
	}
	return nil, false
}

// TagCount is an entry of a tag histogram.
type TagCount struct {
	Kind  swftag.Kind
	Count int
}

// TagHistogram counts the tags of a movie by kind, including tags nested in
// sprites and tags which have not been decoded. Entries are sorted by
// descending count, then by kind.
func TagHistogram(m *swftag.Movie) []TagCount {
	if m == nil {
		return nil
	}
	counts := make(map[swftag.Kind]int)
	m.Walk(func(tag swftag.Tag, _ int) bool {
		counts[tag.Kind()]++
		return true
	})
	for _, s := range m.Skipped {
		counts[s.Header.Kind]++
	}
	hist := make([]TagCount, 0, len(counts))
	for k, n := range counts {
		hist = append(hist, TagCount{Kind: k, Count: n})
	}
	slices.SortFunc(hist, func(a, b TagCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return int(a.Kind) - int(b.Kind)
	})
	return hist
}

// BackgroundColor returns the color set by the first SetBackgroundColor tag.
func BackgroundColor(m *swftag.Movie) (swfio.RGBA, bool) {
	if m == nil {
		return swfio.RGBA{}, false
	}
	for _, tag := range m.Tags {
		if bg, ok := tag.(*swftag.SetBackgroundColor); ok {
			return bg.Color, true
		}
	}
	return swfio.RGBA{}, false
}

// FrameLabelInfo is a label of a frame of the main timeline.
type FrameLabelInfo struct {
	Frame  int // 0-based
	Name   string
	Anchor bool
}

// FrameLabels returns the frame labels of the main timeline in frame order.
// Labels from a DefineSceneAndFrameLabelData tag are included, unless a
// FrameLabel tag already names the same frame.
func FrameLabels(m *swftag.Movie) []FrameLabelInfo {
	if m == nil {
		return nil
	}
	var labels []FrameLabelInfo
	var scene *swftag.DefineSceneAndFrameLabelData
	frame := 0
	for _, tag := range m.Tags {
		switch t := tag.(type) {
		case *swftag.ShowFrame:
			frame++
		case *swftag.FrameLabel:
			labels = append(labels, FrameLabelInfo{Frame: frame, Name: t.Name, Anchor: t.NamedAnchor})
		case *swftag.DefineSceneAndFrameLabelData:
			scene = t
		}
	}
	if scene != nil {
		for _, fl := range scene.FrameLabels {
			f := int(fl.Frame)
			if slices.ContainsFunc(labels, func(l FrameLabelInfo) bool { return l.Frame == f }) {
				continue
			}
			labels = append(labels, FrameLabelInfo{Frame: f, Name: fl.Label})
		}
		slices.SortStableFunc(labels, func(a, b FrameLabelInfo) int { return a.Frame - b.Frame })
	}
	return labels
}
