package swfshape

import (
	"fmt"
	"sync"
)

// TwipsDivisor converts twips to pixels. It is the unit divisor of all
// shapes except the glyphs of DefineFont and DefineFont2.
const TwipsDivisor = 20.0

// Shape is a decoded shape record stream together with its initial style
// tables. Shapes are immutable after decoding. Reconstruction of the edge
// geometry is performed on first use and memoized.
type Shape struct {
	Level      int         // 1..4 for DefineShape..DefineShape4
	Divisor    float64     // converts twips to output units
	FillStyles []FillStyle // initial fill styles
	LineStyles []LineStyle // initial line styles
	Records    []Record    // terminated by an EndRecord

	once  sync.Once
	built *geometry
}

// geometry is the outcome of reconstruction.
type geometry struct {
	groups []Group
	fills  []FillStyle // initial styles plus those declared by style changes
	lines  []LineStyle
}

// NewShape creates a shape from decoded parts. A divisor ≤ 0 is replaced
// by TwipsDivisor.
func NewShape(level int, divisor float64, fills []FillStyle, lines []LineStyle, records []Record) *Shape {
	if divisor <= 0 {
		divisor = TwipsDivisor
	}
	return &Shape{
		Level:      level,
		Divisor:    divisor,
		FillStyles: fills,
		LineStyles: lines,
		Records:    records,
	}
}

// Groups returns the reconstructed groups in paint order.
func (s *Shape) Groups() []Group {
	return s.geometry().groups
}

// FillStyleTable returns all fill styles addressable by the shape's edges:
// the initial ones followed by the ones declared in style-change records.
// Style index i refers to entry i-1.
func (s *Shape) FillStyleTable() []FillStyle {
	return s.geometry().fills
}

// LineStyleTable returns all line styles addressable by the shape's edges.
func (s *Shape) LineStyleTable() []LineStyle {
	return s.geometry().lines
}

// EdgeCount returns the number of edge records.
func (s *Shape) EdgeCount() int {
	n := 0
	for _, rec := range s.Records {
		switch rec.(type) {
		case StraightEdgeRecord, CurvedEdgeRecord:
			n++
		}
	}
	return n
}

func (s *Shape) geometry() *geometry {
	s.once.Do(func() {
		s.built = reconstruct(s)
		tracer().Debugf("reconstructed shape with %d records into %d group(s)",
			len(s.Records), len(s.built.groups))
	})
	return s.built
}

func (s *Shape) String() string {
	return fmt.Sprintf("shape level %d, %d fill styles, %d line styles, %d records",
		s.Level, len(s.FillStyles), len(s.LineStyles), len(s.Records))
}
