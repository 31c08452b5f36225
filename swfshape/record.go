package swfshape

import (
	"fmt"
	"math"
)

// Point is a position in twips.
type Point struct {
	X, Y float64
}

// pointTolerance is the distance below which two coordinates are considered equal.
const pointTolerance = 0.001

// Equal reports whether p and q coincide within a tolerance of 0.001 twips.
func (p Point) Equal(q Point) bool {
	return math.Abs(p.X-q.X) < pointTolerance && math.Abs(p.Y-q.Y) < pointTolerance
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// --- Records ---------------------------------------------------------------

// Record is one entry of a shape's record stream. Concrete types are
// EndRecord, StyleChangeRecord, StraightEdgeRecord and CurvedEdgeRecord.
// IDs are strictly increasing within a stream.
type Record interface {
	ID() int
	isRecord()
}

type recordID struct {
	id int
}

func (rid recordID) ID() int { return rid.id }

func (recordID) isRecord() {}

// EndRecord terminates a record stream.
type EndRecord struct {
	recordID
}

func (rec EndRecord) String() string {
	return fmt.Sprintf("#%d end", rec.id)
}

// StyleChangeRecord switches styles, moves the pen or declares new style tables.
// Style indices are raw values as stored in the record, i.e. relative to the
// most recently declared style tables.
type StyleChangeRecord struct {
	recordID
	NewStyles   bool
	ChangeLine  bool
	ChangeFill0 bool
	ChangeFill1 bool
	MoveTo      Option[Point] // absolute position in twips
	Fill0       uint32
	Fill1       uint32
	Line        uint32
	FillStyles  []FillStyle // declared if NewStyles is set
	LineStyles  []LineStyle
	FillBits    int // index widths in effect for subsequent records
	LineBits    int
}

// ResetsStyles reports whether the record sets line, fill0 and fill1 to zero
// in one go, which starts a new group.
func (rec StyleChangeRecord) ResetsStyles() bool {
	return rec.ChangeLine && rec.ChangeFill0 && rec.ChangeFill1 &&
		rec.Line == 0 && rec.Fill0 == 0 && rec.Fill1 == 0
}

func (rec StyleChangeRecord) String() string {
	s := fmt.Sprintf("#%d style change", rec.id)
	if p, ok := rec.MoveTo.Unwrap(); ok {
		s += " move-to " + p.String()
	}
	if rec.ChangeFill0 {
		s += fmt.Sprintf(" fill0=%d", rec.Fill0)
	}
	if rec.ChangeFill1 {
		s += fmt.Sprintf(" fill1=%d", rec.Fill1)
	}
	if rec.ChangeLine {
		s += fmt.Sprintf(" line=%d", rec.Line)
	}
	if rec.NewStyles {
		s += fmt.Sprintf(" new styles (%d fills, %d lines)", len(rec.FillStyles), len(rec.LineStyles))
	}
	return s
}

// StraightEdgeRecord moves the pen along a line. A non-general line is
// either vertical or horizontal and carries only the delta of that axis.
type StraightEdgeRecord struct {
	recordID
	General  bool
	Vertical bool
	DeltaX   int32
	DeltaY   int32
}

func (rec StraightEdgeRecord) String() string {
	return fmt.Sprintf("#%d line %d,%d", rec.id, rec.DeltaX, rec.DeltaY)
}

// CurvedEdgeRecord moves the pen along a quadratic Bézier curve. The anchor
// delta is relative to the control point.
type CurvedEdgeRecord struct {
	recordID
	ControlDX, ControlDY int32
	AnchorDX, AnchorDY   int32
}

func (rec CurvedEdgeRecord) String() string {
	return fmt.Sprintf("#%d curve %d,%d %d,%d", rec.id, rec.ControlDX, rec.ControlDY,
		rec.AnchorDX, rec.AnchorDY)
}
