package swfshape

import (
	"fmt"

	"github.com/npillmayer/swf/swfio"
)

// State bits of a style-change record.
const (
	stateNewStyles = 0x10
	stateLine      = 0x08
	stateFill1     = 0x04
	stateFill0     = 0x02
	stateMoveTo    = 0x01
)

// DecodeShape reads a SHAPE: index bit widths followed by shape records,
// without style tables of its own. Glyph outlines and the edges of morph
// shapes are stored this way.
func DecodeShape(r *swfio.Reader, divisor float64) (*Shape, error) {
	r.Align()
	f := r.Fields()
	fillBits, lineBits := int(f.UB(4)), int(f.UB(4))
	if err := f.Err(); err != nil {
		return nil, err
	}
	records, err := decodeRecords(r, 1, fillBits, lineBits)
	if err != nil {
		return nil, err
	}
	return NewShape(1, divisor, nil, nil, records), nil
}

// DecodeShapeWithStyle reads a SHAPEWITHSTYLE of the given level (1 to 4,
// i.e. DefineShape to DefineShape4).
func DecodeShapeWithStyle(r *swfio.Reader, level int, divisor float64) (*Shape, error) {
	fills, lines, err := ReadStyleArrays(r, level)
	if err != nil {
		return nil, err
	}
	f := r.Fields()
	fillBits, lineBits := int(f.UB(4)), int(f.UB(4))
	if err := f.Err(); err != nil {
		return nil, err
	}
	records, err := decodeRecords(r, level, fillBits, lineBits)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("decoded shape level %d: %d fill styles, %d line styles, %d records",
		level, len(fills), len(lines), len(records))
	return NewShape(level, divisor, fills, lines, records), nil
}

// decodeRecords reads shape records up to and including the end record.
func decodeRecords(r *swfio.Reader, level, fillBits, lineBits int) ([]Record, error) {
	records := make([]Record, 0, 32)
	f := r.Fields()
	for id := 0; ; id++ {
		if id >= swfio.MaxShapeRecords {
			return nil, swfio.NewFormatError(r.Pos(), "shape exceeds %d records", swfio.MaxShapeRecords)
		}
		if f.Flag() {
			straight := f.Flag()
			n := int(f.UB(4)) + 2
			if straight {
				records = append(records, readStraightEdge(f, id, n))
			} else {
				records = append(records, CurvedEdgeRecord{
					recordID:  recordID{id},
					ControlDX: f.SB(n),
					ControlDY: f.SB(n),
					AnchorDX:  f.SB(n),
					AnchorDY:  f.SB(n),
				})
			}
		} else {
			state := f.UB(5)
			if err := f.Err(); err != nil {
				return nil, fmt.Errorf("shape record %d: %w", id, err)
			}
			if state == 0 {
				return append(records, EndRecord{recordID{id}}), nil
			}
			rec := readStyleChange(f, id, state, level, fillBits, lineBits)
			if rec.NewStyles {
				fillBits, lineBits = rec.FillBits, rec.LineBits
			}
			records = append(records, rec)
		}
		if err := f.Err(); err != nil {
			return nil, fmt.Errorf("shape record %d: %w", id, err)
		}
	}
}

func readStraightEdge(f *swfio.Fields, id int, n int) StraightEdgeRecord {
	rec := StraightEdgeRecord{recordID: recordID{id}, General: f.Flag()}
	if !rec.General {
		rec.Vertical = f.Flag()
	}
	if rec.General || !rec.Vertical {
		rec.DeltaX = f.SB(n)
	}
	if rec.General || rec.Vertical {
		rec.DeltaY = f.SB(n)
	}
	return rec
}

// readStyleChange reads the payload of a style-change record. Style indices
// are read with the widths currently in effect; new widths declared by the
// record apply to subsequent records only.
func readStyleChange(f *swfio.Fields, id int, state uint32, level, fillBits, lineBits int) StyleChangeRecord {
	rec := StyleChangeRecord{
		recordID:    recordID{id},
		NewStyles:   state&stateNewStyles != 0,
		ChangeLine:  state&stateLine != 0,
		ChangeFill1: state&stateFill1 != 0,
		ChangeFill0: state&stateFill0 != 0,
		FillBits:    fillBits,
		LineBits:    lineBits,
	}
	if state&stateMoveTo != 0 {
		n := int(f.UB(5))
		x, y := f.SB(n), f.SB(n)
		rec.MoveTo = Some(Point{X: float64(x), Y: float64(y)})
	}
	if rec.ChangeFill0 {
		rec.Fill0 = f.UB(fillBits)
	}
	if rec.ChangeFill1 {
		rec.Fill1 = f.UB(fillBits)
	}
	if rec.ChangeLine {
		rec.Line = f.UB(lineBits)
	}
	if rec.NewStyles && f.OK() {
		fills, lines, err := ReadStyleArrays(f.Reader(), level)
		if err != nil {
			f.Fail(err)
			return rec
		}
		rec.FillStyles, rec.LineStyles = fills, lines
		rec.FillBits, rec.LineBits = int(f.UB(4)), int(f.UB(4))
	}
	return rec
}
