package swfshape

import (
	"math"
	"slices"
)

// Edge is a directed straight or quadratic edge in twips, tagged with the
// line and fill style it belongs to. Style indices refer to the shape's
// accumulated style tables, 0 meaning none.
type Edge struct {
	From      Point
	Control   Point // only meaningful for curved edges
	To        Point
	Curved    bool
	LineStyle int
	FillStyle int
}

// reversed returns e running in the opposite direction and tagged with fill.
// The control point of a curve stays the same.
func (e Edge) reversed(fill int) Edge {
	return Edge{
		From:      e.To,
		Control:   e.Control,
		To:        e.From,
		Curved:    e.Curved,
		LineStyle: e.LineStyle,
		FillStyle: fill,
	}
}

// EdgeMap maps style indices to ordered lists of edges.
type EdgeMap map[int][]Edge

// StyleIndices returns the style indices of m in ascending order.
func (m EdgeMap) StyleIndices() []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Path concatenates the edges of all styles in ascending style order.
func (m EdgeMap) Path() []Edge {
	var path []Edge
	for _, k := range m.StyleIndices() {
		path = append(path, m[k]...)
	}
	return path
}

func (m EdgeMap) add(style int, edges ...Edge) {
	m[style] = append(m[style], edges...)
}

// Group holds the stitched fill and line edges between two group boundaries.
type Group struct {
	Fills EdgeMap
	Lines EdgeMap
}

// IsEmpty reports whether the group contains no edges at all.
func (g Group) IsEmpty() bool {
	return len(g.Fills) == 0 && len(g.Lines) == 0
}

// --- Reconstruction --------------------------------------------------------

// reconstruction is the state of a walk over a shape's records.
type reconstruction struct {
	pos                    Point
	fill0, fill1, line     int // active style indices, offset into the tables
	fillOffset, lineOffset int // table sizes before the latest style declaration
	fills                  []FillStyle
	lines                  []LineStyle
	subPath                []Edge
	fillEdges, lineEdges   EdgeMap
	groups                 []Group
}

func reconstruct(s *Shape) *geometry {
	rc := &reconstruction{
		fills:     slices.Clone(s.FillStyles),
		lines:     slices.Clone(s.LineStyles),
		fillEdges: EdgeMap{},
		lineEdges: EdgeMap{},
	}
	for _, rec := range s.Records {
		switch rec := rec.(type) {
		case StyleChangeRecord:
			rc.styleChange(rec)
		case StraightEdgeRecord:
			rc.straightEdge(rec)
		case CurvedEdgeRecord:
			rc.curvedEdge(rec)
		case EndRecord:
			rc.end()
		}
	}
	return &geometry{groups: rc.groups, fills: rc.fills, lines: rc.lines}
}

func (rc *reconstruction) styleChange(rec StyleChangeRecord) {
	if rec.ChangeLine || rec.ChangeFill0 || rec.ChangeFill1 {
		rc.flush()
	}
	if rec.NewStyles {
		rc.fillOffset, rc.lineOffset = len(rc.fills), len(rc.lines)
		rc.fills = append(rc.fills, rec.FillStyles...)
		rc.lines = append(rc.lines, rec.LineStyles...)
	}
	if rec.ResetsStyles() {
		rc.finishGroup()
	} else {
		if rec.ChangeLine {
			rc.line = offsetIndex(rec.Line, rc.lineOffset)
		}
		if rec.ChangeFill0 {
			rc.fill0 = offsetIndex(rec.Fill0, rc.fillOffset)
		}
		if rec.ChangeFill1 {
			rc.fill1 = offsetIndex(rec.Fill1, rc.fillOffset)
		}
	}
	if p, ok := rec.MoveTo.Unwrap(); ok {
		rc.pos = p
	}
}

func offsetIndex(inx uint32, offset int) int {
	if inx == 0 {
		return 0
	}
	return int(inx) + offset
}

func (rc *reconstruction) straightEdge(rec StraightEdgeRecord) {
	from := rc.pos
	if rec.General || !rec.Vertical {
		rc.pos.X += float64(rec.DeltaX)
	}
	if rec.General || rec.Vertical {
		rc.pos.Y += float64(rec.DeltaY)
	}
	rc.subPath = append(rc.subPath, Edge{
		From:      from,
		To:        rc.pos,
		LineStyle: rc.line,
		FillStyle: rc.fill1,
	})
}

func (rc *reconstruction) curvedEdge(rec CurvedEdgeRecord) {
	from := rc.pos
	ctrl := Point{X: from.X + float64(rec.ControlDX), Y: from.Y + float64(rec.ControlDY)}
	rc.pos = Point{X: ctrl.X + float64(rec.AnchorDX), Y: ctrl.Y + float64(rec.AnchorDY)}
	rc.subPath = append(rc.subPath, Edge{
		From:      from,
		Control:   ctrl,
		To:        rc.pos,
		Curved:    true,
		LineStyle: rc.line,
		FillStyle: rc.fill1,
	})
}

// end processes a pending sub-path and closes the last group, if anything
// is left to close.
func (rc *reconstruction) end() {
	rc.flush()
	if len(rc.fillEdges) > 0 || len(rc.lineEdges) > 0 {
		rc.finishGroup()
	}
	rc.fill0, rc.fill1, rc.line = 0, 0, 0
}

// flush distributes the edges of the current sub-path to the edge maps of
// the active styles. Edges bordering a fill0 region are reversed, so that
// every fill contour runs with its region on the same side.
func (rc *reconstruction) flush() {
	if len(rc.subPath) == 0 {
		return
	}
	if rc.fill0 != 0 {
		rev := make([]Edge, 0, len(rc.subPath))
		for i := len(rc.subPath) - 1; i >= 0; i-- {
			rev = append(rev, rc.subPath[i].reversed(rc.fill0))
		}
		rc.fillEdges.add(rc.fill0, rev...)
	}
	if rc.fill1 != 0 {
		rc.fillEdges.add(rc.fill1, rc.subPath...)
	}
	if rc.line != 0 {
		rc.lineEdges.add(rc.line, rc.subPath...)
	}
	rc.subPath = nil
}

// finishGroup stitches the current edge maps and starts a new group with
// all active styles reset.
func (rc *reconstruction) finishGroup() {
	g := Group{Fills: EdgeMap{}, Lines: EdgeMap{}}
	for style, edges := range rc.fillEdges {
		g.Fills[style] = stitch(edges)
	}
	for style, edges := range rc.lineEdges {
		g.Lines[style] = stitch(edges)
	}
	rc.groups = append(rc.groups, g)
	rc.fillEdges, rc.lineEdges = EdgeMap{}, EdgeMap{}
	rc.fill0, rc.fill1, rc.line = 0, 0, 0
}

// --- Stitching -------------------------------------------------------------

type coordKey struct {
	x, y int64
}

func keyOf(p Point) coordKey {
	return coordKey{x: int64(math.Round(p.X * 1000)), y: int64(math.Round(p.Y * 1000))}
}

// stitch orders edges into contiguous contours. Starting with the first
// edge, the successor of an edge is, in order of preference,
//
//   - the next remaining edge in declaration order, if it starts where the
//     current edge ends,
//   - the first remaining edge starting at the current end point,
//   - the first remaining edge, starting a new contour.
//
// Every step consumes one edge.
func stitch(edges []Edge) []Edge {
	n := len(edges)
	if n <= 1 {
		return slices.Clone(edges)
	}
	starts := make(map[coordKey][]int, n)
	for i, e := range edges {
		k := keyOf(e.From)
		starts[k] = append(starts[k], i)
	}
	used := make([]bool, n)
	firstUnused := 0
	out := make([]Edge, 0, n)
	take := func(i int) {
		used[i] = true
		out = append(out, edges[i])
		for firstUnused < n && used[firstUnused] {
			firstUnused++
		}
	}
	take(0)
	last := 0
	for len(out) < n {
		end := edges[last].To
		next := -1
		for i := last + 1; i < n; i++ { // next remaining in declaration order
			if !used[i] {
				if edges[i].From.Equal(end) {
					next = i
				}
				break
			}
		}
		if next < 0 {
			for _, i := range starts[keyOf(end)] {
				if !used[i] {
					next = i
					break
				}
			}
		}
		if next < 0 {
			next = firstUnused
		}
		take(next)
		last = next
	}
	return out
}
