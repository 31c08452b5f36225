/*
Package swfshape decodes SWF shape record streams and reconstructs drawable
paths from them.

SWF stores a shape as a flat sequence of records. Edge records move a pen by
relative deltas, style-change records switch the active fill and line styles,
move the pen to an absolute position or declare new style tables. Every edge
separates two regions: the region left of the edge is painted with "fill0",
the region right of it with "fill1". Edges of a single filled area may appear
in any order and orientation throughout the record stream.

Reconstruction sorts this out. Edges are collected per style index, edges
bordering a fill0 region are reversed, and the edges of every style are then
stitched into contiguous contours. A shape may consist of several groups,
separated by style-change records which reset all three styles to zero.
Groups are painted one after the other.

Clients receive the reconstructed geometry by handing a Visitor to
Shape.Export. Coordinates are converted from twips to output units by the
shape's unit divisor.

	shape, err := swfshape.DecodeShapeWithStyle(r, 1, swfshape.TwipsDivisor)
	…
	rec := &swfshape.PathRecorder{}
	shape.Export(rec)

Reconstruction is performed at most once per shape. A decoded Shape is
immutable, so different shapes, or the same shape, may be exported from
multiple goroutines.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package swfshape

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'swf.shapes'
func tracer() tracing.Trace {
	return tracing.Select("swf.shapes")
}
