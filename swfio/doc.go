/*
Package swfio reads the primitive data types of the SWF file format.

SWF data is a mixture of byte-aligned little-endian integers and bit-packed
fields. Bit fields are read most significant bit first and may span byte
boundaries. Structures like rectangles, matrices and color transforms are
bit-packed internally, but always start on a byte boundary.

Reader keeps track of a byte position and of the bits still pending from the
current byte. Every aligned read discards pending bits first; only the bit
field operations ReadUB, ReadSB and ReadFB leave pending bits behind.

A Reader operates on a window of an io.ReaderAt. Readers for sub-windows
(e.g., the content of a single tag) are created with Section and share the
underlying source, which makes it cheap to hand bounded views to decoders.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package swfio

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'swf.io'
func tracer() tracing.Trace {
	return tracing.Select("swf.io")
}
