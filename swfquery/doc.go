/*
Package swfquery answers questions about parsed SWF movies.

Queries work on a swftag.Movie and never fail: missing information results
in zero values or an ok-flag of false. Queries which collect shapes include
shapes nested in sprites, font glyphs, and both key frames of morph shapes.

Reconstructing and exporting many shapes may be done concurrently with
ReconstructAll. The resulting outlines can be serialized to CBOR.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package swfquery

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'swf.query'
func tracer() tracing.Trace {
	return tracing.Select("swf.query")
}
