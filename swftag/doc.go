/*
Package swftag decodes the tag structure of SWF movies.

An SWF movie body is a sequence of tags. Every tag starts with a header
carrying the tag kind and the length of the tag's content, which makes it
possible to skip tags without understanding them. Package `swftag` decodes
the tags relevant for the geometry of a movie (shapes, fonts, morph shapes,
display list operations, bitmaps and a couple of control tags) and skips all
others.

▪︎ Tolerance: decoding a single tag must never derail the whole movie. After
every tag, the parser repositions to the end of the tag as declared by its header,
whatever the tag's decoder consumed. Tags which fail to decode are dropped and
reported as a DecodeError, available from Movie.Errors.

▪︎ Truncation: a movie or sprite body ending without an End tag is treated as
if the End tag were present; a warning is recorded.

▪︎ Sprites: DefineSprite tags contain a nested tag sequence, which is parsed
recursively up to a nesting depth of swfio.MaxSpriteNesting.

Clients pull tags from a ContainerParser one at a time, or receive a fully
parsed Movie from Parse:

	movie, err := swftag.Parse(body, header)
	for _, tag := range movie.Tags {
	    if def, ok := tag.(*swftag.DefineShape); ok {
	        def.Shape.Export(visitor)
	    }
	}

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package swftag

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'swf.tags'
func tracer() tracing.Trace {
	return tracing.Select("swf.tags")
}
