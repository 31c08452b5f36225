/*
Package swf handles SWF movies, the file format of Adobe Flash.

The format is a container of tags: definitions of characters (shapes, fonts,
bitmaps, sprites) and control tags building up the frames of a timeline.
This module decodes the container and reconstructs drawable path geometry
from shape definitions. It does not play movies and does not interpret
ActionScript.

Package swf offers convenience entry points. The work is done in

▪︎ swfio: reading bit-packed and byte-aligned primitives,

▪︎ swftag: tag headers, the tag container parser and tag decoders,

▪︎ swfshape: shape records, styles, edge reconstruction and path export,

▪︎ swfquery: queries on parsed movies.

# Links

SWF file format specification, version 19:
https://open-flash.github.io/mirrors/swf-spec-19.pdf

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package swf

import (
	"io"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/swf/internal/movieload"
	"github.com/npillmayer/swf/swfshape"
	"github.com/npillmayer/swf/swftag"
)

// tracer writes to trace with key 'swf.load'
func tracer() tracing.Trace {
	return tracing.Select("swf.load")
}

// Parse parses a complete SWF file in memory, compressed or not.
//
// Errors are returned for invalid file headers or broken compression only.
// Tags which fail to decode are dropped and recorded with the movie, unless
// option swftag.StrictDecoding is set.
func Parse(data []byte, opts ...swftag.ParseOption) (*swftag.Movie, error) {
	m, err := movieload.ParseMovieFile(data)
	if err != nil {
		return nil, err
	}
	return swftag.Parse(m.Body, m.Header, opts...)
}

// LoadMovie loads and parses an SWF file.
func LoadMovie(path string, opts ...swftag.ParseOption) (*swftag.Movie, error) {
	m, err := movieload.LoadMovieFile(path)
	if err != nil {
		return nil, err
	}
	tracer().Infof("loaded movie %s: %s", m.Name, m.Header)
	return swftag.Parse(m.Body, m.Header, opts...)
}

// Decode reads an SWF file from r and parses it.
func Decode(r io.Reader, opts ...swftag.ParseOption) (*swftag.Movie, error) {
	m, err := movieload.ReadMovie(r)
	if err != nil {
		return nil, err
	}
	return swftag.Parse(m.Body, m.Header, opts...)
}

// Outline exports a shape's geometry as a list of recorded paths, fills
// first, then strokes, for each group of the shape.
//
// This is a convenience API for the common case of collecting a shape's
// paths. Clients who want to render directly should implement
// swfshape.Visitor and call Shape.Export.
func Outline(shape *swfshape.Shape) []swfshape.RecordedPath {
	if shape == nil {
		return nil
	}
	rec := &swfshape.PathRecorder{}
	shape.Export(rec)
	return rec.Paths
}
