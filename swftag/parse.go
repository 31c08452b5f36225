package swftag

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/npillmayer/swf/swfio"
)

// ParseOption guides and influences the parsing of a movie.
type ParseOption int

const (
	StrictDecoding  ParseOption = iota // the first tag failing to decode aborts parsing
	KeepUnknownTags                    // retain the content of skipped tags
)

// Compression is the compression scheme of a movie, as announced by the first
// byte of its signature.
type Compression uint8

const (
	Uncompressed Compression = iota // signature FWS
	Zlib                            // signature CWS
	LZMA                            // signature ZWS
)

// Signature returns the file signature of a compression scheme.
func (c Compression) Signature() string {
	switch c {
	case Zlib:
		return "CWS"
	case LZMA:
		return "ZWS"
	}
	return "FWS"
}

func (c Compression) String() string {
	switch c {
	case Zlib:
		return "zlib"
	case LZMA:
		return "LZMA"
	}
	return "none"
}

// FileHeader is the fixed 8-byte header of an SWF file.
type FileHeader struct {
	Compression Compression
	Version     uint8
	FileLength  uint32 // length of the uncompressed file, including the header
}

func (h FileHeader) String() string {
	return fmt.Sprintf("%s version %d, %d bytes", h.Compression.Signature(), h.Version, h.FileLength)
}

// Movie is a parsed SWF movie.
type Movie struct {
	Header     FileHeader
	FrameSize  swfio.Rect // in twips
	FrameRate  float64    // frames per second
	FrameCount uint16
	Tags       []Tag        // decoded top-level tags, End excluded
	Skipped    []SkippedTag // tags not decoded, at any nesting level
	options    []ParseOption
	ec         errorCollector
}

// Parse parses a movie body, i.e. the (decompressed) data following the file
// header, starting with the frame rectangle. A Movie needs no access to body
// after Parse returns, except for tags holding raw payloads.
func Parse(body []byte, hdr FileHeader, opts ...ParseOption) (*Movie, error) {
	return ParseReader(bytes.NewReader(body), int64(len(body)), hdr, opts...)
}

// ParseReader parses a movie body from the first size bytes of src.
//
// Parse errors of individual tags do not fail the parse, but are recorded and
// can be inspected with Movie.Errors. Clients should check
// Movie.HasCriticalErrors to decide if the movie is reliable enough for their
// purpose.
func ParseReader(src io.ReaderAt, size int64, hdr FileHeader, opts ...ParseOption) (*Movie, error) {
	m := &Movie{Header: hdr, options: opts}
	r := swfio.NewReader(src, size)
	if hdr.Version > 0 {
		r.SetVersion(hdr.Version)
	}
	f := r.Fields()
	m.FrameSize = f.Rect()
	m.FrameRate = f.Fixed8()
	m.FrameCount = f.UI16()
	if err := f.Err(); err != nil {
		return nil, fmt.Errorf("movie header: %w", err)
	}
	tracer().Debugf("movie %s, frame size %s, %.2f fps, %d frame(s)",
		hdr, m.FrameSize, m.FrameRate, m.FrameCount)
	cp := NewContainerParser(r, m)
	for tag, err := range cp.Tags() {
		if err != nil {
			return nil, err
		}
		m.Tags = append(m.Tags, tag)
	}
	tracer().Infof("parsed %d tag(s), skipped %d, %d error(s), %d warning(s)",
		len(m.Tags), len(m.Skipped), len(m.ec.errors), len(m.ec.warnings))
	return m, nil
}

func (m *Movie) hasOption(opt ParseOption) bool {
	return slices.Contains(m.options, opt)
}

// Errors returns all errors encountered during parsing. Every error stands
// for a tag which has been dropped.
func (m *Movie) Errors() []DecodeError {
	if !m.ec.hasErrors() {
		return []DecodeError{}
	}
	return m.ec.errors
}

// Warnings returns all warnings encountered during parsing.
func (m *Movie) Warnings() []Warning {
	if !m.ec.hasWarnings() {
		return []Warning{}
	}
	return m.ec.warnings
}

// CriticalErrors returns all errors with critical severity.
func (m *Movie) CriticalErrors() []DecodeError {
	return m.ec.criticalErrors()
}

// HasCriticalErrors returns true if any critical errors were encountered.
func (m *Movie) HasCriticalErrors() bool {
	return m.ec.hasCriticalErrors()
}

// Version is a shortcut for the SWF version of the file header.
func (m *Movie) Version() uint8 {
	return m.Header.Version
}

// Walk calls fn for every decoded tag in document order, descending into
// sprites. It stops when fn returns false.
func (m *Movie) Walk(fn func(tag Tag, depth int) bool) {
	walkTags(m.Tags, 0, fn)
}

func walkTags(tags []Tag, depth int, fn func(Tag, int) bool) bool {
	for _, tag := range tags {
		if !fn(tag, depth) {
			return false
		}
		if sprite, ok := tag.(*DefineSprite); ok {
			if !walkTags(sprite.Tags, depth+1, fn) {
				return false
			}
		}
	}
	return true
}
