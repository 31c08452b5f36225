package swftag

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/npillmayer/swf/swfio"
)

// ContainerParser pulls tags from a tag sequence, i.e. from the body of a
// movie or of a sprite. Tags are decoded one at a time; clients may stop
// pulling between any two tags.
//
// After every tag, the parser repositions to the tag's end as declared by
// its header. Decoders may therefore consume less (or try to consume more)
// than the tag's content without affecting subsequent tags.
type ContainerParser struct {
	r        *swfio.Reader
	movie    *Movie // collects errors, warnings and skipped tags
	kind     Kind   // kind of the container, for diagnostics
	depth    int    // sprite nesting depth
	decoders map[Kind]decodeFunc
	done     bool
}

// NewContainerParser creates a parser for the tags in r's window. Errors,
// warnings and skipped tags are recorded in movie, which also provides the
// parse options. movie may be nil.
func NewContainerParser(r *swfio.Reader, movie *Movie) *ContainerParser {
	if movie == nil {
		movie = &Movie{}
	}
	return &ContainerParser{
		r:        r,
		movie:    movie,
		kind:     TagEnd,
		decoders: leafDecoders,
	}
}

// Next returns the next decoded tag. After the End tag, or after the end of
// the container has been reached, it returns io.EOF. Tags which are skipped
// or fail to decode are not returned.
//
// Next returns an error other than io.EOF only with option StrictDecoding
// set, for the first tag which fails to decode. The parser is done afterwards.
func (cp *ContainerParser) Next() (Tag, error) {
	for !cp.done {
		tag, err := cp.step()
		if err != nil {
			cp.done = true
			return nil, err
		}
		if tag != nil {
			return tag, nil
		}
	}
	return nil, io.EOF
}

// Tags iterates over the remaining tags of the container. Iteration stops
// after the first error.
func (cp *ContainerParser) Tags() iter.Seq2[Tag, error] {
	return func(yield func(Tag, error) bool) {
		for {
			tag, err := cp.Next()
			if err == io.EOF {
				return
			}
			if !yield(tag, err) || err != nil {
				return
			}
		}
	}
}

// step processes a single tag. It returns a nil Tag for the End tag, for
// skipped tags and for tags which failed to decode.
func (cp *ContainerParser) step() (Tag, error) {
	start := cp.r.Pos()
	if start >= cp.r.End() || cp.r.Remaining() < 2 {
		cp.truncated(start, "container ends without End tag")
		return nil, nil
	}
	h, err := ReadTagHeader(cp.r)
	if err != nil {
		cp.truncated(start, "truncated tag header")
		return nil, nil
	}
	next := start + h.TotalLength()
	if next > cp.r.End() {
		cp.movie.ec.addWarning(h.Kind, fmt.Sprintf("content exceeds container by %d byte(s)",
			next-cp.r.End()), start)
	}
	tracer().Debugf("tag %s at offset %d", h, start)
	var tag Tag
	switch {
	case h.Kind == TagEnd:
		cp.done = true
	case h.Kind == TagDefineSprite:
		tag, err = cp.sprite(h, start)
	default:
		if decode, ok := cp.decoders[h.Kind]; ok {
			tag, err = cp.leaf(decode, h, start)
		} else {
			cp.skip(h, start)
		}
	}
	if serr := cp.r.Seek(next); serr != nil {
		return nil, serr
	}
	if err != nil {
		var de DecodeError
		if errors.As(err, &de) { // recorded by a nested sprite parser
			return nil, err
		}
		de = cp.movie.ec.addDecodeFailure(h, start, err)
		tracer().Errorf("dropping tag: %v", de)
		if cp.movie.hasOption(StrictDecoding) {
			return nil, de
		}
		return nil, nil
	}
	return tag, nil
}

func (cp *ContainerParser) leaf(decode decodeFunc, h TagHeader, start int64) (Tag, error) {
	r := cp.r.Section(int64(h.ContentLength))
	tag, err := decode(r, tagBase{header: h, offset: start})
	if err == nil && r.Remaining() > 0 {
		tracer().Debugf("%s: %d byte(s) of content not decoded", h.Kind, r.Remaining())
	}
	return tag, err
}

func (cp *ContainerParser) skip(h TagHeader, start int64) {
	skipped := SkippedTag{Header: h, Offset: start}
	if cp.movie.hasOption(KeepUnknownTags) {
		payload, err := cp.r.Section(int64(h.ContentLength)).ReadRest()
		if err != nil {
			tracer().Errorf("cannot retain payload of %s: %v", h.Kind, err)
		}
		skipped.Payload = payload
	}
	tracer().Debugf("skipping tag %s", h)
	cp.movie.Skipped = append(cp.movie.Skipped, skipped)
}

// sprite decodes a DefineSprite tag with a parser for the nested tags.
func (cp *ContainerParser) sprite(h TagHeader, start int64) (Tag, error) {
	if cp.depth >= swfio.MaxSpriteNesting {
		return nil, swfio.NewFormatError(start, "sprites nested deeper than %d levels", swfio.MaxSpriteNesting)
	}
	r := cp.r.Section(int64(h.ContentLength))
	f := r.Fields()
	sprite := &DefineSprite{tagBase: tagBase{header: h, offset: start}}
	sprite.ID = f.UI16()
	sprite.FrameCount = f.UI16()
	if err := f.Err(); err != nil {
		return nil, inSection("Header", err)
	}
	inner := &ContainerParser{
		r:        r,
		movie:    cp.movie,
		kind:     TagDefineSprite,
		depth:    cp.depth + 1,
		decoders: cp.decoders,
	}
	for tag, err := range inner.Tags() {
		if err != nil {
			return nil, err
		}
		sprite.Tags = append(sprite.Tags, tag)
	}
	tracer().Debugf("sprite #%d with %d tag(s)", sprite.ID, len(sprite.Tags))
	return sprite, nil
}

// truncated synthesizes an End tag for a container without one.
func (cp *ContainerParser) truncated(pos int64, issue string) {
	tracer().Infof("%s at offset %d", issue, pos)
	cp.movie.ec.addWarning(cp.kind, issue, pos)
	cp.done = true
}
