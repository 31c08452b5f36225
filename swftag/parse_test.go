package swftag

import (
	"bytes"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/swf/internal/swftest"
	"github.com/npillmayer/swf/swfio"
)

const kindUnknown = 200

var testHeader = FileHeader{Compression: Uncompressed, Version: 10}

func parseBody(t *testing.T, body []byte, opts ...ParseOption) *Movie {
	t.Helper()
	movie, err := Parse(body, testHeader, opts...)
	if err != nil {
		t.Fatalf("cannot parse movie: %v", err)
	}
	return movie
}

func redSquare() []byte {
	styles := swftest.StyleArrays([][]byte{swftest.SolidFillRGB(0xff, 0, 0)}, nil)
	change := swftest.StyleChange{MoveTo: swftest.At(0, 0), Fill1: swftest.Index(1)}
	return swftest.NewShapeWithStyle(styles, 1, 0).Change(change).Square(20).End().Bytes()
}

func TestParseMinimalMovie(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.tags")
	defer teardown()
	//
	movie := parseBody(t, swftest.MovieBody(550, 400, 12.0, 1, swftest.EndTag()))
	if movie.FrameRate != 12.0 {
		t.Errorf("expected frame rate 12.0, have %g", movie.FrameRate)
	}
	if movie.FrameCount != 1 {
		t.Errorf("expected 1 frame, have %d", movie.FrameCount)
	}
	if movie.FrameSize.Width() != 550*20 || movie.FrameSize.Height() != 400*20 {
		t.Errorf("unexpected frame size %v", movie.FrameSize)
	}
	if len(movie.Tags) != 0 || len(movie.Errors()) != 0 || len(movie.Warnings()) != 0 {
		t.Errorf("expected no tags, errors or warnings; have %d/%d/%d",
			len(movie.Tags), len(movie.Errors()), len(movie.Warnings()))
	}
}

func TestParseTruncatedMovieHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.tags")
	defer teardown()
	//
	body := swftest.MovieBody(550, 400, 12.0, 1)
	if _, err := Parse(body[:4], testHeader); err == nil {
		t.Errorf("expected truncated movie header to fail")
	}
}

func TestReadTagHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.tags")
	defer teardown()
	//
	tests := []struct {
		name   string
		data   []byte
		kind   Kind
		length uint32
		hlen   int
	}{
		{"short", swftest.Tag(swftest.KindShowFrame, nil), TagShowFrame, 0, 2},
		{"short with content", swftest.Tag(9, []byte{1, 2, 3}), TagSetBackgroundColor, 3, 2},
		{"long", swftest.LongTag(swftest.KindShowFrame, []byte{1, 2, 3}), TagShowFrame, 3, 6},
		{"long by length", swftest.Tag(swftest.KindDefineShape, make([]byte, 0x3f)), TagDefineShape, 0x3f, 6},
		{"end", swftest.EndTag(), TagEnd, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ReadTagHeader(swfio.NewBytesReader(tt.data))
			if err != nil {
				t.Fatalf("cannot read tag header: %v", err)
			}
			if h.Kind != tt.kind || h.ContentLength != tt.length || h.HeaderLength != tt.hlen {
				t.Errorf("expected %s len=%d hlen=%d, have %s hlen=%d", tt.kind, tt.length, tt.hlen, h, h.HeaderLength)
			}
			if h.TotalLength() != int64(len(tt.data)) {
				t.Errorf("expected total length %d, have %d", len(tt.data), h.TotalLength())
			}
		})
	}
	if _, err := ReadTagHeader(swfio.NewBytesReader([]byte{0x3f, 0x00, 0x01})); err == nil {
		t.Errorf("expected truncated long header to fail")
	}
}

func TestDefineShapeAndShowFrame(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.tags")
	defer teardown()
	//
	body := swftest.MovieBody(100, 100, 24.0, 1,
		swftest.DefineShape(1, redSquare()),
		swftest.Tag(swftest.KindShowFrame, nil),
		swftest.EndTag())
	movie := parseBody(t, body)
	if len(movie.Tags) != 2 {
		t.Fatalf("expected 2 tags, have %d (errors: %v)", len(movie.Tags), movie.Errors())
	}
	shape, ok := movie.Tags[0].(*DefineShape)
	if !ok {
		t.Fatalf("expected first tag to be DefineShape, is %T", movie.Tags[0])
	}
	if shape.CharacterID() != 1 || shape.Level != 1 {
		t.Errorf("expected shape #1 at level 1, have #%d level %d", shape.CharacterID(), shape.Level)
	}
	if shape.Shape.EdgeCount() != 4 {
		t.Errorf("expected 4 edges, have %d", shape.Shape.EdgeCount())
	}
	if shape.Offset() == 0 || shape.Kind() != TagDefineShape {
		t.Errorf("unexpected tag offset %d or kind %s", shape.Offset(), shape.Kind())
	}
	if _, ok := movie.Tags[1].(*ShowFrame); !ok {
		t.Errorf("expected second tag to be ShowFrame, is %T", movie.Tags[1])
	}
}

func TestUnknownTagIsSkipped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.tags")
	defer teardown()
	//
	body := swftest.MovieBody(100, 100, 24.0, 1,
		swftest.Tag(kindUnknown, []byte{1, 2, 3}),
		swftest.Tag(swftest.KindShowFrame, nil),
		swftest.EndTag())
	movie := parseBody(t, body)
	if len(movie.Tags) != 1 || len(movie.Skipped) != 1 {
		t.Fatalf("expected 1 tag and 1 skipped tag, have %d and %d", len(movie.Tags), len(movie.Skipped))
	}
	if movie.Skipped[0].Header.Kind != Kind(kindUnknown) || movie.Skipped[0].Payload != nil {
		t.Errorf("unexpected skipped tag %v, payload %v", movie.Skipped[0], movie.Skipped[0].Payload)
	}
	movie = parseBody(t, body, KeepUnknownTags)
	if !bytes.Equal(movie.Skipped[0].Payload, []byte{1, 2, 3}) {
		t.Errorf("expected payload to be retained, have %v", movie.Skipped[0].Payload)
	}
	if IsDecoded(Kind(kindUnknown)) || !IsDecoded(TagDefineSprite) || !IsDecoded(TagPlaceObject2) {
		t.Errorf("IsDecoded reports wrong kinds")
	}
}

type probeTag struct {
	tagBase
}

func TestResyncAfterPartialDecode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.tags")
	defer teardown()
	//
	var tags []byte
	tags = append(tags, swftest.Tag(uint16(TagDefineBinaryData), []byte{9, 9, 9, 9, 9, 9, 9, 9, 9, 9})...)
	tags = append(tags, swftest.Tag(swftest.KindShowFrame, nil)...)
	tags = append(tags, swftest.EndTag()...)
	movie := &Movie{}
	cp := NewContainerParser(swfio.NewBytesReader(tags), movie)
	cp.decoders = map[Kind]decodeFunc{ // reads nothing of its content
		TagDefineBinaryData: func(r *swfio.Reader, base tagBase) (Tag, error) {
			return &probeTag{tagBase: base}, nil
		},
		TagShowFrame: decodeShowFrame,
	}
	var kinds []Kind
	for tag, err := range cp.Tags() {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		kinds = append(kinds, tag.Kind())
	}
	if len(kinds) != 2 || kinds[0] != TagDefineBinaryData || kinds[1] != TagShowFrame {
		t.Errorf("expected DefineBinaryData, ShowFrame; have %v", kinds)
	}
	if len(movie.Warnings()) != 0 {
		t.Errorf("expected no warnings, have %v", movie.Warnings())
	}
}

func TestDecodeErrorDoesNotDerailContainer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.tags")
	defer teardown()
	//
	badStyles := swftest.StyleArrays([][]byte{{0x33}}, nil) // unknown fill style type
	body := swftest.MovieBody(100, 100, 24.0, 1,
		swftest.DefineShape(1, badStyles),
		swftest.Tag(swftest.KindShowFrame, nil),
		swftest.EndTag())
	movie := parseBody(t, body)
	if len(movie.Tags) != 1 {
		t.Fatalf("expected ShowFrame to survive, have %d tags", len(movie.Tags))
	}
	if !movie.HasCriticalErrors() || len(movie.Errors()) != 1 {
		t.Fatalf("expected 1 critical error, have %v", movie.Errors())
	}
	de := movie.Errors()[0]
	if de.Tag != TagDefineShape || de.Section != "Shape" {
		t.Errorf("expected error in DefineShape/Shape, have %v", de)
	}
	//
	_, err := Parse(body, testHeader, StrictDecoding)
	if err == nil {
		t.Fatalf("expected strict decoding to fail")
	}
	if _, ok := err.(DecodeError); !ok {
		t.Errorf("expected a DecodeError, have %T", err)
	}
}

func TestTruncatedContainer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.tags")
	defer teardown()
	//
	body := swftest.MovieBody(100, 100, 24.0, 1, swftest.Tag(swftest.KindShowFrame, nil))
	movie := parseBody(t, body)
	if len(movie.Tags) != 1 {
		t.Errorf("expected 1 tag, have %d", len(movie.Tags))
	}
	if len(movie.Warnings()) != 1 || len(movie.Errors()) != 0 {
		t.Errorf("expected a single warning and no errors, have %v / %v", movie.Warnings(), movie.Errors())
	}
	// a tag declaring more content than available
	body = swftest.MovieBody(100, 100, 24.0, 1, swftest.TagWithLength(swftest.KindShowFrame, 100, nil))
	movie = parseBody(t, body)
	if len(movie.Tags) != 1 {
		t.Errorf("expected 1 tag, have %d", len(movie.Tags))
	}
	if len(movie.Warnings()) != 2 {
		t.Errorf("expected 2 warnings, have %v", movie.Warnings())
	}
	// a dangling byte instead of a tag header
	body = swftest.MovieBody(100, 100, 24.0, 1, []byte{0x40})
	movie = parseBody(t, body)
	if len(movie.Tags) != 0 || len(movie.Warnings()) != 1 {
		t.Errorf("expected no tags and 1 warning, have %d / %v", len(movie.Tags), movie.Warnings())
	}
}

func TestNestedSprite(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.tags")
	defer teardown()
	//
	body := swftest.MovieBody(100, 100, 24.0, 1,
		swftest.Sprite(5, 1,
			swftest.DefineShape(1, redSquare()),
			swftest.Tag(swftest.KindShowFrame, nil),
			swftest.EndTag()),
		swftest.Tag(swftest.KindShowFrame, nil),
		swftest.EndTag())
	movie := parseBody(t, body)
	if len(movie.Tags) != 2 {
		t.Fatalf("expected 2 top-level tags, have %d", len(movie.Tags))
	}
	sprite, ok := movie.Tags[0].(*DefineSprite)
	if !ok {
		t.Fatalf("expected a sprite, have %T", movie.Tags[0])
	}
	if sprite.CharacterID() != 5 || sprite.FrameCount != 1 || len(sprite.Tags) != 2 {
		t.Errorf("unexpected sprite #%d, %d frames, %d tags", sprite.ID, sprite.FrameCount, len(sprite.Tags))
	}
	var depths []int
	movie.Walk(func(tag Tag, depth int) bool {
		depths = append(depths, depth)
		return true
	})
	if len(depths) != 4 || depths[0] != 0 || depths[1] != 1 || depths[2] != 1 || depths[3] != 0 {
		t.Errorf("unexpected walk depths %v", depths)
	}
	count := 0
	movie.Walk(func(tag Tag, depth int) bool {
		count++
		return tag.Kind() != TagDefineShape
	})
	if count != 2 {
		t.Errorf("expected walk to stop after 2 tags, visited %d", count)
	}
}

func TestSpriteNestingLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.tags")
	defer teardown()
	//
	sprite := swftest.Sprite(17, 1, swftest.EndTag())
	for id := uint16(16); id > 0; id-- {
		sprite = swftest.Sprite(id, 1, sprite, swftest.EndTag())
	}
	movie := parseBody(t, swftest.MovieBody(100, 100, 24.0, 1, sprite, swftest.EndTag()))
	if len(movie.Tags) != 1 {
		t.Fatalf("expected outer sprite to survive, have %d tags", len(movie.Tags))
	}
	if len(movie.CriticalErrors()) != 1 {
		t.Errorf("expected 1 critical error for the innermost sprite, have %v", movie.Errors())
	}
	maxDepth := 0
	movie.Walk(func(tag Tag, depth int) bool {
		maxDepth = max(maxDepth, depth)
		return true
	})
	if maxDepth != swfio.MaxSpriteNesting-1 {
		t.Errorf("expected max depth %d, have %d", swfio.MaxSpriteNesting-1, maxDepth)
	}
}

func TestStrictDecodingInSprite(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.tags")
	defer teardown()
	//
	badStyles := swftest.StyleArrays([][]byte{{0x33}}, nil)
	body := swftest.MovieBody(100, 100, 24.0, 1,
		swftest.Sprite(5, 1, swftest.DefineShape(1, badStyles), swftest.EndTag()),
		swftest.EndTag())
	movie, err := Parse(body, testHeader)
	if err != nil || len(movie.Tags) != 1 || len(movie.Errors()) != 1 {
		t.Fatalf("expected sprite to survive a broken inner tag")
	}
	if _, err := Parse(body, testHeader, StrictDecoding); err == nil {
		t.Errorf("expected strict decoding to fail for broken inner tag")
	}
}
