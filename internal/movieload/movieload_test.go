package movieload

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/swf/internal/swftest"
	"github.com/npillmayer/swf/swfio"
	"github.com/npillmayer/swf/swftag"
	"github.com/ulikunitz/xz/lzma"
)

func testBody() []byte {
	return swftest.MovieBody(320, 240, 30.0, 2,
		swftest.Tag(swftest.KindShowFrame, nil),
		swftest.Tag(swftest.KindShowFrame, nil),
		swftest.EndTag())
}

func header(sig string, version uint8, length int) []byte {
	h := []byte(sig)
	h = append(h, version)
	return binary.LittleEndian.AppendUint32(h, uint32(length))
}

func TestUncompressedMovie(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.load")
	defer teardown()
	//
	body := testBody()
	m, err := ParseMovieFile(swftest.Movie(9, body))
	if err != nil {
		t.Fatal(err)
	}
	if m.Header.Compression != swftag.Uncompressed || m.Header.Version != 9 {
		t.Errorf("unexpected header %s", m.Header)
	}
	if !bytes.Equal(m.Body, body) {
		t.Errorf("body differs from input")
	}
}

func TestZlibMovie(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.load")
	defer teardown()
	//
	body := testBody()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(body); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	data := append(header("CWS", 10, 8+len(body)), buf.Bytes()...)
	m, err := ParseMovieFile(data)
	if err != nil {
		t.Fatal(err)
	}
	if m.Header.Compression != swftag.Zlib {
		t.Errorf("expected zlib compression, have %s", m.Header.Compression)
	}
	if !bytes.Equal(m.Body, body) {
		t.Errorf("decompressed body differs from input")
	}
	movie, err := swftag.Parse(m.Body, m.Header)
	if err != nil {
		t.Fatal(err)
	}
	if movie.FrameCount != 2 || len(movie.Tags) != 2 {
		t.Errorf("expected 2 frames and 2 tags, have %d and %d", movie.FrameCount, len(movie.Tags))
	}
}

func TestLZMAMovie(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.load")
	defer teardown()
	//
	body := testBody()
	var buf bytes.Buffer
	cfg := lzma.WriterConfig{Size: int64(len(body)), SizeInHeader: true}
	lw, err := cfg.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := lw.Write(body); err != nil {
		t.Fatal(err)
	}
	if err := lw.Close(); err != nil {
		t.Fatal(err)
	}
	classic := buf.Bytes() // properties (5), size (8), stream
	stream := classic[13:]
	data := header("ZWS", 13, 8+len(body))
	data = binary.LittleEndian.AppendUint32(data, uint32(len(stream)))
	data = append(data, classic[:5]...)
	data = append(data, stream...)
	m, err := ParseMovieFile(data)
	if err != nil {
		t.Fatal(err)
	}
	if m.Header.Compression != swftag.LZMA || m.Header.Version != 13 {
		t.Errorf("unexpected header %s", m.Header)
	}
	if !bytes.Equal(m.Body, body) {
		t.Errorf("decompressed body differs from input")
	}
}

func TestBadHeaders(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.load")
	defer teardown()
	//
	tests := []struct {
		name string
		data []byte
	}{
		{"too short", []byte("FWS")},
		{"bad signature", header("GIF", 8, 8)},
		{"length below header", header("FWS", 8, 4)},
		{"LZMA header truncated", header("ZWS", 13, 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMovieFile(tt.data)
			if !swfio.IsFormatError(err) {
				t.Errorf("expected format error, have %v", err)
			}
		})
	}
}

func TestTruncatedBody(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.load")
	defer teardown()
	//
	body := testBody()
	data := swftest.Movie(9, body)
	m, err := ParseMovieFile(data[:len(data)-2]) // cut the End tag
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Body) != len(body)-2 {
		t.Errorf("expected truncated body of %d bytes, have %d", len(body)-2, len(m.Body))
	}
	movie, err := swftag.Parse(m.Body, m.Header)
	if err != nil {
		t.Fatal(err)
	}
	if len(movie.Tags) != 2 || len(movie.Warnings()) != 1 {
		t.Errorf("expected 2 tags and a truncation warning, have %d and %v", len(movie.Tags), movie.Warnings())
	}
}

func TestLoadMovieFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "swf.load")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "frames.swf")
	if err := os.WriteFile(path, swftest.Movie(8, testBody()), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadMovieFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "frames.swf" {
		t.Errorf("expected name frames.swf, have %q", m.Name)
	}
	if _, err := LoadMovieFile(filepath.Join(t.TempDir(), "missing.swf")); err == nil {
		t.Errorf("expected error for missing file")
	}
	m, err = ReadMovie(bytes.NewReader(swftest.Movie(8, testBody())))
	if err != nil || m.Header.Version != 8 {
		t.Errorf("cannot read movie from stream: %v", err)
	}
}
