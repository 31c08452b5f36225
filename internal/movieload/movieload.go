package movieload

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zlib"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/swf/swfio"
	"github.com/npillmayer/swf/swftag"
	"github.com/ulikunitz/xz/lzma"
)

// tracer writes to trace with key 'swf.load'
func tracer() tracing.Trace {
	return tracing.Select("swf.load")
}

// MaxMovieSize limits the declared length of a movie.
const MaxMovieSize = 1 << 30

// MovieFile is a loaded movie with its file header and decompressed body.
type MovieFile struct {
	Name   string
	Header swftag.FileHeader
	Body   []byte // data following the 8-byte file header, decompressed
}

// LoadMovieFile loads an SWF movie from a file.
func LoadMovieFile(path string) (*MovieFile, error) {
	bytez, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseMovieFile(bytez)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Name = filepath.Base(path)
	return m, nil
}

// ReadMovie loads an SWF movie from a stream.
func ReadMovie(r io.Reader) (*MovieFile, error) {
	bytez, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseMovieFile(bytez)
}

// ParseMovieFile checks the file header of an SWF movie in memory and
// decompresses its body, if necessary.
func ParseMovieFile(data []byte) (*MovieFile, error) {
	hdr, err := ReadFileHeader(data)
	if err != nil {
		return nil, err
	}
	m := &MovieFile{Header: hdr}
	bodyLen := int64(hdr.FileLength) - 8
	switch hdr.Compression {
	case swftag.Uncompressed:
		m.Body = data[8:]
	case swftag.Zlib:
		m.Body, err = inflate(data[8:], bodyLen)
	case swftag.LZMA:
		m.Body, err = unpackLZMA(data, bodyLen)
	}
	if err != nil {
		return nil, fmt.Errorf("%s body: %w", hdr.Compression, err)
	}
	if int64(len(m.Body)) != bodyLen {
		tracer().Infof("movie declares %d bytes, body has %d", hdr.FileLength, len(m.Body)+8)
	}
	if int64(len(m.Body)) > bodyLen {
		m.Body = m.Body[:bodyLen]
	}
	tracer().Debugf("loaded movie: %s", hdr)
	return m, nil
}

// ReadFileHeader decodes the 8-byte file header: a 3-byte signature, the SWF
// version and the length of the uncompressed movie.
func ReadFileHeader(data []byte) (swftag.FileHeader, error) {
	var hdr swftag.FileHeader
	if len(data) < 8 {
		return hdr, swfio.NewFormatError(0, "file too short for an SWF header (%d bytes)", len(data))
	}
	switch string(data[:3]) {
	case "FWS":
		hdr.Compression = swftag.Uncompressed
	case "CWS":
		hdr.Compression = swftag.Zlib
	case "ZWS":
		hdr.Compression = swftag.LZMA
	default:
		return hdr, swfio.NewFormatError(0, "not an SWF file, signature %q", data[:3])
	}
	hdr.Version = data[3]
	hdr.FileLength = binary.LittleEndian.Uint32(data[4:8])
	if hdr.FileLength < 8 {
		return hdr, swfio.NewFormatError(4, "file length %d shorter than header", hdr.FileLength)
	}
	if hdr.FileLength > MaxMovieSize {
		return hdr, swfio.NewFormatError(4, "file length %d exceeds %d", hdr.FileLength, MaxMovieSize)
	}
	return hdr, nil
}

func inflate(data []byte, size int64) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return readBody(zr, size)
}

// unpackLZMA decompresses the body of a ZWS movie. Following the 8-byte file
// header, ZWS stores the compressed length (u32) and the 5 LZMA property
// bytes, but not the uncompressed size of a classic LZMA header. The classic
// header is synthesized from the properties and the declared file length.
func unpackLZMA(data []byte, size int64) ([]byte, error) {
	if len(data) < 17 {
		return nil, swfio.NewFormatError(8, "LZMA header truncated")
	}
	compressed := int64(binary.LittleEndian.Uint32(data[8:12]))
	stream := data[17:]
	if compressed > int64(len(stream)) {
		tracer().Infof("LZMA stream declares %d bytes, has %d", compressed, len(stream))
	} else {
		stream = stream[:compressed]
	}
	header := make([]byte, 13)
	copy(header, data[12:17])
	binary.LittleEndian.PutUint64(header[5:], uint64(size))
	lr, err := lzma.NewReader(io.MultiReader(bytes.NewReader(header), bytes.NewReader(stream)))
	if err != nil {
		return nil, err
	}
	return readBody(lr, size)
}

// readBody reads a decompressed body of at most size bytes. A body shorter
// than declared is returned as is, the movie parser treats it as truncated.
func readBody(r io.Reader, size int64) ([]byte, error) {
	body := make([]byte, 0, min(size, 1<<20))
	buf := bytes.NewBuffer(body)
	_, err := io.Copy(buf, io.LimitReader(r, size))
	if err != nil && buf.Len() == 0 {
		return nil, err
	}
	if err != nil {
		tracer().Infof("decompression stopped after %d bytes: %v", buf.Len(), err)
	}
	return buf.Bytes(), nil
}
