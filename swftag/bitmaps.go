package swftag

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/npillmayer/swf/swfio"
)

// ImageType is the encoding of embedded image data, determined from its
// leading bytes.
type ImageType uint8

const (
	ImageUnknown ImageType = iota
	ImageJPEG
	ImagePNG
	ImageGIF
)

func (t ImageType) String() string {
	switch t {
	case ImageJPEG:
		return "JPEG"
	case ImagePNG:
		return "PNG"
	case ImageGIF:
		return "GIF"
	}
	return "unknown"
}

var (
	jpegSOI    = []byte{0xff, 0xd8}
	jpegEOISOI = []byte{0xff, 0xd9, 0xff, 0xd8} // EOI before SOI, written by old encoders
	pngMagic   = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	gifMagic   = []byte("GIF89a")
)

// SniffImageType determines the image type of data by its magic bytes.
func SniffImageType(data []byte) ImageType {
	switch {
	case bytes.HasPrefix(data, jpegSOI), bytes.HasPrefix(data, jpegEOISOI):
		return ImageJPEG
	case bytes.HasPrefix(data, pngMagic):
		return ImagePNG
	case bytes.HasPrefix(data, gifMagic):
		return ImageGIF
	}
	return ImageUnknown
}

// DefineBits is a DefineBits, DefineBitsJPEG2 or DefineBitsJPEG3 tag.
//
// Version 1 holds JPEG data without encoding tables, which are shared via the
// movie's JPEGTables tag. Starting with version 2, Data may be PNG or GIF as
// well. Version 3 adds zlib-compressed alpha data.
type DefineBits struct {
	tagBase
	Character
	Version   int
	Data      []byte
	ImageType ImageType
	AlphaData []byte // version 3 only, zlib compressed
}

func decodeDefineBits(version int) decodeFunc {
	return func(r *swfio.Reader, base tagBase) (Tag, error) {
		f := r.Fields()
		t := &DefineBits{tagBase: base, Version: version}
		t.ID = f.UI16()
		if version == 3 {
			alphaOffset := f.UI32()
			if f.OK() && int64(alphaOffset) > r.Remaining() {
				return nil, swfio.NewFormatError(r.Pos(), "alpha data offset %d exceeds tag", alphaOffset)
			}
			t.Data = f.Bytes(int(alphaOffset))
			t.AlphaData = f.Rest()
		} else {
			t.Data = f.Rest()
		}
		if err := f.Err(); err != nil {
			return nil, err
		}
		t.ImageType = SniffImageType(t.Data)
		return t, nil
	}
}

// Alpha decompresses the alpha channel of a DefineBitsJPEG3 tag, one byte
// per pixel. It returns nil for tags without alpha data.
func (t *DefineBits) Alpha() ([]byte, error) {
	if len(t.AlphaData) == 0 {
		return nil, nil
	}
	return inflate(t.AlphaData, -1)
}

// JPEGTables holds the JPEG encoding tables shared by all DefineBits
// (version 1) tags of a movie.
type JPEGTables struct {
	tagBase
	Data []byte
}

func decodeJPEGTables(r *swfio.Reader, base tagBase) (Tag, error) {
	data, err := r.ReadRest()
	if err != nil {
		return nil, err
	}
	return &JPEGTables{tagBase: base, Data: data}, nil
}

// Lossless bitmap formats
const (
	BitmapColormapped = 3 // 8 bit color-mapped
	BitmapRGB15       = 4 // 15 bit RGB, DefineBitsLossless only
	BitmapRGB24       = 5 // 24 bit RGB (32 bit with alpha)
)

// DefineBitsLossless is a DefineBitsLossless or DefineBitsLossless2 tag.
// Version 2 carries an alpha channel.
type DefineBitsLossless struct {
	tagBase
	Character
	Version        int
	Format         uint8
	Width, Height  uint16
	ColorTableSize int // number of color table entries, for BitmapColormapped only
	ZlibData       []byte
}

func decodeDefineBitsLossless(version int) decodeFunc {
	return func(r *swfio.Reader, base tagBase) (Tag, error) {
		f := r.Fields()
		t := &DefineBitsLossless{tagBase: base, Version: version}
		t.ID = f.UI16()
		t.Format = f.UI8()
		t.Width = f.UI16()
		t.Height = f.UI16()
		if err := f.Err(); err != nil {
			return nil, err
		}
		switch t.Format {
		case BitmapColormapped:
			t.ColorTableSize = int(f.UI8()) + 1
		case BitmapRGB15, BitmapRGB24:
		default:
			return nil, swfio.NewFormatError(r.Pos(), "unknown lossless bitmap format %d", t.Format)
		}
		t.ZlibData = f.Rest()
		return t, f.Err()
	}
}

// Decompress inflates the bitmap data, i.e. the color table (if any)
// followed by the pixel data, with rows padded to 32-bit boundaries.
func (t *DefineBitsLossless) Decompress() ([]byte, error) {
	return inflate(t.ZlibData, t.maxSize())
}

func (t *DefineBitsLossless) maxSize() int64 {
	w, h := int64(t.Width), int64(t.Height)
	switch t.Format {
	case BitmapColormapped:
		return int64(t.ColorTableSize)*4 + (w+3)/4*4*h
	case BitmapRGB15:
		return (w*2 + 3) / 4 * 4 * h
	}
	return w * h * 4
}

// inflate decompresses zlib data. With limit ≥ 0, output beyond limit
// bytes is an error.
func inflate(data []byte, limit int64) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib stream: %w", err)
	}
	defer zr.Close()
	var src io.Reader = zr
	if limit >= 0 {
		src = io.LimitReader(zr, limit+1)
	}
	out, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("zlib stream: %w", err)
	}
	if limit >= 0 && int64(len(out)) > limit {
		return nil, fmt.Errorf("zlib stream inflates beyond %d bytes", limit)
	}
	return out, nil
}
