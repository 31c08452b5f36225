package swftest

// Tag kinds used by the builders. Test code in package swftag cannot be
// imported from here, so the kinds are repeated as plain numbers.
const (
	KindEnd          = 0
	KindShowFrame    = 1
	KindDefineShape  = 2
	KindDefineSprite = 39
)

// Tag encodes a tag with a short header if the content fits, otherwise with
// a long one.
func Tag(kind uint16, content []byte) []byte {
	if len(content) >= 0x3f {
		return LongTag(kind, content)
	}
	w := NewBitWriter().UI16(kind<<6 | uint16(len(content)))
	return w.Raw(content...).Bytes()
}

// LongTag encodes a tag with a 6-byte header, regardless of its length.
func LongTag(kind uint16, content []byte) []byte {
	w := NewBitWriter().UI16(kind<<6 | 0x3f).UI32(uint32(len(content)))
	return w.Raw(content...).Bytes()
}

// TagWithLength encodes a tag whose header declares length, which may
// differ from the length of content.
func TagWithLength(kind uint16, length uint32, content []byte) []byte {
	w := NewBitWriter()
	if length >= 0x3f {
		w.UI16(kind<<6 | 0x3f).UI32(length)
	} else {
		w.UI16(kind<<6 | uint16(length))
	}
	return w.Raw(content...).Bytes()
}

// EndTag encodes an End tag.
func EndTag() []byte {
	return []byte{0, 0}
}

// Sprite encodes a DefineSprite tag containing the given tags. The tags are
// taken as is, i.e. callers append an End tag themselves.
func Sprite(id, frameCount uint16, tags ...[]byte) []byte {
	w := NewBitWriter().UI16(id).UI16(frameCount)
	for _, t := range tags {
		w.Raw(t...)
	}
	return LongTag(KindDefineSprite, w.Bytes())
}

// MovieBody encodes the part of a movie following the file header: a frame
// rectangle of width × height pixels, the frame rate in 8.8 fixed point,
// the frame count, and the tags.
func MovieBody(width, height int32, frameRate float64, frameCount uint16, tags ...[]byte) []byte {
	w := NewBitWriter().Rect(0, width*20, 0, height*20)
	w.UI16(uint16(frameRate * 256)).UI16(frameCount)
	for _, t := range tags {
		w.Raw(t...)
	}
	return w.Bytes()
}

// Movie prepends an uncompressed file header to a movie body.
func Movie(version uint8, body []byte) []byte {
	w := NewBitWriter().Raw('F', 'W', 'S', version).UI32(uint32(8 + len(body)))
	return w.Raw(body...).Bytes()
}

// DefineShape encodes a DefineShape tag for a shape with style arrays.
func DefineShape(id uint16, shapeWithStyle []byte) []byte {
	w := NewBitWriter().UI16(id).Rect(0, 400, 0, 400).Raw(shapeWithStyle...)
	return Tag(KindDefineShape, w.Bytes())
}
