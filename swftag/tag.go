package swftag

import (
	"fmt"

	"github.com/npillmayer/swf/swfio"
)

// Tag is a decoded tag. Concrete tag types are pointers to structs, one type
// per tag kind or family of tag kinds (e.g., DefineShape covers DefineShape
// to DefineShape4).
type Tag interface {
	Kind() Kind
	Header() TagHeader
	Offset() int64 // absolute offset of the tag header in the movie body
}

// tagBase is embedded in every tag type.
type tagBase struct {
	header TagHeader
	offset int64
}

func (t tagBase) Kind() Kind        { return t.header.Kind }
func (t tagBase) Header() TagHeader { return t.header }
func (t tagBase) Offset() int64     { return t.offset }

// Definition is a tag defining a character, which may later be placed on the
// display list by its character ID.
type Definition interface {
	Tag
	CharacterID() uint16
}

// Character is embedded in definition tags.
type Character struct {
	ID uint16
}

// CharacterID returns the ID the character is referenced by.
func (c Character) CharacterID() uint16 { return c.ID }

// SkippedTag records a tag which has not been decoded, either because its
// kind is unknown or because decoding of its kind is not supported.
type SkippedTag struct {
	Header  TagHeader
	Offset  int64
	Payload []byte // raw content, only with option KeepUnknownTags
}

func (s SkippedTag) String() string {
	return fmt.Sprintf("%s at offset %d", s.Header, s.Offset)
}

// decodeFunc decodes the content of a leaf tag. r is scoped to exactly the
// tag's content.
type decodeFunc func(r *swfio.Reader, base tagBase) (Tag, error)

// leafDecoders holds the decoders of all leaf tags. DefineSprite and End are
// handled by the ContainerParser itself.
var leafDecoders = map[Kind]decodeFunc{
	TagShowFrame:                    decodeShowFrame,
	TagDefineShape:                  decodeDefineShape(1),
	TagDefineShape2:                 decodeDefineShape(2),
	TagDefineShape3:                 decodeDefineShape(3),
	TagDefineShape4:                 decodeDefineShape(4),
	TagPlaceObject:                  decodePlaceObject,
	TagPlaceObject2:                 decodePlaceObject2,
	TagPlaceObject3:                 decodePlaceObject3,
	TagRemoveObject:                 decodeRemoveObject(1),
	TagRemoveObject2:                decodeRemoveObject(2),
	TagDefineBits:                   decodeDefineBits(1),
	TagDefineBitsJPEG2:              decodeDefineBits(2),
	TagDefineBitsJPEG3:              decodeDefineBits(3),
	TagJPEGTables:                   decodeJPEGTables,
	TagDefineBitsLossless:           decodeDefineBitsLossless(1),
	TagDefineBitsLossless2:          decodeDefineBitsLossless(2),
	TagSetBackgroundColor:           decodeSetBackgroundColor,
	TagDefineFont:                   decodeDefineFont,
	TagDefineFont2:                  decodeDefineFont2(2),
	TagDefineFont3:                  decodeDefineFont2(3),
	TagDefineFontInfo:               decodeDefineFontInfo(1),
	TagDefineFontInfo2:              decodeDefineFontInfo(2),
	TagDefineFontAlignZones:         decodeDefineFontAlignZones,
	TagCSMTextSettings:              decodeCSMTextSettings,
	TagDefineFontName:               decodeDefineFontName,
	TagDefineText:                   decodeDefineText(1),
	TagDefineText2:                  decodeDefineText(2),
	TagFrameLabel:                   decodeFrameLabel,
	TagDefineMorphShape:             decodeDefineMorphShape(1),
	TagDefineMorphShape2:            decodeDefineMorphShape(2),
	TagFileAttributes:               decodeFileAttributes,
	TagSymbolClass:                  decodeSymbolClass,
	TagMetadata:                     decodeMetadata,
	TagDoABC:                        decodeDoABC,
	TagDefineSceneAndFrameLabelData: decodeSceneAndFrameLabelData,
}

// IsDecoded reports whether tags of kind k are decoded, as opposed to being
// skipped.
func IsDecoded(k Kind) bool {
	if k == TagEnd || k == TagDefineSprite {
		return true
	}
	_, ok := leafDecoders[k]
	return ok
}
