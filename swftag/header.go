package swftag

import (
	"fmt"

	"github.com/npillmayer/swf/swfio"
)

// Kind is the numeric type of a tag, as found in the upper 10 bits of a
// tag's header.
type Kind uint16

// Tag kinds. Not every kind listed here is decoded; see ContainerParser.
const (
	TagEnd                          Kind = 0
	TagShowFrame                    Kind = 1
	TagDefineShape                  Kind = 2
	TagPlaceObject                  Kind = 4
	TagRemoveObject                 Kind = 5
	TagDefineBits                   Kind = 6
	TagDefineButton                 Kind = 7
	TagJPEGTables                   Kind = 8
	TagSetBackgroundColor           Kind = 9
	TagDefineFont                   Kind = 10
	TagDefineText                   Kind = 11
	TagDoAction                     Kind = 12
	TagDefineFontInfo               Kind = 13
	TagDefineSound                  Kind = 14
	TagStartSound                   Kind = 15
	TagDefineButtonSound            Kind = 17
	TagSoundStreamHead              Kind = 18
	TagSoundStreamBlock             Kind = 19
	TagDefineBitsLossless           Kind = 20
	TagDefineBitsJPEG2              Kind = 21
	TagDefineShape2                 Kind = 22
	TagDefineButtonCxform           Kind = 23
	TagProtect                      Kind = 24
	TagPlaceObject2                 Kind = 26
	TagRemoveObject2                Kind = 28
	TagDefineShape3                 Kind = 32
	TagDefineText2                  Kind = 33
	TagDefineButton2                Kind = 34
	TagDefineBitsJPEG3              Kind = 35
	TagDefineBitsLossless2          Kind = 36
	TagDefineEditText               Kind = 37
	TagDefineSprite                 Kind = 39
	TagFrameLabel                   Kind = 43
	TagSoundStreamHead2             Kind = 45
	TagDefineMorphShape             Kind = 46
	TagDefineFont2                  Kind = 48
	TagExportAssets                 Kind = 56
	TagImportAssets                 Kind = 57
	TagEnableDebugger               Kind = 58
	TagDoInitAction                 Kind = 59
	TagDefineVideoStream            Kind = 60
	TagVideoFrame                   Kind = 61
	TagDefineFontInfo2              Kind = 62
	TagEnableDebugger2              Kind = 64
	TagScriptLimits                 Kind = 65
	TagSetTabIndex                  Kind = 66
	TagFileAttributes               Kind = 69
	TagPlaceObject3                 Kind = 70
	TagImportAssets2                Kind = 71
	TagDefineFontAlignZones         Kind = 73
	TagCSMTextSettings              Kind = 74
	TagDefineFont3                  Kind = 75
	TagSymbolClass                  Kind = 76
	TagMetadata                     Kind = 77
	TagDefineScalingGrid            Kind = 78
	TagDoABC                        Kind = 82
	TagDefineShape4                 Kind = 83
	TagDefineMorphShape2            Kind = 84
	TagDefineSceneAndFrameLabelData Kind = 86
	TagDefineBinaryData             Kind = 87
	TagDefineFontName               Kind = 88
	TagStartSound2                  Kind = 89
	TagDefineBitsJPEG4              Kind = 90
	TagDefineFont4                  Kind = 91
)

var kindNames = map[Kind]string{
	TagEnd:                          "End",
	TagShowFrame:                    "ShowFrame",
	TagDefineShape:                  "DefineShape",
	TagPlaceObject:                  "PlaceObject",
	TagRemoveObject:                 "RemoveObject",
	TagDefineBits:                   "DefineBits",
	TagDefineButton:                 "DefineButton",
	TagJPEGTables:                   "JPEGTables",
	TagSetBackgroundColor:           "SetBackgroundColor",
	TagDefineFont:                   "DefineFont",
	TagDefineText:                   "DefineText",
	TagDoAction:                     "DoAction",
	TagDefineFontInfo:               "DefineFontInfo",
	TagDefineSound:                  "DefineSound",
	TagStartSound:                   "StartSound",
	TagDefineButtonSound:            "DefineButtonSound",
	TagSoundStreamHead:              "SoundStreamHead",
	TagSoundStreamBlock:             "SoundStreamBlock",
	TagDefineBitsLossless:           "DefineBitsLossless",
	TagDefineBitsJPEG2:              "DefineBitsJPEG2",
	TagDefineShape2:                 "DefineShape2",
	TagDefineButtonCxform:           "DefineButtonCxform",
	TagProtect:                      "Protect",
	TagPlaceObject2:                 "PlaceObject2",
	TagRemoveObject2:                "RemoveObject2",
	TagDefineShape3:                 "DefineShape3",
	TagDefineText2:                  "DefineText2",
	TagDefineButton2:                "DefineButton2",
	TagDefineBitsJPEG3:              "DefineBitsJPEG3",
	TagDefineBitsLossless2:          "DefineBitsLossless2",
	TagDefineEditText:               "DefineEditText",
	TagDefineSprite:                 "DefineSprite",
	TagFrameLabel:                   "FrameLabel",
	TagSoundStreamHead2:             "SoundStreamHead2",
	TagDefineMorphShape:             "DefineMorphShape",
	TagDefineFont2:                  "DefineFont2",
	TagExportAssets:                 "ExportAssets",
	TagImportAssets:                 "ImportAssets",
	TagEnableDebugger:               "EnableDebugger",
	TagDoInitAction:                 "DoInitAction",
	TagDefineVideoStream:            "DefineVideoStream",
	TagVideoFrame:                   "VideoFrame",
	TagDefineFontInfo2:              "DefineFontInfo2",
	TagEnableDebugger2:              "EnableDebugger2",
	TagScriptLimits:                 "ScriptLimits",
	TagSetTabIndex:                  "SetTabIndex",
	TagFileAttributes:               "FileAttributes",
	TagPlaceObject3:                 "PlaceObject3",
	TagImportAssets2:                "ImportAssets2",
	TagDefineFontAlignZones:         "DefineFontAlignZones",
	TagCSMTextSettings:              "CSMTextSettings",
	TagDefineFont3:                  "DefineFont3",
	TagSymbolClass:                  "SymbolClass",
	TagMetadata:                     "Metadata",
	TagDefineScalingGrid:            "DefineScalingGrid",
	TagDoABC:                        "DoABC",
	TagDefineShape4:                 "DefineShape4",
	TagDefineMorphShape2:            "DefineMorphShape2",
	TagDefineSceneAndFrameLabelData: "DefineSceneAndFrameLabelData",
	TagDefineBinaryData:             "DefineBinaryData",
	TagDefineFontName:               "DefineFontName",
	TagStartSound2:                  "StartSound2",
	TagDefineBitsJPEG4:              "DefineBitsJPEG4",
	TagDefineFont4:                  "DefineFont4",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint16(k))
}

// TagHeader is the decoded header of a tag.
type TagHeader struct {
	Kind          Kind
	ContentLength uint32 // length of the tag's content in bytes
	HeaderLength  int    // 2 for short headers, 6 for long ones
}

// TotalLength returns the length of the tag including its header.
func (h TagHeader) TotalLength() int64 {
	return int64(h.HeaderLength) + int64(h.ContentLength)
}

func (h TagHeader) String() string {
	return fmt.Sprintf("%s(%d) len=%d", h.Kind, uint16(h.Kind), h.ContentLength)
}

// longLength is the short length value announcing a 32-bit length field.
const longLength = 0x3f

// ReadTagHeader reads a tag header: a 16-bit code with the kind in its upper
// 10 bits and the content length in its lower 6 bits. A length of 0x3F is
// followed by the real length as a 32-bit value. The format documentation
// calls the long length signed; it is read unsigned.
func ReadTagHeader(r *swfio.Reader) (TagHeader, error) {
	code, err := r.ReadUI16()
	if err != nil {
		return TagHeader{}, err
	}
	h := TagHeader{
		Kind:          Kind(code >> 6),
		ContentLength: uint32(code & longLength),
		HeaderLength:  2,
	}
	if h.ContentLength == longLength {
		if h.ContentLength, err = r.ReadUI32(); err != nil {
			return h, err
		}
		h.HeaderLength = 6
	}
	return h, nil
}
