package swftag

import (
	"github.com/npillmayer/swf/swfio"
)

// ShowFrame instructs a player to display the contents of the display list.
type ShowFrame struct {
	tagBase
}

func decodeShowFrame(r *swfio.Reader, base tagBase) (Tag, error) {
	return &ShowFrame{tagBase: base}, nil
}

// PlaceObject is a PlaceObject, PlaceObject2 or PlaceObject3 tag, adding a
// character to the display list or modifying a character on the display list.
// Fields are valid only if their accompanying Has… flag is set.
// PlaceObject (version 1) always carries a character and a matrix.
//
// Clip actions are not decoded.
type PlaceObject struct {
	tagBase
	Version           int // 1, 2 or 3
	Depth             uint16
	Move              bool // modifies the character at Depth
	HasCharacter      bool
	CharacterID       uint16
	HasMatrix         bool
	Matrix            swfio.Matrix
	HasColorTransform bool
	ColorTransform    swfio.ColorTransform
	HasRatio          bool
	Ratio             uint16 // morph ratio
	HasName           bool
	Name              string
	HasClipDepth      bool
	ClipDepth         uint16
	HasClipActions    bool
	HasClassName      bool // version 3 only
	ClassName         string
	HasImage          bool
	HasFilterList     bool
	Filters           []Filter
	HasBlendMode      bool
	BlendMode         BlendMode
	HasCacheAsBitmap  bool
	BitmapCache       uint8
}

func decodePlaceObject(r *swfio.Reader, base tagBase) (Tag, error) {
	f := r.Fields()
	t := &PlaceObject{tagBase: base, Version: 1, HasCharacter: true, HasMatrix: true}
	t.CharacterID = f.UI16()
	t.Depth = f.UI16()
	t.Matrix = f.Matrix()
	if f.OK() && r.Remaining() > 0 {
		t.HasColorTransform = true
		t.ColorTransform = f.CXForm()
	}
	return t, f.Err()
}

// placeFlags are the flags of PlaceObject2 and the first flags byte of PlaceObject3.
const (
	placeHasClipActions = 0x80
	placeHasClipDepth   = 0x40
	placeHasName        = 0x20
	placeHasRatio       = 0x10
	placeHasCXForm      = 0x08
	placeHasMatrix      = 0x04
	placeHasCharacter   = 0x02
	placeMove           = 0x01
)

func (t *PlaceObject) setFlags(flags uint8) {
	t.HasClipActions = flags&placeHasClipActions != 0
	t.HasClipDepth = flags&placeHasClipDepth != 0
	t.HasName = flags&placeHasName != 0
	t.HasRatio = flags&placeHasRatio != 0
	t.HasColorTransform = flags&placeHasCXForm != 0
	t.HasMatrix = flags&placeHasMatrix != 0
	t.HasCharacter = flags&placeHasCharacter != 0
	t.Move = flags&placeMove != 0
}

func (t *PlaceObject) readCommon(f *swfio.Fields) {
	if t.HasCharacter {
		t.CharacterID = f.UI16()
	}
	if t.HasMatrix {
		t.Matrix = f.Matrix()
	}
	if t.HasColorTransform {
		t.ColorTransform = f.CXFormWithAlpha()
	}
	if t.HasRatio {
		t.Ratio = f.UI16()
	}
	if t.HasName {
		t.Name = f.Text()
	}
	if t.HasClipDepth {
		t.ClipDepth = f.UI16()
	}
}

func decodePlaceObject2(r *swfio.Reader, base tagBase) (Tag, error) {
	f := r.Fields()
	t := &PlaceObject{tagBase: base, Version: 2, Matrix: swfio.IdentityMatrix,
		ColorTransform: swfio.IdentityColorTransform}
	t.setFlags(f.UI8())
	t.Depth = f.UI16()
	t.readCommon(f)
	return t, f.Err()
}

func decodePlaceObject3(r *swfio.Reader, base tagBase) (Tag, error) {
	f := r.Fields()
	t := &PlaceObject{tagBase: base, Version: 3, Matrix: swfio.IdentityMatrix,
		ColorTransform: swfio.IdentityColorTransform}
	t.setFlags(f.UI8())
	flags2 := f.UI8()
	t.HasImage = flags2&0x10 != 0
	t.HasClassName = flags2&0x08 != 0
	t.HasCacheAsBitmap = flags2&0x04 != 0
	t.HasBlendMode = flags2&0x02 != 0
	t.HasFilterList = flags2&0x01 != 0
	t.Depth = f.UI16()
	if t.HasClassName {
		t.ClassName = f.Text()
	}
	t.readCommon(f)
	if err := f.Err(); err != nil {
		return nil, err
	}
	if t.HasFilterList {
		filters, err := readFilterList(r)
		if err != nil {
			return nil, inSection("FilterList", err)
		}
		t.Filters = filters
	}
	if t.HasBlendMode {
		t.BlendMode = BlendMode(f.UI8())
	}
	if t.HasCacheAsBitmap {
		t.BitmapCache = f.UI8()
	}
	return t, f.Err()
}

// BlendMode is the blend mode of a placed character.
type BlendMode uint8

var blendModeNames = [...]string{
	"normal", "normal", "layer", "multiply", "screen", "lighten", "darken",
	"difference", "add", "subtract", "invert", "alpha", "erase", "overlay",
	"hardlight",
}

func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return "normal"
}

// RemoveObject is a RemoveObject or RemoveObject2 tag. Version 2 carries no
// character ID.
type RemoveObject struct {
	tagBase
	Version     int
	CharacterID uint16
	Depth       uint16
}

func decodeRemoveObject(version int) decodeFunc {
	return func(r *swfio.Reader, base tagBase) (Tag, error) {
		f := r.Fields()
		t := &RemoveObject{tagBase: base, Version: version}
		if version == 1 {
			t.CharacterID = f.UI16()
		}
		t.Depth = f.UI16()
		return t, f.Err()
	}
}

// SetBackgroundColor sets the background color of the display.
type SetBackgroundColor struct {
	tagBase
	Color swfio.RGBA
}

func decodeSetBackgroundColor(r *swfio.Reader, base tagBase) (Tag, error) {
	f := r.Fields()
	t := &SetBackgroundColor{tagBase: base, Color: f.RGB()}
	return t, f.Err()
}

// FrameLabel names the current frame.
type FrameLabel struct {
	tagBase
	Name        string
	NamedAnchor bool
}

func decodeFrameLabel(r *swfio.Reader, base tagBase) (Tag, error) {
	f := r.Fields()
	t := &FrameLabel{tagBase: base, Name: f.Text()}
	if f.OK() && r.Remaining() > 0 {
		t.NamedAnchor = f.UI8() != 0
	}
	return t, f.Err()
}
