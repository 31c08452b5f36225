package swftag

import (
	"github.com/npillmayer/swf/swfio"
)

// FileAttributes defines characteristics of the movie. It is required as
// the first tag for SWF 8 and later.
type FileAttributes struct {
	tagBase
	UseDirectBlit bool
	UseGPU        bool
	HasMetadata   bool
	ActionScript3 bool
	UseNetwork    bool
}

func decodeFileAttributes(r *swfio.Reader, base tagBase) (Tag, error) {
	f := r.Fields()
	flags := f.UI8()
	t := &FileAttributes{
		tagBase:       base,
		UseDirectBlit: flags&0x40 != 0,
		UseGPU:        flags&0x20 != 0,
		HasMetadata:   flags&0x10 != 0,
		ActionScript3: flags&0x08 != 0,
		UseNetwork:    flags&0x01 != 0,
	}
	return t, f.Err()
}

// Symbol links a character to an ActionScript 3 class.
type Symbol struct {
	CharacterID uint16 // 0 for the main timeline
	Name        string
}

// SymbolClass exports characters as ActionScript 3 classes.
type SymbolClass struct {
	tagBase
	Symbols []Symbol
}

func decodeSymbolClass(r *swfio.Reader, base tagBase) (Tag, error) {
	f := r.Fields()
	t := &SymbolClass{tagBase: base}
	n := int(f.UI16())
	if f.OK() && int64(n)*3 > r.Remaining() { // every symbol takes at least 3 bytes
		return nil, swfio.NewFormatError(r.Pos(), "%d symbols exceed tag content", n)
	}
	t.Symbols = make([]Symbol, 0, n)
	for range n {
		sym := Symbol{CharacterID: f.UI16(), Name: f.Text()}
		if !f.OK() {
			break
		}
		t.Symbols = append(t.Symbols, sym)
	}
	return t, f.Err()
}

// Metadata holds XML metadata in RDF format.
type Metadata struct {
	tagBase
	XML string
}

func decodeMetadata(r *swfio.Reader, base tagBase) (Tag, error) {
	f := r.Fields()
	t := &Metadata{tagBase: base, XML: f.Text()}
	return t, f.Err()
}

// DoABC holds ActionScript 3 byte code. The byte code is not interpreted.
type DoABC struct {
	tagBase
	LazyInitialize bool
	Name           string
	ABCData        []byte
}

func decodeDoABC(r *swfio.Reader, base tagBase) (Tag, error) {
	f := r.Fields()
	t := &DoABC{tagBase: base}
	t.LazyInitialize = f.UI32()&0x01 != 0
	t.Name = f.Text()
	t.ABCData = f.Rest()
	return t, f.Err()
}

// Scene names a sequence of frames, starting at frame Offset.
type Scene struct {
	Offset uint32
	Name   string
}

// FrameLabelEntry labels a frame of the main timeline.
type FrameLabelEntry struct {
	Frame uint32
	Label string
}

// DefineSceneAndFrameLabelData holds scene and frame label data of the main
// timeline.
type DefineSceneAndFrameLabelData struct {
	tagBase
	Scenes      []Scene
	FrameLabels []FrameLabelEntry
}

func decodeSceneAndFrameLabelData(r *swfio.Reader, base tagBase) (Tag, error) {
	f := r.Fields()
	t := &DefineSceneAndFrameLabelData{tagBase: base}
	n := f.EncodedU32()
	if err := checkRecordCount(f, n, 2); err != nil {
		return nil, inSection("Scenes", err)
	}
	for range n {
		scene := Scene{Offset: f.EncodedU32(), Name: f.Text()}
		if !f.OK() {
			break
		}
		t.Scenes = append(t.Scenes, scene)
	}
	n = f.EncodedU32()
	if err := checkRecordCount(f, n, 2); err != nil {
		return nil, inSection("FrameLabels", err)
	}
	for range n {
		label := FrameLabelEntry{Frame: f.EncodedU32(), Label: f.Text()}
		if !f.OK() {
			break
		}
		t.FrameLabels = append(t.FrameLabels, label)
	}
	return t, f.Err()
}

// checkRecordCount fails if n records of at least minSize bytes cannot fit
// into the remaining content.
func checkRecordCount(f *swfio.Fields, n uint32, minSize int64) error {
	if err := f.Err(); err != nil {
		return err
	}
	r := f.Reader()
	if int64(n)*minSize > r.Remaining() {
		return swfio.NewFormatError(r.Pos(), "%d records exceed tag content", n)
	}
	return nil
}
