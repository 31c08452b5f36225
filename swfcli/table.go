package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/npillmayer/swf/swfquery"
	"github.com/npillmayer/swf/swftag"
	"github.com/pterm/pterm"
)

func infoOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkMovie(); err != nil {
		return
	}
	info, _ := swfquery.HeaderInfo(intp.movie)
	pterm.Printf("%s\n", swfquery.MovieType(intp.movie))
	data := [][]string{
		{"Property", "Value"},
		{"Signature", info.Signature},
		{"Version", strconv.Itoa(int(info.Version))},
		{"File length", strconv.Itoa(int(info.FileLength))},
		{"Frame size", fmt.Sprintf("%g × %g px", info.Width, info.Height)},
		{"Frame rate", fmt.Sprintf("%g fps", info.FrameRate)},
		{"Frames", strconv.Itoa(int(info.FrameCount))},
		{"Tags", fmt.Sprintf("%d decoded, %d skipped", info.TagCount, info.Skipped)},
	}
	if bg, ok := swfquery.BackgroundColor(intp.movie); ok {
		data = append(data, []string{"Background", bg.String()})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	for _, l := range swfquery.FrameLabels(intp.movie) {
		pterm.Printf("frame %d labeled %q\n", l.Frame, l.Name)
	}
	printProblems(intp.movie)
	return
}

func tagsOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkMovie(); err != nil {
		return
	}
	tags := intp.timeline()
	if op.noArg() {
		printTagList(tags)
		return
	}
	if op.arg == "histogram" {
		printHistogram(swfquery.TagHistogram(intp.movie))
		return
	}
	i, err := strconv.Atoi(op.arg)
	if err != nil || i < 0 || i >= len(tags) {
		return fmt.Errorf("tag index out of range: %v", op.arg), false
	}
	pterm.Printf("%d: %s at offset %d\n", i, tags[i].Header(), tags[i].Offset())
	pterm.Printf("%s\n", summary(tags[i]))
	return
}

func spriteOp(intp *Intp, op *Op) (err error, stop bool) {
	if op.noArg() {
		intp.sprite = nil
		tracer().Infof("back to main timeline")
		return
	}
	def, err := intp.character(op)
	if err != nil {
		return
	}
	sprite, ok := def.(*swftag.DefineSprite)
	if !ok {
		return fmt.Errorf("character #%d is a %s, not a sprite", def.CharacterID(), def.Kind()), false
	}
	intp.sprite = sprite
	tracer().Infof("timeline of sprite #%d: %d frames, %d tags", sprite.ID, sprite.FrameCount, len(sprite.Tags))
	return
}

func shapeOp(intp *Intp, op *Op) (err error, stop bool) {
	def, err := intp.character(op)
	if err != nil {
		return
	}
	refs := swfquery.ShapesOf(intp.movie, def.CharacterID())
	if len(refs) == 0 {
		return errors.New("character has no shapes"), false
	}
	for _, ref := range refs {
		printShape(ref, op.format == "svg")
	}
	return
}

func stylesOp(intp *Intp, op *Op) (err error, stop bool) {
	def, err := intp.character(op)
	if err != nil {
		return
	}
	refs := swfquery.ShapesOf(intp.movie, def.CharacterID())
	if len(refs) == 0 {
		return errors.New("character has no shapes"), false
	}
	for _, ref := range refs {
		printStyles(ref)
	}
	return
}

func textOp(intp *Intp, op *Op) (err error, stop bool) {
	def, err := intp.character(op)
	if err != nil {
		return
	}
	lines, ok := swfquery.StaticText(intp.movie, def.CharacterID())
	if !ok {
		return errors.New("character is not a static text"), false
	}
	printText(def.CharacterID(), lines)
	return
}
