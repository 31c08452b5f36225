package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "tag", "tags":
		pterm.Info.Println("Tags")
		pterm.Println(`
	A movie is a sequence of tags. Every tag starts with a header:
	+----------------------+-------------------------------+
	| kind (10 bits)       | length (6 bits)               |
	+----------------------+-------------------------------+
	| length (32 bits), if the 6-bit length equals 0x3F    |
	+------------------------------------------------------+
	tags           lists the tags of the current timeline
	tags:<n>       shows tag number n
	tags:histogram counts the tags of the movie by kind
	`)
	case "sprite", "sprites":
		pterm.Info.Println("Sprites")
		pterm.Println(`
	A sprite (DefineSprite) is a movie clip with a timeline of its own.
	Its tags are nested inside the DefineSprite tag.
	sprite:<id>    makes the timeline of sprite <id> the current one
	sprite         returns to the main timeline
	`)
	case "shape", "shapes", "style", "styles":
		pterm.Info.Println("Shapes and Styles")
		pterm.Println(`
	Shapes are defined by DefineShape, DefineMorphShape and font tags.
	Edges are grouped by style; a new group starts whenever a shape
	declares new style arrays.
	shape:<id>      lists the groups of a shape
	shape:<id>:svg  prints the outlines as SVG paths
	styles:<id>     lists fill and line styles, numbered from 1
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	info            movie header, frame labels and decoding problems
	tags[:<n>]      tags of the current timeline
	sprite[:<id>]   select a timeline
	shape:<id>      shape geometry
	styles:<id>     shape styles
	text:<id>       glyphs of a static text, resolved by its fonts
	help[:<topic>]  topics are tags, sprite and shape
	quit            leave
	Commands may be chained on one line, separated by blanks.
	`)
	}
}
