package main

import (
	"fmt"

	"github.com/npillmayer/swf/swfquery"
	"github.com/thatisuday/commando"
)

func runInfoCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	moviePath := args["movie"].Value
	m := mustLoadMovie(moviePath, mustFlagBool(flags["strict"], "strict"))

	info, _ := swfquery.HeaderInfo(m)
	fmt.Printf("Path: %s\n", moviePath)
	fmt.Printf("Type: %s\n", swfquery.MovieType(m))
	fmt.Printf("Header: %s, %d bytes\n", info.Signature, info.FileLength)
	fmt.Printf("Frames: %d at %g fps, %g × %g px\n", info.FrameCount, info.FrameRate, info.Width, info.Height)
	if bg, ok := swfquery.BackgroundColor(m); ok {
		fmt.Printf("Background: %s\n", bg)
	}
	for _, l := range swfquery.FrameLabels(m) {
		fmt.Printf("Label: frame %d %q\n", l.Frame, l.Name)
	}
	fmt.Printf("Characters: %d\n", len(swfquery.Dictionary(m)))

	fmt.Printf("Tags (%d decoded, %d skipped):\n", info.TagCount, info.Skipped)
	for _, entry := range swfquery.TagHistogram(m) {
		fmt.Printf("  %-30s %6d\n", fmt.Sprintf("%s(%d)", entry.Kind, uint16(entry.Kind)), entry.Count)
	}

	errs := m.Errors()
	warns := m.Warnings()
	crit := m.CriticalErrors()
	fmt.Printf("Issues: errors=%d warnings=%d critical=%d\n", len(errs), len(warns), len(crit))
	if mustFlagBool(flags["errors"], "errors") {
		for _, e := range errs {
			fmt.Printf("error: %s\n", e.Error())
		}
		for _, w := range warns {
			fmt.Printf("warning: %s\n", w.String())
		}
	}
}
