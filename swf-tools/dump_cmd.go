package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/npillmayer/swf/swfquery"
	"github.com/thatisuday/commando"
)

func runDumpCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	m := mustLoadMovie(args["movie"].Value, false)
	outPath := mustFlagString(flags["output"], "output")
	workers := mustFlagInt(flags["workers"], "workers")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	outlines, err := swfquery.ReconstructAll(ctx, swfquery.Shapes(m), workers)
	if err != nil {
		fatalf("reconstruction stopped: %v", err)
	}

	var w io.Writer = os.Stdout
	if outPath != "-" && outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			fatalf("cannot create output file: %v", err)
		}
		defer f.Close()
		w = f
	}
	if err := swfquery.EncodeOutline(w, outlines); err != nil {
		fatalf("cannot encode outlines: %v", err)
	}
}
