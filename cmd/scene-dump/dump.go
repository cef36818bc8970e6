package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/plus3/ooftn2d/engine"
	"github.com/plus3/ooftn2d/render"
)

// writeFrame prints one frame: a header, the updates in apply order, then
// the draw list.
func writeFrame(w io.Writer, stats engine.FrameStats, recorder *engine.Recorder) error {
	fmt.Fprintf(w, "frame %d: %d updates, %d draws\n", stats.Frame, stats.Updates, stats.Draws)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, u := range recorder.Updates {
		fmt.Fprintf(tw, "  update\t%s\t%s\n", u.Kind, updateTarget(u))
	}
	for _, d := range recorder.Draws {
		space := "world"
		if d.UI {
			space = "ui"
		}
		fmt.Fprintf(tw, "  draw\tlayer=%d\t%s\t%s\t%s\t%d..%d\t%s\n",
			d.Layer, d.Kind, d.Entity, d.Topology, d.Range.Start, d.Range.End, textureLabel(d.TexturePath)+" "+space)
	}
	return tw.Flush()
}

func updateTarget(u render.RenderingUpdate) string {
	switch u.Kind {
	case render.UpdateTexture:
		return u.TexturePath
	case render.UpdateVertexBuffer:
		return fmt.Sprintf("%s (%d vertices)", u.Entity, len(u.Vertices))
	case render.UpdateIndexBuffer:
		return fmt.Sprintf("%s (%d indices)", u.Entity, len(u.Indices))
	}
	return u.Entity.String()
}

func textureLabel(path string) string {
	if path == "" {
		return "-"
	}
	return path
}
