package engine

import (
	"github.com/plus3/ooftn2d/ecs"
	"github.com/plus3/ooftn2d/render"
)

// Backend consumes the output of the pre-renderer. Apply receives the
// updates of a frame in the order they must be applied; Draw receives the
// draw list sorted by descending layer.
type Backend interface {
	Apply(updates []render.RenderingUpdate)
	Draw(infos []render.RenderingInfos)
}

// Pruner is implemented by backends that keep per-entity resources. Prune
// drops the resources of every entity for which alive returns false and
// reports how many were released.
type Pruner interface {
	Prune(alive func(ecs.Entity) bool) int
}

// Recorder is a Backend that keeps the output of the last frame and running
// totals. It is used by headless tools and tests.
type Recorder struct {
	Updates []render.RenderingUpdate
	Draws   []render.RenderingInfos

	TotalUpdates int
	TotalDraws   int
}

func (r *Recorder) Apply(updates []render.RenderingUpdate) {
	r.Updates = updates
	r.TotalUpdates += len(updates)
}

func (r *Recorder) Draw(infos []render.RenderingInfos) {
	r.Draws = infos
	r.TotalDraws += len(infos)
}
