package engine

import (
	"log/slog"
	"time"

	"github.com/plus3/ooftn2d/assets"
	"github.com/plus3/ooftn2d/ecs"
	"github.com/plus3/ooftn2d/render"
	"github.com/plus3/ooftn2d/systems"
)

// FrameStats describes the last frame run by a Pipeline.
type FrameStats struct {
	Frame         uint64
	Updates       int
	UpdatesByKind map[render.UpdateKind]int
	Draws         int
	UpdateTime    time.Duration
	DrawTime      time.Duration
}

// Pipeline drives one frame: systems, pre-render diffing, then hand-off to
// the backend. Update and Draw map onto the two halves of a game loop;
// Tick runs both.
type Pipeline struct {
	storage     *ecs.Storage
	scheduler   *ecs.Scheduler
	manager     *assets.Manager
	preRenderer *render.PreRenderer
	backend     Backend

	stats FrameStats
}

// NewPipeline registers manager as the storage's asset manager singleton
// and the default preparation systems on a new scheduler. User systems
// registered afterwards run after the defaults.
func NewPipeline(storage *ecs.Storage, manager *assets.Manager, backend Backend, opts ...render.Option) *Pipeline {
	storage.AddSingleton(manager)

	scheduler := ecs.NewScheduler(storage)
	systems.RegisterDefaults(scheduler)

	ecs.Logger().Info("pipeline created",
		slog.Int("systems", scheduler.GetStats().SystemCount),
		slog.Int("entities", storage.EntityCount()))

	return &Pipeline{
		storage:     storage,
		scheduler:   scheduler,
		manager:     manager,
		preRenderer: render.NewPreRenderer(opts...),
		backend:     backend,
	}
}

func (p *Pipeline) Storage() *ecs.Storage {
	return p.storage
}

func (p *Pipeline) Scheduler() *ecs.Scheduler {
	return p.scheduler
}

func (p *Pipeline) Manager() *assets.Manager {
	return p.manager
}

func (p *Pipeline) PreRenderer() *render.PreRenderer {
	return p.preRenderer
}

// Stats returns the statistics of the last frame.
func (p *Pipeline) Stats() FrameStats {
	return p.stats
}

// Update runs every system and applies the resulting GPU updates.
func (p *Pipeline) Update(dt float64) {
	start := time.Now()
	p.scheduler.Once(dt)

	updates := p.preRenderer.PrepareUpdate(p.storage)
	p.backend.Apply(updates)
	if pruner, ok := p.backend.(Pruner); ok {
		if n := pruner.Prune(p.storage.Contains); n > 0 {
			ecs.Logger().Debug("pruned backend resources", "count", n)
		}
	}

	p.stats.Frame++
	p.stats.Updates = len(updates)
	p.stats.UpdatesByKind = make(map[render.UpdateKind]int)
	for _, u := range updates {
		p.stats.UpdatesByKind[u.Kind]++
	}
	p.stats.UpdateTime = time.Since(start)
}

// Draw builds the draw list and hands it to the backend.
func (p *Pipeline) Draw() {
	start := time.Now()
	infos := p.preRenderer.PrepareRendering(p.storage)
	p.backend.Draw(infos)

	p.stats.Draws = len(infos)
	p.stats.DrawTime = time.Since(start)
}

// Tick runs a complete frame and returns its statistics.
func (p *Pipeline) Tick(dt float64) FrameStats {
	p.Update(dt)
	p.Draw()
	return p.stats
}
