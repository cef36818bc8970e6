package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ooftn2d/engine"
	"github.com/plus3/ooftn2d/render"
)

// FrameHistory is a fixed-size ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	filled  int
}

func NewFrameHistory(size int) *FrameHistory {
	if size < 1 {
		size = 1
	}
	return &FrameHistory{samples: make([]float32, size)}
}

// Push records one sample, overwriting the oldest once full.
func (h *FrameHistory) Push(ms float32) {
	h.samples[h.next] = ms
	h.next = (h.next + 1) % len(h.samples)
	if h.filled < len(h.samples) {
		h.filled++
	}
}

// Average returns the mean of the recorded samples, or 0 when empty.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for i := 0; i < h.filled; i++ {
		sum += h.samples[i]
	}
	return sum / float32(h.filled)
}

func (h *FrameHistory) Len() int {
	return h.filled
}

// PipelineStats renders frame timings, pre-renderer cache sizes, storage
// statistics and per-system timings.
type PipelineStats struct {
	history   *FrameHistory
	lastFrame uint64
}

func NewPipelineStats(historyFrames int) *PipelineStats {
	return &PipelineStats{history: NewFrameHistory(historyFrames)}
}

func (ps *PipelineStats) Render(pipeline *engine.Pipeline) {
	if !imgui.BeginV("Pipeline Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	frame := pipeline.Stats()
	if frame.Frame != ps.lastFrame {
		ps.lastFrame = frame.Frame
		ps.history.Push(float32(frame.UpdateTime.Seconds()*1000 + frame.DrawTime.Seconds()*1000))
	}

	imgui.Text(fmt.Sprintf("Frame: %d", frame.Frame))
	imgui.Text(fmt.Sprintf("Updates: %d  Draws: %d", frame.Updates, frame.Draws))
	for _, kind := range []render.UpdateKind{render.UpdateTexture, render.UpdateTransform, render.UpdateVertexBuffer, render.UpdateIndexBuffer} {
		imgui.BulletText(fmt.Sprintf("%s: %d", kind, frame.UpdatesByKind[kind]))
	}
	imgui.Text(fmt.Sprintf("Update: %s  Draw: %s", frame.UpdateTime, frame.DrawTime))
	imgui.Text(fmt.Sprintf("Avg Pipeline Time: %.3f ms", ps.history.Average()))

	imgui.Separator()
	imgui.Text("Pipeline Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.history.samples[0], int32(len(ps.history.samples)))

	cache := pipeline.PreRenderer().CacheStats()
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Cached textures: %d", cache.Textures))
	imgui.Text(fmt.Sprintf("Cached transforms: %d", cache.Transforms))
	imgui.Text(fmt.Sprintf("Cached buffers: %d vertex, %d index", cache.VertexBuffers, cache.IndexBuffers))

	stats := pipeline.Storage().CollectStats()
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.TreeNodeStr("Archetype Details") {
		if imgui.BeginTableV("ArchStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, arch := range stats.ArchetypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", arch.ID))
				imgui.TableNextColumn()
				imgui.Text(strings.Join(arch.ComponentTypes, ", "))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singleton Details") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Systems") {
		sched := pipeline.Scheduler().GetStats()
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableHeadersRow()

			for _, sys := range sched.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(sys.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}
}
