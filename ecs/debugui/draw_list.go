package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ooftn2d/engine"
	"github.com/plus3/ooftn2d/render"
)

// LayerSummary counts the draws issued on one layer.
type LayerSummary struct {
	Layer    int32
	Draws    int
	Indices  uint32
	Textures int
}

// SummarizeDraws groups draws by layer, highest layer first.
func SummarizeDraws(infos []render.RenderingInfos) []LayerSummary {
	byLayer := make(map[int32]*LayerSummary)
	textures := make(map[int32]map[string]struct{})
	for _, info := range infos {
		s, ok := byLayer[info.Layer]
		if !ok {
			s = &LayerSummary{Layer: info.Layer}
			byLayer[info.Layer] = s
			textures[info.Layer] = make(map[string]struct{})
		}
		s.Draws++
		s.Indices += info.Range.Len()
		if info.TexturePath != "" {
			textures[info.Layer][info.TexturePath] = struct{}{}
		}
	}

	summaries := make([]LayerSummary, 0, len(byLayer))
	for layer, s := range byLayer {
		s.Textures = len(textures[layer])
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Layer > summaries[j].Layer
	})
	return summaries
}

// DrawList shows the draw calls the pipeline would issue this frame.
type DrawList struct {
	showUI bool
}

func NewDrawList() *DrawList {
	return &DrawList{showUI: true}
}

func (dl *DrawList) Render(pipeline *engine.Pipeline) {
	if !imgui.BeginV("Draw List", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	infos := pipeline.PreRenderer().PrepareRendering(pipeline.Storage())

	imgui.Checkbox("Show UI", &dl.showUI)
	imgui.Text(fmt.Sprintf("Draws: %d", len(infos)))

	if imgui.TreeNodeStr("Layers") {
		for _, s := range SummarizeDraws(infos) {
			imgui.BulletText(fmt.Sprintf("layer %d: %d draws, %d indices, %d textures", s.Layer, s.Draws, s.Indices, s.Textures))
		}
		imgui.TreePop()
	}

	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("DrawListTable", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Layer")
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Indices")
		imgui.TableSetupColumn("Texture")
		imgui.TableSetupColumn("Topology")
		imgui.TableHeadersRow()

		for _, info := range infos {
			if info.UI && !dl.showUI {
				continue
			}
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", info.Layer))
			imgui.TableNextColumn()
			imgui.Text(info.Kind)
			imgui.TableNextColumn()
			imgui.Text(info.Entity.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d..%d", info.Range.Start, info.Range.End))
			imgui.TableNextColumn()
			imgui.Text(info.TexturePath)
			imgui.TableNextColumn()
			imgui.Text(info.Topology.String())
		}

		imgui.EndTable()
	}
}
