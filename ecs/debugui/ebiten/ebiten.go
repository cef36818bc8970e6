// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ooftn2d/ecs"
	"github.com/plus3/ooftn2d/ecs/debugui"
	"github.com/plus3/ooftn2d/engine"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// It is stored as a singleton so systems can reach it.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Overlay runs a pipeline inside an ImGui frame and draws the debug
// panels on top of the scene.
type Overlay struct {
	pipeline *engine.Pipeline
	backend  *ecs.Singleton[ImguiBackend]
	input    *ecs.Singleton[debugui.ImguiInputState]
}

// NewOverlay creates the ImGui window and attaches the debug panels to
// pipeline.
func NewOverlay(pipeline *engine.Pipeline, title string, width, height int) *Overlay {
	imguiBackend := ebitenbackend.NewEbitenBackend()
	imguiBackend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	storage := pipeline.Storage()
	debugui.Attach(pipeline)

	return &Overlay{
		pipeline: pipeline,
		backend:  ecs.NewSingleton(storage, ImguiBackend{EbitenBackend: imguiBackend}),
		input:    ecs.NewSingleton[debugui.ImguiInputState](storage),
	}
}

// Update opens the ImGui frame, runs the pipeline's update half and
// closes the frame.
func (o *Overlay) Update(dt float64) {
	backend := o.backend.Get()
	backend.BeginFrame()
	o.pipeline.Update(dt)
	backend.EndFrame()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Get().Draw(screen)
}

func (o *Overlay) Layout(outsideWidth, outsideHeight int) {
	o.backend.Get().Layout(outsideWidth, outsideHeight)
}

// WantsInput reports whether ImGui captured the mouse or keyboard during
// the last frame.
func (o *Overlay) WantsInput() bool {
	state := o.input.Get()
	return state != nil && (state.WantCaptureMouse || state.WantCaptureKeyboard)
}
