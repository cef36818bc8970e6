// Package debugui provides Dear ImGui panels for inspecting a render
// pipeline: entities and their components, pre-renderer caches, frame
// statistics and the draw list.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ooftn2d/ecs"
	"github.com/plus3/ooftn2d/engine"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queries all ImguiItem components and defers their render functions.
// It also updates the ImguiInputState singleton with current input capture state.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
		state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}

// RegisterComponents registers the components used by Attach.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
}

// Attach spawns one ImguiItem per panel and registers an ImguiSystem on
// the pipeline's scheduler. The ImGui frame must be open while the
// pipeline updates.
func Attach(pipeline *engine.Pipeline) {
	storage := pipeline.Storage()
	RegisterComponents(storage.Registry())
	ecs.NewSingleton(storage, ImguiInputState{})

	browser := NewEntityBrowser(100)
	inspector := NewInspector()
	stats := NewPipelineStats(120)
	drawList := NewDrawList()

	storage.Spawn(ImguiItem{Render: func() {
		browser.Render(storage, pipeline.PreRenderer())
	}})
	storage.Spawn(ImguiItem{Render: func() {
		inspector.Render(storage, browser.Selected())
	}})
	storage.Spawn(ImguiItem{Render: func() {
		stats.Render(pipeline)
	}})
	storage.Spawn(ImguiItem{Render: func() {
		drawList.Render(pipeline)
	}})

	pipeline.Scheduler().Register(&ImguiSystem{})
}
