package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ooftn2d/ecs"
	debugui_ebiten "github.com/plus3/ooftn2d/ecs/debugui/ebiten"
	"github.com/plus3/ooftn2d/engine"
	"github.com/plus3/ooftn2d/graphics"
	"github.com/plus3/ooftn2d/render/ebitenrender"
)

// Game implements ebiten.Game around a pipeline.
type Game struct {
	pipeline *engine.Pipeline
	backend  *ebitenrender.Backend
	overlay  *debugui_ebiten.Overlay
	tps      int
}

func (g *Game) Update() error {
	dt := 1 / float64(g.tps)
	if g.overlay != nil {
		g.overlay.Update(dt)
	} else {
		g.pipeline.Update(dt)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.pipeline.Draw()
	g.backend.Render(screen)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// wantsKeys reports whether the keyboard belongs to the game rather than
// the debug overlay.
func (g *Game) wantsKeys() bool {
	return g.overlay == nil || !g.overlay.WantsInput()
}

// CameraControl pans the camera with the arrow keys and zooms with Q/E.
type CameraControl struct {
	Cameras ecs.Query[struct{ *graphics.Camera }]
	Input   func() bool

	Speed float32
}

func (c *CameraControl) Execute(frame *ecs.UpdateFrame) {
	if c.Input != nil && !c.Input() {
		return
	}
	speed := c.Speed
	if speed == 0 {
		speed = 200
	}
	step := speed * float32(frame.DeltaTime)

	var delta graphics.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		delta.X -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		delta.X += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		delta.Y -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		delta.Y += step
	}
	zoom := float32(1)
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		zoom -= float32(frame.DeltaTime)
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		zoom += float32(frame.DeltaTime)
	}

	if delta == (graphics.Vec2{}) && zoom == 1 {
		return
	}
	for item := range c.Cameras.Values() {
		item.Camera.Position = item.Camera.Position.Add(delta)
		if item.Camera.Zoom == 0 {
			item.Camera.Zoom = 1
		}
		item.Camera.Zoom *= zoom
		return
	}
}
