package engine

import (
	"github.com/plus3/ooftn2d/assets"
	"github.com/plus3/ooftn2d/ecs"
	"github.com/plus3/ooftn2d/graphics"
)

// NewRegistry returns a component registry holding every component the
// pipeline reads or writes. Callers may register their own components on
// top before creating the storage.
func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()

	ecs.RegisterComponent[graphics.Camera](registry)
	ecs.RegisterComponent[graphics.Transform](registry)
	ecs.RegisterComponent[graphics.Hide](registry)

	ecs.RegisterComponent[graphics.Material](registry)
	ecs.RegisterComponent[assets.Ref[graphics.Material]](registry)
	ecs.RegisterComponent[graphics.Font](registry)
	ecs.RegisterComponent[assets.Ref[graphics.Font]](registry)

	ecs.RegisterComponent[graphics.Triangle](registry)
	ecs.RegisterComponent[graphics.Square](registry)
	ecs.RegisterComponent[graphics.Rectangle](registry)
	ecs.RegisterComponent[graphics.Sprite](registry)
	ecs.RegisterComponent[graphics.Line](registry)
	ecs.RegisterComponent[graphics.Polygon](registry)
	ecs.RegisterComponent[graphics.Tilemap](registry)

	ecs.RegisterComponent[graphics.UiComponent](registry)
	ecs.RegisterComponent[graphics.UiFocusable](registry)
	ecs.RegisterComponent[graphics.UiImage](registry)
	ecs.RegisterComponent[graphics.UiText](registry)
	ecs.RegisterComponent[graphics.UiTextImage](registry)
	ecs.RegisterComponent[graphics.UiInput](registry)
	ecs.RegisterComponent[graphics.UiButton](registry)

	return registry
}
