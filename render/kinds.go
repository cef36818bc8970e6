package render

import (
	"github.com/plus3/ooftn2d/ecs"
	"github.com/plus3/ooftn2d/graphics"
)

// renderable is one entity holding a drawable component of some kind.
// material is nil when the entity has not been resolved yet.
type renderable struct {
	entity    ecs.Entity
	shape     graphics.Renderable2D
	material  *graphics.Material
	transform *graphics.Transform
	ui        bool
	hidden    bool
}

type renderableView[T any] struct {
	ecs.Entity
	Component *T
	Transform *graphics.Transform
	Material  *graphics.Material    `ecs:"optional"`
	Ui        *graphics.UiComponent `ecs:"optional"`
	Hide      *graphics.Hide        `ecs:"optional"`
}

type drawKind struct {
	name string
	each func(storage *ecs.Storage, yield func(renderable) bool)
}

func kindOf[T graphics.Renderable2D](name string) drawKind {
	return drawKind{
		name: name,
		each: func(storage *ecs.Storage, yield func(renderable) bool) {
			view := ecs.NewView[renderableView[T]](storage)
			for e, item := range view.Iter() {
				if !yield(renderable{
					entity:    e,
					shape:     *item.Component,
					material:  item.Material,
					transform: item.Transform,
					ui:        item.Ui != nil,
					hidden:    item.Hide != nil,
				}) {
					return
				}
			}
		},
	}
}

// drawKinds lists every drawable component in draw-list collection order.
var drawKinds = []drawKind{
	kindOf[graphics.Triangle]("Triangle"),
	kindOf[graphics.Square]("Square"),
	kindOf[graphics.Rectangle]("Rectangle"),
	kindOf[graphics.Sprite]("Sprite"),
	kindOf[graphics.Line]("Line"),
	kindOf[graphics.Polygon]("Polygon"),
	kindOf[graphics.UiImage]("UiImage"),
	kindOf[graphics.UiTextImage]("UiTextImage"),
	kindOf[graphics.Tilemap]("Tilemap"),
}

// eachRenderable visits every renderable of every kind, kind by kind.
func eachRenderable(storage *ecs.Storage, fn func(kind string, r renderable)) {
	for _, k := range drawKinds {
		k.each(storage, func(r renderable) bool {
			fn(k.name, r)
			return true
		})
	}
}
