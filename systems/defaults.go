package systems

import (
	"github.com/plus3/ooftn2d/ecs"
	"github.com/plus3/ooftn2d/graphics"
)

// RegisterDefaults registers the standard preparation systems in the order
// they have to run: asset resolution, then UI markers, then focus
// defaults.
func RegisterDefaults(scheduler *ecs.Scheduler) {
	scheduler.Register(NewAssetRefResolver(ResolveMaterial))
	scheduler.Register(NewAssetRefResolver(ResolveFont))

	scheduler.Register(&MissingUiMarker[graphics.UiImage]{})
	scheduler.Register(&MissingUiMarker[graphics.UiText]{})
	scheduler.Register(&MissingUiMarker[graphics.UiTextImage]{})
	scheduler.Register(&MissingUiMarker[graphics.UiInput]{})
	scheduler.Register(&MissingUiMarker[graphics.UiButton]{})

	scheduler.Register(&MissingFocusable[graphics.UiInput]{})
	scheduler.Register(&MissingFocusable[graphics.UiButton]{})
}
