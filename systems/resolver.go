package systems

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/plus3/ooftn2d/assets"
	"github.com/plus3/ooftn2d/ecs"
	"github.com/plus3/ooftn2d/graphics"
)

// ResolverFunc turns an asset reference into the component it points at.
type ResolverFunc[T any] func(manager *assets.Manager, ref *assets.Ref[T]) T

// pendingRef matches entities holding a Ref[T] that was not resolved yet.
type pendingRef[T any] struct {
	ecs.Entity
	Ref      *assets.Ref[T]
	Resolved *T `ecs:"without"`
}

// ResolveAssetRefs attaches T to every entity holding an assets.Ref[T] but
// no T. Additions are staged while iterating and applied afterwards, so
// running it again without new refs is a no-op. It returns the number of
// components added. resolve panics on an invalid reference.
func ResolveAssetRefs[T any](storage *ecs.Storage, manager *assets.Manager, resolve ResolverFunc[T]) int {
	view := ecs.NewView[pendingRef[T]](storage)
	commands := ecs.NewCommands()

	for e, item := range view.Iter() {
		commands.AddComponent(e, resolve(manager, item.Ref))
	}

	staged := commands.Len()
	commands.Flush(storage)
	return staged
}

// ResolveMaterial resolves a material reference.
func ResolveMaterial(manager *assets.Manager, ref *assets.Ref[graphics.Material]) graphics.Material {
	return assets.MustGet(manager, *ref)
}

// ResolveFont resolves a font reference.
func ResolveFont(manager *assets.Manager, ref *assets.Ref[graphics.Font]) graphics.Font {
	return assets.MustGet(manager, *ref)
}

// AssetRefResolver is the scheduled form of ResolveAssetRefs. It reads the
// asset manager from the storage's assets.Manager singleton.
type AssetRefResolver[T any] struct {
	Manager ecs.Singleton[assets.Manager]
	Pending ecs.Query[pendingRef[T]]

	resolve ResolverFunc[T]
}

// NewAssetRefResolver creates a resolver system using resolve.
func NewAssetRefResolver[T any](resolve ResolverFunc[T]) *AssetRefResolver[T] {
	return &AssetRefResolver[T]{resolve: resolve}
}

func (s *AssetRefResolver[T]) Execute(frame *ecs.UpdateFrame) {
	manager := s.Manager.Get()
	if manager == nil {
		if s.Pending.Len() > 0 {
			ecs.Logger().Debug("no asset manager, skipping references",
				slog.String("system", s.Name()), slog.Int("pending", s.Pending.Len()))
		}
		return
	}

	for e, item := range s.Pending.Iter() {
		frame.Commands.AddComponent(e, s.resolve(manager, item.Ref))
	}
}

func (s *AssetRefResolver[T]) Name() string {
	return fmt.Sprintf("AssetRefResolver[%s]", reflect.TypeFor[T]())
}
