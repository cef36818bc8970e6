package systems

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/plus3/ooftn2d/ecs"
	"github.com/plus3/ooftn2d/graphics"
)

type missingMarker[T any] struct {
	ecs.Entity
	Component *T
	Marker    *graphics.UiComponent `ecs:"without"`
}

type missingFocus[T any] struct {
	ecs.Entity
	Component *T
	Focus     *graphics.UiFocusable `ecs:"without"`
}

func focusFor[T graphics.Focusable](e ecs.Entity, component *T) graphics.UiFocusable {
	ecs.Logger().Debug("adding UiFocusable",
		slog.String("component", reflect.TypeFor[T]().String()),
		slog.String("entity", e.String()))
	return graphics.UiFocusable{Rank: (*component).TabIndex(), Focused: false}
}

// AddMissingUiMarker attaches graphics.UiComponent to every entity holding
// T without one and returns the number of entities changed.
func AddMissingUiMarker[T any](storage *ecs.Storage) int {
	view := ecs.NewView[missingMarker[T]](storage)
	commands := ecs.NewCommands()

	for e := range view.Iter() {
		commands.AddComponent(e, graphics.UiComponent{})
	}

	staged := commands.Len()
	commands.Flush(storage)
	return staged
}

// AddMissingFocusable attaches a graphics.UiFocusable ranked by the
// component's tab index to every entity holding T without one.
func AddMissingFocusable[T graphics.Focusable](storage *ecs.Storage) int {
	view := ecs.NewView[missingFocus[T]](storage)
	commands := ecs.NewCommands()

	for e, item := range view.Iter() {
		commands.AddComponent(e, focusFor(e, item.Component))
	}

	staged := commands.Len()
	commands.Flush(storage)
	return staged
}

// MissingUiMarker is the scheduled form of AddMissingUiMarker.
type MissingUiMarker[T any] struct {
	Unmarked ecs.Query[missingMarker[T]]
}

func (s *MissingUiMarker[T]) Execute(frame *ecs.UpdateFrame) {
	for e := range s.Unmarked.Iter() {
		frame.Commands.AddComponent(e, graphics.UiComponent{})
	}
}

func (s *MissingUiMarker[T]) Name() string {
	return fmt.Sprintf("MissingUiMarker[%s]", reflect.TypeFor[T]())
}

// MissingFocusable is the scheduled form of AddMissingFocusable.
type MissingFocusable[T graphics.Focusable] struct {
	Unfocusable ecs.Query[missingFocus[T]]
}

func (s *MissingFocusable[T]) Execute(frame *ecs.UpdateFrame) {
	for e, item := range s.Unfocusable.Iter() {
		frame.Commands.AddComponent(e, focusFor(e, item.Component))
	}
}

func (s *MissingFocusable[T]) Name() string {
	return fmt.Sprintf("MissingFocusable[%s]", reflect.TypeFor[T]())
}
