package ecs_test

import (
	"fmt"

	"github.com/plus3/ooftn2d/ecs"
)

// ExampleView demonstrates using Views for one-off entity lookups.
// Views don't require a Scheduler and iterate on demand, which suits tools
// and code running outside of a system.
func ExampleView() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	storage := ecs.NewStorage(registry)

	player := storage.Spawn(
		Position{X: 10, Y: 20},
		Velocity{DX: 1, DY: 0},
		Health{Current: 100, Max: 100},
	)

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	if item := view.Get(player); item != nil {
		fmt.Printf("Player at (%.0f, %.0f) moving (%.0f, %.0f)\n",
			item.Position.X, item.Position.Y, item.Velocity.DX, item.Velocity.DY)
	}

	// Output:
	// Player at (10, 20) moving (1, 0)
}

// ExampleView_Iter shows the optional and without tags. Entities are
// visited in archetype creation order.
func ExampleView_Iter() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Frozen](registry)
	storage := ecs.NewStorage(registry)

	storage.Spawn(Position{X: 0, Y: 0})
	storage.Spawn(Position{X: 10, Y: 10}, Health{Current: 50, Max: 100})
	storage.Spawn(Position{X: 20, Y: 20}, Frozen{})

	view := ecs.NewView[struct {
		*Position
		Health *Health `ecs:"optional"`
		Frozen *Frozen `ecs:"without"`
	}](storage)

	for e, item := range view.Iter() {
		if item.Health != nil {
			fmt.Printf("%s at %.0f with %d hp\n", e, item.Position.X, item.Health.Current)
		} else {
			fmt.Printf("%s at %.0f\n", e, item.Position.X)
		}
	}

	// Output:
	// 0v1 at 0
	// 1v1 at 10 with 50 hp
}
