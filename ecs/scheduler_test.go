package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/ooftn2d/ecs"
	"github.com/stretchr/testify/assert"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Values() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type HealthSystem struct {
	Entities     ecs.Query[struct{ *Health }]
	ExecuteCount int
	TotalHealth  float64
}

func (s *HealthSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	s.TotalHealth = 0
	for item := range s.Entities.Values() {
		s.TotalHealth += float64(item.Health.Current)
	}
}

type healerSystem struct {
	Wounded ecs.Query[struct {
		ecs.Entity
		*Position
		Health *Health `ecs:"without"`
	}]
}

func (s *healerSystem) Execute(frame *ecs.UpdateFrame) {
	for e := range s.Wounded.Iter() {
		frame.Commands.AddComponent(e, Health{Current: 10, Max: 10})
	}
}

func TestScheduler(t *testing.T) {
	registry := newTestRegistry()

	t.Run("system execution order and query initialization", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		movement := &MovementSystem{}
		health := &HealthSystem{}
		scheduler.Register(movement)
		scheduler.Register(health)

		storage.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 1, DY: 2})
		storage.Spawn(Health{Current: 100, Max: 100})

		scheduler.Once(1.0)
		assert.Equal(t, 1, movement.ExecuteCount)
		assert.Equal(t, 1, health.ExecuteCount)

		scheduler.Once(1.0)
		assert.Equal(t, 2, movement.ExecuteCount)
		assert.Equal(t, 2, health.ExecuteCount)
	})

	t.Run("custom state persistence", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		storage.Spawn(Health{Current: 50, Max: 100})
		storage.Spawn(Health{Current: 75, Max: 100})

		health := &HealthSystem{}
		scheduler.Register(health)

		scheduler.Once(1.0)
		assert.Equal(t, 125.0, health.TotalHealth)

		storage.Spawn(Health{Current: 25, Max: 100})

		scheduler.Once(1.0)
		assert.Equal(t, 150.0, health.TotalHealth)
	})

	t.Run("later systems see earlier commands in the same frame", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		storage.Spawn(Position{})
		storage.Spawn(Position{})

		health := &HealthSystem{}
		scheduler.Register(&healerSystem{})
		scheduler.Register(health)

		scheduler.Once(1.0)
		assert.Equal(t, 20.0, health.TotalHealth)
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		movement := &MovementSystem{}
		scheduler.Register(movement)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			scheduler.Run(ctx, 1*time.Millisecond)
			done <- true
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		assert.NotZero(t, movement.ExecuteCount)
	})

	t.Run("delta time calculation", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		e := storage.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 10, DY: 20})
		scheduler.Register(&MovementSystem{})

		scheduler.Once(0.5)

		pos := ecs.ReadComponent[Position](storage, e)
		assert.Equal(t, float32(5), pos.X)
		assert.Equal(t, float32(10), pos.Y)
	})

	t.Run("stats", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		scheduler.Register(&MovementSystem{})
		scheduler.Register(ecs.SystemFunc(func(*ecs.UpdateFrame) {}))

		scheduler.Once(1.0)
		scheduler.Once(1.0)

		stats := scheduler.GetStats()
		assert.Equal(t, 2, stats.SystemCount)
		assert.Equal(t, int64(4), stats.TotalExecutions)
		assert.Equal(t, "MovementSystem", stats.Systems[0].Name)
		assert.Equal(t, int64(2), stats.Systems[0].ExecutionCount)
		assert.LessOrEqual(t, stats.Systems[0].MinDuration, stats.Systems[0].MaxDuration)
	})
}
