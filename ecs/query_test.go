package ecs_test

import (
	"testing"

	"github.com/plus3/ooftn2d/ecs"
	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
	storage.Spawn(Position{X: 3, Y: 4}, Velocity{DX: 1.0, DY: 1.0})
	storage.Spawn(Position{X: 5, Y: 6}, Velocity{DX: 1.5, DY: 1.5}, Health{Current: 100, Max: 100})
	storage.Spawn(Position{X: 7, Y: 8})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)

	t.Run("execute builds cache", func(t *testing.T) {
		query.Execute()
		assert.Equal(t, 3, query.Len())
	})

	t.Run("panics without execute", func(t *testing.T) {
		freshQuery := ecs.NewQuery[struct{ *Position }](storage)
		assert.Panics(t, func() {
			for range freshQuery.Iter() {
			}
		})
	})

	t.Run("snapshot ignores spawns until re-execute", func(t *testing.T) {
		query.Execute()
		initial := query.Len()

		storage.Spawn(Position{X: 10, Y: 10}, Velocity{DX: 2.0, DY: 2.0})
		count := 0
		for range query.Iter() {
			count++
		}
		assert.Equal(t, initial, count)

		query.Execute()
		assert.Equal(t, initial+1, query.Len())
	})

	t.Run("iter values", func(t *testing.T) {
		query.Execute()

		count := 0
		for item := range query.Values() {
			assert.NotNil(t, item.Position)
			assert.NotNil(t, item.Velocity)
			count++
		}
		assert.Equal(t, 4, count)
	})

	t.Run("without filter", func(t *testing.T) {
		withoutHealth := ecs.NewQuery[struct {
			*Position
			Health *Health `ecs:"without"`
		}](storage)
		withoutHealth.Execute()
		assert.Equal(t, 4, withoutHealth.Len())
	})
}
