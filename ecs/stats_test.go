package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageStats(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[int](registry)
	RegisterComponent[string](registry)
	RegisterComponent[float64](registry)

	storage := NewStorage(registry)

	stats := storage.CollectStats()
	assert.Equal(t, 0, stats.ArchetypeCount)
	assert.Equal(t, 0, stats.TotalEntityCount)
	assert.Equal(t, 0, stats.SingletonCount)

	storage.Spawn(42, "hello")
	storage.Spawn(100, "world")
	storage.Spawn(200.0, "test")

	NewSingleton[float64](storage, 3.14)
	NewSingleton[string](storage, "singleton")

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 2, stats.SingletonCount)
	assert.Equal(t, []string{"float64", "string"}, stats.SingletonTypes)

	if assert.Len(t, stats.ArchetypeBreakdown, 2) {
		assert.Equal(t, 2, stats.ArchetypeBreakdown[0].EntityCount)
		assert.Equal(t, []string{"int", "string"}, stats.ArchetypeBreakdown[0].ComponentTypes)
		assert.Equal(t, 1, stats.ArchetypeBreakdown[1].EntityCount)
	}
}

func TestEntitySlotGenerationWraps(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[int](registry)
	storage := NewStorage(registry)

	e := storage.Spawn(1)
	storage.slots[e.Index()].generation = ^uint32(0)
	storage.Delete(NewEntity(e.Index(), ^uint32(0)))

	assert.Equal(t, uint32(1), storage.slots[e.Index()].generation, "generation never wraps to zero")
}
