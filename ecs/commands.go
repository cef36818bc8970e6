package ecs

import (
	"log/slog"
	"reflect"
)

// Commands provides a buffer for deferred ECS operations.
// Systems queue structural changes here while they iterate the storage and
// the scheduler applies them once the system returns, so component columns
// are never modified under an active iterator.
type Commands struct {
	spawns  []spawnCommand
	deletes []Entity
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []deferCommand
}

// NewCommands creates an empty command buffer.
func NewCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	components []any
}

type addComponentCommand struct {
	entity     Entity
	components []any
}

type removeComponentCommand struct {
	entity   Entity
	compType reflect.Type
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Delete queues an entity deletion operation.
func (c *Commands) Delete(entity Entity) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity Entity, component any) {
	c.AddComponents(entity, component)
}

// AddComponents queues the addition of several components to one entity.
func (c *Commands) AddComponents(entity Entity, components ...any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:     entity,
		components: components,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity Entity, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies all queued commands to the provided storage in the order
// deletes, removals, additions, spawns, deferred functions, then resets
// the buffer. Additions and removals targeting entities that are no
// longer alive are dropped: the entity may have been deleted by another
// system since the command was queued.
func (c *Commands) Flush(storage *Storage) {
	log := Logger()

	for _, cmd := range c.deletes {
		storage.Delete(cmd)
	}

	for _, cmd := range c.removes {
		if err := storage.RemoveComponent(cmd.entity, cmd.compType); err != nil {
			log.Debug("dropped component removal", slog.Any("error", err))
		}
	}

	for _, cmd := range c.adds {
		if err := storage.AddComponents(cmd.entity, cmd.components...); err != nil {
			log.Debug("dropped component addition", slog.Any("error", err))
		}
	}

	for _, cmd := range c.spawns {
		storage.Spawn(cmd.components...)
	}

	for _, df := range c.defers {
		df.fn()
	}

	clear(c.spawns)
	clear(c.adds)
	clear(c.defers)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
