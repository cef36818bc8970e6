package ecs

import "errors"

var (
	// ErrEntityNotFound is returned when an operation targets an entity that
	// is not alive, usually because it was deleted after a command was queued.
	ErrEntityNotFound = errors.New("ecs: entity not found")

	// ErrComponentNotFound is returned when removing a component the entity
	// does not hold.
	ErrComponentNotFound = errors.New("ecs: component not found")
)
