package assets

import "fmt"

// Ref is a typed handle to an asset of type T held by a Manager. It only
// stores the asset's index, so it is cheap to copy into components. The
// zero Ref is invalid.
type Ref[T any] struct {
	index uint32
}

// Index returns the registry index of the asset, starting at 1.
func (r Ref[T]) Index() uint32 {
	return r.index
}

// Valid reports whether the ref was returned by Register.
func (r Ref[T]) Valid() bool {
	return r.index != 0
}

func (r Ref[T]) String() string {
	var zero T
	return fmt.Sprintf("Ref[%T](%d)", zero, r.index)
}
