package graphics

// Transform places an entity. Layer orders draws: higher layers are drawn
// first.
//
// Mutating a Transform through its setters marks it dirty so the
// pre-renderer re-uploads its uniform. Code writing the exported fields
// directly must call MarkDirty.
type Transform struct {
	Position Vec2
	Scale    Vec2
	Rotation float32
	Layer    int32

	dirty bool
}

// NewTransform returns an unscaled, unrotated transform at (x, y).
func NewTransform(x, y float32, layer int32) Transform {
	return Transform{
		Position: Vec2{X: x, Y: y},
		Scale:    Vec2{X: 1, Y: 1},
		Layer:    layer,
	}
}

func (t *Transform) SetPosition(p Vec2) {
	t.Position = p
	t.dirty = true
}

func (t *Transform) Translate(d Vec2) {
	t.Position = t.Position.Add(d)
	t.dirty = true
}

func (t *Transform) SetScale(s Vec2) {
	t.Scale = s
	t.dirty = true
}

func (t *Transform) SetRotation(r float32) {
	t.Rotation = r
	t.dirty = true
}

// SetLayer changes the draw layer. The layer is not part of the uniform,
// so the transform stays clean.
func (t *Transform) SetLayer(layer int32) {
	t.Layer = layer
}

func (t *Transform) MarkDirty() {
	t.dirty = true
}

// Dirty reports whether the transform changed since ClearDirty.
func (t *Transform) Dirty() bool {
	return t.dirty
}

func (t *Transform) ClearDirty() {
	t.dirty = false
}

// Model returns the local-to-world matrix.
func (t Transform) Model() Affine {
	return TRS(t.Position, t.Rotation, t.Scale)
}
