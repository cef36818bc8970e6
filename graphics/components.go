package graphics

// Material describes how an entity is shaded. Entities normally receive it
// from an assets.Ref[Material] through the material resolver system.
// TexturePath is empty for untextured, color-only materials.
type Material struct {
	Color       Color
	TexturePath string
}

// Textured reports whether the material samples a texture.
func (m Material) Textured() bool {
	return m.TexturePath != ""
}

// Font is a font asset referenced by text components.
type Font struct {
	Family string
	Size   float32
	Path   string
}

// Camera defines the view of world-space entities. The pipeline renders
// only while at least one entity holds a Camera.
type Camera struct {
	Position Vec2
	Zoom     float32
}

// View returns the transform applied to world-space entities: translate by
// the negated camera position, then zoom. A zero Zoom counts as 1.
func (c Camera) View() Affine {
	zoom := c.Zoom
	if zoom == 0 {
		zoom = 1
	}
	return Affine{zoom, 0, 0, zoom, -c.Position.X * zoom, -c.Position.Y * zoom}
}

// Hide keeps an entity out of the draw list. Its GPU state is still kept
// current, so unhiding is free.
type Hide struct{}
