package ebitenrender

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/plus3/ooftn2d/ecs"
	"github.com/plus3/ooftn2d/graphics"
	"github.com/plus3/ooftn2d/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func encoded(t *testing.T, encode func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeTexture(t *testing.T) {
	fsys := fstest.MapFS{
		"a.png": {Data: encoded(t, func(b *bytes.Buffer, i image.Image) error { return png.Encode(b, i) })},
		"b.bmp": {Data: encoded(t, func(b *bytes.Buffer, i image.Image) error { return bmp.Encode(b, i) })},
		"c.png": {Data: []byte("not an image")},
	}

	img, format, err := decodeTexture(fsys, "a.png")
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())

	img, format, err = decodeTexture(fsys, "b.bmp")
	require.NoError(t, err)
	assert.Equal(t, "bmp", format)
	assert.Equal(t, 4, img.Bounds().Dx())

	_, _, err = decodeTexture(fsys, "c.png")
	assert.ErrorContains(t, err, "decode texture c.png")

	_, _, err = decodeTexture(fsys, "missing.png")
	assert.ErrorContains(t, err, "open texture missing.png")
}

func TestApplyKeepsLatestBuffers(t *testing.T) {
	b := New(fstest.MapFS{}, graphics.Black)
	e := ecs.NewEntity(3, 1)

	uniform := graphics.TRS(graphics.Vec2{X: 10, Y: 20}, 0, graphics.Vec2{X: 1, Y: 1})
	verts := graphics.Square{Size: 2}.Vertices(graphics.Material{Color: graphics.White})
	b.Apply([]render.RenderingUpdate{
		{Kind: render.UpdateTransform, Entity: e, Uniform: uniform},
		{Kind: render.UpdateVertexBuffer, Entity: e, Vertices: verts},
		{Kind: render.UpdateIndexBuffer, Entity: e, Indices: []uint16{0, 1, 2}},
	})

	m := b.meshes[e]
	require.NotNil(t, m)
	assert.Equal(t, uniform, m.uniform)
	assert.Equal(t, verts, m.vertices)
	assert.Equal(t, []uint16{0, 1, 2}, m.indices)

	b.Apply([]render.RenderingUpdate{{Kind: render.UpdateTransform, Entity: e, Uniform: graphics.Identity}})
	assert.Equal(t, graphics.Identity, b.meshes[e].uniform)
	assert.Equal(t, verts, b.meshes[e].vertices)

	textures, meshes := b.Stats()
	assert.Zero(t, textures)
	assert.Equal(t, 1, meshes)
}

func TestPruneDropsDeadMeshes(t *testing.T) {
	b := New(fstest.MapFS{}, graphics.Black)
	live, dead := ecs.NewEntity(1, 1), ecs.NewEntity(2, 1)
	b.Apply([]render.RenderingUpdate{
		{Kind: render.UpdateTransform, Entity: live, Uniform: graphics.Identity},
		{Kind: render.UpdateTransform, Entity: dead, Uniform: graphics.Identity},
	})

	removed := b.Prune(func(e ecs.Entity) bool { return e == live })
	assert.Equal(t, 1, removed)
	assert.Contains(t, b.meshes, live)
	assert.NotContains(t, b.meshes, dead)

	assert.Zero(t, b.Prune(func(ecs.Entity) bool { return true }))
	_, meshes := b.Stats()
	assert.Equal(t, 1, meshes)
}

func TestApplyMissingTexture(t *testing.T) {
	b := New(fstest.MapFS{}, graphics.Black)
	b.Apply([]render.RenderingUpdate{{Kind: render.UpdateTexture, TexturePath: "gone.png"}})

	_, ok := b.Texture("gone.png")
	assert.False(t, ok)
}

func TestTriangleVertices(t *testing.T) {
	verts := []graphics.Vertex{
		{Position: graphics.Vec2{X: 0, Y: 0}, UV: graphics.Vec2{X: 0, Y: 0}, Color: graphics.White},
		{Position: graphics.Vec2{X: 2, Y: 1}, UV: graphics.Vec2{X: 1, Y: 0.5}, Color: graphics.White},
	}
	uniform := graphics.Affine{1, 0, 0, 1, 5, 5}

	out := triangleVertices(nil, uniform, verts, 16, 8)
	require.Len(t, out, 2)
	assert.Equal(t, float32(5), out[0].DstX)
	assert.Equal(t, float32(7), out[1].DstX)
	assert.Equal(t, float32(6), out[1].DstY)
	assert.Equal(t, float32(16), out[1].SrcX)
	assert.Equal(t, float32(4), out[1].SrcY)
	assert.Equal(t, float32(1), out[1].ColorA)
}

func TestLineQuads(t *testing.T) {
	verts := []graphics.Vertex{
		{Position: graphics.Vec2{X: 0, Y: 0}, Color: graphics.White},
		{Position: graphics.Vec2{X: 10, Y: 0}, Color: graphics.White},
		{Position: graphics.Vec2{X: 10, Y: 0}, Color: graphics.White},
	}

	v, i := lineQuads(nil, nil, graphics.Identity, verts, []uint16{0, 1, 1, 2}, 2)
	require.Len(t, v, 4, "degenerate segment is skipped")
	assert.Equal(t, []uint16{0, 1, 2, 2, 3, 0}, i)

	assert.InDelta(t, 0, v[0].DstX, 1e-6)
	assert.InDelta(t, 1, v[0].DstY, 1e-6)
	assert.InDelta(t, 10, v[2].DstX, 1e-6)
	assert.InDelta(t, -1, v[2].DstY, 1e-6)
}
