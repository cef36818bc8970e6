package engine_test

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/plus3/ooftn2d/assets"
	"github.com/plus3/ooftn2d/ecs"
	"github.com/plus3/ooftn2d/engine"
	"github.com/plus3/ooftn2d/graphics"
	"github.com/plus3/ooftn2d/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDemo(t *testing.T) (*engine.Pipeline, *engine.Recorder, []ecs.Entity, fstest.MapFS) {
	t.Helper()

	scene, err := engine.LoadScene("testdata/demo.yaml")
	require.NoError(t, err)

	fsys := fstest.MapFS{
		"textures/brick.png": &fstest.MapFile{ModTime: time.Unix(1000, 0)},
	}
	storage := ecs.NewStorage(engine.NewRegistry())
	manager := assets.NewManager(assets.FSFileReader{FS: fsys})

	entities, err := scene.Spawn(storage, manager)
	require.NoError(t, err)

	recorder := &engine.Recorder{}
	return engine.NewPipeline(storage, manager, recorder), recorder, entities, fsys
}

func TestSceneSpawn(t *testing.T) {
	pipeline, _, entities, _ := loadDemo(t)
	storage := pipeline.Storage()

	assert.Len(t, entities, 10)
	assert.Equal(t, 11, storage.EntityCount(), "entities plus camera")
	assert.True(t, render.HasCamera(storage))
	assert.Equal(t, 3, assets.Len[graphics.Material](pipeline.Manager()))
	assert.False(t, ecs.HasComponentOf[graphics.Material](storage, entities[0]), "resolved on the first frame")
}

func TestPipelineTick(t *testing.T) {
	pipeline, recorder, entities, fsys := loadDemo(t)
	storage := pipeline.Storage()

	stats := pipeline.Tick(1.0 / 60)
	assert.Equal(t, uint64(1), stats.Frame)

	// Resolution and UI defaults ran before the pre-renderer.
	for _, e := range entities {
		assert.True(t, ecs.HasComponentOf[graphics.Material](storage, e))
	}
	button := entities[9]
	assert.True(t, ecs.HasComponentOf[graphics.UiComponent](storage, button))
	assert.Equal(t, 2, ecs.ReadComponent[graphics.UiFocusable](storage, button).Rank)
	assert.True(t, ecs.HasComponentOf[graphics.Font](storage, entities[7]))

	assert.Equal(t, 1, stats.UpdatesByKind[render.UpdateTexture])
	assert.Equal(t, 10, stats.UpdatesByKind[render.UpdateTransform])
	assert.Equal(t, 10, stats.UpdatesByKind[render.UpdateVertexBuffer])
	assert.Equal(t, 10, stats.UpdatesByKind[render.UpdateIndexBuffer])
	assert.Equal(t, 31, stats.Updates)

	// The hidden rectangle is not drawn.
	assert.Equal(t, 9, stats.Draws)
	require.Len(t, recorder.Draws, 9)
	assert.Equal(t, int32(11), recorder.Draws[0].Layer)
	assert.Equal(t, int32(0), recorder.Draws[8].Layer)
	assert.Equal(t, "Tilemap", recorder.Draws[8].Kind)
	for i := 1; i < len(recorder.Draws); i++ {
		assert.GreaterOrEqual(t, recorder.Draws[i-1].Layer, recorder.Draws[i].Layer)
	}

	// Steady state.
	stats = pipeline.Tick(1.0 / 60)
	assert.Equal(t, 0, stats.Updates)
	assert.Equal(t, 9, stats.Draws)

	// Touching the texture reloads it once.
	fsys["textures/brick.png"].ModTime = time.Unix(2000, 0)
	stats = pipeline.Tick(1.0 / 60)
	assert.Equal(t, 1, stats.Updates)
	assert.Equal(t, render.UpdateTexture, recorder.Updates[0].Kind)
	assert.Equal(t, 27, recorder.TotalDraws)
}

type pruningBackend struct {
	engine.Recorder
	kept map[ecs.Entity]bool
}

func (b *pruningBackend) Apply(updates []render.RenderingUpdate) {
	b.Recorder.Apply(updates)
	for _, u := range updates {
		if u.Kind != render.UpdateTexture {
			b.kept[u.Entity] = true
		}
	}
}

func (b *pruningBackend) Prune(alive func(ecs.Entity) bool) int {
	n := 0
	for e := range b.kept {
		if !alive(e) {
			delete(b.kept, e)
			n++
		}
	}
	return n
}

func TestPipelinePrunesBackend(t *testing.T) {
	scene, err := engine.LoadScene("testdata/demo.yaml")
	require.NoError(t, err)
	storage := ecs.NewStorage(engine.NewRegistry())
	manager := assets.NewManager(assets.FSFileReader{FS: fstest.MapFS{
		"textures/brick.png": &fstest.MapFile{ModTime: time.Unix(1000, 0)},
	}})
	entities, err := scene.Spawn(storage, manager)
	require.NoError(t, err)

	backend := &pruningBackend{kept: make(map[ecs.Entity]bool)}
	pipeline := engine.NewPipeline(storage, manager, backend)
	pipeline.Tick(1.0 / 60)
	assert.Len(t, backend.kept, 10)

	require.True(t, storage.Delete(entities[0]))
	require.True(t, storage.Delete(entities[1]))
	pipeline.Tick(1.0 / 60)
	assert.Len(t, backend.kept, 8)
	assert.NotContains(t, backend.kept, entities[0])
}

func TestSceneErrors(t *testing.T) {
	storage := ecs.NewStorage(engine.NewRegistry())
	manager := assets.NewManager(nil)

	scene, err := engine.ParseScene([]byte("entities:\n  - {kind: blob}\n"))
	require.NoError(t, err)
	_, err = scene.Spawn(storage, manager)
	assert.ErrorIs(t, err, engine.ErrUnknownKind)

	scene, err = engine.ParseScene([]byte("entities:\n  - {kind: sprite, material: nope}\n"))
	require.NoError(t, err)
	_, err = scene.Spawn(storage, manager)
	assert.ErrorContains(t, err, `unknown material "nope"`)

	scene, err = engine.ParseScene([]byte("entities:\n  - {kind: line, points: [[0, 0]]}\n"))
	require.NoError(t, err)
	_, err = scene.Spawn(storage, manager)
	assert.ErrorContains(t, err, "line needs 2 points")

	assert.Equal(t, 0, storage.EntityCount(), "failed scenes spawn nothing")

	_, err = engine.ParseScene([]byte("entities: {"))
	assert.Error(t, err)
}

func tilemapScene(tiles int) *engine.Scene {
	filled := make([]uint16, tiles)
	for i := range filled {
		filled[i] = 1
	}
	return &engine.Scene{Entities: []engine.SceneEntity{{
		Kind:    "tilemap",
		Width:   8,
		Height:  8,
		Columns: 256,
		Rows:    (tiles + 255) / 256,
		Atlas:   [2]int{1, 1},
		Tiles:   filled,
	}}}
}

func TestSceneTilemapLimit(t *testing.T) {
	storage := ecs.NewStorage(engine.NewRegistry())
	manager := assets.NewManager(nil)

	entities, err := tilemapScene(graphics.MaxTiles).Spawn(storage, manager)
	require.NoError(t, err)
	require.Len(t, entities, 1)

	_, err = tilemapScene(graphics.MaxTiles+1).Spawn(storage, manager)
	assert.ErrorIs(t, err, graphics.ErrTooManyVertices)
	assert.ErrorContains(t, err, "scene entity 0")
	assert.Equal(t, 1, storage.EntityCount())
}

func TestSceneUnregisteredComponent(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[graphics.Transform](registry)
	storage := ecs.NewStorage(registry)

	scene := &engine.Scene{Entities: []engine.SceneEntity{{Kind: "square", Width: 4}}}
	_, err := scene.Spawn(storage, assets.NewManager(nil))
	assert.ErrorIs(t, err, engine.ErrUnregisteredComponent)
	assert.ErrorContains(t, err, "graphics.Square")
	assert.Zero(t, storage.EntityCount())
}
