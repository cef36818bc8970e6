package assets_test

import (
	"testing"

	"github.com/plus3/ooftn2d/assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type texture struct {
	Path string
}

type font struct {
	Family string
	Size   float32
}

func TestRegisterAndGet(t *testing.T) {
	m := assets.NewManager(nil)

	a := assets.Register(m, texture{Path: "a.png"})
	b := assets.Register(m, texture{Path: "b.png"})
	f := assets.Register(m, font{Family: "mono", Size: 12})

	assert.True(t, a.Valid())
	assert.NotEqual(t, a.Index(), b.Index())
	assert.Equal(t, uint32(1), f.Index(), "registries are per type")

	got, ok := assets.Get(m, b)
	require.True(t, ok)
	assert.Equal(t, "b.png", got.Path)

	assert.Equal(t, "mono", assets.MustGet(m, f).Family)
	assert.Equal(t, 2, assets.Len[texture](m))
	assert.Equal(t, 0, assets.Len[int](m))
}

func TestGetInvalid(t *testing.T) {
	m := assets.NewManager(nil)
	assets.Register(m, texture{Path: "a.png"})

	_, ok := assets.Get(m, assets.Ref[texture]{})
	assert.False(t, ok)

	_, ok = assets.Get(m, assets.Ref[font]{})
	assert.False(t, ok)

	assert.PanicsWithValue(t, "assets: invalid reference Ref[assets_test.font](0)", func() {
		assets.MustGet(m, assets.Ref[font]{})
	})
}

func TestReplace(t *testing.T) {
	m := assets.NewManager(nil)
	ref := assets.Register(m, texture{Path: "a.png"})

	assert.True(t, assets.Replace(m, ref, texture{Path: "c.png"}))
	assert.Equal(t, "c.png", assets.MustGet(m, ref).Path)
	assert.False(t, assets.Replace(m, assets.Ref[texture]{}, texture{}))
}

func TestNilReaderIsNop(t *testing.T) {
	m := assets.NewManager(nil)
	_, err := m.FileReader().ModTime("a.png")
	assert.ErrorIs(t, err, assets.ErrNotApplicable)
}
