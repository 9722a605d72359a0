package services

import (
	"testing"

	"emoji-zoo/internal/fakes"
	"emoji-zoo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRandom struct {
	ints   []int
	floats []float64
	nArgs  []int
}

func (r *stubRandom) IntN(n int) int {
	r.nArgs = append(r.nArgs, n)
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v
}

func (r *stubRandom) Float64() float64 {
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func newSpawner(t *testing.T, rng Random) (*SpawnService, *models.MarkerStore, *fakes.Rasterizer) {
	t.Helper()
	raster := fakes.NewRasterizer(4)
	store := models.NewMarkerStore(fakes.NewSurface(), raster)
	return NewSpawnService(store, models.DefaultSimulationConfig(), rng), store, raster
}

func TestSpawnAt_UsesClickPositionAndRandomGlyph(t *testing.T) {
	rng := &stubRandom{ints: []int{14}, floats: []float64{0, 0.75}}
	spawner, store, _ := newSpawner(t, rng)

	m, err := spawner.SpawnAt(models.Vec{X: 42, Y: 17})
	require.NoError(t, err)

	assert.Equal(t, models.Vec{X: 42, Y: 17}, m.Position)
	assert.Equal(t, '🐙', m.Glyph)
	assert.Equal(t, models.Vec{X: -5, Y: 2.5}, m.Velocity)
	assert.Equal(t, []int{26}, rng.nArgs)
	assert.Equal(t, 1, store.Len())
}

func TestSpawnGlyph_RandomPositionInsideBounds(t *testing.T) {
	rng := &stubRandom{ints: []int{0, 479}, floats: []float64{0.5, 0.5}}
	spawner, _, _ := newSpawner(t, rng)

	m, err := spawner.SpawnGlyph(25)
	require.NoError(t, err)

	assert.Equal(t, '🦉', m.Glyph)
	assert.Equal(t, models.Vec{X: 10, Y: 489}, m.Position)
	assert.Equal(t, models.Vec{}, m.Velocity)
	assert.Equal(t, []int{480, 480}, rng.nArgs)
}

func TestSpawnGlyph_OutOfRange(t *testing.T) {
	spawner, store, _ := newSpawner(t, &stubRandom{})

	_, err := spawner.SpawnGlyph(26)
	assert.Error(t, err)
	_, err = spawner.SpawnGlyph(-1)
	assert.Error(t, err)
	assert.Zero(t, store.Len())
}

func TestSpawnAt_RenderErrorPropagates(t *testing.T) {
	rng := &stubRandom{ints: []int{0}, floats: []float64{0.1, 0.2}}
	spawner, store, raster := newSpawner(t, rng)
	raster.Missing['🐜'] = true

	_, err := spawner.SpawnAt(models.Vec{})
	assert.ErrorIs(t, err, models.ErrRender)
	assert.Zero(t, store.Len())
}

func TestRandomVelocity_Range(t *testing.T) {
	spawner, _, _ := newSpawner(t, NewRandom())
	for i := 0; i < 1000; i++ {
		v := spawner.RandomVelocity()
		assert.GreaterOrEqual(t, v.X, -5.0)
		assert.Less(t, v.X, 5.0)
		assert.GreaterOrEqual(t, v.Y, -5.0)
		assert.Less(t, v.Y, 5.0)
	}
}
