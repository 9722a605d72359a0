package controllers

import (
	"testing"

	"emoji-zoo/internal/fakes"
	"emoji-zoo/internal/logger"
	"emoji-zoo/internal/models"
	"emoji-zoo/internal/services"
	"emoji-zoo/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRandom struct {
	i int
	f float64
}

func (r fixedRandom) IntN(n int) int {
	return r.i % n
}

func (r fixedRandom) Float64() float64 {
	return r.f
}

type statusRecorder struct {
	count  int
	frozen bool
	speed  float64
	calls  int
}

func (s *statusRecorder) SetMarkerCount(n int)    { s.count = n; s.calls++ }
func (s *statusRecorder) SetFrozen(frozen bool)   { s.frozen = frozen }
func (s *statusRecorder) SetSpeed(factor float64) { s.speed = factor }

type fixture struct {
	controller *MainController
	store      *models.MarkerStore
	simulation *services.SimulationService
	surface    *fakes.Surface
	raster     *fakes.Rasterizer
	status     *statusRecorder
}

func newFixture(t *testing.T, maxAge int) *fixture {
	t.Helper()
	cfg := models.DefaultSimulationConfig()
	cfg.MaxAge = maxAge

	surface := fakes.NewSurface()
	raster := fakes.NewRasterizer(4)
	store := models.NewMarkerStore(surface, raster)
	sim := services.NewSimulationService(store, cfg, logger.NewNop())
	spawner := services.NewSpawnService(store, cfg, fixedRandom{i: 3, f: 0.75})

	mc := NewMainController(store, sim, spawner, logger.NewNop())
	status := &statusRecorder{}
	mc.SetView(status)

	return &fixture{controller: mc, store: store, simulation: sim, surface: surface, raster: raster, status: status}
}

func TestHandleTap_SpawnsAtClick(t *testing.T) {
	f := newFixture(t, 100)

	f.controller.HandleTap(models.Vec{X: 30, Y: 40})

	require.Equal(t, 1, f.store.Len())
	m := f.store.Markers()[0]
	assert.Equal(t, models.Vec{X: 30, Y: 40}, m.Position)
	assert.Equal(t, '🐬', m.Glyph)
	assert.Equal(t, models.Vec{X: 2.5, Y: 2.5}, m.Velocity)
	assert.Equal(t, 1, f.status.count)
}

func TestHandleTap_RenderFailureIsDropped(t *testing.T) {
	f := newFixture(t, 100)
	f.raster.Missing['🐬'] = true

	f.controller.HandleTap(models.Vec{X: 30, Y: 40})
	assert.Zero(t, f.store.Len())
	assert.Empty(t, f.surface.Objects)
}

func TestHandleKey_Letters(t *testing.T) {
	f := newFixture(t, 100)

	assert.Equal(t, CommandSpawn, f.controller.HandleKey('b'))
	assert.Equal(t, CommandSpawn, f.controller.HandleKey('B'))

	markers := f.store.Markers()
	require.Len(t, markers, 2)
	for _, m := range markers {
		assert.Equal(t, '🦋', m.Glyph)
		assert.Equal(t, models.Vec{X: 13, Y: 13}, m.Position)
	}
	assert.Equal(t, 2, f.status.count)
}

func TestHandleKey_SpeedCommands(t *testing.T) {
	f := newFixture(t, 100)
	_, err := f.store.Insert(models.Vec{X: 100, Y: 100}, models.Vec{X: 10, Y: -20}, 'a')
	require.NoError(t, err)

	f.controller.HandleKey('+')
	v := f.store.Markers()[0].Velocity
	assert.InDelta(t, 13, v.X, 1e-9)
	assert.InDelta(t, -26, v.Y, 1e-9)
	assert.InDelta(t, 1.3, f.status.speed, 1e-9)

	f.controller.HandleKey('-')
	v = f.store.Markers()[0].Velocity
	assert.InDelta(t, 9.1, v.X, 1e-9)
	assert.InDelta(t, -18.2, v.Y, 1e-9)
	assert.InDelta(t, 0.91, f.controller.Speed(), 1e-9)
}

func TestHandleKey_FreezeAndClear(t *testing.T) {
	f := newFixture(t, 100)
	f.controller.HandleTap(models.Vec{X: 100, Y: 100})
	f.controller.HandleTap(models.Vec{X: 200, Y: 200})

	f.controller.HandleKey('.')
	assert.True(t, f.simulation.Frozen())
	assert.True(t, f.status.frozen)

	f.controller.Tick()
	assert.Zero(t, f.store.Markers()[0].Age)

	f.controller.HandleKey('.')
	assert.False(t, f.simulation.Frozen())
	f.controller.Tick()
	assert.Equal(t, 1, f.store.Markers()[0].Age)

	f.controller.HandleKey('+')
	f.controller.HandleKey('#')
	assert.Zero(t, f.store.Len())
	assert.Zero(t, f.surface.Live())
	assert.Zero(t, f.status.count)
	assert.Equal(t, 1.0, f.status.speed)
}

func TestHandleKey_IgnoredInput(t *testing.T) {
	f := newFixture(t, 100)
	calls := f.status.calls

	for _, r := range []rune{0, '1', '?', ' ', '\n'} {
		assert.Equal(t, CommandNone, f.controller.HandleKey(r))
	}
	assert.Zero(t, f.store.Len())
	assert.Equal(t, calls, f.status.calls)
}

func TestTick_RefreshesCountOnExpiry(t *testing.T) {
	f := newFixture(t, 1)
	f.controller.HandleTap(models.Vec{X: 100, Y: 100})
	require.Equal(t, 1, f.status.count)

	f.controller.Tick()
	assert.Equal(t, 1, f.status.count)
	f.controller.Tick()
	assert.Zero(t, f.status.count)
}

func TestShutdown_ReleasesMarkers(t *testing.T) {
	f := newFixture(t, 100)
	f.controller.HandleTap(models.Vec{X: 100, Y: 100})
	f.controller.HandleKey('a')

	f.controller.Shutdown()
	assert.Zero(t, f.store.Len())
	assert.Zero(t, f.surface.Live())
}

func TestMainView_KeyboardAndTapDriveController(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	cfg := models.DefaultSimulationConfig()
	cfg.MaxAge = 1
	w := test.NewWindow(nil)
	defer w.Close()
	view := views.NewMainView(w, cfg)

	store := models.NewMarkerStore(view.Surface(), fakes.NewRasterizer(cfg.GlyphSize))
	sim := services.NewSimulationService(store, cfg, logger.NewNop())
	spawner := services.NewSpawnService(store, cfg, fixedRandom{i: 0, f: 0.5})
	mc := NewMainController(store, sim, spawner, logger.NewNop())
	mc.SetView(view)
	view.SetKeyHandler(func(r rune) { mc.HandleKey(r) })
	view.SetTapHandler(mc.HandleTap)

	test.TypeOnCanvas(w.Canvas(), "ab")
	test.TapAt(view.Surface(), fyne.NewPos(50, 50))

	assert.Equal(t, 3, store.Len())
	assert.Equal(t, 3, view.Surface().ObjectCount())
	assert.Equal(t, "Markers: 3", view.StatusBar().MarkerText())

	mc.Tick()
	mc.Tick()
	assert.Zero(t, store.Len())
	assert.Zero(t, view.Surface().ObjectCount())
	assert.Equal(t, "Markers: 0", view.StatusBar().MarkerText())
}
