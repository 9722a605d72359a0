package views

import (
	"emoji-zoo/internal/models"
	"emoji-zoo/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// MainView is the single zoo window: the marker canvas above a status bar.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	zooCanvas     *components.ZooCanvas
	statusBar     *components.StatusBar

	keyHandler func(rune)
}

// NewMainView builds the window content for a canvas of the configured size.
func NewMainView(window fyne.Window, cfg models.SimulationConfig) *MainView {
	view := &MainView{
		window:    window,
		zooCanvas: components.NewZooCanvas(float32(cfg.Width), float32(cfg.Height), cfg.GlyphSize),
		statusBar: components.NewStatusBar(),
	}

	view.buildLayout()
	view.setupEventHandlers()

	return view
}

func (mv *MainView) buildLayout() {
	mv.mainContainer = container.NewBorder(
		nil,
		mv.statusBar.GetContainer(),
		nil,
		nil,
		container.NewCenter(mv.zooCanvas),
	)

	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) setupEventHandlers() {
	mv.window.Canvas().SetOnTypedRune(func(r rune) {
		if mv.keyHandler != nil {
			mv.keyHandler(r)
		}
	})
}

// SetKeyHandler registers the handler for typed characters.
func (mv *MainView) SetKeyHandler(handler func(rune)) {
	mv.keyHandler = handler
}

// SetTapHandler registers the handler for clicks on the canvas.
func (mv *MainView) SetTapHandler(handler func(models.Vec)) {
	mv.zooCanvas.SetOnTapped(handler)
}

// Surface is the canvas markers are drawn on.
func (mv *MainView) Surface() *components.ZooCanvas {
	return mv.zooCanvas
}

func (mv *MainView) SetMarkerCount(n int) {
	mv.statusBar.SetMarkerCount(n)
}

func (mv *MainView) SetFrozen(frozen bool) {
	mv.statusBar.SetFrozen(frozen)
}

func (mv *MainView) SetSpeed(factor float64) {
	mv.statusBar.SetSpeed(factor)
}

func (mv *MainView) StatusBar() *components.StatusBar {
	return mv.statusBar
}
