package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar shows the marker count, run state and speed multiplier.
type StatusBar struct {
	container   *fyne.Container
	stateLabel  *widget.Label
	markerLabel *widget.Label
	speedLabel  *widget.Label
	hintLabel   *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.stateLabel = widget.NewLabel("Running")
	sb.markerLabel = widget.NewLabel("Markers: 0")
	sb.speedLabel = widget.NewLabel("Speed: x1.00")
	sb.hintLabel = widget.NewLabel("click or a-z: spawn   + -: speed   .: freeze   #: clear")
	sb.hintLabel.Importance = widget.LowImportance
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewVBox(
		container.NewHBox(
			sb.stateLabel,
			widget.NewSeparator(),
			sb.markerLabel,
			widget.NewSeparator(),
			sb.speedLabel,
		),
		sb.hintLabel,
	)
}

// SetFrozen switches the state label between Running and Frozen.
func (sb *StatusBar) SetFrozen(frozen bool) {
	if frozen {
		sb.stateLabel.SetText("Frozen")
	} else {
		sb.stateLabel.SetText("Running")
	}
}

func (sb *StatusBar) SetMarkerCount(n int) {
	sb.markerLabel.SetText(fmt.Sprintf("Markers: %d", n))
}

func (sb *StatusBar) SetSpeed(factor float64) {
	sb.speedLabel.SetText(fmt.Sprintf("Speed: x%.2f", factor))
}

func (sb *StatusBar) State() string {
	return sb.stateLabel.Text
}

func (sb *StatusBar) MarkerText() string {
	return sb.markerLabel.Text
}

func (sb *StatusBar) SpeedText() string {
	return sb.speedLabel.Text
}

// Reset resets the status bar to initial state
func (sb *StatusBar) Reset() {
	sb.SetFrozen(false)
	sb.SetMarkerCount(0)
	sb.SetSpeed(1)
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
