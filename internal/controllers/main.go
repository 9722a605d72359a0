package controllers

import (
	"emoji-zoo/internal/logger"
	"emoji-zoo/internal/models"
	"emoji-zoo/internal/services"
)

// StatusView is the part of the view the controller keeps up to date.
type StatusView interface {
	SetMarkerCount(n int)
	SetFrozen(frozen bool)
	SetSpeed(factor float64)
}

// MainController turns pointer, keyboard and timer events into operations on
// the marker store and simulation. Every handler runs on the UI goroutine.
type MainController struct {
	store      *models.MarkerStore
	simulation *services.SimulationService
	spawner    *services.SpawnService
	config     models.SimulationConfig
	logger     logger.Logger

	view  StatusView
	speed float64
}

func NewMainController(
	store *models.MarkerStore,
	simulation *services.SimulationService,
	spawner *services.SpawnService,
	log logger.Logger,
) *MainController {
	return &MainController{
		store:      store,
		simulation: simulation,
		spawner:    spawner,
		config:     simulation.Config(),
		logger:     log,
		speed:      1,
	}
}

// SetView attaches the status display and pushes the current state to it.
func (mc *MainController) SetView(view StatusView) {
	mc.view = view
	mc.refreshStatus()
}

// HandleTap spawns a random marker where the canvas was clicked.
func (mc *MainController) HandleTap(pos models.Vec) {
	m, err := mc.spawner.SpawnAt(pos)
	if err != nil {
		mc.logger.Warning("Marker spawn failed", map[string]interface{}{
			"x":     pos.X,
			"y":     pos.Y,
			"error": err.Error(),
		})
		return
	}

	mc.logger.Debug("Marker spawned", map[string]interface{}{
		"id":    m.ID,
		"glyph": string(m.Glyph),
		"x":     pos.X,
		"y":     pos.Y,
	})
	mc.refreshStatus()
}

// HandleKey executes the command bound to r and reports which one ran.
func (mc *MainController) HandleKey(r rune) Command {
	cmd, index := ParseKey(r, len(mc.config.Alphabet))
	mc.Execute(cmd, index)
	return cmd
}

// Execute runs cmd. index is only used by CommandSpawn.
func (mc *MainController) Execute(cmd Command, index int) {
	switch cmd {
	case CommandNone:
		return
	case CommandAccelerate:
		mc.scale(mc.config.AccelerateFactor)
	case CommandDecelerate:
		mc.scale(mc.config.DecelerateFactor)
	case CommandToggleFreeze:
		mc.simulation.ToggleFreeze()
	case CommandClear:
		n := mc.store.Clear()
		mc.speed = 1
		mc.logger.Info("Markers cleared", map[string]interface{}{"removed": n})
	case CommandSpawn:
		if _, err := mc.spawner.SpawnGlyph(index); err != nil {
			mc.logger.Warning("Marker spawn failed", map[string]interface{}{
				"index": index,
				"error": err.Error(),
			})
			return
		}
	}
	mc.refreshStatus()
}

// Tick advances the simulation by one step.
func (mc *MainController) Tick() {
	res := mc.simulation.Step()
	if res.Frozen {
		return
	}
	if res.Expired > 0 {
		mc.refreshStatus()
	}
}

// Shutdown releases every marker. It must run on the UI goroutine.
func (mc *MainController) Shutdown() {
	n := mc.store.Clear()
	mc.logger.Info("Controller shut down", map[string]interface{}{"released": n})
}

// Speed is the product of all speed changes applied since the last clear.
func (mc *MainController) Speed() float64 {
	return mc.speed
}

func (mc *MainController) scale(factor float64) {
	mc.store.ScaleVelocities(factor)
	mc.speed *= factor
	mc.logger.Debug("Velocities scaled", map[string]interface{}{
		"factor":  factor,
		"speed":   mc.speed,
		"markers": mc.store.Len(),
	})
}

func (mc *MainController) refreshStatus() {
	if mc.view == nil {
		return
	}
	mc.view.SetMarkerCount(mc.store.Len())
	mc.view.SetFrozen(mc.simulation.Frozen())
	mc.view.SetSpeed(mc.speed)
}
