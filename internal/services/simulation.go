package services

import (
	"image"
	"time"

	"emoji-zoo/internal/logger"
	"emoji-zoo/internal/models"
	"emoji-zoo/internal/render"
)

// StepResult summarises one Step call.
type StepResult struct {
	Advanced     int
	Expired      int
	FadeFailures int
	Frozen       bool
}

// SimulationStats accumulates totals since the service was created.
type SimulationStats struct {
	Ticks        uint64
	Expired      uint64
	FadeFailures uint64
	LastStep     time.Duration
}

// SimulationService advances the marker world one fixed tick at a time.
// Like the store it runs on the UI goroutine only.
type SimulationService struct {
	store  *models.MarkerStore
	config models.SimulationConfig
	logger logger.Logger

	frozen bool
	fade   func(dst, src *image.NRGBA, o float64) error
	stats  SimulationStats
}

// NewSimulationService creates a running (unfrozen) simulation over store.
func NewSimulationService(store *models.MarkerStore, config models.SimulationConfig, log logger.Logger) *SimulationService {
	return &SimulationService{
		store:  store,
		config: config,
		logger: log,
		fade:   render.ApplyOpacityInto,
	}
}

// Opacity is the linear fade factor for a marker of the given age: 1 at birth,
// 0 from maxAge on.
func Opacity(age, maxAge int) float64 {
	if maxAge <= 0 {
		return 0
	}
	ratio := float64(age) / float64(maxAge)
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}
	return 1 - ratio
}

// Step runs one tick over every marker in insertion order. It does nothing
// while the simulation is frozen.
func (s *SimulationService) Step() StepResult {
	if s.frozen {
		return StepResult{Frozen: true}
	}

	start := time.Now()
	surface := s.store.Surface()
	var result StepResult
	var expired []*models.Marker

	for _, m := range s.store.Markers() {
		m.Position = m.Position.Add(m.Velocity)

		// Reflect after crossing: the marker may sit outside the bounds for
		// this tick and is pulled back by the next integration.
		if m.Position.X < s.config.MinBound || m.Position.X > s.config.MaxBound {
			m.Velocity.X = -m.Velocity.X
		}
		if m.Position.Y < s.config.MinBound || m.Position.Y > s.config.MaxBound {
			m.Velocity.Y = -m.Velocity.Y
		}

		m.Age++

		if err := s.fade(m.Frame, m.Image, Opacity(m.Age, s.config.MaxAge)); err != nil {
			result.FadeFailures++
			s.logger.Warning("Fade update failed, keeping previous frame", map[string]interface{}{
				"marker": m.ID,
				"age":    m.Age,
				"error":  err.Error(),
			})
		} else if m.Object != nil {
			surface.UpdateImage(m.Object, m.Frame)
		}

		if m.Object != nil {
			surface.UpdatePosition(m.Object, m.Position)
		}

		if m.Age > s.config.MaxAge {
			expired = append(expired, m)
		}
		result.Advanced++
	}

	result.Expired = s.store.Remove(expired...)

	s.stats.Ticks++
	s.stats.Expired += uint64(result.Expired)
	s.stats.FadeFailures += uint64(result.FadeFailures)
	s.stats.LastStep = time.Since(start)

	if result.Expired > 0 {
		s.logger.Debug("Markers expired", map[string]interface{}{
			"expired":   result.Expired,
			"remaining": s.store.Len(),
		})
	}
	return result
}

func (s *SimulationService) Frozen() bool {
	return s.frozen
}

// ToggleFreeze flips the frozen flag and returns the new value.
func (s *SimulationService) ToggleFreeze() bool {
	s.frozen = !s.frozen
	s.logger.Info("Freeze toggled", map[string]interface{}{
		"frozen":  s.frozen,
		"markers": s.store.Len(),
	})
	return s.frozen
}

// Config returns the configuration the simulation runs with.
func (s *SimulationService) Config() models.SimulationConfig {
	return s.config
}

// GetStats returns the accumulated simulation statistics.
func (s *SimulationService) GetStats() SimulationStats {
	return s.stats
}
