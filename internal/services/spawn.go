package services

import (
	"fmt"
	"math/rand/v2"
	"time"

	"emoji-zoo/internal/models"
)

// Random is the randomness the spawner needs. *rand.Rand satisfies it.
type Random interface {
	IntN(n int) int
	Float64() float64
}

// NewRandom returns a time-seeded PCG source.
func NewRandom() Random {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SpawnService creates markers with random glyphs, positions and velocities.
type SpawnService struct {
	store  *models.MarkerStore
	config models.SimulationConfig
	rng    Random
}

func NewSpawnService(store *models.MarkerStore, config models.SimulationConfig, rng Random) *SpawnService {
	if rng == nil {
		rng = NewRandom()
	}
	return &SpawnService{store: store, config: config, rng: rng}
}

// SpawnAt adds a marker with a random glyph and velocity at pos.
func (s *SpawnService) SpawnAt(pos models.Vec) (*models.Marker, error) {
	glyph := s.config.Alphabet[s.rng.IntN(len(s.config.Alphabet))]
	return s.store.Insert(pos, s.RandomVelocity(), glyph)
}

// SpawnGlyph adds a marker showing alphabet[index] at a random position
// inside the bounds, with a random velocity.
func (s *SpawnService) SpawnGlyph(index int) (*models.Marker, error) {
	if index < 0 || index >= len(s.config.Alphabet) {
		return nil, fmt.Errorf("glyph index %d outside alphabet of %d", index, len(s.config.Alphabet))
	}
	pos := models.Vec{X: s.randomCoord(), Y: s.randomCoord()}
	return s.store.Insert(pos, s.RandomVelocity(), s.config.Alphabet[index])
}

// RandomVelocity draws each component uniformly from [-MaxSpeed, MaxSpeed).
func (s *SpawnService) RandomVelocity() models.Vec {
	return models.Vec{
		X: (s.rng.Float64() - 0.5) * 2 * s.config.MaxSpeed,
		Y: (s.rng.Float64() - 0.5) * 2 * s.config.MaxSpeed,
	}
}

// randomCoord picks a whole pixel in [MinBound, MaxBound).
func (s *SpawnService) randomCoord() float64 {
	lo := int(s.config.MinBound)
	span := int(s.config.MaxBound) - lo
	if span <= 0 {
		return float64(lo)
	}
	return float64(lo + s.rng.IntN(span))
}
