package models

import (
	"fmt"
	"time"
)

// DefaultAlphabet is the glyph set markers are drawn from; letter keys a..z select by index.
const DefaultAlphabet = "🐜🦋🐪🐬🐘🐸🐐🐹🍧🎃🐨🐞🐭📔🐙🐧🐮🦏🐍🐯🐢🦀🐋🐌🐝🦉"

// SimulationConfig holds every tunable of the marker simulation.
type SimulationConfig struct {
	Width  float64
	Height float64

	// MinBound and MaxBound are the reflection margins, applied to both axes.
	MinBound float64
	MaxBound float64

	MaxAge       int
	TickInterval time.Duration

	GlyphSize int
	FontSize  float32

	MaxSpeed         float64
	AccelerateFactor float64
	DecelerateFactor float64

	Alphabet []rune
}

// DefaultSimulationConfig returns the stock 500x500 zoo.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Width:            500,
		Height:           500,
		MinBound:         10,
		MaxBound:         490,
		MaxAge:           8000,
		TickInterval:     100 * time.Millisecond,
		GlyphSize:        32,
		FontSize:         24,
		MaxSpeed:         5,
		AccelerateFactor: 1.3,
		DecelerateFactor: 0.7,
		Alphabet:         []rune(DefaultAlphabet),
	}
}

func (c SimulationConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: canvas size %gx%g", ErrInvalidConfig, c.Width, c.Height)
	case c.MinBound >= c.MaxBound:
		return fmt.Errorf("%w: bounds [%g, %g]", ErrInvalidConfig, c.MinBound, c.MaxBound)
	case c.MaxAge < 0:
		return fmt.Errorf("%w: max age %d", ErrInvalidConfig, c.MaxAge)
	case c.TickInterval <= 0:
		return fmt.Errorf("%w: tick interval %s", ErrInvalidConfig, c.TickInterval)
	case c.GlyphSize <= 0 || c.FontSize <= 0:
		return fmt.Errorf("%w: glyph size %d, font size %g", ErrInvalidConfig, c.GlyphSize, c.FontSize)
	case c.MaxSpeed < 0:
		return fmt.Errorf("%w: max speed %g", ErrInvalidConfig, c.MaxSpeed)
	case len(c.Alphabet) == 0:
		return fmt.Errorf("%w: empty alphabet", ErrInvalidConfig)
	}
	return nil
}
