package models

import (
	"errors"
	"image"
)

var (
	// ErrRender reports a failed glyph or bitmap operation.
	ErrRender = errors.New("render failed")
	// ErrInvalidConfig reports an unusable SimulationConfig.
	ErrInvalidConfig = errors.New("invalid simulation configuration")
)

// Vec is a point or displacement in canvas pixel space.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec) Scale(f float64) Vec {
	return Vec{X: v.X * f, Y: v.Y * f}
}

// Marker is one spawned sprite.
type Marker struct {
	ID       uint64
	Position Vec
	Velocity Vec
	Glyph    rune
	Age      int

	// Image is the glyph as rasterized at creation; fades are always computed from it.
	Image *image.NRGBA
	// Frame is the bitmap currently shown on the canvas.
	Frame *image.NRGBA
	// Object is the canvas display object owned by this marker.
	Object DisplayObject
}

// DisplayObject is an opaque handle to an image placed on a Surface.
type DisplayObject interface{}

// Surface is the canvas the markers are drawn on.
type Surface interface {
	CreateObject(img image.Image, pos Vec) (DisplayObject, error)
	UpdatePosition(obj DisplayObject, pos Vec)
	UpdateImage(obj DisplayObject, img image.Image)
	Delete(obj DisplayObject)
}

// Rasterizer turns a glyph into a square RGBA bitmap with per-pixel alpha.
type Rasterizer interface {
	Rasterize(glyph rune) (*image.NRGBA, error)
}
