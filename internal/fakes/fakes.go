// Package fakes provides in-memory Surface and Rasterizer implementations for tests.
package fakes

import (
	"errors"
	"image"
	"image/color"

	"emoji-zoo/internal/models"
)

// Object is the display object handed out by Surface.
type Object struct {
	ID      int
	Pos     models.Vec
	Image   image.Image
	Updates int
	Moves   int
	Deleted bool
}

// Surface records every canvas operation.
type Surface struct {
	Objects   []*Object
	CreateErr error
	nextID    int
}

func NewSurface() *Surface {
	return &Surface{}
}

func (s *Surface) CreateObject(img image.Image, pos models.Vec) (models.DisplayObject, error) {
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	s.nextID++
	obj := &Object{ID: s.nextID, Pos: pos, Image: img}
	s.Objects = append(s.Objects, obj)
	return obj, nil
}

func (s *Surface) UpdatePosition(obj models.DisplayObject, pos models.Vec) {
	o := obj.(*Object)
	o.Pos = pos
	o.Moves++
}

func (s *Surface) UpdateImage(obj models.DisplayObject, img image.Image) {
	o := obj.(*Object)
	o.Image = img
	o.Updates++
}

func (s *Surface) Delete(obj models.DisplayObject) {
	obj.(*Object).Deleted = true
}

// Live counts objects that have not been deleted.
func (s *Surface) Live() int {
	n := 0
	for _, o := range s.Objects {
		if !o.Deleted {
			n++
		}
	}
	return n
}

// ErrNoGlyph is returned by Rasterizer for glyphs listed in Missing.
var ErrNoGlyph = errors.New("glyph not in font")

// Rasterizer produces a Size x Size bitmap: an opaque centre square on a
// half-transparent border, so alpha scaling is observable.
type Rasterizer struct {
	Size    int
	Missing map[rune]bool
	Calls   int
}

func NewRasterizer(size int) *Rasterizer {
	return &Rasterizer{Size: size, Missing: map[rune]bool{}}
}

func (r *Rasterizer) Rasterize(glyph rune) (*image.NRGBA, error) {
	r.Calls++
	if r.Missing[glyph] {
		return nil, ErrNoGlyph
	}
	img := image.NewNRGBA(image.Rect(0, 0, r.Size, r.Size))
	for y := 0; y < r.Size; y++ {
		for x := 0; x < r.Size; x++ {
			a := uint8(128)
			if x > 0 && y > 0 && x < r.Size-1 && y < r.Size-1 {
				a = 255
			}
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: uint8(glyph), B: 40, A: a})
		}
	}
	return img, nil
}
