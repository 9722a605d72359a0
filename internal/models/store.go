package models

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// MarkerStore owns the live markers in insertion order. It is confined to the
// UI event goroutine: ticks, taps and key presses all run there in sequence,
// so the store carries no lock.
type MarkerStore struct {
	surface    Surface
	rasterizer Rasterizer
	markers    []*Marker
	nextID     uint64
}

// NewMarkerStore creates an empty store drawing on surface with glyphs from rasterizer.
func NewMarkerStore(surface Surface, rasterizer Rasterizer) *MarkerStore {
	return &MarkerStore{
		surface:    surface,
		rasterizer: rasterizer,
		markers:    make([]*Marker, 0, 64),
	}
}

// Insert renders glyph, places it on the surface at pos and appends a new
// marker with age 0. Nothing is added when rendering fails.
func (s *MarkerStore) Insert(pos, vel Vec, glyph rune) (*Marker, error) {
	img, err := s.rasterizer.Rasterize(glyph)
	if err != nil {
		return nil, fmt.Errorf("rasterize %q: %w", glyph, wrapRender(err))
	}

	frame := cloneNRGBA(img)
	obj, err := s.surface.CreateObject(frame, pos)
	if err != nil {
		return nil, fmt.Errorf("place %q: %w", glyph, wrapRender(err))
	}

	s.nextID++
	m := &Marker{
		ID:       s.nextID,
		Position: pos,
		Velocity: vel,
		Glyph:    glyph,
		Image:    img,
		Frame:    frame,
		Object:   obj,
	}
	s.markers = append(s.markers, m)
	return m, nil
}

// Clear deletes every marker's display object and empties the store.
// It returns the number of markers removed.
func (s *MarkerStore) Clear() int {
	n := len(s.markers)
	for _, m := range s.markers {
		s.release(m)
	}
	s.markers = s.markers[:0]
	return n
}

// ScaleVelocities multiplies every marker's velocity by factor. A factor of
// zero stops all motion without freezing the simulation.
func (s *MarkerStore) ScaleVelocities(factor float64) {
	for _, m := range s.markers {
		m.Velocity = m.Velocity.Scale(factor)
	}
}

// Remove drops the given markers and releases their display objects. The
// survivors keep their relative order; markers not in the store are ignored.
func (s *MarkerStore) Remove(markers ...*Marker) int {
	if len(markers) == 0 || len(s.markers) == 0 {
		return 0
	}

	doomed := make(map[*Marker]struct{}, len(markers))
	for _, m := range markers {
		doomed[m] = struct{}{}
	}

	kept := s.markers[:0]
	removed := 0
	for _, m := range s.markers {
		if _, ok := doomed[m]; ok {
			s.release(m)
			removed++
			continue
		}
		kept = append(kept, m)
	}
	for i := len(kept); i < len(s.markers); i++ {
		s.markers[i] = nil
	}
	s.markers = kept
	return removed
}

// Markers returns a snapshot of the live markers in insertion order.
func (s *MarkerStore) Markers() []*Marker {
	out := make([]*Marker, len(s.markers))
	copy(out, s.markers)
	return out
}

func (s *MarkerStore) Len() int {
	return len(s.markers)
}

// Surface returns the canvas the store draws on.
func (s *MarkerStore) Surface() Surface {
	return s.surface
}

func (s *MarkerStore) release(m *Marker) {
	if m.Object != nil {
		s.surface.Delete(m.Object)
		m.Object = nil
	}
}

func wrapRender(err error) error {
	if errors.Is(err, ErrRender) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrRender, err)
}

func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}
