package render

import (
	"fmt"
	"image"
	"math"

	"emoji-zoo/internal/models"
)

// ApplyOpacity returns a copy of src with every alpha value multiplied by o.
// Colour channels are left untouched, so anti-aliased edges keep their shape.
func ApplyOpacity(src *image.NRGBA, o float64) (*image.NRGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil bitmap", models.ErrRender)
	}
	dst := image.NewNRGBA(src.Bounds())
	if err := ApplyOpacityInto(dst, src, o); err != nil {
		return nil, err
	}
	return dst, nil
}

// ApplyOpacityInto writes src with alpha scaled by o into dst, which must have the same bounds.
func ApplyOpacityInto(dst, src *image.NRGBA, o float64) error {
	switch {
	case src == nil || dst == nil:
		return fmt.Errorf("%w: nil bitmap", models.ErrRender)
	case math.IsNaN(o) || o < 0 || o > 1:
		return fmt.Errorf("%w: opacity %v outside [0,1]", models.ErrRender, o)
	case !dst.Bounds().Eq(src.Bounds()):
		return fmt.Errorf("%w: bounds %v != %v", models.ErrRender, dst.Bounds(), src.Bounds())
	}

	b := src.Bounds()
	w := b.Dx() * 4
	for y := b.Min.Y; y < b.Max.Y; y++ {
		so := src.PixOffset(b.Min.X, y)
		do := dst.PixOffset(b.Min.X, y)
		srow := src.Pix[so : so+w]
		drow := dst.Pix[do : do+w]
		for i := 0; i < w; i += 4 {
			drow[i] = srow[i]
			drow[i+1] = srow[i+1]
			drow[i+2] = srow[i+2]
			drow[i+3] = uint8(math.Round(float64(srow[i+3]) * o))
		}
	}
	return nil
}
