package components

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"emoji-zoo/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

var errNotCanvasImage = errors.New("display object is not a canvas image")

// ZooCanvas is the fixed-size drawing area the markers live on. It hands out
// one canvas.Image per marker and reports taps in canvas pixel coordinates.
type ZooCanvas struct {
	widget.BaseWidget

	background *canvas.Rectangle
	layer      *fyne.Container
	size       fyne.Size
	glyphSize  float32

	onTapped func(pos models.Vec)
}

// NewZooCanvas creates a width x height canvas for glyphs of glyphSize pixels.
func NewZooCanvas(width, height float32, glyphSize int) *ZooCanvas {
	c := &ZooCanvas{
		background: canvas.NewRectangle(color.White),
		layer:      container.NewWithoutLayout(),
		size:       fyne.NewSize(width, height),
		glyphSize:  float32(glyphSize),
	}
	c.background.SetMinSize(c.size)
	c.ExtendBaseWidget(c)
	return c
}

func (c *ZooCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(c.background, c.layer))
}

func (c *ZooCanvas) MinSize() fyne.Size {
	return c.size
}

// SetOnTapped registers the pointer-click handler.
func (c *ZooCanvas) SetOnTapped(fn func(pos models.Vec)) {
	c.onTapped = fn
}

// Tapped implements fyne.Tappable.
func (c *ZooCanvas) Tapped(ev *fyne.PointEvent) {
	if c.onTapped == nil || ev == nil {
		return
	}
	c.onTapped(models.Vec{X: float64(ev.Position.X), Y: float64(ev.Position.Y)})
}

// CreateObject places img centred on pos.
func (c *ZooCanvas) CreateObject(img image.Image, pos models.Vec) (models.DisplayObject, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", models.ErrRender)
	}

	obj := canvas.NewImageFromImage(img)
	obj.FillMode = canvas.ImageFillContain
	obj.ScaleMode = canvas.ImageScaleSmooth
	obj.Resize(fyne.NewSize(c.glyphSize, c.glyphSize))
	obj.Move(c.topLeft(pos))

	c.layer.Add(obj)
	return obj, nil
}

func (c *ZooCanvas) UpdatePosition(obj models.DisplayObject, pos models.Vec) {
	if img, ok := obj.(*canvas.Image); ok {
		img.Move(c.topLeft(pos))
	}
}

func (c *ZooCanvas) UpdateImage(obj models.DisplayObject, img image.Image) {
	if ci, ok := obj.(*canvas.Image); ok {
		ci.Image = img
		ci.Refresh()
	}
}

func (c *ZooCanvas) Delete(obj models.DisplayObject) {
	if ci, ok := obj.(*canvas.Image); ok {
		c.layer.Remove(ci)
	}
}

// ObjectCount reports how many display objects are on the canvas.
func (c *ZooCanvas) ObjectCount() int {
	return len(c.layer.Objects)
}

// ObjectPosition returns the centre of a display object in canvas coordinates.
func (c *ZooCanvas) ObjectPosition(obj models.DisplayObject) (models.Vec, error) {
	ci, ok := obj.(*canvas.Image)
	if !ok {
		return models.Vec{}, errNotCanvasImage
	}
	p := ci.Position()
	half := c.glyphSize / 2
	return models.Vec{X: float64(p.X + half), Y: float64(p.Y + half)}, nil
}

func (c *ZooCanvas) topLeft(pos models.Vec) fyne.Position {
	half := c.glyphSize / 2
	return fyne.NewPos(float32(pos.X)-half, float32(pos.Y)-half)
}

var (
	_ models.Surface = (*ZooCanvas)(nil)
	_ fyne.Widget    = (*ZooCanvas)(nil)
	_ fyne.Tappable  = (*ZooCanvas)(nil)
)
