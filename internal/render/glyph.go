package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"emoji-zoo/internal/logger"
	"emoji-zoo/internal/models"

	textrender "github.com/go-text/render"
	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/gofont/goregular"
)

// EmojiFontCandidates are the colour emoji fonts looked up, in order, when no
// font path is configured. Only bitmap (CBDT, sbix) and SVG colour fonts are
// usable; COLR fonts such as Segoe UI Emoji draw as plain outlines.
var EmojiFontCandidates = []string{
	"/usr/share/fonts/truetype/noto/NotoColorEmoji.ttf",
	"/usr/share/fonts/noto/NotoColorEmoji.ttf",
	"/usr/share/fonts/google-noto-emoji/NotoColorEmoji.ttf",
	"/System/Library/Fonts/Apple Color Emoji.ttc",
}

// GlyphRasterizer renders single glyphs into square bitmaps. Outline glyphs
// are filled with Ink; bitmap (colour emoji) glyphs keep their own colours.
type GlyphRasterizer struct {
	face     *font.Face
	fontName string
	size     int
	fontSize float32
	ink      color.Color
	cache    map[rune]*image.NRGBA
}

// NewGlyphRasterizer loads fontPath, or the first installed emoji font when
// fontPath is empty, falling back to Go Regular.
func NewGlyphRasterizer(fontPath string, size int, fontSize float32, log logger.Logger) (*GlyphRasterizer, error) {
	if size <= 0 || fontSize <= 0 {
		return nil, fmt.Errorf("%w: glyph size %d, font size %g", models.ErrRender, size, fontSize)
	}

	face, name, err := loadFace(fontPath)
	if err != nil {
		return nil, err
	}
	log.Info("Glyph font loaded", map[string]interface{}{
		"font":      name,
		"size_px":   size,
		"font_size": fontSize,
	})

	return &GlyphRasterizer{
		face:     face,
		fontName: name,
		size:     size,
		fontSize: fontSize,
		ink:      color.Black,
		cache:    make(map[rune]*image.NRGBA),
	}, nil
}

// FontName reports where the active font came from.
func (g *GlyphRasterizer) FontName() string {
	return g.fontName
}

// Rasterize returns a fresh bitmap of glyph centred in a Size x Size square.
// The caller owns the result.
func (g *GlyphRasterizer) Rasterize(glyph rune) (*image.NRGBA, error) {
	cached, ok := g.cache[glyph]
	if !ok {
		img, err := g.draw(glyph)
		if err != nil {
			return nil, err
		}
		g.cache[glyph] = img
		cached = img
	}

	out := image.NewNRGBA(cached.Bounds())
	copy(out.Pix, cached.Pix)
	return out, nil
}

func (g *GlyphRasterizer) draw(glyph rune) (*image.NRGBA, error) {
	if _, ok := g.face.NominalGlyph(glyph); !ok {
		return nil, fmt.Errorf("%w: %q not in font %s", models.ErrRender, glyph, g.fontName)
	}

	r := &textrender.Renderer{
		FontSize: g.fontSize,
		PixScale: 1,
		Color:    g.ink,
	}
	str := string(glyph)

	// Measure the advance on a scratch image, then centre horizontally.
	scratch := image.NewNRGBA(image.Rect(0, 0, g.size*2, g.size*2))
	advance := r.DrawStringAt(str, scratch, 0, g.size, g.face)

	ascent, descent := g.verticalExtents()
	x := (g.size - advance) / 2
	y := int(float32(g.size)/2 + (ascent-descent)/2)

	img := image.NewNRGBA(image.Rect(0, 0, g.size, g.size))
	r.DrawStringAt(str, img, x, y, g.face)

	if isBlank(img) {
		return nil, fmt.Errorf("%w: %q rendered empty", models.ErrRender, glyph)
	}
	return img, nil
}

// verticalExtents returns ascent and descent in pixels, descent as a positive value.
func (g *GlyphRasterizer) verticalExtents() (float32, float32) {
	ext, ok := g.face.FontHExtents()
	upem := float32(g.face.Upem())
	if !ok || upem == 0 {
		return g.fontSize * 0.8, g.fontSize * 0.2
	}
	scale := g.fontSize / upem
	descent := ext.Descender * scale
	if descent < 0 {
		descent = -descent
	}
	return ext.Ascender * scale, descent
}

func isBlank(img *image.NRGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			return false
		}
	}
	return true
}

func loadFace(fontPath string) (*font.Face, string, error) {
	if fontPath != "" {
		face, err := parseFontFile(fontPath)
		if err != nil {
			return nil, "", err
		}
		return face, fontPath, nil
	}

	for _, candidate := range EmojiFontCandidates {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		face, err := parseFontFile(candidate)
		if err != nil || !hasColourGlyph(face, colourSample) {
			continue
		}
		return face, candidate, nil
	}

	face, err := font.ParseTTF(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, "", fmt.Errorf("%w: parse Go Regular: %v", models.ErrRender, err)
	}
	return face, "goregular", nil
}

// colourSample is checked in every candidate font before it is accepted.
var colourSample = []rune(models.DefaultAlphabet)[0]

// hasColourGlyph reports whether r is drawn from a bitmap or SVG image.
func hasColourGlyph(face *font.Face, r rune) bool {
	gid, ok := face.NominalGlyph(r)
	if !ok {
		return false
	}
	switch face.GlyphData(gid).(type) {
	case font.GlyphBitmap, font.GlyphSVG:
		return true
	}
	return false
}

func parseFontFile(path string) (*font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read font: %v", models.ErrRender, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".ttc") {
		faces, err := font.ParseTTC(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", models.ErrRender, path, err)
		}
		if len(faces) == 0 {
			return nil, fmt.Errorf("%w: %s holds no faces", models.ErrRender, path)
		}
		return faces[0], nil
	}

	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", models.ErrRender, path, err)
	}
	return face, nil
}
