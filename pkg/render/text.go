package render

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextRasterizer рисует короткие строки в картинки на CPU, которые хосты грузят
// как текстуры спрайтов.
type TextRasterizer struct {
	face font.Face
}

// NewTextRasterizer loads a TrueType face from path. An empty path selects the
// built-in 7x13 bitmap face.
func NewTextRasterizer(path string, size float64) (*TextRasterizer, error) {
	if path == "" {
		return &TextRasterizer{face: basicfont.Face7x13}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %q: %w", path, err)
	}
	tt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %q: %w", path, err)
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face for %q: %w", path, err)
	}
	return &TextRasterizer{face: face}, nil
}

// Rasterize renders s in color c with a one pixel dark outline on a transparent
// background. The result is never empty.
func (r *TextRasterizer) Rasterize(s string, c color.RGBA) *image.RGBA {
	const pad = 2
	metrics := r.face.Metrics()
	width := font.MeasureString(r.face, s).Ceil() + pad*2
	height := (metrics.Ascent + metrics.Descent).Ceil() + pad*2
	if width <= pad*2 {
		width = pad*2 + 1
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	baseline := fixed.I(pad) + metrics.Ascent

	outline := image.NewUniform(color.RGBA{A: c.A})
	for _, off := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		d := font.Drawer{
			Dst:  img,
			Src:  outline,
			Face: r.face,
			Dot:  fixed.Point26_6{X: fixed.I(pad + off[0]), Y: baseline + fixed.I(off[1])},
		}
		d.DrawString(s)
	}
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.Point26_6{X: fixed.I(pad), Y: baseline},
	}
	d.DrawString(s)
	return img
}
