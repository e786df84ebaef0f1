package raylibhost

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-vfx-engine/pkg/render"
)

func TestGPUConstructorsNeedAWindow(t *testing.T) {
	h := New()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	_, err := h.NewSprite(img, 1)
	assert.ErrorIs(t, err, ErrNoWindow)
	_, err = h.NewDisc(1, 8, color.RGBA{255, 0, 0, 255})
	assert.ErrorIs(t, err, ErrNoWindow)
	_, err = h.NewSphere(1, 8, color.RGBA{255, 0, 0, 255})
	assert.ErrorIs(t, err, ErrNoWindow)
}

func TestImmediateShapesWithoutWindow(t *testing.T) {
	h := New()
	c := color.RGBA{0, 255, 0, 255}

	line, err := h.NewLine([]render.Vec3{{}, render.V3(1, 0, 0)}, c)
	require.NoError(t, err)
	ring, err := h.NewRing(0.5, 1, 16, c)
	require.NoError(t, err)
	cyl, err := h.NewCylinder(0.2, 0.4, 2, 8, c)
	require.NoError(t, err)
	g, err := h.NewGroup(line, ring, cyl)
	require.NoError(t, err)
	require.NoError(t, h.Attach(g, render.GroupTransient))
	assert.Equal(t, 1, h.Len(render.GroupTransient))

	_, err = h.NewSprite(nil, 1)
	assert.ErrorIs(t, err, render.ErrEmptyGeometry)
	_, err = h.NewRing(1, 0.5, 16, c)
	assert.ErrorIs(t, err, render.ErrEmptyGeometry)
}
