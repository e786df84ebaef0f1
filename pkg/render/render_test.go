package render

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	fallback := color.RGBA{1, 2, 3, 255}
	tomato := color.RGBA{0xff, 0x63, 0x47, 0xff}

	for _, v := range []any{"#ff6347", "0xff6347", "ff6347", " #FF6347 ", 0xff6347, uint32(0xff6347), float64(0xff6347), tomato} {
		assert.Equal(t, tomato, ParseColor(v, fallback), "%v", v)
	}
	for _, v := range []any{nil, "", "#ff634", "#gg6347", "tomato", -1, 0x1000000, 1.5, struct{}{}} {
		assert.Equal(t, fallback, ParseColor(v, fallback), "%v", v)
	}
}

func TestColorHelpers(t *testing.T) {
	c := color.RGBA{200, 100, 50, 255}
	d := DarkenColor(c)
	l := LightenColor(c)
	assert.Less(t, d.R, c.R)
	assert.GreaterOrEqual(t, l.R, c.R)
	assert.Equal(t, uint8(128), WithOpacity(c, 0.5).A)

	m := NewBasicMaterial(c)
	m.SetOpacity(2)
	assert.Equal(t, 1.0, m.Opacity())
	m.SetOpacity(-1)
	assert.Equal(t, 0.0, m.Opacity())
	assert.Equal(t, uint8(0), m.DrawColor().A)
}

func TestHeadlessAccounting(t *testing.T) {
	h := NewHeadless()

	line, err := h.NewLine([]Vec3{{}, V3(1, 0, 0)}, color.RGBA{})
	require.NoError(t, err)
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	sprite, err := h.NewSprite(img, 1)
	require.NoError(t, err)

	assert.Equal(t, 5, h.Live())
	assert.Equal(t, 2, h.Created("geometry"))
	assert.Equal(t, 1, h.Created("texture"))

	for _, x := range []Handle{line, sprite} {
		require.NoError(t, x.Geometry().Dispose())
		for _, m := range x.Materials() {
			if tex := m.Texture(); tex != nil {
				require.NoError(t, tex.Dispose())
			}
			require.NoError(t, m.Dispose())
		}
	}
	assert.Equal(t, 0, h.Live())
	assert.ErrorIs(t, line.Geometry().Dispose(), ErrAlreadyDisposed)
	assert.Equal(t, 1, h.DoubleDisposals())
}

func TestHeadlessRejectsDegenerateGeometry(t *testing.T) {
	h := NewHeadless()
	c := color.RGBA{}

	_, err := h.NewLine([]Vec3{{}}, c)
	assert.ErrorIs(t, err, ErrEmptyGeometry)
	_, err = h.NewRing(1, 0.5, 16, c)
	assert.Error(t, err)
	_, err = h.NewDisc(0, 16, c)
	assert.Error(t, err)
	_, err = h.NewSphere(1, 2, c)
	assert.Error(t, err)
	_, err = h.NewCylinder(1, 1, 0, 8, c)
	assert.Error(t, err)
	_, err = h.NewSprite(image.NewRGBA(image.Rect(0, 0, 0, 0)), 1)
	assert.Error(t, err)
	assert.Equal(t, 0, h.Live())
}

type foreign struct{ Handle }

func TestDisplayList(t *testing.T) {
	h := NewHeadless()
	a, _ := h.NewSphere(1, 8, color.RGBA{})
	b, _ := h.NewSphere(1, 8, color.RGBA{})

	require.NoError(t, h.Attach(a, GroupTransient))
	require.NoError(t, h.Attach(b, GroupIndicator))
	assert.Equal(t, 1, h.Len(GroupTransient))
	assert.Equal(t, 1, h.Len(GroupIndicator))

	assert.ErrorIs(t, h.Detach(a, GroupIndicator), ErrNotAttached)
	require.NoError(t, h.Detach(a, GroupTransient))
	assert.Equal(t, 0, h.Len(GroupTransient))

	assert.ErrorIs(t, h.Attach(foreign{}, GroupTransient), ErrForeignHandle)
}

func TestNodeWalkAccumulatesTransforms(t *testing.T) {
	child := NewNode(ShapeSphere)
	child.SetPosition(V3(1, 0, 0))
	root := NewNode(ShapeGroup)
	root.Kids = []*Node{child}
	root.SetPosition(V3(10, 0, 0))
	root.SetScale(Uniform(2))
	root.SetRotation(V3(0, math.Pi/2, 0))

	var got []Vec3
	root.Walk(func(_ *Node, world, scale Vec3) {
		got = append(got, world)
	})
	require.Len(t, got, 2)
	assert.Equal(t, V3(10, 0, 0), got[0])
	assert.InDelta(t, 10, got[1].X, 1e-9)
	assert.InDelta(t, -2, got[1].Z, 1e-9)
}

func TestTextRasterizer(t *testing.T) {
	r, err := NewTextRasterizer("", 0)
	require.NoError(t, err)
	img := r.Rasterize("123", color.RGBA{255, 0, 0, 255})
	require.NotNil(t, img)
	assert.False(t, img.Bounds().Empty())

	_, err = NewTextRasterizer("/does/not/exist.ttf", 12)
	assert.Error(t, err)
}
