// Package ebitenhost draws effect handles top-down with ebiten's vector package.
// World X maps to screen X, world Z to screen Y, and height lifts things up the
// screen a little so pillars and popups read as standing.
package ebitenhost

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-vfx-engine/pkg/render"
)

// heightFactor is how much one unit of height moves a point up the screen,
// relative to one unit of depth.
const heightFactor = 0.5

// Camera переводит мировые единицы в пиксели экрана
type Camera struct {
	CenterX, CenterY float64 // screen position of the world origin
	Scale            float64 // pixels per world unit
}

func (c Camera) project(p render.Vec3) (float32, float32) {
	x := c.CenterX + p.X*c.Scale
	y := c.CenterY + p.Z*c.Scale - p.Y*c.Scale*heightFactor
	return float32(x), float32(y)
}

// Host реализует render.Host поверх ebiten
type Host struct {
	render.DisplayList
	Camera Camera
}

func New(cam Camera) *Host {
	return &Host{Camera: cam}
}

func (h *Host) mesh(shape render.Shape, c color.RGBA) *render.Node {
	n := render.NewNode(shape)
	n.Mats = []render.Material{render.NewBasicMaterial(c)}
	return n
}

// vertices is CPU-side geometry; disposing drops it so late draws become no-ops.
type vertices struct {
	node *render.Node
}

func (v vertices) Dispose() error {
	v.node.Points = nil
	v.node.Segments = 0
	return nil
}

func (h *Host) NewLine(points []render.Vec3, c color.RGBA) (render.Handle, error) {
	if len(points) < 2 {
		return nil, render.ErrEmptyGeometry
	}
	n := h.mesh(render.ShapeLine, c)
	n.Points = append([]render.Vec3(nil), points...)
	n.Geom = vertices{n}
	return n, nil
}

func (h *Host) NewRing(inner, outer float64, segments int, c color.RGBA) (render.Handle, error) {
	if outer <= inner || inner < 0 || segments < 3 {
		return nil, render.ErrEmptyGeometry
	}
	n := h.mesh(render.ShapeRing, c)
	n.Inner, n.Outer, n.Segments = inner, outer, segments
	n.Geom = vertices{n}
	return n, nil
}

func (h *Host) NewDisc(radius float64, segments int, c color.RGBA) (render.Handle, error) {
	if radius <= 0 || segments < 3 {
		return nil, render.ErrEmptyGeometry
	}
	n := h.mesh(render.ShapeDisc, c)
	n.Radius, n.Segments = radius, segments
	n.Geom = vertices{n}
	return n, nil
}

func (h *Host) NewSphere(radius float64, segments int, c color.RGBA) (render.Handle, error) {
	if radius <= 0 || segments < 3 {
		return nil, render.ErrEmptyGeometry
	}
	n := h.mesh(render.ShapeSphere, c)
	n.Radius, n.Segments = radius, segments
	n.Geom = vertices{n}
	return n, nil
}

func (h *Host) NewCylinder(radiusTop, radiusBottom, height float64, segments int, c color.RGBA) (render.Handle, error) {
	if height <= 0 || radiusTop < 0 || radiusBottom < 0 || segments < 3 {
		return nil, render.ErrEmptyGeometry
	}
	n := h.mesh(render.ShapeCylinder, c)
	n.Radius, n.Bottom, n.Height, n.Segments = radiusTop, radiusBottom, height, segments
	n.Geom = vertices{n}
	return n, nil
}

func (h *Host) NewSprite(img image.Image, size float64) (render.Handle, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, render.ErrEmptyGeometry
	}
	tex := ebiten.NewImageFromImage(img)
	n := h.mesh(render.ShapeSprite, color.RGBA{255, 255, 255, 255})
	n.Size = size
	n.Payload = tex
	n.Mats[0].(*render.BasicMaterial).Tex = render.DisposeFunc(func() error {
		tex.Deallocate()
		n.Payload = nil
		return nil
	})
	return n, nil
}

func (h *Host) NewGroup(children ...render.Handle) (render.Handle, error) {
	g := render.NewNode(render.ShapeGroup)
	for _, c := range children {
		n, err := render.AsNode(c)
		if err != nil {
			return nil, err
		}
		g.Kids = append(g.Kids, n)
	}
	return g, nil
}

// Draw renders the indicator group under the transient group.
func (h *Host) Draw(screen *ebiten.Image) {
	for _, g := range []render.Group{render.GroupIndicator, render.GroupTransient} {
		h.Each(g, func(root *render.Node) {
			root.Walk(func(n *render.Node, world, scale render.Vec3) {
				h.drawNode(screen, n, world, scale)
			})
		})
	}
}

func (h *Host) drawNode(screen *ebiten.Image, n *render.Node, world, scale render.Vec3) {
	if len(n.Mats) == 0 || n.Mats[0] == nil {
		return
	}
	m := n.Mats[0]
	if m.Opacity() <= 0 {
		return
	}
	clr := render.WithOpacity(m.Color(), m.Opacity())
	px := float32(h.Camera.Scale)
	x, y := h.Camera.project(world)

	switch n.Shape {
	case render.ShapeLine:
		for i := 1; i < len(n.Points); i++ {
			x0, y0 := h.Camera.project(world.Add(mul(n.Points[i-1], scale)))
			x1, y1 := h.Camera.project(world.Add(mul(n.Points[i], scale)))
			vector.StrokeLine(screen, x0, y0, x1, y1, 2, clr, true)
		}
	case render.ShapeRing:
		if n.Segments == 0 {
			return
		}
		r := float32((n.Inner+n.Outer)/2*scale.X) * px
		w := float32((n.Outer-n.Inner)*scale.X) * px
		if r <= 0 {
			return
		}
		vector.StrokeCircle(screen, x, y, r, float32(math.Max(1, float64(w))), clr, true)
	case render.ShapeDisc, render.ShapeSphere:
		if n.Segments == 0 {
			return
		}
		r := float32(n.Radius*scale.X) * px
		if r > 0 {
			vector.DrawFilledCircle(screen, x, y, r, clr, true)
		}
	case render.ShapeCylinder:
		if n.Segments == 0 {
			return
		}
		half := n.Height * scale.Y / 2
		xb, yb := h.Camera.project(world.Add(render.V3(0, -half, 0)))
		xt, yt := h.Camera.project(world.Add(render.V3(0, half, 0)))
		width := float32(math.Max(n.Radius, n.Bottom)*2*scale.X) * px
		vector.StrokeLine(screen, xb, yb, xt, yt, float32(math.Max(1, float64(width))), clr, true)
	case render.ShapeSprite:
		tex, ok := n.Payload.(*ebiten.Image)
		if !ok || tex == nil {
			return
		}
		b := tex.Bounds()
		k := n.Size * scale.X * h.Camera.Scale / float64(b.Dx())
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
		op.GeoM.Scale(k, k)
		op.GeoM.Translate(float64(x), float64(y))
		op.ColorScale.ScaleAlpha(float32(m.Opacity()))
		screen.DrawImage(tex, op)
	}
}

func mul(a, b render.Vec3) render.Vec3 {
	return render.V3(a.X*b.X, a.Y*b.Y, a.Z*b.Z)
}
