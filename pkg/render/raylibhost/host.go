// Package raylibhost renders effect handles in 3D with raylib. Meshes are
// generated on the GPU, so a Host may only be used between rl.InitWindow and
// rl.CloseWindow.
package raylibhost

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"go-vfx-engine/pkg/render"
)

// ErrNoWindow is returned by GPU-backed constructors before rl.InitWindow.
var ErrNoWindow = errors.New("raylib: no window, GPU resources unavailable")

// ringStrokes is how many concentric circles approximate a ring's thickness.
const ringStrokes = 4

// Host реализует render.Host поверх raylib
type Host struct {
	render.DisplayList
}

func New() *Host {
	return &Host{}
}

type model struct {
	m rl.Model
}

type sprite struct {
	tex rl.Texture2D
}

func (h *Host) mesh(shape render.Shape, c color.RGBA) *render.Node {
	n := render.NewNode(shape)
	n.Mats = []render.Material{render.NewBasicMaterial(c)}
	return n
}

// upload turns a generated mesh into a model owned by n. raylib panics on a
// broken GL state, that becomes an error here.
func (h *Host) upload(n *render.Node, gen func() rl.Mesh) (err error) {
	if !rl.IsWindowReady() {
		return ErrNoWindow
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("raylib: mesh upload: %v", r)
		}
	}()
	m := rl.LoadModelFromMesh(gen())
	if m.MeshCount == 0 {
		return render.ErrEmptyGeometry
	}
	n.Payload = &model{m: m}
	n.Geom = render.DisposeFunc(func() error {
		rl.UnloadModel(m)
		n.Payload = nil
		return nil
	})
	return nil
}

// uploadTexture копирует картинку в GPU; паника raylib превращается в ошибку
func uploadTexture(img image.Image) (tex rl.Texture2D, err error) {
	if !rl.IsWindowReady() {
		return tex, ErrNoWindow
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("raylib: texture upload: %v", r)
		}
	}()
	cpu := rl.NewImageFromImage(img)
	defer rl.UnloadImage(cpu)
	tex = rl.LoadTextureFromImage(cpu)
	if tex.ID == 0 {
		return tex, fmt.Errorf("raylib: texture upload failed")
	}
	return tex, nil
}

func (h *Host) NewLine(points []render.Vec3, c color.RGBA) (render.Handle, error) {
	if len(points) < 2 {
		return nil, render.ErrEmptyGeometry
	}
	n := h.mesh(render.ShapeLine, c)
	n.Points = append([]render.Vec3(nil), points...)
	return n, nil
}

func (h *Host) NewRing(inner, outer float64, segments int, c color.RGBA) (render.Handle, error) {
	if outer <= inner || inner < 0 || segments < 3 {
		return nil, render.ErrEmptyGeometry
	}
	n := h.mesh(render.ShapeRing, c)
	n.Inner, n.Outer, n.Segments = inner, outer, segments
	return n, nil
}

func (h *Host) NewDisc(radius float64, segments int, c color.RGBA) (render.Handle, error) {
	if radius <= 0 || segments < 3 {
		return nil, render.ErrEmptyGeometry
	}
	n := h.mesh(render.ShapeDisc, c)
	n.Radius, n.Segments = radius, segments
	if err := h.upload(n, func() rl.Mesh { return rl.GenMeshPoly(segments, float32(radius)) }); err != nil {
		return nil, err
	}
	return n, nil
}

func (h *Host) NewSphere(radius float64, segments int, c color.RGBA) (render.Handle, error) {
	if radius <= 0 || segments < 3 {
		return nil, render.ErrEmptyGeometry
	}
	n := h.mesh(render.ShapeSphere, c)
	n.Radius, n.Segments = radius, segments
	if err := h.upload(n, func() rl.Mesh { return rl.GenMeshSphere(float32(radius), segments, segments) }); err != nil {
		return nil, err
	}
	return n, nil
}

// NewCylinder is drawn in immediate mode, raylib has no tapered mesh generator.
func (h *Host) NewCylinder(radiusTop, radiusBottom, height float64, segments int, c color.RGBA) (render.Handle, error) {
	if height <= 0 || radiusTop < 0 || radiusBottom < 0 || segments < 3 {
		return nil, render.ErrEmptyGeometry
	}
	n := h.mesh(render.ShapeCylinder, c)
	n.Radius, n.Bottom, n.Height, n.Segments = radiusTop, radiusBottom, height, segments
	return n, nil
}

func (h *Host) NewSprite(img image.Image, size float64) (render.Handle, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, render.ErrEmptyGeometry
	}
	tex, err := uploadTexture(img)
	if err != nil {
		return nil, err
	}
	n := h.mesh(render.ShapeSprite, color.RGBA{255, 255, 255, 255})
	n.Size = size
	n.Payload = &sprite{tex: tex}
	n.Mats[0].(*render.BasicMaterial).Tex = render.DisposeFunc(func() error {
		rl.UnloadTexture(tex)
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

// Draw must be called between rl.BeginMode3D and rl.EndMode3D.
func (h *Host) Draw(camera rl.Camera3D) {
	for _, g := range []render.Group{render.GroupIndicator, render.GroupTransient} {
		h.Each(g, func(root *render.Node) {
			root.Walk(func(n *render.Node, world, scale render.Vec3) {
				drawNode(camera, n, world, scale)
			})
		})
	}
}

func vec(v render.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func drawNode(camera rl.Camera3D, n *render.Node, world, scale render.Vec3) {
	if len(n.Mats) == 0 || n.Mats[0] == nil {
		return
	}
	m := n.Mats[0]
	if m.Opacity() <= 0 {
		return
	}
	tint := render.WithOpacity(m.Color(), m.Opacity())
	pos := vec(world)

	switch n.Shape {
	case render.ShapeLine:
		for i := 1; i < len(n.Points); i++ {
			a := world.Add(mulVec(n.Points[i-1], scale))
			b := world.Add(mulVec(n.Points[i], scale))
			rl.DrawLine3D(vec(a), vec(b), tint)
		}
	case render.ShapeRing:
		inner := n.Inner * scale.X
		outer := n.Outer * scale.X
		for i := 0; i < ringStrokes; i++ {
			r := inner + (outer-inner)*float64(i)/float64(ringStrokes-1)
			if r > 0 {
				rl.DrawCircle3D(pos, float32(r), rl.NewVector3(1, 0, 0), 90, tint)
			}
		}
	case render.ShapeDisc, render.ShapeSphere:
		md, ok := n.Payload.(*model)
		if !ok {
			return
		}
		yaw := float32(n.Rot.Y * 180 / math.Pi)
		rl.DrawModelEx(md.m, pos, rl.NewVector3(0, 1, 0), yaw, vec(scale), tint)
	case render.ShapeCylinder:
		height := n.Height * scale.Y
		base := vec(world.Add(render.V3(0, -height/2, 0)))
		rl.DrawCylinder(base, float32(n.Radius*scale.X), float32(n.Bottom*scale.X), float32(height), int32(n.Segments), tint)
	case render.ShapeSprite:
		sp, ok := n.Payload.(*sprite)
		if !ok {
			return
		}
		rl.DrawBillboard(camera, sp.tex, pos, float32(n.Size*scale.X), tint)
	}
}

func mulVec(a, b render.Vec3) render.Vec3 {
	return render.V3(a.X*b.X, a.Y*b.Y, a.Z*b.Z)
}
