package render

import (
	"image/color"
	"math"
)

// Shape подсказывает хосту, как рисовать Node
type Shape int

const (
	ShapeGroup Shape = iota
	ShapeLine
	ShapeRing
	ShapeDisc
	ShapeSphere
	ShapeCylinder
	ShapeSprite
)

// Node это узел сцены, общий для встроенных хостов. Свои объекты (картинки, модели)
// хосты держат за Geom, Mats и Payload.
type Node struct {
	Shape    Shape
	Points   []Vec3 // line vertices, local space
	Radius   float64
	Inner    float64
	Outer    float64
	Bottom   float64 // cylinder bottom radius
	Height   float64
	Segments int
	Size     float64 // sprite edge length in world units

	Pos, Scl, Rot Vec3

	Geom Disposable
	Mats []Material
	Kids []*Node

	// Payload is host private.
	Payload any
}

// NewNode returns a node with unit scale.
func NewNode(shape Shape) *Node {
	return &Node{Shape: shape, Scl: Uniform(1)}
}

func (n *Node) Position() Vec3     { return n.Pos }
func (n *Node) SetPosition(p Vec3) { n.Pos = p }
func (n *Node) Scale() Vec3        { return n.Scl }
func (n *Node) SetScale(s Vec3)    { n.Scl = s }
func (n *Node) Rotation() Vec3     { return n.Rot }
func (n *Node) SetRotation(r Vec3) { n.Rot = r }

func (n *Node) Geometry() Disposable { return n.Geom }

func (n *Node) Materials() []Material { return n.Mats }

func (n *Node) Children() []Handle {
	if len(n.Kids) == 0 {
		return nil
	}
	out := make([]Handle, len(n.Kids))
	for i, k := range n.Kids {
		out[i] = k
	}
	return out
}

// Opacity returns the opacity of the first material, or 1 when there is none.
func (n *Node) Opacity() float64 {
	if len(n.Mats) == 0 || n.Mats[0] == nil {
		return 1
	}
	return n.Mats[0].Opacity()
}

// Walk visits n and its descendants depth first with the accumulated world origin
// and scale of each node. Rotation is only applied to child offsets around Y.
func (n *Node) Walk(fn func(node *Node, world Vec3, scale Vec3)) {
	n.walk(Vec3{}, Uniform(1), 0, fn)
}

func (n *Node) walk(origin, parentScale Vec3, parentYaw float64, fn func(*Node, Vec3, Vec3)) {
	local := Vec3{n.Pos.X * parentScale.X, n.Pos.Y * parentScale.Y, n.Pos.Z * parentScale.Z}
	if parentYaw != 0 {
		sin, cos := math.Sincos(parentYaw)
		local = Vec3{local.X*cos + local.Z*sin, local.Y, -local.X*sin + local.Z*cos}
	}
	world := origin.Add(local)
	scale := Vec3{n.Scl.X * parentScale.X, n.Scl.Y * parentScale.Y, n.Scl.Z * parentScale.Z}
	fn(n, world, scale)
	for _, k := range n.Kids {
		k.walk(world, scale, parentYaw+n.Rot.Y, fn)
	}
}

// AsNode unwraps a handle created by one of the bundled hosts.
func AsNode(h Handle) (*Node, error) {
	n, ok := h.(*Node)
	if !ok || n == nil {
		return nil, ErrForeignHandle
	}
	return n, nil
}

// DisposeFunc превращает функцию в Disposable
type DisposeFunc func() error

func (f DisposeFunc) Dispose() error {
	if f == nil {
		return nil
	}
	return f()
}

// BasicMaterial: плоский цветной материал с необязательной текстурой
type BasicMaterial struct {
	C     color.RGBA
	Alpha float64
	Tex   Disposable
	// Release frees backend state; nil means nothing to free.
	Release func() error
}

// NewBasicMaterial returns an opaque material of color c.
func NewBasicMaterial(c color.RGBA) *BasicMaterial {
	return &BasicMaterial{C: c, Alpha: float64(c.A) / 255}
}

func (m *BasicMaterial) Color() color.RGBA { return m.C }
func (m *BasicMaterial) Opacity() float64  { return m.Alpha }

func (m *BasicMaterial) SetOpacity(a float64) {
	m.Alpha = math.Max(0, math.Min(1, a))
}

func (m *BasicMaterial) Texture() Disposable { return m.Tex }

func (m *BasicMaterial) Dispose() error {
	if m.Release == nil {
		return nil
	}
	return m.Release()
}

// DrawColor returns the material color with its current opacity folded into alpha.
func (m *BasicMaterial) DrawColor() color.RGBA {
	c := m.C
	c.A = uint8(math.Round(m.Alpha * 255))
	return c
}
