package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrAlreadyDisposed is returned when a headless resource is released twice.
var ErrAlreadyDisposed = errors.New("render: resource already disposed")

// Headless это Host в памяти. Ничего не рисует, но точно учитывает каждый выданный
// ресурс; годится для выделенного сервера и тестов.
type Headless struct {
	DisplayList

	created   map[string]int
	disposed  map[string]int
	doubled   int
	liveCount int
}

// NewHeadless returns an empty headless host.
func NewHeadless() *Headless {
	return &Headless{
		created:  make(map[string]int),
		disposed: make(map[string]int),
	}
}

type trackedResource struct {
	host     *Headless
	kind     string
	released bool
}

func (r *trackedResource) Dispose() error {
	if r.released {
		r.host.doubled++
		return ErrAlreadyDisposed
	}
	r.released = true
	r.host.disposed[r.kind]++
	r.host.liveCount--
	return nil
}

func (h *Headless) track(kind string) *trackedResource {
	h.created[kind]++
	h.liveCount++
	return &trackedResource{host: h, kind: kind}
}

func (h *Headless) mesh(shape Shape, c color.RGBA) *Node {
	n := NewNode(shape)
	n.Geom = h.track("geometry")
	m := NewBasicMaterial(c)
	m.Release = h.track("material").Dispose
	n.Mats = []Material{m}
	return n
}

func (h *Headless) NewLine(points []Vec3, c color.RGBA) (Handle, error) {
	if len(points) < 2 {
		return nil, ErrEmptyGeometry
	}
	n := h.mesh(ShapeLine, c)
	n.Points = append([]Vec3(nil), points...)
	return n, nil
}

func (h *Headless) NewRing(inner, outer float64, segments int, c color.RGBA) (Handle, error) {
	if outer <= inner || inner < 0 {
		return nil, fmt.Errorf("render: invalid ring radii %v..%v", inner, outer)
	}
	if segments < 3 {
		return nil, ErrEmptyGeometry
	}
	n := h.mesh(ShapeRing, c)
	n.Inner, n.Outer, n.Segments = inner, outer, segments
	return n, nil
}

func (h *Headless) NewDisc(radius float64, segments int, c color.RGBA) (Handle, error) {
	if radius <= 0 || segments < 3 {
		return nil, ErrEmptyGeometry
	}
	n := h.mesh(ShapeDisc, c)
	n.Radius, n.Segments = radius, segments
	return n, nil
}

func (h *Headless) NewSphere(radius float64, segments int, c color.RGBA) (Handle, error) {
	if radius <= 0 || segments < 3 {
		return nil, ErrEmptyGeometry
	}
	n := h.mesh(ShapeSphere, c)
	n.Radius, n.Segments = radius, segments
	return n, nil
}

func (h *Headless) NewCylinder(radiusTop, radiusBottom, height float64, segments int, c color.RGBA) (Handle, error) {
	if height <= 0 || radiusTop < 0 || radiusBottom < 0 || segments < 3 {
		return nil, ErrEmptyGeometry
	}
	n := h.mesh(ShapeCylinder, c)
	n.Radius, n.Bottom, n.Height, n.Segments = radiusTop, radiusBottom, height, segments
	return n, nil
}

func (h *Headless) NewSprite(img image.Image, size float64) (Handle, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyGeometry
	}
	n := h.mesh(ShapeSprite, color.RGBA{255, 255, 255, 255})
	n.Size = size
	n.Payload = img
	n.Mats[0].(*BasicMaterial).Tex = h.track("texture")
	return n, nil
}

func (h *Headless) NewGroup(children ...Handle) (Handle, error) {
	g := NewNode(ShapeGroup)
	for _, c := range children {
		n, err := AsNode(c)
		if err != nil {
			return nil, err
		}
		g.Kids = append(g.Kids, n)
	}
	return g, nil
}

// Live returns the number of resources handed out and not yet disposed.
func (h *Headless) Live() int { return h.liveCount }

// Created returns how many resources of kind ("geometry", "material", "texture")
// were handed out.
func (h *Headless) Created(kind string) int { return h.created[kind] }

// Disposed returns how many resources of kind were released.
func (h *Headless) Disposed(kind string) int { return h.disposed[kind] }

// DoubleDisposals counts Dispose calls on already released resources.
func (h *Headless) DoubleDisposals() int { return h.doubled }
