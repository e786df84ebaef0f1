// Package render defines the boundary between the effect engine and whatever draws it.
//
// The engine never draws anything itself. It builds handles through a Host, moves them
// around every tick and finally hands every GPU-side resource back through Dispose.
package render

import (
	"errors"
	"image"
	"image/color"
)

var (
	// ErrForeignHandle is returned when a host is given a handle it did not create.
	ErrForeignHandle = errors.New("render: handle was not created by this host")
	// ErrNotAttached is returned by Detach for a handle that is not in the group.
	ErrNotAttached = errors.New("render: handle is not attached to group")
	// ErrEmptyGeometry is returned when a primitive would have no vertices.
	ErrEmptyGeometry = errors.New("render: geometry has no vertices")
)

// Group: логический список отрисовки. Обе группы освобождаются одинаково
type Group int

const (
	// GroupTransient holds beams, particles and projectiles.
	GroupTransient Group = iota
	// GroupIndicator holds ground rings and pings.
	GroupIndicator
)

func (g Group) String() string {
	switch g {
	case GroupTransient:
		return "transient"
	case GroupIndicator:
		return "indicator"
	}
	return "unknown"
}

// Disposable: ресурс на стороне GPU (геометрия, материал, текстура)
type Disposable interface {
	Dispose() error
}

// Material: освобождаемая поверхность, прозрачность которой анимирует движок
type Material interface {
	Disposable
	Color() color.RGBA
	Opacity() float64
	SetOpacity(float64)
	// Texture returns the texture owned by the material, or nil.
	Texture() Disposable
}

// Handle is an opaque visual object owned by exactly one effect.
// Child transforms are local to the parent.
type Handle interface {
	Position() Vec3
	SetPosition(Vec3)
	Scale() Vec3
	SetScale(Vec3)
	Rotation() Vec3
	SetRotation(Vec3)

	// Geometry may return nil for handles without vertex data (groups).
	Geometry() Disposable
	Materials() []Material
	Children() []Handle
}

// Host: рендер, через который фабрики создают хэндлы
type Host interface {
	NewLine(points []Vec3, c color.RGBA) (Handle, error)
	NewRing(inner, outer float64, segments int, c color.RGBA) (Handle, error)
	NewDisc(radius float64, segments int, c color.RGBA) (Handle, error)
	NewSphere(radius float64, segments int, c color.RGBA) (Handle, error)
	NewCylinder(radiusTop, radiusBottom, height float64, segments int, c color.RGBA) (Handle, error)
	// NewSprite takes ownership of img and uploads it as a texture.
	NewSprite(img image.Image, size float64) (Handle, error)
	NewGroup(children ...Handle) (Handle, error)

	Attach(h Handle, g Group) error
	Detach(h Handle, g Group) error
}
