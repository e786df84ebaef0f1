// internal/component/visual.go
package component

import (
	"math"

	"go-vfx-engine/pkg/render"
)

// Fade гасит прозрачность Targets до нуля
type Fade struct {
	Rate    float64 // opacity lost per effect-second at fade boost 1
	Targets []render.Material

	// Done latches once every target is fully transparent.
	Done bool
}

// Pulse "дышит" масштабом вокруг BaseScale
type Pulse struct {
	Amplitude float64
	Rate      float64 // radians per second
	BaseScale float64
}

// Spin вращает хэндл вокруг оси Y
type Spin struct {
	Rate float64 // radians per second
}

// Orbit расставляет дочерние хэндлы по окружности вокруг родителя. Дети
// принадлежат родителю и освобождаются вместе с ним.
type Orbit struct {
	Children []render.Handle
	Radius   float64
	Rate     float64 // radians per second
	YOffset  float64
	Angle    float64 // accumulated phase
}

// Layout places child i of N at Angle + i*2π/N.
func (o *Orbit) Layout() {
	n := len(o.Children)
	if n == 0 {
		return
	}
	step := 2 * math.Pi / float64(n)
	for i, c := range o.Children {
		if c == nil {
			continue
		}
		a := o.Angle + float64(i)*step
		c.SetPosition(render.V3(math.Cos(a)*o.Radius, o.YOffset, math.Sin(a)*o.Radius))
	}
}

// Positioner is anything that can report a current world position. The engine only
// reads it and never keeps the entity alive.
type Positioner interface {
	WorldPosition() (render.Vec3, bool)
}

// Attachment заставляет эффект следовать за игровой сущностью
type Attachment struct {
	Target  Positioner
	OffsetY float64
}
