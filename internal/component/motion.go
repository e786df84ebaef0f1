// internal/component/motion.go
package component

import (
	"math"

	"go-vfx-engine/pkg/render"
)

// Motion это единственный тип движения эффекта. Интерфейс закрыт, эффект не может
// быть одновременно частицей и снарядом.
type Motion interface {
	motion()
}

// ScaleGrowth раздувает "хлопки" (кольца, удары) мультипликативно
type ScaleGrowth struct {
	Rate float64 // relative growth per second
}

// Ballistic: свободная частица под действием гравитации
type Ballistic struct {
	Velocity render.Vec3
	Gravity  float64 // added to Velocity.Y every second; negative pulls down
}

// Projectile летит из From в To за Duration секунд, начиная со StartTime
type Projectile struct {
	From, To   render.Vec3
	StartTime  float64
	Duration   float64
	Wobble     float64 // amplitude of the sideways wobble, world units
	OnComplete func(at render.Vec3)
	// Trail is an optional child handle dragged behind the head.
	Trail render.Handle

	arrived bool
	rushed  bool
	rushTo  float64
}

// Arrived reports whether the projectile has reached To.
func (p *Projectile) Arrived() bool { return p.arrived }

// MarkArrived flips the arrival latch and reports whether this call flipped it.
func (p *Projectile) MarkArrived() bool {
	if p.arrived {
		return false
	}
	p.arrived = true
	return true
}

// ArriveBy shortens the flight so the projectile reaches To no later than t.
func (p *Projectile) ArriveBy(t float64) {
	if !p.rushed || t < p.rushTo {
		p.rushed, p.rushTo = true, t
	}
	if d := t - p.StartTime; d < p.Duration {
		p.Duration = math.Max(d, 0)
	}
}

// Due reports whether a shortened flight must end at time now, whatever the
// interpolated progress says.
func (p *Projectile) Due(now float64) bool {
	return p.rushed && now >= p.rushTo
}

// Shockwave расширяет плоское кольцо до MaxRadius
type Shockwave struct {
	MaxRadius float64
	Thickness float64 // radius of the ring geometry at scale 1
	StartTime float64
	Duration  float64
}

func (*ScaleGrowth) motion() {}
func (*Ballistic) motion()   {}
func (*Projectile) motion()  {}
func (*Shockwave) motion()   {}
