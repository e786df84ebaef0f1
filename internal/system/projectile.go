// internal/system/projectile.go
package system

import (
	"math"

	"go-vfx-engine/internal/component"
	"go-vfx-engine/internal/event"
	"go-vfx-engine/internal/utils"
	"go-vfx-engine/pkg/render"
)

// wobbleWaves is how many sideways oscillations a projectile makes on its way.
const wobbleWaves = 3

// applyMotion runs the single motion trait of an effect.
func applyMotion(e *component.Effect, f Frame) {
	switch m := e.Motion.(type) {
	case *component.ScaleGrowth:
		k := 1 + m.Rate*f.Dt*f.TimeScale
		if k < 0 {
			k = 0
		}
		e.Handle.SetScale(e.Handle.Scale().Scale(k))
	case *component.Ballistic:
		e.Handle.SetPosition(e.Handle.Position().Add(m.Velocity.Scale(f.Dt)))
		m.Velocity.Y += m.Gravity * f.Dt
	case *component.Projectile:
		stepProjectile(e, m, f)
	case *component.Shockwave:
		progress := 1.0
		if m.Duration > 0 {
			progress = utils.Clamp((f.Now-m.StartTime)/m.Duration, 0, 1)
		}
		xz := progress * m.MaxRadius / m.Thickness
		e.Handle.SetScale(render.V3(xz, 1, xz))
	}
}

// stepProjectile moves the head along From→To and fires OnComplete exactly once,
// on the first tick progress reaches 1.
func stepProjectile(e *component.Effect, p *component.Projectile, f Frame) {
	if p.Arrived() {
		return
	}
	progress := 1.0
	if p.Duration > 0 {
		progress = utils.Clamp((f.Now-p.StartTime)/p.Duration, 0, 1)
	}
	if p.Due(f.Now) {
		progress = 1
	}

	pos := p.To
	if progress < 1 {
		pos = p.From.Lerp(p.To, progress)
		// the envelope keeps both ends of the path exact
		pos.Y += math.Sin(progress*math.Pi) * math.Sin(progress*math.Pi*2*wobbleWaves) * p.Wobble
	}
	prev := e.Handle.Position()
	e.Handle.SetPosition(pos)
	if p.Trail != nil {
		p.Trail.SetPosition(prev.Sub(pos))
	}

	if progress >= 1 && p.MarkArrived() {
		if p.Trail != nil {
			p.Trail.SetPosition(render.Vec3{})
		}
		f.Events.Dispatch(event.Event{Type: event.ProjectileArrived, Data: e.ID})
		if p.OnComplete != nil {
			p.OnComplete(p.To)
		}
	}
}
