// internal/system/visual_effect.go
package system

import (
	"math"

	"go-vfx-engine/internal/component"
	"go-vfx-engine/pkg/render"
)

// applyFade lowers the opacity of every fade target. Opacity never goes below zero
// and is never raised again, even if a host reports a higher value later.
func applyFade(e *component.Effect, f Frame) {
	fd := e.Fade
	if fd == nil || fd.Done {
		return
	}
	step := f.Dt * fd.Rate * f.TimeScale * f.FadeBoost
	if step <= 0 {
		return
	}
	done := true
	for _, m := range fd.Targets {
		if m == nil {
			continue
		}
		cur := m.Opacity()
		next := cur - step
		if next <= 0 {
			next = 0
		} else {
			done = false
		}
		if next < cur {
			m.SetOpacity(next)
		}
	}
	fd.Done = done
}

func applyPulse(e *component.Effect, f Frame) {
	p := e.Pulse
	if p == nil {
		return
	}
	s := p.BaseScale * (1 + math.Sin(f.Now*p.Rate)*p.Amplitude)
	e.Handle.SetScale(render.Uniform(s))
}

func applySpin(e *component.Effect, f Frame) {
	sp := e.Spin
	if sp == nil {
		return
	}
	r := e.Handle.Rotation()
	r.Y = math.Mod(r.Y+sp.Rate*f.Dt*f.TimeScale, 2*math.Pi)
	e.Handle.SetRotation(r)
}

// applyOrbit advances the orbit phase and lays the children out evenly on the
// circle, in the parent's local space.
func applyOrbit(e *component.Effect, f Frame) {
	o := e.Orbit
	if o == nil || len(o.Children) == 0 {
		return
	}
	o.Angle = math.Mod(o.Angle+o.Rate*f.Dt*f.TimeScale, 2*math.Pi)
	o.Layout()
}
