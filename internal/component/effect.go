// internal/component/effect.go
package component

import (
	"image/color"

	"go-vfx-engine/internal/types"
	"go-vfx-engine/pkg/render"
)

// Effect это один запланированный визуальный эффект: собственный хэндл, время
// истечения и разреженный набор поведений. Nil-поведения планировщик пропускает.
type Effect struct {
	ID     types.EffectID
	Handle render.Handle
	Group  render.Group

	// Expiry is an absolute game time in seconds. It only ever moves earlier.
	Expiry float64
	// Born is the game time the effect was created at; used for ordering in logs.
	Born float64

	Fade       *Fade
	Motion     Motion
	Attachment *Attachment
	Pulse      *Pulse
	Spin       *Spin
	Orbit      *Orbit

	Tint []color.RGBA
}

// ShortenTo moves the expiry to t if that is earlier. Returns true if it changed.
func (e *Effect) ShortenTo(t float64) bool {
	if t < e.Expiry {
		e.Expiry = t
		return true
	}
	return false
}

// Expired reports whether the effect has reached its expiry at time now.
func (e *Effect) Expired(now float64) bool {
	return now >= e.Expiry
}

// ShedTo shortens the effect to deadline for load shedding. A projectile still in
// flight is sped up so it arrives by deadline and its completion still fires.
func (e *Effect) ShedTo(deadline float64) {
	e.ShortenTo(deadline)
	if p, ok := e.Motion.(*Projectile); ok && !p.Arrived() {
		p.ArriveBy(deadline)
	}
}
