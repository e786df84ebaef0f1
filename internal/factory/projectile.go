package factory

import (
	"image/color"
	"math"

	"go-vfx-engine/internal/component"
	"go-vfx-engine/internal/config"
	"go-vfx-engine/internal/types"
	"go-vfx-engine/internal/utils"
	"go-vfx-engine/pkg/render"
)

// ProjectileOptions настраивает SpawnProjectile. Нулевые значения заменяются умолчаниями
type ProjectileOptions struct {
	Color any
	Size  float64
	Speed float64 // world units per second
	Trail bool
	// OnComplete runs inline during the tick the projectile arrives. It may spawn
	// new effects but must not tick the scheduler.
	OnComplete func(at render.Vec3)
}

// SpawnProjectile flies a glowing head from `from` to `to` at Speed. Travel time is
// gameplay time and is not affected by the quality preset or the effect time scale.
func (f *Factory) SpawnProjectile(from, to render.Vec3, opts ProjectileOptions) types.EffectID {
	col := f.color(opts.Color)
	size := opts.Size
	if size <= 0 {
		size = 0.2
	}
	size = utils.AtLeast(size, config.MinRadius)
	speed := opts.Speed
	if !(speed > 0) || math.IsInf(speed, 0) {
		speed = config.ProjectileSpeed
	}
	travel := to.Sub(from).Len() / speed
	if math.IsNaN(travel) || math.IsInf(travel, 0) {
		f.log.Warnw("projectile with non-finite path ignored", "from", from, "to", to)
		return 0
	}
	segments := f.quality.Segments(12, 6)

	b := f.builder("projectile")
	head := b.make(func(h render.Host) (render.Handle, error) { return h.NewSphere(size, segments, col) })
	root, trail := head, render.Handle(nil)
	if opts.Trail {
		trail = b.make(func(h render.Host) (render.Handle, error) {
			return h.NewSphere(size*0.6, segments, render.DarkenColor(col))
		})
		root = b.group(head, trail)
	}
	if b.failed() {
		return 0
	}
	if trail != nil {
		for _, m := range trail.Materials() {
			m.SetOpacity(0.5)
		}
	}
	root.SetPosition(from)

	now := f.sched.Now()
	residual := config.ProjectileResidualLife * f.quality.LifeMultiplier() / f.sched.TimeScale()
	return f.finish("projectile", root, render.GroupTransient, &component.Effect{
		Expiry: now + travel + residual,
		Motion: &component.Projectile{
			From:       from,
			To:         to,
			StartTime:  now,
			Duration:   travel,
			Wobble:     config.ProjectileWobble,
			OnComplete: opts.OnComplete,
			Trail:      trail,
		},
		Tint: []color.RGBA{col},
	})
}
