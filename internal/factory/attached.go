package factory

import (
	"image/color"

	"go-vfx-engine/internal/component"
	"go-vfx-engine/internal/config"
	"go-vfx-engine/internal/types"
	"go-vfx-engine/internal/utils"
	"go-vfx-engine/pkg/render"
)

// OrbOptions настраивает SpawnOrbitingOrbs. Нулевые значения заменяются умолчаниями
type OrbOptions struct {
	Count    int
	Radius   float64
	Duration float64
	Size     float64
	Rate     float64 // radians per second
}

// SpawnOrbitingOrbs circles Count orbs around a followed entity. The count is not
// scaled by quality: gameplay uses it to show charges.
func (f *Factory) SpawnOrbitingOrbs(target component.Positioner, c any, opts OrbOptions) types.EffectID {
	start, ok := queryTarget(target)
	if !ok {
		f.log.Debugw("orbiting orbs without a live target dropped")
		return 0
	}
	col := f.color(c)
	count := opts.Count
	if count <= 0 {
		count = 3
	}
	count = clampInt(count, 1, 32)
	radius := opts.Radius
	if radius <= 0 {
		radius = 1
	}
	radius = utils.AtLeast(radius, config.MinRadius)
	size := opts.Size
	if size <= 0 {
		size = 0.15
	}
	size = utils.AtLeast(size, config.MinRadius)
	rate := opts.Rate
	if rate == 0 {
		rate = 2.5
	}
	duration := opts.Duration
	if duration <= 0 {
		duration = 3
	}
	segments := f.quality.Segments(10, 6)

	b := f.builder("orbs")
	orbs := make([]render.Handle, count)
	for i := range orbs {
		orbs[i] = b.make(func(h render.Host) (render.Handle, error) { return h.NewSphere(size, segments, col) })
	}
	root := b.group(orbs...)
	if b.failed() {
		return 0
	}
	const lift = 1.0
	root.SetPosition(start.Add(render.V3(0, lift, 0)))

	orbit := &component.Orbit{Children: orbs, Radius: radius, Rate: rate}
	orbit.Layout()

	l := f.lifetime(duration)
	return f.finish("orbs", root, render.GroupTransient, &component.Effect{
		Expiry:     f.expiry(l),
		Fade:       f.fade(root, 1, l),
		Attachment: &component.Attachment{Target: target, OffsetY: lift},
		Orbit:      orbit,
		Tint:       []color.RGBA{col},
	})
}

// SpawnShield wraps a followed entity in a translucent breathing bubble with a
// ground ring.
func (f *Factory) SpawnShield(target component.Positioner, c any, duration, radius float64) types.EffectID {
	start, ok := queryTarget(target)
	if !ok {
		f.log.Debugw("shield without a live target dropped")
		return 0
	}
	col := f.color(c)
	rim := render.DarkenColor(col)
	radius = utils.AtLeast(radius, config.MinRadius)
	segments := f.quality.Segments(24, 8)

	b := f.builder("shield")
	bubble := b.make(func(h render.Host) (render.Handle, error) { return h.NewSphere(radius, segments, col) })
	ring := b.make(func(h render.Host) (render.Handle, error) {
		return h.NewRing(radius*0.9, radius, segments*2, rim)
	})
	root := b.group(bubble, ring)
	if b.failed() {
		return 0
	}
	offset := radius * 0.5
	root.SetPosition(start.Add(render.V3(0, offset, 0)))
	ring.SetPosition(render.V3(0, -offset+groundLift, 0))

	l := f.lifetime(duration)
	return f.finish("shield", root, render.GroupTransient, &component.Effect{
		Expiry:     f.expiry(l),
		Fade:       f.fade(root, 0.35, l),
		Attachment: &component.Attachment{Target: target, OffsetY: offset},
		Pulse:      &component.Pulse{Amplitude: 0.06, Rate: 6, BaseScale: 1},
		Tint:       []color.RGBA{col, rim},
	})
}

func queryTarget(target component.Positioner) (p render.Vec3, ok bool) {
	if target == nil {
		return render.Vec3{}, false
	}
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	return target.WorldPosition()
}
