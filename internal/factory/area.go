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

// groundLift keeps flat indicators from fighting with the ground plane.
const groundLift = 0.02

// SpawnImpact is a sphere flash that pops outwards and fades. intensity scales the
// growth rate, the brightness and the life.
func (f *Factory) SpawnImpact(point render.Vec3, radius float64, c any, intensity float64) types.EffectID {
	col := f.color(c)
	radius = utils.AtLeast(radius, config.MinRadius)
	intensity = utils.Clamp(utils.AtLeast(intensity, 0.1), 0.1, 5)
	segments := f.quality.Segments(16, 6)

	b := f.builder("impact")
	sphere := b.make(func(h render.Host) (render.Handle, error) { return h.NewSphere(radius, segments, col) })
	if b.failed() {
		return 0
	}
	sphere.SetPosition(point)

	l := f.lifetime(0.25 + 0.1*intensity)
	return f.finish("impact", sphere, render.GroupTransient, &component.Effect{
		Expiry: f.expiry(l),
		Fade:   f.fade(sphere, math.Min(1, 0.6+0.2*intensity), l),
		Motion: &component.ScaleGrowth{Rate: 2.5 * intensity},
		Tint:   []color.RGBA{col},
	})
}

// SpawnRing is a flat ground ring that widens slightly while fading out.
func (f *Factory) SpawnRing(center render.Vec3, radius float64, c any, duration, width, opacity float64) types.EffectID {
	col := f.color(c)
	radius = utils.AtLeast(radius, config.MinRadius)
	if width <= 0 {
		width = 0.1
	}
	width = math.Min(width, radius*2)
	if opacity <= 0 || opacity > 1 {
		opacity = 0.8
	}
	inner := math.Max(0, radius-width/2)
	outer := radius + width/2
	segments := f.quality.Segments(48, 12)

	b := f.builder("ring")
	ring := b.make(func(h render.Host) (render.Handle, error) { return h.NewRing(inner, outer, segments, col) })
	if b.failed() {
		return 0
	}
	ring.SetPosition(center.Add(render.V3(0, groundLift, 0)))

	l := f.lifetime(duration)
	return f.finish("ring", ring, render.GroupIndicator, &component.Effect{
		Expiry: f.expiry(l),
		Fade:   f.fade(ring, opacity, l),
		Motion: &component.ScaleGrowth{Rate: 0.35},
		Tint:   []color.RGBA{col},
	})
}

// SpawnShockwave is a thin ring that expands from nothing to maxRadius over
// duration.
func (f *Factory) SpawnShockwave(center render.Vec3, maxRadius float64, c any, duration, thickness float64) types.EffectID {
	col := f.color(c)
	maxRadius = utils.AtLeast(maxRadius, config.MinRadius)
	if thickness <= 0 {
		thickness = 0.15
	}
	thickness = utils.AtLeast(thickness, config.MinRadius)
	segments := f.quality.Segments(48, 12)

	b := f.builder("shockwave")
	ring := b.make(func(h render.Host) (render.Handle, error) {
		return h.NewRing(thickness*0.8, thickness, segments, col)
	})
	if b.failed() {
		return 0
	}
	ring.SetPosition(center.Add(render.V3(0, groundLift, 0)))
	ring.SetScale(render.V3(0, 1, 0))

	l := f.lifetime(duration)
	return f.finish("shockwave", ring, render.GroupIndicator, &component.Effect{
		Expiry: f.expiry(l),
		Fade:   f.fade(ring, 1, l),
		Motion: &component.Shockwave{
			MaxRadius: maxRadius,
			Thickness: thickness,
			StartTime: f.sched.Now(),
			Duration:  l / f.sched.TimeScale(),
		},
		Tint: []color.RGBA{col},
	})
}

// SpawnPillar is a spinning column of light standing on position, with a glow disc
// at its foot.
func (f *Factory) SpawnPillar(position render.Vec3, height, radius float64, c any, duration float64) types.EffectID {
	col := f.color(c)
	height = utils.AtLeast(height, config.MinRadius)
	radius = utils.AtLeast(radius, config.MinRadius)
	segments := f.quality.Segments(16, 6)

	b := f.builder("pillar")
	column := b.make(func(h render.Host) (render.Handle, error) {
		return h.NewCylinder(radius, radius, height, segments, col)
	})
	foot := b.make(func(h render.Host) (render.Handle, error) {
		return h.NewDisc(radius*1.6, segments, render.DarkenColor(col))
	})
	root := b.group(column, foot)
	if b.failed() {
		return 0
	}
	root.SetPosition(position.Add(render.V3(0, height/2, 0)))
	foot.SetPosition(render.V3(0, -height/2+groundLift, 0))

	l := f.lifetime(duration)
	return f.finish("pillar", root, render.GroupTransient, &component.Effect{
		Expiry: f.expiry(l),
		Fade:   f.fade(root, 0.85, l),
		Spin:   &component.Spin{Rate: 1.5},
		Tint:   []color.RGBA{col, render.DarkenColor(col)},
	})
}

// SpawnCage is a ring of vertical bars with top and bottom hoops that slowly
// turns around center.
func (f *Factory) SpawnCage(center render.Vec3, radius, height float64, c any, duration float64, bars int) types.EffectID {
	col := f.color(c)
	radius = utils.AtLeast(radius, config.MinRadius)
	height = utils.AtLeast(height, config.MinRadius)
	bars = clampInt(bars, 3, 24)
	if scaled := f.quality.Count(bars); scaled >= 3 {
		bars = scaled
	} else {
		bars = 3
	}
	barRadius := math.Max(config.MinRadius/2, radius*0.04)
	hoopWidth := barRadius * 2
	segments := f.quality.Segments(32, 8)

	b := f.builder("cage")
	parts := make([]render.Handle, 0, bars+2)
	for i := 0; i < bars; i++ {
		bar := b.make(func(h render.Host) (render.Handle, error) {
			return h.NewCylinder(barRadius, barRadius, height, 6, col)
		})
		if bar != nil {
			a := float64(i) * 2 * math.Pi / float64(bars)
			bar.SetPosition(render.V3(math.Cos(a)*radius, 0, math.Sin(a)*radius))
		}
		parts = append(parts, bar)
	}
	for _, y := range []float64{-height / 2, height / 2} {
		hoop := b.make(func(h render.Host) (render.Handle, error) {
			return h.NewRing(radius-hoopWidth/2, radius+hoopWidth/2, segments, col)
		})
		if hoop != nil {
			hoop.SetPosition(render.V3(0, y, 0))
		}
		parts = append(parts, hoop)
	}
	root := b.group(parts...)
	if b.failed() {
		return 0
	}
	root.SetPosition(center.Add(render.V3(0, height/2, 0)))

	l := f.lifetime(duration)
	return f.finish("cage", root, render.GroupTransient, &component.Effect{
		Expiry: f.expiry(l),
		Fade:   f.fade(root, 0.9, l),
		Spin:   &component.Spin{Rate: 0.8},
		Tint:   []color.RGBA{col},
	})
}
