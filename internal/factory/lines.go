package factory

import (
	"image/color"
	"math"

	"go-vfx-engine/internal/component"
	"go-vfx-engine/internal/types"
	"go-vfx-engine/pkg/render"
)

// SpawnBeam draws a straight beam with a bright core from `from` to `to`.
func (f *Factory) SpawnBeam(from, to render.Vec3, c any, life float64) types.EffectID {
	col := f.color(c)
	core := render.LightenColor(col)
	pts := []render.Vec3{{}, to.Sub(from)}

	b := f.builder("beam")
	outer := b.make(func(h render.Host) (render.Handle, error) { return h.NewLine(pts, col) })
	inner := b.make(func(h render.Host) (render.Handle, error) { return h.NewLine(pts, core) })
	root := b.group(outer, inner)
	if b.failed() {
		return 0
	}
	root.SetPosition(from)

	l := f.lifetime(life)
	return f.finish("beam", root, render.GroupTransient, &component.Effect{
		Expiry: f.expiry(l),
		Fade:   f.fade(root, 1, l),
		Tint:   []color.RGBA{col, core},
	})
}

// SpawnArc draws a jagged arc that bows upwards by amplitude between the points.
func (f *Factory) SpawnArc(from, to render.Vec3, c any, life float64, segments int, amplitude float64) types.EffectID {
	col := f.color(c)
	segments = f.quality.Segments(clampInt(segments, 2, 64), 2)
	amplitude = math.Max(0, amplitude)

	span := to.Sub(from)
	side := perpendicular(span)
	pts := make([]render.Vec3, segments+1)
	for i := range pts {
		t := float64(i) / float64(segments)
		env := math.Sin(math.Pi * t)
		p := span.Scale(t)
		p.Y += env * amplitude
		if i > 0 && i < segments {
			p = p.Add(side.Scale(f.rng.Range(-0.25, 0.25) * amplitude * env))
		}
		pts[i] = p
	}

	b := f.builder("arc")
	line := b.make(func(h render.Host) (render.Handle, error) { return h.NewLine(pts, col) })
	if b.failed() {
		return 0
	}
	line.SetPosition(from)

	l := f.lifetime(life)
	return f.finish("arc", line, render.GroupTransient, &component.Effect{
		Expiry: f.expiry(l),
		Fade:   f.fade(line, 1, l),
		Tint:   []color.RGBA{col},
	})
}

// SpawnLightning draws a jittered bolt with a bright core and a number of short
// side branches.
func (f *Factory) SpawnLightning(from, to render.Vec3, c any, branches int, duration float64) types.EffectID {
	col := f.color(c)
	core := render.LightenColor(col)
	span := to.Sub(from)
	dist := span.Len()
	side := perpendicular(span)

	segments := f.quality.Segments(12, 4)
	bolt := make([]render.Vec3, segments+1)
	for i := range bolt {
		t := float64(i) / float64(segments)
		p := span.Scale(t)
		if i > 0 && i < segments {
			jitter := dist * 0.08
			p = p.Add(side.Scale(f.rng.Range(-jitter, jitter)))
			p.Y += f.rng.Range(-jitter, jitter) * 0.5
		}
		bolt[i] = p
	}

	branches = clampInt(branches, 0, 8)
	if branches > 0 {
		branches = f.quality.Count(branches)
	}

	b := f.builder("lightning")
	parts := []render.Handle{
		b.make(func(h render.Host) (render.Handle, error) { return h.NewLine(bolt, col) }),
		b.make(func(h render.Host) (render.Handle, error) { return h.NewLine(bolt, core) }),
	}
	for i := 0; i < branches; i++ {
		pts := f.branch(bolt, dist)
		parts = append(parts, b.make(func(h render.Host) (render.Handle, error) { return h.NewLine(pts, col) }))
	}
	root := b.group(parts...)
	if b.failed() {
		return 0
	}
	root.SetPosition(from)

	l := f.lifetime(duration)
	return f.finish("lightning", root, render.GroupTransient, &component.Effect{
		Expiry: f.expiry(l),
		Fade:   f.fade(root, 1, l),
		Tint:   []color.RGBA{col, core},
	})
}

// branch forks a short zigzag off a random inner vertex of the bolt.
func (f *Factory) branch(bolt []render.Vec3, dist float64) []render.Vec3 {
	start := bolt[1+f.rng.Intn(len(bolt)-2)]
	x, y, z := f.rng.UnitVector(false)
	dir := render.V3(x, y*0.5, z)
	length := dist * f.rng.Range(0.15, 0.35)
	steps := 3 + f.rng.Intn(2)
	pts := []render.Vec3{start}
	for i := 1; i <= steps; i++ {
		p := start.Add(dir.Scale(length * float64(i) / float64(steps)))
		p = p.Add(render.V3(f.rng.Range(-0.1, 0.1), f.rng.Range(-0.1, 0.1), f.rng.Range(-0.1, 0.1)).Scale(length))
		pts = append(pts, p)
	}
	return pts
}

// perpendicular returns a horizontal unit vector at right angles to v, or X when v
// is vertical or zero.
func perpendicular(v render.Vec3) render.Vec3 {
	p := render.V3(-v.Z, 0, v.X)
	if l := p.Len(); l > 1e-9 {
		return p.Scale(1 / l)
	}
	return render.V3(1, 0, 0)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
