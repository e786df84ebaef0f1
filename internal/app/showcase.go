// internal/app/showcase.go
package app

import (
	"go-vfx-engine/internal/factory"
	"go-vfx-engine/internal/utils"
	"go-vfx-engine/pkg/render"
)

// Act: один номер витрины эффектов
type Act struct {
	Name string
	Play func(f *factory.Factory, rng *utils.PRNGService, target *Dummy)
}

func randomPoint(rng *utils.PRNGService, spread float64) render.Vec3 {
	return render.V3(rng.Range(-spread, spread), 0, rng.Range(-spread, spread))
}

// Acts lists every effect kind the engine can produce.
var Acts = []Act{
	{"beam", func(f *factory.Factory, rng *utils.PRNGService, _ *Dummy) {
		from := randomPoint(rng, 10).Add(render.V3(0, 1, 0))
		f.SpawnBeam(from, randomPoint(rng, 10), "#44aaff", 0.35)
	}},
	{"arc", func(f *factory.Factory, rng *utils.PRNGService, _ *Dummy) {
		f.SpawnArc(randomPoint(rng, 10), randomPoint(rng, 10), "#88ff88", 0.5, 10, 2)
	}},
	{"lightning", func(f *factory.Factory, rng *utils.PRNGService, _ *Dummy) {
		from := randomPoint(rng, 8).Add(render.V3(0, 6, 0))
		to := randomPoint(rng, 8)
		f.SpawnLightning(from, to, "#ccccff", 4, 0.3)
		f.SpawnImpact(to, 0.6, "#ffffff", 2)
	}},
	{"impact", func(f *factory.Factory, rng *utils.PRNGService, _ *Dummy) {
		f.SpawnImpact(randomPoint(rng, 10), 0.5, "#ffaa00", rng.Range(0.5, 3))
	}},
	{"ring", func(f *factory.Factory, rng *utils.PRNGService, _ *Dummy) {
		f.SpawnRing(randomPoint(rng, 10), 1.5, "#ffdd44", 1.2, 0.15, 0.8)
	}},
	{"shockwave", func(f *factory.Factory, rng *utils.PRNGService, _ *Dummy) {
		f.SpawnShockwave(randomPoint(rng, 8), 6, "#ff6347", 0.8, 0.25)
	}},
	{"pillar", func(f *factory.Factory, rng *utils.PRNGService, _ *Dummy) {
		f.SpawnPillar(randomPoint(rng, 10), 5, 0.5, "#ffee88", 1.5)
	}},
	{"cage", func(f *factory.Factory, rng *utils.PRNGService, _ *Dummy) {
		f.SpawnCage(randomPoint(rng, 8), 1.5, 2.5, "#99ddff", 2, 10)
	}},
	{"projectile", func(f *factory.Factory, rng *utils.PRNGService, _ *Dummy) {
		from := randomPoint(rng, 12)
		to := randomPoint(rng, 12)
		f.SpawnProjectile(from, to, factory.ProjectileOptions{
			Color: "#ff8800",
			Trail: true,
			OnComplete: func(at render.Vec3) {
				f.SpawnImpact(at, 0.5, "#ff8800", 1.5)
				f.SpawnDamagePopup(at, float64(10+rng.Intn(990)), nil)
			},
		})
	}},
	{"burst", func(f *factory.Factory, rng *utils.PRNGService, _ *Dummy) {
		f.SpawnParticleBurst(randomPoint(rng, 10), 24, "#ffffff", 4, 0.08, 0.8)
	}},
	{"popup", func(f *factory.Factory, rng *utils.PRNGService, _ *Dummy) {
		f.SpawnDamagePopup(randomPoint(rng, 10), rng.Range(1, 500), "#ff4040")
	}},
	{"orbs", func(f *factory.Factory, _ *utils.PRNGService, target *Dummy) {
		f.SpawnOrbitingOrbs(target, "#ff00ff", factory.OrbOptions{Count: 5, Radius: 1.2, Duration: 3})
	}},
	{"shield", func(f *factory.Factory, _ *utils.PRNGService, target *Dummy) {
		f.SpawnShield(target, "#00ffff", 2.5, 1.2)
	}},
}

// Director проигрывает витрину: каждые Interval секунд запускается следующий номер.
// В стресс-режиме сверху сыплется шторм частиц, чтобы нагрузить контроллер.
type Director struct {
	engine   *Engine
	Target   *Dummy
	Interval float64
	Auto     bool
	Stress   bool

	timer float64
	next  int
}

func NewDirector(e *Engine) *Director {
	return &Director{
		engine:   e,
		Target:   NewDummy(render.Vec3{}, 6, 0.6),
		Interval: 0.4,
		Auto:     true,
	}
}

// Play runs the act with index i right away.
func (d *Director) Play(i int) {
	if i < 0 || i >= len(Acts) {
		return
	}
	if !d.Target.Alive() {
		d.Target.Revive()
	}
	Acts[i].Play(d.engine.Factory, d.engine.Rng, d.Target)
}

func (d *Director) Update(deltaTime float64) {
	if d.engine.IsPaused() {
		return
	}
	d.Target.Update(deltaTime * d.engine.Speed())
	if d.Stress {
		for i := 0; i < 4; i++ {
			d.engine.Factory.SpawnParticleBurst(randomPoint(d.engine.Rng, 12), 16, "#ffcc66", 5, 0.06, 1.2)
		}
	}
	if !d.Auto {
		return
	}
	d.timer += deltaTime
	if d.timer >= d.Interval {
		d.timer = 0
		d.Play(d.next)
		d.next = (d.next + 1) % len(Acts)
	}
}
