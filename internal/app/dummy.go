// internal/app/dummy.go
package app

import (
	"math"

	"go-vfx-engine/pkg/render"
)

// Dummy is a stand-in gameplay entity that walks a figure eight so attached
// effects have something to follow. Once Kill is called it stops answering
// position queries.
type Dummy struct {
	Center render.Vec3
	Radius float64
	Speed  float64 // radians per second along the path

	phase float64
	alive bool
}

func NewDummy(center render.Vec3, radius, speed float64) *Dummy {
	return &Dummy{Center: center, Radius: radius, Speed: speed, alive: true}
}

// Update двигает манекен по траектории
func (d *Dummy) Update(deltaTime float64) {
	if !d.alive {
		return
	}
	d.phase = math.Mod(d.phase+d.Speed*deltaTime, 2*math.Pi)
}

func (d *Dummy) WorldPosition() (render.Vec3, bool) {
	if !d.alive {
		return render.Vec3{}, false
	}
	s, c := math.Sincos(d.phase)
	return d.Center.Add(render.V3(c*d.Radius, 0, s*c*d.Radius)), true
}

func (d *Dummy) Alive() bool { return d.alive }

func (d *Dummy) Kill() { d.alive = false }

// Revive puts the dummy back on its path from the start.
func (d *Dummy) Revive() {
	d.phase = 0
	d.alive = true
}
