package system

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-vfx-engine/internal/component"
	"go-vfx-engine/pkg/render"
)

func (r *rig) projectile(t *testing.T, from, to render.Vec3, duration float64, done func(render.Vec3)) *component.Effect {
	t.Helper()
	e := r.sphere(t, duration+0.05)
	e.Handle.SetPosition(from)
	e.Motion = &component.Projectile{From: from, To: to, Duration: duration, Wobble: 0.15, OnComplete: done}
	return e
}

func TestProjectileArrivesExactlyOnce(t *testing.T) {
	r := newRig(t)
	to := render.V3(18, 0, 0)
	var calls []render.Vec3
	var arrivedAt float64
	e := r.projectile(t, render.Vec3{}, to, 1, func(at render.Vec3) {
		calls = append(calls, at)
		arrivedAt = r.sched.Now()
	})
	r.sched.Spawn(e)

	for k := 1; k <= 9; k++ {
		r.sched.Tick(float64(k)*0.1, 0.1, nil)
		require.Empty(t, calls, "tick %d", k)
		assert.Less(t, e.Handle.Position().X, to.X)
	}
	r.sched.Tick(1.0, 0.1, nil)
	require.Len(t, calls, 1)
	assert.Equal(t, to, calls[0])
	assert.Equal(t, 1.0, arrivedAt)
	assert.Equal(t, to, e.Handle.Position())

	r.run(0.1, 10, nil)
	assert.Len(t, calls, 1)
	assert.Equal(t, 1, r.stats.Arrived)
	assert.Equal(t, 0, r.host.Live())
}

func TestSheddingFlyingProjectilesKeepsBudgetAndCallbacks(t *testing.T) {
	r := newRig(t)
	calls := make([]int, 200)
	for i := range calls {
		i := i
		r.sched.Spawn(r.projectile(t, render.Vec3{}, render.V3(0, 0, 9), 9, func(render.Vec3) { calls[i]++ }))
	}

	r.run(1.0/15, 15, FixedFPS(15))
	assert.Greater(t, r.stats.Shortened, 0)
	assert.LessOrEqual(t, r.sched.Len(), 28)
	assert.Equal(t, 200-r.sched.Len(), r.stats.Arrived)

	r.run(0.1, 200, FixedFPS(60))
	assert.Equal(t, 0, r.sched.Len())
	assert.Equal(t, 0, r.host.Live())
	assert.Equal(t, 200, r.stats.Arrived)
	for i, n := range calls {
		assert.Equal(t, 1, n, "projectile %d", i)
	}
}

func TestProjectileLargeStepStillCompletes(t *testing.T) {
	r := newRig(t)
	done := 0
	r.sched.Spawn(r.projectile(t, render.Vec3{}, render.V3(0, 0, 5), 0.5, func(render.Vec3) { done++ }))

	r.sched.Tick(3, 3, nil)
	assert.Equal(t, 1, done)
	assert.Equal(t, 0, r.sched.Len())
}

func TestProjectileSameTickSpawnsFromCallback(t *testing.T) {
	r := newRig(t)
	var spawned []uint64
	r.sched.Spawn(r.projectile(t, render.Vec3{}, render.V3(1, 0, 0), 0.2, func(at render.Vec3) {
		impact := r.sphere(t, r.sched.Now()+0.5)
		impact.Handle.SetPosition(at)
		spawned = append(spawned, uint64(r.sched.Spawn(impact)))
	}))

	r.sched.Tick(0.2, 0.2, nil)
	require.Len(t, spawned, 1)
	assert.NotZero(t, spawned[0])
	// the projectile is past its residual life only on the next tick
	assert.Equal(t, 2, r.sched.Len())

	r.sched.Tick(0.3, 0.1, nil)
	assert.Equal(t, 1, r.sched.Len())
	r.run(0.1, 20, nil)
	assert.Equal(t, 0, r.host.Live())
}

func TestReentrantTickIsRefused(t *testing.T) {
	r := newRig(t)
	r.sched.Spawn(r.projectile(t, render.Vec3{}, render.V3(1, 0, 0), 0.1, func(render.Vec3) {
		r.sched.Tick(99, 1, nil)
	}))
	other := r.sphere(t, 50)
	r.sched.Spawn(other)

	require.NotPanics(t, func() { r.sched.Tick(0.1, 0.1, nil) })
	assert.Equal(t, 0.1, r.sched.Now())
	_, ok := r.sched.Effect(other.ID)
	assert.True(t, ok)
}

func TestCancelledProjectileNeverCompletes(t *testing.T) {
	r := newRig(t)
	done := 0
	id := r.sched.Spawn(r.projectile(t, render.Vec3{}, render.V3(10, 0, 0), 1, func(render.Vec3) { done++ }))
	r.sched.Tick(0.1, 0.1, nil)
	require.True(t, r.sched.Cancel(id))
	r.run(0.1, 30, nil)
	assert.Equal(t, 0, done)
	assert.Equal(t, 0, r.host.Live())
}

func TestProjectileTrailFollowsHead(t *testing.T) {
	r := newRig(t)
	head, _ := r.host.NewSphere(0.2, 6, color.RGBA{})
	trail, _ := r.host.NewSphere(0.1, 6, color.RGBA{})
	root, err := r.host.NewGroup(head, trail)
	require.NoError(t, err)
	require.NoError(t, r.host.Attach(root, render.GroupTransient))
	to := render.V3(4, 0, 0)
	r.sched.Spawn(&component.Effect{
		Handle: root,
		Expiry: 1.05,
		Motion: &component.Projectile{To: to, Duration: 1, Trail: trail},
	})

	r.sched.Tick(0.5, 0.5, nil)
	assert.Less(t, trail.Position().X, 0.0, "trail lags behind the head")
	r.sched.Tick(1, 0.5, nil)
	assert.Equal(t, render.Vec3{}, trail.Position())
}

func TestShockwaveAndGrowth(t *testing.T) {
	r := newRig(t)
	ring, _ := r.host.NewRing(0.08, 0.1, 16, color.RGBA{})
	require.NoError(t, r.host.Attach(ring, render.GroupIndicator))
	r.sched.Spawn(&component.Effect{
		Handle: ring,
		Group:  render.GroupIndicator,
		Expiry: 2,
		Motion: &component.Shockwave{MaxRadius: 5, Thickness: 0.1, Duration: 1},
	})
	grow := r.sphere(t, 2)
	grow.Motion = &component.ScaleGrowth{Rate: 1}
	r.sched.Spawn(grow)

	r.sched.Tick(0.5, 0.5, nil)
	assert.InDelta(t, 25, ring.Scale().X, 1e-9)
	assert.Equal(t, 1.0, ring.Scale().Y)
	assert.InDelta(t, 1.5, grow.Handle.Scale().X, 1e-9)

	r.sched.Tick(1.5, 1, nil)
	assert.InDelta(t, 50, ring.Scale().X, 1e-9)
}

func TestBallisticFallsUnderGravity(t *testing.T) {
	r := newRig(t)
	e := r.sphere(t, 5)
	e.Motion = &component.Ballistic{Velocity: render.V3(1, 2, 0), Gravity: -10}
	r.sched.Spawn(e)

	r.sched.Tick(0.1, 0.1, nil)
	assert.InDelta(t, 0.1, e.Handle.Position().X, 1e-9)
	assert.InDelta(t, 0.2, e.Handle.Position().Y, 1e-9)
	r.sched.Tick(0.2, 0.1, nil)
	assert.InDelta(t, 0.3, e.Handle.Position().Y, 1e-9)
}
