package system

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-vfx-engine/internal/component"
	"go-vfx-engine/internal/event"
	"go-vfx-engine/pkg/render"
)

type rig struct {
	host  *render.Headless
	sched *Scheduler
	stats *Stats
}

func newRig(t *testing.T) *rig {
	t.Helper()
	host := render.NewHeadless()
	events := event.NewDispatcher()
	return &rig{
		host:  host,
		sched: NewScheduler(host, Options{TimeScale: 1, Events: events}),
		stats: NewStats(events),
	}
}

// sphere builds and attaches a plain effect that expires at expiry.
func (r *rig) sphere(t *testing.T, expiry float64) *component.Effect {
	t.Helper()
	h, err := r.host.NewSphere(1, 8, color.RGBA{255, 255, 255, 255})
	require.NoError(t, err)
	require.NoError(t, r.host.Attach(h, render.GroupTransient))
	return &component.Effect{Handle: h, Group: render.GroupTransient, Expiry: expiry}
}

// run ticks every dt from the current time until the scheduler is empty or limit
// ticks passed, and returns the number of ticks.
func (r *rig) run(dt float64, limit int, signal PerformanceSignal) int {
	start := r.sched.Now()
	k := 0
	for k < limit && r.sched.Len() > 0 {
		k++
		r.sched.Tick(start+float64(k)*dt, dt, signal)
	}
	return k
}

func TestLifetimeBound(t *testing.T) {
	for _, dt := range []float64{0.1, 0.05, 0.125, 1.0 / 60} {
		r := newRig(t)
		id := r.sched.Spawn(r.sphere(t, 1))
		require.NotZero(t, id)

		ticks := r.run(dt, 1000, nil)
		assert.LessOrEqual(t, ticks, int(math.Ceil(1/dt)), "dt=%v", dt)
		assert.Equal(t, 0, r.sched.Len())
		assert.Equal(t, 0, r.host.Live())
		assert.Equal(t, 0, r.host.Len(render.GroupTransient))
	}
}

func TestNonFiniteExpiryIsClamped(t *testing.T) {
	for _, expiry := range []float64{math.NaN(), math.Inf(1)} {
		r := newRig(t)
		r.sched.Tick(2, 0, nil)
		e := r.sphere(t, expiry)
		require.NotZero(t, r.sched.Spawn(e))
		assert.Equal(t, 2.0, e.Expiry, "expiry=%v", expiry)

		assert.Equal(t, 1, r.run(0.1, 100, nil), "expiry=%v", expiry)
		assert.Equal(t, 0, r.sched.Len())
		assert.Equal(t, 0, r.host.Live())
	}
}

func TestReclaimExactlyOnce(t *testing.T) {
	r := newRig(t)
	for i := 0; i < 50; i++ {
		r.sched.Spawn(r.sphere(t, 0.1+float64(i)*0.02))
	}
	r.run(1.0/60, 1000, FixedFPS(60))

	assert.Equal(t, 50, r.stats.Spawned)
	assert.Equal(t, 50, r.stats.Reclaimed)
	assert.Equal(t, 0, r.host.Live())
	assert.Equal(t, 0, r.host.DoubleDisposals())

	// a second clear finds nothing to release
	assert.Equal(t, 0, r.sched.Clear())
	assert.Equal(t, 0, r.host.DoubleDisposals())
}

func TestSpawnRejectsInvalid(t *testing.T) {
	r := newRig(t)
	assert.Zero(t, r.sched.Spawn(nil))
	assert.Zero(t, r.sched.Spawn(&component.Effect{}))

	e := r.sphere(t, 1)
	require.NotZero(t, r.sched.Spawn(e))
	assert.Zero(t, r.sched.Spawn(e))
	assert.Equal(t, 1, r.sched.Len())
}

func TestFadeIsMonotone(t *testing.T) {
	r := newRig(t)
	e := r.sphere(t, 1)
	m := e.Handle.Materials()[0]
	e.Fade = &component.Fade{Rate: 1, Targets: []render.Material{m}}
	r.sched.Spawn(e)

	last := m.Opacity()
	for k := 1; k <= 20; k++ {
		if k == 5 {
			// the fade continues from whatever the material reports
			m.SetOpacity(0.99)
			last = 0.99
		}
		r.sched.Tick(float64(k)*0.05, 0.05, nil)
		assert.LessOrEqual(t, m.Opacity(), last)
		assert.GreaterOrEqual(t, m.Opacity(), 0.0)
		last = m.Opacity()
	}
}

func TestFadeReachesZeroWithinLife(t *testing.T) {
	r := newRig(t)
	e := r.sphere(t, 2)
	m := e.Handle.Materials()[0]
	e.Fade = &component.Fade{Rate: 1, Targets: []render.Material{m}}
	r.sched.Spawn(e)

	for k := 1; k <= 11; k++ {
		r.sched.Tick(float64(k)*0.1, 0.1, nil)
	}
	assert.InDelta(t, 0, m.Opacity(), 1e-9)
	assert.True(t, e.Fade.Done)
}

func TestCancelAndClear(t *testing.T) {
	r := newRig(t)
	a := r.sched.Spawn(r.sphere(t, 10))
	r.sched.Spawn(r.sphere(t, 10))

	assert.True(t, r.sched.Cancel(a))
	assert.False(t, r.sched.Cancel(999))
	r.sched.Tick(0.01, 0.01, nil)
	assert.Equal(t, 1, r.sched.Len())
	_, ok := r.sched.Effect(a)
	assert.False(t, ok)

	assert.Equal(t, 1, r.sched.Clear())
	assert.Equal(t, 0, r.host.Live())
	assert.Equal(t, 2, r.stats.Reclaimed)
}

func TestTimeScaleClamp(t *testing.T) {
	r := newRig(t)
	r.sched.SetTimeScale(0)
	assert.Equal(t, 1.0, r.sched.TimeScale())
	r.sched.SetTimeScale(0.001)
	assert.Equal(t, 0.05, r.sched.TimeScale())
	r.sched.SetTimeScale(100)
	assert.Equal(t, 8.0, r.sched.TimeScale())
}

type panicky struct{}

func (panicky) WorldPosition() (render.Vec3, bool) { panic("entity gone") }

func TestBehaviorPanicIsContained(t *testing.T) {
	r := newRig(t)
	broken := r.sphere(t, 0.5)
	broken.Attachment = &component.Attachment{Target: panicky{}}
	m := broken.Handle.Materials()[0]
	broken.Fade = &component.Fade{Rate: 1, Targets: []render.Material{m}}
	r.sched.Spawn(broken)
	healthy := r.sphere(t, 0.5)
	r.sched.Spawn(healthy)

	require.NotPanics(t, func() { r.run(0.1, 100, nil) })
	// the failing follow did not stop the fade of the same effect
	assert.Less(t, m.Opacity(), 1.0)
	assert.Equal(t, 2, r.stats.Reclaimed)
	assert.Equal(t, 0, r.host.Live())
}

func TestDisposeFailureIsCountedNotFatal(t *testing.T) {
	r := newRig(t)
	n := render.NewNode(render.ShapeSphere)
	n.Geom = render.DisposeFunc(func() error { panic("driver lost") })
	m := render.NewBasicMaterial(color.RGBA{})
	m.Release = func() error { return errors.New("busy") }
	n.Mats = []render.Material{m}
	require.NoError(t, r.host.Attach(n, render.GroupTransient))
	r.sched.Spawn(&component.Effect{Handle: n, Expiry: 0.1})
	r.sched.Spawn(r.sphere(t, 0.1))

	require.NotPanics(t, func() { r.run(0.1, 10, nil) })
	assert.Equal(t, 2, r.stats.DisposeFailures)
	assert.Equal(t, 2, r.stats.Reclaimed)
	assert.Equal(t, 0, r.host.Live())
	assert.Equal(t, 0, r.host.Len(render.GroupTransient))
}

type brokenSignal struct{}

func (brokenSignal) FPS() (float64, bool) { panic("no clock") }

func TestBrokenSignalFallsBackToRelaxedTier(t *testing.T) {
	r := newRig(t)
	r.sched.Spawn(r.sphere(t, 1))
	require.NotPanics(t, func() { r.sched.Tick(0.1, 0.1, brokenSignal{}) })
	d := r.sched.Decision()
	assert.False(t, d.Measured)
	assert.Equal(t, 120, d.MaxBudget)
}

func TestFollowDropsLostTarget(t *testing.T) {
	r := newRig(t)
	target := &movable{pos: render.V3(1, 0, 1), alive: true}
	e := r.sphere(t, 5)
	e.Attachment = &component.Attachment{Target: target, OffsetY: 0.5}
	r.sched.Spawn(e)

	r.sched.Tick(0.1, 0.1, nil)
	assert.Equal(t, render.V3(1, 0.5, 1), e.Handle.Position())

	target.pos = render.V3(3, 0, 0)
	r.sched.Tick(0.2, 0.1, nil)
	assert.Equal(t, render.V3(3, 0.5, 0), e.Handle.Position())

	target.alive = false
	r.sched.Tick(0.3, 0.1, nil)
	assert.Nil(t, e.Attachment)
	assert.Equal(t, render.V3(3, 0.5, 0), e.Handle.Position())
	assert.Equal(t, 1, r.sched.Len())
}

type movable struct {
	pos   render.Vec3
	alive bool
}

func (m *movable) WorldPosition() (render.Vec3, bool) { return m.pos, m.alive }

func TestSpinAndPulse(t *testing.T) {
	r := newRig(t)
	e := r.sphere(t, 5)
	e.Spin = &component.Spin{Rate: math.Pi}
	e.Pulse = &component.Pulse{Amplitude: 0.1, Rate: 2, BaseScale: 1}
	r.sched.Spawn(e)

	r.sched.Tick(0.5, 0.5, nil)
	assert.InDelta(t, math.Pi/2, e.Handle.Rotation().Y, 1e-9)
	s := e.Handle.Scale().X
	assert.InDelta(t, 1+math.Sin(1)*0.1, s, 1e-9)

	for k := 2; k <= 8; k++ {
		r.sched.Tick(float64(k)*0.5, 0.5, nil)
		assert.Less(t, e.Handle.Rotation().Y, 2*math.Pi)
	}
}

func TestOrbitKeepsEvenSeparation(t *testing.T) {
	r := newRig(t)
	kids := make([]render.Handle, 6)
	for i := range kids {
		kids[i], _ = r.host.NewSphere(0.1, 6, color.RGBA{})
	}
	root, err := r.host.NewGroup(kids...)
	require.NoError(t, err)
	require.NoError(t, r.host.Attach(root, render.GroupTransient))
	orbit := &component.Orbit{Children: kids, Radius: 2, Rate: 1.3}
	r.sched.Spawn(&component.Effect{Handle: root, Expiry: 10, Orbit: orbit})

	for k := 1; k <= 30; k++ {
		r.sched.Tick(float64(k)*0.1, 0.1, nil)
		for i, c := range kids {
			p := c.Position()
			assert.InDelta(t, 2, math.Hypot(p.X, p.Z), 1e-9)
			next := kids[(i+1)%len(kids)].Position()
			gap := math.Atan2(next.Z, next.X) - math.Atan2(p.Z, p.X)
			gap = math.Mod(gap+4*math.Pi, 2*math.Pi)
			assert.InDelta(t, 2*math.Pi/6, gap, 1e-9)
		}
	}
}
