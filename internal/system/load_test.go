package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-vfx-engine/internal/component"
	"go-vfx-engine/internal/config"
)

func TestAdjustTiers(t *testing.T) {
	c := NewLoadController(nil)
	for _, tc := range []struct {
		fps    float64
		ok     bool
		boost  float64
		budget int
	}{
		{15, true, 2.4, 28},
		{19.9, true, 2.4, 28},
		{20, true, 1.8, 42},
		{25, true, 1.8, 42},
		{35, true, 1.25, 80},
		{40, true, 1, 120},
		{144, true, 1, 120},
		{0, false, 1, 120},
		{math.NaN(), true, 1, 120},
	} {
		d := c.Adjust(tc.fps, tc.ok)
		assert.Equal(t, tc.boost, d.FadeBoost, "fps=%v", tc.fps)
		assert.Equal(t, tc.budget, d.MaxBudget, "fps=%v", tc.fps)
	}
}

func effects(n int, expiry float64) []*component.Effect {
	out := make([]*component.Effect, n)
	for i := range out {
		out[i] = &component.Effect{Expiry: expiry}
	}
	return out
}

func shortened(es []*component.Effect, deadline float64) []int {
	var idx []int
	for i, e := range es {
		if e.Expiry <= deadline {
			idx = append(idx, i)
		}
	}
	return idx
}

func TestShedRespectsFractionAndBudget(t *testing.T) {
	c := NewLoadController(nil)
	es := effects(200, 10)

	n := c.Shed(es, 1, 28)
	assert.Equal(t, 40, n)
	idx := shortened(es, 1+config.ShedWindow)
	require.Len(t, idx, 40)
	// the first pass starts with the oldest
	assert.Equal(t, 0, idx[0])
	assert.Equal(t, 39, idx[39])

	// only the surplus is shed when it is below the fraction cap
	c = NewLoadController(nil)
	es = effects(130, 10)
	assert.Equal(t, 10, c.Shed(es, 1, 120))
	assert.Zero(t, c.Shed(effects(120, 10), 2, 120))
}

func TestShedIsIdempotentWithinATick(t *testing.T) {
	c := NewLoadController(nil)
	es := effects(200, 10)
	c.Shed(es, 1, 28)
	first := shortened(es, 1+config.ShedWindow)

	c.Shed(es, 1, 28)
	assert.Equal(t, first, shortened(es, 1+config.ShedWindow))
	for _, i := range first {
		assert.Equal(t, 1+config.ShedWindow, es[i].Expiry)
	}
}

func TestShedRoundRobin(t *testing.T) {
	c := NewLoadController(nil)
	es := effects(200, 10)
	c.Shed(es, 1, 28)
	c.Shed(es, 2, 28)
	second := shortened(es, 2+config.ShedWindow)
	require.Len(t, second, 80)
	assert.Equal(t, 1+config.ShedWindow, es[0].Expiry)
	assert.Equal(t, 2+config.ShedWindow, es[40].Expiry)
	assert.Equal(t, 10.0, es[80].Expiry)
}

func TestShedNeverExtends(t *testing.T) {
	c := NewLoadController(nil)
	es := effects(200, 1.05)
	c.Shed(es, 1, 28)
	for _, e := range es {
		assert.Equal(t, 1.05, e.Expiry)
	}
}

func TestShedCompressesFlyingProjectiles(t *testing.T) {
	c := NewLoadController(nil)
	es := effects(200, 10)
	for i := 0; i < 10; i++ {
		es[i].Motion = &component.Projectile{Duration: 5}
	}
	landed := &component.Projectile{Duration: 0.5}
	landed.MarkArrived()
	es[10].Motion = landed

	assert.Equal(t, 40, c.Shed(es, 1, 28))
	deadline := 1 + config.ShedWindow
	for i := 0; i < 10; i++ {
		assert.Equal(t, deadline, es[i].Expiry)
		assert.InDelta(t, deadline, es[i].Motion.(*component.Projectile).Duration, 1e-12)
	}
	assert.Equal(t, 0.5, landed.Duration)
	assert.Equal(t, deadline, es[39].Expiry)
	assert.Equal(t, 10.0, es[40].Expiry)
}

func TestSchedulerShedsUnderLoad(t *testing.T) {
	r := newRig(t)
	for i := 0; i < 200; i++ {
		r.sched.Spawn(r.sphere(t, 10))
	}
	r.sched.Tick(1, 1.0/15, FixedFPS(15))
	assert.Equal(t, 1, r.stats.ShedPasses)
	assert.Equal(t, 40, r.stats.Shortened)
	assert.Equal(t, 2.4, r.sched.Decision().FadeBoost)

	// shedding runs before reclaim, so this pass still sees all 200
	r.sched.Tick(1.2, 0.2, FixedFPS(15))
	assert.Equal(t, 160, r.sched.Len())
	assert.Equal(t, 40, r.stats.Reclaimed)
	assert.Equal(t, 2, r.stats.ShedPasses)
	assert.Equal(t, 80, r.stats.Shortened)

	// 160 is still above the relaxed budget of 120: floor(160*0.2) are shed
	r.sched.Tick(1.4, 0.2, FixedFPS(60))
	assert.Equal(t, 3, r.stats.ShedPasses)
	assert.Equal(t, 112, r.stats.Shortened)
	assert.Equal(t, 120, r.sched.Len())

	r.sched.Tick(1.6, 0.2, FixedFPS(60))
	assert.Equal(t, 3, r.stats.ShedPasses, "within budget nothing is shed")
	assert.Equal(t, 88, r.sched.Len())
}

func TestSignalAdapters(t *testing.T) {
	fps, ok := FPSFunc(func() float64 { return 58 }).FPS()
	assert.True(t, ok)
	assert.Equal(t, 58.0, fps)
	_, ok = FPSFunc(func() float64 { return 0 }).FPS()
	assert.False(t, ok)

	fps, ok = FrameTimeSignal(func() float64 { return 20 }).FPS()
	assert.True(t, ok)
	assert.Equal(t, 50.0, fps)
	_, ok = FrameTimeSignal(func() float64 { return 0 }).FPS()
	assert.False(t, ok)

	_, ok = FixedFPS(0).FPS()
	assert.False(t, ok)
}
