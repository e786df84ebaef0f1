package system

import (
	"math"

	"go.uber.org/zap"

	"go-vfx-engine/internal/component"
	"go-vfx-engine/internal/config"
	"go-vfx-engine/internal/entity"
	"go-vfx-engine/internal/event"
	"go-vfx-engine/internal/logging"
	"go-vfx-engine/internal/types"
	"go-vfx-engine/pkg/render"
)

type behavior struct {
	name  string
	apply func(*component.Effect, Frame)
}

// Behaviors run in this order for every effect; fade always comes last so an effect
// that dies this tick still shows its final animated frame.
var behaviors = [...]behavior{
	{"follow", applyFollow},
	{"motion", applyMotion},
	{"pulse", applyPulse},
	{"spin", applySpin},
	{"orbit", applyOrbit},
	{"fade", applyFade},
}

// Options задаёт параметры Scheduler
type Options struct {
	TimeScale float64
	Events    *event.Dispatcher
	Log       *zap.SugaredLogger
}

// Scheduler владеет живыми эффектами: анимирует их каждый тик, сбрасывает
// нагрузку и освобождает истёкшие.
//
// Не потокобезопасен. Все вызовы идут из потока, который крутит кадровый цикл.
type Scheduler struct {
	ecs       *entity.ECS
	load      *LoadController
	reclaimer *Reclaimer
	events    *event.Dispatcher
	log       *zap.SugaredLogger

	timeScale float64
	decision  Decision
	ticking   bool
	expired   []bool
	// warned remembers which behaviors already logged a failure per effect.
	warned map[types.EffectID]uint8
}

func NewScheduler(host render.Host, opts Options) *Scheduler {
	log := logging.OrNop(opts.Log)
	s := &Scheduler{
		ecs:       entity.NewECS(),
		load:      NewLoadController(log),
		reclaimer: NewReclaimer(host, opts.Events, log),
		events:    opts.Events,
		log:       log,
		warned:    make(map[types.EffectID]uint8),
	}
	s.SetTimeScale(opts.TimeScale)
	s.decision = s.load.Adjust(0, false)
	return s
}

// Spawn adds an effect and returns its id. It never fails: an effect without a
// handle, or one that was already spawned, is not added and 0 is returned. Spawning
// from inside a tick (for example from a projectile's OnComplete) is allowed; the
// effect joins the collection when the tick finishes.
func (s *Scheduler) Spawn(e *component.Effect) types.EffectID {
	if e == nil || e.Handle == nil {
		s.log.Warnw("spawn without handle ignored")
		return 0
	}
	if e.ID != 0 {
		s.log.Warnw("effect spawned twice", "effect", e.ID)
		return 0
	}
	if math.IsNaN(e.Expiry) || math.IsInf(e.Expiry, 1) {
		// такой эффект никогда бы не истёк
		s.log.Warnw("non-finite expiry clamped to now", "expiry", e.Expiry)
		e.Expiry = s.ecs.GameTime
	}
	e.ID = s.ecs.NewEntity()
	e.Born = s.ecs.GameTime
	s.ecs.Add(e)
	s.events.Dispatch(event.Event{Type: event.EffectSpawned, Data: e.ID})
	return e.ID
}

// Tick advances every live effect to time now. dt is the time since the previous
// tick, both in seconds. signal may be nil.
func (s *Scheduler) Tick(now, dt float64, signal PerformanceSignal) {
	if s.ticking {
		s.log.Errorw("re-entrant tick refused", "now", now)
		return
	}
	s.ticking = true
	defer func() { s.ticking = false }()

	if dt < 0 {
		dt = 0
	}
	s.ecs.GameTime = now
	s.ecs.Lock()
	defer s.ecs.Unlock()

	fps, ok := s.readSignal(signal)
	s.decision = s.load.Adjust(fps, ok)
	if live := len(s.ecs.Effects); live > s.decision.MaxBudget {
		if n := s.load.Shed(s.ecs.Effects, now, s.decision.MaxBudget); n > 0 {
			s.events.Dispatch(event.Event{Type: event.EffectsShed, Data: event.Shed{
				Live: live, Budget: s.decision.MaxBudget, Shortened: n, FPS: fps,
			}})
		}
	}

	f := Frame{
		Now:       now,
		Dt:        dt,
		TimeScale: s.timeScale,
		FadeBoost: s.decision.FadeBoost,
		Events:    s.events,
	}
	s.expired = s.expired[:0]
	for _, e := range s.ecs.Effects {
		s.animate(e, f)
		s.expired = append(s.expired, e.Expired(now))
	}

	s.ecs.Remove(func(i int, _ *component.Effect) bool { return s.expired[i] }, s.reclaim)
}

func (s *Scheduler) animate(e *component.Effect, f Frame) {
	for i, b := range behaviors {
		if err := guard(func() { b.apply(e, f) }); err != nil {
			bit := uint8(1) << i
			if s.warned[e.ID]&bit == 0 {
				s.warned[e.ID] |= bit
				s.log.Warnw("effect behavior failed, skipped", "effect", e.ID, "behavior", b.name, "err", err)
			}
		}
	}
}

func (s *Scheduler) reclaim(e *component.Effect) {
	delete(s.warned, e.ID)
	if n := s.reclaimer.Reclaim(e); n > 0 {
		s.log.Errorw("effect reclaimed with leaked resources", "effect", e.ID, "failures", n)
	}
}

func (s *Scheduler) readSignal(signal PerformanceSignal) (fps float64, ok bool) {
	if signal == nil {
		return 0, false
	}
	if err := guard(func() { fps, ok = signal.FPS() }); err != nil {
		s.log.Warnw("performance signal failed", "err", err)
		return 0, false
	}
	return fps, ok
}

// Cancel makes an effect expire at the current game time; it is reclaimed by the
// next tick. Unknown ids are ignored.
func (s *Scheduler) Cancel(id types.EffectID) bool {
	e, ok := s.ecs.Find(id)
	if !ok {
		return false
	}
	e.ShortenTo(s.ecs.GameTime)
	return true
}

// Clear reclaims every effect immediately. It must not be called from inside a tick.
func (s *Scheduler) Clear() int {
	if s.ticking {
		s.log.Errorw("clear during tick refused")
		return 0
	}
	all := s.ecs.Drain()
	for _, e := range all {
		s.reclaim(e)
	}
	return len(all)
}

// Now returns the time of the last tick.
func (s *Scheduler) Now() float64 { return s.ecs.GameTime }

// Len returns the number of live effects.
func (s *Scheduler) Len() int { return s.ecs.Len() }

// Decision returns the load decision of the last tick.
func (s *Scheduler) Decision() Decision { return s.decision }

// Reclaimer exposes the reclaimer so factories can release half-built handles.
func (s *Scheduler) Reclaimer() *Reclaimer { return s.reclaimer }

// Effect returns the live effect with the given id.
func (s *Scheduler) Effect(id types.EffectID) (*component.Effect, bool) {
	return s.ecs.Find(id)
}

func (s *Scheduler) TimeScale() float64 { return s.timeScale }

// SetTimeScale sets the global effect speed, clamped to a sane range.
func (s *Scheduler) SetTimeScale(ts float64) {
	switch {
	case ts <= 0:
		ts = 1
	case ts < config.MinTimeScale:
		ts = config.MinTimeScale
	case ts > config.MaxTimeScale:
		ts = config.MaxTimeScale
	}
	s.timeScale = ts
}
