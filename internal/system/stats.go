package system

import "go-vfx-engine/internal/event"

// Stats считает события движка: их печатает HUD демо, по ним тесты проверяют,
// что каждый эффект освобождается ровно один раз.
type Stats struct {
	Spawned         int
	Reclaimed       int
	Arrived         int
	ShedPasses      int
	Shortened       int
	DisposeFailures int
}

// NewStats subscribes a counter to every engine event on d.
func NewStats(d *event.Dispatcher) *Stats {
	s := &Stats{}
	for _, t := range []event.EventType{
		event.EffectSpawned,
		event.EffectReclaimed,
		event.EffectsShed,
		event.ProjectileArrived,
		event.DisposeFailed,
	} {
		d.Subscribe(t, s)
	}
	return s
}

func (s *Stats) OnEvent(e event.Event) {
	switch e.Type {
	case event.EffectSpawned:
		s.Spawned++
	case event.EffectReclaimed:
		s.Reclaimed++
	case event.EffectsShed:
		s.ShedPasses++
		if shed, ok := e.Data.(event.Shed); ok {
			s.Shortened += shed.Shortened
		}
	case event.ProjectileArrived:
		s.Arrived++
	case event.DisposeFailed:
		s.DisposeFailures++
	}
}

// Live is the number of effects spawned and not yet reclaimed.
func (s *Stats) Live() int { return s.Spawned - s.Reclaimed }
