// internal/app/engine.go
package app

import (
	"fmt"

	"go.uber.org/zap"

	"go-vfx-engine/internal/config"
	"go-vfx-engine/internal/event"
	"go-vfx-engine/internal/factory"
	"go-vfx-engine/internal/logging"
	"go-vfx-engine/internal/system"
	"go-vfx-engine/internal/utils"
	"go-vfx-engine/pkg/render"
)

// speedSteps is what the speed control cycles through.
var speedSteps = []float64{1, 2, 0.5}

// Engine связывает планировщик, фабрику и хост и ведёт игровые часы демо
type Engine struct {
	Config          config.Config
	Log             *zap.SugaredLogger
	EventDispatcher *event.Dispatcher
	Host            render.Host
	Scheduler       *system.Scheduler
	Factory         *factory.Factory
	Stats           *system.Stats
	Rng             *utils.PRNGService

	gameTime  float64
	isPaused  bool
	speedStep int
}

func NewEngine(host render.Host, cfg config.Config, log *zap.SugaredLogger) (*Engine, error) {
	log = logging.OrNop(log)
	dispatcher := event.NewDispatcher()
	sched := system.NewScheduler(host, system.Options{
		TimeScale: cfg.TimeScale,
		Events:    dispatcher,
		Log:       log.Named("scheduler"),
	})
	f, err := factory.New(sched, host, cfg, log.Named("factory"))
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	e := &Engine{
		Config:          cfg,
		Log:             log,
		EventDispatcher: dispatcher,
		Host:            host,
		Scheduler:       sched,
		Factory:         f,
		Stats:           system.NewStats(dispatcher),
		Rng:             utils.NewPRNGService(cfg.Seed + 1),
	}
	dispatcher.Subscribe(event.EffectsShed, event.ListenerFunc(func(ev event.Event) {
		if shed, ok := ev.Data.(event.Shed); ok {
			log.Debugw("effects shed", "live", shed.Live, "budget", shed.Budget, "shortened", shed.Shortened, "fps", shed.FPS)
		}
	}))
	dispatcher.Subscribe(event.DisposeFailed, event.ListenerFunc(func(ev event.Event) {
		log.Warnw("resource leaked", "err", ev.Data)
	}))
	return e, nil
}

// Update advances the game clock by deltaTime and ticks the scheduler.
func (e *Engine) Update(deltaTime float64, signal system.PerformanceSignal) {
	if e.isPaused {
		return
	}
	dt := deltaTime * e.Speed()
	e.gameTime += dt
	e.Scheduler.Tick(e.gameTime, dt, signal)
}

func (e *Engine) GameTime() float64 { return e.gameTime }

func (e *Engine) IsPaused() bool { return e.isPaused }

func (e *Engine) TogglePause() {
	e.isPaused = !e.isPaused
}

// Speed is the gameplay speed multiplier.
func (e *Engine) Speed() float64 { return speedSteps[e.speedStep] }

// SpeedStep is the index of the current speed in the cycle.
func (e *Engine) SpeedStep() int { return e.speedStep }

// CycleSpeed switches to the next gameplay speed and returns its index.
func (e *Engine) CycleSpeed() int {
	e.speedStep = (e.speedStep + 1) % len(speedSteps)
	return e.speedStep
}

// CycleQuality switches the effect quality preset.
func (e *Engine) CycleQuality() config.Quality {
	q := (e.Factory.Quality() + 1) % (config.QualityHigh + 1)
	e.Factory.SetQuality(q)
	e.Log.Infow("quality changed", "quality", q)
	return q
}

// AdjustTimeScale multiplies the effect time scale by k.
func (e *Engine) AdjustTimeScale(k float64) float64 {
	e.Scheduler.SetTimeScale(e.Scheduler.TimeScale() * k)
	return e.Scheduler.TimeScale()
}

// Shutdown reclaims every live effect.
func (e *Engine) Shutdown() {
	n := e.Scheduler.Clear()
	e.Log.Infow("engine stopped", "reclaimed", n, "spawned", e.Stats.Spawned, "failures", e.Stats.DisposeFailures)
}
