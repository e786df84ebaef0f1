// Package factory holds the primitive constructors. They are the only producers
// of effects: each validates its inputs, builds the handle through the render host,
// fills in the behavior traits and hands the effect to the scheduler.
package factory

import (
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"go-vfx-engine/internal/component"
	"go-vfx-engine/internal/config"
	"go-vfx-engine/internal/logging"
	"go-vfx-engine/internal/system"
	"go-vfx-engine/internal/types"
	"go-vfx-engine/internal/utils"
	"go-vfx-engine/pkg/render"
)

// Factory строит эффекты для одного планировщика и одного хоста
type Factory struct {
	sched    *system.Scheduler
	host     render.Host
	quality  config.Quality
	fadeRate float64
	rng      *utils.PRNGService
	text     *render.TextRasterizer
	log      *zap.SugaredLogger
}

// New creates a factory. It fails only when the configured popup font cannot be
// loaded.
func New(sched *system.Scheduler, host render.Host, cfg config.Config, log *zap.SugaredLogger) (*Factory, error) {
	text, err := render.NewTextRasterizer(cfg.PopupFont, cfg.PopupFontSize)
	if err != nil {
		return nil, fmt.Errorf("popup font: %w", err)
	}
	fadeRate := cfg.BaseFadeRate
	if fadeRate <= 0 {
		fadeRate = config.DefaultBaseFadeRate
	}
	return &Factory{
		sched:    sched,
		host:     host,
		quality:  cfg.QualityTier(),
		fadeRate: fadeRate,
		rng:      utils.NewPRNGService(cfg.Seed),
		text:     text,
		log:      logging.OrNop(log),
	}, nil
}

func (f *Factory) Quality() config.Quality { return f.quality }

// SetQuality switches the quality preset for effects spawned from now on.
func (f *Factory) SetQuality(q config.Quality) { f.quality = q }

// lifetime converts a requested life into effect seconds: clamped and scaled by the
// quality preset.
func (f *Factory) lifetime(seconds float64) float64 {
	return utils.AtLeast(seconds, config.MinDuration) * f.quality.LifeMultiplier()
}

// expiry turns effect seconds into an absolute game time.
func (f *Factory) expiry(effectSeconds float64) float64 {
	return f.sched.Now() + effectSeconds/f.sched.TimeScale()
}

// fade makes every material under h start at opacity and reach zero after life
// effect seconds.
func (f *Factory) fade(h render.Handle, opacity, life float64) *component.Fade {
	targets := collectMaterials(h, nil)
	for _, m := range targets {
		m.SetOpacity(opacity)
	}
	return &component.Fade{
		Rate:    f.fadeRate * opacity / life,
		Targets: targets,
	}
}

func collectMaterials(h render.Handle, into []render.Material) []render.Material {
	for _, m := range h.Materials() {
		if m != nil {
			into = append(into, m)
		}
	}
	for _, c := range h.Children() {
		into = collectMaterials(c, into)
	}
	return into
}

// finish attaches the handle and spawns the effect. Whatever fails, nothing leaks.
func (f *Factory) finish(kind string, h render.Handle, g render.Group, e *component.Effect) types.EffectID {
	if err := f.attach(h, g); err != nil {
		f.log.Warnw("attach failed, effect dropped", "kind", kind, "err", err)
		f.sched.Reclaimer().Release(h)
		return 0
	}
	e.Handle, e.Group = h, g
	id := f.sched.Spawn(e)
	if id == 0 {
		f.detach(h, g)
		f.sched.Reclaimer().Release(h)
	}
	return id
}

func (f *Factory) attach(h render.Handle, g render.Group) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("host panicked on attach: %v", r)
		}
	}()
	return f.host.Attach(h, g)
}

func (f *Factory) detach(h render.Handle, g render.Group) {
	defer func() { _ = recover() }()
	_ = f.host.Detach(h, g)
}

func (f *Factory) color(v any) color.RGBA {
	return render.ParseColor(v, config.DefaultColor)
}

// builder collects every handle created while assembling one effect, so a failure
// half way releases exactly what was built.
type builder struct {
	f     *Factory
	kind  string
	parts []render.Handle
	err   error
}

func (f *Factory) builder(kind string) *builder {
	return &builder{f: f, kind: kind}
}

func (b *builder) make(fn func(render.Host) (render.Handle, error)) render.Handle {
	if b.err != nil {
		return nil
	}
	var (
		h   render.Handle
		err error
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("host panicked: %v", r)
			}
		}()
		h, err = fn(b.f.host)
	}()
	if err == nil && h == nil {
		err = fmt.Errorf("host returned no handle")
	}
	if err != nil {
		b.err = err
		return nil
	}
	b.parts = append(b.parts, h)
	return h
}

// group wraps children into a group handle. On success the children are owned by
// the group and no longer tracked on their own.
func (b *builder) group(children ...render.Handle) render.Handle {
	g := b.make(func(host render.Host) (render.Handle, error) { return host.NewGroup(children...) })
	if g == nil {
		return nil
	}
	owned := make(map[render.Handle]bool, len(children))
	for _, c := range children {
		owned[c] = true
	}
	kept := b.parts[:0]
	for _, p := range b.parts {
		if !owned[p] {
			kept = append(kept, p)
		}
	}
	b.parts = kept
	return g
}

// failed releases everything built so far when an error happened.
func (b *builder) failed() bool {
	if b.err == nil {
		return false
	}
	for _, p := range b.parts {
		b.f.sched.Reclaimer().Release(p)
	}
	b.parts = nil
	b.f.log.Warnw("effect construction failed", "kind", b.kind, "err", b.err)
	return true
}
