package system

import (
	"go.uber.org/zap"

	"go-vfx-engine/internal/component"
	"go-vfx-engine/internal/event"
	"go-vfx-engine/internal/logging"
	"go-vfx-engine/pkg/render"
)

// Reclaimer возвращает ресурсы истёкших эффектов хосту
type Reclaimer struct {
	host   render.Host
	events *event.Dispatcher
	log    *zap.SugaredLogger
}

func NewReclaimer(host render.Host, events *event.Dispatcher, log *zap.SugaredLogger) *Reclaimer {
	return &Reclaimer{host: host, events: events, log: logging.OrNop(log)}
}

// Reclaim detaches the effect's handle from its group and releases everything it
// owns. It returns the number of resources that failed to dispose. The scheduler
// calls it once per effect, in the same step the effect leaves the collection.
func (r *Reclaimer) Reclaim(e *component.Effect) int {
	failures := 0
	if e.Handle != nil {
		if err := guardErr(func() error { return r.host.Detach(e.Handle, e.Group) }); err != nil {
			r.log.Warnw("detach failed", "effect", e.ID, "group", e.Group, "err", err)
		}
		failures = r.Release(e.Handle)
	}
	r.events.Dispatch(event.Event{Type: event.EffectReclaimed, Data: event.Reclaimed{ID: e.ID, Failures: failures}})
	return failures
}

// Release disposes a handle that is not attached anywhere: children first, then
// geometry, then each material's texture and the material itself. Missing parts are
// skipped and a failing part does not stop its siblings.
func (r *Reclaimer) Release(h render.Handle) int {
	if h == nil {
		return 0
	}
	failures := 0

	var (
		children  []render.Handle
		geometry  render.Disposable
		materials []render.Material
	)
	if err := guard(func() {
		children = h.Children()
		geometry = h.Geometry()
		materials = h.Materials()
	}); err != nil {
		r.log.Errorw("inspect handle failed", "err", err)
		failures++
	}

	for _, c := range children {
		failures += r.Release(c)
	}
	failures += r.dispose("geometry", geometry)
	for _, m := range materials {
		if m == nil {
			continue
		}
		var tex render.Disposable
		if err := guard(func() { tex = m.Texture() }); err != nil {
			r.log.Errorw("inspect material failed", "err", err)
			failures++
		}
		failures += r.dispose("texture", tex)
		failures += r.dispose("material", m)
	}
	return failures
}

func (r *Reclaimer) dispose(kind string, d render.Disposable) int {
	if d == nil {
		return 0
	}
	if err := guardErr(d.Dispose); err != nil {
		r.log.Errorw("dispose failed, resource may leak", "kind", kind, "err", err)
		r.events.Dispatch(event.Event{Type: event.DisposeFailed, Data: err})
		return 1
	}
	return 0
}
