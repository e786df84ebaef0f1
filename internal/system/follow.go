// internal/system/follow.go
package system

import (
	"go-vfx-engine/internal/component"
	"go-vfx-engine/pkg/render"
)

// applyFollow snaps the handle onto the followed entity. An entity that can no
// longer be queried releases the attachment; the effect stays where it was.
func applyFollow(e *component.Effect, _ Frame) {
	a := e.Attachment
	if a == nil {
		return
	}
	if a.Target == nil {
		e.Attachment = nil
		return
	}
	p, ok := a.Target.WorldPosition()
	if !ok {
		e.Attachment = nil
		return
	}
	e.Handle.SetPosition(p.Add(render.V3(0, a.OffsetY, 0)))
}
