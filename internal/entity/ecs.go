// internal/entity/ecs.go
package entity

import (
	"go-vfx-engine/internal/component"
	"go-vfx-engine/internal/types"
)

// ECS хранит живые эффекты в порядке добавления. Ячейка слайса это единственное
// место, где живёт эффект.
type ECS struct {
	GameTime float64
	NextID   types.EffectID
	Effects  []*component.Effect

	// pending holds effects added while the collection is being iterated.
	pending []*component.Effect
	locked  bool
}

func NewECS() *ECS {
	return &ECS{
		NextID:  1,
		Effects: make([]*component.Effect, 0, 128),
	}
}

func (ecs *ECS) NewEntity() types.EffectID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// Add inserts an effect. While the collection is locked the effect is parked and
// joins on Unlock.
func (ecs *ECS) Add(e *component.Effect) {
	if ecs.locked {
		ecs.pending = append(ecs.pending, e)
		return
	}
	ecs.Effects = append(ecs.Effects, e)
}

// Lock marks the start of an iteration over Effects.
func (ecs *ECS) Lock() { ecs.locked = true }

// Unlock ends the iteration and appends everything added in the meantime.
func (ecs *ECS) Unlock() {
	ecs.locked = false
	if len(ecs.pending) == 0 {
		return
	}
	ecs.Effects = append(ecs.Effects, ecs.pending...)
	for i := range ecs.pending {
		ecs.pending[i] = nil
	}
	ecs.pending = ecs.pending[:0]
}

// Locked reports whether an iteration is in progress.
func (ecs *ECS) Locked() bool { return ecs.locked }

// Len returns the number of live effects, parked ones included.
func (ecs *ECS) Len() int {
	return len(ecs.Effects) + len(ecs.pending)
}

// Remove drops every effect for which dead returns true, keeping the order of the
// rest. dead receives the slot index. removed is called for each dropped effect in
// the same step, after its slot is gone.
func (ecs *ECS) Remove(dead func(i int, e *component.Effect) bool, removed func(*component.Effect)) int {
	kept := ecs.Effects[:0]
	var gone []*component.Effect
	for i, e := range ecs.Effects {
		if dead(i, e) {
			gone = append(gone, e)
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(ecs.Effects); i++ {
		ecs.Effects[i] = nil
	}
	ecs.Effects = kept
	for _, e := range gone {
		removed(e)
	}
	return len(gone)
}

// Drain empties the collection, parked effects included, and returns what it held.
func (ecs *ECS) Drain() []*component.Effect {
	all := append(ecs.Effects, ecs.pending...)
	ecs.Effects = make([]*component.Effect, 0, cap(ecs.Effects))
	ecs.pending = nil
	return all
}

// Find returns the live effect with the given id.
func (ecs *ECS) Find(id types.EffectID) (*component.Effect, bool) {
	for _, e := range ecs.Effects {
		if e.ID == id {
			return e, true
		}
	}
	for _, e := range ecs.pending {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}
