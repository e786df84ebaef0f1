package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-vfx-engine/internal/component"
)

func TestAddWhileLockedIsParked(t *testing.T) {
	ecs := NewECS()
	a := &component.Effect{ID: ecs.NewEntity()}
	ecs.Add(a)

	ecs.Lock()
	b := &component.Effect{ID: ecs.NewEntity()}
	ecs.Add(b)
	assert.Len(t, ecs.Effects, 1)
	assert.Equal(t, 2, ecs.Len())
	found, ok := ecs.Find(b.ID)
	require.True(t, ok)
	assert.Same(t, b, found)

	ecs.Unlock()
	assert.False(t, ecs.Locked())
	assert.Equal(t, []*component.Effect{a, b}, ecs.Effects)
}

func TestRemoveKeepsOrder(t *testing.T) {
	ecs := NewECS()
	for i := 0; i < 5; i++ {
		ecs.Add(&component.Effect{ID: ecs.NewEntity()})
	}
	var removed []uint64
	n := ecs.Remove(
		func(i int, _ *component.Effect) bool { return i%2 == 0 },
		func(e *component.Effect) { removed = append(removed, uint64(e.ID)) },
	)
	assert.Equal(t, 3, n)
	assert.Equal(t, []uint64{1, 3, 5}, removed)
	require.Len(t, ecs.Effects, 2)
	assert.EqualValues(t, 2, ecs.Effects[0].ID)
	assert.EqualValues(t, 4, ecs.Effects[1].ID)
}

func TestDrainTakesParked(t *testing.T) {
	ecs := NewECS()
	ecs.Add(&component.Effect{ID: ecs.NewEntity()})
	ecs.Lock()
	ecs.Add(&component.Effect{ID: ecs.NewEntity()})

	all := ecs.Drain()
	assert.Len(t, all, 2)
	assert.Equal(t, 0, ecs.Len())
	_, ok := ecs.Find(1)
	assert.False(t, ok)
}
