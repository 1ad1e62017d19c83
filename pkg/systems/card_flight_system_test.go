package systems

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/showcase/pkg/components"
	"github.com/decker502/showcase/pkg/ecs"
)

func newCard(em *ecs.EntityManager, x, y, degrees float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.CardComponent{Stack: components.StackMain})
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.RotationComponent{Degrees: degrees})
	return id
}

func TestCardFlight_EaseOutConvergence(t *testing.T) {
	em := ecs.NewEntityManager()
	fs := NewCardFlightSystem(em, nil)
	landed := 0
	fs.OnLand = func(ecs.EntityID) { landed++ }

	id := newCard(em, 0, 0, 0)
	fs.Launch(id, components.StackTop, 3, 2.0)
	toX, toY, toRot := SlotPosition(components.StackTop, 3)

	card, _ := ecs.GetComponent[*components.CardComponent](em, id)
	assert.Equal(t, components.StackInFlight, card.Stack)
	assert.Equal(t, 1, fs.InFlight())

	// 半程：1-(1-0.5)^3 = 0.875
	fs.Update(1.0)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	rot, _ := ecs.GetComponent[*components.RotationComponent](em, id)
	assert.InDelta(t, 0.875*toX, pos.X, 1e-2)
	assert.InDelta(t, 0.875*toY, pos.Y, 1e-2)
	assert.InDelta(t, 0.875*toRot, rot.Degrees, 1e-2)
	assert.Equal(t, 0, landed)

	fs.Update(1.0)
	assert.Equal(t, toX, pos.X)
	assert.Equal(t, toY, pos.Y)
	assert.Equal(t, toRot, rot.Degrees)
	assert.Equal(t, components.StackTop, card.Stack)
	assert.Equal(t, 3, card.Slot)
	assert.False(t, ecs.HasComponent[*components.CardFlightComponent](em, id))
	assert.Equal(t, 0, fs.InFlight())
	assert.Equal(t, 1, landed)
}

func TestCardFlight_MonotonicApproach(t *testing.T) {
	em := ecs.NewEntityManager()
	fs := NewCardFlightSystem(em, nil)
	id := newCard(em, 0, 0, 0)
	fs.Launch(id, components.StackBottom, 0, 0.5)
	toX, _, _ := SlotPosition(components.StackBottom, 0)

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	prev := pos.X
	for i := 0; i < 40; i++ {
		fs.Update(1.0 / 60)
		require.GreaterOrEqual(t, pos.X, prev)
		require.LessOrEqual(t, pos.X, toX)
		prev = pos.X
	}
	assert.Equal(t, toX, pos.X)
	assert.Equal(t, 0, fs.InFlight())
}

func TestCardFlight_ShortestRotation(t *testing.T) {
	em := ecs.NewEntityManager()
	fs := NewCardFlightSystem(em, nil)

	id := newCard(em, 0, 0, 0)
	fs.Launch(id, components.StackBottom, 0, 1)
	flight, ok := ecs.GetComponent[*components.CardFlightComponent](em, id)
	require.True(t, ok)
	// 0° → 270° 走 -90°
	assert.Equal(t, -90.0, flight.ToRotation)

	fs.Update(1)
	rot, _ := ecs.GetComponent[*components.RotationComponent](em, id)
	assert.Equal(t, 270.0, rot.Degrees)
}

func TestShortestRotationDelta(t *testing.T) {
	tests := []struct {
		from, to, want float64
	}{
		{0, 90, 90},
		{0, 270, -90},
		{350, 90, 100},
		{90, 0, -90},
		{-30, 30, 60},
		{720, 90, 90},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ShortestRotationDelta(tt.from, tt.to, nil), "%v → %v", tt.from, tt.to)
	}

	assert.Equal(t, 180.0, ShortestRotationDelta(90, 270, nil))

	rng := rand.New(rand.NewSource(3))
	seen := map[float64]bool{}
	for i := 0; i < 64; i++ {
		d := ShortestRotationDelta(90, 270, rng)
		require.Contains(t, []float64{180, -180}, d)
		seen[d] = true
	}
	assert.Len(t, seen, 2, "tie should pick both directions")
}

func TestSlotPositionStacksThickness(t *testing.T) {
	x0, y0, r0 := SlotPosition(components.StackTop, 0)
	x1, y1, r1 := SlotPosition(components.StackTop, 1)
	assert.Less(t, x1, x0)
	assert.Less(t, y1, y0)
	assert.Equal(t, r0, r1)
	assert.Equal(t, 90.0, r0)

	_, _, rb := SlotPosition(components.StackBottom, 5)
	assert.Equal(t, 270.0, rb)

	assert.Equal(t, 0.0, NormalizeDegrees(360))
	assert.Equal(t, 270.0, NormalizeDegrees(-90))
}
