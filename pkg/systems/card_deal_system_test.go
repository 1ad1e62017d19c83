package systems

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/showcase/pkg/components"
	"github.com/decker502/showcase/pkg/config"
	"github.com/decker502/showcase/pkg/ecs"
	"github.com/decker502/showcase/pkg/game"
)

type dealFixture struct {
	em      *ecs.EntityManager
	clock   *game.FrameClock
	scope   *game.ClockScope
	flight  *CardFlightSystem
	deal    *CardDealSystem
	targets []components.StackID
}

func newDealFixture(t *testing.T) *dealFixture {
	t.Helper()
	f := &dealFixture{em: ecs.NewEntityManager(), clock: game.NewFrameClock()}
	f.scope = f.clock.NewScope("cards")
	f.flight = NewCardFlightSystem(f.em, rand.New(rand.NewSource(7)))
	f.deal = NewCardDealSystem(f.em, f.flight, f.scope)
	f.deal.OnDeal = func(_ ecs.EntityID, target components.StackID) {
		f.targets = append(f.targets, target)
	}
	f.scope.OnTick(f.deal.Update)
	f.deal.CreateCards(config.CardCount, nil)
	return f
}

// runUntilComplete 每帧检查卡牌守恒，直到发牌完成
func (f *dealFixture) runUntilComplete(t *testing.T, dt float64, maxTicks int) {
	t.Helper()
	for i := 0; i < maxTicks && f.deal.State() != DealStateComplete; i++ {
		f.clock.Tick(dt)
		require.Equal(t, config.CardCount, f.deal.Counts().Total(), "card lost at tick %d", i)
	}
	require.Equal(t, DealStateComplete, f.deal.State())
}

func TestCardDeal_InitialState(t *testing.T) {
	f := newDealFixture(t)

	assert.Equal(t, DealStateIdle, f.deal.State())
	assert.Equal(t, StackCounts{Main: config.CardCount}, f.deal.Counts())

	// Idle 状态下时钟推进不会发牌
	f.clock.Tick(5)
	assert.Empty(t, f.targets)
}

func TestCardDeal_FirstCardAfterOneInterval(t *testing.T) {
	f := newDealFixture(t)
	f.deal.Start()

	f.clock.Tick(0.5)
	assert.Empty(t, f.targets)

	f.clock.Tick(0.6)
	require.Len(t, f.targets, 1)
	assert.Equal(t, StackCounts{Main: config.CardCount - 1, InFlight: 1}, f.deal.Counts())
}

func TestCardDeal_ConservationAndAlternation(t *testing.T) {
	f := newDealFixture(t)
	f.deal.Start()

	// 未加速：144 秒发牌 + 2 秒飞行
	f.runUntilComplete(t, 1.0/60, 160*60)

	require.Len(t, f.targets, config.CardCount)
	for i, target := range f.targets {
		if i%2 == 0 {
			assert.Equal(t, components.StackTop, target, "deal %d", i)
		} else {
			assert.Equal(t, components.StackBottom, target, "deal %d", i)
		}
	}
	assert.Equal(t, StackCounts{Top: config.CardCount / 2, Bottom: config.CardCount / 2}, f.deal.Counts())
}

func TestCardDeal_CompletionRemovesInterval(t *testing.T) {
	f := newDealFixture(t)
	f.deal.Start()
	f.deal.Boost()
	assert.Equal(t, 2, f.clock.Len())

	f.runUntilComplete(t, 1.0/60, 60*60)

	// 只剩场景的每帧回调
	assert.Equal(t, 1, f.clock.Len())

	f.clock.Tick(10)
	assert.Len(t, f.targets, config.CardCount)
}

func TestCardDeal_CardsSnapToSlots(t *testing.T) {
	f := newDealFixture(t)
	landed := 0
	f.deal.OnLand = func(ecs.EntityID) { landed++ }
	f.deal.Start()
	f.deal.Boost()
	f.runUntilComplete(t, 1.0/60, 60*60)

	slots := map[components.StackID]map[int]bool{
		components.StackTop:    {},
		components.StackBottom: {},
	}
	for _, id := range ecs.GetEntitiesWith1[*components.CardComponent](f.em) {
		card, _ := ecs.GetComponent[*components.CardComponent](f.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](f.em, id)
		rot, _ := ecs.GetComponent[*components.RotationComponent](f.em, id)

		x, y, r := SlotPosition(card.Stack, card.Slot)
		assert.Equal(t, x, pos.X)
		assert.Equal(t, y, pos.Y)
		assert.Equal(t, r, rot.Degrees)
		assert.False(t, ecs.HasComponent[*components.CardFlightComponent](f.em, id))

		require.False(t, slots[card.Stack][card.Slot], "slot %d of %s used twice", card.Slot, card.Stack)
		slots[card.Stack][card.Slot] = true
	}
	assert.Len(t, slots[components.StackTop], config.CardCount/2)
	assert.Len(t, slots[components.StackBottom], config.CardCount/2)
	assert.Equal(t, config.CardCount, landed)
}

func TestCardDeal_BoostIsIdempotent(t *testing.T) {
	f := newDealFixture(t)
	f.deal.Start()

	assert.True(t, f.deal.Boost())
	assert.True(t, f.deal.Boosted())
	interval, duration := f.deal.DealInterval(), f.deal.FlightDuration()

	assert.False(t, f.deal.Boost())
	assert.Equal(t, interval, f.deal.DealInterval())
	assert.Equal(t, duration, f.deal.FlightDuration())
	assert.Equal(t, config.BoostedDealInterval, interval)
	assert.Equal(t, config.BoostedFlightDuration, duration)
}

func TestCardDeal_BoostOnlyAffectsLaterFlights(t *testing.T) {
	f := newDealFixture(t)
	f.deal.Start()

	f.clock.Tick(1.05)
	require.Len(t, f.targets, 1)
	first := ecs.GetEntitiesWith1[*components.CardFlightComponent](f.em)
	require.Len(t, first, 1)

	f.deal.Boost()
	f.clock.Tick(0.005)
	f.clock.Tick(0.005)

	for _, id := range ecs.GetEntitiesWith1[*components.CardFlightComponent](f.em) {
		flight, _ := ecs.GetComponent[*components.CardFlightComponent](f.em, id)
		if id == first[0] {
			assert.Equal(t, config.FlightDuration, flight.Duration)
		} else {
			assert.Equal(t, config.BoostedFlightDuration, flight.Duration)
		}
	}
	assert.Greater(t, len(f.targets), 1)
}

func TestCardDeal_ZOrderPromotion(t *testing.T) {
	f := newDealFixture(t)
	f.deal.Start()

	f.deal.dealNext()
	f.deal.dealNext()

	render := NewRenderSystem(f.em)
	order := render.SortedSprites()
	require.Len(t, order, config.CardCount)

	// 最后发出的牌在最上层
	last := order[len(order)-1]
	card, _ := ecs.GetComponent[*components.CardComponent](f.em, last)
	assert.Equal(t, components.StackInFlight, card.Stack)
	assert.Equal(t, config.CardCount-2, card.Index)
}

func TestCardDeal_EmptyPileIsNoop(t *testing.T) {
	em := ecs.NewEntityManager()
	clock := game.NewFrameClock()
	flight := NewCardFlightSystem(em, nil)
	deal := NewCardDealSystem(em, flight, clock.NewScope("empty"))

	deal.dealNext()
	assert.Equal(t, StackCounts{}, deal.Counts())
}
