package systems

import (
	"log"
	"math/rand"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/decker502/showcase/pkg/components"
	"github.com/decker502/showcase/pkg/ecs"
)

// CardFlightSystem 驱动飞行中卡牌的位移与旋转补间
//
// 三个 gween.Tween（x、y、角度）使用 ease.OutCubic。补间结束时卡牌
// 精确吸附到目标槽位，移除 CardFlightComponent 并归入目标牌堆。
type CardFlightSystem struct {
	entityManager *ecs.EntityManager
	rng           *rand.Rand

	// OnLand 卡牌落地后回调（用于提升 Z 序）
	OnLand func(id ecs.EntityID)
}

// NewCardFlightSystem 创建卡牌飞行系统
func NewCardFlightSystem(em *ecs.EntityManager, rng *rand.Rand) *CardFlightSystem {
	return &CardFlightSystem{entityManager: em, rng: rng}
}

// Launch 让卡牌从当前状态飞向 target 牌堆的 slot 槽位
func (s *CardFlightSystem) Launch(id ecs.EntityID, target components.StackID, slot int, duration float64) {
	card, ok := ecs.GetComponent[*components.CardComponent](s.entityManager, id)
	if !ok {
		return
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	rot, _ := ecs.GetComponent[*components.RotationComponent](s.entityManager, id)
	if pos == nil || rot == nil {
		log.Printf("[CardFlightSystem] Card %d has no transform, skipping", id)
		return
	}

	toX, toY, toRot := SlotPosition(target, slot)
	toRot = rot.Degrees + ShortestRotationDelta(rot.Degrees, toRot, s.rng)

	d := float32(duration)
	ecs.AddComponent(s.entityManager, id, &components.CardFlightComponent{
		Target:        target,
		FromX:         pos.X,
		FromY:         pos.Y,
		FromRotation:  rot.Degrees,
		ToX:           toX,
		ToY:           toY,
		ToRotation:    toRot,
		Duration:      duration,
		TweenX:        gween.New(float32(pos.X), float32(toX), d, ease.OutCubic),
		TweenY:        gween.New(float32(pos.Y), float32(toY), d, ease.OutCubic),
		TweenRotation: gween.New(float32(rot.Degrees), float32(toRot), d, ease.OutCubic),
	})

	card.Stack = components.StackInFlight
	card.Slot = slot
}

// Update 推进所有飞行中的卡牌
func (s *CardFlightSystem) Update(dt float64) {
	ids := ecs.GetEntitiesWith3[
		*components.CardFlightComponent,
		*components.PositionComponent,
		*components.RotationComponent,
	](s.entityManager)

	for _, id := range ids {
		flight, _ := ecs.GetComponent[*components.CardFlightComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		rot, _ := ecs.GetComponent[*components.RotationComponent](s.entityManager, id)

		flight.Elapsed += dt
		x, doneX := flight.TweenX.Update(float32(dt))
		y, doneY := flight.TweenY.Update(float32(dt))
		r, doneR := flight.TweenRotation.Update(float32(dt))

		if (doneX && doneY && doneR) || flight.Elapsed >= flight.Duration {
			s.land(id, flight, pos, rot)
			continue
		}
		pos.X, pos.Y = float64(x), float64(y)
		rot.Degrees = float64(r)
	}
}

func (s *CardFlightSystem) land(id ecs.EntityID, flight *components.CardFlightComponent, pos *components.PositionComponent, rot *components.RotationComponent) {
	pos.X, pos.Y = flight.ToX, flight.ToY
	rot.Degrees = NormalizeDegrees(flight.ToRotation)

	if card, ok := ecs.GetComponent[*components.CardComponent](s.entityManager, id); ok {
		card.Stack = flight.Target
	}
	ecs.RemoveComponent[*components.CardFlightComponent](s.entityManager, id)

	if s.OnLand != nil {
		s.OnLand(id)
	}
}

// InFlight 当前飞行中的卡牌数量
func (s *CardFlightSystem) InFlight() int {
	return len(ecs.GetEntitiesWith1[*components.CardFlightComponent](s.entityManager))
}
