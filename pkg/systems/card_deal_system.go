package systems

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/showcase/pkg/components"
	"github.com/decker502/showcase/pkg/config"
	"github.com/decker502/showcase/pkg/ecs"
	"github.com/decker502/showcase/pkg/game"
)

// DealState 发牌流程状态
type DealState int

const (
	DealStateIdle DealState = iota
	DealStateDealing
	DealStateComplete
)

// String 返回 DealState 的字符串表示
func (s DealState) String() string {
	switch s {
	case DealStateIdle:
		return "Idle"
	case DealStateDealing:
		return "Dealing"
	case DealStateComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// StackCounts 各牌堆卡牌数量，四者之和恒等于卡牌总数
type StackCounts struct {
	Main, Top, Bottom, InFlight int
}

// Total 所有牌堆之和
func (c StackCounts) Total() int {
	return c.Main + c.Top + c.Bottom + c.InFlight
}

// CardDealSystem 发牌状态机 Idle → Dealing → Complete
//
// 发牌节奏由场景 ClockScope 上的 Interval 驱动；每次触发从主牌堆顶部取
// 一张牌，按 Top、Bottom 交替预留目标槽位并交给 CardFlightSystem。
type CardDealSystem struct {
	entityManager *ecs.EntityManager
	flight        *CardFlightSystem
	scope         *game.ClockScope

	state    DealState
	interval *game.Interval

	// mainPile 主牌堆，末尾为顶部
	mainPile   []ecs.EntityID
	nextTarget components.StackID
	reserved   map[components.StackID]int
	nextZ      int

	boosted        bool
	dealInterval   float64
	flightDuration float64

	// OnDeal 每发出一张牌回调（播放音效）
	OnDeal func(id ecs.EntityID, target components.StackID)
	// OnLand 卡牌落地回调（翻面）
	OnLand func(id ecs.EntityID)
	// OnComplete 全部落地后回调一次
	OnComplete func()
}

// NewCardDealSystem 创建发牌系统。flight 的落地回调由本系统接管。
func NewCardDealSystem(em *ecs.EntityManager, flight *CardFlightSystem, scope *game.ClockScope) *CardDealSystem {
	s := &CardDealSystem{
		entityManager:  em,
		flight:         flight,
		scope:          scope,
		nextTarget:     components.StackTop,
		reserved:       make(map[components.StackID]int),
		dealInterval:   config.DealInterval,
		flightDuration: config.FlightDuration,
	}
	flight.OnLand = s.landed
	return s
}

// CreateCards 在主牌堆创建 count 张背面朝上的卡牌，back 可以为 nil
func (s *CardDealSystem) CreateCards(count int, back *ebiten.Image) {
	for i := 0; i < count; i++ {
		id := s.entityManager.CreateEntity()
		x, y := PilePosition(i)

		ecs.AddComponent(s.entityManager, id, &components.CardComponent{Index: i, Stack: components.StackMain, Slot: i})
		ecs.AddComponent(s.entityManager, id, &components.PositionComponent{X: x, Y: y})
		ecs.AddComponent(s.entityManager, id, &components.RotationComponent{})
		ecs.AddComponent(s.entityManager, id, &components.ZOrderComponent{Z: i})
		ecs.AddComponent(s.entityManager, id, &components.SpriteComponent{
			Image:  back,
			Width:  config.CardWidth,
			Height: config.CardHeight,
		})
		s.mainPile = append(s.mainPile, id)
	}
	s.nextZ = count
	log.Printf("[CardDealSystem] Created %d cards", count)
}

// Start Idle → Dealing，注册发牌 Interval
func (s *CardDealSystem) Start() {
	if s.state != DealStateIdle {
		return
	}
	s.state = DealStateDealing
	s.interval = s.scope.SetInterval(s.dealInterval, s.dealNext)
	log.Printf("[CardDealSystem] Dealing %d cards every %.3fs", len(s.mainPile), s.dealInterval)
}

// Boost 单向加速：立即缩短发牌间隔，之后发出的牌使用更短的飞行时长。
// 第二次调用无效并返回 false。
func (s *CardDealSystem) Boost() bool {
	if s.boosted {
		return false
	}
	s.boosted = true
	s.dealInterval = config.BoostedDealInterval
	s.flightDuration = config.BoostedFlightDuration
	if s.interval != nil {
		s.interval.SetPeriod(s.dealInterval)
	}
	log.Printf("[CardDealSystem] Boosted")
	return true
}

// Boosted 是否已加速
func (s *CardDealSystem) Boosted() bool {
	return s.boosted
}

// State 当前状态
func (s *CardDealSystem) State() DealState {
	return s.state
}

// DealInterval 当前发牌间隔（秒）
func (s *CardDealSystem) DealInterval() float64 {
	return s.dealInterval
}

// FlightDuration 下一张牌的飞行时长（秒）
func (s *CardDealSystem) FlightDuration() float64 {
	return s.flightDuration
}

func (s *CardDealSystem) dealNext() {
	if len(s.mainPile) == 0 {
		return
	}
	id := s.mainPile[len(s.mainPile)-1]
	s.mainPile = s.mainPile[:len(s.mainPile)-1]

	target := s.nextTarget
	slot := s.reserved[target]
	s.reserved[target]++
	if target == components.StackTop {
		s.nextTarget = components.StackBottom
	} else {
		s.nextTarget = components.StackTop
	}

	s.promote(id)
	s.flight.Launch(id, target, slot, s.flightDuration)

	if s.OnDeal != nil {
		s.OnDeal(id, target)
	}
}

// promote 把卡牌提到最上层
func (s *CardDealSystem) promote(id ecs.EntityID) {
	if z, ok := ecs.GetComponent[*components.ZOrderComponent](s.entityManager, id); ok {
		z.Z = s.nextZ
		s.nextZ++
	}
}

func (s *CardDealSystem) landed(id ecs.EntityID) {
	s.promote(id)
	if s.OnLand != nil {
		s.OnLand(id)
	}
}

// Update 推进飞行补间并检测完成
func (s *CardDealSystem) Update(dt float64) {
	s.flight.Update(dt)

	if s.state != DealStateDealing {
		return
	}
	if len(s.mainPile) == 0 && s.flight.InFlight() == 0 {
		s.interval.Stop()
		s.state = DealStateComplete
		log.Printf("[CardDealSystem] Complete")
		if s.OnComplete != nil {
			s.OnComplete()
		}
	}
}

// Counts 按 CardComponent 实际归属统计各牌堆
func (s *CardDealSystem) Counts() StackCounts {
	var c StackCounts
	for _, id := range ecs.GetEntitiesWith1[*components.CardComponent](s.entityManager) {
		card, _ := ecs.GetComponent[*components.CardComponent](s.entityManager, id)
		switch card.Stack {
		case components.StackMain:
			c.Main++
		case components.StackTop:
			c.Top++
		case components.StackBottom:
			c.Bottom++
		case components.StackInFlight:
			c.InFlight++
		}
	}
	return c
}
