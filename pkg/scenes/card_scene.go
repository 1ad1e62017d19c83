package scenes

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/showcase/pkg/components"
	"github.com/decker502/showcase/pkg/config"
	"github.com/decker502/showcase/pkg/ecs"
	"github.com/decker502/showcase/pkg/game"
	"github.com/decker502/showcase/pkg/systems"
	"github.com/decker502/showcase/pkg/utils"
)

// CardScene 发牌演示
//
// 144 张牌从主牌堆交替发往上下两个牌堆。发牌节奏与飞行补间都挂在场景的
// ClockScope 上，离开场景时随作用域一起移除。
type CardScene struct {
	chrome

	entityManager *ecs.EntityManager
	dealSystem    *systems.CardDealSystem
	renderSystem  *systems.RenderSystem

	table *ebiten.Image
	faces []*ebiten.Image

	boostButton  utils.Rect
	boostHovered bool
}

// NewCardScene 创建卡牌并立即开始发牌
func NewCardScene(svc *Services, scope *game.ClockScope) *CardScene {
	em := ecs.NewEntityManager()
	flight := systems.NewCardFlightSystem(em, svc.Rand)

	s := &CardScene{
		chrome:        newChrome(svc),
		entityManager: em,
		dealSystem:    systems.NewCardDealSystem(em, flight, scope),
		renderSystem:  systems.NewRenderSystem(em),
		table:         svc.Cache.Image(config.AssetTable),
		boostButton: utils.Rect{
			X: config.BoostButtonX, Y: config.BoostButtonY,
			W: config.BoostButtonWidth, H: config.BoostButtonHeight,
		},
	}
	for _, key := range config.CardFaceKeys {
		if img := svc.Cache.Image(key); img != nil {
			s.faces = append(s.faces, img)
		}
	}

	s.dealSystem.OnDeal = func(ecs.EntityID, components.StackID) {
		if svc.Audio != nil {
			svc.Audio.PlaySound(config.AssetSoundDeal)
		}
	}
	s.dealSystem.OnLand = s.reveal

	scope.OnTick(s.dealSystem.Update)
	s.dealSystem.CreateCards(config.CardCount, svc.Cache.Image(config.AssetCardBack))
	s.dealSystem.Start()
	return s
}

// reveal 落地的牌翻到正面
func (s *CardScene) reveal(id ecs.EntityID) {
	if len(s.faces) == 0 {
		return
	}
	card, ok := ecs.GetComponent[*components.CardComponent](s.entityManager, id)
	if !ok {
		return
	}
	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id); ok {
		sprite.Image = s.faces[card.Index%len(s.faces)]
	}
}

// Boost 加速发牌；按钮随之消失
func (s *CardScene) Boost() {
	if s.dealSystem.Boost() {
		s.click()
	}
}

// Update 处理返回与加速输入
func (s *CardScene) Update(deltaTime float64) {
	p, x, y := s.pointer()
	if s.handleBack(p, x, y) {
		return
	}
	if s.dealSystem.Boosted() {
		return
	}
	s.boostHovered = s.boostButton.Contains(x, y)
	if (p.JustPressed && s.boostHovered) || inpututil.IsKeyJustPressed(ebiten.KeyB) {
		s.Boost()
	}
}

// Draw 绘制牌桌、卡牌和计数
func (s *CardScene) Draw(screen *ebiten.Image) {
	s.drawBackground(screen, s.table)
	s.renderSystem.DrawSprites(screen, s.viewport)

	c := s.dealSystem.Counts()
	status := fmt.Sprintf("Pile %d   Top %d   Bottom %d   In flight %d", c.Main, c.Top, c.Bottom, c.InFlight)
	if s.dealSystem.State() == systems.DealStateComplete {
		status = fmt.Sprintf("All %d cards dealt", c.Total())
	}
	s.drawText(screen, status, config.UIFontSize, config.DesignWidth/2, config.CardCounterY, text.AlignCenter, config.TextColor)

	if !s.dealSystem.Boosted() {
		s.drawButton(screen, s.boostButton, "Boost (B)", config.UIFontSize, s.boostHovered)
	}
	s.drawBackButton(screen)
	s.drawFPS(screen)
}

// Dispose 清空实体
func (s *CardScene) Dispose() {
	s.entityManager.Clear()
}
