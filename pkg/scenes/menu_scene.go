package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/showcase/pkg/config"
	"github.com/decker502/showcase/pkg/game"
	"github.com/decker502/showcase/pkg/utils"
)

type menuButton struct {
	rect  utils.Rect
	entry config.MenuEntry
}

// MenuScene 主菜单：三个场景按钮，背景播放循环视频
type MenuScene struct {
	chrome

	buttons []menuButton
	hovered int
}

// NewMenuScene 创建主菜单并播放菜单音乐
func NewMenuScene(svc *Services, scope *game.ClockScope) *MenuScene {
	s := &MenuScene{chrome: newChrome(svc), hovered: -1}
	for i, entry := range config.MenuEntries {
		s.buttons = append(s.buttons, menuButton{
			rect: utils.CenteredRect(config.DesignWidth/2,
				config.MenuFirstButtonY+float64(i)*config.MenuButtonSpacing,
				config.MenuButtonWidth, config.MenuButtonHeight),
			entry: entry,
		})
	}
	if svc.Audio != nil && svc.Audio.CurrentMusic() != config.AssetMusicMenu {
		svc.Audio.PlayMusic(config.AssetMusicMenu)
	}
	return s
}

// ButtonAt 返回设计坐标下命中的按钮索引，未命中返回 -1
func (s *MenuScene) ButtonAt(x, y float64) int {
	for i, b := range s.buttons {
		if b.rect.Contains(x, y) {
			return i
		}
	}
	return -1
}

// Select 进入第 i 个菜单项
func (s *MenuScene) Select(i int) {
	if i < 0 || i >= len(s.buttons) {
		return
	}
	s.click()
	s.svc.Scenes.Navigate(s.buttons[i].entry.Scene)
}

// Update 处理悬停、点击和数字键
func (s *MenuScene) Update(deltaTime float64) {
	p, x, y := s.pointer()
	s.hovered = s.ButtonAt(x, y)
	if p.JustPressed && s.hovered >= 0 {
		s.Select(s.hovered)
		return
	}
	for i := range s.buttons {
		if inpututil.IsKeyJustPressed(ebiten.KeyDigit1 + ebiten.Key(i)) {
			s.Select(i)
			return
		}
	}
}

// Draw 绘制背景视频、标题和按钮
func (s *MenuScene) Draw(screen *ebiten.Image) {
	s.drawBackground(screen, s.svc.Cache.Image(config.VideoTextureKey(config.AssetBackgroundVideo)))
	s.fillRect(screen, utils.Rect{W: config.DesignWidth, H: config.DesignHeight}, config.BackgroundOverlayColor)

	s.drawText(screen, "Showcase", config.MenuTitleFontSize, config.DesignWidth/2, config.MenuTitleY, text.AlignCenter, config.TextColor)
	for i, b := range s.buttons {
		s.drawButton(screen, b.rect, b.entry.Label, config.UIFontSize, i == s.hovered)
	}
	s.drawText(screen, "1-3: open   M: mute   F11: fullscreen   Esc: back",
		config.UISmallFontSize, config.DesignWidth/2, config.MenuHintY, text.AlignCenter, config.DimTextColor)
	s.drawFPS(screen)
}
