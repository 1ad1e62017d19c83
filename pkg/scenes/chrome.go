package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/showcase/pkg/config"
	"github.com/decker502/showcase/pkg/utils"
)

// chrome 是各场景共用的外壳：视口缩放、返回按钮、FPS 与基础绘制
// 场景嵌入它后自动实现 game.Resizable。
type chrome struct {
	svc      *Services
	viewport utils.Viewport

	backButton  utils.Rect
	backHovered bool
}

func newChrome(svc *Services) chrome {
	return chrome{
		svc:        svc,
		viewport:   utils.Scale(int(config.DesignWidth), int(config.DesignHeight), config.DesignWidth, config.DesignHeight),
		backButton: utils.Rect{X: config.BackButtonX, Y: config.BackButtonY, W: config.BackButtonWidth, H: config.BackButtonHeight},
	}
}

// Resize 窗口尺寸变化时重新计算视口
func (c *chrome) Resize(width, height int) {
	c.viewport = utils.Scale(width, height, config.DesignWidth, config.DesignHeight)
}

// pointer 读取指针并换算为设计坐标
func (c *chrome) pointer() (utils.Pointer, float64, float64) {
	p := utils.ReadPointer()
	x, y := c.viewport.ToDesign(p.X, p.Y)
	return p, x, y
}

// handleBack 处理返回键与返回按钮，返回是否已请求回到菜单
func (c *chrome) handleBack(p utils.Pointer, x, y float64) bool {
	c.backHovered = c.backButton.Contains(x, y)
	if utils.IsBackPressed() || (p.JustPressed && c.backHovered) {
		c.click()
		c.svc.Scenes.Navigate(config.SceneMenu)
		return true
	}
	return false
}

func (c *chrome) click() {
	if c.svc.Audio != nil {
		c.svc.Audio.PlaySound(config.AssetSoundClick)
	}
}

func (c *chrome) face(size float64) *text.GoTextFace {
	return c.svc.Fonts.Face(c.viewport.Length(size))
}

// drawText 在设计坐标 (x, y) 绘制文字，align 控制水平对齐
func (c *chrome) drawText(screen *ebiten.Image, s string, size, x, y float64, align text.Align, clr color.Color) {
	if c.svc.Fonts == nil {
		return
	}
	op := &text.DrawOptions{}
	op.PrimaryAlign = align
	sx, sy := c.viewport.ToScreen(x, y)
	op.GeoM.Translate(sx, sy)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, c.face(size), op)
}

func (c *chrome) fillRect(screen *ebiten.Image, r utils.Rect, clr color.Color) {
	x, y := c.viewport.ToScreen(r.X, r.Y)
	vector.FillRect(screen, float32(x), float32(y),
		float32(c.viewport.Length(r.W)), float32(c.viewport.Length(r.H)), clr, true)
}

func (c *chrome) strokeRect(screen *ebiten.Image, r utils.Rect, width float64, clr color.Color) {
	x, y := c.viewport.ToScreen(r.X, r.Y)
	vector.StrokeRect(screen, float32(x), float32(y),
		float32(c.viewport.Length(r.W)), float32(c.viewport.Length(r.H)),
		float32(c.viewport.Length(width)), clr, true)
}

func (c *chrome) drawButton(screen *ebiten.Image, r utils.Rect, label string, size float64, hovered bool) {
	fill := config.ButtonColor
	if hovered {
		fill = config.ButtonHoverColor
	}
	c.fillRect(screen, r, fill)
	c.strokeRect(screen, r, 2, config.ButtonBorderColor)
	cx, cy := r.Center()
	c.drawText(screen, label, size, cx, cy-size*0.6, text.AlignCenter, config.TextColor)
}

func (c *chrome) drawBackButton(screen *ebiten.Image) {
	c.drawButton(screen, c.backButton, "< Back", config.UIFontSize, c.backHovered)
}

func (c *chrome) drawFPS(screen *ebiten.Image) {
	c.drawText(screen, fmt.Sprintf("FPS %.0f", ebiten.ActualFPS()), config.UISmallFontSize,
		config.DesignWidth-config.FPSTextMarginRight, config.FPSTextY, text.AlignStart, config.DimTextColor)
}

// drawImageRect 把 img 缩放绘制到设计坐标矩形 r
func (c *chrome) drawImageRect(screen *ebiten.Image, img *ebiten.Image, r utils.Rect, alpha float64) {
	if img == nil {
		return
	}
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(r.W/float64(b.Dx()), r.H/float64(b.Dy()))
	op.GeoM.Translate(r.X, r.Y)
	c.viewport.Apply(&op.GeoM)
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(img, op)
}

// drawBackground 等比铺满设计区域；img 为 nil 时填充底色
func (c *chrome) drawBackground(screen *ebiten.Image, img *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	if img == nil {
		return
	}
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	s := max(config.DesignWidth/w, config.DesignHeight/h)
	c.drawImageRect(screen, img, utils.Rect{
		X: (config.DesignWidth - w*s) / 2,
		Y: (config.DesignHeight - h*s) / 2,
		W: w * s,
		H: h * s,
	}, 1)
}
