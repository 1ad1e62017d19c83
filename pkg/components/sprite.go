package components

import "github.com/hajimehoshi/ebiten/v2"

// SpriteComponent 存储实体的视觉表现(当前绘制的图像)
// Width/Height 是绘制尺寸，图像会缩放到该尺寸；Image 为 nil 时绘制占位矩形
type SpriteComponent struct {
	Image  *ebiten.Image
	Width  float64
	Height float64
}
