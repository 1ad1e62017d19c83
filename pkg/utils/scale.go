package utils

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Viewport 把设计分辨率等比映射到实际窗口（居中留黑边）
//
// 场景逻辑全部使用设计坐标，只有绘制和输入换算经过 Viewport。
type Viewport struct {
	Width, Height int // 实际屏幕尺寸

	Scale            float64
	OffsetX, OffsetY float64
}

// Scale 计算 outside 尺寸下的 Viewport；尺寸非法时退化为 1:1
func Scale(outsideW, outsideH int, designW, designH float64) Viewport {
	if outsideW <= 0 || outsideH <= 0 || designW <= 0 || designH <= 0 {
		return Viewport{Width: int(designW), Height: int(designH), Scale: 1}
	}
	s := math.Min(float64(outsideW)/designW, float64(outsideH)/designH)
	return Viewport{
		Width:   outsideW,
		Height:  outsideH,
		Scale:   s,
		OffsetX: (float64(outsideW) - designW*s) / 2,
		OffsetY: (float64(outsideH) - designH*s) / 2,
	}
}

// ToScreen 设计坐标 → 屏幕坐标
func (v Viewport) ToScreen(x, y float64) (float64, float64) {
	return x*v.Scale + v.OffsetX, y*v.Scale + v.OffsetY
}

// ToDesign 屏幕坐标 → 设计坐标（用于指针输入）
func (v Viewport) ToDesign(sx, sy int) (float64, float64) {
	if v.Scale == 0 {
		return float64(sx), float64(sy)
	}
	return (float64(sx) - v.OffsetX) / v.Scale, (float64(sy) - v.OffsetY) / v.Scale
}

// Length 把设计尺寸（字号、线宽）换算为屏幕像素
func (v Viewport) Length(l float64) float64 {
	return l * v.Scale
}

// Apply 在 geo 之后追加设计 → 屏幕变换
func (v Viewport) Apply(geo *ebiten.GeoM) {
	geo.Scale(v.Scale, v.Scale)
	geo.Translate(v.OffsetX, v.OffsetY)
}
