// Package utils 提供场景共用的小工具：输入、缩放、命中检测与缓动
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Pointer 当前帧的指针状态（鼠标或第一个触摸点），坐标为屏幕像素
type Pointer struct {
	X, Y int
	// Down 按住中
	Down bool
	// JustPressed/JustReleased 本帧刚按下/刚松开
	JustPressed  bool
	JustReleased bool
}

// 触摸释放时 ebiten 已拿不到位置，沿用最后一次触摸位置
var lastTouchX, lastTouchY int

// ReadPointer 读取本帧指针状态，优先触摸
func ReadPointer() Pointer {
	var p Pointer

	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		p.X, p.Y = ebiten.TouchPosition(touchIDs[0])
		lastTouchX, lastTouchY = p.X, p.Y
		p.Down = true
		p.JustPressed = len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
		return p
	}
	if len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
		p.X, p.Y = lastTouchX, lastTouchY
		p.JustReleased = true
		return p
	}

	p.X, p.Y = ebiten.CursorPosition()
	p.Down = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	p.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	p.JustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	return p
}

// IsBackPressed 返回键：桌面 Esc，Android 返回键
func IsBackPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyBackspace)
}

// IsAdvancePressed 对话推进键（空格/回车）
func IsAdvancePressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter)
}
