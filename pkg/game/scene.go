package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one screen of the application (loading, menu, a demo).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update handles input for the frame. deltaTime is in seconds.
	// Per-frame animation runs on the scene's ClockScope instead.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Disposable 是一个可选接口，场景销毁时释放资源
//
// SceneManager 在关闭场景的 ClockScope 之后、构造下一个场景之前调用 Dispose()。
type Disposable interface {
	Dispose()
}

// Resizable 是一个可选接口，窗口尺寸变化时重新布局
type Resizable interface {
	Resize(width, height int)
}
