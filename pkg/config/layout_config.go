package config

// 设计分辨率，所有布局常量都基于此尺寸，运行时通过 utils.Scale 缩放
const (
	DesignWidth  float64 = 1280
	DesignHeight float64 = 720
)

// 场景名称（--scene 参数与 start_scene 配置使用）
const (
	SceneLoading  = "loading"
	SceneMenu     = "menu"
	SceneCards    = "cards"
	SceneDialogue = "dialogue"
	SceneFlame    = "flame"
)

// IsSceneName 检查是否是可直接进入的场景名
func IsSceneName(name string) bool {
	switch name {
	case SceneMenu, SceneCards, SceneDialogue, SceneFlame:
		return true
	}
	return false
}

// 通用 UI
const (
	// UIFontSize 默认字体大小（设计分辨率下）
	UIFontSize float64 = 22

	// UISmallFontSize FPS、提示文字
	UISmallFontSize float64 = 14

	// BackButtonX 返回按钮左上角
	BackButtonX float64 = 20
	BackButtonY float64 = 20

	// BackButtonWidth 返回按钮尺寸
	BackButtonWidth  float64 = 120
	BackButtonHeight float64 = 44

	// FPSTextX FPS 显示位置（右上角，相对右边缘）
	FPSTextMarginRight float64 = 110
	FPSTextY           float64 = 12
)
