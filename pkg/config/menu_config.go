package config

// Menu Scene 配置常量

const (
	// MenuTitleY 标题 Y 坐标
	MenuTitleY float64 = 150

	// MenuTitleFontSize 标题字体大小
	MenuTitleFontSize float64 = 56

	// MenuButtonWidth 菜单按钮尺寸
	MenuButtonWidth  float64 = 360
	MenuButtonHeight float64 = 72

	// MenuFirstButtonY 第一个按钮的 Y 坐标
	MenuFirstButtonY float64 = 280

	// MenuButtonSpacing 按钮之间的垂直间距
	MenuButtonSpacing float64 = 100

	// MenuHintY 底部提示文字
	MenuHintY float64 = 650
)

// MenuEntry 菜单项
type MenuEntry struct {
	Label string
	Scene string
}

// MenuEntries 菜单中的场景按钮，自上而下
var MenuEntries = []MenuEntry{
	{Label: "Card Dealing", Scene: SceneCards},
	{Label: "Magic Words", Scene: SceneDialogue},
	{Label: "Phoenix Flame", Scene: SceneFlame},
}
