package config

// Dialogue Scene 配置常量
// 时间单位为秒

const (
	// DialogueDarkenDuration 入场遮罩变暗时长
	DialogueDarkenDuration float64 = 0.5

	// DialogueBannerDuration 对话框滑入时长
	DialogueBannerDuration float64 = 0.5

	// DialogueOverlayAlpha 遮罩最终透明度
	DialogueOverlayAlpha float64 = 0.6

	// DialogueAdvanceCooldown 两次推进之间的最短间隔
	DialogueAdvanceCooldown float64 = 0.25

	// DialogueBannerY 对话框最终位置（上边缘）
	DialogueBannerY float64 = 440

	// DialogueBannerSlide 对话框滑入的起始偏移
	DialogueBannerSlide float64 = 120

	// DialogueBannerMargin 对话框左右边距
	DialogueBannerMargin float64 = 80

	// DialogueBannerHeight 对话框高度
	DialogueBannerHeight float64 = 220

	// DialoguePortraitSize 头像尺寸
	DialoguePortraitSize float64 = 160

	// DialogueTextPadding 文字内边距
	DialogueTextPadding float64 = 28

	// DialogueFontSize 正文字体大小，表情图片与之等高
	DialogueFontSize float64 = 26

	// DialogueNameFontSize 说话者名字字体大小
	DialogueNameFontSize float64 = 30

	// DialogueIndicatorAmplitude 继续提示的上下浮动幅度
	DialogueIndicatorAmplitude float64 = 6

	// DialogueIndicatorSpeed 继续提示的角速度（弧度/秒）
	DialogueIndicatorSpeed float64 = 4

	// DialogueUnknownAvatar 未知说话者使用的头像名
	DialogueUnknownAvatar = "unknown"

	// DialogueFallbackGlyph 未知表情的占位字符
	DialogueFallbackGlyph = "?"
)
