package config

import "image/color"

// 界面配色
var (
	// BackgroundColor 无背景贴图时的底色
	BackgroundColor = color.RGBA{18, 22, 30, 255}

	// BackgroundOverlayColor 背景视频上的半透明遮罩
	BackgroundOverlayColor = color.RGBA{0, 0, 0, 110}

	// TextColor 正文文字
	TextColor = color.RGBA{240, 240, 240, 255}

	// DimTextColor 提示、FPS 文字
	DimTextColor = color.RGBA{160, 168, 180, 255}

	// ErrorTextColor 错误信息
	ErrorTextColor = color.RGBA{255, 110, 100, 255}

	// ButtonColor 按钮底色
	ButtonColor = color.RGBA{44, 62, 92, 230}

	// ButtonHoverColor 鼠标悬停时的按钮底色
	ButtonHoverColor = color.RGBA{70, 98, 146, 240}

	// ButtonBorderColor 按钮描边
	ButtonBorderColor = color.RGBA{200, 210, 230, 255}

	// AccentColor 进度条、加速按钮
	AccentColor = color.RGBA{255, 176, 32, 255}

	// BannerColor 对话框底色
	BannerColor = color.RGBA{250, 244, 230, 255}

	// BannerTextColor 对话框文字
	BannerTextColor = color.RGBA{40, 34, 28, 255}

	// SilhouetteColor 未知说话者的头像剪影
	SilhouetteColor = color.RGBA{90, 96, 110, 255}
)
