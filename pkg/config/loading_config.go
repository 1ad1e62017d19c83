package config

// Loading Scene 配置常量

const (
	// LoadingBarWidth 进度条宽度
	LoadingBarWidth float64 = 640

	// LoadingBarHeight 进度条高度
	LoadingBarHeight float64 = 28

	// LoadingBarY 进度条 Y 坐标（水平居中）
	LoadingBarY float64 = 420

	// LoadingTextY 文字提示 Y 坐标
	LoadingTextY float64 = 470

	// LoadingTitleY 标题 Y 坐标
	LoadingTitleY float64 = 300

	// LoadingTitleFontSize 标题字体大小
	LoadingTitleFontSize float64 = 48

	// LoadingBarSpeed 进度条显示值追赶真实进度的速度（每秒）
	LoadingBarSpeed float64 = 2.5

	// LoadingHoldDuration 加载完成后停留的时间（秒），让进度条显示 100%
	LoadingHoldDuration float64 = 0.4
)
