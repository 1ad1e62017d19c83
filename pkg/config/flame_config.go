package config

// Flame Scene 配置常量

const (
	// FlameBaselineMaxParticles 基础火焰的粒子上限
	FlameBaselineMaxParticles = 10

	// FlameSpawnX 初始发射点（指针未移动前）
	FlameSpawnX float64 = 640
	FlameSpawnY float64 = 480

	// FlameCounterY 粒子计数文字
	FlameCounterY float64 = 80
)
