package components

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/showcase/pkg/ecs"
)

// ParticleComponent 单个粒子的运行时状态（纯数据）
//
// 粒子位置存放在 PositionComponent 中。Alpha、Scale、Red/Green/Blue
// 由 ParticleSystem 每帧根据发射器配置和归一化年龄重新计算。
type ParticleComponent struct {
	Emitter ecs.EntityID

	Age      float64 // seconds
	Lifetime float64 // seconds

	// DirX/DirY 是发射方向的单位向量，速度大小由 Speed 曲线决定
	DirX, DirY float64
	Speed      float64

	// 每个粒子随机的曲线倍率（minMult 行为）
	ScaleMult float64
	SpeedMult float64

	// 静态行为在生成时取一次值
	StaticScale float64
	StaticSpeed float64

	Rotation      float64 // degrees
	RotationSpeed float64 // degrees per second

	Texture *ebiten.Image

	Alpha            float64
	Scale            float64
	Red, Green, Blue float64
}
