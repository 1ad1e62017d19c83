package components

// PositionComponent 存储实体中心点在设计分辨率下的坐标
type PositionComponent struct {
	X, Y float64
}

// RotationComponent 存储实体的旋转角度（度，顺时针）
type RotationComponent struct {
	Degrees float64
}

// ZOrderComponent 绘制顺序，数值大的后绘制（在上层）
type ZOrderComponent struct {
	Z int
}
