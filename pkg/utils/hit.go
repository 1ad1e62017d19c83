package utils

// Rect 设计坐标下的矩形（左上角 + 尺寸）
type Rect struct {
	X, Y, W, H float64
}

// Contains 点是否落在矩形内（含左上边，不含右下边）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Center 矩形中心
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// CenteredRect 以 (cx, y) 为上边中点构造矩形，菜单按钮按此布局
func CenteredRect(cx, y, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: y, W: w, H: h}
}
