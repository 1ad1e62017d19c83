package utils

import "math"

// EaseOutCubic 三次方缓出，开始快结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	t = Clamp(t, 0, 1)
	return 1 - math.Pow(1-t, 3)
}

// Lerp 线性插值
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Approach 以每秒 rate 的速度把 current 推向 target，不越过 target
// 加载进度条用它平滑显示值
func Approach(current, target, rate, dt float64) float64 {
	step := rate * dt
	if current < target {
		return math.Min(current+step, target)
	}
	return math.Max(current-step, target)
}
