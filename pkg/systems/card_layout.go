package systems

import (
	"math"
	"math/rand"

	"github.com/decker502/showcase/pkg/components"
	"github.com/decker502/showcase/pkg/config"
)

// PilePosition 主牌堆第 i 张牌（0 为最底）的中心坐标
func PilePosition(i int) (x, y float64) {
	off := float64(i) * config.CardStackOffset
	return config.MainPileX - off, config.MainPileY - off
}

// SlotPosition 目标牌堆第 slot 个位置的中心坐标与角度
func SlotPosition(stack components.StackID, slot int) (x, y, rotation float64) {
	off := float64(slot) * config.CardStackOffset
	switch stack {
	case components.StackTop:
		return config.TopStackX - off, config.TopStackY - off, config.TopStackRotation
	case components.StackBottom:
		return config.BottomStackX - off, config.BottomStackY - off, config.BottomStackRotation
	}
	x, y = PilePosition(slot)
	return x, y, 0
}

// NormalizeDegrees 把角度规整到 [0, 360)
func NormalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// ShortestRotationDelta 从 from 转到 to 的最短有符号角度差，范围 [-180, 180]
// 恰好 180° 时随机选择方向（rng 为 nil 时取正方向）
func ShortestRotationDelta(from, to float64, rng *rand.Rand) float64 {
	d := NormalizeDegrees(to - from)
	switch {
	case d > 180:
		return d - 360
	case d == 180:
		if rng != nil && rng.Intn(2) == 0 {
			return -180
		}
		return 180
	}
	return d
}
