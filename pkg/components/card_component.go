package components

import "github.com/tanema/gween"

// StackID 卡牌当前所属的牌堆
type StackID int

const (
	// StackMain 主牌堆（未发出）
	StackMain StackID = iota
	// StackTop 上方牌堆
	StackTop
	// StackBottom 下方牌堆
	StackBottom
	// StackInFlight 飞行中
	StackInFlight
)

// String 返回 StackID 的字符串表示
func (s StackID) String() string {
	switch s {
	case StackMain:
		return "Main"
	case StackTop:
		return "Top"
	case StackBottom:
		return "Bottom"
	case StackInFlight:
		return "InFlight"
	default:
		return "Unknown"
	}
}

// CardComponent 卡牌数据（纯数据，无方法）
//
// Stack 是卡牌的归属，任一时刻恰好属于一个牌堆。
// Slot 是卡牌在目标牌堆中的位置，发牌时预留，决定落点偏移。
type CardComponent struct {
	Index int
	Stack StackID
	Slot  int
}

// CardFlightComponent 飞行中卡牌的补间状态
//
// 只在卡牌飞行期间存在，落地时由 CardFlightSystem 移除。
// From*/To* 记录起止值，三个 gween.Tween 驱动 x、y 与角度。
type CardFlightComponent struct {
	Target StackID

	FromX, FromY, FromRotation float64
	ToX, ToY, ToRotation       float64

	Elapsed  float64
	Duration float64

	TweenX        *gween.Tween
	TweenY        *gween.Tween
	TweenRotation *gween.Tween
}
