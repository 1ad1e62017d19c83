package components

import (
	"github.com/tanema/gween"

	"github.com/decker502/showcase/internal/dialogue"
)

// DialogueState 对话场景的状态
type DialogueState int

const (
	// DialogueStateEntry 入场动画（遮罩变暗，然后对话框滑入）
	DialogueStateEntry DialogueState = iota
	// DialogueStateShowing 正在显示第 Index 行
	DialogueStateShowing
	// DialogueStateComplete 全部显示完毕，再次点击从头开始
	DialogueStateComplete
	// DialogueStateError 对话文档加载失败
	DialogueStateError
)

// String 返回 DialogueState 的字符串表示
func (s DialogueState) String() string {
	switch s {
	case DialogueStateEntry:
		return "Entry"
	case DialogueStateShowing:
		return "Showing"
	case DialogueStateComplete:
		return "Complete"
	case DialogueStateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// DialogueComponent 对话状态（纯数据）
//
// 生命周期:
//  1. DialogueScene 创建实体并添加此组件
//  2. DialogueSystem 推进入场动画、处理点击推进
//  3. 场景销毁时随实体一起删除
type DialogueComponent struct {
	Document *dialogue.Document

	State DialogueState
	// Index 当前行，文档中唯一可变的状态
	Index int

	// 入场动画：两个线性补间依次执行，结束后置为 nil
	DarkenTween *gween.Tween
	BannerTween *gween.Tween
	// OverlayAlpha 遮罩透明度 0..DialogueOverlayAlpha
	OverlayAlpha float64
	// BannerProgress 对话框滑入进度 0..1（同时用作对话框透明度）
	BannerProgress float64

	// Cooldown 距离下一次允许推进的剩余时间（秒）
	Cooldown float64

	// IndicatorPhase 继续提示的正弦相位（弧度）
	IndicatorPhase float64

	// Segments 当前行切分后的文本片段
	Segments []dialogue.Segment
	// Known 当前文档中已成功加载的表情名
	Known map[string]struct{}

	ErrorMessage string
}
