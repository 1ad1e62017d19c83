package systems

import (
	"log"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/decker502/showcase/internal/dialogue"
	"github.com/decker502/showcase/pkg/components"
	"github.com/decker502/showcase/pkg/config"
	"github.com/decker502/showcase/pkg/ecs"
)

// DialogueSystem 对话状态机
//
// 状态流转：Entry → Showing(0) → … → Showing(n-1) → Complete → Showing(0)
//
// 职责：
//   - 入场动画：遮罩变暗与对话框滑入两个线性补间依次执行
//   - 推进对话：入场结束后才接受输入，两次推进之间至少间隔 DialogueAdvanceCooldown
//   - 切分当前行的 {emoji} 标记
//   - 推进继续提示的正弦相位
type DialogueSystem struct {
	entityManager *ecs.EntityManager
}

// NewDialogueSystem 创建对话系统
func NewDialogueSystem(em *ecs.EntityManager) *DialogueSystem {
	return &DialogueSystem{entityManager: em}
}

// CreateDialogue 创建对话实体
// doc 为 nil 时进入 Error 状态，errMsg 为显示给用户的错误信息
// known 为已成功加载图片的表情名
func (s *DialogueSystem) CreateDialogue(doc *dialogue.Document, known map[string]struct{}, errMsg string) ecs.EntityID {
	id := s.entityManager.CreateEntity()
	comp := &components.DialogueComponent{
		Document: doc,
		Known:    known,
	}
	if doc == nil || len(doc.Dialogue) == 0 {
		comp.State = components.DialogueStateError
		comp.ErrorMessage = errMsg
		log.Printf("[DialogueSystem] Entity %d: no dialogue document (%s)", id, errMsg)
	} else {
		comp.State = components.DialogueStateEntry
		comp.DarkenTween = gween.New(0, float32(config.DialogueOverlayAlpha), float32(config.DialogueDarkenDuration), ease.Linear)
		comp.BannerTween = gween.New(0, 1, float32(config.DialogueBannerDuration), ease.Linear)
	}
	ecs.AddComponent(s.entityManager, id, comp)
	return id
}

// Update 推进入场动画、冷却和提示相位
func (s *DialogueSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.DialogueComponent](s.entityManager) {
		comp, _ := ecs.GetComponent[*components.DialogueComponent](s.entityManager, id)

		comp.IndicatorPhase = math.Mod(comp.IndicatorPhase+config.DialogueIndicatorSpeed*dt, 2*math.Pi)
		if comp.Cooldown > 0 {
			comp.Cooldown = math.Max(0, comp.Cooldown-dt)
		}

		if comp.State == components.DialogueStateEntry {
			s.updateEntry(id, comp, dt)
		}
	}
}

func (s *DialogueSystem) updateEntry(id ecs.EntityID, comp *components.DialogueComponent, dt float64) {
	if comp.DarkenTween != nil {
		v, done := comp.DarkenTween.Update(float32(dt))
		comp.OverlayAlpha = float64(v)
		if done {
			comp.OverlayAlpha = config.DialogueOverlayAlpha
			comp.DarkenTween = nil
		}
		return
	}

	if comp.BannerTween != nil {
		v, done := comp.BannerTween.Update(float32(dt))
		comp.BannerProgress = float64(v)
		if !done {
			return
		}
		comp.BannerProgress = 1
		comp.BannerTween = nil
	}
	s.show(comp, 0)
	log.Printf("[DialogueSystem] Entity %d: Entry → Showing(0)", id)
}

// Advance 处理一次推进输入，返回是否被接受
func (s *DialogueSystem) Advance(id ecs.EntityID) bool {
	comp, ok := ecs.GetComponent[*components.DialogueComponent](s.entityManager, id)
	if !ok || comp.Cooldown > 0 {
		return false
	}

	switch comp.State {
	case components.DialogueStateShowing:
		if comp.Index+1 < len(comp.Document.Dialogue) {
			s.show(comp, comp.Index+1)
		} else {
			comp.State = components.DialogueStateComplete
			log.Printf("[DialogueSystem] Entity %d: Showing(%d) → Complete", id, comp.Index)
		}
	case components.DialogueStateComplete:
		s.show(comp, 0)
		log.Printf("[DialogueSystem] Entity %d: Complete → Showing(0)", id)
	default:
		return false
	}
	comp.Cooldown = config.DialogueAdvanceCooldown
	return true
}

func (s *DialogueSystem) show(comp *components.DialogueComponent, index int) {
	comp.State = components.DialogueStateShowing
	comp.Index = index
	comp.Segments = dialogue.Tokenize(comp.Document.Dialogue[index].Text, dialogue.KnownIn(comp.Known))
}

// CurrentEntry 当前行；Entry/Error 状态返回 false
func (s *DialogueSystem) CurrentEntry(id ecs.EntityID) (dialogue.Entry, bool) {
	comp, ok := ecs.GetComponent[*components.DialogueComponent](s.entityManager, id)
	if !ok || comp.Document == nil {
		return dialogue.Entry{}, false
	}
	if comp.State != components.DialogueStateShowing && comp.State != components.DialogueStateComplete {
		return dialogue.Entry{}, false
	}
	return comp.Document.Dialogue[comp.Index], true
}

// IndicatorOffset 继续提示的纵向偏移与透明度
// y = A·sin(φ)，alpha = 0.5 + 0.5·sin(φ)
func IndicatorOffset(phase float64) (dy, alpha float64) {
	sin := math.Sin(phase)
	return config.DialogueIndicatorAmplitude * sin, 0.5 + 0.5*sin
}
