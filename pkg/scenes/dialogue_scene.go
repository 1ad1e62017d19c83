package scenes

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/showcase/internal/dialogue"
	"github.com/decker502/showcase/pkg/components"
	"github.com/decker502/showcase/pkg/config"
	"github.com/decker502/showcase/pkg/ecs"
	"github.com/decker502/showcase/pkg/game"
	"github.com/decker502/showcase/pkg/systems"
	"github.com/decker502/showcase/pkg/utils"
)

const dialogueUnavailable = "The dialogue could not be loaded. Press Esc to return."

// DialogueScene 逐行显示远程对话文档，支持说话者头像与 {emoji} 内嵌表情
//
// 文档与其引用的图片都在加载阶段缓存；缺失的表情画占位符，未知说话者
// 使用剪影头像。文档加载失败时显示错误信息，返回键仍然可用。
type DialogueScene struct {
	chrome

	entityManager  *ecs.EntityManager
	dialogueSystem *systems.DialogueSystem
	entity         ecs.EntityID

	doc        *dialogue.Document
	background *ebiten.Image
	emojis     map[string]*ebiten.Image
	avatars    map[string]*ebiten.Image
	unknown    *ebiten.Image
}

// NewDialogueScene 从缓存读取对话文档并开始入场动画
func NewDialogueScene(svc *Services, scope *game.ClockScope) *DialogueScene {
	em := ecs.NewEntityManager()
	s := &DialogueScene{
		chrome:         newChrome(svc),
		entityManager:  em,
		dialogueSystem: systems.NewDialogueSystem(em),
		background:     svc.Cache.Image(config.AssetTable),
		emojis:         make(map[string]*ebiten.Image),
		avatars:        make(map[string]*ebiten.Image),
	}

	doc, ok := game.Lookup[*dialogue.Document](svc.Cache, config.AssetDialogue)
	known := make(map[string]struct{})
	if ok {
		s.doc = doc
		for _, e := range doc.Emojis {
			if img := svc.Cache.Image(config.EmojiKey(e.Name)); img != nil {
				s.emojis[e.Name] = img
				known[e.Name] = struct{}{}
			}
		}
		for _, a := range doc.Avatars {
			if img := svc.Cache.Image(config.AvatarKey(a.Name)); img != nil {
				s.avatars[a.Name] = img
			}
		}
		log.Printf("[DialogueScene] %d lines, %d/%d emojis, %d/%d avatars",
			len(doc.Dialogue), len(s.emojis), len(doc.Emojis), len(s.avatars), len(doc.Avatars))
	} else {
		log.Printf("[DialogueScene] Dialogue document unavailable")
	}

	s.entity = s.dialogueSystem.CreateDialogue(s.doc, known, dialogueUnavailable)
	scope.OnTick(s.dialogueSystem.Update)
	return s
}

func (s *DialogueScene) component() *components.DialogueComponent {
	comp, _ := ecs.GetComponent[*components.DialogueComponent](s.entityManager, s.entity)
	return comp
}

// Advance 推进一行；冷却中或入场动画中返回 false
func (s *DialogueScene) Advance() bool {
	if s.dialogueSystem.Advance(s.entity) {
		s.click()
		return true
	}
	return false
}

// Update 处理返回与推进输入
func (s *DialogueScene) Update(deltaTime float64) {
	p, x, y := s.pointer()
	if s.handleBack(p, x, y) {
		return
	}
	if p.JustPressed || utils.IsAdvancePressed() {
		s.Advance()
	}
}

// Draw 绘制遮罩、对话框、头像、文字与继续提示
func (s *DialogueScene) Draw(screen *ebiten.Image) {
	s.drawBackground(screen, s.background)
	comp := s.component()
	if comp == nil {
		return
	}

	full := utils.Rect{W: config.DesignWidth, H: config.DesignHeight}
	if comp.State == components.DialogueStateError {
		s.fillRect(screen, full, color.NRGBA{A: uint8(255 * config.DialogueOverlayAlpha)})
		s.drawText(screen, comp.ErrorMessage, config.UIFontSize, config.DesignWidth/2, config.DesignHeight/2,
			text.AlignCenter, config.ErrorTextColor)
		s.drawBackButton(screen)
		s.drawFPS(screen)
		return
	}

	s.fillRect(screen, full, color.NRGBA{A: uint8(255 * comp.OverlayAlpha)})
	if comp.BannerProgress > 0 {
		s.drawBanner(screen, comp)
	}
	s.drawBackButton(screen)
	s.drawFPS(screen)
}

func (s *DialogueScene) bannerRect(progress float64) utils.Rect {
	return utils.Rect{
		X: config.DialogueBannerMargin,
		Y: config.DialogueBannerY + (1-progress)*config.DialogueBannerSlide,
		W: config.DesignWidth - 2*config.DialogueBannerMargin,
		H: config.DialogueBannerHeight,
	}
}

func (s *DialogueScene) drawBanner(screen *ebiten.Image, comp *components.DialogueComponent) {
	alpha := comp.BannerProgress
	banner := s.bannerRect(alpha)
	s.fillRect(screen, banner, fade(config.BannerColor, alpha))

	entry, ok := s.dialogueSystem.CurrentEntry(s.entity)
	if !ok {
		return
	}
	pad := config.DialogueTextPadding
	size := config.DialoguePortraitSize

	avatar, _ := s.doc.Avatar(entry.Name)
	portrait := utils.Rect{X: banner.X + pad, Y: banner.Y - size*0.6, W: size, H: size}
	nameX, nameAlign := portrait.X+size+pad, text.AlignStart
	if avatar.Side() == dialogue.SideRight {
		portrait.X = banner.X + banner.W - pad - size
		nameX, nameAlign = portrait.X-pad, text.AlignEnd
	}
	s.drawImageRect(screen, s.portrait(entry.Name), portrait, alpha)
	s.drawText(screen, entry.Name, config.DialogueNameFontSize, nameX, banner.Y+pad*0.5, nameAlign, fade(config.BannerTextColor, alpha))

	textY := banner.Y + pad + config.DialogueNameFontSize*1.4
	s.drawSegments(screen, comp.Segments, banner.X+pad, textY, banner.W-2*pad, alpha)

	dy, a := systems.IndicatorOffset(comp.IndicatorPhase)
	ix, iy := s.viewport.ToScreen(banner.X+banner.W-pad, banner.Y+banner.H-pad+dy)
	vector.FillCircle(screen, float32(ix), float32(iy), float32(s.viewport.Length(7)),
		fade(config.AccentColor, a*alpha), true)

	if comp.State == components.DialogueStateComplete {
		s.drawText(screen, "Click to start over", config.UISmallFontSize, banner.X+banner.W-pad*2, banner.Y+banner.H-pad*1.5,
			text.AlignEnd, fade(config.BannerTextColor, alpha))
	}
}

func (s *DialogueScene) drawSegments(screen *ebiten.Image, segments []dialogue.Segment, x, y, width, alpha float64) {
	if s.svc.Fonts == nil {
		return
	}
	face := s.svc.Fonts.Face(config.DialogueFontSize)
	measure := func(str string) float64 { return text.Advance(str, face) }
	glyph := config.DialogueFontSize * 1.2
	lineHeight := config.DialogueFontSize * 1.5

	for _, p := range layoutSegments(segments, measure, glyph, width) {
		px, py := x+p.X, y+float64(p.Line)*lineHeight
		switch p.Segment.Kind {
		case dialogue.SegmentText:
			s.drawText(screen, p.Segment.Text, config.DialogueFontSize, px, py, text.AlignStart, fade(config.BannerTextColor, alpha))
		case dialogue.SegmentEmoji:
			s.drawImageRect(screen, s.emojis[p.Segment.Text], utils.Rect{X: px, Y: py - glyph*0.1, W: glyph, H: glyph}, alpha)
		case dialogue.SegmentFallback:
			box := utils.Rect{X: px + 2, Y: py, W: glyph - 4, H: glyph - 4}
			s.strokeRect(screen, box, 1.5, fade(config.BannerTextColor, alpha))
			cx, _ := box.Center()
			s.drawText(screen, config.DialogueFallbackGlyph, config.DialogueFontSize*0.8, cx, py+2, text.AlignCenter, fade(config.BannerTextColor, alpha))
		}
	}
}

// portrait 返回说话者头像，未知说话者使用剪影
func (s *DialogueScene) portrait(name string) *ebiten.Image {
	if img, ok := s.avatars[name]; ok {
		return img
	}
	if img, ok := s.avatars[config.DialogueUnknownAvatar]; ok {
		return img
	}
	if s.unknown == nil {
		s.unknown = newSilhouette(int(config.DialoguePortraitSize))
	}
	return s.unknown
}

// silhouetteShape 剪影的几何：头部圆心与半径，肩膀矩形
type silhouetteShape struct {
	headX, headY, headR float32
	body                utils.Rect
}

func silhouetteFor(size int) silhouetteShape {
	f := float32(size)
	return silhouetteShape{
		headX: f / 2, headY: f * 0.36, headR: f * 0.2,
		body: utils.Rect{X: float64(f * 0.2), Y: float64(f * 0.62), W: float64(f * 0.6), H: float64(f * 0.38)},
	}
}

// newSilhouette 生成 "unknown" 头像：圆形头部加肩膀
func newSilhouette(size int) *ebiten.Image {
	img := ebiten.NewImage(size, size)
	sh := silhouetteFor(size)
	vector.FillCircle(img, sh.headX, sh.headY, sh.headR, config.SilhouetteColor, true)
	vector.FillRect(img, float32(sh.body.X), float32(sh.body.Y), float32(sh.body.W), float32(sh.body.H), config.SilhouetteColor, true)
	return img
}

// Dispose 清空实体
func (s *DialogueScene) Dispose() {
	s.entityManager.Clear()
}

// fade 返回乘上 alpha 的颜色（预乘）
func fade(c color.RGBA, alpha float64) color.RGBA {
	a := utils.Clamp(alpha, 0, 1)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
