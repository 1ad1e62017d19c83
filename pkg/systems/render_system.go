package systems

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/showcase/pkg/components"
	"github.com/decker502/showcase/pkg/ecs"
	"github.com/decker502/showcase/pkg/utils"
)

// particleFallbackSize 粒子贴图缺失时绘制的方块尺寸
const particleFallbackSize = 8

var whitePixel *ebiten.Image

// pixel 返回共享的 1x1 白色图像，用于绘制占位图形
func pixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// RenderSystem 负责绘制精灵和粒子
//
// 实体坐标为设计坐标（中心锚点），绘制时经 Viewport 映射到屏幕。
type RenderSystem struct {
	entityManager *ecs.EntityManager

	// Placeholder 精灵图像缺失时的填充色
	Placeholder color.Color
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		Placeholder:   color.RGBA{R: 0x8a, G: 0x2b, B: 0x2b, A: 0xff},
	}
}

// SortedSprites 按 Z 升序（同 Z 按 ID）返回所有精灵实体
func (s *RenderSystem) SortedSprites() []ecs.EntityID {
	ids := ecs.GetEntitiesWith2[*components.SpriteComponent, *components.PositionComponent](s.entityManager)
	z := func(id ecs.EntityID) int {
		if c, ok := ecs.GetComponent[*components.ZOrderComponent](s.entityManager, id); ok {
			return c.Z
		}
		return 0
	}
	sort.SliceStable(ids, func(i, j int) bool {
		zi, zj := z(ids[i]), z(ids[j])
		if zi != zj {
			return zi < zj
		}
		return ids[i] < ids[j]
	})
	return ids
}

// DrawSprites 按 Z 序绘制所有精灵，支持旋转
func (s *RenderSystem) DrawSprites(screen *ebiten.Image, vp utils.Viewport) {
	for _, id := range s.SortedSprites() {
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		var degrees float64
		if rot, ok := ecs.GetComponent[*components.RotationComponent](s.entityManager, id); ok {
			degrees = rot.Degrees
		}

		img := sprite.Image
		op := &ebiten.DrawImageOptions{}
		op.Filter = ebiten.FilterLinear
		if img == nil {
			img = pixel()
			op.ColorScale.ScaleWithColor(s.Placeholder)
		}
		b := img.Bounds()
		w, h := float64(b.Dx()), float64(b.Dy())

		op.GeoM.Translate(-w/2, -h/2)
		op.GeoM.Scale(sprite.Width/w, sprite.Height/h)
		op.GeoM.Rotate(degrees * math.Pi / 180)
		op.GeoM.Translate(pos.X, pos.Y)
		vp.Apply(&op.GeoM)
		screen.DrawImage(img, op)
	}
}

// DrawParticles 绘制指定发射器的粒子（加色混合）
// addAtBack 的发射器新粒子绘制在旧粒子之下
func (s *RenderSystem) DrawParticles(screen *ebiten.Image, vp utils.Viewport, emitters ...ecs.EntityID) {
	for _, eid := range emitters {
		emitter, ok := ecs.GetComponent[*components.EmitterComponent](s.entityManager, eid)
		if !ok {
			continue
		}
		back := emitter.Config != nil && emitter.Config.AddAtBack
		n := len(emitter.ActiveParticles)
		for i := 0; i < n; i++ {
			id := emitter.ActiveParticles[i]
			if back {
				id = emitter.ActiveParticles[n-1-i]
			}
			s.drawParticle(screen, vp, id)
		}
	}
}

func (s *RenderSystem) drawParticle(screen *ebiten.Image, vp utils.Viewport, id ecs.EntityID) {
	p, ok := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
	if !ok || p.Alpha <= 0 || p.Scale <= 0 {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return
	}

	img := p.Texture
	size := 1.0
	if img == nil {
		img = pixel()
		size = particleFallbackSize
	}
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(p.Scale*size, p.Scale*size)
	op.GeoM.Rotate(p.Rotation * math.Pi / 180)
	op.GeoM.Translate(pos.X, pos.Y)
	vp.Apply(&op.GeoM)
	op.ColorScale.Scale(float32(p.Red), float32(p.Green), float32(p.Blue), 1)
	op.ColorScale.ScaleAlpha(float32(p.Alpha))
	op.Blend = ebiten.BlendLighter
	screen.DrawImage(img, op)
}
