package scenes

import (
	"fmt"
	"log"
	"path"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/showcase/internal/particle"
	"github.com/decker502/showcase/pkg/config"
	"github.com/decker502/showcase/pkg/ecs"
	"github.com/decker502/showcase/pkg/game"
	"github.com/decker502/showcase/pkg/systems"
)

// FlameScene 粒子火焰演示
//
// 两个发射器共用一个发射点：松开时基础火焰（粒子数受限）发射，按下时切换到
// 不限粒子数的强化火焰。切换只改变哪个发射器在发射，已有粒子继续演化直到寿命结束。
type FlameScene struct {
	chrome

	entityManager  *ecs.EntityManager
	particleSystem *systems.ParticleSystem
	renderSystem   *systems.RenderSystem

	baseline ecs.EntityID
	intense  ecs.EntityID
	hasFlame bool

	background *ebiten.Image
	pressed    bool
	live       int
}

// NewFlameScene 从缓存的粒子配置创建两个发射器
func NewFlameScene(svc *Services, scope *game.ClockScope) *FlameScene {
	em := ecs.NewEntityManager()
	s := &FlameScene{
		chrome:         newChrome(svc),
		entityManager:  em,
		particleSystem: systems.NewParticleSystem(em, svc.Rand),
		renderSystem:   systems.NewRenderSystem(em),
		background:     svc.Cache.Image(config.AssetTable),
	}

	baseCfg, okBase := game.Lookup[*particle.EmitterConfig](svc.Cache, config.AssetParticlesFire)
	intenseCfg, okIntense := game.Lookup[*particle.EmitterConfig](svc.Cache, config.AssetParticlesFireIntense)
	if okBase && okIntense {
		base := baseCfg.Clone()
		base.MaxParticles = config.FlameBaselineMaxParticles
		boosted := intenseCfg.Clone()
		boosted.MaxParticles = 0

		s.baseline = s.particleSystem.CreateEmitter("baseline", base,
			s.textures(config.AssetParticlesFire, base), config.FlameSpawnX, config.FlameSpawnY, true)
		s.intense = s.particleSystem.CreateEmitter("intense", boosted,
			s.textures(config.AssetParticlesFireIntense, boosted), config.FlameSpawnX, config.FlameSpawnY, false)
		s.hasFlame = true
	} else {
		log.Printf("[FlameScene] Particle configs unavailable, nothing to emit")
	}

	scope.OnTick(s.tick)
	return s
}

// textures 按配置中的顺序取出已缓存的粒子贴图，缺失项为 nil
func (s *FlameScene) textures(key string, cfg *particle.EmitterConfig) []*ebiten.Image {
	entry, ok := s.svc.Manifest.Entry(key)
	if !ok {
		return nil
	}
	dir := path.Dir(s.svc.Manifest.ResolvePath(entry))
	paths := cfg.TexturePaths(dir)
	out := make([]*ebiten.Image, len(paths))
	for i, p := range paths {
		out[i] = s.svc.Cache.Image(config.ParticleTextureKey(p))
	}
	return out
}

func (s *FlameScene) tick(dt float64) {
	s.particleSystem.Update(dt)
	if s.hasFlame {
		s.live = s.particleSystem.LiveCount(s.baseline) + s.particleSystem.LiveCount(s.intense)
	}
}

// setPressed 切换发射中的发射器
func (s *FlameScene) setPressed(down bool) {
	if !s.hasFlame || down == s.pressed {
		return
	}
	s.pressed = down
	s.particleSystem.SetEmitting(s.baseline, !down)
	s.particleSystem.SetEmitting(s.intense, down)
}

// moveSpawn 两个发射器一起跟随指针
func (s *FlameScene) moveSpawn(x, y float64) {
	if !s.hasFlame {
		return
	}
	s.particleSystem.SetSpawnPoint(s.baseline, x, y)
	s.particleSystem.SetSpawnPoint(s.intense, x, y)
}

// LiveParticles 上一帧结束时两个发射器的存活粒子总数
func (s *FlameScene) LiveParticles() int {
	return s.live
}

// Update 处理返回、指针移动与按下切换
func (s *FlameScene) Update(deltaTime float64) {
	p, x, y := s.pointer()
	if s.handleBack(p, x, y) {
		return
	}
	if !s.backHovered {
		s.moveSpawn(x, y)
	}
	s.setPressed(p.Down && !s.backHovered)
}

// Draw 绘制背景、粒子与计数
func (s *FlameScene) Draw(screen *ebiten.Image) {
	s.drawBackground(screen, s.background)
	if s.hasFlame {
		s.renderSystem.DrawParticles(screen, s.viewport, s.baseline, s.intense)
	}

	mode := "baseline"
	if s.pressed {
		mode = "intense"
	}
	s.drawText(screen, fmt.Sprintf("Particles: %d (%s)", s.live, mode), config.UIFontSize,
		config.DesignWidth/2, config.FlameCounterY, text.AlignCenter, config.TextColor)
	s.drawText(screen, "Hold the mouse button or touch to intensify", config.UISmallFontSize,
		config.DesignWidth/2, config.FlameCounterY+36, text.AlignCenter, config.DimTextColor)
	s.drawBackButton(screen)
	s.drawFPS(screen)
}

// Dispose 清空实体
func (s *FlameScene) Dispose() {
	s.entityManager.Clear()
}
