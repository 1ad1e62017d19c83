package scenes

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/showcase/pkg/config"
	"github.com/decker502/showcase/pkg/game"
	"github.com/decker502/showcase/pkg/utils"
)

// LoadingScene preloads every manifest asset and shows the progress.
//
// The loader reports progress from its own goroutines; the scene stores
// the latest value atomically and eases the bar toward it on the frame
// clock. Once everything has settled and the bar is full, it waits
// LoadingHoldDuration and navigates to svc.NextScene.
type LoadingScene struct {
	chrome

	op *game.LoadOperation

	target    atomic.Uint64 // math.Float64bits of the reported progress
	displayed float64
	hold      float64
	finished  bool
}

// NewLoadingScene starts loading immediately.
func NewLoadingScene(svc *Services, scope *game.ClockScope) *LoadingScene {
	s := &LoadingScene{chrome: newChrome(svc)}
	s.op = svc.Loader.LoadAll(context.Background(), svc.Manifest, s.setProgress)
	scope.OnTick(s.tick)
	return s
}

func (s *LoadingScene) setProgress(p float64) {
	s.target.Store(math.Float64bits(p))
}

// Progress returns the last progress reported by the loader.
func (s *LoadingScene) Progress() float64 {
	return math.Float64frombits(s.target.Load())
}

// Displayed returns the eased value drawn by the bar.
func (s *LoadingScene) Displayed() float64 {
	return s.displayed
}

func (s *LoadingScene) tick(dt float64) {
	s.displayed = utils.Approach(s.displayed, s.Progress(), config.LoadingBarSpeed, dt)

	select {
	case <-s.op.Done():
	default:
		return
	}
	if s.finished || s.op.Err() != nil || s.displayed < 1 {
		return
	}

	s.hold += dt
	if s.hold < config.LoadingHoldDuration {
		return
	}
	s.finished = true

	next := s.svc.NextScene
	if next == "" {
		next = config.SceneMenu
	}
	_, failed, total := s.op.Counts()
	log.Printf("[LoadingScene] Loaded %d assets (%d failed), entering %s", total, failed, next)
	s.svc.Scenes.Navigate(next)
}

// Update 加载场景没有交互
func (s *LoadingScene) Update(deltaTime float64) {}

// Draw renders the title, the bar and the counters.
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	s.drawBackground(screen, nil)

	cx := config.DesignWidth / 2
	s.drawText(screen, "Loading", config.LoadingTitleFontSize, cx, config.LoadingTitleY, text.AlignCenter, config.TextColor)

	bar := utils.Rect{
		X: (config.DesignWidth - config.LoadingBarWidth) / 2,
		Y: config.LoadingBarY,
		W: config.LoadingBarWidth,
		H: config.LoadingBarHeight,
	}
	s.fillRect(screen, bar, config.ButtonColor)
	if s.displayed > 0 {
		fill := bar
		fill.W = bar.W * s.displayed
		s.fillRect(screen, fill, config.AccentColor)
	}
	s.strokeRect(screen, bar, 2, config.ButtonBorderColor)

	if err := s.op.Err(); err != nil {
		s.drawText(screen, err.Error(), config.UIFontSize, cx, config.LoadingTextY, text.AlignCenter, config.ErrorTextColor)
		return
	}

	completed, failed, total := s.op.Counts()
	status := fmt.Sprintf("%d%%  (%d/%d)", int(math.Round(s.displayed*100)), completed, total)
	if failed > 0 {
		status += fmt.Sprintf("  %d failed", failed)
	}
	s.drawText(screen, status, config.UIFontSize, cx, config.LoadingTextY, text.AlignCenter, config.DimTextColor)
	s.drawFPS(screen)
}

// Dispose cancels loading when the scene is left early.
func (s *LoadingScene) Dispose() {
	select {
	case <-s.op.Done():
	default:
		s.op.Cancel()
	}
}
