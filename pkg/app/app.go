// Package app 提供应用的核心包装器
//
// 初始化逻辑从 main 包提取出来，桌面端（main.go）与移动端（mobile/mobile.go）共用。
package app

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/showcase/pkg/config"
	"github.com/decker502/showcase/pkg/game"
	"github.com/decker502/showcase/pkg/scenes"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Settings 来自 data/app.yaml，命令行参数已覆盖
	Settings config.AppConfig
	// Manifest 已解析并校验的资源清单
	Manifest *config.Manifest
	// Source 清单中本地资源的文件系统（通常是 embedded.FS()）
	Source fs.FS
}

// App 实现 ebiten.Game，持有帧时钟与场景管理器
type App struct {
	sceneManager *game.SceneManager
	audioManager *game.AudioManager
	verbose      bool

	windowWidth, windowHeight int
	pendingWindowSizeReset    bool
	windowSizeResetCountdown  int
}

// NewApp 创建并初始化应用，从加载场景开始
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
	if cfg.Manifest == nil {
		return nil, fmt.Errorf("no asset manifest")
	}

	audioContext := audio.CurrentContext()
	if audioContext == nil {
		audioContext = audio.NewContext(game.AudioSampleRate)
	}

	fonts, err := game.NewFonts()
	if err != nil {
		return nil, err
	}

	clock := game.NewFrameClock()
	cache := game.NewAssetCache()
	client := &http.Client{Timeout: cfg.Settings.HTTPTimeout()}
	loader := game.NewLoader(cfg.Source, client, cache, clock)
	audioManager := game.NewAudioManager(audioContext, cache, cfg.Settings.MusicVolume, cfg.Settings.SoundVolume)
	sceneManager := game.NewSceneManager(clock)

	svc := &scenes.Services{
		Cache:     cache,
		Loader:    loader,
		Manifest:  cfg.Manifest,
		Audio:     audioManager,
		Fonts:     fonts,
		Scenes:    sceneManager,
		Rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
		NextScene: cfg.Settings.StartScene,
	}
	sceneManager.SetSceneFactory(scenes.NewFactory(svc))

	log.Printf("[App] %d assets in manifest, start scene %s", len(cfg.Manifest.Assets), cfg.Settings.StartScene)
	if err := sceneManager.SwitchTo(config.SceneLoading); err != nil {
		return nil, err
	}

	return &App{
		sceneManager: sceneManager,
		audioManager: audioManager,
		verbose:      cfg.Verbose,
		windowWidth:  cfg.Settings.Window.Width,
		windowHeight: cfg.Settings.Window.Height,
	}, nil
}

// Update 处理全局快捷键，然后推进当前场景与帧时钟
func (a *App) Update() error {
	// 退出全屏后需要等待几帧，窗口管理器才会接受新的窗口尺寸
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.windowWidth, a.windowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, resetting window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		log.Printf("[App] Muted: %v", a.audioManager.ToggleMute())
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// Draw 绘制当前场景
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 使用窗口的实际尺寸，场景通过 Resize 自行按设计分辨率缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// SceneManager 返回场景管理器
func (a *App) SceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
