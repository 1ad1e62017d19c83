package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 按名称创建场景，scope 是新场景专属的时钟作用域
type SceneFactory func(name string, scope *ClockScope) (Scene, error)

// SceneManager hosts exactly one active scene.
//
// Navigation requests are applied at the start of the next Update: the
// outgoing scene's clock scope is closed, then Dispose runs, and only then
// is the next scene constructed with a fresh scope. No callback of a
// torn-down scene can run after its successor exists.
type SceneManager struct {
	clock        *FrameClock
	sceneFactory SceneFactory

	currentScene Scene
	currentName  string
	scope        *ClockScope

	pending    string
	hasPending bool

	width, height int
}

// NewSceneManager creates a manager that ticks clock once per Update.
func NewSceneManager(clock *FrameClock) *SceneManager {
	return &SceneManager{clock: clock}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// Navigate requests a switch to the named scene on the next frame. The last
// request of a frame wins.
func (sm *SceneManager) Navigate(name string) {
	sm.pending = name
	sm.hasPending = true
}

// SwitchTo tears down the current scene and constructs the named one now.
func (sm *SceneManager) SwitchTo(name string) error {
	sm.hasPending = false
	sm.teardown()

	if sm.sceneFactory == nil {
		return fmt.Errorf("scene factory not set")
	}

	scope := sm.clock.NewScope(name)
	scene, err := sm.sceneFactory(name, scope)
	if err != nil {
		scope.Close()
		return fmt.Errorf("failed to create scene %s: %w", name, err)
	}

	sm.currentScene = scene
	sm.currentName = name
	sm.scope = scope
	if r, ok := scene.(Resizable); ok && sm.width > 0 && sm.height > 0 {
		r.Resize(sm.width, sm.height)
	}
	log.Printf("[SceneManager] Switched to scene: %s", name)
	return nil
}

func (sm *SceneManager) teardown() {
	if sm.currentScene == nil {
		return
	}
	if sm.scope != nil {
		sm.scope.Close()
	}
	if d, ok := sm.currentScene.(Disposable); ok {
		d.Dispose()
	}
	log.Printf("[SceneManager] Disposed scene: %s", sm.currentName)
	sm.currentScene = nil
	sm.currentName = ""
	sm.scope = nil
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentName 返回当前场景名称
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

// Update applies a pending navigation, lets the scene handle input, then
// ticks the frame clock.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.hasPending {
		name := sm.pending
		if err := sm.SwitchTo(name); err != nil {
			log.Printf("[SceneManager] Error: %v", err)
		}
	}
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
	sm.clock.Tick(deltaTime)
}

// Draw renders the currently active scene.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// Resize records the screen size and forwards it to the current scene.
func (sm *SceneManager) Resize(width, height int) {
	if width == sm.width && height == sm.height {
		return
	}
	sm.width, sm.height = width, height
	if r, ok := sm.currentScene.(Resizable); ok {
		r.Resize(width, height)
	}
}
