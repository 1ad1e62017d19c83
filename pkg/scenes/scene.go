package scenes

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/decker502/showcase/pkg/config"
	"github.com/decker502/showcase/pkg/game"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// ErrUnknownScene 场景名不存在
var ErrUnknownScene = errors.New("unknown scene")

// Services 场景共享的运行时依赖，由 app 包组装后传给工厂
type Services struct {
	Cache    *game.AssetCache
	Loader   *game.Loader
	Manifest *config.Manifest
	Audio    *game.AudioManager
	Fonts    *game.Fonts
	Scenes   *game.SceneManager
	Rand     *rand.Rand

	// NextScene 加载完成后进入的场景
	NextScene string
}

// NewFactory 返回按名称创建场景的工厂
func NewFactory(svc *Services) game.SceneFactory {
	return func(name string, scope *game.ClockScope) (game.Scene, error) {
		switch name {
		case config.SceneLoading:
			return NewLoadingScene(svc, scope), nil
		case config.SceneMenu:
			return NewMenuScene(svc, scope), nil
		case config.SceneCards:
			return NewCardScene(svc, scope), nil
		case config.SceneDialogue:
			return NewDialogueScene(svc, scope), nil
		case config.SceneFlame:
			return NewFlameScene(svc, scope), nil
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownScene, name)
	}
}
