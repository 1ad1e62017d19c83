package app

import (
	"fmt"
	"log"

	"github.com/decker502/showcase/pkg/config"
	"github.com/decker502/showcase/pkg/embedded"
)

// DefaultSettingsPath 嵌入的应用配置
const DefaultSettingsPath = "data/app.yaml"

// Overrides 命令行参数，非空时覆盖 app.yaml 中的值
type Overrides struct {
	Verbose     bool
	DialogueURL string
	StartScene  string
}

// LoadConfig 解析应用配置，应用命令行覆盖，再从嵌入资源读取清单
//
// settings 为 nil 时读取嵌入的 data/app.yaml。
func LoadConfig(settings []byte, o Overrides) (Config, error) {
	if settings == nil {
		data, err := embedded.ReadFile(DefaultSettingsPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read %s: %w", DefaultSettingsPath, err)
		}
		settings = data
	}
	appCfg, err := config.ParseAppConfig(settings)
	if err != nil {
		return Config{}, err
	}

	if o.StartScene != "" {
		if !config.IsSceneName(o.StartScene) {
			return Config{}, fmt.Errorf("unknown start scene %q", o.StartScene)
		}
		appCfg.StartScene = o.StartScene
	}
	if o.DialogueURL != "" {
		appCfg.DialogueURL = o.DialogueURL
	}

	data, err := embedded.ReadFile(appCfg.Manifest)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read manifest %s: %w", appCfg.Manifest, err)
	}
	manifest, err := config.ParseManifest(data)
	if err != nil {
		return Config{}, err
	}
	if appCfg.DialogueURL != "" {
		if !manifest.SetURL(config.AssetDialogue, appCfg.DialogueURL) {
			log.Printf("[App] Manifest has no %s entry, dialogue url ignored", config.AssetDialogue)
		}
	}

	return Config{
		Verbose:  o.Verbose,
		Settings: appCfg,
		Manifest: manifest,
		Source:   embedded.FS(),
	}, nil
}
