package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// WindowConfig 窗口设置
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
}

// AppConfig 对应 data/app.yaml
// 命令行参数会覆盖文件中的值（见 main.go）。
type AppConfig struct {
	Window             WindowConfig `yaml:"window"`
	Manifest           string       `yaml:"manifest"`
	DialogueURL        string       `yaml:"dialogue_url"`
	StartScene         string       `yaml:"start_scene"`
	HTTPTimeoutSeconds int          `yaml:"http_timeout_seconds"`
	MusicVolume        float64      `yaml:"music_volume"`
	SoundVolume        float64      `yaml:"sound_volume"`
}

// DefaultAppConfig 返回在没有配置文件时使用的默认值
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Window: WindowConfig{
			Title:     "Showcase",
			Width:     int(DesignWidth),
			Height:    int(DesignHeight),
			Resizable: true,
		},
		Manifest:           "data/manifest.yaml",
		StartScene:         SceneMenu,
		HTTPTimeoutSeconds: 10,
		MusicVolume:        0.6,
		SoundVolume:        0.8,
	}
}

// ParseAppConfig 解析 YAML 配置，未填写的字段保留默认值
func ParseAppConfig(data []byte) (AppConfig, error) {
	cfg := DefaultAppConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("failed to parse app config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate 检查配置值是否合法
func (c AppConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Manifest == "" {
		return fmt.Errorf("manifest path is empty")
	}
	if !IsSceneName(c.StartScene) {
		return fmt.Errorf("unknown start scene %q", c.StartScene)
	}
	if c.MusicVolume < 0 || c.MusicVolume > 1 || c.SoundVolume < 0 || c.SoundVolume > 1 {
		return fmt.Errorf("volume must be within [0, 1]")
	}
	return nil
}

// HTTPTimeout 远程请求超时时间
func (c AppConfig) HTTPTimeout() time.Duration {
	if c.HTTPTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}
