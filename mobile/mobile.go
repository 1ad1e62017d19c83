//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.showcase -o build/android/showcase.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Showcase.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/showcase/pkg/app"
	"github.com/decker502/showcase/pkg/embedded"
)

func init() {
	embedded.Init(assetsFS, dataFS)

	cfg, err := app.LoadConfig(nil, app.Overrides{Verbose: true})
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	showcase, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	mobile.SetGame(showcase)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
