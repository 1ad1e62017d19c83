package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/showcase/pkg/app"
	"github.com/decker502/showcase/pkg/embedded"
)

var (
	verboseFlag     = flag.Bool("verbose", false, "Enable verbose logging")
	configFlag      = flag.String("config", "", "Path to an app.yaml overriding the embedded one")
	dialogueURLFlag = flag.String("dialogue-url", "", "URL of the remote dialogue document")
	sceneFlag       = flag.String("scene", "", "Scene to open after loading: menu, cards, dialogue or flame")
)

func main() {
	flag.Parse()

	// assetsFS 和 dataFS 在 embed.go 中声明
	embedded.Init(assetsFS, dataFS)

	var settings []byte
	if *configFlag != "" {
		data, err := os.ReadFile(*configFlag)
		if err != nil {
			log.Fatalf("Failed to read config: %v", err)
		}
		settings = data
	}

	cfg, err := app.LoadConfig(settings, app.Overrides{
		Verbose:     *verboseFlag,
		DialogueURL: *dialogueURLFlag,
		StartScene:  *sceneFlag,
	})
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ebiten.SetWindowSize(cfg.Settings.Window.Width, cfg.Settings.Window.Height)
	ebiten.SetWindowTitle(cfg.Settings.Window.Title)
	if cfg.Settings.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	showcase, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	if err := ebiten.RunGame(showcase); err != nil {
		log.Fatal(err)
	}
}
