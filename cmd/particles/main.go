// Package main is a viewer for particle emitter configs.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	--dir <path>       Directory with *.json emitter configs (default assets/particles)
//	--filter <keyword> Only list configs whose name contains keyword
//	--effect <name>    Start with a specific config (file name without .json)
//	--auto-play        Cycle through configs every 3 seconds
//	--verbose          Enable verbose logging
//
// Controls:
//
//	Mouse Click       - Move the emitter to the cursor
//	Left/Right Arrow  - Previous/next config
//	Space             - Start/stop emitting (live particles keep aging)
//	M                 - Toggle the maxParticles cap
//	P                 - Toggle pause
//	R                 - Clear all particles and restart the emitter
//	Q/Escape          - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"log"
	"math/rand"
	"os"
	"path"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/showcase/internal/particle"
	"github.com/decker502/showcase/pkg/ecs"
	"github.com/decker502/showcase/pkg/game"
	"github.com/decker502/showcase/pkg/systems"
	"github.com/decker502/showcase/pkg/utils"
)

const (
	screenWidth  = 1024
	screenHeight = 768
	autoPlayStep = 3 * time.Second
)

var (
	dirFlag      = flag.String("dir", "assets/particles", "Directory with particle configs")
	filterFlag   = flag.String("filter", "", "Initial filter by name keyword")
	effectFlag   = flag.String("effect", "", "Start with specific config name")
	autoPlayFlag = flag.Bool("auto-play", false, "Auto cycle through configs every 3 seconds")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

var errQuit = errors.New("quit requested")

type effect struct {
	name     string
	config   *particle.EmitterConfig
	textures []*ebiten.Image
}

// viewer implements ebiten.Game for browsing emitter configs.
type viewer struct {
	entityManager  *ecs.EntityManager
	particleSystem *systems.ParticleSystem
	renderSystem   *systems.RenderSystem
	viewport       utils.Viewport

	effects []effect
	current int
	emitter ecs.EntityID

	x, y       float64
	emitting   bool
	uncapped   bool
	paused     bool
	autoPlay   bool
	lastSwitch time.Time
}

func newViewer(fsys fs.FS) (*viewer, error) {
	names, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to scan configs: %w", err)
	}
	names = filterEffects(names, *filterFlag)
	if len(names) == 0 {
		return nil, fmt.Errorf("no particle configs found")
	}

	v := &viewer{
		entityManager: ecs.NewEntityManager(),
		viewport:      utils.Scale(screenWidth, screenHeight, screenWidth, screenHeight),
		x:             screenWidth / 2,
		y:             screenHeight * 2 / 3,
		emitting:      true,
		autoPlay:      *autoPlayFlag,
		lastSwitch:    time.Now(),
	}
	v.particleSystem = systems.NewParticleSystem(v.entityManager, rand.New(rand.NewSource(time.Now().UnixNano())))
	v.renderSystem = systems.NewRenderSystem(v.entityManager)

	for _, name := range names {
		cfg, err := particle.ParseFile(fsys, name)
		if err != nil {
			log.Printf("[Viewer] Skipping %s: %v", name, err)
			continue
		}
		e := effect{name: strings.TrimSuffix(name, ".json"), config: cfg}
		for _, p := range cfg.TexturePaths(path.Dir(name)) {
			e.textures = append(e.textures, loadTexture(fsys, p))
		}
		if e.name == *effectFlag {
			v.current = len(v.effects)
		}
		v.effects = append(v.effects, e)
	}
	if len(v.effects) == 0 {
		return nil, fmt.Errorf("no valid particle configs in %s", *dirFlag)
	}

	v.restart()
	log.Printf("[Viewer] %d configs loaded", len(v.effects))
	return v, nil
}

func loadTexture(fsys fs.FS, name string) *ebiten.Image {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		log.Printf("[Viewer] Missing texture %s", name)
		return nil
	}
	tex, err := game.DecodeTexture(data)
	if err != nil {
		log.Printf("[Viewer] Bad texture %s: %v", name, err)
		return nil
	}
	return tex.(*ebiten.Image)
}

// filterEffects keeps names containing query, case-insensitively.
func filterEffects(names []string, query string) []string {
	if query == "" {
		return names
	}
	query = strings.ToLower(query)
	var out []string
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), query) {
			out = append(out, n)
		}
	}
	return out
}

// restart drops every particle and creates a fresh emitter for the current config.
func (v *viewer) restart() {
	v.entityManager.Clear()
	e := v.effects[v.current]
	cfg := e.config.Clone()
	if v.uncapped {
		cfg.MaxParticles = 0
	}
	v.emitter = v.particleSystem.CreateEmitter(e.name, cfg, e.textures, v.x, v.y, v.emitting)
}

func (v *viewer) step(delta int) {
	n := len(v.effects)
	v.current = ((v.current+delta)%n + n) % n
	v.restart()
	v.lastSwitch = time.Now()
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		v.step(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		v.step(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.emitting = !v.emitting
		v.particleSystem.SetEmitting(v.emitter, v.emitting)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		v.uncapped = !v.uncapped
		v.restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.restart()
	}

	p := utils.ReadPointer()
	if p.Down {
		v.x, v.y = v.viewport.ToDesign(p.X, p.Y)
		v.particleSystem.SetSpawnPoint(v.emitter, v.x, v.y)
	}

	if v.autoPlay && time.Since(v.lastSwitch) > autoPlayStep {
		v.step(1)
	}
	if !v.paused {
		v.particleSystem.Update(1.0 / float64(ebiten.TPS()))
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 16, G: 16, B: 24, A: 255})
	v.renderSystem.DrawParticles(screen, v.viewport, v.emitter)

	e := v.effects[v.current]
	cfg := e.config
	limit := fmt.Sprint(cfg.MaxParticles)
	if v.uncapped || cfg.Uncapped() {
		limit = "none"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"[%d/%d] %s\nlive: %d  cap: %s  frequency: %.3fs  emitting: %v  paused: %v\nFPS: %.1f",
		v.current+1, len(v.effects), e.name,
		v.particleSystem.LiveCount(v.emitter), limit, cfg.Frequency, v.emitting, v.paused,
		ebiten.ActualFPS()), 10, 10)
	ebitenutil.DebugPrintAt(screen, "Click: move  Left/Right: switch  Space: emit  M: cap  P: pause  R: restart  Q: quit",
		10, screenHeight-24)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	v, err := newViewer(os.DirFS(*dirFlag))
	if err != nil {
		fmt.Fprintf(os.Stderr, "particles: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Particle Viewer")
	if err := ebiten.RunGame(v); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
}
