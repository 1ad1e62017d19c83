package components

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/showcase/internal/particle"
	"github.com/decker502/showcase/pkg/ecs"
)

// EmitterComponent represents a particle emitter that spawns and manages particles.
//
// Config is the emitter's own deep copy of a cached configuration, so the
// spawn position and particle cap can change at runtime. The ParticleSystem
// processes emitters each frame to spawn new particles and age them out.
//
// This is a pure data component following ECS principles - it contains no methods.
type EmitterComponent struct {
	Name   string
	Config *particle.EmitterConfig

	// Textures resolved from the config's texture behaviors; nil entries are
	// textures that failed to load.
	Textures []*ebiten.Image

	// Emitting controls spawning only. Live particles keep aging when it is
	// false.
	Emitting bool

	// SpawnX/SpawnY is the spawn point in design coordinates.
	SpawnX, SpawnY float64

	Age             float64 // Time the emitter has been emitting (seconds)
	SpawnTimer      float64 // Time until the next wave (seconds)
	TotalLaunched   int
	ActiveParticles []ecs.EntityID
}
