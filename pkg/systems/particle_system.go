package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/showcase/internal/particle"
	"github.com/decker502/showcase/pkg/components"
	"github.com/decker502/showcase/pkg/ecs"
)

// maxWavesPerUpdate bounds catch-up after a long frame.
const maxWavesPerUpdate = 32

// ParticleSystem manages particle emitters and the particles they spawn.
//
// Each frame it spawns new waves from emitting emitters (frequency,
// spawnChance, particlesPerWave and the maxParticles cap) and ages every
// live particle through the emitter's behaviors. Particles whose age
// reaches their lifetime are destroyed.
type ParticleSystem struct {
	entityManager *ecs.EntityManager
	rng           *rand.Rand
}

// NewParticleSystem creates a particle system. A nil rng uses a fixed seed.
func NewParticleSystem(em *ecs.EntityManager, rng *rand.Rand) *ParticleSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &ParticleSystem{entityManager: em, rng: rng}
}

// CreateEmitter adds an emitter entity. cfg must be the caller's own copy;
// the emitter mutates it. textures follow cfg.Behaviors.Textures.
func (s *ParticleSystem) CreateEmitter(name string, cfg *particle.EmitterConfig, textures []*ebiten.Image, x, y float64, emitting bool) ecs.EntityID {
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.EmitterComponent{
		Name:     name,
		Config:   cfg,
		Textures: textures,
		Emitting: emitting,
		SpawnX:   x,
		SpawnY:   y,
	})
	log.Printf("[ParticleSystem] Created emitter %q (max=%d, frequency=%.3fs)", name, cfg.MaxParticles, cfg.Frequency)
	return id
}

// SetEmitting starts or stops spawning. Live particles keep aging.
func (s *ParticleSystem) SetEmitting(id ecs.EntityID, emitting bool) {
	if e, ok := ecs.GetComponent[*components.EmitterComponent](s.entityManager, id); ok {
		if emitting && !e.Emitting {
			e.SpawnTimer = 0
		}
		e.Emitting = emitting
	}
}

// SetSpawnPoint moves the emitter's spawn point.
func (s *ParticleSystem) SetSpawnPoint(id ecs.EntityID, x, y float64) {
	if e, ok := ecs.GetComponent[*components.EmitterComponent](s.entityManager, id); ok {
		e.SpawnX, e.SpawnY = x, y
	}
}

// LiveCount returns the number of live particles of an emitter.
func (s *ParticleSystem) LiveCount(id ecs.EntityID) int {
	if e, ok := ecs.GetComponent[*components.EmitterComponent](s.entityManager, id); ok {
		return len(e.ActiveParticles)
	}
	return 0
}

// Update ages particles, then spawns new waves.
func (s *ParticleSystem) Update(dt float64) {
	s.updateParticles(dt)
	s.updateEmitters(dt)
	s.entityManager.RemoveMarkedEntities()
}

func (s *ParticleSystem) updateEmitters(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.EmitterComponent](s.entityManager) {
		emitter, _ := ecs.GetComponent[*components.EmitterComponent](s.entityManager, id)
		cfg := emitter.Config
		if cfg == nil || !emitter.Emitting {
			continue
		}

		emitter.Age += dt
		if cfg.EmitterLifetime > 0 && emitter.Age >= cfg.EmitterLifetime {
			emitter.Emitting = false
			continue
		}

		emitter.SpawnTimer -= dt
		waves := 0
		for emitter.SpawnTimer <= 0 && waves < maxWavesPerUpdate {
			s.spawnWave(id, emitter)
			emitter.SpawnTimer += cfg.Frequency
			waves++
		}
		if waves == maxWavesPerUpdate && emitter.SpawnTimer < 0 {
			emitter.SpawnTimer = 0
		}
	}
}

func (s *ParticleSystem) spawnWave(id ecs.EntityID, emitter *components.EmitterComponent) {
	cfg := emitter.Config
	for i := 0; i < cfg.ParticlesPerWave; i++ {
		if !cfg.Uncapped() && len(emitter.ActiveParticles) >= cfg.MaxParticles {
			return
		}
		if cfg.SpawnChance < 1 && s.rng.Float64() >= cfg.SpawnChance {
			continue
		}
		emitter.ActiveParticles = append(emitter.ActiveParticles, s.spawnParticle(id, emitter))
		emitter.TotalLaunched++
	}
}

func (s *ParticleSystem) spawnParticle(emitterID ecs.EntityID, emitter *components.EmitterComponent) ecs.EntityID {
	cfg := emitter.Config
	b := &cfg.Behaviors

	x := emitter.SpawnX + cfg.Pos.X
	y := emitter.SpawnY + cfg.Pos.Y

	p := &components.ParticleComponent{
		Emitter:   emitterID,
		Lifetime:  particle.RandomInRange(s.rng, cfg.Lifetime.Min, cfg.Lifetime.Max),
		ScaleMult: 1,
		SpeedMult: 1,
		Alpha:     1,
		Scale:     1,
		Red:       1,
		Green:     1,
		Blue:      1,
	}

	switch {
	case b.NoRotation != nil:
		p.Rotation = *b.NoRotation
	case b.Rotation != nil:
		p.Rotation = particle.RandomInRange(s.rng, b.Rotation.MinStart, b.Rotation.MaxStart)
		p.RotationSpeed = particle.RandomInRange(s.rng, b.Rotation.MinSpeed, b.Rotation.MaxSpeed)
	case b.RotationStatic != nil:
		p.Rotation = particle.RandomInRange(s.rng, b.RotationStatic.Min, b.RotationStatic.Max)
	}

	dx, dy, angle, hasAngle := s.shapeOffset(b.Shape)
	x += dx
	y += dy
	if hasAngle && b.NoRotation == nil {
		p.Rotation += angle
	}

	rad := p.Rotation * math.Pi / 180
	p.DirX, p.DirY = math.Cos(rad), math.Sin(rad)

	if b.Scale != nil {
		p.ScaleMult = particle.RandomInRange(s.rng, b.Scale.MinMult, 1)
	}
	if b.ScaleStatic != nil {
		p.StaticScale = particle.RandomInRange(s.rng, b.ScaleStatic.Min, b.ScaleStatic.Max)
	}
	if b.Speed != nil {
		p.SpeedMult = particle.RandomInRange(s.rng, b.Speed.MinMult, 1)
	}
	if b.SpeedStatic != nil {
		p.StaticSpeed = particle.RandomInRange(s.rng, b.SpeedStatic.Min, b.SpeedStatic.Max)
	}

	if n := len(emitter.Textures); n > 0 {
		if b.RandomTexture {
			p.Texture = emitter.Textures[s.rng.Intn(n)]
		} else {
			p.Texture = emitter.Textures[0]
		}
	}

	applyBehaviors(p, b, 0)

	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, p)
	ecs.AddComponent(s.entityManager, id, &components.PositionComponent{X: x, Y: y})
	return id
}

// shapeOffset returns a spawn offset inside the shape. For a torus with
// affectRotation the spawn angle (degrees) is returned as well.
func (s *ParticleSystem) shapeOffset(shape particle.SpawnShape) (dx, dy, angle float64, hasAngle bool) {
	switch shape.Type {
	case particle.ShapeRect:
		return shape.X + s.rng.Float64()*shape.W, shape.Y + s.rng.Float64()*shape.H, 0, false
	case particle.ShapeTorus:
		a := s.rng.Float64() * 2 * math.Pi
		r := particle.RandomInRange(s.rng, shape.InnerRadius, shape.Radius)
		return shape.X + r*math.Cos(a), shape.Y + r*math.Sin(a), a * 180 / math.Pi, shape.AffectRotation
	}
	return shape.X, shape.Y, 0, false
}

func (s *ParticleSystem) updateParticles(dt float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](s.entityManager) {
		p, _ := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		p.Age += dt
		if p.Age >= p.Lifetime {
			s.destroyParticle(id, p.Emitter)
			continue
		}

		emitter, ok := ecs.GetComponent[*components.EmitterComponent](s.entityManager, p.Emitter)
		if !ok || emitter.Config == nil {
			continue
		}
		b := &emitter.Config.Behaviors

		if b.Rotation != nil && b.NoRotation == nil {
			p.RotationSpeed += b.Rotation.Accel * dt
			p.Rotation += p.RotationSpeed * dt
		}

		applyBehaviors(p, b, p.Age/p.Lifetime)

		pos.X += p.DirX * p.Speed * dt
		pos.Y += p.DirY * p.Speed * dt
	}
}

// applyBehaviors evaluates alpha, scale, color and speed at normalized age t.
func applyBehaviors(p *components.ParticleComponent, b *particle.Behaviors, t float64) {
	switch {
	case b.Alpha != nil:
		p.Alpha = b.Alpha.Eval(t, 1)
	case b.AlphaStatic != nil:
		p.Alpha = *b.AlphaStatic
	}

	switch {
	case b.Scale != nil:
		p.Scale = b.Scale.Eval(t, p.ScaleMult)
	case b.ScaleStatic != nil:
		p.Scale = p.StaticScale
	}

	switch {
	case b.Color != nil:
		p.Red, p.Green, p.Blue = b.Color.Eval(t)
	case b.ColorStatic != nil:
		p.Red, p.Green, p.Blue = b.ColorStatic[0], b.ColorStatic[1], b.ColorStatic[2]
	}

	switch {
	case b.Speed != nil:
		p.Speed = b.Speed.Eval(t, p.SpeedMult)
	case b.SpeedStatic != nil:
		p.Speed = p.StaticSpeed
	}
}

func (s *ParticleSystem) destroyParticle(id, emitterID ecs.EntityID) {
	s.entityManager.DestroyEntity(id)
	emitter, ok := ecs.GetComponent[*components.EmitterComponent](s.entityManager, emitterID)
	if !ok {
		return
	}
	for i, pid := range emitter.ActiveParticles {
		if pid == id {
			emitter.ActiveParticles = append(emitter.ActiveParticles[:i], emitter.ActiveParticles[i+1:]...)
			break
		}
	}
}
