// Package particle provides the data model and parser for JSON particle
// emitter configurations.
//
// The format is declarative: emitter timing (lifetime, frequency, waves,
// particle cap) plus an ordered list of behaviors. Each behavior is a
// {type, config} pair; Parse compiles the known behavior types into a typed
// Behaviors value so the particle system never touches raw JSON at runtime.
//
// Configurations are loaded once and cached. Callers that mutate a
// configuration (spawn position, particle cap) must work on Clone().
package particle

import "encoding/json"

// Range is a {min, max} pair; a random value is drawn per particle.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Point is a 2D position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RawBehavior is one entry of the "behaviors" array as it appears on disk.
type RawBehavior struct {
	Type   string          `json:"type"`
	Config json.RawMessage `json:"config"`
}

// EmitterConfig is the root object of a particle configuration file.
//
// MaxParticles == 0 means the emitter is uncapped. EmitterLifetime <= 0
// means the emitter emits until stopped.
type EmitterConfig struct {
	Lifetime         Range         `json:"lifetime"`
	Frequency        float64       `json:"frequency"`
	SpawnChance      float64       `json:"spawnChance"`
	ParticlesPerWave int           `json:"particlesPerWave"`
	EmitterLifetime  float64       `json:"emitterLifetime"`
	MaxParticles     int           `json:"maxParticles"`
	AddAtBack        bool          `json:"addAtBack"`
	Pos              Point         `json:"pos"`
	RawBehaviors     []RawBehavior `json:"behaviors"`

	// Behaviors is filled by Parse from RawBehaviors.
	Behaviors Behaviors `json:"-"`
}

// Uncapped reports whether the emitter has no live particle limit.
func (c *EmitterConfig) Uncapped() bool {
	return c.MaxParticles <= 0
}

// Clone returns a deep copy. Runtime code mutates the copy, never the
// cached template.
func (c *EmitterConfig) Clone() *EmitterConfig {
	if c == nil {
		return nil
	}
	out := *c
	if c.RawBehaviors != nil {
		out.RawBehaviors = make([]RawBehavior, len(c.RawBehaviors))
		for i, b := range c.RawBehaviors {
			out.RawBehaviors[i] = RawBehavior{
				Type:   b.Type,
				Config: append(json.RawMessage(nil), b.Config...),
			}
		}
	}
	out.Behaviors = c.Behaviors.clone()
	return &out
}
