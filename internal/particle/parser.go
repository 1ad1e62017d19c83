package particle

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
)

// Parse decodes a particle configuration and compiles its behaviors.
//
// Missing optional fields get the same defaults the emitter format
// documents: spawnChance 1, particlesPerWave 1.
func Parse(data []byte) (*EmitterConfig, error) {
	cfg := EmitterConfig{SpawnChance: 1, ParticlesPerWave: 1}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode particle config: %w", err)
	}

	if cfg.Frequency <= 0 {
		return nil, fmt.Errorf("particle config: frequency must be positive, got %v", cfg.Frequency)
	}
	if cfg.Lifetime.Max < cfg.Lifetime.Min || cfg.Lifetime.Max <= 0 {
		return nil, fmt.Errorf("particle config: invalid lifetime [%v, %v]", cfg.Lifetime.Min, cfg.Lifetime.Max)
	}
	if cfg.ParticlesPerWave < 1 {
		cfg.ParticlesPerWave = 1
	}

	behaviors, err := compileBehaviors(cfg.RawBehaviors)
	if err != nil {
		return nil, fmt.Errorf("particle config: %w", err)
	}
	cfg.Behaviors = behaviors
	return &cfg, nil
}

// ParseFile reads and parses a configuration from fsys.
func ParseFile(fsys fs.FS, name string) (*EmitterConfig, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read particle config %s: %w", name, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

// TexturePaths returns the texture references resolved against dir, the
// directory of the configuration file.
func (c *EmitterConfig) TexturePaths(dir string) []string {
	out := make([]string, 0, len(c.Behaviors.Textures))
	for _, t := range c.Behaviors.Textures {
		out = append(out, path.Join(dir, t))
	}
	return out
}
