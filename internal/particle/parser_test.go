package particle

import (
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `{
  "lifetime": {"min": 0.5, "max": 1},
  "frequency": 0.1,
  "maxParticles": 10,
  "pos": {"x": 5, "y": 6},
  "behaviors": [
    {"type": "alpha", "config": {"alpha": {"list": [{"value": 1, "time": 0}, {"value": 0, "time": 1}]}}},
    {"type": "scale", "config": {"scale": {"list": [{"value": 2, "time": 0}, {"value": 1, "time": 1}], "isStepped": true}, "minMult": 0.5}},
    {"type": "color", "config": {"color": {"list": [{"value": "ff0000", "time": 0}, {"value": "#0000ff", "time": 1}]}}},
    {"type": "moveSpeedStatic", "config": {"min": 10, "max": 20}},
    {"type": "noRotation", "config": {"rotation": 45}},
    {"type": "spawnShape", "config": {"type": "rect", "data": {"x": -5, "y": -5, "w": 10, "h": 10}}},
    {"type": "textureSingle", "config": {"texture": "spark.png"}},
    {"type": "blendMode", "config": {"blendMode": "add"}}
  ]
}`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.MaxParticles)
	assert.False(t, cfg.Uncapped())
	assert.Equal(t, 1.0, cfg.SpawnChance, "spawnChance defaults to 1")
	assert.Equal(t, 1, cfg.ParticlesPerWave, "particlesPerWave defaults to 1")
	assert.Equal(t, Point{X: 5, Y: 6}, cfg.Pos)

	b := cfg.Behaviors
	require.NotNil(t, b.Alpha)
	assert.InDelta(t, 0.5, b.Alpha.Eval(0.5, 1), 1e-9)

	require.NotNil(t, b.Scale)
	assert.Equal(t, InterpolationStepped, b.Scale.Interpolation)
	assert.Equal(t, 0.5, b.Scale.MinMult)
	assert.Equal(t, 2.0, b.Scale.Eval(0.9, 1), "stepped curve holds the previous value")

	require.NotNil(t, b.Color)
	r, g, bl := b.Color.Eval(0)
	assert.Equal(t, [3]float64{1, 0, 0}, [3]float64{r, g, bl})

	require.NotNil(t, b.SpeedStatic)
	assert.Equal(t, Range{Min: 10, Max: 20}, *b.SpeedStatic)

	require.NotNil(t, b.NoRotation)
	assert.Equal(t, 45.0, *b.NoRotation)

	assert.Equal(t, ShapeRect, b.Shape.Type)
	assert.Equal(t, 10.0, b.Shape.W)

	assert.Equal(t, []string{"spark.png"}, b.Textures)
	assert.False(t, b.RandomTexture)
	assert.Equal(t, []string{"blendMode"}, b.Unknown)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"not json", `{`},
		{"zero frequency", `{"lifetime": {"min": 1, "max": 1}, "frequency": 0}`},
		{"bad lifetime", `{"lifetime": {"min": 2, "max": 1}, "frequency": 0.1}`},
		{"bad color", `{"lifetime": {"min": 1, "max": 1}, "frequency": 0.1, "behaviors": [{"type": "colorStatic", "config": {"color": "zz"}}]}`},
		{"bad shape", `{"lifetime": {"min": 1, "max": 1}, "frequency": 0.1, "behaviors": [{"type": "spawnShape", "config": {"type": "star"}}]}`},
		{"empty list", `{"lifetime": {"min": 1, "max": 1}, "frequency": 0.1, "behaviors": [{"type": "alpha", "config": {"alpha": {"list": []}}}]}`},
		{"no textures", `{"lifetime": {"min": 1, "max": 1}, "frequency": 0.1, "behaviors": [{"type": "textureRandom", "config": {"textures": []}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json))
			assert.Error(t, err)
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	cfg, err := Parse([]byte(minimalConfig))
	require.NoError(t, err)

	clone := cfg.Clone()
	clone.MaxParticles = 0
	clone.Pos.X = 999
	clone.Behaviors.Alpha.Keyframes[0].Value = 0.1
	clone.Behaviors.Color.Channels[0][0].Value = 0
	*clone.Behaviors.SpeedStatic = Range{}
	*clone.Behaviors.NoRotation = 0
	clone.Behaviors.Textures[0] = "other.png"
	clone.RawBehaviors[0].Config[0] = ' '

	assert.Equal(t, 10, cfg.MaxParticles)
	assert.Equal(t, 5.0, cfg.Pos.X)
	assert.Equal(t, 1.0, cfg.Behaviors.Alpha.Keyframes[0].Value)
	assert.Equal(t, 1.0, cfg.Behaviors.Color.Channels[0][0].Value)
	assert.Equal(t, Range{Min: 10, Max: 20}, *cfg.Behaviors.SpeedStatic)
	assert.Equal(t, 45.0, *cfg.Behaviors.NoRotation)
	assert.Equal(t, "spark.png", cfg.Behaviors.Textures[0])
	assert.Equal(t, byte('{'), cfg.RawBehaviors[0].Config[0])

	var nilCfg *EmitterConfig
	assert.Nil(t, nilCfg.Clone())
}

func TestParseFileAndTexturePaths(t *testing.T) {
	fsys := fstest.MapFS{
		"assets/particles/spark.json": {Data: []byte(minimalConfig)},
	}
	cfg, err := ParseFile(fsys, "assets/particles/spark.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"assets/particles/spark.png"}, cfg.TexturePaths("assets/particles"))

	_, err = ParseFile(fsys, "assets/particles/missing.json")
	assert.Error(t, err)
}

// TestShippedConfigs 校验仓库中的火焰配置
func TestShippedConfigs(t *testing.T) {
	for _, name := range []string{"fire.json", "fire_intense.json"} {
		t.Run(name, func(t *testing.T) {
			data, err := os.ReadFile("../../assets/particles/" + name)
			require.NoError(t, err)

			cfg, err := Parse(data)
			require.NoError(t, err)
			assert.Empty(t, cfg.Behaviors.Unknown)
			assert.True(t, cfg.Behaviors.RandomTexture)
			assert.Len(t, cfg.Behaviors.Textures, 2)
			assert.Equal(t, ShapeTorus, cfg.Behaviors.Shape.Type)
		})
	}

	data, err := os.ReadFile("../../assets/particles/fire.json")
	require.NoError(t, err)
	baseline, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, 10, baseline.MaxParticles)

	data, err = os.ReadFile("../../assets/particles/fire_intense.json")
	require.NoError(t, err)
	intense, err := Parse(data)
	require.NoError(t, err)
	assert.True(t, intense.Uncapped())
}
