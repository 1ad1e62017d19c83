package particle

import (
	"encoding/json"
	"fmt"
	"log"
)

// Behavior type names understood by Parse.
const (
	BehaviorAlpha           = "alpha"
	BehaviorAlphaStatic     = "alphaStatic"
	BehaviorScale           = "scale"
	BehaviorScaleStatic     = "scaleStatic"
	BehaviorColor           = "color"
	BehaviorColorStatic     = "colorStatic"
	BehaviorMoveSpeed       = "moveSpeed"
	BehaviorMoveSpeedStatic = "moveSpeedStatic"
	BehaviorRotation        = "rotation"
	BehaviorRotationStatic  = "rotationStatic"
	BehaviorNoRotation      = "noRotation"
	BehaviorSpawnShape      = "spawnShape"
	BehaviorTextureRandom   = "textureRandom"
	BehaviorTextureSingle   = "textureSingle"
)

// Spawn shapes.
const (
	ShapePoint = "point"
	ShapeRect  = "rect"
	ShapeTorus = "torus"
)

// Curve is a keyframed property over a particle's normalized age.
// MinMult scales the whole curve by a per-particle random factor in
// [MinMult, 1].
type Curve struct {
	Keyframes     []Keyframe
	Interpolation string
	MinMult       float64
}

// Eval returns the curve value at age t scaled by mult.
func (c *Curve) Eval(t, mult float64) float64 {
	return EvaluateKeyframes(c.Keyframes, t, c.Interpolation) * mult
}

func (c *Curve) clone() *Curve {
	if c == nil {
		return nil
	}
	out := *c
	out.Keyframes = append([]Keyframe(nil), c.Keyframes...)
	return &out
}

// ColorCurve is a keyframed RGB color.
type ColorCurve struct {
	Channels      [3][]Keyframe
	Interpolation string
}

// Eval returns r, g, b in 0-1 at age t.
func (c *ColorCurve) Eval(t float64) (r, g, b float64) {
	return EvaluateKeyframes(c.Channels[0], t, c.Interpolation),
		EvaluateKeyframes(c.Channels[1], t, c.Interpolation),
		EvaluateKeyframes(c.Channels[2], t, c.Interpolation)
}

// Rotation configures the initial angle (degrees) and angular speed
// (degrees/second) of a particle. Accel changes the angular speed over time.
type Rotation struct {
	MinStart float64 `json:"minStart"`
	MaxStart float64 `json:"maxStart"`
	MinSpeed float64 `json:"minSpeed"`
	MaxSpeed float64 `json:"maxSpeed"`
	Accel    float64 `json:"accel"`
}

// SpawnShape is where, relative to the spawn point, particles appear.
type SpawnShape struct {
	Type           string
	X, Y           float64
	W, H           float64 // rect
	Radius         float64 // torus
	InnerRadius    float64 // torus
	AffectRotation bool    // torus: particle angle follows the spawn angle
}

// Behaviors is the compiled form of the behaviors array. A nil pointer
// means the behavior is absent and the particle system uses its default.
type Behaviors struct {
	Alpha       *Curve
	AlphaStatic *float64

	Scale       *Curve
	ScaleStatic *Range

	Color       *ColorCurve
	ColorStatic *[3]float64

	Speed       *Curve
	SpeedStatic *Range

	Rotation       *Rotation
	RotationStatic *Range
	NoRotation     *float64

	Shape SpawnShape

	// Textures are config-relative paths until resolved by the loader.
	Textures      []string
	RandomTexture bool

	// Unknown lists behavior types that were skipped.
	Unknown []string
}

func (b Behaviors) clone() Behaviors {
	out := b
	out.Alpha = b.Alpha.clone()
	out.Scale = b.Scale.clone()
	out.Speed = b.Speed.clone()
	if b.AlphaStatic != nil {
		v := *b.AlphaStatic
		out.AlphaStatic = &v
	}
	if b.ScaleStatic != nil {
		v := *b.ScaleStatic
		out.ScaleStatic = &v
	}
	if b.Color != nil {
		c := *b.Color
		for i := range c.Channels {
			c.Channels[i] = append([]Keyframe(nil), b.Color.Channels[i]...)
		}
		out.Color = &c
	}
	if b.ColorStatic != nil {
		v := *b.ColorStatic
		out.ColorStatic = &v
	}
	if b.SpeedStatic != nil {
		v := *b.SpeedStatic
		out.SpeedStatic = &v
	}
	if b.Rotation != nil {
		v := *b.Rotation
		out.Rotation = &v
	}
	if b.RotationStatic != nil {
		v := *b.RotationStatic
		out.RotationStatic = &v
	}
	if b.NoRotation != nil {
		v := *b.NoRotation
		out.NoRotation = &v
	}
	out.Textures = append([]string(nil), b.Textures...)
	out.Unknown = append([]string(nil), b.Unknown...)
	return out
}

type listConfig struct {
	Alpha   *ValueList `json:"alpha"`
	Scale   *ValueList `json:"scale"`
	Speed   *ValueList `json:"speed"`
	MinMult *float64   `json:"minMult"`
}

type staticConfig struct {
	Alpha *float64 `json:"alpha"`
	Min   float64  `json:"min"`
	Max   float64  `json:"max"`
	Color string   `json:"color"`
}

type colorConfig struct {
	Color ValueList `json:"color"`
}

type noRotationConfig struct {
	Rotation float64 `json:"rotation"`
}

type shapeConfig struct {
	Type string `json:"type"`
	Data struct {
		X              float64 `json:"x"`
		Y              float64 `json:"y"`
		W              float64 `json:"w"`
		H              float64 `json:"h"`
		Radius         float64 `json:"radius"`
		InnerRadius    float64 `json:"innerRadius"`
		AffectRotation bool    `json:"affectRotation"`
	} `json:"data"`
}

type textureConfig struct {
	Textures []string `json:"textures"`
	Texture  string   `json:"texture"`
}

func curveFrom(list *ValueList, minMult *float64) (*Curve, error) {
	if list == nil {
		return nil, fmt.Errorf("missing value list")
	}
	kf, err := list.Numbers()
	if err != nil {
		return nil, err
	}
	c := &Curve{Keyframes: kf, Interpolation: list.interpolation(), MinMult: 1}
	if minMult != nil {
		c.MinMult = *minMult
	}
	return c, nil
}

// compileBehaviors decodes every raw behavior. Unknown types are logged and
// recorded in Unknown; malformed configs of known types are errors.
func compileBehaviors(raw []RawBehavior) (Behaviors, error) {
	b := Behaviors{Shape: SpawnShape{Type: ShapePoint}}

	for i, rb := range raw {
		var err error
		switch rb.Type {
		case BehaviorAlpha, BehaviorScale, BehaviorMoveSpeed:
			var cfg listConfig
			if err = json.Unmarshal(rb.Config, &cfg); err != nil {
				break
			}
			switch rb.Type {
			case BehaviorAlpha:
				b.Alpha, err = curveFrom(cfg.Alpha, nil)
			case BehaviorScale:
				b.Scale, err = curveFrom(cfg.Scale, cfg.MinMult)
			case BehaviorMoveSpeed:
				b.Speed, err = curveFrom(cfg.Speed, cfg.MinMult)
			}

		case BehaviorAlphaStatic:
			var cfg staticConfig
			if err = json.Unmarshal(rb.Config, &cfg); err == nil {
				alpha := 1.0
				if cfg.Alpha != nil {
					alpha = *cfg.Alpha
				}
				b.AlphaStatic = &alpha
			}

		case BehaviorScaleStatic, BehaviorMoveSpeedStatic, BehaviorRotationStatic:
			var cfg staticConfig
			if err = json.Unmarshal(rb.Config, &cfg); err == nil {
				r := &Range{Min: cfg.Min, Max: cfg.Max}
				switch rb.Type {
				case BehaviorScaleStatic:
					b.ScaleStatic = r
				case BehaviorMoveSpeedStatic:
					b.SpeedStatic = r
				default:
					b.RotationStatic = r
				}
			}

		case BehaviorColor:
			var cfg colorConfig
			if err = json.Unmarshal(rb.Config, &cfg); err == nil {
				var tracks [3][]Keyframe
				if tracks, err = cfg.Color.Colors(); err == nil {
					b.Color = &ColorCurve{Channels: tracks, Interpolation: cfg.Color.interpolation()}
				}
			}

		case BehaviorColorStatic:
			var cfg staticConfig
			if err = json.Unmarshal(rb.Config, &cfg); err == nil {
				var rgb [3]float64
				if rgb, err = ParseHexColor(cfg.Color); err == nil {
					b.ColorStatic = &rgb
				}
			}

		case BehaviorRotation:
			var cfg Rotation
			if err = json.Unmarshal(rb.Config, &cfg); err == nil {
				b.Rotation = &cfg
			}

		case BehaviorNoRotation:
			var cfg noRotationConfig
			if err = json.Unmarshal(rb.Config, &cfg); err == nil {
				b.NoRotation = &cfg.Rotation
			}

		case BehaviorSpawnShape:
			var cfg shapeConfig
			if err = json.Unmarshal(rb.Config, &cfg); err != nil {
				break
			}
			switch cfg.Type {
			case ShapePoint, ShapeRect, ShapeTorus:
			default:
				err = fmt.Errorf("unknown spawn shape %q", cfg.Type)
			}
			b.Shape = SpawnShape{
				Type:           cfg.Type,
				X:              cfg.Data.X,
				Y:              cfg.Data.Y,
				W:              cfg.Data.W,
				H:              cfg.Data.H,
				Radius:         cfg.Data.Radius,
				InnerRadius:    cfg.Data.InnerRadius,
				AffectRotation: cfg.Data.AffectRotation,
			}

		case BehaviorTextureRandom:
			var cfg textureConfig
			if err = json.Unmarshal(rb.Config, &cfg); err == nil {
				if len(cfg.Textures) == 0 {
					err = fmt.Errorf("textureRandom without textures")
				}
				b.Textures = cfg.Textures
				b.RandomTexture = true
			}

		case BehaviorTextureSingle:
			var cfg textureConfig
			if err = json.Unmarshal(rb.Config, &cfg); err == nil {
				if cfg.Texture == "" {
					err = fmt.Errorf("textureSingle without texture")
				}
				b.Textures = []string{cfg.Texture}
				b.RandomTexture = false
			}

		default:
			log.Printf("[Particle] Skipping unknown behavior type %q", rb.Type)
			b.Unknown = append(b.Unknown, rb.Type)
		}

		if err != nil {
			return Behaviors{}, fmt.Errorf("behavior #%d (%s): %w", i, rb.Type, err)
		}
	}

	return b, nil
}
