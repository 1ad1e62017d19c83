package particle

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
)

// Keyframe represents a single keyframe in an animation curve.
// Used for animating particle properties over a particle's normalized age.
type Keyframe struct {
	Time  float64 // Normalized time (0-1)
	Value float64 // Value at this keyframe
}

// Interpolation modes accepted by EvaluateKeyframes.
const (
	InterpolationLinear  = "Linear"
	InterpolationStepped = "Stepped"
)

// ValueStep is one {value, time} entry of a value list. Value is either a
// number or a hex color string, depending on the behavior.
type ValueStep struct {
	Value json.RawMessage `json:"value"`
	Time  float64         `json:"time"`
}

// ValueList is the {list, isStepped} shape shared by the alpha, scale,
// color and moveSpeed behaviors.
type ValueList struct {
	List      []ValueStep `json:"list"`
	IsStepped bool        `json:"isStepped"`
}

func (v ValueList) interpolation() string {
	if v.IsStepped {
		return InterpolationStepped
	}
	return InterpolationLinear
}

// Numbers converts a numeric value list into keyframes.
func (v ValueList) Numbers() ([]Keyframe, error) {
	if len(v.List) == 0 {
		return nil, fmt.Errorf("value list is empty")
	}
	out := make([]Keyframe, 0, len(v.List))
	for i, step := range v.List {
		var f float64
		if err := json.Unmarshal(step.Value, &f); err != nil {
			return nil, fmt.Errorf("value list entry %d: %w", i, err)
		}
		out = append(out, Keyframe{Time: step.Time, Value: f})
	}
	return out, nil
}

// Colors converts a hex color value list into one keyframe track per
// channel (r, g, b in 0-1).
func (v ValueList) Colors() ([3][]Keyframe, error) {
	var tracks [3][]Keyframe
	if len(v.List) == 0 {
		return tracks, fmt.Errorf("value list is empty")
	}
	for i, step := range v.List {
		var hex string
		if err := json.Unmarshal(step.Value, &hex); err != nil {
			return tracks, fmt.Errorf("value list entry %d: %w", i, err)
		}
		rgb, err := ParseHexColor(hex)
		if err != nil {
			return tracks, fmt.Errorf("value list entry %d: %w", i, err)
		}
		for c := 0; c < 3; c++ {
			tracks[c] = append(tracks[c], Keyframe{Time: step.Time, Value: rgb[c]})
		}
	}
	return tracks, nil
}

// ParseHexColor parses "rrggbb" or "#rrggbb" into channels in 0-1.
func ParseHexColor(s string) ([3]float64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return [3]float64{}, fmt.Errorf("invalid color %q", s)
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return [3]float64{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return [3]float64{
		float64((n>>16)&0xff) / 255,
		float64((n>>8)&0xff) / 255,
		float64(n&0xff) / 255,
	}, nil
}

// EvaluateKeyframes calculates the value at time t (0-1) using the provided
// keyframes and interpolation mode.
//
// Keyframes must be sorted by Time. Before the first keyframe the first
// value is returned, after the last keyframe the last value.
func EvaluateKeyframes(keyframes []Keyframe, t float64, interpolation string) float64 {
	if len(keyframes) == 0 {
		return 0
	}
	if len(keyframes) == 1 {
		return keyframes[0].Value
	}

	t = math.Max(0, math.Min(1, t))

	if t < keyframes[0].Time {
		return keyframes[0].Value
	}

	for i := 0; i < len(keyframes)-1; i++ {
		k0 := keyframes[i]
		k1 := keyframes[i+1]

		if t >= k0.Time && t < k1.Time {
			if interpolation == InterpolationStepped {
				return k0.Value
			}
			duration := k1.Time - k0.Time
			if duration <= 0 {
				return k0.Value
			}
			ratio := (t - k0.Time) / duration
			return k0.Value + ratio*(k1.Value-k0.Value)
		}
	}

	return keyframes[len(keyframes)-1].Value
}

// RandomInRange returns a random float64 in [min, max]. A nil r uses the
// package-level source.
func RandomInRange(r *rand.Rand, min, max float64) float64 {
	if min >= max {
		return min
	}
	if r == nil {
		return min + rand.Float64()*(max-min)
	}
	return min + r.Float64()*(max-min)
}
