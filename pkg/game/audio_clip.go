package game

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	auformat "github.com/decker502/showcase/internal/audio"
)

// AudioSampleRate is the sample rate of the audio context and of every
// decoded clip.
const AudioSampleRate = 44100

// AudioClip is a fully decoded sound: 16-bit little-endian stereo PCM at
// AudioSampleRate. Loop marks background music.
type AudioClip struct {
	Name string
	PCM  []byte
	Loop bool
}

// Duration returns the clip length in seconds.
func (c *AudioClip) Duration() float64 {
	const bytesPerSecond = AudioSampleRate * 4
	return float64(len(c.PCM)) / bytesPerSecond
}

// DecodeAudioClip decodes an encoded clip, choosing the decoder by the
// extension of name. Supported formats: .wav, .mp3, .ogg and .au.
//
// Decoding does not need an audio device, so clips can be decoded by the
// loader before the audio context exists.
func DecodeAudioClip(data []byte, name string, loop bool) (*AudioClip, error) {
	reader := bytes.NewReader(data)

	var stream io.Reader
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".wav":
		s, err := wav.DecodeWithSampleRate(AudioSampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV audio %s: %w", name, err)
		}
		stream = s
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(AudioSampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", name, err)
		}
		stream = s
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(AudioSampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", name, err)
		}
		stream = s
	case ".au":
		s, err := auformat.Decode(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode AU audio %s: %w", name, err)
		}
		stream = s
		if s.SampleRate() != AudioSampleRate {
			stream = audio.Resample(s, s.Length(), s.SampleRate(), AudioSampleRate)
		}
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .mp3, .ogg, .au)", ext)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio %s: %w", name, err)
	}
	return &AudioClip{Name: name, PCM: pcm, Loop: loop}, nil
}
