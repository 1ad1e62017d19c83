// Package audio decodes Sun/NeXT .au clips into the 16-bit little-endian
// stereo PCM stream the Ebitengine audio package plays.
package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	auMagic      = 0x2e736e64 // ".snd"
	auHeaderSize = 24

	encodingULaw  = 1
	encodingPCM16 = 3
)

// ErrNotAU is returned when the data does not start with the .snd magic.
var ErrNotAU = errors.New("not an au stream")

type header struct {
	Magic      uint32
	DataOffset uint32
	DataSize   uint32
	Encoding   uint32
	SampleRate uint32
	Channels   uint32
}

// Stream is a decoded clip. It implements io.ReadSeeker over stereo frames
// at SampleRate, so it can be passed to audio.Resample.
type Stream struct {
	*bytes.Reader
	sampleRate int
}

// SampleRate returns the native rate of the clip.
func (s *Stream) SampleRate() int {
	return s.sampleRate
}

// Length returns the decoded size in bytes.
func (s *Stream) Length() int64 {
	return s.Size()
}

// Decode reads a whole .au clip. Mono clips are duplicated to both
// channels. Supported encodings are 8-bit mu-law and 16-bit linear.
func Decode(r io.Reader) (*Stream, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read au data: %w", err)
	}
	if len(data) < auHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrNotAU, len(data))
	}

	var h header
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &h); err != nil {
		return nil, fmt.Errorf("failed to read au header: %w", err)
	}
	if h.Magic != auMagic {
		return nil, fmt.Errorf("%w: magic 0x%08x", ErrNotAU, h.Magic)
	}
	if h.Channels < 1 || h.Channels > 2 {
		return nil, fmt.Errorf("unsupported au channel count %d", h.Channels)
	}
	if h.DataOffset < auHeaderSize || int(h.DataOffset) > len(data) {
		return nil, fmt.Errorf("invalid au data offset %d", h.DataOffset)
	}

	body := data[h.DataOffset:]
	if h.DataSize != 0xffffffff && int(h.DataSize) < len(body) {
		body = body[:h.DataSize]
	}

	var samples []int16
	switch h.Encoding {
	case encodingULaw:
		samples = make([]int16, len(body))
		for i, b := range body {
			samples[i] = ulaw(b)
		}
	case encodingPCM16:
		samples = make([]int16, len(body)/2)
		for i := range samples {
			samples[i] = int16(binary.BigEndian.Uint16(body[i*2:]))
		}
	default:
		return nil, fmt.Errorf("unsupported au encoding %d", h.Encoding)
	}

	return &Stream{
		Reader:     bytes.NewReader(stereo(samples, int(h.Channels))),
		sampleRate: int(h.SampleRate),
	}, nil
}

// stereo interleaves samples as little-endian stereo frames.
func stereo(samples []int16, channels int) []byte {
	frames := len(samples) / channels
	out := make([]byte, frames*4)
	for f := 0; f < frames; f++ {
		l := samples[f*channels]
		r := l
		if channels == 2 {
			r = samples[f*channels+1]
		}
		binary.LittleEndian.PutUint16(out[f*4:], uint16(l))
		binary.LittleEndian.PutUint16(out[f*4+2:], uint16(r))
	}
	return out
}

// ulaw expands one G.711 mu-law byte.
func ulaw(b byte) int16 {
	b = ^b
	sign := b & 0x80
	exponent := (b >> 4) & 0x07
	mantissa := int16(b & 0x0f)
	sample := ((mantissa << 3) + 0x84) << exponent
	sample -= 0x84
	if sign != 0 {
		return -sample
	}
	return sample
}
