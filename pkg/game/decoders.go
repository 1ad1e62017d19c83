package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
)

// Decoders turn fetched bytes into cached resources. The loader calls them
// from worker goroutines. Tests replace them to run without a GPU.
type Decoders struct {
	// Texture decodes an encoded image into a texture.
	Texture func(data []byte) (any, error)
	// Audio decodes an encoded clip; name carries the file extension.
	Audio func(data []byte, name string, loop bool) (any, error)
	// Video decodes a looping clip into frames.
	Video func(data []byte) (*VideoFrames, error)
	// VideoTarget allocates the texture a video plays into.
	VideoTarget func(width, height int) FrameWriter
}

// DefaultDecoders decode into Ebitengine images and PCM audio clips.
func DefaultDecoders() Decoders {
	return Decoders{
		Texture: DecodeTexture,
		Audio: func(data []byte, name string, loop bool) (any, error) {
			return DecodeAudioClip(data, name, loop)
		},
		Video: DecodeGIFVideo,
		VideoTarget: func(width, height int) FrameWriter {
			return ebiten.NewImage(width, height)
		},
	}
}

// DecodeTexture decodes a PNG/JPEG/GIF image into an *ebiten.Image.
func DecodeTexture(data []byte) (any, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return ebiten.NewImageFromImage(img), nil
}
