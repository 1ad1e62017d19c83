package game

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
)

// FrameWriter receives RGBA frames. *ebiten.Image satisfies it.
type FrameWriter interface {
	WritePixels(pixels []byte)
}

// VideoFrames is a decoded looping clip: one RGBA buffer per frame plus the
// time each frame stays on screen.
type VideoFrames struct {
	Width  int
	Height int
	Pixels [][]byte
	Delays []float64 // seconds
}

// defaultFrameDelay applies to frames that declare a delay of 0 or 1
// hundredths, the same clamp browsers use.
const defaultFrameDelay = 0.1

// DecodeGIFVideo decodes an animated GIF into composited frames.
func DecodeGIFVideo(data []byte) (*VideoFrames, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode video: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("video has no frames")
	}

	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Dx(), b.Dy()
	}

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	frames := &VideoFrames{Width: w, Height: h}

	for i, frame := range g.Image {
		var previous []byte
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			previous = append([]byte(nil), canvas.Pix...)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		frames.Pixels = append(frames.Pixels, append([]byte(nil), canvas.Pix...))

		delay := defaultFrameDelay
		if i < len(g.Delay) && g.Delay[i] > 1 {
			delay = float64(g.Delay[i]) / 100
		}
		frames.Delays = append(frames.Delays, delay)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			copy(canvas.Pix, previous)
		}
	}
	return frames, nil
}

// VideoTexture plays VideoFrames into a single reusable texture. Playback
// loops and has no audio track.
type VideoTexture struct {
	frames  *VideoFrames
	target  FrameWriter
	current int
	elapsed float64
	paused  bool
}

// NewVideoTexture writes the first frame into target and returns the player.
func NewVideoTexture(frames *VideoFrames, target FrameWriter) (*VideoTexture, error) {
	if frames == nil || len(frames.Pixels) == 0 {
		return nil, fmt.Errorf("video has no frames")
	}
	if target == nil {
		return nil, fmt.Errorf("video texture target is nil")
	}
	v := &VideoTexture{frames: frames, target: target}
	v.target.WritePixels(frames.Pixels[0])
	return v, nil
}

// Advance moves playback forward by dt seconds and uploads the new frame
// when it changes.
func (v *VideoTexture) Advance(dt float64) {
	if v.paused || len(v.frames.Pixels) < 2 {
		return
	}
	v.elapsed += dt
	changed := false
	for v.elapsed >= v.frames.Delays[v.current] {
		v.elapsed -= v.frames.Delays[v.current]
		v.current = (v.current + 1) % len(v.frames.Pixels)
		changed = true
	}
	if changed {
		v.target.WritePixels(v.frames.Pixels[v.current])
	}
}

// Texture returns the target the frames are written into.
func (v *VideoTexture) Texture() FrameWriter {
	return v.target
}

// Frame returns the index of the frame on screen.
func (v *VideoTexture) Frame() int {
	return v.current
}

// FrameCount returns the number of frames in the loop.
func (v *VideoTexture) FrameCount() int {
	return len(v.frames.Pixels)
}

// Size returns the frame size in pixels.
func (v *VideoTexture) Size() (int, int) {
	return v.frames.Width, v.frames.Height
}

// SetPaused pauses or resumes playback.
func (v *VideoTexture) SetPaused(paused bool) {
	v.paused = paused
}
