package game

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAudioClipWAV(t *testing.T) {
	data, err := os.ReadFile("../../assets/audio/click.wav")
	require.NoError(t, err)

	clip, err := DecodeAudioClip(data, "audio/click.wav", false)
	require.NoError(t, err)
	assert.NotEmpty(t, clip.PCM)
	assert.Zero(t, len(clip.PCM)%4, "16-bit stereo frames")
	assert.Greater(t, clip.Duration(), 0.0)
	assert.False(t, clip.Loop)
}

func TestDecodeAudioClipErrors(t *testing.T) {
	_, err := DecodeAudioClip([]byte("not audio"), "a.wav", false)
	assert.Error(t, err)

	_, err = DecodeAudioClip([]byte("RIFF"), "a.flac", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported audio format")
}

// 没有音频上下文时播放调用是空操作
func TestAudioManagerWithoutContext(t *testing.T) {
	cache := NewAssetCache()
	require.NoError(t, cache.Put("SOUND", &AudioClip{PCM: make([]byte, 16)}))

	am := NewAudioManager(nil, cache, 0.5, 0.7)
	assert.False(t, am.PlaySound("SOUND"))
	assert.False(t, am.PlayMusic("SOUND"))
	assert.Empty(t, am.CurrentMusic())

	assert.True(t, am.ToggleMute())
	assert.True(t, am.Muted())
	assert.False(t, am.ToggleMute())

	am.SetMusicVolume(0.1)
	am.SetSoundVolume(0.2)
	music, sound := am.Volumes()
	assert.Equal(t, 0.1, music)
	assert.Equal(t, 0.2, sound)
}

func TestDecodeAudioClipAU(t *testing.T) {
	// 24-byte header, 8000 Hz mono mu-law, four samples of silence
	data := []byte{
		0x2e, 0x73, 0x6e, 0x64,
		0, 0, 0, 24,
		0, 0, 0, 4,
		0, 0, 0, 1,
		0, 0, 0x1f, 0x40,
		0, 0, 0, 1,
		0xff, 0xff, 0xff, 0xff,
	}
	clip, err := DecodeAudioClip(data, "sounds/tap.au", false)
	require.NoError(t, err)
	assert.Zero(t, len(clip.PCM)%4, "16-bit stereo frames")
}
