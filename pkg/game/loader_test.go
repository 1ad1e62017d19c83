package game

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/showcase/internal/dialogue"
	"github.com/decker502/showcase/internal/particle"
	"github.com/decker502/showcase/pkg/config"
)

// fakeTexture 代替 GPU 贴图
type fakeTexture struct {
	source string
}

// fakeFrameWriter 记录写入的帧
type fakeFrameWriter struct {
	mu     sync.Mutex
	writes int
}

func (w *fakeFrameWriter) WritePixels(pixels []byte) {
	w.mu.Lock()
	w.writes++
	w.mu.Unlock()
}

func (w *fakeFrameWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writes
}

func fakeDecoders() Decoders {
	return Decoders{
		Texture: func(data []byte) (any, error) {
			if strings.HasPrefix(string(data), "bad") {
				return nil, errors.New("corrupt image")
			}
			return &fakeTexture{source: string(data)}, nil
		},
		Audio: func(data []byte, name string, loop bool) (any, error) {
			return &AudioClip{Name: name, PCM: data, Loop: loop}, nil
		},
		Video: DecodeGIFVideo,
		VideoTarget: func(width, height int) FrameWriter {
			return &fakeFrameWriter{}
		},
	}
}

const particleJSON = `{
  "lifetime": {"min": 0.5, "max": 1},
  "frequency": 0.1,
  "behaviors": [{"type": "textureRandom", "config": {"textures": ["fire.png", "missing.png"]}}]
}`

func dialogueServer(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/dialogue":
			fmt.Fprintf(w, `{
  "dialogue": [{"name": "Sheldon", "text": "Hi {smile}"}],
  "emojies": [{"name": "smile", "url": "%[1]s/img/smile"}, {"name": "sad", "url": "%[1]s/img/broken"}],
  "avatars": [{"name": "Sheldon", "url": "%[1]s/img/sheldon", "position": "left"}, {"name": "Penny", "url": "%[1]s/img/missing"}]
}`, srv.URL)
		case "/img/smile", "/img/sheldon":
			_, _ = w.Write([]byte("png:" + r.URL.Path))
		case "/img/broken":
			_, _ = w.Write([]byte("bad image"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testManifest(dialogueURL string) *config.Manifest {
	return &config.Manifest{
		BasePath: "assets",
		Assets: []config.AssetEntry{
			{Key: "CARD", Kind: config.KindTexture, Path: "images/card.png"},
			{Key: "CORRUPT", Kind: config.KindTexture, Path: "images/corrupt.png"},
			{Key: "MISSING", Kind: config.KindTexture, Path: "images/missing.png"},
			{Key: "CLICK", Kind: config.KindAudio, Path: "audio/click.wav"},
			{Key: "MUSIC", Kind: config.KindAudio, Path: "audio/music.wav", Loop: true},
			{Key: "VIDEO", Kind: config.KindVideo, Path: "video/background.gif"},
			{Key: "FIRE", Kind: config.KindJSONConfig, Path: "particles/fire.json"},
			{Key: "DIALOGUE", Kind: config.KindRemoteJSON, URL: dialogueURL},
		},
	}
}

func testSource(t *testing.T) fstest.MapFS {
	t.Helper()
	gifData, err := os.ReadFile("../../assets/video/background.gif")
	require.NoError(t, err)
	return fstest.MapFS{
		"assets/images/card.png":      {Data: []byte("png:card")},
		"assets/images/corrupt.png":   {Data: []byte("bad bytes")},
		"assets/audio/click.wav":      {Data: []byte("click")},
		"assets/audio/music.wav":      {Data: []byte("music")},
		"assets/video/background.gif": {Data: gifData},
		"assets/particles/fire.json":  {Data: []byte(particleJSON)},
		"assets/particles/fire.png":   {Data: []byte("png:fire")},
	}
}

func newTestLoader(t *testing.T, source fstest.MapFS) (*Loader, *AssetCache, *FrameClock) {
	cache := NewAssetCache()
	clock := NewFrameClock()
	l := NewLoader(source, http.DefaultClient, cache, clock)
	l.Decoders = fakeDecoders()
	return l, cache, clock
}

// progressRecorder 收集进度回调，检测并发调用
type progressRecorder struct {
	mu       sync.Mutex
	inFlight bool
	overlap  bool
	values   []float64
	onReport func()
}

func (r *progressRecorder) record(p float64) {
	r.mu.Lock()
	if r.inFlight {
		r.overlap = true
	}
	r.inFlight = true
	r.mu.Unlock()

	if r.onReport != nil {
		r.onReport()
	}

	r.mu.Lock()
	r.values = append(r.values, p)
	r.inFlight = false
	r.mu.Unlock()
}

func TestLoadAllReachesFullProgressDespiteFailures(t *testing.T) {
	srv := dialogueServer(t)
	l, cache, _ := newTestLoader(t, testSource(t))
	m := testManifest(srv.URL + "/dialogue")

	rec := &progressRecorder{}
	op := l.LoadAll(context.Background(), m, rec.record)
	require.NoError(t, op.Wait())

	require.Len(t, rec.values, len(m.Assets))
	assert.Equal(t, 1.0, rec.values[len(rec.values)-1])
	for i := 1; i < len(rec.values); i++ {
		assert.Greater(t, rec.values[i], rec.values[i-1], "progress must increase")
	}
	assert.False(t, rec.overlap, "progress callbacks must not run concurrently")
	assert.Equal(t, 1.0, op.Progress())

	completed, failed, total := op.Counts()
	assert.Equal(t, len(m.Assets), completed)
	assert.Equal(t, 2, failed)
	assert.Equal(t, len(m.Assets), total)

	// 失败的资源以 nil 占位
	assert.True(t, cache.Failed("CORRUPT"))
	assert.True(t, cache.Failed("MISSING"))

	tex, ok := Lookup[*fakeTexture](cache, "CARD")
	require.True(t, ok)
	assert.Equal(t, "png:card", tex.source)

	music, ok := Lookup[*AudioClip](cache, "MUSIC")
	require.True(t, ok)
	assert.True(t, music.Loop)
}

func TestLoadAllResolvesSubFetchesBeforeParent(t *testing.T) {
	srv := dialogueServer(t)
	l, cache, _ := newTestLoader(t, testSource(t))
	m := testManifest(srv.URL + "/dialogue")

	var violations []string
	rec := &progressRecorder{onReport: func() {
		if cache.Has("DIALOGUE") {
			for _, k := range []string{
				config.EmojiKey("smile"), config.EmojiKey("sad"),
				config.AvatarKey("Sheldon"), config.AvatarKey("Penny"),
			} {
				if !cache.Has(k) {
					violations = append(violations, k)
				}
			}
		}
		if cache.Has("FIRE") && !cache.Has(config.ParticleTextureKey("assets/particles/fire.png")) {
			violations = append(violations, "fire.png")
		}
	}}

	require.NoError(t, l.LoadAll(context.Background(), m, rec.record).Wait())
	assert.Empty(t, violations)

	doc, ok := Lookup[*dialogue.Document](cache, "DIALOGUE")
	require.True(t, ok)
	assert.Len(t, doc.Dialogue, 1)

	smile, ok := Lookup[*fakeTexture](cache, config.EmojiKey("smile"))
	require.True(t, ok)
	assert.Equal(t, "png:/img/smile", smile.source)
	assert.True(t, cache.Failed(config.EmojiKey("sad")))
	assert.True(t, cache.Failed(config.AvatarKey("Penny")))
	_, ok = Lookup[*fakeTexture](cache, config.AvatarKey("Sheldon"))
	assert.True(t, ok)

	cfg, ok := Lookup[*particle.EmitterConfig](cache, "FIRE")
	require.True(t, ok)
	assert.Len(t, cfg.Behaviors.Textures, 2)
	_, ok = Lookup[*fakeTexture](cache, config.ParticleTextureKey("assets/particles/fire.png"))
	assert.True(t, ok)
	assert.True(t, cache.Failed(config.ParticleTextureKey("assets/particles/missing.png")))
}

func TestLoadAllVideoTexture(t *testing.T) {
	l, cache, clock := newTestLoader(t, testSource(t))
	m := &config.Manifest{BasePath: "assets", Assets: []config.AssetEntry{
		{Key: "VIDEO", Kind: config.KindVideo, Path: "video/background.gif"},
	}}

	require.NoError(t, l.LoadAll(context.Background(), m, nil).Wait())

	video, ok := Lookup[*VideoTexture](cache, "VIDEO")
	require.True(t, ok)
	target, ok := Lookup[*fakeFrameWriter](cache, config.VideoTextureKey("VIDEO"))
	require.True(t, ok)
	assert.Same(t, video.Texture(), FrameWriter(target))
	assert.Equal(t, 1, target.count(), "first frame is written before caching")

	// 视频随帧时钟持续播放
	for i := 0; i < 60; i++ {
		clock.Tick(1.0 / 60)
	}
	assert.Greater(t, target.count(), 1)
	assert.Equal(t, 1, clock.Len())
}

func TestLoadAllVideoFailureCachesBothKeys(t *testing.T) {
	source := fstest.MapFS{"assets/video/broken.gif": {Data: []byte("GIF89a broken")}}
	l, cache, _ := newTestLoader(t, source)
	m := &config.Manifest{BasePath: "assets", Assets: []config.AssetEntry{
		{Key: "VIDEO", Kind: config.KindVideo, Path: "video/broken.gif"},
	}}

	var last float64
	require.NoError(t, l.LoadAll(context.Background(), m, func(p float64) { last = p }).Wait())
	assert.Equal(t, 1.0, last)
	assert.True(t, cache.Failed("VIDEO"))
	assert.True(t, cache.Failed(config.VideoTextureKey("VIDEO")))
}

func TestLoadAllEmptyManifest(t *testing.T) {
	l, _, _ := newTestLoader(t, fstest.MapFS{})

	var calls []float64
	require.NoError(t, l.LoadAll(context.Background(), &config.Manifest{}, func(p float64) {
		calls = append(calls, p)
	}).Wait())
	assert.Equal(t, []float64{1.0}, calls)
}

func TestLoadAllRejectsInvalidManifest(t *testing.T) {
	l, cache, _ := newTestLoader(t, fstest.MapFS{})
	m := &config.Manifest{Assets: []config.AssetEntry{
		{Key: "A", Kind: config.KindTexture, Path: "a.png"},
		{Key: "A", Kind: config.KindTexture, Path: "b.png"},
	}}

	called := false
	op := l.LoadAll(context.Background(), m, func(float64) { called = true })
	err := op.Wait()
	assert.True(t, errors.Is(err, config.ErrDuplicateKey))
	assert.False(t, called)
	assert.Equal(t, 0, cache.Len())
}

func TestLoadAllDoesNotBlockAndCanBeCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	l, _, _ := newTestLoader(t, testSource(t))
	m := &config.Manifest{BasePath: "assets", Assets: []config.AssetEntry{
		{Key: "CARD", Kind: config.KindTexture, Path: "images/card.png"},
		{Key: "DIALOGUE", Kind: config.KindRemoteJSON, URL: srv.URL},
	}}

	op := l.LoadAll(context.Background(), m, nil)
	select {
	case <-op.Done():
		t.Fatal("operation finished while the remote document is still pending")
	case <-time.After(50 * time.Millisecond):
	}

	op.Cancel()
	select {
	case <-op.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("operation did not stop after Cancel")
	}
	assert.True(t, errors.Is(op.Err(), context.Canceled), "got %v", op.Err())
}

func TestLoadAllSharedParticleTexturesLoadOnce(t *testing.T) {
	const shared = `{
  "lifetime": {"min": 0.5, "max": 1},
  "frequency": 0.1,
  "behaviors": [{"type": "textureRandom", "config": {"textures": ["fire.png", "particle.png", "gone.png"]}}]
}`
	source := fstest.MapFS{
		"assets/particles/fire.png":     {Data: []byte("png:fire")},
		"assets/particles/particle.png": {Data: []byte("png:particle")},
	}
	m := &config.Manifest{BasePath: "assets"}
	for i := 0; i < 6; i++ {
		name := fmt.Sprintf("particles/fire_%d.json", i)
		source["assets/"+name] = &fstest.MapFile{Data: []byte(shared)}
		m.Assets = append(m.Assets, config.AssetEntry{Key: fmt.Sprintf("FIRE_%d", i), Kind: config.KindJSONConfig, Path: name})
	}

	l, cache, _ := newTestLoader(t, source)
	var mu sync.Mutex
	decoded := make(map[string]int)
	texture := l.Decoders.Texture
	l.Decoders.Texture = func(data []byte) (any, error) {
		mu.Lock()
		decoded[string(data)]++
		mu.Unlock()
		time.Sleep(5 * time.Millisecond)
		return texture(data)
	}

	require.NoError(t, l.LoadAll(context.Background(), m, nil).Wait())

	assert.Equal(t, map[string]int{"png:fire": 1, "png:particle": 1}, decoded)
	for _, name := range []string{"fire.png", "particle.png"} {
		_, ok := Lookup[*fakeTexture](cache, config.ParticleTextureKey("assets/particles/"+name))
		assert.True(t, ok, name)
	}
	assert.True(t, cache.Failed(config.ParticleTextureKey("assets/particles/gone.png")))
}
