package game

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"path"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/decker502/showcase/internal/dialogue"
	"github.com/decker502/showcase/internal/particle"
	"github.com/decker502/showcase/pkg/config"
)

// itemsInFlight bounds the concurrent loads inside one category.
const itemsInFlight = 8

// ProgressFunc receives completed/total after every top-level asset settles.
type ProgressFunc func(progress float64)

// Loader preloads a manifest into an AssetCache.
//
// Local files come from Source, remote documents and the images they
// reference come over Client. Video textures are attached to Clock so they
// keep playing after the loading phase.
type Loader struct {
	Source   fs.FS
	Client   *http.Client
	Cache    *AssetCache
	Clock    *FrameClock
	Decoders Decoders

	// shared deduplicates image sub-loads referenced by several parents.
	shared singleflight.Group
}

// NewLoader creates a loader with the default decoders.
func NewLoader(source fs.FS, client *http.Client, cache *AssetCache, clock *FrameClock) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{
		Source:   source,
		Client:   client,
		Cache:    cache,
		Clock:    clock,
		Decoders: DefaultDecoders(),
	}
}

// LoadOperation is a running LoadAll.
type LoadOperation struct {
	done   chan struct{}
	cancel context.CancelFunc

	// reportMu serializes progress callbacks.
	reportMu sync.Mutex

	mu        sync.Mutex
	err       error
	total     int
	completed int
	failed    int
	progress  float64
}

// Done is closed once every asset has settled or the operation was rejected.
func (op *LoadOperation) Done() <-chan struct{} {
	return op.done
}

// Wait blocks until Done and returns Err.
func (op *LoadOperation) Wait() error {
	<-op.done
	return op.Err()
}

// Err returns the rejection error; nil while running or after success.
func (op *LoadOperation) Err() error {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.err
}

// Progress returns the last reported fraction.
func (op *LoadOperation) Progress() float64 {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.progress
}

// Counts returns completed, failed and total top-level assets.
func (op *LoadOperation) Counts() (completed, failed, total int) {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.completed, op.failed, op.total
}

// Cancel stops outstanding loads; the operation then rejects with
// context.Canceled.
func (op *LoadOperation) Cancel() {
	op.cancel()
}

func (op *LoadOperation) report(failed bool, onProgress ProgressFunc) {
	op.reportMu.Lock()
	defer op.reportMu.Unlock()

	op.mu.Lock()
	op.completed++
	if failed {
		op.failed++
	}
	p := float64(op.completed) / float64(op.total)
	op.progress = p
	op.mu.Unlock()

	if onProgress != nil {
		onProgress(p)
	}
}

func (op *LoadOperation) finish(err error) {
	op.mu.Lock()
	op.err = err
	op.mu.Unlock()
	close(op.done)
}

// LoadAll starts loading every asset of m and returns immediately.
//
// Categories load concurrently and so do the items inside a category. A
// failed item is logged, cached as a nil placeholder and still counted, so
// the last progress value is 1.0. The operation only rejects for an invalid
// manifest or a cancelled context. An empty manifest reports 1.0 once.
func (l *Loader) LoadAll(ctx context.Context, m *config.Manifest, onProgress ProgressFunc) *LoadOperation {
	ctx, cancel := context.WithCancel(ctx)
	op := &LoadOperation{done: make(chan struct{}), cancel: cancel}

	if err := m.Validate(); err != nil {
		cancel()
		op.finish(fmt.Errorf("failed to load manifest: %w", err))
		return op
	}
	op.total = len(m.Assets)
	log.Printf("[Loader] Loading %d assets", op.total)

	go func() {
		defer cancel()

		if op.total == 0 {
			op.mu.Lock()
			op.progress = 1
			op.mu.Unlock()
			if onProgress != nil {
				onProgress(1)
			}
			op.finish(nil)
			return
		}

		g, gctx := errgroup.WithContext(ctx)
		groups := m.ByKind()
		for _, kind := range config.AllKinds {
			entries := groups[kind]
			if len(entries) == 0 {
				continue
			}
			g.Go(func() error {
				return l.loadCategory(gctx, m, entries, op, onProgress)
			})
		}

		err := g.Wait()
		if err != nil {
			log.Printf("[Loader] Aborted: %v", err)
		} else {
			_, failed, total := op.Counts()
			log.Printf("[Loader] Finished: %d assets, %d failed", total, failed)
		}
		op.finish(err)
	}()

	return op
}

func (l *Loader) loadCategory(ctx context.Context, m *config.Manifest, entries []config.AssetEntry, op *LoadOperation, onProgress ProgressFunc) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(itemsInFlight)
	for _, entry := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			err := l.loadAsset(gctx, m, entry)
			if ctxErr := gctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				l.fail(entry.Key, err)
			}
			op.report(err != nil, onProgress)
			return nil
		})
	}
	return g.Wait()
}

func (l *Loader) loadAsset(ctx context.Context, m *config.Manifest, entry config.AssetEntry) error {
	switch entry.Kind {
	case config.KindTexture:
		return l.loadTexture(entry.Key, m.ResolvePath(entry))
	case config.KindAudio:
		return l.loadAudio(entry, m.ResolvePath(entry))
	case config.KindVideo:
		return l.loadVideo(entry.Key, m.ResolvePath(entry))
	case config.KindJSONConfig:
		return l.loadParticleConfig(ctx, entry.Key, m.ResolvePath(entry))
	case config.KindRemoteJSON:
		return l.loadDialogue(ctx, entry.Key, entry.URL)
	}
	return fmt.Errorf("%w: %s", config.ErrUnknownKind, entry.Kind)
}

func (l *Loader) readFile(name string) ([]byte, error) {
	data, err := fs.ReadFile(l.Source, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func (l *Loader) store(key string, value any) {
	if err := l.Cache.Put(key, value); err != nil {
		if errors.Is(err, ErrAlreadyCached) {
			log.Printf("[Loader] %s already cached, keeping first value", key)
			return
		}
		log.Printf("[Loader] Failed to cache %s: %v", key, err)
	}
}

func (l *Loader) fail(key string, err error) {
	log.Printf("[Loader] Failed to load %s: %v", key, err)
	l.store(key, nil)
}

// loadOnce runs load for key at most once. Concurrent callers wait for the
// running load; later callers find the key cached and return at once.
func (l *Loader) loadOnce(key string, load func() error) {
	_, _, _ = l.shared.Do(key, func() (any, error) {
		if l.Cache.Has(key) {
			return nil, nil
		}
		if err := load(); err != nil {
			l.fail(key, err)
		}
		return nil, nil
	})
}

func (l *Loader) loadTexture(key, name string) error {
	data, err := l.readFile(name)
	if err != nil {
		return err
	}
	tex, err := l.Decoders.Texture(data)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	l.store(key, tex)
	return nil
}

func (l *Loader) loadAudio(entry config.AssetEntry, name string) error {
	data, err := l.readFile(name)
	if err != nil {
		return err
	}
	clip, err := l.Decoders.Audio(data, name, entry.Loop)
	if err != nil {
		return err
	}
	l.store(entry.Key, clip)
	return nil
}

// loadVideo decodes the clip, builds its texture from the first frame and
// attaches the player to the frame clock. The encoded bytes are not kept.
func (l *Loader) loadVideo(key, name string) error {
	textureKey := config.VideoTextureKey(key)

	data, err := l.readFile(name)
	if err != nil {
		l.fail(textureKey, err)
		return err
	}
	frames, err := l.Decoders.Video(data)
	if err != nil {
		l.fail(textureKey, err)
		return fmt.Errorf("%s: %w", name, err)
	}

	video, err := NewVideoTexture(frames, l.Decoders.VideoTarget(frames.Width, frames.Height))
	if err != nil {
		l.fail(textureKey, err)
		return fmt.Errorf("%s: %w", name, err)
	}
	if l.Clock != nil {
		l.Clock.Add(video.Advance)
	}

	l.store(textureKey, video.Texture())
	l.store(key, video)
	return nil
}

// loadParticleConfig parses the config and loads the textures it names,
// resolved against the config's directory, before caching the config.
func (l *Loader) loadParticleConfig(ctx context.Context, key, name string) error {
	data, err := l.readFile(name)
	if err != nil {
		return err
	}
	cfg, err := particle.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	g, _ := errgroup.WithContext(ctx)
	for _, texPath := range cfg.TexturePaths(path.Dir(name)) {
		texKey := config.ParticleTextureKey(texPath)
		g.Go(func() error {
			l.loadOnce(texKey, func() error { return l.loadTexture(texKey, texPath) })
			return nil
		})
	}
	_ = g.Wait()

	l.store(key, cfg)
	return nil
}

// loadDialogue fetches the dialogue document and every emoji and avatar
// image it references before caching the document.
func (l *Loader) loadDialogue(ctx context.Context, key, url string) error {
	doc, err := dialogue.Fetch(ctx, l.Client, url)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(itemsInFlight)
	fetch := func(imgKey, imgURL string) {
		g.Go(func() error {
			l.loadOnce(imgKey, func() error { return l.loadRemoteTexture(gctx, imgKey, imgURL) })
			return nil
		})
	}
	for _, e := range doc.Emojis {
		fetch(config.EmojiKey(e.Name), e.URL)
	}
	for _, a := range doc.Avatars {
		fetch(config.AvatarKey(a.Name), a.URL)
	}
	_ = g.Wait()

	l.store(key, doc)
	return nil
}

func (l *Loader) loadRemoteTexture(ctx context.Context, key, url string) error {
	data, err := dialogue.Get(ctx, l.Client, url)
	if err != nil {
		return err
	}
	tex, err := l.Decoders.Texture(data)
	if err != nil {
		return fmt.Errorf("%s: %w", url, err)
	}
	l.store(key, tex)
	return nil
}
