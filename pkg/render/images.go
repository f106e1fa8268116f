package render

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/sketchboard/pkg/errors"
)

type imageState int

const (
	imagePending imageState = iota
	imageReady
	imageFailed
)

type imageEntry struct {
	state imageState
	img   image.Image
}

// ImageCache decodes embedded image payloads in the background and keeps
// the results keyed by the payload string. It is safe for concurrent use.
//
// A failed decode is remembered and never retried; shapes referencing it
// stay invisible.
type ImageCache struct {
	mu      sync.Mutex
	entries map[string]*imageEntry
	wg      sync.WaitGroup
	onReady func()
	logger  *log.Logger
}

// ImageCacheOption configures an ImageCache.
type ImageCacheOption func(*ImageCache)

// WithImageLogger sets the logger used for decode failures.
func WithImageLogger(l *log.Logger) ImageCacheOption {
	return func(c *ImageCache) { c.logger = l }
}

// WithOnReady registers a callback invoked after each decode finishes.
// It runs on the decoding goroutine.
func WithOnReady(fn func()) ImageCacheOption {
	return func(c *ImageCache) { c.onReady = fn }
}

// NewImageCache creates an empty cache.
func NewImageCache(opts ...ImageCacheOption) *ImageCache {
	c := &ImageCache{entries: map[string]*imageEntry{}, logger: log.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetOnReady replaces the ready callback. Hosts that create their redraw
// channel after the cache use this.
func (c *ImageCache) SetOnReady(fn func()) {
	c.mu.Lock()
	c.onReady = fn
	c.mu.Unlock()
}

// Get returns the decoded image for payload if it is ready. Otherwise it
// starts a decode (unless one is running or already failed) and returns
// false.
func (c *ImageCache) Get(payload string) (image.Image, bool) {
	e := c.start(payload)
	c.mu.Lock()
	defer c.mu.Unlock()
	if e.state == imageReady {
		return e.img, true
	}
	return nil, false
}

// Prefetch starts decoding payload without waiting.
func (c *ImageCache) Prefetch(payload string) {
	if payload == "" {
		return
	}
	c.start(payload)
}

// Failed reports whether payload is known to be undecodable.
func (c *ImageCache) Failed(payload string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[payload]
	return ok && e.state == imageFailed
}

// Wait blocks until every decode started so far has finished.
func (c *ImageCache) Wait() {
	c.wg.Wait()
}

func (c *ImageCache) start(payload string) *imageEntry {
	c.mu.Lock()
	if e, ok := c.entries[payload]; ok {
		c.mu.Unlock()
		return e
	}
	e := &imageEntry{state: imagePending}
	c.entries[payload] = e
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		img, _, err := DecodeDataURL(payload)

		c.mu.Lock()
		if err != nil {
			e.state = imageFailed
		} else {
			e.state, e.img = imageReady, img
		}
		ready := c.onReady
		c.mu.Unlock()

		if err != nil {
			c.logger.Warn("image decode failed", "bytes", len(payload), "err", err)
		}
		if ready != nil {
			ready()
		}
	}()
	return e
}

// DecodeDataURL decodes a base64 data URL into an image. The returned
// format is the name registered by the decoder ("png", "jpeg", ...).
func DecodeDataURL(payload string) (image.Image, string, error) {
	data, err := dataURLBytes(payload)
	if err != nil {
		return nil, "", err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeDecode, err, "decode image")
	}
	return img, format, nil
}

func dataURLBytes(payload string) ([]byte, error) {
	if !strings.HasPrefix(payload, "data:") {
		return nil, errors.New(errors.ErrCodeDecode, "not a data URL")
	}
	meta, body, ok := strings.Cut(payload[len("data:"):], ",")
	if !ok {
		return nil, errors.New(errors.ErrCodeDecode, "data URL has no payload")
	}
	if !strings.HasSuffix(meta, ";base64") {
		return nil, errors.New(errors.ErrCodeDecode, "data URL is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode base64")
	}
	return data, nil
}

// EncodePNGDataURL encodes img as a PNG data URL.
func EncodePNGDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
