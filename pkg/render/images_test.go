package render

import (
	"image"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/sketchboard/pkg/errors"
)

func TestDecodeDataURL(t *testing.T) {
	payload, err := EncodePNGDataURL(image.NewRGBA(image.Rect(0, 0, 3, 2)))
	if err != nil {
		t.Fatalf("EncodePNGDataURL: %v", err)
	}
	img, format, err := DecodeDataURL(payload)
	if err != nil {
		t.Fatalf("DecodeDataURL: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 3x2", b)
	}
}

func TestDecodeDataURLErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not a data url", "https://example.com/a.png"},
		{"no comma", "data:image/png;base64"},
		{"not base64", "data:image/png,rawbytes"},
		{"bad base64", "data:image/png;base64,@@@"},
		{"not an image", "data:image/png;base64,aGVsbG8="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeDataURL(tt.payload)
			if !errors.Is(err, errors.ErrCodeDecode) {
				t.Errorf("error = %v, want DECODE", err)
			}
		})
	}
}

func TestImageCacheFailureNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := NewImageCache(WithOnReady(func() { calls.Add(1) }))
	bad := "data:image/png;base64,aGVsbG8="

	if _, ok := c.Get(bad); ok {
		t.Fatal("Get returned an image for a bad payload")
	}
	c.Wait()
	if !c.Failed(bad) {
		t.Error("failed payload not remembered")
	}

	for i := 0; i < 3; i++ {
		c.Get(bad)
		c.Prefetch(bad)
	}
	c.Wait()
	if calls.Load() != 1 {
		t.Errorf("decode attempts = %d, want 1", calls.Load())
	}
}

func TestImageCachePrefetch(t *testing.T) {
	payload, _ := EncodePNGDataURL(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	c := NewImageCache()
	c.Prefetch(payload)
	c.Prefetch("")
	c.Wait()

	if _, ok := c.Get(payload); !ok {
		t.Error("prefetched image not ready after Wait")
	}
}

func TestImageCacheOneEntryPerPayload(t *testing.T) {
	payload, err := EncodePNGDataURL(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if err != nil {
		t.Fatal(err)
	}
	other, _ := EncodePNGDataURL(image.NewRGBA(image.Rect(0, 0, 3, 3)))

	var decodes atomic.Int32
	c := NewImageCache(WithOnReady(func() { decodes.Add(1) }))
	tests := []struct {
		name    string
		payload string
	}{
		{"first sight", payload},
		{"same string", payload},
		{"equal copy", strings.Clone(payload)},
		{"different image", other},
	}
	for _, tt := range tests {
		c.Prefetch(tt.payload)
		c.Wait()
		if _, ok := c.Get(tt.payload); !ok {
			t.Errorf("%s: image not ready", tt.name)
		}
	}
	if got := decodes.Load(); got != 2 {
		t.Errorf("decodes = %d, want 2", got)
	}
	if got := len(c.entries); got != 2 {
		t.Errorf("entries = %d, want 2", got)
	}
}
