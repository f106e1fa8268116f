package store

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	key := "board:test-" + t.Name()

	if _, found, err := s.Get(ctx, key); err != nil || found {
		t.Fatalf("Get before Set = found %v, err %v; want miss", found, err)
	}

	if err := s.Set(ctx, key, []byte(`{"v":1}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, key, []byte(`{"v":2}`)); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	data, found, err := s.Get(ctx, key)
	if err != nil || !found {
		t.Fatalf("Get after Set = found %v, err %v", found, err)
	}
	if !bytes.Equal(data, []byte(`{"v":2}`)) {
		t.Errorf("Get = %s, want the overwritten record", data)
	}

	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := s.Get(ctx, key); found {
		t.Error("record still present after Delete")
	}
	if err := s.Delete(ctx, key); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestFileStoreLayout(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	key := "board:whiteboard-data"
	if err := s.Set(context.Background(), key, []byte("x")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	loc := s.Location(key)
	hash := Hash([]byte(key))
	want := filepath.Join(dir, hash[:2], hash[2:]+".json")
	if loc != want {
		t.Errorf("Location = %s, want %s", loc, want)
	}
	if _, err := os.Stat(loc); err != nil {
		t.Errorf("record file missing: %v", err)
	}

	entries, _ := os.ReadDir(filepath.Dir(loc))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".board-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestFileStoreCorruptEnvelopeIsMiss(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	key := "board:broken"
	path := s.Location(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, found, err := s.Get(context.Background(), key)
	if err != nil || found {
		t.Errorf("Get corrupt = found %v, err %v; want miss", found, err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	in := []byte("abc")
	_ = s.Set(ctx, "k", in)
	in[0] = 'z'

	out, _, _ := s.Get(ctx, "k")
	if string(out) != "abc" {
		t.Errorf("stored data aliased caller slice: %s", out)
	}
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	defer s.Close()

	if err := s.Set(ctx, "key", []byte("value")); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, found, _ := s.Get(ctx, "key"); found {
		t.Error("NullStore should not store data")
	}
	if err := s.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("SKETCHBOARD_TEST_REDIS")
	if addr == "" {
		t.Skip("SKETCHBOARD_TEST_REDIS not set")
	}
	s, err := NewRedisStore(context.Background(), RedisOptions{Addr: addr})
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("SKETCHBOARD_TEST_MONGO")
	if uri == "" {
		t.Skip("SKETCHBOARD_TEST_MONGO not set")
	}
	s, err := NewMongoStore(context.Background(), MongoOptions{URI: uri, Database: "sketchboard_test"})
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestKeyers(t *testing.T) {
	k := NewDefaultKeyer()
	if got := k.BoardKey(""); got != "board:whiteboard-data" {
		t.Errorf("BoardKey(\"\") = %q", got)
	}
	if got := k.BoardKey(" team "); got != "board:team" {
		t.Errorf("BoardKey(team) = %q", got)
	}

	scoped := NewScopedKeyer(nil, "profile:alice:")
	if got := scoped.BoardKey("team"); got != "profile:alice:board:team" {
		t.Errorf("scoped BoardKey = %q", got)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"default is file", Options{Dir: t.TempDir()}, false},
		{"file without dir", Options{Backend: BackendFile}, true},
		{"memory", Options{Backend: BackendMemory}, false},
		{"none", Options{Backend: BackendNull}, false},
		{"unknown", Options{Backend: "etcd"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if s != nil {
				s.Close()
			}
		})
	}

	if _, err := Open(ctx, Options{Backend: "etcd"}); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("unknown backend error = %v, want ErrUnknownBackend", err)
	}
}

func TestRetry(t *testing.T) {
	ctx := context.Background()
	transient := errors.New("connection refused")

	calls := 0
	err := Retry(ctx, 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return &RetryableError{Err: transient}
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Errorf("err=%v calls=%d, want success on third call", err, calls)
	}

	calls = 0
	err = Retry(ctx, 2, time.Millisecond, func() error {
		calls++
		return &RetryableError{Err: transient}
	})
	if !errors.Is(err, transient) || calls != 2 {
		t.Errorf("err=%v calls=%d", err, calls)
	}
	var r *RetryableError
	if errors.As(err, &r) {
		t.Error("exhausted retries should return the bare cause")
	}

	calls = 0
	permanent := errors.New("bad password")
	err = Retry(ctx, 5, time.Millisecond, func() error {
		calls++
		return permanent
	})
	if err != permanent || calls != 1 {
		t.Errorf("err=%v calls=%d, want no retry", err, calls)
	}
}

func TestRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, 3, time.Hour, func() error {
		return &RetryableError{Err: errors.New("down")}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
