package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/sketchboard/pkg/board"
	"github.com/matzehuels/sketchboard/pkg/errors"
	"github.com/matzehuels/sketchboard/pkg/store"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	def := Default()
	if cfg != def {
		t.Errorf("got %+v, want defaults %+v", cfg, def)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	text := `
[storage]
backend = "memory"
board = "standup"
prefix = "team:"

[canvas]
width = 1280
height = 720
pattern = "dots"

[server]
bind = ":9000"
`
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.Backend != store.BackendMemory || cfg.Server.Bind != ":9000" {
		t.Errorf("storage/server = %+v / %+v", cfg.Storage, cfg.Server)
	}
	want := board.CanvasConfig{Width: 1280, Height: 720, BgColor: "#ffffff", BgPattern: board.PatternDots, ShowBorder: true}
	if got := cfg.BoardCanvas(); got != want {
		t.Errorf("canvas = %+v, want %+v", got, want)
	}
	if got := cfg.BoardKey(); got != "team:board:standup" {
		t.Errorf("key = %q", got)
	}
	if cfg.Render.Style != "handdrawn" {
		t.Errorf("untouched section lost its default: %q", cfg.Render.Style)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"syntax", "[storage\nbackend = 1", "parse config"},
		{"unknown key", "[storage]\nbakend = \"file\"", "storage.bakend"},
		{"bad backend", "[storage]\nbackend = \"s3\"", "unknown storage backend"},
		{"bad canvas", "[canvas]\nwidth = 20\nheight = 20", "out of range"},
		{"bad color", "[canvas]\nbg_color = \"white\"", "background color"},
		{"bad board", "[storage]\nboard = \"../x\"", "invalid characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestUnknownKeyIsInvalidInput(t *testing.T) {
	_, err := Parse("colour = \"red\"")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Canvas.Width, cfg.Canvas.Height = 794, 1123
	cfg.Storage.RedisDB = 3

	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	got, err := Parse(buf.String())
	if err != nil {
		t.Fatalf("parse encoded config: %v\n%s", err, buf.String())
	}
	if got != cfg {
		t.Errorf("round trip:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := map[string]string{
		"~":         home,
		"~/boards":  filepath.Join(home, "boards"),
		"/tmp/x":    "/tmp/x",
		"rel/~/dir": "rel/~/dir",
	}
	for in, want := range tests {
		if got := expandHome(in); got != want {
			t.Errorf("expandHome(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefaultPathHonoursXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if got, want := DefaultPath(), filepath.Join(dir, "sketchboard", "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
	t.Setenv("XDG_DATA_HOME", dir)
	if got := Default().Storage.Dir; got != filepath.Join(dir, "sketchboard") {
		t.Errorf("data dir = %q", got)
	}
}

func TestStoreOptions(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = store.BackendRedis
	cfg.Storage.RedisDB = 2
	opts := cfg.StoreOptions()
	if opts.Backend != store.BackendRedis || opts.RedisDB != 2 || opts.RedisAddr != "localhost:6379" {
		t.Errorf("options = %+v", opts)
	}
}
