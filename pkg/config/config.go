// Package config loads sketchboard settings from a TOML file.
//
// Every setting has a default, so a missing file is not an error. Keys
// absent from the file keep their defaults; unknown keys are rejected so
// typos do not go unnoticed.
//
//	[storage]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[canvas]
//	width = 1280
//	height = 720
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sketchboard/pkg/board"
	skerrors "github.com/matzehuels/sketchboard/pkg/errors"
	"github.com/matzehuels/sketchboard/pkg/history"
	"github.com/matzehuels/sketchboard/pkg/panel"
	"github.com/matzehuels/sketchboard/pkg/store"
)

const appName = "sketchboard"

// Config is the complete file format.
type Config struct {
	Storage Storage `toml:"storage"`
	Canvas  Canvas  `toml:"canvas"`
	Render  Render  `toml:"render"`
	History History `toml:"history"`
	Server  Server  `toml:"server"`
	Export  Export  `toml:"export"`
}

// Storage selects where boards are saved.
type Storage struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	Board         string `toml:"board"`
	Prefix        string `toml:"prefix"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Canvas is the configuration of a fresh board.
type Canvas struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	BgColor    string `toml:"bg_color"`
	Pattern    string `toml:"pattern"`
	ShowBorder bool   `toml:"show_border"`
}

// Render selects the outline style.
type Render struct {
	Style string `toml:"style"`
}

// History bounds undo depth.
type History struct {
	Limit int `toml:"limit"`
}

// Server configures `sketchboard serve`.
type Server struct {
	Bind string `toml:"bind"`
}

// Export configures `sketchboard export`.
type Export struct {
	Dir    string `toml:"dir"`
	Format string `toml:"format"`
}

// Default returns the built-in settings.
func Default() Config {
	c := board.DefaultCanvas()
	return Config{
		Storage: Storage{
			Backend:       store.BackendFile,
			Dir:           defaultDataDir(),
			Board:         store.DefaultBoardName,
			RedisAddr:     "localhost:6379",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: appName,
		},
		Canvas: Canvas{
			Width:      c.Width,
			Height:     c.Height,
			BgColor:    c.BgColor,
			Pattern:    string(c.BgPattern),
			ShowBorder: c.ShowBorder,
		},
		Render:  Render{Style: "handdrawn"},
		History: History{Limit: history.DefaultLimit},
		Server:  Server{Bind: "127.0.0.1:8080"},
		Export:  Export{Dir: ".", Format: "png"},
	}
}

// DefaultPath returns ~/.config/sketchboard/config.toml, honouring
// XDG_CONFIG_HOME.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", appName+".toml")
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+appName)
	}
	return filepath.Join(home, ".local", "share", appName)
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.decode(string(data)); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse reads settings from TOML text over the defaults.
func Parse(text string) (Config, error) {
	cfg := Default()
	err := cfg.decode(text)
	return cfg, err
}

func (c *Config) decode(text string) error {
	md, err := toml.Decode(text, c)
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return skerrors.New(skerrors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	c.Storage.Dir = expandHome(c.Storage.Dir)
	c.Export.Dir = expandHome(c.Export.Dir)
	return c.Validate()
}

// Validate checks values that the file format cannot.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case store.BackendFile, store.BackendMemory, store.BackendNull, store.BackendRedis, store.BackendMongo:
	default:
		return skerrors.New(skerrors.ErrCodeInvalidInput, "unknown storage backend %q", c.Storage.Backend)
	}
	if err := skerrors.ValidateBoardName(c.Storage.Board); err != nil {
		return err
	}
	if err := panel.Validate(c.BoardCanvas()); err != nil {
		return err
	}
	if c.History.Limit < 0 {
		return skerrors.New(skerrors.ErrCodeInvalidInput, "history limit must not be negative")
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// BoardCanvas converts the canvas section into a board configuration.
func (c Config) BoardCanvas() board.CanvasConfig {
	return board.CanvasConfig{
		Width:      c.Canvas.Width,
		Height:     c.Canvas.Height,
		BgColor:    c.Canvas.BgColor,
		BgPattern:  board.Pattern(c.Canvas.Pattern),
		ShowBorder: c.Canvas.ShowBorder,
	}
}

// StoreOptions converts the storage section for store.Open.
func (c Config) StoreOptions() store.Options {
	return store.Options{
		Backend:       c.Storage.Backend,
		Dir:           c.Storage.Dir,
		RedisAddr:     c.Storage.RedisAddr,
		RedisPassword: c.Storage.RedisPassword,
		RedisDB:       c.Storage.RedisDB,
		MongoURI:      c.Storage.MongoURI,
		MongoDatabase: c.Storage.MongoDatabase,
	}
}

// BoardKey returns the storage key of the configured board.
func (c Config) BoardKey() string {
	keyer := store.NewDefaultKeyer()
	if c.Storage.Prefix != "" {
		keyer = store.NewScopedKeyer(keyer, c.Storage.Prefix)
	}
	return keyer.BoardKey(c.Storage.Board)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
