package store

import (
	"context"
	"fmt"
	"time"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendNull   = "none"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Options selects and configures a backend.
type Options struct {
	Backend       string
	Dir           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	MongoURI      string
	MongoDatabase string

	// ConnectAttempts bounds connection attempts to network backends
	// (default 3, one second apart and doubling).
	ConnectAttempts int
	ConnectDelay    time.Duration
}

// Open creates the store described by opts. An empty backend selects the
// file store.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendFile:
		if opts.Dir == "" {
			return nil, fmt.Errorf("file store: no directory configured")
		}
		s, err := NewFileStore(opts.Dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendNull:
		return NewNullStore(), nil
	case BackendRedis:
		var s *RedisStore
		err := opts.connect(ctx, func() (err error) {
			s, err = NewRedisStore(ctx, RedisOptions{
				Addr:     opts.RedisAddr,
				Password: opts.RedisPassword,
				DB:       opts.RedisDB,
			})
			return err
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMongo:
		var s *MongoStore
		err := opts.connect(ctx, func() (err error) {
			s, err = NewMongoStore(ctx, MongoOptions{URI: opts.MongoURI, Database: opts.MongoDatabase})
			return err
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
}

// connect retries a network dial. Every dial failure counts as transient.
func (opts Options) connect(ctx context.Context, dial func() error) error {
	attempts, delay := opts.ConnectAttempts, opts.ConnectDelay
	if attempts == 0 {
		attempts = 3
	}
	if delay == 0 {
		delay = time.Second
	}
	return Retry(ctx, attempts, delay, func() error {
		if err := dial(); err != nil {
			return &RetryableError{Err: err}
		}
		return nil
	})
}
