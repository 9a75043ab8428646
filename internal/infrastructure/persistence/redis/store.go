// Package redis stores the address book in Redis as one JSON document, with
// a revision id and fingerprint kept beside it.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/internal/domain/shared"
	"github.com/studentbook/studentbook/internal/infrastructure/persistence/snapshot"
	"github.com/studentbook/studentbook/pkg/logger"
	"github.com/studentbook/studentbook/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config holds Redis connection configuration.
type Config struct {
	// Addr is the Redis server address in "host:port" form.
	Addr string

	// Password is the Redis authentication password (empty if no auth).
	Password string

	// DB is the Redis database number (0-15).
	DB int

	// Key is the key holding the address book document.
	Key string

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns a local configuration.
func DefaultConfig() Config {
	return Config{
		Addr:         "localhost:6379",
		Key:          "studentbook:addressbook",
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// RevisionKey returns the key holding the id of the last save.
func (c Config) RevisionKey() string { return c.Key + ":revision" }

// FingerprintKey returns the key holding the fingerprint of the last save.
func (c Config) FingerprintKey() string { return c.Key + ":fingerprint" }

func (c Config) options() *redis.Options {
	return &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     2,
		MaxRetries:   1,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
}

// ErrKeyEmpty is returned when Config.Key is blank.
var ErrKeyEmpty = errors.New("redis: key cannot be empty")

// ══════════════════════════════════════════════════════════════════════════════
// STORE
// ══════════════════════════════════════════════════════════════════════════════

// Store implements addressbook.Repository for Redis.
type Store struct {
	client *redis.Client
	cfg    Config
	log    *logger.Logger
}

// Open connects to Redis, pinging with retries until it answers.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*Store, error) {
	if cfg.Key == "" {
		return nil, ErrKeyEmpty
	}
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("redis"))

	client := redis.NewClient(cfg.options())
	r := retry.StoreRetrier(func(attempt int, err error, delay time.Duration) {
		log.Warn("redis ping failed, retrying",
			logger.Int("attempt", attempt), logger.Err(err), logger.Duration("delay", delay))
	})
	if err := r.Do(ctx, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}); err != nil {
		client.Close()
		return nil, shared.WrapError("redis", "Open", shared.ErrStorage, "could not connect to Redis", err)
	}

	log.Info("opened redis store", logger.String("addr", cfg.Addr), logger.String("key", cfg.Key))
	return NewStore(client, cfg, log), nil
}

// NewStore wraps an existing client.
func NewStore(client *redis.Client, cfg Config, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Discard()
	}
	return &Store{client: client, cfg: cfg, log: log}
}

// Load reads the document. A missing key is an empty address book.
func (s *Store) Load(ctx context.Context) ([]*person.Person, error) {
	data, err := s.client.Get(ctx, s.cfg.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		s.log.Info("address book key not found, starting empty")
		return nil, nil
	}
	if err != nil {
		return nil, shared.WrapError("redis", "Load", shared.ErrStorage, "could not read address book", err)
	}
	persons, err := snapshot.Decode(data)
	if err != nil {
		return nil, shared.WrapError("redis", "Load", shared.ErrStorage, "stored address book is corrupt", err)
	}
	s.log.Info("loaded address book", logger.PersonCount(len(persons)))
	return persons, nil
}

// Save writes the document, revision and fingerprint in one MULTI/EXEC.
func (s *Store) Save(ctx context.Context, persons []*person.Person) error {
	data, err := snapshot.Encode(persons)
	if err != nil {
		return shared.WrapError("redis", "Save", shared.ErrStorage, "could not encode address book", err)
	}
	fingerprint := snapshot.Fingerprint(data)
	revision := uuid.NewString()

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.cfg.Key, data, 0)
		pipe.Set(ctx, s.cfg.RevisionKey(), revision, 0)
		pipe.Set(ctx, s.cfg.FingerprintKey(), fingerprint, 0)
		return nil
	})
	if err != nil {
		return shared.WrapError("redis", "Save", shared.ErrStorage,
			"could not write address book", fmt.Errorf("key %s: %w", s.cfg.Key, err))
	}
	s.log.Debug("saved address book",
		logger.PersonCount(len(persons)), logger.String("revision", revision), logger.Fingerprint(fingerprint))
	return nil
}

// Revision returns the id of the last save, or "" when nothing was saved.
func (s *Store) Revision(ctx context.Context) (string, error) {
	rev, err := s.client.Get(ctx, s.cfg.RevisionKey()).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return rev, err
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}
