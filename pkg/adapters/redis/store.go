package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/bpmnflow/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "bpmnflow:definition:"

// Store implements ports.DefinitionStore using Redis.
// Raw descriptions are kept as strings; a sorted set indexes the ids.
type Store struct {
	client  *backend.Client
	prefix  string
	locker  *Locker
	lockTTL time.Duration
}

type Option func(*Store)

// WithPrefix sets the key prefix for definitions.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithLocking serializes writers of the same definition across processes.
// ttl bounds how long a crashed writer can hold the lock.
func WithLocking(ttl time.Duration) Option {
	return func(s *Store) {
		s.lockTTL = ttl
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
	}

	for _, opt := range opts {
		opt(store)
	}

	if store.lockTTL > 0 {
		store.locker = NewLocker(client, store.prefix)
	}

	return store
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// SaveDefinition stores raw under id and indexes it.
func (s *Store) SaveDefinition(ctx context.Context, id string, raw []byte) error {
	if id == "" {
		return fmt.Errorf("definition id cannot be empty")
	}

	unlock, err := s.lock(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(id), raw, 0)
	// Equal scores keep ZRANGE in lexicographic member order.
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: 0, Member: id})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// GetDefinition retrieves the raw description stored under id.
func (s *Store) GetDefinition(ctx context.Context, id string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, fmt.Errorf("%s: %w", id, domain.ErrDefinitionNotFound)
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return val, nil
}

// DeleteDefinition removes the definition and its index entry.
func (s *Store) DeleteDefinition(ctx context.Context, id string) error {
	unlock, err := s.lock(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// ListDefinitions returns the indexed ids in lexicographic order.
func (s *Store) ListDefinitions(ctx context.Context) ([]string, error) {
	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list definitions: %w", err)
	}
	return ids, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) lock(ctx context.Context, id string) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	release, err := s.locker.Lock(ctx, id, s.lockTTL)
	if err != nil {
		return nil, err
	}
	return func() {
		// The lock expires on its own if release fails.
		_ = release(context.WithoutCancel(ctx))
	}, nil
}
