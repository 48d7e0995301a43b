package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/persistence"
	goredis "github.com/redis/go-redis/v9"
)

// Config holds the connection settings of a Redis server
type Config struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Store implements persistence.KVStore on Redis WATCH/MULTI/EXEC
type Store struct {
	client goredis.UniversalClient
	logger coreport.Logger
}

// NewStore connects to Redis and verifies the connection
func NewStore(ctx context.Context, cfg Config, logger coreport.Logger) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	s := NewStoreFromClient(client, logger)
	if err := s.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("Connected to Redis", map[string]any{
		"addr": cfg.Addr,
		"db":   cfg.DB,
	})
	return s, nil
}

// NewStoreFromClient wraps an existing client
func NewStoreFromClient(client goredis.UniversalClient, logger coreport.Logger) *Store {
	return &Store{client: client, logger: logger}
}

// HGetAll returns every field of the hash at key
func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	h, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, mapError(err, "hgetall")
	}
	return h, nil
}

// SMembers returns the members of the set at key
func (s *Store) SMembers(ctx context.Context, key string) ([]string, error) {
	m, err := s.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, mapError(err, "smembers")
	}
	return m, nil
}

// Watch runs fn inside a WATCH on keys
func (s *Store) Watch(ctx context.Context, fn func(tx persistence.KVTx) error, keys ...string) error {
	var fnErr error
	err := s.client.Watch(ctx, func(rtx *goredis.Tx) error {
		fnErr = fn(&tx{rtx: rtx})
		return fnErr
	}, keys...)

	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return mapError(err, "watch")
	}
	return nil
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return mapError(err, "ping")
	}
	return nil
}

// Close closes the client
func (s *Store) Close() error {
	return s.client.Close()
}

type tx struct {
	rtx  *goredis.Tx
	done bool
}

func (t *tx) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	h, err := t.rtx.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, mapError(err, "hgetall")
	}
	return h, nil
}

func (t *tx) SMembers(ctx context.Context, key string) ([]string, error) {
	m, err := t.rtx.SMembers(ctx, key).Result()
	if err != nil {
		return nil, mapError(err, "smembers")
	}
	return m, nil
}

func (t *tx) Exec(ctx context.Context, fn func(batch persistence.KVBatch) error) error {
	if t.done {
		return fmt.Errorf("%w: exec already called for this transaction", errs.ErrPersistence)
	}
	t.done = true

	var batchErr error
	_, err := t.rtx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		batchErr = fn(&batch{ctx: ctx, pipe: pipe})
		return batchErr
	})

	if batchErr != nil {
		return batchErr
	}
	if err != nil {
		return mapError(err, "exec")
	}
	return nil
}

type batch struct {
	ctx  context.Context
	pipe goredis.Pipeliner
}

func (b *batch) HSet(key string, fields map[string]string) {
	values := make([]any, 0, len(fields)*2)
	for f, v := range fields {
		values = append(values, f, v)
	}
	b.pipe.HSet(b.ctx, key, values...)
}

func (b *batch) Expire(key string, ttl time.Duration) {
	b.pipe.Expire(b.ctx, key, ttl)
}

func (b *batch) SAdd(key string, members ...string) {
	b.pipe.SAdd(b.ctx, key, toAny(members)...)
}

func (b *batch) SRem(key string, members ...string) {
	b.pipe.SRem(b.ctx, key, toAny(members)...)
}

func (b *batch) Del(keys ...string) {
	b.pipe.Del(b.ctx, keys...)
}

func toAny(members []string) []any {
	out := make([]any, len(members))
	for i, m := range members {
		out[i] = m
	}
	return out
}

// mapError translates driver errors into persistence errors
func mapError(err error, operation string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, goredis.TxFailedErr):
		return persistence.ErrTxConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: redis %s: %w", errs.ErrPersistence, operation, err)
	default:
		return fmt.Errorf("%w: redis %s: %s", errs.ErrPersistence, operation, err.Error())
	}
}
