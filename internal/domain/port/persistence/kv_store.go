package persistence

import (
	"context"
	"errors"
	"time"
)

// ErrTxConflict is returned by KVTx.Exec when a watched key changed after the
// watch began and the store discarded the batch
var ErrTxConflict = errors.New("optimistic transaction conflict")

// KVStore is a shared store of hash records and sets with key expiry and
// optimistic multi-key transactions. It carries no business logic.
//
// Missing keys read as an empty hash or an empty set, never as an error.
type KVStore interface {
	// HGetAll returns every field of the hash at key
	HGetAll(ctx context.Context, key string) (map[string]string, error)

	// SMembers returns the members of the set at key
	SMembers(ctx context.Context, key string) ([]string, error)

	// Watch starts an optimistic transaction over keys and runs fn with it.
	// Reads made through the KVTx observe current state; a batch submitted via
	// KVTx.Exec applies only if none of the watched keys changed meanwhile.
	//
	// Possible errors:
	// - ErrTxConflict: If a watched key changed before Exec
	// - Any error returned by fn, unchanged
	Watch(ctx context.Context, fn func(tx KVTx) error, keys ...string) error

	// Ping checks that the store is reachable
	Ping(ctx context.Context) error

	// Close releases the store's resources
	Close() error
}

// KVTx is the read side of an optimistic transaction
type KVTx interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	SMembers(ctx context.Context, key string) ([]string, error)

	// Exec applies the writes queued by fn as one atomic batch. It may be
	// called at most once per transaction.
	Exec(ctx context.Context, fn func(batch KVBatch) error) error
}

// KVBatch queues writes to be applied atomically
type KVBatch interface {
	HSet(key string, fields map[string]string)
	Expire(key string, ttl time.Duration)
	SAdd(key string, members ...string)
	SRem(key string, members ...string)
	Del(keys ...string)
}
