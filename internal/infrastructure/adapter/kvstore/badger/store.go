package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/persistence"
	"github.com/dgraph-io/badger/v4"
)

const (
	hashPrefix = "h:"
	setPrefix  = "s:"
)

// Config holds the embedded database settings
type Config struct {
	Path           string
	InMemory       bool
	GCInterval     time.Duration
	GCDiscardRatio float64
}

// Store implements persistence.KVStore on badger's optimistic transactions.
// Hashes are stored as JSON objects and sets as sorted JSON arrays, each
// under its own key namespace.
type Store struct {
	db     *badger.DB
	logger coreport.Logger

	stopGC chan struct{}
	wg     sync.WaitGroup
}

// NewStore opens the database at cfg.Path, or an in-memory one
func NewStore(cfg Config, logger coreport.Logger) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path).WithLogger(nil)
	if cfg.InMemory {
		opts = opts.WithDir("").WithValueDir("").WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: open badger: %s", errs.ErrPersistence, err.Error())
	}

	s := &Store{
		db:     db,
		logger: logger,
		stopGC: make(chan struct{}),
	}

	if !cfg.InMemory && cfg.GCInterval > 0 {
		ratio := cfg.GCDiscardRatio
		if ratio <= 0 || ratio >= 1 {
			ratio = 0.5
		}
		s.wg.Add(1)
		go s.runGC(cfg.GCInterval, ratio)
	}

	logger.Info("Opened badger store", map[string]any{
		"path":      cfg.Path,
		"in_memory": cfg.InMemory,
	})
	return s, nil
}

// HGetAll returns every field of the hash at key
func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var h map[string]string
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		h, err = readHash(txn, key)
		return err
	})
	if err != nil {
		return nil, mapError(err, "hgetall")
	}
	return h, nil
}

// SMembers returns the members of the set at key
func (s *Store) SMembers(ctx context.Context, key string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var m []string
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		m, err = readSet(txn, key)
		return err
	})
	if err != nil {
		return nil, mapError(err, "smembers")
	}
	return m, nil
}

// Watch opens an update transaction and reads keys so that any write to them
// committed before this transaction commits makes it conflict
func (s *Store) Watch(ctx context.Context, fn func(tx persistence.KVTx) error, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	txn := s.db.NewTransaction(true)
	defer txn.Discard()

	for _, key := range keys {
		for _, k := range [][]byte{hashKey(key), setKey(key)} {
			if _, err := txn.Get(k); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return mapError(err, "watch")
			}
		}
	}

	return fn(&tx{txn: txn})
}

// Ping reports whether the database is open
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return fmt.Errorf("%w: badger is closed", errs.ErrPersistence)
	}
	return nil
}

// Close stops value log GC and closes the database
func (s *Store) Close() error {
	close(s.stopGC)
	s.wg.Wait()
	return s.db.Close()
}

func (s *Store) runGC(interval time.Duration, ratio float64) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopGC:
			return
		case <-ticker.C:
			// RunValueLogGC rewrites at most one file per call
			for s.db.RunValueLogGC(ratio) == nil {
			}
		}
	}
}

type tx struct {
	txn  *badger.Txn
	done bool
}

func (t *tx) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h, err := readHash(t.txn, key)
	if err != nil {
		return nil, mapError(err, "hgetall")
	}
	return h, nil
}

func (t *tx) SMembers(ctx context.Context, key string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := readSet(t.txn, key)
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

	b := &batch{txn: t.txn}
	if err := fn(b); err != nil {
		return err
	}
	if b.err != nil {
		return mapError(b.err, "exec")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := t.txn.Commit(); err != nil {
		return mapError(err, "commit")
	}
	return nil
}

// batch writes straight into the transaction; nothing is visible to others
// until Commit. The first failure sticks and aborts the batch.
type batch struct {
	txn *badger.Txn
	err error
}

func (b *batch) HSet(key string, fields map[string]string) {
	if b.err != nil {
		return
	}
	h, ttl, err := readHashWithTTL(b.txn, key)
	if err != nil {
		b.err = err
		return
	}
	for f, v := range fields {
		h[f] = v
	}
	b.err = writeJSON(b.txn, hashKey(key), h, ttl)
}

func (b *batch) Expire(key string, ttl time.Duration) {
	if b.err != nil {
		return
	}
	for _, k := range [][]byte{hashKey(key), setKey(key)} {
		item, err := b.txn.Get(k)
		if errors.Is(err, badger.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			b.err = err
			return
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			b.err = err
			return
		}
		b.err = b.txn.SetEntry(badger.NewEntry(k, val).WithTTL(ttl))
		return
	}
}

func (b *batch) SAdd(key string, members ...string) {
	b.updateSet(key, func(set map[string]struct{}) {
		for _, m := range members {
			set[m] = struct{}{}
		}
	})
}

func (b *batch) SRem(key string, members ...string) {
	b.updateSet(key, func(set map[string]struct{}) {
		for _, m := range members {
			delete(set, m)
		}
	})
}

func (b *batch) Del(keys ...string) {
	for _, key := range keys {
		if b.err != nil {
			return
		}
		if err := b.txn.Delete(hashKey(key)); err != nil {
			b.err = err
			return
		}
		b.err = b.txn.Delete(setKey(key))
	}
}

func (b *batch) updateSet(key string, mutate func(set map[string]struct{})) {
	if b.err != nil {
		return
	}
	members, err := readSet(b.txn, key)
	if err != nil {
		b.err = err
		return
	}
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}

	mutate(set)

	if len(set) == 0 {
		b.err = b.txn.Delete(setKey(key))
		return
	}
	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Strings(out)
	b.err = writeJSON(b.txn, setKey(key), out, 0)
}

func hashKey(key string) []byte { return []byte(hashPrefix + key) }
func setKey(key string) []byte  { return []byte(setPrefix + key) }

func readHash(txn *badger.Txn, key string) (map[string]string, error) {
	h, _, err := readHashWithTTL(txn, key)
	return h, err
}

// readHashWithTTL also returns the remaining TTL so rewrites keep the expiry
func readHashWithTTL(txn *badger.Txn, key string) (map[string]string, time.Duration, error) {
	h := make(map[string]string)
	item, err := txn.Get(hashKey(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return h, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	var ttl time.Duration
	if exp := item.ExpiresAt(); exp > 0 {
		ttl = time.Until(time.Unix(int64(exp), 0))
		if ttl <= 0 {
			return make(map[string]string), 0, nil
		}
	}

	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &h)
	})
	return h, ttl, err
}

func readSet(txn *badger.Txn, key string) ([]string, error) {
	members := []string{}
	item, err := txn.Get(setKey(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return members, nil
	}
	if err != nil {
		return nil, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &members)
	})
	return members, err
}

func writeJSON(txn *badger.Txn, key []byte, v any, ttl time.Duration) error {
	val, err := json.Marshal(v)
	if err != nil {
		return err
	}
	entry := badger.NewEntry(key, val)
	if ttl > 0 {
		entry = entry.WithTTL(ttl)
	}
	return txn.SetEntry(entry)
}

// mapError translates badger errors into persistence errors
func mapError(err error, operation string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, badger.ErrConflict):
		return persistence.ErrTxConflict
	default:
		return fmt.Errorf("%w: badger %s: %s", errs.ErrPersistence, operation, err.Error())
	}
}
