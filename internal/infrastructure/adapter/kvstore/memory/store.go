package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/persistence"
)

// ErrExecCalled is returned when Exec runs twice within one Watch
var ErrExecCalled = errors.New("exec already called for this transaction")

// Store is an in-process KV store that simulates optimistic transactions.
// Every write bumps a per-key version; a batch applies only when all watched
// keys still carry the version observed at Watch time.
type Store struct {
	mu       sync.Mutex
	hashes   map[string]map[string]string
	sets     map[string]map[string]struct{}
	expiry   map[string]time.Time
	versions map[string]uint64
	seq      uint64

	timeProvider coreport.TimeProvider
	beforeExec   func(keys []string)
}

// NewStore creates an empty in-memory store
func NewStore(timeProvider coreport.TimeProvider) *Store {
	return &Store{
		hashes:       make(map[string]map[string]string),
		sets:         make(map[string]map[string]struct{}),
		expiry:       make(map[string]time.Time),
		versions:     make(map[string]uint64),
		timeProvider: timeProvider,
	}
}

// SetBeforeExecHook installs a function that runs after a batch is queued and
// before it is checked against the watched keys. Tests use it to inject a
// competing write between watch and commit.
func (s *Store) SetBeforeExecHook(hook func(keys []string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beforeExec = hook
}

// HGetAll returns a copy of the hash at key
func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hgetall(key), nil
}

// SMembers returns the members of the set at key in sorted order
func (s *Store) SMembers(ctx context.Context, key string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.smembers(key), nil
}

// Watch snapshots the versions of keys and runs fn
func (s *Store) Watch(ctx context.Context, fn func(tx persistence.KVTx) error, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	snapshot := make(map[string]uint64, len(keys))
	for _, key := range keys {
		s.expireIfDue(key)
		snapshot[key] = s.versions[key]
	}
	s.mu.Unlock()

	return fn(&tx{store: s, watched: snapshot})
}

// Ping always succeeds
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op
func (s *Store) Close() error {
	return nil
}

// Len reports how many live keys the store holds
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make(map[string]struct{})
	for k := range s.hashes {
		keys[k] = struct{}{}
	}
	for k := range s.sets {
		keys[k] = struct{}{}
	}
	n := 0
	for k := range keys {
		if !s.expireIfDue(k) {
			n++
		}
	}
	return n
}

func (s *Store) hgetall(key string) map[string]string {
	s.expireIfDue(key)
	out := make(map[string]string, len(s.hashes[key]))
	for f, v := range s.hashes[key] {
		out[f] = v
	}
	return out
}

func (s *Store) smembers(key string) []string {
	s.expireIfDue(key)
	out := make([]string, 0, len(s.sets[key]))
	for m := range s.sets[key] {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// expireIfDue drops key when its TTL has passed and reports whether it did
func (s *Store) expireIfDue(key string) bool {
	deadline, ok := s.expiry[key]
	if !ok || s.timeProvider.Now().Before(deadline) {
		return false
	}
	s.del(key)
	return true
}

func (s *Store) touch(key string) {
	s.seq++
	s.versions[key] = s.seq
}

func (s *Store) del(key string) {
	_, isHash := s.hashes[key]
	_, isSet := s.sets[key]
	delete(s.hashes, key)
	delete(s.sets, key)
	delete(s.expiry, key)
	if isHash || isSet {
		s.touch(key)
	}
}

func (s *Store) exists(key string) bool {
	_, isHash := s.hashes[key]
	_, isSet := s.sets[key]
	return isHash || isSet
}

type tx struct {
	store   *Store
	watched map[string]uint64
	done    bool
}

func (t *tx) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return t.store.HGetAll(ctx, key)
}

func (t *tx) SMembers(ctx context.Context, key string) ([]string, error) {
	return t.store.SMembers(ctx, key)
}

func (t *tx) Exec(ctx context.Context, fn func(batch persistence.KVBatch) error) error {
	if t.done {
		return ErrExecCalled
	}
	t.done = true

	b := &batch{}
	if err := fn(b); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s := t.store
	s.mu.Lock()
	hook := s.beforeExec
	s.mu.Unlock()
	if hook != nil {
		hook(watchedKeys(t.watched))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, version := range t.watched {
		s.expireIfDue(key)
		if s.versions[key] != version {
			return persistence.ErrTxConflict
		}
	}

	for _, op := range b.ops {
		op(s)
	}
	return nil
}

func watchedKeys(watched map[string]uint64) []string {
	keys := make([]string, 0, len(watched))
	for k := range watched {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type batch struct {
	ops []func(s *Store)
}

func (b *batch) HSet(key string, fields map[string]string) {
	copied := make(map[string]string, len(fields))
	for f, v := range fields {
		copied[f] = v
	}
	b.ops = append(b.ops, func(s *Store) {
		s.expireIfDue(key)
		if s.hashes[key] == nil {
			s.hashes[key] = make(map[string]string, len(copied))
		}
		for f, v := range copied {
			s.hashes[key][f] = v
		}
		s.touch(key)
	})
}

func (b *batch) Expire(key string, ttl time.Duration) {
	b.ops = append(b.ops, func(s *Store) {
		if s.expireIfDue(key) || !s.exists(key) {
			return
		}
		s.expiry[key] = s.timeProvider.Now().Add(ttl)
		s.touch(key)
	})
}

func (b *batch) SAdd(key string, members ...string) {
	members = append([]string(nil), members...)
	b.ops = append(b.ops, func(s *Store) {
		s.expireIfDue(key)
		if s.sets[key] == nil {
			s.sets[key] = make(map[string]struct{}, len(members))
		}
		for _, m := range members {
			s.sets[key][m] = struct{}{}
		}
		s.touch(key)
	})
}

func (b *batch) SRem(key string, members ...string) {
	members = append([]string(nil), members...)
	b.ops = append(b.ops, func(s *Store) {
		set, ok := s.sets[key]
		if !ok || s.expireIfDue(key) {
			return
		}
		for _, m := range members {
			delete(set, m)
		}
		if len(set) == 0 {
			delete(s.sets, key)
		}
		s.touch(key)
	})
}

func (b *batch) Del(keys ...string) {
	keys = append([]string(nil), keys...)
	b.ops = append(b.ops, func(s *Store) {
		for _, key := range keys {
			s.del(key)
		}
	})
}
