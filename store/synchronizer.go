package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DefiantLabs/lunie-core/config"
	"github.com/DefiantLabs/lunie-core/pkg/repository"
	"github.com/puzpuzpuz/xsync/v4"
)

const (
	DefaultDebounce     = 5 * time.Second
	defaultWriteTimeout = 10 * time.Second
)

// SessionState is the persistence state of a single cache key.
type SessionState string

const (
	SessionUnauthenticated SessionState = "unauthenticated"
	SessionIdle            SessionState = "idle"
	SessionPendingWrite    SessionState = "pendingWrite"
)

type pendingWrite struct {
	generation uint64
	snapshot   Persisted
	timer      Timer
}

// Synchronizer writes the persisted slices of the state to the cache once mutations have
// been quiet for the debounce period. Each key has at most one pending write.
type Synchronizer struct {
	records      repository.RecordStore
	clock        Clock
	debounce     time.Duration
	writeTimeout time.Duration

	pending    *xsync.Map[string, *pendingWrite]
	writers    *xsync.Map[string, *keyWriter]
	generation atomic.Uint64
}

// keyWriter orders the writes of one key. A snapshot older than the last written one is dropped.
type keyWriter struct {
	mu      sync.Mutex
	written uint64
}

type SynchronizerOption func(*Synchronizer)

func WithClock(clock Clock) SynchronizerOption {
	return func(s *Synchronizer) {
		s.clock = clock
	}
}

func WithDebounce(debounce time.Duration) SynchronizerOption {
	return func(s *Synchronizer) {
		s.debounce = debounce
	}
}

func WithWriteTimeout(timeout time.Duration) SynchronizerOption {
	return func(s *Synchronizer) {
		s.writeTimeout = timeout
	}
}

func NewSynchronizer(records repository.RecordStore, opts ...SynchronizerOption) *Synchronizer {
	s := &Synchronizer{
		records:      records,
		clock:        SystemClock{},
		debounce:     DefaultDebounce,
		writeTimeout: defaultWriteTimeout,
		pending:      xsync.NewMap[string, *pendingWrite](),
		writers:      xsync.NewMap[string, *keyWriter](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach subscribes the synchronizer to the store. The returned function detaches it.
func (s *Synchronizer) Attach(store *Store) func() {
	return store.Subscribe(s.HandleMutation)
}

// HandleMutation schedules a cache write for mutations of persisted slices. Without a signed in
// address or a network nothing is scheduled. A mutation arriving while a write is pending
// restarts the debounce period and replaces the snapshot.
func (s *Synchronizer) HandleMutation(mutation Mutation, state *State) {
	if !IsPersisted(mutation.Type) {
		return
	}
	if state.User.Address == "" || state.Connection.NetworkID == "" {
		return
	}

	key := CacheKey(state.Connection.NetworkID, state.User.Address)
	snapshot := state.Persisted.Clone()
	generation := s.generation.Add(1)

	s.pending.Compute(key, func(old *pendingWrite, loaded bool) (*pendingWrite, xsync.ComputeOp) {
		if loaded {
			old.timer.Stop()
		}
		next := &pendingWrite{generation: generation, snapshot: snapshot}
		next.timer = s.clock.AfterFunc(s.debounce, func() {
			s.fire(key, generation)
		})
		return next, xsync.UpdateOp
	})
}

// take removes the pending write of key. With a non zero generation only that generation is taken,
// so a superseded or cancelled timer finds nothing.
func (s *Synchronizer) take(key string, generation uint64) (pendingWrite, bool) {
	var taken pendingWrite
	ok := false
	s.pending.Compute(key, func(old *pendingWrite, loaded bool) (*pendingWrite, xsync.ComputeOp) {
		if !loaded || (generation != 0 && old.generation != generation) {
			return old, xsync.CancelOp
		}
		old.timer.Stop()
		taken = *old
		ok = true
		return nil, xsync.DeleteOp
	})
	return taken, ok
}

func (s *Synchronizer) fire(key string, generation uint64) {
	pending, ok := s.take(key, generation)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()
	if err := s.write(ctx, key, pending.generation, pending.snapshot); err != nil {
		config.Log.Error(fmt.Sprintf("Could not write cache %s", key), err)
	}
}

func (s *Synchronizer) write(ctx context.Context, key string, generation uint64, snapshot Persisted) error {
	writer, _ := s.writers.LoadOrCompute(key, func() (*keyWriter, bool) {
		return &keyWriter{}, false
	})
	writer.mu.Lock()
	defer writer.mu.Unlock()
	if generation <= writer.written {
		config.Log.Debugf("Skipping stale cache write %s", key)
		return nil
	}

	data, err := EncodeEnvelope(snapshot, s.clock.Now())
	if err != nil {
		return fmt.Errorf("encoding cache %s: %w", key, err)
	}
	if err := s.records.Set(ctx, key, data); err != nil {
		return fmt.Errorf("writing cache %s: %w", key, err)
	}
	writer.written = generation
	config.Log.Debugf("Wrote cache %s", key)
	return nil
}

// Cancel drops the pending write of key, e.g. on sign out. The stored record is left untouched.
func (s *Synchronizer) Cancel(key string) bool {
	_, cancelled := s.take(key, 0)
	return cancelled
}

// Flush writes every pending snapshot right away, e.g. on shutdown.
func (s *Synchronizer) Flush(ctx context.Context) error {
	keys := make([]string, 0, s.pending.Size())
	s.pending.Range(func(key string, _ *pendingWrite) bool {
		keys = append(keys, key)
		return true
	})

	var errs []error
	for _, key := range keys {
		pending, ok := s.take(key, 0)
		if !ok {
			continue
		}
		if err := s.write(ctx, key, pending.generation, pending.snapshot); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SessionState reports whether a write is pending for the session of address on networkID.
func (s *Synchronizer) SessionState(networkID string, address string) SessionState {
	if address == "" || networkID == "" {
		return SessionUnauthenticated
	}
	if _, ok := s.pending.Load(CacheKey(networkID, address)); ok {
		return SessionPendingWrite
	}
	return SessionIdle
}
