package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/DefiantLabs/lunie-core/pkg/repository"
)

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// fakeClock runs timers only when the test advances it.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2020, time.March, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	timer := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, timer)
	return timer
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, timer := range c.timers {
		if !timer.stopped && !timer.fired && !timer.at.After(c.now) {
			timer.fired = true
			due = append(due, timer)
		}
	}
	c.mu.Unlock()

	for _, timer := range due {
		timer.f()
	}
}

func (c *fakeClock) activeTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	active := 0
	for _, timer := range c.timers {
		if !timer.stopped && !timer.fired {
			active++
		}
	}
	return active
}

var errStorageDown = errors.New("storage down")

// countingRecords counts writes and can be switched to fail them.
type countingRecords struct {
	repository.RecordStore
	mu      sync.Mutex
	sets    map[string]int
	deletes map[string]int
	failSet bool
}

func newCountingRecords() *countingRecords {
	return &countingRecords{
		RecordStore: repository.NewMemoryRecords(),
		sets:        map[string]int{},
		deletes:     map[string]int{},
	}
}

func (r *countingRecords) Set(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	r.sets[key]++
	fail := r.failSet
	r.mu.Unlock()
	if fail {
		return errStorageDown
	}
	return r.RecordStore.Set(ctx, key, value)
}

func (r *countingRecords) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	r.deletes[key]++
	r.mu.Unlock()
	return r.RecordStore.Delete(ctx, key)
}

func (r *countingRecords) setCount(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sets[key]
}

func (r *countingRecords) deleteCount(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deletes[key]
}

// pausingClock holds the first Now call, made while a cache write is encoding, until released.
type pausingClock struct {
	*fakeClock
	once     sync.Once
	paused   chan struct{}
	released chan struct{}
}

func newPausingClock() *pausingClock {
	return &pausingClock{
		fakeClock: newFakeClock(),
		paused:    make(chan struct{}),
		released:  make(chan struct{}),
	}
}

func (c *pausingClock) Now() time.Time {
	c.once.Do(func() {
		close(c.paused)
		<-c.released
	})
	return c.fakeClock.Now()
}

// gatedRecords blocks writes of one key until the gate is opened.
type gatedRecords struct {
	repository.RecordStore
	key     string
	entered chan struct{}
	gate    chan struct{}
}

func newGatedRecords(key string) *gatedRecords {
	return &gatedRecords{
		RecordStore: repository.NewMemoryRecords(),
		key:         key,
		entered:     make(chan struct{}, 1),
		gate:        make(chan struct{}),
	}
}

func (r *gatedRecords) Set(ctx context.Context, key string, value []byte) error {
	if key == r.key {
		r.entered <- struct{}{}
		<-r.gate
	}
	return r.RecordStore.Set(ctx, key, value)
}
