// Package breaker tracks endpoints that recently failed and keeps them out of rotation for a cool-down window.
//
// A record exists exactly while its endpoint is ineligible. Expired records are dropped
// lazily when they are next looked at, there is no background sweeper.
package breaker

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/vidpool/vidpool/endpoint"
)

// Record is the failure state of one endpoint.
type Record struct {
	Endpoint   string              `json:"endpoint"`
	Name       string              `json:"name"`
	Capability endpoint.Capability `json:"capability"`
	FailedAt   time.Time           `json:"failed_at"`
	Until      time.Time           `json:"until"`
	Cause      string              `json:"cause,omitempty"`
}

// Tracker is safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	records  map[string]Record
	cooldown time.Duration
	jitter   time.Duration
	now      func() time.Time
	rnd      *rand.Rand
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithJitter extends every cool-down by a random duration in [0, max).
// It spreads retries of endpoints that went down together.
func WithJitter(max time.Duration, seed int64) Option {
	return func(t *Tracker) {
		t.jitter = max
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		t.rnd = rand.New(rand.NewSource(seed))
	}
}

// New returns an empty tracker.
func New(cooldown time.Duration, opts ...Option) *Tracker {
	t := &Tracker{
		records:  make(map[string]Record),
		cooldown: cooldown,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Cooldown returns the configured window.
func (t *Tracker) Cooldown() time.Duration {
	return t.cooldown
}

// Eligible is true iff e has no live failure record.
func (t *Tracker) Eligible(e endpoint.Endpoint) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	record, ok := t.records[e.ID()]
	if !ok {
		return true
	}

	if t.now().After(record.Until) {
		delete(t.records, e.ID())
		return true
	}

	return false
}

// RecordFailure upserts a record stamped with the current time.
func (t *Tracker) RecordFailure(e endpoint.Endpoint, cause error) {
	now := t.now()
	window := t.cooldown
	if t.jitter > 0 {
		window += time.Duration(t.int63n(int64(t.jitter)))
	}

	record := Record{
		Endpoint:   e.ID(),
		Name:       e.Name,
		Capability: e.Capability,
		FailedAt:   now,
		Until:      now.Add(window),
	}
	if cause != nil {
		record.Cause = cause.Error()
	}

	t.mu.Lock()
	t.records[e.ID()] = record
	t.mu.Unlock()
}

func (t *Tracker) int63n(n int64) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rnd.Int63n(n)
}

// Reset clears every record.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = make(map[string]Record)
}

// Forget clears the records of the given endpoints only.
func (t *Tracker) Forget(endpoints ...endpoint.Endpoint) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range endpoints {
		delete(t.records, e.ID())
	}
}

// Records returns live records, oldest failure first.
func (t *Tracker) Records() []Record {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	for id, r := range t.records {
		if now.After(r.Until) {
			delete(t.records, id)
		}
	}

	records := lo.Values(t.records)
	sort.Slice(records, func(i, j int) bool {
		if records[i].FailedAt.Equal(records[j].FailedAt) {
			return records[i].Endpoint < records[j].Endpoint
		}
		return records[i].FailedAt.Before(records[j].FailedAt)
	})
	return records
}

// Len counts live and not yet collected records.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.records)
}
