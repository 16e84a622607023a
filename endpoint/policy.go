package endpoint

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Policy decides the order candidates of equal priority are tried in.
// Implementations must never move an endpoint ahead of one with a lower priority number.
type Policy interface {
	Order(candidates []Endpoint) []Endpoint
}

// Ordered keeps declaration order.
type Ordered struct{}

func (Ordered) Order(candidates []Endpoint) []Endpoint {
	return candidates
}

// Shuffled spreads load across equal-priority endpoints with a seedable source.
type Shuffled struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewShuffled returns a shuffle policy; the same seed yields the same sequence of orders.
func NewShuffled(seed int64) *Shuffled {
	return &Shuffled{rnd: rand.New(rand.NewSource(seed))}
}

func (s *Shuffled) Order(candidates []Endpoint) []Endpoint {
	out := append([]Endpoint(nil), candidates...)

	s.mu.Lock()
	defer s.mu.Unlock()

	for start := 0; start < len(out); {
		end := start + 1
		for end < len(out) && out[end].Priority == out[start].Priority {
			end++
		}
		tier := out[start:end]
		s.rnd.Shuffle(len(tier), func(i, j int) {
			tier[i], tier[j] = tier[j], tier[i]
		})
		start = end
	}

	return out
}

// NewPolicy maps the selection.policy setting onto a Policy. Seed 0 seeds from the clock.
func NewPolicy(name string, seed int64) (Policy, error) {
	switch name {
	case "", "ordered":
		return Ordered{}, nil
	case "shuffle", "random":
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return NewShuffled(seed), nil
	default:
		return nil, fmt.Errorf("unknown selection policy %q", name)
	}
}
