package endpoint

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// Registry is the read-only candidate catalog, grouped by capability and sorted by priority.
type Registry struct {
	all   []Endpoint
	byCap map[Capability][]Endpoint
}

// NewRegistry orders endpoints by priority; ties keep the order they were given in.
func NewRegistry(endpoints ...Endpoint) *Registry {
	r := &Registry{byCap: make(map[Capability][]Endpoint)}

	for i, e := range endpoints {
		e.order = i
		r.all = append(r.all, e)
		r.byCap[e.Capability] = append(r.byCap[e.Capability], e)
	}

	for _, list := range r.byCap {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority < list[j].Priority
		})
	}

	return r
}

// Candidates returns a copy of the endpoints serving c, in priority order.
func (r *Registry) Candidates(c Capability) []Endpoint {
	return append([]Endpoint(nil), r.byCap[c]...)
}

// All returns every endpoint in declaration order.
func (r *Registry) All() []Endpoint {
	return append([]Endpoint(nil), r.all...)
}

// Len is the number of (service, capability) pairs.
func (r *Registry) Len() int {
	return len(r.all)
}

// Find fuzzy-matches names and addresses, case-insensitively.
func (r *Registry) Find(text string) []Endpoint {
	return lo.Filter(r.all, func(e Endpoint, _ int) bool {
		return fuzzy.MatchNormalizedFold(text, e.Name) || fuzzy.MatchNormalizedFold(text, e.BaseURL)
	})
}
