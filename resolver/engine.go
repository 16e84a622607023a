// Package resolver is the request orchestrator: it turns an inbound lookup into calls against the
// endpoint pool, skipping endpoints that are cooling down, and merges what comes back.
//
// Lookups either walk one capability's candidates in order until a payload parses (Sequential)
// or run several independent sources side by side under a wait budget (FanOut).
package resolver

import (
	"context"

	"github.com/spf13/viper"
	"github.com/vidpool/vidpool/breaker"
	"github.com/vidpool/vidpool/embed"
	"github.com/vidpool/vidpool/endpoint"
	"github.com/vidpool/vidpool/internal/cache"
	"github.com/vidpool/vidpool/key"
	"github.com/vidpool/vidpool/metrics"
	"github.com/vidpool/vidpool/where"
	"golang.org/x/sync/singleflight"
)

// Engine is safe for concurrent use. The registry is read-only; the tracker and cache are shared by every lookup.
type Engine struct {
	registry *endpoint.Registry
	tracker  *breaker.Tracker
	cache    *cache.Cache
	opts     Options
	embed    *embed.Synthesizer
	flight   singleflight.Group
}

func New(registry *endpoint.Registry, tracker *breaker.Tracker, c *cache.Cache, opts Options) *Engine {
	e := &Engine{
		registry: registry,
		tracker:  tracker,
		cache:    c,
		opts:     opts.withDefaults(),
	}
	e.embed = embed.New(e, e.opts.EmbedDefaultBase)
	return e
}

// FromConfig builds an engine, its endpoint pool, tracker and cache from the current configuration.
func FromConfig() (*Engine, error) {
	opts, err := OptionsFromConfig()
	if err != nil {
		return nil, err
	}
	opts.Metrics = metrics.New()

	path := viper.GetString(key.EndpointsFile)
	if path == "" {
		path = where.Endpoints()
	}

	registry, err := endpoint.Load(path)
	if err != nil {
		return nil, err
	}

	var trackerOpts []breaker.Option
	if jitter := viper.GetDuration(key.BreakerJitter); jitter > 0 {
		trackerOpts = append(trackerOpts, breaker.WithJitter(jitter, viper.GetInt64(key.SelectionSeed)))
	}
	tracker := breaker.New(viper.GetDuration(key.BreakerCooldown), trackerOpts...)

	c, err := cache.New(viper.GetInt(key.CacheSize), cache.WithObserver(opts.Metrics.CacheLookup))
	if err != nil {
		return nil, err
	}

	return New(registry, tracker, c, opts), nil
}

func (e *Engine) Registry() *endpoint.Registry {
	return e.registry
}

func (e *Engine) Tracker() *breaker.Tracker {
	return e.tracker
}

func (e *Engine) Metrics() *metrics.Collector {
	return e.opts.Metrics
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// cached serves key from the cache, or computes, stores and returns it.
// With single flight enabled concurrent misses on one key share a single computation.
func cached[T any](ctx context.Context, e *Engine, capability endpoint.Capability, key string, compute func(ctx context.Context) (T, error)) (T, error) {
	return cachedIf(ctx, e, capability, key, compute, nil)
}

// cachedIf is cached, except that a computed value is only stored when keep allows it.
func cachedIf[T any](ctx context.Context, e *Engine, capability endpoint.Capability, key string, compute func(ctx context.Context) (T, error), keep func(T) bool) (T, error) {
	if hit, ok := cache.Load[T](e.cache, key).Get(); ok {
		return hit, nil
	}

	fill := func() (T, error) {
		value, err := compute(ctx)
		if err != nil {
			return value, err
		}
		if keep == nil || keep(value) {
			e.cache.Put(key, value, e.opts.TTLs[capability])
		}
		return value, nil
	}

	if !e.opts.SingleFlight {
		return fill()
	}

	v, err, _ := e.flight.Do(key, func() (any, error) {
		return fill()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
