package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/vidpool/vidpool/endpoint"
	"github.com/vidpool/vidpool/log"
	"github.com/vidpool/vidpool/provider"
	"github.com/vidpool/vidpool/source"
)

// Sequential tries the candidates of capability in order and returns the first payload that parses,
// together with the endpoint that served it.
//
// Only endpoints whose dialect implements the table's operation take part; the others are passed
// over without counting as a failure. Participants that are cooling down are skipped. When all of
// them are, their records are forgotten and every participant is tried again.
func Sequential[T any](ctx context.Context, e *Engine, capability endpoint.Capability, table provider.Table[T], args provider.Args) (T, endpoint.Endpoint, error) {
	var zero T

	type candidate struct {
		ep  endpoint.Endpoint
		src provider.Source[T]
	}

	candidates := lo.FilterMap(e.opts.Policy.Order(e.registry.Candidates(capability)), func(ep endpoint.Endpoint, _ int) (candidate, bool) {
		src, ok := table.Lookup(ep)
		return candidate{ep: ep, src: src}, ok
	})
	if len(candidates) == 0 {
		return zero, endpoint.Endpoint{}, fmt.Errorf("%s: %w", capability, source.ErrPoolExhausted)
	}

	eligible := lo.Filter(candidates, func(c candidate, _ int) bool {
		if e.tracker.Eligible(c.ep) {
			return true
		}
		e.opts.Metrics.Skip(string(capability))
		return false
	})

	if len(eligible) == 0 {
		log.Infof("every %s endpoint is cooling down, clearing their failure records", capability)
		e.tracker.Forget(lo.Map(candidates, func(c candidate, _ int) endpoint.Endpoint { return c.ep })...)
		e.opts.Metrics.Reset(string(capability))
		eligible = candidates
	}

	if limit := e.opts.MaxAttempts[capability]; limit > 0 && len(eligible) > limit {
		eligible = eligible[:limit]
	}

	var last error
	for _, c := range eligible {
		if ctx.Err() != nil {
			return zero, endpoint.Endpoint{}, fmt.Errorf("%w: %w", errAborted, context.Cause(ctx))
		}

		value, err := call(ctx, e, c.ep, c.src, args)
		if errors.Is(err, errAborted) {
			return zero, endpoint.Endpoint{}, err
		}
		if err != nil {
			last = err
			continue
		}
		return value, c.ep, nil
	}

	return zero, endpoint.Endpoint{}, fmt.Errorf("%s: %w: %w", capability, source.ErrPoolExhausted, last)
}

// call is one endpoint attempt: build, send, parse. Failures are recorded before returning.
func call[T any](ctx context.Context, e *Engine, ep endpoint.Endpoint, src provider.Source[T], args provider.Args) (T, error) {
	var zero T
	start := time.Now()

	req, err := src.Build(args)
	if err != nil {
		if source.KindOf(err) == 0 {
			err = &source.CallError{Kind: source.Malformed, Endpoint: ep.Name, Err: err}
		}
		e.fail(ep, err, time.Since(start))
		return zero, err
	}

	body, err := e.do(ctx, ep, req)
	if errors.Is(err, errAborted) {
		return zero, err
	}
	if err != nil {
		e.fail(ep, err, time.Since(start))
		return zero, err
	}

	value, err := src.Parse(body, args)
	if err != nil {
		if source.KindOf(err) == 0 {
			err = &source.CallError{Kind: source.Malformed, Endpoint: ep.Name, Err: err}
		}
		e.fail(ep, err, time.Since(start))
		return zero, err
	}

	e.succeed(ep, time.Since(start))
	return value, nil
}
