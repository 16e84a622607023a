package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/vidpool/vidpool/constant"
	"github.com/vidpool/vidpool/endpoint"
	"github.com/vidpool/vidpool/log"
	"github.com/vidpool/vidpool/provider"
	"github.com/vidpool/vidpool/source"
	"github.com/vidpool/vidpool/util"
)

// maxBody bounds how much of a response is read.
const maxBody = 8 << 20

// errAborted marks a lookup that stopped because the caller gave up or the wait budget ran out,
// not because the endpoint failed.
var errAborted = errors.New("lookup aborted")

// do issues one request with the endpoint's own timeout, capped by whatever deadline parent has.
// Every failure is a *source.CallError, except when the caller gave up, which yields errAborted.
func (e *Engine) do(parent context.Context, ep endpoint.Endpoint, req provider.Request) ([]byte, error) {
	ctx, cancel := context.WithTimeout(parent, e.opts.timeout(ep))
	defer cancel()

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &source.CallError{Kind: source.Malformed, Endpoint: ep.Name, Err: err}
		}
		body = bytes.NewReader(data)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, ep.URL(req.Path, req.Query), body)
	if err != nil {
		return nil, &source.CallError{Kind: source.Transport, Endpoint: ep.Name, Err: err}
	}
	httpReq.Header.Set("User-Agent", constant.UserAgent)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.opts.Client(ep).Do(httpReq)
	if err != nil {
		return nil, e.classify(parent, ep, err)
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &source.CallError{Kind: source.HTTP, Endpoint: ep.Name, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, e.classify(parent, ep, err)
	}
	return data, nil
}

// aborted reports whether ctx was cancelled by the caller. An expired fan-out budget is not
// an abort: the endpoint was too slow and is charged with a timeout.
func aborted(ctx context.Context) error {
	if ctx.Err() == nil || errors.Is(context.Cause(ctx), errLate) {
		return nil
	}
	return fmt.Errorf("%w: %w", errAborted, context.Cause(ctx))
}

func (e *Engine) classify(parent context.Context, ep endpoint.Endpoint, err error) error {
	if abort := aborted(parent); abort != nil {
		return abort
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(context.Cause(parent), errLate) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &source.CallError{Kind: source.Timeout, Endpoint: ep.Name, Err: err}
	}
	return &source.CallError{Kind: source.Transport, Endpoint: ep.Name, Err: err}
}

// fail records a failed call against ep.
func (e *Engine) fail(ep endpoint.Endpoint, err error, elapsed time.Duration) {
	var ce *source.CallError
	if errors.As(err, &ce) && ce.Endpoint == "" {
		ce.Endpoint = ep.Name
	}

	kind := source.KindOf(err)
	e.tracker.RecordFailure(ep, err)
	e.opts.Metrics.Request(string(ep.Capability), ep.Name, kind.String(), elapsed)

	log.WithFields(log.Fields{
		"capability": ep.Capability,
		"endpoint":   ep.Name,
		"kind":       kind,
		"elapsed":    elapsed,
	}).Warn(err)
}

func (e *Engine) succeed(ep endpoint.Endpoint, elapsed time.Duration) {
	e.opts.Metrics.Request(string(ep.Capability), ep.Name, "", elapsed)

	log.WithFields(log.Fields{
		"capability": ep.Capability,
		"endpoint":   ep.Name,
		"elapsed":    elapsed,
	}).Debug("endpoint answered")
}
