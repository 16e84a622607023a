// Package network builds the HTTP clients endpoints are called through.
//
// Clients carry no timeout of their own: every call is bounded by its context,
// so the per-capability timeout and fan-out cancellation share one mechanism.
package network

import (
	"crypto/tls"
	"net/http"
	"sync"
	"time"

	"github.com/vidpool/vidpool/endpoint"
)

// Client is the shared client for requests that are not endpoint calls.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(false),
}

type flavour struct {
	insecure    bool
	fingerprint bool
}

var (
	clientsMu sync.Mutex
	clients   = make(map[flavour]*http.Client)
)

// For returns the client matching the transport quirks of e. Clients are shared between endpoints.
func For(e endpoint.Endpoint) *http.Client {
	f := flavour{insecure: e.Insecure, fingerprint: e.Fingerprint}

	clientsMu.Lock()
	defer clientsMu.Unlock()

	if c, ok := clients[f]; ok {
		return c
	}

	var transport http.RoundTripper
	if f.fingerprint {
		transport = newFingerprintTransport(f.insecure)
	} else {
		transport = newTransport(f.insecure)
	}

	c := &http.Client{Transport: transport}
	clients[f] = c
	return c
}

func newTransport(insecure bool) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 20
	t.MaxConnsPerHost = 50
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 15 * time.Second
	t.ExpectContinueTimeout = time.Second
	if insecure {
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}
	return t
}
