// Package endpoint holds the immutable catalog of third-party services and the order they are tried in.
package endpoint

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Capability is a category of request an endpoint can serve.
type Capability string

const (
	Stream   Capability = "stream"
	Search   Capability = "search"
	Trending Capability = "trending"
	Comments Capability = "comments"
	// Metadata endpoints supply video details and catalogue search without streams.
	Metadata Capability = "metadata"
	// Token endpoints hand out the signed key embedded into education player URLs.
	Token Capability = "token"
	// Embed endpoints are queried to discover where the education player currently lives.
	Embed Capability = "embed"
)

// Capabilities lists every capability in display order.
func Capabilities() []Capability {
	return []Capability{Stream, Search, Trending, Comments, Metadata, Token, Embed}
}

// ParseCapability validates a capability name.
func ParseCapability(s string) (Capability, error) {
	c := Capability(strings.ToLower(strings.TrimSpace(s)))
	if !lo.Contains(Capabilities(), c) {
		return "", fmt.Errorf("unknown capability %q", s)
	}
	return c, nil
}

// Dialect names. A dialect decides how requests are built and payloads parsed.
const (
	Invidious = "invidious"
	Siawaseok = "siawaseok"
	Kahoot    = "kahoot"
	Noembed   = "noembed"
	Custom    = "custom"
)

// Dialects lists the known dialect names.
func Dialects() []string {
	return []string{Invidious, Siawaseok, Kahoot, Noembed, Custom}
}

// Endpoint is one (service, capability) pair. Values are never mutated after the registry is built.
type Endpoint struct {
	Name       string
	BaseURL    string
	Capability Capability
	Priority   int
	Dialect    string

	// Insecure skips TLS certificate verification.
	Insecure bool
	// Fingerprint routes requests through a browser-like TLS client hello.
	Fingerprint bool
	// Script is the Lua normalizer of a custom endpoint.
	Script string
	// Timeout overrides the capability timeout when non-zero.
	Timeout time.Duration

	order int
}

// ID identifies the endpoint by capability and address.
func (e Endpoint) ID() string {
	return string(e.Capability) + "|" + e.BaseURL
}

func (e Endpoint) String() string {
	return fmt.Sprintf("%s (%s)", e.Name, e.Capability)
}

// URL joins path and query onto the base address.
func (e Endpoint) URL(path string, query url.Values) string {
	u := strings.TrimRight(e.BaseURL, "/")
	if path != "" {
		u += "/" + strings.TrimLeft(path, "/")
	}
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}
