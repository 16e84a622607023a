// Package provider knows how to talk to each endpoint dialect: what to request and how to read the answer.
//
// Every (operation, dialect) pair is one Source: a request builder plus a typed parse function.
// Parse functions fail closed: anything that is not the expected shape is a malformed payload.
package provider

import (
	"net/http"
	"net/url"
	"strconv"
)

// Operation is a single kind of call a dialect may implement.
type Operation string

const (
	OpStream   Operation = "stream"
	OpVideo    Operation = "video"
	OpSearch   Operation = "search"
	OpTrending Operation = "trending"
	OpComments Operation = "comments"
	OpToken    Operation = "token"
	OpDiscover Operation = "discover"
)

// Args carries the canonical arguments of a call.
type Args struct {
	ID     string
	Query  string
	Page   int
	Region string
	Limit  int
}

// Map exposes the arguments to scripts.
func (a Args) Map() map[string]string {
	m := map[string]string{
		"id":     a.ID,
		"query":  a.Query,
		"region": a.Region,
	}
	if a.Page > 0 {
		m["page"] = strconv.Itoa(a.Page)
	}
	if a.Limit > 0 {
		m["limit"] = strconv.Itoa(a.Limit)
	}
	return m
}

// Request is a call relative to an endpoint's base address.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON-encoded when non-nil.
	Body any
}

// Get builds a GET request.
func Get(path string, query url.Values) Request {
	return Request{Method: http.MethodGet, Path: path, Query: query}
}
