package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vidpool/vidpool/breaker"
	"github.com/vidpool/vidpool/endpoint"
	"github.com/vidpool/vidpool/internal/cache"
	"github.com/vidpool/vidpool/metrics"
	"github.com/vidpool/vidpool/resolver"

	. "github.com/smartystreets/goconvey/convey"
)

func upstream(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = fmt.Fprint(w, body)
	}))
}

func get(s *Server, target string) (*httptest.ResponseRecorder, map[string]any) {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestServer(t *testing.T) {
	Convey("Given a server over one healthy and one failing upstream", t, func() {
		streams := upstream(200, `{"title": "T", "muxed360p": "https://v/360"}`)
		comments := upstream(500, `{}`)
		defer streams.Close()
		defer comments.Close()

		registry := endpoint.NewRegistry(
			endpoint.Endpoint{Name: "streams", BaseURL: streams.URL, Capability: endpoint.Stream, Dialect: endpoint.Siawaseok},
			endpoint.Endpoint{Name: "comments", BaseURL: comments.URL, Capability: endpoint.Comments, Dialect: endpoint.Invidious},
		)
		c, err := cache.New(16)
		So(err, ShouldBeNil)

		engine := resolver.New(registry, breaker.New(time.Minute), c, resolver.Options{
			Metrics: metrics.New(),
			Client:  func(endpoint.Endpoint) *http.Client { return http.DefaultClient },
		})
		s := New(engine, "test")

		Convey("When a stream is requested", func() {
			rec, body := get(s, "/api/stream/abc12345678?quality=360p")

			Convey("Then the canonical result is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(body["title"], ShouldEqual, "T")
				So(body["quality_streams"], ShouldContainKey, "360p")
			})
		})

		Convey("When comments are unavailable", func() {
			rec, body := get(s, "/api/comments/abc12345678")

			Convey("Then the status is 503", func() {
				So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(body["error"], ShouldContainSubstring, "no source available")
			})

			Convey("Then the failure shows up in the endpoint listing", func() {
				rec, body := get(s, "/api/endpoints?capability=comments")
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(body["failures"], ShouldHaveLength, 1)
				So(body["endpoints"].([]any)[0].(map[string]any)["eligible"], ShouldBeFalse)
			})
		})

		Convey("When a search has no query", func() {
			rec, _ := get(s, "/api/search")
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When a page is not a number", func() {
			rec, _ := get(s, "/api/search?q=x&page=two")
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When an unknown embed kind is requested", func() {
			rec, _ := get(s, "/api/embed/abc12345678?kind=vimeo")
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When a nocookie embed is requested", func() {
			rec, body := get(s, "/api/embed/abc12345678?kind=nocookie")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(body["url"], ShouldStartWith, "https://www.youtube-nocookie.com/embed/abc12345678")
		})

		Convey("When metrics are scraped", func() {
			_, _ = get(s, "/api/stream/abc12345678")
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "vidpool_endpoint_requests_total")
		})
	})
}

func TestCORS(t *testing.T) {
	Convey("Given a server allowing one origin", t, func() {
		c, err := cache.New(4)
		So(err, ShouldBeNil)

		engine := resolver.New(endpoint.NewRegistry(), breaker.New(time.Minute), c, resolver.Options{Metrics: metrics.New()})
		s := New(engine, "test", WithCORS([]string{"https://app.example"}))

		preflight := func(origin string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodOptions, "/api/embed/abc", nil)
			req.Header.Set("Origin", origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)
			return rec
		}

		Convey("The allowed origin passes preflight", func() {
			rec := preflight("https://app.example")
			So(rec.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "https://app.example")
		})

		Convey("Other origins are refused", func() {
			rec := preflight("https://evil.example")
			So(rec.Header().Get("Access-Control-Allow-Origin"), ShouldBeEmpty)
			So(rec.Code, ShouldEqual, http.StatusForbidden)
		})
	})
}
