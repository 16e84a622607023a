package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCollector(t *testing.T) {
	Convey("Given a collector", t, func() {
		c := New()

		Convey("When endpoint calls are recorded", func() {
			c.Request("stream", "omada", "", 10*time.Millisecond)
			c.Request("stream", "omada", "timeout", time.Second)
			c.Request("stream", "omada", "timeout", time.Second)

			Convey("Then they are counted per outcome", func() {
				So(testutil.ToFloat64(c.requests.WithLabelValues("stream", "omada", "ok")), ShouldEqual, 1)
				So(testutil.ToFloat64(c.requests.WithLabelValues("stream", "omada", "timeout")), ShouldEqual, 2)
			})
		})

		Convey("When cache lookups are observed", func() {
			c.CacheLookup(true)
			c.CacheLookup(false)
			c.CacheLookup(false)

			Convey("Then hits and misses are split", func() {
				So(testutil.ToFloat64(c.cacheLookups.WithLabelValues("hit")), ShouldEqual, 1)
				So(testutil.ToFloat64(c.cacheLookups.WithLabelValues("miss")), ShouldEqual, 2)
			})
		})

		Convey("When the handler is scraped", func() {
			c.Reset("comments")

			rec := httptest.NewRecorder()
			c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
			body, _ := io.ReadAll(rec.Body)

			Convey("Then the text format contains the series", func() {
				So(rec.Code, ShouldEqual, 200)
				So(string(body), ShouldContainSubstring, `vidpool_breaker_resets_total{capability="comments"} 1`)
			})
		})
	})

	Convey("Given a nil collector", t, func() {
		var c *Collector

		Convey("Then recording is a no-op", func() {
			So(func() {
				c.Request("stream", "x", "", 0)
				c.CacheLookup(true)
				c.Skip("stream")
				c.Reset("stream")
				c.Task("stream", "ok")
			}, ShouldNotPanic)
		})
	})
}
