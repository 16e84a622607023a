package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Compare", t, func() {
		cases := []struct {
			a, b string
			want int
		}{
			{"1.2.3", "1.2.3", 0},
			{"v1.2.3", "1.2.3", 0},
			{"1.10.0", "1.9.9", 1},
			{"0.3.1", "1.0.0", -1},
			{"2.0.0", "1.99.99", 1},
			{"1.2.3-rc.1", "1.2.3", 0},
		}

		for _, c := range cases {
			got, err := Compare(c.a, c.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, c.want)
		}

		Convey("Rejects garbage", func() {
			_, err := Compare("latest", "1.0.0")
			So(err, ShouldNotBeNil)

			_, err = Compare("1.2", "1.0.0")
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Newer", t, func() {
		So(Newer("0.4.0", "0.3.1"), ShouldBeTrue)
		So(Newer("0.3.1", "0.3.1"), ShouldBeFalse)
		So(Newer("nightly", "0.3.1"), ShouldBeFalse)
	})
}

func TestFetchLatest(t *testing.T) {
	Convey("Given a release feed", t, func() {
		var (
			status = http.StatusOK
			body   = `{"tag_name":"v1.4.2"}`
		)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		}))
		defer srv.Close()

		previous := releaseURL
		releaseURL = srv.URL
		defer func() { releaseURL = previous }()

		Convey("The tag is returned without its prefix", func() {
			ver, err := fetchLatest(context.Background())
			So(err, ShouldBeNil)
			So(ver, ShouldEqual, "1.4.2")
		})

		Convey("An empty tag is an error", func() {
			body = `{}`
			_, err := fetchLatest(context.Background())
			So(err, ShouldNotBeNil)
		})

		Convey("A non-200 status is an error", func() {
			status = http.StatusForbidden
			_, err := fetchLatest(context.Background())
			So(err, ShouldNotBeNil)
		})
	})
}
