package endpoint

import (
	"net/url"
	"testing"
	"time"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidpool/vidpool/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func names(endpoints []Endpoint) []string {
	return lo.Map(endpoints, func(e Endpoint, _ int) string { return e.Name })
}

func TestRegistry(t *testing.T) {
	Convey("Given endpoints declared out of priority order", t, func() {
		r := NewRegistry(
			Endpoint{Name: "c", BaseURL: "https://c", Capability: Stream, Priority: 3},
			Endpoint{Name: "a", BaseURL: "https://a", Capability: Stream, Priority: 1},
			Endpoint{Name: "b1", BaseURL: "https://b1", Capability: Stream, Priority: 2},
			Endpoint{Name: "b2", BaseURL: "https://b2", Capability: Stream, Priority: 2},
			Endpoint{Name: "x", BaseURL: "https://x", Capability: Comments},
		)

		Convey("Candidates should be sorted by priority with stable ties", func() {
			So(names(r.Candidates(Stream)), ShouldResemble, []string{"a", "b1", "b2", "c"})
		})

		Convey("An unknown capability should yield an empty sequence", func() {
			So(r.Candidates(Trending), ShouldBeEmpty)
		})

		Convey("Mutating the returned slice should not affect the registry", func() {
			c := r.Candidates(Stream)
			c[0].Name = "mutated"
			So(r.Candidates(Stream)[0].Name, ShouldEqual, "a")
		})

		Convey("Find should match fuzzily", func() {
			So(names(r.Find("B2")), ShouldResemble, []string{"b2"})
		})
	})
}

func TestEndpoint(t *testing.T) {
	Convey("Given an endpoint", t, func() {
		e := Endpoint{Name: "omada", BaseURL: "https://yt.omada.cafe/", Capability: Stream}

		Convey("ID should combine capability and address", func() {
			So(e.ID(), ShouldEqual, "stream|https://yt.omada.cafe/")
		})

		Convey("URL should join paths and encode queries", func() {
			So(e.URL("/api/v1/videos/abc", nil), ShouldEqual, "https://yt.omada.cafe/api/v1/videos/abc")
			So(e.URL("api/v1/search", url.Values{"q": {"lo fi"}}), ShouldEqual, "https://yt.omada.cafe/api/v1/search?q=lo+fi")
		})
	})
}

func TestCatalog(t *testing.T) {
	Convey("Given a catalog entry with two capabilities", t, func() {
		r, err := ParseCatalog([]byte(`
endpoints:
  - name: mirror
    url: https://mirror.example
    dialect: invidious
    capabilities: [stream, comments]
    priority: 4
    timeout: 2s
    insecure: true
`))
		So(err, ShouldBeNil)

		Convey("It should expand into one endpoint per capability", func() {
			So(r.Len(), ShouldEqual, 2)
			stream := r.Candidates(Stream)
			So(stream, ShouldHaveLength, 1)
			So(stream[0].Timeout, ShouldEqual, 2*time.Second)
			So(stream[0].Insecure, ShouldBeTrue)
			So(r.Candidates(Comments)[0].ID(), ShouldNotEqual, stream[0].ID())
		})
	})

	Convey("Invalid catalogs should be rejected", t, func() {
		_, err := ParseCatalog([]byte("endpoints:\n  - url: https://a\n    dialect: invidious\n    capabilities: [teleport]\n"))
		So(err, ShouldNotBeNil)

		_, err = ParseCatalog([]byte("endpoints:\n  - url: https://a\n    dialect: carrier-pigeon\n    capabilities: [stream]\n"))
		So(err, ShouldNotBeNil)

		_, err = ParseCatalog([]byte("endpoints:\n  - url: ftp://a\n    dialect: invidious\n    capabilities: [stream]\n"))
		So(err, ShouldNotBeNil)

		_, err = ParseCatalog([]byte("endpoints:\n  - url: https://a\n    dialect: custom\n    capabilities: [stream]\n"))
		So(err, ShouldNotBeNil)
	})

	Convey("The built-in catalog should parse and cover every capability", t, func() {
		r := Builtin()
		for _, c := range Capabilities() {
			So(r.Candidates(c), ShouldNotBeEmpty)
		}
		So(r.Candidates(Stream)[0].Name, ShouldEqual, "omada")
	})

	Convey("Load should fall back to the built-in catalog when the file is missing", t, func() {
		r, err := Load("/nowhere/endpoints.yaml")
		So(err, ShouldBeNil)
		So(r.Len(), ShouldEqual, Builtin().Len())
	})

	Convey("Load should read a catalog file", t, func() {
		path := "/config/endpoints.yaml"
		So(filesystem.API().MkdirAll("/config", 0o755), ShouldBeNil)
		So(filesystem.API().WriteFile(path, []byte("endpoints:\n  - name: only\n    url: https://only\n    dialect: siawaseok\n    capabilities: [trending]\n"), 0o644), ShouldBeNil)

		r, err := Load(path)
		So(err, ShouldBeNil)
		So(names(r.Candidates(Trending)), ShouldResemble, []string{"only"})
	})
}

func TestPolicy(t *testing.T) {
	candidates := []Endpoint{
		{Name: "a", Priority: 1},
		{Name: "b", Priority: 2},
		{Name: "c", Priority: 2},
		{Name: "d", Priority: 2},
		{Name: "e", Priority: 2},
		{Name: "f", Priority: 3},
	}

	Convey("Ordered should keep the order", t, func() {
		So(names(Ordered{}.Order(candidates)), ShouldResemble, []string{"a", "b", "c", "d", "e", "f"})
	})

	Convey("Shuffled should only permute inside a priority tier", t, func() {
		out := NewShuffled(42).Order(candidates)
		So(out[0].Name, ShouldEqual, "a")
		So(out[5].Name, ShouldEqual, "f")
		So(names(out[1:5]), ShouldContain, "b")
		So(names(out[1:5]), ShouldContain, "e")
	})

	Convey("The same seed should yield the same order", t, func() {
		So(names(NewShuffled(7).Order(candidates)), ShouldResemble, names(NewShuffled(7).Order(candidates)))
	})

	Convey("NewPolicy should validate names", t, func() {
		p, err := NewPolicy("ordered", 0)
		So(err, ShouldBeNil)
		So(p, ShouldHaveSameTypeAs, Ordered{})

		_, err = NewPolicy("roulette", 0)
		So(err, ShouldNotBeNil)
	})
}
