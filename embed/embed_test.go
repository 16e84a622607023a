package embed

import (
	"context"
	"errors"
	"net/url"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type fetcher struct {
	token, base       string
	tokenErr, baseErr error
	calls             int
}

func (f *fetcher) Token(context.Context) (string, error) {
	f.calls++
	return f.token, f.tokenErr
}

func (f *fetcher) BasePath(context.Context) (string, error) {
	return f.base, f.baseErr
}

func TestBuild(t *testing.T) {
	Convey("Given the education template", t, func() {
		Convey("When there is no token", func() {
			u := Build(Education, "https://www.youtubeeducation.com/embed", "abc12345678", "")

			Convey("Then embed_config is omitted", func() {
				So(u, ShouldStartWith, "https://www.youtubeeducation.com/embed/abc12345678?autoplay=1&mute=0")
				So(u, ShouldNotContainSubstring, "embed_config")
				So(u, ShouldContainSubstring, "origin=https%3A%2F%2Fcreate.kahoot.it")
				So(u, ShouldEndWith, "&enablejsapi=1&widgetid=1")
			})
		})

		Convey("When the token has reserved characters", func() {
			u := Build(Education, "https://www.youtubeeducation.com/embed", "abc12345678", "a/b+c")

			Convey("Then it is query-escaped inside embed_config", func() {
				So(u, ShouldContainSubstring, "embed_config=%7B%22enc%22%3A%22a%2Fb%2Bc%22%2C%22hideTitle%22%3Atrue%7D")

				parsed, err := url.Parse(u)
				So(err, ShouldBeNil)
				So(parsed.Query().Get("embed_config"), ShouldEqual, `{"enc":"a/b+c","hideTitle":true}`)
			})
		})
	})

	Convey("Given the fixed templates", t, func() {
		So(Build(Nocookie, "https://www.youtube-nocookie.com/embed", "x", "ignored"), ShouldEqual,
			"https://www.youtube-nocookie.com/embed/x?autoplay=1&controls=1&rel=0&showinfo=0&modestbranding=1")
		So(Build(Youtube, "https://www.youtube.com/embed", "x", ""), ShouldEqual,
			"https://www.youtube.com/embed/x?autoplay=1&controls=1&rel=0&showinfo=0&modestbranding=1")
	})
}

func TestSynthesizer(t *testing.T) {
	Convey("Given a synthesizer", t, func() {
		ctx := context.Background()

		Convey("When the fetcher discovers a base path and a token", func() {
			f := &fetcher{token: "tok", base: "https://edu.example.com/embed/"}
			u := New(f, "").URL(ctx, "abc12345678", Education)

			Convey("Then both are used", func() {
				So(u, ShouldStartWith, "https://edu.example.com/embed/abc12345678?")
				So(u, ShouldContainSubstring, "embed_config=")
			})
		})

		Convey("When everything fails", func() {
			f := &fetcher{tokenErr: errors.New("down"), baseErr: errors.New("down")}
			u := New(f, "https://fallback.example/embed").URL(ctx, "abc12345678", Education)

			Convey("Then the default base is used without a token", func() {
				So(u, ShouldStartWith, "https://fallback.example/embed/abc12345678?")
				So(u, ShouldNotContainSubstring, "embed_config")
			})
		})

		Convey("When a fixed kind is requested", func() {
			f := &fetcher{token: "tok"}
			u := New(f, "").URL(ctx, "abc12345678", Nocookie)

			Convey("Then no token is fetched", func() {
				So(f.calls, ShouldEqual, 0)
				So(u, ShouldStartWith, "https://www.youtube-nocookie.com/embed/abc12345678?")
			})
		})

		Convey("When there is no fetcher", func() {
			u := New(nil, "").URL(ctx, "abc12345678", Education)

			Convey("Then the built-in base is used", func() {
				So(u, ShouldStartWith, "https://www.youtubeeducation.com/embed/abc12345678?")
			})
		})
	})

	Convey("Given kind names", t, func() {
		k, err := ParseKind("")
		So(err, ShouldBeNil)
		So(k, ShouldEqual, Education)

		k, err = ParseKind("NoCookie")
		So(err, ShouldBeNil)
		So(k, ShouldEqual, Nocookie)

		_, err = ParseKind("vimeo")
		So(err, ShouldNotBeNil)
	})
}
