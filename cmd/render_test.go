package cmd

import (
	"bytes"
	"testing"

	"github.com/vidpool/vidpool/source"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBestURL(t *testing.T) {
	Convey("bestURL", t, func() {
		video := &source.VideoResult{
			QualityStreams: map[string]*source.StreamDescriptor{
				"360p":  {Quality: "360p", CombinedURL: "https://v/360", HasAudio: true},
				"1080p": {Quality: "1080p", VideoURL: "https://v/1080", AudioURL: "https://a"},
				"720p":  {Quality: "720p"},
			},
			HLS:      "https://v/master.m3u8",
			EmbedURL: "https://embed/abc",
		}

		Convey("Picks the highest usable quality", func() {
			So(bestURL(video), ShouldEqual, "https://v/1080")
		})

		Convey("Falls back to HLS, then the embed page", func() {
			video.QualityStreams = nil
			So(bestURL(video), ShouldEqual, "https://v/master.m3u8")

			video.HLS = ""
			So(bestURL(video), ShouldEqual, "https://embed/abc")
		})
	})
}

func TestRender(t *testing.T) {
	Convey("Rendering", t, func() {
		var out bytes.Buffer

		Convey("A video lists its qualities", func() {
			renderVideo(&out, &source.VideoResult{
				ID:     "abc",
				Title:  "Some title",
				Author: "Someone",
				QualityStreams: map[string]*source.StreamDescriptor{
					"720p": {Quality: "720p", CombinedURL: "https://v/720", HasAudio: true},
				},
				Source: "omada",
			})

			So(out.String(), ShouldContainSubstring, "Some title")
			So(out.String(), ShouldContainSubstring, "720p")
			So(out.String(), ShouldContainSubstring, "https://v/720")
		})

		Convey("A summary list is counted", func() {
			renderSummaries(&out, []*source.VideoSummary{{ID: "a", Title: "First"}, {ID: "b", Title: "Second"}})
			So(out.String(), ShouldContainSubstring, "2 videos")
			So(out.String(), ShouldContainSubstring, "Second")
		})

		Convey("A schema names canonical fields", func() {
			s := schema(&source.VideoResult{})
			So(s, ShouldNotBeNil)
			So(s.Definitions, ShouldContainKey, "source.VideoResult")
		})
	})
}
