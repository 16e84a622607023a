package normalize

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidpool/vidpool/constant"
	"github.com/vidpool/vidpool/source"
)

func TestParseDuration(t *testing.T) {
	Convey("ParseDuration", t, func() {
		Convey("Should read ISO-8601 durations", func() {
			So(ParseDuration("PT4M13S"), ShouldEqual, 253)
			So(ParseDuration("PT1H"), ShouldEqual, 3600)
			So(ParseDuration("P1DT1S"), ShouldEqual, 86401)
		})

		Convey("Should read clock strings", func() {
			So(ParseDuration("3:45"), ShouldEqual, 225)
			So(ParseDuration("1:02:03"), ShouldEqual, 3723)
		})

		Convey("Should read integer seconds", func() {
			So(ParseDuration("213"), ShouldEqual, 213)
		})

		Convey("Should fall back to zero", func() {
			So(ParseDuration(""), ShouldEqual, 0)
			So(ParseDuration("soon"), ShouldEqual, 0)
			So(ParseDuration("PT"), ShouldEqual, 0)
			So(ParseDuration("1:2:3:4"), ShouldEqual, 0)
			So(ParseDuration("a:10"), ShouldEqual, 0)
		})
	})
}

func TestParseCount(t *testing.T) {
	Convey("ParseCount", t, func() {
		So(ParseCount("1,234,567 回視聴"), ShouldEqual, 1234567)
		So(ParseCount("42 views"), ShouldEqual, 42)
		So(ParseCount(""), ShouldEqual, 0)
		So(ParseCount("no views"), ShouldEqual, 0)
	})
}

func TestLooseTypes(t *testing.T) {
	Convey("Given a payload with inconsistent field types", t, func() {
		var payload struct {
			Bitrate Int     `json:"bitrate"`
			Views   Int     `json:"views"`
			Missing Int     `json:"missing"`
			Length  Seconds `json:"length"`
			Clock   Seconds `json:"clock"`
			ID      Text    `json:"id"`
			Nested  Text    `json:"nested"`
		}

		err := json.Unmarshal([]byte(`{
			"bitrate": "128000",
			"views": "1,234 views",
			"missing": null,
			"length": 253,
			"clock": "3:45",
			"id": 12345,
			"nested": {"a": 1}
		}`), &payload)

		So(err, ShouldBeNil)
		So(payload.Bitrate, ShouldEqual, 128000)
		So(payload.Views, ShouldEqual, 1234)
		So(payload.Missing, ShouldEqual, 0)
		So(payload.Length, ShouldEqual, 253)
		So(payload.Clock, ShouldEqual, 225)
		So(payload.ID, ShouldEqual, "12345")
		So(payload.Nested, ShouldEqual, "")
	})
}

func TestQualityLabel(t *testing.T) {
	Convey("QualityLabel", t, func() {
		So(QualityLabel("720p60"), ShouldEqual, "720p")
		So(QualityLabel("", "1920x1080"), ShouldEqual, "1080p")
		So(QualityLabel("medium"), ShouldEqual, "360p")
		So(QualityLabel("hd720"), ShouldEqual, "720p")
		So(QualityLabel("480"), ShouldEqual, "480p")
		So(QualityLabel("audio only"), ShouldEqual, "")
	})

	Convey("ContainerOf", t, func() {
		So(ContainerOf(`video/mp4; codecs="avc1.4d401f"`), ShouldEqual, "mp4")
		So(ContainerOf("audio/webm"), ShouldEqual, "webm")
		So(ContainerOf(""), ShouldEqual, "")
	})
}

func TestBestAudio(t *testing.T) {
	Convey("Given audio candidates with different bitrates", t, func() {
		candidates := []source.AudioStream{
			{URL: "https://a/96", Bitrate: 96000},
			{URL: "https://a/128", Bitrate: 128000},
			{URL: "https://a/64", Bitrate: 64000},
		}

		Convey("The highest bitrate should win", func() {
			best := BestAudio(candidates)
			So(best, ShouldNotBeNil)
			So(best.Bitrate, ShouldEqual, 128000)
			So(best.URL, ShouldEqual, "https://a/128")
		})

		Convey("Candidates without a URL should be ignored", func() {
			best := BestAudio([]source.AudioStream{{Bitrate: 999999}, {URL: "https://a/1", Bitrate: 1}})
			So(best.URL, ShouldEqual, "https://a/1")
		})

		Convey("No candidates should yield nil", func() {
			So(BestAudio(nil), ShouldBeNil)
		})
	})
}

func TestClassify(t *testing.T) {
	Convey("Given a video format paired with its own audio", t, func() {
		streams, audio := Classify(nil, []Format{
			{URL: "https://v/720", Quality: "720p", Companion: "https://a/paired"},
			{URL: "https://v/480", Quality: "480p"},
			{URL: "https://a/best", Bitrate: 160000, Audio: true},
		})

		Convey("The pairing should win over the best audio", func() {
			So(streams["720p"].AudioURL, ShouldEqual, "https://a/paired")
			So(streams["480p"].AudioURL, ShouldEqual, "https://a/best")
			So(audio.URL, ShouldEqual, "https://a/best")
		})
	})

	Convey("Given combined and adaptive formats", t, func() {
		combined := []Format{
			{URL: "https://c/360", Quality: "medium", Container: "mp4"},
		}
		adaptive := []Format{
			{URL: "https://v/720", Quality: "720p60", Container: "webm"},
			{URL: "https://v/720b", Quality: "720p", Container: "mp4"},
			{URL: "https://a/low", Bitrate: 64000, Audio: true},
			{URL: "https://a/high", Bitrate: 160000, Audio: true},
			{URL: "https://v/360", Quality: "360p", Container: "mp4"},
		}

		streams, audio := Classify(combined, adaptive)

		Convey("Combined streams should carry audio", func() {
			d := streams["360p"]
			So(d.CombinedURL, ShouldEqual, "https://c/360")
			So(d.HasAudio, ShouldBeTrue)
			So(d.Usable(), ShouldBeTrue)
		})

		Convey("Adaptive video should get the best audio attached", func() {
			d := streams["720p"]
			So(d.VideoURL, ShouldEqual, "https://v/720")
			So(d.AudioURL, ShouldEqual, "https://a/high")
			So(d.HasAudio, ShouldBeFalse)
			So(d.CombinedURL, ShouldBeEmpty)
		})

		Convey("The best audio should be returned", func() {
			So(audio.URL, ShouldEqual, "https://a/high")
		})

		Convey("FilterQualities should keep only requested labels", func() {
			filtered := FilterQualities(streams, []string{"720p"})
			So(filtered, ShouldContainKey, "720p")
			So(filtered, ShouldNotContainKey, "360p")
			So(FilterQualities(streams, nil), ShouldHaveLength, 2)
		})
	})
}

func TestPlaceholders(t *testing.T) {
	Convey("Placeholders", t, func() {
		So(Author(""), ShouldEqual, constant.UnknownAuthor)
		So(Author("Rick"), ShouldEqual, "Rick")

		avatars := AuthorThumbnails(nil)
		So(avatars, ShouldHaveLength, 2)
		So(avatars[0].Width, ShouldEqual, 88)
		So(avatars[1].Width, ShouldEqual, 176)

		thumbs := Thumbnails("abc12345678", []source.Thumbnail{{Quality: "broken"}})
		So(thumbs, ShouldHaveLength, 1)
		So(thumbs[0].URL, ShouldEqual, "https://i.ytimg.com/vi/abc12345678/hqdefault.jpg")
	})
}

func TestDedupe(t *testing.T) {
	Convey("Given lists in priority order sharing an id", t, func() {
		primary := []*source.VideoSummary{{ID: "a", Title: "primary a"}, {ID: "b", Title: "b"}}
		secondary := []*source.VideoSummary{{ID: "a", Title: "secondary a"}, {ID: "c", Title: "c"}, {Title: "no id"}}

		merged := Dedupe(primary, secondary)

		Convey("The first-seen entry should win and order should be kept", func() {
			So(merged, ShouldHaveLength, 3)
			So(merged[0].Title, ShouldEqual, "primary a")
			So(merged[1].ID, ShouldEqual, "b")
			So(merged[2].ID, ShouldEqual, "c")
		})
	})
}
