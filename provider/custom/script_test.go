package custom

import (
	"testing"

	"github.com/vidpool/vidpool/filesystem"

	. "github.com/smartystreets/goconvey/convey"
)

const script = `
local json = require("json")

function request(op, args)
  if op == "search" then
    return { path = "/find", query = { q = args.query, page = args.page } }
  end
  return { method = "get", path = "/v/" .. args.id }
end

function parse(op, body)
  local data = json.decode(body)
  if op == "token" then
    return data.key
  end
  return data
end
`

func write(path, contents string) {
	So(filesystem.API().MkdirAll("/scripts", 0755), ShouldBeNil)
	So(filesystem.API().WriteFile(path, []byte(contents), 0644), ShouldBeNil)
	Invalidate(path)
}

func TestScript(t *testing.T) {
	Convey("Given a custom endpoint script", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		path := "/scripts/mirror.lua"
		write(path, script)

		s, err := Load(path)
		So(err, ShouldBeNil)
		So(s.Name(), ShouldEqual, "mirror")

		Convey("When a request is built", func() {
			call, err := s.Request("search", map[string]string{"query": "lofi", "page": "2"})

			Convey("Then the script decides path and query", func() {
				So(err, ShouldBeNil)
				So(call.Method, ShouldEqual, "GET")
				So(call.Path, ShouldEqual, "/find")
				So(call.Query, ShouldResemble, map[string]string{"q": "lofi", "page": "2"})
			})
		})

		Convey("When a video payload is parsed", func() {
			body := []byte(`{
				"title": "Scripted",
				"views": "1,024",
				"duration": "PT1M",
				"streams": [
					{"url": "https://v/360", "quality": "360p", "type": "combined"},
					{"url": "https://v/720", "quality": "720p", "type": "video"},
					{"url": "https://a/1", "type": "audio", "bitrate": 128000}
				]
			}`)
			video, err := s.Video("stream", body, "abc12345678")

			Convey("Then it is normalized like any dialect", func() {
				So(err, ShouldBeNil)
				So(video.ID, ShouldEqual, "abc12345678")
				So(video.Views, ShouldEqual, 1024)
				So(video.Duration, ShouldEqual, 60)
				So(video.QualityStreams["360p"].CombinedURL, ShouldEqual, "https://v/360")
				So(video.QualityStreams["720p"].AudioURL, ShouldEqual, "https://a/1")
				So(video.Author, ShouldEqual, "Unknown")
			})
		})

		Convey("When a list payload is parsed", func() {
			list, err := s.Summaries("search", []byte(`[{"id": "a1", "title": "A"}, {"title": "no id"}]`))

			Convey("Then entries without an id are skipped", func() {
				So(err, ShouldBeNil)
				So(list, ShouldHaveLength, 1)
				So(list[0].ID, ShouldEqual, "a1")
			})
		})

		Convey("When a text payload is parsed", func() {
			token, err := s.Text("token", []byte(`{"key": "k/1+2"}`))

			Convey("Then the string is returned", func() {
				So(err, ShouldBeNil)
				So(token, ShouldEqual, "k/1+2")
			})
		})

		Convey("When parse returns the wrong type", func() {
			_, err := s.Text("stream", []byte(`{"key": "x"}`))

			Convey("Then it is an error", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When the body is not JSON", func() {
			_, err := s.Video("stream", []byte(`<html>`), "x")

			Convey("Then the script error surfaces", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})

	Convey("Given a script without parse", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		path := "/scripts/broken.lua"
		write(path, `function request(op, args) return { path = "/" } end`)

		_, err := Load(path)

		Convey("Then loading fails", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "parse")
		})
	})
}
