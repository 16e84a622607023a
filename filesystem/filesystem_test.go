package filesystem

import (
	"io"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestGacheFs(t *testing.T) {
	Convey("Given the gache adapter over a memory backend", t, func() {
		SetMemMapFs()
		adapter := GacheFs{}

		Convey("It should create directories and round-trip file contents", func() {
			So(adapter.MkdirAll("/cache/vidpool", os.ModePerm), ShouldBeNil)

			f, err := adapter.OpenFile("/cache/vidpool/version.json", os.O_CREATE|os.O_RDWR, 0o644)
			So(err, ShouldBeNil)
			_, err = io.WriteString(f, `"1.2.3"`)
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)

			data, err := API().ReadFile("/cache/vidpool/version.json")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `"1.2.3"`)
		})
	})
}
