package custom

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vidpool/vidpool/filesystem"

	. "github.com/smartystreets/goconvey/convey"
)

func TestInstall(t *testing.T) {
	Convey("Given a script served over HTTP", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		body := script
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		defer srv.Close()

		dest := "/scripts/remote.lua"

		Convey("The first install writes it and it loads", func() {
			changed, err := Install(context.Background(), srv.Client(), srv.URL, dest)
			So(err, ShouldBeNil)
			So(changed, ShouldBeTrue)

			_, err = Load(dest)
			So(err, ShouldBeNil)

			names, err := List("/scripts")
			So(err, ShouldBeNil)
			So(names, ShouldResemble, []string{"remote.lua"})

			Convey("Installing identical contents is a no-op", func() {
				changed, err := Install(context.Background(), srv.Client(), srv.URL, dest)
				So(err, ShouldBeNil)
				So(changed, ShouldBeFalse)
			})
		})

		Convey("A script that does not compile is rejected and nothing is written", func() {
			body = "function request(op, args"
			changed, err := Install(context.Background(), srv.Client(), srv.URL, dest)
			So(err, ShouldNotBeNil)
			So(changed, ShouldBeFalse)

			exists, _ := filesystem.API().Exists(dest)
			So(exists, ShouldBeFalse)
		})
	})
}
