package log

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidpool/vidpool/filesystem"
	"github.com/vidpool/vidpool/key"
	"github.com/vidpool/vidpool/where"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		Convey("Enabled should be false and entries should be swallowed", func() {
			So(Enabled(), ShouldBeFalse)
			So(func() { WithFields(Fields{"endpoint": "x"}).Info("dropped") }, ShouldNotPanic)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		defer viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		Convey("Entries should land in today's log file", func() {
			WithFields(Fields{"capability": "stream"}).Info("endpoint failed")

			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			data := lo.Must(filesystem.API().ReadFile(path))
			So(strings.Contains(string(data), "endpoint failed"), ShouldBeTrue)
			So(strings.Contains(string(data), "capability=stream"), ShouldBeTrue)
		})
	})
}
