package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/vidpool/vidpool/config"
	"github.com/vidpool/vidpool/key"
	"github.com/vidpool/vidpool/where"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseValue(t *testing.T) {
	Convey("parseValue follows the type of the default", t, func() {
		Convey("Durations", func() {
			v, err := parseValue(config.Default[key.StreamTimeout], []string{"6s"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 6*time.Second)

			_, err = parseValue(config.Default[key.StreamTimeout], []string{"six"})
			So(err, ShouldNotBeNil)
		})

		Convey("Integers", func() {
			v, err := parseValue(config.Default[key.CacheSize], []string{"128"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 128)

			v, err = parseValue(config.Default[key.SelectionSeed], []string{"42"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, int64(42))
		})

		Convey("Booleans", func() {
			v, err := parseValue(config.Default[key.CacheSingleFlight], []string{"true"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, true)
		})

		Convey("Lists accept separate words and commas alike", func() {
			v, err := parseValue(config.Default[key.StreamQualities], []string{"720p,1080p", "360p", ","})
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []string{"720p", "1080p", "360p"})
		})

		Convey("A missing value is an error", func() {
			_, err := parseValue(config.Default[key.ServerMode], nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestErrUnknownKey(t *testing.T) {
	Convey("An unknown key suggests the closest one", t, func() {
		err := errUnknownKey("stream.timout")
		So(err.Error(), ShouldContainSubstring, key.StreamTimeout)
	})
}

func TestEnvVariables(t *testing.T) {
	Convey("Every setting has a prefixed variable", t, func() {
		names := envVariables()
		So(names, ShouldContain, where.EnvConfigPath)
		So(names, ShouldContain, "VIDPOOL_STREAM_TIMEOUT")
		So(len(names), ShouldEqual, len(config.Default)+1)

		for _, name := range names {
			So(strings.HasPrefix(name, "VIDPOOL_"), ShouldBeTrue)
		}
	})
}
