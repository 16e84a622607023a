package util

import (
	"regexp"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "endpoint", "endpoints"), ShouldEqual, "1 endpoint")
		So(Quantify(3, "endpoint", "endpoints"), ShouldEqual, "3 endpoints")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("stream"), ShouldEqual, "Stream")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestReGroups(t *testing.T) {
	Convey("ReGroups", t, func() {
		re := regexp.MustCompile(`(?P<width>\d+)x(?P<height>\d+)`)
		groups := ReGroups(re, "1280x720")
		So(groups["width"], ShouldEqual, "1280")
		So(groups["height"], ShouldEqual, "720")
		So(ReGroups(re, "hd"), ShouldBeEmpty)
	})
}

func TestFileStem(t *testing.T) {
	Convey("FileStem", t, func() {
		So(FileStem("scripts/piped.lua"), ShouldEqual, "piped")
		So(FileStem("piped"), ShouldEqual, "piped")
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
		So(Max[int](), ShouldEqual, 0)
	})
}

func TestWrapping(t *testing.T) {
	Convey("Wrap should break long lines on word boundaries", t, func() {
		wrapped := Wrap("never gonna give you up never gonna let you down", 20)
		for _, line := range strings.Split(wrapped, "\n") {
			So(len(line), ShouldBeLessThanOrEqualTo, 20)
		}
		So(Wrap("short", 0), ShouldEqual, "short")
	})

	Convey("Ellipsis should cut and mark long strings", t, func() {
		So(Ellipsis("abcdefghij", 5), ShouldEqual, "abcd…")
		So(Ellipsis("abc", 5), ShouldEqual, "abc")
	})
}

func TestStack(t *testing.T) {
	Convey("Stack pops in reverse push order", t, func() {
		var s Stack[int]
		s.Push(1, 2)
		s.Push(3)

		for _, want := range []int{3, 2, 1} {
			got, ok := s.Pop()
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, want)
		}

		_, ok := s.Pop()
		So(ok, ShouldBeFalse)
	})
}
