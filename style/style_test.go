package style

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRenderers(t *testing.T) {
	Convey("Renderers keep the text", t, func() {
		So(Faint("abc"), ShouldContainSubstring, "abc")
		So(Bold("abc"), ShouldContainSubstring, "abc")
		So(Fg(lipgloss.Color("1"))("abc"), ShouldContainSubstring, "abc")
	})

	Convey("An empty tag renders nothing", t, func() {
		So(Tag(lipgloss.Color("0"), lipgloss.Color("7"))(""), ShouldEqual, "")
		So(Tag(lipgloss.Color("0"), lipgloss.Color("7"))("omada"), ShouldContainSubstring, "omada")
	})
}
