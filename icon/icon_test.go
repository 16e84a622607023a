package icon

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidpool/vidpool/key"
)

func TestGet(t *testing.T) {
	Convey("Given every registered icon", t, func() {
		defer viper.Set(key.IconsVariant, "plain")

		Convey("It renders for each variant", func() {
			for _, name := range AvailableVariants() {
				viper.Set(key.IconsVariant, name)
				for i := range icons {
					So(Get(i), ShouldNotBeEmpty)
				}
			}
		})

		Convey("Variants differ", func() {
			viper.Set(key.IconsVariant, "emoji")
			emoji := Get(Success)
			viper.Set(key.IconsVariant, "plain")
			So(Get(Success), ShouldNotEqual, emoji)
		})

		Convey("An unknown variant falls back to plain", func() {
			viper.Set(key.IconsVariant, "")
			So(Get(Fail), ShouldEqual, "✖")
		})
	})
}
