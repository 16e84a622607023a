// Package icon renders status symbols in the variant selected by icons.variant.
package icon

import (
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vidpool/vidpool/key"
)

type variant int

const (
	plain variant = iota
	emoji
	nerd
	kaomoji
	squares
)

var variantNames = [...]string{
	plain:   "plain",
	emoji:   "emoji",
	nerd:    "nerd",
	kaomoji: "kaomoji",
	squares: "squares",
}

// glyphs holds one symbol per variant.
type glyphs [len(variantNames)]string

// AvailableVariants lists the accepted values of icons.variant.
func AvailableVariants() []string {
	return variantNames[:]
}

// current falls back to plain for unknown names.
func current() variant {
	if i := lo.IndexOf(variantNames[:], viper.GetString(key.IconsVariant)); i >= 0 {
		return variant(i)
	}
	return plain
}

// Get returns the symbol for i in the configured variant.
func Get(i Icon) string {
	return icons[i][current()]
}
