package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Warn
	Eligible
	Cooling
	Stream
	Audio
)

var icons = map[Icon]glyphs{
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "✖",
		kaomoji: "(×﹏×)",
		squares: "🟥",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "…",
		kaomoji: "(・_・ヾ",
		squares: "🟦",
	},
	Warn: {
		emoji:   "⚠️",
		nerd:    "",
		plain:   "!",
		kaomoji: "(°ロ°)",
		squares: "🟨",
	},
	Eligible: {
		emoji:   "🟢",
		nerd:    "",
		plain:   "●",
		kaomoji: "(^_^)",
		squares: "🟩",
	},
	Cooling: {
		emoji:   "🧊",
		nerd:    "",
		plain:   "○",
		kaomoji: "(-_-)zzz",
		squares: "🟧",
	},
	Stream: {
		emoji:   "🎬",
		nerd:    "",
		plain:   "▶",
		kaomoji: "(▰˘◡˘▰)",
		squares: "🟪",
	},
	Audio: {
		emoji:   "🔊",
		nerd:    "",
		plain:   "♪",
		kaomoji: "♪(´ε｀ )",
		squares: "🟫",
	},
}
