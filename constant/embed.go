package constant

// Embed hosts and the fixed query parameter sets appended to synthesized playback URLs.
const (
	EducationEmbedBase = "https://www.youtubeeducation.com/embed"
	NocookieEmbedBase  = "https://www.youtube-nocookie.com/embed"
	YoutubeEmbedBase   = "https://www.youtube.com/embed"

	// EducationOrigin is sent as the origin parameter; the education host rejects embeds without it.
	EducationOrigin = "https://create.kahoot.it"

	// EmbedSampleID is a known-playable video used to discover the education host's current base path.
	EmbedSampleID = "wfmpUlRFJGw"
)

// Placeholders substituted for missing optional fields.
const (
	AuthorIconSmall  = "https://yt3.ggpht.com/ytc/AOPolaDefault=s88-c-k-c0x00ffffff-no-rj"
	AuthorIconLarge  = "https://yt3.ggpht.com/ytc/AOPolaDefault=s176-c-k-c0x00ffffff-no-rj"
	ThumbnailPattern = "https://i.ytimg.com/vi/%s/hqdefault.jpg"
	UnknownAuthor    = "Unknown"
)

// DefaultQualities are the labels a stream lookup returns when the caller names none.
var DefaultQualities = []string{"360p", "480p", "720p", "1080p"}
