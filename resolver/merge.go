package resolver

import (
	"github.com/samber/lo"
	"github.com/vidpool/vidpool/constant"
	"github.com/vidpool/vidpool/normalize"
	"github.com/vidpool/vidpool/source"
)

// mergeVideo combines partial results given in priority order. For every field the first
// part with a real (non-placeholder) value wins; quality maps are unioned with the
// higher-priority descriptor winning per label.
func mergeVideo(id string, parts []*source.VideoResult) *source.VideoResult {
	parts = lo.Compact(parts)
	merged := &source.VideoResult{
		ID:             id,
		QualityStreams: make(map[string]*source.StreamDescriptor),
	}

	pick := func(get func(*source.VideoResult) string, placeholder string) string {
		for _, p := range parts {
			if v := get(p); v != "" && v != placeholder {
				return v
			}
		}
		return ""
	}

	merged.Title = pick(func(v *source.VideoResult) string { return v.Title }, "")
	merged.Author = pick(func(v *source.VideoResult) string { return v.Author }, constant.UnknownAuthor)
	merged.AuthorID = pick(func(v *source.VideoResult) string { return v.AuthorID }, "")
	merged.Description = pick(func(v *source.VideoResult) string { return v.Description }, "")
	merged.Published = pick(func(v *source.VideoResult) string { return v.Published }, "")
	merged.HLS = pick(func(v *source.VideoResult) string { return v.HLS }, "")
	merged.EmbedURL = pick(func(v *source.VideoResult) string { return v.EmbedURL }, "")

	for _, p := range parts {
		if merged.Duration == 0 {
			merged.Duration = p.Duration
		}
		if merged.Views == 0 {
			merged.Views = p.Views
		}
		if merged.BestAudio == nil {
			merged.BestAudio = p.BestAudio
		}
		if merged.Source == "" && p.HasStreams() {
			merged.Source = p.Source
		}
		if merged.Thumbnails == nil && !isDefaultThumbnails(id, p.Thumbnails) {
			merged.Thumbnails = p.Thumbnails
		}
		if merged.AuthorThumbnails == nil && !isDefaultAvatar(p.AuthorThumbnails) {
			merged.AuthorThumbnails = p.AuthorThumbnails
		}

		for label, d := range p.QualityStreams {
			if _, taken := merged.QualityStreams[label]; !taken && d.Usable() {
				merged.QualityStreams[label] = d
			}
		}
	}

	if merged.Source == "" {
		merged.Source = pick(func(v *source.VideoResult) string { return v.Source }, "")
	}

	merged.Author = normalize.Author(merged.Author)
	merged.Thumbnails = normalize.Thumbnails(id, merged.Thumbnails)
	merged.AuthorThumbnails = normalize.AuthorThumbnails(merged.AuthorThumbnails)

	return merged
}

func isDefaultThumbnails(id string, thumbs []source.Thumbnail) bool {
	if len(thumbs) == 0 {
		return true
	}
	def := normalize.DefaultThumbnails(id)
	return len(thumbs) == len(def) && thumbs[0].URL == def[0].URL
}

func isDefaultAvatar(thumbs []source.Thumbnail) bool {
	return len(thumbs) == 0 || thumbs[0].URL == constant.AuthorIconSmall
}

// usable is the bar a merged stream result must clear: something playable, or at least
// a title from a network source.
func usable(v *source.VideoResult) bool {
	return v.HasStreams() || v.Title != ""
}

// withQualities returns a shallow copy keeping only the wanted descriptors, so cached values stay whole.
func withQualities(v *source.VideoResult, wanted []string) *source.VideoResult {
	out := *v
	out.QualityStreams = normalize.FilterQualities(v.QualityStreams, wanted)
	return &out
}
