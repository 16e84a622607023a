package normalize

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/vidpool/vidpool/constant"
	"github.com/vidpool/vidpool/source"
)

// DefaultAuthorThumbnails is the avatar set used when an endpoint omits one.
func DefaultAuthorThumbnails() []source.Thumbnail {
	return []source.Thumbnail{
		{URL: constant.AuthorIconSmall, Width: 88, Height: 88},
		{URL: constant.AuthorIconLarge, Width: 176, Height: 176},
	}
}

// DefaultThumbnails points at the CDN thumbnail that exists for every public video.
func DefaultThumbnails(id string) []source.Thumbnail {
	if id == "" {
		return nil
	}
	return []source.Thumbnail{{
		URL:     fmt.Sprintf(constant.ThumbnailPattern, id),
		Quality: "high",
		Width:   480,
		Height:  360,
	}}
}

// Author falls back to the unknown-author placeholder.
func Author(name string) string {
	return First(name, constant.UnknownAuthor)
}

// Thumbnails drops entries without a URL and falls back to the default set.
func Thumbnails(id string, thumbs []source.Thumbnail) []source.Thumbnail {
	thumbs = lo.Filter(thumbs, func(t source.Thumbnail, _ int) bool {
		return t.URL != ""
	})
	if len(thumbs) == 0 {
		return DefaultThumbnails(id)
	}
	return thumbs
}

// AuthorThumbnails is Thumbnails for avatars.
func AuthorThumbnails(thumbs []source.Thumbnail) []source.Thumbnail {
	thumbs = lo.Filter(thumbs, func(t source.Thumbnail, _ int) bool {
		return t.URL != ""
	})
	if len(thumbs) == 0 {
		return DefaultAuthorThumbnails()
	}
	return thumbs
}

// Dedupe flattens lists given in priority order, keeping the first entry per id.
// Entries without an id are dropped.
func Dedupe(lists ...[]*source.VideoSummary) []*source.VideoSummary {
	return lo.UniqBy(
		lo.Filter(lo.Flatten(lists), func(v *source.VideoSummary, _ int) bool {
			return v != nil && v.ID != ""
		}),
		func(v *source.VideoSummary) string {
			return v.ID
		},
	)
}
