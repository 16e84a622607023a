// Package source defines the canonical models every endpoint payload is normalized into.
package source

import (
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Thumbnail is one image of a thumbnail or avatar set.
type Thumbnail struct {
	URL     string `json:"url"`
	Quality string `json:"quality,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// StreamDescriptor describes the URLs of one playable quality.
type StreamDescriptor struct {
	Quality string `json:"quality" jsonschema:"example=720p"`
	// VideoURL is a video-only stream. AudioURL is its companion audio.
	VideoURL string `json:"video_url,omitempty"`
	AudioURL string `json:"audio_url,omitempty"`
	// CombinedURL carries video and audio in one stream.
	CombinedURL string `json:"combined_url,omitempty"`
	HasAudio    bool   `json:"has_audio"`
	Container   string `json:"container,omitempty" jsonschema:"example=mp4"`
}

// Usable reports whether the descriptor can be played at all.
func (d *StreamDescriptor) Usable() bool {
	return d != nil && (d.VideoURL != "" || d.CombinedURL != "")
}

// PlaybackURL prefers the combined stream.
func (d *StreamDescriptor) PlaybackURL() string {
	if d.CombinedURL != "" {
		return d.CombinedURL
	}
	return d.VideoURL
}

// Height parses the numeric part of the quality label, "720p60" → 720.
func (d *StreamDescriptor) Height() int {
	digits := strings.TrimLeft(d.Quality, " ")
	end := strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' })
	if end >= 0 {
		digits = digits[:end]
	}
	h, _ := strconv.Atoi(digits)
	return h
}

// AudioStream is a standalone audio track.
type AudioStream struct {
	URL       string `json:"url"`
	Bitrate   int    `json:"bitrate"`
	Container string `json:"container,omitempty"`
}

// VideoResult is the canonical aggregate returned by a stream lookup.
type VideoResult struct {
	ID               string                       `json:"id"`
	Title            string                       `json:"title"`
	Author           string                       `json:"author"`
	AuthorID         string                       `json:"author_id,omitempty"`
	AuthorThumbnails []Thumbnail                  `json:"author_thumbnails,omitempty"`
	Description      string                       `json:"description"`
	Duration         int                          `json:"duration_seconds"`
	Views            int64                        `json:"view_count"`
	Published        string                       `json:"published,omitempty"`
	Thumbnails       []Thumbnail                  `json:"thumbnails,omitempty"`
	QualityStreams   map[string]*StreamDescriptor `json:"quality_streams"`
	BestAudio        *AudioStream                 `json:"best_audio,omitempty"`
	HLS              string                       `json:"hls,omitempty"`
	EmbedURL         string                       `json:"embed_url,omitempty"`
	// Source names the endpoint that supplied the streams, or the metadata when no streams were found.
	Source string `json:"source" jsonschema:"example=omada"`
}

// HasStreams reports whether at least one descriptor is usable.
func (v *VideoResult) HasStreams() bool {
	return lo.SomeBy(lo.Values(v.QualityStreams), func(d *StreamDescriptor) bool {
		return d.Usable()
	})
}

// Qualities lists the usable quality labels, highest first.
func (v *VideoResult) Qualities() []string {
	usable := lo.Filter(lo.Values(v.QualityStreams), func(d *StreamDescriptor, _ int) bool {
		return d.Usable()
	})
	sort.SliceStable(usable, func(i, j int) bool {
		if usable[i].Height() == usable[j].Height() {
			return usable[i].Quality < usable[j].Quality
		}
		return usable[i].Height() > usable[j].Height()
	})
	return lo.Map(usable, func(d *StreamDescriptor, _ int) string {
		return d.Quality
	})
}

// VideoSummary is one entry of a search or trending list.
type VideoSummary struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Author     string      `json:"author"`
	AuthorID   string      `json:"author_id,omitempty"`
	Duration   int         `json:"duration_seconds"`
	Views      int64       `json:"view_count"`
	Published  string      `json:"published,omitempty"`
	Thumbnails []Thumbnail `json:"thumbnails,omitempty"`
	Source     string      `json:"source"`
}

// Comment is one top-level comment.
type Comment struct {
	Author           string      `json:"author"`
	AuthorID         string      `json:"author_id,omitempty"`
	AuthorThumbnails []Thumbnail `json:"author_thumbnails"`
	Content          string      `json:"content"`
	Published        string      `json:"published,omitempty"`
	Likes            int64       `json:"like_count"`
}
